package repository

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type AnswerRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAnswerRepository(db *pgxpool.Pool, logger *zap.Logger) *AnswerRepository {
	return &AnswerRepository{
		db:     db,
		logger: logger,
	}
}

// GetByIntent returns the canned answer text for an intent, or ErrNotFound.
func (r *AnswerRepository) GetByIntent(ctx context.Context, intent string) (string, error) {
	query := squirrel.Select("answer").
		From("answers").
		Where(squirrel.Eq{"intent": intent}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return "", err
	}

	var answer string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&answer)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	return answer, nil
}
