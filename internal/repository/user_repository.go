package repository

import (
	"context"
	"errors"
	"time"

	"github.com/leanlee/shopchat/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	query := squirrel.Select("id", "name", "email", "created_at").
		From("user_profile").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user models.UserProfile
	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Create inserts a new profile and returns it with the assigned id.
func (r *UserRepository) Create(ctx context.Context, name, email string) (*models.UserProfile, error) {
	now := time.Now().UTC()
	query := squirrel.Insert("user_profile").
		Columns("name", "email", "created_at").
		Values(name, email, now).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return nil, err
	}

	r.logger.Info("User profile created", zap.Int64("user_id", id))
	return &models.UserProfile{ID: id, Name: name, Email: email, CreatedAt: now}, nil
}
