package repository

import (
	"context"

	"github.com/leanlee/shopchat/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type FeedbackRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewFeedbackRepository(db *pgxpool.Pool, logger *zap.Logger) *FeedbackRepository {
	return &FeedbackRepository{
		db:     db,
		logger: logger,
	}
}

func (r *FeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	query := squirrel.Insert("feedback").
		Columns("id", "user_id", "user_email", "rating", "category", "comment", "created_at").
		Values(fb.ID, fb.UserID, fb.UserEmail, fb.Rating, fb.Category, fb.Comment, fb.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return err
	}

	r.logger.Info("Feedback recorded",
		zap.Int("rating", fb.Rating),
		zap.String("category", fb.Category),
	)
	return nil
}
