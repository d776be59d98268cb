package repository

import (
	"context"

	"github.com/leanlee/shopchat/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PatternRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPatternRepository(db *pgxpool.Pool, logger *zap.Logger) *PatternRepository {
	return &PatternRepository{
		db:     db,
		logger: logger,
	}
}

// ListAll returns every scoring rule. The ordering (intent, then id) fixes
// the first-seen intent order the scorer uses to break ties.
func (r *PatternRepository) ListAll(ctx context.Context) ([]models.Pattern, error) {
	query := squirrel.Select("id", "intent", "kind", "pattern", "weight").
		From("patterns").
		OrderBy("intent", "id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patterns []models.Pattern
	for rows.Next() {
		var p models.Pattern
		if err := rows.Scan(&p.ID, &p.Intent, &p.Kind, &p.Pattern, &p.Weight); err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}

	return patterns, rows.Err()
}
