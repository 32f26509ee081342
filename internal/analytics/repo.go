package analytics

import (
	"context"
	"database/sql"
	"errors"

	types "adboard/internal/types/category"
	myErr "adboard/internal/types/errors"

	"go.uber.org/zap"
)

type Repository struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

func NewRepository(db *sql.DB, logger *zap.SugaredLogger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) IncrementStats(ctx context.Context, delta types.Stats) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO category_stats (category_id, views, created, deleted)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (category_id)
		DO UPDATE SET
			views = category_stats.views + EXCLUDED.views,
			created = category_stats.created + EXCLUDED.created,
			deleted = category_stats.deleted + EXCLUDED.deleted
	`, delta.CategoryID, delta.Views, delta.Created, delta.Deleted)
	if err != nil {
		r.logger.Errorf("Error updating stats for category %d: %v", delta.CategoryID, err)
		return myErr.ErrDBInternal
	}

	return nil
}

// GetStats для категории без событий возвращает нули
func (r *Repository) GetStats(ctx context.Context, categoryID int64) (*types.Stats, error) {
	s := types.Stats{CategoryID: categoryID}
	err := r.db.QueryRowContext(ctx, `
		SELECT views, created, deleted
		FROM category_stats
		WHERE category_id = $1
	`, categoryID).Scan(&s.Views, &s.Created, &s.Deleted)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		r.logger.Errorf("Error getting stats for category %d: %v", categoryID, err)
		return nil, myErr.ErrDBInternal
	}

	return &s, nil
}

func (r *Repository) TopCategories(ctx context.Context, limit int) ([]types.Stats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category_id, views, created, deleted
		FROM category_stats
		ORDER BY views DESC, category_id
		LIMIT $1
	`, limit)
	if err != nil {
		r.logger.Errorf("Error getting top categories: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	stats := make([]types.Stats, 0, limit)
	for rows.Next() {
		var s types.Stats
		if err := rows.Scan(&s.CategoryID, &s.Views, &s.Created, &s.Deleted); err != nil {
			r.logger.Errorf("Error scanning category stats: %v", err)
			return nil, myErr.ErrDBInternal
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Errorf("Error iterating category stats: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return stats, nil
}
