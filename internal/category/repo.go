package category

import (
	"context"
	"database/sql"
	"errors"

	myErr "adboard/internal/types/errors"

	"go.uber.org/zap"
)

type CategoryDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewCategoryDBRepository(db *sql.DB, l *zap.SugaredLogger) *CategoryDBRepository {
	return &CategoryDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (cr *CategoryDBRepository) List(ctx context.Context) ([]Category, error) {
	rows, err := cr.DB.QueryContext(ctx, "SELECT id, name, slug FROM categories ORDER BY id")
	if err != nil {
		cr.Logger.Errorf("Error listing categories: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			cr.Logger.Errorf("Error scanning category: %v", err)
			return nil, myErr.ErrDBInternal
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		cr.Logger.Errorf("Error iterating categories: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return categories, nil
}

func (cr *CategoryDBRepository) GetByID(ctx context.Context, id int64) (*Category, error) {
	var c Category

	err := cr.DB.QueryRowContext(ctx, "SELECT id, name, slug FROM categories WHERE id = $1", id).
		Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		cr.Logger.Errorf("Error getting category %d: %v", id, err)
		return nil, myErr.ErrDBInternal
	}

	return &c, nil
}
