package etl

import (
	"context"
	"database/sql"

	"adboard/internal/ad"

	"go.uber.org/zap"
)

const defaultBatchSize = 500

type PostgresExtractor struct {
	DB        *sql.DB
	Logger    *zap.SugaredLogger
	BatchSize int
}

func NewPostgresExtractor(db *sql.DB, logger *zap.SugaredLogger) *PostgresExtractor {
	return &PostgresExtractor{
		DB:        db,
		Logger:    logger,
		BatchSize: defaultBatchSize,
	}
}

// ExtractNew - достает объявления, которые еще не попали в поиск или изменились после индексации
func (e *PostgresExtractor) ExtractNew(ctx context.Context) ([]ad.Ad, error) {
	query :=
		`
		SELECT id, name, description, category_id, price, is_published
		FROM ads
		WHERE indexed = FALSE
		ORDER BY id
		LIMIT $1
		`

	rows, err := e.DB.QueryContext(ctx, query, e.BatchSize)
	if err != nil {
		e.Logger.Errorw("Failed to executing query", zap.Error(err))

		return nil, err
	}
	defer rows.Close()

	var result []ad.Ad

	for rows.Next() {
		var a ad.Ad
		err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.CategoryID, &a.Price, &a.IsPublished)
		if err != nil {
			e.Logger.Errorw("Failed to scan rows", zap.Error(err))

			return nil, err
		}
		result = append(result, a)
	}

	if err := rows.Err(); err != nil {
		e.Logger.Errorw("Error during rows iteration", zap.Error(err))
		return nil, err
	}

	return result, nil
}
