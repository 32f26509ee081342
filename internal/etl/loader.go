package etl

import (
	"context"
	"database/sql"

	"adboard/internal/types/elastic"
	myErr "adboard/internal/types/errors"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const markIndexedQuery = "UPDATE ads SET indexed = TRUE WHERE id = ANY($1)"

// BulkIndexer - часть поискового сервиса, которая нужна загрузчику
type BulkIndexer interface {
	BulkIndex(ctx context.Context, docs []elastic.ElasticDoc) error
}

type ElasticLoader struct {
	Service BulkIndexer
	Logger  *zap.SugaredLogger
	DB      *sql.DB
}

func NewElasticLoader(service BulkIndexer, logger *zap.SugaredLogger, db *sql.DB) *ElasticLoader {
	return &ElasticLoader{
		Service: service,
		Logger:  logger,
		DB:      db,
	}
}

// Load кладет пачку в индекс и только после этого помечает объявления проиндексированными.
// Если индекс не принял пачку, флаги не трогаем: следующий проход ETL повторит ее целиком
func (l *ElasticLoader) Load(ctx context.Context, docs []elastic.ElasticDoc) error {
	if len(docs) == 0 {
		return nil
	}

	if err := l.Service.BulkIndex(ctx, docs); err != nil {
		l.Logger.Errorw("Failed to bulk index ads", "count", len(docs), zap.Error(err))
		return err
	}

	ids := make([]int64, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}

	if _, err := l.DB.ExecContext(ctx, markIndexedQuery, pq.Array(ids)); err != nil {
		l.Logger.Errorw("Failed to mark ads as indexed", "count", len(ids), zap.Error(err))
		return myErr.ErrDBInternal
	}

	l.Logger.Infow("Ads indexed", "count", len(ids))
	return nil
}
