package etl

import (
	"context"
	"time"

	"adboard/internal/ad"
	"adboard/internal/types/elastic"

	"go.uber.org/zap"
)

type Extractor interface {
	ExtractNew(ctx context.Context) ([]ad.Ad, error)
}

type Loader interface {
	Load(ctx context.Context, docs []elastic.ElasticDoc) error
}

type Pipeline struct {
	extractor   Extractor
	transformer *Transformer
	loader      Loader
	logger      *zap.SugaredLogger
	interval    time.Duration
}

func NewPipeline(
	extractor Extractor,
	transformer *Transformer,
	loader Loader,
	logger *zap.SugaredLogger,
	interval time.Duration,
) *Pipeline {
	return &Pipeline{
		extractor:   extractor,
		transformer: transformer,
		loader:      loader,
		logger:      logger,
		interval:    interval,
	}
}

// RunOnce - одна итерация extract-transform-load, возвращает число загруженных документов
func (p *Pipeline) RunOnce(ctx context.Context) (int, error) {
	// EXTRACT
	ads, err := p.extractor.ExtractNew(ctx)
	if err != nil {
		p.logger.Errorw("Extracting failed", zap.Error(err))
		return 0, err
	}
	if len(ads) == 0 {
		p.logger.Debugw("No new ads to process")
		return 0, nil
	}

	// TRANSFORM
	docs := p.transformer.Transform(ads)

	// LOAD
	if err = p.loader.Load(ctx, docs); err != nil {
		p.logger.Errorw("Error while loading docs to ES", zap.Error(err))
		return 0, err
	}

	return len(docs), nil
}

// Run крутит пайплайн по тикеру, пока не отменят контекст
func (p *Pipeline) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Infow("ETL pipeline started", "interval", p.interval)

	for {
		select {
		case <-ctx.Done():
			p.logger.Infow("ETL pipeline stopped")
			return
		case <-ticker.C:
			n, err := p.RunOnce(ctx)
			if err != nil || n == 0 {
				continue
			}

			p.logger.Infof("ETL pipeline completed, successfully loaded %d docs", n)
		}
	}
}
