package analytics

import (
	"context"

	"adboard/internal/kafka"
	types "adboard/internal/types/category"

	"go.uber.org/zap"
)

type Service struct {
	repo   AnalyticsRepo
	logger *zap.SugaredLogger
}

func NewService(repo AnalyticsRepo, logger *zap.SugaredLogger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ProcessEvent(ctx context.Context, event kafka.Event) error {
	if event.CategoryID == 0 {
		return nil // Игнорируем события без категории
	}

	delta := types.Stats{CategoryID: event.CategoryID}
	switch event.Type {
	case kafka.AdViewed:
		delta.Views = 1
	case kafka.AdCreated:
		delta.Created = 1
	case kafka.AdDeleted:
		delta.Deleted = 1
	default:
		return nil
	}

	return s.repo.IncrementStats(ctx, delta)
}

func (s *Service) GetStats(ctx context.Context, categoryID int64) (*types.Stats, error) {
	return s.repo.GetStats(ctx, categoryID)
}

func (s *Service) TopCategories(ctx context.Context, limit int) ([]types.Stats, error) {
	return s.repo.TopCategories(ctx, limit)
}
