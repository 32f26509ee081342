package analytics

import (
	"context"

	"adboard/internal/kafka"
	types "adboard/internal/types/category"
)

// AnalyticsRepo - интерфейс репозитория счетчиков по категориям.
type AnalyticsRepo interface {
	// IncrementStats прибавляет delta к счетчикам категории, создавая строку при первом событии
	IncrementStats(ctx context.Context, delta types.Stats) error
	GetStats(ctx context.Context, categoryID int64) (*types.Stats, error)
	TopCategories(ctx context.Context, limit int) ([]types.Stats, error)
}

// AnalyticsService - интерфейс сервиса аналитики.
type AnalyticsService interface {
	ProcessEvent(ctx context.Context, event kafka.Event) error
	GetStats(ctx context.Context, categoryID int64) (*types.Stats, error)
	TopCategories(ctx context.Context, limit int) ([]types.Stats, error)
}
