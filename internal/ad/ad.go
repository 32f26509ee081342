package ad

import (
	"context"

	types "adboard/internal/types/ad"
)

// Ad - объявление в том виде, в котором его отдают клиенту:
// вместе с именем автора и названием категории
type Ad struct {
	ID          int64   `json:"id"`
	AuthorID    int64   `json:"author_id"`
	Author      string  `json:"author"`
	Name        string  `json:"name"`
	Price       int64   `json:"price"`
	Description string  `json:"description"`
	IsPublished bool    `json:"is_published"`
	Image       *string `json:"image"`
	CategoryID  int64   `json:"category_id"`
	Category    string  `json:"category"`
}

// AdRepo - репозиторий объявлений
//
//go:generate mockgen -source=ad.go -destination=../mocks/mock_ad_repo.go -package=mocks
type AdRepo interface {
	// List возвращает страницу объявлений по фильтру и общее число подходящих записей
	List(ctx context.Context, f types.Filter) ([]Ad, int, error)
	GetByID(ctx context.Context, id int64) (*Ad, error)
	// Create проверяет автора и категорию и создает объявление в одной транзакции
	Create(ctx context.Context, a types.CreateAd) (*Ad, error)
	// Update меняет только переданные поля и сбрасывает признак индексации
	Update(ctx context.Context, id int64, u types.UpdateAd) (*Ad, error)
	SetImage(ctx context.Context, id int64, imageURL string) (*Ad, error)
	Delete(ctx context.Context, id int64) error
}
