package category

import "context"

// Category - категория объявлений
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

//go:generate mockgen -source=category.go -destination=../mocks/mock_category_repo.go -package=mocks
type CategoryRepo interface {
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
}
