package ad

// CreateAd - форма для создания объявления
type CreateAd struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published"`
	AuthorID    int64  `json:"author_id"`
	CategoryID  int64  `json:"category_id"`
}

// UpdateAd - форма для изменения объявления, nil означает "поле не передано"
type UpdateAd struct {
	Name        *string `json:"name"`
	Price       *int64  `json:"price"`
	Description *string `json:"description"`
	IsPublished *bool   `json:"is_published"`
	CategoryID  *int64  `json:"category_id"`
}

// IsEmpty сообщает, что в форме нет ни одного поля
func (u UpdateAd) IsEmpty() bool {
	return u.Name == nil && u.Price == nil && u.Description == nil &&
		u.IsPublished == nil && u.CategoryID == nil
}

// Filter - условия выборки списка объявлений.
// Все условия объединяются через AND, CategoryIDs - через OR между собой.
type Filter struct {
	CategoryIDs []int64
	Text        string
	Location    string
	PriceFrom   *int64
	PriceTo     *int64
	Limit       int
	Offset      int
}
