package category

// Stats - счетчики событий по категории, считает сервис аналитики
type Stats struct {
	CategoryID int64 `json:"category_id"`
	Views      int64 `json:"views"`
	Created    int64 `json:"created"`
	Deleted    int64 `json:"deleted"`
}
