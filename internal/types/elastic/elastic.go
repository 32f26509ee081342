package elastic

// ElasticDoc - структура документа объявления для хранения в ES
type ElasticDoc struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  int64  `json:"category_id,omitempty"`
	Price       int64  `json:"price"`
	IsPublished bool   `json:"is_published"`
}
