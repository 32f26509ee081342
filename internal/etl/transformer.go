package etl

import (
	"strings"
	"unicode/utf8"

	"adboard/internal/ad"
	"adboard/internal/types/elastic"

	"go.uber.org/zap"
)

// в индекс уходит только начало описания, полный текст живет в Postgres
const maxDescriptionRunes = 1000

type Transformer struct {
	Logger *zap.SugaredLogger
}

func NewTransformer(logger *zap.SugaredLogger) *Transformer {
	return &Transformer{
		Logger: logger,
	}
}

// Transform переводит объявления в поисковые документы
func (t *Transformer) Transform(input []ad.Ad) []elastic.ElasticDoc {
	docs := make([]elastic.ElasticDoc, 0, len(input))
	for _, a := range input {
		docs = append(docs, ToDoc(a))
	}

	t.Logger.Debugf("Transformed %d ads", len(docs))

	return docs
}

// ToDoc - поисковый документ для одного объявления
func ToDoc(a ad.Ad) elastic.ElasticDoc {
	return elastic.ElasticDoc{
		ID:          a.ID,
		Name:        strings.TrimSpace(a.Name),
		Description: truncate(strings.TrimSpace(a.Description), maxDescriptionRunes),
		CategoryID:  a.CategoryID,
		Price:       a.Price,
		IsPublished: a.IsPublished,
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
