package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=storage.go -destination=../mocks/mock_image_storage.go -package=mocks
type ImageStorage interface {
	// Upload кладет файл по ключу и возвращает публичный URL
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// imageExtensions - допустимые типы картинок и их расширения
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// IsAllowedImage проверяет content type, полученный из http.DetectContentType
func IsAllowedImage(contentType string) bool {
	_, ok := imageExtensions[baseType(contentType)]
	return ok
}

// ImageKey - ключ объекта картинки объявления: ads/{id}/{uuid}{ext}
func ImageKey(adID int64, contentType string) string {
	return fmt.Sprintf("ads/%d/%s%s", adID, uuid.New().String(), imageExtensions[baseType(contentType)])
}

func baseType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(strings.ToLower(contentType))
}
