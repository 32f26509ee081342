package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

var (
	ErrDBInternal       = errors.New("database internal error")
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyExists    = errors.New("record already exists")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionIsExpired = errors.New("session is expired")
	ErrNoAuth           = errors.New("authorization required")
	ErrForbidden        = errors.New("you do not have permission to perform this action")

	ErrBadPassword      = errors.New("bad password")
	ErrPasswordTooLong  = errors.New("password must not exceed 72 bytes")
	ErrLocationNotFound = errors.New("location not found")
	ErrBadID       = errors.New("bad id")

	ErrAuthorNotFound   = errors.New("author not found")
	ErrCategoryNotFound = errors.New("category not found")

	ErrEmptyName       = errors.New("name must not be empty")
	ErrInvalidPrice    = errors.New("price must be a non-negative integer")
	ErrInvalidCategory = errors.New("category id must be an integer")
	ErrInvalidPage     = errors.New("page must be a positive integer")
	ErrMissingField    = errors.New("required field is missing")

	ErrMissingImage     = errors.New("image file is required")
	ErrImageTooLarge    = errors.New("image is too large")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrStorage          = errors.New("object storage error")

	ErrInvalidJSONPayload = errors.New("invalid JSON payload")
	ErrMissingQuery       = errors.New("missing query parameter")

	ErrIndexing = errors.New("indexing error")
	ErrSearch   = errors.New("search error")
)

type ErrorServer struct {
	Message string `json:"message"`
}

func (e *ErrorServer) Error() string {
	return e.Message
}

/*
NewErrorServer
Функция имеет возможность принимать "nil ошибку"
при получении nil наша функция понимает, что нам
просто надо отдать саксесс клиенту
*/
func NewErrorServer(err error) ErrorServer {
	if err == nil {
		return ErrorServer{
			Message: "success",
		}
	}

	return ErrorServer{
		Message: err.Error(),
	}
}

func SendErrorTo(w http.ResponseWriter, err error, statusCode int, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if errEncode := json.NewEncoder(w).Encode(NewErrorServer(err)); errEncode != nil {
		logger.Error(errEncode)
	}
}

// StatusCode подбирает HTTP-код для доменной ошибки,
// всё неизвестное считается внутренней ошибкой сервера
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrAuthorNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrLocationNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoAuth),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrSessionIsExpired),
		errors.Is(err, ErrBadPassword):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrBadID),
		errors.Is(err, ErrEmptyName),
		errors.Is(err, ErrInvalidPrice),
		errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrInvalidPage),
		errors.Is(err, ErrMissingField),
		errors.Is(err, ErrPasswordTooLong),
		errors.Is(err, ErrMissingImage),
		errors.Is(err, ErrInvalidJSONPayload),
		errors.Is(err, ErrMissingQuery):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// SendError отправляет ошибку с кодом из StatusCode
func SendError(w http.ResponseWriter, err error, logger *zap.SugaredLogger) {
	SendErrorTo(w, err, StatusCode(err), logger)
}
