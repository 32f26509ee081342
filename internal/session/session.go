package session

import (
	"context"
	"net/http"
	"time"
)

// Session - структура сессии
type Session struct {
	ID        string
	UserID    int64
	Role      string
	StartTime time.Time
	EndTime   time.Time
}

// SessionRepo - репозиторий для работы с сессиями
//
//go:generate mockgen -source=session.go -destination=../mocks/mock_session_repo.go -package=mocks
type SessionRepo interface {
	// CreateSession - создает новую сессию для пользователя и кладет ее в Redis
	// Возвращает Session и подписанный JWT
	CreateSession(ctx context.Context, userID int64, role string) (*Session, string, error)
	// CheckSession - проверяет существование сессии в Redis и не истекла ли она
	// Возвращает *Session в случае успеха, иначе nil
	CheckSession(r *http.Request) (*Session, error)
	// ExtendSession - продлевает сессию на базовую длительность
	ExtendSession(ctx context.Context, sessionID string) error
	// DestroySession - удаляет сессию (logout)
	DestroySession(ctx context.Context, sessionID string) error
}
