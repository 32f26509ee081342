package middleware

import (
	"context"
	"net/http"
	"time"

	"adboard/internal/session"
	myErr "adboard/internal/types/errors"

	"go.uber.org/zap"
)

type SessKey string

var sessKey SessKey = "sessionKey"

// Auth пропускает запрос дальше только с живой сессией.
// Если до конца сессии осталось меньше extendWithin, она продлевается.
func Auth(sm session.SessionRepo, extendWithin time.Duration, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Проверка сессии пользователя
			sess, err := sm.CheckSession(r)
			if err != nil {
				if myErr.StatusCode(err) == http.StatusInternalServerError {
					logger.Errorf("failed to check session: %v", err)
				}
				myErr.SendError(w, err, logger)
				return
			}

			if time.Until(sess.EndTime) < extendWithin {
				if err := sm.ExtendSession(r.Context(), sess.ID); err != nil {
					logger.Warnf("failed to extend session %s: %v", sess.ID, err)
				}
			}

			// Добавляем сессию в контекст и передаем дальше
			ctx := ContextWithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth для публичных ручек: если пришел живой токен, кладет сессию в контекст,
// иначе пропускает запрос анонимным
func OptionalAuth(sm session.SessionRepo, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := sm.CheckSession(r)
			if err != nil {
				if myErr.StatusCode(err) == http.StatusInternalServerError {
					logger.Warnf("failed to check optional session: %v", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), sess)))
		})
	}
}

func ContextWithSession(ctx context.Context, s *session.Session) context.Context {
	// создаем новый контекст с нашим ключом и сессией
	return context.WithValue(ctx, sessKey, s)
}

// GetSessionFromContext достает сессию, положенную Auth
func GetSessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessKey).(*session.Session)
	return sess, ok && sess != nil
}
