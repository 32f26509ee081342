package contextutil

import (
	"context"

	"adboard/internal/middleware"
)

// GetUserIDFromContext извлекает userID из контекста
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		return 0, false
	}
	return sess.UserID, true
}
