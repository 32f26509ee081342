package middleware

import (
	"fmt"
	"net/http"
	"time"

	myErr "adboard/internal/types/errors"

	"go.uber.org/zap"
)

func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		next.ServeHTTP(w, r)
	})
}

// RecoverPanic превращает панику в хендлере в 500 и пишет ее в лог
func RecoverPanic(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Errorw("panic while serving request",
						"method", r.Method,
						"url", r.URL.RequestURI(),
						"panic", fmt.Sprint(rec),
					)
					w.Header().Set("Connection", "close")
					myErr.SendErrorTo(w, fmt.Errorf("internal server error"), http.StatusInternalServerError, logger)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func LogRequest(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Infow("request",
				"remote_addr", r.RemoteAddr,
				"method", r.Method,
				"url", r.URL.RequestURI(),
				"took", time.Since(start),
			)
		})
	}
}
