package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/barberhub/booking-service/internal/api/handlers"
)

const msgUnauthorized = "требуется аутентификация"

// HeaderUserID заголовок с ID пользователя, проставляется вышестоящим gateway
const HeaderUserID = "X-User-ID"

type contextKey string

const userIDKey contextKey = "userID"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth извлекает ID пользователя из заголовка X-User-ID и кладёт его в контекст.
// Сервис доверяет заголовку: проверку учётных данных делает gateway
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(HeaderUserID)
			if raw == "" {
				logger.Warn("Auth: missing %s header for %s %s", HeaderUserID, r.Method, r.URL.Path)
				handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("Auth: invalid %s header %q for %s %s", HeaderUserID, raw, r.Method, r.URL.Path)
				handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID возвращает ID пользователя, положенный middleware Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
