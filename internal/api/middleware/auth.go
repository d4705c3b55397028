package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/heitorfr/barber-booking-service/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth простая аутентификация по заголовку X-User-ID.
// Подпись и проверку токена выполняет API-gateway перед этим сервисом,
// сюда приходит уже проверенный идентификатор пользователя
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, "cabeçalho X-User-ID ausente")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "cabeçalho X-User-ID inválido")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
