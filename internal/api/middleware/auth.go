package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/wipeandshine/scheduling-service/internal/api/handlers"
)

const (
	// HeaderUserID ID аутентифицированного пользователя, проставляется API gateway
	HeaderUserID = "X-User-ID"

	// HeaderUserRole роль пользователя ("admin" для сотрудников)
	HeaderUserRole = "X-User-Role"

	roleAdmin = "admin"
)

const (
	msgMissingUserID = "требуется заголовок X-User-ID"
	msgInvalidUserID = "некорректный заголовок X-User-ID"
	msgAdminOnly     = "доступно только администраторам"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	isAdminKey contextKey = "isAdmin"
)

// Auth извлекает идентификацию пользователя из заголовков и кладет её в контекст
// Запросы без X-User-ID отклоняются
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, isAdminKey, r.Header.Get(HeaderUserRole) == roleAdmin)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin пропускает только запросы с ролью администратора
// Должен стоять после Auth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID возвращает ID пользователя из контекста запроса
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// IsAdmin возвращает true, если запрос пришел от администратора
func IsAdmin(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(isAdminKey).(bool)
	return ok && isAdmin
}
