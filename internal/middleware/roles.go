package middleware

import (
	"net/http"

	helpers "lumino/internal/utils/helpres"
)

// OnlyRole пускает дальше только запросы с нужной ролью в контексте.
// Валидный токен с другой ролью — это 403, а не 401.
func OnlyRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value := r.Context().Value(ContextRole)
			userRole, ok := value.(string)
			if !ok || userRole != role {
				helpers.Error(w, http.StatusForbidden, "Доступ запрещён")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
