package middleware

import (
	"context"
	"net/http"
	"strings"

	"lumino/internal/logger"
	"lumino/internal/reqctx"
	"lumino/internal/services"
	helpers "lumino/internal/utils/helpres"
)

// JWTAuth достаёт Bearer-токен из Authorization и проверяет его через AuthService.
// Отсутствие заголовка или чужая схема — отказ ещё до разбора токена.
func JWTAuth(auth *services.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		authHeader := r.Header.Get("Authorization")

		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			logger.WithCtx(r.Context()).Warn("JWTAuth: отсутствует или некорректен заголовок Authorization")
			helpers.Error(w, http.StatusUnauthorized, "Отсутствует токен")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := auth.VerifyToken(r.Context(), tokenString)
		if err != nil {
			helpers.Error(w, http.StatusUnauthorized, "Неверный или просроченный токен")
			return
		}

		ctx := context.WithValue(r.Context(), ContextSubject, claims.Subject)
		ctx = context.WithValue(ctx, ContextRole, claims.Role)
		ctx = reqctx.WithSubject(ctx, claims.Subject)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
