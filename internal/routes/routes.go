package routes

import (
	"lumino/internal/handlers"
	"lumino/internal/middleware"
	"lumino/internal/services"
	"net/http"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	articleH *handlers.ArticleHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging)
	router.Use(middleware.Recoverer)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	// featured и latest регистрируем раньше {slug}, иначе mux сматчит их как slug
	api.HandleFunc("/articles/featured", articleH.GetFeatured).Methods("GET")
	api.HandleFunc("/articles/latest", articleH.GetLatest).Methods("GET")
	api.HandleFunc("/articles", articleH.List).Methods("GET")
	api.HandleFunc("/articles/{slug}", articleH.GetBySlug).Methods("GET")

	// Выдача токена — dev-заглушка, без аутентификации
	api.HandleFunc("/admin/token", authHandler.AdminToken).Methods("GET")

	// --- Защищённые JWT + роль admin ---
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(func(next http.Handler) http.Handler {
		return middleware.JWTAuth(authService, next)
	})
	admin.Use(middleware.OnlyRole("admin"))
	admin.HandleFunc("/articles", articleH.Create).Methods("POST")
	admin.HandleFunc("/articles/{id:[0-9]+}", articleH.Update).Methods("PUT")
	admin.HandleFunc("/articles/{id:[0-9]+}", articleH.Delete).Methods("DELETE")
}
