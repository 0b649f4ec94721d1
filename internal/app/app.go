package app

import (
	"context"
	"lumino/internal/config"
	"lumino/internal/db"
	"lumino/internal/handlers"
	"lumino/internal/repository"
	"lumino/internal/routes"
	"lumino/internal/services"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

func InitApp(cfg *config.Config) (*mux.Router, *pgxpool.Pool, error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := db.EnsureSchema(context.Background(), conn); err != nil {
		conn.Close()
		return nil, nil, err
	}

	// Репозитории
	articleRepo := repository.NewArticleRepo(conn)

	// Сервисы
	authService := services.NewAuthService(cfg.JWTSecret, cfg.GetTokenTTL())
	articleSvc := services.NewArticleService(articleRepo)

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService)
	articleH := handlers.NewArticleHandler(articleSvc)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, authService, authHandler, articleH)

	return router, conn, nil
}
