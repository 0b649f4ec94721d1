package main

import (
	"context"
	"errors"
	_ "lumino/docs"
	"lumino/internal/app"
	"lumino/internal/config"
	"lumino/internal/logger"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title          Lumino CMS API
// @version        1.0
// @description    Документация API Lumino (статьи, избранное, админские операции).

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	logger.InitLogger()
	defer logger.Log.Sync()

	if err != nil {
		logger.Log.Fatal("Ошибка загрузки конфига", zap.Error(err))
	}

	warnings, err := cfg.Validate()
	if err != nil {
		logger.Log.Fatal("Некорректный конфиг", zap.Error(err))
	}
	for _, warning := range warnings {
		logger.Log.Warn("Конфиг", zap.String("warning", warning))
	}

	logger.Log.Info("Подключение к БД", zap.String("dsn", cfg.GetDSNSafe()))

	router, pool, err := app.InitApp(cfg)
	if err != nil {
		logger.Log.Fatal("Ошибка инициализации приложения", zap.Error(err))
	}
	defer pool.Close()

	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Открытый CORS — только для разработки
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsMiddleware.Handler(router),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Log.Info("Сервер запущен", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Log.Info("Остановка сервера")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Ошибка остановки сервера", zap.Error(err))
	}
}
