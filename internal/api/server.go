package api

import (
	"context"

	"budget-backend/internal/app/config"
	"budget-backend/internal/app/dsn"
	"budget-backend/internal/app/handler"
	"budget-backend/internal/app/middleware"
	"budget-backend/internal/app/redis"
	"budget-backend/internal/app/repository"
	"budget-backend/internal/app/service"
	"budget-backend/internal/app/storage"
	"budget-backend/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StartServer инициализирует зависимости и запускает HTTP-сервер
func StartServer() {
	logrus.Info("Starting budget request server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("ошибка загрузки конфигурации: %v", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatalf("ошибка инициализации репозитория: %v", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logrus.Fatalf("ошибка подключения к Redis: %v", err)
	}
	defer redisClient.Close()

	// MinIO не критичен для основного сценария: при недоступности
	// хранилища заявки работают без вложений
	minioClient, err := storage.NewMinIOClient(
		cfg.Minio.Endpoint,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.Bucket,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		logrus.Warnf("MinIO недоступен, вложения отключены: %v", err)
		minioClient = nil
	}

	budgetService := service.NewBudgetRequestService(repo)
	authHandler := handler.NewAuthHandler(repo, redisClient, cfg)
	apiHandler := handler.NewAPIHandler(repo, budgetService, minioClient, authHandler)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	r := gin.Default()

	// CORS для фронтенда
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	app := pkg.NewApp(cfg, r, apiHandler, authMiddleware)
	app.RunApp()
}
