package app

import (
	"fmt"
	"log"

	"devflow/internal/config"
	"devflow/internal/db"
	"devflow/internal/handlers"
	"devflow/internal/pdf"
	"devflow/internal/repositories"
	"devflow/internal/routes"
	"devflow/internal/services"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"

	_ "devflow/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if cfg.Database.SeedDemoData {
		if err := db.Seed(database); err != nil {
			log.Fatal("Failed to seed demo data: ", err)
		}
	}

	// === Repos ===
	developerRepo := repositories.NewDeveloperRepository(database)
	taskRepo := repositories.NewTaskRepository(database)
	historyRepo := repositories.NewHistoryRepository(database)
	analyticsRepo := repositories.NewAnalyticsRepository(database)

	// === Services ===
	var notifier *services.TelegramService
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		notifier = services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	}

	developerService := services.NewDeveloperService(developerRepo, taskRepo, analyticsRepo)
	taskService := services.NewTaskService(taskRepo, historyRepo, developerRepo, notifier)
	analyticsService := services.NewAnalyticsService(analyticsRepo)

	pdfGen := pdf.NewReportGenerator()
	reportService := services.NewReportService(analyticsService, pdfGen)

	// === Handlers ===
	developerHandler := handlers.NewDeveloperHandler(developerService)
	taskHandler := handlers.NewTaskHandler(taskService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, reportService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		developerHandler,
		taskHandler,
		analyticsHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("DevFlow API listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
