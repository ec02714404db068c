package app

import (
	"database/sql"
	"fmt"
	"log"

	"taskmanager/internal/config"
	"taskmanager/internal/handlers"
	"taskmanager/internal/repositories"
	"taskmanager/internal/routes"
	"taskmanager/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "taskmanager/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === Store ===
	var taskRepo repositories.TaskRepository
	if cfg.Database.DSN != "" {
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Fatal("failed to open database: ", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Printf("[app] failed to close database: %v", err)
			}
		}()
		if err := db.Ping(); err != nil {
			log.Fatal("failed to reach database: ", err)
		}
		taskRepo = repositories.NewTaskRepository(db)
		log.Printf("[app] using postgres store")
	} else {
		taskRepo = repositories.NewMemoryTaskRepository()
		log.Printf("[app] no database configured, using in-memory store")
	}

	// === Services ===
	taskService := services.NewTaskService(taskRepo)

	// === Handlers ===
	taskHandler := handlers.NewTaskHandler(taskService)
	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, taskHandler, healthHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[app] %s v%s listening on %s", cfg.App.Name, cfg.App.Version, listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server stopped: ", err)
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
