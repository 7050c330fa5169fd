package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"momo-analysis/internal/logger"
)

// CORSMiddleware возвращает middleware для обработки CORS
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SetupCommonEndpoints добавляет общие endpoints (health, лента событий и ее статистика) к роутеру
func SetupCommonEndpoints(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/api/v1/events", func(c *gin.Context) {
		limit := 100
		if limitStr := c.Query("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 500 {
				limit = parsed
			}
		}
		events := logger.GetEvents(limit)
		c.JSON(http.StatusOK, gin.H{"events": events})
	})

	// /api/v1/stats занят статистикой транзакций
	router.GET("/api/v1/stats/events", func(c *gin.Context) {
		c.JSON(http.StatusOK, logger.GetStats())
	})
}

// RegisterRoutes регистрирует маршруты ingestion API в группе /api/v1
func RegisterRoutes(api *gin.RouterGroup, handlers *Handlers) {
	api.POST("/import", handlers.ImportMessages)
	api.POST("/upload", handlers.UploadFile)
	api.POST("/classify", handlers.Classify)

	api.GET("/transactions", handlers.ListTransactions)
	api.GET("/transactions/:id", handlers.GetTransaction)
	api.DELETE("/transactions", handlers.ClearAllTransactions)

	api.GET("/stats", handlers.GetStats)
	api.GET("/types", handlers.ListTypes)
	api.GET("/errors", handlers.ListErrors)
	api.GET("/import-history", handlers.ListImportHistory)
	api.GET("/messages/generate", handlers.GenerateMessages)
}

// SetupRouter настраивает маршруты REST API
func SetupRouter(handlers *Handlers) *gin.Engine {
	router := gin.New()

	router.Use(CORSMiddleware())
	router.Use(gin.Logger(), gin.Recovery())

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	RegisterRoutes(router.Group("/api/v1"), handlers)

	// Общие endpoints (health, events)
	SetupCommonEndpoints(router)

	return router
}
