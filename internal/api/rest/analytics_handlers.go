package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"momo-analysis/internal/services"
)

// AnalyticsHandlers обработчики analytics-service
type AnalyticsHandlers struct {
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandlers(analyticsService services.AnalyticsService) *AnalyticsHandlers {
	return &AnalyticsHandlers{analyticsService: analyticsService}
}

// GetAnalytics возвращает счетчики аналитики
// @Summary Счетчики аналитики
// @Description Количество транзакций по категориям, объем по месяцам и количество за сегодня. Обновляются по событиям из Kafka.
// @Tags analytics
// @Produce json
// @Success 200 {object} models.AnalyticsSnapshot "Счетчики"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /analytics [get]
func (h *AnalyticsHandlers) GetAnalytics(c *gin.Context) {
	snapshot, err := h.analyticsService.Snapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analytics"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// SetupAnalyticsRouter настраивает маршруты analytics-service
func SetupAnalyticsRouter(handlers *AnalyticsHandlers) *gin.Engine {
	router := gin.New()

	router.Use(CORSMiddleware())
	router.Use(gin.Logger(), gin.Recovery())

	api := router.Group("/api/v1")
	{
		api.GET("/analytics", handlers.GetAnalytics)
	}

	SetupCommonEndpoints(router)

	return router
}
