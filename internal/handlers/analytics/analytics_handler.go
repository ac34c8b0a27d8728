// internal/handlers/analytics/analytics_handler.go
package analytics

import (
	"net/http"
	"strconv"

	"journal-service/internal/middleware"
	"journal-service/internal/pkg/response"
	analyticsService "journal-service/internal/service/analytics"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService *analyticsService.AnalyticsService
}

func NewAnalyticsHandler(svc *analyticsService.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: svc}
}

func (h *AnalyticsHandler) MoodTrends(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	trends, err := h.analyticsService.MoodTrends(c.Request.Context(), userID, c.DefaultQuery("period", "30d"))
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"trends": trends})
}

func (h *AnalyticsHandler) WritingStats(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	stats, err := h.analyticsService.WritingStats(c.Request.Context(), userID)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, stats)
}

func (h *AnalyticsHandler) Streaks(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	streak, err := h.analyticsService.Streaks(c.Request.Context(), userID)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, streak)
}

func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	dashboard, err := h.analyticsService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dashboard)
}

func (h *AnalyticsHandler) WordCloud(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	words, err := h.analyticsService.WordCloud(c.Request.Context(), userID, limit)
	if err != nil {
		response.Err(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"words": words})
}
