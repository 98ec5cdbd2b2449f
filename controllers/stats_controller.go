// controllers/stats_controller.go
package controllers

import (
	"net/http"

	"github.com/Kenneth14031129/NutriTrack-sub000/config"
	"github.com/Kenneth14031129/NutriTrack-sub000/services"

	"github.com/gin-gonic/gin"
)

func GetDailyStats(c *gin.Context) {
	userID := currentUserID(c)
	day, err := queryDay(c, "date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	svc := services.NewStatsService(config.DB)
	stats, err := svc.DailyStats(c.Request.Context(), userID, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func GetWeeklyStats(c *gin.Context) {
	userID := currentUserID(c)
	weekStart, err := queryDay(c, "week_start")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week_start format. Use YYYY-MM-DD"})
		return
	}

	svc := services.NewStatsService(config.DB)
	stats, err := svc.WeeklyRollup(c.Request.Context(), userID, weekStart)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
