// controllers/progress_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/Kenneth14031129/NutriTrack-sub000/config"
	"github.com/Kenneth14031129/NutriTrack-sub000/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func queryGoalID(c *gin.Context) (uint, bool) {
	raw := c.Query("goal_id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid 'goal_id' query param"})
		return 0, false
	}
	return uint(id), true
}

func GetProgress(c *gin.Context) {
	userID := currentUserID(c)
	goalID, ok := queryGoalID(c)
	if !ok {
		return
	}
	day, err := queryDay(c, "date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	svc := services.NewProgressService(config.DB)
	progress, err := svc.GetOrCreate(c.Request.Context(), userID, goalID, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func AddActivity(c *gin.Context) {
	userID := currentUserID(c)
	goalID, ok := queryGoalID(c)
	if !ok {
		return
	}
	day, err := queryDay(c, "date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	var input services.ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewProgressService(config.DB)
	progress, err := svc.AddActivity(c.Request.Context(), userID, goalID, day, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, progress)
}

func RemoveActivity(c *gin.Context) {
	userID := currentUserID(c)

	activityUID, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}

	svc := services.NewProgressService(config.DB)
	progress, err := svc.RemoveActivity(c.Request.Context(), userID, activityUID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func UpdateProgressField(c *gin.Context) {
	userID := currentUserID(c)
	goalID, ok := queryGoalID(c)
	if !ok {
		return
	}
	day, err := queryDay(c, "date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	var req struct {
		Field     string  `json:"field"`
		Value     float64 `json:"value"`
		Operation string  `json:"operation"` // add|set|subtract
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewProgressService(config.DB)
	progress, err := svc.UpdateProgressField(c.Request.Context(), userID, goalID, day, req.Field, req.Value, req.Operation)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func UpdateCustomProgress(c *gin.Context) {
	userID := currentUserID(c)
	goalID, ok := queryGoalID(c)
	if !ok {
		return
	}
	day, err := queryDay(c, "date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	var req struct {
		Current float64 `json:"current"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewProgressService(config.DB)
	progress, err := svc.UpdateCustomProgress(c.Request.Context(), userID, goalID, day, c.Param("id"), req.Current)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}
