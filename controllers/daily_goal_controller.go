// controllers/daily_goal_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/Kenneth14031129/NutriTrack-sub000/config"
	"github.com/Kenneth14031129/NutriTrack-sub000/models"
	"github.com/Kenneth14031129/NutriTrack-sub000/services"

	"github.com/gin-gonic/gin"
)

func CreateGoal(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		Date               string                     `json:"date"` // YYYY-MM-DD, defaults to today
		Targets            models.GoalTargets         `json:"targets"`
		NutritionalTargets *models.NutritionalTargets `json:"nutritional_targets"`
		CustomGoals        []models.CustomGoal        `json:"custom_goals"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	day, err := parseDayOrToday(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	svc := services.NewGoalService(config.DB)
	goal, err := svc.Create(c.Request.Context(), userID, day, req.Targets, req.NutritionalTargets, req.CustomGoals)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func GetGoalByDate(c *gin.Context) {
	userID := currentUserID(c)

	day, err := queryDay(c, "date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	svc := services.NewGoalService(config.DB)
	goal, err := svc.GetByDate(c.Request.Context(), userID, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func UpdateGoal(c *gin.Context) {
	userID := currentUserID(c)
	goalID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	var req struct {
		Targets            *services.GoalTargetsPatch        `json:"targets"`
		NutritionalTargets *services.NutritionalTargetsPatch `json:"nutritional_targets"`
		CustomGoals        []models.CustomGoal               `json:"custom_goals"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewGoalService(config.DB)
	goal, err := svc.Update(c.Request.Context(), userID, uint(goalID), req.Targets, req.NutritionalTargets, req.CustomGoals)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func DeactivateGoal(c *gin.Context) {
	userID := currentUserID(c)
	goalID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	svc := services.NewGoalService(config.DB)
	if err := svc.Deactivate(c.Request.Context(), userID, uint(goalID)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func ListGoalsRange(c *gin.Context) {
	userID := currentUserID(c)

	from, err := queryDay(c, "from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'from' date. Use YYYY-MM-DD"})
		return
	}
	to, err := queryDay(c, "to")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'to' date. Use YYYY-MM-DD"})
		return
	}

	svc := services.NewGoalService(config.DB)
	goals, err := svc.ListRange(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}
