// controllers/meal_controller.go
package controllers

import (
	"net/http"

	"github.com/Kenneth14031129/NutriTrack-sub000/config"
	"github.com/Kenneth14031129/NutriTrack-sub000/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newMealService() *services.MealService {
	foodSvc := services.NewFoodService(config.DB)
	progressSvc := services.NewProgressService(config.DB)
	goalSvc := services.NewGoalService(config.DB)
	return services.NewMealService(config.DB, foodSvc, progressSvc, goalSvc)
}

func mealUIDParam(c *gin.Context) (uuid.UUID, bool) {
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return uuid.Nil, false
	}
	return uid, true
}

func CreateMeal(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		Name  string                    `json:"name"`
		Type  string                    `json:"type"`
		Date  string                    `json:"date"` // YYYY-MM-DD, defaults to today
		Foods []services.FoodEntryInput `json:"foods"`
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

	meal, err := newMealService().CreateMeal(c.Request.Context(), userID, req.Name, req.Type, day, req.Foods)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func GetMeal(c *gin.Context) {
	userID := currentUserID(c)
	uid, ok := mealUIDParam(c)
	if !ok {
		return
	}

	meal, err := newMealService().GetMeal(c.Request.Context(), userID, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func ListMeals(c *gin.Context) {
	userID := currentUserID(c)
	day, err := queryDay(c, "date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	meals, err := newMealService().ListMealsByDate(c.Request.Context(), userID, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func SetMealFoods(c *gin.Context) {
	userID := currentUserID(c)
	uid, ok := mealUIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Foods []services.FoodEntryInput `json:"foods"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := newMealService().SetFoods(c.Request.Context(), userID, uid, req.Foods)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func UpdateMealStatus(c *gin.Context) {
	userID := currentUserID(c)
	uid, ok := mealUIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := newMealService().UpdateStatus(c.Request.Context(), userID, uid, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func DuplicateMeal(c *gin.Context) {
	userID := currentUserID(c)
	uid, ok := mealUIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Date string `json:"date"` // YYYY-MM-DD, defaults to today
		Type string `json:"type"` // optional new meal type
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

	meal, err := newMealService().DuplicateForDate(c.Request.Context(), userID, uid, day, req.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func DeleteMeal(c *gin.Context) {
	userID := currentUserID(c)
	uid, ok := mealUIDParam(c)
	if !ok {
		return
	}

	if err := newMealService().DeleteMeal(c.Request.Context(), userID, uid); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
