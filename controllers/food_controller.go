// controllers/food_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/Kenneth14031129/NutriTrack-sub000/config"
	"github.com/Kenneth14031129/NutriTrack-sub000/models"
	"github.com/Kenneth14031129/NutriTrack-sub000/services"

	"github.com/gin-gonic/gin"
)

func GetFood(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}

	svc := services.NewFoodService(config.DB)
	food, err := svc.GetFoodByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func SearchFoods(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'q' query param"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	svc := services.NewFoodService(config.DB)
	foods, err := svc.Search(c.Request.Context(), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

func CreateFood(c *gin.Context) {
	var food models.FoodItem
	if err := c.ShouldBindJSON(&food); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewFoodService(config.DB)
	if err := svc.CreateFood(c.Request.Context(), &food); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}
