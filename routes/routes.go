package routes

import (
	"os"
	"strings"
	"time"

	"github.com/Kenneth14031129/NutriTrack-sub000/controllers"
	"github.com/Kenneth14031129/NutriTrack-sub000/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		goals := api.Group("/goals")
		{
			goals.POST("", controllers.CreateGoal)
			goals.GET("", controllers.GetGoalByDate)
			goals.GET("/range", controllers.ListGoalsRange)
			goals.PATCH("/:id", controllers.UpdateGoal)
			goals.DELETE("/:id", controllers.DeactivateGoal)
		}

		progress := api.Group("/progress")
		{
			progress.GET("", controllers.GetProgress)
			progress.POST("/activities", controllers.AddActivity)
			progress.DELETE("/activities/:uid", controllers.RemoveActivity)
			progress.PATCH("/fields", controllers.UpdateProgressField)
			progress.PATCH("/custom/:id", controllers.UpdateCustomProgress)
		}

		meals := api.Group("/meals")
		{
			meals.POST("", controllers.CreateMeal)
			meals.GET("", controllers.ListMeals)
			meals.GET("/:uid", controllers.GetMeal)
			meals.PUT("/:uid/foods", controllers.SetMealFoods)
			meals.PATCH("/:uid/status", controllers.UpdateMealStatus)
			meals.POST("/:uid/duplicate", controllers.DuplicateMeal)
			meals.DELETE("/:uid", controllers.DeleteMeal)
		}

		stats := api.Group("/stats")
		{
			stats.GET("/daily", controllers.GetDailyStats)
			stats.GET("/weekly", controllers.GetWeeklyStats)
		}

		foods := api.Group("/foods")
		{
			foods.GET("/search", controllers.SearchFoods)
			foods.GET("/:id", controllers.GetFood)
			foods.POST("", controllers.CreateFood)
		}
	}

	return r
}
