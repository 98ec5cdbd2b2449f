package main

import (
	"os"

	"github.com/Kenneth14031129/NutriTrack-sub000/config"
	"github.com/Kenneth14031129/NutriTrack-sub000/routes"
)

func main() {
	config.InitDB()
	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
