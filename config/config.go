package config

import (
	"fmt"
	"log"
	"os"

	"github.com/Kenneth14031129/NutriTrack-sub000/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := MigrateSchema(DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

// MigrateSchema runs AutoMigrate for every model and the raw index migrations
// AutoMigrate cannot express. Shared with the test database setup.
func MigrateSchema(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.FoodItem{},
		&models.DailyGoal{},
		&models.DailyProgress{},
		&models.Activity{},
		&models.Meal{},
		&models.MealFood{},
	)
	if err != nil {
		return err
	}

	// One active goal per (user, day). The index is partial: deactivated rows
	// stay behind as history and must not block a new active goal.
	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_goal_user_date_active ON daily_goals (user_id, date) WHERE is_active",
	).Error
}
