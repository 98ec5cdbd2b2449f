package services

import (
	"testing"
	"time"

	"github.com/Kenneth14031129/NutriTrack-sub000/config"
	"github.com/Kenneth14031129/NutriTrack-sub000/models"
	"github.com/Kenneth14031129/NutriTrack-sub000/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the production schema.
// Single connection: each in-memory sqlite connection is its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.MigrateSchema(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func testTargets() models.GoalTargets {
	return models.GoalTargets{
		Calories: 2000,
		Water:    8,
		Meals:    3,
		Exercise: 30,
		Sleep:    8,
		Steps:    10000,
	}
}

// seedUserAndGoal creates a user with an active goal for the given day and
// returns both ids.
func seedUserAndGoal(t *testing.T, db *gorm.DB, day time.Time) (uint, uint) {
	t.Helper()

	user := models.User{Email: "tester@example.com", FullName: "Test User"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	goal := models.DailyGoal{
		UserID:   user.ID,
		Date:     utils.StartOfDay(day),
		Targets:  testTargets(),
		IsActive: true,
	}
	if err := db.Create(&goal).Error; err != nil {
		t.Fatalf("seed goal: %v", err)
	}
	return user.ID, goal.ID
}

func testDay() time.Time {
	return time.Date(2024, time.March, 15, 13, 45, 12, 0, time.Local)
}
