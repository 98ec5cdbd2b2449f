package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity types understood by the accumulation rule table.
const (
	ActivityFood     = "food"
	ActivityWater    = "water"
	ActivityExercise = "exercise"
	ActivitySleep    = "sleep"
	ActivityManual   = "manual"
)

// ActivityMetadata is the JSON payload carried by a ledger entry.
type ActivityMetadata struct {
	CaloriesBurned float64          `json:"caloriesBurned,omitempty"`
	MealUID        string           `json:"mealId,omitempty"`
	Nutrition      *NutritionTotals `json:"nutrition,omitempty"`
}

// Activity is one append-only ledger entry under a DailyProgress row.
type Activity struct {
	gorm.Model
	UID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"uid"`
	ProgressID uint      `gorm:"index;not null" json:"-"`

	ActivityType string    `gorm:"index;not null" json:"activity_type"`
	Description  string    `json:"description"`
	Value        float64   `json:"value"`
	Unit         string    `json:"unit"`
	RecordedAt   time.Time `gorm:"not null" json:"recorded_at"`

	FoodID       *uint          `json:"food_id,omitempty"`
	ExerciseType string         `json:"exercise_type,omitempty"`
	Metadata     datatypes.JSON `json:"metadata,omitempty"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.UID == uuid.Nil {
		a.UID = uuid.New()
	}
	return nil
}
