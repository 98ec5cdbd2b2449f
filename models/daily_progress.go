package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressCurrent mirrors the six goal targets as daily accumulators.
// Each value is a derived cache of the activity ledger; it is only ever
// written through the progress service's mutators.
type ProgressCurrent struct {
	Calories float64 `json:"calories"`
	Water    float64 `json:"water"`
	Meals    float64 `json:"meals"`
	Exercise float64 `json:"exercise"`
	Sleep    float64 `json:"sleep"`
	Steps    float64 `json:"steps"`
}

// NutritionalProgress mirrors NutritionalTargets as accumulators.
type NutritionalProgress struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
	Fiber   float64 `json:"fiber"`
	Sugar   float64 `json:"sugar"`
	Sodium  float64 `json:"sodium"`
}

// ProgressSummary holds the derived roll-up fields, recomputed on every persist.
type ProgressSummary struct {
	CaloriesConsumed float64 `json:"calories_consumed"`
	CaloriesBurned   float64 `json:"calories_burned"`
	NetCalories      float64 `json:"net_calories"`
	TotalActivities  int     `json:"total_activities"`
	CompletedGoals   int     `json:"completed_goals"`
}

// CustomProgressEntry mirrors one CustomGoal, stored as JSON.
type CustomProgressEntry struct {
	GoalID      string  `json:"goal_id"`
	Current     float64 `json:"current"`
	IsCompleted bool    `json:"is_completed"`
}

// DailyProgress is the per-(user, goal, day) aggregate. The Activities ledger
// is the source of truth; Current and Summary are caches kept consistent with
// it by the progress service.
type DailyProgress struct {
	gorm.Model
	UserID uint      `gorm:"uniqueIndex:idx_progress_key;not null"`
	GoalID uint      `gorm:"uniqueIndex:idx_progress_key;not null"`
	Date   time.Time `gorm:"uniqueIndex:idx_progress_key;not null"` // start of day

	Current     ProgressCurrent     `gorm:"embedded;embeddedPrefix:current_" json:"current"`
	Nutritional NutritionalProgress `gorm:"embedded;embeddedPrefix:nutri_" json:"nutritional"`
	Summary     ProgressSummary     `gorm:"embedded;embeddedPrefix:summary_" json:"summary"`

	CustomProgress datatypes.JSON `json:"custom_progress"`

	Activities []Activity `gorm:"foreignKey:ProgressID;constraint:OnDelete:CASCADE" json:"activities"`
}
