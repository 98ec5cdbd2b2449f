package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GoalTargets are the six canonical daily targets.
type GoalTargets struct {
	Calories float64 `json:"calories"` // kcal
	Water    float64 `json:"water"`    // glasses
	Meals    float64 `json:"meals"`    // count
	Exercise float64 `json:"exercise"` // minutes
	Sleep    float64 `json:"sleep"`    // hours
	Steps    float64 `json:"steps"`    // count
}

// NutritionalTargets are optional macro sub-targets.
type NutritionalTargets struct {
	Protein float64 `json:"protein"` // g
	Carbs   float64 `json:"carbs"`   // g
	Fat     float64 `json:"fat"`     // g
	Fiber   float64 `json:"fiber"`   // g
	Sugar   float64 `json:"sugar"`   // g
	Sodium  float64 `json:"sodium"`  // mg
}

// CustomGoal is one user-defined goal, stored as JSON on the DailyGoal row.
type CustomGoal struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Target      float64 `json:"target"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category"`
	IsCompleted bool    `json:"is_completed"`
}

// DailyGoal holds each user's targets for one calendar day.
// At most one active row exists per (user, day); deletion is a soft flip of
// IsActive so historical progress keeps a valid reference. Uniqueness is
// enforced by a partial index over active rows only (config.MigrateSchema),
// so a deactivated goal never blocks a new one for the same day.
type DailyGoal struct {
	gorm.Model
	UserID uint      `gorm:"index:idx_goal_user;not null"`
	Date   time.Time `gorm:"index;not null"` // start of day

	Targets            GoalTargets        `gorm:"embedded;embeddedPrefix:target_" json:"targets"`
	NutritionalTargets NutritionalTargets `gorm:"embedded;embeddedPrefix:nutri_target_" json:"nutritional_targets"`

	CustomGoals datatypes.JSON `json:"custom_goals"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
}
