package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal lifecycle statuses. Consumed and skipped are terminal.
const (
	MealPlanned  = "planned"
	MealPrepared = "prepared"
	MealConsumed = "consumed"
	MealSkipped  = "skipped"
)

// NutritionTotals is the seven-field total panel (calories + six macros)
// derived from a meal's food entries.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

// EntryNutrition is the macro panel of one food entry.
type EntryNutrition struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
	Fiber   float64 `json:"fiber"`
	Sugar   float64 `json:"sugar"`
	Sodium  float64 `json:"sodium"`
}

// Meal is a named collection of food entries with derived totals and a
// consumption lifecycle. Totals are rewritten whenever Foods changes and are
// never edited directly.
type Meal struct {
	gorm.Model
	UID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"uid"`
	UserID uint      `gorm:"index;not null" json:"-"`

	Name   string    `gorm:"not null" json:"name"`
	Type   string    `json:"type"` // breakfast|lunch|dinner|snack
	Date   time.Time `gorm:"index;not null" json:"date"`
	Status string    `gorm:"default:planned;index" json:"status"`

	ConsumedAt *time.Time `json:"consumed_at,omitempty"` // set once, on entering consumed
	Notes      string     `json:"notes,omitempty"`

	Totals NutritionTotals `gorm:"embedded;embeddedPrefix:total_" json:"total_nutrition"`
	Foods  []MealFood      `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"foods"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.UID == uuid.Nil {
		m.UID = uuid.New()
	}
	return nil
}

// MealFood is one food entry of a meal, a nutrition snapshot taken at the
// time the entry was added (catalog edits never rewrite logged meals).
type MealFood struct {
	gorm.Model
	MealID uint `gorm:"index;not null" json:"-"`

	FoodID   *uint   `json:"food_id,omitempty"` // catalog reference, if any
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`

	Calories  float64        `json:"calories"`
	Nutrition EntryNutrition `gorm:"embedded;embeddedPrefix:nutrition_" json:"nutrition"`
}
