package models

import "gorm.io/gorm"

// FoodNutrients is the nutrient panel of one serving of a catalog food.
// All values are per ServingSize of ServingUnit.
type FoodNutrients struct {
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fat          float64 `json:"fat"`
	Fiber        float64 `json:"fiber"`
	Sugar        float64 `json:"sugar"`
	Sodium       float64 `json:"sodium"`
	SaturatedFat float64 `json:"saturated_fat"`
	TransFat     float64 `json:"trans_fat"`
	Cholesterol  float64 `json:"cholesterol"`
	Potassium    float64 `json:"potassium"`
	Calcium      float64 `json:"calcium"`
	Iron         float64 `json:"iron"`
	VitaminA     float64 `json:"vitamin_a"`
	VitaminC     float64 `json:"vitamin_c"`
	VitaminD     float64 `json:"vitamin_d"`
	Zinc         float64 `json:"zinc"`
	Magnesium    float64 `json:"magnesium"`
	Caffeine     float64 `json:"caffeine"`
	WaterContent float64 `json:"water_content"`
}

// FoodItem is a canonical nutrition-per-serving catalog record.
// Read-mostly: the core never mutates it except for the usage counter.
type FoodItem struct {
	gorm.Model
	Name          string `gorm:"index;not null"`
	Brand         string
	Category      string
	ServingSize   float64 `gorm:"not null"` // e.g. 100
	ServingUnit   string  `gorm:"not null"` // e.g. "g"
	FoodNutrients `gorm:"embedded"`
	UsageCount    int64
	Verified      bool
}
