package services

import (
	"math"

	"github.com/Kenneth14031129/NutriTrack-sub000/models"
)

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// ScaleNutrition converts a food's per-serving panel into the panel for an
// arbitrary amount. The unit is deliberately not converted: g and ml are
// assumed 1:1 density and any other mismatch scales as if the units matched,
// a known approximation inherited from existing logged data. Do not extend
// this into a unit table. Every nutrient is rounded to 2 decimal places.
func ScaleNutrition(food *models.FoodItem, amount float64, unit string) models.FoodNutrients {
	if food == nil || food.ServingSize <= 0 {
		return models.FoodNutrients{}
	}
	factor := amount / food.ServingSize
	n := food.FoodNutrients
	return models.FoodNutrients{
		Calories:     round2(n.Calories * factor),
		Protein:      round2(n.Protein * factor),
		Carbs:        round2(n.Carbs * factor),
		Fat:          round2(n.Fat * factor),
		Fiber:        round2(n.Fiber * factor),
		Sugar:        round2(n.Sugar * factor),
		Sodium:       round2(n.Sodium * factor),
		SaturatedFat: round2(n.SaturatedFat * factor),
		TransFat:     round2(n.TransFat * factor),
		Cholesterol:  round2(n.Cholesterol * factor),
		Potassium:    round2(n.Potassium * factor),
		Calcium:      round2(n.Calcium * factor),
		Iron:         round2(n.Iron * factor),
		VitaminA:     round2(n.VitaminA * factor),
		VitaminC:     round2(n.VitaminC * factor),
		VitaminD:     round2(n.VitaminD * factor),
		Zinc:         round2(n.Zinc * factor),
		Magnesium:    round2(n.Magnesium * factor),
		Caffeine:     round2(n.Caffeine * factor),
		WaterContent: round2(n.WaterContent * factor),
	}
}

// SumFoodEntries adds up a meal's food entries into the seven-field total
// panel. Entries with zero sub-fields contribute 0.
func SumFoodEntries(entries []models.MealFood) models.NutritionTotals {
	var t models.NutritionTotals
	for _, e := range entries {
		t.Calories += e.Calories
		t.Protein += e.Nutrition.Protein
		t.Carbs += e.Nutrition.Carbs
		t.Fat += e.Nutrition.Fat
		t.Fiber += e.Nutrition.Fiber
		t.Sugar += e.Nutrition.Sugar
		t.Sodium += e.Nutrition.Sodium
	}
	t.Calories = round2(t.Calories)
	t.Protein = round2(t.Protein)
	t.Carbs = round2(t.Carbs)
	t.Fat = round2(t.Fat)
	t.Fiber = round2(t.Fiber)
	t.Sugar = round2(t.Sugar)
	t.Sodium = round2(t.Sodium)
	return t
}
