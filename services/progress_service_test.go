package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Kenneth14031129/NutriTrack-sub000/models"

	"github.com/google/uuid"
)

func TestGetOrCreate(t *testing.T) {
	db := newTestDB(t)
	userID, goalID := seedUserAndGoal(t, db, testDay())
	svc := NewProgressService(db)
	ctx := context.Background()

	p, err := svc.GetOrCreate(ctx, userID, goalID, testDay())
	if err != nil {
		t.Fatalf("get-or-create: %v", err)
	}
	if p.Current != (models.ProgressCurrent{}) {
		t.Errorf("new progress should start at zero, got %+v", p.Current)
	}
	if h := p.Date.Hour(); h != 0 {
		t.Errorf("progress date not normalized, hour = %d", h)
	}

	// same key at a different time of day resolves to the same row
	again, err := svc.GetOrCreate(ctx, userID, goalID, testDay().Add(6*time.Hour))
	if err != nil {
		t.Fatalf("second get-or-create: %v", err)
	}
	if again.ID != p.ID {
		t.Fatalf("expected same progress row, got %d and %d", p.ID, again.ID)
	}
}

func TestAddActivity_RuleTable(t *testing.T) {
	db := newTestDB(t)
	userID, goalID := seedUserAndGoal(t, db, testDay())
	svc := NewProgressService(db)
	ctx := context.Background()

	p, err := svc.AddActivity(ctx, userID, goalID, testDay(), ActivityInput{
		ActivityType: models.ActivityFood,
		Description:  "grilled chicken",
		Value:        700,
		Unit:         "calories",
	})
	if err != nil {
		t.Fatalf("add food: %v", err)
	}
	if p.Current.Calories != 700 {
		t.Errorf("calories = %v, want 700", p.Current.Calories)
	}
	if p.Current.Meals != 1 {
		t.Errorf("meals = %v, want 1", p.Current.Meals)
	}

	p, err = svc.AddActivity(ctx, userID, goalID, testDay(), ActivityInput{
		ActivityType: models.ActivityWater,
		Value:        8,
		Unit:         "glasses",
	})
	if err != nil {
		t.Fatalf("add water: %v", err)
	}
	if p.Current.Water != 8 {
		t.Errorf("water = %v, want 8", p.Current.Water)
	}

	p, err = svc.AddActivity(ctx, userID, goalID, testDay(), ActivityInput{
		ActivityType: models.ActivityExercise,
		Value:        30,
		Unit:         "minutes",
		ExerciseType: "running",
		Metadata:     models.ActivityMetadata{CaloriesBurned: 250},
	})
	if err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	if p.Current.Exercise != 30 {
		t.Errorf("exercise = %v, want 30", p.Current.Exercise)
	}
	if p.Summary.CaloriesBurned != 250 {
		t.Errorf("caloriesBurned = %v, want 250", p.Summary.CaloriesBurned)
	}
	if p.Summary.CaloriesConsumed != 700 {
		t.Errorf("caloriesConsumed = %v, want 700", p.Summary.CaloriesConsumed)
	}
	if p.Summary.NetCalories != 450 {
		t.Errorf("netCalories = %v, want 450", p.Summary.NetCalories)
	}
	if p.Summary.TotalActivities != 3 {
		t.Errorf("totalActivities = %v, want 3", p.Summary.TotalActivities)
	}
}

func TestAddActivity_SleepAndManualAreLedgerOnly(t *testing.T) {
	db := newTestDB(t)
	userID, goalID := seedUserAndGoal(t, db, testDay())
	svc := NewProgressService(db)
	ctx := context.Background()

	for _, kind := range []string{models.ActivitySleep, models.ActivityManual} {
		p, err := svc.AddActivity(ctx, userID, goalID, testDay(), ActivityInput{
			ActivityType: kind,
			Value:        7,
		})
		if err != nil {
			t.Fatalf("add %s: %v", kind, err)
		}
		if p.Current != (models.ProgressCurrent{}) {
			t.Errorf("%s activity mutated current: %+v", kind, p.Current)
		}
	}

	p, err := svc.GetByDate(ctx, userID, goalID, testDay())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Summary.TotalActivities != 2 {
		t.Errorf("totalActivities = %v, want 2", p.Summary.TotalActivities)
	}
}

func TestAddActivity_Validation(t *testing.T) {
	db := newTestDB(t)
	userID, goalID := seedUserAndGoal(t, db, testDay())
	svc := NewProgressService(db)
	ctx := context.Background()

	tests := []struct {
		name  string
		input ActivityInput
	}{
		{"unknown type", ActivityInput{ActivityType: "swimming", Value: 1}},
		{"negative value", ActivityInput{ActivityType: models.ActivityWater, Value: -1}},
		{"nan value", ActivityInput{ActivityType: models.ActivityWater, Value: math.NaN()}},
		{"infinite value", ActivityInput{ActivityType: models.ActivityWater, Value: math.Inf(1)}},
		{"negative caloriesBurned", ActivityInput{
			ActivityType: models.ActivityExercise,
			Value:        10,
			Metadata:     models.ActivityMetadata{CaloriesBurned: -5},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddActivity(ctx, userID, goalID, testDay(), tc.input); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}

	// validation precedes mutation: nothing was appended
	var count int64
	db.Model(&models.Activity{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected inputs must not touch the ledger, found %d entries", count)
	}
}

func TestRemoveActivity_ReversalExactness(t *testing.T) {
	db := newTestDB(t)
	userID, goalID := seedUserAndGoal(t, db, testDay())
	svc := NewProgressService(db)
	ctx := context.Background()

	// establish a non-trivial baseline
	if _, err := svc.AddActivity(ctx, userID, goalID, testDay(), ActivityInput{
		ActivityType: models.ActivityFood, Value: 500,
	}); err != nil {
		t.Fatalf("baseline: %v", err)
	}
	before, err := svc.GetByDate(ctx, userID, goalID, testDay())
	if err != nil {
		t.Fatalf("get baseline: %v", err)
	}

	inputs := []ActivityInput{
		{ActivityType: models.ActivityFood, Value: 700, Metadata: models.ActivityMetadata{
			Nutrition: &models.NutritionTotals{Calories: 700, Protein: 40, Carbs: 60},
		}},
		{ActivityType: models.ActivityWater, Value: 3},
		{ActivityType: models.ActivityExercise, Value: 45, Metadata: models.ActivityMetadata{CaloriesBurned: 320}},
		{ActivityType: models.ActivitySleep, Value: 7},
	}
	for _, in := range inputs {
		p, err := svc.AddActivity(ctx, userID, goalID, testDay(), in)
		if err != nil {
			t.Fatalf("add %s: %v", in.ActivityType, err)
		}

		added, err := svc.GetByDate(ctx, userID, goalID, testDay())
		if err != nil {
			t.Fatalf("get after add: %v", err)
		}
		last := added.Activities[len(added.Activities)-1]

		p, err = svc.RemoveActivity(ctx, userID, last.UID)
		if err != nil {
			t.Fatalf("remove %s: %v", in.ActivityType, err)
		}
		if p.Current != before.Current {
			t.Errorf("%s: current not restored: got %+v, want %+v", in.ActivityType, p.Current, before.Current)
		}
		if p.Nutritional != before.Nutritional {
			t.Errorf("%s: nutritional not restored: got %+v, want %+v", in.ActivityType, p.Nutritional, before.Nutritional)
		}
		if p.Summary != before.Summary {
			t.Errorf("%s: summary not restored: got %+v, want %+v", in.ActivityType, p.Summary, before.Summary)
		}
	}
}

// Sub-cent metadata values must reverse exactly; rounding inside the
// mutation path would leave residue behind.
func TestRemoveActivity_SubCentReversal(t *testing.T) {
	db := newTestDB(t)
	userID, goalID := seedUserAndGoal(t, db, testDay())
	svc := NewProgressService(db)
	ctx := context.Background()

	p, err := svc.AddActivity(ctx, userID, goalID, testDay(), ActivityInput{
		ActivityType: models.ActivityExercise,
		Value:        5,
		Metadata: models.ActivityMetadata{
			CaloriesBurned: 0.005,
		},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if p.Summary.CaloriesBurned != 0.005 {
		t.Errorf("caloriesBurned = %v, want 0.005", p.Summary.CaloriesBurned)
	}

	full, err := svc.GetByDate(ctx, userID, goalID, testDay())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	p, err = svc.RemoveActivity(ctx, userID, full.Activities[0].UID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if p.Summary.CaloriesBurned != 0 {
		t.Fatalf("caloriesBurned = %v, want exactly 0 after removal", p.Summary.CaloriesBurned)
	}
}

func TestRemoveActivity_Unknown(t *testing.T) {
	db := newTestDB(t)
	userID, _ := seedUserAndGoal(t, db, testDay())
	svc := NewProgressService(db)

	if _, err := svc.RemoveActivity(context.Background(), userID, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// Ledger consistency: after an arbitrary add/remove sequence the accumulators
// equal the sum of the remaining entries' effects.
func TestLedgerConsistency(t *testing.T) {
	db := newTestDB(t)
	userID, goalID := seedUserAndGoal(t, db, testDay())
	svc := NewProgressService(db)
	ctx := context.Background()

	inputs := []ActivityInput{
		{ActivityType: models.ActivityFood, Value: 400},
		{ActivityType: models.ActivityFood, Value: 650},
		{ActivityType: models.ActivityWater, Value: 2},
		{ActivityType: models.ActivityWater, Value: 1},
		{ActivityType: models.ActivityExercise, Value: 20, Metadata: models.ActivityMetadata{CaloriesBurned: 150}},
		{ActivityType: models.ActivityManual, Value: 5},
	}
	for _, in := range inputs {
		if _, err := svc.AddActivity(ctx, userID, goalID, testDay(), in); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	p, err := svc.GetByDate(ctx, userID, goalID, testDay())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	// remove the second food entry and the first water entry
	for _, i := range []int{1, 2} {
		if _, err := svc.RemoveActivity(ctx, userID, p.Activities[i].UID); err != nil {
			t.Fatalf("remove: %v", err)
		}
	}

	p, err = svc.GetByDate(ctx, userID, goalID, testDay())
	if err != nil {
		t.Fatalf("get after removes: %v", err)
	}

	// recompute expectations from the surviving ledger
	var wantCalories, wantMeals, wantWater, wantExercise float64
	for _, a := range p.Activities {
		switch a.ActivityType {
		case models.ActivityFood:
			wantCalories += a.Value
			wantMeals++
		case models.ActivityWater:
			wantWater += a.Value
		case models.ActivityExercise:
			wantExercise += a.Value
		}
	}
	if p.Current.Calories != wantCalories {
		t.Errorf("calories = %v, want %v", p.Current.Calories, wantCalories)
	}
	if p.Current.Meals != wantMeals {
		t.Errorf("meals = %v, want %v", p.Current.Meals, wantMeals)
	}
	if p.Current.Water != wantWater {
		t.Errorf("water = %v, want %v", p.Current.Water, wantWater)
	}
	if p.Current.Exercise != wantExercise {
		t.Errorf("exercise = %v, want %v", p.Current.Exercise, wantExercise)
	}
	if p.Summary.TotalActivities != len(p.Activities) {
		t.Errorf("totalActivities = %d, want %d", p.Summary.TotalActivities, len(p.Activities))
	}
}

func TestUpdateProgressField(t *testing.T) {
	db := newTestDB(t)
	userID, goalID := seedUserAndGoal(t, db, testDay())
	svc := NewProgressService(db)
	ctx := context.Background()

	p, err := svc.UpdateProgressField(ctx, userID, goalID, testDay(), "sleep", 7.5, OpSet)
	if err != nil {
		t.Fatalf("set sleep: %v", err)
	}
	if p.Current.Sleep != 7.5 {
		t.Errorf("sleep = %v, want 7.5", p.Current.Sleep)
	}

	p, err = svc.UpdateProgressField(ctx, userID, goalID, testDay(), "steps", 4000, OpAdd)
	if err != nil {
		t.Fatalf("add steps: %v", err)
	}
	p, err = svc.UpdateProgressField(ctx, userID, goalID, testDay(), "steps", 1500, OpSubtract)
	if err != nil {
		t.Fatalf("subtract steps: %v", err)
	}
	if p.Current.Steps != 2500 {
		t.Errorf("steps = %v, want 2500", p.Current.Steps)
	}
}

func TestUpdateProgressField_FloorAndCap(t *testing.T) {
	db := newTestDB(t)
	userID, goalID := seedUserAndGoal(t, db, testDay())
	svc := NewProgressService(db)
	ctx := context.Background()

	// subtract below zero clamps at the floor
	p, err := svc.UpdateProgressField(ctx, userID, goalID, testDay(), "water", 5, OpSubtract)
	if err != nil {
		t.Fatalf("subtract: %v", err)
	}
	if p.Current.Water != 0 {
		t.Errorf("water = %v, want 0", p.Current.Water)
	}

	// set beyond the hard cap clamps at the cap
	p, err = svc.UpdateProgressField(ctx, userID, goalID, testDay(), "steps", 500000, OpSet)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if p.Current.Steps != 100000 {
		t.Errorf("steps = %v, want 100000", p.Current.Steps)
	}
}

func TestUpdateProgressField_Validation(t *testing.T) {
	db := newTestDB(t)
	userID, goalID := seedUserAndGoal(t, db, testDay())
	svc := NewProgressService(db)
	ctx := context.Background()

	cases := []struct {
		name  string
		field string
		value float64
		op    string
	}{
		{"unknown field", "mood", 1, OpAdd},
		{"unknown op", "water", 1, "multiply"},
		{"negative value", "water", -1, OpAdd},
		{"nan value", "water", math.NaN(), OpSet},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.UpdateProgressField(ctx, userID, goalID, testDay(), tc.field, tc.value, tc.op); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestUpdateCustomProgress(t *testing.T) {
	db := newTestDB(t)
	userID, _ := seedUserAndGoal(t, db, testDay())
	goalSvc := NewGoalService(db)
	ctx := context.Background()

	// second day so the seeded goal does not conflict
	day := testDay().AddDate(0, 0, 1)
	goal, err := goalSvc.Create(ctx, userID, day, testTargets(), nil, []models.CustomGoal{
		{ID: "cg-1", Name: "Meditate", Target: 10, Unit: "minutes"},
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	svc := NewProgressService(db)
	p, err := svc.UpdateCustomProgress(ctx, userID, goal.ID, day, "cg-1", 4)
	if err != nil {
		t.Fatalf("update custom: %v", err)
	}
	var entries []models.CustomProgressEntry
	if err := json.Unmarshal(p.CustomProgress, &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 1 || entries[0].Current != 4 || entries[0].IsCompleted {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	p, err = svc.UpdateCustomProgress(ctx, userID, goal.ID, day, "cg-1", 12)
	if err != nil {
		t.Fatalf("update custom again: %v", err)
	}
	entries = nil
	if err := json.Unmarshal(p.CustomProgress, &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 1 || !entries[0].IsCompleted {
		t.Fatalf("expected completed entry, got %+v", entries)
	}

	if _, err := svc.UpdateCustomProgress(ctx, userID, goal.ID, day, "missing", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown custom goal, got %v", err)
	}
}
