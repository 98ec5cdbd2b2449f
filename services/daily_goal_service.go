package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Kenneth14031129/NutriTrack-sub000/models"
	"github.com/Kenneth14031129/NutriTrack-sub000/utils"

	"gorm.io/gorm"
)

type targetBounds struct{ min, max float64 }

// Valid ranges for the six canonical targets, enforced at create time and,
// field-by-field, on update.
var canonicalBounds = map[string]targetBounds{
	"calories": {800, 5000},
	"water":    {1, 20},
	"meals":    {1, 10},
	"exercise": {10, 300},
	"sleep":    {4, 12},
	"steps":    {1000, 50000},
}

var nutritionalBounds = map[string]targetBounds{
	"protein": {10, 500},
	"carbs":   {20, 1000},
	"fat":     {10, 300},
	"fiber":   {5, 100},
	"sugar":   {0, 200},
	"sodium":  {500, 5000},
}

type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService { return &GoalService{db: db} }

// GoalTargetsPatch carries a partial update of the canonical targets; only
// non-nil fields change.
type GoalTargetsPatch struct {
	Calories *float64 `json:"calories"`
	Water    *float64 `json:"water"`
	Meals    *float64 `json:"meals"`
	Exercise *float64 `json:"exercise"`
	Sleep    *float64 `json:"sleep"`
	Steps    *float64 `json:"steps"`
}

// NutritionalTargetsPatch carries a partial update of the macro sub-targets.
type NutritionalTargetsPatch struct {
	Protein *float64 `json:"protein"`
	Carbs   *float64 `json:"carbs"`
	Fat     *float64 `json:"fat"`
	Fiber   *float64 `json:"fiber"`
	Sugar   *float64 `json:"sugar"`
	Sodium  *float64 `json:"sodium"`
}

func checkBound(field string, v float64, b targetBounds) error {
	if v < b.min || v > b.max {
		return fmt.Errorf("%w: %s must be between %g and %g, got %g", ErrInvalidArgument, field, b.min, b.max, v)
	}
	return nil
}

func validateTargets(t models.GoalTargets) error {
	checks := []struct {
		field string
		value float64
	}{
		{"calories", t.Calories},
		{"water", t.Water},
		{"meals", t.Meals},
		{"exercise", t.Exercise},
		{"sleep", t.Sleep},
		{"steps", t.Steps},
	}
	for _, c := range checks {
		if err := checkBound(c.field, c.value, canonicalBounds[c.field]); err != nil {
			return err
		}
	}
	return nil
}

// validateNutritionalTargets skips zero fields: the sub-targets are optional
// and a zero means "not set".
func validateNutritionalTargets(n models.NutritionalTargets) error {
	checks := []struct {
		field string
		value float64
	}{
		{"protein", n.Protein},
		{"carbs", n.Carbs},
		{"fat", n.Fat},
		{"fiber", n.Fiber},
		{"sugar", n.Sugar},
		{"sodium", n.Sodium},
	}
	for _, c := range checks {
		if c.value == 0 {
			continue
		}
		if err := checkBound(c.field, c.value, nutritionalBounds[c.field]); err != nil {
			return err
		}
	}
	return nil
}

// Create registers the goal for one (user, day). It fails with ErrConflict if
// an active goal already exists for that day; callers must use Update instead.
func (s *GoalService) Create(
	ctx context.Context,
	userID uint,
	day time.Time,
	targets models.GoalTargets,
	nutritional *models.NutritionalTargets,
	customGoals []models.CustomGoal,
) (*models.DailyGoal, error) {
	day = utils.StartOfDay(day)

	if err := validateTargets(targets); err != nil {
		return nil, err
	}
	goal := models.DailyGoal{
		UserID:   userID,
		Date:     day,
		Targets:  targets,
		IsActive: true,
	}
	if nutritional != nil {
		if err := validateNutritionalTargets(*nutritional); err != nil {
			return nil, err
		}
		goal.NutritionalTargets = *nutritional
	}
	if customGoals != nil {
		raw, err := json.Marshal(customGoals)
		if err != nil {
			return nil, fmt.Errorf("%w: custom goals: %v", ErrInvalidArgument, err)
		}
		goal.CustomGoals = raw
	}

	var existing models.DailyGoal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND is_active = ?", userID, day, true).
		First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: active goal already exists for %s", ErrConflict, utils.DayKey(day))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// The partial unique index on active (user_id, date) rows is the backstop
	// for concurrent creates.
	if err := s.db.WithContext(ctx).Create(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// Update shallow-merges the provided target fields and, when given, replaces
// the custom goal list wholesale. Only the fields being changed are re-validated.
func (s *GoalService) Update(
	ctx context.Context,
	userID, goalID uint,
	targets *GoalTargetsPatch,
	nutritional *NutritionalTargetsPatch,
	customGoals []models.CustomGoal,
) (*models.DailyGoal, error) {
	var goal models.DailyGoal
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_active = ?", goalID, userID, true).
		First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: goal %d", ErrNotFound, goalID)
		}
		return nil, err
	}

	if targets != nil {
		if err := mergeTargets(&goal.Targets, targets); err != nil {
			return nil, err
		}
	}
	if nutritional != nil {
		if err := mergeNutritionalTargets(&goal.NutritionalTargets, nutritional); err != nil {
			return nil, err
		}
	}
	if customGoals != nil {
		raw, err := json.Marshal(customGoals)
		if err != nil {
			return nil, fmt.Errorf("%w: custom goals: %v", ErrInvalidArgument, err)
		}
		goal.CustomGoals = raw
	}

	if err := s.db.WithContext(ctx).Save(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func mergeTargets(dst *models.GoalTargets, p *GoalTargetsPatch) error {
	fields := []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"calories", p.Calories, &dst.Calories},
		{"water", p.Water, &dst.Water},
		{"meals", p.Meals, &dst.Meals},
		{"exercise", p.Exercise, &dst.Exercise},
		{"sleep", p.Sleep, &dst.Sleep},
		{"steps", p.Steps, &dst.Steps},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		if err := checkBound(f.name, *f.src, canonicalBounds[f.name]); err != nil {
			return err
		}
		*f.dst = *f.src
	}
	return nil
}

func mergeNutritionalTargets(dst *models.NutritionalTargets, p *NutritionalTargetsPatch) error {
	fields := []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"protein", p.Protein, &dst.Protein},
		{"carbs", p.Carbs, &dst.Carbs},
		{"fat", p.Fat, &dst.Fat},
		{"fiber", p.Fiber, &dst.Fiber},
		{"sugar", p.Sugar, &dst.Sugar},
		{"sodium", p.Sodium, &dst.Sodium},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		if err := checkBound(f.name, *f.src, nutritionalBounds[f.name]); err != nil {
			return err
		}
		*f.dst = *f.src
	}
	return nil
}

// Deactivate soft-deletes the goal. Dependent progress rows keep referencing
// it and stay valid as history.
func (s *GoalService) Deactivate(ctx context.Context, userID, goalID uint) error {
	res := s.db.WithContext(ctx).
		Model(&models.DailyGoal{}).
		Where("id = ? AND user_id = ? AND is_active = ?", goalID, userID, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: goal %d", ErrNotFound, goalID)
	}
	return nil
}

// GetByDate returns the active goal for the (user, day) pair.
func (s *GoalService) GetByDate(ctx context.Context, userID uint, day time.Time) (*models.DailyGoal, error) {
	day = utils.StartOfDay(day)
	var goal models.DailyGoal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND is_active = ?", userID, day, true).
		First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no active goal for %s", ErrNotFound, utils.DayKey(day))
		}
		return nil, err
	}
	return &goal, nil
}

// GetByID returns the goal regardless of IsActive; historical progress reads
// need deactivated goals too.
func (s *GoalService) GetByID(ctx context.Context, userID, goalID uint) (*models.DailyGoal, error) {
	var goal models.DailyGoal
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: goal %d", ErrNotFound, goalID)
		}
		return nil, err
	}
	return &goal, nil
}

// ListRange returns the user's active goals with dates in [from, to], ordered
// by date ascending.
func (s *GoalService) ListRange(ctx context.Context, userID uint, from, to time.Time) ([]models.DailyGoal, error) {
	var goals []models.DailyGoal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND date BETWEEN ? AND ?",
			userID, true, utils.StartOfDay(from), utils.EndOfDay(to)).
		Order("date ASC").
		Find(&goals).Error
	return goals, err
}

// CustomGoalList decodes the JSON custom goal column.
func CustomGoalList(goal *models.DailyGoal) ([]models.CustomGoal, error) {
	if len(goal.CustomGoals) == 0 {
		return nil, nil
	}
	var out []models.CustomGoal
	if err := json.Unmarshal(goal.CustomGoals, &out); err != nil {
		return nil, err
	}
	return out, nil
}
