package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Kenneth14031129/NutriTrack-sub000/models"
	"github.com/Kenneth14031129/NutriTrack-sub000/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hard caps on the daily accumulators. Adds clamp here; the floor is always 0.
var currentCaps = map[string]float64{
	"calories": 10000,
	"water":    50,
	"meals":    20,
	"exercise": 1440,
	"sleep":    24,
	"steps":    100000,
}

// ProgressService owns the per-(user, goal, day) aggregate and its activity
// ledger. Current and Summary are derived caches of the ledger: they are only
// written through AddActivity, RemoveActivity and UpdateProgressField, each of
// which recomputes the derived fields from just-read state inside one
// transaction.
type ProgressService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db, now: time.Now}
}

// ActivityInput is one event to append to the ledger.
type ActivityInput struct {
	ActivityType string                  `json:"activity_type"`
	Description  string                  `json:"description"`
	Value        float64                 `json:"value"`
	Unit         string                  `json:"unit"`
	FoodID       *uint                   `json:"food_id,omitempty"`
	ExerciseType string                  `json:"exercise_type,omitempty"`
	Metadata     models.ActivityMetadata `json:"metadata"`
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func validateActivityInput(in ActivityInput) error {
	switch in.ActivityType {
	case models.ActivityFood, models.ActivityWater, models.ActivityExercise,
		models.ActivitySleep, models.ActivityManual:
	default:
		return fmt.Errorf("%w: unknown activity type %q", ErrInvalidArgument, in.ActivityType)
	}
	if !finiteNonNegative(in.Value) {
		return fmt.Errorf("%w: activity value must be finite and non-negative", ErrInvalidArgument)
	}
	if !finiteNonNegative(in.Metadata.CaloriesBurned) {
		return fmt.Errorf("%w: caloriesBurned must be finite and non-negative", ErrInvalidArgument)
	}
	return nil
}

// GetOrCreate returns the progress row for (user, goal, day), creating it with
// zeroed accumulators and an empty ledger on first touch. The unique index on
// (user_id, goal_id, date) keeps concurrent first touches from both inserting;
// the loser of that race re-reads the winner's row.
func (s *ProgressService) GetOrCreate(ctx context.Context, userID, goalID uint, day time.Time) (*models.DailyProgress, error) {
	day = utils.StartOfDay(day)

	p := models.DailyProgress{UserID: userID, GoalID: goalID, Date: day}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND goal_id = ? AND date = ?", userID, goalID, day).
		FirstOrCreate(&p).Error
	if err == nil {
		return &p, nil
	}

	// Lost a concurrent create race; the row exists now.
	var existing models.DailyProgress
	ferr := s.db.WithContext(ctx).
		Where("user_id = ? AND goal_id = ? AND date = ?", userID, goalID, day).
		First(&existing).Error
	if ferr != nil {
		return nil, err
	}
	return &existing, nil
}

// GetByDate returns the progress row with its ledger preloaded, or ErrNotFound.
func (s *ProgressService) GetByDate(ctx context.Context, userID, goalID uint, day time.Time) (*models.DailyProgress, error) {
	day = utils.StartOfDay(day)
	var p models.DailyProgress
	err := s.db.WithContext(ctx).
		Preload("Activities", func(db *gorm.DB) *gorm.DB { return db.Order("activities.id ASC") }).
		Where("user_id = ? AND goal_id = ? AND date = ?", userID, goalID, day).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no progress for %s", ErrNotFound, utils.DayKey(day))
		}
		return nil, err
	}
	return &p, nil
}

// ListRange returns the user's progress rows with dates in [from, to], ordered
// by date ascending.
func (s *ProgressService) ListRange(ctx context.Context, userID uint, from, to time.Time) ([]models.DailyProgress, error) {
	var rows []models.DailyProgress
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, utils.StartOfDay(from), utils.EndOfDay(to)).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

// AddActivity appends the event to the ledger and applies its accumulation
// rule. Validation happens before any write; the append, the accumulator
// update and the summary recompute commit atomically.
func (s *ProgressService) AddActivity(ctx context.Context, userID, goalID uint, day time.Time, in ActivityInput) (*models.DailyProgress, error) {
	if err := validateActivityInput(in); err != nil {
		return nil, err
	}
	seed, err := s.GetOrCreate(ctx, userID, goalID, day)
	if err != nil {
		return nil, err
	}

	var out models.DailyProgress
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.DailyProgress
		if err := tx.First(&p, seed.ID).Error; err != nil {
			return err
		}

		raw, err := json.Marshal(in.Metadata)
		if err != nil {
			return fmt.Errorf("%w: metadata: %v", ErrInvalidArgument, err)
		}
		act := models.Activity{
			ProgressID:   p.ID,
			ActivityType: in.ActivityType,
			Description:  in.Description,
			Value:        in.Value,
			Unit:         in.Unit,
			RecordedAt:   s.now(),
			FoodID:       in.FoodID,
			ExerciseType: in.ExerciseType,
			Metadata:     raw,
		}
		if err := tx.Create(&act).Error; err != nil {
			return err
		}

		applyActivityRule(&p, in.ActivityType, in.Value, in.Metadata, +1)
		if err := s.refreshSummary(tx, &p); err != nil {
			return err
		}
		if err := tx.Save(&p).Error; err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveActivity deletes the ledger entry and applies the exact algebraic
// inverse of its accumulation rule, floor-clamped at 0.
func (s *ProgressService) RemoveActivity(ctx context.Context, userID uint, activityUID uuid.UUID) (*models.DailyProgress, error) {
	var out models.DailyProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var act models.Activity
		err := tx.
			Joins("JOIN daily_progresses ON daily_progresses.id = activities.progress_id").
			Where("activities.uid = ? AND daily_progresses.user_id = ?", activityUID, userID).
			First(&act).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: activity %s", ErrNotFound, activityUID)
			}
			return err
		}

		var p models.DailyProgress
		if err := tx.First(&p, act.ProgressID).Error; err != nil {
			return err
		}

		var meta models.ActivityMetadata
		if len(act.Metadata) > 0 {
			if err := json.Unmarshal(act.Metadata, &meta); err != nil {
				return err
			}
		}

		if err := tx.Delete(&act).Error; err != nil {
			return err
		}

		applyActivityRule(&p, act.ActivityType, act.Value, meta, -1)
		if err := s.refreshSummary(tx, &p); err != nil {
			return err
		}
		if err := tx.Save(&p).Error; err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Field update operations.
const (
	OpAdd      = "add"
	OpSet      = "set"
	OpSubtract = "subtract"
)

// UpdateProgressField mutates one canonical accumulator directly. This is the
// intended path for set-once fields (sleep, steps); ledger-accumulated fields
// accept it too for corrections. The result is floor-clamped at 0 and capped.
func (s *ProgressService) UpdateProgressField(ctx context.Context, userID, goalID uint, day time.Time, field string, value float64, op string) (*models.DailyProgress, error) {
	if _, ok := currentCaps[field]; !ok {
		return nil, fmt.Errorf("%w: unknown progress field %q", ErrInvalidArgument, field)
	}
	switch op {
	case OpAdd, OpSet, OpSubtract:
	default:
		return nil, fmt.Errorf("%w: unknown operation %q", ErrInvalidArgument, op)
	}
	if !finiteNonNegative(value) {
		return nil, fmt.Errorf("%w: value must be finite and non-negative", ErrInvalidArgument)
	}

	seed, err := s.GetOrCreate(ctx, userID, goalID, day)
	if err != nil {
		return nil, err
	}

	var out models.DailyProgress
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.DailyProgress
		if err := tx.First(&p, seed.ID).Error; err != nil {
			return err
		}

		slot := currentField(&p.Current, field)
		switch op {
		case OpAdd:
			*slot += value
		case OpSet:
			*slot = value
		case OpSubtract:
			*slot -= value
		}
		*slot = clampAccumulator(*slot, currentCaps[field])

		if err := s.refreshSummary(tx, &p); err != nil {
			return err
		}
		if err := tx.Save(&p).Error; err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCustomProgress sets the current value for one custom goal and derives
// its completion flag from the matching target on the goal row.
func (s *ProgressService) UpdateCustomProgress(ctx context.Context, userID, goalID uint, day time.Time, customGoalID string, current float64) (*models.DailyProgress, error) {
	if !finiteNonNegative(current) {
		return nil, fmt.Errorf("%w: value must be finite and non-negative", ErrInvalidArgument)
	}

	seed, err := s.GetOrCreate(ctx, userID, goalID, day)
	if err != nil {
		return nil, err
	}

	var out models.DailyProgress
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var goal models.DailyGoal
		if err := tx.First(&goal, goalID).Error; err != nil {
			return err
		}
		customGoals, err := CustomGoalList(&goal)
		if err != nil {
			return err
		}
		var target *models.CustomGoal
		for i := range customGoals {
			if customGoals[i].ID == customGoalID {
				target = &customGoals[i]
				break
			}
		}
		if target == nil {
			return fmt.Errorf("%w: custom goal %s", ErrNotFound, customGoalID)
		}

		var p models.DailyProgress
		if err := tx.First(&p, seed.ID).Error; err != nil {
			return err
		}

		var entries []models.CustomProgressEntry
		if len(p.CustomProgress) > 0 {
			if err := json.Unmarshal(p.CustomProgress, &entries); err != nil {
				return err
			}
		}
		updated := false
		for i := range entries {
			if entries[i].GoalID == customGoalID {
				entries[i].Current = current
				entries[i].IsCompleted = current >= target.Target
				updated = true
				break
			}
		}
		if !updated {
			entries = append(entries, models.CustomProgressEntry{
				GoalID:      customGoalID,
				Current:     current,
				IsCompleted: current >= target.Target,
			})
		}
		raw, err := json.Marshal(entries)
		if err != nil {
			return err
		}
		p.CustomProgress = raw

		if err := s.refreshSummary(tx, &p); err != nil {
			return err
		}
		if err := tx.Save(&p).Error; err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// applyActivityRule is the single accumulation rule table, applied with
// sign +1 on add and -1 on remove so the two stay exact mirrors. Sleep and
// manual entries are ledger-only: sleep is set through UpdateProgressField,
// not accumulated.
func applyActivityRule(p *models.DailyProgress, kind string, value float64, meta models.ActivityMetadata, sign float64) {
	switch kind {
	case models.ActivityFood:
		p.Current.Calories = clampAccumulator(p.Current.Calories+sign*value, currentCaps["calories"])
		p.Current.Meals = clampAccumulator(p.Current.Meals+sign, currentCaps["meals"])
		if meta.Nutrition != nil {
			applyNutrition(&p.Nutritional, *meta.Nutrition, sign)
		}
	case models.ActivityWater:
		p.Current.Water = clampAccumulator(p.Current.Water+sign*value, currentCaps["water"])
	case models.ActivityExercise:
		p.Current.Exercise = clampAccumulator(p.Current.Exercise+sign*value, currentCaps["exercise"])
		p.Summary.CaloriesBurned = math.Max(0, p.Summary.CaloriesBurned+sign*meta.CaloriesBurned)
	}
}

// applyNutrition keeps the raw sums: rounding inside the mutation path would
// break add/remove symmetry for sub-cent inputs. Derived values are rounded
// where they are computed (refreshSummary, the scaler).
func applyNutrition(dst *models.NutritionalProgress, n models.NutritionTotals, sign float64) {
	dst.Protein = math.Max(0, dst.Protein+sign*n.Protein)
	dst.Carbs = math.Max(0, dst.Carbs+sign*n.Carbs)
	dst.Fat = math.Max(0, dst.Fat+sign*n.Fat)
	dst.Fiber = math.Max(0, dst.Fiber+sign*n.Fiber)
	dst.Sugar = math.Max(0, dst.Sugar+sign*n.Sugar)
	dst.Sodium = math.Max(0, dst.Sodium+sign*n.Sodium)
}

func clampAccumulator(v, limit float64) float64 {
	return math.Min(limit, math.Max(0, v))
}

func currentField(c *models.ProgressCurrent, field string) *float64 {
	switch field {
	case "calories":
		return &c.Calories
	case "water":
		return &c.Water
	case "meals":
		return &c.Meals
	case "exercise":
		return &c.Exercise
	case "sleep":
		return &c.Sleep
	case "steps":
		return &c.Steps
	}
	return nil
}

// refreshSummary recomputes the derived summary fields from the just-read
// state: the live ledger count, the calorie roll-up and the completed-goal
// count against the owning goal's targets.
func (s *ProgressService) refreshSummary(tx *gorm.DB, p *models.DailyProgress) error {
	var count int64
	if err := tx.Model(&models.Activity{}).Where("progress_id = ?", p.ID).Count(&count).Error; err != nil {
		return err
	}
	p.Summary.TotalActivities = int(count)
	p.Summary.CaloriesConsumed = p.Current.Calories
	p.Summary.NetCalories = round2(p.Summary.CaloriesConsumed - p.Summary.CaloriesBurned)

	var goal models.DailyGoal
	if err := tx.First(&goal, p.GoalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			p.Summary.CompletedGoals = 0
			return nil
		}
		return err
	}
	p.Summary.CompletedGoals = completedFieldCount(goal.Targets, p.Current)
	return nil
}
