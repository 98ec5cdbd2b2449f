package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/Kenneth14031129/NutriTrack-sub000/models"
	"github.com/Kenneth14031129/NutriTrack-sub000/utils"

	"gorm.io/gorm"
)

// CompletionStats counts how many of the six canonical targets are met.
type CompletionStats struct {
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// DayCompletion is one day of a weekly roll-up, kept per day for charting.
type DayCompletion struct {
	Date       string  `json:"date"`
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// WeeklyStats aggregates completion over a 7-day window.
type WeeklyStats struct {
	WeekStart      string          `json:"week_start"`
	TotalCompleted int             `json:"total_completed"`
	TotalPossible  int             `json:"total_possible"`
	CompletionRate float64         `json:"completion_rate"`
	Days           []DayCompletion `json:"days"`
}

const canonicalFieldCount = 6

func completedFieldCount(t models.GoalTargets, c models.ProgressCurrent) int {
	n := 0
	pairs := []struct{ current, target float64 }{
		{c.Calories, t.Calories},
		{c.Water, t.Water},
		{c.Meals, t.Meals},
		{c.Exercise, t.Exercise},
		{c.Sleep, t.Sleep},
		{c.Steps, t.Steps},
	}
	for _, p := range pairs {
		if p.current >= p.target {
			n++
		}
	}
	return n
}

// CompletionStatsFor derives completion for one goal/progress pair. A nil
// progress means no logging happened yet and yields {0, 6, 0} rather than an
// error.
func CompletionStatsFor(goal *models.DailyGoal, progress *models.DailyProgress) CompletionStats {
	stats := CompletionStats{Total: canonicalFieldCount}
	if goal == nil || progress == nil {
		return stats
	}
	stats.Completed = completedFieldCount(goal.Targets, progress.Current)
	stats.Percentage = math.Round(float64(stats.Completed) / float64(stats.Total) * 100)
	return stats
}

// IsGoalCompleted is the single-field variant used for UI-level checks.
func IsGoalCompleted(goal *models.DailyGoal, field string, current map[string]float64) bool {
	if goal == nil {
		return false
	}
	var target float64
	switch field {
	case "calories":
		target = goal.Targets.Calories
	case "water":
		target = goal.Targets.Water
	case "meals":
		target = goal.Targets.Meals
	case "exercise":
		target = goal.Targets.Exercise
	case "sleep":
		target = goal.Targets.Sleep
	case "steps":
		target = goal.Targets.Steps
	default:
		return false
	}
	return current[field] >= target
}

// StatsService reads goals and progress to derive completion statistics.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService { return &StatsService{db: db} }

// DailyStats resolves the (goal, progress) pair for one day. Days without a
// progress row report zero completion; days without an active goal fail with
// ErrNotFound.
func (s *StatsService) DailyStats(ctx context.Context, userID uint, day time.Time) (*CompletionStats, error) {
	day = utils.StartOfDay(day)

	var goal models.DailyGoal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND is_active = ?", userID, day, true).
		First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var progress models.DailyProgress
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND goal_id = ? AND date = ?", userID, goal.ID, day).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stats := CompletionStatsFor(&goal, nil)
			return &stats, nil
		}
		return nil, err
	}

	stats := CompletionStatsFor(&goal, &progress)
	return &stats, nil
}

// WeeklyRollup walks the 7 days starting at weekStart, resolves each day's
// goal and progress, and accumulates completion. Days without rows contribute
// {0, 6, 0}; the rate is 0 when nothing was possible.
func (s *StatsService) WeeklyRollup(ctx context.Context, userID uint, weekStart time.Time) (*WeeklyStats, error) {
	from := utils.StartOfDay(weekStart)
	to := from.AddDate(0, 0, 6)

	var goals []models.DailyGoal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND date BETWEEN ? AND ?", userID, true, from, utils.EndOfDay(to)).
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	goalIdx := map[string]*models.DailyGoal{}
	for i := range goals {
		goalIdx[utils.DayKey(goals[i].Date)] = &goals[i]
	}

	var rows []models.DailyProgress
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, utils.EndOfDay(to)).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	// A day can hold progress rows for a deactivated goal next to the active
	// one; only the row belonging to that day's active goal is scored.
	progressIdx := map[string]*models.DailyProgress{}
	for i := range rows {
		key := utils.DayKey(rows[i].Date)
		goal := goalIdx[key]
		if goal == nil || rows[i].GoalID != goal.ID {
			continue
		}
		progressIdx[key] = &rows[i]
	}

	out := &WeeklyStats{WeekStart: utils.DayKey(from)}
	for i := 0; i < 7; i++ {
		key := utils.DayKey(from.AddDate(0, 0, i))
		stats := CompletionStatsFor(goalIdx[key], progressIdx[key])
		out.Days = append(out.Days, DayCompletion{
			Date:       key,
			Completed:  stats.Completed,
			Total:      stats.Total,
			Percentage: stats.Percentage,
		})
		out.TotalCompleted += stats.Completed
		out.TotalPossible += stats.Total
	}
	if out.TotalPossible > 0 {
		out.CompletionRate = math.Round(float64(out.TotalCompleted) / float64(out.TotalPossible) * 100)
	}
	return out, nil
}
