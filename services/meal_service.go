package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Kenneth14031129/NutriTrack-sub000/models"
	"github.com/Kenneth14031129/NutriTrack-sub000/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Legal status transitions. A repeat of the current status is a no-op so that
// marking a meal consumed twice neither fails nor resets the timestamp.
var mealTransitions = map[string][]string{
	models.MealPlanned:  {models.MealPrepared, models.MealSkipped},
	models.MealPrepared: {models.MealConsumed, models.MealSkipped},
	models.MealConsumed: {},
	models.MealSkipped:  {},
}

// MealService owns meal records and their lifecycle. On the transition into
// consumed it emits a food activity into that day's progress ledger.
type MealService struct {
	db       *gorm.DB
	foods    *FoodService
	progress *ProgressService
	goals    *GoalService
	now      func() time.Time
}

func NewMealService(db *gorm.DB, foods *FoodService, progress *ProgressService, goals *GoalService) *MealService {
	return &MealService{db: db, foods: foods, progress: progress, goals: goals, now: time.Now}
}

// FoodEntryInput describes one food entry of a meal. When FoodID is set the
// entry's nutrition is resolved from the catalog and scaled to Quantity/Unit;
// otherwise the inline values are taken as-is.
type FoodEntryInput struct {
	FoodID    *uint                 `json:"food_id"`
	Name      string                `json:"name"`
	Quantity  float64               `json:"quantity"`
	Unit      string                `json:"unit"`
	Calories  float64               `json:"calories"`
	Nutrition models.EntryNutrition `json:"nutrition"`
}

func (s *MealService) buildFoods(ctx context.Context, entries []FoodEntryInput) ([]models.MealFood, error) {
	foods := make([]models.MealFood, 0, len(entries))
	for _, e := range entries {
		if !finiteNonNegative(e.Quantity) || !finiteNonNegative(e.Calories) {
			return nil, fmt.Errorf("%w: food entry values must be finite and non-negative", ErrInvalidArgument)
		}
		mf := models.MealFood{
			FoodID:    e.FoodID,
			Name:      e.Name,
			Quantity:  e.Quantity,
			Unit:      e.Unit,
			Calories:  e.Calories,
			Nutrition: e.Nutrition,
		}
		if e.FoodID != nil {
			food, err := s.foods.GetFoodByID(ctx, *e.FoodID)
			if err != nil {
				return nil, err
			}
			scaled := ScaleNutrition(food, e.Quantity, e.Unit)
			mf.Calories = scaled.Calories
			mf.Nutrition = models.EntryNutrition{
				Protein: scaled.Protein,
				Carbs:   scaled.Carbs,
				Fat:     scaled.Fat,
				Fiber:   scaled.Fiber,
				Sugar:   scaled.Sugar,
				Sodium:  scaled.Sodium,
			}
			if mf.Name == "" {
				mf.Name = food.Name
			}
		}
		foods = append(foods, mf)
	}
	return foods, nil
}

// CreateMeal creates a planned meal with its food entries and derived totals.
func (s *MealService) CreateMeal(ctx context.Context, userID uint, name, mealType string, day time.Time, entries []FoodEntryInput) (*models.Meal, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: meal name is required", ErrInvalidArgument)
	}
	foods, err := s.buildFoods(ctx, entries)
	if err != nil {
		return nil, err
	}

	meal := models.Meal{
		UserID: userID,
		Name:   name,
		Type:   mealType,
		Date:   utils.StartOfDay(day),
		Status: models.MealPlanned,
		Totals: SumFoodEntries(foods),
		Foods:  foods,
	}
	if err := s.db.WithContext(ctx).Create(&meal).Error; err != nil {
		return nil, err
	}
	return s.getByID(ctx, meal.ID)
}

// SetFoods replaces the food list and rewrites the totals in the same
// transaction. There is no path that changes Foods without Totals.
func (s *MealService) SetFoods(ctx context.Context, userID uint, mealUID uuid.UUID, entries []FoodEntryInput) (*models.Meal, error) {
	foods, err := s.buildFoods(ctx, entries)
	if err != nil {
		return nil, err
	}

	var mealID uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meal models.Meal
		if err := findUserMeal(tx, userID, mealUID, &meal); err != nil {
			return err
		}
		if err := tx.Unscoped().Where("meal_id = ?", meal.ID).Delete(&models.MealFood{}).Error; err != nil {
			return err
		}
		for i := range foods {
			foods[i].MealID = meal.ID
			if err := tx.Create(&foods[i]).Error; err != nil {
				return err
			}
		}
		meal.Totals = SumFoodEntries(foods)
		if err := tx.Save(&meal).Error; err != nil {
			return err
		}
		mealID = meal.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.getByID(ctx, mealID)
}

// UpdateStatus moves the meal through its lifecycle. Entering consumed stamps
// ConsumedAt exactly once and emits the consumption activity; repeating the
// current status is an idempotent no-op.
func (s *MealService) UpdateStatus(ctx context.Context, userID uint, mealUID uuid.UUID, newStatus string) (*models.Meal, error) {
	if _, ok := mealTransitions[newStatus]; !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, newStatus)
	}

	var meal models.Meal
	if err := findUserMeal(s.db.WithContext(ctx), userID, mealUID, &meal); err != nil {
		return nil, err
	}

	if meal.Status == newStatus {
		return s.getByID(ctx, meal.ID)
	}
	if !transitionAllowed(meal.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, meal.Status, newStatus)
	}

	meal.Status = newStatus
	consumed := newStatus == models.MealConsumed
	if consumed && meal.ConsumedAt == nil {
		now := s.now()
		meal.ConsumedAt = &now
	}
	if err := s.db.WithContext(ctx).Save(&meal).Error; err != nil {
		return nil, err
	}

	if consumed {
		s.emitConsumptionActivity(ctx, &meal)
	}
	return s.getByID(ctx, meal.ID)
}

func transitionAllowed(from, to string) bool {
	for _, next := range mealTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// emitConsumptionActivity logs the consumed meal into that day's progress
// ledger. Best-effort: a progress failure must never block or roll back the
// meal's status change, so errors are logged and swallowed here.
func (s *MealService) emitConsumptionActivity(ctx context.Context, meal *models.Meal) {
	goal, err := s.goals.GetByDate(ctx, meal.UserID, meal.Date)
	if err != nil {
		log.Printf("meal %s consumed: skipping progress activity: %v", meal.UID, err)
		return
	}
	_, err = s.progress.AddActivity(ctx, meal.UserID, goal.ID, meal.Date, ActivityInput{
		ActivityType: models.ActivityFood,
		Description:  meal.Name,
		Value:        meal.Totals.Calories,
		Unit:         "calories",
		Metadata: models.ActivityMetadata{
			MealUID:   meal.UID.String(),
			Nutrition: &meal.Totals,
		},
	})
	if err != nil {
		log.Printf("meal %s consumed: progress activity failed: %v", meal.UID, err)
	}
}

// DuplicateForDate copies the meal onto another day with a fresh identity.
// The food list is copied; the totals are recomputed from the copies, never
// carried over.
func (s *MealService) DuplicateForDate(ctx context.Context, userID uint, mealUID uuid.UUID, newDate time.Time, newType string) (*models.Meal, error) {
	var src models.Meal
	err := s.db.WithContext(ctx).
		Preload("Foods").
		Where("uid = ? AND user_id = ?", mealUID, userID).
		First(&src).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: meal %s", ErrNotFound, mealUID)
		}
		return nil, err
	}

	foods := make([]models.MealFood, 0, len(src.Foods))
	for _, f := range src.Foods {
		foods = append(foods, models.MealFood{
			FoodID:    f.FoodID,
			Name:      f.Name,
			Quantity:  f.Quantity,
			Unit:      f.Unit,
			Calories:  f.Calories,
			Nutrition: f.Nutrition,
		})
	}
	mealType := src.Type
	if newType != "" {
		mealType = newType
	}
	dup := models.Meal{
		UserID: userID,
		Name:   src.Name,
		Type:   mealType,
		Date:   utils.StartOfDay(newDate),
		Status: models.MealPlanned,
		Notes:  src.Notes,
		Totals: SumFoodEntries(foods),
		Foods:  foods,
	}
	if err := s.db.WithContext(ctx).Create(&dup).Error; err != nil {
		return nil, err
	}
	return s.getByID(ctx, dup.ID)
}

// GetMeal returns one meal with its foods.
func (s *MealService) GetMeal(ctx context.Context, userID uint, mealUID uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).
		Preload("Foods").
		Where("uid = ? AND user_id = ?", mealUID, userID).
		First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: meal %s", ErrNotFound, mealUID)
		}
		return nil, err
	}
	return &meal, nil
}

// ListMealsByDate returns the user's meals for one day, oldest first.
func (s *MealService) ListMealsByDate(ctx context.Context, userID uint, day time.Time) ([]models.Meal, error) {
	from := utils.StartOfDay(day)
	to := from.Add(24 * time.Hour)
	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Preload("Foods").
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("created_at ASC").
		Find(&meals).Error
	return meals, err
}

// DeleteMeal removes the meal and its food entries. Explicit delete only;
// there is no soft-delete path for meals.
func (s *MealService) DeleteMeal(ctx context.Context, userID uint, mealUID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meal models.Meal
		if err := findUserMeal(tx, userID, mealUID, &meal); err != nil {
			return err
		}
		if err := tx.Unscoped().Where("meal_id = ?", meal.ID).Delete(&models.MealFood{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&meal).Error
	})
}

func (s *MealService) getByID(ctx context.Context, id uint) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).
		Preload("Foods").
		First(&meal, id).Error
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func findUserMeal(tx *gorm.DB, userID uint, mealUID uuid.UUID, out *models.Meal) error {
	err := tx.Where("uid = ? AND user_id = ?", mealUID, userID).First(out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: meal %s", ErrNotFound, mealUID)
		}
		return err
	}
	return nil
}
