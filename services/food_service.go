package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Kenneth14031129/NutriTrack-sub000/models"

	"gorm.io/gorm"
)

// FoodService is the catalog side of the food-lookup capability: canonical
// nutrition-per-serving records, read-mostly. The only mutation the tracking
// core triggers is the usage counter.
type FoodService struct {
	db *gorm.DB
}

func NewFoodService(db *gorm.DB) *FoodService { return &FoodService{db: db} }

// GetFoodByID returns the catalog record and bumps its usage counter.
func (s *FoodService) GetFoodByID(ctx context.Context, id uint) (*models.FoodItem, error) {
	var food models.FoodItem
	err := s.db.WithContext(ctx).First(&food, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: food %d", ErrNotFound, id)
		}
		return nil, err
	}

	// Counter only; lookups must still succeed if this write is lost.
	s.db.WithContext(ctx).
		Model(&models.FoodItem{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	food.UsageCount++

	return &food, nil
}

// Search matches catalog foods by name, most-used first.
func (s *FoodService) Search(ctx context.Context, query string, limit int) ([]models.FoodItem, error) {
	if limit <= 0 {
		limit = 20
	}
	var foods []models.FoodItem
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%").
		Order("usage_count DESC, name ASC").
		Limit(limit).
		Find(&foods).Error
	return foods, err
}

// CreateFood registers a catalog record.
func (s *FoodService) CreateFood(ctx context.Context, food *models.FoodItem) error {
	if food.Name == "" {
		return fmt.Errorf("%w: food name is required", ErrInvalidArgument)
	}
	if food.ServingSize <= 0 || food.ServingUnit == "" {
		return fmt.Errorf("%w: serving size and unit are required", ErrInvalidArgument)
	}
	return s.db.WithContext(ctx).Create(food).Error
}
