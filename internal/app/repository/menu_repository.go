package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rmehra/billmitra-backend/internal/app/model"
	"github.com/rmehra/billmitra-backend/internal/kvstore"
	"github.com/rmehra/billmitra-backend/pkg/logger"
)

// Durable-store keys of the menu records.
const (
	KeyMenuItems      = "menu_items"
	KeyMenuCategories = "menu_categories"
)

type MenuRepository interface {
	LoadItems(ctx context.Context) []model.MenuItem
	SaveItems(ctx context.Context, items []model.MenuItem) error
	LoadCategories(ctx context.Context) []model.MenuCategory
	SaveCategories(ctx context.Context, categories []model.MenuCategory) error
}

type menuRepository struct {
	store kvstore.Store
}

func NewMenuRepository(store kvstore.Store) MenuRepository {
	return &menuRepository{store: store}
}

// LoadItems returns the stored menu items. A never-saved key or a storage
// failure yields an empty list; errors are logged, never propagated.
func (r *menuRepository) LoadItems(ctx context.Context) []model.MenuItem {
	raw, err := r.store.Get(ctx, KeyMenuItems)
	if errors.Is(err, kvstore.ErrNotFound) {
		return []model.MenuItem{}
	}
	if err != nil {
		logger.Error("Failed to load menu items", err, map[string]interface{}{
			"key": KeyMenuItems,
		})
		return []model.MenuItem{}
	}

	var items []model.MenuItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Error("Failed to decode menu items, using empty list", err, map[string]interface{}{
			"key": KeyMenuItems,
		})
		return []model.MenuItem{}
	}
	if items == nil {
		items = []model.MenuItem{}
	}
	return items
}

func (r *menuRepository) SaveItems(ctx context.Context, items []model.MenuItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		logger.Error("Failed to encode menu items", err, nil)
		return err
	}

	if err := r.store.Set(ctx, KeyMenuItems, string(raw)); err != nil {
		logger.Error("Failed to save menu items", err, map[string]interface{}{
			"key":   KeyMenuItems,
			"count": len(items),
		})
		return err
	}

	logger.Debug("Menu items saved", map[string]interface{}{
		"count": len(items),
	})
	return nil
}

// LoadCategories returns the stored categories. When no categories were ever
// saved, the four seed categories are supplied so the menu is never empty on
// first run. A corrupted stored value yields an empty list.
func (r *menuRepository) LoadCategories(ctx context.Context) []model.MenuCategory {
	raw, err := r.store.Get(ctx, KeyMenuCategories)
	if errors.Is(err, kvstore.ErrNotFound) {
		logger.Info("No stored menu categories, seeding defaults", nil)
		return model.SeedCategories()
	}
	if err != nil {
		logger.Error("Failed to load menu categories", err, map[string]interface{}{
			"key": KeyMenuCategories,
		})
		return []model.MenuCategory{}
	}

	var categories []model.MenuCategory
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		logger.Error("Failed to decode menu categories, using empty list", err, map[string]interface{}{
			"key": KeyMenuCategories,
		})
		return []model.MenuCategory{}
	}
	if categories == nil {
		categories = []model.MenuCategory{}
	}
	return categories
}

func (r *menuRepository) SaveCategories(ctx context.Context, categories []model.MenuCategory) error {
	raw, err := json.Marshal(categories)
	if err != nil {
		logger.Error("Failed to encode menu categories", err, nil)
		return err
	}

	if err := r.store.Set(ctx, KeyMenuCategories, string(raw)); err != nil {
		logger.Error("Failed to save menu categories", err, map[string]interface{}{
			"key":   KeyMenuCategories,
			"count": len(categories),
		})
		return err
	}

	logger.Debug("Menu categories saved", map[string]interface{}{
		"count": len(categories),
	})
	return nil
}
