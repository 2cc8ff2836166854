package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rmehra/billmitra-backend/internal/app/model"
	"github.com/rmehra/billmitra-backend/internal/app/repository"
	"github.com/rmehra/billmitra-backend/pkg/logger"
)

var (
	ErrMenuItemInvalid         = errors.New("menu item requires name, category and price")
	ErrCategoryNameRequired    = errors.New("category name is required")
	ErrImportInvalid           = errors.New("import document is not valid JSON")
	ErrImportMissingItems      = errors.New("import document is missing the items key")
	ErrImportMissingCategories = errors.New("import document is missing the categories key")
)

// MenuExport is the downloadable menu document: the full catalog plus the
// export timestamp.
type MenuExport struct {
	Items      []model.MenuItem     `json:"items"`
	Categories []model.MenuCategory `json:"categories"`
	ExportDate string               `json:"exportDate"`
}

// MenuService owns the menu catalog: items and categories, loaded from the
// durable store on startup and saved back after every accepted mutation.
type MenuService interface {
	Items(ctx context.Context) []model.MenuItem
	ListByCategory(ctx context.Context, categoryID string, onlyAvailable bool) []model.MenuItem
	Categories(ctx context.Context) []model.MenuCategory
	UpsertItem(ctx context.Context, draft model.MenuItem) (model.MenuItem, error)
	DeleteItem(ctx context.Context, itemID string) error
	UpsertCategory(ctx context.Context, draft model.MenuCategory) (model.MenuCategory, error)
	DeleteCategory(ctx context.Context, categoryID string) error
	Grouped(ctx context.Context) []model.MenuSection
	Export(ctx context.Context) MenuExport
	Import(ctx context.Context, doc []byte) error
}

type menuService struct {
	mu         sync.Mutex
	menuRepo   repository.MenuRepository
	items      []model.MenuItem
	categories []model.MenuCategory
}

// NewMenuService loads the catalog once on construction. Storage failures at
// load time fall back to the documented defaults inside the repository and
// never prevent startup.
func NewMenuService(ctx context.Context, menuRepo repository.MenuRepository) MenuService {
	s := &menuService{
		menuRepo:   menuRepo,
		items:      menuRepo.LoadItems(ctx),
		categories: menuRepo.LoadCategories(ctx),
	}

	logger.Info("Menu catalog loaded", map[string]interface{}{
		"items":      len(s.items),
		"categories": len(s.categories),
	})
	return s
}

func (s *menuService) Items(_ context.Context) []model.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.items)
}

// ListByCategory filters the catalog preserving the original relative order.
func (s *menuService) ListByCategory(_ context.Context, categoryID string, onlyAvailable bool) []model.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []model.MenuItem{}
	for _, item := range s.items {
		if item.CategoryID != categoryID {
			continue
		}
		if onlyAvailable && !item.Available {
			continue
		}
		result = append(result, item)
	}
	return result
}

// Categories returns the categories stable-sorted ascending by display order.
func (s *menuService) Categories(_ context.Context) []model.MenuCategory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedCategories(s.categories)
}

// UpsertItem replaces the item with a matching id in place, or appends a new
// item with a freshly generated id. Name, category and a positive price are
// required; a rejected draft mutates nothing.
func (s *menuService) UpsertItem(ctx context.Context, draft model.MenuItem) (model.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" || draft.CategoryID == "" || draft.Price <= 0 {
		logger.Warn("Rejected invalid menu item", map[string]interface{}{
			"name":     draft.Name,
			"category": draft.CategoryID,
			"price":    draft.Price,
		})
		return model.MenuItem{}, ErrMenuItemInvalid
	}

	updated := false
	items := copyItems(s.items)
	if draft.ID != "" {
		for i, item := range items {
			if item.ID == draft.ID {
				items[i] = draft
				updated = true
				break
			}
		}
	}
	if !updated {
		draft.ID = uuid.NewString()
		items = append(items, draft)
	}

	if err := s.menuRepo.SaveItems(ctx, items); err != nil {
		return model.MenuItem{}, err
	}
	s.items = items

	logger.Info("Menu item saved", map[string]interface{}{
		"item_id": draft.ID,
		"name":    draft.Name,
		"updated": updated,
	})
	return draft, nil
}

// DeleteItem removes the matching item; an unknown id is a no-op.
func (s *menuService) DeleteItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items[:0:0]
	for _, item := range s.items {
		if item.ID != itemID {
			items = append(items, item)
		}
	}
	if len(items) == len(s.items) {
		logger.Debug("Menu item not found for deletion", map[string]interface{}{
			"item_id": itemID,
		})
		return nil
	}

	if err := s.menuRepo.SaveItems(ctx, items); err != nil {
		return err
	}
	s.items = items

	logger.Info("Menu item deleted", map[string]interface{}{
		"item_id": itemID,
	})
	return nil
}

func (s *menuService) UpsertCategory(ctx context.Context, draft model.MenuCategory) (model.MenuCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		logger.Warn("Rejected category without a name", nil)
		return model.MenuCategory{}, ErrCategoryNameRequired
	}

	updated := false
	categories := make([]model.MenuCategory, len(s.categories))
	copy(categories, s.categories)
	if draft.ID != "" {
		for i, category := range categories {
			if category.ID == draft.ID {
				categories[i] = draft
				updated = true
				break
			}
		}
	}
	if !updated {
		draft.ID = uuid.NewString()
		if draft.Order == 0 {
			draft.Order = nextCategoryOrder(categories)
		}
		categories = append(categories, draft)
	}

	if err := s.menuRepo.SaveCategories(ctx, categories); err != nil {
		return model.MenuCategory{}, err
	}
	s.categories = categories

	logger.Info("Menu category saved", map[string]interface{}{
		"category_id": draft.ID,
		"name":        draft.Name,
		"updated":     updated,
	})
	return draft, nil
}

// DeleteCategory removes the category only. Items referencing it are left
// untouched and keep their now-dangling category id; Grouped surfaces them
// under the raw id.
func (s *menuService) DeleteCategory(ctx context.Context, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := s.categories[:0:0]
	for _, category := range s.categories {
		if category.ID != categoryID {
			categories = append(categories, category)
		}
	}
	if len(categories) == len(s.categories) {
		logger.Debug("Menu category not found for deletion", map[string]interface{}{
			"category_id": categoryID,
		})
		return nil
	}

	if err := s.menuRepo.SaveCategories(ctx, categories); err != nil {
		return err
	}
	s.categories = categories

	logger.Info("Menu category deleted", map[string]interface{}{
		"category_id": categoryID,
	})
	return nil
}

// Grouped renders the catalog as sections in category display order. Items
// whose category no longer exists are appended at the end in sections named
// by the raw category id, in first-appearance order.
func (s *menuService) Grouped(_ context.Context) []model.MenuSection {
	s.mu.Lock()
	defer s.mu.Unlock()

	sections := []model.MenuSection{}
	known := make(map[string]bool, len(s.categories))
	for _, category := range sortedCategories(s.categories) {
		known[category.ID] = true
		section := model.MenuSection{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			Items:        []model.MenuItem{},
		}
		for _, item := range s.items {
			if item.CategoryID == category.ID {
				section.Items = append(section.Items, item)
			}
		}
		sections = append(sections, section)
	}

	var orphanIDs []string
	orphans := map[string][]model.MenuItem{}
	for _, item := range s.items {
		if known[item.CategoryID] {
			continue
		}
		if _, seen := orphans[item.CategoryID]; !seen {
			orphanIDs = append(orphanIDs, item.CategoryID)
		}
		orphans[item.CategoryID] = append(orphans[item.CategoryID], item)
	}
	for _, id := range orphanIDs {
		sections = append(sections, model.MenuSection{
			CategoryID:   id,
			CategoryName: id,
			Items:        orphans[id],
		})
	}
	return sections
}

func (s *menuService) Export(_ context.Context) MenuExport {
	s.mu.Lock()
	defer s.mu.Unlock()

	return MenuExport{
		Items:      copyItems(s.items),
		Categories: sortedCategories(s.categories),
		ExportDate: time.Now().UTC().Format(time.RFC3339),
	}
}

// Import replaces the whole catalog from an exported document. Both the
// items and categories keys must be present; any failure leaves the current
// state untouched.
func (s *menuService) Import(ctx context.Context, doc []byte) error {
	var parsed struct {
		Items      *[]model.MenuItem     `json:"items"`
		Categories *[]model.MenuCategory `json:"categories"`
	}
	if err := json.Unmarshal(doc, &parsed); err != nil {
		logger.Warn("Rejected menu import: invalid JSON", map[string]interface{}{
			"error": err.Error(),
		})
		return ErrImportInvalid
	}
	if parsed.Items == nil {
		logger.Warn("Rejected menu import: missing items key", nil)
		return ErrImportMissingItems
	}
	if parsed.Categories == nil {
		logger.Warn("Rejected menu import: missing categories key", nil)
		return ErrImportMissingCategories
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := *parsed.Items
	categories := *parsed.Categories
	if err := s.menuRepo.SaveItems(ctx, items); err != nil {
		return err
	}
	if err := s.menuRepo.SaveCategories(ctx, categories); err != nil {
		return err
	}
	s.items = items
	s.categories = categories

	logger.Info("Menu imported", map[string]interface{}{
		"items":      len(items),
		"categories": len(categories),
	})
	return nil
}

func copyItems(items []model.MenuItem) []model.MenuItem {
	out := make([]model.MenuItem, len(items))
	copy(out, items)
	return out
}

func sortedCategories(categories []model.MenuCategory) []model.MenuCategory {
	out := make([]model.MenuCategory, len(categories))
	copy(out, categories)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

func nextCategoryOrder(categories []model.MenuCategory) int {
	max := 0
	for _, category := range categories {
		if category.Order > max {
			max = category.Order
		}
	}
	return max + 1
}
