package controller

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rmehra/billmitra-backend/internal/app/model"
	"github.com/rmehra/billmitra-backend/internal/app/service"
	"github.com/rmehra/billmitra-backend/internal/errors"
	"github.com/rmehra/billmitra-backend/internal/middleware"
)

type MenuController struct {
	menuService service.MenuService
}

func NewMenuController(menuService service.MenuService) *MenuController {
	return &MenuController{
		menuService: menuService,
	}
}

type MenuItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"category"`
	Available   *bool   `json:"available"`
}

type MenuCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// GetItems lists menu items, optionally filtered by category and availability
// GET /api/v1/menu/items?category=&available=true
func (ctrl *MenuController) GetItems(c *gin.Context) {
	categoryID := c.Query("category")
	onlyAvailable := c.Query("available") == "true"

	var items []model.MenuItem
	if categoryID == "" {
		items = ctrl.menuService.Items(c.Request.Context())
	} else {
		items = ctrl.menuService.ListByCategory(c.Request.Context(), categoryID, onlyAvailable)
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// CreateItem adds a menu item
// POST /api/v1/menu/items
func (ctrl *MenuController) CreateItem(c *gin.Context) {
	ctrl.upsertItem(c, "")
}

// UpdateItem updates an existing menu item
// PUT /api/v1/menu/items/:id
func (ctrl *MenuController) UpdateItem(c *gin.Context) {
	ctrl.upsertItem(c, c.Param("id"))
}

func (ctrl *MenuController) upsertItem(c *gin.Context, itemID string) {
	log := middleware.GetLoggerFromContext(c)

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid menu item request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	item, err := ctrl.menuService.UpsertItem(c.Request.Context(), model.MenuItem{
		ID:          itemID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Available:   available,
	})
	if err != nil {
		if stderrors.Is(err, service.ErrMenuItemInvalid) {
			errors.BadRequest(c, errors.MenuItemInvalid, "Menu item requires a name, category and positive price")
			return
		}
		log.Error("Failed to save menu item", err, map[string]interface{}{
			"item_id": itemID,
			"name":    req.Name,
		})
		errors.StorageError(c, "")
		return
	}

	status := http.StatusOK
	if itemID == "" {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"item": item,
	})
}

// DeleteItem removes a menu item; an unknown id is a no-op
// DELETE /api/v1/menu/items/:id
func (ctrl *MenuController) DeleteItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")
	if err := ctrl.menuService.DeleteItem(c.Request.Context(), id); err != nil {
		log.Error("Failed to delete menu item", err, map[string]interface{}{
			"item_id": id,
		})
		errors.StorageError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item deleted successfully",
	})
}

// GetCategories lists categories in display order
// GET /api/v1/menu/categories
func (ctrl *MenuController) GetCategories(c *gin.Context) {
	categories := ctrl.menuService.Categories(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// CreateCategory adds or updates a category
// POST /api/v1/menu/categories
func (ctrl *MenuController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req MenuCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid menu category request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	category, err := ctrl.menuService.UpsertCategory(c.Request.Context(), model.MenuCategory{
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
	})
	if err != nil {
		if stderrors.Is(err, service.ErrCategoryNameRequired) {
			errors.BadRequest(c, errors.MenuCategoryNameRequired, "Category name is required")
			return
		}
		log.Error("Failed to save menu category", err, map[string]interface{}{
			"name": req.Name,
		})
		errors.StorageError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"category": category,
	})
}

// DeleteCategory removes a category; its items keep their category id
// DELETE /api/v1/menu/categories/:id
func (ctrl *MenuController) DeleteCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")
	if err := ctrl.menuService.DeleteCategory(c.Request.Context(), id); err != nil {
		log.Error("Failed to delete menu category", err, map[string]interface{}{
			"category_id": id,
		})
		errors.StorageError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu category deleted successfully",
	})
}

// GetGrouped renders the menu as sections in category order
// GET /api/v1/menu/grouped
func (ctrl *MenuController) GetGrouped(c *gin.Context) {
	sections := ctrl.menuService.Grouped(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"sections": sections,
	})
}

// ExportMenu downloads the whole catalog as a JSON document
// GET /api/v1/menu/export
func (ctrl *MenuController) ExportMenu(c *gin.Context) {
	export := ctrl.menuService.Export(c.Request.Context())

	filename := fmt.Sprintf("restaurant-menu-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, export)
}

// ImportMenu replaces the catalog from an exported document
// POST /api/v1/menu/import
func (ctrl *MenuController) ImportMenu(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	doc, err := io.ReadAll(c.Request.Body)
	if err != nil {
		errors.BadRequest(c, errors.ImportInvalidDocument, "Could not read the import document")
		return
	}

	if err := ctrl.menuService.Import(c.Request.Context(), doc); err != nil {
		switch {
		case stderrors.Is(err, service.ErrImportInvalid):
			errors.BadRequest(c, errors.ImportInvalidDocument, "Import document is not valid JSON")
		case stderrors.Is(err, service.ErrImportMissingItems):
			errors.BadRequest(c, errors.ImportMissingItems, "Import document is missing the items key")
		case stderrors.Is(err, service.ErrImportMissingCategories):
			errors.BadRequest(c, errors.ImportMissingCategories, "Import document is missing the categories key")
		default:
			log.Error("Failed to import menu", err, nil)
			errors.StorageError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu imported successfully",
	})
}
