package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rmehra/billmitra-backend/config"
	"github.com/rmehra/billmitra-backend/internal/app/model"
	"github.com/rmehra/billmitra-backend/internal/app/repository"
	"github.com/rmehra/billmitra-backend/internal/db"
	"github.com/rmehra/billmitra-backend/internal/kvstore"
	"github.com/xuri/excelize/v2"
)

// Seeds the menu catalog from an xlsx workbook. Expected columns:
// Name | Description | Price | Category | Available
// Category may be a seed category name (Appetizers, Main Course, Desserts,
// Beverages) or a raw category id.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	var store kvstore.Store
	switch cfg.Store.Driver {
	case "redis":
		store, err = kvstore.NewRedisStore(&cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
	case "memory":
		log.Fatal("Cannot seed the in-memory store, set STORE_DRIVER to postgres or redis")
	default:
		if err := db.Initialize(&cfg.Database); err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}
		store = kvstore.NewGormStore(db.GetDB())
	}

	ctx := context.Background()
	menuRepo := repository.NewMenuRepository(store)
	categories := menuRepo.LoadCategories(ctx)

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	items, skipped, err := readItemsFromXLSX(filePath, categories)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Valid menu items: %d (skipped %d rows)\n", len(items), skipped)
	if len(items) == 0 {
		fmt.Println("Nothing to import.")
		return
	}

	existing := menuRepo.LoadItems(ctx)
	fmt.Printf("The catalog currently holds %d items; imported items will be appended.\n", len(existing))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	if err := menuRepo.SaveItems(ctx, append(existing, items...)); err != nil {
		log.Fatal("Failed to save menu items:", err)
	}
	if err := menuRepo.SaveCategories(ctx, categories); err != nil {
		log.Fatal("Failed to save menu categories:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total items imported: %d\n", len(items))
}

func readItemsFromXLSX(filePath string, categories []model.MenuCategory) ([]model.MenuItem, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	// Name -> id lookup for the Category column
	categoryIDs := make(map[string]string, len(categories))
	for _, category := range categories {
		categoryIDs[strings.ToLower(category.Name)] = category.ID
	}

	var items []model.MenuItem
	skipped := 0
	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < 4 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		description := strings.TrimSpace(row[1])
		priceStr := strings.TrimSpace(row[2])
		category := strings.TrimSpace(row[3])

		price, err := strconv.ParseFloat(priceStr, 64)
		if name == "" || category == "" || err != nil || price <= 0 {
			skipped++
			continue
		}

		categoryID := category
		if id, ok := categoryIDs[strings.ToLower(category)]; ok {
			categoryID = id
		}

		available := true
		if len(row) > 4 {
			switch strings.ToLower(strings.TrimSpace(row[4])) {
			case "no", "false", "0":
				available = false
			}
		}

		items = append(items, model.MenuItem{
			ID:          uuid.NewString(),
			Name:        name,
			Description: description,
			Price:       price,
			CategoryID:  categoryID,
			Available:   available,
		})
	}

	return items, skipped, nil
}
