package model

// MenuItem is one dish in the catalog. CategoryID references a MenuCategory,
// but the reference is not enforced on category deletion: items may end up
// pointing at a category that no longer exists.
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"category"`
	Available   bool    `json:"available"`
}

// MenuCategory groups menu items. Order defines the display position.
type MenuCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// MenuSection is one rendered group of the menu: a category and its items in
// insertion order. For items whose category no longer exists, CategoryName
// falls back to the raw category id.
type MenuSection struct {
	CategoryID   string     `json:"category_id"`
	CategoryName string     `json:"category_name"`
	Items        []MenuItem `json:"items"`
}

// SeedCategories returns the default categories supplied when no stored
// categories exist, so the menu is never empty on first run.
func SeedCategories() []MenuCategory {
	return []MenuCategory{
		{ID: "1", Name: "Appetizers", Description: "Start your meal with these delicious appetizers", Order: 1},
		{ID: "2", Name: "Main Course", Description: "Our signature main dishes", Order: 2},
		{ID: "3", Name: "Desserts", Description: "Sweet endings to your meal", Order: 3},
		{ID: "4", Name: "Beverages", Description: "Refreshing drinks and beverages", Order: 4},
	}
}
