package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The front-end maps these codes to display messages.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // malformed request body
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // malformed id
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // value out of range
	ValidationRequired      = "VALIDATION_REQUIRED"       // required field missing
	ValidationInvalidPeriod = "VALIDATION_INVALID_PERIOD" // unknown summary period

	// ==================== Bill (BILL_) ====================
	BillItemNameRequired = "BILL_ITEM_NAME_REQUIRED" // item name missing
	BillInvalidUnitPrice = "BILL_INVALID_UNIT_PRICE" // price not positive
	BillEmpty            = "BILL_EMPTY"              // no items on the bill

	// ==================== Menu (MENU_) ====================
	MenuItemInvalid          = "MENU_ITEM_INVALID"           // name/category/price missing
	MenuCategoryNameRequired = "MENU_CATEGORY_NAME_REQUIRED" // category name missing

	// ==================== Profile (PROFILE_) ====================
	ProfileEmpty = "PROFILE_EMPTY" // all profile fields blank

	// ==================== Import (IMPORT_) ====================
	ImportInvalidDocument   = "IMPORT_INVALID_DOCUMENT"   // not valid JSON
	ImportMissingItems      = "IMPORT_MISSING_ITEMS"      // items key absent
	ImportMissingCategories = "IMPORT_MISSING_CATEGORIES" // categories key absent

	// ==================== Storage (STORAGE_) ====================
	StorageSaveFailed = "STORAGE_SAVE_FAILED" // durable store write failed

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unexpected failure
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // database failure
	InternalRenderError   = "INTERNAL_RENDER_ERROR"   // document rendering failed
)
