package model

// BillItem is one line of a bill. LineTotal is always Quantity * UnitPrice.
type BillItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// Totals holds the derived money fields of a bill. They are kept unrounded;
// rounding to two decimals happens only when formatting for display or export.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	TaxAmount  float64 `json:"tax_amount"`
	GrandTotal float64 `json:"grand_total"`
}

// Bill is the itemized bill being built for one table. Subtotal, TaxAmount and
// GrandTotal are a pure function of (Items, TaxRatePercent) and are recomputed
// on every mutation; callers never observe them stale.
type Bill struct {
	Profile        RestaurantProfile `json:"profile"`
	TableNumber    string            `json:"table_number"`
	CustomerName   string            `json:"customer_name"`
	Items          []BillItem        `json:"items"`
	TaxRatePercent float64           `json:"tax_rate_percent"`
	Subtotal       float64           `json:"subtotal"`
	TaxAmount      float64           `json:"tax_amount"`
	GrandTotal     float64           `json:"grand_total"`
	Date           string            `json:"date"`
}

// DefaultTaxRatePercent is the rate a fresh bill starts with.
const DefaultTaxRatePercent = 5

// BillDateFormat is the dd/mm/yyyy display format used on bills.
const BillDateFormat = "02/01/2006"
