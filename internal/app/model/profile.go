package model

// RestaurantProfile is the single restaurant identity printed on every bill.
// All fields are optional; an all-empty profile is treated as "not set".
type RestaurantProfile struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	TaxID   string `json:"tax_id"`
}

// IsEmpty reports whether no field of the profile has been filled in.
func (p RestaurantProfile) IsEmpty() bool {
	return p.Name == "" && p.Address == "" && p.Phone == "" && p.TaxID == ""
}
