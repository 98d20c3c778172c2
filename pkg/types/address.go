package types

import "strings"

// Address is the shipping destination captured at checkout, stored as jsonb.
type Address struct {
	FullName    string `json:"full_name"`
	Street      string `json:"street"`
	Apartment   string `json:"apartment,omitempty"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// Complete reports whether the fields required for delivery are present.
func (a Address) Complete() bool {
	required := []string{a.FullName, a.Street, a.City, a.ZipCode, a.Country}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}
