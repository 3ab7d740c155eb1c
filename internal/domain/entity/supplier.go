package entity

import "time"

// Supplier proveedor de mercancía.
type Supplier struct {
	ID        int64
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Address   string
	State     Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}
