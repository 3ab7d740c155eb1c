package entity

import "time"

// Customer cliente del negocio.
type Customer struct {
	ID        int64
	Name      string
	Document  string // NIT o cédula
	Email     string
	Phone     string
	Type      string // natural | juridica
	State     Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}
