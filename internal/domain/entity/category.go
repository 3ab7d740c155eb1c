package entity

import "time"

// Category categoría de productos.
type Category struct {
	ID          int64
	Name        string
	Description string
	State       Lifecycle
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
