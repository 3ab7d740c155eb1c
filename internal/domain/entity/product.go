package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su existencia disponible.
// Stock es la cantidad en mano (entera, nunca negativa); solo el motor de
// inventario la modifica, siempre mediante operaciones de delta validadas.
type Product struct {
	ID         int64
	CategoryID *int64
	SKU        string
	Name       string
	Price      decimal.Decimal // precio de venta
	TaxRate    decimal.Decimal // 0, 0.05, 0.19
	Stock      int64
	State      Lifecycle
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
