package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusVoided    = "voided"
)

// Sale cabecera de una venta cerrada en caja. InvoiceNumber es el consecutivo
// legible por humanos (YYYYMMDD-NNNNNN), único y distinto del ID interno.
// Snapshot guarda la foto serializada de cliente y líneas (ver snapshot.SaleSnapshot).
type Sale struct {
	ID            int64
	InvoiceNumber string
	CustomerName  string
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	Status        string // completed | voided
	Snapshot      string // JSON versionado con cliente + líneas
	CreatedAt     time.Time
}
