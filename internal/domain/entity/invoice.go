package entity

import "time"

// Invoice documento de factura generado para una venta ya confirmada.
// Se crea después del commit de la venta (mejor esfuerzo): una venta puede
// existir sin factura si la generación falló; nunca al revés.
type Invoice struct {
	ID        string
	SaleID    int64
	Number    string // mismo consecutivo de la venta
	CreatedAt time.Time
}
