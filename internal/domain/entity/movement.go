package entity

import "time"

// Direcciones de movimiento de inventario.
const (
	MovementEntry = "entry" // entrada
	MovementExit  = "exit"  // salida
)

// StockMovement registro inmutable de un cambio de existencia: dirección, cantidad
// y foto del stock antes y después. Se crea una vez por mutación del inventario y
// nunca se actualiza ni se borra. Invariante: After = Before ± Quantity según la
// dirección.
type StockMovement struct {
	ID        string
	ProductID int64
	Direction string // entry | exit
	Quantity  int64  // siempre > 0
	Before    int64
	After     int64
	Reason    string // factura, ajuste, recepción de proveedor, etc.
	CreatedAt time.Time
}
