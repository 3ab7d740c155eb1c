package dto

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID int64  `json:"product_id"`
	Direction string `json:"direction"` // entry | exit
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason,omitempty"`
}

// MovementResponse movimiento en respuestas.
type MovementResponse struct {
	ID        string `json:"id"`
	ProductID int64  `json:"product_id"`
	Direction string `json:"direction"`
	Quantity  int64  `json:"quantity"`
	Before    int64  `json:"quantity_before"`
	After     int64  `json:"quantity_after"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"created_at"`
}

// StockResponse respuesta de GET /api/products/:id/stock.
type StockResponse struct {
	ProductID    int64 `json:"product_id"`
	CurrentStock int64 `json:"current_stock"`
}
