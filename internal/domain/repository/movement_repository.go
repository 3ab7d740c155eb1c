package repository

import "github.com/tu-usuario/pos-ventas/internal/domain/entity"

// MovementRepository define el puerto de persistencia para StockMovement.
// Los movimientos son de solo inserción: no existe Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID int64, limit, offset int) ([]*entity.StockMovement, error)
}
