package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/pos-ventas/internal/domain/entity"
	"github.com/tu-usuario/pos-ventas/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL (usable con pool o tx).
// La tabla stock_movements es de solo inserción.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *MovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, direction, quantity, quantity_before, quantity_after, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	reason := (*string)(nil)
	if movement.Reason != "" {
		reason = &movement.Reason
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Direction,
		movement.Quantity, movement.Before, movement.After,
		reason, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto, más reciente primero.
func (r *MovementRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, direction, quantity, quantity_before, quantity_after, reason, created_at
		FROM stock_movements WHERE product_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var reason *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Direction, &m.Quantity,
			&m.Before, &m.After, &reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if reason != nil {
			m.Reason = *reason
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
