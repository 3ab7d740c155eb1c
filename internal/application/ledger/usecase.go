package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/pos-ventas/internal/domain"
	"github.com/tu-usuario/pos-ventas/internal/domain/entity"
	"github.com/tu-usuario/pos-ventas/internal/domain/repository"
)

// Ledger mantiene la existencia por producto y la bitácora de movimientos.
// Cada mutación escribe un movimiento inmutable con foto antes/después y aplica
// el delta sobre products.stock; las salidas usan un update condicional
// (stock >= solicitado) para que el stock nunca quede negativo, ni siquiera
// bajo ventas concurrentes.
type Ledger struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
}

// New construye el motor de inventario. productRepo y movRepo van atados al pool
// y se usan solo para operaciones de lectura o de transacción propia.
func New(txRunner TxRunner, productRepo repository.ProductRepository, movRepo repository.MovementRepository) *Ledger {
	return &Ledger{txRunner: txRunner, productRepo: productRepo, movRepo: movRepo}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	ProductID int64
	Direction string // entry | exit
	Quantity  int64  // > 0
	Reason    string
}

// MovementResult movimiento registrado y stock resultante.
type MovementResult struct {
	Movement *entity.StockMovement
	NewStock int64
}

// RecordMovementInTx registra un movimiento usando los repositorios del caller
// (misma transacción). No abre transacción propia: el caller decide el límite
// de atomicidad y hace rollback si esto retorna error.
func (l *Ledger) RecordMovementInTx(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	input MovementInput,
) (*MovementResult, error) {
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.Direction != entity.MovementEntry && input.Direction != entity.MovementExit {
		return nil, domain.ErrInvalidInput
	}

	product, err := productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var newStock int64
	switch input.Direction {
	case entity.MovementExit:
		// Update condicional: 0 filas afectadas = stock insuficiente. Es la guarda
		// autoritativa; la lectura de arriba solo aporta nombre y mensaje.
		updated, ok, err := productRepo.DecrementStock(input.ProductID, input.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &domain.StockShortageError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   input.Quantity,
			}
		}
		newStock = updated
	case entity.MovementEntry:
		updated, err := productRepo.IncrementStock(input.ProductID, input.Quantity)
		if err != nil {
			return nil, err
		}
		newStock = updated
	}

	// La foto antes/después se deriva del stock retornado por el propio update,
	// no de la lectura previa: bajo concurrencia la lectura puede quedar vieja.
	before := newStock - input.Quantity
	if input.Direction == entity.MovementExit {
		before = newStock + input.Quantity
	}
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		Direction: input.Direction,
		Quantity:  input.Quantity,
		Before:    before,
		After:     newStock,
		Reason:    input.Reason,
		CreatedAt: time.Now(),
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return &MovementResult{Movement: mov, NewStock: newStock}, nil
}

// RecordMovement registra un movimiento en una transacción propia (entrada
// manual de mercancía, ajustes). Commit si todo ok, rollback si algo falla.
func (l *Ledger) RecordMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	var result *MovementResult
	err := l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error {
		r, err := l.RecordMovementInTx(productRepo, movRepo, input)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CheckAvailability verifica de forma no bloqueante si hay stock para la
// cantidad pedida. Es solo un prechequeo: no toma locks, así que el caller debe
// re-verificar atómicamente al momento de descontar.
func (l *Ledger) CheckAvailability(ctx context.Context, productID, quantity int64) (bool, int64, error) {
	product, err := l.productRepo.GetByID(productID)
	if err != nil {
		return false, 0, err
	}
	if product == nil {
		return false, 0, domain.ErrNotFound
	}
	return product.Stock >= quantity, product.Stock, nil
}

// History lista los movimientos de un producto, más reciente primero.
func (l *Ledger) History(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return l.movRepo.ListByProduct(productID, limit, offset)
}
