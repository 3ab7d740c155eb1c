package sales

import (
	"context"
	"fmt"

	"github.com/tu-usuario/pos-ventas/internal/domain"
	"github.com/tu-usuario/pos-ventas/internal/domain/entity"
	"github.com/tu-usuario/pos-ventas/internal/domain/repository"
)

// QueryUseCase lecturas y anulación de ventas.
type QueryUseCase struct {
	saleRepo repository.SaleRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(saleRepo repository.SaleRepository) *QueryUseCase {
	return &QueryUseCase{saleRepo: saleRepo}
}

// Get obtiene una venta por ID.
func (uc *QueryUseCase) Get(ctx context.Context, id int64) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// List lista ventas paginadas, más reciente primero.
func (uc *QueryUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	return uc.saleRepo.List(limit, offset)
}

// Void anula una venta completada (completed -> voided). No repone inventario:
// la reposición, si aplica, se registra aparte como movimiento de entrada.
func (uc *QueryUseCase) Void(ctx context.Context, id int64) error {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if sale.Status != entity.SaleStatusCompleted {
		return fmt.Errorf("%w: la venta ya está anulada", domain.ErrConflict)
	}
	// La lectura de arriba puede quedar obsoleta bajo concurrencia; la
	// transición guardada en el repositorio es la que decide.
	return uc.saleRepo.UpdateStatus(id, entity.SaleStatusCompleted, entity.SaleStatusVoided)
}
