package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/pos-ventas/internal/domain/entity"
	"github.com/tu-usuario/pos-ventas/internal/domain/repository"
)

// InvoiceUseCase crea el documento de factura para una venta ya confirmada.
// Implementa sales.InvoiceCreator: se invoca fuera de la transacción de la
// venta y sus errores se tratan como éxito parcial en la respuesta.
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(invoiceRepo repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{invoiceRepo: invoiceRepo}
}

// CreateForSale crea la factura con el mismo consecutivo de la venta.
func (uc *InvoiceUseCase) CreateForSale(ctx context.Context, sale *entity.Sale) (*entity.Invoice, error) {
	inv := &entity.Invoice{
		ID:        uuid.New().String(),
		SaleID:    sale.ID,
		Number:    sale.InvoiceNumber,
		CreatedAt: time.Now(),
	}
	if err := uc.invoiceRepo.Create(inv); err != nil {
		return nil, fmt.Errorf("crear factura de la venta %d: %w", sale.ID, err)
	}
	return inv, nil
}
