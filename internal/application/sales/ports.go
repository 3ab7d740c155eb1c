package sales

import (
	"context"

	"github.com/tu-usuario/pos-ventas/internal/domain/entity"
	"github.com/tu-usuario/pos-ventas/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios de venta e inventario. Todo lo escrito dentro de fn se confirma
// o se revierte como un solo conjunto.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// InvoiceCreator colaborador de facturación. Se invoca después del commit de la
// venta y es mejor esfuerzo: su error nunca revierte la venta ya confirmada.
type InvoiceCreator interface {
	CreateForSale(ctx context.Context, sale *entity.Sale) (*entity.Invoice, error)
}
