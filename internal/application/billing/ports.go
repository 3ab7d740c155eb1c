package billing

import (
	"context"

	"github.com/tu-usuario/pos-ventas/internal/domain/entity"
	"github.com/tu-usuario/pos-ventas/internal/domain/snapshot"
)

// InvoicePDFGenerator renderiza la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, sale *entity.Sale, snap snapshot.SaleSnapshot) ([]byte, error)
}
