package billing

import (
	"context"
	"fmt"

	"github.com/tu-usuario/pos-ventas/internal/domain"
	"github.com/tu-usuario/pos-ventas/internal/domain/repository"
	"github.com/tu-usuario/pos-ventas/internal/domain/snapshot"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura a partir de
// la foto de la venta: el detalle sale del snapshot versionado, no de tablas
// normalizadas de líneas.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	saleRepo    repository.SaleRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	saleRepo repository.SaleRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, saleRepo: saleRepo, generator: generator}
}

// DownloadInvoicePDF recupera factura, venta y foto, y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura o la venta no existen.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	sale, err := uc.saleRepo.GetByID(inv.SaleID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}

	snap, err := snapshot.Decode(sale.Snapshot)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: %w", err)
	}

	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, inv, sale, snap)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	return pdfBytes, fmt.Sprintf("factura_%s.pdf", inv.Number), nil
}
