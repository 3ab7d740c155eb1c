package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-ventas/internal/application/billing"
	"github.com/tu-usuario/pos-ventas/internal/application/dto"
	"github.com/tu-usuario/pos-ventas/internal/domain"
	"github.com/tu-usuario/pos-ventas/pkg/logger"
)

// InvoiceHandler expone la descarga de facturas en PDF.
type InvoiceHandler struct {
	pdf *billing.PDFUseCase
	log *logger.Logger
}

// NewInvoiceHandler crea el handler de facturas.
func NewInvoiceHandler(pdf *billing.PDFUseCase, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{pdf: pdf, log: log}
}

// DownloadPDF genera y devuelve el PDF de una factura.
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	invoiceID := c.Params("id")
	if invoiceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de factura requerido"})
	}

	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
		}
		h.log.Error().Err(err).Str("invoice_id", invoiceID).Msg("error generando PDF de factura")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error generando PDF"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}
