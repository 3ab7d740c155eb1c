package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-ventas/internal/application/dto"
	"github.com/tu-usuario/pos-ventas/internal/application/sales"
	"github.com/tu-usuario/pos-ventas/internal/domain"
	"github.com/tu-usuario/pos-ventas/internal/domain/entity"
	"github.com/tu-usuario/pos-ventas/pkg/logger"
)

const saleErrorMessage = "Error procesando la venta..."

// SaleHandler expone el flujo de ventas sobre HTTP.
type SaleHandler struct {
	createSale *sales.CreateSaleUseCase
	query      *sales.QueryUseCase
	log        *logger.Logger
}

// NewSaleHandler crea el handler de ventas.
func NewSaleHandler(createSale *sales.CreateSaleUseCase, query *sales.QueryUseCase, log *logger.Logger) *SaleHandler {
	return &SaleHandler{createSale: createSale, query: query, log: log}
}

// Create procesa una venta completa: valida, descuenta stock y factura.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.SaleFailure{Success: false, Message: "cuerpo de la petición inválido"})
	}

	result, err := h.createSale.CreateSale(c.Context(), req.Normalize())
	if err != nil {
		var shortage *domain.StockShortageError
		switch {
		case errors.As(err, &shortage):
			return c.Status(fiber.StatusBadRequest).JSON(dto.SaleFailure{Success: false, Message: shortage.Error()})
		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.SaleFailure{Success: false, Message: err.Error()})
		default:
			h.log.Error().Err(err).Msg("error procesando venta")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.SaleFailure{Success: false, Message: saleErrorMessage})
		}
	}

	resp := dto.SaleResponse{
		Success:       true,
		Sale:          toSaleSummary(result.Sale),
		InvoiceNumber: result.Sale.InvoiceNumber,
	}
	if result.Invoice != nil {
		resp.Invoice = &dto.InvoiceRef{ID: result.Invoice.ID, Number: result.Invoice.Number}
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID devuelve una venta por su ID.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de venta inválido"})
	}
	sale, err := h.query.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		h.log.Error().Err(err).Int64("sale_id", id).Msg("error consultando venta")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
	return c.JSON(toSaleSummary(sale))
}

// List devuelve las ventas más recientes.
func (h *SaleHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	page.DefaultPage()

	saleList, err := h.query.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		h.log.Error().Err(err).Msg("error listando ventas")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
	out := make([]dto.SaleSummary, 0, len(saleList))
	for _, s := range saleList {
		out = append(out, toSaleSummary(s))
	}
	return c.JSON(out)
}

// Void anula una venta sin reponer stock.
func (h *SaleHandler) Void(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de venta inválido"})
	}
	if err := h.query.Void(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		default:
			h.log.Error().Err(err).Int64("sale_id", id).Msg("error anulando venta")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
		}
	}
	return c.JSON(fiber.Map{"success": true, "message": "venta anulada"})
}

func toSaleSummary(s *entity.Sale) dto.SaleSummary {
	return dto.SaleSummary{
		ID:            s.ID,
		InvoiceNumber: s.InvoiceNumber,
		Date:          s.CreatedAt.Format(time.RFC3339),
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
	}
}
