package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-ventas/internal/application/dto"
	"github.com/tu-usuario/pos-ventas/internal/application/ledger"
	"github.com/tu-usuario/pos-ventas/internal/domain"
	"github.com/tu-usuario/pos-ventas/internal/domain/entity"
	"github.com/tu-usuario/pos-ventas/pkg/logger"
)

// InventoryHandler expone movimientos de stock y consulta de existencias.
type InventoryHandler struct {
	ledger *ledger.Ledger
	log    *logger.Logger
}

// NewInventoryHandler crea el handler de inventario.
func NewInventoryHandler(l *ledger.Ledger, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{ledger: l, log: log}
}

// RegisterMovement registra una entrada o salida manual de stock.
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var req dto.RegisterMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}

	result, err := h.ledger.RecordMovement(c.Context(), ledger.MovementInput{
		ProductID: req.ProductID,
		Direction: req.Direction,
		Quantity:  req.Quantity,
		Reason:    req.Reason,
	})
	if err != nil {
		var shortage *domain.StockShortageError
		switch {
		case errors.As(err, &shortage):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: shortage.Error()})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "movimiento inválido: direction entry|exit y quantity > 0"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		default:
			h.log.Error().Err(err).Int64("product_id", req.ProductID).Msg("error registrando movimiento")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(result.Movement))
}

// ListMovements devuelve la bitácora de un producto, más reciente primero.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de producto inválido"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()

	movements, err := h.ledger.History(c.Context(), productID, page.Limit, page.Offset)
	if err != nil {
		h.log.Error().Err(err).Int64("product_id", productID).Msg("error listando movimientos")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// GetStock devuelve la existencia actual de un producto.
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de producto inválido"})
	}
	_, stock, err := h.ledger.CheckAvailability(c.Context(), productID, 0)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		h.log.Error().Err(err).Int64("product_id", productID).Msg("error consultando stock")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
	return c.JSON(dto.StockResponse{ProductID: productID, CurrentStock: stock})
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Direction: m.Direction,
		Quantity:  m.Quantity,
		Before:    m.Before,
		After:     m.After,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}
