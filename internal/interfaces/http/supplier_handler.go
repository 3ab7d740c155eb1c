package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-ventas/internal/application/catalog"
	"github.com/tu-usuario/pos-ventas/internal/application/dto"
	"github.com/tu-usuario/pos-ventas/internal/domain"
	"github.com/tu-usuario/pos-ventas/pkg/logger"
)

// SupplierHandler expone el CRUD de proveedores.
type SupplierHandler struct {
	uc  *catalog.SupplierUseCase
	log *logger.Logger
}

// NewSupplierHandler crea el handler de proveedores.
func NewSupplierHandler(uc *catalog.SupplierUseCase, log *logger.Logger) *SupplierHandler {
	return &SupplierHandler{uc: uc, log: log}
}

// Create crea un proveedor.
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}
	supplier, err := h.uc.Create(req)
	if err != nil {
		return h.mapError(c, err, "error creando proveedor")
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

// GetByID obtiene un proveedor por ID.
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	supplier, err := h.uc.GetByID(id)
	if err != nil {
		return h.mapError(c, err, "error consultando proveedor")
	}
	return c.JSON(supplier)
}

// List lista proveedores activos.
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()
	suppliers, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return h.mapError(c, err, "error listando proveedores")
	}
	return c.JSON(suppliers)
}

// Retire retira un proveedor.
func (h *SupplierHandler) Retire(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if err := h.uc.Retire(id); err != nil {
		return h.mapError(c, err, "error retirando proveedor")
	}
	return c.JSON(fiber.Map{"code": "OK", "message": "proveedor retirado"})
}

func (h *SupplierHandler) mapError(c *fiber.Ctx, err error, logMsg string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proveedor no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "proveedor duplicado"})
	default:
		h.log.Error().Err(err).Msg(logMsg)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
}
