package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-ventas/internal/application/catalog"
	"github.com/tu-usuario/pos-ventas/internal/application/dto"
	"github.com/tu-usuario/pos-ventas/internal/domain"
	"github.com/tu-usuario/pos-ventas/pkg/logger"
)

// CustomerHandler expone el CRUD de clientes.
type CustomerHandler struct {
	uc  *catalog.CustomerUseCase
	log *logger.Logger
}

// NewCustomerHandler crea el handler de clientes.
func NewCustomerHandler(uc *catalog.CustomerUseCase, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, log: log}
}

// Create crea un cliente.
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}
	customer, err := h.uc.Create(req)
	if err != nil {
		return h.mapError(c, err, "error creando cliente")
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// GetByID obtiene un cliente por ID.
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	customer, err := h.uc.GetByID(id)
	if err != nil {
		return h.mapError(c, err, "error consultando cliente")
	}
	return c.JSON(customer)
}

// List lista clientes activos.
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()
	customers, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return h.mapError(c, err, "error listando clientes")
	}
	return c.JSON(customers)
}

// Retire retira un cliente.
func (h *CustomerHandler) Retire(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if err := h.uc.Retire(id); err != nil {
		return h.mapError(c, err, "error retirando cliente")
	}
	return c.JSON(fiber.Map{"code": "OK", "message": "cliente retirado"})
}

func (h *CustomerHandler) mapError(c *fiber.Ctx, err error, logMsg string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "cliente duplicado"})
	default:
		h.log.Error().Err(err).Msg(logMsg)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
}
