package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-ventas/internal/application/catalog"
	"github.com/tu-usuario/pos-ventas/internal/application/dto"
	"github.com/tu-usuario/pos-ventas/internal/domain"
	"github.com/tu-usuario/pos-ventas/pkg/logger"
)

// ProductHandler expone el CRUD de productos.
type ProductHandler struct {
	uc  *catalog.ProductUseCase
	log *logger.Logger
}

// NewProductHandler crea el handler de productos.
func NewProductHandler(uc *catalog.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// Create crea un producto.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}
	product, err := h.uc.Create(req)
	if err != nil {
		return h.mapError(c, err, "error creando producto")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GetByID obtiene un producto por ID.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	product, err := h.uc.GetByID(id)
	if err != nil {
		return h.mapError(c, err, "error consultando producto")
	}
	return c.JSON(product)
}

// Update actualiza los campos editables de un producto.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}
	product, err := h.uc.Update(id, req)
	if err != nil {
		return h.mapError(c, err, "error actualizando producto")
	}
	return c.JSON(product)
}

// List lista productos activos.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()
	products, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return h.mapError(c, err, "error listando productos")
	}
	return c.JSON(products)
}

// Retire retira un producto del catálogo.
func (h *ProductHandler) Retire(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if err := h.uc.Retire(id); err != nil {
		return h.mapError(c, err, "error retirando producto")
	}
	return c.JSON(fiber.Map{"code": "OK", "message": "producto retirado"})
}

func (h *ProductHandler) mapError(c *fiber.Ctx, err error, logMsg string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "producto duplicado"})
	default:
		h.log.Error().Err(err).Msg(logMsg)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
