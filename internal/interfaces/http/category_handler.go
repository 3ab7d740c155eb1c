package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-ventas/internal/application/catalog"
	"github.com/tu-usuario/pos-ventas/internal/application/dto"
	"github.com/tu-usuario/pos-ventas/internal/domain"
	"github.com/tu-usuario/pos-ventas/pkg/logger"
)

// CategoryHandler expone el CRUD de categorías.
type CategoryHandler struct {
	uc  *catalog.CategoryUseCase
	log *logger.Logger
}

// NewCategoryHandler crea el handler de categorías.
func NewCategoryHandler(uc *catalog.CategoryUseCase, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, log: log}
}

// Create crea una categoría.
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}
	category, err := h.uc.Create(req)
	if err != nil {
		return h.mapError(c, err, "error creando categoría")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// GetByID obtiene una categoría por ID.
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	category, err := h.uc.GetByID(id)
	if err != nil {
		return h.mapError(c, err, "error consultando categoría")
	}
	return c.JSON(category)
}

// List lista categorías activas.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()
	categories, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return h.mapError(c, err, "error listando categorías")
	}
	return c.JSON(categories)
}

// Retire retira una categoría.
func (h *CategoryHandler) Retire(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if err := h.uc.Retire(id); err != nil {
		return h.mapError(c, err, "error retirando categoría")
	}
	return c.JSON(fiber.Map{"code": "OK", "message": "categoría retirada"})
}

func (h *CategoryHandler) mapError(c *fiber.Ctx, err error, logMsg string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "categoría no encontrada"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "categoría duplicada"})
	default:
		h.log.Error().Err(err).Msg(logMsg)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL_ERROR", Message: "error interno"})
	}
}
