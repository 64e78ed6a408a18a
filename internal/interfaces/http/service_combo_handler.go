package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lavadero-api/internal/application/catalog"
	"github.com/jhoicas/lavadero-api/internal/application/dto"
)

// ServiceComboHandler combos de servicios.
type ServiceComboHandler struct {
	uc *catalog.ComboUseCase
}

// NewServiceComboHandler construye el handler.
func NewServiceComboHandler(uc *catalog.ComboUseCase) *ServiceComboHandler {
	return &ServiceComboHandler{uc: uc}
}

// Create POST /api/service-combos
func (h *ServiceComboHandler) Create(c *fiber.Ctx) error {
	var in dto.ServiceComboRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/service-combos?active=true
func (h *ServiceComboHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), c.QueryBool("active", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/service-combos/:id (incluye los servicios y el precio regular)
func (h *ServiceComboHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/service-combos/:id
func (h *ServiceComboHandler) Update(c *fiber.Ctx) error {
	var in dto.ServiceComboRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deactivate DELETE /api/service-combos/:id (baja lógica).
func (h *ServiceComboHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
