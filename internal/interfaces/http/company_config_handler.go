package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lavadero-api/internal/application/billing"
	"github.com/jhoicas/lavadero-api/internal/application/dto"
)

// CompanyConfigHandler datos fiscales de la empresa y estado del timbrado.
type CompanyConfigHandler struct {
	uc      *billing.CompanyConfigUseCase
	checker *billing.TimbradoChecker
}

// NewCompanyConfigHandler construye el handler.
func NewCompanyConfigHandler(uc *billing.CompanyConfigUseCase, checker *billing.TimbradoChecker) *CompanyConfigHandler {
	return &CompanyConfigHandler{uc: uc, checker: checker}
}

// Get GET /api/company-config
func (h *CompanyConfigHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/company-config (solo admin). Crea la configuración si no existe.
func (h *CompanyConfigHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyConfigRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TimbradoStatus GET /api/timbrado/status
// Siempre 200 mientras se pueda leer la base: la UI muestra el veredicto.
func (h *CompanyConfigHandler) TimbradoStatus(c *fiber.Ctx) error {
	out, err := h.checker.Status(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
