package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lavadero-api/internal/application/billing"
	"github.com/jhoicas/lavadero-api/internal/application/dto"
	"github.com/jhoicas/lavadero-api/internal/domain"
	"github.com/jhoicas/lavadero-api/internal/domain/fiscal"
)

// errorMapping traducción de un error de dominio a status + código de la API.
type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: ErrUserNotFound antes que ErrNotFound genérico y ErrPersistence
// antes que ErrDuplicate, para que una falla reintentable no se informe como 409.
var errorMappings = []errorMapping{
	{domain.ErrEmptyCart, fiber.StatusBadRequest, "EMPTY_CART"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION_FAILED"},
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrNotConfigured, fiber.StatusNotFound, "NOT_CONFIGURED"},
	{domain.ErrWorkOrderDelivered, fiber.StatusConflict, "WORK_ORDER_DELIVERED"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{fiscal.ErrSequenceExhausted, fiber.StatusConflict, "INVOICE_SEQUENCE_EXHAUSTED"},
	{domain.ErrUsernameTaken, fiber.StatusConflict, "USERNAME_TAKEN"},
	{domain.ErrPersistence, fiber.StatusServiceUnavailable, "PERSISTENCE_FAILED"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// writeError responde con el ErrorResponse que corresponde a err.
// Los rechazos del timbrado devuelven 403 TIMBRADO_INVALID con el veredicto en details.
func writeError(c *fiber.Ctx, err error) error {
	var te *billing.TimbradoError
	if errors.As(err, &te) {
		return c.Status(fiber.StatusForbidden).JSON(timbradoRejection(te.Verdict))
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func timbradoRejection(v fiscal.Verdict) dto.ErrorResponse {
	return dto.ErrorResponse{
		Code:    "TIMBRADO_INVALID",
		Message: v.ErrorMessage,
		Details: map[string]string{
			"status":      string(v.Status),
			"days_left":   fmtInt(v.DaysLeft),
			"remediation": billing.Remediation,
		},
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
