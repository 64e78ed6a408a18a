package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lavadero-api/internal/application/dto"
	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/domain/fiscal"
)

// timbradoChecker contrato mínimo del middleware. Lo implementa *billing.TimbradoChecker.
type timbradoChecker interface {
	Check(ctx context.Context) (*entity.CompanyConfig, fiscal.Verdict, error)
}

// RequireActiveTimbrado corta las rutas de facturación si el timbrado no permite facturar hoy.
// El caso de uso vuelve a verificar dentro del flujo; esto adelanta el rechazo.
//
// Comportamiento:
//   - 403 TIMBRADO_INVALID → timbrado vencido o inexistente (details: status, days_left, remediation).
//   - 503 TIMBRADO_CHECK_FAILED → no se pudo leer la configuración.
//   - Con timbrado por vencer agrega el header X-Timbrado-Warning y continúa.
func RequireActiveTimbrado(checker timbradoChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, verdict, err := checker.Check(c.UserContext())
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "TIMBRADO_CHECK_FAILED",
				Message: "no se pudo verificar el timbrado, intente más tarde",
			})
		}
		if verdict.BlocksInvoicing {
			return c.Status(fiber.StatusForbidden).JSON(timbradoRejection(verdict))
		}
		if verdict.Warning() {
			c.Set("X-Timbrado-Warning", verdict.WarningMessage)
		}
		return c.Next()
	}
}
