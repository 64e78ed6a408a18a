package billing

import (
	"context"

	"github.com/jhoicas/lavadero-api/internal/application/dto"
)

// Status estado del timbrado para la UI. No falla si no hay configuración: informa NOT_CONFIGURED.
func (c *TimbradoChecker) Status(ctx context.Context) (*dto.TimbradoStatusResponse, error) {
	cfg, v, err := c.Check(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.TimbradoStatusResponse{
		IsValid:         v.IsValid,
		BlocksInvoicing: v.BlocksInvoicing,
		DaysLeft:        v.DaysLeft,
		Status:          string(v.Status),
		Error:           v.ErrorMessage,
		Warning:         v.WarningMessage,
	}
	if auth := cfg.Authorization(); auth != nil {
		out.TimbradoNumber = auth.Number
		out.ValidUntil = auth.ValidUntil.Format(dto.DateLayout)
	}
	return out, nil
}
