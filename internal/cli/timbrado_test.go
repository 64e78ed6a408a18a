package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/lavadero-api/internal/application/dto"
)

func TestPrintStatus_Vigente(t *testing.T) {
	var buf bytes.Buffer
	printStatus(&buf, &dto.TimbradoStatusResponse{
		IsValid:        true,
		DaysLeft:       12,
		Status:         "EXPIRING_SOON",
		Warning:        "el timbrado vence en 12 días",
		TimbradoNumber: "12345678",
		ValidUntil:     "2026-03-22",
	})
	out := buf.String()
	assert.Contains(t, out, "EXPIRING_SOON")
	assert.Contains(t, out, "12345678")
	assert.Contains(t, out, "2026-03-22")
	assert.Contains(t, out, "vence en 12 días")
	assert.NotContains(t, out, "Error:")
}

func TestPrintStatus_SinConfiguracion(t *testing.T) {
	var buf bytes.Buffer
	printStatus(&buf, &dto.TimbradoStatusResponse{
		BlocksInvoicing: true,
		Status:          "NOT_CONFIGURED",
		Error:           "no hay timbrado configurado",
	})
	out := buf.String()
	assert.Contains(t, out, "NOT_CONFIGURED")
	assert.Contains(t, out, "no hay timbrado configurado")
	assert.NotContains(t, out, "Timbrado:")
}
