package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lavadero-api/internal/application/billing"
	"github.com/jhoicas/lavadero-api/internal/application/dto"
	"github.com/jhoicas/lavadero-api/internal/domain"
	"github.com/jhoicas/lavadero-api/internal/domain/fiscal"
)

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// writeError
// ──────────────────────────────────────────────────────────────────────────────

func TestWriteError_Mapeo(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrEmptyCart, http.StatusBadRequest, "EMPTY_CART"},
		{fmt.Errorf("%w: cantidad", domain.ErrInvalidInput), http.StatusBadRequest, "VALIDATION_FAILED"},
		{fmt.Errorf("%w: servicio", domain.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrNotConfigured, http.StatusNotFound, "NOT_CONFIGURED"},
		{domain.ErrWorkOrderDelivered, http.StatusConflict, "WORK_ORDER_DELIVERED"},
		{domain.ErrInsufficientStock, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{fiscal.ErrSequenceExhausted, http.StatusConflict, "INVOICE_SEQUENCE_EXHAUSTED"},
		{domain.ErrUsernameTaken, http.StatusConflict, "USERNAME_TAKEN"},
		{domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{fmt.Errorf("%w: insertar", domain.ErrPersistence), http.StatusServiceUnavailable, "PERSISTENCE_FAILED"},
		{domain.ErrUserNotFound, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{errors.New("inesperado"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeError(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decodeError(t, resp).Code)
		})
	}
}

func TestWriteError_PersistenciaPrevaleceSobreDuplicado(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeError(c, fmt.Errorf("%w: %w", domain.ErrPersistence, fmt.Errorf("insert sale: %w", domain.ErrDuplicate)))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "PERSISTENCE_FAILED", decodeError(t, resp).Code)
}

func TestWriteError_TimbradoInvalido(t *testing.T) {
	verdict := fiscal.Verdict{
		BlocksInvoicing: true,
		DaysLeft:        -3,
		Status:          fiscal.StatusExpired,
		ErrorMessage:    "timbrado vencido hace 3 días",
	}
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeError(c, fmt.Errorf("emitir: %w", &billing.TimbradoError{Verdict: verdict}))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "TIMBRADO_INVALID", body.Code)
	assert.Equal(t, "timbrado vencido hace 3 días", body.Message)
	assert.Equal(t, "EXPIRED", body.Details["status"])
	assert.Equal(t, "-3", body.Details["days_left"])
	assert.Equal(t, billing.Remediation, body.Details["remediation"])
}

// ──────────────────────────────────────────────────────────────────────────────
// bindAndValidate
// ──────────────────────────────────────────────────────────────────────────────

func validateApp() *fiber.App {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var in dto.CreateSaleRequest
		if ok, err := bindAndValidate(c, &in); !ok {
			return err
		}
		return c.JSON(fiber.Map{"items": len(in.Items), "first_price": firstPrice(in)})
	})
	return app
}

func firstPrice(in dto.CreateSaleRequest) string {
	if len(in.Items) == 0 || in.Items[0].UnitPrice == nil {
		return ""
	}
	return in.Items[0].UnitPrice.String()
}

func post(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestBindAndValidate_CarritoValido(t *testing.T) {
	resp := post(t, validateApp(), `{
		"payment_method": "efectivo",
		"items": [{"type": "adhoc", "name": "Lavado de motor", "unit_price": "50000", "quantity": 1}]
	}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(1), body["items"])
	assert.Equal(t, "50000", body["first_price"])
}

func TestBindAndValidate_CarritoVacioPasaAlCasoDeUso(t *testing.T) {
	resp := post(t, validateApp(), `{"payment_method": "tarjeta", "items": []}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "el carrito vacío lo rechaza el caso de uso con EMPTY_CART")
}

func TestBindAndValidate_Errores(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"medio de pago desconocido", `{"payment_method": "cheque", "items": []}`},
		{"tipo de línea inválido", `{"payment_method": "efectivo", "items": [{"type": "regalo", "quantity": 1}]}`},
		{"combo sin combo_id", `{"payment_method": "efectivo", "items": [{"type": "combo", "quantity": 1}]}`},
		{"servicio sin service_id", `{"payment_method": "efectivo", "items": [{"type": "service", "quantity": 1}]}`},
		{"cantidad cero", `{"payment_method": "efectivo", "items": [{"type": "adhoc", "name": "x", "unit_price": "1000", "quantity": 0}]}`},
		{"customer_id no uuid", `{"customer_id": "abc", "payment_method": "efectivo", "items": []}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := post(t, validateApp(), tc.body)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, "VALIDATION_FAILED", body.Code)
			assert.NotEmpty(t, body.Details)
		})
	}
}

func TestBindAndValidate_JSONMalformado(t *testing.T) {
	resp := post(t, validateApp(), `{"payment_method": `)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Code)
}

func TestBindAndValidate_ImporteConDecimales(t *testing.T) {
	resp := post(t, validateApp(), `{"payment_method": "efectivo", "items": [{"type": "adhoc", "name": "x", "unit_price": "1500.50", "quantity": 1}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "el guaraní no admite decimales")
}
