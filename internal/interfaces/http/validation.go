package http

import (
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lavadero-api/internal/application/dto"
	"github.com/jhoicas/lavadero-api/internal/domain/money"
)

var validate = validator.New()

func init() {
	// money.Amount como numérico para que min/gt/required no entren en el struct.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(money.Amount); ok {
			return v.Int64()
		}
		return nil
	}, money.Amount{})
}

// bindAndValidate parsea el body JSON y aplica los tags de validator.
// Devuelve false si ya escribió la respuesta de error.
func bindAndValidate(c *fiber.Ctx, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, badBody(c)
	}
	return validateStruct(c, req)
}

// bindQuery igual que bindAndValidate pero sobre la query string.
func bindQuery(c *fiber.Ctx, req interface{}) (bool, error) {
	if err := c.QueryParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	return validateStruct(c, req)
}

func validateStruct(c *fiber.Ctx, req interface{}) (bool, error) {
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		if ves, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ves {
				fields[fe.Namespace()] = fe.Tag()
			}
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION_FAILED",
			Message: "datos inválidos",
			Details: fields,
		})
	}
	return true, nil
}

func fmtInt(n int) string { return strconv.Itoa(n) }
