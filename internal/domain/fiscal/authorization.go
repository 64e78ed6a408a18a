package fiscal

import (
	"errors"
	"fmt"

	"github.com/jhoicas/lavadero-api/internal/domain"
)

// ValidateAuthorization valida un timbrado al momento de configurarlo.
// Devuelve todos los problemas encontrados, envueltos en domain.ErrInvalidInput.
func ValidateAuthorization(auth Authorization) error {
	var errs []error
	if auth.Number == "" {
		errs = append(errs, errors.New("número de timbrado requerido"))
	} else if !isDigits(auth.Number) {
		errs = append(errs, fmt.Errorf("número de timbrado %q debe ser numérico", auth.Number))
	}
	if auth.ValidFrom.IsZero() || auth.ValidUntil.IsZero() {
		errs = append(errs, errors.New("fechas de vigencia requeridas"))
	} else if !dateOnly(auth.ValidUntil).After(dateOnly(auth.ValidFrom)) {
		errs = append(errs, errors.New("la fecha de vencimiento debe ser posterior a la fecha de inicio"))
	}
	if !IsValidCode(auth.Establishment) {
		errs = append(errs, fmt.Errorf("establecimiento %q debe tener 3 dígitos", auth.Establishment))
	}
	if !IsValidCode(auth.PointOfSale) {
		errs = append(errs, fmt.Errorf("punto de expedición %q debe tener 3 dígitos", auth.PointOfSale))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
