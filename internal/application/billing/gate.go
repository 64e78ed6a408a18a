package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/lavadero-api/internal/domain"
	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/domain/fiscal"
	"github.com/jhoicas/lavadero-api/internal/domain/repository"
)

// Remediation indicación para el operador cuando el timbrado bloquea la facturación.
const Remediation = "renueve el timbrado"

// TimbradoError rechazo de una operación fiscal. errors.Is(err, domain.ErrTimbradoInvalid) es true.
type TimbradoError struct {
	Verdict fiscal.Verdict
}

func (e *TimbradoError) Error() string {
	return fmt.Sprintf("%s: %s", domain.ErrTimbradoInvalid, e.Verdict.ErrorMessage)
}

func (e *TimbradoError) Is(target error) bool { return target == domain.ErrTimbradoInvalid }

// Guard ejecuta op solo si el timbrado permite facturar en today.
// op recibe la autorización para copiar establecimiento, punto y número al documento.
func Guard[T any](auth *fiscal.Authorization, today time.Time, op func(*fiscal.Authorization) (T, error)) (T, error) {
	verdict := fiscal.CheckValidity(auth, today)
	if verdict.BlocksInvoicing {
		var zero T
		return zero, &TimbradoError{Verdict: verdict}
	}
	return op(auth)
}

// TimbradoChecker lee la configuración vigente y la evalúa contra la fecha del negocio.
type TimbradoChecker struct {
	configRepo repository.CompanyConfigRepository
	clock      Clock
	loc        *time.Location
}

// NewTimbradoChecker construye el checker. loc es la zona horaria del negocio.
func NewTimbradoChecker(configRepo repository.CompanyConfigRepository, clock Clock, loc *time.Location) *TimbradoChecker {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &TimbradoChecker{configRepo: configRepo, clock: clock, loc: loc}
}

// Now hora actual según el reloj inyectado.
func (c *TimbradoChecker) Now() time.Time { return c.clock() }

// Today fecha calendario del negocio.
func (c *TimbradoChecker) Today() time.Time {
	return fiscal.CivilDate(c.clock(), c.loc)
}

// Check devuelve la configuración (nil si no existe) y el veredicto para hoy.
func (c *TimbradoChecker) Check(ctx context.Context) (*entity.CompanyConfig, fiscal.Verdict, error) {
	cfg, err := c.configRepo.Get(ctx)
	if err != nil {
		return nil, fiscal.Verdict{}, fmt.Errorf("%w: leer configuración: %w", domain.ErrPersistence, err)
	}
	return cfg, fiscal.CheckValidity(cfg.Authorization(), c.Today()), nil
}
