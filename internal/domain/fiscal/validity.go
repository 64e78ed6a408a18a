// Package fiscal reúne las reglas del timbrado paraguayo: vigencia de la
// autorización, numeración de facturas EEE-PPP-NNNNNNN y liquidación del IVA.
// Todo el paquete es puro: el llamador provee la fecha actual.
package fiscal

import (
	"fmt"
	"time"
)

// WarningDays días previos al vencimiento en los que se advierte sin bloquear.
const WarningDays = 30

// Status clasificación del veredicto para la UI.
type Status string

const (
	StatusNotConfigured Status = "NOT_CONFIGURED"
	StatusExpired       Status = "EXPIRED"
	StatusExpiringSoon  Status = "EXPIRING_SOON"
	StatusValid         Status = "VALID"
)

// Authorization timbrado vigente de la empresa.
type Authorization struct {
	Number        string
	ValidFrom     time.Time
	ValidUntil    time.Time
	Establishment string // 3 dígitos
	PointOfSale   string // 3 dígitos
}

// Verdict resultado de CheckValidity. Se calcula en cada consulta, nunca se persiste.
type Verdict struct {
	IsValid         bool
	DaysLeft        int // negativo = vencido
	BlocksInvoicing bool
	Status          Status
	ErrorMessage    string
	WarningMessage  string
}

// Warning indica que el timbrado es válido pero está dentro de la ventana de aviso.
func (v Verdict) Warning() bool { return v.Status == StatusExpiringSoon }

// CheckValidity evalúa el timbrado contra today con granularidad de día calendario.
// Bloquea la facturación si y solo si ValidUntil < today o no hay timbrado.
func CheckValidity(auth *Authorization, today time.Time) Verdict {
	if auth == nil {
		return Verdict{
			IsValid:         false,
			BlocksInvoicing: true,
			Status:          StatusNotConfigured,
			ErrorMessage:    "no hay timbrado configurado",
		}
	}

	daysLeft := DaysBetween(today, auth.ValidUntil)
	switch {
	case daysLeft < 0:
		return Verdict{
			IsValid:         false,
			DaysLeft:        daysLeft,
			BlocksInvoicing: true,
			Status:          StatusExpired,
			ErrorMessage:    fmt.Sprintf("timbrado vencido hace %s", pluralDays(-daysLeft)),
		}
	case daysLeft <= WarningDays:
		msg := fmt.Sprintf("el timbrado vence en %s", pluralDays(daysLeft))
		if daysLeft == 0 {
			msg = "el timbrado vence hoy"
		}
		return Verdict{
			IsValid:        true,
			DaysLeft:       daysLeft,
			Status:         StatusExpiringSoon,
			WarningMessage: msg,
		}
	default:
		return Verdict{IsValid: true, DaysLeft: daysLeft, Status: StatusValid}
	}
}

// DaysBetween días calendario de from a to (hora del día descartada).
func DaysBetween(from, to time.Time) int {
	a := dateOnly(from)
	b := dateOnly(to)
	return int(b.Sub(a).Hours() / 24)
}

// CivilDate medianoche UTC de la fecha calendario de t en loc.
// Convierte el reloj del servidor a la "fecha de hoy" del negocio.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	return dateOnly(t)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 día"
	}
	return fmt.Sprintf("%d días", n)
}
