package entity

import (
	"time"

	"github.com/jhoicas/lavadero-api/internal/domain/fiscal"
)

// Valores por defecto de la configuración fiscal.
const (
	DefaultEstablishment = "001"
	DefaultPointOfSale   = "001"
	DefaultCity          = "Asunción"
	DefaultCurrency      = "PYG"
)

// CompanyConfig datos del contribuyente y timbrado vigente. Existe a lo sumo un registro.
type CompanyConfig struct {
	ID             string
	RUC            string
	LegalName      string // razón social
	TradeName      string // nombre de fantasía
	TimbradoNumber string
	TimbradoFrom   time.Time
	TimbradoUntil  time.Time
	Establishment  string
	PointOfSale    string
	Address        string
	City           string
	Phone          string
	Email          string
	Currency       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Authorization proyecta el timbrado para las reglas fiscales. nil-safe.
func (c *CompanyConfig) Authorization() *fiscal.Authorization {
	if c == nil || c.TimbradoNumber == "" {
		return nil
	}
	return &fiscal.Authorization{
		Number:        c.TimbradoNumber,
		ValidFrom:     c.TimbradoFrom,
		ValidUntil:    c.TimbradoUntil,
		Establishment: c.Establishment,
		PointOfSale:   c.PointOfSale,
	}
}
