package fiscal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// SequenceDigits ancho del correlativo dentro del número de factura.
	SequenceDigits = 7
	// MaxSequence último correlativo representable con SequenceDigits.
	MaxSequence = 9_999_999
)

// ErrSequenceExhausted el correlativo superaría 7 dígitos. Requiere un nuevo punto de expedición.
var ErrSequenceExhausted = errors.New("fiscal: correlativo de facturas agotado para el punto de expedición")

// NextInvoiceNumber calcula el número siguiente a lastIssued para el par
// establecimiento/punto de expedición. lastIssued vacío significa que no hay facturas.
// Un último número malformado se trata como correlativo 0.
func NextInvoiceNumber(lastIssued, establishment, pointOfSale string) (string, error) {
	next := ParseSequence(lastIssued) + 1
	if next > MaxSequence {
		return "", fmt.Errorf("%w: %s-%s", ErrSequenceExhausted, establishment, pointOfSale)
	}
	return FormatInvoiceNumber(establishment, pointOfSale, next), nil
}

// ParseSequence extrae el correlativo (último segmento tras '-'); 0 si no es un entero.
// Un segmento numérico que desborda int64 se satura en MaxSequence.
func ParseSequence(number string) int64 {
	if number == "" {
		return 0
	}
	parts := strings.Split(number, "-")
	seg := strings.TrimSpace(parts[len(parts)-1])
	n, err := strconv.ParseInt(seg, 10, 64)
	if errors.Is(err, strconv.ErrRange) && isDigits(seg) {
		return MaxSequence
	}
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FormatInvoiceNumber arma EEE-PPP-NNNNNNN.
func FormatInvoiceNumber(establishment, pointOfSale string, seq int64) string {
	return fmt.Sprintf("%s-%s-%0*d", establishment, pointOfSale, SequenceDigits, seq)
}

// IsValidCode verifica un código de establecimiento o punto de expedición (3 dígitos ASCII).
func IsValidCode(code string) bool {
	return len(code) == 3 && isDigits(code)
}
