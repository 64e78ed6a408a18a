// Package ruc valida el Registro Único de Contribuyentes de Paraguay (SET).
// El dígito verificador usa módulo 11 con pesos 2..11 aplicados de derecha a izquierda.
package ruc

import (
	"fmt"
	"strings"
	"unicode"
)

const baseMax = 11

// ComputeCheckDigit calcula el dígito verificador para la base del RUC (sin DV).
func ComputeCheckDigit(base string) (int, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return 0, fmt.Errorf("ruc: base vacía")
	}
	total := 0
	k := 2
	for i := len(base) - 1; i >= 0; i-- {
		r := rune(base[i])
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("ruc: carácter inválido %q en la base", r)
		}
		if k > baseMax {
			k = 2
		}
		total += int(r-'0') * k
		k++
	}
	rem := total % 11
	if rem > 1 {
		return 11 - rem, nil
	}
	return 0, nil
}

// Validate verifica un RUC con formato "80000519-8".
func Validate(ruc string) error {
	base, dv, ok := strings.Cut(strings.TrimSpace(ruc), "-")
	if !ok || len(dv) != 1 {
		return fmt.Errorf("ruc: formato esperado NNNNNNN-D, recibido %q", ruc)
	}
	if len(base) < 5 || len(base) > 9 {
		return fmt.Errorf("ruc: la base debe tener entre 5 y 9 dígitos, se recibieron %d", len(base))
	}
	expected, err := ComputeCheckDigit(base)
	if err != nil {
		return err
	}
	if dv[0] < '0' || dv[0] > '9' || int(dv[0]-'0') != expected {
		return fmt.Errorf("ruc: dígito verificador inválido: esperado %d, recibido %s", expected, dv)
	}
	return nil
}

// Format arma el RUC completo a partir de la base.
func Format(base string) (string, error) {
	dv, err := ComputeCheckDigit(base)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d", strings.TrimSpace(base), dv), nil
}
