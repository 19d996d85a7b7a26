// Package nit normaliza el NIT colombiano de las empresas y verifica su dígito de verificación
// (módulo 11 con los pesos de la Orden Administrativa 4 de 1989).
package nit

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrInvalid el NIT no tiene 9 o 10 dígitos o el dígito de verificación no coincide.
var ErrInvalid = errors.New("nit: inválido")

var weights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// Normalize devuelve el NIT en forma "123456789-D". Acepta "123.456.789-D", "123456789D" o solo
// los 9 dígitos base, en cuyo caso calcula el dígito de verificación.
func Normalize(taxID string) (string, error) {
	digits := extractDigits(taxID)
	if len(digits) != 9 && len(digits) != 10 {
		return "", fmt.Errorf("%w: se esperaban 9 o 10 dígitos, se encontraron %d", ErrInvalid, len(digits))
	}
	dv := VerificationDigit(digits[:9])
	if len(digits) == 10 && digits[9] != dv {
		return "", fmt.Errorf("%w: dígito de verificación esperado %c, recibido %c", ErrInvalid, dv, digits[9])
	}
	return string(digits[:9]) + "-" + string(dv), nil
}

// VerificationDigit calcula el dígito para los 9 dígitos base.
func VerificationDigit(base []byte) byte {
	var sum int
	for i, d := range base[:9] {
		sum += int(d-'0') * weights[i]
	}
	r := sum % 11
	if r == 0 || r == 1 {
		return byte('0' + r)
	}
	return byte('0' + (11 - r))
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) && r < 128 {
			out = append(out, byte(r))
		}
	}
	return out
}
