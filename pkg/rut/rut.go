// Package rut valida y formatea el RUT chileno (Rol Único Tributario).
package rut

import (
	"fmt"
	"strings"
)

// Validate valida que el RUT tenga un dígito verificador correcto según el
// algoritmo módulo 11 del SII. Acepta "12.345.678-5", "12345678-5" o
// "123456785"; el verificador puede ser 0-9 o K.
func Validate(raw string) error {
	body, dv, err := split(raw)
	if err != nil {
		return err
	}
	expected, err := ComputeVerifier(body)
	if err != nil {
		return err
	}
	if dv != expected {
		return fmt.Errorf("rut: dígito verificador inválido: esperado %c, recibido %c", expected, dv)
	}
	return nil
}

// ComputeVerifier calcula el dígito verificador para el cuerpo del RUT
// (solo dígitos, sin verificador). Devuelve '0'-'9' o 'K'.
func ComputeVerifier(body string) (byte, error) {
	if body == "" {
		return 0, fmt.Errorf("rut: cuerpo vacío")
	}
	sum := 0
	factor := 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("rut: carácter inválido en el cuerpo: %c", c)
		}
		sum += int(c-'0') * factor
		factor++
		if factor > 7 {
			factor = 2
		}
	}
	switch rest := 11 - sum%11; rest {
	case 11:
		return '0', nil
	case 10:
		return 'K', nil
	default:
		return byte('0' + rest), nil
	}
}

// Format normaliza un RUT válido al formato con puntos y guión:
// "12345678-5" → "12.345.678-5". Si el RUT no se puede separar, lo devuelve
// tal cual.
func Format(raw string) string {
	body, dv, err := split(raw)
	if err != nil {
		return raw
	}
	var b strings.Builder
	for i, c := range body {
		if i > 0 && (len(body)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	b.WriteByte('-')
	b.WriteByte(dv)
	return b.String()
}

// split separa cuerpo y dígito verificador, descartando puntos y guión.
func split(raw string) (body string, dv byte, err error) {
	clean := strings.ToUpper(strings.NewReplacer(".", "", "-", "", " ", "").Replace(raw))
	if len(clean) < 2 {
		return "", 0, fmt.Errorf("rut: demasiado corto: %q", raw)
	}
	body, dv = clean[:len(clean)-1], clean[len(clean)-1]
	if dv != 'K' && (dv < '0' || dv > '9') {
		return "", 0, fmt.Errorf("rut: dígito verificador inválido: %c", dv)
	}
	return body, dv, nil
}
