// Package folio define los pisos de numeración por tipo de documento
// (ej: las facturas parten en 6060 aunque no exista ninguna). El contador
// en base de datos asigna el correlativo respetando estos pisos.
package folio

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultFloor piso de numeración para tipos sin mínimo configurado.
const DefaultFloor = 1

// Minimums pisos de numeración por tipo de documento.
type Minimums map[string]int64

// For devuelve el piso del tipo, o DefaultFloor si no tiene uno configurado.
func (m Minimums) For(docType string) int64 {
	if v, ok := m[docType]; ok && v > 0 {
		return v
	}
	return DefaultFloor
}

// ParseMinimums interpreta la configuración de pisos con formato
// "FAC=6060,NC=100". Entradas vacías se ignoran; un valor no numérico o
// negativo es error de configuración.
func ParseMinimums(s string) (Minimums, error) {
	m := make(Minimums)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		docType, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("folio: entrada sin '=': %q", part)
		}
		docType = strings.TrimSpace(docType)
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("folio: mínimo inválido para %q: %w", docType, err)
		}
		if docType == "" || n < 1 {
			return nil, fmt.Errorf("folio: entrada inválida: %q", part)
		}
		m[docType] = n
	}
	return m, nil
}
