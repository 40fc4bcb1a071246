// Package totals implementa la aritmética de totales de un documento:
// neto, IVA 19% y total, en pesos chilenos (sin subunidades).
package totals

import "github.com/shopspring/decimal"

// ivaRate tasa única de IVA en Chile.
var ivaRate = decimal.RequireFromString("0.19")

// Line una línea (cantidad, precio unitario) para efectos de cálculo.
type Line struct {
	Quantity decimal.Decimal
	Price    decimal.Decimal
}

// LineTotal total literal de una línea: cantidad × precio, sin redondeo.
// Se almacena tal cual en la línea, independiente del redondeo agregado.
func LineTotal(quantity, price decimal.Decimal) decimal.Decimal {
	return quantity.Mul(price)
}

// Compute calcula neto, IVA y total de un conjunto de líneas.
// El neto es la suma exacta de cantidad × precio. El IVA se redondea al peso
// (mitad hacia arriba) una sola vez sobre el neto agregado, nunca por línea.
// Lista vacía o nil produce (0, 0, 0).
func Compute(lines []Line) (neto, tax, total decimal.Decimal) {
	neto = decimal.Zero
	for _, l := range lines {
		neto = neto.Add(l.Quantity.Mul(l.Price))
	}
	// Round es mitad-lejos-de-cero; para montos no negativos equivale a
	// mitad hacia arriba.
	tax = neto.Mul(ivaRate).Round(0)
	total = neto.Add(tax)
	return neto, tax, total
}
