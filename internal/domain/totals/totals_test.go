package totals_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jpvergara/gestion-api/internal/domain/totals"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCompute_EscenarioFactura(t *testing.T) {
	// 2 × 1000 + 1 × 500 → neto 2500, IVA round(475) = 475, total 2975.
	lines := []totals.Line{
		{Quantity: dec("2"), Price: dec("1000")},
		{Quantity: dec("1"), Price: dec("500")},
	}
	neto, tax, total := totals.Compute(lines)
	assert.True(t, dec("2500").Equal(neto), "neto = %s", neto)
	assert.True(t, dec("475").Equal(tax), "tax = %s", tax)
	assert.True(t, dec("2975").Equal(total), "total = %s", total)
}

func TestCompute_ListaVacia(t *testing.T) {
	neto, tax, total := totals.Compute(nil)
	assert.True(t, neto.IsZero())
	assert.True(t, tax.IsZero())
	assert.True(t, total.IsZero())
}

func TestCompute_RedondeoMitadHaciaArriba(t *testing.T) {
	// neto 1045 → IVA exacto 198.55 → redondea a 199.
	neto, tax, total := totals.Compute([]totals.Line{{Quantity: dec("1"), Price: dec("1045")}})
	assert.True(t, dec("1045").Equal(neto))
	assert.True(t, dec("199").Equal(tax), "198.55 debe redondear hacia arriba, tax = %s", tax)
	assert.True(t, dec("1244").Equal(total))
}

func TestCompute_RedondeoUnaVezSobreElAgregado(t *testing.T) {
	// Tres líneas de 10: IVA por línea sería round(1.9)=2 c/u → 6.
	// El redondeo agregado correcto es round(30 × 0.19) = round(5.7) = 6...
	// con 3 × 3: por línea round(0.57)=1 c/u → 3; agregado round(9×0.19)=round(1.71)=2.
	lines := []totals.Line{
		{Quantity: dec("1"), Price: dec("3")},
		{Quantity: dec("1"), Price: dec("3")},
		{Quantity: dec("1"), Price: dec("3")},
	}
	_, tax, _ := totals.Compute(lines)
	assert.True(t, dec("2").Equal(tax), "el IVA se redondea sobre el neto agregado, no por línea; tax = %s", tax)
}

func TestCompute_CantidadesFraccionarias(t *testing.T) {
	// 2.5 × 990 = 2475 exacto; sin deriva de punto flotante.
	neto, tax, total := totals.Compute([]totals.Line{{Quantity: dec("2.5"), Price: dec("990")}})
	assert.True(t, dec("2475").Equal(neto))
	assert.True(t, dec("470").Equal(tax), "round(470.25) = 470")
	assert.True(t, dec("2945").Equal(total))
}

func TestLineTotal_LiteralSinRedondeo(t *testing.T) {
	// El total de línea es cantidad × precio tal cual, aunque no sea entero.
	got := totals.LineTotal(dec("1.5"), dec("333"))
	assert.True(t, dec("499.5").Equal(got), "total de línea = %s", got)
}

func TestCompute_SumaGrandeExacta(t *testing.T) {
	var lines []totals.Line
	for i := 0; i < 1000; i++ {
		lines = append(lines, totals.Line{Quantity: dec("1"), Price: dec("0.1")})
	}
	neto, _, _ := totals.Compute(lines)
	assert.True(t, dec("100").Equal(neto), "1000 × 0.1 debe ser exactamente 100, neto = %s", neto)
}
