package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpvergara/gestion-api/internal/domain/entity"
	"github.com/jpvergara/gestion-api/internal/infrastructure/render"
)

func testEmitter() render.Emitter {
	return render.Emitter{
		Name:    "Comercial Vergara SpA",
		RUT:     "76.123.456-0",
		Giro:    "Venta de insumos industriales",
		Address: "Av. Providencia 1234",
		City:    "Santiago",
	}
}

func testDocument() *entity.DocumentWithCompany {
	return &entity.DocumentWithCompany{
		Document: entity.Document{
			ID:      1,
			DocType: entity.DocTypeFactura,
			Folio:   6060,
			Date:    time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			Status:  entity.StatusIssued,
			Neto:    decimal.NewFromInt(2500),
			Tax:     decimal.NewFromInt(475),
			Total:   decimal.NewFromInt(2975),
		},
		CompanyName: "Ferretería Los Andes Ltda.",
		CompanyRUT:  "77.888.999-K",
	}
}

func TestGenerate_ProducePDF(t *testing.T) {
	g := NewMarotoPDFGenerator(testEmitter())
	items := []*entity.DocumentItem{
		{DocumentID: 1, Name: "Guante de seguridad", Quantity: decimal.NewFromInt(10),
			Price: decimal.NewFromInt(250), Total: decimal.NewFromInt(2500)},
	}

	out, err := g.Generate(context.Background(), testDocument(), items)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]), "los bytes deben ser un PDF")
}

func TestTotalsRow_LineasEnDistintaAltura(t *testing.T) {
	r := totalsRow(testDocument())

	// Dentro de una columna, cada texto necesita su propio offset Top:
	// con el mismo valor Neto, IVA y TOTAL se imprimen superpuestos.
	for _, colNode := range r.GetStructure().GetNexts() {
		tops := map[float64]bool{}
		texts := 0
		for _, compNode := range colNode.GetNexts() {
			data := compNode.GetData()
			if data.Type != "text" {
				continue
			}
			texts++
			top, _ := data.Details["prop_top"].(float64)
			tops[top] = true
		}
		if texts == 0 {
			continue
		}
		assert.Len(t, tops, texts, "offsets Top repetidos en la columna de totales")
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0", money(decimal.Zero))
	assert.Equal(t, "$999", money(decimal.NewFromInt(999)))
	assert.Equal(t, "$25.000", money(decimal.NewFromInt(25000)))
	assert.Equal(t, "$1.000.000", money(decimal.NewFromInt(1000000)))
	assert.Equal(t, "$500", money(decimal.RequireFromString("499.5")), "redondeo mitad hacia arriba")
	assert.Equal(t, "-$1.500", money(decimal.NewFromInt(-1500)))
}
