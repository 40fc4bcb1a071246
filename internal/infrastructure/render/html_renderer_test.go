package render

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpvergara/gestion-api/internal/domain/entity"
)

func testEmitter() Emitter {
	return Emitter{
		Name:    "Comercial Vergara SpA",
		RUT:     "77.111.222-3",
		Giro:    "Venta de insumos industriales",
		Address: "Av. Matta 1234",
		City:    "Santiago",
	}
}

func testDocument() *entity.DocumentWithCompany {
	return &entity.DocumentWithCompany{
		Document: entity.Document{
			ID:      1,
			DocType: entity.DocTypeFactura,
			Folio:   6060,
			Date:    time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			Status:  entity.StatusIssued,
			Neto:    decimal.NewFromInt(2500),
			Tax:     decimal.NewFromInt(475),
			Total:   decimal.NewFromInt(2975),
		},
		CompanyName:    "Constructora Andes Ltda",
		CompanyRUT:     "76.123.456-0",
		CompanyGiro:    "Construcción",
		CompanyAddress: "Camino El Alba 500",
		CompanyCity:    "Las Condes",
	}
}

func TestHTMLRenderer_RenderFactura(t *testing.T) {
	r, err := NewHTMLRenderer(testEmitter())
	require.NoError(t, err, "la plantilla embebida debe compilar")

	items := []*entity.DocumentItem{
		{Name: "Perno galvanizado", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(1000), Total: decimal.NewFromInt(2000)},
		{Name: "Tuerca", Description: "M12", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(500), Total: decimal.NewFromInt(500)},
	}
	html, err := r.Render(testDocument(), items)
	require.NoError(t, err)

	assert.Contains(t, html, "FACTURA ELECTRÓNICA", "debe llevar la etiqueta del tipo")
	assert.Contains(t, html, "N° 6060", "debe mostrar el folio")
	assert.Contains(t, html, "R.U.T.: 77.111.222-3", "el recuadro lleva el RUT del emisor")
	assert.Contains(t, html, "Constructora Andes Ltda", "debe mostrar el receptor")
	assert.Contains(t, html, "14-03-2025", "fecha en formato chileno")
	assert.Contains(t, html, "$2.500", "neto con separador de miles")
	assert.Contains(t, html, "$475")
	assert.Contains(t, html, "$2.975", "total con separador de miles")
	assert.Contains(t, html, "IVA (19%)")
	assert.Contains(t, html, "Perno galvanizado")
	assert.Contains(t, html, "M12", "la descripción de línea debe imprimirse")
}

func TestHTMLRenderer_PlaceholdersReceptorIncompleto(t *testing.T) {
	r, err := NewHTMLRenderer(testEmitter())
	require.NoError(t, err)

	doc := testDocument()
	doc.CompanyRUT = ""
	doc.CompanyGiro = ""
	doc.CompanyAddress = ""
	doc.CompanyCity = "  "

	html, err := r.Render(doc, nil)
	require.NoError(t, err)

	assert.Contains(t, html, "Sin RUT")
	assert.Contains(t, html, ">Comercial<", "giro vacío usa el genérico")
	assert.Contains(t, html, "Sin dirección")
	assert.Contains(t, html, "Sin ciudad", "espacios en blanco cuentan como vacío")
}

func TestHTMLRenderer_CantidadFraccionaria(t *testing.T) {
	r, err := NewHTMLRenderer(testEmitter())
	require.NoError(t, err)

	items := []*entity.DocumentItem{
		{
			Name:     "Cable por metro",
			Quantity: decimal.RequireFromString("1.5"),
			Price:    decimal.NewFromInt(333),
			Total:    decimal.RequireFromString("499.5"),
		},
	}
	html, err := r.Render(testDocument(), items)
	require.NoError(t, err)

	assert.Contains(t, html, "1,5", "cantidad con coma decimal")
	assert.Contains(t, html, "$500", "el total de línea se redondea solo al imprimir")
}

func TestHTMLRenderer_GuiaConDespacho(t *testing.T) {
	r, err := NewHTMLRenderer(testEmitter())
	require.NoError(t, err)

	doc := testDocument()
	doc.DocType = entity.DocTypeGuia
	doc.Driver = "J. Soto"
	doc.Plate = "ABCD-12"
	doc.DispatchType = "Venta"

	html, err := r.Render(doc, nil)
	require.NoError(t, err)

	assert.Contains(t, html, "GUÍA DE DESPACHO ELECTRÓNICA")
	assert.Contains(t, html, "J. Soto")
	assert.Contains(t, html, "ABCD-12")
}

func TestDocTypeLabel_TipoDesconocido(t *testing.T) {
	assert.Equal(t, "ND", DocTypeLabel("ND"), "un tipo fuera del catálogo se imprime tal cual")
}

func TestFormatCLP(t *testing.T) {
	assert.Equal(t, "$1.234.567", formatCLP(decimal.NewFromInt(1234567)))
	assert.Equal(t, "$0", formatCLP(decimal.Zero))
	assert.Equal(t, "$500", formatCLP(decimal.RequireFromString("499.5")), "redondeo mitad hacia arriba")
}
