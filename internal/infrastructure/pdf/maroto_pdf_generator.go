// Package pdf implementa la representación gráfica PDF de los documentos
// comerciales, con el formato impreso habitual de los documentos tributarios
// chilenos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  EMISOR: Razón social + giro   │  RECUADRO ROJO:            │
//	│          dirección             │  RUT + tipo + N° folio     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECEPTOR: Señor(es) / RUT / Giro / Dirección / Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Detalle | P.Unit | Total                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Neto / IVA 19% / TOTAL                            │
//	│  CONDICIONES: pago / entrega / garantía / observaciones     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jpvergara/gestion-api/internal/application/documents"
	"github.com/jpvergara/gestion-api/internal/domain/entity"
	"github.com/jpvergara/gestion-api/internal/infrastructure/render"
)

var _ documents.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorSIIRed = &props.Color{Red: 200, Green: 0, Blue: 0}
	colorGray   = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa documents.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	emitter render.Emitter
}

// NewMarotoPDFGenerator construye el generador con la identidad del emisor.
func NewMarotoPDFGenerator(emitter render.Emitter) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{emitter: emitter}
}

// Generate genera el PDF del documento y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generate(
	_ context.Context,
	document *entity.DocumentWithCompany,
	items []*entity.DocumentItem,
) ([]byte, error) {
	label := render.DocTypeLabel(document.DocType)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("%s N° %d", label, document.Folio), true).
		WithAuthor(g.emitter.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(document, label))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(receptorRows(document)...)
	if document.Driver != "" || document.Plate != "" {
		m.AddRows(dispatchRow(document))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalsRow(document))

	if condRows := conditionRows(document); len(condRows) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(condRows...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social y giro del emisor (izq), recuadro rojo con RUT,
// tipo y folio (der).
func (g *MarotoPDFGenerator) headerRow(document *entity.DocumentWithCompany, label string) core.Row {
	return row.New(24).Add(
		col.New(7).Add(
			text.New(g.emitter.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 1,
			}),
			text.New(g.emitter.Giro, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%s, %s", g.emitter.Address, g.emitter.City), props.Text{
				Size: 8, Top: 15, Color: colorGray,
			}),
		),
		col.New(5).WithStyle(&props.Cell{
			BorderType:      border.Full,
			BorderColor:     colorSIIRed,
			BorderThickness: 0.8,
		}).Add(
			text.New("R.U.T.: "+g.emitter.RUT, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center,
				Color: colorSIIRed, Top: 3,
			}),
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center,
				Color: colorSIIRed, Top: 10,
			}),
			text.New(fmt.Sprintf("N° %d", document.Folio), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center,
				Color: colorSIIRed, Top: 17,
			}),
		),
	)
}

// receptorRows: datos del receptor con marcadores para campos vacíos.
func receptorRows(document *entity.DocumentWithCompany) []core.Row {
	fecha := document.Date.Format("02-01-2006")
	venc := ""
	if document.ExpirationDate != nil {
		venc = "Vencimiento: " + document.ExpirationDate.Format("02-01-2006")
	}
	return []core.Row{
		row.New(6).Add(
			col.New(8).Add(text.New("Señor(es): "+document.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1,
			})),
			col.New(4).Add(text.New("Fecha emisión: "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 1,
			})),
		),
		row.New(5).Add(
			col.New(8).Add(text.New(fmt.Sprintf("R.U.T.: %s   |   Giro: %s",
				nonEmpty(document.CompanyRUT, "Sin RUT"),
				nonEmpty(document.CompanyGiro, "Comercial"),
			), props.Text{Size: 8, Top: 1, Color: colorGray})),
			col.New(4).Add(text.New(venc, props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			})),
		),
		row.New(5).Add(col.New(12).Add(text.New(fmt.Sprintf("Dirección: %s   |   Ciudad: %s",
			nonEmpty(document.CompanyAddress, "Sin dirección"),
			nonEmpty(document.CompanyCity, "Sin ciudad"),
		), props.Text{Size: 8, Top: 1, Color: colorGray}))),
	}
}

// dispatchRow: datos de traslado, solo en guías de despacho.
func dispatchRow(document *entity.DocumentWithCompany) core.Row {
	return row.New(5).Add(col.New(12).Add(text.New(fmt.Sprintf(
		"Chofer: %s   |   Patente: %s   |   Tipo de despacho: %s",
		nonEmpty(document.Driver, "—"),
		nonEmpty(document.Plate, "—"),
		nonEmpty(document.DispatchType, "—"),
	), props.Text{Size: 8, Top: 1, Color: colorGray})))
}

// tableHeaderRow: cabecera de la tabla de detalle.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Detalle", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea del documento.
func tableDetailRows(items []*entity.DocumentItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		detail := it.Name
		if it.Description != "" {
			detail += " — " + it.Description
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				detail,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				money(it.Price),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				money(it.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: Neto / IVA / Total alineados a la derecha, una línea cada uno
// dentro de la misma fila (sin Top se imprimen superpuestos).
func totalsRow(document *entity.DocumentWithCompany) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grandLabel := text.New("TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorSIIRed, Right: 2, Top: 15,
	})
	grandValue := text.New(money(document.Total), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorSIIRed, Right: 1, Top: 15,
	})

	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Neto:", 2),
			label("IVA (19%):", 8),
			grandLabel,
		),
		col.New(3).Add(
			value(money(document.Neto), 2),
			value(money(document.Tax), 8),
			grandValue,
		),
	)
}

// conditionRows: condiciones comerciales y observaciones, solo las presentes.
func conditionRows(document *entity.DocumentWithCompany) []core.Row {
	type cond struct{ label, value string }
	conds := []cond{
		{"Forma de pago", document.PaymentTerms},
		{"Plazo de entrega", document.DeliveryTime},
		{"Garantía", document.Warranty},
		{"Observaciones", document.Notes},
	}
	var rows []core.Row
	for _, c := range conds {
		if c.value == "" {
			continue
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(c.label+": "+c.value, props.Text{Size: 8, Top: 1}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea un monto en pesos: redondeado a entero, con puntos de miles.
// Ej: 25000 → "$25.000", 1000000 → "$1.000.000"
func money(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i, c := range []byte(s) {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, '.')
			}
			buf = append(buf, c)
		}
		s = string(buf)
	}
	if neg {
		return "-$" + s
	}
	return "$" + s
}
