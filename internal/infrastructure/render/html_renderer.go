package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jpvergara/gestion-api/internal/application/documents"
	"github.com/jpvergara/gestion-api/internal/domain/entity"
)

var _ documents.PageRenderer = (*HTMLRenderer)(nil)

// Emitter datos de la empresa emisora que encabezan la vista impresa.
type Emitter struct {
	Name    string
	RUT     string
	Giro    string
	Address string
	City    string
}

// HTMLRenderer genera la página imprimible de un documento: una página HTML
// autocontenida (estilos inline, sin assets externos) con el recuadro rojo de
// folio al estilo SII, emisor, receptor, detalle y totales.
type HTMLRenderer struct {
	emitter Emitter
	tmpl    *template.Template
}

// NewHTMLRenderer compila la plantilla una sola vez. Falla solo ante una
// plantilla inválida, es decir, nunca en producción con la plantilla embebida.
func NewHTMLRenderer(emitter Emitter) (*HTMLRenderer, error) {
	tmpl, err := template.New("document").Funcs(template.FuncMap{
		"clp": formatCLP,
		"qty": formatQuantity,
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("compilar plantilla de documento: %w", err)
	}
	return &HTMLRenderer{emitter: emitter, tmpl: tmpl}, nil
}

// Etiquetas impresas por tipo de documento. Un tipo desconocido se imprime
// con su código tal cual.
var docTypeLabels = map[string]string{
	entity.DocTypeCotizacion:  "COTIZACIÓN",
	entity.DocTypeFactura:     "FACTURA ELECTRÓNICA",
	entity.DocTypeGuia:        "GUÍA DE DESPACHO ELECTRÓNICA",
	entity.DocTypeNotaCredito: "NOTA DE CRÉDITO ELECTRÓNICA",
}

// DocTypeLabel devuelve la etiqueta impresa del tipo.
func DocTypeLabel(docType string) string {
	if label, ok := docTypeLabels[docType]; ok {
		return label
	}
	return docType
}

type pageData struct {
	Emitter        Emitter
	TypeLabel      string
	Folio          int64
	Date           string
	ExpirationDate string
	CompanyName    string
	CompanyRUT     string
	CompanyGiro    string
	CompanyAddress string
	CompanyCity    string
	Items          []pageItem
	Neto           decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	Notes          string
	PaymentTerms   string
	DeliveryTime   string
	Warranty       string
	Driver         string
	Plate          string
	DispatchType   string
}

type pageItem struct {
	Name        string
	Description string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Total       decimal.Decimal
}

// Render produce la página completa. Los datos del receptor que falten se
// reemplazan por marcadores ("Sin RUT", "Comercial", ...) para que el layout
// no colapse con empresas incompletas.
func (r *HTMLRenderer) Render(doc *entity.DocumentWithCompany, items []*entity.DocumentItem) (string, error) {
	data := pageData{
		Emitter:        r.emitter,
		TypeLabel:      DocTypeLabel(doc.DocType),
		Folio:          doc.Folio,
		Date:           doc.Date.Format("02-01-2006"),
		CompanyName:    doc.CompanyName,
		CompanyRUT:     orPlaceholder(doc.CompanyRUT, "Sin RUT"),
		CompanyGiro:    orPlaceholder(doc.CompanyGiro, "Comercial"),
		CompanyAddress: orPlaceholder(doc.CompanyAddress, "Sin dirección"),
		CompanyCity:    orPlaceholder(doc.CompanyCity, "Sin ciudad"),
		Neto:           doc.Neto,
		Tax:            doc.Tax,
		Total:          doc.Total,
		Notes:          doc.Notes,
		PaymentTerms:   doc.PaymentTerms,
		DeliveryTime:   doc.DeliveryTime,
		Warranty:       doc.Warranty,
		Driver:         doc.Driver,
		Plate:          doc.Plate,
		DispatchType:   doc.DispatchType,
	}
	if doc.ExpirationDate != nil {
		data.ExpirationDate = doc.ExpirationDate.Format("02-01-2006")
	}
	for _, it := range items {
		data.Items = append(data.Items, pageItem{
			Name:        it.Name,
			Description: it.Description,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Total:       it.Total,
		})
	}

	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("renderizar documento %s %d: %w", doc.DocType, doc.Folio, err)
	}
	return sb.String(), nil
}

var clpPrinter = message.NewPrinter(language.MustParse("es-CL"))

// formatCLP formatea un monto en pesos chilenos: redondeado a entero y con
// separador de miles ("$1.234.567").
func formatCLP(d decimal.Decimal) string {
	return clpPrinter.Sprintf("$%v", number.Decimal(d.Round(0).IntPart()))
}

// formatQuantity imprime la cantidad sin ceros de cola (3, 1,5).
func formatQuantity(d decimal.Decimal) string {
	return strings.ReplaceAll(d.String(), ".", ",")
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

// La plantilla imita el formato impreso del SII: recuadro rojo con RUT del
// emisor, tipo de documento y folio en la esquina superior derecha.
const pageTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>{{.TypeLabel}} N° {{.Folio}}</title>
<style>
  body { font-family: Arial, Helvetica, sans-serif; font-size: 12px; color: #222; margin: 30px; }
  .header { display: flex; justify-content: space-between; align-items: flex-start; }
  .emitter h1 { font-size: 16px; margin: 0 0 4px 0; }
  .emitter p { margin: 2px 0; }
  .folio-box { border: 3px solid #d00; color: #d00; text-align: center; padding: 10px 24px; min-width: 220px; }
  .folio-box .rut { font-size: 14px; font-weight: bold; }
  .folio-box .type { font-size: 13px; font-weight: bold; margin: 6px 0; }
  .folio-box .folio { font-size: 14px; font-weight: bold; }
  .receptor { border: 1px solid #999; margin-top: 24px; padding: 8px 12px; }
  .receptor table { border-collapse: collapse; }
  .receptor td { padding: 2px 8px 2px 0; vertical-align: top; }
  .receptor td.label { font-weight: bold; white-space: nowrap; }
  table.detail { width: 100%; border-collapse: collapse; margin-top: 16px; }
  table.detail th { background: #eee; border: 1px solid #999; padding: 5px 8px; text-align: left; }
  table.detail td { border: 1px solid #ccc; padding: 5px 8px; }
  table.detail td.num { text-align: right; white-space: nowrap; }
  .totals { margin-top: 12px; margin-left: auto; width: 260px; border-collapse: collapse; }
  .totals td { padding: 4px 8px; border: 1px solid #999; }
  .totals td.label { font-weight: bold; background: #eee; }
  .totals td.num { text-align: right; }
  .conditions { margin-top: 20px; }
  .conditions p { margin: 3px 0; }
  @media print { body { margin: 10mm; } }
</style>
</head>
<body>
  <div class="header">
    <div class="emitter">
      <h1>{{.Emitter.Name}}</h1>
      <p>{{.Emitter.Giro}}</p>
      <p>{{.Emitter.Address}}{{if .Emitter.City}}, {{.Emitter.City}}{{end}}</p>
    </div>
    <div class="folio-box">
      <div class="rut">R.U.T.: {{.Emitter.RUT}}</div>
      <div class="type">{{.TypeLabel}}</div>
      <div class="folio">N° {{.Folio}}</div>
    </div>
  </div>

  <div class="receptor">
    <table>
      <tr><td class="label">Señor(es):</td><td>{{.CompanyName}}</td><td class="label">Fecha emisión:</td><td>{{.Date}}</td></tr>
      <tr><td class="label">R.U.T.:</td><td>{{.CompanyRUT}}</td><td class="label">{{if .ExpirationDate}}Vencimiento:{{end}}</td><td>{{.ExpirationDate}}</td></tr>
      <tr><td class="label">Giro:</td><td>{{.CompanyGiro}}</td><td></td><td></td></tr>
      <tr><td class="label">Dirección:</td><td>{{.CompanyAddress}}</td><td class="label">Ciudad:</td><td>{{.CompanyCity}}</td></tr>
    </table>
  </div>

  {{if .Driver}}
  <div class="receptor">
    <table>
      <tr><td class="label">Chofer:</td><td>{{.Driver}}</td><td class="label">Patente:</td><td>{{.Plate}}</td></tr>
      <tr><td class="label">Tipo de despacho:</td><td colspan="3">{{.DispatchType}}</td></tr>
    </table>
  </div>
  {{end}}

  <table class="detail">
    <thead>
      <tr><th>Detalle</th><th>Cantidad</th><th>Precio unit.</th><th>Total</th></tr>
    </thead>
    <tbody>
      {{range .Items}}
      <tr>
        <td>{{.Name}}{{if .Description}}<br><small>{{.Description}}</small>{{end}}</td>
        <td class="num">{{qty .Quantity}}</td>
        <td class="num">{{clp .Price}}</td>
        <td class="num">{{clp .Total}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <table class="totals">
    <tr><td class="label">Neto</td><td class="num">{{clp .Neto}}</td></tr>
    <tr><td class="label">IVA (19%)</td><td class="num">{{clp .Tax}}</td></tr>
    <tr><td class="label">Total</td><td class="num">{{clp .Total}}</td></tr>
  </table>

  {{if or .PaymentTerms .DeliveryTime .Warranty .Notes}}
  <div class="conditions">
    {{if .PaymentTerms}}<p><strong>Forma de pago:</strong> {{.PaymentTerms}}</p>{{end}}
    {{if .DeliveryTime}}<p><strong>Plazo de entrega:</strong> {{.DeliveryTime}}</p>{{end}}
    {{if .Warranty}}<p><strong>Garantía:</strong> {{.Warranty}}</p>{{end}}
    {{if .Notes}}<p><strong>Observaciones:</strong> {{.Notes}}</p>{{end}}
  </div>
  {{end}}
</body>
</html>
`
