// Package sii genera representaciones XML estilo DTE (Documento Tributario
// Electrónico) de los documentos comerciales. El XML producido NO está firmado
// ni timbrado: sirve para exportar e integrar, no para enviar al SII.
package sii

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/jpvergara/gestion-api/internal/application/documents"
	"github.com/jpvergara/gestion-api/internal/domain"
	"github.com/jpvergara/gestion-api/internal/domain/entity"
	"github.com/jpvergara/gestion-api/internal/infrastructure/render"
)

var _ documents.XMLExporter = (*DTEExporter)(nil)

// Códigos de tipo de DTE según tabla del SII. Las cotizaciones no son
// documentos tributarios y no tienen código.
var dteTypeCodes = map[string]int{
	entity.DocTypeFactura:     33, // factura electrónica
	entity.DocTypeGuia:        52, // guía de despacho electrónica
	entity.DocTypeNotaCredito: 61, // nota de crédito electrónica
}

// DTEExporter construye el XML con etree.
type DTEExporter struct {
	emitter render.Emitter
}

// NewDTEExporter construye el exportador con la identidad del emisor.
func NewDTEExporter(emitter render.Emitter) *DTEExporter {
	return &DTEExporter{emitter: emitter}
}

// Export serializa el documento como DTE sin firmar. Los tipos sin código DTE
// (cotizaciones) no son exportables.
func (e *DTEExporter) Export(doc *entity.DocumentWithCompany, items []*entity.DocumentItem) ([]byte, error) {
	code, ok := dteTypeCodes[doc.DocType]
	if !ok {
		return nil, fmt.Errorf("tipo %s no tiene representación DTE: %w", doc.DocType, domain.ErrInvalidInput)
	}

	xml := etree.NewDocument()
	xml.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	dte := xml.CreateElement("DTE")
	dte.CreateAttr("version", "1.0")

	documento := dte.CreateElement("Documento")
	documento.CreateAttr("ID", fmt.Sprintf("F%dT%d", doc.Folio, code))

	encabezado := documento.CreateElement("Encabezado")

	idDoc := encabezado.CreateElement("IdDoc")
	idDoc.CreateElement("TipoDTE").SetText(fmt.Sprintf("%d", code))
	idDoc.CreateElement("Folio").SetText(fmt.Sprintf("%d", doc.Folio))
	idDoc.CreateElement("FchEmis").SetText(doc.Date.Format("2006-01-02"))
	if doc.ExpirationDate != nil {
		idDoc.CreateElement("FchVenc").SetText(doc.ExpirationDate.Format("2006-01-02"))
	}

	emisor := encabezado.CreateElement("Emisor")
	emisor.CreateElement("RUTEmisor").SetText(plainRUT(e.emitter.RUT))
	emisor.CreateElement("RznSoc").SetText(e.emitter.Name)
	emisor.CreateElement("GiroEmis").SetText(e.emitter.Giro)
	emisor.CreateElement("DirOrigen").SetText(e.emitter.Address)
	emisor.CreateElement("CiudadOrigen").SetText(e.emitter.City)

	receptor := encabezado.CreateElement("Receptor")
	receptor.CreateElement("RUTRecep").SetText(plainRUT(doc.CompanyRUT))
	receptor.CreateElement("RznSocRecep").SetText(doc.CompanyName)
	if doc.CompanyGiro != "" {
		receptor.CreateElement("GiroRecep").SetText(doc.CompanyGiro)
	}
	if doc.CompanyAddress != "" {
		receptor.CreateElement("DirRecep").SetText(doc.CompanyAddress)
	}
	if doc.CompanyCity != "" {
		receptor.CreateElement("CiudadRecep").SetText(doc.CompanyCity)
	}

	totales := encabezado.CreateElement("Totales")
	totales.CreateElement("MntNeto").SetText(doc.Neto.Round(0).StringFixed(0))
	totales.CreateElement("TasaIVA").SetText("19")
	totales.CreateElement("IVA").SetText(doc.Tax.Round(0).StringFixed(0))
	totales.CreateElement("MntTotal").SetText(doc.Total.Round(0).StringFixed(0))

	for i, it := range items {
		detalle := documento.CreateElement("Detalle")
		detalle.CreateElement("NroLinDet").SetText(fmt.Sprintf("%d", i+1))
		detalle.CreateElement("NmbItem").SetText(it.Name)
		if it.Description != "" {
			detalle.CreateElement("DscItem").SetText(it.Description)
		}
		detalle.CreateElement("QtyItem").SetText(it.Quantity.String())
		detalle.CreateElement("PrcItem").SetText(it.Price.String())
		detalle.CreateElement("MontoItem").SetText(it.Total.Round(0).StringFixed(0))
	}

	xml.Indent(2)
	out, err := xml.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializar DTE %s %d: %w", doc.DocType, doc.Folio, err)
	}
	return out, nil
}

// plainRUT normaliza el RUT al formato DTE: sin puntos de miles (76123456-0).
func plainRUT(rut string) string {
	return strings.ReplaceAll(rut, ".", "")
}
