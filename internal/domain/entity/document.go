package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento comercial. DocType es un código corto libre; estas
// constantes cubren los tipos que emite el frontend. La numeración de folios
// es independiente por tipo.
const (
	DocTypeCotizacion  = "COT" // cotización
	DocTypeFactura     = "FAC" // factura de venta
	DocTypeGuia        = "GD"  // guía de despacho
	DocTypeNotaCredito = "NC"  // nota de crédito
)

// StatusIssued es el estado inicial de todo documento. El estado es una
// etiqueta libre que el frontend puede cambiar sin afectar folio ni totales.
const StatusIssued = "Issued"

// Document representa la cabecera de un documento comercial (cotización,
// factura, guía de despacho). El folio se asigna una sola vez al crear y
// nunca cambia; tipo, empresa y totales tampoco se modifican después.
type Document struct {
	ID             int64
	DocType        string
	Folio          int64
	CompanyID      int64
	Date           time.Time
	ExpirationDate *time.Time
	Status         string
	Neto           decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	Notes          string
	PaymentTerms   string
	DeliveryTime   string
	Warranty       string
	Reference      string
	ParentID       *int64 // referencia blanda al documento origen (ej: factura desde cotización)
	Driver         string // datos de despacho (guías)
	Plate          string
	DispatchType   string
	FileURL        string // documento subido/importado (almacenamiento externo)
	CreatedAt      time.Time
}

// DocumentWithCompany proyección de lectura: documento más los datos fiscales
// de la empresa dueña, desnormalizados al momento de la consulta (JOIN), no
// almacenados en la cabecera.
type DocumentWithCompany struct {
	Document
	CompanyName    string
	CompanyRUT     string
	CompanyGiro    string
	CompanyAddress string
	CompanyCity    string
}
