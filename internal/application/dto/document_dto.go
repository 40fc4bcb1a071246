package dto

import "github.com/shopspring/decimal"

// CreateDocumentItemRequest una línea del documento a crear.
type CreateDocumentItemRequest struct {
	ProductID   *int64          `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// CreateDocumentRequest cuerpo de creación de documento. Todos los campos
// descriptivos son opcionales y se persisten tal cual. Folio y Total
// explícitos son para documentos importados/manuales: Folio se usa verbatim
// en vez de asignar, y Total solo se respeta cuando no vienen líneas.
type CreateDocumentRequest struct {
	DocType        string                      `json:"type"`
	CompanyID      int64                       `json:"company_id"`
	Date           string                      `json:"date"`            // YYYY-MM-DD; vacío = hoy
	ExpirationDate string                      `json:"expiration_date"` // YYYY-MM-DD
	Items          []CreateDocumentItemRequest `json:"items"`
	Notes          string                      `json:"notes"`
	PaymentTerms   string                      `json:"payment_terms"`
	DeliveryTime   string                      `json:"delivery_time"`
	Warranty       string                      `json:"warranty"`
	Reference      string                      `json:"reference"`
	ParentID       *int64                      `json:"parent_id"`
	Status         string                      `json:"status"`
	Driver         string                      `json:"driver"`
	Plate          string                      `json:"plate"`
	DispatchType   string                      `json:"dispatch_type"`
	FileURL        string                      `json:"file_url"`
	Folio          *int64                      `json:"folio"`
	Total          *decimal.Decimal            `json:"total"`
}

// UpdateDocumentStatusRequest cambio de estado del ciclo de vida.
type UpdateDocumentStatusRequest struct {
	Status string `json:"status"`
}

// ListDocumentsQuery filtros del listado.
type ListDocumentsQuery struct {
	DocType string `query:"type"`
	Search  string `query:"search"`
}

// DocumentItemResponse una línea en la respuesta.
type DocumentItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   *int64          `json:"product_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// DocumentResponse cabecera de documento con los datos fiscales de la empresa
// desnormalizados y, en listados y detalle, sus líneas anidadas.
type DocumentResponse struct {
	ID             int64                  `json:"id"`
	DocType        string                 `json:"type"`
	Folio          int64                  `json:"folio"`
	CompanyID      int64                  `json:"company_id"`
	CompanyName    string                 `json:"company_name,omitempty"`
	CompanyRUT     string                 `json:"company_rut,omitempty"`
	CompanyGiro    string                 `json:"company_giro,omitempty"`
	CompanyAddress string                 `json:"company_address,omitempty"`
	CompanyCity    string                 `json:"company_city,omitempty"`
	Date           string                 `json:"date"`
	ExpirationDate string                 `json:"expiration_date,omitempty"`
	Status         string                 `json:"status"`
	Neto           decimal.Decimal        `json:"neto"`
	Tax            decimal.Decimal        `json:"tax"`
	Total          decimal.Decimal        `json:"total"`
	Notes          string                 `json:"notes,omitempty"`
	PaymentTerms   string                 `json:"payment_terms,omitempty"`
	DeliveryTime   string                 `json:"delivery_time,omitempty"`
	Warranty       string                 `json:"warranty,omitempty"`
	Reference      string                 `json:"reference,omitempty"`
	ParentID       *int64                 `json:"parent_id,omitempty"`
	Driver         string                 `json:"driver,omitempty"`
	Plate          string                 `json:"plate,omitempty"`
	DispatchType   string                 `json:"dispatch_type,omitempty"`
	FileURL        string                 `json:"file_url,omitempty"`
	Items          []DocumentItemResponse `json:"items,omitempty"`
}
