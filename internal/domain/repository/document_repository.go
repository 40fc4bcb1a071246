package repository

import (
	"context"

	"github.com/jpvergara/gestion-api/internal/domain/entity"
)

// DocumentFilter filtros opcionales del listado de documentos.
type DocumentFilter struct {
	DocType string // coincidencia exacta de tipo
	Search  string // búsqueda parcial, sin distinguir mayúsculas, sobre nombre de empresa, folio o referencia
}

// DocumentRepository define el puerto de persistencia para documentos y sus líneas.
type DocumentRepository interface {
	// Create inserta la cabecera y asigna doc.ID con el id generado.
	Create(ctx context.Context, doc *entity.Document) error
	// CreateItem inserta una línea de detalle y asigna item.ID.
	CreateItem(ctx context.Context, item *entity.DocumentItem) error

	// GetByID obtiene un documento con los datos fiscales de su empresa.
	// Devuelve nil sin error si no existe.
	GetByID(ctx context.Context, id int64) (*entity.DocumentWithCompany, error)
	// List devuelve documentos con datos de empresa, del más nuevo al más
	// antiguo por id. Filtros según DocumentFilter.
	List(ctx context.Context, filter DocumentFilter) ([]*entity.DocumentWithCompany, error)
	// ItemsByDocumentID devuelve las líneas en orden de inserción.
	ItemsByDocumentID(ctx context.Context, documentID int64) ([]*entity.DocumentItem, error)

	UpdateStatus(ctx context.Context, id int64, status string) error
	// Delete elimina la cabecera; las líneas caen por cascada.
	Delete(ctx context.Context, id int64) error
}

// FolioRepository define el puerto del contador de folios por tipo.
type FolioRepository interface {
	// NextFolio avanza atómicamente el contador del tipo y devuelve el folio
	// asignado: GREATEST(último+1, floor). Dos asignaciones concurrentes del
	// mismo tipo se serializan en la fila del contador.
	NextFolio(ctx context.Context, docType string, floor int64) (int64, error)
	// Advance garantiza que el contador del tipo sea al menos folio, para que
	// asignaciones automáticas posteriores no colisionen con un folio
	// explícito importado.
	Advance(ctx context.Context, docType string, folio int64) error
}
