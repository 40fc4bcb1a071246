package documents

import (
	"context"

	"github.com/jpvergara/gestion-api/internal/domain/entity"
	"github.com/jpvergara/gestion-api/internal/domain/repository"
)

// DocumentTxRunner ejecuta una función dentro de una transacción que agrupa
// la asignación de folio, el insert de cabecera y los inserts de líneas.
// Si fn retorna error, todo se revierte: nunca queda un documento parcial.
type DocumentTxRunner interface {
	RunDocument(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		folioRepo repository.FolioRepository,
	) error) error
}

// PageRenderer genera la representación imprimible (página HTML autocontenida)
// de un documento con sus líneas.
type PageRenderer interface {
	Render(doc *entity.DocumentWithCompany, items []*entity.DocumentItem) (string, error)
}

// PDFGenerator genera la representación gráfica PDF de un documento.
type PDFGenerator interface {
	Generate(ctx context.Context, doc *entity.DocumentWithCompany, items []*entity.DocumentItem) ([]byte, error)
}

// XMLExporter genera la representación XML estilo DTE (sin firmar) de un documento.
type XMLExporter interface {
	Export(doc *entity.DocumentWithCompany, items []*entity.DocumentItem) ([]byte, error)
}
