package postgres

import (
	"context"
	"fmt"

	"github.com/jpvergara/gestion-api/internal/domain/repository"
)

var _ repository.FolioRepository = (*FolioRepo)(nil)

// FolioRepo contador de folios por tipo sobre la tabla document_folios.
// Debe usarse dentro de la transacción de emisión: el UPDATE toma lock de la
// fila del tipo, así dos emisiones concurrentes del mismo tipo se serializan
// y no pueden observar el mismo candidato.
type FolioRepo struct {
	q Querier
}

// NewFolioRepository construye el adaptador. Pasar la tx de emisión (Querier).
func NewFolioRepository(q Querier) *FolioRepo {
	return &FolioRepo{q: q}
}

// NextFolio avanza el contador del tipo y devuelve el folio asignado:
// GREATEST(último + 1, piso). La primera asignación de un tipo parte en el piso.
func (r *FolioRepo) NextFolio(ctx context.Context, docType string, floor int64) (int64, error) {
	const query = `
		INSERT INTO document_folios (doc_type, last_folio)
		VALUES ($1, $2)
		ON CONFLICT (doc_type)
		DO UPDATE SET last_folio = GREATEST(document_folios.last_folio + 1, $2)
		RETURNING last_folio`
	var folio int64
	if err := r.q.QueryRow(ctx, query, docType, floor).Scan(&folio); err != nil {
		return 0, fmt.Errorf("next folio %s: %w", docType, err)
	}
	return folio, nil
}

// Advance garantiza que el contador del tipo sea al menos folio. Se usa al
// importar documentos con folio explícito para que las asignaciones
// automáticas posteriores no colisionen con el número importado.
func (r *FolioRepo) Advance(ctx context.Context, docType string, folio int64) error {
	const query = `
		INSERT INTO document_folios (doc_type, last_folio)
		VALUES ($1, $2)
		ON CONFLICT (doc_type)
		DO UPDATE SET last_folio = GREATEST(document_folios.last_folio, EXCLUDED.last_folio)`
	if _, err := r.q.Exec(ctx, query, docType, folio); err != nil {
		return fmt.Errorf("advance folio %s: %w", docType, err)
	}
	return nil
}
