package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jpvergara/gestion-api/internal/application/documents"
	"github.com/jpvergara/gestion-api/internal/domain/repository"
)

var _ documents.DocumentTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunDocument inicia una transacción con los repos de emisión (documentos y
// folios) atados a la tx y hace Commit o Rollback. Es la unidad de trabajo de
// la emisión: lectura/avance de folio, insert de cabecera e inserts de líneas
// se vuelven visibles todos juntos o ninguno.
func (r *TxRunner) RunDocument(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	folioRepo repository.FolioRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	docRepo := NewDocumentRepository(tx)
	folioRepo := NewFolioRepository(tx)

	if err := fn(docRepo, folioRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
