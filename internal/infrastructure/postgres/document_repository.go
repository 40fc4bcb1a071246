package postgres

import (
	"context"
	"fmt"

	"github.com/jpvergara/gestion-api/internal/domain"
	"github.com/jpvergara/gestion-api/internal/domain/entity"
	"github.com/jpvergara/gestion-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste la cabecera del documento y asigna el id generado.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	query := `
		INSERT INTO documents (doc_type, folio, company_id, date, expiration_date, status,
		                       neto, tax, total, notes, payment_terms, delivery_time, warranty,
		                       reference, parent_id, driver, plate, dispatch_type, file_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		doc.DocType, doc.Folio, doc.CompanyID, doc.Date, doc.ExpirationDate, doc.Status,
		doc.Neto, doc.Tax, doc.Total,
		nullIfEmpty(doc.Notes), nullIfEmpty(doc.PaymentTerms), nullIfEmpty(doc.DeliveryTime),
		nullIfEmpty(doc.Warranty), nullIfEmpty(doc.Reference), doc.ParentID,
		nullIfEmpty(doc.Driver), nullIfEmpty(doc.Plate), nullIfEmpty(doc.DispatchType),
		nullIfEmpty(doc.FileURL), doc.CreatedAt,
	).Scan(&doc.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("folio %d ya existe para el tipo %s: %w", doc.Folio, doc.DocType, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de detalle y asigna el id generado.
func (r *DocumentRepo) CreateItem(ctx context.Context, item *entity.DocumentItem) error {
	query := `
		INSERT INTO document_items (document_id, product_id, name, description, quantity, price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		item.DocumentID, item.ProductID, item.Name, nullIfEmpty(item.Description),
		item.Quantity, item.Price, item.Total,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert document item: %w", err)
	}
	return nil
}

// columnas del SELECT con JOIN a companies, compartidas por GetByID y List.
const documentWithCompanyColumns = `
	d.id, d.doc_type, d.folio, d.company_id, d.date, d.expiration_date, d.status,
	d.neto, d.tax, d.total, d.notes, d.payment_terms, d.delivery_time, d.warranty,
	d.reference, d.parent_id, d.driver, d.plate, d.dispatch_type, d.file_url, d.created_at,
	c.name, COALESCE(c.rut, ''), COALESCE(c.giro, ''), COALESCE(c.address, ''), COALESCE(c.city, '')`

// GetByID obtiene un documento con los datos fiscales de su empresa.
// Devuelve nil sin error si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*entity.DocumentWithCompany, error) {
	query := `
		SELECT ` + documentWithCompanyColumns + `
		FROM documents d
		JOIN companies c ON c.id = d.company_id
		WHERE d.id = $1`
	row := r.q.QueryRow(ctx, query, id)
	doc, err := scanDocumentWithCompany(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// List devuelve documentos con datos de empresa, del más nuevo al más antiguo
// por id. El filtro de tipo es exacto; la búsqueda es parcial e insensible a
// mayúsculas sobre nombre de empresa, folio como texto o referencia (OR entre
// los tres, AND con el filtro de tipo).
func (r *DocumentRepo) List(ctx context.Context, filter repository.DocumentFilter) ([]*entity.DocumentWithCompany, error) {
	query := `
		SELECT ` + documentWithCompanyColumns + `
		FROM documents d
		JOIN companies c ON c.id = d.company_id`
	var (
		conds []string
		args  []any
	)
	if filter.DocType != "" {
		args = append(args, filter.DocType)
		conds = append(conds, fmt.Sprintf("d.doc_type = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(c.name ILIKE $%d OR d.folio::text ILIKE $%d OR d.reference ILIKE $%d)", n, n, n))
	}
	for i, cond := range conds {
		if i == 0 {
			query += "\n\t\tWHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += "\n\t\tORDER BY d.id DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.DocumentWithCompany
	for rows.Next() {
		doc, err := scanDocumentWithCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, doc)
	}
	return list, rows.Err()
}

// ItemsByDocumentID obtiene las líneas de un documento en orden de inserción.
func (r *DocumentRepo) ItemsByDocumentID(ctx context.Context, documentID int64) ([]*entity.DocumentItem, error) {
	query := `
		SELECT id, document_id, product_id, name, COALESCE(description, ''), quantity, price, total
		FROM document_items WHERE document_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document items: %w", err)
	}
	defer rows.Close()

	var list []*entity.DocumentItem
	for rows.Next() {
		var it entity.DocumentItem
		if err := rows.Scan(&it.ID, &it.DocumentID, &it.ProductID, &it.Name, &it.Description,
			&it.Quantity, &it.Price, &it.Total); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateStatus cambia solo la etiqueta de estado.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE documents SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la cabecera; las líneas caen por el ON DELETE CASCADE del schema.
func (r *DocumentRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner cubre pgx.Row y pgx.Rows para compartir el scan del JOIN.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocumentWithCompany(row rowScanner) (*entity.DocumentWithCompany, error) {
	var d entity.DocumentWithCompany
	var notes, paymentTerms, deliveryTime, warranty, reference *string
	var driver, plate, dispatchType, fileURL *string
	if err := row.Scan(
		&d.ID, &d.DocType, &d.Folio, &d.CompanyID, &d.Date, &d.ExpirationDate, &d.Status,
		&d.Neto, &d.Tax, &d.Total, &notes, &paymentTerms, &deliveryTime, &warranty,
		&reference, &d.ParentID, &driver, &plate, &dispatchType, &fileURL, &d.CreatedAt,
		&d.CompanyName, &d.CompanyRUT, &d.CompanyGiro, &d.CompanyAddress, &d.CompanyCity,
	); err != nil {
		return nil, err
	}
	d.Notes = derefStr(notes)
	d.PaymentTerms = derefStr(paymentTerms)
	d.DeliveryTime = derefStr(deliveryTime)
	d.Warranty = derefStr(warranty)
	d.Reference = derefStr(reference)
	d.Driver = derefStr(driver)
	d.Plate = derefStr(plate)
	d.DispatchType = derefStr(dispatchType)
	d.FileURL = derefStr(fileURL)
	return &d, nil
}
