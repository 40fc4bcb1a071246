package documents

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jpvergara/gestion-api/internal/application/dto"
	"github.com/jpvergara/gestion-api/internal/domain"
	"github.com/jpvergara/gestion-api/internal/domain/entity"
	"github.com/jpvergara/gestion-api/internal/domain/folio"
	"github.com/jpvergara/gestion-api/internal/domain/repository"
	"github.com/jpvergara/gestion-api/internal/domain/totals"
)

const dateLayout = "2006-01-02"

// CreateDocumentUseCase emite un documento: resuelve el folio, calcula los
// totales y persiste cabecera más líneas en una sola transacción.
type CreateDocumentUseCase struct {
	txRunner    DocumentTxRunner
	companyRepo repository.CompanyRepository
	minimums    folio.Minimums
}

// NewCreateDocumentUseCase construye el caso de uso.
func NewCreateDocumentUseCase(txRunner DocumentTxRunner, companyRepo repository.CompanyRepository, minimums folio.Minimums) *CreateDocumentUseCase {
	return &CreateDocumentUseCase{txRunner: txRunner, companyRepo: companyRepo, minimums: minimums}
}

// Create valida la entrada y ejecuta la unidad de trabajo de emisión:
// folio → cabecera → líneas, atómico. Devuelve la cabecera persistida.
func (uc *CreateDocumentUseCase) Create(ctx context.Context, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if in.DocType == "" || in.CompanyID == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.Name == "" || !item.Quantity.GreaterThan(decimal.Zero) || item.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Folio != nil && *in.Folio < 1 {
		return nil, domain.ErrInvalidInput
	}

	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	date := time.Now()
	if in.Date != "" {
		if date, err = time.Parse(dateLayout, in.Date); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	var expiration *time.Time
	if in.ExpirationDate != "" {
		exp, err := time.Parse(dateLayout, in.ExpirationDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		expiration = &exp
	}
	status := in.Status
	if status == "" {
		status = entity.StatusIssued
	}

	doc := entity.Document{
		DocType:        in.DocType,
		CompanyID:      in.CompanyID,
		Date:           date,
		ExpirationDate: expiration,
		Status:         status,
		Neto:           decimal.Zero,
		Tax:            decimal.Zero,
		Total:          decimal.Zero,
		Notes:          in.Notes,
		PaymentTerms:   in.PaymentTerms,
		DeliveryTime:   in.DeliveryTime,
		Warranty:       in.Warranty,
		Reference:      in.Reference,
		ParentID:       in.ParentID,
		Driver:         in.Driver,
		Plate:          in.Plate,
		DispatchType:   in.DispatchType,
		FileURL:        in.FileURL,
		CreatedAt:      time.Now(),
	}

	if len(in.Items) > 0 {
		// Con líneas, el total del caller se ignora: los montos se derivan.
		lines := make([]totals.Line, len(in.Items))
		for i, item := range in.Items {
			lines[i] = totals.Line{Quantity: item.Quantity, Price: item.Price}
		}
		doc.Neto, doc.Tax, doc.Total = totals.Compute(lines)
	} else if in.Total != nil {
		// Documento manual/importado sin detalle: total tal cual, neto e IVA en cero.
		doc.Total = *in.Total
	}

	err = uc.txRunner.RunDocument(ctx, func(
		docRepo repository.DocumentRepository,
		folioRepo repository.FolioRepository,
	) error {
		if in.Folio != nil {
			// Folio explícito (documento importado con número oficial): se usa
			// verbatim y se avanza el contador para no chocar después.
			doc.Folio = *in.Folio
			if err := folioRepo.Advance(ctx, doc.DocType, doc.Folio); err != nil {
				return err
			}
		} else {
			next, err := folioRepo.NextFolio(ctx, doc.DocType, uc.minimums.For(doc.DocType))
			if err != nil {
				return err
			}
			doc.Folio = next
		}

		if err := docRepo.Create(ctx, &doc); err != nil {
			return err
		}
		for _, item := range in.Items {
			line := entity.DocumentItem{
				DocumentID:  doc.ID,
				ProductID:   item.ProductID,
				Name:        item.Name,
				Description: item.Description,
				Quantity:    item.Quantity,
				Price:       item.Price,
				Total:       totals.LineTotal(item.Quantity, item.Price),
			}
			if err := docRepo.CreateItem(ctx, &line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return headerResponse(&doc), nil
}

// headerResponse arma la respuesta de cabecera (sin líneas ni datos de empresa).
func headerResponse(doc *entity.Document) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:           doc.ID,
		DocType:      doc.DocType,
		Folio:        doc.Folio,
		CompanyID:    doc.CompanyID,
		Date:         doc.Date.Format(dateLayout),
		Status:       doc.Status,
		Neto:         doc.Neto,
		Tax:          doc.Tax,
		Total:        doc.Total,
		Notes:        doc.Notes,
		PaymentTerms: doc.PaymentTerms,
		DeliveryTime: doc.DeliveryTime,
		Warranty:     doc.Warranty,
		Reference:    doc.Reference,
		ParentID:     doc.ParentID,
		Driver:       doc.Driver,
		Plate:        doc.Plate,
		DispatchType: doc.DispatchType,
		FileURL:      doc.FileURL,
	}
	if doc.ExpirationDate != nil {
		resp.ExpirationDate = doc.ExpirationDate.Format(dateLayout)
	}
	return resp
}
