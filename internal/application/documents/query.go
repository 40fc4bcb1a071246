package documents

import (
	"context"

	"github.com/jpvergara/gestion-api/internal/application/dto"
	"github.com/jpvergara/gestion-api/internal/domain"
	"github.com/jpvergara/gestion-api/internal/domain/entity"
	"github.com/jpvergara/gestion-api/internal/domain/repository"
)

// QueryUseCase resuelve las lecturas y mutaciones menores de documentos:
// listado con filtro y búsqueda, detalle, cambio de estado y eliminación.
type QueryUseCase struct {
	docRepo repository.DocumentRepository
}

// NewQueryUseCase construye el caso de uso de lectura.
func NewQueryUseCase(docRepo repository.DocumentRepository) *QueryUseCase {
	return &QueryUseCase{docRepo: docRepo}
}

// List devuelve documentos del más nuevo al más antiguo, con datos de empresa
// y líneas anidadas. Filtro de tipo exacto y búsqueda parcial opcionales.
func (uc *QueryUseCase) List(ctx context.Context, q dto.ListDocumentsQuery) ([]*dto.DocumentResponse, error) {
	docs, err := uc.docRepo.List(ctx, repository.DocumentFilter{DocType: q.DocType, Search: q.Search})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		items, err := uc.docRepo.ItemsByDocumentID(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, fullResponse(doc, items))
	}
	return out, nil
}

// Get devuelve un documento con sus líneas, o ErrNotFound.
func (uc *QueryUseCase) Get(ctx context.Context, id int64) (*dto.DocumentResponse, error) {
	doc, items, err := uc.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	return fullResponse(doc, items), nil
}

// UpdateStatus cambia la etiqueta de estado; el resto del documento es inmutable.
func (uc *QueryUseCase) UpdateStatus(ctx context.Context, id int64, status string) error {
	if status == "" {
		return domain.ErrInvalidInput
	}
	return uc.docRepo.UpdateStatus(ctx, id, status)
}

// Delete elimina el documento; sus líneas caen por cascada en el store.
func (uc *QueryUseCase) Delete(ctx context.Context, id int64) error {
	return uc.docRepo.Delete(ctx, id)
}

// fetch camino común de lectura unitaria (lo reutiliza el renderizador).
func (uc *QueryUseCase) fetch(ctx context.Context, id int64) (*entity.DocumentWithCompany, []*entity.DocumentItem, error) {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.docRepo.ItemsByDocumentID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return doc, items, nil
}

// fullResponse arma la respuesta con datos de empresa y líneas.
func fullResponse(doc *entity.DocumentWithCompany, items []*entity.DocumentItem) *dto.DocumentResponse {
	resp := headerResponse(&doc.Document)
	resp.CompanyName = doc.CompanyName
	resp.CompanyRUT = doc.CompanyRUT
	resp.CompanyGiro = doc.CompanyGiro
	resp.CompanyAddress = doc.CompanyAddress
	resp.CompanyCity = doc.CompanyCity
	resp.Items = make([]dto.DocumentItemResponse, 0, len(items))
	for _, item := range items {
		resp.Items = append(resp.Items, dto.DocumentItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.Total,
		})
	}
	return resp
}
