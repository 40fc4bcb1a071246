package documents_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpvergara/gestion-api/internal/application/documents"
	"github.com/jpvergara/gestion-api/internal/application/dto"
	"github.com/jpvergara/gestion-api/internal/domain"
	"github.com/jpvergara/gestion-api/internal/domain/entity"
)

func seedDocs(t *testing.T, s *fakeStore) {
	t.Helper()
	create, _ := newUseCases(s)
	ctx := context.Background()
	for _, req := range []dto.CreateDocumentRequest{
		{DocType: "FAC", CompanyID: 1, Date: "2026-01-10"},
		{DocType: "COT", CompanyID: 1, Date: "2026-01-11"},
		{DocType: "FAC", CompanyID: 1, Date: "2026-01-12"},
	} {
		_, err := create.Create(ctx, req)
		require.NoError(t, err)
	}
}

func TestList_OrdenNuevoPrimero(t *testing.T) {
	s := newFakeStore()
	seedDocs(t, s)
	_, query := newUseCases(s)

	docs, err := query.List(context.Background(), dto.ListDocumentsQuery{})
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Greater(t, docs[0].ID, docs[1].ID, "orden por id descendente")
	assert.Greater(t, docs[1].ID, docs[2].ID)
}

func TestList_FiltroPorTipo(t *testing.T) {
	s := newFakeStore()
	seedDocs(t, s)
	_, query := newUseCases(s)

	docs, err := query.List(context.Background(), dto.ListDocumentsQuery{DocType: "COT"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "COT", docs[0].DocType)
}

func TestGet_NoExiste(t *testing.T) {
	s := newFakeStore()
	_, query := newUseCases(s)
	_, err := query.Get(context.Background(), 99999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	s := newFakeStore()
	seedDocs(t, s)
	_, query := newUseCases(s)
	ctx := context.Background()

	require.NoError(t, query.UpdateStatus(ctx, s.docs[0].ID, "Pagada"))
	got, err := query.Get(ctx, s.docs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Pagada", got.Status)

	assert.ErrorIs(t, query.UpdateStatus(ctx, s.docs[0].ID, ""), domain.ErrInvalidInput)
}

func TestDelete_CascadaDeLineas(t *testing.T) {
	s := newFakeStore()
	create, query := newUseCases(s)
	ctx := context.Background()

	created, err := create.Create(ctx, dto.CreateDocumentRequest{
		DocType:   "FAC",
		CompanyID: 1,
		Items: []dto.CreateDocumentItemRequest{
			{Name: "a", Quantity: dec("1"), Price: dec("100")},
			{Name: "b", Quantity: dec("2"), Price: dec("50")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, query.Delete(ctx, created.ID))
	_, err = query.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.items, "las líneas se eliminan junto al documento")
}

// stub renderer para probar el camino NotFound del renderizador.
type stubPage struct{}

func (stubPage) Render(*entity.DocumentWithCompany, []*entity.DocumentItem) (string, error) {
	return "<html></html>", nil
}

func TestRender_NotFoundSinPagina(t *testing.T) {
	s := newFakeStore()
	_, query := newUseCases(s)
	render := documents.NewRenderUseCase(query, stubPage{}, nil, nil)

	page, err := render.Page(context.Background(), 99999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, page, "no debe generarse página para un id inexistente")
}

func TestRender_DocumentoExistente(t *testing.T) {
	s := newFakeStore()
	create, query := newUseCases(s)
	created, err := create.Create(context.Background(), dto.CreateDocumentRequest{DocType: "FAC", CompanyID: 1})
	require.NoError(t, err)

	render := documents.NewRenderUseCase(query, stubPage{}, nil, nil)
	page, err := render.Page(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, page)
}
