package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpvergara/gestion-api/internal/application/documents"
	"github.com/jpvergara/gestion-api/internal/application/dto"
	"github.com/jpvergara/gestion-api/internal/domain"
	"github.com/jpvergara/gestion-api/internal/domain/entity"
	"github.com/jpvergara/gestion-api/internal/domain/folio"
	"github.com/jpvergara/gestion-api/internal/domain/repository"
	apphttp "github.com/jpvergara/gestion-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el camino handler → use case
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	nextID int64
	docs   map[int64]*entity.DocumentWithCompany
	items  map[int64][]*entity.DocumentItem
	folios map[string]int64
}

func newMemStore() *memStore {
	return &memStore{
		docs:   make(map[int64]*entity.DocumentWithCompany),
		items:  make(map[int64][]*entity.DocumentItem),
		folios: make(map[string]int64),
	}
}

type memDocRepo struct{ s *memStore }

func (r *memDocRepo) Create(_ context.Context, doc *entity.Document) error {
	r.s.nextID++
	doc.ID = r.s.nextID
	r.s.docs[doc.ID] = &entity.DocumentWithCompany{
		Document:    *doc,
		CompanyName: "Constructora Andes Ltda",
		CompanyRUT:  "76.123.456-0",
	}
	return nil
}

func (r *memDocRepo) CreateItem(_ context.Context, item *entity.DocumentItem) error {
	item.ID = int64(len(r.s.items[item.DocumentID]) + 1)
	r.s.items[item.DocumentID] = append(r.s.items[item.DocumentID], item)
	return nil
}

func (r *memDocRepo) GetByID(_ context.Context, id int64) (*entity.DocumentWithCompany, error) {
	return r.s.docs[id], nil
}

func (r *memDocRepo) List(_ context.Context, _ repository.DocumentFilter) ([]*entity.DocumentWithCompany, error) {
	out := make([]*entity.DocumentWithCompany, 0, len(r.s.docs))
	for _, d := range r.s.docs {
		out = append(out, d)
	}
	return out, nil
}

func (r *memDocRepo) ItemsByDocumentID(_ context.Context, id int64) ([]*entity.DocumentItem, error) {
	return r.s.items[id], nil
}

func (r *memDocRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	doc, ok := r.s.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Status = status
	return nil
}

func (r *memDocRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.docs, id)
	delete(r.s.items, id)
	return nil
}

type memFolioRepo struct{ s *memStore }

func (r *memFolioRepo) NextFolio(_ context.Context, docType string, floor int64) (int64, error) {
	next := r.s.folios[docType] + 1
	if next < floor {
		next = floor
	}
	r.s.folios[docType] = next
	return next, nil
}

func (r *memFolioRepo) Advance(_ context.Context, docType string, f int64) error {
	if f > r.s.folios[docType] {
		r.s.folios[docType] = f
	}
	return nil
}

type memCompanyRepo struct{}

func (memCompanyRepo) Create(context.Context, *entity.Company) error { return nil }
func (memCompanyRepo) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	if id != 1 {
		return nil, nil
	}
	return &entity.Company{ID: 1, Name: "Constructora Andes Ltda", RUT: "76.123.456-0"}, nil
}
func (memCompanyRepo) List(context.Context, int, int) ([]*entity.Company, error) { return nil, nil }
func (memCompanyRepo) Update(context.Context, *entity.Company) error             { return nil }

type memTxRunner struct{ s *memStore }

func (r *memTxRunner) RunDocument(_ context.Context, fn func(repository.DocumentRepository, repository.FolioRepository) error) error {
	return fn(&memDocRepo{s: r.s}, &memFolioRepo{s: r.s})
}

// ──────────────────────────────────────────────────────────────────────────────

func buildDocumentsApp(t *testing.T) (*fiber.App, *memStore) {
	t.Helper()
	store := newMemStore()
	minimums, err := folio.ParseMinimums("FAC=6060")
	require.NoError(t, err)

	create := documents.NewCreateDocumentUseCase(&memTxRunner{s: store}, memCompanyRepo{}, minimums)
	query := documents.NewQueryUseCase(&memDocRepo{s: store})
	render := documents.NewRenderUseCase(query, stubPage{}, nil, nil)

	app := fiber.New()
	h := apphttp.NewDocumentHandler(create, query, render)
	app.Post("/api/documents", h.Create)
	app.Get("/api/documents/:id", h.GetByID)
	app.Get("/api/documents/:id/print", h.Print)
	app.Put("/api/documents/:id/status", h.UpdateStatus)
	return app, store
}

type stubPage struct{}

func (stubPage) Render(doc *entity.DocumentWithCompany, _ []*entity.DocumentItem) (string, error) {
	return "<html>" + doc.CompanyName + "</html>", nil
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestDocumentHandler_Create_Retorna201ConFolioYTotales(t *testing.T) {
	app, _ := buildDocumentsApp(t)

	resp := postJSON(t, app, "/api/documents", dto.CreateDocumentRequest{
		DocType:   entity.DocTypeFactura,
		CompanyID: 1,
		Date:      time.Now().Format("2006-01-02"),
		Items: []dto.CreateDocumentItemRequest{
			{Name: "Perno galvanizado", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(1000)},
			{Name: "Tuerca", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(500)},
		},
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.DocumentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, int64(6060), out.Folio, "primera factura parte en el piso configurado")
	assert.True(t, out.Neto.Equal(decimal.NewFromInt(2500)), "neto = 2500, fue %s", out.Neto)
	assert.True(t, out.Tax.Equal(decimal.NewFromInt(475)), "IVA = 475, fue %s", out.Tax)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(2975)), "total = 2975, fue %s", out.Total)
	assert.Equal(t, entity.StatusIssued, out.Status)
}

func TestDocumentHandler_Create_SinTipoRetorna400(t *testing.T) {
	app, _ := buildDocumentsApp(t)

	resp := postJSON(t, app, "/api/documents", dto.CreateDocumentRequest{CompanyID: 1})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDocumentHandler_Create_EmpresaInexistenteRetorna404(t *testing.T) {
	app, _ := buildDocumentsApp(t)

	resp := postJSON(t, app, "/api/documents", dto.CreateDocumentRequest{
		DocType:   entity.DocTypeCotizacion,
		CompanyID: 999,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDocumentHandler_GetByID_NoExisteRetorna404(t *testing.T) {
	app, _ := buildDocumentsApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/42", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDocumentHandler_GetByID_IDNoNumericoRetorna400(t *testing.T) {
	app, _ := buildDocumentsApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/abc", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDocumentHandler_Print_DevuelveHTML(t *testing.T) {
	app, store := buildDocumentsApp(t)

	resp := postJSON(t, app, "/api/documents", dto.CreateDocumentRequest{
		DocType:   entity.DocTypeCotizacion,
		CompanyID: 1,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, store.docs, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/1/print", nil)
	printResp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer printResp.Body.Close()

	assert.Equal(t, http.StatusOK, printResp.StatusCode)
	assert.Contains(t, printResp.Header.Get("Content-Type"), "text/html")
}

func TestDocumentHandler_UpdateStatus_VacioRetorna400(t *testing.T) {
	app, _ := buildDocumentsApp(t)

	raw, _ := json.Marshal(dto.UpdateDocumentStatusRequest{Status: ""})
	req := httptest.NewRequest(http.MethodPut, "/api/documents/1/status", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
