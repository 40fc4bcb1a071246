package documents

import "context"

// RenderUseCase produce las representaciones imprimibles de un documento:
// página HTML, PDF y XML estilo DTE. Reutiliza el camino de lectura unitaria
// del QueryUseCase; no muta estado.
type RenderUseCase struct {
	query    *QueryUseCase
	page     PageRenderer
	pdf      PDFGenerator
	exporter XMLExporter
}

// NewRenderUseCase construye el caso de uso de renderizado.
func NewRenderUseCase(query *QueryUseCase, page PageRenderer, pdf PDFGenerator, exporter XMLExporter) *RenderUseCase {
	return &RenderUseCase{query: query, page: page, pdf: pdf, exporter: exporter}
}

// Page devuelve la página HTML imprimible. ErrNotFound si el id no existe.
func (uc *RenderUseCase) Page(ctx context.Context, id int64) (string, error) {
	doc, items, err := uc.query.fetch(ctx, id)
	if err != nil {
		return "", err
	}
	return uc.page.Render(doc, items)
}

// PDF devuelve la representación gráfica PDF.
func (uc *RenderUseCase) PDF(ctx context.Context, id int64) ([]byte, error) {
	doc, items, err := uc.query.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.pdf.Generate(ctx, doc, items)
}

// XML devuelve la representación XML estilo DTE, sin firmar.
func (uc *RenderUseCase) XML(ctx context.Context, id int64) ([]byte, error) {
	doc, items, err := uc.query.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.exporter.Export(doc, items)
}
