package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jpvergara/gestion-api/internal/application/documents"
	"github.com/jpvergara/gestion-api/internal/application/dto"
	"github.com/jpvergara/gestion-api/internal/domain"
)

// DocumentHandler maneja las peticiones HTTP de documentos comerciales:
// emisión, lecturas, cambio de estado, eliminación y representaciones
// imprimibles (HTML, PDF, XML).
type DocumentHandler struct {
	create *documents.CreateDocumentUseCase
	query  *documents.QueryUseCase
	render *documents.RenderUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(
	create *documents.CreateDocumentUseCase,
	query *documents.QueryUseCase,
	render *documents.RenderUseCase,
) *DocumentHandler {
	return &DocumentHandler{create: create, query: query, render: render}
}

// Create emite un documento: asigna folio, calcula totales y persiste
// cabecera más líneas en una sola transacción.
// POST /api/documents
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.create.Create(c.Context(), in)
	if err != nil {
		return documentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// List lista documentos del más nuevo al más antiguo.
// GET /api/documents?type=FAC&search=andes
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var q dto.ListDocumentsQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	docs, err := h.query.List(c.Context(), q)
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(docs)
}

// GetByID devuelve un documento con sus líneas.
// GET /api/documents/:id
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	doc, err := h.query.Get(c.Context(), id)
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(doc)
}

// Print devuelve la página HTML imprimible del documento.
// GET /api/documents/:id/print
func (h *DocumentHandler) Print(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	page, err := h.render.Page(c.Context(), id)
	if err != nil {
		return documentError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(page)
}

// PDF devuelve la representación gráfica PDF del documento.
// GET /api/documents/:id/pdf
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	out, err := h.render.PDF(c.Context(), id)
	if err != nil {
		return documentError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="documento-%d.pdf"`, id))
	return c.Send(out)
}

// XML devuelve la representación XML estilo DTE, sin firmar.
// GET /api/documents/:id/xml
func (h *DocumentHandler) XML(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	out, err := h.render.XML(c.Context(), id)
	if err != nil {
		return documentError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(out)
}

// UpdateStatus cambia la etiqueta de estado del documento.
// PUT /api/documents/:id/status
func (h *DocumentHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.UpdateDocumentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.query.UpdateStatus(c.Context(), id, in.Status); err != nil {
		return documentError(c, err)
	}
	return c.JSON(dto.AckResponse{OK: true})
}

// Delete elimina el documento y sus líneas.
// DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.query.Delete(c.Context(), id); err != nil {
		return documentError(c, err)
	}
	return c.JSON(dto.AckResponse{OK: true})
}

// paramID parsea el :id numérico de la ruta.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

// documentError mapea errores de dominio a códigos HTTP.
func documentError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento o empresa no encontrado"})
	}
	if errors.Is(err, domain.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "folio ya utilizado para este tipo"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
