package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jpvergara/gestion-api/internal/application/auth"
	"github.com/jpvergara/gestion-api/internal/application/documents"
	"github.com/jpvergara/gestion-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateDocument *documents.CreateDocumentUseCase
	DocumentQuery  *documents.QueryUseCase
	DocumentRender *documents.RenderUseCase
	CompanyUC      *usecase.CompanyUseCase
	ProductUC      *usecase.ProductUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies (protegido)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Documents (protegido)
	docs := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.CreateDocument, deps.DocumentQuery, deps.DocumentRender)
	docs.Post("/", documentHandler.Create)
	docs.Get("/", documentHandler.List)
	docs.Get("/:id", documentHandler.GetByID)
	docs.Get("/:id/print", documentHandler.Print)
	docs.Get("/:id/pdf", documentHandler.PDF)
	docs.Get("/:id/xml", documentHandler.XML)
	docs.Put("/:id/status", documentHandler.UpdateStatus)
	docs.Delete("/:id", RequireRole("admin"), documentHandler.Delete)
}
