package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jpvergara/gestion-api/internal/application/auth"
	"github.com/jpvergara/gestion-api/internal/application/documents"
	"github.com/jpvergara/gestion-api/internal/application/usecase"
	"github.com/jpvergara/gestion-api/internal/domain/folio"
	infrapdf "github.com/jpvergara/gestion-api/internal/infrastructure/pdf"
	"github.com/jpvergara/gestion-api/internal/infrastructure/postgres"
	"github.com/jpvergara/gestion-api/internal/infrastructure/render"
	"github.com/jpvergara/gestion-api/internal/infrastructure/sii"
	httpRouter "github.com/jpvergara/gestion-api/internal/interfaces/http"
	"github.com/jpvergara/gestion-api/pkg/config"
	"github.com/jpvergara/gestion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	minimums, err := folio.ParseMinimums(cfg.Folio.Minimums)
	if err != nil {
		log.Fatal().Err(err).Str("minimums", cfg.Folio.Minimums).Msg("FOLIO_MINIMUMS inválido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	docRepo := postgres.NewDocumentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	emitter := render.Emitter{
		Name:    cfg.Emitter.Name,
		RUT:     cfg.Emitter.RUT,
		Giro:    cfg.Emitter.Giro,
		Address: cfg.Emitter.Address,
		City:    cfg.Emitter.City,
	}
	pageRenderer, err := render.NewHTMLRenderer(emitter)
	if err != nil {
		log.Fatal().Err(err).Msg("plantilla de documento")
	}
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(emitter)
	xmlExporter := sii.NewDTEExporter(emitter)

	createDocumentUC := documents.NewCreateDocumentUseCase(txRunner, companyRepo, minimums)
	documentQueryUC := documents.NewQueryUseCase(docRepo)
	documentRenderUC := documents.NewRenderUseCase(documentQueryUC, pageRenderer, pdfGenerator, xmlExporter)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateDocument: createDocumentUC,
		DocumentQuery:  documentQueryUC,
		DocumentRender: documentRenderUC,
		CompanyUC:      companyUC,
		ProductUC:      productUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
