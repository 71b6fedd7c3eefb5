package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/syncdesk-api/docs"
	appanalytics "github.com/jhoicas/syncdesk-api/internal/application/analytics"
	"github.com/jhoicas/syncdesk-api/internal/application/importer"
	"github.com/jhoicas/syncdesk-api/internal/application/ports"
	"github.com/jhoicas/syncdesk-api/internal/application/reports"
	"github.com/jhoicas/syncdesk-api/internal/application/usecase"
	infraai "github.com/jhoicas/syncdesk-api/internal/infrastructure/ai"
	infrapdf "github.com/jhoicas/syncdesk-api/internal/infrastructure/pdf"
	"github.com/jhoicas/syncdesk-api/internal/infrastructure/postgres"
	"github.com/jhoicas/syncdesk-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/syncdesk-api/internal/infrastructure/storage"
	"github.com/jhoicas/syncdesk-api/internal/infrastructure/xmldoc"
	httpRouter "github.com/jhoicas/syncdesk-api/internal/interfaces/http"
	"github.com/jhoicas/syncdesk-api/pkg/config"
	"github.com/jhoicas/syncdesk-api/pkg/logger"
)

// @title                       SyncDesk API
// @version                     1.0
// @description                 Music sync-licensing business API
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log.Named("migrate").Zerolog()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	// Repositorios
	songRepo := postgres.NewSongRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	dealRepo := postgres.NewDealRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	pitchRepo := postgres.NewPitchRepository(pool)
	templateRepo := postgres.NewTemplateRepository(pool)
	emailTemplateRepo := postgres.NewEmailTemplateRepository(pool)
	attachmentRepo := postgres.NewAttachmentRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	workflowRepo := postgres.NewWorkflowRepository(pool)
	playlistRepo := postgres.NewPlaylistRepository(pool)
	calendarRepo := postgres.NewCalendarEventRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Infraestructura
	codec := spreadsheet.NewCodec()
	fileStore, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de adjuntos")
	}

	// Proveedor LLM según AI_PROVIDER; sin API key el análisis responde 503.
	var llm ports.LLMService
	switch strings.ToLower(cfg.AI.Provider) {
	case "gemini":
		if cfg.AI.GeminiAPIKey != "" {
			llm = infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
		}
	default:
		if cfg.AI.AnthropicAPIKey != "" {
			llm = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
		}
	}
	if llm == nil {
		log.Warn().Str("provider", cfg.AI.Provider).Msg("análisis IA deshabilitado: falta API key")
	}

	// Casos de uso
	songUC := usecase.NewSongUseCase(songRepo)
	contactUC := usecase.NewContactUseCase(contactRepo)
	dealUC := usecase.NewDealUseCase(dealRepo, songRepo, contactRepo)
	paymentUC := usecase.NewPaymentUseCase(paymentRepo, dealRepo)
	pitchUC := usecase.NewPitchUseCase(pitchRepo, dealRepo)
	templateUC := usecase.NewTemplateUseCase(templateRepo, emailTemplateRepo, dealRepo, songRepo, contactRepo)
	invoiceUC := usecase.NewInvoiceUseCase(invoiceRepo, contactRepo, dealRepo)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, dealRepo)
	workflowUC := usecase.NewWorkflowUseCase(workflowRepo, emailTemplateRepo)
	playlistUC := usecase.NewPlaylistUseCase(playlistRepo, songRepo, contactRepo)
	calendarUC := usecase.NewCalendarUseCase(calendarRepo, dealRepo, contactRepo)
	attachmentUC := usecase.NewAttachmentUseCase(attachmentRepo, fileStore, usecase.AttachmentOwners{
		Songs:    songRepo,
		Contacts: contactRepo,
		Deals:    dealRepo,
		Payments: paymentRepo,
		Invoices: invoiceRepo,
		Expenses: expenseRepo,
	}, cfg.Storage.MaxBytes)
	aiUC := usecase.NewAIUseCase(llm, songRepo)

	importSvc := importer.NewService(codec, txRunner, log, cfg.Import.PreviewRows)
	dashboardUC := appanalytics.NewDashboardUseCase(appanalytics.Repos{
		Analytics: analyticsRepo,
		Songs:     songRepo,
		Contacts:  contactRepo,
		Deals:     dealRepo,
		Payments:  paymentRepo,
		Pitches:   pitchRepo,
		Events:    calendarRepo,
	})
	exportUC := reports.NewExportUseCase(codec, songRepo, contactRepo, dealRepo, paymentRepo)
	invoiceDocs := reports.NewInvoiceDocumentUseCase(
		invoiceRepo, contactRepo, dealRepo, songRepo,
		infrapdf.NewMarotoPDFGenerator(), xmldoc.NewInvoiceXMLBuilder(), cfg.App.Name,
	)

	// Los adjuntos y las hojas de cálculo viajan en multipart; el límite cubre el mayor de ambos.
	bodyLimit := int(cfg.Storage.MaxBytes)
	if bodyLimit < spreadsheet.MaxFileBytes {
		bodyLimit = spreadsheet.MaxFileBytes
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    bodyLimit + 1<<20,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Join(cfg.HTTP.AllowedOrigins, ","),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "Content-Disposition, " + httpRouter.HeaderDocumentDigest,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Title = cfg.App.Name
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SongUC:       songUC,
		ContactUC:    contactUC,
		DealUC:       dealUC,
		PaymentUC:    paymentUC,
		PitchUC:      pitchUC,
		TemplateUC:   templateUC,
		InvoiceUC:    invoiceUC,
		ExpenseUC:    expenseUC,
		WorkflowUC:   workflowUC,
		PlaylistUC:   playlistUC,
		CalendarUC:   calendarUC,
		AttachmentUC: attachmentUC,
		AIUC:         aiUC,
		Importer:     importSvc,
		DashboardUC:  dashboardUC,
		ExportUC:     exportUC,
		InvoiceDocs:  invoiceDocs,
		JWTSecret:    cfg.JWT.Secret,
		JWTIssuer:    cfg.JWT.Issuer,
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
