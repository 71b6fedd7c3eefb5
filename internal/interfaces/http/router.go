package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/syncdesk-api/internal/application/analytics"
	"github.com/jhoicas/syncdesk-api/internal/application/importer"
	"github.com/jhoicas/syncdesk-api/internal/application/reports"
	"github.com/jhoicas/syncdesk-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SongUC       *usecase.SongUseCase
	ContactUC    *usecase.ContactUseCase
	DealUC       *usecase.DealUseCase
	PaymentUC    *usecase.PaymentUseCase
	PitchUC      *usecase.PitchUseCase
	TemplateUC   *usecase.TemplateUseCase
	InvoiceUC    *usecase.InvoiceUseCase
	ExpenseUC    *usecase.ExpenseUseCase
	WorkflowUC   *usecase.WorkflowUseCase
	PlaylistUC   *usecase.PlaylistUseCase
	CalendarUC   *usecase.CalendarUseCase
	AttachmentUC *usecase.AttachmentUseCase
	AIUC         *usecase.AIUseCase
	Importer     *importer.Service
	DashboardUC  *appanalytics.DashboardUseCase
	ExportUC     *reports.ExportUseCase
	InvoiceDocs  *reports.InvoiceDocumentUseCase
	JWTSecret    string
	JWTIssuer    string
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	// Songs
	songHandler := NewSongHandler(deps.SongUC, deps.AIUC)
	songs := api.Group("/songs")
	songs.Get("/", songHandler.List)
	songs.Post("/", songHandler.Create)
	songs.Get("/:id", songHandler.GetByID)
	songs.Put("/:id", songHandler.Update)
	songs.Delete("/:id", songHandler.Delete)
	songs.Post("/:id/sync-suitability", songHandler.SyncSuitability)

	// Contacts
	contactHandler := NewContactHandler(deps.ContactUC)
	contacts := api.Group("/contacts")
	contacts.Get("/", contactHandler.List)
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/:id", contactHandler.GetByID)
	contacts.Put("/:id", contactHandler.Update)
	contacts.Delete("/:id", contactHandler.Delete)

	// Deals (las rutas fijas van antes de /:id)
	dealHandler := NewDealHandler(deps.DealUC)
	importHandler := NewImportHandler(deps.Importer)
	deals := api.Group("/deals")
	deals.Get("/status-options", dealHandler.StatusOptions)
	deals.Post("/import/parse", importHandler.Parse)
	deals.Post("/import/create", importHandler.Create)
	deals.Get("/", dealHandler.List)
	deals.Post("/", dealHandler.Create)
	deals.Get("/:id", dealHandler.GetByID)
	deals.Put("/:id", dealHandler.Update)
	deals.Delete("/:id", dealHandler.Delete)
	deals.Patch("/:id/status", dealHandler.UpdateStatus)
	deals.Get("/:id/history", dealHandler.History)

	// Payments
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments := api.Group("/payments")
	payments.Get("/", paymentHandler.List)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/:id", paymentHandler.GetByID)
	payments.Put("/:id", paymentHandler.Update)
	payments.Delete("/:id", paymentHandler.Delete)

	// Pitches
	pitchHandler := NewPitchHandler(deps.PitchUC)
	pitches := api.Group("/pitches")
	pitches.Get("/", pitchHandler.List)
	pitches.Post("/", pitchHandler.Create)
	pitches.Get("/:id", pitchHandler.GetByID)
	pitches.Put("/:id", pitchHandler.Update)
	pitches.Delete("/:id", pitchHandler.Delete)

	// Templates y email templates
	templateHandler := NewTemplateHandler(deps.TemplateUC)
	templates := api.Group("/templates")
	templates.Post("/extract-variables", templateHandler.ExtractVariables)
	templates.Get("/", templateHandler.List)
	templates.Post("/", templateHandler.Create)
	templates.Get("/:id", templateHandler.GetByID)
	templates.Put("/:id", templateHandler.Update)
	templates.Delete("/:id", templateHandler.Delete)
	templates.Post("/:id/render", templateHandler.Render)

	emails := api.Group("/email-templates")
	emails.Get("/", templateHandler.ListEmails)
	emails.Post("/", templateHandler.CreateEmail)
	emails.Get("/:id", templateHandler.GetEmail)
	emails.Put("/:id", templateHandler.UpdateEmail)
	emails.Delete("/:id", templateHandler.DeleteEmail)
	emails.Post("/:id/render", templateHandler.RenderEmail)

	// Invoices
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoiceDocs)
	invoices := api.Group("/invoices")
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Get("/:id/xml", invoiceHandler.DownloadXML)

	// Expenses
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses := api.Group("/expenses")
	expenses.Get("/", expenseHandler.List)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Workflows
	workflowHandler := NewWorkflowHandler(deps.WorkflowUC)
	workflows := api.Group("/workflows")
	workflows.Get("/", workflowHandler.List)
	workflows.Post("/", workflowHandler.Create)
	workflows.Get("/:id", workflowHandler.GetByID)
	workflows.Put("/:id", workflowHandler.Update)
	workflows.Delete("/:id", workflowHandler.Delete)
	workflows.Patch("/:id/toggle", workflowHandler.Toggle)

	// Playlists
	playlistHandler := NewPlaylistHandler(deps.PlaylistUC)
	playlists := api.Group("/playlists")
	playlists.Get("/", playlistHandler.List)
	playlists.Post("/", playlistHandler.Create)
	playlists.Get("/:id", playlistHandler.GetByID)
	playlists.Put("/:id", playlistHandler.Update)
	playlists.Delete("/:id", playlistHandler.Delete)
	playlists.Post("/:id/songs", playlistHandler.AddSong)
	playlists.Delete("/:id/songs/:songId", playlistHandler.RemoveSong)

	// Calendar events
	calendarHandler := NewCalendarHandler(deps.CalendarUC)
	events := api.Group("/calendar-events")
	events.Get("/", calendarHandler.List)
	events.Post("/", calendarHandler.Create)
	events.Get("/:id", calendarHandler.GetByID)
	events.Put("/:id", calendarHandler.Update)
	events.Delete("/:id", calendarHandler.Delete)

	// Attachments
	attachmentHandler := NewAttachmentHandler(deps.AttachmentUC)
	attachments := api.Group("/attachments")
	attachments.Get("/", attachmentHandler.List)
	attachments.Post("/", attachmentHandler.Upload)
	attachments.Get("/:id/download", attachmentHandler.Download)
	attachments.Delete("/:id", attachmentHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard := api.Group("/dashboard")
	dashboard.Get("/", dashboardHandler.GetSummary)
	dashboard.Get("/advanced-metrics", dashboardHandler.GetAdvancedMetrics)
	dashboard.Get("/smart-alerts", dashboardHandler.GetSmartAlerts)
	dashboard.Get("/client-relationships", dashboardHandler.GetClientRelationships)

	// Reports
	reportHandler := NewReportHandler(deps.ExportUC)
	api.Get("/reports/export", reportHandler.Export)
}
