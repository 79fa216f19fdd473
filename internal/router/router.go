package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"tradedesk/internal/domain"
	"tradedesk/internal/handler"
	"tradedesk/internal/middleware"
	"tradedesk/internal/session"
)

// Handlers groups every HTTP handler mounted by Setup.
type Handlers struct {
	Health   *handler.HealthHandler
	Totals   *handler.TotalsHandler
	Sources  *handler.SourceHandler
	EInvoice *handler.EInvoiceHandler
	Register *handler.RegisterHandler
	Session  *handler.SessionHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(sessions session.Manager, allowedOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	// The calculator is pure and needs no session.
	v1.GET("/tax-slabs", h.Totals.TaxSlabs)
	v1.POST("/totals", h.Totals.Compute)

	protected := v1.Group("")
	protected.Use(middleware.SessionAuth(sessions))

	protected.GET("/session", h.Session.Get)
	protected.POST("/session/logout", h.Session.Logout)

	sources := protected.Group("/sources/:kind/:id")
	sources.GET("/remaining", h.Sources.Remaining)
	sources.GET("/consumptions", h.Sources.ListConsumptions)
	sources.POST("/consumptions", h.Sources.Submit)
	sources.GET("/audits", h.Sources.ListAudits)

	invoices := protected.Group("/sales-invoices")
	invoices.Use(middleware.RequirePermission(domain.PermSalesInvoiceRead))
	invoices.GET("/export", h.Register.Export)
	invoices.GET("/:id/einvoice", h.EInvoice.Download)
	invoices.POST("/:id/einvoice/export", middleware.RequirePermission(domain.PermEInvoiceExport), h.EInvoice.Export)
	invoices.GET("/:id/einvoice/exports", h.EInvoice.ListExports)

	return r
}
