package handlers

import (
	portssvc "github.com/bizbooks/backoffice_ledger/internal/core/ports/services"
	"github.com/bizbooks/backoffice_ledger/internal/middleware"
	"github.com/bizbooks/backoffice_ledger/internal/platform/config"
	"github.com/bizbooks/backoffice_ledger/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	collector *metrics.Collector,
) {
	// Health check route stays public
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services, collector)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	collector *metrics.Collector,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerAccountRoutes(v1, services.Chart, services.Journal)
	registerJournalRoutes(v1, services.Journal, collector)
	registerTransactionRoutes(v1, services.Recorder, collector)
	registerReconciliationRoutes(v1, services.Payroll, services.Suppliers, services.Expenses, collector)
	registerReportingRoutes(v1, services.Reporting)
}
