package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/bizbooks/backoffice_ledger/internal/core/ports/services"
	"github.com/bizbooks/backoffice_ledger/internal/dto"
	"github.com/bizbooks/backoffice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/income-statement", h.getIncomeStatement)
	}
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	asOf, err := time.Parse("2006-01-02", asOfStr)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("asOf", asOfStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}
	asOf = asOf.Add(24*time.Hour - time.Nanosecond)

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to generate trial balance report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate trial balance report"})
		return
	}

	response := dto.ToTrialBalanceResponse(rows, asOf)

	logger.Info("Trial balance report generated", slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, response)
}

func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	now := time.Now()
	firstDayOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	fromStr := c.DefaultQuery("from", firstDayOfMonth.Format("2006-01-02"))
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		logger.Warn("Invalid from date format", slog.String("from", fromStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date format. Use YYYY-MM-DD"})
		return
	}

	toStr := c.DefaultQuery("to", now.Format("2006-01-02"))
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		logger.Warn("Invalid to date format", slog.String("to", toStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date format. Use YYYY-MM-DD"})
		return
	}
	to = to.Add(24*time.Hour - time.Nanosecond)

	if from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be before or equal to to"})
		return
	}

	statement, err := h.reportingService.IncomeStatement(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to generate income statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate income statement"})
		return
	}

	response := dto.ToIncomeStatementResponse(statement, from, to)

	logger.Info("Income statement generated",
		slog.String("total_revenue", statement.TotalRevenue.String()),
		slog.String("total_expenses", statement.TotalExpenses.String()))
	c.JSON(http.StatusOK, response)
}
