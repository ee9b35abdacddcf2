package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bizbooks/backoffice_ledger/internal/apperrors"
	portssvc "github.com/bizbooks/backoffice_ledger/internal/core/ports/services"
	"github.com/bizbooks/backoffice_ledger/internal/dto"
	"github.com/bizbooks/backoffice_ledger/internal/middleware"
	"github.com/bizbooks/backoffice_ledger/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles the payroll, supplier, and expense
// collaborator surfaces: logging source records and running reconciliation
// batches.
type reconciliationHandler struct {
	payroll   portssvc.PayrollSvcFacade
	suppliers portssvc.SupplierSvcFacade
	expenses  portssvc.ExpenseSvcFacade
	collector *metrics.Collector
}

// registerReconciliationRoutes registers source-record and reconciliation routes
func registerReconciliationRoutes(rg *gin.RouterGroup, payroll portssvc.PayrollSvcFacade, suppliers portssvc.SupplierSvcFacade, expenses portssvc.ExpenseSvcFacade, collector *metrics.Collector) {
	h := &reconciliationHandler{payroll: payroll, suppliers: suppliers, expenses: expenses, collector: collector}

	payrollGroup := rg.Group("/payroll")
	{
		payrollGroup.POST("/payments", h.logEmployeePayment)
		payrollGroup.GET("/payments/unreconciled", h.listUnreconciledEmployeePayments)
		payrollGroup.POST("/reconcile", h.reconcilePayroll)
	}

	suppliersGroup := rg.Group("/suppliers")
	{
		suppliersGroup.POST("/orders", h.createPurchaseOrder)
		suppliersGroup.POST("/payments", h.logPurchasePayment)
		suppliersGroup.GET("/payments/unreconciled", h.listUnreconciledPurchasePayments)
		suppliersGroup.POST("/reconcile", h.reconcileSuppliers)
	}

	expensesGroup := rg.Group("/expenses")
	{
		expensesGroup.POST("", h.logExpense)
		expensesGroup.GET("/unreconciled", h.listUnreconciledExpenses)
		expensesGroup.POST("/reconcile", h.reconcileExpenses)
	}
}

func (h *reconciliationHandler) logEmployeePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.LogEmployeePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	payment, err := h.payroll.LogPayment(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to log employee payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log employee payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeePaymentResponse(payment))
}

func (h *reconciliationHandler) listUnreconciledEmployeePayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payments, err := h.payroll.Unreconciled(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list unreconciled employee payments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list unreconciled payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": dto.ToEmployeePaymentResponses(payments)})
}

func (h *reconciliationHandler) reconcilePayroll(c *gin.Context) {
	h.runBatch(c, h.payroll, "payroll")
}

func (h *reconciliationHandler) createPurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	order, err := h.suppliers.CreatePurchaseOrder(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create purchase order", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create purchase order"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPurchaseOrderResponse(order))
}

func (h *reconciliationHandler) logPurchasePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.LogPurchasePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	payment, err := h.suppliers.LogPayment(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase order not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to log purchase payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log purchase payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPurchasePaymentResponse(payment))
}

func (h *reconciliationHandler) listUnreconciledPurchasePayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payments, err := h.suppliers.Unreconciled(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list unreconciled purchase payments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list unreconciled payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": dto.ToPurchasePaymentResponses(payments)})
}

func (h *reconciliationHandler) reconcileSuppliers(c *gin.Context) {
	h.runBatch(c, h.suppliers, "suppliers")
}

func (h *reconciliationHandler) logExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.LogExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	expense, err := h.expenses.LogExpense(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to log expense", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log expense"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

func (h *reconciliationHandler) listUnreconciledExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expenses, err := h.expenses.Unreconciled(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list unreconciled expenses", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list unreconciled expenses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": dto.ToExpenseResponses(expenses)})
}

func (h *reconciliationHandler) reconcileExpenses(c *gin.Context) {
	h.runBatch(c, h.expenses, "expenses")
}

// runBatch runs one coordinator's reconciliation batch. Per-record failures
// land in the response body, not the status code; only a batch-level failure
// is a 500.
func (h *reconciliationHandler) runBatch(c *gin.Context, reconciler portssvc.Reconciler, domainName string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := reconciler.ReconcileAll(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Reconciliation batch failed",
			slog.String("domain", domainName),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconciliation failed"})
		return
	}

	h.collector.RecordReconciliation(domainName, result.Reconciled, len(result.Failures))
	c.JSON(http.StatusOK, dto.ToReconcileResponse(result))
}
