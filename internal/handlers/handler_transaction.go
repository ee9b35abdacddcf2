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

// transactionHandler handles HTTP requests for recording domain transactions.
type transactionHandler struct {
	recorderService portssvc.RecorderSvcFacade
	collector       *metrics.Collector
}

func newTransactionHandler(rs portssvc.RecorderSvcFacade, collector *metrics.Collector) *transactionHandler {
	return &transactionHandler{recorderService: rs, collector: collector}
}

// registerTransactionRoutes registers transaction recording routes
func registerTransactionRoutes(rg *gin.RouterGroup, recorderService portssvc.RecorderSvcFacade, collector *metrics.Collector) {
	h := newTransactionHandler(recorderService, collector)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.recordTransaction)
	}
}

// recordTransaction is idempotent: replaying a transaction id returns the
// originally stored record.
func (h *transactionHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid record transaction request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.recorderService.RecordTransaction(c.Request.Context(), req, userID)
	h.collector.RecordTransaction(string(req.TransactionType), err == nil)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			// An account code in the journal template did not resolve.
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record transaction",
				slog.String("transaction_id", req.TransactionID),
				slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}
