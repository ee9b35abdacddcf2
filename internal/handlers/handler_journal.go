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

// journalHandler handles HTTP requests for directly posted journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	collector      *metrics.Collector
}

func newJournalHandler(js portssvc.JournalSvcFacade, collector *metrics.Collector) *journalHandler {
	return &journalHandler{journalService: js, collector: collector}
}

// registerJournalRoutes registers journal entry routes
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, collector *metrics.Collector) {
	h := newJournalHandler(journalService, collector)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.postEntry)
		entries.GET("/:id", h.getEntry)
	}
}

func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid post entry request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.journalService.PostBalanced(c.Request.Context(), req, userID)
	h.collector.RecordPosting(err == nil)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnbalanced) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to post journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post journal entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
		} else {
			logger.Error("Failed to get journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch journal entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}
