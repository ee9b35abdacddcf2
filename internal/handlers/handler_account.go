package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bizbooks/backoffice_ledger/internal/apperrors"
	portssvc "github.com/bizbooks/backoffice_ledger/internal/core/ports/services"
	"github.com/bizbooks/backoffice_ledger/internal/dto"
	"github.com/bizbooks/backoffice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests for the chart of accounts and the
// per-account ledger views.
type accountHandler struct {
	chartService   portssvc.ChartSvcFacade
	journalService portssvc.JournalSvcFacade
}

func newAccountHandler(chart portssvc.ChartSvcFacade, journal portssvc.JournalSvcFacade) *accountHandler {
	return &accountHandler{chartService: chart, journalService: journal}
}

// registerAccountRoutes registers chart-of-accounts and ledger routes
func registerAccountRoutes(rg *gin.RouterGroup, chart portssvc.ChartSvcFacade, journal portssvc.JournalSvcFacade) {
	h := newAccountHandler(chart, journal)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:code", h.getAccountByCode)
		accounts.GET("/:code/balance", h.getAccountBalance)
		accounts.GET("/:code/entries", h.listLedgerEntries)
		accounts.DELETE("/:code", h.deactivateAccount)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid create account request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.chartService.CreateAccount(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Account code already exists"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.chartService.ListAccounts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

func (h *accountHandler) getAccountByCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	account, err := h.chartService.ResolveCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to resolve account code", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	asOf, err := time.Parse("2006-01-02", asOfStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}
	// Include the whole asOf day.
	asOf = asOf.Add(24*time.Hour - time.Nanosecond)

	balance, err := h.journalService.BalanceAsOf(c.Request.Context(), code, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to compute account balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{
		AccountCode: code,
		AsOf:        asOfStr,
		Balance:     balance,
	})
}

// listLedgerEntries serves both access styles: an explicit from/to range, or
// token pagination when no range is given.
func (h *accountHandler) listLedgerEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	if params.From != "" || params.To != "" {
		from, to, err := parseDateRange(params.From, params.To)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		lines, err := h.journalService.LedgerEntries(c.Request.Context(), code, from, to)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			} else {
				logger.Error("Failed to list ledger entries", slog.String("error", err.Error()))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ledger entries"})
			}
			return
		}

		c.JSON(http.StatusOK, dto.ListLedgerResponse{Entries: dto.ToLedgerLineResponses(lines)})
		return
	}

	lines, nextToken, err := h.journalService.LedgerEntriesPaged(c.Request.Context(), code, params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
				c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
				return
			}
			logger.Error("Failed to list ledger entries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ledger entries"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ListLedgerResponse{
		Entries:   dto.ToLedgerLineResponses(lines),
		NextToken: nextToken,
	})
}

func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.chartService.ResolveCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to resolve account for deactivation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate account"})
		}
		return
	}

	if err := h.chartService.DeactivateAccount(c.Request.Context(), account.AccountID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusConflict, gin.H{"error": "Account is already inactive"})
		} else {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate account"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// parseDateRange parses from/to query dates, defaulting open ends, and
// widens `to` to the end of its day.
func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from := time.Time{}
	to := time.Now()

	if fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid from date format. Use YYYY-MM-DD")
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid to date format. Use YYYY-MM-DD")
		}
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, errors.New("from must be before or equal to to")
	}

	return from, to, nil
}
