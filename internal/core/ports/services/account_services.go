package services

import (
	"context"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	"github.com/bizbooks/backoffice_ledger/internal/dto"
)

// ChartReaderSvc defines read operations for the chart of accounts
type ChartReaderSvc interface {
	// ResolveCode resolves a business account code to its account. Unknown
	// codes fail with apperrors.ErrNotFound; callers treat this as fatal to
	// the enclosing posting operation.
	ResolveCode(ctx context.Context, accountCode string) (*domain.Account, error)

	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// ChartWriterSvc defines write operations for the chart of accounts
type ChartWriterSvc interface {
	// CreateAccount persists a new account. Duplicate account codes fail with
	// apperrors.ErrDuplicate.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// EnsureDefaults idempotently guarantees the minimal set of standard
	// accounts exists. Safe to call repeatedly.
	EnsureDefaults(ctx context.Context, userID string) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// ChartSvcFacade combines all chart-of-accounts service interfaces
type ChartSvcFacade interface {
	ChartReaderSvc
	ChartWriterSvc
}
