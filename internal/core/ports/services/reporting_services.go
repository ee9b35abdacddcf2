package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
)

// ReportingSvcFacade defines operations for balances and financial reports
type ReportingSvcFacade interface {
	// AccountBalance computes an account's balance as of a date under the
	// normal-balance sign convention.
	AccountBalance(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error)

	// IncomeStatement aggregates revenue and expenses for the period,
	// including unposted expense-like transactions as a catch-up term.
	IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatement, error)

	// TrialBalance generates per-account debit/credit totals as of a date.
	TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
