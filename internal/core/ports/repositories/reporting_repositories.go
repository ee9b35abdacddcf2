package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetTrialBalanceData retrieves per-account debit/credit totals as of a
	// specific date.
	GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetIncomeStatementData retrieves the posted REVENUE total and posted
	// EXPENSE-account total for the period, both as positive magnitudes under
	// the normal-balance convention.
	GetIncomeStatementData(ctx context.Context, from, to time.Time) (revenue, postedExpenses decimal.Decimal, err error)
}
