package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/bizbooks/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/backoffice_ledger/internal/core/ports/services"
)

// reportingService implements balances and financial reports over posted
// journal data plus the unlinked-transaction catch-up term.
type reportingService struct {
	BaseService
	reportingRepo   portsrepo.ReportingRepository
	transactionRepo portsrepo.TransactionReader
	journalSvc      portssvc.JournalSvcFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	transactionRepo portsrepo.TransactionReader,
	journalSvc portssvc.JournalSvcFacade,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo:   reportingRepo,
		transactionRepo: transactionRepo,
		journalSvc:      journalSvc,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// AccountBalance computes an account's balance as of a date under the
// normal-balance sign convention.
func (s *reportingService) AccountBalance(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error) {
	return s.journalSvc.BalanceAsOf(ctx, accountCode, asOf)
}

// IncomeStatement aggregates revenue and expenses for the period. Expenses
// combine posted EXPENSE-account lines with expense-like transactions that
// have no linked journal entry yet, so unreconciled spend still shows up. A
// reconciled transaction is linked and therefore counted once only, through
// its posted lines.
func (s *reportingService) IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatement, error) {
	revenue, postedExpenses, err := s.reportingRepo.GetIncomeStatementData(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load income statement data")
		return nil, err
	}

	unlinked, err := s.transactionRepo.SumUnlinkedExpenseTransactions(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum unlinked expense transactions")
		return nil, err
	}

	totalExpenses := postedExpenses.Add(unlinked)
	statement := &domain.IncomeStatement{
		TotalRevenue:  revenue,
		TotalExpenses: totalExpenses,
		NetIncome:     revenue.Sub(totalExpenses),
	}

	s.LogDebug(ctx, "Income statement computed",
		slog.String("total_revenue", statement.TotalRevenue.String()),
		slog.String("total_expenses", statement.TotalExpenses.String()),
		slog.String("unlinked_catchup", unlinked.String()))
	return statement, nil
}

// TrialBalance generates per-account debit/credit totals as of a date.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to load trial balance data")
		return nil, err
	}
	return rows, nil
}
