package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/bizbooks/backoffice_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// newPgxReportingRepository creates a new repository for report aggregation
// queries. Reports read posted journal data only; they never mutate state.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{pool: pool}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetTrialBalanceData retrieves per-account debit/credit totals from posted
// entries as of a specific date. Accounts with no activity are omitted.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.account_code, a.name, a.account_type,
		       COALESCE(SUM(l.debit), 0) AS total_debit,
		       COALESCE(SUM(l.credit), 0) AS total_credit
		FROM accounts a
		JOIN journal_line_items l ON l.account_id = a.account_id
		JOIN journal_entries e ON e.journal_entry_id = l.journal_entry_id
		WHERE e.is_posted = TRUE AND e.entry_date <= $1
		GROUP BY a.account_id, a.account_code, a.name, a.account_type
		ORDER BY a.account_code;
	`

	rows, err := r.pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance data: %w", err)
	}
	defer rows.Close()

	out := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string
		err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&row.Debit,
			&row.Credit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		row.AccountType = domain.AccountType(accountType)
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	return out, nil
}

// GetIncomeStatementData retrieves the posted REVENUE total and the posted
// EXPENSE-account total for the period, both as positive magnitudes under the
// normal-balance convention (revenue credit-positive, expenses debit-positive).
func (r *PgxReportingRepository) GetIncomeStatementData(ctx context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
		    COALESCE(SUM(CASE WHEN a.account_type = 'REVENUE' THEN l.credit - l.debit ELSE 0 END), 0) AS revenue,
		    COALESCE(SUM(CASE WHEN a.account_type = 'EXPENSE' THEN l.debit - l.credit ELSE 0 END), 0) AS expenses
		FROM journal_line_items l
		JOIN journal_entries e ON e.journal_entry_id = l.journal_entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.is_posted = TRUE AND e.entry_date >= $1 AND e.entry_date <= $2;
	`

	var revenue, postedExpenses decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&revenue, &postedExpenses); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to query income statement data: %w", err)
	}

	return revenue, postedExpenses, nil
}
