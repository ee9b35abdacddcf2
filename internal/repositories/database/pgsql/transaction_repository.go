package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizbooks/backoffice_ledger/internal/apperrors"
	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/bizbooks/backoffice_ledger/internal/core/ports/repositories"
	"github.com/bizbooks/backoffice_ledger/internal/models"
	"github.com/bizbooks/backoffice_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
	journalRepo portsrepo.JournalWriter
}

// newPgxTransactionRepository creates a new repository for recorded domain
// transactions. The journal writer is injected so journal rows land inside
// the same database transaction as the accounting_transactions row.
func newPgxTransactionRepository(pool *pgxpool.Pool, journalRepo portsrepo.JournalWriter) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		journalRepo:    journalRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// RecordAtomically persists the transaction row, the journal entry with its
// lines, and the link between them as one unit of work. Idempotency rests on
// the transaction_id primary key: the insert uses ON CONFLICT DO NOTHING, and
// a zero rows-affected result means another caller already recorded this id.
// In that case nothing is written and created is false.
func (r *PgxTransactionRepository) RecordAtomically(ctx context.Context, txn domain.LedgerTransaction, entry domain.JournalEntry, lines []domain.JournalLine) (bool, error) {
	modelTxn := mapping.ToModelLedgerTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // rollback after commit is a no-op

	insertQuery := `
		INSERT INTO accounting_transactions (transaction_id, transaction_type, transaction_date, amount, description, journal_entry_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, NULL, $6, $7)
		ON CONFLICT (transaction_id) DO NOTHING;
	`
	cmdTag, err := tx.Exec(ctx, insertQuery,
		modelTxn.TransactionID,
		modelTxn.TransactionType,
		modelTxn.TransactionDate,
		modelTxn.Amount,
		modelTxn.Description,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert transaction %s: %w", modelTxn.TransactionID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Already recorded; the open transaction rolls back with nothing in it.
		return false, nil
	}

	if err := r.journalRepo.SaveEntryInTx(ctx, tx, entry, lines); err != nil {
		return false, fmt.Errorf("failed to save journal entry for transaction %s: %w", modelTxn.TransactionID, err)
	}

	linkQuery := `UPDATE accounting_transactions SET journal_entry_id = $2 WHERE transaction_id = $1;`
	if _, err := tx.Exec(ctx, linkQuery, modelTxn.TransactionID, entry.JournalEntryID); err != nil {
		return false, fmt.Errorf("failed to link journal entry %s to transaction %s: %w", entry.JournalEntryID, modelTxn.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return false, err
	}

	return true, nil
}

// LinkJournalEntry associates a posted entry with its originating transaction.
// The journal_entry_id column is UNIQUE, so a transaction links to at most
// one entry and an entry to at most one transaction.
func (r *PgxTransactionRepository) LinkJournalEntry(ctx context.Context, transactionID, journalEntryID string) error {
	query := `
		UPDATE accounting_transactions
		SET journal_entry_id = $2
		WHERE transaction_id = $1 AND journal_entry_id IS NULL;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, transactionID, journalEntryID)
	if err != nil {
		return fmt.Errorf("failed to link journal entry %s to transaction %s: %w", journalEntryID, transactionID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindTransactionByID(ctx, transactionID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check transaction %s after link attempt: %w", transactionID, findErr)
		}
		// Transaction exists but is already linked.
		return fmt.Errorf("%w: transaction %s already has a journal entry", apperrors.ErrConflict, transactionID)
	}

	return nil
}

// FindTransactionByID retrieves a transaction by its idempotency key.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error) {
	query := `
		SELECT transaction_id, transaction_type, transaction_date, amount, description, journal_entry_id, created_at, created_by
		FROM accounting_transactions
		WHERE transaction_id = $1;
	`

	var m models.LedgerTransaction
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(
		&m.TransactionID,
		&m.TransactionType,
		&m.TransactionDate,
		&m.Amount,
		&m.Description,
		&m.JournalEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	domainTxn := mapping.ToDomainLedgerTransaction(m)
	return &domainTxn, nil
}

// SumUnlinkedExpenseTransactions sums the absolute amounts of expense-like
// transactions within the period that have no linked journal entry. These are
// spends awaiting reconciliation that reporting still needs to surface.
func (r *PgxTransactionRepository) SumUnlinkedExpenseTransactions(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(ABS(amount)), 0)
		FROM accounting_transactions
		WHERE journal_entry_id IS NULL
		  AND transaction_type IN ($1, $2, $3)
		  AND transaction_date >= $4 AND transaction_date <= $5;
	`

	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, query,
		string(domain.TransactionExpense),
		string(domain.TransactionPayroll),
		string(domain.TransactionSupplierPayment),
		from,
		to,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum unlinked expense transactions: %w", err)
	}

	return total, nil
}
