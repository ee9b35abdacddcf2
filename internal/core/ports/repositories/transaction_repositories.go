package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
)

// TransactionReader defines read operations for recorded domain transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its idempotency key.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error)

	// SumUnlinkedExpenseTransactions sums the absolute amounts of expense-like
	// transactions within the period that have no linked journal entry.
	SumUnlinkedExpenseTransactions(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

// TransactionWriter defines write operations for recorded domain transactions
type TransactionWriter interface {
	// RecordAtomically persists the transaction row, the journal entry with
	// its lines, and the link between them as one all-or-nothing unit of
	// work. The insert uses the storage-level uniqueness of transaction_id
	// with conflict-ignore semantics: when the id was already recorded the
	// method writes nothing and returns created=false.
	RecordAtomically(ctx context.Context, txn domain.LedgerTransaction, entry domain.JournalEntry, lines []domain.JournalLine) (created bool, err error)

	// LinkJournalEntry associates a posted entry with its originating
	// transaction. At most one link per transaction.
	LinkJournalEntry(ctx context.Context, transactionID, journalEntryID string) error
}

// TransactionRepositoryFacade combines transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
