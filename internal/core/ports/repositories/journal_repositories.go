package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all line items belonging to a journal entry.
	FindLinesByEntryID(ctx context.Context, journalEntryID string) ([]domain.JournalLine, error)

	// LedgerLinesByAccount retrieves posted line items for an account within a
	// date range, ordered by entry date then entry id.
	LedgerLinesByAccount(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerLine, error)

	// LedgerLinesByAccountPaged retrieves a token-paginated window of posted
	// line items for an account. It returns the lines, the next-page token,
	// and an error.
	LedgerLinesByAccountPaged(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerLine, *string, error)

	// AccountActivity returns the total posted debit and credit sums for an
	// account up to and including the given date.
	AccountActivity(ctx context.Context, accountID string, asOf time.Time) (debit, credit decimal.Decimal, err error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveEntry persists an entry header and its line items atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// SaveEntryInTx persists an entry header and its line items inside an
	// already open transaction owned by the caller.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
