package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	"github.com/bizbooks/backoffice_ledger/internal/dto"
)

// JournalSvcFacade is the journal engine: it creates balanced journal entries
// and answers ledger queries. It enforces the core double-entry invariant and
// never accepts an unbalanced entry.
type JournalSvcFacade interface {
	// PostBalanced validates and persists a balanced journal entry with its
	// line items as one atomic unit. Unbalanced input fails with
	// apperrors.ErrUnbalanced.
	PostBalanced(ctx context.Context, req dto.PostEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves a journal entry together with its line items.
	GetEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// LinkTransaction associates a posted entry back to its originating
	// transaction. At most one link per transaction.
	LinkTransaction(ctx context.Context, journalEntryID, transactionID string) error

	// LedgerEntries returns the statement rows for an account code within a
	// date range, ordered by entry date then entry id.
	LedgerEntries(ctx context.Context, accountCode string, from, to time.Time) ([]domain.LedgerLine, error)

	// LedgerEntriesPaged returns a token-paginated statement window.
	LedgerEntriesPaged(ctx context.Context, accountCode string, limit int, nextToken *string) ([]domain.LedgerLine, *string, error)

	// BalanceAsOf computes the account balance up to and including the given
	// date under the normal-balance sign convention.
	BalanceAsOf(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error)
}
