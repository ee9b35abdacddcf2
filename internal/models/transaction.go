package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerTransaction represents a row in the accounting_transactions table.
// The transaction_id column carries a UNIQUE constraint; duplicate recording
// attempts are absorbed by insert-on-conflict-ignore.
type LedgerTransaction struct {
	TransactionID   string          `db:"transaction_id"` // UNIQUE, caller-supplied idempotency key
	TransactionType string          `db:"transaction_type"`
	TransactionDate time.Time       `db:"transaction_date"`
	Amount          decimal.Decimal `db:"amount"` // Signed
	Description     string          `db:"description"`
	JournalEntryID  *string         `db:"journal_entry_id"` // Nullable, UNIQUE when set
	CreatedAt       time.Time       `db:"created_at"`
	CreatedBy       string          `db:"created_by"`
}
