package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple line items. Once posted, the sum of its line debits equals the sum
// of its line credits.
type JournalEntry struct {
	JournalEntryID  string    `json:"journalEntryID"`  // Primary Key (UUID)
	EntryDate       time.Time `json:"entryDate"`       // Date the event occurred
	ReferenceNumber string    `json:"referenceNumber"` // Sortable reference (ULID)
	Description     string    `json:"description"`     // Nullable user description
	IsPosted        bool      `json:"isPosted"`        // Default: true
	AuditFields

	// Lines are often loaded separately; nil unless explicitly fetched.
	Lines []JournalLine `json:"lines,omitempty"`
}

// JournalLine is a single debit or credit against one account within a
// journal entry. Exactly one of Debit/Credit is non-zero in conventional use;
// the engine does not forbid both but no caller sets both.
type JournalLine struct {
	LineItemID     string          `json:"lineItemID"`     // Primary Key (UUID)
	JournalEntryID string          `json:"journalEntryID"` // FK -> journal_entries (Not Null)
	AccountID      string          `json:"accountID"`      // FK -> accounts (Not Null)
	Description    string          `json:"description"`    // Nullable
	Debit          decimal.Decimal `json:"debit"`          // >= 0
	Credit         decimal.Decimal `json:"credit"`         // >= 0
}

// LedgerLine is one statement row for an account: the line amounts together
// with the owning entry's date and reference.
type LedgerLine struct {
	JournalEntryID  string          `json:"journalEntryID"`
	EntryDate       time.Time       `json:"entryDate"`
	ReferenceNumber string          `json:"referenceNumber"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
}
