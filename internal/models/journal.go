package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a row in the journal_entries table.
type JournalEntry struct {
	JournalEntryID  string    `db:"journal_entry_id"`
	EntryDate       time.Time `db:"entry_date"`
	ReferenceNumber string    `db:"reference_number"`
	Description     string    `db:"description"`
	IsPosted        bool      `db:"is_posted"`
	AuditFields
}

// JournalLine represents a row in the journal_line_items table. Lines are
// owned exclusively by their entry and never referenced independently.
type JournalLine struct {
	LineItemID     string          `db:"line_item_id"`
	JournalEntryID string          `db:"journal_entry_id"`
	AccountID      string          `db:"account_id"`
	Description    string          `db:"description"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	CreatedAt      time.Time       `db:"created_at"`
}
