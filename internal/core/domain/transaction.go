package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of domain transaction kinds. The tag is
// decided once at the domain boundary; nothing inside the ledger dispatches on
// text fragments.
type TransactionType string

const (
	TransactionSale            TransactionType = "SALE"
	TransactionReversal        TransactionType = "REVERSAL"
	TransactionExpense         TransactionType = "EXPENSE"
	TransactionPayroll         TransactionType = "PAYROLL"
	TransactionSupplierPayment TransactionType = "SUPPLIER_PAYMENT"
)

// ParseTransactionType validates a string tag against the closed set.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionSale, TransactionReversal, TransactionExpense,
		TransactionPayroll, TransactionSupplierPayment:
		return TransactionType(s), nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// IsExpenseLike reports whether the type represents money leaving the business
// against an expense account (EXPENSE, PAYROLL, SUPPLIER_PAYMENT).
func (t TransactionType) IsExpenseLike() bool {
	return t == TransactionExpense || t == TransactionPayroll || t == TransactionSupplierPayment
}

// LedgerTransaction is a recorded domain transaction. TransactionID is the
// caller-supplied idempotency key: a given id maps to at most one stored
// transaction and at most one journal entry, and the record is immutable once
// created.
type LedgerTransaction struct {
	TransactionID   string          `json:"transactionID"`            // Idempotency key (caller-supplied)
	TransactionType TransactionType `json:"transactionType"`          // Closed tagged variant
	TransactionDate time.Time       `json:"transactionDate"`          // When the event occurred
	Amount          decimal.Decimal `json:"amount"`                   // Signed; reversals and outflows are negative
	Description     string          `json:"description"`              // Nullable
	JournalEntryID  *string         `json:"journalEntryID,omitempty"` // Set once the entry is linked
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}
