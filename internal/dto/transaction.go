package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
)

// RecordTransactionRequest defines the data needed to record a domain
// transaction. TransactionID is the caller-supplied idempotency key.
type RecordTransactionRequest struct {
	TransactionID   string                 `json:"transactionID" binding:"required"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,txntype"`
	TransactionDate time.Time              `json:"transactionDate" binding:"required"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	Description     string                 `json:"description"`
	// AccountCode optionally overrides the expense account for
	// EXPENSE/PAYROLL/SUPPLIER_PAYMENT; the per-type default applies when
	// empty. Ignored for SALE and REVERSAL.
	AccountCode string `json:"accountCode"`
}

// TransactionResponse mirrors domain.LedgerTransaction.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	TransactionType domain.TransactionType `json:"transactionType"`
	TransactionDate time.Time              `json:"transactionDate"`
	Amount          decimal.Decimal        `json:"amount"`
	Description     string                 `json:"description"`
	JournalEntryID  *string                `json:"journalEntryID,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// ToTransactionResponse converts a domain.LedgerTransaction to its DTO
func ToTransactionResponse(txn *domain.LedgerTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		TransactionType: txn.TransactionType,
		TransactionDate: txn.TransactionDate,
		Amount:          txn.Amount,
		Description:     txn.Description,
		JournalEntryID:  txn.JournalEntryID,
		CreatedAt:       txn.CreatedAt,
	}
}
