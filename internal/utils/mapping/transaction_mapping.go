package mapping

import (
	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	"github.com/bizbooks/backoffice_ledger/internal/models"
)

// ToModelLedgerTransaction converts a domain LedgerTransaction to its model
func ToModelLedgerTransaction(d domain.LedgerTransaction) models.LedgerTransaction {
	return models.LedgerTransaction{
		TransactionID:   d.TransactionID,
		TransactionType: string(d.TransactionType),
		TransactionDate: d.TransactionDate,
		Amount:          d.Amount,
		Description:     d.Description,
		JournalEntryID:  d.JournalEntryID,
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDomainLedgerTransaction converts a model LedgerTransaction to its domain form
func ToDomainLedgerTransaction(m models.LedgerTransaction) domain.LedgerTransaction {
	return domain.LedgerTransaction{
		TransactionID:   m.TransactionID,
		TransactionType: domain.TransactionType(m.TransactionType),
		TransactionDate: m.TransactionDate,
		Amount:          m.Amount,
		Description:     m.Description,
		JournalEntryID:  m.JournalEntryID,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}
