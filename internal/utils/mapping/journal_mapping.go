package mapping

import (
	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	"github.com/bizbooks/backoffice_ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID:  d.JournalEntryID,
		EntryDate:       d.EntryDate,
		ReferenceNumber: d.ReferenceNumber,
		Description:     d.Description,
		IsPosted:        d.IsPosted,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID:  m.JournalEntryID,
		EntryDate:       m.EntryDate,
		ReferenceNumber: m.ReferenceNumber,
		Description:     m.Description,
		IsPosted:        m.IsPosted,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineItemID:     d.LineItemID,
		JournalEntryID: d.JournalEntryID,
		AccountID:      d.AccountID,
		Description:    d.Description,
		Debit:          d.Debit,
		Credit:         d.Credit,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineItemID:     m.LineItemID,
		JournalEntryID: m.JournalEntryID,
		AccountID:      m.AccountID,
		Description:    m.Description,
		Debit:          m.Debit,
		Credit:         m.Credit,
	}
}

// ToDomainJournalLineSlice converts a slice of model lines to domain lines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		out[i] = ToDomainJournalLine(m)
	}
	return out
}
