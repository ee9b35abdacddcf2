package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
)

// PostEntryLineRequest is one debit or credit line in a PostEntryRequest.
type PostEntryLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// PostEntryRequest defines the data needed to post a balanced journal entry.
type PostEntryRequest struct {
	EntryDate   time.Time              `json:"entryDate" binding:"required"`
	Reference   string                 `json:"reference"` // Generated when empty
	Description string                 `json:"description" binding:"required"`
	Lines       []PostEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse mirrors domain.JournalLine.
type JournalLineResponse struct {
	LineItemID  string          `json:"lineItemID"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntryResponse mirrors domain.JournalEntry.
type JournalEntryResponse struct {
	JournalEntryID  string                `json:"journalEntryID"`
	EntryDate       time.Time             `json:"entryDate"`
	ReferenceNumber string                `json:"referenceNumber"`
	Description     string                `json:"description"`
	IsPosted        bool                  `json:"isPosted"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
	Lines           []JournalLineResponse `json:"lines,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		JournalEntryID:  entry.JournalEntryID,
		EntryDate:       entry.EntryDate,
		ReferenceNumber: entry.ReferenceNumber,
		Description:     entry.Description,
		IsPosted:        entry.IsPosted,
		CreatedAt:       entry.CreatedAt,
		CreatedBy:       entry.CreatedBy,
	}
	if len(entry.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(entry.Lines))
		for i, line := range entry.Lines {
			resp.Lines[i] = JournalLineResponse{
				LineItemID:  line.LineItemID,
				AccountID:   line.AccountID,
				Description: line.Description,
				Debit:       line.Debit,
				Credit:      line.Credit,
			}
		}
	}
	return resp
}

// LedgerLineResponse is one statement row for an account.
type LedgerLineResponse struct {
	JournalEntryID  string          `json:"journalEntryID"`
	EntryDate       time.Time       `json:"entryDate"`
	ReferenceNumber string          `json:"referenceNumber"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
}

// ListLedgerParams defines query parameters for listing ledger entries.
type ListLedgerParams struct {
	From      string  `form:"from"`
	To        string  `form:"to"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListLedgerResponse wraps the statement rows with the next-page token.
type ListLedgerResponse struct {
	Entries   []LedgerLineResponse `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// ToLedgerLineResponses converts domain ledger lines to DTOs
func ToLedgerLineResponses(lines []domain.LedgerLine) []LedgerLineResponse {
	out := make([]LedgerLineResponse, len(lines))
	for i, l := range lines {
		out[i] = LedgerLineResponse{
			JournalEntryID:  l.JournalEntryID,
			EntryDate:       l.EntryDate,
			ReferenceNumber: l.ReferenceNumber,
			Description:     l.Description,
			Debit:           l.Debit,
			Credit:          l.Credit,
		}
	}
	return out
}
