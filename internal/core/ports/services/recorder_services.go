package services

import (
	"context"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	"github.com/bizbooks/backoffice_ledger/internal/dto"
)

// RecorderSvcFacade is the idempotent entry point for domain transactions.
// Callers deliver at-least-once; duplicates are absorbed here via the
// caller-supplied transaction id.
type RecorderSvcFacade interface {
	// RecordTransaction records the transaction and posts its journal entry
	// inside one all-or-nothing unit of work. Recording an id that already
	// exists returns the stored transaction without re-posting.
	RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest, userID string) (*domain.LedgerTransaction, error)
}
