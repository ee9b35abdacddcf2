package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/bizbooks/backoffice_ledger/internal/apperrors"
	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/bizbooks/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/backoffice_ledger/internal/core/ports/services"
	"github.com/bizbooks/backoffice_ledger/internal/dto"
)

// recorderService is the idempotent entry point for domain transactions.
// Callers deliver at-least-once; the caller-supplied transaction id plus the
// storage-level unique constraint absorb duplicates, including concurrent
// ones.
type recorderService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	chartSvc        portssvc.ChartSvcFacade
	auditRepo       portsrepo.AuditRepository
}

// NewRecorderService creates a new transaction recorder service.
func NewRecorderService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	chartSvc portssvc.ChartSvcFacade,
	auditRepo portsrepo.AuditRepository,
) portssvc.RecorderSvcFacade {
	return &recorderService{
		transactionRepo: transactionRepo,
		chartSvc:        chartSvc,
		auditRepo:       auditRepo,
	}
}

var _ portssvc.RecorderSvcFacade = (*recorderService)(nil)

// journalTemplate describes the two-line entry a transaction type produces.
type journalTemplate struct {
	debitAccount  *domain.Account
	creditAccount *domain.Account
	description   string
}

// resolveActiveCode resolves a code and refuses deactivated accounts, matching
// the check direct journal postings get.
func (s *recorderService) resolveActiveCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.chartSvc.ResolveCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, code)
	}
	return account, nil
}

// resolveTemplate maps a transaction type to its debit/credit account pair.
// SALE moves cash in against revenue; REVERSAL mirrors it; the expense-like
// types move cash out against an expense account, overridable per record.
func (s *recorderService) resolveTemplate(ctx context.Context, req dto.RecordTransactionRequest) (*journalTemplate, error) {
	switch req.TransactionType {
	case domain.TransactionSale:
		cash, err := s.resolveActiveCode(ctx, DefaultCashCode)
		if err != nil {
			return nil, err
		}
		revenue, err := s.resolveActiveCode(ctx, DefaultRevenueCode)
		if err != nil {
			return nil, err
		}
		return &journalTemplate{debitAccount: cash, creditAccount: revenue, description: "Sale"}, nil

	case domain.TransactionReversal:
		cash, err := s.resolveActiveCode(ctx, DefaultCashCode)
		if err != nil {
			return nil, err
		}
		revenue, err := s.resolveActiveCode(ctx, DefaultRevenueCode)
		if err != nil {
			return nil, err
		}
		return &journalTemplate{debitAccount: revenue, creditAccount: cash, description: "Sale reversal"}, nil

	case domain.TransactionExpense, domain.TransactionPayroll, domain.TransactionSupplierPayment:
		expenseCode := req.AccountCode
		if expenseCode == "" {
			switch req.TransactionType {
			case domain.TransactionPayroll:
				expenseCode = DefaultPayrollCode
			case domain.TransactionSupplierPayment:
				expenseCode = DefaultSupplierCode
			default:
				expenseCode = DefaultExpenseCode
			}
		}

		expense, err := s.resolveActiveCode(ctx, expenseCode)
		if err != nil {
			return nil, err
		}
		cash, err := s.resolveActiveCode(ctx, DefaultCashCode)
		if err != nil {
			return nil, err
		}
		return &journalTemplate{debitAccount: expense, creditAccount: cash, description: "Expense payment"}, nil
	}

	return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, req.TransactionType)
}

// RecordTransaction records the transaction and posts its journal entry inside
// one all-or-nothing unit of work. Recording an id that already exists returns
// the stored transaction without re-posting.
func (s *recorderService) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest, userID string) (*domain.LedgerTransaction, error) {
	if _, err := domain.ParseTransactionType(string(req.TransactionType)); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: transaction amount must not be zero", apperrors.ErrValidation)
	}

	// Fast path: already recorded. The atomic insert below still protects
	// against a concurrent recorder that slips in after this check.
	existing, err := s.transactionRepo.FindTransactionByID(ctx, req.TransactionID)
	if err == nil {
		s.LogInfo(ctx, "Transaction already recorded, returning stored record",
			slog.String("transaction_id", req.TransactionID))
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	template, err := s.resolveTemplate(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	magnitude := req.Amount.Abs()

	description := req.Description
	if description == "" {
		description = template.description
	}

	txn := domain.LedgerTransaction{
		TransactionID:   req.TransactionID,
		TransactionType: req.TransactionType,
		TransactionDate: req.TransactionDate,
		Amount:          req.Amount,
		Description:     description,
		CreatedAt:       now,
		CreatedBy:       userID,
	}

	entry := domain.JournalEntry{
		JournalEntryID:  uuid.NewString(),
		EntryDate:       req.TransactionDate,
		ReferenceNumber: ulid.Make().String(),
		Description:     description,
		IsPosted:        true,
		AuditFields:     domain.NewAuditFields(userID, now),
	}

	lines := []domain.JournalLine{
		{
			LineItemID:     uuid.NewString(),
			JournalEntryID: entry.JournalEntryID,
			AccountID:      template.debitAccount.AccountID,
			Description:    description,
			Debit:          magnitude,
			Credit:         decimal.Zero,
		},
		{
			LineItemID:     uuid.NewString(),
			JournalEntryID: entry.JournalEntryID,
			AccountID:      template.creditAccount.AccountID,
			Description:    description,
			Debit:          decimal.Zero,
			Credit:         magnitude,
		},
	}

	created, err := s.transactionRepo.RecordAtomically(ctx, txn, entry, lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to record transaction",
			slog.String("transaction_id", req.TransactionID),
			slog.String("transaction_type", string(req.TransactionType)))
		return nil, err
	}

	if !created {
		// A concurrent recorder won the insert between our existence check
		// and the atomic write. Return what it stored.
		stored, findErr := s.transactionRepo.FindTransactionByID(ctx, req.TransactionID)
		if findErr != nil {
			return nil, fmt.Errorf("transaction %s reported as duplicate but not found: %w", req.TransactionID, findErr)
		}
		return stored, nil
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("transaction_type", string(txn.TransactionType)),
		slog.String("journal_entry_id", entry.JournalEntryID))

	s.appendAudit(ctx, txn, entry, userID, now)

	txn.JournalEntryID = &entry.JournalEntryID
	return &txn, nil
}

// appendAudit writes the trail record for a successful recording. Best-effort:
// a failure is logged and never fails the recording.
func (s *recorderService) appendAudit(ctx context.Context, txn domain.LedgerTransaction, entry domain.JournalEntry, userID string, now time.Time) {
	event := domain.AuditEvent{
		AuditEventID: uuid.NewString(),
		EntityType:   "transaction",
		EntityID:     txn.TransactionID,
		Action:       "recorded",
		Actor:        userID,
		Details:      fmt.Sprintf("type=%s journal_entry_id=%s", txn.TransactionType, entry.JournalEntryID),
		OccurredAt:   now,
	}

	if err := s.auditRepo.AppendEvent(ctx, event); err != nil {
		s.LogWarn(ctx, "Failed to append audit event",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("error", err.Error()))
	}
}
