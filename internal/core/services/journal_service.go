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
	"github.com/bizbooks/backoffice_ledger/internal/utils/accounting"
)

// journalService implements the journal engine. It is the single gate through
// which entries reach the ledger, so the balance invariant is enforced here
// and nowhere relaxed.
type journalService struct {
	BaseService
	journalRepo     portsrepo.JournalRepositoryWithTx
	accountRepo     portsrepo.AccountRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewJournalService creates a new journal engine service.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryFacade,
	transactionRepo portsrepo.TransactionRepositoryFacade,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:     journalRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildEntry turns a validated request into domain structures ready to persist.
func buildEntry(req dto.PostEntryRequest, creatorUserID string, now time.Time) (domain.JournalEntry, []domain.JournalLine) {
	reference := req.Reference
	if reference == "" {
		reference = ulid.Make().String()
	}

	entry := domain.JournalEntry{
		JournalEntryID:  uuid.NewString(),
		EntryDate:       req.EntryDate,
		ReferenceNumber: reference,
		Description:     req.Description,
		IsPosted:        true,
		AuditFields:     domain.NewAuditFields(creatorUserID, now),
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalLine{
			LineItemID:     uuid.NewString(),
			JournalEntryID: entry.JournalEntryID,
			AccountID:      lineReq.AccountID,
			Description:    lineReq.Description,
			Debit:          lineReq.Debit,
			Credit:         lineReq.Credit,
		}
	}

	return entry, lines
}

// validateLineAccounts checks every referenced account exists and is active.
func (s *journalService) validateLineAccounts(ctx context.Context, lines []domain.JournalLine) error {
	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts for validation: %w", err)
	}

	for _, id := range accountIDs {
		account, found := accounts[id]
		if !found {
			return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, id)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s (%s) is inactive", apperrors.ErrValidation, account.AccountCode, id)
		}
	}

	return nil
}

// PostBalanced validates and persists a balanced journal entry with its line
// items as one atomic unit. Unbalanced input fails with
// apperrors.ErrUnbalanced before anything touches storage.
func (s *journalService) PostBalanced(ctx context.Context, req dto.PostEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	entry, lines := buildEntry(req, creatorUserID, time.Now())

	if err := accounting.ValidateBalanced(lines); err != nil {
		return nil, err
	}
	if err := s.validateLineAccounts(ctx, lines); err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to post journal entry",
			slog.String("journal_entry_id", entry.JournalEntryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.String("reference_number", entry.ReferenceNumber),
		slog.Int("line_count", len(lines)))

	entry.Lines = lines
	return &entry, nil
}

// GetEntryByID retrieves a journal entry together with its line items.
func (s *journalService) GetEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, journalEntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", journalEntryID))
		}
		s.LogError(ctx, err, "Failed to get journal entry", slog.String("journal_entry_id", journalEntryID))
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, journalEntryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load line items", slog.String("journal_entry_id", journalEntryID))
		return nil, err
	}

	entry.Lines = lines
	return entry, nil
}

// LinkTransaction associates a posted entry back to its originating
// transaction. The storage-level unique constraint guarantees at most one
// link per transaction.
func (s *journalService) LinkTransaction(ctx context.Context, journalEntryID, transactionID string) error {
	if _, err := s.journalRepo.FindEntryByID(ctx, journalEntryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, journalEntryID)
		}
		return err
	}

	if err := s.transactionRepo.LinkJournalEntry(ctx, transactionID, journalEntryID); err != nil {
		s.LogError(ctx, err, "Failed to link journal entry to transaction",
			slog.String("journal_entry_id", journalEntryID),
			slog.String("transaction_id", transactionID))
		return err
	}

	return nil
}

// LedgerEntries returns the statement rows for an account code within a date
// range, ordered by entry date then entry id.
func (s *journalService) LedgerEntries(ctx context.Context, accountCode string, from, to time.Time) ([]domain.LedgerLine, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account code %s", apperrors.ErrNotFound, accountCode)
		}
		return nil, err
	}

	return s.journalRepo.LedgerLinesByAccount(ctx, account.AccountID, from, to)
}

// LedgerEntriesPaged returns a token-paginated statement window, newest first.
func (s *journalService) LedgerEntriesPaged(ctx context.Context, accountCode string, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: account code %s", apperrors.ErrNotFound, accountCode)
		}
		return nil, nil, err
	}

	return s.journalRepo.LedgerLinesByAccountPaged(ctx, account.AccountID, limit, nextToken)
}

// BalanceAsOf computes the account balance up to and including asOf under the
// normal-balance sign convention: ASSET/EXPENSE accounts are debit-positive,
// LIABILITY/EQUITY/REVENUE credit-positive.
func (s *journalService) BalanceAsOf(ctx context.Context, accountCode string, asOf time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: account code %s", apperrors.ErrNotFound, accountCode)
		}
		return decimal.Zero, err
	}

	debit, credit, err := s.journalRepo.AccountActivity(ctx, account.AccountID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute account activity",
			slog.String("account_code", accountCode))
		return decimal.Zero, err
	}

	return accounting.NormalBalance(account.AccountType, debit, credit), nil
}
