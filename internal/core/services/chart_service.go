package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/bizbooks/backoffice_ledger/internal/apperrors"
	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/bizbooks/backoffice_ledger/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/backoffice_ledger/internal/core/ports/services"
	"github.com/bizbooks/backoffice_ledger/internal/dto"
)

// chartService implements the chart-of-accounts directory.
type chartService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewChartService creates a new chart-of-accounts service.
func NewChartService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.ChartSvcFacade {
	return &chartService{accountRepo: accountRepo}
}

var _ portssvc.ChartSvcFacade = (*chartService)(nil)

// defaultAccount is one row of the standard chart seeded at startup.
type defaultAccount struct {
	code        string
	name        string
	accountType domain.AccountType
}

// defaultChart is the minimal standard chart every deployment gets. Codes are
// immutable once a posted line references the account.
var defaultChart = []defaultAccount{
	{code: "CASH-1000", name: "Cash", accountType: domain.Asset},
	{code: "AR-1100", name: "Accounts Receivable", accountType: domain.Asset},
	{code: "EQ-3000", name: "Owner Equity", accountType: domain.Equity},
	{code: "REV-4000", name: "Sales Revenue", accountType: domain.Revenue},
	{code: "EXP-5000", name: "General Expenses", accountType: domain.Expense},
	{code: "EXP-5100", name: "Payroll Expenses", accountType: domain.Expense},
	{code: "EXP-5200", name: "Supplier Payments", accountType: domain.Expense},
}

// Default account codes used by the transaction recorder's journal templates.
const (
	DefaultCashCode     = "CASH-1000"
	DefaultRevenueCode  = "REV-4000"
	DefaultExpenseCode  = "EXP-5000"
	DefaultPayrollCode  = "EXP-5100"
	DefaultSupplierCode = "EXP-5200"
)

// ResolveCode resolves a business account code to its account. Unknown codes
// fail with apperrors.ErrNotFound; callers treat that as fatal to the
// enclosing posting.
func (s *chartService) ResolveCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	if accountCode == "" {
		return nil, fmt.Errorf("%w: account code must not be empty", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account code %s", apperrors.ErrNotFound, accountCode)
		}
		s.LogError(ctx, err, "Failed to resolve account code", slog.String("account_code", accountCode))
		return nil, err
	}

	return account, nil
}

// GetAccountByID retrieves a specific account by its unique identifier.
func (s *chartService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		s.LogError(ctx, err, "Failed to get account by ID", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves a paginated list of active accounts.
func (s *chartService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}

// CreateAccount persists a new account. The account_code unique constraint is
// the source of truth for duplicates; the repository maps the violation to
// apperrors.ErrDuplicate.
func (s *chartService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	now := time.Now()

	parentID := ""
	if req.ParentAccountID != nil {
		parentID = *req.ParentAccountID
		if _, err := s.accountRepo.FindAccountByID(ctx, parentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrValidation, parentID)
			}
			return nil, err
		}
	}

	account := domain.Account{
		AccountID:       uuid.NewString(),
		AccountCode:     req.AccountCode,
		Name:            req.Name,
		Description:     req.Description,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(userID, now),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to create account", slog.String("account_code", req.AccountCode))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_code", account.AccountCode))
	return &account, nil
}

// EnsureDefaults idempotently guarantees the standard chart exists. Codes
// already present are left untouched; concurrent seeding is absorbed by the
// unique constraint.
func (s *chartService) EnsureDefaults(ctx context.Context, userID string) error {
	now := time.Now()

	for _, def := range defaultChart {
		_, err := s.accountRepo.FindAccountByCode(ctx, def.code)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check default account %s: %w", def.code, err)
		}

		account := domain.Account{
			AccountID:   uuid.NewString(),
			AccountCode: def.code,
			Name:        def.name,
			AccountType: def.accountType,
			IsActive:    true,
			AuditFields: domain.NewAuditFields(userID, now),
		}

		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			// A concurrent seeder won the insert; that is fine.
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return fmt.Errorf("failed to seed default account %s: %w", def.code, err)
		}

		s.LogInfo(ctx, "Seeded default account", slog.String("account_code", def.code))
	}

	return nil
}

// DeactivateAccount marks an account as inactive. Accounts are never deleted.
func (s *chartService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
			return err
		}
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
