package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizbooks/backoffice_ledger/internal/apperrors"
	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	portssvc "github.com/bizbooks/backoffice_ledger/internal/core/ports/services"
	"github.com/bizbooks/backoffice_ledger/internal/core/services"
	"github.com/bizbooks/backoffice_ledger/internal/dto"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, journalEntryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) LedgerLinesByAccount(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockJournalRepository) LedgerLinesByAccountPaged(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var lines []domain.LedgerLine
	if args.Get(0) != nil {
		lines = args.Get(0).([]domain.LedgerLine)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return lines, token, args.Error(2)
}

func (m *MockJournalRepository) AccountActivity(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, tx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}

func (m *MockTransactionRepository) SumUnlinkedExpenseTransactions(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) RecordAtomically(ctx context.Context, txn domain.LedgerTransaction, entry domain.JournalEntry, lines []domain.JournalLine) (bool, error) {
	args := m.Called(ctx, txn, entry, lines)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) LinkJournalEntry(ctx context.Context, transactionID, journalEntryID string) error {
	args := m.Called(ctx, transactionID, journalEntryID)
	return args.Error(0)
}

// --- Test Suite ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	service         portssvc.JournalSvcFacade
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockTxnRepo)
}

func (suite *JournalServiceTestSuite) activeAccount(accountType domain.AccountType) domain.Account {
	return domain.Account{
		AccountID:   uuid.NewString(),
		AccountCode: "ACC-" + uuid.NewString()[:8],
		AccountType: accountType,
		IsActive:    true,
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestPostBalanced_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	cash := suite.activeAccount(domain.Asset)
	revenue := suite.activeAccount(domain.Revenue)

	req := dto.PostEntryRequest{
		EntryDate:   time.Now(),
		Description: "Cash sale",
		Lines: []dto.PostEntryLineRequest{
			{AccountID: cash.AccountID, Debit: decimal.NewFromInt(150)},
			{AccountID: revenue.AccountID, Credit: decimal.NewFromInt(150)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Account{cash.AccountID: cash, revenue.AccountID: revenue}, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.IsPosted && e.ReferenceNumber != "" && e.CreatedBy == creatorUserID
	}), mock.MatchedBy(func(lines []domain.JournalLine) bool {
		return len(lines) == 2 &&
			lines[0].Debit.Equal(decimal.NewFromInt(150)) &&
			lines[1].Credit.Equal(decimal.NewFromInt(150))
	})).Return(nil).Once()

	entry, err := suite.service.PostBalanced(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.True(entry.IsPosted)
	suite.NotEmpty(entry.ReferenceNumber)
	suite.Len(entry.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostBalanced_KeepsCallerReference() {
	ctx := context.Background()
	cash := suite.activeAccount(domain.Asset)
	revenue := suite.activeAccount(domain.Revenue)

	req := dto.PostEntryRequest{
		EntryDate:   time.Now(),
		Reference:   "INV-2026-0042",
		Description: "Invoice",
		Lines: []dto.PostEntryLineRequest{
			{AccountID: cash.AccountID, Debit: decimal.NewFromInt(90)},
			{AccountID: revenue.AccountID, Credit: decimal.NewFromInt(90)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Account{cash.AccountID: cash, revenue.AccountID: revenue}, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.PostBalanced(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal("INV-2026-0042", entry.ReferenceNumber)
}

func (suite *JournalServiceTestSuite) TestPostBalanced_UnbalancedFailsClosed() {
	ctx := context.Background()
	req := dto.PostEntryRequest{
		EntryDate:   time.Now(),
		Description: "Broken entry",
		Lines: []dto.PostEntryLineRequest{
			{AccountID: uuid.NewString(), Debit: decimal.NewFromInt(100)},
			{AccountID: uuid.NewString(), Credit: decimal.NewFromInt(99)},
		},
	}

	entry, err := suite.service.PostBalanced(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	// Nothing may touch storage on an unbalanced entry.
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry")
}

func (suite *JournalServiceTestSuite) TestPostBalanced_UnknownAccount() {
	ctx := context.Background()
	cash := suite.activeAccount(domain.Asset)
	ghostID := uuid.NewString()

	req := dto.PostEntryRequest{
		EntryDate:   time.Now(),
		Description: "Entry against missing account",
		Lines: []dto.PostEntryLineRequest{
			{AccountID: cash.AccountID, Debit: decimal.NewFromInt(10)},
			{AccountID: ghostID, Credit: decimal.NewFromInt(10)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Account{cash.AccountID: cash}, nil).Once()

	entry, err := suite.service.PostBalanced(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), ghostID)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry")
}

func (suite *JournalServiceTestSuite) TestPostBalanced_InactiveAccount() {
	ctx := context.Background()
	cash := suite.activeAccount(domain.Asset)
	closed := suite.activeAccount(domain.Revenue)
	closed.IsActive = false

	req := dto.PostEntryRequest{
		EntryDate:   time.Now(),
		Description: "Entry against closed account",
		Lines: []dto.PostEntryLineRequest{
			{AccountID: cash.AccountID, Debit: decimal.NewFromInt(10)},
			{AccountID: closed.AccountID, Credit: decimal.NewFromInt(10)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(map[string]domain.Account{cash.AccountID: cash, closed.AccountID: closed}, nil).Once()

	entry, err := suite.service.PostBalanced(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry")
}

func (suite *JournalServiceTestSuite) TestGetEntryByID_LoadsLines() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{JournalEntryID: entryID, IsPosted: true}
	lines := []domain.JournalLine{
		{LineItemID: uuid.NewString(), JournalEntryID: entryID, Debit: decimal.NewFromInt(5)},
		{LineItemID: uuid.NewString(), JournalEntryID: entryID, Credit: decimal.NewFromInt(5)},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	entry, err := suite.service.GetEntryByID(ctx, entryID)

	suite.Require().NoError(err)
	suite.Len(entry.Lines, 2)
}

func (suite *JournalServiceTestSuite) TestLinkTransaction_EntryMissing() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.LinkTransaction(ctx, entryID, "txn-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "LinkJournalEntry")
}

func (suite *JournalServiceTestSuite) TestLinkTransaction_AlreadyLinked() {
	ctx := context.Background()
	entryID := uuid.NewString()
	stored := &domain.JournalEntry{JournalEntryID: entryID}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(stored, nil).Once()
	suite.mockTxnRepo.On("LinkJournalEntry", ctx, "txn-1", entryID).Return(apperrors.ErrConflict).Once()

	err := suite.service.LinkTransaction(ctx, entryID, "txn-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestBalanceAsOf_DebitPositiveConvention() {
	ctx := context.Background()
	cash := suite.activeAccount(domain.Asset)
	asOf := time.Now()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, cash.AccountCode).Return(&cash, nil).Once()
	suite.mockJournalRepo.On("AccountActivity", ctx, cash.AccountID, asOf).
		Return(decimal.NewFromInt(500), decimal.NewFromInt(200), nil).Once()

	balance, err := suite.service.BalanceAsOf(ctx, cash.AccountCode, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(300)), "got %s", balance)
}

func (suite *JournalServiceTestSuite) TestBalanceAsOf_CreditPositiveConvention() {
	ctx := context.Background()
	revenue := suite.activeAccount(domain.Revenue)
	asOf := time.Now()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, revenue.AccountCode).Return(&revenue, nil).Once()
	suite.mockJournalRepo.On("AccountActivity", ctx, revenue.AccountID, asOf).
		Return(decimal.NewFromInt(200), decimal.NewFromInt(500), nil).Once()

	balance, err := suite.service.BalanceAsOf(ctx, revenue.AccountCode, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(300)), "got %s", balance)
}

func (suite *JournalServiceTestSuite) TestLedgerEntriesPaged_PassesToken() {
	ctx := context.Background()
	cash := suite.activeAccount(domain.Asset)
	inToken := "opaque-cursor"
	outToken := "next-cursor"
	lines := []domain.LedgerLine{{JournalEntryID: uuid.NewString(), Debit: decimal.NewFromInt(10)}}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, cash.AccountCode).Return(&cash, nil).Once()
	suite.mockJournalRepo.On("LedgerLinesByAccountPaged", ctx, cash.AccountID, 20, &inToken).
		Return(lines, &outToken, nil).Once()

	got, next, err := suite.service.LedgerEntriesPaged(ctx, cash.AccountCode, 20, &inToken)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.Require().NotNil(next)
	suite.Equal(outToken, *next)
}

func (suite *JournalServiceTestSuite) TestLedgerEntries_UnknownAccountCode() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "NOPE").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.LedgerEntries(ctx, "NOPE", time.Time{}, time.Now())

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
