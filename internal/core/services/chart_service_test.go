package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizbooks/backoffice_ledger/internal/apperrors"
	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	portssvc "github.com/bizbooks/backoffice_ledger/internal/core/ports/services"
	"github.com/bizbooks/backoffice_ledger/internal/core/services"
	"github.com/bizbooks/backoffice_ledger/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	args := m.Called(ctx, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Test Suite ---
type ChartServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.ChartSvcFacade
}

func (suite *ChartServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewChartService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *ChartServiceTestSuite) TestResolveCode_Success() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		AccountCode: "CASH-1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, "CASH-1000").Return(account, nil).Once()

	got, err := suite.service.ResolveCode(ctx, "CASH-1000")

	suite.Require().NoError(err)
	suite.Equal(account.AccountID, got.AccountID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestResolveCode_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindAccountByCode", ctx, "NOPE-9999").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.ResolveCode(ctx, "NOPE-9999")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Contains(err.Error(), "NOPE-9999")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestResolveCode_EmptyCode() {
	got, err := suite.service.ResolveCode(context.Background(), "")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountByCode")
}

func (suite *ChartServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateAccountRequest{
		AccountCode: "EXP-5300",
		Name:        "Travel",
		AccountType: domain.Expense,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountCode == req.AccountCode &&
			a.Name == req.Name &&
			a.AccountType == domain.Expense &&
			a.IsActive &&
			a.AccountID != "" &&
			a.CreatedBy == creatorUserID
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal(req.AccountCode, account.AccountCode)
	suite.True(account.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountCode: "CASH-1000",
		Name:        "Second Cash",
		AccountType: domain.Asset,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	account, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestCreateAccount_UnknownParent() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		AccountCode:     "EXP-5400",
		Name:            "Subscriptions",
		AccountType:     domain.Expense,
		ParentAccountID: &parentID,
	}

	suite.mockRepo.On("FindAccountByID", ctx, parentID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *ChartServiceTestSuite) TestEnsureDefaults_AllPresent() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: uuid.NewString(), IsActive: true}

	suite.mockRepo.On("FindAccountByCode", ctx, mock.AnythingOfType("string")).Return(existing, nil)

	err := suite.service.EnsureDefaults(ctx, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *ChartServiceTestSuite) TestEnsureDefaults_SeedsMissing() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("FindAccountByCode", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound)
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.IsActive && a.AccountCode != "" && a.CreatedBy == userID
	})).Return(nil).Times(7)

	err := suite.service.EnsureDefaults(ctx, userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestEnsureDefaults_AbsorbsConcurrentSeeder() {
	ctx := context.Background()

	suite.mockRepo.On("FindAccountByCode", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound)
	// Another instance seeded the same codes between our check and insert.
	suite.mockRepo.On("SaveAccount", ctx, mock.Anything).Return(apperrors.ErrDuplicate)

	err := suite.service.EnsureDefaults(ctx, uuid.NewString())

	suite.Require().NoError(err)
}

func (suite *ChartServiceTestSuite) TestDeactivateAccount_AlreadyInactive() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("DeactivateAccount", ctx, accountID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrValidation).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ChartServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, accountID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ChartServiceTestSuite) TestGetAccountByID_RepoError() {
	ctx := context.Background()
	accountID := uuid.NewString()
	repoErr := errors.New("connection refused")

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(nil, repoErr).Once()

	account, err := suite.service.GetAccountByID(ctx, accountID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, repoErr)
}

func TestChartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChartServiceTestSuite))
}
