package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/pocketfin/pocket_finance_app/internal/apperrors"
	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
	portssvc "github.com/pocketfin/pocket_finance_app/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_app/internal/core/services"
	"github.com/pocketfin/pocket_finance_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockTransactionRepository is a mock type for the TransactionRepository interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) LoadTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	args := m.Called(ctx, txns)
	return args.Error(0)
}

// MockGamification is a mock type for the GamificationSvcFacade interface
type MockGamification struct {
	mock.Mock
}

func (m *MockGamification) Profile(ctx context.Context) (*domain.GamificationProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GamificationProfile), args.Error(1)
}

func (m *MockGamification) RecordActivity(ctx context.Context, at time.Time) (*domain.GamificationProfile, error) {
	args := m.Called(ctx, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GamificationProfile), args.Error(1)
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo         *MockTransactionRepository
	mockGamification *MockGamification
	service          portssvc.TransactionSvcFacade
	now              time.Time
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.mockGamification = new(MockGamification)
	suite.now = time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)
	suite.service = services.NewTransactionService(suite.mockRepo,
		services.WithGamification(suite.mockGamification),
		services.WithTransactionClock(func() time.Time { return suite.now }),
	)
}

func (suite *TransactionServiceTestSuite) seed(txns []domain.Transaction) {
	suite.mockRepo.On("LoadTransactions", mock.Anything).Return(txns, nil)
	suite.mockRepo.On("SaveTransactions", mock.Anything, mock.Anything).Return(nil)
}

func entry(id string, kind domain.TransactionKind, category string, amount int64, occurredAt time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		Kind:          kind,
		Category:      category,
		Amount:        decimal.NewFromInt(amount),
		OccurredAt:    occurredAt,
		AuditFields:   domain.AuditFields{CreatedAt: occurredAt, UpdatedAt: occurredAt},
	}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_FeedsGamification() {
	suite.seed([]domain.Transaction{})
	suite.mockGamification.On("RecordActivity", mock.Anything, suite.now).
		Return(&domain.GamificationProfile{CurrentStreak: 1}, nil)

	txn, err := suite.service.CreateTransaction(context.Background(), dto.CreateTransactionRequest{
		Kind:     domain.Expense,
		Category: "Groceries",
		Amount:   decimal.NewFromInt(42),
	})

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), txn.TransactionID)
	assert.Equal(suite.T(), suite.now, txn.OccurredAt, "occurredAt defaults to now")
	suite.mockGamification.AssertCalled(suite.T(), "RecordActivity", mock.Anything, suite.now)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_GamificationFailureIsNotFatal() {
	suite.seed([]domain.Transaction{})
	suite.mockGamification.On("RecordActivity", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	txn, err := suite.service.CreateTransaction(context.Background(), dto.CreateTransactionRequest{
		Kind:     domain.Income,
		Category: "Salary",
		Amount:   decimal.NewFromInt(3000),
	})

	assert.NoError(suite.T(), err, "the entry must still be logged")
	assert.NotNil(suite.T(), txn)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsNonPositiveAmount() {
	suite.seed([]domain.Transaction{})

	_, err := suite.service.CreateTransaction(context.Background(), dto.CreateTransactionRequest{
		Kind:     domain.Expense,
		Category: "Groceries",
		Amount:   decimal.NewFromInt(-5),
	})
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_FiltersAndSortsNewestFirst() {
	march := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	april := time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC)
	aprilLater := time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)
	suite.seed([]domain.Transaction{
		entry("t1", domain.Expense, "Groceries", 50, march),
		entry("t2", domain.Income, "Salary", 3000, april),
		entry("t3", domain.Expense, "Dining", 25, aprilLater),
	})

	txns, err := suite.service.ListTransactions(context.Background(), dto.ListTransactionsParams{
		Year: 2025, Month: 4,
	})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), txns, 2)
	assert.Equal(suite.T(), "t3", txns[0].TransactionID, "newest first")
	assert.Equal(suite.T(), "t2", txns[1].TransactionID)

	expenses, err := suite.service.ListTransactions(context.Background(), dto.ListTransactionsParams{
		Year: 2025, Month: 4, Kind: "EXPENSE",
	})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), expenses, 1)
	assert.Equal(suite.T(), "t3", expenses[0].TransactionID)
}

func (suite *TransactionServiceTestSuite) TestMonthlySummary() {
	april := time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC)
	suite.seed([]domain.Transaction{
		entry("t1", domain.Income, "Salary", 3000, april),
		entry("t2", domain.Expense, "Groceries", 400, april),
		entry("t3", domain.Expense, "Groceries", 100, april.AddDate(0, 0, 10)),
		entry("t4", domain.Expense, "Dining", 150, april),
		entry("t5", domain.Savings, "Savings Goals", 500, april),
		entry("t6", domain.Expense, "Groceries", 999, april.AddDate(0, 1, 0)), // May, excluded
	})

	summary, err := suite.service.MonthlySummary(context.Background(), 2025, time.April)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), summary.TotalIncome.Equal(decimal.NewFromInt(3000)))
	assert.True(suite.T(), summary.TotalExpense.Equal(decimal.NewFromInt(650)))
	assert.True(suite.T(), summary.TotalSavings.Equal(decimal.NewFromInt(500)))
	assert.True(suite.T(), summary.Net.Equal(decimal.NewFromInt(1850)),
		"net = income - expense - savings")
	assert.True(suite.T(), summary.ExpenseByCategory["Groceries"].Equal(decimal.NewFromInt(500)))
	assert.True(suite.T(), summary.ExpenseByCategory["Dining"].Equal(decimal.NewFromInt(150)))
}

func (suite *TransactionServiceTestSuite) TestUpdateAndDeleteTransaction() {
	april := time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC)
	suite.seed([]domain.Transaction{entry("t1", domain.Expense, "Groceries", 50, april)})

	newAmount := decimal.NewFromInt(75)
	txn, err := suite.service.UpdateTransaction(context.Background(), "t1",
		dto.UpdateTransactionRequest{Amount: &newAmount})
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), txn.Amount.Equal(newAmount))

	assert.NoError(suite.T(), suite.service.DeleteTransaction(context.Background(), "t1"))
	_, err = suite.service.GetTransactionByID(context.Background(), "t1")
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
