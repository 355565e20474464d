package services_test

import (
	"context"
	"errors"
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

// MockCreditProductRepository is a mock type for the CreditProductRepository interface
type MockCreditProductRepository struct {
	mock.Mock
}

func (m *MockCreditProductRepository) LoadCreditProducts(ctx context.Context) ([]domain.CreditProduct, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditProduct), args.Error(1)
}

func (m *MockCreditProductRepository) SaveCreditProducts(ctx context.Context, products []domain.CreditProduct) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

// --- Test Suite Setup ---

type CreditServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCreditProductRepository
	service  portssvc.CreditSvcFacade
	now      time.Time
}

func (suite *CreditServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCreditProductRepository)
	suite.now = time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	suite.service = services.NewCreditService(suite.mockRepo,
		services.WithCreditClock(func() time.Time { return suite.now }),
	)
}

// seedRepo stubs the repo with a stored collection and accepting saves.
func (suite *CreditServiceTestSuite) seedRepo(products []domain.CreditProduct) {
	suite.mockRepo.On("LoadCreditProducts", mock.Anything).Return(products, nil)
	suite.mockRepo.On("SaveCreditProducts", mock.Anything, mock.Anything).Return(nil)
}

// revolvingCard builds a card carrying a 1000 balance at 18.5% APR whose
// interest was last brought current at suite.now.
func (suite *CreditServiceTestSuite) revolvingCard() domain.CreditProduct {
	apr := decimal.NewFromFloat(18.5)
	return domain.CreditProduct{
		ProductID:          "card-1",
		Name:               "Visa",
		CreditType:         domain.Revolving,
		Principal:          decimal.NewFromInt(1000),
		RemainingBalance:   decimal.NewFromInt(1000),
		APR:                apr,
		DailyInterestRate:  domain.DeriveDailyRate(apr),
		AccruedInterest:    decimal.Zero,
		TotalPaid:          decimal.Zero,
		Status:             domain.CreditActive,
		StartDate:          suite.now,
		LastInterestCalcAt: suite.now,
		AuditFields:        domain.AuditFields{CreatedAt: suite.now, UpdatedAt: suite.now},
	}
}

// --- Test Cases ---

func (suite *CreditServiceTestSuite) TestCreateCreditProduct_Success() {
	ctx := context.Background()
	suite.seedRepo([]domain.CreditProduct{})

	req := dto.CreateCreditProductRequest{
		Name:       "Visa",
		CreditType: domain.Revolving,
		Principal:  decimal.NewFromInt(1000),
		APR:        decimal.NewFromFloat(18.5),
	}

	product, err := suite.service.CreateCreditProduct(ctx, req)

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), product.ProductID)
	assert.True(suite.T(), product.RemainingBalance.Equal(decimal.NewFromInt(1000)),
		"balance starts at the principal")
	assert.True(suite.T(), product.AccruedInterest.IsZero())
	assert.True(suite.T(), product.TotalPaid.IsZero())
	assert.Equal(suite.T(), domain.CreditActive, product.Status)
	assert.Equal(suite.T(), suite.now, product.LastInterestCalcAt)

	wantRate := decimal.NewFromFloat(18.5).Div(decimal.NewFromInt(36500))
	assert.True(suite.T(), product.DailyInterestRate.Equal(wantRate),
		"daily rate must always equal apr/100/365")

	suite.mockRepo.AssertCalled(suite.T(), "SaveCreditProducts", mock.Anything, mock.Anything)
}

func (suite *CreditServiceTestSuite) TestCreateCreditProduct_Validation() {
	ctx := context.Background()
	suite.seedRepo([]domain.CreditProduct{})

	_, err := suite.service.CreateCreditProduct(ctx, dto.CreateCreditProductRequest{
		Name:       "No principal",
		CreditType: domain.Revolving,
		Principal:  decimal.Zero,
	})
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	_, err = suite.service.CreateCreditProduct(ctx, dto.CreateCreditProductRequest{
		Name:       "Negative APR",
		CreditType: domain.FixedLoan,
		Principal:  decimal.NewFromInt(500),
		APR:        decimal.NewFromInt(-1),
	})
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	term := 12
	_, err = suite.service.CreateCreditProduct(ctx, dto.CreateCreditProductRequest{
		Name:           "Term on a card",
		CreditType:     domain.Revolving,
		Principal:      decimal.NewFromInt(500),
		LoanTermMonths: &term,
	})
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation,
		"loan terms do not apply to revolving products")
}

func (suite *CreditServiceTestSuite) TestApplyPayment_NoElapsedTime() {
	ctx := context.Background()
	suite.seedRepo([]domain.CreditProduct{suite.revolvingCard()})

	product, err := suite.service.ApplyPayment(ctx, "card-1", decimal.NewFromInt(200))

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), product.RemainingBalance.Equal(decimal.NewFromInt(800)),
		"with no accrued interest the whole payment hits principal")
	assert.True(suite.T(), product.AccruedInterest.IsZero())
	assert.True(suite.T(), product.TotalPaid.Equal(decimal.NewFromInt(200)))
	assert.Equal(suite.T(), domain.CreditActive, product.Status)
}

func (suite *CreditServiceTestSuite) TestHydrate_AccruesThirtyDays() {
	card := suite.revolvingCard()
	suite.seedRepo([]domain.CreditProduct{card})

	// 30 whole days pass.
	suite.now = suite.now.Add(30 * 24 * time.Hour)

	err := suite.service.Hydrate(context.Background())
	assert.NoError(suite.T(), err)

	product, err := suite.service.GetCreditProductByID(context.Background(), "card-1")
	assert.NoError(suite.T(), err)
	// 1000 * (18.5/100/365) * 30 = 15.2054..., rounded to cents.
	assert.True(suite.T(), product.AccruedInterest.Equal(decimal.NewFromFloat(15.21)),
		"got %s", product.AccruedInterest)
	assert.Equal(suite.T(), suite.now, product.LastInterestCalcAt)
}

func (suite *CreditServiceTestSuite) TestHydrate_SweepIsIdempotentSameDay() {
	card := suite.revolvingCard()
	suite.seedRepo([]domain.CreditProduct{card})
	suite.now = suite.now.Add(30 * 24 * time.Hour)

	assert.NoError(suite.T(), suite.service.Hydrate(context.Background()))
	first, _ := suite.service.GetCreditProductByID(context.Background(), "card-1")

	// A second sweep an hour later must not add interest: less than a whole
	// day elapsed since the watermark advanced.
	suite.now = suite.now.Add(time.Hour)
	assert.NoError(suite.T(), suite.service.Hydrate(context.Background()))
	second, _ := suite.service.GetCreditProductByID(context.Background(), "card-1")

	assert.True(suite.T(), second.AccruedInterest.Equal(first.AccruedInterest),
		"sweep within the same day must be a no-op")
}

func (suite *CreditServiceTestSuite) TestHydrate_FractionalDaysKeepAccruing() {
	card := suite.revolvingCard()
	suite.seedRepo([]domain.CreditProduct{card})

	// 12 hours: no whole day yet, watermark must not advance.
	suite.now = suite.now.Add(12 * time.Hour)
	assert.NoError(suite.T(), suite.service.Hydrate(context.Background()))
	product, _ := suite.service.GetCreditProductByID(context.Background(), "card-1")
	assert.True(suite.T(), product.AccruedInterest.IsZero())
	assert.Equal(suite.T(), card.LastInterestCalcAt, product.LastInterestCalcAt)

	// Another 12 hours completes the day and one day of interest lands.
	suite.now = suite.now.Add(12 * time.Hour)
	assert.NoError(suite.T(), suite.service.Hydrate(context.Background()))
	product, _ = suite.service.GetCreditProductByID(context.Background(), "card-1")
	assert.True(suite.T(), product.AccruedInterest.Equal(decimal.NewFromFloat(0.51)),
		"got %s", product.AccruedInterest)
}

func (suite *CreditServiceTestSuite) TestApplyPayment_InterestFirstWaterfall() {
	card := suite.revolvingCard()
	card.AccruedInterest = decimal.NewFromFloat(15.21)
	suite.seedRepo([]domain.CreditProduct{card})

	// Payment smaller than the accrued interest touches only interest.
	product, err := suite.service.ApplyPayment(context.Background(), "card-1", decimal.NewFromInt(10))
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), product.AccruedInterest.Equal(decimal.NewFromFloat(5.21)))
	assert.True(suite.T(), product.RemainingBalance.Equal(decimal.NewFromInt(1000)),
		"principal untouched until interest is cleared")
	assert.True(suite.T(), product.TotalPaid.IsZero(),
		"interest payments do not count toward principal repayment")

	// The next payment clears the rest of the interest, remainder hits principal.
	product, err = suite.service.ApplyPayment(context.Background(), "card-1", decimal.NewFromFloat(105.21))
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), product.AccruedInterest.IsZero())
	assert.True(suite.T(), product.RemainingBalance.Equal(decimal.NewFromInt(900)))
	assert.True(suite.T(), product.TotalPaid.Equal(decimal.NewFromInt(100)))
}

func (suite *CreditServiceTestSuite) TestApplyPayment_OverpaymentFloorsAtZero() {
	card := suite.revolvingCard()
	suite.seedRepo([]domain.CreditProduct{card})

	product, err := suite.service.ApplyPayment(context.Background(), "card-1", decimal.NewFromInt(5000))

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), product.RemainingBalance.IsZero(), "balance never goes negative")
	assert.True(suite.T(), product.AccruedInterest.IsZero())
	assert.True(suite.T(), product.TotalPaid.Equal(decimal.NewFromInt(1000)),
		"total paid is capped at the principal")
	assert.Equal(suite.T(), domain.CreditPaidOff, product.Status)
}

func (suite *CreditServiceTestSuite) TestApplyPayment_Validation() {
	suite.seedRepo([]domain.CreditProduct{suite.revolvingCard()})

	_, err := suite.service.ApplyPayment(context.Background(), "card-1", decimal.Zero)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	_, err = suite.service.ApplyPayment(context.Background(), "missing", decimal.NewFromInt(10))
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *CreditServiceTestSuite) TestAddCharge_RevolvingGrowsBalance() {
	ctx := context.Background()
	suite.seedRepo([]domain.CreditProduct{suite.revolvingCard()})

	_, err := suite.service.ApplyPayment(ctx, "card-1", decimal.NewFromInt(200))
	assert.NoError(suite.T(), err)

	product, err := suite.service.AddCharge(ctx, "card-1", decimal.NewFromInt(50))
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), product.RemainingBalance.Equal(decimal.NewFromInt(850)))
	assert.True(suite.T(), product.TotalPaid.Equal(decimal.NewFromInt(150)),
		"a charge erodes recorded payoff progress")
	assert.Equal(suite.T(), domain.CreditActive, product.Status)
}

func (suite *CreditServiceTestSuite) TestAddCharge_RejectedOnFixedLoan() {
	loan := suite.revolvingCard()
	loan.ProductID = "loan-1"
	loan.CreditType = domain.FixedLoan
	suite.seedRepo([]domain.CreditProduct{loan})

	_, err := suite.service.AddCharge(context.Background(), "loan-1", decimal.NewFromInt(50))
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidOperation)

	// The product must be untouched after the rejection.
	product, _ := suite.service.GetCreditProductByID(context.Background(), "loan-1")
	assert.True(suite.T(), product.RemainingBalance.Equal(decimal.NewFromInt(1000)))
}

func (suite *CreditServiceTestSuite) TestAddCharge_ReopensPaidOffCard() {
	card := suite.revolvingCard()
	card.RemainingBalance = decimal.Zero
	card.AccruedInterest = decimal.Zero
	card.TotalPaid = decimal.NewFromInt(1000)
	card.Status = domain.CreditPaidOff
	suite.seedRepo([]domain.CreditProduct{card})

	product, err := suite.service.AddCharge(context.Background(), "card-1", decimal.NewFromInt(75))
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), product.RemainingBalance.Equal(decimal.NewFromInt(75)))
	assert.Equal(suite.T(), domain.CreditActive, product.Status,
		"a new charge reactivates a paid-off card")
}

func (suite *CreditServiceTestSuite) TestAddCharge_AfterPayoffDoesNotBillDormantDays() {
	ctx := context.Background()
	card := suite.revolvingCard()
	card.RemainingBalance = decimal.Zero
	card.AccruedInterest = decimal.Zero
	card.TotalPaid = decimal.NewFromInt(1000)
	card.Status = domain.CreditPaidOff
	// Paid off two months ago; the watermark has sat there since.
	card.LastInterestCalcAt = suite.now.AddDate(0, 0, -60)

	var saved []domain.CreditProduct
	suite.mockRepo.On("LoadCreditProducts", mock.Anything).Return([]domain.CreditProduct{card}, nil)
	suite.mockRepo.On("SaveCreditProducts", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).([]domain.CreditProduct)
		}).Return(nil)

	product, err := suite.service.AddCharge(ctx, "card-1", decimal.NewFromInt(75))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.now, product.LastInterestCalcAt,
		"the charge restarts the accrual period")

	// One day later a sweep over the persisted state bills exactly one day on
	// the new balance, not the dormant two months.
	suite.now = suite.now.Add(24 * time.Hour)
	sweptRepo := new(MockCreditProductRepository)
	sweptRepo.On("LoadCreditProducts", mock.Anything).Return(saved, nil)
	sweptRepo.On("SaveCreditProducts", mock.Anything, mock.Anything).Return(nil)
	sweptService := services.NewCreditService(sweptRepo,
		services.WithCreditClock(func() time.Time { return suite.now }),
	)

	assert.NoError(suite.T(), sweptService.Hydrate(ctx))
	product, err = sweptService.GetCreditProductByID(ctx, "card-1")
	assert.NoError(suite.T(), err)
	// 75 * (18.5/100/365) * 1 = 0.0380..., rounded to cents.
	assert.True(suite.T(), product.AccruedInterest.Equal(decimal.NewFromFloat(0.04)),
		"got %s", product.AccruedInterest)
}

func (suite *CreditServiceTestSuite) TestUpdateCreditProduct_APRRederivesDailyRate() {
	suite.seedRepo([]domain.CreditProduct{suite.revolvingCard()})

	newAPR := decimal.NewFromFloat(21.9)
	product, err := suite.service.UpdateCreditProduct(context.Background(), "card-1",
		dto.UpdateCreditProductRequest{APR: &newAPR})

	assert.NoError(suite.T(), err)
	wantRate := newAPR.Div(decimal.NewFromInt(36500))
	assert.True(suite.T(), product.DailyInterestRate.Equal(wantRate))
}

func (suite *CreditServiceTestSuite) TestUpdateCreditProduct_NegativeAPRRejected() {
	suite.seedRepo([]domain.CreditProduct{suite.revolvingCard()})

	badAPR := decimal.NewFromInt(-5)
	name := "Renamed"
	_, err := suite.service.UpdateCreditProduct(context.Background(), "card-1",
		dto.UpdateCreditProductRequest{Name: &name, APR: &badAPR})
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	// No field of the patch may have been applied.
	product, _ := suite.service.GetCreditProductByID(context.Background(), "card-1")
	assert.Equal(suite.T(), "Visa", product.Name)
	assert.True(suite.T(), product.APR.Equal(decimal.NewFromFloat(18.5)))
}

func (suite *CreditServiceTestSuite) TestDeleteCreditProduct() {
	suite.seedRepo([]domain.CreditProduct{suite.revolvingCard()})

	assert.NoError(suite.T(), suite.service.DeleteCreditProduct(context.Background(), "card-1"))

	_, err := suite.service.GetCreditProductByID(context.Background(), "card-1")
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)

	assert.Error(suite.T(), suite.service.DeleteCreditProduct(context.Background(), "card-1"))
}

func (suite *CreditServiceTestSuite) TestListActiveCreditProducts() {
	card := suite.revolvingCard()
	paid := suite.revolvingCard()
	paid.ProductID = "card-2"
	paid.RemainingBalance = decimal.Zero
	paid.AccruedInterest = decimal.Zero
	paid.Status = domain.CreditPaidOff
	suite.seedRepo([]domain.CreditProduct{card, paid})

	active, err := suite.service.ListActiveCreditProducts(context.Background())
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), active, 1)
	assert.Equal(suite.T(), "card-1", active[0].ProductID)

	all, err := suite.service.ListCreditProducts(context.Background())
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 2)
}

func (suite *CreditServiceTestSuite) TestHydrate_SkipsZeroAPRAndPaidOff() {
	zeroAPR := suite.revolvingCard()
	zeroAPR.ProductID = "free-1"
	zeroAPR.APR = decimal.Zero
	zeroAPR.DailyInterestRate = decimal.Zero

	paid := suite.revolvingCard()
	paid.ProductID = "card-2"
	paid.RemainingBalance = decimal.Zero
	paid.Status = domain.CreditPaidOff

	suite.seedRepo([]domain.CreditProduct{zeroAPR, paid})
	suite.now = suite.now.Add(90 * 24 * time.Hour)

	assert.NoError(suite.T(), suite.service.Hydrate(context.Background()))

	freeProduct, _ := suite.service.GetCreditProductByID(context.Background(), "free-1")
	assert.True(suite.T(), freeProduct.AccruedInterest.IsZero())
	paidProduct, _ := suite.service.GetCreditProductByID(context.Background(), "card-2")
	assert.True(suite.T(), paidProduct.AccruedInterest.IsZero())
}

func (suite *CreditServiceTestSuite) TestPersistFailure_KeepsStateAndRetries() {
	ctx := context.Background()
	saveErr := errors.New("disk full")
	suite.mockRepo.On("LoadCreditProducts", mock.Anything).Return([]domain.CreditProduct{suite.revolvingCard()}, nil)
	suite.mockRepo.On("SaveCreditProducts", mock.Anything, mock.Anything).Return(saveErr).Once()
	suite.mockRepo.On("SaveCreditProducts", mock.Anything, mock.Anything).Return(nil)

	product, err := suite.service.ApplyPayment(ctx, "card-1", decimal.NewFromInt(200))

	var perr *apperrors.PersistenceError
	assert.ErrorAs(suite.T(), err, &perr)
	assert.ErrorIs(suite.T(), err, apperrors.ErrPersistence)
	assert.True(suite.T(), product.RemainingBalance.Equal(decimal.NewFromInt(800)),
		"in-memory state keeps the applied payment")

	// The attached retry re-attempts only the write and now succeeds.
	assert.NoError(suite.T(), perr.Retry(ctx))
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveCreditProducts", 2)
}

func TestCreditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CreditServiceTestSuite))
}
