package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pocketfin/pocket_finance_app/internal/apperrors"
	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
	portsrepo "github.com/pocketfin/pocket_finance_app/internal/core/ports/repositories"
	portssvc "github.com/pocketfin/pocket_finance_app/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_app/internal/dto"
	"github.com/pocketfin/pocket_finance_app/internal/middleware"
	"github.com/pocketfin/pocket_finance_app/internal/utils"
	"github.com/pocketfin/pocket_finance_app/internal/utils/creditmath"
	"github.com/shopspring/decimal"
)

// analyticsDistinctID identifies the single device in analytics breadcrumbs.
const analyticsDistinctID = "local-device"

// creditService owns the credit product collection. It is the single source
// of truth in memory; every mutation funnels through it and mirrors the full
// collection to storage. A mutex serializes mutators because gin serves
// requests concurrently.
type creditService struct {
	store     portsrepo.CreditProductRepository
	analytics *utils.PosthogClientWrapper
	now       func() time.Time

	mu       sync.Mutex
	products []domain.CreditProduct
	hydrated bool
}

// CreditServiceOption configures optional dependencies of the credit service.
type CreditServiceOption func(*creditService)

// WithCreditAnalytics attaches the analytics breadcrumb client.
func WithCreditAnalytics(client *utils.PosthogClientWrapper) CreditServiceOption {
	return func(s *creditService) {
		s.analytics = client
	}
}

// WithCreditClock overrides the clock; used by tests that need deterministic
// day-delta math.
func WithCreditClock(now func() time.Time) CreditServiceOption {
	return func(s *creditService) {
		s.now = now
	}
}

// NewCreditService creates the credit product engine.
func NewCreditService(store portsrepo.CreditProductRepository, opts ...CreditServiceOption) portssvc.CreditSvcFacade {
	s := &creditService{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads the collection from storage and brings every product's
// accrued interest current. It is idempotent at day granularity and doubles
// as the retry entry point after a failed load.
func (s *creditService) Hydrate(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.store.LoadCreditProducts(ctx)
	if err != nil {
		logger.Error("Failed to load credit products", slog.String("error", err.Error()))
		return apperrors.NewPersistenceError("load credit products", err, s.Hydrate)
	}
	s.products = products
	s.hydrated = true

	changed := false
	now := s.now()
	for i := range s.products {
		if s.accrueToNow(&s.products[i], now) {
			changed = true
		}
	}

	if changed {
		if err := s.persistLocked(ctx, "accrual sweep"); err != nil {
			return err
		}
	}
	logger.Info("Credit products hydrated", slog.Int("count", len(s.products)), slog.Bool("accrual_applied", changed))
	return nil
}

// ensureHydratedLocked lazily loads the collection for callers that run
// before the boot-time hydration finished. Requires s.mu held.
func (s *creditService) ensureHydratedLocked(ctx context.Context) error {
	if s.hydrated {
		return nil
	}
	products, err := s.store.LoadCreditProducts(ctx)
	if err != nil {
		return apperrors.NewPersistenceError("load credit products", err, s.Hydrate)
	}
	s.products = products
	s.hydrated = true
	return nil
}

func (s *creditService) CreateCreditProduct(ctx context.Context, req dto.CreateCreditProductRequest) (*domain.CreditProduct, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureHydratedLocked(ctx); err != nil {
		return nil, err
	}

	if !req.Principal.IsPositive() {
		return nil, fmt.Errorf("%w: principal must be positive", apperrors.ErrValidation)
	}
	if req.APR.IsNegative() {
		return nil, fmt.Errorf("%w: apr must not be negative", apperrors.ErrValidation)
	}
	if req.CreditType == domain.Revolving && req.LoanTermMonths != nil {
		return nil, fmt.Errorf("%w: loanTermMonths does not apply to revolving products", apperrors.ErrValidation)
	}

	now := s.now()
	startDate := now
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	product := domain.CreditProduct{
		ProductID:             uuid.NewString(),
		Name:                  req.Name,
		CreditType:            req.CreditType,
		Principal:             req.Principal,
		RemainingBalance:      req.Principal,
		APR:                   req.APR,
		DailyInterestRate:     domain.DeriveDailyRate(req.APR),
		AccruedInterest:       decimal.Zero,
		TotalPaid:             decimal.Zero,
		Status:                domain.CreditActive,
		StartDate:             startDate,
		LastInterestCalcAt:    now,
		LoanTermMonths:        req.LoanTermMonths,
		MonthlyMinimumPayment: req.MonthlyMinimumPayment,
		DueDate:               req.DueDate,
		Note:                  req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	s.products = append(s.products, product)
	if err := s.persistLocked(ctx, "create credit product"); err != nil {
		return &product, err
	}

	logger.Info("Credit product created", slog.String("product_id", product.ProductID), slog.String("credit_type", string(product.CreditType)))
	return &product, nil
}

func (s *creditService) UpdateCreditProduct(ctx context.Context, productID string, req dto.UpdateCreditProductRequest) (*domain.CreditProduct, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureHydratedLocked(ctx); err != nil {
		return nil, err
	}

	if req.APR != nil && req.APR.IsNegative() {
		return nil, fmt.Errorf("%w: apr must not be negative", apperrors.ErrValidation)
	}

	p := s.findLocked(productID)
	if p == nil {
		return nil, fmt.Errorf("%w: credit product %s", apperrors.ErrNotFound, productID)
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.APR != nil {
		p.APR = *req.APR
		// Keep the derived rate consistent with the new APR.
		p.DailyInterestRate = domain.DeriveDailyRate(p.APR)
	}
	if req.LoanTermMonths != nil {
		p.LoanTermMonths = req.LoanTermMonths
	}
	if req.MonthlyMinimumPayment != nil {
		p.MonthlyMinimumPayment = req.MonthlyMinimumPayment
	}
	if req.DueDate != nil {
		p.DueDate = req.DueDate
	}
	if req.Note != nil {
		p.Note = *req.Note
	}
	p.UpdatedAt = s.now()

	result := *p
	if err := s.persistLocked(ctx, "update credit product"); err != nil {
		return &result, err
	}

	logger.Info("Credit product updated", slog.String("product_id", productID))
	return &result, nil
}

func (s *creditService) DeleteCreditProduct(ctx context.Context, productID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureHydratedLocked(ctx); err != nil {
		return err
	}

	idx := -1
	for i := range s.products {
		if s.products[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: credit product %s", apperrors.ErrNotFound, productID)
	}

	s.products = append(s.products[:idx], s.products[idx+1:]...)
	if err := s.persistLocked(ctx, "delete credit product"); err != nil {
		return err
	}

	logger.Info("Credit product deleted", slog.String("product_id", productID))
	return nil
}

func (s *creditService) GetCreditProductByID(ctx context.Context, productID string) (*domain.CreditProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureHydratedLocked(ctx); err != nil {
		return nil, err
	}

	p := s.findLocked(productID)
	if p == nil {
		return nil, fmt.Errorf("%w: credit product %s", apperrors.ErrNotFound, productID)
	}
	result := *p
	return &result, nil
}

func (s *creditService) ListCreditProducts(ctx context.Context) ([]domain.CreditProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureHydratedLocked(ctx); err != nil {
		return nil, err
	}

	result := make([]domain.CreditProduct, len(s.products))
	copy(result, s.products)
	return result, nil
}

func (s *creditService) ListActiveCreditProducts(ctx context.Context) ([]domain.CreditProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureHydratedLocked(ctx); err != nil {
		return nil, err
	}

	result := make([]domain.CreditProduct, 0, len(s.products))
	for _, p := range s.products {
		if p.Status == domain.CreditActive {
			result = append(result, p)
		}
	}
	return result, nil
}

// ApplyPayment allocates amount against accrued interest first, then
// principal. Overpayment beyond the full balance is absorbed; the balance
// never goes negative. The waterfall is identical for every credit type.
func (s *creditService) ApplyPayment(ctx context.Context, productID string, amount decimal.Decimal) (*domain.CreditProduct, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureHydratedLocked(ctx); err != nil {
		return nil, err
	}

	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	p := s.findLocked(productID)
	if p == nil {
		return nil, fmt.Errorf("%w: credit product %s", apperrors.ErrNotFound, productID)
	}

	now := s.now()
	s.accrueToNow(p, now)
	// A balance mutation restarts the accrual period, even when the accrual
	// itself short-circuited.
	p.LastInterestCalcAt = now

	if amount.GreaterThanOrEqual(p.AccruedInterest) {
		remainder := amount.Sub(p.AccruedInterest)
		p.AccruedInterest = decimal.Zero
		p.RemainingBalance = p.RemainingBalance.Sub(remainder)
		if p.RemainingBalance.IsNegative() {
			p.RemainingBalance = decimal.Zero
		}
	} else {
		p.AccruedInterest = p.AccruedInterest.Sub(amount)
	}

	p.RecomputeTotalPaid()
	p.RefreshStatus()
	p.UpdatedAt = now

	result := *p
	if err := s.persistLocked(ctx, "apply payment"); err != nil {
		return &result, err
	}

	s.analytics.Enqueue(analyticsDistinctID, "credit_payment_applied", map[string]any{
		"product_id":        productID,
		"amount":            amount.String(),
		"remaining_balance": result.RemainingBalance.String(),
	})
	logger.Info("Payment applied",
		slog.String("product_id", productID),
		slog.String("amount", amount.String()),
		slog.String("remaining_balance", result.RemainingBalance.String()),
	)
	return &result, nil
}

// AddCharge increases the outstanding balance of a revolving product and
// recomputes the derived totals. A charge can erode prior payoff progress;
// that is correct, more principal is outstanding.
func (s *creditService) AddCharge(ctx context.Context, productID string, amount decimal.Decimal) (*domain.CreditProduct, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureHydratedLocked(ctx); err != nil {
		return nil, err
	}

	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: charge amount must be positive", apperrors.ErrValidation)
	}
	p := s.findLocked(productID)
	if p == nil {
		return nil, fmt.Errorf("%w: credit product %s", apperrors.ErrNotFound, productID)
	}
	if !p.CreditType.AllowsCharges() {
		return nil, fmt.Errorf("%w: charges are only permitted on revolving products", apperrors.ErrInvalidOperation)
	}

	now := s.now()
	s.accrueToNow(p, now)
	// A reactivated card must not be billed for its dormant days: the charge
	// restarts the accrual period even though the zero-balance accrual was a
	// no-op.
	p.LastInterestCalcAt = now

	p.RemainingBalance = p.RemainingBalance.Add(amount)
	p.RecomputeTotalPaid()
	p.RefreshStatus()
	p.UpdatedAt = now

	result := *p
	if err := s.persistLocked(ctx, "add charge"); err != nil {
		return &result, err
	}

	s.analytics.Enqueue(analyticsDistinctID, "credit_charge_added", map[string]any{
		"product_id":  productID,
		"amount":      amount.String(),
		"new_balance": result.RemainingBalance.String(),
	})
	logger.Info("Charge added",
		slog.String("product_id", productID),
		slog.String("amount", amount.String()),
		slog.String("new_balance", result.RemainingBalance.String()),
	)
	return &result, nil
}

// accrueToNow folds the interest owed since the product's watermark into
// AccruedInterest and advances the watermark. Paid-off, zero-balance and
// zero-APR products are skipped entirely, watermark untouched. The watermark
// only advances when at least one whole day elapsed, so repeated calls within
// the same day are no-ops and fractional days keep accruing toward the next
// whole one. Those rules govern the hydration sweep; the payment and charge
// mutators pin the watermark to now themselves after calling this.
// Returns whether the product changed. Requires s.mu held.
func (s *creditService) accrueToNow(p *domain.CreditProduct, now time.Time) bool {
	if p.Status == domain.CreditPaidOff || p.RemainingBalance.IsZero() || p.APR.IsZero() {
		return false
	}

	from := p.LastInterestCalcAt
	if from.IsZero() {
		from = p.UpdatedAt
	}
	if from.IsZero() {
		from = p.StartDate
	}

	if creditmath.DaysBetween(from, now) == 0 {
		return false
	}

	interest := creditmath.InterestForPeriod(*p, from, now)
	p.AccruedInterest = p.AccruedInterest.Add(interest)
	p.LastInterestCalcAt = now
	return true
}

// findLocked returns a pointer into the owned slice. Requires s.mu held.
func (s *creditService) findLocked(productID string) *domain.CreditProduct {
	for i := range s.products {
		if s.products[i].ProductID == productID {
			return &s.products[i]
		}
	}
	return nil
}

// persistLocked mirrors the full collection to storage. On failure the
// in-memory state is kept and the returned error carries a retry that only
// re-attempts the write. Requires s.mu held.
func (s *creditService) persistLocked(ctx context.Context, op string) error {
	snapshot := make([]domain.CreditProduct, len(s.products))
	copy(snapshot, s.products)

	if err := s.store.SaveCreditProducts(ctx, snapshot); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to persist credit products",
			slog.String("op", op), slog.String("error", err.Error()))
		return apperrors.NewPersistenceError(op, err, func(retryCtx context.Context) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.persistLocked(retryCtx, op+" (retry)")
		})
	}
	return nil
}
