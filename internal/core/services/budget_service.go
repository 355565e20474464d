package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pocketfin/pocket_finance_app/internal/apperrors"
	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
	portsrepo "github.com/pocketfin/pocket_finance_app/internal/core/ports/repositories"
	portssvc "github.com/pocketfin/pocket_finance_app/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_app/internal/dto"
	"github.com/pocketfin/pocket_finance_app/internal/middleware"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// budgetService owns the per-category monthly limits. Spent figures are
// always derived from the transaction service, never stored.
type budgetService struct {
	store        portsrepo.BudgetRepository
	transactions portssvc.TransactionSvcFacade
	now          func() time.Time

	mu      sync.Mutex
	budgets []domain.Budget
	loaded  bool
}

// NewBudgetService creates the budget service. The transaction facade feeds
// the spent computation in BudgetStatuses.
func NewBudgetService(store portsrepo.BudgetRepository, transactions portssvc.TransactionSvcFacade) portssvc.BudgetSvcFacade {
	return &budgetService{
		store:        store,
		transactions: transactions,
		now:          time.Now,
	}
}

func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	if !req.MonthlyLimit.IsPositive() {
		return nil, fmt.Errorf("%w: monthly limit must be positive", apperrors.ErrValidation)
	}
	for _, b := range s.budgets {
		if strings.EqualFold(b.Category, req.Category) {
			return nil, fmt.Errorf("%w: a budget for category %q already exists", apperrors.ErrValidation, req.Category)
		}
	}

	now := s.now()
	budget := domain.Budget{
		BudgetID:     uuid.NewString(),
		Category:     req.Category,
		MonthlyLimit: req.MonthlyLimit,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	s.budgets = append(s.budgets, budget)
	if err := s.persistLocked(ctx, "create budget"); err != nil {
		return &budget, err
	}

	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID), slog.String("category", budget.Category))
	return &budget, nil
}

func (s *budgetService) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	result := make([]domain.Budget, len(s.budgets))
	copy(result, s.budgets)
	return result, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	if req.MonthlyLimit != nil && !req.MonthlyLimit.IsPositive() {
		return nil, fmt.Errorf("%w: monthly limit must be positive", apperrors.ErrValidation)
	}

	var budget *domain.Budget
	for i := range s.budgets {
		if s.budgets[i].BudgetID == budgetID {
			budget = &s.budgets[i]
			break
		}
	}
	if budget == nil {
		return nil, fmt.Errorf("%w: budget %s", apperrors.ErrNotFound, budgetID)
	}

	if req.Category != nil {
		budget.Category = *req.Category
	}
	if req.MonthlyLimit != nil {
		budget.MonthlyLimit = *req.MonthlyLimit
	}
	budget.UpdatedAt = s.now()

	result := *budget
	if err := s.persistLocked(ctx, "update budget"); err != nil {
		return &result, err
	}

	logger.Info("Budget updated", slog.String("budget_id", budgetID))
	return &result, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, budgetID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	idx := -1
	for i := range s.budgets {
		if s.budgets[i].BudgetID == budgetID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: budget %s", apperrors.ErrNotFound, budgetID)
	}

	s.budgets = append(s.budgets[:idx], s.budgets[idx+1:]...)
	if err := s.persistLocked(ctx, "delete budget"); err != nil {
		return err
	}

	logger.Info("Budget deleted", slog.String("budget_id", budgetID))
	return nil
}

// BudgetStatuses computes the position of every budget for the given month
// from that month's expense transactions.
func (s *budgetService) BudgetStatuses(ctx context.Context, year int, month time.Month) ([]domain.BudgetStatus, error) {
	summary, err := s.transactions.MonthlySummary(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly spend: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	statuses := make([]domain.BudgetStatus, 0, len(s.budgets))
	for _, b := range s.budgets {
		spent := decimal.Zero
		for category, total := range summary.ExpenseByCategory {
			if strings.EqualFold(category, b.Category) {
				spent = spent.Add(total)
			}
		}

		remaining := b.MonthlyLimit.Sub(spent)
		percent := decimal.Zero
		if b.MonthlyLimit.IsPositive() {
			percent = spent.Div(b.MonthlyLimit).Mul(oneHundred).Round(1)
		}

		statuses = append(statuses, domain.BudgetStatus{
			Budget:      b,
			Spent:       spent,
			Remaining:   remaining,
			PercentUsed: percent,
			OverLimit:   spent.GreaterThan(b.MonthlyLimit),
		})
	}
	return statuses, nil
}

func (s *budgetService) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	budgets, err := s.store.LoadBudgets(ctx)
	if err != nil {
		return apperrors.NewPersistenceError("load budgets", err, func(retryCtx context.Context) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.ensureLoadedLocked(retryCtx)
		})
	}
	s.budgets = budgets
	s.loaded = true
	return nil
}

func (s *budgetService) persistLocked(ctx context.Context, op string) error {
	snapshot := make([]domain.Budget, len(s.budgets))
	copy(snapshot, s.budgets)

	if err := s.store.SaveBudgets(ctx, snapshot); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to persist budgets",
			slog.String("op", op), slog.String("error", err.Error()))
		return apperrors.NewPersistenceError(op, err, func(retryCtx context.Context) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.persistLocked(retryCtx, op+" (retry)")
		})
	}
	return nil
}
