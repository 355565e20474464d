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
	"github.com/shopspring/decimal"
)

// savingsCategoryForGoals is the transaction category used when a goal
// contribution is mirrored into the transaction log.
const savingsCategoryForGoals = "Savings Goals"

// goalService owns the savings goal collection.
type goalService struct {
	store        portsrepo.SavingsGoalRepository
	transactions portssvc.TransactionSvcFacade
	now          func() time.Time

	mu     sync.Mutex
	goals  []domain.SavingsGoal
	loaded bool
}

// NewSavingsGoalService creates the savings goal service. Contributions are
// mirrored into the transaction log through the transaction facade.
func NewSavingsGoalService(store portsrepo.SavingsGoalRepository, transactions portssvc.TransactionSvcFacade) portssvc.SavingsGoalSvcFacade {
	return &goalService{
		store:        store,
		transactions: transactions,
		now:          time.Now,
	}
}

func (s *goalService) CreateSavingsGoal(ctx context.Context, req dto.CreateSavingsGoalRequest) (*domain.SavingsGoal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	if !req.TargetAmount.IsPositive() {
		return nil, fmt.Errorf("%w: target amount must be positive", apperrors.ErrValidation)
	}

	now := s.now()
	goal := domain.SavingsGoal{
		GoalID:       uuid.NewString(),
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		SavedAmount:  decimal.Zero,
		TargetDate:   req.TargetDate,
		Status:       domain.GoalActive,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	s.goals = append(s.goals, goal)
	if err := s.persistLocked(ctx, "create savings goal"); err != nil {
		return &goal, err
	}

	logger.Info("Savings goal created", slog.String("goal_id", goal.GoalID), slog.String("name", goal.Name))
	return &goal, nil
}

func (s *goalService) GetSavingsGoalByID(ctx context.Context, goalID string) (*domain.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	g := s.findLocked(goalID)
	if g == nil {
		return nil, fmt.Errorf("%w: savings goal %s", apperrors.ErrNotFound, goalID)
	}
	result := *g
	return &result, nil
}

func (s *goalService) ListSavingsGoals(ctx context.Context) ([]domain.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	result := make([]domain.SavingsGoal, len(s.goals))
	copy(result, s.goals)
	return result, nil
}

func (s *goalService) UpdateSavingsGoal(ctx context.Context, goalID string, req dto.UpdateSavingsGoalRequest) (*domain.SavingsGoal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	if req.TargetAmount != nil && !req.TargetAmount.IsPositive() {
		return nil, fmt.Errorf("%w: target amount must be positive", apperrors.ErrValidation)
	}

	g := s.findLocked(goalID)
	if g == nil {
		return nil, fmt.Errorf("%w: savings goal %s", apperrors.ErrNotFound, goalID)
	}

	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.TargetAmount != nil {
		g.TargetAmount = *req.TargetAmount
		g.RefreshStatus()
	}
	if req.TargetDate != nil {
		g.TargetDate = req.TargetDate
	}
	g.UpdatedAt = s.now()

	result := *g
	if err := s.persistLocked(ctx, "update savings goal"); err != nil {
		return &result, err
	}

	logger.Info("Savings goal updated", slog.String("goal_id", goalID))
	return &result, nil
}

func (s *goalService) DeleteSavingsGoal(ctx context.Context, goalID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	idx := -1
	for i := range s.goals {
		if s.goals[i].GoalID == goalID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: savings goal %s", apperrors.ErrNotFound, goalID)
	}

	s.goals = append(s.goals[:idx], s.goals[idx+1:]...)
	if err := s.persistLocked(ctx, "delete savings goal"); err != nil {
		return err
	}

	logger.Info("Savings goal deleted", slog.String("goal_id", goalID))
	return nil
}

// Contribute adds amount toward the goal, mirrors it into the transaction log
// as a savings entry, and flips the goal to achieved when the target is met.
func (s *goalService) Contribute(ctx context.Context, goalID string, amount decimal.Decimal) (*domain.SavingsGoal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: contribution amount must be positive", apperrors.ErrValidation)
	}

	g := s.findLocked(goalID)
	if g == nil {
		return nil, fmt.Errorf("%w: savings goal %s", apperrors.ErrNotFound, goalID)
	}

	g.SavedAmount = g.SavedAmount.Add(amount)
	g.RefreshStatus()
	g.UpdatedAt = s.now()

	result := *g
	if err := s.persistLocked(ctx, "contribute to savings goal"); err != nil {
		return &result, err
	}

	if s.transactions != nil {
		if _, err := s.transactions.CreateTransaction(ctx, dto.CreateTransactionRequest{
			Kind:     domain.Savings,
			Category: savingsCategoryForGoals,
			Amount:   amount,
			Note:     fmt.Sprintf("Contribution to %s", result.Name),
		}); err != nil {
			// The goal is already updated; a missing mirror entry is
			// recoverable from the goal history.
			logger.Warn("Failed to mirror contribution into transactions", slog.String("error", err.Error()))
		}
	}

	logger.Info("Goal contribution recorded",
		slog.String("goal_id", goalID),
		slog.String("amount", amount.String()),
		slog.String("status", string(result.Status)),
	)
	return &result, nil
}

func (s *goalService) findLocked(goalID string) *domain.SavingsGoal {
	for i := range s.goals {
		if s.goals[i].GoalID == goalID {
			return &s.goals[i]
		}
	}
	return nil
}

func (s *goalService) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	goals, err := s.store.LoadSavingsGoals(ctx)
	if err != nil {
		return apperrors.NewPersistenceError("load savings goals", err, func(retryCtx context.Context) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.ensureLoadedLocked(retryCtx)
		})
	}
	s.goals = goals
	s.loaded = true
	return nil
}

func (s *goalService) persistLocked(ctx context.Context, op string) error {
	snapshot := make([]domain.SavingsGoal, len(s.goals))
	copy(snapshot, s.goals)

	if err := s.store.SaveSavingsGoals(ctx, snapshot); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to persist savings goals",
			slog.String("op", op), slog.String("error", err.Error()))
		return apperrors.NewPersistenceError(op, err, func(retryCtx context.Context) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.persistLocked(retryCtx, op+" (retry)")
		})
	}
	return nil
}
