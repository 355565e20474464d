package services

import (
	"context"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
	"github.com/pocketfin/pocket_finance_app/internal/dto"
	"github.com/shopspring/decimal"
)

// SavingsGoalSvcFacade exposes savings goal management.
type SavingsGoalSvcFacade interface {
	CreateSavingsGoal(ctx context.Context, req dto.CreateSavingsGoalRequest) (*domain.SavingsGoal, error)
	GetSavingsGoalByID(ctx context.Context, goalID string) (*domain.SavingsGoal, error)
	ListSavingsGoals(ctx context.Context) ([]domain.SavingsGoal, error)
	UpdateSavingsGoal(ctx context.Context, goalID string, req dto.UpdateSavingsGoalRequest) (*domain.SavingsGoal, error)
	DeleteSavingsGoal(ctx context.Context, goalID string) error
	// Contribute adds amount toward the goal and logs a savings transaction.
	Contribute(ctx context.Context, goalID string, amount decimal.Decimal) (*domain.SavingsGoal, error)
}
