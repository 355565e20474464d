package repositories

import (
	"context"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
)

// SavingsGoalRepository persists the full savings goal collection.
type SavingsGoalRepository interface {
	LoadSavingsGoals(ctx context.Context) ([]domain.SavingsGoal, error)
	SaveSavingsGoals(ctx context.Context, goals []domain.SavingsGoal) error
}
