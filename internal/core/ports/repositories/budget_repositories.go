package repositories

import (
	"context"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
)

// BudgetRepository persists the full budget collection.
type BudgetRepository interface {
	LoadBudgets(ctx context.Context) ([]domain.Budget, error)
	SaveBudgets(ctx context.Context, budgets []domain.Budget) error
}
