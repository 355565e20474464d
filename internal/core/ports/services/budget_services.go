package services

import (
	"context"
	"time"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
	"github.com/pocketfin/pocket_finance_app/internal/dto"
)

// BudgetSvcFacade exposes per-category monthly budget management.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest) (*domain.Budget, error)
	ListBudgets(ctx context.Context) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, budgetID string) error
	// BudgetStatuses computes spent/remaining for every budget in the month.
	BudgetStatuses(ctx context.Context, year int, month time.Month) ([]domain.BudgetStatus, error)
}
