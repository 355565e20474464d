package dto

import (
	"time"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a category budget.
type CreateBudgetRequest struct {
	Category     string          `json:"category" binding:"required"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit" binding:"required"`
}

// UpdateBudgetRequest is a field-level patch for an existing budget.
type UpdateBudgetRequest struct {
	Category     *string          `json:"category"`
	MonthlyLimit *decimal.Decimal `json:"monthlyLimit"`
}

// BudgetStatusParams selects the month for a budget status query.
type BudgetStatusParams struct {
	Year  int `form:"year" binding:"required"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// BudgetResponse mirrors domain.Budget.
type BudgetResponse struct {
	BudgetID     string          `json:"budgetID"`
	Category     string          `json:"category"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToBudgetResponse converts a domain.Budget to its response DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:     b.BudgetID,
		Category:     b.Category,
		MonthlyLimit: b.MonthlyLimit,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// BudgetStatusResponse reports one budget's computed position for a month.
type BudgetStatusResponse struct {
	Budget      BudgetResponse  `json:"budget"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed decimal.Decimal `json:"percentUsed"`
	OverLimit   bool            `json:"overLimit"`
}

// ToBudgetStatusResponse converts a domain.BudgetStatus to its response DTO.
func ToBudgetStatusResponse(s *domain.BudgetStatus) BudgetStatusResponse {
	return BudgetStatusResponse{
		Budget:      ToBudgetResponse(&s.Budget),
		Spent:       s.Spent,
		Remaining:   s.Remaining,
		PercentUsed: s.PercentUsed,
		OverLimit:   s.OverLimit,
	}
}
