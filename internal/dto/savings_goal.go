package dto

import (
	"time"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSavingsGoalRequest defines the data needed to create a savings goal.
type CreateSavingsGoalRequest struct {
	Name         string          `json:"name" binding:"required"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required"`
	TargetDate   *time.Time      `json:"targetDate"`
}

// UpdateSavingsGoalRequest is a field-level patch for a goal.
type UpdateSavingsGoalRequest struct {
	Name         *string          `json:"name"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	TargetDate   *time.Time       `json:"targetDate"`
}

// ContributeRequest carries the amount added toward a goal.
type ContributeRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// SavingsGoalResponse mirrors domain.SavingsGoal.
type SavingsGoalResponse struct {
	GoalID       string            `json:"goalID"`
	Name         string            `json:"name"`
	TargetAmount decimal.Decimal   `json:"targetAmount"`
	SavedAmount  decimal.Decimal   `json:"savedAmount"`
	TargetDate   *time.Time        `json:"targetDate,omitempty"`
	Status       domain.GoalStatus `json:"status"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// ToSavingsGoalResponse converts a domain.SavingsGoal to its response DTO.
func ToSavingsGoalResponse(g *domain.SavingsGoal) SavingsGoalResponse {
	return SavingsGoalResponse{
		GoalID:       g.GoalID,
		Name:         g.Name,
		TargetAmount: g.TargetAmount,
		SavedAmount:  g.SavedAmount,
		TargetDate:   g.TargetDate,
		Status:       g.Status,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

// ToListSavingsGoalResponse converts a slice of goals to response DTOs.
func ToListSavingsGoalResponse(goals []domain.SavingsGoal) []SavingsGoalResponse {
	res := make([]SavingsGoalResponse, len(goals))
	for i := range goals {
		res[i] = ToSavingsGoalResponse(&goals[i])
	}
	return res
}
