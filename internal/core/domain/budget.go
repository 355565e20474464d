package domain

import "github.com/shopspring/decimal"

// Budget is a per-category monthly spending limit.
type Budget struct {
	BudgetID     string          `json:"budgetID"`
	Category     string          `json:"category"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
	AuditFields
}

// BudgetStatus is the computed position of one budget for a given month.
// Spent is derived from expense transactions; it is never stored.
type BudgetStatus struct {
	Budget      Budget          `json:"budget"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"` // may be negative when over limit
	PercentUsed decimal.Decimal `json:"percentUsed"`
	OverLimit   bool            `json:"overLimit"`
}
