package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes money coming in, going out, or being set aside.
type TransactionKind string

const (
	Income  TransactionKind = "INCOME"
	Expense TransactionKind = "EXPENSE"
	Savings TransactionKind = "SAVINGS"
)

// Transaction is a single logged income/expense/savings entry.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	Kind          TransactionKind `json:"kind"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"` // always positive
	Note          string          `json:"note,omitempty"`
	OccurredAt    time.Time       `json:"occurredAt"`
	AuditFields
}

// MonthlySummary aggregates one calendar month of transactions.
type MonthlySummary struct {
	Year              int                        `json:"year"`
	Month             time.Month                 `json:"month"`
	TotalIncome       decimal.Decimal            `json:"totalIncome"`
	TotalExpense      decimal.Decimal            `json:"totalExpense"`
	TotalSavings      decimal.Decimal            `json:"totalSavings"`
	Net               decimal.Decimal            `json:"net"` // income - expense - savings
	ExpenseByCategory map[string]decimal.Decimal `json:"expenseByCategory"`
}
