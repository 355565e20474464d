package dto

import (
	"time"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to log a transaction.
type CreateTransactionRequest struct {
	Kind       domain.TransactionKind `json:"kind" binding:"required,oneof=INCOME EXPENSE SAVINGS"`
	Category   string                 `json:"category" binding:"required"`
	Amount     decimal.Decimal        `json:"amount" binding:"required"`
	Note       string                 `json:"note"`
	OccurredAt *time.Time             `json:"occurredAt"` // defaults to now
}

// UpdateTransactionRequest is a field-level patch for an existing entry.
type UpdateTransactionRequest struct {
	Category   *string          `json:"category"`
	Amount     *decimal.Decimal `json:"amount"`
	Note       *string          `json:"note"`
	OccurredAt *time.Time       `json:"occurredAt"`
}

// ListTransactionsParams filters the transaction list.
type ListTransactionsParams struct {
	Year  int    `form:"year"`
	Month int    `form:"month" binding:"omitempty,min=1,max=12"`
	Kind  string `form:"kind" binding:"omitempty,oneof=INCOME EXPENSE SAVINGS"`
}

// TransactionResponse mirrors domain.Transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	Kind          domain.TransactionKind `json:"kind"`
	Category      string                 `json:"category"`
	Amount        decimal.Decimal        `json:"amount"`
	Note          string                 `json:"note,omitempty"`
	OccurredAt    time.Time              `json:"occurredAt"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Kind:          t.Kind,
		Category:      t.Category,
		Amount:        t.Amount,
		Note:          t.Note,
		OccurredAt:    t.OccurredAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToListTransactionResponse converts a slice of transactions to response DTOs.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsResponse wraps the transaction list.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
