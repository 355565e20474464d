package services

import (
	"context"
	"time"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
	"github.com/pocketfin/pocket_finance_app/internal/dto"
)

// TransactionSvcFacade exposes income/expense/savings bookkeeping.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
	MonthlySummary(ctx context.Context, year int, month time.Month) (*domain.MonthlySummary, error)
}
