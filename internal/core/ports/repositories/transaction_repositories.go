package repositories

import (
	"context"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
)

// TransactionRepository persists the full transaction collection.
type TransactionRepository interface {
	LoadTransactions(ctx context.Context) ([]domain.Transaction, error)
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error
}
