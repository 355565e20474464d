package repositories

import (
	"context"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
)

// CreditProductRepository is the persistence boundary of the credit product
// engine. The collection is the unit of persistence: every mutation mirrors
// the full in-memory list to storage, matching the local-storage model of the
// mobile client this backend serves.
type CreditProductRepository interface {
	// LoadCreditProducts returns the stored collection, or an empty slice
	// when nothing has been stored yet.
	LoadCreditProducts(ctx context.Context) ([]domain.CreditProduct, error)
	// SaveCreditProducts replaces the stored collection.
	SaveCreditProducts(ctx context.Context, products []domain.CreditProduct) error
}
