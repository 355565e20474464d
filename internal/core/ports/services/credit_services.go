package services

import (
	"context"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
	"github.com/pocketfin/pocket_finance_app/internal/dto"
	"github.com/shopspring/decimal"
)

// CreditSvcFacade is the full surface of the credit product engine exposed to
// handlers. All mutating operations mirror the whole collection to storage.
type CreditSvcFacade interface {
	// Hydrate loads the collection from storage and runs the accrual sweep.
	// It doubles as the retry entry point after a load failure.
	Hydrate(ctx context.Context) error

	CreateCreditProduct(ctx context.Context, req dto.CreateCreditProductRequest) (*domain.CreditProduct, error)
	UpdateCreditProduct(ctx context.Context, productID string, req dto.UpdateCreditProductRequest) (*domain.CreditProduct, error)
	DeleteCreditProduct(ctx context.Context, productID string) error
	GetCreditProductByID(ctx context.Context, productID string) (*domain.CreditProduct, error)
	ListCreditProducts(ctx context.Context) ([]domain.CreditProduct, error)
	ListActiveCreditProducts(ctx context.Context) ([]domain.CreditProduct, error)

	// ApplyPayment allocates amount interest-first, then principal.
	ApplyPayment(ctx context.Context, productID string, amount decimal.Decimal) (*domain.CreditProduct, error)
	// AddCharge increases the balance of a revolving product.
	AddCharge(ctx context.Context, productID string, amount decimal.Decimal) (*domain.CreditProduct, error)
}
