package dto

import (
	"time"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCreditProductRequest defines the data needed to register a new credit product.
type CreateCreditProductRequest struct {
	Name                  string            `json:"name" binding:"required"`
	CreditType            domain.CreditType `json:"creditType" binding:"required,oneof=REVOLVING FIXED_LOAN INSTALLMENT"`
	Principal             decimal.Decimal   `json:"principal" binding:"required"`
	APR                   decimal.Decimal   `json:"apr"`
	StartDate             *time.Time        `json:"startDate"` // defaults to now
	LoanTermMonths        *int              `json:"loanTermMonths" binding:"omitempty,min=1"`
	MonthlyMinimumPayment *decimal.Decimal  `json:"monthlyMinimumPayment"`
	DueDate               *int              `json:"dueDate" binding:"omitempty,dayofmonth"`
	Note                  string            `json:"note"`
}

// UpdateCreditProductRequest is a field-level patch. Pointers distinguish
// "not provided" from zero values. Principal is immutable and has no field here.
type UpdateCreditProductRequest struct {
	Name                  *string          `json:"name"`
	APR                   *decimal.Decimal `json:"apr"`
	LoanTermMonths        *int             `json:"loanTermMonths" binding:"omitempty,min=1"`
	MonthlyMinimumPayment *decimal.Decimal `json:"monthlyMinimumPayment"`
	DueDate               *int             `json:"dueDate" binding:"omitempty,dayofmonth"`
	Note                  *string          `json:"note"`
}

// PaymentRequest carries the amount of an incoming payment.
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ChargeRequest carries the amount of a new charge on a revolving product.
type ChargeRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CreditProductResponse mirrors domain.CreditProduct for API callers.
type CreditProductResponse struct {
	ProductID             string              `json:"productID"`
	Name                  string              `json:"name"`
	CreditType            domain.CreditType   `json:"creditType"`
	Principal             decimal.Decimal     `json:"principal"`
	RemainingBalance      decimal.Decimal     `json:"remainingBalance"`
	APR                   decimal.Decimal     `json:"apr"`
	DailyInterestRate     decimal.Decimal     `json:"dailyInterestRate"`
	AccruedInterest       decimal.Decimal     `json:"accruedInterest"`
	TotalPaid             decimal.Decimal     `json:"totalPaid"`
	Status                domain.CreditStatus `json:"status"`
	StartDate             time.Time           `json:"startDate"`
	LastInterestCalcAt    time.Time           `json:"lastInterestCalculationDate"`
	LoanTermMonths        *int                `json:"loanTermMonths,omitempty"`
	MonthlyMinimumPayment *decimal.Decimal    `json:"monthlyMinimumPayment,omitempty"`
	DueDate               *int                `json:"dueDate,omitempty"`
	Note                  string              `json:"note,omitempty"`
	CreatedAt             time.Time           `json:"createdAt"`
	UpdatedAt             time.Time           `json:"updatedAt"`
}

// ToCreditProductResponse converts a domain.CreditProduct to its response DTO.
func ToCreditProductResponse(p *domain.CreditProduct) CreditProductResponse {
	return CreditProductResponse{
		ProductID:             p.ProductID,
		Name:                  p.Name,
		CreditType:            p.CreditType,
		Principal:             p.Principal,
		RemainingBalance:      p.RemainingBalance,
		APR:                   p.APR,
		DailyInterestRate:     p.DailyInterestRate,
		AccruedInterest:       p.AccruedInterest,
		TotalPaid:             p.TotalPaid,
		Status:                p.Status,
		StartDate:             p.StartDate,
		LastInterestCalcAt:    p.LastInterestCalcAt,
		LoanTermMonths:        p.LoanTermMonths,
		MonthlyMinimumPayment: p.MonthlyMinimumPayment,
		DueDate:               p.DueDate,
		Note:                  p.Note,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

// ToListCreditProductResponse converts a slice of products to response DTOs.
func ToListCreditProductResponse(products []domain.CreditProduct) []CreditProductResponse {
	res := make([]CreditProductResponse, len(products))
	for i := range products {
		res[i] = ToCreditProductResponse(&products[i])
	}
	return res
}

// ListCreditProductsResponse wraps the product list.
type ListCreditProductsResponse struct {
	Products []CreditProductResponse `json:"products"`
}
