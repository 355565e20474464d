package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditType classifies a credit product. Only revolving products may have
// their balance increased by charges.
type CreditType string

const (
	Revolving   CreditType = "REVOLVING"
	FixedLoan   CreditType = "FIXED_LOAN"
	Installment CreditType = "INSTALLMENT"
)

// AllowsCharges reports whether balance-increasing charges are permitted.
func (t CreditType) AllowsCharges() bool {
	return t == Revolving
}

// CreditStatus is the lifecycle state of a credit product.
type CreditStatus string

const (
	CreditActive  CreditStatus = "ACTIVE"
	CreditPaidOff CreditStatus = "PAID_OFF"
)

// CreditProduct represents one revolving or installment debt instrument.
//
// Principal is set once at creation and never mutated; it is the baseline for
// TotalPaid. DailyInterestRate is always derived from APR (apr/100/365) and is
// recomputed whenever APR changes. LastInterestCalcAt is the accrual watermark:
// interest is computed only for the whole days elapsed since it, after which it
// advances to "now".
type CreditProduct struct {
	ProductID          string          `json:"productID"`
	Name               string          `json:"name"`
	CreditType         CreditType      `json:"creditType"`
	Principal          decimal.Decimal `json:"principal"`
	RemainingBalance   decimal.Decimal `json:"remainingBalance"`
	APR                decimal.Decimal `json:"apr"` // percentage, e.g. 18.5
	DailyInterestRate  decimal.Decimal `json:"dailyInterestRate"`
	AccruedInterest    decimal.Decimal `json:"accruedInterest"`
	TotalPaid          decimal.Decimal `json:"totalPaid"`
	Status             CreditStatus    `json:"status"`
	StartDate          time.Time       `json:"startDate"`
	LastInterestCalcAt time.Time       `json:"lastInterestCalculationDate"`

	// Descriptive fields with no effect on the accrual math. LoanTermMonths
	// only makes sense for fixed/installment products, DueDate for revolving.
	LoanTermMonths        *int             `json:"loanTermMonths,omitempty"`
	MonthlyMinimumPayment *decimal.Decimal `json:"monthlyMinimumPayment,omitempty"`
	DueDate               *int             `json:"dueDate,omitempty"` // day of month
	Note                  string           `json:"note,omitempty"`

	AuditFields
}

// DeriveDailyRate computes apr/100/365 for the given annual percentage rate.
func DeriveDailyRate(apr decimal.Decimal) decimal.Decimal {
	return apr.Div(decimal.NewFromInt(36500))
}

// RecomputeTotalPaid refreshes the cached payoff figure:
// max(0, principal - remainingBalance). Never stored independently of this
// formula, so a charge that lifts the balance above principal pushes it to 0.
func (p *CreditProduct) RecomputeTotalPaid() {
	paid := p.Principal.Sub(p.RemainingBalance)
	if paid.IsNegative() {
		paid = decimal.Zero
	}
	p.TotalPaid = paid
}

// RefreshStatus applies the paid-off transition rules: paid off when both the
// balance and the accrued interest are exactly zero, active otherwise.
func (p *CreditProduct) RefreshStatus() {
	if p.RemainingBalance.IsZero() && p.AccruedInterest.IsZero() {
		p.Status = CreditPaidOff
	} else {
		p.Status = CreditActive
	}
}
