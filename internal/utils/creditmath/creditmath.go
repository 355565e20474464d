// Package creditmath holds the day-granularity interest arithmetic shared by
// the credit product service and its accrual sweep.
package creditmath

import (
	"time"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const hoursPerDay = 24

// DaysBetween returns the number of whole days elapsed from start to end.
// The result is floored and clamped at zero: end before start counts as zero
// elapsed time, never negative. Clock skew or out-of-order calls must not be
// able to produce negative accrual. A zero-value timestamp on either side is
// treated as missing and also yields zero; this feeds financial math that must
// never fail.
func DaysBetween(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	elapsed := end.Sub(start)
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed.Hours() / hoursPerDay)
}

// InterestForPeriod computes simple (non-compounding) interest owed by the
// product for the interval [from, to], using the balance at the start of the
// period: balance * dailyRate * days, rounded to cents. Rounding happens at
// each computation rather than carrying full precision; callers depend on
// cent-exact figures.
func InterestForPeriod(p domain.CreditProduct, from, to time.Time) decimal.Decimal {
	if p.APR.IsZero() || p.RemainingBalance.IsZero() {
		return decimal.Zero
	}
	days := DaysBetween(from, to)
	if days == 0 {
		return decimal.Zero
	}
	return p.RemainingBalance.
		Mul(p.DailyInterestRate).
		Mul(decimal.NewFromInt(int64(days))).
		Round(2)
}
