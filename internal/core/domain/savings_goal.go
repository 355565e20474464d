package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalStatus is the lifecycle state of a savings goal.
type GoalStatus string

const (
	GoalActive   GoalStatus = "ACTIVE"
	GoalAchieved GoalStatus = "ACHIEVED"
)

// SavingsGoal tracks progress toward a target amount.
type SavingsGoal struct {
	GoalID       string          `json:"goalID"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	TargetDate   *time.Time      `json:"targetDate,omitempty"`
	Status       GoalStatus      `json:"status"`
	AuditFields
}

// RefreshStatus flips the goal to achieved once the saved amount reaches the
// target. Achieved goals stay achieved even if the target is later raised by
// an edit; the edit path re-runs this.
func (g *SavingsGoal) RefreshStatus() {
	if g.SavedAmount.GreaterThanOrEqual(g.TargetAmount) {
		g.Status = GoalAchieved
	} else {
		g.Status = GoalActive
	}
}
