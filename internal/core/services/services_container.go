package services

import (
	portsrepo "github.com/pocketfin/pocket_finance_app/internal/core/ports/repositories"
	portssvc "github.com/pocketfin/pocket_finance_app/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_app/internal/platform/config"
	"github.com/pocketfin/pocket_finance_app/internal/utils"
)

// NewServiceContainer creates a new service container with properly wired
// dependencies. Gamification comes first since transaction logging feeds it;
// budgets and goals sit on top of transactions.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, analytics *utils.PosthogClientWrapper) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Gamification = NewGamificationService(repos.GamificationRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, WithGamification(container.Gamification))
	container.Budget = NewBudgetService(repos.BudgetRepo, container.Transaction)
	container.SavingsGoal = NewSavingsGoalService(repos.SavingsGoalRepo, container.Transaction)
	container.Credit = NewCreditService(repos.CreditProductRepo, WithCreditAnalytics(analytics))
	container.Auth = NewAuthService(repos.SettingsRepo, cfg)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.CreditSvcFacade       = (*creditService)(nil)
	_ portssvc.TransactionSvcFacade  = (*transactionService)(nil)
	_ portssvc.BudgetSvcFacade       = (*budgetService)(nil)
	_ portssvc.SavingsGoalSvcFacade  = (*goalService)(nil)
	_ portssvc.GamificationSvcFacade = (*gamificationService)(nil)
	_ portssvc.AuthSvcFacade         = (*authService)(nil)
)
