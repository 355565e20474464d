package repositories

// RepositoryProvider bundles every storage port so the service container can
// be wired from a single value regardless of the configured driver.
type RepositoryProvider struct {
	CreditProductRepo CreditProductRepository
	TransactionRepo   TransactionRepository
	BudgetRepo        BudgetRepository
	SavingsGoalRepo   SavingsGoalRepository
	GamificationRepo  GamificationRepository
	SettingsRepo      SettingsRepository
}
