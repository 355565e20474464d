package pgsql

import (
	"context"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
)

// LoadCreditProducts returns the stored collection, or an empty slice when
// nothing has been stored yet.
func (s *Store) LoadCreditProducts(ctx context.Context) ([]domain.CreditProduct, error) {
	var products []domain.CreditProduct
	found, err := s.loadDoc(ctx, keyCreditProducts, &products)
	if err != nil {
		return nil, err
	}
	if !found || products == nil {
		return []domain.CreditProduct{}, nil
	}
	return products, nil
}

// SaveCreditProducts replaces the stored collection.
func (s *Store) SaveCreditProducts(ctx context.Context, products []domain.CreditProduct) error {
	return s.saveDoc(ctx, keyCreditProducts, products)
}

func (s *Store) LoadTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	found, err := s.loadDoc(ctx, keyTransactions, &txns)
	if err != nil {
		return nil, err
	}
	if !found || txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

func (s *Store) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	return s.saveDoc(ctx, keyTransactions, txns)
}

func (s *Store) LoadBudgets(ctx context.Context) ([]domain.Budget, error) {
	var budgets []domain.Budget
	found, err := s.loadDoc(ctx, keyBudgets, &budgets)
	if err != nil {
		return nil, err
	}
	if !found || budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

func (s *Store) SaveBudgets(ctx context.Context, budgets []domain.Budget) error {
	return s.saveDoc(ctx, keyBudgets, budgets)
}

func (s *Store) LoadSavingsGoals(ctx context.Context) ([]domain.SavingsGoal, error) {
	var goals []domain.SavingsGoal
	found, err := s.loadDoc(ctx, keySavingsGoals, &goals)
	if err != nil {
		return nil, err
	}
	if !found || goals == nil {
		return []domain.SavingsGoal{}, nil
	}
	return goals, nil
}

func (s *Store) SaveSavingsGoals(ctx context.Context, goals []domain.SavingsGoal) error {
	return s.saveDoc(ctx, keySavingsGoals, goals)
}

// LoadGamificationProfile returns nil when no profile has been stored yet.
func (s *Store) LoadGamificationProfile(ctx context.Context) (*domain.GamificationProfile, error) {
	var profile domain.GamificationProfile
	found, err := s.loadDoc(ctx, keyGamificationProfile, &profile)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &profile, nil
}

func (s *Store) SaveGamificationProfile(ctx context.Context, profile domain.GamificationProfile) error {
	return s.saveDoc(ctx, keyGamificationProfile, profile)
}

// LoadSettings returns nil when no settings have been stored yet.
func (s *Store) LoadSettings(ctx context.Context) (*domain.AppSettings, error) {
	var settings domain.AppSettings
	found, err := s.loadDoc(ctx, keyAppSettings, &settings)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &settings, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings domain.AppSettings) error {
	return s.saveDoc(ctx, keyAppSettings, settings)
}
