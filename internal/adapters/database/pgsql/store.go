// Package pgsql is the PostgreSQL rendition of the document store, for
// deployments that want the data off-device. Schema lives in migrations/ and
// is applied at boot via golang-migrate.
package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/pocketfin/pocket_finance_app/internal/core/ports/repositories"
)

const (
	keyCreditProducts      = "credit_products"
	keyTransactions        = "transactions"
	keyBudgets             = "budgets"
	keySavingsGoals        = "savings_goals"
	keyGamificationProfile = "gamification_profile"
	keyAppSettings         = "app_settings"
)

// Store implements every repository port over the app_documents table.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates the PostgreSQL document store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Repositories bundles the store into the provider consumed by the service
// container.
func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CreditProductRepo: s,
		TransactionRepo:   s,
		BudgetRepo:        s,
		SavingsGoalRepo:   s,
		GamificationRepo:  s,
		SettingsRepo:      s,
	}
}

func (s *Store) loadDoc(ctx context.Context, key string, out any) (bool, error) {
	var body []byte
	err := s.pool.QueryRow(ctx, `SELECT body FROM app_documents WHERE doc_key = $1`, key).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load document %s: %w", key, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("failed to decode document %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) saveDoc(ctx context.Context, key string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", key, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO app_documents (doc_key, body, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (doc_key) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		key, body, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", key, err)
	}
	return nil
}
