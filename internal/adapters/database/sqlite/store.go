// Package sqlite persists each collection as a single JSON document in a
// local SQLite file, mirroring the local-storage model of the mobile client:
// the unit of persistence is the whole collection, written on every mutation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	portsrepo "github.com/pocketfin/pocket_finance_app/internal/core/ports/repositories"
)

// Document keys, one per collection.
const (
	keyCreditProducts      = "credit_products"
	keyTransactions        = "transactions"
	keyBudgets             = "budgets"
	keySavingsGoals        = "savings_goals"
	keyGamificationProfile = "gamification_profile"
	keyAppSettings         = "app_settings"
)

// Store implements every repository port over one documents table.
type Store struct {
	db *sql.DB
}

// NewStore initializes the schema and returns the store.
func NewStore(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("could not initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS app_documents (
		doc_key TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
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
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM app_documents WHERE doc_key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load document %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return false, fmt.Errorf("failed to decode document %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) saveDoc(ctx context.Context, key string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_documents (doc_key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(doc_key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		key, string(body), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", key, err)
	}
	return nil
}
