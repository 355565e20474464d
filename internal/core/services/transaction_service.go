package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pocketfin/pocket_finance_app/internal/apperrors"
	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
	portsrepo "github.com/pocketfin/pocket_finance_app/internal/core/ports/repositories"
	portssvc "github.com/pocketfin/pocket_finance_app/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_app/internal/dto"
	"github.com/pocketfin/pocket_finance_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// transactionService owns the income/expense/savings entries, mirrored to
// storage as a whole collection like every other module.
type transactionService struct {
	store        portsrepo.TransactionRepository
	gamification portssvc.GamificationSvcFacade
	now          func() time.Time

	mu     sync.Mutex
	txns   []domain.Transaction
	loaded bool
}

// TransactionServiceOption configures optional dependencies.
type TransactionServiceOption func(*transactionService)

// WithGamification lets transaction logging feed the streak engine.
func WithGamification(g portssvc.GamificationSvcFacade) TransactionServiceOption {
	return func(s *transactionService) {
		s.gamification = g
	}
}

// WithTransactionClock overrides the clock for tests.
func WithTransactionClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// NewTransactionService creates the transaction bookkeeping service.
func NewTransactionService(store portsrepo.TransactionRepository, opts ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	s := &transactionService{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := s.now()
	occurredAt := now
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          req.Kind,
		Category:      req.Category,
		Amount:        req.Amount,
		Note:          req.Note,
		OccurredAt:    occurredAt,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	s.txns = append(s.txns, txn)
	if err := s.persistLocked(ctx, "create transaction"); err != nil {
		return &txn, err
	}

	if s.gamification != nil {
		// Streak bookkeeping is best effort; a gamification hiccup must not
		// fail the logged entry.
		if _, err := s.gamification.RecordActivity(ctx, now); err != nil {
			logger.Warn("Failed to record gamification activity", slog.String("error", err.Error()))
		}
	}

	logger.Info("Transaction logged", slog.String("transaction_id", txn.TransactionID), slog.String("kind", string(txn.Kind)))
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	for i := range s.txns {
		if s.txns[i].TransactionID == transactionID {
			result := s.txns[i]
			return &result, nil
		}
	}
	return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
}

func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	result := make([]domain.Transaction, 0, len(s.txns))
	for _, t := range s.txns {
		if params.Year != 0 && t.OccurredAt.Year() != params.Year {
			continue
		}
		if params.Month != 0 && t.OccurredAt.Month() != time.Month(params.Month) {
			continue
		}
		if params.Kind != "" && t.Kind != domain.TransactionKind(params.Kind) {
			continue
		}
		result = append(result, t)
	}

	// Newest first, the order the UI renders.
	sort.Slice(result, func(i, j int) bool {
		return result[i].OccurredAt.After(result[j].OccurredAt)
	})
	return result, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	if req.Amount != nil && !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	var txn *domain.Transaction
	for i := range s.txns {
		if s.txns[i].TransactionID == transactionID {
			txn = &s.txns[i]
			break
		}
	}
	if txn == nil {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}

	if req.Category != nil {
		txn.Category = *req.Category
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Note != nil {
		txn.Note = *req.Note
	}
	if req.OccurredAt != nil {
		txn.OccurredAt = *req.OccurredAt
	}
	txn.UpdatedAt = s.now()

	result := *txn
	if err := s.persistLocked(ctx, "update transaction"); err != nil {
		return &result, err
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	return &result, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	idx := -1
	for i := range s.txns {
		if s.txns[i].TransactionID == transactionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}

	s.txns = append(s.txns[:idx], s.txns[idx+1:]...)
	if err := s.persistLocked(ctx, "delete transaction"); err != nil {
		return err
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// MonthlySummary aggregates one calendar month: totals per kind, net, and
// expense totals per category for the budget screen.
func (s *transactionService) MonthlySummary(ctx context.Context, year int, month time.Month) (*domain.MonthlySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	summary := domain.MonthlySummary{
		Year:              year,
		Month:             month,
		TotalIncome:       decimal.Zero,
		TotalExpense:      decimal.Zero,
		TotalSavings:      decimal.Zero,
		ExpenseByCategory: make(map[string]decimal.Decimal),
	}

	for _, t := range s.txns {
		if t.OccurredAt.Year() != year || t.OccurredAt.Month() != month {
			continue
		}
		switch t.Kind {
		case domain.Income:
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
		case domain.Expense:
			summary.TotalExpense = summary.TotalExpense.Add(t.Amount)
			summary.ExpenseByCategory[t.Category] = summary.ExpenseByCategory[t.Category].Add(t.Amount)
		case domain.Savings:
			summary.TotalSavings = summary.TotalSavings.Add(t.Amount)
		}
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpense).Sub(summary.TotalSavings)

	return &summary, nil
}

func (s *transactionService) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	txns, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return apperrors.NewPersistenceError("load transactions", err, func(retryCtx context.Context) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.ensureLoadedLocked(retryCtx)
		})
	}
	s.txns = txns
	s.loaded = true
	return nil
}

func (s *transactionService) persistLocked(ctx context.Context, op string) error {
	snapshot := make([]domain.Transaction, len(s.txns))
	copy(snapshot, s.txns)

	if err := s.store.SaveTransactions(ctx, snapshot); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to persist transactions",
			slog.String("op", op), slog.String("error", err.Error()))
		return apperrors.NewPersistenceError(op, err, func(retryCtx context.Context) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.persistLocked(retryCtx, op+" (retry)")
		})
	}
	return nil
}
