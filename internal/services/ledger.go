// Package services holds the ledger manager and the auth service: the layer
// between the presentation shell and the store.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"gastos/internal/cache"
	"gastos/internal/core"
	"gastos/internal/storage"
)

const defaultIncomeDescription = "Fondos agregados"

// LedgerService orchestrates expense recording and fund top-ups. Every
// mutation is a single atomic store write followed by the in-memory account
// mutation, so the persisted balance and ledger can never disagree with each
// other; the in-memory account only diverges if the process dies mid-call.
type LedgerService struct {
	store   storage.Store
	history *cache.LRUCache[[]core.LedgerEntry]
}

// NewLedgerService creates a ledger service. The history cache is optional;
// pass nil to always hit the store.
func NewLedgerService(store storage.Store, history *cache.LRUCache[[]core.LedgerEntry]) *LedgerService {
	return &LedgerService{
		store:   store,
		history: history,
	}
}

// RecordExpense appends an expense row and debits the account. Returns
// (false, nil) when the balance is insufficient — the one domain-level
// failure — with no persistence and no mutation. Validation problems and
// store faults come back as errors.
func (s *LedgerService) RecordExpense(ctx context.Context, acct *core.Account, e core.LedgerEntry) (bool, error) {
	e.UserID = acct.ID
	if e.Category == core.CategoryIncome {
		// Income rows are created only by AddFunds
		return false, core.ErrUnknownCategory
	}
	if err := e.Validate(); err != nil {
		return false, err
	}
	if e.Date.IsZero() {
		e.Date = core.Today()
	}

	if !acct.HasSufficientBalance(e.Amount) {
		slog.InfoContext(ctx, "Expense rejected: insufficient balance",
			"user_id", acct.ID,
			"amount_cents", e.Amount.Cents,
			"balance_cents", acct.Balance.Cents)
		return false, nil
	}

	newBalance := acct.Balance.Cents - e.Amount.Cents
	if _, err := s.store.ApplyEntry(ctx, e, newBalance); err != nil {
		return false, fmt.Errorf("record expense: %w", err)
	}

	acct.Debit(e.Amount)
	s.invalidateHistory(acct.ID)

	return true, nil
}

// AddFunds appends an income row and credits the account. Funding is always
// permitted for a positive amount; there is no sufficiency check.
func (s *LedgerService) AddFunds(ctx context.Context, acct *core.Account, amount core.Money, description string) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if description == "" {
		description = defaultIncomeDescription
	}

	e := core.LedgerEntry{
		UserID:      acct.ID,
		Description: description,
		Amount:      amount,
		Category:    core.CategoryIncome,
		Date:        core.Today(),
	}

	newBalance := acct.Balance.Cents + amount.Cents
	if _, err := s.store.ApplyEntry(ctx, e, newBalance); err != nil {
		return fmt.Errorf("add funds: %w", err)
	}

	acct.Credit(amount)
	s.invalidateHistory(acct.ID)

	return nil
}

// ListHistory returns the user's ledger rows ascending by date, serving
// repeated reads from the cache until the next mutation.
func (s *LedgerService) ListHistory(ctx context.Context, userID int64) ([]core.LedgerEntry, error) {
	key := historyKey(userID)
	if s.history != nil {
		if entries, ok := s.history.Get(key); ok {
			return entries, nil
		}
	}

	entries, err := s.store.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	if s.history != nil {
		s.history.Set(key, entries)
	}
	return entries, nil
}

// ClearHistory wipes the user's ledger rows. The cached balance stays as it
// is: clearing history is not a refund.
func (s *LedgerService) ClearHistory(ctx context.Context, userID int64) error {
	if _, err := s.store.ClearEntries(ctx, userID); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	s.invalidateHistory(userID)
	return nil
}

func (s *LedgerService) invalidateHistory(userID int64) {
	if s.history != nil {
		s.history.Invalidate(historyKey(userID))
	}
}

func historyKey(userID int64) string {
	return "history:" + strconv.FormatInt(userID, 10)
}
