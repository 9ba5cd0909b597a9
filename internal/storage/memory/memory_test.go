package memory

import (
	"context"
	"errors"
	"testing"

	"gastos/internal/core"
)

func TestMemoryStoreSemantics(t *testing.T) {
	ctx := context.Background()
	s := New()

	u, err := s.CreateUser(ctx, "ana", "hash", 5000)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := s.CreateUser(ctx, "ana", "hash", 0); !errors.Is(err, core.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if _, err := s.UserByName(ctx, "nobody"); !errors.Is(err, core.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if _, err := s.ApplyEntry(ctx, core.LedgerEntry{
		UserID:      u.ID + 1,
		Description: "ghost",
		Amount:      core.Money{Cents: 100},
		Category:    core.CategoryOther,
		Date:        core.Today(),
	}, 4900); !errors.Is(err, core.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown user, got %v", err)
	}

	id, err := s.ApplyEntry(ctx, core.LedgerEntry{
		UserID:      u.ID,
		Description: "coffee",
		Amount:      core.Money{Cents: 300},
		Category:    core.CategoryFood,
		Date:        core.Today(),
	}, 4700)
	if err != nil || id == 0 {
		t.Fatalf("apply entry: id=%d err=%v", id, err)
	}

	got, _ := s.UserByName(ctx, "ana")
	if got.BalanceCents != 4700 {
		t.Fatalf("expected balance 4700, got %d", got.BalanceCents)
	}

	deleted, err := s.ClearEntries(ctx, u.ID)
	if err != nil || deleted != 1 {
		t.Fatalf("clear entries: deleted=%d err=%v", deleted, err)
	}
	entries, _ := s.ListEntries(ctx, u.ID)
	if len(entries) != 0 {
		t.Fatalf("expected empty ledger, got %d rows", len(entries))
	}
}
