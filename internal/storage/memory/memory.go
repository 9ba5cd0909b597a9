// Package memory provides an in-memory Store with the same semantics as the
// SQLite repository. It backs the "memory" backend and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"gastos/internal/core"
	"gastos/internal/storage"
)

type Store struct {
	mu      sync.Mutex
	nextUID int64
	nextEID int64
	users   map[int64]*storage.UserRecord
	byName  map[string]int64
	entries []core.LedgerEntry
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		nextUID: 1,
		nextEID: 1,
		users:   make(map[int64]*storage.UserRecord),
		byName:  make(map[string]int64),
	}
}

func (s *Store) CreateUser(_ context.Context, name, credentialHash string, balanceCents int64) (storage.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byName[name]; taken {
		return storage.UserRecord{}, core.ErrUserExists
	}

	u := &storage.UserRecord{
		ID:             s.nextUID,
		Name:           name,
		CredentialHash: credentialHash,
		BalanceCents:   balanceCents,
	}
	s.nextUID++
	s.users[u.ID] = u
	s.byName[name] = u.ID
	return *u, nil
}

func (s *Store) UserByName(_ context.Context, name string) (storage.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byName[name]
	if !ok {
		return storage.UserRecord{}, core.ErrUserNotFound
	}
	return *s.users[id], nil
}

func (s *Store) ApplyEntry(_ context.Context, e core.LedgerEntry, newBalanceCents int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[e.UserID]
	if !ok {
		return 0, core.ErrUserNotFound
	}

	e.ID = s.nextEID
	s.nextEID++
	s.entries = append(s.entries, e)
	u.BalanceCents = newBalanceCents
	return e.ID, nil
}

func (s *Store) ListEntries(_ context.Context, userID int64) ([]core.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.LedgerEntry
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.Before(out[j].Date.Time)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) ClearEntries(_ context.Context, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	var deleted int64
	for _, e := range s.entries {
		if e.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return deleted, nil
}

func (s *Store) Close() error { return nil }
