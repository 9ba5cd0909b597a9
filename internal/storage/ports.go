package storage

import (
	"context"

	"gastos/internal/core"
)

// UserRecord is the persisted shape of a user: identity, hashed credential
// and the cached running balance.
type UserRecord struct {
	ID             int64
	Name           string
	CredentialHash string
	BalanceCents   int64
}

// Store is the port the services consume. Two implementations exist: the
// SQLite repository and the in-memory twin used by tests and the memory
// backend.
type Store interface {
	// CreateUser inserts a user row. A display-name collision surfaces as
	// core.ErrUserExists.
	CreateUser(ctx context.Context, name, credentialHash string, balanceCents int64) (UserRecord, error)

	// UserByName looks a user up by display name. Missing users surface as
	// core.ErrUserNotFound.
	UserByName(ctx context.Context, name string) (UserRecord, error)

	// ApplyEntry appends one ledger row and writes the user's new balance in
	// a single transaction. Either both writes land or neither does; the
	// returned id is the new ledger row's.
	ApplyEntry(ctx context.Context, e core.LedgerEntry, newBalanceCents int64) (int64, error)

	// ListEntries returns all ledger rows for a user, ascending by date
	// (id as tiebreak within a day).
	ListEntries(ctx context.Context, userID int64) ([]core.LedgerEntry, error)

	// ClearEntries deletes every ledger row of one user and reports how many
	// went away. The user's balance is not touched.
	ClearEntries(ctx context.Context, userID int64) (int64, error)

	Close() error
}
