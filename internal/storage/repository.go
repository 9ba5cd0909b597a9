package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gastos/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// foreign_keys must be enabled per connection in SQLite
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateUser implements Store. The UNIQUE constraint on display_name is the
// single source of truth for name collisions.
func (r *SQLiteRepository) CreateUser(ctx context.Context, name, credentialHash string, balanceCents int64) (UserRecord, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (display_name, credential, balance_cents) VALUES (?, ?, ?)`,
		name, credentialHash, balanceCents)
	if err != nil {
		if isUniqueViolation(err) {
			return UserRecord{}, core.ErrUserExists
		}
		return UserRecord{}, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return UserRecord{}, fmt.Errorf("user insert id: %w", err)
	}

	slog.InfoContext(ctx, "User created", "user_id", id, "display_name", name)

	return UserRecord{ID: id, Name: name, CredentialHash: credentialHash, BalanceCents: balanceCents}, nil
}

// UserByName implements Store.
func (r *SQLiteRepository) UserByName(ctx context.Context, name string) (UserRecord, error) {
	var u UserRecord
	err := r.db.QueryRowContext(ctx,
		`SELECT id, display_name, credential, balance_cents FROM users WHERE display_name = ?`,
		name).Scan(&u.ID, &u.Name, &u.CredentialHash, &u.BalanceCents)
	if errors.Is(err, sql.ErrNoRows) {
		return UserRecord{}, core.ErrUserNotFound
	}
	if err != nil {
		return UserRecord{}, fmt.Errorf("select user by name: %w", err)
	}
	return u, nil
}

// ApplyEntry implements Store. The ledger insert and the balance update
// commit as one transaction; a failure on either side rolls both back.
func (r *SQLiteRepository) ApplyEntry(ctx context.Context, e core.LedgerEntry, newBalanceCents int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO expense_history (user_id, description, amount_cents, category, date)
		 VALUES (?, ?, ?, ?, ?)`,
		e.UserID, e.Description, e.Amount.Cents, e.Category, e.Date.String())
	if err != nil {
		return 0, fmt.Errorf("insert ledger entry: %w", err)
	}

	entryID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ledger entry insert id: %w", err)
	}

	upd, err := tx.ExecContext(ctx,
		`UPDATE users SET balance_cents = ? WHERE id = ?`,
		newBalanceCents, e.UserID)
	if err != nil {
		return 0, fmt.Errorf("update balance: %w", err)
	}
	affected, err := upd.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update balance rows: %w", err)
	}
	if affected == 0 {
		return 0, core.ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit entry: %w", err)
	}

	slog.InfoContext(ctx, "Ledger entry applied",
		"entry_id", entryID,
		"user_id", e.UserID,
		"amount_cents", e.Amount.Cents,
		"category", e.Category,
		"new_balance_cents", newBalanceCents)

	return entryID, nil
}

// ListEntries implements Store.
func (r *SQLiteRepository) ListEntries(ctx context.Context, userID int64) ([]core.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, description, amount_cents, category, date
		 FROM expense_history WHERE user_id = ? ORDER BY date ASC, id ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("select ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []core.LedgerEntry
	for rows.Next() {
		var (
			e       core.LedgerEntry
			rawDate string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.Amount.Cents, &e.Category, &rawDate); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		d, err := core.ParseDate(rawDate)
		if err != nil {
			return nil, fmt.Errorf("parse entry date %q: %w", rawDate, err)
		}
		e.Date = d
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}

	return entries, nil
}

// ClearEntries implements Store. Scoped to one user; the cached balance is
// deliberately left as is (clearing history is not a refund).
func (r *SQLiteRepository) ClearEntries(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expense_history WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete ledger entries: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleted rows: %w", err)
	}

	slog.InfoContext(ctx, "History cleared", "user_id", userID, "deleted", deleted)

	return deleted, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
