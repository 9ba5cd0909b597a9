package core

import (
	"errors"
	"strings"
	"time"
)

// Expense categories offered by the manager. CategoryIncome is reserved for
// fund top-ups and never appears in the selectable set.
const (
	CategoryFood          = "Alimentos"
	CategoryTransport     = "Transporte"
	CategoryEntertainment = "Entretenimiento"
	CategoryHealth        = "Salud"
	CategoryServices      = "Servicios"
	CategoryOther         = "Otros"

	CategoryIncome = "Ingreso"
)

type (
	Date struct {
		time.Time
	}

	// LedgerEntry is one recorded expense or income row tied to a user.
	LedgerEntry struct {
		ID          int64
		UserID      int64
		Description string
		Amount      Money
		Category    string
		Date        Date
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrUnknownCategory  = errors.New("unknown category")

	ErrEmptyField         = errors.New("all fields are required")
	ErrCredentialTooShort = errors.New("credential must be at least 8 characters")
	ErrCredentialMismatch = errors.New("credential and confirmation do not match")

	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ExpenseCategories returns the selectable category set, in display order.
func ExpenseCategories() []string {
	return []string{
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryHealth,
		CategoryServices,
		CategoryOther,
	}
}

// ValidCategory reports whether s is a selectable expense category.
// The income pseudo-category is excluded on purpose: income rows are
// created only by the ledger manager's fund top-up path.
func ValidCategory(s string) bool {
	for _, c := range ExpenseCategories() {
		if s == c {
			return true
		}
	}
	return false
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	y, m, d := time.Now().Date()
	return NewDate(y, int(m), d)
}

// String renders the date in the stored ISO form (YYYY-MM-DD).
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// ParseDate parses a stored ISO date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t.UTC()}, nil
}

// Validate checks a ledger entry before it reaches storage. The date may be
// zero; the ledger manager defaults it to the insertion date.
func (e LedgerEntry) Validate() error {
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if e.Category != CategoryIncome && !ValidCategory(e.Category) {
		return ErrUnknownCategory
	}
	return nil
}
