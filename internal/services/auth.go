package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"gastos/internal/core"
	"gastos/internal/storage"
)

const minCredentialLength = 8

// Registration carries the raw form fields of the sign-up screen. Validation
// happens here, before any user row is created.
type Registration struct {
	Name           string
	Credential     string
	Confirmation   string
	InitialBalance string
}

// AuthService registers users and authenticates sessions. Credentials are
// stored as bcrypt hashes, never in the clear.
type AuthService struct {
	store storage.Store
	cost  int
}

func NewAuthService(store storage.Store, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{store: store, cost: bcryptCost}
}

// Register validates the form, hashes the credential and creates the user.
// A taken display name surfaces as core.ErrUserExists. On success the new
// account is returned ready for a session.
func (s *AuthService) Register(ctx context.Context, reg Registration) (core.Account, error) {
	name := strings.TrimSpace(reg.Name)
	if name == "" || reg.Credential == "" || reg.Confirmation == "" || strings.TrimSpace(reg.InitialBalance) == "" {
		return core.Account{}, core.ErrEmptyField
	}
	if len(reg.Credential) < minCredentialLength {
		return core.Account{}, core.ErrCredentialTooShort
	}
	if reg.Credential != reg.Confirmation {
		return core.Account{}, core.ErrCredentialMismatch
	}

	balance, err := core.ParseMoney(reg.InitialBalance)
	if err != nil {
		return core.Account{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Credential), s.cost)
	if err != nil {
		return core.Account{}, fmt.Errorf("hash credential: %w", err)
	}

	u, err := s.store.CreateUser(ctx, name, string(hash), balance.Cents)
	if err != nil {
		return core.Account{}, err
	}

	slog.InfoContext(ctx, "User registered", "user_id", u.ID, "display_name", u.Name)

	return core.Account{ID: u.ID, Name: u.Name, Balance: core.Money{Cents: u.BalanceCents}}, nil
}

// Authenticate looks the user up and compares the credential against the
// stored hash. Unknown name and wrong credential both come back as
// core.ErrInvalidCredentials so the login screen leaks nothing.
func (s *AuthService) Authenticate(ctx context.Context, name, credential string) (core.Account, error) {
	u, err := s.store.UserByName(ctx, strings.TrimSpace(name))
	if errors.Is(err, core.ErrUserNotFound) {
		return core.Account{}, core.ErrInvalidCredentials
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.CredentialHash), []byte(credential)); err != nil {
		return core.Account{}, core.ErrInvalidCredentials
	}

	return core.Account{ID: u.ID, Name: u.Name, Balance: core.Money{Cents: u.BalanceCents}}, nil
}
