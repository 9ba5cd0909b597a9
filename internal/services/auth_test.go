package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"gastos/internal/core"
	"gastos/internal/storage/memory"
)

func validRegistration() Registration {
	return Registration{
		Name:           "ana",
		Credential:     "hunter2hunter2",
		Confirmation:   "hunter2hunter2",
		InitialBalance: "100.00",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewAuthService(store, bcrypt.MinCost)

	acct, err := svc.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if acct.ID == 0 || acct.Name != "ana" {
		t.Fatalf("unexpected account: %+v", acct)
	}
	if acct.Balance.Cents != 10000 {
		t.Fatalf("expected initial balance 10000, got %d", acct.Balance.Cents)
	}

	// Credential is stored hashed, not in the clear
	u, err := store.UserByName(ctx, "ana")
	if err != nil {
		t.Fatalf("user by name: %v", err)
	}
	if u.CredentialHash == "hunter2hunter2" {
		t.Fatal("credential must not be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.CredentialHash), []byte("hunter2hunter2")); err != nil {
		t.Fatalf("stored hash does not match credential: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*Registration)
		wantErr error
	}{
		{"empty name", func(r *Registration) { r.Name = "" }, core.ErrEmptyField},
		{"blank name", func(r *Registration) { r.Name = "   " }, core.ErrEmptyField},
		{"empty credential", func(r *Registration) { r.Credential = "" }, core.ErrEmptyField},
		{"empty confirmation", func(r *Registration) { r.Confirmation = "" }, core.ErrEmptyField},
		{"empty balance", func(r *Registration) { r.InitialBalance = "" }, core.ErrEmptyField},
		{"short credential", func(r *Registration) { r.Credential = "short"; r.Confirmation = "short" }, core.ErrCredentialTooShort},
		{"mismatched confirmation", func(r *Registration) { r.Confirmation = "hunter2hunter3" }, core.ErrCredentialMismatch},
		{"non-numeric balance", func(r *Registration) { r.InitialBalance = "abc" }, core.ErrInvalidAmount},
		{"zero balance", func(r *Registration) { r.InitialBalance = "0" }, core.ErrInvalidAmount},
		{"negative balance", func(r *Registration) { r.InitialBalance = "-5" }, core.ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.New()
			svc := NewAuthService(store, bcrypt.MinCost)

			reg := validRegistration()
			tc.mutate(&reg)

			_, err := svc.Register(ctx, reg)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}

			// No user row may exist after a rejected registration
			if _, err := store.UserByName(ctx, "ana"); !errors.Is(err, core.ErrUserNotFound) {
				t.Fatalf("rejected registration must not create a user, lookup err=%v", err)
			}
		})
	}
}

func TestRegisterDuplicateName(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewAuthService(store, bcrypt.MinCost)

	if _, err := svc.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, validRegistration())
	if !errors.Is(err, core.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewAuthService(store, bcrypt.MinCost)

	if _, err := svc.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("register: %v", err)
	}

	acct, err := svc.Authenticate(ctx, "ana", "hunter2hunter2")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if acct.Name != "ana" || acct.Balance.Cents != 10000 {
		t.Fatalf("unexpected account: %+v", acct)
	}

	if _, err := svc.Authenticate(ctx, "ana", "wrong-credential"); !errors.Is(err, core.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	// Unknown user yields the same error as a bad credential
	if _, err := svc.Authenticate(ctx, "nobody", "hunter2hunter2"); !errors.Is(err, core.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
