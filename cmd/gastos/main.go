package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gastos/internal/cache"
	"gastos/internal/cli"
	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/services"
)

// The shell is the presentation layer: it only parses text, calls the
// services and prints results. All domain rules live below it.
type shell struct {
	in     *bufio.Reader
	auth   *services.AuthService
	ledger *services.LedgerService
	logger *log.Logger
}

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)
	res := cli.InitStore(logger, cfg)
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Error("Store cleanup failed", log.FieldError, err)
		}
	}()

	history := cache.NewLRUCache[[]core.LedgerEntry](cfg.HistoryCacheSize, cfg.HistoryCacheTTL)

	sh := &shell{
		in:     bufio.NewReader(os.Stdin),
		auth:   services.NewAuthService(res.Store, cfg.BcryptCost),
		ledger: services.NewLedgerService(res.Store, history),
		logger: logger.WithComponent(log.ComponentShell),
	}

	logger.Info("Personal expense ledger started", log.FieldBackend, cfg.DataBackend)
	sh.run(context.Background())
}

func (s *shell) run(ctx context.Context) {
	for {
		fmt.Println()
		fmt.Println("=== Personal expense ledger ===")
		fmt.Println("1) Log in")
		fmt.Println("2) Register")
		fmt.Println("3) Quit")

		switch s.prompt("> ") {
		case "1":
			if acct, ok := s.login(ctx); ok {
				s.session(ctx, acct)
			}
		case "2":
			if acct, ok := s.register(ctx); ok {
				s.session(ctx, acct)
			}
		case "3", "q":
			return
		default:
			fmt.Println("Unknown option.")
		}
	}
}

func (s *shell) login(ctx context.Context) (*core.Account, bool) {
	name := s.prompt("Name: ")
	credential := s.prompt("Credential: ")

	acct, err := s.auth.Authenticate(ctx, name, credential)
	if err != nil {
		s.report(err)
		return nil, false
	}
	fmt.Printf("Welcome back, %s. Balance: %s\n", acct.Name, acct.Balance)
	return &acct, true
}

func (s *shell) register(ctx context.Context) (*core.Account, bool) {
	reg := services.Registration{
		Name:           s.prompt("Name: "),
		Credential:     s.prompt("Credential (min 8 chars): "),
		Confirmation:   s.prompt("Confirm credential: "),
		InitialBalance: s.prompt("Initial balance: "),
	}

	acct, err := s.auth.Register(ctx, reg)
	if err != nil {
		s.report(err)
		return nil, false
	}
	fmt.Printf("Account created. Balance: %s\n", acct.Balance)
	return &acct, true
}

func (s *shell) session(ctx context.Context, acct *core.Account) {
	for {
		fmt.Println()
		fmt.Printf("-- %s | balance %s --\n", acct.Name, acct.Balance)
		fmt.Println("1) Record expense")
		fmt.Println("2) Add funds")
		fmt.Println("3) Show history")
		fmt.Println("4) Clear history")
		fmt.Println("5) Log out")

		switch s.prompt("> ") {
		case "1":
			s.recordExpense(ctx, acct)
		case "2":
			s.addFunds(ctx, acct)
		case "3":
			s.showHistory(ctx, acct)
		case "4":
			s.clearHistory(ctx, acct)
		case "5":
			return
		default:
			fmt.Println("Unknown option.")
		}
	}
}

func (s *shell) recordExpense(ctx context.Context, acct *core.Account) {
	description := s.prompt("Description: ")

	amount, err := core.ParseMoney(s.prompt("Amount: "))
	if err != nil {
		s.report(err)
		return
	}

	cats := core.ExpenseCategories()
	for i, c := range cats {
		fmt.Printf("%d) %s\n", i+1, c)
	}
	idx, err := strconv.Atoi(s.prompt("Category: "))
	if err != nil || idx < 1 || idx > len(cats) {
		fmt.Println("Pick a category by number.")
		return
	}

	ok, err := s.ledger.RecordExpense(ctx, acct, core.LedgerEntry{
		Description: description,
		Amount:      amount,
		Category:    cats[idx-1],
	})
	if err != nil {
		s.report(err)
		return
	}
	if !ok {
		fmt.Printf("Insufficient balance: %s available.\n", acct.Balance)
		return
	}
	fmt.Printf("Expense recorded. New balance: %s\n", acct.Balance)
}

func (s *shell) addFunds(ctx context.Context, acct *core.Account) {
	amount, err := core.ParseMoney(s.prompt("Amount to add: "))
	if err != nil {
		s.report(err)
		return
	}

	if err := s.ledger.AddFunds(ctx, acct, amount, ""); err != nil {
		s.report(err)
		return
	}
	fmt.Printf("Funds added. New balance: %s\n", acct.Balance)
}

func (s *shell) showHistory(ctx context.Context, acct *core.Account) {
	entries, err := s.ledger.ListHistory(ctx, acct.ID)
	if err != nil {
		s.report(err)
		return
	}
	if len(entries) == 0 {
		fmt.Println("No entries.")
		return
	}

	fmt.Printf("%-12s %-24s %-16s %10s\n", "DATE", "DESCRIPTION", "CATEGORY", "AMOUNT")
	for _, e := range entries {
		fmt.Printf("%-12s %-24s %-16s %10s\n", e.Date, truncate(e.Description, 24), e.Category, e.Amount)
	}
}

func (s *shell) clearHistory(ctx context.Context, acct *core.Account) {
	if s.prompt("Clear all history? This cannot be undone (y/N): ") != "y" {
		return
	}
	if err := s.ledger.ClearHistory(ctx, acct.ID); err != nil {
		s.report(err)
		return
	}
	fmt.Println("History cleared. Balance is unchanged.")
}

func (s *shell) prompt(label string) string {
	fmt.Print(label)
	line, err := s.in.ReadString('\n')
	if err != nil {
		// EOF on stdin ends the program cleanly
		fmt.Println()
		os.Exit(0)
	}
	return strings.TrimSpace(line)
}

// report translates sentinel errors into user-facing messages; anything else
// is a store fault and gets logged with a generic message.
func (s *shell) report(err error) {
	switch {
	case errors.Is(err, core.ErrEmptyField),
		errors.Is(err, core.ErrCredentialTooShort),
		errors.Is(err, core.ErrCredentialMismatch),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrUnknownCategory):
		fmt.Printf("Invalid input: %v\n", err)
	case errors.Is(err, core.ErrUserExists):
		fmt.Println("That name is already taken.")
	case errors.Is(err, core.ErrInvalidCredentials):
		fmt.Println("Wrong name or credential.")
	default:
		s.logger.Error("Operation failed", log.FieldError, err)
		fmt.Println("Something went wrong; please try again.")
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
