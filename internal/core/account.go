package core

// Account is the in-memory balance authority for one authenticated session.
// It is a passive value holder: sufficiency is checked by the caller, and
// Debit/Credit mutate unconditionally. The ledger manager is the only code
// that calls the mutating methods, always after the matching store write.
type Account struct {
	ID      int64
	Name    string
	Balance Money
}

// HasSufficientBalance reports whether m can be debited without going
// negative. Callers pre-validate m > 0; zero is always sufficient.
func (a *Account) HasSufficientBalance(m Money) bool {
	return m.Cents <= a.Balance.Cents
}

// Debit subtracts m from the balance. No sufficiency check.
func (a *Account) Debit(m Money) {
	a.Balance.Cents -= m.Cents
}

// Credit adds m to the balance.
func (a *Account) Credit(m Money) {
	a.Balance.Cents += m.Cents
}
