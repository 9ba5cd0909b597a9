package core

import "testing"

func TestLedgerEntryValidate(t *testing.T) {
	good := LedgerEntry{
		Description: "lunch",
		Amount:      Money{Cents: 3000},
		Category:    CategoryFood,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	income := LedgerEntry{
		Description: "top up",
		Amount:      Money{Cents: 500},
		Category:    CategoryIncome,
	}
	if err := income.Validate(); err != nil {
		t.Fatalf("income entry should validate, got %v", err)
	}

	bads := []LedgerEntry{
		{Description: "", Amount: Money{Cents: 1}, Category: CategoryFood},
		{Description: "  ", Amount: Money{Cents: 1}, Category: CategoryFood},
		{Description: "a", Amount: Money{Cents: 0}, Category: CategoryFood},
		{Description: "a", Amount: Money{Cents: 1}, Category: "Mascotas"},
		{Description: "a", Amount: Money{Cents: 1}, Category: ""},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range ExpenseCategories() {
		if !ValidCategory(c) {
			t.Fatalf("%q should be valid", c)
		}
	}
	if ValidCategory(CategoryIncome) {
		t.Fatal("income pseudo-category must not be selectable")
	}
	if ValidCategory("whatever") {
		t.Fatal("unknown category should be invalid")
	}
}

func TestDateRoundTrip(t *testing.T) {
	d := NewDate(2025, 3, 9)
	if got := d.String(); got != "2025-03-09" {
		t.Fatalf("expected 2025-03-09, got %q", got)
	}
	back, err := ParseDate(d.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v vs %v", back, d)
	}
	if _, err := ParseDate("09/03/2025"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}
