package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
)

func TestGetBudgetSummary(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT COALESCE\(SUM\(amount\), 0\) FROM budgets`),
			columns: []string{"total"},
			rows:    [][]driver.Value{{float64(50000)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT COALESCE\(SUM\(grant_amount\), 0\) FROM grants`),
			columns: []string{"total"},
			rows:    [][]driver.Value{{float64(12000)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT COALESCE\(SUM\(requested_budget\), 0\) FROM proposals WHERE status = \?`),
			args:    []driver.Value{"Approved"},
			columns: []string{"total"},
			rows:    [][]driver.Value{{float64(10000)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	summary, err := GetBudgetSummary(db)
	if err != nil {
		t.Fatalf("GetBudgetSummary returned error: %v", err)
	}
	if summary.RemainingBalance != 38000 {
		t.Fatalf("remaining balance: got %v want 38000", summary.RemainingBalance)
	}
	if summary.UtilizationPercent != 20 {
		t.Fatalf("utilization: got %v want 20", summary.UtilizationPercent)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestUtilizationPercentZeroFunds(t *testing.T) {
	if got := UtilizationPercent(10000, 0); got != 0 {
		t.Fatalf("division by zero must yield 0, got %v", got)
	}
	if got := UtilizationPercent(2500, 10000); got != 25 {
		t.Fatalf("got %v want 25", got)
	}
}

func TestAddBudgetGuards(t *testing.T) {
	db, _, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	if _, err := AddBudget(db, Actor{UserID: 3, Role: "Researcher"}, 1000, "x"); !errors.Is(err, ErrAuthorization) {
		t.Fatalf("non-admin should be denied, got %v", err)
	}
	if _, err := AddBudget(db, Actor{UserID: 1, Role: "Admin"}, 0, "x"); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero amount should fail validation, got %v", err)
	}
}
