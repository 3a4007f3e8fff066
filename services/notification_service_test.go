package services

import (
	"database/sql/driver"
	"regexp"
	"testing"
	"time"
)

func TestReminderMessageVariesByDayCount(t *testing.T) {
	three := ReminderMessage("Reviewer", "AI Study", 3)
	two := ReminderMessage("Reviewer", "AI Study", 2)
	if three == two {
		t.Fatal("distinct day counts must produce distinct messages")
	}
	if three != "Reminder: Reviewer deadline for proposal 'AI Study' is due in 3 days." {
		t.Fatalf("unexpected message %q", three)
	}
	if got := ReminderMessage("HOD", "AI Study", 0); got != "Reminder: HOD deadline for proposal 'AI Study' is due today." {
		t.Fatalf("unexpected due-today message %q", got)
	}
	if got := ReminderMessage("HOD", "AI Study", 1); got != "Reminder: HOD deadline for proposal 'AI Study' is due tomorrow." {
		t.Fatalf("unexpected due-tomorrow message %q", got)
	}
}

func TestDaysUntil(t *testing.T) {
	today := time.Date(2025, 2, 10, 15, 30, 0, 0, time.UTC)
	due := time.Date(2025, 2, 13, 9, 0, 0, 0, time.UTC)
	if got := DaysUntil(today, due); got != 3 {
		t.Fatalf("got %d want 3", got)
	}
	if got := DaysUntil(today, today); got != 0 {
		t.Fatalf("same day: got %d want 0", got)
	}
	if got := DaysUntil(due, today); got != -3 {
		t.Fatalf("past due: got %d want -3", got)
	}
}

func TestHasUnreadMessage(t *testing.T) {
	msg := "Reminder: Reviewer deadline for proposal 'AI Study' is due in 3 days."
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `notifications`"),
			args:    []driver.Value{int64(5), msg, false},
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(1)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `notifications`"),
			args:    []driver.Value{int64(5), msg, false},
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(0)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	dup, err := HasUnreadMessage(db, 5, msg)
	if err != nil {
		t.Fatalf("HasUnreadMessage: %v", err)
	}
	if !dup {
		t.Fatal("expected duplicate to be reported")
	}

	dup, err = HasUnreadMessage(db, 5, msg)
	if err != nil {
		t.Fatalf("HasUnreadMessage: %v", err)
	}
	if dup {
		t.Fatal("expected no duplicate once the unread copy is gone")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}
