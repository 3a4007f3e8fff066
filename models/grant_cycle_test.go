package models

import (
	"testing"
	"time"
)

func TestCycleWindowUsesCampusDay(t *testing.T) {
	loc := AppLocation()
	cycle := GrantCycle{
		IsOpen:    true,
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, loc),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, loc),
	}

	// 15:00 UTC on the last day is 23:00 on campus, still inside the window.
	lastEvening := time.Date(2025, 3, 31, 15, 0, 0, 0, time.UTC)
	if !cycle.IsActive(lastEvening) {
		t.Error("cycle should be active late on its last campus day")
	}
	if cycle.SubmissionClosed(lastEvening) {
		t.Error("submissions should stay open late on the last campus day")
	}

	// Two hours later it is April 1 on campus even though UTC still reads
	// March 31.
	pastMidnight := time.Date(2025, 3, 31, 17, 0, 0, 0, time.UTC)
	if cycle.IsActive(pastMidnight) {
		t.Error("cycle should be closed once campus midnight passes")
	}
	if !cycle.SubmissionClosed(pastMidnight) {
		t.Error("submissions should be closed once campus midnight passes")
	}

	closed := cycle
	closed.IsOpen = false
	if closed.IsActive(lastEvening) {
		t.Error("a toggled-off cycle is never active")
	}
}
