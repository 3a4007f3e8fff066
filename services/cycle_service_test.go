package services

import (
	"errors"
	"testing"
	"time"
)

func TestOpenCycleGuards(t *testing.T) {
	db, _, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	if _, err := OpenCycle(db, Actor{UserID: 2, Role: "Researcher"}, "Cycle 1", "FCI", start, end); !errors.Is(err, ErrAuthorization) {
		t.Fatalf("non-admin: got %v", err)
	}

	admin := Actor{UserID: 1, Role: "Admin"}
	if _, err := OpenCycle(db, admin, "", "FCI", start, end); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty name: got %v", err)
	}
	if _, err := OpenCycle(db, admin, "Cycle 1", "FCI", end, start); !errors.Is(err, ErrValidation) {
		t.Fatalf("inverted window: got %v", err)
	}
	if _, err := OpenCycle(db, admin, "Cycle 1", "FCI", start, start); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero-length window: got %v", err)
	}
}
