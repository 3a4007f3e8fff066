package services

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"testing"
)

func TestNextVersionNumber(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT COALESCE\\(MAX\\(version_number\\), 0\\) FROM `proposal_versions` WHERE proposal_id = \\?"),
			args:    []driver.Value{int64(9)},
			columns: []string{"COALESCE(MAX(version_number), 0)"},
			rows:    [][]driver.Value{{int64(3)}},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	next, err := NextVersionNumber(db, 9)
	if err != nil {
		t.Fatalf("NextVersionNumber: %v", err)
	}
	if next != 4 {
		t.Fatalf("got %d want 4", next)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestRevertProposal(t *testing.T) {
	// Reverting to version 1 copies its snapshot onto the proposal and appends
	// version max+1; the stored history rows are read, never rewritten.
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `proposals` WHERE proposal_id = \\?"),
			anyArgs: true,
			columns: []string{"proposal_id", "title", "research_area", "requested_budget", "status", "document", "researcher_id", "cycle_id"},
			rows: [][]driver.Value{{
				int64(9), "Revised title", "AI", float64(8000), "Draft", "v2.pdf", int64(3), int64(1),
			}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `proposal_versions` WHERE proposal_id = \\? AND version_number = \\?"),
			anyArgs: true,
			columns: []string{"version_id", "proposal_id", "version_number", "title", "research_area", "requested_budget", "document", "note"},
			rows: [][]driver.Value{{
				int64(1), int64(9), int64(1), "Original title", "AI", float64(5000), "v1.pdf", "Initial submission",
			}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `proposals` SET"),
			anyArgs: true,
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT COALESCE\\(MAX\\(version_number\\), 0\\) FROM `proposal_versions` WHERE proposal_id = \\?"),
			args:    []driver.Value{int64(9)},
			columns: []string{"COALESCE(MAX(version_number), 0)"},
			rows:    [][]driver.Value{{int64(3)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `proposal_versions`"),
			anyArgs: true,
			check: func(args []driver.NamedValue) error {
				if args[1].Value != int64(4) {
					return fmt.Errorf("new snapshot must be version max+1 (4), got %v", args[1].Value)
				}
				if args[2].Value != "Original title" {
					return fmt.Errorf("snapshot title %v does not match version 1", args[2].Value)
				}
				if args[6].Value != "Reverted to Version 1" {
					return fmt.Errorf("unexpected snapshot note %v", args[6].Value)
				}
				return nil
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	proposal, err := RevertProposal(db, Actor{UserID: 3, Role: "Researcher"}, 9, 1)
	if err != nil {
		t.Fatalf("RevertProposal: %v", err)
	}
	if proposal.Title != "Original title" || proposal.RequestedBudget != 5000 || proposal.Document != "v1.pdf" {
		t.Fatalf("proposal did not take the version 1 snapshot: %+v", proposal)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestRevertProposalUnknownVersion(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `proposals` WHERE proposal_id = \\?"),
			anyArgs: true,
			columns: []string{"proposal_id", "title", "status", "researcher_id", "cycle_id"},
			rows:    [][]driver.Value{{int64(9), "Revised title", "Draft", int64(3), int64(1)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `proposal_versions` WHERE proposal_id = \\? AND version_number = \\?"),
			anyArgs: true,
			columns: []string{"version_id", "proposal_id", "version_number"},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := RevertProposal(db, Actor{UserID: 3, Role: "Researcher"}, 9, 8)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("nothing may be written for an unknown version: %v", err)
	}
}
