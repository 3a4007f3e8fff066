package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
)

func TestAddFaculty(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `faculties` WHERE name = \\?"),
			anyArgs: true,
			columns: []string{"faculty_id", "name"},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `faculties`"),
			args:    []driver.Value{"Faculty of Engineering"},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	faculty, err := AddFaculty(db, Actor{UserID: 1, Role: "Admin"}, "Faculty of Engineering")
	if err != nil {
		t.Fatalf("AddFaculty: %v", err)
	}
	if faculty.Name != "Faculty of Engineering" {
		t.Fatalf("got name %q", faculty.Name)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestAddFacultyRejectsDuplicate(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `faculties` WHERE name = \\?"),
			anyArgs: true,
			columns: []string{"faculty_id", "name"},
			rows:    [][]driver.Value{{int64(1), "FCI"}},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	if _, err := AddFaculty(db, Actor{UserID: 1, Role: "Admin"}, "FCI"); !errors.Is(err, ErrValidation) {
		t.Fatalf("duplicate name: got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("duplicates must not be inserted: %v", err)
	}
}

func TestRenameFaculty(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `faculties` SET `name`=\\? WHERE faculty_id = \\?"),
			args:    []driver.Value{"Faculty of Computing", int64(12)},
			result:  scriptedResult{rowsAffected: 1},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	if err := RenameFaculty(db, Actor{UserID: 1, Role: "Admin"}, 12, "Faculty of Computing"); err != nil {
		t.Fatalf("RenameFaculty: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestRenameFacultyNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `faculties` SET `name`=\\? WHERE faculty_id = \\?"),
			anyArgs: true,
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	if err := RenameFaculty(db, Actor{UserID: 1, Role: "Admin"}, 404, "Nowhere"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown faculty: got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestRenameResearchAreaNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `research_areas` SET `name`=\\? WHERE area_id = \\?"),
			anyArgs: true,
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	if err := RenameResearchArea(db, Actor{UserID: 1, Role: "Admin"}, 404, "Nowhere"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown research area: got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestLookupManagementRequiresAdmin(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	actor := Actor{UserID: 3, Role: "Researcher"}
	if _, err := AddFaculty(db, actor, "FCI"); !errors.Is(err, ErrAuthorization) {
		t.Fatalf("AddFaculty: got %v", err)
	}
	if err := RenameFaculty(db, actor, 1, "FCI"); !errors.Is(err, ErrAuthorization) {
		t.Fatalf("RenameFaculty: got %v", err)
	}
	if _, err := AddResearchArea(db, actor, "AI"); !errors.Is(err, ErrAuthorization) {
		t.Fatalf("AddResearchArea: got %v", err)
	}
	if err := RenameResearchArea(db, actor, 1, "AI"); !errors.Is(err, ErrAuthorization) {
		t.Fatalf("RenameResearchArea: got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}
