package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func userRowStep(t *testing.T, password, role string) *queryStep {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return &queryStep{
		kind:    kindQuery,
		pattern: regexp.MustCompile("SELECT \\* FROM `users` WHERE mmu_id = \\?"),
		anyArgs: true,
		columns: []string{"user_id", "mmu_id", "password", "role"},
		rows:    [][]driver.Value{{int64(7), "RES001", string(hash), role}},
	}
}

func TestAuthenticate(t *testing.T) {
	steps := []*queryStep{
		userRowStep(t, "secret-pass", "Researcher"),
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	user, err := Authenticate(db, "RES001", "secret-pass", "Researcher")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.UserID != 7 {
		t.Fatalf("got user %d want 7", user.UserID)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestAuthenticateFailuresAreUniform(t *testing.T) {
	steps := []*queryStep{
		// unknown id: no row
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `users` WHERE mmu_id = \\?"),
			anyArgs: true,
			columns: []string{"user_id", "mmu_id", "password", "role"},
		},
		userRowStep(t, "secret-pass", "Researcher"),
		userRowStep(t, "secret-pass", "Researcher"),
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	if _, err := Authenticate(db, "NOPE", "whatever", "Researcher"); !errors.Is(err, ErrAuthentication) {
		t.Fatalf("unknown id: got %v", err)
	}
	if _, err := Authenticate(db, "RES001", "wrong-pass", "Researcher"); !errors.Is(err, ErrAuthentication) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, err := Authenticate(db, "RES001", "secret-pass", "Admin"); !errors.Is(err, ErrAuthentication) {
		t.Fatalf("role mismatch: got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func accountRowStep(name, role string) *queryStep {
	return &queryStep{
		kind:    kindQuery,
		pattern: regexp.MustCompile("SELECT \\* FROM `users` WHERE user_id = \\?"),
		anyArgs: true,
		columns: []string{"user_id", "name", "role"},
		rows:    [][]driver.Value{{int64(7), name, role}},
	}
}

func TestUpdateUser(t *testing.T) {
	steps := []*queryStep{
		accountRowStep("Siti", "Researcher"),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `users` SET"),
			anyArgs: true,
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	name := "Siti Nurhaliza"
	user, err := UpdateUser(db, Actor{UserID: 1, Role: "Admin"}, 7, UserUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if user.Name != name {
		t.Fatalf("got name %q want %q", user.Name, name)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateUserValidation(t *testing.T) {
	db, _, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	name := "New Name"
	if _, err := UpdateUser(db, Actor{UserID: 3, Role: "Researcher"}, 7, UserUpdate{Name: &name}); !errors.Is(err, ErrAuthorization) {
		t.Fatalf("non-admin: got %v", err)
	}

	empty := ""
	if _, err := UpdateUser(db, Actor{UserID: 1, Role: "Admin"}, 7, UserUpdate{Name: &empty}); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty name: got %v", err)
	}

	if _, err := UpdateUser(db, Actor{UserID: 1, Role: "Admin"}, 7, UserUpdate{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("no fields: got %v", err)
	}
}

func TestUpdateUserProtectsAdmins(t *testing.T) {
	steps := []*queryStep{
		accountRowStep("Root Admin", "Admin"),
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	name := "Renamed"
	if _, err := UpdateUser(db, Actor{UserID: 1, Role: "Admin"}, 7, UserUpdate{Name: &name}); !errors.Is(err, ErrAuthorization) {
		t.Fatalf("admin target: got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("no update may run against an admin account: %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	// Deleting an account removes its role-profile row in the same
	// transaction.
	steps := []*queryStep{
		accountRowStep("Siti", "Researcher"),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("DELETE FROM `researcher_profiles` WHERE user_id = \\?"),
			args:    []driver.Value{int64(7)},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("DELETE FROM `users` WHERE `users`\\.`user_id` = \\?"),
			args:    []driver.Value{int64(7)},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	if err := DeleteUser(db, Actor{UserID: 1, Role: "Admin"}, 7); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteUserProtectsAdmins(t *testing.T) {
	steps := []*queryStep{
		accountRowStep("Root Admin", "Admin"),
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	if err := DeleteUser(db, Actor{UserID: 1, Role: "Admin"}, 7); !errors.Is(err, ErrAuthorization) {
		t.Fatalf("admin target: got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("no delete may run against an admin account: %v", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	db, _, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	in := UserInput{MMUID: "X1", Name: "X", Email: "x@mmu.edu.my", Password: "password1", Faculty: "FCI", Role: "Researcher"}

	missing := in
	missing.Email = ""
	if _, err := CreateUser(db, missing); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing email: got %v", err)
	}

	badRole := in
	badRole.Role = "Dean"
	if _, err := CreateUser(db, badRole); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown role: got %v", err)
	}
}
