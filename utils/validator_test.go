package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"alif.akmal@mmu.edu.my",
		"a.b+tag@sub.example.org",
	}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}

	invalid := []string{
		"",
		"not-an-email",
		"missing@domain",
		"@mmu.edu.my",
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, msg := ValidatePassword("short"); ok || msg == "" {
		t.Errorf("short password should be rejected with a message, got ok=%v msg=%q", ok, msg)
	}
	if ok, msg := ValidatePassword("longenough"); !ok || msg != "" {
		t.Errorf("8+ character password should pass, got ok=%v msg=%q", ok, msg)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  hello \x00world  "); got != "hello world" {
		t.Errorf("got %q", got)
	}
}
