package utils

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"sana@example.com",
		"a.b+c@sub.domain.org",
		"x@y.co",
	}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{
		"",
		"no-at-sign",
		"two@@example.com",
		"@example.com",
		"user@",
		"user@nodot",
		"user@.leadingdot",
		"user@trailingdot.",
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}
