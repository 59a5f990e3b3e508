package utils

import (
	"strings"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 6

// IsValidEmail checks the email shape: a local part, an @, and a domain
// segment with a dot
func IsValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	local, domain := parts[0], parts[1]
	if local == "" || domain == "" {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return true
}
