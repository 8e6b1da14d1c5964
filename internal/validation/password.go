package validation

import (
	"strings"
)

// ValidatePassword enforces a 12-character minimum and blocks common weak
// patterns. The 72-byte cap matches bcrypt, which silently truncates longer
// input.
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return Error("password must be at least 12 characters")
	}

	if len(password) > 72 {
		return Error("password must not exceed 72 characters")
	}

	lower := strings.ToLower(password)
	commonPatterns := []string{
		"password", "123456", "qwerty", "admin", "letmein",
		"welcome", "monkey", "dragon", "master", "sunshine",
	}

	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			return Error("password is too common, please choose a stronger one")
		}
	}

	return nil
}
