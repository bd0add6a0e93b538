package api

import (
	"regexp" // Regular expressions
)

// emailRegex matches a basic local@domain.tld shape
var emailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// isValidName checks the required name length of 20-60 characters
func isValidName(name string) bool {
	return len(name) >= 20 && len(name) <= 60
}

// isValidEmail checks the email against the basic pattern
func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// isValidAddress checks the optional address stays within 400 characters
func isValidAddress(address string) bool {
	return len(address) <= 400
}

// isValidPassword checks for 8-16 characters with at least one uppercase
// letter and one character outside [A-Za-z0-9]. RE2 has no lookahead, so the
// two class checks are done with a scan instead of a single regex.
func isValidPassword(password string) bool {
	if len(password) < 8 || len(password) > 16 {
		return false // Length out of range
	}
	hasUpper := false   // At least one uppercase letter
	hasSpecial := false // At least one non-alphanumeric character
	for _, ch := range password {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			// Plain alphanumeric, counts toward neither class
		default:
			hasSpecial = true
		}
	}
	return hasUpper && hasSpecial
}
