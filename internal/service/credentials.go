package service

import (
	"net/mail"
	"regexp"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// PolicyError reports why a set of credentials was rejected. Missing is
// populated only by the password criteria check and names the unmet
// criteria ("numbers", "capitals").
type PolicyError struct {
	Message string
	Missing []string
}

func (e *PolicyError) Error() string { return e.Message }

// ValidateCredentials checks registration credentials against the account
// policy: username of 4-16 word characters, a syntactically valid email
// address, and a password of at least 8 characters containing at least two
// digits and one uppercase letter. It is pure; each call scans the inputs
// from scratch.
func ValidateCredentials(username, email, lock string) error {
	if username == "" || email == "" || lock == "" {
		return &PolicyError{Message: "username, email and lock are required"}
	}

	if len(username) < 4 || len(username) > 16 {
		return &PolicyError{Message: "username must be between 4-16 characters"}
	}
	if !usernamePattern.MatchString(username) {
		return &PolicyError{Message: "username may only be alphanumeric, and optionally contain underscores"}
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return &PolicyError{Message: "email entered is invalid"}
	}

	if len(lock) < 8 {
		return &PolicyError{Message: "password must be at least 8 characters"}
	}

	// single pass over ASCII ranges; lowercase letters and symbols count
	// toward neither criterion
	var numbers, capitals int
	for i := 0; i < len(lock); i++ {
		switch c := lock[i]; {
		case c >= 'A' && c <= 'Z':
			capitals++
		case c >= '0' && c <= '9':
			numbers++
		}
	}

	var missing []string
	if numbers < 2 {
		missing = append(missing, "numbers")
	}
	if capitals < 1 {
		missing = append(missing, "capitals")
	}
	if len(missing) > 0 {
		return &PolicyError{
			Message: "missing criteria for password requirements",
			Missing: missing,
		}
	}

	return nil
}
