package account

import (
	"strings"
	"unicode"

	"termfeed/domain"
)

// MinPasswordLength is the shortest password the server accepts.
const MinPasswordLength = 8

// DeleteConfirmation is the phrase the user must type before the
// account deletion commits.
const DeleteConfirmation = "DELETE"

// ValidatePassword rejects passwords the server would refuse: too
// short, or missing either a letter or a digit.
func ValidatePassword(pw string) error {
	if len(pw) < MinPasswordLength {
		return domain.ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return domain.ErrWeakPassword
	}
	return nil
}

// ConfirmDeletion checks the typed confirmation phrase. The match is
// exact; no trimming beyond surrounding whitespace, no case folding.
func ConfirmDeletion(typed string) error {
	if strings.TrimSpace(typed) != DeleteConfirmation {
		return domain.ErrConfirmationMismatch
	}
	return nil
}
