package domain

import (
	"fmt"
	"strings"
)

// ValidateTitle rejects an empty or whitespace-only issue title.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	return nil
}

// ValidateIdentity rejects an identity whose email does not contain "@".
func ValidateIdentity(id Identity) error {
	if !strings.Contains(id.Email, "@") {
		return fmt.Errorf("%w: identity email %q must contain '@'", ErrValidation, id.Email)
	}
	return nil
}
