package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const MinPasswordLength = 8

var (
	ErrEmailInvalid     = errors.New("email is not valid")
	ErrPasswordBlank    = errors.New("password cannot be blank")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateRegistration checks the shape of a sign-up request. The email is
// expected to be normalized already.
func ValidateRegistration(email, password string) error {
	var errs []error

	if !emailRegex.MatchString(email) {
		errs = append(errs, ErrEmailInvalid)
	}
	if isBlank(password) {
		errs = append(errs, ErrPasswordBlank)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		errs = append(errs, ErrPasswordTooShort)
	}

	return errors.Join(errs...)
}

// NormalizeEmail produces the login key: trimmed and lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
