package core

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	upperPattern    = regexp.MustCompile(`[A-Z]`)
	lowerPattern    = regexp.MustCompile(`[a-z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
	symbolPattern   = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
	unsafeRunes     = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "", "&", "")
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxNameLength     = 100
	MaxTitleLength    = 255
)

// SanitizeInput strips characters that could corrupt downstream
// rendering (angle brackets, quotes, ampersand) and trims whitespace.
// Passwords are never sanitized, only validated.
func SanitizeInput(s string) string {
	return strings.TrimSpace(unsafeRunes.Replace(s))
}

// ValidateEmail checks the address against a structural
// local@domain.tld pattern.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the password strength policy. Each failed
// rule returns its own sentinel so clients get a specific reason.
func ValidatePassword(password string) error {
	// Length bounds count characters, not bytes
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if utf8.RuneCountInString(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	if !upperPattern.MatchString(password) {
		return ErrPasswordNoUpper
	}
	if !lowerPattern.MatchString(password) {
		return ErrPasswordNoLower
	}
	if !digitPattern.MatchString(password) {
		return ErrPasswordNoDigit
	}
	if !symbolPattern.MatchString(password) {
		return ErrPasswordNoSymbol
	}
	return nil
}

// ValidateName checks a display name after sanitization.
func ValidateName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// ValidateTitle checks a task title.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}
