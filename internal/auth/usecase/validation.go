package usecase

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func isValidEmail(email string) bool {
	return email != "" && validate.Var(email, "email") == nil
}

// NormalizeEmail canonicalizes an address for storage and lookup: the whole
// address is lower-cased and googlemail.com is folded into gmail.com. Dots and
// +tags are kept, so "a.b+x@gmail.com" and "ab@gmail.com" stay distinct accounts.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	local, domain := email[:at], email[at+1:]
	if domain == "googlemail.com" {
		domain = "gmail.com"
	}
	return local + "@" + domain
}

// isStrongPassword requires 8+ characters with at least one digit and one upper-case letter.
func isStrongPassword(password string) bool {
	if len([]rune(password)) < 8 {
		return false
	}
	var hasDigit, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	return hasDigit && hasUpper
}
