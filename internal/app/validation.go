package app

import (
	"regexp"
	"strings"
)

// Тексты нарушенных правил возвращаются клиенту списком.
const (
	RuleUsernameRequired     = "Username is required."
	RuleUsernameMinLength    = "Username requires a minimum length of 5 characters."
	RuleUsernameAlphanumeric = "Username contains non alphanumeric characters - not allowed."
	RulePasswordRequired     = "Password is required."
	RuleEmailInvalid         = "Email does not appear to be valid"
)

const minUsernameLength = 5

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidationError содержит список нарушенных правил декларативной проверки.
type ValidationError struct {
	Rules []string
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Rules, "; ")
}

// validateUser проверяет поля пользователя по декларативному списку правил.
// При requirePassword пустой пароль является нарушением; при обновлении
// профиля пустой пароль означает "не менять".
func validateUser(username, password, email string, requirePassword bool) *ValidationError {
	var rules []string

	if username == "" {
		rules = append(rules, RuleUsernameRequired)
	}
	if len(username) < minUsernameLength {
		rules = append(rules, RuleUsernameMinLength)
	}
	if username != "" && !usernameRegex.MatchString(username) {
		rules = append(rules, RuleUsernameAlphanumeric)
	}
	if requirePassword && password == "" {
		rules = append(rules, RulePasswordRequired)
	}
	if !emailRegex.MatchString(email) {
		rules = append(rules, RuleEmailInvalid)
	}

	if len(rules) > 0 {
		return &ValidationError{Rules: rules}
	}
	return nil
}
