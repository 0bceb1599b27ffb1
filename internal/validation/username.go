package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Ограничения совпадают с правилами привязки backend
const (
	MinUsernameLen = 3
	MaxUsernameLen = 50
	MinPasswordLen = 6
	MaxPasswordLen = 50
)

// CardCodePattern формат кода активации: TL| и 24 символа A-Z0-9
var CardCodePattern = regexp.MustCompile(`^TL\|[A-Z0-9]{24}$`)

// ValidateCardCode проверяет формат кода активации.
// Окончательная проверка (существование, статус) выполняется на сервере.
func ValidateCardCode(code string) error {
	if code == "" {
		return fmt.Errorf("%w: card code cannot be empty", ErrValidation)
	}
	if !CardCodePattern.MatchString(code) {
		return fmt.Errorf("%w: card code must be TL| followed by 24 uppercase letters or digits", ErrValidation)
	}
	return nil
}

// ValidateUsername проверяет длину username
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: username cannot be empty", ErrValidation)
	}

	n := utf8.RuneCountInString(username)
	if n < MinUsernameLen {
		return fmt.Errorf("%w: username must be at least %d characters long", ErrValidation, MinUsernameLen)
	}
	if n > MaxUsernameLen {
		return fmt.Errorf("%w: username must not exceed %d characters", ErrValidation, MaxUsernameLen)
	}
	return nil
}

// ValidatePassword проверяет длину пароля
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", ErrValidation)
	}

	n := utf8.RuneCountInString(password)
	if n < MinPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, MinPasswordLen)
	}
	if n > MaxPasswordLen {
		return fmt.Errorf("%w: password must not exceed %d characters", ErrValidation, MaxPasswordLen)
	}
	return nil
}
