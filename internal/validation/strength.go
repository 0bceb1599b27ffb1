package validation

import (
	"regexp"
	"unicode/utf8"
)

// StrengthLevel уровень надежности пароля
type StrengthLevel string

const (
	StrengthNone       StrengthLevel = ""
	StrengthWeak       StrengthLevel = "weak"
	StrengthMedium     StrengthLevel = "medium"
	StrengthStrong     StrengthLevel = "strong"
	StrengthVeryStrong StrengthLevel = "very strong"
)

// Strength оценка пароля для формы регистрации
type Strength struct {
	Level StrengthLevel
	Tips  []string
	Score int // 0..100
}

var (
	lowerRe   = regexp.MustCompile(`[a-z]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)
)

// PasswordStrength оценивает пароль: длина дает до 40 баллов,
// каждый класс символов еще по 15.
func PasswordStrength(password string) Strength {
	if password == "" {
		return Strength{Level: StrengthNone}
	}

	n := utf8.RuneCountInString(password)
	score := 0
	if n >= 6 {
		score += 20
	}
	if n >= 8 {
		score += 10
	}
	if n >= 12 {
		score += 10
	}

	var tips []string
	if n < 8 {
		tips = append(tips, "use at least 8 characters")
	}
	for _, class := range []struct {
		re  *regexp.Regexp
		tip string
	}{
		{lowerRe, "add lowercase letters"},
		{upperRe, "add uppercase letters"},
		{digitRe, "add digits"},
		{specialRe, "add special characters"},
	} {
		if class.re.MatchString(password) {
			score += 15
		} else {
			tips = append(tips, class.tip)
		}
	}

	var level StrengthLevel
	switch {
	case score < 30:
		level = StrengthWeak
	case score < 60:
		level = StrengthMedium
	case score < 80:
		level = StrengthStrong
	default:
		level = StrengthVeryStrong
	}

	return Strength{Score: score, Level: level, Tips: tips}
}
