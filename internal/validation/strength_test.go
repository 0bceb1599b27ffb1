package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		level    StrengthLevel
		score    int
		tips     int
	}{
		{name: "empty", password: "", level: StrengthNone, score: 0, tips: 0},
		{name: "short digits", password: "123", level: StrengthWeak, score: 15, tips: 4},
		{name: "six lowercase", password: "abcdef", level: StrengthMedium, score: 35, tips: 4},
		{name: "mixed eight", password: "abcDEF12", level: StrengthStrong, score: 75, tips: 1},
		{name: "everything", password: "abcDEF123!@#", level: StrengthVeryStrong, score: 100, tips: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := PasswordStrength(tt.password)
			assert.Equal(t, tt.level, s.Level)
			assert.Equal(t, tt.score, s.Score)
			assert.Len(t, s.Tips, tt.tips)
		})
	}
}
