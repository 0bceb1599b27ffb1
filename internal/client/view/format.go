package view

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

const (
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
	placeholder    = "-"
)

// DateTime форматирует момент как 2006-01-02 15:04:05 в локальной зоне
func DateTime(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return t.Local().Format(layoutDateTime)
}

// DateTimePtr - DateTime для необязательных полей
func DateTimePtr(t *time.Time) string {
	if t == nil {
		return placeholder
	}
	return DateTime(*t)
}

// Date форматирует только дату
func Date(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return t.Local().Format(layoutDate)
}

// RelativeTime описывает t относительно now: "just now", "5 minutes ago", ...
// Старше 30 дней - просто дата.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	diff := int(now.Sub(t).Seconds())
	switch {
	case diff < 60:
		return "just now"
	case diff < 3600:
		return plural(diff/60, "minute") + " ago"
	case diff < 86400:
		return plural(diff/3600, "hour") + " ago"
	case diff < 2592000:
		return plural(diff/86400, "day") + " ago"
	default:
		return Date(t)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FileSize форматирует размер в байтах с двоичными кратными
func FileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s", v, sizeUnits[i])
}

// Number форматирует целое с разделителями тысяч
func Number(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}

// Percent форматирует долю (0.5 -> 50.00%)
func Percent(v float64, decimals int) string {
	return strconv.FormatFloat(v*100, 'f', decimals, 64) + "%"
}

// StatusText - текст статуса пользователя
func StatusText(status int) string {
	if status == pkgapi.UserStatusEnabled {
		return "enabled"
	}
	return "disabled"
}

// CardKeyStatusText - текст статуса карт-ключа
func CardKeyStatusText(status int) string {
	switch status {
	case pkgapi.CardKeyStatusUnused:
		return "unused"
	case pkgapi.CardKeyStatusUsed:
		return "used"
	case pkgapi.CardKeyStatusDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// CardKeyTypeText - текст типа карт-ключа
func CardKeyTypeText(cardType int) string {
	switch cardType {
	case pkgapi.CardKeyTypeRegister:
		return "register"
	case pkgapi.CardKeyTypeVIP:
		return "vip"
	default:
		return "unknown"
	}
}

// VIPText описывает VIP статус пользователя на момент now
func VIPText(u *pkgapi.User, now time.Time) string {
	if u == nil || u.VIPLevel != 1 {
		return "no"
	}
	if !u.IsVIP(now) {
		return "expired"
	}
	days := int(math.Ceil(u.VIPExpireAt.Sub(now).Hours() / 24))
	return fmt.Sprintf("until %s (%s left)", Date(*u.VIPExpireAt), plural(days, "day"))
}
