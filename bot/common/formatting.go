package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatBalance formats a coin amount with thousand separators
func FormatBalance(balance int64) string {
	str := fmt.Sprintf("%d", balance)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatGambleResult formats the outcome line of a gamble
func FormatGambleResult(won bool, delta, newBalance int64) string {
	if won {
		return fmt.Sprintf("🎉 **You won %s coins!** New balance: **%s coins**",
			FormatBalance(delta), FormatBalance(newBalance))
	}
	return fmt.Sprintf("😔 **You lost %s coins.** New balance: **%s coins**",
		FormatBalance(-delta), FormatBalance(newBalance))
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// FormatRetryAfter renders a remaining cooldown as a human wait time,
// rounding up so "wait 0s" never appears while a cooldown is active
func FormatRetryAfter(d time.Duration) string {
	if d < time.Second {
		d = time.Second
	}
	d = d.Round(time.Second)

	if d >= time.Hour {
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}
