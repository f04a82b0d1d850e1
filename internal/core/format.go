package core

import "strconv"

// FormatStarCount renders counts of 1000 and above as thousands with one
// decimal: 1234 -> "1.2k", 1000 -> "1.0k".
func FormatStarCount(n int) string {
	if n < 1000 {
		return strconv.Itoa(n)
	}

	return strconv.FormatFloat(float64(n)/1000, 'f', 1, 64) + "k"
}

// TruncateText cuts s to maxLen runes and appends "..." when it was longer.
func TruncateText(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen < 0 || len(runes) <= maxLen {
		return s
	}

	return string(runes[:maxLen]) + "..."
}
