package validators

import (
	"strings"
	"unicode/utf8"
)

func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && utf8.RuneCountInString(trimmed) > maxLen {
		return string([]rune(trimmed)[:maxLen])
	}
	return trimmed
}

// TrimmedLen counts the characters left after trimming surrounding whitespace.
func TrimmedLen(input string) int {
	return utf8.RuneCountInString(strings.TrimSpace(input))
}
