package sanitizer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeSearchQuery prepares a title search term for case-insensitive matching.
func NormalizeSearchQuery(q string) string {
	return strings.ToLower(TrimAndNormalize(q))
}

// NormalizeSlotLabel pads an hour label to HH:00. Labels that are not on the
// hour are returned trimmed but otherwise untouched.
func NormalizeSlotLabel(label string) string {
	label = strings.TrimSpace(label)
	hour, minute, ok := strings.Cut(label, ":")
	if !ok || minute != "00" {
		return label
	}
	h, err := strconv.Atoi(hour)
	if err != nil || h < 0 || h > 23 {
		return label
	}
	return fmt.Sprintf("%02d:00", h)
}
