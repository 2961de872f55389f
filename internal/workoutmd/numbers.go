package workoutmd

import (
	"regexp"
	"strconv"
	"strings"
)

// Hand-edited notes carry cells like "135lbs" or "8 reps", so numbers are
// read from the longest numeric prefix and trailing text is ignored.
var (
	intPrefixRe   = regexp.MustCompile(`^[+-]?\d+`)
	floatPrefixRe = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
	digitsRe      = regexp.MustCompile(`\d+`)
)

// parseIntPrefix returns the integer at the start of s. ok is false when s
// does not start with a number.
func parseIntPrefix(s string) (int, bool) {
	m := intPrefixRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseFloatPrefix returns the decimal number at the start of s.
func parseFloatPrefix(s string) (float64, bool) {
	m := floatPrefixRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseSeconds reads the first run of digits in a time cell such as "60s".
func parseSeconds(s string) (int, bool) {
	m := digitsRe.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
