package report

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cast"
)

var ordinals = []string{"First", "Second", "Third", "Fourth", "Fifth", "Sixth", "Seventh", "Eighth", "Ninth", "Tenth"}

// OrdinalVisit converts a service visit (1..10, "first".."tenth" or "special", any case)
// to its ordinal word. Other numbers become "{n}th"; other words only get their
// first letter capitalized.
func OrdinalVisit(v any) string {
	s := strings.TrimSpace(cast.ToString(v))
	if s == "" {
		return ""
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= len(ordinals) {
			return ordinals[n-1]
		}
		return strconv.Itoa(n) + "th"
	}

	lower := strings.ToLower(s)
	if lower == "special" {
		return "Special"
	}
	for _, word := range ordinals {
		if lower == strings.ToLower(word) {
			return word
		}
	}
	return capitalize(s)
}

// NormalizeYesNo canonicalizes yes/no in any case. Anything else is returned verbatim.
func NormalizeYesNo(v any) string {
	s := cast.ToString(v)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return "Yes"
	case "no":
		return "No"
	}
	return s
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
