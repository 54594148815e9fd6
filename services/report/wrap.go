package report

import (
	"math"
	"strings"
)

const (
	remarksMinHeight  = 40.0
	remarksLineHeight = 12.0
	remarksPadding    = 8.0

	partDescriptionLineLen = 30
)

// MeasureFunc returns the rendered width of s in the active font and size.
type MeasureFunc func(s string) float64

// WrapText fills lines greedily: a word joins the current line while the line still
// fits in maxWidth, otherwise the line is flushed. A word that does not fit on a
// line of its own is broken rune by rune.
func WrapText(text string, maxWidth float64, measure MeasureFunc) []string {
	var lines []string
	current := ""

	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if measure(word) <= maxWidth {
			current = word
			continue
		}

		chunk := ""
		for _, r := range word {
			next := chunk + string(r)
			if chunk != "" && measure(next) > maxWidth {
				lines = append(lines, chunk)
				chunk = string(r)
				continue
			}
			chunk = next
		}
		current = chunk
	}

	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// RemarksRowHeight is the height of the remarks row holding the given number of wrapped lines.
func RemarksRowHeight(lines int) float64 {
	return math.Max(remarksMinHeight, float64(lines)*remarksLineHeight+remarksPadding)
}

// SplitPartDescription cuts a part description every 30 runes and keeps at most two lines.
// It never looks at word boundaries.
func SplitPartDescription(desc string) []string {
	runes := []rune(desc)
	if len(runes) <= partDescriptionLineLen {
		return []string{desc}
	}
	rest := runes[partDescriptionLineLen:]
	if len(rest) > partDescriptionLineLen {
		rest = rest[:partDescriptionLineLen]
	}
	return []string{string(runes[:partDescriptionLineLen]), string(rest)}
}

// clipText drops trailing runes until text fits in maxWidth.
func clipText(text string, maxWidth float64, measure MeasureFunc) string {
	if maxWidth <= 0 {
		return ""
	}
	runes := []rune(text)
	for len(runes) > 0 && measure(string(runes)) > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
