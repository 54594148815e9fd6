package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{"empty", "", 10, nil},
		{"whitespace only", "   \n ", 10, nil},
		{"fits on one line", "lamp ok", 10, []string{"lamp ok"}},
		{"greedy fill", "aa bb cc dd", 5, []string{"aa bb", "cc dd"}},
		{"exact width", "abcde fghij", 5, []string{"abcde", "fghij"}},
		{"collapses whitespace", "aa   bb\ncc", 8, []string{"aa bb cc"}},
		{"hard break long word", "abcdefghijkl", 5, []string{"abcde", "fghij", "kl"}},
		{"tail of broken word takes next word", "abcdefg hi", 5, []string{"abcde", "fg hi"}},
		{"flush before long word", "ab abcdefgh", 5, []string{"ab", "abcde", "fgh"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapText(tt.text, tt.maxWidth, fixedWidth))
		})
	}
}

func TestWrapTextIsDeterministic(t *testing.T) {
	text := "Replaced the lamp and cleaned the integrator rod; convergence verified on scope and flat."
	first := WrapText(text, 20, fixedWidth)
	second := WrapText(text, 20, fixedWidth)
	assert.Equal(t, first, second)
}

func TestWrapTextHardBreakKeepsEveryRune(t *testing.T) {
	word := strings.Repeat("0123456789", 7) + "xyz"
	lines := WrapText(word, 9, fixedWidth)

	require.Len(t, lines, 9)
	for _, l := range lines {
		assert.LessOrEqual(t, fixedWidth(l), 9.0)
	}
	assert.Equal(t, word, strings.Join(lines, ""))
}

func TestRemarksRowHeight(t *testing.T) {
	tests := []struct {
		lines int
		want  float64
	}{
		{0, 40},
		{1, 40},
		{2, 40},
		{3, 44},
		{5, 68},
		{20, 248},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RemarksRowHeight(tt.lines), "lines=%d", tt.lines)
	}
}

func TestRemarksLayoutOfLongUnbrokenText(t *testing.T) {
	rec := &recorder{}
	remarks := strings.Repeat("x", 500)

	layout := layoutRemarks(rec, remarks)

	maxWidth := remarksWidths[1] - 2*cellInset - 4
	require.Greater(t, len(layout.lines), 1)
	for _, l := range layout.lines {
		assert.LessOrEqual(t, rec.TextWidth(l, FontRegular, remarksTextSize), maxWidth)
		assert.NotEmpty(t, l)
	}
	assert.Equal(t, remarks, strings.Join(layout.lines, ""))
	assert.Equal(t, float64(len(layout.lines))*12+8, layout.height)
}

func TestSplitPartDescription(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want []string
	}{
		{"empty", "", []string{""}},
		{"short", "Lamp 3kW", []string{"Lamp 3kW"}},
		{"exactly thirty", strings.Repeat("a", 30), []string{strings.Repeat("a", 30)}},
		{
			"splits mid word",
			"Integrator rod assembly with mounting bracket",
			[]string{"Integrator rod assembly with m", "ounting bracket"},
		},
		{
			"drops past two lines",
			strings.Repeat("a", 30) + strings.Repeat("b", 30) + "ccc",
			[]string{strings.Repeat("a", 30), strings.Repeat("b", 30)},
		},
		{"counts runes", strings.Repeat("é", 31), []string{strings.Repeat("é", 30), "é"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitPartDescription(tt.desc))
		})
	}
}

func TestClipText(t *testing.T) {
	assert.Equal(t, "abc", clipText("abcdef", 3, fixedWidth))
	assert.Equal(t, "abcdef", clipText("abcdef", 10, fixedWidth))
	assert.Equal(t, "", clipText("abcdef", 0, fixedWidth))
}
