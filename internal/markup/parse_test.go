package markup

import (
	"strings"
	"sync"
	"testing"
	"testing/quick"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runs builds the expected runs for text drawn in a single style
func runs(text string, style Style) []Run {
	var out []Run
	for _, r := range text {
		out = append(out, Run{Rune: r, Icon: IsIcon(r), Style: style})
	}
	return out
}

func concat(parts ...[]Run) []Run {
	var out []Run
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestParse(t *testing.T) {
	bold := Style{Bold: true}
	red := Style{Color: "f00"}

	tests := []struct {
		name     string
		input    string
		expected []Run
	}{
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "plain text",
			input:    "Hello",
			expected: runs("Hello", Style{}),
		},
		{
			name:     "escaped dollar",
			input:    "$$",
			expected: runs("$", Style{}),
		},
		{
			name:     "escaped dollar keeps style",
			input:    "$o$$5",
			expected: runs("$5", bold),
		},
		{
			name:     "bold",
			input:    "$oBold",
			expected: runs("Bold", bold),
		},
		{
			name:  "reset clears flags",
			input: "$iItalic$z Normal",
			expected: concat(
				runs("Italic", Style{Italic: true}),
				runs(" Normal", Style{}),
			),
		},
		{
			name:  "reset keeps color",
			input: "$f00$o$tA$zB",
			expected: concat(
				runs("A", Style{Bold: true, Uppercase: true, Color: "f00"}),
				runs("B", red),
			),
		},
		{
			name:  "color then clear",
			input: "$f00Red$gNormal",
			expected: concat(
				runs("Red", red),
				runs("Normal", Style{}),
			),
		},
		{
			name:  "color replaces color",
			input: "$f00a$0F0b",
			expected: concat(
				runs("a", red),
				runs("b", Style{Color: "0F0"}),
			),
		},
		{
			name:     "trailing dollar",
			input:    "abc$",
			expected: runs("abc", Style{}),
		},
		{
			name:     "escaped then trailing dollar",
			input:    "$$$",
			expected: runs("$", Style{}),
		},
		{
			name:     "link payload",
			input:    "$LsecretPayload]Visible",
			expected: runs("Visible", Style{}),
		},
		{
			name:     "bracketed link payload",
			input:    "$o$L[https://example.com]Site",
			expected: concat(runs("Site", bold)),
		},
		{
			name:     "empty link payload",
			input:    "$L]x",
			expected: runs("x", Style{}),
		},
		{
			name:     "unterminated link",
			input:    "before$Lnever closed",
			expected: runs("before", Style{}),
		},
		{
			name:     "short color at end",
			input:    "x$f0",
			expected: runs("x", Style{}),
		},
		{
			name:     "one character color at end",
			input:    "x$f",
			expected: runs("x", Style{}),
		},
		{
			name:     "color swallows escape",
			input:    "$a$ox",
			expected: runs("x", Style{Color: "a$o"}),
		},
		{
			name:     "opcodes are case sensitive",
			input:    "$Obcx",
			expected: runs("x", Style{Color: "Obc"}),
		},
		{
			name:  "wide and narrow exclude each other",
			input: "$wa$nb$wc",
			expected: concat(
				runs("a", Style{Width: WidthWide}),
				runs("b", Style{Width: WidthNarrow}),
				runs("c", Style{Width: WidthWide}),
			),
		},
		{
			name:     "all flags",
			input:    "$o$i$w$t$s$123x",
			expected: runs("x", Style{Bold: true, Italic: true, Width: WidthWide, Uppercase: true, Shadow: true, Color: "123"}),
		},
		{
			name:     "icon keeps style",
			input:    "$o\uE000",
			expected: []Run{{Rune: '\uE000', Icon: true, Style: bold}},
		},
		{
			name:  "supplementary plane icon",
			input: "a\U000F0001b",
			expected: []Run{
				{Rune: 'a'},
				{Rune: '\U000F0001', Icon: true},
				{Rune: 'b'},
			},
		},
		{
			name:     "emoji is a single literal",
			input:    "😀",
			expected: []Run{{Rune: '😀'}},
		},
		{
			name:     "color counts scalars not bytes",
			input:    "$a😀xy",
			expected: runs("y", Style{Color: "a😀x"}),
		},
		{
			name:  "invalid utf-8 becomes a replacement rune",
			input: "a\xffb",
			expected: []Run{
				{Rune: 'a'},
				{Rune: utf8.RuneError},
				{Rune: 'b'},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.input))
		})
	}
}

func TestParse_PlainTextRoundTrips(t *testing.T) {
	// Without escapes or icons, every scalar becomes exactly one default run
	plain := func(s string) bool {
		s = strings.Map(func(r rune) rune {
			if r == escape || IsIcon(r) {
				return -1
			}
			return r
		}, s)

		got := Parse(s)
		if len(got) != utf8.RuneCountInString(s) {
			return false
		}
		for _, r := range got {
			if r.Icon || !r.Style.IsZero() {
				return false
			}
		}
		return Text(got) == s
	}

	require.NoError(t, quick.Check(plain, nil))
}

func TestParse_Deterministic(t *testing.T) {
	input := "$o$f80\uE001 Speed$z$i$wRun$g$$$LhiddenLink]ok$"
	first := Parse(input)
	second := Parse(input)
	assert.Equal(t, first, second)
}

func TestParse_Concurrent(t *testing.T) {
	inputs := []string{
		"$oBold",
		"$iItalic$z Normal",
		"$f00Red$gNormal",
		"$LsecretPayload]Visible",
		"\uE000$w$tWide",
	}

	want := make([][]Run, len(inputs))
	for i, in := range inputs {
		want[i] = Parse(in)
	}

	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		for i, in := range inputs {
			wg.Add(1)
			go func(i int, in string) {
				defer wg.Done()
				assert.Equal(t, want[i], Parse(in))
			}(i, in)
		}
	}
	wg.Wait()
}

func TestParseInto_ReusesBuffer(t *testing.T) {
	buf := make([]Run, 0, 32)

	out := ParseInto(buf[:0], "$oab")
	require.Len(t, out, 2)
	assert.Equal(t, cap(buf), cap(out))

	// the second parse starts from a fresh style even though the buffer is shared
	out = ParseInto(out[:0], "cd")
	assert.Equal(t, runs("cd", Style{}), out)
}

func TestParseInto_Appends(t *testing.T) {
	out := ParseInto(Parse("$oa"), "b")
	assert.Equal(t, concat(runs("a", Style{Bold: true}), runs("b", Style{})), out)
}
