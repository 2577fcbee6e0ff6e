package render

import (
	"strings"

	"github.com/csams/tmtext/internal/markup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// upper applies full Unicode uppercasing ("ß" becomes "SS").
// A Caser keeps state, so each call gets its own.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// displayText returns the text of a segment as it should be shown,
// with the uppercase flag applied. Icons are never case mapped.
func displayText(seg markup.Segment) string {
	if seg.Style.Uppercase && !seg.Icon {
		return upper(seg.Text)
	}
	return seg.Text
}

// Plain renders runs as unformatted text with uppercase applied
func Plain(runs []markup.Run) string {
	var b strings.Builder
	for _, seg := range markup.Segments(runs) {
		b.WriteString(displayText(seg))
	}
	return b.String()
}
