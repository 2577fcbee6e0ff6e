package render

import (
	"strconv"
	"strings"

	"github.com/csams/tmtext/internal/markup"
)

// ANSIOptions controls terminal escape output
type ANSIOptions struct {
	NoColor bool // drop colors but keep attributes
}

const (
	sgrReset  = "\x1b[0m"
	sgrBold   = "1"
	sgrFaint  = "2"
	sgrItalic = "3"
)

// ANSI renders runs with SGR escape sequences. Shadow is shown as faint text,
// wide text gets a space after each character and narrow is not representable.
func ANSI(runs []markup.Run, opts ANSIOptions) string {
	var b strings.Builder
	var prev markup.Style

	for _, seg := range markup.Segments(runs) {
		st := seg.Style
		if opts.NoColor {
			st.Color = ""
		}
		if st != prev {
			b.WriteString(sgr(st))
			prev = st
		}

		text := displayText(seg)
		if st.Width == markup.WidthWide {
			text = spread(text)
		}
		b.WriteString(text)
	}

	if !prev.IsZero() {
		b.WriteString(sgrReset)
	}
	return b.String()
}

// sgr builds the sequence that switches the terminal to st from any state
func sgr(st markup.Style) string {
	params := []string{"0"}
	if st.Bold {
		params = append(params, sgrBold)
	}
	if st.Shadow {
		params = append(params, sgrFaint)
	}
	if st.Italic {
		params = append(params, sgrItalic)
	}
	if c, ok := Color(st.Color); ok {
		r, g, b := c.RGB255()
		params = append(params, "38", "2",
			strconv.Itoa(int(r)), strconv.Itoa(int(g)), strconv.Itoa(int(b)))
	}
	return "\x1b[" + strings.Join(params, ";") + "m"
}

func spread(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		b.WriteRune(r)
		b.WriteByte(' ')
	}
	return b.String()
}
