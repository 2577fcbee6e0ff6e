package render

import (
	"html"
	"strings"

	"github.com/csams/tmtext/internal/markup"
)

// HTML renders runs as an inline HTML fragment wrapped in span.nandoString.
// Each segment is nested bold, italic, width, uppercase, shadow and color,
// innermost first. icons may be nil.
func HTML(runs []markup.Run, icons *IconSet) string {
	var b strings.Builder
	b.WriteString(`<span class="nandoString">`)
	for _, seg := range markup.Segments(runs) {
		writeSegmentHTML(&b, seg, icons)
	}
	b.WriteString(`</span>`)
	return b.String()
}

func writeSegmentHTML(b *strings.Builder, seg markup.Segment, icons *IconSet) {
	var open, closing []string
	wrap := func(start, end string) {
		open = append(open, start)
		closing = append(closing, end)
	}

	st := seg.Style
	if st.Color != "" {
		wrap(`<span style="color:#`+html.EscapeString(st.Color)+`">`, `</span>`)
	}
	if st.Shadow {
		wrap(`<span class="textShadow">`, `</span>`)
	}
	if st.Uppercase {
		wrap(`<span class="textUppercase">`, `</span>`)
	}
	switch st.Width {
	case markup.WidthWide:
		wrap(`<span class="textStretch">`, `</span>`)
	case markup.WidthNarrow:
		wrap(`<span class="textShrink">`, `</span>`)
	}
	if st.Italic {
		wrap(`<i>`, `</i>`)
	}
	if st.Bold {
		wrap(`<b>`, `</b>`)
	}

	for _, o := range open {
		b.WriteString(o)
	}
	if seg.Icon {
		r := []rune(seg.Text)[0]
		b.WriteString(`<i class="`)
		b.WriteString(html.EscapeString(icons.ClassList(r)))
		b.WriteString(`">`)
		b.WriteString(seg.Text)
		b.WriteString(`</i>`)
	} else {
		b.WriteString(html.EscapeString(seg.Text))
	}
	for i := len(closing) - 1; i >= 0; i-- {
		b.WriteString(closing[i])
	}
}
