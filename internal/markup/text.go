package markup

import "strings"

// Strip removes all formatting from s and returns the text a reader would see.
// Icon codepoints are kept; they are content, not formatting.
func Strip(s string) string {
	return Text(Parse(s))
}

// Text concatenates the content of runs
func Text(runs []Run) string {
	if len(runs) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(runs))
	for _, r := range runs {
		b.WriteRune(r.Rune)
	}
	return b.String()
}

// Segments coalesces adjacent literal runs with equal styles so renderers can
// emit one container per stretch instead of one per character.
// Concatenating the segment texts yields Text(runs).
func Segments(runs []Run) []Segment {
	if len(runs) == 0 {
		return nil
	}

	var segments []Segment
	var buf strings.Builder
	current := runs[0].Style
	open := false

	flush := func() {
		if !open {
			return
		}
		segments = append(segments, Segment{Text: buf.String(), Style: current})
		buf.Reset()
		open = false
	}

	for _, r := range runs {
		if r.Icon {
			flush()
			segments = append(segments, Segment{Text: string(r.Rune), Icon: true, Style: r.Style})
			continue
		}
		if open && r.Style != current {
			flush()
		}
		current = r.Style
		open = true
		buf.WriteRune(r.Rune)
	}
	flush()
	return segments
}
