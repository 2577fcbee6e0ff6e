// Package markup interprets the inline formatting codes used in Trackmania
// map names, display names and club tags.
package markup

import "unicode/utf8"

// colorLen is the number of scalar values in a color code
const colorLen = 3

// action tells the scan loop what an opcode asks for
type action int

const (
	actNone action = iota // state changed, nothing to emit
	actEmit               // emit the returned rune as a literal run
	actStop               // input ended inside the escape, stop scanning
)

// Parse interprets formatted text and returns one run per literal or icon
// scalar value, each carrying a snapshot of the style active at that point.
//
// Parse never fails: malformed input resolves to a well-defined (possibly
// empty) result. It keeps no state between calls and is safe for concurrent use.
func Parse(s string) []Run {
	if s == "" {
		return nil
	}
	return ParseInto(make([]Run, 0, utf8.RuneCountInString(s)), s)
}

// ParseInto appends the runs of s to dst and returns the extended slice.
// Callers that re-render the same text repeatedly can pass dst[:0] to reuse a buffer.
func ParseInto(dst []Run, s string) []Run {
	var style Style
	sc := scanner{src: s}

	for {
		r, ok := sc.next()
		if !ok {
			return dst
		}

		switch Classify(r) {
		case ClassEscape:
			act, out := dispatch(&sc, &style)
			switch act {
			case actStop:
				return dst
			case actEmit:
				dst = append(dst, Run{Rune: out, Style: style})
			}
		case ClassIcon:
			dst = append(dst, Run{Rune: r, Icon: true, Style: style})
		default:
			dst = append(dst, Run{Rune: r, Style: style})
		}
	}
}

// dispatch executes the opcode following an escape introducer.
// The scanner sits just past the '$' on entry.
func dispatch(sc *scanner, style *Style) (action, rune) {
	opStart := sc.pos
	op, ok := sc.next()
	if !ok {
		// trailing '$' is dropped silently
		return actStop, 0
	}

	switch op {
	case escape:
		return actEmit, escape
	case 'o':
		style.Bold = true
	case 'i':
		style.Italic = true
	case 'w':
		style.Width = WidthWide
	case 'n':
		style.Width = WidthNarrow
	case 't':
		style.Uppercase = true
	case 's':
		style.Shadow = true
	case 'g':
		style.Color = ""
	case 'z':
		// everything but the color goes back to default
		*style = Style{Color: style.Color}
	case 'L':
		// link payload: $L[url]text or $Lurl], dropped through the closing bracket
		sc.skipThrough(']')
	default:
		// anything else starts a color code; near the end of input it may be short
		sc.take(colorLen - 1)
		style.Color = sc.src[opStart:sc.pos]
	}
	return actNone, 0
}
