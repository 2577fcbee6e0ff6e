package markup

import "unicode/utf8"

// escape introduces every opcode
const escape = '$'

// IsIcon reports whether r lies in one of the Unicode private-use areas,
// which the game uses to embed icon-font glyphs in plain text.
func IsIcon(r rune) bool {
	return (r >= 0xE000 && r <= 0xF8FF) ||
		(r >= 0xF0000 && r <= 0xFFFFD) ||
		(r >= 0x100000 && r <= 0x10FFFD)
}

// Classify decides what the scalar value r means at the current scan position
func Classify(r rune) Class {
	switch {
	case r == escape:
		return ClassEscape
	case IsIcon(r):
		return ClassIcon
	default:
		return ClassLiteral
	}
}

// scanner walks a string one scalar value at a time.
// pos is a byte offset and always sits on a scalar boundary.
type scanner struct {
	src string
	pos int
}

// next returns the scalar at the cursor and advances past it.
// Invalid UTF-8 decodes to utf8.RuneError and advances a single byte.
func (sc *scanner) next() (rune, bool) {
	if sc.pos >= len(sc.src) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(sc.src[sc.pos:])
	sc.pos += size
	return r, true
}

// skipThrough advances past the next occurrence of delim, or to the end of input
func (sc *scanner) skipThrough(delim rune) {
	for {
		r, ok := sc.next()
		if !ok || r == delim {
			return
		}
	}
}

// take advances over at most n scalar values and returns the source text covered
func (sc *scanner) take(n int) string {
	start := sc.pos
	for i := 0; i < n; i++ {
		if _, ok := sc.next(); !ok {
			break
		}
	}
	return sc.src[start:sc.pos]
}
