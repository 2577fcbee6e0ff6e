// Package render turns parsed markup runs into output for terminals, HTML
// pages and plain-text consumers.
package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Color resolves a markup color code such as "f80" to an RGB color.
// Codes are carried through the parser unvalidated, so anything that is not
// exactly three hex digits reports false.
func Color(code string) (colorful.Color, bool) {
	if len(code) != 3 {
		return colorful.Color{}, false
	}
	for i := 0; i < len(code); i++ {
		if !isHex(code[i]) {
			return colorful.Color{}, false
		}
	}
	c, err := colorful.Hex("#" + code)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
