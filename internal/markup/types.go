package markup

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Class is the scanner's verdict for a single scalar value
type Class int

const (
	ClassLiteral Class = iota
	ClassEscape
	ClassIcon
)

func (c Class) String() string {
	switch c {
	case ClassLiteral:
		return "literal"
	case ClassEscape:
		return "escape"
	case ClassIcon:
		return "icon"
	default:
		return "unknown"
	}
}

// Width is the horizontal stretch hint. Wide and narrow exclude each other.
type Width int

const (
	WidthNormal Width = iota
	WidthWide
	WidthNarrow
)

func (w Width) String() string {
	switch w {
	case WidthNormal:
		return "normal"
	case WidthWide:
		return "wide"
	case WidthNarrow:
		return "narrow"
	default:
		return "unknown"
	}
}

// MarshalText encodes the width by name so JSON output stays readable
func (w Width) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText
func (w *Width) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "normal":
		*w = WidthNormal
	case "wide":
		*w = WidthWide
	case "narrow":
		*w = WidthNarrow
	default:
		return fmt.Errorf("unknown width %q", text)
	}
	return nil
}

// Style is the formatting state active when a run was scanned.
// It is a plain value; runs carry copies, never references.
type Style struct {
	Bold      bool  `json:"bold,omitempty"`
	Italic    bool  `json:"italic,omitempty"`
	Width     Width `json:"width,omitempty"`
	Uppercase bool  `json:"uppercase,omitempty"`
	Shadow    bool  `json:"shadow,omitempty"`
	// Color is the color code exactly as it appeared in the input
	// (usually three hex digits, never validated). Empty means no color.
	Color string `json:"color,omitempty"`
}

// IsZero reports whether the style is the initial, unformatted state
func (s Style) IsZero() bool {
	return s == Style{}
}

// HasColor reports whether a color code is set
func (s Style) HasColor() bool {
	return s.Color != ""
}

// String renders the style as a compact debug form such as "bold|wide|color=f00"
func (s Style) String() string {
	if s.IsZero() {
		return "plain"
	}
	parts := make([]string, 0, 6)
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Italic {
		parts = append(parts, "italic")
	}
	if s.Width != WidthNormal {
		parts = append(parts, s.Width.String())
	}
	if s.Uppercase {
		parts = append(parts, "uppercase")
	}
	if s.Shadow {
		parts = append(parts, "shadow")
	}
	if s.Color != "" {
		parts = append(parts, "color="+s.Color)
	}
	return strings.Join(parts, "|")
}

// Run is one unit of content paired with the style active when it was scanned.
// Icon is set when Rune is a private-use codepoint that should be drawn as a glyph.
type Run struct {
	Rune  rune
	Icon  bool
	Style Style
}

// Class returns the content class of the run (literal or icon)
func (r Run) Class() Class {
	if r.Icon {
		return ClassIcon
	}
	return ClassLiteral
}

type runJSON struct {
	Text  string `json:"text"`
	Icon  bool   `json:"icon,omitempty"`
	Style Style  `json:"style"`
}

// MarshalJSON writes the run with its content as a one-character string
func (r Run) MarshalJSON() ([]byte, error) {
	return json.Marshal(runJSON{Text: string(r.Rune), Icon: r.Icon, Style: r.Style})
}

// Segment is a maximal stretch of adjacent literal runs sharing one style.
// Icons always get a segment of their own.
type Segment struct {
	Text  string `json:"text"`
	Icon  bool   `json:"icon,omitempty"`
	Style Style  `json:"style"`
}
