package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultIconClass is applied to every icon glyph
const DefaultIconClass = "fa-solid"

// IconSet maps private-use codepoints to icon-font class names
type IconSet struct {
	classes map[rune]string
}

// NewIconSet creates an icon set from a codepoint to class mapping
func NewIconSet(classes map[rune]string) *IconSet {
	set := &IconSet{classes: make(map[rune]string, len(classes))}
	for r, c := range classes {
		set.classes[r] = c
	}
	return set
}

// LoadIconSet reads a JSON object of hex codepoints to class names, e.g.
// {"E000": "fa-trophy", "U+F0001": "fa-flag-checkered"}
func LoadIconSet(path string) (*IconSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read icon set: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse icon set: %w", err)
	}

	classes := make(map[rune]string, len(raw))
	for key, class := range raw {
		r, err := parseCodepoint(key)
		if err != nil {
			return nil, fmt.Errorf("invalid icon codepoint %q: %w", key, err)
		}
		classes[r] = class
	}
	return &IconSet{classes: classes}, nil
}

func parseCodepoint(key string) (rune, error) {
	key = strings.TrimPrefix(strings.TrimPrefix(key, "U+"), "u+")
	n, err := strconv.ParseUint(key, 16, 32)
	if err != nil {
		return 0, err
	}
	if n > 0x10FFFF {
		return 0, errors.New("out of range")
	}
	return rune(n), nil
}

// Class returns the extra class registered for r
func (s *IconSet) Class(r rune) (string, bool) {
	if s == nil {
		return "", false
	}
	c, ok := s.classes[r]
	return c, ok
}

// ClassList returns the full class attribute for the icon r
func (s *IconSet) ClassList(r rune) string {
	if c, ok := s.Class(r); ok && c != "" {
		return DefaultIconClass + " " + c
	}
	return DefaultIconClass
}

// Len returns the number of registered icons
func (s *IconSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.classes)
}
