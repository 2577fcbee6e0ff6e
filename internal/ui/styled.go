package ui

import (
	"unicode"

	"github.com/csams/tmtext/internal/markup"
	"github.com/csams/tmtext/internal/render"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RunStyle layers a markup style over base. Shadow has no terminal
// equivalent and is shown dim; width and uppercase are handled while drawing.
func RunStyle(base tcell.Style, st markup.Style) tcell.Style {
	style := base
	if st.Bold {
		style = style.Bold(true)
	}
	if st.Italic {
		style = style.Italic(true)
	}
	if st.Shadow {
		style = style.Dim(true)
	}
	if c, ok := render.Color(st.Color); ok {
		r, g, b := c.RGB255()
		style = style.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}
	return style
}

// DrawRuns draws runs at x,y without exceeding maxWidth cells and returns the
// number of cells used
func DrawRuns(s tcell.Screen, x, y, maxWidth int, base tcell.Style, runs []markup.Run) int {
	return drawRuns(s, x, y, maxWidth, base, runs, nil, base)
}

// RunsWidth returns the number of cells DrawRuns would use without a limit
func RunsWidth(runs []markup.Run) int {
	return drawRuns(nil, 0, 0, -1, tcell.StyleDefault, runs, nil, tcell.StyleDefault)
}

// drawRuns does the work for DrawRuns. A nil screen only measures, a negative
// maxWidth means unlimited, and runs whose index is in highlights use hl
// instead of their own foreground.
func drawRuns(s tcell.Screen, x, y, maxWidth int, base tcell.Style, runs []markup.Run, highlights map[int]bool, hl tcell.Style) int {
	used := 0
	lastX := -1
	var lastMain rune
	var lastComb []rune
	var lastStyle tcell.Style

	put := func(r rune, style tcell.Style) bool {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			// combining mark, attach to the previous cell
			if lastX >= 0 {
				lastComb = append(lastComb, r)
				if s != nil {
					s.SetContent(lastX, y, lastMain, lastComb, lastStyle)
				}
			}
			return true
		}
		if maxWidth >= 0 && used+w > maxWidth {
			return false
		}
		if s != nil {
			s.SetContent(x+used, y, r, nil, style)
		}
		lastX, lastMain, lastComb, lastStyle = x+used, r, nil, style
		used += w
		return true
	}

	for i, run := range runs {
		style := RunStyle(base, run.Style)
		if run.Icon && !run.Style.HasColor() {
			style = style.Foreground(ColorIcon)
		}
		if highlights[i] {
			fg, bg, _ := hl.Decompose()
			style = style.Foreground(fg).Background(bg).Bold(true)
		}

		for _, r := range displayRunes(run) {
			if !put(r, style) {
				return used
			}
		}
		if run.Style.Width == markup.WidthWide {
			if !put(' ', style) {
				return used
			}
		}
	}
	return used
}

// displayRunes returns what a run looks like on screen, which differs from
// its content only for uppercase runs
func displayRunes(run markup.Run) []rune {
	if !run.Style.Uppercase || run.Icon {
		return []rune{run.Rune}
	}
	if run.Rune < unicode.MaxASCII {
		return []rune{unicode.ToUpper(run.Rune)}
	}
	// Full case mapping may expand, e.g. ß becomes SS
	return []rune(cases.Upper(language.Und).String(string(run.Rune)))
}
