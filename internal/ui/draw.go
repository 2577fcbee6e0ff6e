package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		s.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
}

// drawTextClipped draws at most maxWidth cells of text and returns the
// number of cells used
func drawTextClipped(s tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) int {
	if maxWidth <= 0 {
		return 0
	}
	if runewidth.StringWidth(text) > maxWidth {
		text = runewidth.Truncate(text, maxWidth, "…")
	}
	drawText(s, x, y, style, text)
	return runewidth.StringWidth(text)
}

func textWidth(text string) int {
	return runewidth.StringWidth(text)
}

// drawBox fills a rectangle and draws a single line border around it
func drawBox(s tcell.Screen, x, y, width, height int, style tcell.Style) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			s.SetContent(col, row, ' ', nil, style)
		}
	}
	for col := x + 1; col < x+width-1; col++ {
		s.SetContent(col, y, '─', nil, style)
		s.SetContent(col, y+height-1, '─', nil, style)
	}
	for row := y + 1; row < y+height-1; row++ {
		s.SetContent(x, row, '│', nil, style)
		s.SetContent(x+width-1, row, '│', nil, style)
	}
	s.SetContent(x, y, '┌', nil, style)
	s.SetContent(x+width-1, y, '┐', nil, style)
	s.SetContent(x, y+height-1, '└', nil, style)
	s.SetContent(x+width-1, y+height-1, '┘', nil, style)
}

// wrapText wraps text on spaces to fit within width cells
func wrapText(text string, width int) []string {
	if width <= 0 || textWidth(text) <= width {
		return []string{text}
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, word := range strings.Fields(text) {
		ww := textWidth(word)
		if lineWidth > 0 && lineWidth+1+ww > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += ww
	}
	if lineWidth > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
