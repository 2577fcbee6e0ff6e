package ui

import (
	"github.com/gdamore/tcell/v2"
)

var helpContent = []string{
	"",
	"Navigation:",
	"  j / k         Move down/up in the list",
	"  Ctrl+F / B    Page down/up",
	"  g / G         Go to top/bottom of the list",
	"",
	"Details:",
	"  Enter         Open or close the detail pane",
	"  J / K         Scroll the detail pane",
	"  i             Show or hide the run inspector",
	"",
	"Catalog:",
	"  d             Delete the selected map",
	"  :add <name>   Add a map by its formatted name",
	"  :import <src> Import maps from a file or URL",
	"  :w            Save the catalog",
	"  :purge        Drop cached formatting results",
	"",
	"Other:",
	"  /             Filter by name or author",
	"  :             Enter command mode",
	"  ?             Show this help dialog",
	"  Esc           Clear the filter / close dialogs",
	"  q, :q         Quit",
}

// HelpDialog lists the keybindings
type HelpDialog struct {
	visible      bool
	scrollOffset int
	visibleLines int
}

func NewHelpDialog() *HelpDialog {
	return &HelpDialog{visibleLines: 15}
}

func (h *HelpDialog) Show() {
	h.visible = true
	h.scrollOffset = 0
}

func (h *HelpDialog) Hide() {
	h.visible = false
}

func (h *HelpDialog) IsVisible() bool {
	return h.visible
}

func (h *HelpDialog) Draw(s tcell.Screen) {
	if !h.visible {
		return
	}

	w, screenHeight := s.Size()

	maxLineWidth := 0
	for _, line := range helpContent {
		maxLineWidth = max(maxLineWidth, textWidth(line))
	}
	dialogWidth := max(min(maxLineWidth+4, w-4), 40)
	dialogHeight := max(min(len(helpContent)+6, screenHeight-4), 10)

	startX := max((w-dialogWidth)/2, 1)
	startY := max((screenHeight-dialogHeight)/2, 1)

	dialogStyle := tcell.StyleDefault.Background(ColorBgDark).Foreground(ColorBlue)
	drawBox(s, startX, startY, dialogWidth, dialogHeight, dialogStyle)

	title := "Help - Keybindings"
	drawText(s, startX+(dialogWidth-textWidth(title))/2, startY+1, dialogStyle.Foreground(ColorYellow).Bold(true), title)

	contentStartY := startY + 3
	h.visibleLines = dialogHeight - 5
	h.clampScroll()

	contentStyle := dialogStyle.Foreground(ColorFg)
	for i := 0; i < h.visibleLines && i+h.scrollOffset < len(helpContent); i++ {
		drawTextClipped(s, startX+2, contentStartY+i, dialogWidth-4, contentStyle, helpContent[i+h.scrollOffset])
	}

	footer := "Press Esc or ? to close this help dialog"
	if len(helpContent) > h.visibleLines {
		footer = "j/k to scroll, Esc to close"
	}
	footerX := max(startX+2, startX+(dialogWidth-textWidth(footer))/2)
	drawText(s, footerX, startY+dialogHeight-2, dialogStyle.Foreground(ColorDimmed), footer)
}

func (h *HelpDialog) HandleKey(ev *tcell.EventKey) bool {
	if !h.visible {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		h.Hide()
	case tcell.KeyUp:
		h.scrollOffset--
	case tcell.KeyDown:
		h.scrollOffset++
	case tcell.KeyRune:
		switch ev.Rune() {
		case '?', 'q':
			h.Hide()
		case 'j':
			h.scrollOffset++
		case 'k':
			h.scrollOffset--
		case 'g':
			h.scrollOffset = 0
		case 'G':
			h.scrollOffset = len(helpContent)
		}
	}
	h.clampScroll()
	return true // Consume all other keys when visible
}

func (h *HelpDialog) clampScroll() {
	maxScroll := max(len(helpContent)-h.visibleLines, 0)
	h.scrollOffset = max(min(h.scrollOffset, maxScroll), 0)
}
