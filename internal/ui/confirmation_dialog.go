package ui

import (
	"github.com/gdamore/tcell/v2"
)

// ConfirmationDialog asks a yes/no question on top of the current view
type ConfirmationDialog struct {
	visible bool
	title   string
	message string
	onYes   func()
	onNo    func()
}

func NewConfirmationDialog() *ConfirmationDialog {
	return &ConfirmationDialog{}
}

func (c *ConfirmationDialog) Show(title, message string, onYes, onNo func()) {
	c.visible = true
	c.title = title
	c.message = message
	c.onYes = onYes
	c.onNo = onNo
}

func (c *ConfirmationDialog) Hide() {
	*c = ConfirmationDialog{}
}

func (c *ConfirmationDialog) IsVisible() bool {
	return c.visible
}

func (c *ConfirmationDialog) Draw(s tcell.Screen) {
	if !c.visible {
		return
	}

	w, screenHeight := s.Size()
	dialogWidth := min(50, w)
	dialogHeight := min(8, screenHeight)
	startX := (w - dialogWidth) / 2
	startY := (screenHeight - dialogHeight) / 2

	dialogStyle := tcell.StyleDefault.Background(ColorBgDark).Foreground(ColorRed)
	drawBox(s, startX, startY, dialogWidth, dialogHeight, dialogStyle)

	titleStyle := dialogStyle.Foreground(ColorYellow).Bold(true)
	titleX := max(startX+2, startX+(dialogWidth-textWidth(c.title))/2)
	drawText(s, titleX, startY+1, titleStyle, c.title)

	messageStyle := dialogStyle.Foreground(ColorFg)
	for i, line := range wrapText(c.message, dialogWidth-4) {
		if i+3 >= dialogHeight-2 {
			break
		}
		drawTextClipped(s, startX+2, startY+3+i, dialogWidth-4, messageStyle, line)
	}

	buttonStyle := messageStyle.Bold(true)
	buttonsY := startY + dialogHeight - 2
	drawText(s, startX+dialogWidth/2-6, buttonsY, buttonStyle, "[Y]es")
	drawText(s, startX+dialogWidth/2+2, buttonsY, buttonStyle, "[N]o")
}

func (c *ConfirmationDialog) HandleKey(ev *tcell.EventKey) bool {
	if !c.visible {
		return false
	}

	var answer func()
	switch {
	case ev.Key() == tcell.KeyEscape:
		answer = c.onNo
	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y'):
		answer = c.onYes
	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'n' || ev.Rune() == 'N'):
		answer = c.onNo
	default:
		return true // Consume all other keys when visible
	}

	// hide first so the callback may open another dialog
	c.Hide()
	if answer != nil {
		answer()
	}
	return true
}
