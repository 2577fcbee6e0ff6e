package ui

import (
	"github.com/csams/tmtext/internal/markup"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// TableColumn defines a column in the table
type TableColumn struct {
	Title      string
	Width      int     // 0 means flexible width
	MinWidth   int     // Minimum width for flexible columns
	MaxWidth   int     // Maximum width for flexible columns (0 = no limit)
	FlexWeight float64 // Weight for distributing available space (0-1)
	Align      Alignment
}

// Alignment specifies text alignment within a cell
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// TableRow represents a single row of data
type TableRow interface {
	// GetCell returns the plain content for a specific column index
	GetCell(columnIndex int) string
	// GetCellRuns returns formatted content for a cell, or nil to draw GetCell
	GetCellRuns(columnIndex int) []markup.Run
	// GetCellStyle returns the style for a specific cell (can return nil for default)
	GetCellStyle(columnIndex int, selected bool) *tcell.Style
	// GetHighlightPositions returns character positions to highlight in a cell
	GetHighlightPositions(columnIndex int) []int
}

// Table is a scrollable table widget
type Table struct {
	columns      []TableColumn
	rows         []TableRow
	selectedIdx  int
	scrollOffset int

	x, y         int
	width        int
	height       int
	headerHeight int
	showHeader   bool

	selectionIndicator string // e.g., "> "

	headerStyle    tcell.Style
	defaultStyle   tcell.Style
	selectedStyle  tcell.Style
	highlightStyle tcell.Style

	columnWidths []int
}

// NewTable creates a new table widget
func NewTable() *Table {
	return &Table{
		headerHeight:       1,
		showHeader:         true,
		selectionIndicator: "> ",
		headerStyle:        tcell.StyleDefault.Bold(true).Foreground(ColorHeader),
		defaultStyle:       tcell.StyleDefault,
		selectedStyle:      tcell.StyleDefault.Background(ColorSelection).Foreground(ColorBright),
		highlightStyle:     tcell.StyleDefault.Foreground(ColorHighlight).Bold(true),
	}
}

// SetColumns sets the column configuration
func (t *Table) SetColumns(columns []TableColumn) {
	t.columns = columns
	t.calculateColumnWidths()
}

// SetRows sets the data rows
func (t *Table) SetRows(rows []TableRow) {
	t.rows = rows
	t.adjustSelection()
}

// SetPosition sets the table's position on screen
func (t *Table) SetPosition(x, y int) {
	t.x = x
	t.y = y
}

// SetSize sets the table's size
func (t *Table) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.calculateColumnWidths()
	t.ensureVisible()
}

// GetSelectedIndex returns the currently selected row index
func (t *Table) GetSelectedIndex() int {
	return t.selectedIdx
}

// SetSelectedIndex selects row idx, clamped to the available rows
func (t *Table) SetSelectedIndex(idx int) {
	t.selectedIdx = idx
	t.adjustSelection()
}

// GetSelectedRow returns the currently selected row
func (t *Table) GetSelectedRow() TableRow {
	if t.selectedIdx >= 0 && t.selectedIdx < len(t.rows) {
		return t.rows[t.selectedIdx]
	}
	return nil
}

// SelectNext moves selection to the next row
func (t *Table) SelectNext() bool {
	if t.selectedIdx < len(t.rows)-1 {
		t.selectedIdx++
		t.ensureVisible()
		return true
	}
	return false
}

// SelectPrevious moves selection to the previous row
func (t *Table) SelectPrevious() bool {
	if t.selectedIdx > 0 {
		t.selectedIdx--
		t.ensureVisible()
		return true
	}
	return false
}

// SelectFirst moves selection to the first row
func (t *Table) SelectFirst() {
	t.selectedIdx = 0
	t.scrollOffset = 0
}

// SelectLast moves selection to the last row
func (t *Table) SelectLast() {
	if len(t.rows) > 0 {
		t.selectedIdx = len(t.rows) - 1
		t.ensureVisible()
	}
}

// PageDown moves selection down by one page
func (t *Table) PageDown() bool {
	return t.moveBy(t.pageSize())
}

// PageUp moves selection up by one page
func (t *Table) PageUp() bool {
	return t.moveBy(-t.pageSize())
}

func (t *Table) pageSize() int {
	size := t.getVisibleHeight() - 1
	if size < 1 {
		size = 1
	}
	return size
}

func (t *Table) moveBy(delta int) bool {
	if len(t.rows) == 0 {
		return false
	}
	newIdx := t.selectedIdx + delta
	if newIdx >= len(t.rows) {
		newIdx = len(t.rows) - 1
	}
	if newIdx < 0 {
		newIdx = 0
	}
	if newIdx == t.selectedIdx {
		return false
	}
	t.selectedIdx = newIdx
	t.ensureVisible()
	return true
}

// Draw renders the table to the screen
func (t *Table) Draw(s tcell.Screen) {
	if t.width <= 0 || t.height <= 0 {
		return
	}

	t.clear(s)

	currentY := t.y
	if t.showHeader {
		t.drawHeader(s, currentY)
		currentY += t.headerHeight
	}

	visibleHeight := t.getVisibleHeight()
	for i := 0; i < visibleHeight && i+t.scrollOffset < len(t.rows); i++ {
		rowIdx := i + t.scrollOffset
		t.drawRow(s, currentY+i, t.rows[rowIdx], rowIdx == t.selectedIdx)
	}
}

// GetScrollInfo returns information about the current scroll position
func (t *Table) GetScrollInfo() (firstVisible, lastVisible, total int) {
	visibleHeight := t.getVisibleHeight()
	firstVisible = t.scrollOffset + 1
	lastVisible = t.scrollOffset + visibleHeight
	if lastVisible > len(t.rows) {
		lastVisible = len(t.rows)
	}
	total = len(t.rows)
	return
}

func (t *Table) getVisibleHeight() int {
	height := t.height
	if t.showHeader {
		height -= t.headerHeight
	}
	if height < 0 {
		height = 0
	}
	return height
}

func (t *Table) ensureVisible() {
	visibleHeight := t.getVisibleHeight()
	if visibleHeight <= 0 {
		return
	}

	// Center the selection if possible
	targetOffset := t.selectedIdx - visibleHeight/2

	maxOffset := len(t.rows) - visibleHeight
	if maxOffset < 0 {
		maxOffset = 0
	}

	switch {
	case targetOffset < 0:
		t.scrollOffset = 0
	case targetOffset > maxOffset:
		t.scrollOffset = maxOffset
	default:
		t.scrollOffset = targetOffset
	}
}

func (t *Table) adjustSelection() {
	if len(t.rows) == 0 {
		t.selectedIdx = 0
		t.scrollOffset = 0
		return
	}

	if t.selectedIdx >= len(t.rows) {
		t.selectedIdx = len(t.rows) - 1
	}
	if t.selectedIdx < 0 {
		t.selectedIdx = 0
	}
	t.ensureVisible()
}

func (t *Table) indicatorWidth() int {
	return runewidth.StringWidth(t.selectionIndicator)
}

func (t *Table) calculateColumnWidths() {
	if len(t.columns) == 0 || t.width <= 0 {
		return
	}

	t.columnWidths = make([]int, len(t.columns))

	// First pass: assign fixed widths and calculate total flex weight
	fixedWidth := 0
	totalFlexWeight := 0.0
	indicatorWidth := t.indicatorWidth()

	for i, col := range t.columns {
		if col.Width > 0 {
			width := col.Width
			if i == 0 {
				width += indicatorWidth
			}
			t.columnWidths[i] = width
			fixedWidth += width
		} else if col.FlexWeight > 0 {
			totalFlexWeight += col.FlexWeight
		} else {
			totalFlexWeight += 1.0
		}
	}

	padding := len(t.columns) - 1

	// Second pass: distribute remaining width to flexible columns
	availableWidth := t.width - fixedWidth - padding
	if availableWidth <= 0 || totalFlexWeight == 0 {
		return
	}
	for i, col := range t.columns {
		if col.Width > 0 {
			continue
		}
		weight := col.FlexWeight
		if weight <= 0 {
			weight = 1.0
		}

		width := int(float64(availableWidth) * (weight / totalFlexWeight))
		if col.MinWidth > 0 && width < col.MinWidth {
			width = col.MinWidth
		}
		if col.MaxWidth > 0 && width > col.MaxWidth {
			width = col.MaxWidth
		}
		if i == 0 {
			width += indicatorWidth
		}
		t.columnWidths[i] = width
	}
}

func (t *Table) clear(s tcell.Screen) {
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			s.SetContent(t.x+x, t.y+y, ' ', nil, t.defaultStyle)
		}
	}
}

func (t *Table) drawHeader(s tcell.Screen, y int) {
	x := t.x

	for i, col := range t.columns {
		if i > 0 {
			x++ // Add padding between columns
		}
		width := t.columnWidths[i]
		cx := x
		if i == 0 {
			cx += t.indicatorWidth()
			width -= t.indicatorWidth()
		}
		if col.Title != "" {
			t.drawText(s, cx, y, width, col.Title, t.headerStyle, col.Align, nil)
		}
		x += t.columnWidths[i]
	}
}

func (t *Table) drawRow(s tcell.Screen, y int, row TableRow, selected bool) {
	if selected {
		for x := 0; x < t.width; x++ {
			s.SetContent(t.x+x, y, ' ', nil, t.selectedStyle)
		}
	}

	x := t.x
	for i, col := range t.columns {
		if i > 0 {
			x++ // Add padding between columns
		}

		style := t.defaultStyle
		if selected {
			style = t.selectedStyle
		}
		if cellStyle := row.GetCellStyle(i, selected); cellStyle != nil {
			style = *cellStyle
		}

		cx, width := x, t.columnWidths[i]
		if i == 0 && t.selectionIndicator != "" {
			if selected {
				t.drawText(s, cx, y, width, t.selectionIndicator, style, AlignLeft, nil)
			}
			cx += t.indicatorWidth()
			width -= t.indicatorWidth()
		}

		highlights := toSet(row.GetHighlightPositions(i))
		if runs := row.GetCellRuns(i); runs != nil {
			t.drawRuns(s, cx, y, width, runs, style, highlights, selected)
		} else {
			t.drawText(s, cx, y, width, row.GetCell(i), style, col.Align, highlights)
		}

		x += t.columnWidths[i]
	}
}

func (t *Table) cellHighlightStyle(style tcell.Style, selected bool) tcell.Style {
	if selected {
		return style.Foreground(ColorBgDark).Background(ColorHighlight).Bold(true)
	}
	return t.highlightStyle
}

// drawRuns draws formatted content and marks truncation with an ellipsis
func (t *Table) drawRuns(s tcell.Screen, x, y, width int, runs []markup.Run, style tcell.Style, highlights map[int]bool, selected bool) {
	if width <= 0 {
		return
	}
	hl := t.cellHighlightStyle(style, selected)
	if RunsWidth(runs) <= width {
		drawRuns(s, x, y, width, style, runs, highlights, hl)
		return
	}
	used := drawRuns(s, x, y, width-1, style, runs, highlights, hl)
	s.SetContent(x+used, y, '…', nil, style)
}

func (t *Table) drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style, align Alignment, highlights map[int]bool) {
	if width <= 0 {
		return
	}

	runes := []rune(text)
	textWidth := runewidth.StringWidth(text)
	truncated := textWidth > width
	if truncated {
		text = runewidth.Truncate(text, width, "…")
		runes = []rune(text)
		textWidth = runewidth.StringWidth(text)
	}

	startX := x
	if textWidth < width {
		switch align {
		case AlignCenter:
			startX = x + (width-textWidth)/2
		case AlignRight:
			startX = x + width - textWidth
		}
	}

	hl := t.cellHighlightStyle(style, style.Background(ColorSelection) == style)
	col := startX
	for i, r := range runes {
		charStyle := style
		if highlights[i] && !(truncated && i == len(runes)-1) {
			charStyle = hl
		}
		s.SetContent(col, y, r, nil, charStyle)
		col += runewidth.RuneWidth(r)
	}
}

func toSet(positions []int) map[int]bool {
	if len(positions) == 0 {
		return nil
	}
	set := make(map[int]bool, len(positions))
	for _, p := range positions {
		set[p] = true
	}
	return set
}
