package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/csams/tmtext/internal/cache"
	"github.com/csams/tmtext/internal/markup"
	"github.com/csams/tmtext/internal/models"
	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
)

// Column indexes of the map table
const (
	colName = iota
	colAuthor
	colTime
	colVotes
	colUploaded
)

// mapMatch records which field of a map matched the filter
type mapMatch struct {
	MatchResult
	field string
}

// MapTableRow adapts a map to the TableRow interface
type MapTableRow struct {
	m      *models.Map
	name   []markup.Run
	author []markup.Run
	match  *mapMatch
}

func (r *MapTableRow) GetCell(columnIndex int) string {
	switch columnIndex {
	case colName:
		return r.m.PlainName
	case colAuthor:
		return markup.Text(r.author)
	case colTime:
		if r.m.Medals == nil {
			return models.FormatMedalTime(0)
		}
		return models.FormatMedalTime(r.m.Medals.Author)
	case colVotes:
		return humanize.Comma(int64(r.m.Votes))
	case colUploaded:
		if r.m.Uploaded.IsZero() {
			return "—"
		}
		return humanize.Time(r.m.Uploaded)
	default:
		return ""
	}
}

func (r *MapTableRow) GetCellRuns(columnIndex int) []markup.Run {
	switch columnIndex {
	case colName:
		return r.name
	case colAuthor:
		return r.author
	}
	return nil
}

func (r *MapTableRow) GetCellStyle(columnIndex int, selected bool) *tcell.Style {
	if columnIndex == colTime && !selected {
		style := tcell.StyleDefault.Foreground(ColorMedalAuthor)
		return &style
	}
	return nil
}

func (r *MapTableRow) GetHighlightPositions(columnIndex int) []int {
	if r.match == nil {
		return nil
	}
	switch {
	case columnIndex == colName && r.match.field == FieldName:
		return r.match.Positions
	case columnIndex == colAuthor && r.match.field == FieldAuthor:
		return r.match.Positions
	}
	return nil
}

// authorRuns formats an author as "[tag] name", both parts keeping their markup
func authorRuns(c *cache.Cache, u models.User) []markup.Run {
	name := c.Get(u.DisplayName)
	if u.ClubTag == "" {
		return name
	}
	tag := c.Get(u.ClubTag)
	runs := make([]markup.Run, 0, len(tag)+len(name)+3)
	runs = append(runs, markup.Run{Rune: '['})
	runs = append(runs, tag...)
	runs = append(runs, markup.Run{Rune: ']'}, markup.Run{Rune: ' '})
	return append(runs, name...)
}

// MapListView shows the catalog as a table with a detail pane for the
// selected map
type MapListView struct {
	table        *Table
	cache        *cache.Cache
	maps         []*models.Map
	rows         []*MapTableRow
	searchState  *SearchState
	showDetail   bool
	showRuns     bool
	detailScroll int
}

var _ View = (*MapListView)(nil)

// NewMapListView creates an empty list that formats names through c
func NewMapListView(c *cache.Cache) *MapListView {
	v := &MapListView{
		table:       NewTable(),
		cache:       c,
		searchState: NewSearchState(),
	}

	v.table.SetColumns([]TableColumn{
		{Title: "Name", MinWidth: 20, FlexWeight: 0.6, Align: AlignLeft},
		{Title: "Author", MinWidth: 12, FlexWeight: 0.4, Align: AlignLeft},
		{Title: "Time", Width: 9, Align: AlignRight},
		{Title: "Votes", Width: 7, Align: AlignRight},
		{Title: "Uploaded", Width: 14, Align: AlignLeft},
	})

	return v
}

// SetMaps replaces the listed maps and reapplies the filter
func (v *MapListView) SetMaps(maps []*models.Map) {
	v.maps = maps
	v.applyFilter()
}

// SetShowRuns turns the run inspector in the detail pane on or off
func (v *MapListView) SetShowRuns(show bool) {
	v.showRuns = show
}

// GetSearchState returns the filter being edited
func (v *MapListView) GetSearchState() *SearchState {
	return v.searchState
}

// UpdateSearch reapplies the filter after the query changed
func (v *MapListView) UpdateSearch() {
	v.applyFilter()
	v.table.SelectFirst()
}

// ClearSearch drops the filter. It reports whether there was one.
func (v *MapListView) ClearSearch() bool {
	if v.searchState.Query() == "" {
		return false
	}
	v.searchState.Clear()
	v.applyFilter()
	return true
}

// Len returns the number of maps currently shown
func (v *MapListView) Len() int {
	return len(v.rows)
}

// GetSelected returns the selected map, if any
func (v *MapListView) GetSelected() *models.Map {
	if row, ok := v.table.GetSelectedRow().(*MapTableRow); ok {
		return row.m
	}
	return nil
}

// SelectUID selects the map with the given uid if it is shown
func (v *MapListView) SelectUID(uid string) bool {
	for i, row := range v.rows {
		if row.m.UID == uid {
			v.table.SetSelectedIndex(i)
			v.detailScroll = 0
			return true
		}
	}
	return false
}

func (v *MapListView) applyFilter() {
	v.rows = v.rows[:0]
	for _, m := range v.maps {
		row := &MapTableRow{
			m:      m,
			name:   v.cache.Get(m.Name),
			author: authorRuns(v.cache, m.Author),
		}
		if v.searchState.Query() != "" {
			ok, result, field := v.searchState.MatchMap(markup.Text(row.name), markup.Text(row.author))
			if !ok {
				continue
			}
			row.match = &mapMatch{MatchResult: result, field: field}
		}
		v.rows = append(v.rows, row)
	}

	if v.searchState.Query() != "" {
		sort.SliceStable(v.rows, func(i, j int) bool {
			return v.rows[i].match.Score > v.rows[j].match.Score
		})
	}

	rows := make([]TableRow, len(v.rows))
	for i, row := range v.rows {
		rows[i] = row
	}
	v.table.SetRows(rows)
}

func (v *MapListView) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyDown:
		return v.move(v.table.SelectNext())
	case tcell.KeyUp:
		return v.move(v.table.SelectPrevious())
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		return v.move(v.table.PageDown())
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		return v.move(v.table.PageUp())
	case tcell.KeyHome:
		v.table.SelectFirst()
		return v.move(true)
	case tcell.KeyEnd:
		v.table.SelectLast()
		return v.move(true)
	case tcell.KeyEnter:
		v.showDetail = !v.showDetail
		v.detailScroll = 0
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'j':
			return v.move(v.table.SelectNext())
		case 'k':
			return v.move(v.table.SelectPrevious())
		case 'g':
			v.table.SelectFirst()
			return v.move(true)
		case 'G':
			v.table.SelectLast()
			return v.move(true)
		case 'i':
			v.showRuns = !v.showRuns
			return true
		case 'J':
			if v.showDetail {
				v.detailScroll++
				return true
			}
		case 'K':
			if v.showDetail && v.detailScroll > 0 {
				v.detailScroll--
				return true
			}
		}
	}
	return false
}

func (v *MapListView) move(moved bool) bool {
	if moved {
		v.detailScroll = 0
	}
	return moved
}

func (v *MapListView) Draw(s tcell.Screen) {
	w, h := s.Size()
	h-- // status bar

	detailHeight := 0
	if v.showDetail {
		detailHeight = h / 2
		if detailHeight > 18 {
			detailHeight = 18
		}
	}
	listHeight := h - detailHeight

	drawText(s, 0, 0, tcell.StyleDefault.Bold(true), "Maps")
	for x := 0; x < w; x++ {
		s.SetContent(x, 1, '─', nil, tcell.StyleDefault.Foreground(ColorFgGutter))
	}

	if query := v.searchState.Query(); query != "" {
		searchText := fmt.Sprintf("Filter: %s (%d matches)", query, len(v.rows))
		drawText(s, w-textWidth(searchText)-2, 0, tcell.StyleDefault.Foreground(ColorHighlight), searchText)
	}

	if len(v.rows) == 0 {
		emptyStyle := tcell.StyleDefault.Foreground(ColorDimmed)
		if v.searchState.Query() != "" {
			drawText(s, 2, 3, emptyStyle, "No maps match your search")
		} else {
			drawText(s, 2, 3, emptyStyle, "The catalog is empty")
			drawText(s, 2, 5, emptyStyle, "Use ':import <file-or-url>' to load maps")
			drawText(s, 2, 6, emptyStyle, "or ':add <formatted name>' to add one by hand")
		}
		return
	}

	v.table.SetPosition(0, 2)
	v.table.SetSize(w, listHeight-2)
	v.table.Draw(s)

	if first, last, total := v.table.GetScrollInfo(); total > last-first+1 {
		scrollInfo := fmt.Sprintf("[%d-%d/%d]", first, last, total)
		drawText(s, 6, 0, tcell.StyleDefault.Foreground(ColorDimmed), scrollInfo)
	}

	if detailHeight > 2 {
		v.drawDetail(s, listHeight, w, detailHeight)
	}
}

// detailPart is a fixed-style piece of a detail line
type detailPart struct {
	text  string
	style tcell.Style
}

// detailLine is one row of the detail pane: a label followed by either
// formatted runs or plain parts
type detailLine struct {
	label string
	runs  []markup.Run
	parts []detailPart
}

func plainLine(label, text string) detailLine {
	return detailLine{label: label, parts: []detailPart{{text: text, style: tcell.StyleDefault}}}
}

func (v *MapListView) detailLines(row *MapTableRow) []detailLine {
	m := row.m
	lines := []detailLine{
		{label: "Name", runs: row.name},
		{label: "Raw", parts: []detailPart{{text: m.Name, style: tcell.StyleDefault.Foreground(ColorRaw)}}},
		plainLine("Plain", m.PlainName),
		{label: "Author", runs: row.author},
		plainLine("UID", m.UID),
	}

	if m.Medals != nil {
		medals := []struct {
			name  string
			ms    int
			color tcell.Color
		}{
			{"Author", m.Medals.Author, ColorMedalAuthor},
			{"Gold", m.Medals.Gold, ColorMedalGold},
			{"Silver", m.Medals.Silver, ColorMedalSilver},
			{"Bronze", m.Medals.Bronze, ColorMedalBronze},
		}
		var parts []detailPart
		for _, medal := range medals {
			parts = append(parts, detailPart{
				text:  fmt.Sprintf("%s %s  ", medal.name, models.FormatMedalTime(medal.ms)),
				style: tcell.StyleDefault.Foreground(medal.color),
			})
		}
		lines = append(lines, detailLine{label: "Medals", parts: parts})
	}

	if len(m.Tags) > 0 {
		lines = append(lines, plainLine("Tags", strings.Join(m.Tags, ", ")))
	}
	lines = append(lines, plainLine("Votes", humanize.Comma(int64(m.Votes))))
	if !m.Uploaded.IsZero() {
		lines = append(lines, plainLine("Uploaded", fmt.Sprintf("%s (%s)", m.Uploaded.Local().Format("2006-01-02 15:04"), humanize.Time(m.Uploaded))))
	}

	if v.showRuns {
		lines = append(lines, detailLine{}, plainLine("Runs", fmt.Sprintf("%d", len(row.name))))
		for i, run := range row.name {
			kind := "literal"
			if run.Icon {
				kind = "icon"
			}
			lines = append(lines, plainLine(fmt.Sprintf("%d", i), fmt.Sprintf("%U %-7s %s", run.Rune, kind, run.Style)))
		}
	}
	return lines
}

func (v *MapListView) drawDetail(s tcell.Screen, startY, width, height int) {
	separatorStyle := tcell.StyleDefault.Foreground(ColorFgGutter)
	for x := 0; x < width; x++ {
		s.SetContent(x, startY, '─', nil, separatorStyle)
	}
	drawText(s, 0, startY+1, tcell.StyleDefault.Bold(true), "Details")

	row, ok := v.table.GetSelectedRow().(*MapTableRow)
	if !ok {
		return
	}
	lines := v.detailLines(row)

	maxLines := height - 2
	maxScroll := len(lines) - maxLines
	if maxScroll < 0 {
		maxScroll = 0
	}
	if v.detailScroll > maxScroll {
		v.detailScroll = maxScroll
	}

	const labelWidth = 10
	labelStyle := tcell.StyleDefault.Foreground(ColorDimmed)
	for i := 0; i < maxLines && i+v.detailScroll < len(lines); i++ {
		line := lines[i+v.detailScroll]
		y := startY + 2 + i
		drawText(s, 1, y, labelStyle, line.label)

		x := 1 + labelWidth
		avail := width - x - 1
		if line.runs != nil {
			DrawRuns(s, x, y, avail, tcell.StyleDefault, line.runs)
			continue
		}
		for _, part := range line.parts {
			n := drawTextClipped(s, x, y, avail, part.style, part.text)
			x += n
			avail -= n
		}
	}

	if len(lines) > maxLines {
		scrollInfo := fmt.Sprintf("[%d-%d/%d]", v.detailScroll+1, min(v.detailScroll+maxLines, len(lines)), len(lines))
		drawText(s, width-textWidth(scrollInfo)-2, startY+1, tcell.StyleDefault.Foreground(ColorDimmed), scrollInfo)
	}
}
