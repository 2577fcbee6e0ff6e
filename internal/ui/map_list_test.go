package ui

import (
	"testing"
	"time"

	"github.com/csams/tmtext/internal/cache"
	"github.com/csams/tmtext/internal/markup"
	"github.com/csams/tmtext/internal/models"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMaps() []*models.Map {
	mk := func(uid, name, author, tag string, votes int) *models.Map {
		return &models.Map{
			UID:       uid,
			Name:      name,
			PlainName: markup.Strip(name),
			Votes:     votes,
			Uploaded:  time.Now().Add(-48 * time.Hour),
			Author:    models.User{AccountID: author, DisplayName: author, ClubTag: tag},
			Medals:    &models.Medals{Author: 41234, Gold: 44000, Silver: 50000, Bronze: 62000},
		}
	}
	return []*models.Map{
		mk("uid-snow", "$f80Snow $oDrift", "Hylis", "$f00TM", 1234),
		mk("uid-ice", "$iIce $zPalace", "Wirtual", "", 87),
		mk("uid-dirt", "$wDirt", "Scrapie", "", 5),
	}
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func keyOf(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestMapListView_SetMaps(t *testing.T) {
	v := NewMapListView(cache.New(16))
	assert.Nil(t, v.GetSelected())

	v.SetMaps(testMaps())
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, "uid-snow", v.GetSelected().UID)

	assert.True(t, v.HandleKey(keyRune('j')))
	assert.Equal(t, "uid-ice", v.GetSelected().UID)
	assert.True(t, v.HandleKey(keyRune('G')))
	assert.Equal(t, "uid-dirt", v.GetSelected().UID)
	assert.False(t, v.HandleKey(keyOf(tcell.KeyDown)), "already at the bottom")
	assert.True(t, v.HandleKey(keyRune('g')))
	assert.Equal(t, "uid-snow", v.GetSelected().UID)

	assert.True(t, v.SelectUID("uid-ice"))
	assert.Equal(t, "uid-ice", v.GetSelected().UID)
	assert.False(t, v.SelectUID("missing"))
}

func TestMapListView_Filter(t *testing.T) {
	v := NewMapListView(cache.New(16))
	v.GetSearchState().SetMinScore(ScoreThresholdNone)
	v.SetMaps(testMaps())

	v.GetSearchState().SetQuery("palace")
	v.UpdateSearch()
	require.Equal(t, 1, v.Len())
	assert.Equal(t, "uid-ice", v.GetSelected().UID)

	// names are matched on their plain text, so positions index the runs
	row := v.rows[0]
	assert.Equal(t, FieldName, row.match.field)
	assert.Len(t, row.GetHighlightPositions(colName), 6)
	assert.Nil(t, row.GetHighlightPositions(colAuthor))

	v.GetSearchState().SetQuery("hylis")
	v.UpdateSearch()
	require.Equal(t, 1, v.Len())
	row = v.rows[0]
	assert.Equal(t, FieldAuthor, row.match.field)
	assert.NotEmpty(t, row.GetHighlightPositions(colAuthor))

	assert.True(t, v.ClearSearch())
	assert.False(t, v.ClearSearch())
	assert.Equal(t, 3, v.Len())
}

func TestMapTableRow_Cells(t *testing.T) {
	c := cache.New(16)
	m := testMaps()[0]
	row := &MapTableRow{m: m, name: c.Get(m.Name), author: authorRuns(c, m.Author)}

	assert.Equal(t, "Snow Drift", row.GetCell(colName))
	assert.Equal(t, "[TM] Hylis", row.GetCell(colAuthor))
	assert.Equal(t, "0:41.234", row.GetCell(colTime))
	assert.Equal(t, "1,234", row.GetCell(colVotes))
	assert.Equal(t, "2 days ago", row.GetCell(colUploaded))

	// the club tag keeps its own color and does not leak into the name
	require.NotNil(t, row.GetCellRuns(colAuthor))
	assert.Equal(t, "f00", row.author[1].Style.Color)
	assert.Equal(t, "", row.author[len(row.author)-1].Style.Color)
	assert.Nil(t, row.GetCellRuns(colVotes))

	m.Medals = nil
	assert.Equal(t, "-:--.---", row.GetCell(colTime))
}

func TestMapListView_Draw(t *testing.T) {
	s := newScreen(t, 100, 40)
	v := NewMapListView(cache.New(16))
	v.SetMaps(testMaps())

	v.Draw(s)
	assert.Equal(t, "Maps", rowText(s, 0))
	assert.Contains(t, rowText(s, 2), "Name")
	assert.Contains(t, rowText(s, 3), "> Snow Drift")
	assert.Contains(t, rowText(s, 3), "[TM] Hylis")
	assert.Contains(t, rowText(s, 4), "Ice Palace")
	assert.Contains(t, rowText(s, 5), "D i r t")
	assert.NotContains(t, screenText(s), "Details")

	// the name column is drawn with its own formatting
	x := len("> ")
	fg, _, _ := cellStyle(s, x, 3).Decompose()
	assert.Equal(t, tcell.NewRGBColor(0xff, 0x88, 0x00), fg)
}

func TestMapListView_Detail(t *testing.T) {
	s := newScreen(t, 100, 40)
	v := NewMapListView(cache.New(16))
	v.SetMaps(testMaps())

	require.True(t, v.HandleKey(keyOf(tcell.KeyEnter)))
	v.Draw(s)
	text := screenText(s)
	assert.Contains(t, text, "Details")
	assert.Contains(t, text, "$f80Snow $oDrift")
	assert.Contains(t, text, "Author 0:41.234")
	assert.NotContains(t, text, "U+0053")

	require.True(t, v.HandleKey(keyRune('i')))
	v.Draw(s)
	text = screenText(s)
	assert.Contains(t, text, "U+0053 literal color=f80")
	assert.Contains(t, text, "U+0044 literal bold|color=f80")

	require.True(t, v.HandleKey(keyOf(tcell.KeyEnter)))
	s.Clear()
	v.Draw(s)
	assert.NotContains(t, screenText(s), "Details")
}

func TestMapListView_Empty(t *testing.T) {
	s := newScreen(t, 80, 20)
	v := NewMapListView(cache.New(16))
	v.SetMaps(nil)

	v.Draw(s)
	assert.Contains(t, screenText(s), "The catalog is empty")
}
