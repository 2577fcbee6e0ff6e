package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchState_Editing(t *testing.T) {
	s := NewSearchState()

	s.InsertChar('é')
	s.InsertChar('t')
	s.MoveCursorLeft()
	s.InsertChar('x')
	assert.Equal(t, "éxt", s.Query())
	assert.Equal(t, 2, s.CursorPos())

	s.DeleteChar()
	assert.Equal(t, "ét", s.Query())

	s.MoveCursorStart()
	s.DeleteCharForward()
	assert.Equal(t, "t", s.Query())
	assert.Equal(t, 0, s.CursorPos())

	s.MoveCursorLeft() // no-op at the start
	s.MoveCursorEnd()
	s.MoveCursorRight() // no-op at the end
	assert.Equal(t, 1, s.CursorPos())

	s.Clear()
	assert.Equal(t, "", s.Query())
	assert.Equal(t, 0, s.CursorPos())
}

func TestSearchState_DeleteWord(t *testing.T) {
	s := NewSearchState()
	s.SetQuery("foo bar baz")

	s.DeleteWord()
	assert.Equal(t, "foo bar ", s.Query())
	s.DeleteWord()
	assert.Equal(t, "foo ", s.Query())
	s.DeleteWord()
	assert.Equal(t, "", s.Query())
	s.DeleteWord()
	assert.Equal(t, "", s.Query())
}

func TestSearchState_DeleteToEnd(t *testing.T) {
	s := NewSearchState()
	s.SetQuery("speedrun")
	for i := 0; i < 3; i++ {
		s.MoveCursorLeft()
	}
	s.DeleteToEnd()
	assert.Equal(t, "speed", s.Query())
}

func TestMatchMap(t *testing.T) {
	s := NewSearchState()
	s.SetMinScore(ScoreThresholdNone)

	ok, result, field := s.MatchMap("Speed Run", "Nadeo")
	assert.True(t, ok, "empty query matches everything")
	assert.Equal(t, "", field)
	assert.Zero(t, result.Score)

	s.SetQuery("spd")
	ok, result, field = s.MatchMap("Speed Run", "Nadeo")
	require.True(t, ok)
	assert.Equal(t, FieldName, field)
	assert.Len(t, result.Positions, 3)

	s.SetQuery("nadeo")
	ok, _, field = s.MatchMap("Speed Run", "Nadeo")
	require.True(t, ok)
	assert.Equal(t, FieldAuthor, field)

	s.SetQuery("SPEED")
	ok, _, _ = s.MatchMap("Speed Run", "")
	assert.True(t, ok, "matching ignores case")

	s.SetQuery("zzz")
	ok, result, _ = s.MatchMap("Speed Run", "Nadeo")
	assert.False(t, ok)
	assert.Equal(t, -1, result.Score)
}

func TestMatchMap_Threshold(t *testing.T) {
	s := NewSearchState()
	s.SetMinScore(ScoreThresholdStrict)
	assert.Equal(t, ScoreThresholdStrict, s.GetMinScore())

	s.SetQuery("speed")
	ok, result, _ := s.MatchMap("Speed Run", "")
	require.True(t, ok)
	assert.GreaterOrEqual(t, result.Score, ScoreThresholdStrict)
}
