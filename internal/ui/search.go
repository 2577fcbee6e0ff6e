package ui

import (
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// SearchState holds the query being edited and the fuzzy matcher settings.
// The query is kept as runes so cursor movement never splits a character.
type SearchState struct {
	query         []rune
	cursorPos     int
	caseSensitive bool
	minScore      int // Minimum score threshold for matches
	slab          *util.Slab
}

// Score threshold constants (based on raw fzf scores)
const (
	ScoreThresholdStrict     = 70 // Only high quality matches
	ScoreThresholdNormal     = 50 // Balanced (default)
	ScoreThresholdPermissive = 30 // Include marginal matches
	ScoreThresholdNone       = 0  // Accept all matches
)

var initAlgo sync.Once

// NewSearchState creates a new search state
func NewSearchState() *SearchState {
	initAlgo.Do(func() { algo.Init("default") })
	return &SearchState{
		minScore: ScoreThresholdNormal,
		slab:     util.MakeSlab(16384, 1024),
	}
}

// Query returns the current query
func (s *SearchState) Query() string {
	return string(s.query)
}

// CursorPos returns the cursor position in runes
func (s *SearchState) CursorPos() int {
	return s.cursorPos
}

// SetQuery sets the search query and moves the cursor to the end
func (s *SearchState) SetQuery(query string) {
	s.query = []rune(query)
	s.cursorPos = len(s.query)
}

// Clear clears the search state
func (s *SearchState) Clear() {
	s.query = nil
	s.cursorPos = 0
}

// SetMinScore sets the minimum score threshold
func (s *SearchState) SetMinScore(score int) {
	s.minScore = score
}

// GetMinScore returns the current minimum score threshold
func (s *SearchState) GetMinScore() int {
	return s.minScore
}

// InsertChar inserts a character at the cursor position
func (s *SearchState) InsertChar(ch rune) {
	s.query = append(s.query, 0)
	copy(s.query[s.cursorPos+1:], s.query[s.cursorPos:])
	s.query[s.cursorPos] = ch
	s.cursorPos++
}

// DeleteChar deletes the character before the cursor (backspace)
func (s *SearchState) DeleteChar() {
	if s.cursorPos > 0 {
		s.query = append(s.query[:s.cursorPos-1], s.query[s.cursorPos:]...)
		s.cursorPos--
	}
}

// DeleteCharForward deletes the character at the cursor (delete)
func (s *SearchState) DeleteCharForward() {
	if s.cursorPos < len(s.query) {
		s.query = append(s.query[:s.cursorPos], s.query[s.cursorPos+1:]...)
	}
}

// MoveCursorLeft moves cursor left
func (s *SearchState) MoveCursorLeft() {
	if s.cursorPos > 0 {
		s.cursorPos--
	}
}

// MoveCursorRight moves cursor right
func (s *SearchState) MoveCursorRight() {
	if s.cursorPos < len(s.query) {
		s.cursorPos++
	}
}

// MoveCursorStart moves cursor to start (Ctrl+A)
func (s *SearchState) MoveCursorStart() {
	s.cursorPos = 0
}

// MoveCursorEnd moves cursor to end (Ctrl+E)
func (s *SearchState) MoveCursorEnd() {
	s.cursorPos = len(s.query)
}

// DeleteToEnd deletes from cursor to end (Ctrl+K)
func (s *SearchState) DeleteToEnd() {
	s.query = s.query[:s.cursorPos]
}

// DeleteWord deletes the word before cursor (Ctrl+W)
func (s *SearchState) DeleteWord() {
	if s.cursorPos == 0 {
		return
	}

	start := s.cursorPos
	for start > 0 && s.query[start-1] == ' ' {
		start--
	}
	for start > 0 && s.query[start-1] != ' ' {
		start--
	}

	s.query = append(s.query[:start], s.query[s.cursorPos:]...)
	s.cursorPos = start
}

// MatchResult contains match score and positions
type MatchResult struct {
	Score     int
	Positions []int
}

// matchWithPositions scores text against the query. Positions are rune
// indexes into text.
func (s *SearchState) matchWithPositions(text string) MatchResult {
	if len(s.query) == 0 {
		return MatchResult{}
	}

	searchText := text
	pattern := string(s.query)
	if !s.caseSensitive {
		searchText = strings.ToLower(text)
		pattern = strings.ToLower(pattern)
	}

	chars := util.ToChars([]byte(searchText))
	result, positions := algo.FuzzyMatchV2(s.caseSensitive, false, true, &chars, []rune(pattern), true, s.slab)
	if result.Start < 0 {
		return MatchResult{Score: -1}
	}

	var matchPositions []int
	if positions != nil {
		matchPositions = make([]int, len(*positions))
		copy(matchPositions, *positions)
	}
	return MatchResult{Score: result.Score, Positions: matchPositions}
}

func (s *SearchState) accepts(r MatchResult) bool {
	return r.Score >= 0 && (s.minScore == 0 || r.Score >= s.minScore)
}

// Match fields reported by MatchMap
const (
	FieldName   = "name"
	FieldAuthor = "author"
)

// MatchMap matches a map by its plain name first and then its author.
// The returned field tells which one the positions refer to.
func (s *SearchState) MatchMap(plainName, author string) (bool, MatchResult, string) {
	if len(s.query) == 0 {
		return true, MatchResult{}, ""
	}

	if r := s.matchWithPositions(plainName); s.accepts(r) {
		return true, r, FieldName
	}
	if author != "" {
		if r := s.matchWithPositions(author); s.accepts(r) {
			return true, r, FieldAuthor
		}
	}
	return false, MatchResult{Score: -1}, ""
}
