package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/csams/tmtext/internal/markup"
	"github.com/csams/tmtext/internal/models"
)

// apiMap mirrors one entry of the map search API response
type apiMap struct {
	ID        int        `json:"id"`
	UID       string     `json:"gbx_uid"`
	Name      string     `json:"name"`
	PlainName string     `json:"plain_name"`
	Votes     int        `json:"votes"`
	Uploaded  string     `json:"uploaded"`
	Created   string     `json:"created"`
	Author    apiUser    `json:"author"`
	Tags      []apiTag   `json:"tags"`
	Medals    *apiMedals `json:"medals"`
}

type apiUser struct {
	DisplayName string  `json:"display_name"`
	AccountID   string  `json:"account_id"`
	ClubTag     *string `json:"club_tag"`
}

type apiTag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type apiMedals struct {
	Author int `json:"author"`
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
}

// ParseCatalog reads a map listing. Both a bare JSON array of maps and the
// search response object {"maps": [...]} are accepted.
func ParseCatalog(r io.Reader) ([]*models.Map, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to parse catalog: empty input")
	}

	var entries []apiMap
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse catalog: %w", err)
		}
	case '{':
		var resp struct {
			Maps []apiMap `json:"maps"`
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("failed to parse catalog: %w", err)
		}
		entries = resp.Maps
	default:
		return nil, fmt.Errorf("failed to parse catalog: expected a JSON array or object")
	}

	maps := make([]*models.Map, 0, len(entries))
	for i, e := range entries {
		m, err := e.toModel()
		if err != nil {
			return nil, fmt.Errorf("invalid map at index %d: %w", i, err)
		}
		maps = append(maps, m)
	}
	return maps, nil
}

func (e apiMap) toModel() (*models.Map, error) {
	if e.Name == "" && e.UID == "" {
		return nil, fmt.Errorf("map has neither name nor uid")
	}

	m := &models.Map{
		ID:        e.ID,
		UID:       e.UID,
		Name:      e.Name,
		PlainName: e.PlainName,
		Votes:     e.Votes,
		Author: models.User{
			AccountID:   e.Author.AccountID,
			DisplayName: e.Author.DisplayName,
		},
	}

	// Recompute rather than trust the server's copy
	if m.Name != "" {
		m.PlainName = markup.Strip(m.Name)
	}

	if e.Author.ClubTag != nil {
		m.Author.ClubTag = *e.Author.ClubTag
	}

	var err error
	if m.Uploaded, err = parseTime(e.Uploaded); err != nil {
		return nil, fmt.Errorf("bad uploaded time: %w", err)
	}
	if m.Created, err = parseTime(e.Created); err != nil {
		return nil, fmt.Errorf("bad created time: %w", err)
	}

	if e.Medals != nil {
		m.Medals = &models.Medals{
			Author: e.Medals.Author,
			Gold:   e.Medals.Gold,
			Silver: e.Medals.Silver,
			Bronze: e.Medals.Bronze,
		}
	}

	for _, tag := range e.Tags {
		if tag.Name != "" {
			m.Tags = append(m.Tags, tag.Name)
		}
	}

	return m, nil
}

// parseTime handles the timestamp layouts seen in exported listings.
// An empty string is the zero time.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	formats := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse time: %s", s)
}
