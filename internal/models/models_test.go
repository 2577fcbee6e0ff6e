package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMapID(t *testing.T) {
	id1 := GenerateMapID("$o$f00Red Line", "acc-1")

	if len(id1) != 16 {
		t.Errorf("Expected ID length 16, got %d", len(id1))
	}

	// same inputs, same ID
	if id2 := GenerateMapID("$o$f00Red Line", "acc-1"); id1 != id2 {
		t.Error("Expected consistent ID generation for same inputs")
	}

	if id3 := GenerateMapID("$o$f00Red Line", "acc-2"); id1 == id3 {
		t.Error("Expected different IDs for different authors")
	}

	if id4 := GenerateMapID("Red Line", "acc-1"); id1 == id4 {
		t.Error("Expected different IDs for different names")
	}

	for _, char := range id1 {
		if !strings.ContainsRune("0123456789abcdef", char) {
			t.Errorf("ID contains invalid character: %c", char)
		}
	}
}

func TestFormatMedalTime(t *testing.T) {
	tests := []struct {
		ms       int
		expected string
	}{
		{0, "-:--.---"},
		{-5, "-:--.---"},
		{999, "0:00.999"},
		{45123, "0:45.123"},
		{65007, "1:05.007"},
		{600000, "10:00.000"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatMedalTime(tt.ms); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCatalog_AddRemoveFind(t *testing.T) {
	c := &Catalog{}

	m := &Map{UID: "uid-1", Name: "$oSpeed$z Run"}
	assert.True(t, c.Add(m))
	assert.Equal(t, "Speed Run", m.PlainName)

	// duplicate UID is rejected
	assert.False(t, c.Add(&Map{UID: "uid-1", Name: "other"}))
	assert.Len(t, c.Maps, 1)

	adhoc := &Map{Name: "$tAd hoc", Author: User{AccountID: "me"}}
	assert.True(t, c.Add(adhoc))
	assert.Equal(t, GenerateMapID("$tAd hoc", "me"), adhoc.UID)

	assert.Same(t, m, c.Find("uid-1"))
	assert.Nil(t, c.Find("missing"))

	assert.True(t, c.Remove("uid-1"))
	assert.False(t, c.Remove("uid-1"))
	assert.Len(t, c.Maps, 1)
}

func TestCatalog_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.json")

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Empty(t, c.Maps)
	assert.Equal(t, path, c.Path())

	uploaded := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c.Add(&Map{
		ID:       7,
		UID:      "abc",
		Name:     "$f80Orange",
		Votes:    3,
		Uploaded: uploaded,
		Author:   User{AccountID: "acc", DisplayName: "Driver", ClubTag: "$oTAG"},
		Medals:   &Medals{Author: 40000, Gold: 42000, Silver: 48000, Bronze: 60000},
		Tags:     []string{"Tech"},
	})
	require.NoError(t, c.Save())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	loaded, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, loaded.Maps, 1)

	got := loaded.Maps[0]
	assert.Equal(t, "Orange", got.PlainName)
	assert.Equal(t, 40000, got.Medals.Author)
	assert.True(t, uploaded.Equal(got.Uploaded))
	assert.Equal(t, "$oTAG", got.Author.ClubTag)
}

func TestLoadCatalog_FillsPlainNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `{"maps":[{"gbx_uid":"x","name":"$o$iBold Italic","votes":1,"author":{"account_id":"a","display_name":"b"}}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, c.Maps, 1)
	assert.Equal(t, "Bold Italic", c.Maps[0].PlainName)
	assert.False(t, c.FillPlainNames())
}

func TestLoadCatalog_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadCatalog(path)
	assert.Error(t, err)
}

func TestCatalog_SaveWithoutPath(t *testing.T) {
	c := &Catalog{}
	assert.Error(t, c.Save())
}
