package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/csams/tmtext/internal/markup"
	"github.com/gofrs/flock"
)

// Catalog is the locally saved list of maps
type Catalog struct {
	Maps []*Map `json:"maps"`

	path string
}

// DefaultCatalogPath returns the catalog location under the user's config dir
func DefaultCatalogPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(configDir, "tmtext", "catalog.json"), nil
}

// LoadCatalog reads the catalog at path. A missing file yields an empty catalog
// that will be created on the first Save.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Catalog{Maps: []*Map{}, path: path}, nil
		}
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if c.Maps == nil {
		c.Maps = []*Map{}
	}
	c.path = path
	c.FillPlainNames()

	return &c, nil
}

// Path returns the file the catalog is saved to
func (c *Catalog) Path() string {
	return c.path
}

// Save writes the catalog back to its file. A lock file next to it keeps two
// processes from interleaving writes.
func (c *Catalog) Save() error {
	if c.path == "" {
		return errors.New("catalog has no path")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	lock := flock.New(c.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock catalog: %w", err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	// Write to a temp file first so a crash never leaves half a catalog
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}
	return nil
}

// FillPlainNames computes PlainName for maps that lack one.
// Returns true if any entry changed.
func (c *Catalog) FillPlainNames() bool {
	changed := false
	for _, m := range c.Maps {
		if m.PlainName == "" && m.Name != "" {
			m.PlainName = markup.Strip(m.Name)
			changed = true
		}
	}
	return changed
}

// Add appends m unless a map with the same UID is already present.
// Returns false for duplicates.
func (c *Catalog) Add(m *Map) bool {
	if m.UID == "" {
		m.UID = GenerateMapID(m.Name, m.Author.AccountID)
	}
	if c.Find(m.UID) != nil {
		return false
	}
	if m.PlainName == "" {
		m.PlainName = markup.Strip(m.Name)
	}
	c.Maps = append(c.Maps, m)
	return true
}

// Remove deletes the map with the given UID. Returns false if there was none.
func (c *Catalog) Remove(uid string) bool {
	for i, m := range c.Maps {
		if m.UID == uid {
			c.Maps = append(c.Maps[:i], c.Maps[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the map with the given UID, or nil
func (c *Catalog) Find(uid string) *Map {
	for _, m := range c.Maps {
		if m.UID == uid {
			return m
		}
	}
	return nil
}
