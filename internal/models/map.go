package models

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// User is a player account as shown next to a map
type User struct {
	AccountID   string `json:"account_id"`
	DisplayName string `json:"display_name"`
	ClubTag     string `json:"club_tag,omitempty"` // formatted, may be empty
}

// Medals holds the medal times of a map in milliseconds
type Medals struct {
	Author int `json:"author"`
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
}

type Map struct {
	ID        int       `json:"id,omitempty"`
	UID       string    `json:"gbx_uid"`
	Name      string    `json:"name"`       // formatted, as stored in the map file
	PlainName string    `json:"plain_name"` // Name with formatting stripped, used for search
	Votes     int       `json:"votes"`
	Uploaded  time.Time `json:"uploaded,omitzero"`
	Created   time.Time `json:"created,omitzero"`
	Author    User      `json:"author"`
	Medals    *Medals   `json:"medals,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
}

// GenerateMapID creates a stable ID for entries that have no map UID, based on
// the formatted name and the author's account
func GenerateMapID(name, accountID string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(accountID+"\x00"+name))
}

// FormatMedalTime formats a time in milliseconds as m:ss.mmm
func FormatMedalTime(ms int) string {
	if ms <= 0 {
		return "-:--.---"
	}
	d := time.Duration(ms) * time.Millisecond
	minutes := int(d / time.Minute)
	seconds := int((d % time.Minute) / time.Second)
	millis := ms % 1000
	return fmt.Sprintf("%d:%02d.%03d", minutes, seconds, millis)
}
