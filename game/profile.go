package game

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"

	"github.com/quasilyte/gdata"
)

// Profile is the player identity published alongside state rows. It is
// persisted so a player keeps the same id and name across sessions.
type Profile struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

const profileItem = "profile"

// LoadProfile reads the saved profile, creating and persisting a fresh one
// on first run. Persistence failures are non-fatal: the session still gets
// a usable (if ephemeral) identity.
func LoadProfile() Profile {
	m, err := gdata.Open(gdata.Config{
		AppName: "boat-man-shooters",
	})
	if err != nil {
		log.Printf("[profile] persistence unavailable: %v", err)
		return newProfile()
	}

	if data, err := m.LoadItem(profileItem); err == nil && data != nil {
		var p Profile
		if err := json.Unmarshal(data, &p); err == nil && p.PlayerID != "" {
			return p
		}
		log.Printf("[profile] saved profile unreadable, regenerating")
	}

	p := newProfile()
	if data, err := json.Marshal(p); err == nil {
		if err := m.SaveItem(profileItem, data); err != nil {
			log.Printf("[profile] could not save profile: %v", err)
		}
	}
	return p
}

func newProfile() Profile {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	id := fmt.Sprintf("%x", b)
	return Profile{
		PlayerID:   id,
		PlayerName: "Player_" + id[:8],
	}
}
