package room

import (
	"github.com/ugaemi/arena-server/internal/game"
)

// Snapshot is the lobby view of a room sent on create, join and every
// roster change.
type Snapshot struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Capacity  int             `json:"capacity"`
	State     string          `json:"state"`
	CreatorID string          `json:"creator_id"`
	Players   []game.Player   `json:"players"`
	Ready     map[string]bool `json:"ready"`
}

// Info is the summary shown in the room list.
type Info struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Players  int    `json:"players"`
	Capacity int    `json:"capacity"`
	State    string `json:"state"`
}

type playerLeftMessage struct {
	ID string `json:"id"`
}

type matchStartedMessage struct {
	Map      *game.Map     `json:"map"`
	Players  []game.Player `json:"players"`
	Duration int           `json:"duration"` // seconds
}

type countdownMessage struct {
	Remaining int `json:"remaining"`
}

type playerStateEntry struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Angle     float64 `json:"angle"`
	Health    int     `json:"health"`
	Character int     `json:"character"`
}

type playersUpdatedMessage struct {
	Players []playerStateEntry `json:"players"`
}

type projectilesMessage struct {
	Projectiles []game.Projectile `json:"projectiles"`
}

type playerDamagedMessage struct {
	ID         string `json:"id"`
	Health     int    `json:"health"`
	AttackerID string `json:"attacker_id"`
}

type playerDiedMessage struct {
	VictimID     string `json:"victim_id"`
	VictimName   string `json:"victim_name"`
	KillerID     string `json:"killer_id"`
	KillerName   string `json:"killer_name"`
	KillerScore  int    `json:"killer_score"`
	RespawnDelay int    `json:"respawn_delay"` // seconds
}

type playerRespawnedMessage struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Health int     `json:"health"`
	Ammo   int     `json:"ammo"`
}

type ammoMessage struct {
	ID   string `json:"id"`
	Ammo int    `json:"ammo"`
}

type characterChangedMessage struct {
	ID        string `json:"id"`
	Character int    `json:"character"`
}

type matchEndedMessage struct {
	Players []game.Standing `json:"players"`
	Reason  game.EndReason  `json:"reason"`
}
