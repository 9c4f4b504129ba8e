package room

import (
	"time"

	"github.com/ugaemi/arena-server/internal/game"
)

// Settings holds the per-room timing knobs that can be tuned at startup.
type Settings struct {
	MatchDuration time.Duration
	RespawnDelay  time.Duration
	FireCooldown  time.Duration
}

// DefaultSettings returns the standard match timings.
func DefaultSettings() Settings {
	return Settings{
		MatchDuration: game.MatchDuration,
		RespawnDelay:  game.RespawnDelay,
		FireCooldown:  game.FireCooldown,
	}
}
