package game

import (
	"fmt"
	"math"
	"time"
)

// ValidateMove checks a client-reported position against the player's last
// confirmed one. Rejections wrap ErrInvalidMovement.
func ValidateMove(p *Player, m *Map, x, y float64) error {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return fmt.Errorf("%w: non-finite position", ErrInvalidMovement)
	}
	if !m.InBounds(x, y) {
		return fmt.Errorf("%w: position (%.1f, %.1f) out of bounds", ErrInvalidMovement, x, y)
	}
	if d := Distance(p.X, p.Y, x, y); d > MaxMoveDistance {
		return fmt.Errorf("%w: moved %.2fpx", ErrInvalidMovement, d)
	}
	return nil
}

// FireGate enforces a minimum interval between accepted shots per player.
// It is not safe for concurrent use; the owning room serializes access.
type FireGate struct {
	cooldown time.Duration
	lastShot map[string]time.Time
}

func NewFireGate(cooldown time.Duration) *FireGate {
	return &FireGate{
		cooldown: cooldown,
		lastShot: make(map[string]time.Time),
	}
}

// Check returns a *CooldownError when playerID fired less than the cooldown
// before now.
func (g *FireGate) Check(playerID string, now time.Time) error {
	last, ok := g.lastShot[playerID]
	if !ok {
		return nil
	}
	if elapsed := now.Sub(last); elapsed < g.cooldown {
		return &CooldownError{Remaining: g.cooldown - elapsed}
	}
	return nil
}

// Record stores now as playerID's last accepted shot.
func (g *FireGate) Record(playerID string, now time.Time) {
	g.lastShot[playerID] = now
}

// Forget clears playerID's cooldown.
func (g *FireGate) Forget(playerID string) {
	delete(g.lastShot, playerID)
}

// Reset clears every cooldown.
func (g *FireGate) Reset() {
	clear(g.lastShot)
}
