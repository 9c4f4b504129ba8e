package game

import (
	"math/rand"
	"time"
)

// Player is the authoritative state of one connection inside a room.
type Player struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Character        int     `json:"character"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	Angle            float64 `json:"angle"`
	Health           int     `json:"health"`
	Ammo             int     `json:"ammo"`
	Score            int     `json:"score"`
	Deaths           int     `json:"deaths"`
	Alive            bool    `json:"alive"`
	RespawnRemaining int     `json:"respawn_remaining"` // seconds
}

// NewPlayer creates a live player with full health and ammo and a random
// character slot.
func NewPlayer(id, name string) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		Character: rand.Intn(CharacterCount) + 1,
		Health:    MaxHealth,
		Ammo:      MaxAmmo,
		Alive:     true,
	}
}

func (p *Player) SetPosition(x, y float64) {
	p.X = x
	p.Y = y
}

// Reset restores match-start stats and places the player at pos.
func (p *Player) Reset(pos Position) {
	p.SetPosition(pos.X, pos.Y)
	p.Health = MaxHealth
	p.Ammo = MaxAmmo
	p.Score = 0
	p.Deaths = 0
	p.Alive = true
	p.RespawnRemaining = 0
}

// SetCharacter switches the character slot.
func (p *Player) SetCharacter(slot int) error {
	if slot < 1 || slot > CharacterCount {
		return ErrInvalidCharacterSlot
	}
	p.Character = slot
	return nil
}

// SpendAmmo consumes one round.
func (p *Player) SpendAmmo() error {
	if p.Ammo <= 0 {
		return ErrOutOfAmmo
	}
	p.Ammo--
	return nil
}

func (p *Player) Reload() {
	p.Ammo = MaxAmmo
}

// TakeDamage subtracts damage, clamping health at zero. lethal is true only
// when this call brought a live player to zero.
func (p *Player) TakeDamage(damage int) (lethal bool) {
	if !p.Alive {
		return false
	}
	p.Health -= damage
	if p.Health < 0 {
		p.Health = 0
	}
	return p.Health == 0
}

// Kill marks the player dead and counts the death.
func (p *Player) Kill(respawnDelay time.Duration) {
	p.Alive = false
	p.Health = 0
	p.Deaths++
	p.RespawnRemaining = int((respawnDelay + time.Second - 1) / time.Second)
}

// Respawn brings a dead player back at pos with full health and ammo.
func (p *Player) Respawn(pos Position) {
	p.SetPosition(pos.X, pos.Y)
	p.Health = MaxHealth
	p.Ammo = MaxAmmo
	p.Alive = true
	p.RespawnRemaining = 0
}
