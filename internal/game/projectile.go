package game

import "math"

// Projectile is a bullet in flight. Records are recycled through
// ProjectilePool, so holders must not keep a pointer after releasing it.
type Projectile struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"owner_id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	VX          float64 `json:"vx"`
	VY          float64 `json:"vy"`
	Angle       float64 `json:"angle"`
	Traveled    float64 `json:"-"`
	MaxDistance float64 `json:"-"`
}

// Velocity returns the per-tick velocity for a shot fired at angle.
func Velocity(angle float64) (vx, vy float64) {
	return math.Cos(angle) * ProjectileSpeed, math.Sin(angle) * ProjectileSpeed
}

// Advance moves the projectile one tick and returns its previous position.
func (p *Projectile) Advance() (prevX, prevY float64) {
	prevX, prevY = p.X, p.Y
	p.X += p.VX
	p.Y += p.VY
	p.Traveled += math.Hypot(p.VX, p.VY)
	return prevX, prevY
}

// Expired reports whether the projectile is past its range.
func (p *Projectile) Expired() bool {
	return p.Traveled > p.MaxDistance
}
