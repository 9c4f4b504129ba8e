package game

import (
	"strconv"
	"sync"
	"sync/atomic"
)

// ProjectilePool is a bounded free list of projectile records shared by all
// rooms. It is safe for concurrent use.
type ProjectilePool struct {
	mu       sync.Mutex
	free     []*Projectile
	capacity int

	nextID    atomic.Uint64
	allocated atomic.Int64
	reused    atomic.Int64
}

// PoolStats is a point-in-time view of pool usage.
type PoolStats struct {
	Free      int   `json:"free"`
	Capacity  int   `json:"capacity"`
	Allocated int64 `json:"allocated"`
	Reused    int64 `json:"reused"`
}

// NewProjectilePool creates a pool that keeps at most capacity idle records.
func NewProjectilePool(capacity int) *ProjectilePool {
	return &ProjectilePool{
		free:     make([]*Projectile, 0, capacity),
		capacity: capacity,
	}
}

// Acquire returns a projectile initialized for a new shot, reusing an idle
// record when one is available. It never blocks.
func (p *ProjectilePool) Acquire(ownerID string, x, y, angle float64) *Projectile {
	var proj *Projectile

	p.mu.Lock()
	if n := len(p.free); n > 0 {
		proj = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	}
	p.mu.Unlock()

	if proj == nil {
		proj = &Projectile{}
		p.allocated.Add(1)
	} else {
		p.reused.Add(1)
	}

	vx, vy := Velocity(angle)
	*proj = Projectile{
		ID:          strconv.FormatUint(p.nextID.Add(1), 36),
		OwnerID:     ownerID,
		X:           x,
		Y:           y,
		VX:          vx,
		VY:          vy,
		Angle:       angle,
		MaxDistance: ProjectileMaxDistance,
	}
	return proj
}

// Release returns proj to the free list, or drops it when the list is full.
func (p *ProjectilePool) Release(proj *Projectile) {
	if proj == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) < p.capacity {
		p.free = append(p.free, proj)
	}
}

// Stats returns current pool counters.
func (p *ProjectilePool) Stats() PoolStats {
	p.mu.Lock()
	free := len(p.free)
	p.mu.Unlock()
	return PoolStats{
		Free:      free,
		Capacity:  p.capacity,
		Allocated: p.allocated.Load(),
		Reused:    p.reused.Load(),
	}
}
