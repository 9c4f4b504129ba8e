package game

import (
	"math"
	"time"
)

// HitEvent is a projectile striking a player.
type HitEvent struct {
	ProjectileID string
	VictimID     string
	AttackerID   string
	Health       int
}

// KillEvent is a hit that brought a live player to zero health.
type KillEvent struct {
	VictimID    string
	KillerID    string
	KillerName  string
	KillerScore int
}

// StepResult collects everything one physics tick produced.
type StepResult struct {
	Active []*Projectile
	Hits   []HitEvent
	Kills  []KillEvent
}

// World is the per-room view the physics step runs against.
type World struct {
	Map          *Map
	Players      map[string]*Player
	Index        *Quadtree
	Pool         *ProjectilePool
	RespawnDelay time.Duration

	candidates []Entity
}

// NewWorld creates a world over m and players with an empty spatial index.
func NewWorld(m *Map, players map[string]*Player, pool *ProjectilePool, respawnDelay time.Duration) *World {
	return &World{
		Map:          m,
		Players:      players,
		Index:        NewQuadtree(m.Bounds()),
		Pool:         pool,
		RespawnDelay: respawnDelay,
	}
}

// Step advances every projectile by one tick, resolves hits and kills, and
// returns the projectiles still in flight. Removed projectiles go back to the
// pool. The input slice is reused for the result.
func (w *World) Step(projectiles []*Projectile) StepResult {
	var res StepResult

	live := projectiles[:0]
	for _, proj := range projectiles {
		owner, ok := w.Players[proj.OwnerID]
		if !ok || !owner.Alive {
			w.Pool.Release(proj)
			continue
		}
		live = append(live, proj)
	}

	w.rebuildIndex()

	active := live[:0]
	for _, proj := range live {
		prevX, prevY := proj.Advance()

		if proj.Expired() || !w.Map.InBounds(proj.X, proj.Y) || w.Map.Blocked(proj.X, proj.Y) {
			w.Pool.Release(proj)
			continue
		}

		victim := w.findVictim(proj, prevX, prevY)
		if victim == nil {
			active = append(active, proj)
			continue
		}

		lethal := victim.TakeDamage(ProjectileDamage)
		res.Hits = append(res.Hits, HitEvent{
			ProjectileID: proj.ID,
			VictimID:     victim.ID,
			AttackerID:   proj.OwnerID,
			Health:       victim.Health,
		})
		if lethal {
			res.Kills = append(res.Kills, w.kill(victim, proj.OwnerID))
		}
		w.Pool.Release(proj)
	}

	// Clear the tail so released records are not reachable through the
	// caller's backing array.
	for i := len(active); i < len(projectiles); i++ {
		projectiles[i] = nil
	}
	res.Active = active
	return res
}

// rebuildIndex inserts a footprint box for every live player.
func (w *World) rebuildIndex() {
	w.Index.Clear()
	for id, p := range w.Players {
		if !p.Alive {
			continue
		}
		w.Index.Insert(Entity{ID: id, Box: BoxAround(p.X, p.Y, PlayerFootprint/2)})
	}
}

// findVictim returns the first live, non-owner player the projectile struck
// while moving from (prevX, prevY) to its current position.
func (w *World) findVictim(proj *Projectile, prevX, prevY float64) *Player {
	query := sweptBox(prevX, prevY, proj.X, proj.Y, QueryRadius)
	w.candidates = w.Index.Retrieve(query, w.candidates[:0])

	for _, c := range w.candidates {
		if c.ID == proj.OwnerID {
			continue
		}
		p, ok := w.Players[c.ID]
		if !ok || !p.Alive {
			continue
		}
		if Distance(proj.X, proj.Y, p.X, p.Y) < HitRadius {
			return p
		}
		// Tunneling guard: the step jumped across the target.
		if SegmentHitsCircle(prevX, prevY, proj.X, proj.Y, p.X, p.Y, HitRadius) {
			return p
		}
	}
	return nil
}

// kill marks victim dead and credits killerID if it is still in the room.
func (w *World) kill(victim *Player, killerID string) KillEvent {
	victim.Kill(w.RespawnDelay)
	ev := KillEvent{VictimID: victim.ID, KillerID: killerID}
	if killer, ok := w.Players[killerID]; ok {
		killer.Score++
		ev.KillerName = killer.Name
		ev.KillerScore = killer.Score
	}
	return ev
}

// sweptBox covers the segment between two points, padded by r.
func sweptBox(x1, y1, x2, y2, r float64) Box {
	minX, maxX := math.Min(x1, x2), math.Max(x1, x2)
	minY, maxY := math.Min(y1, y2), math.Max(y1, y2)
	return Box{X: minX - r, Y: minY - r, Width: maxX - minX + 2*r, Height: maxY - minY + 2*r}
}
