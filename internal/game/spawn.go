package game

import "math/rand"

// Position represents a 2D coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ValidPosition picks a random point inside the spawn inset of m that keeps
// SpawnMargin clearance from every obstacle. After SpawnMaxAttempts misses it
// returns the last candidate anyway.
func ValidPosition(m *Map) Position {
	minX, maxX := SpawnInset, m.Width-SpawnInset
	minY, maxY := SpawnInset, m.Height-SpawnInset

	var pos Position
	for i := 0; i < SpawnMaxAttempts; i++ {
		pos = Position{
			X: minX + rand.Float64()*(maxX-minX),
			Y: minY + rand.Float64()*(maxY-minY),
		}
		if isClear(m, pos) {
			return pos
		}
	}
	return pos
}

// isClear checks that pos keeps SpawnMargin from every obstacle.
func isClear(m *Map, pos Position) bool {
	for _, o := range m.Obstacles {
		if o.Near(pos.X, pos.Y, SpawnMargin) {
			return false
		}
	}
	return true
}
