package game

// Obstacle is an axis-aligned rectangle that blocks projectiles.
type Obstacle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether (x, y) lies strictly inside the obstacle.
func (o Obstacle) Contains(x, y float64) bool {
	return x > o.X && x < o.X+o.Width && y > o.Y && y < o.Y+o.Height
}

// Near reports whether (x, y) lies within margin of the obstacle's box.
func (o Obstacle) Near(x, y, margin float64) bool {
	return x > o.X-margin && x < o.X+o.Width+margin &&
		y > o.Y-margin && y < o.Y+o.Height+margin
}

// Map is the immutable arena geometry shared by every operation in a room.
type Map struct {
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Obstacles []Obstacle `json:"obstacles"`
}

// DefaultMap returns the standard arena: four border walls and eight
// interior blocks.
func DefaultMap() *Map {
	const w, h, t = MapWidth, MapHeight, WallThickness
	return &Map{
		Width:  w,
		Height: h,
		Obstacles: []Obstacle{
			{X: 0, Y: 0, Width: w, Height: t},
			{X: 0, Y: 0, Width: t, Height: h},
			{X: w - t, Y: 0, Width: t, Height: h},
			{X: 0, Y: h - t, Width: w, Height: t},
			{X: 400, Y: 400, Width: 100, Height: 100},
			{X: 800, Y: 600, Width: 150, Height: 80},
			{X: 1200, Y: 300, Width: 80, Height: 150},
			{X: 600, Y: 1200, Width: 200, Height: 50},
			{X: 1400, Y: 1400, Width: 100, Height: 100},
			{X: 300, Y: 1600, Width: 120, Height: 80},
			{X: 1600, Y: 800, Width: 150, Height: 150},
			{X: 200, Y: 800, Width: 100, Height: 200},
		},
	}
}

// InBounds reports whether (x, y) is inside the map rectangle.
func (m *Map) InBounds(x, y float64) bool {
	return x >= 0 && x <= m.Width && y >= 0 && y <= m.Height
}

// Blocked reports whether (x, y) is inside any obstacle.
func (m *Map) Blocked(x, y float64) bool {
	for _, o := range m.Obstacles {
		if o.Contains(x, y) {
			return true
		}
	}
	return false
}

// Bounds returns the map rectangle as a Box.
func (m *Map) Bounds() Box {
	return Box{X: 0, Y: 0, Width: m.Width, Height: m.Height}
}
