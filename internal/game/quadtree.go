package game

// Box is an axis-aligned rectangle with its origin at the top-left corner.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// BoxAround returns the square of half-size r centered on (x, y).
func BoxAround(x, y, r float64) Box {
	return Box{X: x - r, Y: y - r, Width: 2 * r, Height: 2 * r}
}

// Intersects reports whether b and o overlap (touching edges count).
func (b Box) Intersects(o Box) bool {
	return b.X <= o.X+o.Width && o.X <= b.X+b.Width &&
		b.Y <= o.Y+o.Height && o.Y <= b.Y+b.Height
}

// Entity is a bounded item stored in the quadtree.
type Entity struct {
	ID  string
	Box Box
}

// Quadtree partitions a rectangle into quadrants for broad-phase collision
// queries. It is rebuilt from scratch every physics tick; Retrieve may return
// entities that do not overlap the query but never omits one that does.
type Quadtree struct {
	bounds   Box
	level    int
	entities []Entity
	children []*Quadtree // nil or exactly 4: top-right, top-left, bottom-left, bottom-right
}

// NewQuadtree creates an empty root node covering bounds.
func NewQuadtree(bounds Box) *Quadtree {
	return &Quadtree{bounds: bounds}
}

// Clear drops every entity and child node.
func (q *Quadtree) Clear() {
	q.entities = q.entities[:0]
	q.children = nil
}

// Insert adds e to the deepest node whose quadrant fully contains it.
func (q *Quadtree) Insert(e Entity) {
	if q.children != nil {
		if i := q.index(e.Box); i != -1 {
			q.children[i].Insert(e)
			return
		}
	}

	q.entities = append(q.entities, e)
	if len(q.entities) <= QuadMaxEntities || q.level >= QuadMaxDepth {
		return
	}

	if q.children == nil {
		q.split()
	}
	kept := q.entities[:0]
	for _, held := range q.entities {
		if i := q.index(held.Box); i != -1 {
			q.children[i].Insert(held)
		} else {
			kept = append(kept, held)
		}
	}
	q.entities = kept
}

// Retrieve appends to out every entity that may overlap query.
func (q *Quadtree) Retrieve(query Box, out []Entity) []Entity {
	out = append(out, q.entities...)
	if q.children == nil {
		return out
	}

	if i := q.index(query); i != -1 {
		return q.children[i].Retrieve(query, out)
	}
	// The query straddles a midpoint: visit every quadrant it touches.
	for _, child := range q.children {
		if child.bounds.Intersects(query) {
			out = child.Retrieve(query, out)
		}
	}
	return out
}

// Len returns the number of entities held by q and its descendants.
func (q *Quadtree) Len() int {
	n := len(q.entities)
	for _, child := range q.children {
		n += child.Len()
	}
	return n
}

// Depth returns the number of levels below q.
func (q *Quadtree) Depth() int {
	deepest := 0
	for _, child := range q.children {
		if d := child.Depth() + 1; d > deepest {
			deepest = d
		}
	}
	return deepest
}

func (q *Quadtree) split() {
	halfW := q.bounds.Width / 2
	halfH := q.bounds.Height / 2
	x, y := q.bounds.X, q.bounds.Y
	next := q.level + 1

	q.children = []*Quadtree{
		{bounds: Box{X: x + halfW, Y: y, Width: halfW, Height: halfH}, level: next},
		{bounds: Box{X: x, Y: y, Width: halfW, Height: halfH}, level: next},
		{bounds: Box{X: x, Y: y + halfH, Width: halfW, Height: halfH}, level: next},
		{bounds: Box{X: x + halfW, Y: y + halfH, Width: halfW, Height: halfH}, level: next},
	}
}

// index returns the quadrant that strictly contains b, or -1 when b touches
// or crosses a midpoint.
func (q *Quadtree) index(b Box) int {
	midX := q.bounds.X + q.bounds.Width/2
	midY := q.bounds.Y + q.bounds.Height/2

	top := b.Y+b.Height < midY
	bottom := b.Y > midY
	left := b.X+b.Width < midX
	right := b.X > midX

	switch {
	case right && top:
		return 0
	case left && top:
		return 1
	case left && bottom:
		return 2
	case right && bottom:
		return 3
	}
	return -1
}
