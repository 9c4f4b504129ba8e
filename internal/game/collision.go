package game

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}

// SegmentHitsCircle reports whether the segment (x1,y1)-(x2,y2) passes
// strictly within r of (cx,cy).
func SegmentHitsCircle(x1, y1, x2, y2, cx, cy, r float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Distance(x1, y1, cx, cy) < r
	}

	// Closest point on the segment to the circle center.
	t := ((cx-x1)*dx + (cy-y1)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Distance(x1+t*dx, y1+t*dy, cx, cy) < r
}
