package geom

import (
	"math"
	"math/rand"
)

// Point represents a 2D stage coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size represents a rectangle's dimensions.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned rectangle in stage coordinates.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Overlaps reports whether a and b intersect. Standard separating-axis
// check on left/top/width/height; entity rotation is not considered.
func Overlaps(a, b Rect) bool {
	if a.Left >= b.Right() || b.Left >= a.Right() {
		return false
	}
	if a.Top >= b.Bottom() || b.Top >= a.Bottom() {
		return false
	}
	return true
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}

const maxPlacementAttempts = 100

// FindUnoccupiedPoint returns a point within bounds where a rectangle of
// the given size does not overlap any forbidden zone. It samples random
// candidates up to maxPlacementAttempts, then falls back to the bounds
// corner farthest from the first forbidden zone so placement always
// terminates, even when a forbidden zone covers nearly all of bounds.
func FindUnoccupiedPoint(size Size, bounds Rect, forbidden ...Rect) Point {
	spanX := bounds.Width - size.Width
	spanY := bounds.Height - size.Height
	if spanX < 0 {
		spanX = 0
	}
	if spanY < 0 {
		spanY = 0
	}

	for i := 0; i < maxPlacementAttempts; i++ {
		p := Point{
			X: bounds.Left + rand.Float64()*spanX,
			Y: bounds.Top + rand.Float64()*spanY,
		}
		if !overlapsAny(Rect{Left: p.X, Top: p.Y, Width: size.Width, Height: size.Height}, forbidden) {
			return p
		}
	}

	return farthestCorner(size, bounds, forbidden, spanX, spanY)
}

func overlapsAny(r Rect, zones []Rect) bool {
	for _, z := range zones {
		if Overlaps(r, z) {
			return true
		}
	}
	return false
}

// farthestCorner picks the bounds corner whose placed rectangle center is
// farthest from the primary forbidden zone's center.
func farthestCorner(size Size, bounds Rect, forbidden []Rect, spanX, spanY float64) Point {
	corners := []Point{
		{X: bounds.Left, Y: bounds.Top},
		{X: bounds.Left + spanX, Y: bounds.Top},
		{X: bounds.Left, Y: bounds.Top + spanY},
		{X: bounds.Left + spanX, Y: bounds.Top + spanY},
	}
	if len(forbidden) == 0 {
		return corners[0]
	}

	center := forbidden[0].Center()
	best := corners[0]
	bestDist := -1.0
	for _, c := range corners {
		d := Distance(c.X+size.Width/2, c.Y+size.Height/2, center.X, center.Y)
		if d > bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}
