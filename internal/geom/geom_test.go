package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"identical", Rect{0, 0, 50, 50}, Rect{0, 0, 50, 50}, true},
		{"partial overlap", Rect{0, 0, 50, 50}, Rect{25, 25, 50, 50}, true},
		{"contained", Rect{0, 0, 100, 100}, Rect{20, 20, 10, 10}, true},
		{"disjoint horizontal", Rect{0, 0, 50, 50}, Rect{100, 0, 50, 50}, false},
		{"disjoint vertical", Rect{0, 0, 50, 50}, Rect{0, 100, 50, 50}, false},
		{"touching edges", Rect{0, 0, 50, 50}, Rect{50, 0, 50, 50}, false},
		{"touching corners", Rect{0, 0, 50, 50}, Rect{50, 50, 50, 50}, false},
		{"one pixel in", Rect{0, 0, 50, 50}, Rect{49, 49, 50, 50}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.expected, Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		x1, y1   float64
		x2, y2   float64
		expected float64
	}{
		{"same point", 0, 0, 0, 0, 0},
		{"horizontal", 0, 0, 3, 0, 3},
		{"vertical", 0, 0, 0, 4, 4},
		{"diagonal 3-4-5", 0, 0, 3, 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Distance(tt.x1, tt.y1, tt.x2, tt.y2), 0.001)
		})
	}
}

func TestFindUnoccupiedPoint_AvoidsForbiddenZone(t *testing.T) {
	bounds := Rect{Width: 400, Height: 600}
	forbidden := Rect{Left: 150, Top: 250, Width: 100, Height: 100}
	size := Size{Width: 20, Height: 20}

	// Run multiple times to catch randomness issues
	for i := 0; i < 50; i++ {
		p := FindUnoccupiedPoint(size, bounds, forbidden)
		placed := Rect{Left: p.X, Top: p.Y, Width: size.Width, Height: size.Height}
		assert.False(t, Overlaps(placed, forbidden), "placed rect must not overlap forbidden zone")
	}
}

func TestFindUnoccupiedPoint_WithinBounds(t *testing.T) {
	bounds := Rect{Left: 10, Top: 20, Width: 300, Height: 500}
	size := Size{Width: 25, Height: 25}

	for i := 0; i < 50; i++ {
		p := FindUnoccupiedPoint(size, bounds, Rect{Left: 50, Top: 50, Width: 40, Height: 40})
		assert.GreaterOrEqual(t, p.X, bounds.Left)
		assert.GreaterOrEqual(t, p.Y, bounds.Top)
		assert.LessOrEqual(t, p.X+size.Width, bounds.Right())
		assert.LessOrEqual(t, p.Y+size.Height, bounds.Bottom())
	}
}

func TestFindUnoccupiedPoint_MultipleZones(t *testing.T) {
	bounds := Rect{Width: 400, Height: 400}
	size := Size{Width: 20, Height: 20}
	zones := []Rect{
		{Left: 0, Top: 0, Width: 200, Height: 200},
		{Left: 200, Top: 200, Width: 200, Height: 200},
	}

	for i := 0; i < 50; i++ {
		p := FindUnoccupiedPoint(size, bounds, zones...)
		placed := Rect{Left: p.X, Top: p.Y, Width: size.Width, Height: size.Height}
		for _, z := range zones {
			assert.False(t, Overlaps(placed, z))
		}
	}
}

func TestFindUnoccupiedPoint_ForbiddenCoversBounds(t *testing.T) {
	// Adversarial input: no candidate can avoid the zone. The search must
	// still terminate and return a point inside bounds.
	bounds := Rect{Width: 100, Height: 100}
	forbidden := Rect{Left: -10, Top: -10, Width: 120, Height: 120}
	size := Size{Width: 20, Height: 20}

	p := FindUnoccupiedPoint(size, bounds, forbidden)
	assert.GreaterOrEqual(t, p.X, 0.0)
	assert.GreaterOrEqual(t, p.Y, 0.0)
	assert.LessOrEqual(t, p.X+size.Width, bounds.Right())
	assert.LessOrEqual(t, p.Y+size.Height, bounds.Bottom())
}

func TestFindUnoccupiedPoint_FallbackPicksFarthestCorner(t *testing.T) {
	// Forbidden zone pinned to the top-left, covering everything: the
	// deterministic fallback should land in the bottom-right corner.
	bounds := Rect{Width: 100, Height: 100}
	forbidden := Rect{Left: 0, Top: 0, Width: 100, Height: 100}
	size := Size{Width: 10, Height: 10}

	p := farthestCorner(size, bounds, []Rect{{Left: 0, Top: 0, Width: 20, Height: 20}}, 90, 90)
	assert.Equal(t, Point{X: 90, Y: 90}, p)

	// Full-coverage zone still terminates via the public entry point.
	p = FindUnoccupiedPoint(size, bounds, forbidden)
	assert.LessOrEqual(t, p.X+size.Width, bounds.Right())
}

func TestFindUnoccupiedPoint_ZeroBounds(t *testing.T) {
	p := FindUnoccupiedPoint(Size{Width: 20, Height: 20}, Rect{}, Rect{Left: 5, Top: 5, Width: 1, Height: 1})
	assert.Equal(t, 0.0, p.X)
	assert.Equal(t, 0.0, p.Y)
}

func TestRectAccessors(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Width: 30, Height: 40}
	assert.Equal(t, 40.0, r.Right())
	assert.Equal(t, 60.0, r.Bottom())
	assert.Equal(t, Point{X: 25, Y: 40}, r.Center())
}
