// Package hex provides cube-coordinate arithmetic for hexagonal maps:
// neighbor enumeration, distance, straight lines, rings, and pixel
// conversion. All operations are pure functions over immutable values.
package hex

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoord reports cube components that do not lie on the
// q+r+s = 0 plane.
var ErrInvalidCoord = errors.New("invalid hex coordinate")

// Coord is a hex-map coordinate in axial form. Q and R are the free
// components; the third cube component is derived, so every Coord
// satisfies the cube invariant Q+R+S = 0 by construction. Coords are
// comparable and usable as map keys.
type Coord struct {
	Q int
	R int
}

// Axial returns the coordinate with the given axial components.
func Axial(q, r int) Coord {
	return Coord{Q: q, R: r}
}

// At builds a Coord from explicit cube components. Triples off the
// q+r+s = 0 plane fail with ErrInvalidCoord; they are never silently
// normalized.
func At(q, r, s int) (Coord, error) {
	if q+r+s != 0 {
		return Coord{}, fmt.Errorf("%w: (%d,%d,%d) sums to %d", ErrInvalidCoord, q, r, s, q+r+s)
	}
	return Coord{Q: q, R: r}, nil
}

// MustAt is like At but panics on malformed components. Intended for
// literals in tests and map definitions.
func MustAt(q, r, s int) Coord {
	c, err := At(q, r, s)
	if err != nil {
		panic(err)
	}
	return c
}

// S returns the derived third cube component.
func (c Coord) S() int {
	return -c.Q - c.R
}

// String returns the full cube triple, e.g. "(1,-1,0)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.Q, c.R, c.S())
}

// Add returns the component-wise sum of c and v.
func (c Coord) Add(v Coord) Coord {
	return Coord{Q: c.Q + v.Q, R: c.R + v.R}
}

// Sub returns the component-wise difference of c and v.
func (c Coord) Sub(v Coord) Coord {
	return Coord{Q: c.Q - v.Q, R: c.R - v.R}
}

// Scale returns c with both components multiplied by k.
func (c Coord) Scale(k int) Coord {
	return Coord{Q: c.Q * k, R: c.R * k}
}

// Directions lists the six neighbor offsets in clockwise order
// starting east. Opposite directions sit three apart, so the table is
// closed under negation.
var Directions = [6]Coord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbor returns the adjacent coordinate in direction i (mod 6).
func (c Coord) Neighbor(i int) Coord {
	i %= len(Directions)
	if i < 0 {
		i += len(Directions)
	}
	return c.Add(Directions[i])
}

// Neighbors returns the six adjacent coordinates in Directions order.
func (c Coord) Neighbors() [6]Coord {
	var out [6]Coord
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// Distance returns the hex-grid distance between a and b: the number
// of steps in a shortest neighbor-to-neighbor walk, computed as half
// the cube-component Manhattan distance.
func Distance(a, b Coord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	return (dq + dr + ds) / 2
}

// Line returns the straight line from a to b as Distance(a,b)+1
// coordinates including both endpoints, computed by sampling the
// segment at unit intervals and rounding each sample to the nearest
// hex.
func Line(a, b Coord) []Coord {
	d := Distance(a, b)
	out := make([]Coord, 0, d+1)
	if d == 0 {
		return append(out, a)
	}
	for i := 0; i <= d; i++ {
		t := float64(i) / float64(d)
		out = append(out, round(
			lerp(a.Q, b.Q, t),
			lerp(a.R, b.R, t),
			lerp(a.S(), b.S(), t),
		))
	}
	return out
}

// Ring returns the coordinates at exactly the given radius from c, in
// walk order. Radius 0 yields c itself.
func (c Coord) Ring(radius int) []Coord {
	if radius <= 0 {
		return []Coord{c}
	}
	out := make([]Coord, 0, RingSize(radius))
	// Start at the offset reached by walking radius steps in the
	// direction opposite the walk's first edge, then trace each side.
	cur := c.Add(Directions[4].Scale(radius))
	for side := 0; side < 6; side++ {
		for step := 0; step < radius; step++ {
			out = append(out, cur)
			cur = cur.Neighbor(side)
		}
	}
	return out
}

// Range returns all coordinates within the given radius of c,
// inclusive, in row-major cube order.
func (c Coord) Range(radius int) []Coord {
	if radius < 0 {
		return nil
	}
	out := make([]Coord, 0, RangeSize(radius))
	for q := -radius; q <= radius; q++ {
		rLo := max(-radius, -q-radius)
		rHi := min(radius, -q+radius)
		for r := rLo; r <= rHi; r++ {
			out = append(out, c.Add(Coord{Q: q, R: r}))
		}
	}
	return out
}

// RingSize returns the number of coordinates in a ring of the given
// radius: 6r, or 1 for radius 0.
func RingSize(radius int) int {
	if radius <= 0 {
		return 1
	}
	return 6 * radius
}

// RangeSize returns the number of coordinates within the given radius:
// 3r(r+1)+1.
func RangeSize(radius int) int {
	if radius < 0 {
		return 0
	}
	return 3*radius*(radius+1) + 1
}

// round snaps fractional cube components to the nearest valid Coord.
// The component with the largest rounding error is recomputed from the
// other two so the cube invariant survives rounding.
func round(q, r, s float64) Coord {
	rq, rr, rs := math.Round(q), math.Round(r), math.Round(s)
	dq, dr, ds := math.Abs(q-rq), math.Abs(r-rr), math.Abs(s-rs)
	switch {
	case dq > dr && dq > ds:
		rq = -rr - rs
	case dr > ds:
		rr = -rq - rs
	}
	return Coord{Q: int(rq), R: int(rr)}
}

func lerp(a, b int, t float64) float64 {
	return float64(a) + (float64(b)-float64(a))*t
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
