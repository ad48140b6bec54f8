package hex

import (
	"fmt"
	"math"
)

// Orientation selects which way a hexagon's flat edge faces.
type Orientation int

const (
	// FlatTop hexagons have a horizontal edge on top.
	FlatTop Orientation = iota
	// PointyTop hexagons have a vertex on top.
	PointyTop
)

// String returns a human-readable orientation name.
func (o Orientation) String() string {
	switch o {
	case FlatTop:
		return "flat_top"
	case PointyTop:
		return "pointy_top"
	default:
		return "unknown"
	}
}

// Point is a position in pixel space.
type Point struct {
	X float64
	Y float64
}

// Layout converts between hex coordinates and pixel space. It carries
// rendering geometry only; gameplay logic never consumes it.
type Layout struct {
	orientation Orientation
	size        float64
	origin      Point

	// Forward and inverse conversion matrices, row-major.
	f0, f1, f2, f3 float64
	b0, b1, b2, b3 float64

	firstCornerAngle float64
}

// NewLayout returns a layout for regular hexagons with the given side
// length, placing the center of coordinate (0,0,0) at origin. Side
// lengths must be positive.
func NewLayout(o Orientation, size float64, origin Point) (Layout, error) {
	if size <= 0 {
		return Layout{}, fmt.Errorf("hex layout: side length %v is not positive", size)
	}
	l := Layout{orientation: o, size: size, origin: origin}
	switch o {
	case FlatTop:
		l.f0, l.f1 = 1.5, 0
		l.f2, l.f3 = math.Sqrt(3)/2, math.Sqrt(3)
		l.firstCornerAngle = 0
	case PointyTop:
		l.f0, l.f1 = math.Sqrt(3), math.Sqrt(3)/2
		l.f2, l.f3 = 0, 1.5
		l.firstCornerAngle = math.Pi / 6
	default:
		return Layout{}, fmt.Errorf("hex layout: unknown orientation %d", o)
	}
	det := l.f0*l.f3 - l.f1*l.f2
	l.b0, l.b1 = l.f3/det, -l.f1/det
	l.b2, l.b3 = -l.f2/det, l.f0/det
	return l, nil
}

// Orientation returns the layout's orientation.
func (l Layout) Orientation() Orientation {
	return l.orientation
}

// Size returns the hexagon side length.
func (l Layout) Size() float64 {
	return l.size
}

// Width returns the bounding-box width of one hexagon.
func (l Layout) Width() float64 {
	if l.orientation == FlatTop {
		return 2 * l.size
	}
	return math.Sqrt(3) * l.size
}

// Height returns the bounding-box height of one hexagon.
func (l Layout) Height() float64 {
	if l.orientation == FlatTop {
		return math.Sqrt(3) * l.size
	}
	return 2 * l.size
}

// ToPixel returns the pixel position of the center of c, satisfying
// ToPixel((0,0,0)) == origin.
func (l Layout) ToPixel(c Coord) Point {
	q, r := float64(c.Q), float64(c.R)
	return Point{
		X: l.origin.X + l.size*(l.f0*q+l.f1*r),
		Y: l.origin.Y + l.size*(l.f2*q+l.f3*r),
	}
}

// FromPixel returns the coordinate whose hexagon contains p, the
// inverse of ToPixel up to rounding within one tile.
func (l Layout) FromPixel(p Point) Coord {
	x := (p.X - l.origin.X) / l.size
	y := (p.Y - l.origin.Y) / l.size
	q := l.b0*x + l.b1*y
	r := l.b2*x + l.b3*y
	return round(q, r, -q-r)
}

// Corners returns the six corner points of c's hexagon in drawing
// order, starting from the orientation's first corner.
func (l Layout) Corners(c Coord) [6]Point {
	center := l.ToPixel(c)
	var out [6]Point
	for i := range out {
		angle := l.firstCornerAngle + float64(i)*math.Pi/3
		out[i] = Point{
			X: center.X + l.size*math.Cos(angle),
			Y: center.Y + l.size*math.Sin(angle),
		}
	}
	return out
}
