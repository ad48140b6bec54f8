package world

import "github.com/samdwyer/hexfield/internal/hex"

// NewHexagon builds a regular hexagonal grid of the given radius
// centered on the origin.
func NewHexagon(radius int, def Terrain) *Grid {
	return NewGrid((hex.Coord{}).Range(radius), def)
}

// NewRectangle builds a width x height grid centered on the origin.
// Rows are staggered in axial space so the map renders as a rectangle
// under a pointy-top layout.
func NewRectangle(width, height int, def Terrain) *Grid {
	coords := make([]hex.Coord, 0, width*height)
	for row := -(height / 2); row <= (height-1)/2; row++ {
		// (row - row&1) is even, so truncating division floors.
		rowOffset := (row - (row & 1)) / 2
		for col := -(width / 2); col <= (width-1)/2; col++ {
			coords = append(coords, hex.Axial(col-rowOffset, row))
		}
	}
	return NewGrid(coords, def)
}
