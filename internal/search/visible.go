package search

import "github.com/samdwyer/hexfield/internal/hex"

// Visible reports whether b can be seen from a. Sight travels along
// the straight hex line between them and is stopped by any opaque
// coordinate strictly between the endpoints; the endpoints themselves
// never block.
func Visible(opaque func(hex.Coord) bool, a, b hex.Coord) bool {
	line := hex.Line(a, b)
	if len(line) <= 2 {
		return true
	}
	for _, c := range line[1 : len(line)-1] {
		if opaque(c) {
			return false
		}
	}
	return true
}
