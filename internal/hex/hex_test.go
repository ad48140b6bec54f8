package hex

import (
	"errors"
	"math/rand"
	"testing"
)

func TestAtValidatesCubeInvariant(t *testing.T) {
	tests := []struct {
		q, r, s int
		wantErr bool
	}{
		{0, 0, 0, false},
		{1, -1, 0, false},
		{2, -5, 3, false},
		{-4, 1, 3, false},
		{1, 0, 0, true},
		{1, 1, 1, true},
		{-2, -2, 3, true},
	}

	for _, tt := range tests {
		c, err := At(tt.q, tt.r, tt.s)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidCoord) {
				t.Errorf("At(%d,%d,%d) error = %v, want ErrInvalidCoord", tt.q, tt.r, tt.s, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("At(%d,%d,%d) unexpected error: %v", tt.q, tt.r, tt.s, err)
			continue
		}
		if c.Q != tt.q || c.R != tt.r || c.S() != tt.s {
			t.Errorf("At(%d,%d,%d) = %v, want components back unchanged", tt.q, tt.r, tt.s, c)
		}
	}
}

func TestMustAtPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustAt(1,1,1) did not panic")
		}
	}()
	MustAt(1, 1, 1)
}

// randomCoord draws a coordinate from a fixed-seed generator so the
// property checks below are reproducible.
func randomCoord(rng *rand.Rand) Coord {
	return Coord{Q: rng.Intn(41) - 20, R: rng.Intn(41) - 20}
}

func TestDistanceSymmetricAndZero(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		a, b := randomCoord(rng), randomCoord(rng)
		if d, rev := Distance(a, b), Distance(b, a); d != rev {
			t.Errorf("Distance(%v,%v) = %d but Distance(%v,%v) = %d", a, b, d, b, a, rev)
		}
		if d := Distance(a, a); d != 0 {
			t.Errorf("Distance(%v,%v) = %d, want 0", a, a, d)
		}
	}
}

func TestDistanceKnownValues(t *testing.T) {
	tests := []struct {
		a, b Coord
		want int
	}{
		{MustAt(0, 0, 0), MustAt(0, 0, 0), 0},
		{MustAt(0, 0, 0), MustAt(1, -1, 0), 1},
		{MustAt(0, 0, 0), MustAt(2, -2, 0), 2},
		{MustAt(0, 0, 0), MustAt(3, -1, -2), 3},
		{MustAt(-2, 1, 1), MustAt(2, -1, -1), 4},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%v,%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDirectionsClosedUnderNegation(t *testing.T) {
	var sum Coord
	for i, d := range Directions {
		sum = sum.Add(d)
		if opposite := Directions[(i+3)%6]; d.Scale(-1) != opposite {
			t.Errorf("Directions[%d] = %v is not the negation of Directions[%d] = %v", i, d, (i+3)%6, opposite)
		}
	}
	if sum != (Coord{}) {
		t.Errorf("sum of direction vectors = %v, want zero", sum)
	}
}

func TestNeighborsAdjacentAndDistinct(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		c := randomCoord(rng)
		seen := make(map[Coord]bool)
		for _, n := range c.Neighbors() {
			if d := Distance(c, n); d != 1 {
				t.Errorf("Distance(%v, neighbor %v) = %d, want 1", c, n, d)
			}
			if seen[n] {
				t.Errorf("neighbor %v of %v appears twice", n, c)
			}
			seen[n] = true
		}
		if len(seen) != 6 {
			t.Errorf("%v has %d distinct neighbors, want 6", c, len(seen))
		}
	}
}

func TestNeighborWrapsIndex(t *testing.T) {
	c := MustAt(2, -1, -1)
	if got, want := c.Neighbor(6), c.Neighbor(0); got != want {
		t.Errorf("Neighbor(6) = %v, want Neighbor(0) = %v", got, want)
	}
	if got, want := c.Neighbor(-1), c.Neighbor(5); got != want {
		t.Errorf("Neighbor(-1) = %v, want Neighbor(5) = %v", got, want)
	}
}

func TestLineLengthAndEndpoints(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 100; i++ {
		a, b := randomCoord(rng), randomCoord(rng)
		line := Line(a, b)
		if want := Distance(a, b) + 1; len(line) != want {
			t.Fatalf("len(Line(%v,%v)) = %d, want %d", a, b, len(line), want)
		}
		if line[0] != a {
			t.Errorf("Line(%v,%v) starts at %v", a, b, line[0])
		}
		if last := line[len(line)-1]; last != b {
			t.Errorf("Line(%v,%v) ends at %v", a, b, last)
		}
		for j := 1; j < len(line); j++ {
			if d := Distance(line[j-1], line[j]); d != 1 {
				t.Errorf("Line(%v,%v) jumps from %v to %v (distance %d)", a, b, line[j-1], line[j], d)
			}
		}
	}
}

func TestLineDegenerate(t *testing.T) {
	c := MustAt(3, -2, -1)
	line := Line(c, c)
	if len(line) != 1 || line[0] != c {
		t.Errorf("Line(%v,%v) = %v, want [%v]", c, c, line, c)
	}
}

func TestRingCountAndDistance(t *testing.T) {
	center := MustAt(1, -3, 2)

	for radius := 0; radius <= 4; radius++ {
		ring := center.Ring(radius)
		if len(ring) != RingSize(radius) {
			t.Fatalf("len(Ring(%d)) = %d, want %d", radius, len(ring), RingSize(radius))
		}
		seen := make(map[Coord]bool)
		for _, c := range ring {
			if d := Distance(center, c); d != max(radius, 0) {
				t.Errorf("Ring(%d) contains %v at distance %d", radius, c, d)
			}
			if seen[c] {
				t.Errorf("Ring(%d) contains %v twice", radius, c)
			}
			seen[c] = true
		}
	}
}

func TestRangeCountAndDistance(t *testing.T) {
	center := MustAt(-2, 0, 2)

	for radius := 0; radius <= 4; radius++ {
		got := center.Range(radius)
		if len(got) != RangeSize(radius) {
			t.Fatalf("len(Range(%d)) = %d, want %d", radius, len(got), RangeSize(radius))
		}
		seen := make(map[Coord]bool)
		for _, c := range got {
			if d := Distance(center, c); d > radius {
				t.Errorf("Range(%d) contains %v at distance %d", radius, c, d)
			}
			seen[c] = true
		}
		if len(seen) != len(got) {
			t.Errorf("Range(%d) contains duplicates", radius)
		}
	}
}

func TestCoordArithmetic(t *testing.T) {
	a, b := MustAt(2, -1, -1), MustAt(-1, 3, -2)

	if got, want := a.Add(b), MustAt(1, 2, -3); got != want {
		t.Errorf("%v.Add(%v) = %v, want %v", a, b, got, want)
	}
	if got, want := a.Sub(b), MustAt(3, -4, 1); got != want {
		t.Errorf("%v.Sub(%v) = %v, want %v", a, b, got, want)
	}
	if got, want := a.Scale(3), MustAt(6, -3, -3); got != want {
		t.Errorf("%v.Scale(3) = %v, want %v", a, got, want)
	}
}

func TestCoordString(t *testing.T) {
	if got, want := MustAt(1, -1, 0).String(), "(1,-1,0)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
