// Package world provides the hex-tile map: terrain, bounds, and
// occupancy. Tiles are owned by the grid and handed out by value;
// all mutation goes through grid methods.
package world

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samdwyer/hexfield/internal/entity"
	"github.com/samdwyer/hexfield/internal/hex"
)

// ErrOutOfBounds reports a coordinate outside the grid.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// Terrain describes how a tile kind behaves for movement. MoveCost is
// the cost of entering a tile of this terrain; zero or negative means
// impassable.
type Terrain struct {
	ID       string
	MoveCost int
}

// Passable returns true if units can enter tiles of this terrain.
func (t Terrain) Passable() bool {
	return t.MoveCost > 0
}

// Built-in terrains used by default construction and tests. Data-driven
// palettes replace these at the game layer.
var (
	TerrainPlains = Terrain{ID: "plains", MoveCost: 1}
	TerrainForest = Terrain{ID: "forest", MoveCost: 2}
	TerrainWater  = Terrain{ID: "water", MoveCost: 0}
)

// Tile is a single map cell. Occupant is a weak back-reference:
// lookup-only, never used to mutate the unit it names.
type Tile struct {
	Coord    hex.Coord
	Terrain  Terrain
	Occupant entity.UnitID
}

// Occupied returns true if a unit stands on the tile.
func (t Tile) Occupied() bool {
	return t.Occupant != entity.NoUnit
}

// Grid is a finite hex map. The coordinate set is fixed at
// construction and may be any shape.
type Grid struct {
	tiles  map[hex.Coord]Tile
	coords []hex.Coord
}

// NewGrid builds a grid over the given coordinate set with every tile
// assigned the default terrain. Duplicate coordinates collapse to one
// tile.
func NewGrid(coords []hex.Coord, def Terrain) *Grid {
	g := &Grid{tiles: make(map[hex.Coord]Tile, len(coords))}
	for _, c := range coords {
		g.tiles[c] = Tile{Coord: c, Terrain: def}
	}
	g.coords = make([]hex.Coord, 0, len(g.tiles))
	for c := range g.tiles {
		g.coords = append(g.coords, c)
	}
	sort.Slice(g.coords, func(i, j int) bool {
		if g.coords[i].Q != g.coords[j].Q {
			return g.coords[i].Q < g.coords[j].Q
		}
		return g.coords[i].R < g.coords[j].R
	})
	return g
}

// Len returns the number of tiles.
func (g *Grid) Len() int {
	return len(g.tiles)
}

// Coords returns every coordinate in the grid in a fixed order (Q
// then R ascending). The slice is a copy; callers may keep it.
func (g *Grid) Coords() []hex.Coord {
	out := make([]hex.Coord, len(g.coords))
	copy(out, g.coords)
	return out
}

// IsWithinBounds returns true if c is part of the grid.
func (g *Grid) IsWithinBounds(c hex.Coord) bool {
	_, ok := g.tiles[c]
	return ok
}

// TileAt returns a copy of the tile at c, or ok=false outside the
// grid.
func (g *Grid) TileAt(c hex.Coord) (Tile, bool) {
	t, ok := g.tiles[c]
	return t, ok
}

// MovementCost returns the cost of entering c. ok is false when the
// tile is impassable or out of bounds.
func (g *Grid) MovementCost(c hex.Coord) (int, bool) {
	t, ok := g.tiles[c]
	if !ok || !t.Terrain.Passable() {
		return 0, false
	}
	return t.Terrain.MoveCost, true
}

// SetTerrain replaces the terrain at c.
func (g *Grid) SetTerrain(c hex.Coord, terrain Terrain) error {
	t, ok := g.tiles[c]
	if !ok {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	t.Terrain = terrain
	g.tiles[c] = t
	return nil
}

// SetOccupant records the unit standing at c; entity.NoUnit clears
// it. Out-of-bounds coordinates fail without touching any state.
func (g *Grid) SetOccupant(c hex.Coord, id entity.UnitID) error {
	t, ok := g.tiles[c]
	if !ok {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	t.Occupant = id
	g.tiles[c] = t
	return nil
}

// ClearOccupant removes any occupant record at c.
func (g *Grid) ClearOccupant(c hex.Coord) error {
	return g.SetOccupant(c, entity.NoUnit)
}
