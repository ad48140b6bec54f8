package game

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/samdwyer/hexfield/internal/entity"
	"github.com/samdwyer/hexfield/internal/hex"
	"github.com/samdwyer/hexfield/internal/turn"
)

// TileView is one tile as a renderer sees it.
type TileView struct {
	Coord    hex.Coord
	Terrain  string
	Occupant entity.UnitID
}

// UnitView is one unit as a renderer sees it.
type UnitView struct {
	ID            entity.UnitID
	Owner         entity.PlayerID
	Class         entity.Class
	Name          string
	Pos           hex.Coord
	Health        int
	MaxHealth     int
	Attack        int
	AttackRange   int
	RemainingMove int
	Acted         bool
}

// Snapshot is a detached copy of everything a renderer needs for one
// frame. Mutating a snapshot never touches the live match.
type Snapshot struct {
	Turn      turn.State
	Selected  entity.UnitID
	Tiles     []TileView
	Units     []UnitView
	Reachable map[hex.Coord]int
	Messages  []string
}

// Snapshot captures the current match state. Tiles come in grid order
// and units in spawn order; Reachable is non-nil only in Move phase.
func (g *Game) Snapshot() Snapshot {
	selected, _ := g.machine.Selected()
	s := Snapshot{
		Turn:      g.machine.State(),
		Selected:  selected,
		Reachable: g.machine.Reachable(),
		Messages:  append([]string(nil), g.messages...),
	}
	s.Tiles = make([]TileView, 0, g.grid.Len())
	for _, c := range g.grid.Coords() {
		t, _ := g.grid.TileAt(c)
		s.Tiles = append(s.Tiles, TileView{Coord: c, Terrain: t.Terrain.ID, Occupant: t.Occupant})
	}
	s.Units = make([]UnitView, 0, g.roster.Len())
	for _, u := range g.roster.All() {
		s.Units = append(s.Units, UnitView{
			ID:            u.ID,
			Owner:         u.Owner,
			Class:         u.Class,
			Name:          u.Name,
			Pos:           u.Pos,
			Health:        u.Health,
			MaxHealth:     u.MaxHealth,
			Attack:        u.Attack,
			AttackRange:   u.AttackRange,
			RemainingMove: u.RemainingMove,
			Acted:         u.Acted,
		})
	}
	return s
}

// UnitByID returns the snapshot's view of a unit, or nil when the id
// is absent (destroyed units drop out of snapshots).
func (s Snapshot) UnitByID(id entity.UnitID) *UnitView {
	for i := range s.Units {
		if s.Units[i].ID == id {
			return &s.Units[i]
		}
	}
	return nil
}

// OccupantAt returns the unit standing at c, or entity.NoUnit.
func (s Snapshot) OccupantAt(c hex.Coord) entity.UnitID {
	for _, tv := range s.Tiles {
		if tv.Coord == c {
			return tv.Occupant
		}
	}
	return entity.NoUnit
}

// Checksum digests the gameplay state: turn, selection, tiles, and
// units in a fixed order. Identical play from the same seed yields
// identical checksums. Animation timing, log text, and the match id
// never enter the digest.
func (g *Game) Checksum() uint64 {
	h := xxhash.New()
	st := g.machine.State()
	fmt.Fprintf(h, "turn:%d:%d:%d\n", st.ActivePlayer, st.Turn, st.Phase)
	selected, _ := g.machine.Selected()
	fmt.Fprintf(h, "sel:%d\n", selected)
	for _, c := range g.grid.Coords() {
		t, _ := g.grid.TileAt(c)
		fmt.Fprintf(h, "tile:%d:%d:%s:%d\n", c.Q, c.R, t.Terrain.ID, t.Occupant)
	}
	for _, u := range g.roster.All() {
		fmt.Fprintf(h, "unit:%d:%d:%d:%d:%d:%d:%d:%d:%d:%t\n",
			u.ID, u.Owner, u.Pos.Q, u.Pos.R, u.Health, u.MaxHealth,
			u.Attack, u.AttackRange, u.RemainingMove, u.Acted)
	}
	return h.Sum64()
}
