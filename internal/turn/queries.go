package turn

import (
	"fmt"

	"github.com/samdwyer/hexfield/internal/entity"
	"github.com/samdwyer/hexfield/internal/hex"
	"github.com/samdwyer/hexfield/internal/search"
)

// LegalSelections returns the active player's selectable units in
// spawn order. An empty result means the only legal command is
// EndTurn.
func (m *Machine) LegalSelections() []entity.UnitID {
	var out []entity.UnitID
	for _, u := range m.roster.ByOwner(m.state.ActivePlayer) {
		if u.CanAct() {
			out = append(out, u.ID)
		}
	}
	return out
}

// ReachableFor computes the tiles the given unit could end a move on
// right now, without changing any state. It works for any unit, so
// hosts can preview enemy threat ranges.
func (m *Machine) ReachableFor(id entity.UnitID) (map[hex.Coord]int, error) {
	u, ok := m.roster.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: unknown unit %d", ErrIllegalSelection, id)
	}
	return m.destinationsFor(u), nil
}

// AttackTargets returns the units the given unit could attack from its
// current position, in spawn order.
func (m *Machine) AttackTargets(id entity.UnitID) ([]entity.UnitID, error) {
	u, ok := m.roster.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: unknown unit %d", ErrIllegalSelection, id)
	}
	var out []entity.UnitID
	for _, t := range m.roster.All() {
		if t.Owner == u.Owner {
			continue
		}
		if hex.Distance(u.Pos, t.Pos) > u.AttackRange {
			continue
		}
		if !search.Visible(m.opaque, u.Pos, t.Pos) {
			continue
		}
		out = append(out, t.ID)
	}
	return out, nil
}
