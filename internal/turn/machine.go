// Package turn implements the phased turn cycle: unit selection,
// movement, action, and hand-off to the next player. Every transition
// is all-or-nothing; on failure an error is returned and the machine,
// roster, and grid are left untouched.
package turn

import (
	"errors"
	"fmt"

	"github.com/samdwyer/hexfield/internal/combat"
	"github.com/samdwyer/hexfield/internal/entity"
	"github.com/samdwyer/hexfield/internal/hex"
	"github.com/samdwyer/hexfield/internal/search"
	"github.com/samdwyer/hexfield/internal/world"
)

// Transition errors. Callers test with errors.Is; the wrapped text
// carries the rejected detail.
var (
	ErrIllegalSelection = errors.New("illegal selection")
	ErrIllegalMove      = errors.New("illegal move")
	ErrIllegalAction    = errors.New("illegal action")
)

// Phase is the current step of the active player's turn.
type Phase int

const (
	// PhaseSelect - awaiting unit selection
	PhaseSelect Phase = iota
	// PhaseMove - unit selected, awaiting a destination or cancel
	PhaseMove
	// PhaseAct - move committed, awaiting an action or skip
	PhaseAct
	// PhaseEndTurn - transient hand-off to the next player
	PhaseEndTurn
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSelect:
		return "select"
	case PhaseMove:
		return "move"
	case PhaseAct:
		return "act"
	case PhaseEndTurn:
		return "end_turn"
	default:
		return "unknown"
	}
}

// State is the whose-turn snapshot. One State belongs to one Machine;
// nothing here is process-global. Turn counts player-turns and starts
// at 1.
type State struct {
	ActivePlayer entity.PlayerID
	Turn         int
	Phase        Phase
}

// ActionKind names what a unit does with its action.
type ActionKind int

const (
	// ActionAttack - strike a unit in range with line of sight
	ActionAttack ActionKind = iota
)

// String returns a human-readable action name.
func (k ActionKind) String() string {
	switch k {
	case ActionAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// Action is a unit's act-phase order.
type Action struct {
	Kind   ActionKind
	Target entity.UnitID // unit acted upon, for ActionAttack
}

// Machine drives the turn cycle over one grid and roster. It is the
// only writer of unit positions and grid occupants; hosts read state
// through the query methods and mutate only through transitions.
type Machine struct {
	state   State
	grid    *world.Grid
	roster  *entity.Roster
	players int

	resolver *combat.Resolver

	selected  entity.UnitID
	reachable map[hex.Coord]int // legal destinations, computed at selection
}

// NewMachine creates a machine in Select phase for player zero's first
// turn. players is the number of seats in the round-robin.
func NewMachine(grid *world.Grid, roster *entity.Roster, players int) *Machine {
	if players < 1 {
		players = 1
	}
	return &Machine{
		state:    State{Turn: 1, Phase: PhaseSelect},
		grid:     grid,
		roster:   roster,
		players:  players,
		resolver: combat.NewResolver(),
	}
}

// State returns a copy of the whose-turn state.
func (m *Machine) State() State { return m.state }

// Selected returns the currently selected unit, if any.
func (m *Machine) Selected() (entity.UnitID, bool) {
	return m.selected, m.selected != entity.NoUnit
}

// Reachable returns a copy of the legal destinations computed when the
// current unit was selected, keyed by minimum entry cost. It is nil
// outside the Move phase.
func (m *Machine) Reachable() map[hex.Coord]int {
	if m.reachable == nil {
		return nil
	}
	out := make(map[hex.Coord]int, len(m.reachable))
	for c, cost := range m.reachable {
		out[c] = cost
	}
	return out
}

// SelectUnit picks one of the active player's units to move and act.
// Legal only in Select phase for a unit that has not acted this turn.
func (m *Machine) SelectUnit(id entity.UnitID) ([]Event, error) {
	if m.state.Phase != PhaseSelect {
		return nil, fmt.Errorf("%w: not in select phase (in %v)", ErrIllegalSelection, m.state.Phase)
	}
	u, ok := m.roster.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: unknown unit %d", ErrIllegalSelection, id)
	}
	if u.Owner != m.state.ActivePlayer {
		return nil, fmt.Errorf("%w: %s belongs to player %d", ErrIllegalSelection, u.Name, u.Owner)
	}
	if !u.CanAct() {
		return nil, fmt.Errorf("%w: %s has already acted", ErrIllegalSelection, u.Name)
	}

	m.selected = id
	m.reachable = m.destinationsFor(u)
	m.state.Phase = PhaseMove
	return []Event{EventPhaseChanged{From: PhaseSelect, To: PhaseMove}}, nil
}

// CommitMove moves the selected unit to dest. Legal only in Move phase
// and only onto a destination in the set computed at selection. Unit
// position and grid occupancy update together or not at all; on
// failure the phase stays Move so the caller may retry or cancel.
func (m *Machine) CommitMove(dest hex.Coord) ([]Event, error) {
	if m.state.Phase != PhaseMove {
		return nil, fmt.Errorf("%w: not in move phase (in %v)", ErrIllegalMove, m.state.Phase)
	}
	cost, ok := m.reachable[dest]
	if !ok {
		return nil, fmt.Errorf("%w: %v is not a legal destination", ErrIllegalMove, dest)
	}
	u := m.mustUnit(m.selected)

	from := u.Pos
	path, err := search.FindPath(m.movementCosts(u.Owner), from, dest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}

	// Clear-old and set-new must land together; restore on failure so
	// no partial move is ever observable.
	if err := m.grid.ClearOccupant(from); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	if err := m.grid.SetOccupant(dest, u.ID); err != nil {
		if rerr := m.grid.SetOccupant(from, u.ID); rerr != nil {
			panic(fmt.Sprintf("turn: occupant rollback failed: %v", rerr))
		}
		return nil, fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	u.Pos = dest
	u.RemainingMove -= cost

	m.reachable = nil
	m.state.Phase = PhaseAct
	return []Event{
		EventMoved{Unit: u.ID, From: from, To: dest, Path: path.Coords, Cost: cost},
		EventPhaseChanged{From: PhaseMove, To: PhaseAct},
	}, nil
}

// Cancel drops the current selection and returns to Select. Legal in
// Move phase; in Act phase it is accepted as a no-op, because a
// committed move cannot be taken back. Any other phase is an error.
func (m *Machine) Cancel() ([]Event, error) {
	switch m.state.Phase {
	case PhaseMove:
		m.selected = entity.NoUnit
		m.reachable = nil
		m.state.Phase = PhaseSelect
		return []Event{EventPhaseChanged{From: PhaseMove, To: PhaseSelect}}, nil
	case PhaseAct:
		return nil, nil // move already committed; nothing to undo
	default:
		return nil, fmt.Errorf("%w: nothing to cancel in %v phase", ErrIllegalAction, m.state.Phase)
	}
}

// CommitAction performs the selected unit's action. Legal only in Act
// phase. An attack needs a living enemy target in range with line of
// sight; lethal damage removes the target from roster and grid in the
// same transition. The unit is marked acted and control returns to
// Select, or passes to the next player when no units remain to act.
func (m *Machine) CommitAction(a Action) ([]Event, error) {
	if m.state.Phase != PhaseAct {
		return nil, fmt.Errorf("%w: not in act phase (in %v)", ErrIllegalAction, m.state.Phase)
	}
	if a.Kind != ActionAttack {
		return nil, fmt.Errorf("%w: unknown action kind %d", ErrIllegalAction, a.Kind)
	}
	u := m.mustUnit(m.selected)
	target, ok := m.roster.Get(a.Target)
	if !ok {
		return nil, fmt.Errorf("%w: unknown target %d", ErrIllegalAction, a.Target)
	}
	if target.Owner == u.Owner {
		return nil, fmt.Errorf("%w: %s is friendly", ErrIllegalAction, target.Name)
	}
	if hex.Distance(u.Pos, target.Pos) > u.AttackRange {
		return nil, fmt.Errorf("%w: %s is out of range", ErrIllegalAction, target.Name)
	}
	if !search.Visible(m.opaque, u.Pos, target.Pos) {
		return nil, fmt.Errorf("%w: no line of sight to %s", ErrIllegalAction, target.Name)
	}

	result := m.resolver.ResolveAttack(u, target)
	events := []Event{EventUnitAttacked{
		Attacker:  u.ID,
		Target:    target.ID,
		At:        target.Pos,
		Damage:    result.Damage,
		Destroyed: result.Destroyed,
		Message:   result.Message,
	}}
	if result.Destroyed {
		if err := m.grid.ClearOccupant(target.Pos); err != nil {
			panic(fmt.Sprintf("turn: clearing destroyed unit %d: %v", target.ID, err))
		}
		m.roster.Remove(target.ID)
	}

	u.Acted = true
	return m.finishActivation(events), nil
}

// SkipAction spends the selected unit's action doing nothing. Legal
// only in Act phase.
func (m *Machine) SkipAction() ([]Event, error) {
	if m.state.Phase != PhaseAct {
		return nil, fmt.Errorf("%w: not in act phase (in %v)", ErrIllegalAction, m.state.Phase)
	}
	u := m.mustUnit(m.selected)
	u.Acted = true
	return m.finishActivation(nil), nil
}

// EndTurn passes control to the next player. Legal in Select and Act;
// rejected mid-Move while a destination is still undecided, so a
// half-taken decision is never silently discarded.
func (m *Machine) EndTurn() ([]Event, error) {
	switch m.state.Phase {
	case PhaseSelect, PhaseAct:
	default:
		return nil, fmt.Errorf("%w: cannot end turn in %v phase", ErrIllegalAction, m.state.Phase)
	}
	from := m.state.Phase
	m.selected = entity.NoUnit
	m.reachable = nil
	m.state.Phase = PhaseEndTurn
	return m.passTurn([]Event{EventPhaseChanged{From: from, To: PhaseEndTurn}}), nil
}

// finishActivation clears the selection and hands control back to
// Select, or ends the turn when the active player has no unit left to
// act.
func (m *Machine) finishActivation(events []Event) []Event {
	m.selected = entity.NoUnit
	m.reachable = nil

	if m.hasActableUnit(m.state.ActivePlayer) {
		m.state.Phase = PhaseSelect
		return append(events, EventPhaseChanged{From: PhaseAct, To: PhaseSelect})
	}
	m.state.Phase = PhaseEndTurn
	return m.passTurn(append(events, EventPhaseChanged{From: PhaseAct, To: PhaseEndTurn}))
}

// passTurn hands control to the next player: fresh movement and action
// budgets for their units, turn counter up by one, back to Select.
func (m *Machine) passTurn(events []Event) []Event {
	next := entity.PlayerID((int(m.state.ActivePlayer) + 1) % m.players)
	for _, u := range m.roster.ByOwner(next) {
		u.ResetForTurn()
	}
	m.state.ActivePlayer = next
	m.state.Turn++
	m.state.Phase = PhaseSelect
	return append(events,
		EventTurnEnded{NextPlayer: next, Turn: m.state.Turn},
		EventPhaseChanged{From: PhaseEndTurn, To: PhaseSelect},
	)
}

// hasActableUnit reports whether p owns a unit that can still act.
func (m *Machine) hasActableUnit(p entity.PlayerID) bool {
	for _, u := range m.roster.ByOwner(p) {
		if u.CanAct() {
			return true
		}
	}
	return false
}

// destinationsFor returns the tiles a unit can end its move on:
// minimum entry cost within RemainingMove, minus tiles another unit
// stands on. Friendly units can be moved through but not displaced.
func (m *Machine) destinationsFor(u *entity.Unit) map[hex.Coord]int {
	reach := search.Reachable(m.movementCosts(u.Owner), u.Pos, u.RemainingMove)
	for c := range reach {
		if t, ok := m.grid.TileAt(c); ok && t.Occupied() && t.Occupant != u.ID {
			delete(reach, c)
		}
	}
	return reach
}

// movementCosts builds the movement rules for a unit owned by p:
// terrain entry cost, with tiles held by enemy units impassable.
// Enemy occupancy blocks movement only, never sight.
func (m *Machine) movementCosts(p entity.PlayerID) search.CostFunc {
	return func(from, to hex.Coord) (int, bool) {
		t, ok := m.grid.TileAt(to)
		if !ok || !t.Terrain.Passable() {
			return 0, false
		}
		if t.Occupied() {
			if occ, ok := m.roster.Get(t.Occupant); ok && occ.Owner != p {
				return 0, false
			}
		}
		return t.Terrain.MoveCost, true
	}
}

// opaque reports whether c blocks line of sight. Dense terrain (entry
// cost above one) and the map edge block; open water and units do not.
func (m *Machine) opaque(c hex.Coord) bool {
	t, ok := m.grid.TileAt(c)
	if !ok {
		return true
	}
	return t.Terrain.MoveCost > 1
}

// mustUnit returns the roster unit for id. The machine only stores ids
// it resolved against the roster, so a miss is a corrupted-state bug.
func (m *Machine) mustUnit(id entity.UnitID) *entity.Unit {
	u, ok := m.roster.Get(id)
	if !ok {
		panic(fmt.Sprintf("turn: unit %d missing from roster", id))
	}
	return u
}
