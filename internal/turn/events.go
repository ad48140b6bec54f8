package turn

import (
	"github.com/samdwyer/hexfield/internal/entity"
	"github.com/samdwyer/hexfield/internal/hex"
)

// Event describes one observable effect of a successful transition.
// The bridge layer consumes events to drive animations and messages;
// the machine itself never schedules or times anything.
type Event interface {
	event()
}

// EventPhaseChanged reports the machine moving between phases.
type EventPhaseChanged struct {
	From, To Phase
}

// EventMoved reports a committed unit move.
type EventMoved struct {
	Unit entity.UnitID
	From hex.Coord
	To   hex.Coord
	Path []hex.Coord // inclusive of both endpoints
	Cost int
}

// EventUnitAttacked reports a resolved attack. At is the target's
// tile, kept here because a destroyed target is gone from the roster
// by the time the event is read.
type EventUnitAttacked struct {
	Attacker  entity.UnitID
	Target    entity.UnitID
	At        hex.Coord
	Damage    int
	Destroyed bool
	Message   string
}

// EventTurnEnded reports control passing to the next player.
type EventTurnEnded struct {
	NextPlayer entity.PlayerID
	Turn       int
}

func (EventPhaseChanged) event() {}
func (EventMoved) event()        {}
func (EventUnitAttacked) event() {}
func (EventTurnEnded) event()    {}
