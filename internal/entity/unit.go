// Package entity provides units, players, and the owning unit roster.
package entity

import (
	"github.com/samdwyer/hexfield/internal/gamedata"
	"github.com/samdwyer/hexfield/internal/hex"
)

// UnitID uniquely identifies a unit for its lifetime. Zero is
// reserved for "no unit".
type UnitID uint32

// NoUnit is the zero UnitID, meaning no occupant.
const NoUnit UnitID = 0

// PlayerID identifies a player. Players are numbered from zero.
type PlayerID uint8

// Class represents a unit's battlefield role.
type Class int

const (
	ClassInfantry Class = iota
	ClassScout
	ClassArcher
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassInfantry:
		return "Infantry"
	case ClassScout:
		return "Scout"
	case ClassArcher:
		return "Archer"
	default:
		return "Unknown"
	}
}

// ID returns the class identifier for data lookup.
func (c Class) ID() string {
	switch c {
	case ClassInfantry:
		return "infantry"
	case ClassScout:
		return "scout"
	case ClassArcher:
		return "archer"
	default:
		return "unknown"
	}
}

// ClassFromID returns the class with the given data identifier.
func ClassFromID(id string) (Class, bool) {
	for _, c := range []Class{ClassInfantry, ClassScout, ClassArcher} {
		if c.ID() == id {
			return c, true
		}
	}
	return 0, false
}

// Symbol returns the default display symbol for a class.
func (c Class) Symbol() rune {
	switch c {
	case ClassInfantry:
		return 'I'
	case ClassScout:
		return 'S'
	case ClassArcher:
		return 'A'
	default:
		return '?'
	}
}

// Unit is a single battlefield unit. The turn machine owns all units
// and is the only writer of Pos; tiles carry just the UnitID
// back-reference.
type Unit struct {
	ID    UnitID
	Owner PlayerID
	Class Class
	Name  string
	Pos   hex.Coord

	Health, MaxHealth int
	Attack            int
	AttackRange       int
	MaxMove           int
	RemainingMove     int
	Acted             bool
}

// NewUnit creates a unit of the given class at pos with default
// stats; use InitFromClassDef to load stats from data.
func NewUnit(owner PlayerID, class Class, pos hex.Coord) *Unit {
	return &Unit{
		Owner:         owner,
		Class:         class,
		Name:          class.String(),
		Pos:           pos,
		Health:        10, // Default stats
		MaxHealth:     10,
		Attack:        3,
		AttackRange:   1,
		MaxMove:       2,
		RemainingMove: 2,
	}
}

// InitFromClassDef initializes unit stats from a class definition.
func (u *Unit) InitFromClassDef(def *gamedata.ClassDef) {
	if def == nil {
		return
	}
	u.Name = def.Name
	u.Health = def.HP
	u.MaxHealth = def.HP
	u.Attack = def.Attack
	u.AttackRange = def.Range
	u.MaxMove = def.Move
	u.RemainingMove = def.Move
}

// GetName returns the unit's display name.
func (u *Unit) GetName() string { return u.Name }

// IsAlive returns true if the unit has health remaining.
func (u *Unit) IsAlive() bool { return u.Health > 0 }

// CanAct returns true if the unit may still be selected this turn.
func (u *Unit) CanAct() bool { return u.IsAlive() && !u.Acted }

// GetAttack returns the unit's attack stat.
func (u *Unit) GetAttack() int { return u.Attack }

// TakeDamage reduces health and returns actual damage taken.
func (u *Unit) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > u.Health {
		actual = u.Health
	}
	u.Health -= actual
	return actual
}

// ResetForTurn restores the per-turn movement and action budget.
func (u *Unit) ResetForTurn() {
	u.RemainingMove = u.MaxMove
	u.Acted = false
}
