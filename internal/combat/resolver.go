// Package combat resolves attack actions between units.
package combat

// Combatant is the interface for anything that can take part in an
// attack. The turn machine passes roster units; tests pass mocks.
type Combatant interface {
	// Identity
	GetName() string
	IsAlive() bool

	// Stats
	GetAttack() int

	// Mutations
	TakeDamage(amount int) int // Returns actual damage taken
}

// Result contains the outcome of one resolved attack.
type Result struct {
	Damage    int    // Actual damage dealt
	Destroyed bool   // True if the target died
	Message   string // Human-readable description
}

// Resolver calculates and applies attack damage.
type Resolver struct{}

// NewResolver creates a new resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveAttack applies the attacker's damage to the target and
// reports what happened.
func (r *Resolver) ResolveAttack(attacker, target Combatant) Result {
	damage := r.CalculateDamage(attacker)
	actual := target.TakeDamage(damage)

	msg := attacker.GetName() + " attacks " + target.GetName() + "!"
	if !target.IsAlive() {
		msg = attacker.GetName() + " destroys " + target.GetName() + "!"
	}

	return Result{
		Damage:    actual,
		Destroyed: !target.IsAlive(),
		Message:   msg,
	}
}

// CalculateDamage calculates damage without applying it (for
// AI/preview). Damage is the attacker's attack stat, minimum 1.
func (r *Resolver) CalculateDamage(attacker Combatant) int {
	damage := attacker.GetAttack()
	if damage < 1 {
		damage = 1
	}
	return damage
}
