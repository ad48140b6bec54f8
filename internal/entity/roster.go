package entity

// Roster is the owning store for all live units, keyed by UnitID. IDs
// are allocated sequentially from 1 so spawn order is reproducible
// across runs.
type Roster struct {
	units  map[UnitID]*Unit
	order  []UnitID
	nextID UnitID
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{
		units:  make(map[UnitID]*Unit),
		nextID: 1,
	}
}

// Add stores a copy of u under a freshly allocated ID and returns the
// stored unit. The caller's value is not retained.
func (r *Roster) Add(u Unit) *Unit {
	u.ID = r.nextID
	r.nextID++
	stored := &u
	r.units[u.ID] = stored
	r.order = append(r.order, u.ID)
	return stored
}

// Get returns the unit with the given id.
func (r *Roster) Get(id UnitID) (*Unit, bool) {
	u, ok := r.units[id]
	return u, ok
}

// Remove deletes the unit with the given id. Removing an unknown id
// is a no-op.
func (r *Roster) Remove(id UnitID) {
	if _, ok := r.units[id]; !ok {
		return
	}
	delete(r.units, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of live units.
func (r *Roster) Len() int {
	return len(r.units)
}

// All returns every live unit in spawn order.
func (r *Roster) All() []*Unit {
	out := make([]*Unit, 0, len(r.units))
	for _, id := range r.order {
		out = append(out, r.units[id])
	}
	return out
}

// ByOwner returns the given player's units in spawn order.
func (r *Roster) ByOwner(p PlayerID) []*Unit {
	out := make([]*Unit, 0, len(r.units))
	for _, id := range r.order {
		if u := r.units[id]; u.Owner == p {
			out = append(out, u)
		}
	}
	return out
}
