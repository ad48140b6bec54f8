package gamedata

import (
	"errors"
	"fmt"
	"math/rand"
)

// TerrainRegistry holds loaded terrain definitions and provides lookup
// utilities. Definitions keep their file order, which is ascending by
// elevation band.
type TerrainRegistry struct {
	terrains []TerrainDef
	byID     map[string]*TerrainDef
}

// NewTerrainRegistry creates a registry from loaded terrain definitions.
func NewTerrainRegistry(terrains []TerrainDef) *TerrainRegistry {
	registry := &TerrainRegistry{
		terrains: terrains,
		byID:     make(map[string]*TerrainDef, len(terrains)),
	}
	for i := range terrains {
		registry.byID[terrains[i].ID] = &terrains[i]
	}
	return registry
}

// LoadTerrainRegistry loads and creates a registry from the embedded
// terrains.json, validating that elevation bands ascend.
func LoadTerrainRegistry() (*TerrainRegistry, error) {
	terrains, err := LoadTerrains()
	if err != nil {
		return nil, err
	}
	if len(terrains) == 0 {
		return nil, errors.New("no terrains loaded from terrains.json")
	}
	if err := validateBands(terrains); err != nil {
		return nil, err
	}
	return NewTerrainRegistry(terrains), nil
}

// validateBands checks that terrain elevation bands strictly ascend in
// file order, which generation relies on when scanning bands.
func validateBands(terrains []TerrainDef) error {
	for i := 1; i < len(terrains); i++ {
		if terrains[i].BandMax <= terrains[i-1].BandMax {
			return fmt.Errorf("terrain %q bandMax %v does not ascend past %q",
				terrains[i].ID, terrains[i].BandMax, terrains[i-1].ID)
		}
	}
	return nil
}

// MustLoadTerrainRegistry loads a registry, panicking on error.
func MustLoadTerrainRegistry() *TerrainRegistry {
	registry, err := LoadTerrainRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the terrain definition with the given ID, or nil if not found.
func (r *TerrainRegistry) GetByID(id string) *TerrainDef {
	return r.byID[id]
}

// All returns all terrain definitions in band order.
func (r *TerrainRegistry) All() []TerrainDef {
	return r.terrains
}

// Count returns the number of terrain kinds in the registry.
func (r *TerrainRegistry) Count() int {
	return len(r.terrains)
}

// =============================================================================
// ClassRegistry
// =============================================================================

// ClassRegistry holds loaded class definitions and provides spawning
// utilities for scenario building.
type ClassRegistry struct {
	classes     []ClassDef
	totalWeight int
}

// NewClassRegistry creates a registry from loaded class definitions.
func NewClassRegistry(classes []ClassDef) *ClassRegistry {
	totalWeight := 0
	for _, c := range classes {
		totalWeight += c.SpawnWeight
	}
	return &ClassRegistry{
		classes:     classes,
		totalWeight: totalWeight,
	}
}

// LoadClassRegistry loads and creates a registry from the embedded classes.json.
func LoadClassRegistry() (*ClassRegistry, error) {
	classes, err := LoadClasses()
	if err != nil {
		return nil, err
	}
	if len(classes) == 0 {
		return nil, errors.New("no classes loaded from classes.json")
	}
	return NewClassRegistry(classes), nil
}

// MustLoadClassRegistry loads a registry, panicking on error.
func MustLoadClassRegistry() *ClassRegistry {
	registry, err := LoadClassRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a random class definition using weighted
// probability. Classes with higher spawnWeight are more likely to be
// selected.
func (r *ClassRegistry) SpawnRandom(rng *rand.Rand) *ClassDef {
	if r.totalWeight <= 0 || len(r.classes) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.classes {
		cumulative += r.classes[i].SpawnWeight
		if roll < cumulative {
			return &r.classes[i]
		}
	}

	// Fallback (shouldn't happen)
	return &r.classes[0]
}

// GetByID returns the class definition with the given ID, or nil if not found.
func (r *ClassRegistry) GetByID(id string) *ClassDef {
	for i := range r.classes {
		if r.classes[i].ID == id {
			return &r.classes[i]
		}
	}
	return nil
}

// All returns all class definitions.
func (r *ClassRegistry) All() []ClassDef {
	return r.classes
}

// Count returns the number of classes in the registry.
func (r *ClassRegistry) Count() int {
	return len(r.classes)
}
