// Package game assembles the map, roster, turn machine, and animation
// scheduler into one match behind a frame-oriented facade. A host
// drives it in a fixed per-frame order: submit the player's intents,
// advance animations with Tick, then read a Snapshot to draw. The
// package renders nothing and owns no clock; time always arrives as an
// argument.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/hexfield/internal/anim"
	"github.com/samdwyer/hexfield/internal/entity"
	"github.com/samdwyer/hexfield/internal/gamedata"
	"github.com/samdwyer/hexfield/internal/hex"
	"github.com/samdwyer/hexfield/internal/telemetry"
	"github.com/samdwyer/hexfield/internal/turn"
	"github.com/samdwyer/hexfield/internal/world"
)

// Game owns one match: grid, roster, turn machine, and the animation
// scheduler. Not safe for concurrent use; the host drives it one frame
// at a time.
type Game struct {
	id  uuid.UUID
	cfg Config

	grid    *world.Grid
	roster  *entity.Roster
	machine *turn.Machine
	sched   *anim.Scheduler

	messages []string
}

// New creates a match from cfg: a hexagonal map generated from the
// data-driven terrain palette, with each player's army spawned on
// passable tiles. The same config always produces the same match.
func New(ctx context.Context, cfg Config) (*Game, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	cfg = cfg.withDefaults()

	terrains, err := gamedata.LoadTerrainRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading terrains: %w", err)
	}
	classes, err := gamedata.LoadClassRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading classes: %w", err)
	}

	grid := world.NewHexagon(cfg.MapRadius, world.TerrainPlains)
	grid.Generate(ctx, genConfig(cfg.Seed, terrains))

	roster := entity.NewRoster()
	g := &Game{
		id:      uuid.New(),
		cfg:     cfg,
		grid:    grid,
		roster:  roster,
		machine: turn.NewMachine(grid, roster, cfg.Players),
		sched:   anim.NewScheduler(),
	}
	if err := g.spawnArmies(classes); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("game.id", g.id.String()),
		attribute.Int64("game.seed", cfg.Seed),
		attribute.Int("game.tiles", grid.Len()),
		attribute.Int("game.units", roster.Len()),
	)
	return g, nil
}

// NewScenario wraps a prepared grid and roster without generation or
// spawning. Fixed setups for demos and tests.
func NewScenario(grid *world.Grid, roster *entity.Roster, players int) *Game {
	return &Game{
		id:      uuid.New(),
		cfg:     DefaultConfig(0),
		grid:    grid,
		roster:  roster,
		machine: turn.NewMachine(grid, roster, players),
		sched:   anim.NewScheduler(),
	}
}

// genConfig builds generation bands from the terrain registry, keeping
// the data file's band order.
func genConfig(seed int64, terrains *gamedata.TerrainRegistry) world.GenConfig {
	defs := terrains.All()
	bands := make([]world.Band, 0, len(defs))
	for _, def := range defs {
		bands = append(bands, world.Band{
			Max:     def.BandMax,
			Terrain: world.Terrain{ID: def.ID, MoveCost: def.MoveCost},
		})
	}
	return world.GenConfig{
		Seed:      seed,
		Frequency: defaultFrequency,
		Bands:     bands,
	}
}

// defaultFrequency matches world.DefaultGenConfig; small tactical maps
// want broad terrain patches.
const defaultFrequency = 0.35

// spawnArmies places each player's army on passable tiles, with armies
// spaced apart by starting each player's search in its own stretch of
// the coordinate order. Classes are drawn from the weighted registry
// using the match seed.
func (g *Game) spawnArmies(classes *gamedata.ClassRegistry) error {
	open := make([]hex.Coord, 0, g.grid.Len())
	for _, c := range g.grid.Coords() {
		if _, ok := g.grid.MovementCost(c); ok {
			open = append(open, c)
		}
	}
	need := g.cfg.Players * g.cfg.UnitsPerPlayer
	if len(open) < need {
		return fmt.Errorf("map too small: %d passable tiles for %d units", len(open), need)
	}

	rng := rand.New(rand.NewSource(g.cfg.Seed))
	for p := 0; p < g.cfg.Players; p++ {
		base := p * len(open) / g.cfg.Players
		placed := 0
		for i := 0; placed < g.cfg.UnitsPerPlayer; i++ {
			if i >= len(open) {
				return fmt.Errorf("could not place army for player %d", p)
			}
			pos := open[(base+i)%len(open)]
			if t, _ := g.grid.TileAt(pos); t.Occupied() {
				continue
			}
			def := classes.SpawnRandom(rng)
			class, ok := entity.ClassFromID(def.ID)
			if !ok {
				return fmt.Errorf("class %q has no unit mapping", def.ID)
			}
			u := entity.NewUnit(entity.PlayerID(p), class, pos)
			u.InitFromClassDef(def)
			stored := g.roster.Add(*u)
			if err := g.grid.SetOccupant(pos, stored.ID); err != nil {
				return fmt.Errorf("placing %s: %w", stored.Name, err)
			}
			placed++
		}
	}
	return nil
}

// ID returns the unique match identifier.
func (g *Game) ID() uuid.UUID { return g.id }

// State returns the whose-turn state.
func (g *Game) State() turn.State { return g.machine.State() }

// Busy reports whether a blocking animation is still running. While
// busy, SubmitIntent rejects everything with ErrBusy.
func (g *Game) Busy() bool { return g.sched.BlockingActive() }

// Tick advances animations to now and returns this frame's animation
// frames. A finished animation appears at progress 1 exactly once.
func (g *Game) Tick(now time.Time) []anim.Frame { return g.sched.Tick(now) }

// ActiveAnimations returns the frames from the most recent Tick.
func (g *Game) ActiveAnimations() []anim.Frame { return g.sched.Active() }

// LegalSelections returns the units the active player may still
// select this turn.
func (g *Game) LegalSelections() []entity.UnitID { return g.machine.LegalSelections() }

// ReachableFor returns the destinations a unit could move to with its
// remaining budget. Works for any unit, so hosts can preview threats.
func (g *Game) ReachableFor(id entity.UnitID) (map[hex.Coord]int, error) {
	return g.machine.ReachableFor(id)
}

// AttackTargets returns the enemy units a unit could attack from where
// it stands.
func (g *Game) AttackTargets(id entity.UnitID) ([]entity.UnitID, error) {
	return g.machine.AttackTargets(id)
}

// enqueue schedules an animation. Durations are package constants, so
// a rejection is a programming error.
func (g *Game) enqueue(kind anim.Kind, p anim.Payload, d time.Duration, blocking bool, now time.Time) {
	if _, err := g.sched.Enqueue(kind, p, d, blocking, now); err != nil {
		panic(fmt.Sprintf("game: enqueue %v: %v", kind, err))
	}
}
