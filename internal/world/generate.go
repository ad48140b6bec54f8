package world

import (
	"context"
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/hexfield/internal/telemetry"
)

// Band assigns a terrain to every elevation at or below Max. Bands are
// evaluated in order, so they must be listed with ascending Max.
type Band struct {
	Max     float64
	Terrain Terrain
}

// GenConfig holds terrain generation parameters.
type GenConfig struct {
	Seed      int64   // noise seed; identical seeds yield identical maps
	Frequency float64 // noise sampling frequency, higher = choppier
	Bands     []Band  // elevation bands, ascending Max
}

// DefaultGenConfig returns a water/plains/forest palette tuned for
// small tactical maps.
func DefaultGenConfig(seed int64) GenConfig {
	return GenConfig{
		Seed:      seed,
		Frequency: 0.35,
		Bands: []Band{
			{Max: 0.22, Terrain: TerrainWater},
			{Max: 0.70, Terrain: TerrainPlains},
			{Max: 1.01, Terrain: TerrainForest},
		},
	}
}

// Generate assigns terrain to every tile from seeded simplex noise.
// The same config on the same grid shape always produces the same
// map. Occupants are untouched.
func (g *Grid) Generate(ctx context.Context, cfg GenConfig) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "grid.generate")
	defer span.End()

	if len(cfg.Bands) == 0 {
		return
	}

	startTime := time.Now()
	noise := opensimplex.NewNormalized(cfg.Seed)

	counts := make(map[string]int, len(cfg.Bands))
	for _, c := range g.coords {
		elevation := noise.Eval2(float64(c.Q)*cfg.Frequency, float64(c.R)*cfg.Frequency)
		terrain := cfg.Bands[len(cfg.Bands)-1].Terrain
		for _, band := range cfg.Bands {
			if elevation <= band.Max {
				terrain = band.Terrain
				break
			}
		}
		t := g.tiles[c]
		t.Terrain = terrain
		g.tiles[c] = t
		counts[terrain.ID]++
	}

	span.SetAttributes(
		attribute.Int64("grid.seed", cfg.Seed),
		attribute.Int("grid.tiles", len(g.coords)),
		attribute.Int("grid.terrain_kinds", len(counts)),
		attribute.Int64("grid.generation_ms", time.Since(startTime).Milliseconds()),
	)
}
