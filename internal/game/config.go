package game

// Config holds match setup options.
type Config struct {
	// Seed for random number generation. Used for reproducible map
	// generation and army spawning. A seed of 0 means a random seed
	// will be generated.
	Seed int64

	// MapRadius is the radius of the hexagonal map in tiles.
	MapRadius int

	// Players is the number of seats in the turn round-robin.
	Players int

	// UnitsPerPlayer is the army size spawned for each player.
	UnitsPerPlayer int
}

// DefaultConfig returns a two-player skirmish on a radius-5 map.
func DefaultConfig(seed int64) Config {
	return Config{
		Seed:           seed,
		MapRadius:      5,
		Players:        2,
		UnitsPerPlayer: 3,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig(c.Seed)
	if c.MapRadius <= 0 {
		c.MapRadius = def.MapRadius
	}
	if c.Players <= 0 {
		c.Players = def.Players
	}
	if c.UnitsPerPlayer <= 0 {
		c.UnitsPerPlayer = def.UnitsPerPlayer
	}
	return c
}
