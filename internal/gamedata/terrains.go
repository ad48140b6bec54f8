package gamedata

import "github.com/gdamore/tcell/v2"

// TerrainDef defines a terrain kind loaded from JSON.
type TerrainDef struct {
	ID       string  `json:"id"`       // Unique identifier (e.g., "plains")
	Name     string  `json:"name"`     // Display name (e.g., "Plains")
	Glyph    string  `json:"glyph"`    // Single character for rendering (e.g., ".")
	Color    string  `json:"color"`    // Hex color code (e.g., "#7BA05B")
	MoveCost int     `json:"moveCost"` // Cost to enter a tile; 0 = impassable
	BandMax  float64 `json:"bandMax"`  // Upper elevation bound for map generation (0.0-1.0+)
}

// GlyphRune returns the glyph as a rune for rendering.
func (t *TerrainDef) GlyphRune() rune {
	for _, r := range t.Glyph {
		return r
	}
	return '?'
}

// TCellColor returns the color as a tcell.Color.
func (t *TerrainDef) TCellColor() tcell.Color {
	return ColorOrDefault(t.Color, tcell.ColorWhite)
}

// TerrainsFile represents the structure of terrains.json.
type TerrainsFile struct {
	Terrains []TerrainDef `json:"terrains"`
}

// LoadTerrains loads terrain definitions from the embedded
// terrains.json file, ordered as listed (ascending bandMax).
func LoadTerrains() ([]TerrainDef, error) {
	file, err := Load[TerrainsFile]("terrains.json")
	if err != nil {
		return nil, err
	}
	return file.Terrains, nil
}

// MustLoadTerrains loads terrain definitions, panicking on error.
func MustLoadTerrains() []TerrainDef {
	terrains, err := LoadTerrains()
	if err != nil {
		panic(err)
	}
	return terrains
}
