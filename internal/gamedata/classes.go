package gamedata

import "github.com/gdamore/tcell/v2"

// ClassDef defines a unit class loaded from JSON.
type ClassDef struct {
	ID          string `json:"id"`          // Unique identifier matching entity.Class (e.g., "infantry")
	Name        string `json:"name"`        // Display name (e.g., "Infantry")
	Symbol      string `json:"symbol"`      // Single character for rendering (e.g., "I")
	Color       string `json:"color"`       // Hex color code (e.g., "#C0C0C0")
	HP          int    `json:"hp"`          // Base hit points
	Attack      int    `json:"attack"`      // Damage dealt per attack
	Range       int    `json:"range"`       // Attack range in tiles
	Move        int    `json:"move"`        // Movement budget per turn
	SpawnWeight int    `json:"spawnWeight"` // Relative frequency in random scenarios (higher = more common)
}

// SymbolRune returns the symbol as a rune for rendering.
func (c *ClassDef) SymbolRune() rune {
	for _, r := range c.Symbol {
		return r
	}
	return '?'
}

// TCellColor returns the color as a tcell.Color.
func (c *ClassDef) TCellColor() tcell.Color {
	return ColorOrDefault(c.Color, tcell.ColorWhite)
}

// ClassesFile represents the structure of classes.json.
type ClassesFile struct {
	Classes []ClassDef `json:"classes"`
}

// LoadClasses loads class definitions from the embedded classes.json
// file.
func LoadClasses() ([]ClassDef, error) {
	file, err := Load[ClassesFile]("classes.json")
	if err != nil {
		return nil, err
	}
	return file.Classes, nil
}

// MustLoadClasses loads class definitions, panicking on error.
func MustLoadClasses() []ClassDef {
	classes, err := LoadClasses()
	if err != nil {
		panic(err)
	}
	return classes
}
