package gamedata

import (
	"math/rand"
	"testing"
)

func TestLoadTerrains(t *testing.T) {
	terrains, err := LoadTerrains()
	if err != nil {
		t.Fatalf("Failed to load terrains: %v", err)
	}

	if len(terrains) != 3 {
		t.Errorf("Expected 3 terrains, got %d", len(terrains))
	}

	// Verify expected terrains exist
	expectedIDs := map[string]bool{"water": false, "plains": false, "forest": false}
	for _, tr := range terrains {
		if _, ok := expectedIDs[tr.ID]; ok {
			expectedIDs[tr.ID] = true
		}
	}

	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected terrain %q not found", id)
		}
	}
}

func TestTerrainRegistry(t *testing.T) {
	registry, err := LoadTerrainRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if registry.Count() != 3 {
		t.Errorf("Expected 3 terrain kinds, got %d", registry.Count())
	}

	water := registry.GetByID("water")
	if water == nil {
		t.Fatal("Water not found by ID")
	}
	if water.MoveCost != 0 {
		t.Errorf("Expected water to be impassable (moveCost 0), got %d", water.MoveCost)
	}

	// Bands must ascend in file order so generation can scan them
	all := registry.All()
	for i := 1; i < len(all); i++ {
		if all[i].BandMax <= all[i-1].BandMax {
			t.Errorf("Band %q (%v) does not ascend past %q (%v)",
				all[i].ID, all[i].BandMax, all[i-1].ID, all[i-1].BandMax)
		}
	}
}

func TestValidateBands(t *testing.T) {
	good := []TerrainDef{
		{ID: "a", BandMax: 0.3},
		{ID: "b", BandMax: 0.7},
	}
	if err := validateBands(good); err != nil {
		t.Errorf("validateBands(ascending) = %v, want nil", err)
	}

	bad := []TerrainDef{
		{ID: "a", BandMax: 0.9},
		{ID: "b", BandMax: 0.5},
	}
	if err := validateBands(bad); err == nil {
		t.Error("validateBands(descending) = nil, want error")
	}
}

func TestLoadClasses(t *testing.T) {
	classes, err := LoadClasses()
	if err != nil {
		t.Fatalf("Failed to load classes: %v", err)
	}

	if len(classes) != 3 {
		t.Errorf("Expected 3 classes, got %d", len(classes))
	}

	expectedIDs := map[string]bool{"infantry": false, "scout": false, "archer": false}
	for _, c := range classes {
		if _, ok := expectedIDs[c.ID]; ok {
			expectedIDs[c.ID] = true
		}
		if c.Move <= 0 {
			t.Errorf("Class %q has non-positive move %d", c.ID, c.Move)
		}
		if c.Range <= 0 {
			t.Errorf("Class %q has non-positive range %d", c.ID, c.Range)
		}
	}

	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected class %q not found", id)
		}
	}
}

func TestClassRegistry(t *testing.T) {
	registry, err := LoadClassRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if registry.Count() != 3 {
		t.Errorf("Expected 3 classes, got %d", registry.Count())
	}

	// Test GetByID
	scout := registry.GetByID("scout")
	if scout == nil {
		t.Error("Scout not found by ID")
	} else if scout.Name != "Scout" {
		t.Errorf("Expected name 'Scout', got %q", scout.Name)
	}

	// Test weighted spawning is deterministic with same seed
	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))

	spawns1 := make([]string, 10)
	spawns2 := make([]string, 10)

	for i := 0; i < 10; i++ {
		spawns1[i] = registry.SpawnRandom(rng1).ID
		spawns2[i] = registry.SpawnRandom(rng2).ID
	}

	for i := 0; i < 10; i++ {
		if spawns1[i] != spawns2[i] {
			t.Errorf("Spawn %d mismatch: %s != %s", i, spawns1[i], spawns2[i])
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#0000FF", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false}, // Too short
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestTerrainDefMethods(t *testing.T) {
	def := TerrainDef{
		ID:       "test",
		Name:     "Test Terrain",
		Glyph:    "%",
		Color:    "#FF0000",
		MoveCost: 2,
		BandMax:  0.5,
	}

	if def.GlyphRune() != '%' {
		t.Errorf("Expected glyph '%%', got %c", def.GlyphRune())
	}

	color := def.TCellColor()
	if color == 0 {
		t.Error("TCellColor returned zero color")
	}

	empty := TerrainDef{}
	if empty.GlyphRune() != '?' {
		t.Errorf("Expected fallback glyph '?', got %c", empty.GlyphRune())
	}
}

func TestClassDefMethods(t *testing.T) {
	def := ClassDef{
		ID:          "test",
		Name:        "Test Class",
		Symbol:      "T",
		Color:       "not-a-color",
		HP:          10,
		Attack:      5,
		Range:       1,
		Move:        3,
		SpawnWeight: 50,
	}

	if def.SymbolRune() != 'T' {
		t.Errorf("Expected symbol 'T', got %c", def.SymbolRune())
	}

	// Unparseable colors fall back instead of failing
	if got := def.TCellColor(); got == 0 {
		t.Error("TCellColor returned zero color for fallback")
	}
}
