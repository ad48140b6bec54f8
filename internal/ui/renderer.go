package ui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/hexfield/internal/anim"
	"github.com/samdwyer/hexfield/internal/entity"
	"github.com/samdwyer/hexfield/internal/game"
	"github.com/samdwyer/hexfield/internal/gamedata"
	"github.com/samdwyer/hexfield/internal/hex"
)

// playerColors styles unit glyphs per owner; owners past the palette
// wrap around.
var playerColors = []tcell.Color{
	tcell.ColorYellow,
	tcell.ColorAqua,
	tcell.ColorFuchsia,
	tcell.ColorLime,
}

// Renderer draws one match snapshot per frame. Hex centers project to
// terminal cells two columns apart, each row shifted right by one
// column, which reads as a pointy-top grid under the terminal's tall
// cell aspect.
type Renderer struct {
	screen   *Screen
	terrains *gamedata.TerrainRegistry
	classes  *gamedata.ClassRegistry

	originX, originY int
}

// NewRenderer creates a renderer drawing to screen with data-driven
// glyphs and colors.
func NewRenderer(screen *Screen, terrains *gamedata.TerrainRegistry, classes *gamedata.ClassRegistry) *Renderer {
	return &Renderer{screen: screen, terrains: terrains, classes: classes}
}

// Render draws a full frame: tiles, units, animation overlays, the
// status line, and the combat log.
func (r *Renderer) Render(snap game.Snapshot, frames []anim.Frame) {
	r.screen.Clear()
	r.layout(snap)

	ov := r.buildOverlays(snap, frames)
	r.drawTiles(snap, ov)
	r.drawUnits(snap, ov)
	r.drawStatus(snap)
	r.drawMessages(snap)

	r.screen.Show()
}

// CellFor returns the terminal cell of c's center for the last
// rendered frame.
func (r *Renderer) CellFor(c hex.Coord) (x, y int) {
	return r.originX + 2*c.Q + c.R, r.originY + c.R
}

// CoordAt returns the map coordinate drawn at terminal cell (x, y),
// the inverse of CellFor. Each hex owns its center cell and the cell
// to its right.
func (r *Renderer) CoordAt(x, y int) hex.Coord {
	row := y - r.originY
	col := x - r.originX - row
	q := col / 2
	if col < 0 && col%2 != 0 {
		q--
	}
	return hex.Axial(q, row)
}

// layout centers the map horizontally and keeps the projection origin
// for input picking.
func (r *Renderer) layout(snap game.Snapshot) {
	if len(snap.Tiles) == 0 {
		return
	}
	var minX, maxX, minY int
	for i, tv := range snap.Tiles {
		x, y := 2*tv.Coord.Q+tv.Coord.R, tv.Coord.R
		if i == 0 {
			minX, maxX, minY = x, x, y
			continue
		}
		minX, maxX = min(minX, x), max(maxX, x)
		minY = min(minY, y)
	}
	w, _ := r.screen.Size()
	r.originX = (w-(maxX-minX+1))/2 - minX
	r.originY = 2 - minY
}

// overlays is the per-frame animation state applied on top of tiles
// and units.
type overlays struct {
	slide map[entity.UnitID][2]int // unit -> interpolated cell
	pulse map[hex.Coord]float64    // tile -> flash progress
}

// buildOverlays folds animation frames into drawing state. A sliding
// unit already stands on its destination tile, so the mover is found
// through the destination's occupant.
func (r *Renderer) buildOverlays(snap game.Snapshot, frames []anim.Frame) overlays {
	ov := overlays{
		slide: make(map[entity.UnitID][2]int),
		pulse: make(map[hex.Coord]float64),
	}
	for _, f := range frames {
		switch f.Kind {
		case anim.KindSlide:
			id := snap.OccupantAt(f.Payload.To)
			if id == entity.NoUnit {
				continue
			}
			fx, fy := r.CellFor(f.Payload.From)
			tx, ty := r.CellFor(f.Payload.To)
			ov.slide[id] = [2]int{
				int(math.Round(float64(fx) + float64(tx-fx)*f.Progress)),
				int(math.Round(float64(fy) + float64(ty-fy)*f.Progress)),
			}
		case anim.KindPulse:
			ov.pulse[f.Payload.From] = f.Progress
		}
	}
	return ov
}

func (r *Renderer) drawTiles(snap game.Snapshot, ov overlays) {
	for _, tv := range snap.Tiles {
		x, y := r.CellFor(tv.Coord)
		glyph := '?'
		style := tcell.StyleDefault
		if def := r.terrains.GetByID(tv.Terrain); def != nil {
			glyph = def.GlyphRune()
			style = style.Foreground(def.TCellColor())
		}
		if _, ok := snap.Reachable[tv.Coord]; ok {
			style = style.Background(tcell.ColorDarkSlateGray)
		}
		if p, ok := ov.pulse[tv.Coord]; ok {
			style = style.Background(pulseColor(p))
		}
		r.screen.SetContent(x, y, glyph, style)
	}
}

func (r *Renderer) drawUnits(snap game.Snapshot, ov overlays) {
	for _, u := range snap.Units {
		x, y := r.CellFor(u.Pos)
		if c, ok := ov.slide[u.ID]; ok {
			x, y = c[0], c[1]
		}

		glyph := u.Class.Symbol()
		if def := r.classes.GetByID(u.Class.ID()); def != nil {
			glyph = def.SymbolRune()
		}
		style := tcell.StyleDefault.
			Foreground(playerColors[int(u.Owner)%len(playerColors)]).
			Bold(true)
		if u.Acted {
			style = style.Dim(true)
		}
		if u.ID == snap.Selected {
			style = style.Underline(true)
		}
		if p, ok := ov.pulse[u.Pos]; ok {
			style = style.Background(pulseColor(p))
		}
		r.screen.SetContent(x, y, glyph, style)
	}
}

// pulseColor fades the hit flash from bright to dark as it ages.
func pulseColor(progress float64) tcell.Color {
	if progress < 0.5 {
		return tcell.ColorRed
	}
	return tcell.ColorDarkRed
}

func (r *Renderer) drawStatus(snap game.Snapshot) {
	text := fmt.Sprintf("Turn %d  Player %d  %v phase", snap.Turn.Turn, snap.Turn.ActivePlayer, snap.Turn.Phase)
	if u := snap.UnitByID(snap.Selected); u != nil {
		text += fmt.Sprintf("  |  %s %d/%d hp  move %d  range %d",
			u.Name, u.Health, u.MaxHealth, u.RemainingMove, u.AttackRange)
	}
	r.drawText(1, 0, text, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
}

func (r *Renderer) drawMessages(snap game.Snapshot) {
	_, h := r.screen.Size()
	start := h - len(snap.Messages)
	for i, msg := range snap.Messages {
		style := tcell.StyleDefault.Foreground(tcell.ColorGray)
		if i == len(snap.Messages)-1 {
			style = tcell.StyleDefault.Foreground(tcell.ColorWhite)
		}
		r.drawText(1, start+i, msg, style)
	}
}

// drawText writes a line of text, clipped at the right screen edge.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	for i, ch := range text {
		if x+i >= w {
			return
		}
		r.screen.SetContent(x+i, y, ch, style)
	}
}
