package game

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/samdwyer/hexfield/internal/anim"
	"github.com/samdwyer/hexfield/internal/entity"
	"github.com/samdwyer/hexfield/internal/hex"
	"github.com/samdwyer/hexfield/internal/turn"
	"github.com/samdwyer/hexfield/internal/world"
)

var t0 = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

// openScenario is a 7x7 all-plains field with a single player-zero
// unit at the origin.
func openScenario(t *testing.T) (*Game, *entity.Unit) {
	t.Helper()
	grid := world.NewRectangle(7, 7, world.TerrainPlains)
	roster := entity.NewRoster()
	u := roster.Add(*entity.NewUnit(0, entity.ClassInfantry, hex.Axial(0, 0)))
	if err := grid.SetOccupant(u.Pos, u.ID); err != nil {
		t.Fatalf("SetOccupant: %v", err)
	}
	return NewScenario(grid, roster, 1), u
}

func TestMoveThenBusyFlow(t *testing.T) {
	g, u := openScenario(t)
	ctx := context.Background()

	if err := g.SubmitIntent(ctx, Intent{Kind: IntentSelect, Coord: hex.Axial(0, 0)}, t0); err != nil {
		t.Fatalf("select: %v", err)
	}
	snap := g.Snapshot()
	if snap.Selected != u.ID {
		t.Errorf("snapshot selected = %d, want %d", snap.Selected, u.ID)
	}
	if got, want := len(snap.Reachable), hex.RangeSize(2); got != want {
		t.Errorf("reachable destinations = %d, want %d on an open field", got, want)
	}

	if err := g.SubmitIntent(ctx, Intent{Kind: IntentMove, Coord: hex.Axial(1, -1)}, t0); err != nil {
		t.Fatalf("move: %v", err)
	}
	if u.Pos != hex.Axial(1, -1) || u.RemainingMove != 1 {
		t.Errorf("unit after move: pos %v move %d, want (1,-1) with 1 left", u.Pos, u.RemainingMove)
	}
	if tile, _ := g.grid.TileAt(hex.Axial(0, 0)); tile.Occupied() {
		t.Error("origin tile still occupied after the move")
	}
	if tile, _ := g.grid.TileAt(hex.Axial(1, -1)); tile.Occupant != u.ID {
		t.Errorf("destination occupant = %d, want %d", tile.Occupant, u.ID)
	}
	if snap := g.Snapshot(); snap.Turn.Phase != turn.PhaseAct || snap.Reachable != nil {
		t.Errorf("snapshot after move: phase %v reachable %v, want act with no overlay", snap.Turn.Phase, snap.Reachable)
	}

	// The slide is visible in the same frame the move was submitted.
	var slide *anim.Frame
	frames := g.Tick(t0)
	for i := range frames {
		if frames[i].Kind == anim.KindSlide {
			slide = &frames[i]
		}
	}
	if slide == nil {
		t.Fatal("no slide animation in the frame after the move")
	}
	if !slide.Blocking || slide.Payload.From != hex.Axial(0, 0) || slide.Payload.To != hex.Axial(1, -1) {
		t.Errorf("slide = %+v", slide)
	}

	sum := g.Checksum()
	err := g.SubmitIntent(ctx, Intent{Kind: IntentMove, Coord: hex.Axial(2, -2)}, t0.Add(50*time.Millisecond))
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("move during slide: err = %v, want ErrBusy", err)
	}
	if g.Checksum() != sum {
		t.Error("busy-rejected intent changed the game state")
	}

	g.Tick(t0.Add(time.Second))
	if g.Busy() {
		t.Fatal("still busy after the slide ran out")
	}
	err = g.SubmitIntent(ctx, Intent{Kind: IntentMove, Coord: hex.Axial(2, -2)}, t0.Add(time.Second))
	if !errors.Is(err, turn.ErrIllegalMove) {
		t.Errorf("move after slide: err = %v, want ErrIllegalMove now that the move is spent", err)
	}
}

func TestEndTurnFlow(t *testing.T) {
	g, u := openScenario(t)
	ctx := context.Background()

	if err := g.SubmitIntent(ctx, Intent{Kind: IntentSelect, Coord: hex.Axial(0, 0)}, t0); err != nil {
		t.Fatalf("select: %v", err)
	}

	// The selection pulse does not block, so the end turn reaches the
	// rules and is rejected there: a destination is still undecided.
	sum := g.Checksum()
	err := g.SubmitIntent(ctx, Intent{Kind: IntentEndTurn}, t0)
	if !errors.Is(err, turn.ErrIllegalAction) {
		t.Fatalf("end turn mid-move: err = %v, want ErrIllegalAction", err)
	}
	if g.Checksum() != sum {
		t.Error("rejected end turn changed the game state")
	}

	if err := g.SubmitIntent(ctx, Intent{Kind: IntentMove, Coord: hex.Axial(1, -1)}, t0); err != nil {
		t.Fatalf("move: %v", err)
	}
	g.Tick(t0.Add(time.Second))
	if err := g.SubmitIntent(ctx, Intent{Kind: IntentEndTurn}, t0.Add(time.Second)); err != nil {
		t.Fatalf("end turn from act: %v", err)
	}

	st := g.State()
	if st.Turn != 2 || st.Phase != turn.PhaseSelect {
		t.Errorf("state after end turn = %+v, want turn 2 in select", st)
	}
	if u.RemainingMove != u.MaxMove || u.Acted {
		t.Errorf("unit not reset for the new turn: move %d acted %t", u.RemainingMove, u.Acted)
	}
	snap := g.Snapshot()
	if len(snap.Messages) == 0 || !strings.Contains(snap.Messages[len(snap.Messages)-1], "turn 2") {
		t.Errorf("messages = %v, want a turn hand-off line", snap.Messages)
	}
}

func TestRejectedMoveLeavesNoTrace(t *testing.T) {
	g, _ := openScenario(t)
	ctx := context.Background()

	if err := g.SubmitIntent(ctx, Intent{Kind: IntentSelect, Coord: hex.Axial(0, 0)}, t0); err != nil {
		t.Fatalf("select: %v", err)
	}
	sum := g.Checksum()
	err := g.SubmitIntent(ctx, Intent{Kind: IntentMove, Coord: hex.Axial(3, 0)}, t0)
	if !errors.Is(err, turn.ErrIllegalMove) {
		t.Fatalf("move beyond budget: err = %v, want ErrIllegalMove", err)
	}
	if g.Checksum() != sum {
		t.Error("rejected move changed the game state")
	}

	sawPulse := false
	for _, f := range g.Tick(t0) {
		if f.Kind == anim.KindSlide {
			t.Error("rejected move enqueued a slide")
		}
		if f.Kind == anim.KindPulse && !f.Blocking {
			sawPulse = true
		}
	}
	if !sawPulse {
		t.Error("selection pulse missing from the frame")
	}
}

func TestSelectRequiresOccupant(t *testing.T) {
	g, _ := openScenario(t)
	ctx := context.Background()

	err := g.SubmitIntent(ctx, Intent{Kind: IntentSelect, Coord: hex.Axial(2, 0)}, t0)
	if !errors.Is(err, turn.ErrIllegalSelection) {
		t.Errorf("select empty tile: err = %v, want ErrIllegalSelection", err)
	}
	err = g.SubmitIntent(ctx, Intent{Kind: IntentSelect, Coord: hex.Axial(40, 40)}, t0)
	if !errors.Is(err, turn.ErrIllegalSelection) {
		t.Errorf("select off grid: err = %v, want ErrIllegalSelection", err)
	}
	if frames := g.Tick(t0); len(frames) != 0 {
		t.Errorf("rejected selections enqueued %d animations", len(frames))
	}
}

func TestAttackIntentFlow(t *testing.T) {
	grid := world.NewRectangle(7, 7, world.TerrainPlains)
	roster := entity.NewRoster()
	attacker := roster.Add(*entity.NewUnit(0, entity.ClassInfantry, hex.Axial(0, 0)))
	defender := roster.Add(*entity.NewUnit(1, entity.ClassInfantry, hex.Axial(1, 0)))
	for _, u := range []*entity.Unit{attacker, defender} {
		if err := grid.SetOccupant(u.Pos, u.ID); err != nil {
			t.Fatalf("SetOccupant: %v", err)
		}
	}
	g := NewScenario(grid, roster, 2)
	ctx := context.Background()

	if err := g.SubmitIntent(ctx, Intent{Kind: IntentSelect, Coord: attacker.Pos}, t0); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := g.SubmitIntent(ctx, Intent{Kind: IntentMove, Coord: attacker.Pos}, t0); err != nil {
		t.Fatalf("move in place: %v", err)
	}
	g.Tick(t0.Add(time.Second))
	if err := g.SubmitIntent(ctx, Intent{Kind: IntentAct, Target: defender.ID}, t0.Add(time.Second)); err != nil {
		t.Fatalf("attack: %v", err)
	}

	if got, want := defender.Health, defender.MaxHealth-attacker.Attack; got != want {
		t.Errorf("defender health = %d, want %d", got, want)
	}
	// The attacker was player zero's only unit, so the turn hands off.
	st := g.State()
	if st.ActivePlayer != 1 || st.Turn != 2 || st.Phase != turn.PhaseSelect {
		t.Errorf("state after attack = %+v, want player 1 turn 2 in select", st)
	}

	var hit *anim.Frame
	sawFade := false
	frames := g.Tick(t0.Add(time.Second))
	for i := range frames {
		if frames[i].Kind == anim.KindPulse && frames[i].Blocking {
			hit = &frames[i]
		}
		if frames[i].Kind == anim.KindFade {
			sawFade = true
		}
	}
	if hit == nil {
		t.Fatal("no hit pulse after the attack")
	}
	if hit.Payload.From != defender.Pos {
		t.Errorf("hit pulse at %v, want %v", hit.Payload.From, defender.Pos)
	}
	if !sawFade {
		t.Error("turn hand-off fade missing from the frame")
	}
	if !g.Busy() {
		t.Error("hit pulse should block until it runs out")
	}

	snap := g.Snapshot()
	if len(snap.Messages) != 2 {
		t.Fatalf("messages = %v, want attack line and hand-off line", snap.Messages)
	}
	if !strings.Contains(snap.Messages[0], "attacks") {
		t.Errorf("messages[0] = %q, want an attack line", snap.Messages[0])
	}
}

func TestNewGameDeterministicSetup(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig(12345)

	a, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Checksum() != b.Checksum() {
		t.Error("same seed produced different matches")
	}
	if a.ID() == b.ID() {
		t.Error("matches share an id")
	}

	c, err := New(ctx, DefaultConfig(54321))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Checksum() == c.Checksum() {
		t.Error("different seeds produced identical matches")
	}

	snap := a.Snapshot()
	if got, want := len(snap.Units), cfg.Players*cfg.UnitsPerPlayer; got != want {
		t.Fatalf("spawned %d units, want %d", got, want)
	}
	perOwner := make(map[entity.PlayerID]int)
	for _, u := range snap.Units {
		perOwner[u.Owner]++
		found := false
		for _, tile := range snap.Tiles {
			if tile.Coord == u.Pos {
				found = true
				if tile.Occupant != u.ID {
					t.Errorf("tile %v occupant = %d, want %d", tile.Coord, tile.Occupant, u.ID)
				}
			}
		}
		if !found {
			t.Errorf("unit %d standing outside the map at %v", u.ID, u.Pos)
		}
	}
	for p := 0; p < cfg.Players; p++ {
		if perOwner[entity.PlayerID(p)] != cfg.UnitsPerPlayer {
			t.Errorf("player %d owns %d units, want %d", p, perOwner[entity.PlayerID(p)], cfg.UnitsPerPlayer)
		}
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g, u := openScenario(t)
	ctx := context.Background()
	if err := g.SubmitIntent(ctx, Intent{Kind: IntentSelect, Coord: hex.Axial(0, 0)}, t0); err != nil {
		t.Fatalf("select: %v", err)
	}

	snap := g.Snapshot()
	snap.Units[0].Health = 1
	snap.Tiles[0].Occupant = 99
	snap.Reachable[hex.Axial(0, 0)] = 99
	snap.Messages = append(snap.Messages, "scribble")

	if u.Health != u.MaxHealth {
		t.Error("snapshot mutation reached the live unit")
	}
	fresh := g.Snapshot()
	if fresh.Units[0].Health != u.MaxHealth {
		t.Error("unit view mutation survived into a fresh snapshot")
	}
	if fresh.Tiles[0].Occupant == 99 {
		t.Error("tile view mutation survived into a fresh snapshot")
	}
	if fresh.Reachable[hex.Axial(0, 0)] != 0 {
		t.Error("reachable overlay mutation survived into a fresh snapshot")
	}
	if len(fresh.Messages) != 0 {
		t.Errorf("messages = %v, want none", fresh.Messages)
	}
}

func TestIntentKindString(t *testing.T) {
	cases := []struct {
		kind IntentKind
		want string
	}{
		{IntentSelect, "select"},
		{IntentMove, "move"},
		{IntentAct, "act"},
		{IntentSkip, "skip"},
		{IntentEndTurn, "end_turn"},
		{IntentCancel, "cancel"},
		{IntentKind(99), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("IntentKind(%d).String() = %q, want %q", int(tc.kind), got, tc.want)
		}
	}
}
