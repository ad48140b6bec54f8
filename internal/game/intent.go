package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/hexfield/internal/anim"
	"github.com/samdwyer/hexfield/internal/entity"
	"github.com/samdwyer/hexfield/internal/hex"
	"github.com/samdwyer/hexfield/internal/telemetry"
	"github.com/samdwyer/hexfield/internal/turn"
)

// ErrBusy reports an intent submitted while a blocking animation is
// still running.
var ErrBusy = errors.New("blocking animation in progress")

// IntentKind names a player input decoded by the host.
type IntentKind int

const (
	// IntentSelect - select the unit standing at Coord
	IntentSelect IntentKind = iota
	// IntentMove - move the selected unit to Coord
	IntentMove
	// IntentAct - attack Target with the selected unit
	IntentAct
	// IntentSkip - spend the selected unit's action doing nothing
	IntentSkip
	// IntentEndTurn - pass control to the next player
	IntentEndTurn
	// IntentCancel - drop the current selection
	IntentCancel
)

// String returns a human-readable intent name.
func (k IntentKind) String() string {
	switch k {
	case IntentSelect:
		return "select"
	case IntentMove:
		return "move"
	case IntentAct:
		return "act"
	case IntentSkip:
		return "skip"
	case IntentEndTurn:
		return "end_turn"
	case IntentCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Intent is one decoded player input. Coord is read for Select and
// Move, Target for Act.
type Intent struct {
	Kind   IntentKind
	Coord  hex.Coord
	Target entity.UnitID
}

// Animation pacing. Slides scale with path length so long marches take
// visibly longer.
const (
	slideStepDuration = 120 * time.Millisecond
	pulseDuration     = 200 * time.Millisecond
	fadeDuration      = 350 * time.Millisecond
)

// maxMessages bounds the combat log kept for snapshots.
const maxMessages = 6

// SubmitIntent applies one player input at time now. While a blocking
// animation runs, every intent is rejected with ErrBusy before it
// reaches the rules; rule violations surface the turn package's
// sentinel errors and change nothing. On success the transition's
// events become animations, visible from this frame's Tick onward.
func (g *Game) SubmitIntent(ctx context.Context, in Intent, now time.Time) error {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.intent")
	defer span.End()
	span.SetAttributes(
		attribute.String("game.id", g.id.String()),
		attribute.String("intent.kind", in.Kind.String()),
		attribute.String("turn.phase", g.machine.State().Phase.String()),
	)

	if g.sched.BlockingActive() {
		span.SetAttributes(attribute.Bool("intent.busy", true))
		return fmt.Errorf("%w: %v rejected", ErrBusy, in.Kind)
	}

	events, err := g.dispatch(in)
	if err != nil {
		span.SetAttributes(attribute.String("intent.rejected", err.Error()))
		return err
	}

	g.applyEvents(events, now)
	if in.Kind == IntentSelect {
		g.enqueue(anim.KindPulse, anim.Payload{From: in.Coord, To: in.Coord}, pulseDuration, false, now)
	}
	return nil
}

// dispatch routes an intent to its turn machine transition.
func (g *Game) dispatch(in Intent) ([]turn.Event, error) {
	switch in.Kind {
	case IntentSelect:
		t, ok := g.grid.TileAt(in.Coord)
		if !ok || !t.Occupied() {
			return nil, fmt.Errorf("%w: no unit at %v", turn.ErrIllegalSelection, in.Coord)
		}
		return g.machine.SelectUnit(t.Occupant)
	case IntentMove:
		return g.machine.CommitMove(in.Coord)
	case IntentAct:
		return g.machine.CommitAction(turn.Action{Kind: turn.ActionAttack, Target: in.Target})
	case IntentSkip:
		return g.machine.SkipAction()
	case IntentEndTurn:
		return g.machine.EndTurn()
	case IntentCancel:
		return g.machine.Cancel()
	default:
		return nil, fmt.Errorf("%w: unknown intent kind %d", turn.ErrIllegalAction, in.Kind)
	}
}

// applyEvents translates transition events into animations and log
// lines. Slides and hit pulses block further intents until they run
// out; the turn hand-off fade does not.
func (g *Game) applyEvents(events []turn.Event, now time.Time) {
	for _, ev := range events {
		switch ev := ev.(type) {
		case turn.EventMoved:
			steps := max(1, len(ev.Path)-1)
			g.enqueue(anim.KindSlide, anim.Payload{From: ev.From, To: ev.To},
				time.Duration(steps)*slideStepDuration, true, now)
		case turn.EventUnitAttacked:
			g.enqueue(anim.KindPulse, anim.Payload{From: ev.At, To: ev.At}, pulseDuration, true, now)
			g.log(ev.Message)
		case turn.EventTurnEnded:
			g.enqueue(anim.KindFade, anim.Payload{}, fadeDuration, false, now)
			g.log(fmt.Sprintf("Player %d begins turn %d", ev.NextPlayer, ev.Turn))
		}
	}
}

// log appends a combat log line, keeping the newest maxMessages.
func (g *Game) log(msg string) {
	g.messages = append(g.messages, msg)
	if n := len(g.messages); n > maxMessages {
		g.messages = g.messages[n-maxMessages:]
	}
}
