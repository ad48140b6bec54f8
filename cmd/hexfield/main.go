// Package main is the entry point for the Hexfield terminal client.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"

	"github.com/samdwyer/hexfield/internal/entity"
	"github.com/samdwyer/hexfield/internal/game"
	"github.com/samdwyer/hexfield/internal/gamedata"
	"github.com/samdwyer/hexfield/internal/telemetry"
	"github.com/samdwyer/hexfield/internal/turn"
	"github.com/samdwyer/hexfield/internal/ui"
)

// frameInterval paces the render loop at roughly 30 fps.
const frameInterval = 33 * time.Millisecond

func main() {
	cfg := parseFlags()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Load .env file for local development
	// This makes HONEYCOMB_HEXFIELD_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		logger.Info("no .env file loaded", "err", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx := context.Background()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		// Continue without telemetry - game still works
		logger.Warn("telemetry setup failed, running without observability", "err", err)
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Error("telemetry shutdown failed", "err", err)
			}
		}()
	}

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// parseFlags builds the match config from the command line.
func parseFlags() game.Config {
	seed := flag.Int64("seed", 0, "match seed; 0 picks one from the clock")
	radius := flag.Int("radius", 0, "map radius in tiles")
	players := flag.Int("players", 0, "number of players")
	units := flag.Int("units", 0, "units per player")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	cfg := game.DefaultConfig(*seed)
	if *radius > 0 {
		cfg.MapRadius = *radius
	}
	if *players > 0 {
		cfg.Players = *players
	}
	if *units > 0 {
		cfg.UnitsPerPlayer = *units
	}
	return cfg
}

// run drives the frame loop: input and the frame clock feed one
// select, and every pass ticks animations and redraws.
func run(ctx context.Context, cfg game.Config) error {
	g, err := game.New(ctx, cfg)
	if err != nil {
		return err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Close()

	h := &host{
		game:     g,
		screen:   screen,
		renderer: ui.NewRenderer(screen, gamedata.MustLoadTerrainRegistry(), gamedata.MustLoadClassRegistry()),
	}

	quit := make(chan struct{})
	defer close(quit)
	events := screen.Events(quit)

	frames := time.NewTicker(frameInterval)
	defer frames.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if done := h.handleEvent(ctx, ev); done {
				return nil
			}
		case <-frames.C:
		}
		h.render(time.Now())
	}
}

// host connects terminal input to game intents. Rejected intents are
// normal interaction noise and are dropped silently; the turn state
// simply does not change.
type host struct {
	game     *game.Game
	screen   *ui.Screen
	renderer *ui.Renderer

	prevButtons tcell.ButtonMask
}

func (h *host) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
	case *tcell.EventKey:
		return h.handleKey(ctx, ev)
	case *tcell.EventMouse:
		h.handleMouse(ctx, ev)
	}
	return false
}

// handleKey processes keyboard input. Returns true to quit.
func (h *host) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true

	case tcell.KeyEscape:
		h.submit(ctx, game.Intent{Kind: game.IntentCancel})

	case tcell.KeyEnter:
		h.submit(ctx, game.Intent{Kind: game.IntentEndTurn})

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 's', 'S', ' ':
			h.submit(ctx, game.Intent{Kind: game.IntentSkip})
		case 'e', 'E':
			h.submit(ctx, game.Intent{Kind: game.IntentEndTurn})
		}
	}
	return false
}

// handleMouse turns a left-button press into the intent the current
// phase expects from a tile click.
func (h *host) handleMouse(ctx context.Context, ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0 && h.prevButtons&tcell.Button1 == 0
	h.prevButtons = ev.Buttons()
	if !pressed {
		return
	}

	coord := h.renderer.CoordAt(ev.Position())
	snap := h.game.Snapshot()
	switch snap.Turn.Phase {
	case turn.PhaseSelect:
		h.submit(ctx, game.Intent{Kind: game.IntentSelect, Coord: coord})
	case turn.PhaseMove:
		h.submit(ctx, game.Intent{Kind: game.IntentMove, Coord: coord})
	case turn.PhaseAct:
		if id := snap.OccupantAt(coord); id != entity.NoUnit {
			h.submit(ctx, game.Intent{Kind: game.IntentAct, Target: id})
		}
	}
}

func (h *host) submit(ctx context.Context, in game.Intent) {
	_ = h.game.SubmitIntent(ctx, in, time.Now())
}

// render runs one frame: advance animations, then draw the snapshot.
func (h *host) render(now time.Time) {
	frames := h.game.Tick(now)
	h.renderer.Render(h.game.Snapshot(), frames)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_HEXFIELD_API_KEY")
	dataset := os.Getenv("HONEYCOMB_HEXFIELD_DATASET")
	if dataset == "" {
		dataset = "hexfield" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
