// Package main runs scripted Hexfield matches without a terminal and
// prints per-run and aggregate statistics, including a replay
// determinism check.
package main

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/samdwyer/hexfield/internal/entity"
	"github.com/samdwyer/hexfield/internal/game"
	"github.com/samdwyer/hexfield/internal/hex"
)

type runStats struct {
	runIndex int
	seed     int64

	turnsPlayed int
	intents     int
	moves       int
	attacks     int
	skips       int
	idleTurns   int

	spawned   int
	destroyed int
	survivors map[entity.PlayerID]int

	terrain map[string]int

	checksum      uint64
	replayMatched bool
}

func main() {
	var runs int
	var turns int
	var seedBase int64
	var seedStep int64
	var radius int
	var players int
	var units int

	flag.IntVar(&runs, "runs", 3, "number of scripted matches")
	flag.IntVar(&turns, "turns", 40, "player-turns per match")
	flag.Int64Var(&seedBase, "seed-base", 42, "seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&radius, "radius", 0, "map radius in tiles")
	flag.IntVar(&players, "players", 0, "number of players")
	flag.IntVar(&units, "units", 0, "units per player")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if turns <= 0 {
		fmt.Println("error: -turns must be > 0")
		return
	}

	fmt.Printf("=== Hexfield Scripted Match Report ===\n")
	fmt.Printf("runs=%d turns=%d seed_base=%d seed_step=%d\n\n", runs, turns, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		cfg := game.DefaultConfig(seedBase + int64(i)*seedStep)
		if radius > 0 {
			cfg.MapRadius = radius
		}
		if players > 0 {
			cfg.Players = players
		}
		if units > 0 {
			cfg.UnitsPerPlayer = units
		}

		stats, err := runMatch(i+1, cfg, turns)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			return
		}
		// Play the same seed again; the checksums must agree.
		replay, err := runMatch(i+1, cfg, turns)
		if err != nil {
			fmt.Printf("error: run %d replay: %v\n", i+1, err)
			return
		}
		stats.replayMatched = stats.checksum == replay.checksum

		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// runMatch plays one scripted match: each activation selects the
// first legal unit, marches it toward the nearest enemy, and attacks
// the first target in range, skipping otherwise.
func runMatch(runIndex int, cfg game.Config, turns int) (runStats, error) {
	ctx := context.Background()
	g, err := game.New(ctx, cfg)
	if err != nil {
		return runStats{}, err
	}

	rs := runStats{
		runIndex:  runIndex,
		seed:      cfg.Seed,
		survivors: make(map[entity.PlayerID]int),
		terrain:   make(map[string]int),
	}
	start := g.Snapshot()
	rs.spawned = len(start.Units)
	for _, tv := range start.Tiles {
		rs.terrain[tv.Terrain]++
	}

	// Synthetic clock. A second per intent retires every blocking
	// animation before the next input.
	now := time.Unix(0, 0)
	submit := func(in game.Intent) error {
		if err := g.SubmitIntent(ctx, in, now); err != nil {
			return err
		}
		rs.intents++
		now = now.Add(time.Second)
		g.Tick(now)
		return nil
	}

	for g.State().Turn <= turns {
		sel := g.LegalSelections()
		if len(sel) == 0 {
			if err := submit(game.Intent{Kind: game.IntentEndTurn}); err != nil {
				return rs, fmt.Errorf("end turn: %w", err)
			}
			rs.idleTurns++
			continue
		}

		id := sel[0]
		view := g.Snapshot().UnitByID(id)
		if view == nil {
			return rs, fmt.Errorf("unit %d missing from snapshot", id)
		}
		if err := submit(game.Intent{Kind: game.IntentSelect, Coord: view.Pos}); err != nil {
			return rs, fmt.Errorf("select: %w", err)
		}

		dest := chooseDest(g.Snapshot(), *view)
		if err := submit(game.Intent{Kind: game.IntentMove, Coord: dest}); err != nil {
			return rs, fmt.Errorf("move: %w", err)
		}
		rs.moves++

		targets, err := g.AttackTargets(id)
		if err != nil {
			return rs, fmt.Errorf("targets: %w", err)
		}
		if len(targets) > 0 {
			if err := submit(game.Intent{Kind: game.IntentAct, Target: targets[0]}); err != nil {
				return rs, fmt.Errorf("attack: %w", err)
			}
			rs.attacks++
		} else {
			if err := submit(game.Intent{Kind: game.IntentSkip}); err != nil {
				return rs, fmt.Errorf("skip: %w", err)
			}
			rs.skips++
		}
	}

	final := g.Snapshot()
	for _, u := range final.Units {
		rs.survivors[u.Owner]++
	}
	rs.destroyed = rs.spawned - len(final.Units)
	rs.turnsPlayed = g.State().Turn - 1
	rs.checksum = g.Checksum()
	return rs, nil
}

// chooseDest picks the reachable tile closest to the nearest enemy,
// breaking ties by coordinate order so replays are stable.
func chooseDest(snap game.Snapshot, mover game.UnitView) hex.Coord {
	dests := make([]hex.Coord, 0, len(snap.Reachable))
	for c := range snap.Reachable {
		dests = append(dests, c)
	}
	sort.Slice(dests, func(i, j int) bool {
		if dests[i].Q != dests[j].Q {
			return dests[i].Q < dests[j].Q
		}
		return dests[i].R < dests[j].R
	})

	var enemies []hex.Coord
	for _, u := range snap.Units {
		if u.Owner != mover.Owner {
			enemies = append(enemies, u.Pos)
		}
	}
	if len(enemies) == 0 || len(dests) == 0 {
		return mover.Pos
	}

	best := mover.Pos
	bestScore := enemyDistance(mover.Pos, enemies)
	for _, c := range dests {
		if score := enemyDistance(c, enemies); score < bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

// enemyDistance is the distance from a tile to the closest enemy.
func enemyDistance(from hex.Coord, enemies []hex.Coord) int {
	best := hex.Distance(from, enemies[0])
	for _, e := range enemies[1:] {
		if d := hex.Distance(from, e); d < best {
			best = d
		}
	}
	return best
}

// verdict classifies a finished run: decisive when at most one side
// still fields units, attrition when blood was drawn, quiet otherwise.
func verdict(rs runStats) string {
	alive := 0
	for _, n := range rs.survivors {
		if n > 0 {
			alive++
		}
	}
	switch {
	case rs.destroyed > 0 && alive <= 1:
		return "decisive"
	case rs.destroyed > 0:
		return "attrition"
	default:
		return "quiet"
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("turns_played=%d intents=%d moves=%d attacks=%d skips=%d idle_end_turns=%d\n",
		rs.turnsPlayed, rs.intents, rs.moves, rs.attacks, rs.skips, rs.idleTurns)
	fmt.Printf("units: spawned=%d destroyed=%d survivors=[%s]\n",
		rs.spawned, rs.destroyed, survivorString(rs.survivors))
	fmt.Printf("terrain: %s\n", countString(rs.terrain))
	fmt.Printf("verdict=%s replay_checksum_match=%t final_checksum=%016x\n\n",
		verdict(rs), rs.replayMatched, rs.checksum)
}

func printAggregate(all []runStats) {
	totalIntents := 0
	totalAttacks := 0
	totalDestroyed := 0
	deterministic := true
	bloodiest := 0
	for i, rs := range all {
		totalIntents += rs.intents
		totalAttacks += rs.attacks
		totalDestroyed += rs.destroyed
		if !rs.replayMatched {
			deterministic = false
		}
		if rs.destroyed > all[bloodiest].destroyed {
			bloodiest = i
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d intents_processed=%s avg_attacks_per_run=%.1f\n",
		len(all), humanize.Comma(int64(totalIntents)), avg(totalAttacks, len(all)))
	fmt.Printf("units_destroyed=%d bloodiest_run=%s (%d destroyed)\n",
		totalDestroyed, humanize.Ordinal(all[bloodiest].runIndex), all[bloodiest].destroyed)
	fmt.Printf("all_replays_deterministic=%t\n", deterministic)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func survivorString(survivors map[entity.PlayerID]int) string {
	players := make([]entity.PlayerID, 0, len(survivors))
	for p := range survivors {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i] < players[j] })
	out := ""
	for i, p := range players {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("player%d=%d", p, survivors[p])
	}
	return out
}

func countString(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	out := ""
	for i, name := range names {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%d", name, counts[name])
	}
	return out
}
