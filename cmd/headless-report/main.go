package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/istickz/Scorched-Earth-Game-Phase-sub001/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	report   game.MatchReport
	finished bool
	ticks    int
}

func parseDifficulty(s string) game.Difficulty {
	switch strings.ToLower(s) {
	case "easy":
		return game.DifficultyEasy
	case "hard":
		return game.DifficultyHard
	default:
		return game.DifficultyNormal
	}
}

func main() {
	var runs int
	var maxTicks int
	var seedBase int64
	var seedStep int64
	var levelPath string
	var redDiff, blueDiff string
	var shields string

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.IntVar(&maxTicks, "max-ticks", 600000, "tick cap per match")
	flag.Int64Var(&seedBase, "seed-base", 42, "level seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&levelPath, "level", "", "level config file (defaults when empty)")
	flag.StringVar(&redDiff, "red", "normal", "red AI tier: easy, normal, hard")
	flag.StringVar(&blueDiff, "blue", "normal", "blue AI tier: easy, normal, hard")
	flag.StringVar(&shields, "shields", "", "starting shields: none, multi, single (overrides level)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}

	level := game.DefaultLevelConfig()
	if levelPath != "" {
		var err error
		if level, err = game.LoadLevelConfig(levelPath); err != nil {
			log.Printf("level %s: %v (using defaults)", levelPath, err)
		}
	}
	if shields != "" {
		level.Shields = game.ParseShieldLoadout(shields)
	}

	fmt.Printf("=== Headless Match Report ===\n")
	fmt.Printf("runs=%d max_ticks=%d seed_base=%d seed_step=%d red=%s blue=%s shields=%s\n\n",
		runs, maxTicks, seedBase, seedStep, redDiff, blueDiff, level.Shields)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		cfg := level
		cfg.Seed = seedBase + int64(i)*seedStep
		stats := runMatch(i+1, cfg, maxTicks, parseDifficulty(redDiff), parseDifficulty(blueDiff))
		all = append(all, stats)
		printRun(stats)
	}
	printAggregate(all)
}

func runMatch(runIndex int, level game.LevelConfig, maxTicks int, red, blue game.Difficulty) runStats {
	ts := game.NewTestSim(
		game.WithFieldSize(1024, 640),
		game.WithLevel(level),
		game.WithAITank("red", 0.14, 1, red),
		game.WithAITank("blue", 0.86, -1, blue),
	)
	ts.Run(maxTicks)

	return runStats{
		runIndex: runIndex,
		seed:     level.Seed,
		report:   ts.Match.BuildMatchReport(),
		finished: ts.Match.Over(),
		ticks:    ts.Match.TickCount(),
	}
}

func printRun(s runStats) {
	fmt.Printf("--- run %d (seed=%d) ---\n", s.runIndex, s.seed)
	if !s.finished {
		fmt.Printf("unfinished after %d ticks\n", s.ticks)
	}
	fmt.Println(s.report.String())
}

func printAggregate(all []runStats) {
	wins := map[string]int{}
	finished := 0
	var totalTurns, totalCells int
	var totalShots, totalHits int

	for _, s := range all {
		if s.finished {
			finished++
		}
		name := s.report.Winner
		if name == "" {
			name = "draw"
		}
		wins[name]++
		totalTurns += s.report.Turns
		totalCells += s.report.CellsDestroyed
		for _, t := range s.report.Tanks {
			totalShots += t.Shots
			totalHits += t.Hits
		}
	}

	n := float64(len(all))
	fmt.Printf("=== Aggregate (%d runs, %d finished) ===\n", len(all), finished)
	for name, c := range wins {
		fmt.Printf("%-8s %d wins\n", name, c)
	}
	fmt.Printf("avg_turns=%.1f avg_terrain_destroyed=%.0f cells\n", float64(totalTurns)/n, float64(totalCells)/n)
	if totalShots > 0 {
		fmt.Printf("overall_accuracy=%.0f%% (%d/%d)\n", 100*float64(totalHits)/float64(totalShots), totalHits, totalShots)
	}
}
