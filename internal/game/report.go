package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// TankReport captures one tank's final line in the match report.
type TankReport struct {
	Name        string
	Alive       bool
	Health      float64
	Shots       int
	Hits        int
	Accuracy    float64 // hits / shots
	DamageDealt float64
}

// MatchReport is a snapshot of a finished (or running) match, suitable for
// printing or clipboard export.
type MatchReport struct {
	Seed           int64
	Biome          Biome
	Weather        Weather
	Shape          TerrainShape
	Turns          int
	Ticks          int
	CellsDestroyed int
	Winner         string // empty for a draw or an unfinished match
	Over           bool
	Tanks          []TankReport
}

// BuildMatchReport assembles the report from live match state.
func (m *Match) BuildMatchReport() MatchReport {
	r := MatchReport{
		Seed:           m.Level.Seed,
		Biome:          m.Level.Biome,
		Weather:        m.Level.Weather,
		Shape:          m.Level.Shape,
		Ticks:          m.tick,
		CellsDestroyed: m.CellsDestroyed,
		Over:           m.over,
	}
	if m.Scheduler != nil {
		r.Turns = m.Scheduler.Turns()
	}
	if m.winner != nil {
		r.Winner = m.winner.Name
	}
	for i, t := range m.Tanks {
		s := m.stats[i]
		tr := TankReport{
			Name:        t.Name,
			Alive:       t.Alive(),
			Health:      t.Health,
			Shots:       s.Shots,
			Hits:        s.Hits,
			DamageDealt: s.DamageDealt,
		}
		if s.Shots > 0 {
			tr.Accuracy = float64(s.Hits) / float64(s.Shots)
		}
		r.Tanks = append(r.Tanks, tr)
	}
	return r
}

// String renders the report as fixed-width text.
func (r MatchReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Match report ---\n")
	fmt.Fprintf(&b, "seed=%d biome=%s weather=%s shape=%s\n", r.Seed, r.Biome, r.Weather, r.Shape)
	fmt.Fprintf(&b, "turns=%d ticks=%d terrain_destroyed=%d cells\n", r.Turns, r.Ticks, r.CellsDestroyed)
	switch {
	case !r.Over:
		b.WriteString("result: in progress\n")
	case r.Winner == "":
		b.WriteString("result: draw\n")
	default:
		fmt.Fprintf(&b, "result: %s wins\n", r.Winner)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-12s %-6s %7s %6s %5s %5s %8s\n",
		"tank", "status", "health", "shots", "hits", "acc", "dmg")
	for _, t := range r.Tanks {
		status := "dead"
		if t.Alive {
			status = "alive"
		}
		fmt.Fprintf(&b, "%-12s %-6s %7.1f %6d %5d %4.0f%% %8.1f\n",
			t.Name, status, t.Health, t.Shots, t.Hits, t.Accuracy*100, t.DamageDealt)
	}
	return b.String()
}

// CopyToClipboard puts the rendered report on the system clipboard.
func (r MatchReport) CopyToClipboard() error {
	return clipboard.WriteAll(r.String())
}
