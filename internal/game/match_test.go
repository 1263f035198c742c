package game

import (
	"strings"
	"testing"
)

// recordingSink counts events for assertions.
type recordingSink struct {
	NopSink
	fired      int
	explosion  int
	turns      int
	destroyed  int
	over       int
	bounces    int
	splits     int
	fragments  int
	shieldHits int
}

func (r *recordingSink) Fired(*Tank, WeaponType) { r.fired++ }
func (r *recordingSink) Explosion(WeaponType, float64, float64) { r.explosion++ }
func (r *recordingSink) TurnChanged(*Tank) { r.turns++ }
func (r *recordingSink) TankDestroyed(*Tank) { r.destroyed++ }
func (r *recordingSink) MatchOver(*Tank) { r.over++ }
func (r *recordingSink) Bounce(*Projectile) { r.bounces++ }
func (r *recordingSink) Split(p *Projectile, n int) { r.splits++; r.fragments += n }
func (r *recordingSink) ShieldHit(*Tank, float64) { r.shieldHits++ }

// fireAndSettle aims the current tank and runs the shot to rest.
func fireAndSettle(t *testing.T, ts *TestSim, weapon WeaponType, angle, power float64) {
	t.Helper()
	tk := ts.Match.CurrentTank()
	tk.Weapon = weapon
	tk.SetAngle(angle)
	tk.SetPower(power)
	if err := ts.Match.Fire(); err != nil {
		t.Fatalf("%s could not fire: %v", tk.Name, err)
	}
	ts.RunUntilSettled(20000)
}

func newDuelSim(t *testing.T) *TestSim {
	t.Helper()
	return NewTestSim(
		WithFieldSize(800, 600),
		WithSeed(4),
		WithFlatTerrain(400),
		WithTank("alpha", 0.2, 1),
		WithTank("bravo", 0.8, -1),
		WithCalmAir(),
	)
}

func TestScenario_ManualShotCarvesAndHandsOver(t *testing.T) {
	ts := newDuelSim(t)
	m := ts.Match

	if m.CurrentTank().Name != "alpha" {
		t.Fatalf("first turn belongs to %s", m.CurrentTank().Name)
	}
	fireAndSettle(t, ts, WeaponStandard, 45, 55)

	if m.CellsDestroyed == 0 {
		t.Error("shot landed without carving any terrain")
	}
	if len(m.DirtyColumns) == 0 {
		t.Error("carve reported no dirty columns for the renderer")
	}
	if m.CurrentTank().Name != "bravo" {
		t.Errorf("turn did not pass: current is %s", m.CurrentTank().Name)
	}
	if got := m.Stats()[0].Shots; got != 1 {
		t.Errorf("shooter credited with %d shots, want 1", got)
	}
	if m.InFlight() != 0 {
		t.Errorf("%d shells still in flight after settling", m.InFlight())
	}
}

func TestScenario_LobbedShellWinsTheDuel(t *testing.T) {
	ts := newDuelSim(t)
	m := ts.Match
	sink := &recordingSink{}
	m.sink = sink

	// One splash anywhere near bravo finishes it.
	m.Tanks[1].Health = 1

	// 45° at power 65 carries roughly the 480px gap between the tanks.
	fireAndSettle(t, ts, WeaponStandard, 45, 65)

	if !m.Over() {
		t.Fatalf("match still running; bravo health %v", m.Tanks[1].Health)
	}
	if m.Winner() == nil || m.Winner().Name != "alpha" {
		t.Fatalf("winner = %v, want alpha", m.Winner())
	}
	if sink.fired != 1 || sink.explosion == 0 {
		t.Errorf("events: fired=%d explosion=%d", sink.fired, sink.explosion)
	}
	if sink.destroyed != 1 || sink.over != 1 {
		t.Errorf("events: destroyed=%d over=%d", sink.destroyed, sink.over)
	}
	if m.Stats()[0].Hits != 1 {
		t.Errorf("winning shot not credited as a hit: %+v", m.Stats()[0])
	}

	report := m.BuildMatchReport()
	if report.Winner != "alpha" || !report.Over {
		t.Errorf("report disagrees: %+v", report)
	}
	if !strings.Contains(report.String(), "alpha wins") {
		t.Errorf("report text missing the result:\n%s", report.String())
	}
}

func TestScenario_HazelnutSplits(t *testing.T) {
	ts := newDuelSim(t)
	sink := &recordingSink{}
	ts.Match.sink = sink

	fireAndSettle(t, ts, WeaponHazelnut, 60, 80)

	if sink.splits != 1 {
		t.Fatalf("hazelnut split %d times, want 1", sink.splits)
	}
	cfg := WeaponHazelnut.Config()
	if sink.fragments < cfg.SplitMinFrags || sink.fragments > cfg.SplitMaxFrags {
		t.Errorf("fragment count %d outside [%d,%d]", sink.fragments, cfg.SplitMinFrags, cfg.SplitMaxFrags)
	}
	// Every fragment detonates somewhere.
	if sink.explosion < cfg.SplitMinFrags {
		t.Errorf("only %d explosions for %d fragments", sink.explosion, sink.fragments)
	}
}

func TestScenario_BouncerRicochets(t *testing.T) {
	ts := newDuelSim(t)
	sink := &recordingSink{}
	ts.Match.sink = sink

	// Shallow shot so the shell meets the ground with speed to spare but
	// stays inside the field across all three ricochets.
	fireAndSettle(t, ts, WeaponBouncer, 15, 50)

	if sink.bounces == 0 {
		t.Error("bouncer never bounced")
	}
	if max := WeaponBouncer.Config().MaxBounces; sink.bounces > max {
		t.Errorf("%d bounces exceeds the budget of %d", sink.bounces, max)
	}
	if sink.explosion == 0 {
		t.Error("bouncer never detonated")
	}
}

func TestScenario_ShieldLoadoutAbsorbsFirstHit(t *testing.T) {
	level := DefaultLevelConfig()
	level.Seed = 4
	level.Shields = ShieldsMultiUse
	ts := NewTestSim(
		WithFieldSize(800, 600),
		WithLevel(level),
		WithFlatTerrain(400),
		WithTank("alpha", 0.2, 1),
		WithTank("bravo", 0.8, -1),
		WithCalmAir(),
	)
	m := ts.Match
	sink := &recordingSink{}
	m.sink = sink

	for _, tk := range m.Tanks {
		if tk.Shield == nil || !tk.Shield.Active {
			t.Fatalf("%s started without an active shield", tk.Name)
		}
	}

	// Same lob as the duel scenario: near enough bravo to strike its bubble.
	fireAndSettle(t, ts, WeaponStandard, 45, 65)

	bravo := m.Tanks[1]
	if sink.shieldHits == 0 {
		t.Fatal("strike on a shielded tank raised no shield event")
	}
	if bravo.Health != tankMaxHealth {
		t.Errorf("hull lost %v health through an absorbing shield", tankMaxHealth-bravo.Health)
	}
	if bravo.Shield.HP >= shieldStartHP {
		t.Errorf("shield HP still %v after absorbing a hit", bravo.Shield.HP)
	}
	if !bravo.Shield.Active {
		t.Error("multi-use shield deactivated after one absorbed hit")
	}
}

func TestMatch_FireRejectedMidFlight(t *testing.T) {
	ts := newDuelSim(t)
	m := ts.Match

	m.CurrentTank().SetAngle(60)
	m.CurrentTank().SetPower(70)
	if err := m.Fire(); err != nil {
		t.Fatal(err)
	}
	ts.Run(5)
	if err := m.Fire(); err == nil {
		t.Error("second fire accepted while shells were in flight")
	}
}

func TestMatch_ExternalFireRejectedDuringAITurn(t *testing.T) {
	ts := NewTestSim(
		WithFieldSize(800, 600),
		WithSeed(2),
		WithAITank("red", 0.2, 1, DifficultyEasy),
		WithTank("blue", 0.8, -1),
	)
	if err := ts.Match.Fire(); err == nil {
		t.Error("outside fire command accepted while the AI holds the turn")
	}
}

func TestMatch_NoAmmoRejected(t *testing.T) {
	ts := newDuelSim(t)
	tk := ts.Match.CurrentTank()
	tk.Weapon = WeaponHazelnut
	tk.Ammo[WeaponHazelnut] = 0
	if err := ts.Match.Fire(); err == nil {
		t.Error("fire accepted with an empty magazine")
	}
}

func TestMatch_AIDuelDeterministic(t *testing.T) {
	run := func() *Match {
		ts := NewTestSim(
			WithFieldSize(800, 600),
			WithSeed(17),
			WithAITank("red", 0.15, 1, DifficultyNormal),
			WithAITank("blue", 0.85, -1, DifficultyNormal),
		)
		ts.Run(6000)
		return ts.Match
	}

	a := run()
	b := run()
	if a.TickCount() != b.TickCount() {
		t.Fatalf("tick counts diverged: %d vs %d", a.TickCount(), b.TickCount())
	}
	for i := range a.Tanks {
		at, bt := a.Tanks[i], b.Tanks[i]
		if at.X != bt.X || at.Y != bt.Y || at.Health != bt.Health {
			t.Errorf("tank %d diverged: (%v,%v,%v) vs (%v,%v,%v)",
				i, at.X, at.Y, at.Health, bt.X, bt.Y, bt.Health)
		}
	}
	if a.CellsDestroyed != b.CellsDestroyed {
		t.Errorf("terrain damage diverged: %d vs %d", a.CellsDestroyed, b.CellsDestroyed)
	}
}

func TestMatch_AITakesItsTurn(t *testing.T) {
	ts := NewTestSim(
		WithFieldSize(800, 600),
		WithSeed(8),
		WithAITank("red", 0.2, 1, DifficultyEasy),
		WithAITank("blue", 0.8, -1, DifficultyEasy),
	)
	m := ts.Match

	// The AI must eventually decide and fire without outside input.
	for i := 0; i < 20000 && m.Stats()[0].Shots == 0; i++ {
		m.Tick()
	}
	if m.Stats()[0].Shots == 0 {
		t.Fatal("AI never fired")
	}
	if count := m.Log.Count("ai", "aim"); count == 0 {
		t.Error("AI decision left no log entry")
	}
}
