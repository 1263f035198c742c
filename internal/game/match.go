package game

import (
	"fmt"
	"math"
	"math/rand"
)

// TankStats accumulates per-tank numbers for the end-of-match report.
type TankStats struct {
	Shots       int
	Hits        int // projectiles that damaged an enemy hull or shield
	DamageDealt float64
}

// pendingCarve is one explosion's terrain edit, buffered so every projectile
// in a tick resolves against the same terrain snapshot and the craters land
// together afterwards.
type pendingCarve struct {
	x, y   float64
	radius float64
	shape  ExplosionShape
	ratio  float64
}

// Match owns one full artillery duel: terrain, environment, tanks, shells in
// flight, the turn cycle and the AI players. Everything advances through
// Tick; the front ends only read state and feed inputs.
type Match struct {
	Terrain   *TerrainField
	Env       EnvironmentEffects
	Tanks     []*Tank
	Scheduler *TurnScheduler
	Level     LevelConfig

	projectiles []*Projectile
	pending     []ProjectileSpawn
	carves      []pendingCarve

	ais       map[int]*TargetingAI
	search    *aimSearch
	aiFiring  bool            // set while the AI delivers its own fire command
	aiTargetX map[int]float64 // where each AI was aiming, for shot feedback

	rng  *rand.Rand
	sink EventSink
	Log  *SimLog
	tick int

	stats          []TankStats
	CellsDestroyed int
	winner         *Tank
	over           bool
	destroyedSeen  map[int]bool

	// DirtyColumns collects terrain columns changed since the renderer last
	// drained them.
	DirtyColumns []int
}

// NewMatch generates terrain and environment from the level config and
// returns an empty match. Add tanks, then call Start.
func NewMatch(level LevelConfig, width, height int, sink EventSink, log *SimLog) *Match {
	if sink == nil {
		sink = NopSink{}
	}
	if log == nil {
		log = NewSimLog(false)
	}
	rng := rand.New(rand.NewSource(level.Seed)) // #nosec G404 -- game only
	m := &Match{
		Terrain:       GenerateTerrain(width, height, level.Shape, level.Roughness, level.Seed),
		Env:           EffectsForLevel(level, rng),
		Level:         level,
		ais:           make(map[int]*TargetingAI),
		aiTargetX:     make(map[int]float64),
		rng:           rng,
		sink:          sink,
		Log:           log,
		destroyedSeen: make(map[int]bool),
	}
	m.Log.Add(0, "match", "terrain", "generated",
		fmt.Sprintf("%s r=%.2f", level.Shape, level.Roughness), float64(m.Terrain.SolidCount()))
	return m
}

// placeTank drops a tank onto the terrain surface at the given horizontal
// fraction of the field width.
func (m *Match) placeTank(t *Tank, xFrac float64) {
	x := int(xFrac * float64(m.Terrain.Width))
	if x < tankHalfWidth {
		x = tankHalfWidth
	}
	if x > m.Terrain.Width-tankHalfWidth-1 {
		x = m.Terrain.Width - tankHalfWidth - 1
	}
	t.X = float64(x)
	t.Y = float64(m.Terrain.SurfaceHeight(x)) - tankHitRadius/2
	t.Shield = m.Level.Shields.EquipShield()
	m.Tanks = append(m.Tanks, t)
	m.stats = append(m.stats, TankStats{})
}

// AddHumanTank adds a player-controlled tank at xFrac of the field width.
func (m *Match) AddHumanTank(name string, xFrac float64, facing int) *Tank {
	t := NewTank(len(m.Tanks), name, 0, 0, facing)
	t.Human = true
	m.placeTank(t, xFrac)
	return t
}

// AddAITank adds a computer-controlled tank with its own targeting AI, seeded
// off the level seed so whole matches replay deterministically.
func (m *Match) AddAITank(name string, xFrac float64, facing int, d Difficulty) *Tank {
	t := NewTank(len(m.Tanks), name, 0, 0, facing)
	m.placeTank(t, xFrac)
	m.ais[t.ID] = NewTargetingAI(d, m.Level.Seed+int64(t.ID)*31)
	return t
}

// Start locks the roster in and begins the first turn.
func (m *Match) Start() {
	m.Scheduler = NewTurnScheduler(len(m.Tanks), m.Level.TurnDelay)
	for _, t := range m.Tanks {
		t.Settle(m.Terrain)
	}
	m.sink.TurnChanged(m.CurrentTank())
	m.Log.Add(m.tick, m.CurrentTank().Name, "turn", "start", "", 0)
}

// CurrentTank returns the tank whose turn it is.
func (m *Match) CurrentTank() *Tank {
	return m.Tanks[m.Scheduler.Current()]
}

// Over reports whether the match has ended; Winner is nil until then and on
// a mutual-destruction draw.
func (m *Match) Over() bool { return m.over }
func (m *Match) Winner() *Tank { return m.winner }
func (m *Match) TickCount() int { return m.tick }
func (m *Match) InFlight() int { return len(m.projectiles) + len(m.pending) }

// Stats returns the accumulated per-tank numbers, index-aligned with Tanks.
func (m *Match) Stats() []TankStats { return m.stats }

// CanFire reports whether a fire command would be accepted right now. While
// an AI-driven tank holds the turn only its own decision callback may fire.
func (m *Match) CanFire() bool {
	if m.Scheduler == nil || !m.Scheduler.CanFire() || m.over {
		return false
	}
	if m.ais[m.CurrentTank().ID] != nil && !m.aiFiring {
		return false
	}
	return true
}

// Fire launches the current tank's selected weapon at its current angle and
// power. Rejected outside the input phase or without ammo.
func (m *Match) Fire() error {
	if !m.CanFire() {
		return fmt.Errorf("cannot fire during %s phase", m.Scheduler.Phase())
	}
	t := m.CurrentTank()
	if !t.HasAmmo(t.Weapon) {
		return fmt.Errorf("%s: no %s ammo", t.Name, t.Weapon)
	}
	t.ConsumeAmmo(t.Weapon)

	mx, my := t.MuzzlePosition()
	plan := t.Weapon.CreateFirePlan(mx, my, t.Angle, t.Power, t.Facing, t.ID)
	m.pending = append(m.pending, plan.Spawns...)
	m.stats[t.ID].Shots++

	m.Scheduler.NoteFired()
	m.Scheduler.NoteProjectilesLive()
	m.sink.Fired(t, t.Weapon)
	m.Log.Add(m.tick, t.Name, "fire", t.Weapon.String(),
		fmt.Sprintf("a=%.1f p=%.1f", t.Angle, t.Power), float64(len(plan.Spawns)))
	return nil
}

// nearestEnemy picks the closest living opponent, the AI's target.
func (m *Match) nearestEnemy(of *Tank) *Tank {
	var best *Tank
	bestD := math.Inf(1)
	for _, t := range m.Tanks {
		if t.ID == of.ID || !t.Alive() {
			continue
		}
		if d := math.Abs(t.X - of.X); d < bestD {
			bestD = d
			best = t
		}
	}
	return best
}

// stepAI drives the current AI tank: starts a targeting search if none is
// running, advances it by the tier's per-tick budget, and fires when the
// solution lands.
func (m *Match) stepAI() {
	t := m.CurrentTank()
	ai := m.ais[t.ID]
	if ai == nil {
		return
	}
	if m.search == nil {
		target := m.nearestEnemy(t)
		if target == nil {
			return
		}
		m.aiTargetX[t.ID] = target.X
		m.search = ai.BeginDecision(m.Terrain, m.Env, t, target, func(sol AimSolution) {
			t.SetAngle(sol.Angle)
			t.SetPower(sol.Power)
			m.Log.Add(m.tick, t.Name, "ai", "aim",
				fmt.Sprintf("a=%.1f p=%.1f", sol.Angle, sol.Power), 0)
			m.aiFiring = true
			if err := m.Fire(); err != nil {
				// Out of special ammo mid-plan: fall back to standard.
				t.Weapon = WeaponStandard
				_ = m.Fire()
			}
			m.aiFiring = false
		})
	}
	if m.search.Step(ai.PerTickBudget()) {
		m.search = nil
	}
}

// explode carves a crater (deferred to the end of the tick) and deals splash
// damage: the directly hit tank takes full weapon damage, everything else in
// the blast takes a linear falloff share. Shields absorb first.
func (m *Match) explode(p *Projectile, x, y float64, direct *Tank) {
	cfg := p.Weapon.Config()
	m.carves = append(m.carves, pendingCarve{
		x: x, y: y, radius: cfg.ExplosionRadius, shape: cfg.ExplosionShape, ratio: cfg.ShapeRatio,
	})
	m.sink.Explosion(p.Weapon, x, y)

	hitSomeone := false
	for _, t := range m.Tanks {
		if !t.Alive() {
			continue
		}
		var dmg float64
		if t == direct {
			dmg = cfg.ExplosionDamage
		} else {
			d := math.Hypot(t.X-x, t.Y-y)
			reach := cfg.ExplosionRadius + tankHitRadius
			if d > reach {
				continue
			}
			dmg = cfg.ExplosionDamage * (1 - d/reach)
		}
		if dmg <= 0 {
			continue
		}

		shieldBefore := 0.0
		if t.Shield != nil && t.Shield.Active {
			shieldBefore = t.Shield.HP
		}
		hull := t.ApplyDamage(dmg)
		absorbed := dmg - hull
		if absorbed > 0 && shieldBefore > 0 {
			m.sink.ShieldHit(t, absorbed)
		}
		if hull > 0 {
			m.sink.TankDamaged(t, hull)
			m.Log.Add(m.tick, t.Name, "damage", "hull", p.Weapon.String(), hull)
		}
		if t.ID != p.Owner && (hull > 0 || absorbed > 0) {
			hitSomeone = true
			m.stats[p.Owner].DamageDealt += hull
		}
	}
	if hitSomeone {
		m.stats[p.Owner].Hits++
	}
}

// resolveProjectile handles one shell's collision outcome. Returns false when
// the shell is spent and should be removed.
func (m *Match) resolveProjectile(p *Projectile) bool {
	res := ResolveCollision(p, m.Terrain, m.Tanks)
	switch res.Kind {
	case CollisionNone:
		if ShouldSplit(p) {
			plan := CreateSplitPlan(p, m.rng)
			m.pending = append(m.pending, plan.Spawns...)
			m.sink.Split(p, len(plan.Spawns))
			m.Log.Add(m.tick, "shell", "flight", "split", "", float64(len(plan.Spawns)))
			return false
		}
		return true

	case CollisionTerrain:
		if ShouldBounce(p) {
			normal := m.Terrain.SurfaceNormal(int(res.X))
			p.VX, p.VY = BounceVelocity(p, normal)
			p.Bounces++
			// Re-seat the shell just off the surface along the normal so the
			// next sweep doesn't start inside the ground.
			p.X = res.X + math.Cos(normal)*2
			p.Y = res.Y + math.Sin(normal)*2
			p.LastX, p.LastY = p.X, p.Y
			m.sink.Bounce(p)
			m.Log.AddVerbose(m.tick, "shell", "flight", "bounce", "", float64(p.Bounces))
			return true
		}
		m.finishShot(p, res)
		m.explode(p, res.X, res.Y, nil)
		return false

	case CollisionTank, CollisionShield:
		m.finishShot(p, res)
		m.explode(p, res.X, res.Y, res.Tank)
		return false

	case CollisionOutOfBounds:
		m.finishShot(p, res)
		return false
	}
	return true
}

// finishShot reports the landing and feeds the impact back to the shooter's
// AI so its next guess corrects for the miss.
func (m *Match) finishShot(p *Projectile, res CollisionResult) {
	m.sink.ProjectileLanded(p, res)
	m.Log.AddVerbose(m.tick, "shell", "impact", res.Kind.String(), "", res.X)
	if ai := m.ais[p.Owner]; ai != nil && res.Kind != CollisionOutOfBounds {
		if tx, ok := m.aiTargetX[p.Owner]; ok {
			ai.RecordShotOutcome(res.X, tx)
		}
	}
}

// applyCarves lands all of this tick's craters at once and records the
// columns the renderer must redraw.
func (m *Match) applyCarves() {
	if len(m.carves) == 0 {
		return
	}
	before := m.Terrain.SolidCount()
	for _, c := range m.carves {
		cols := m.Terrain.Carve(c.x, c.y, c.radius, c.shape, c.ratio)
		m.DirtyColumns = append(m.DirtyColumns, cols...)
	}
	m.carves = m.carves[:0]
	destroyed := before - m.Terrain.SolidCount()
	m.CellsDestroyed += destroyed
	m.Log.AddVerbose(m.tick, "match", "terrain", "carved", "", float64(destroyed))
}

// checkGameOver detects newly destroyed tanks and ends the match when at most
// one remains.
func (m *Match) checkGameOver() {
	alive := 0
	var last *Tank
	for _, t := range m.Tanks {
		if !t.Alive() && !m.destroyedSeen[t.ID] {
			m.destroyedSeen[t.ID] = true
			m.sink.TankDestroyed(t)
			m.Log.Add(m.tick, t.Name, "turn", "destroyed", "", 0)
		}
		if t.Alive() {
			alive++
			last = t
		}
	}
	if alive > 1 || m.over {
		return
	}
	m.over = true
	if alive == 1 {
		m.winner = last
	}
	m.Scheduler.NoteGameOver()
	m.sink.MatchOver(m.winner)
	name := "nobody"
	if m.winner != nil {
		name = m.winner.Name
	}
	m.Log.Add(m.tick, name, "turn", "match-over", "", float64(m.Scheduler.Turns()))
}

// Tick advances the whole match one fixed step: AI thinking, delayed spawns,
// shell flight and collisions, deferred crater carving, tank settling and the
// turn cycle.
func (m *Match) Tick() {
	if m.Scheduler == nil || m.over {
		return
	}
	m.tick++

	if m.Scheduler.Phase() == PhaseWaitingForInput && !m.CurrentTank().Human {
		m.stepAI()
	}

	// Materialize delayed spawns.
	if len(m.pending) > 0 {
		rest := m.pending[:0]
		for i := range m.pending {
			sp := m.pending[i]
			if sp.Delay > 0 {
				sp.Delay--
				rest = append(rest, sp)
				continue
			}
			m.projectiles = append(m.projectiles, &Projectile{
				X: sp.X, Y: sp.Y, VX: sp.VX, VY: sp.VY,
				LastX: sp.X, LastY: sp.Y,
				Weapon: sp.Weapon, Owner: sp.Owner,
			})
		}
		m.pending = rest
	}

	// Flight and collisions against this tick's terrain snapshot.
	if len(m.projectiles) > 0 {
		kept := m.projectiles[:0]
		for _, p := range m.projectiles {
			p.Advance(tickDT, m.Env)
			if m.resolveProjectile(p) {
				kept = append(kept, p)
			}
		}
		m.projectiles = kept
	}

	m.applyCarves()

	for _, t := range m.Tanks {
		t.Settle(m.Terrain)
	}

	m.checkGameOver()
	if m.over {
		return
	}

	if m.Scheduler.Phase() == PhaseResolvingProjectiles && m.InFlight() == 0 {
		m.Scheduler.NoteProjectilesSettled()
	}
	changed := m.Scheduler.Tick(func(i int) bool { return m.Tanks[i].Alive() })
	if changed {
		// Wind drifts a little between turns.
		dx, dy := WindVariation(m.rng)
		m.Env.WindX += dx
		m.Env.WindY += dy
		m.search = nil
		m.sink.TurnChanged(m.CurrentTank())
		m.Log.Add(m.tick, m.CurrentTank().Name, "turn", "start",
			fmt.Sprintf("wind=%.1f", m.Env.WindX), float64(m.Scheduler.Turns()))
	}
}

// Projectiles returns the shells currently in flight, for rendering.
func (m *Match) Projectiles() []*Projectile { return m.projectiles }

// DrainDirtyColumns hands the changed terrain columns to the renderer and
// resets the list.
func (m *Match) DrainDirtyColumns() []int {
	cols := m.DirtyColumns
	m.DirtyColumns = nil
	return cols
}
