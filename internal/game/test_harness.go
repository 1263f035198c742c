package game

// TestSim is a headless match harness used exclusively by tests. It wraps a
// Match with deterministic seeding, builder options and simple run-until
// helpers, with no Ebiten dependency.
type TestSim struct {
	Match  *Match
	SimLog *SimLog

	level  LevelConfig
	width  int
	height int
	flat   int // >0: override terrain with a flat floor at this surface y
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // level, size, seed, verbose — applied first
	simOptTank                       // add tanks — applied after the match exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithFieldSize sets the playfield dimensions.
func WithFieldSize(w, h int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.width = w
		ts.height = h
	}}
}

// WithSeed sets the level seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.level.Seed = seed
	}}
}

// WithLevel replaces the whole level config.
func WithLevel(cfg LevelConfig) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.level = cfg
	}}
}

// WithFlatTerrain replaces the generated terrain with a flat floor whose
// surface sits at y. Ballistics tests want a ground with no noise in it.
func WithFlatTerrain(surfaceY int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.flat = surfaceY
	}}
}

// WithCalmAir zeroes wind and drag so trajectories follow gravity alone.
func WithCalmAir() SimOption {
	return SimOption{simOptTank, func(ts *TestSim) {
		ts.Match.Env.WindX = 0
		ts.Match.Env.WindY = 0
		ts.Match.Env.AirDensity = 0
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithTank adds a human-style tank (no AI attached) at xFrac of the width.
func WithTank(name string, xFrac float64, facing int) SimOption {
	return SimOption{simOptTank, func(ts *TestSim) {
		ts.Match.AddHumanTank(name, xFrac, facing)
	}}
}

// WithAITank adds a computer-driven tank at xFrac of the width.
func WithAITank(name string, xFrac float64, facing int, d Difficulty) SimOption {
	return SimOption{simOptTank, func(ts *TestSim) {
		ts.Match.AddAITank(name, xFrac, facing, d)
	}}
}

// NewTestSim constructs a TestSim in two ordered passes:
//  1. Infrastructure (level, field size, seed, verbose, flat terrain)
//  2. Build the match, then add tanks
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		level:  DefaultLevelConfig(),
		width:  800,
		height: 600,
		SimLog: NewSimLog(false),
	}
	ts.level.Seed = 1
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Match = NewMatch(ts.level, ts.width, ts.height, nil, ts.SimLog)
	if ts.flat > 0 {
		ts.Match.Terrain = flatTerrain(ts.width, ts.height, ts.flat)
	}
	for _, o := range opts {
		if o.kind == simOptTank {
			o.fn(ts)
		}
	}
	ts.Match.Start()
	return ts
}

// flatTerrain builds a field solid from surfaceY down.
func flatTerrain(width, height, surfaceY int) *TerrainField {
	tf := &TerrainField{Width: width, Height: height, cells: make([]bool, width*height)}
	for y := surfaceY; y < height; y++ {
		for x := 0; x < width; x++ {
			tf.cells[y*width+x] = true
		}
	}
	return tf
}

// Run advances the match n ticks, stopping early if it ends.
func (ts *TestSim) Run(n int) {
	for i := 0; i < n && !ts.Match.Over(); i++ {
		ts.Match.Tick()
	}
}

// RunUntilSettled fires nothing itself; it ticks until no shells remain in
// flight and the scheduler has handed control over, or maxTicks elapse.
func (ts *TestSim) RunUntilSettled(maxTicks int) {
	for i := 0; i < maxTicks; i++ {
		ts.Match.Tick()
		if ts.Match.Over() {
			return
		}
		if ts.Match.InFlight() == 0 && ts.Match.Scheduler.Phase() == PhaseWaitingForInput {
			return
		}
	}
}
