package game

import (
	"math"
	"math/rand"
)

// Difficulty selects how much simulation effort and how little aim noise the
// targeting AI gets.
type Difficulty uint8

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
	difficultyCount // sentinel
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyHard:
		return "hard"
	default:
		return "normal"
	}
}

// difficultyParams trades search iterations, per-tick budget, acceptance
// tolerance and final aim noise against each other per tier.
type difficultyParams struct {
	iterations int     // total candidate simulations
	perTick    int     // candidates advanced per frame (keeps the tick loop smooth)
	tolerance  float64 // px miss distance considered good enough
	aimNoise   float64 // degrees/power jitter applied to the final solution
}

var difficultyTable = [difficultyCount]difficultyParams{
	DifficultyEasy:   {iterations: 24, perTick: 4, tolerance: 55, aimNoise: 6.0},
	DifficultyNormal: {iterations: 64, perTick: 8, tolerance: 24, aimNoise: 2.5},
	DifficultyHard:   {iterations: 150, perTick: 16, tolerance: 9, aimNoise: 0.6},
}

// AimSolution is the AI's answer: a turret elevation and power, always within
// the valid input ranges.
type AimSolution struct {
	Angle float64 // degrees, [-90, 90]
	Power float64 // [0, 100]
}

// TargetingAI solves the inverse ballistics problem for one computer-driven
// tank: pick (angle, power) so the simulated shell lands on the defender
// under the same physics the live round will fly with. It remembers the
// previous shot's impact error within a match and corrects for it.
type TargetingAI struct {
	Difficulty Difficulty
	rng        *rand.Rand

	lastErrX    float64 // signed x miss of the previous shot (impact − target)
	hasFeedback bool
}

// NewTargetingAI creates an AI of the given tier with its own seeded RNG.
func NewTargetingAI(d Difficulty, seed int64) *TargetingAI {
	if d >= difficultyCount {
		d = DifficultyNormal
	}
	return &TargetingAI{
		Difficulty: d,
		rng:        rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
	}
}

// RecordShotOutcome feeds back where the previous shot actually landed so the
// next search starts from a corrected first guess.
func (ai *TargetingAI) RecordShotOutcome(impactX, targetX float64) {
	ai.lastErrX = impactX - targetX
	ai.hasFeedback = true
}

// maxSimTicks caps a single candidate simulation so a runaway shell (storm
// tailwind, low gravity) cannot stall the search.
const maxSimTicks = 1500

// simulateShot flies one candidate shell against the current terrain and
// returns its impact point. Out-of-bounds exits report the exit position;
// hit is false only when the shell never came down within the tick cap.
func simulateShot(tf *TerrainField, env EnvironmentEffects, x, y, angle, power float64, speedMul float64, facing int) (ix, iy float64, hit bool) {
	vx, vy := launchVelocity(angle, power, speedMul, facing)
	p := Projectile{X: x, Y: y, VX: vx, VY: vy, LastX: x, LastY: y, Owner: -1}

	for i := 0; i < maxSimTicks; i++ {
		p.Advance(tickDT, env)
		res := ResolveCollision(&p, tf, nil)
		switch res.Kind {
		case CollisionTerrain:
			return res.X, res.Y, true
		case CollisionOutOfBounds:
			return res.X, res.Y, true
		}
	}
	return p.X, p.Y, false
}

// aimSearch is one in-progress targeting decision. The scheduler advances it
// a bounded number of iterations per tick and receives the result through a
// callback — the AI never blocks a frame.
type aimSearch struct {
	ai      *TargetingAI
	terrain *TerrainField
	env     EnvironmentEffects

	fromX, fromY     float64
	targetX, targetY float64
	facing           int
	speedMul         float64

	bestAngle, bestPower float64
	bestErr              float64
	iter                 int
	done                 bool
	callback             func(AimSolution)
}

// BeginDecision starts an asynchronous aiming search. The attacker's position
// and the environment are snapshotted; terrain is read live so craters carved
// earlier in the match are accounted for.
func (ai *TargetingAI) BeginDecision(tf *TerrainField, env EnvironmentEffects, attacker, defender *Tank, done func(AimSolution)) *aimSearch {
	mx, my := attacker.MuzzlePosition()
	s := &aimSearch{
		ai:       ai,
		terrain:  tf,
		env:      env,
		fromX:    mx,
		fromY:    my,
		targetX:  defender.X,
		targetY:  defender.Y,
		facing:   attacker.Facing,
		speedMul: attacker.Weapon.Config().SpeedMul,
		bestErr:  math.Inf(1),
		callback: done,
	}
	s.bestAngle, s.bestPower = s.initialGuess()
	return s
}

// initialGuess seeds the search from the vacuum-ballistics closed form for
// the horizontal distance, corrected by the previous shot's signed miss when
// feedback exists.
func (s *aimSearch) initialGuess() (angle, power float64) {
	dist := math.Abs(s.targetX - s.fromX)
	angle = 55 + s.ai.rng.Float64()*15 // lofted opening shot

	// Vacuum range d = v²·sin(2θ)/g solved for launch speed.
	g := baseGravity * s.env.Gravity
	sin2 := math.Sin(2 * angle * math.Pi / 180)
	if sin2 < 0.1 {
		sin2 = 0.1
	}
	v := math.Sqrt(dist * g / sin2)
	power = v / (powerToSpeed * s.speedMul)

	if s.ai.hasFeedback {
		// Overshoot in the firing direction means too much power; pull back
		// proportionally to the miss.
		signedMiss := s.ai.lastErrX * float64(s.facing)
		power -= signedMiss * 0.04
	}
	return clampAngle(angle), clampPower(power)
}

// score weights horizontal miss heavily — landing short or long is the main
// failure mode; vertical error mostly tracks terrain height anyway.
func (s *aimSearch) score(ix, iy float64) float64 {
	return math.Abs(ix-s.targetX) + 0.3*math.Abs(iy-s.targetY)
}

// Step advances the search up to n candidate simulations. Returns true when
// the search has finished and the callback has fired. Stochastic hill-climb:
// perturb the best candidate with a step that shrinks as the budget burns
// down, keep improvements.
func (s *aimSearch) Step(n int) bool {
	if s.done {
		return true
	}
	params := difficultyTable[s.ai.Difficulty]

	for i := 0; i < n; i++ {
		if s.iter >= params.iterations || s.bestErr <= params.tolerance {
			s.finish(params)
			return true
		}

		progress := float64(s.iter) / float64(params.iterations)
		angleStep := 18 * (1 - progress)
		powerStep := 22 * (1 - progress)

		angle := clampAngle(s.bestAngle + (s.ai.rng.Float64()*2-1)*angleStep)
		power := clampPower(s.bestPower + (s.ai.rng.Float64()*2-1)*powerStep)

		ix, iy, hit := simulateShot(s.terrain, s.env, s.fromX, s.fromY, angle, power, s.speedMul, s.facing)
		s.iter++
		if !hit {
			continue
		}
		if err := s.score(ix, iy); err < s.bestErr {
			s.bestErr = err
			s.bestAngle = angle
			s.bestPower = power
		}
	}
	return false
}

// finish applies the tier's aim noise and delivers the solution. Even a
// failed search (nothing ever landed) yields a bounded valid shot.
func (s *aimSearch) finish(params difficultyParams) {
	s.done = true
	angle, power := s.bestAngle, s.bestPower
	if math.IsInf(s.bestErr, 1) {
		// Search failure: a reasonable lofted default beats no shot at all.
		angle, power = 45, 60
	}
	angle = clampAngle(angle + (s.ai.rng.Float64()*2-1)*params.aimNoise)
	power = clampPower(power + (s.ai.rng.Float64()*2-1)*params.aimNoise)
	if s.callback != nil {
		s.callback(AimSolution{Angle: angle, Power: power})
	}
}

// PerTickBudget returns how many candidate simulations this tier runs per
// frame.
func (ai *TargetingAI) PerTickBudget() int {
	return difficultyTable[ai.Difficulty].perTick
}
