package game

import (
	"image/color"
	"math"
	"math/rand"
)

// WeaponType is the closed set of weapon variants. Behaviour differences are
// expressed as capability flags plus table parameters rather than subclassing,
// so the set is explicit and exhaustively matchable.
type WeaponType uint8

const (
	WeaponStandard WeaponType = iota // one shell, no mid-flight behaviour
	WeaponSalvo                      // fan of shells with staggered launches
	WeaponBouncer                    // shell ricochets off terrain
	WeaponHazelnut                   // shell bursts into a fragment shower past peak
	weaponTypeCount                  // sentinel
)

func (w WeaponType) String() string {
	switch w {
	case WeaponStandard:
		return "standard"
	case WeaponSalvo:
		return "salvo"
	case WeaponBouncer:
		return "bouncer"
	case WeaponHazelnut:
		return "hazelnut"
	default:
		return "standard"
	}
}

// WeaponConfig is the static parameter bundle for one weapon type. Built once
// at startup and treated as immutable; no lazy factory caching is needed
// because configs carry no state.
type WeaponConfig struct {
	Name     string
	SpeedMul float64 // multiplier on launch speed

	// Explosion.
	ExplosionRadius float64
	ExplosionDamage float64
	ExplosionShape  ExplosionShape
	ShapeRatio      float64 // ellipse elongation for vertical/horizontal shapes

	// Salvo.
	SalvoCount  int
	SalvoSpread float64 // total angular fan width, radians
	SalvoDelay  int     // ticks between staggered launches

	// Bounce.
	CanBounce       bool
	MaxBounces      int
	BounceSpeedLoss float64 // velocity retained per bounce
	MinBounceSpeed  float64 // below this a bouncer detonates instead

	// Split.
	CanSplit         bool
	SplitMinDistance float64 // px travelled before a split is allowed
	SplitMinFrags    int
	SplitMaxFrags    int
	FragSpeedMul     float64 // fraction of current speed given to fragments
	FragMinSpeed     float64 // fragment speed floor
	FragJitter       float64 // positional jitter around the split point, px

	Color color.RGBA // shell/crater tint for the renderer
}

// weaponTable is the immutable lookup table, indexed by the closed enum.
var weaponTable = [weaponTypeCount]WeaponConfig{
	WeaponStandard: {
		Name:            "Standard Shell",
		SpeedMul:        1.0,
		ExplosionRadius: 26,
		ExplosionDamage: 34,
		ExplosionShape:  ExplosionCircle,
		ShapeRatio:      1.0,
		Color:           color.RGBA{R: 230, G: 225, B: 210, A: 255},
	},
	WeaponSalvo: {
		Name:            "Salvo",
		SpeedMul:        0.95,
		ExplosionRadius: 10,
		ExplosionDamage: 7,
		ExplosionShape:  ExplosionCircle,
		ShapeRatio:      1.0,
		SalvoCount:      16,
		SalvoSpread:     14 * math.Pi / 180,
		SalvoDelay:      3,
		Color:           color.RGBA{R: 255, G: 180, B: 80, A: 255},
	},
	WeaponBouncer: {
		Name:            "Bouncer",
		SpeedMul:        1.1,
		ExplosionRadius: 22,
		ExplosionDamage: 28,
		ExplosionShape:  ExplosionHorizontal,
		ShapeRatio:      1.4,
		CanBounce:       true,
		MaxBounces:      3,
		BounceSpeedLoss: 0.7,
		MinBounceSpeed:  40,
		Color:           color.RGBA{R: 120, G: 220, B: 120, A: 255},
	},
	WeaponHazelnut: {
		Name:             "Hazelnut",
		SpeedMul:         0.9,
		ExplosionRadius:  8,
		ExplosionDamage:  6,
		ExplosionShape:   ExplosionVertical,
		ShapeRatio:       1.6,
		CanSplit:         true,
		SplitMinDistance: 100,
		SplitMinFrags:    20,
		SplitMaxFrags:    30,
		FragSpeedMul:     0.7,
		FragMinSpeed:     30,
		FragJitter:       3,
		Color:            color.RGBA{R: 190, G: 140, B: 80, A: 255},
	},
}

// Config returns the static parameters for a weapon type.
func (w WeaponType) Config() *WeaponConfig {
	if w >= weaponTypeCount {
		w = WeaponStandard
	}
	return &weaponTable[w]
}

// ProjectileSpawn describes one shell to create, with an optional tick delay
// for staggered salvo/fragment launches.
type ProjectileSpawn struct {
	X, Y   float64
	VX, VY float64
	Weapon WeaponType
	Owner  int
	Delay  int
}

// FirePlan is the expansion of one fire command (or one mid-flight split)
// into concrete spawns, plus the side-effect metadata the front end consumes.
type FirePlan struct {
	Spawns       []ProjectileSpawn
	MuzzleSound  bool // play the fire sound (false for split fragments)
	ClearPreview bool // wipe any aim-preview overlay
}

// CreateFirePlan expands a fire command for this weapon into its spawns.
// Standard and the mid-flight variants launch one shell; Salvo fans
// SalvoCount shells across SalvoSpread with staggered delays.
func (w WeaponType) CreateFirePlan(x, y, angleDeg, power float64, facing, owner int) FirePlan {
	cfg := w.Config()
	plan := FirePlan{MuzzleSound: true, ClearPreview: true}

	if w == WeaponSalvo && cfg.SalvoCount > 1 {
		baseRad := clampAngle(angleDeg) * math.Pi / 180
		for i := 0; i < cfg.SalvoCount; i++ {
			// Fan offset in [-spread/2, +spread/2].
			t := float64(i)/float64(cfg.SalvoCount-1) - 0.5
			rad := baseRad + t*cfg.SalvoSpread
			speed := clampPower(power) * powerToSpeed * cfg.SpeedMul
			plan.Spawns = append(plan.Spawns, ProjectileSpawn{
				X: x, Y: y,
				VX:     math.Cos(rad) * speed * float64(facing),
				VY:     -math.Sin(rad) * speed,
				Weapon: w,
				Owner:  owner,
				Delay:  i * cfg.SalvoDelay,
			})
		}
		return plan
	}

	vx, vy := launchVelocity(angleDeg, power, cfg.SpeedMul, facing)
	plan.Spawns = append(plan.Spawns, ProjectileSpawn{
		X: x, Y: y, VX: vx, VY: vy, Weapon: w, Owner: owner,
	})
	return plan
}

// ShouldBounce reports whether a terrain impact should ricochet rather than
// detonate: bounce budget remaining and enough speed left to matter.
func ShouldBounce(p *Projectile) bool {
	cfg := p.Weapon.Config()
	return cfg.CanBounce && p.Bounces < cfg.MaxBounces && p.Speed() >= cfg.MinBounceSpeed
}

// BounceVelocity reflects the velocity about the local terrain normal,
// v' = v − 2(v·n)n, scaled by the per-bounce speed loss. A degenerate
// reflection (zero length) falls back to a plain vertical-velocity inversion.
func BounceVelocity(p *Projectile, surfaceNormalAngle float64) (vx, vy float64) {
	cfg := p.Weapon.Config()
	nx := math.Cos(surfaceNormalAngle)
	ny := math.Sin(surfaceNormalAngle)
	dot := p.VX*nx + p.VY*ny
	rx := p.VX - 2*dot*nx
	ry := p.VY - 2*dot*ny
	if math.Hypot(rx, ry) < 1e-9 {
		return p.VX * cfg.BounceSpeedLoss, -p.VY * cfg.BounceSpeedLoss
	}
	return rx * cfg.BounceSpeedLoss, ry * cfg.BounceSpeedLoss
}

// ShouldSplit reports whether a split-capable shell bursts this tick: it must
// be falling (past peak) and have travelled the minimum distance, so a shell
// can never split on the way up right out of the barrel.
func ShouldSplit(p *Projectile) bool {
	cfg := p.Weapon.Config()
	return cfg.CanSplit && p.Falling() && p.Distance > cfg.SplitMinDistance
}

// fragmentArc is the total fan width of a split, centred straight down.
const fragmentArc = 150 * math.Pi / 180

// CreateSplitPlan expands a splitting shell into its fragment shower:
// SplitMinFrags..SplitMaxFrags Standard shells fanned across a horizontal
// arc below the split point, each at FragSpeedMul of the parent's speed
// (floored at FragMinSpeed), jittered slightly and stagger-delayed.
// Fragments are always Standard — they never split or bounce again.
func CreateSplitPlan(p *Projectile, rng *rand.Rand) FirePlan {
	cfg := p.Weapon.Config()
	n := cfg.SplitMinFrags
	if cfg.SplitMaxFrags > cfg.SplitMinFrags {
		n += rng.Intn(cfg.SplitMaxFrags - cfg.SplitMinFrags + 1)
	}
	speed := p.Speed() * cfg.FragSpeedMul
	if speed < cfg.FragMinSpeed {
		speed = cfg.FragMinSpeed
	}

	plan := FirePlan{} // no muzzle sound, no preview to clear mid-flight
	for i := 0; i < n; i++ {
		t := 0.5
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		// Arc centred on straight down (π/2 with y growing downward).
		rad := math.Pi/2 + (t-0.5)*fragmentArc
		jx := (rng.Float64()*2 - 1) * cfg.FragJitter
		jy := (rng.Float64()*2 - 1) * cfg.FragJitter
		plan.Spawns = append(plan.Spawns, ProjectileSpawn{
			X:      p.X + jx,
			Y:      p.Y + jy,
			VX:     math.Cos(rad) * speed,
			VY:     math.Sin(rad) * speed,
			Weapon: WeaponStandard,
			Owner:  p.Owner,
			Delay:  i % 4, // slight stagger so the shower doesn't resolve as one block
		})
	}
	return plan
}
