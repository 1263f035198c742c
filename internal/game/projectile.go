package game

import "math"

// --- Ballistics constants ---

const (
	// baseGravity is the downward acceleration (px/s²) at gravity multiplier 1.0.
	baseGravity = 240.0
	// dragCoeff scales drag magnitude: drag = dragCoeff · airDensity · speed.
	dragCoeff = 0.01
	// windSpeedBias makes wind proportionally stronger on slow projectiles:
	// applied wind = wind / (1 + windSpeedBias·|vx|).
	windSpeedBias = 0.1
	// timeScale is the constant multiplier applied to elapsed real time for
	// every integration step. Raising it speeds the whole simulation up
	// without changing trajectory shape.
	timeScale = 1.0
	// powerToSpeed converts the 0..100 power setting into launch speed (px/s)
	// before the weapon speed multiplier.
	powerToSpeed = 5.2
	// spinRate drives the cosmetic shell rotation from speed.
	spinRate = 0.004
	// tickDT is the fixed timestep (seconds) every simulation tick advances
	// by, live rounds and AI rehearsal shots alike.
	tickDT = 1.0 / 60.0
)

// Projectile is a transient shell owned exclusively by the simulation tick
// loop: created on fire or split/bounce, destroyed on any collision or on
// leaving the play area. LastX/LastY hold the previous tick's position for
// swept collision testing.
type Projectile struct {
	X, Y         float64
	VX, VY       float64
	LastX, LastY float64
	Owner        int        // tank ID of the shooter
	Weapon       WeaponType // drives explosion and mid-flight behaviour
	Distance     float64    // cumulative px travelled, monotonic
	Bounces      int
	Delay        int     // ticks until the projectile goes live (staggered spawns)
	Rotation     float64 // cosmetic spin, no physical meaning
}

// Speed returns the current scalar speed.
func (p *Projectile) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}

// Falling reports whether the projectile is past its peak (y grows downward).
func (p *Projectile) Falling() bool {
	return p.VY > 0
}

// Advance integrates one tick of flight. The order is fixed and load-bearing
// for trajectory reproducibility: gravity, then wind, then drag, then
// position. dt is real elapsed seconds; timeScale is applied here.
func (p *Projectile) Advance(dt float64, env EnvironmentEffects) {
	dt *= timeScale
	p.LastX, p.LastY = p.X, p.Y

	// 1. Gravity.
	p.VY += baseGravity * env.Gravity * dt

	// 2. Wind, attenuated so slow shells feel it more than fast ones.
	att := 1.0 / (1.0 + windSpeedBias*math.Abs(p.VX))
	p.VX += env.WindX * att * dt
	p.VY += env.WindY * att * dt

	// 3. Drag along the velocity direction. Zero speed short-circuits the
	// unit-vector division.
	speed := math.Hypot(p.VX, p.VY)
	if speed > 0 {
		drag := dragCoeff * env.AirDensity * speed
		p.VX -= (p.VX / speed) * drag * dt
		p.VY -= (p.VY / speed) * drag * dt
	}

	// 4. Position.
	p.X += p.VX * dt
	p.Y += p.VY * dt

	p.Distance += math.Hypot(p.X-p.LastX, p.Y-p.LastY)
	p.Rotation += speed * spinRate * dt
}

// launchVelocity converts an elevation angle (degrees, [-90,90]) and power
// (0..100) into a velocity vector. facing is +1 for a tank firing rightward,
// -1 for leftward; y grows downward so positive elevation gives negative vy.
func launchVelocity(angleDeg, power float64, speedMul float64, facing int) (vx, vy float64) {
	angleDeg = clampAngle(angleDeg)
	power = clampPower(power)
	rad := angleDeg * math.Pi / 180
	speed := power * powerToSpeed * speedMul
	vx = math.Cos(rad) * speed * float64(facing)
	vy = -math.Sin(rad) * speed
	return vx, vy
}

// clampAngle bounds a turret elevation to [-90, 90] degrees.
func clampAngle(a float64) float64 {
	if a < -90 {
		return -90
	}
	if a > 90 {
		return 90
	}
	return a
}

// clampPower bounds a power setting to [0, 100].
func clampPower(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
