package game

// --- Tank constants ---

const (
	tankMaxHealth = 100.0
	// tankHitRadius is the inner direct-hit circle, deliberately smaller than
	// any shield radius.
	tankHitRadius = 9.0
	// tankHalfWidth spans the footprint probed for ground support.
	tankHalfWidth = 7
	// tankFallSpeed is how fast an unsupported tank drops, px per tick.
	tankFallSpeed = 3.0
)

// TankState is the groundedness state machine: a tank is either sitting on
// solid terrain or falling toward it. Driven purely by IsSolid probes under
// the footprint — no rigid-body engine involved.
type TankState uint8

const (
	TankGrounded TankState = iota
	TankFalling
)

func (s TankState) String() string {
	if s == TankFalling {
		return "falling"
	}
	return "grounded"
}

// Tank is one player's vehicle. Angle uses a side-dependent sign convention:
// it is the turret elevation in degrees [-90, 90], and Facing (+1 fires
// rightward, -1 leftward) mirrors the horizontal launch direction.
type Tank struct {
	ID     int
	Name   string
	X, Y   float64 // centre of the hull
	Health float64
	Angle  float64
	Power  float64
	Facing int
	Shield *Shield
	Weapon WeaponType
	Ammo   [weaponTypeCount]int // rounds remaining; -1 = infinite
	Human  bool                 // false = TargetingAI drives this tank

	state TankState
}

// NewTank builds a live tank at (x, y) with full health, infinite standard
// ammo and a modest stock of the special weapons.
func NewTank(id int, name string, x, y float64, facing int) *Tank {
	t := &Tank{
		ID:     id,
		Name:   name,
		X:      x,
		Y:      y,
		Health: tankMaxHealth,
		Angle:  60,
		Power:  50,
		Facing: facing,
		Weapon: WeaponStandard,
	}
	t.Ammo[WeaponStandard] = -1
	t.Ammo[WeaponSalvo] = 3
	t.Ammo[WeaponBouncer] = 3
	t.Ammo[WeaponHazelnut] = 2
	return t
}

// Alive reports whether the tank is still in play.
func (t *Tank) Alive() bool {
	return t.Health > 0
}

// State returns the current groundedness state.
func (t *Tank) State() TankState {
	return t.state
}

// SetAngle clamps and stores a turret elevation.
func (t *Tank) SetAngle(a float64) {
	t.Angle = clampAngle(a)
}

// SetPower clamps and stores a power setting.
func (t *Tank) SetPower(p float64) {
	t.Power = clampPower(p)
}

// HasAmmo reports whether the tank can fire the given weapon.
func (t *Tank) HasAmmo(w WeaponType) bool {
	return t.Ammo[w] != 0
}

// ConsumeAmmo spends one round of the given weapon; infinite stock (-1) is
// never decremented.
func (t *Tank) ConsumeAmmo(w WeaponType) {
	if t.Ammo[w] > 0 {
		t.Ammo[w]--
	}
}

// CycleWeapon advances to the next weapon with ammo remaining.
func (t *Tank) CycleWeapon() {
	for i := 1; i <= int(weaponTypeCount); i++ {
		next := WeaponType((int(t.Weapon) + i) % int(weaponTypeCount))
		if t.HasAmmo(next) {
			t.Weapon = next
			return
		}
	}
}

// MuzzlePosition returns the point shells spawn from, slightly outside the
// hull along the turret direction so a fresh shell never starts inside the
// shooter's own hitbox.
func (t *Tank) MuzzlePosition() (x, y float64) {
	vx, vy := launchVelocity(t.Angle, 100, 1, t.Facing)
	speed := powerToSpeed * 100
	const muzzleLen = tankHitRadius + 4
	return t.X + vx/speed*muzzleLen, t.Y + vy/speed*muzzleLen
}

// ApplyDamage routes damage through the active shield first and applies the
// remainder to the hull. Returns the damage the hull actually took.
func (t *Tank) ApplyDamage(amount float64) float64 {
	if amount <= 0 || !t.Alive() {
		return 0
	}
	passed := t.Shield.TakeDamage(amount)
	if passed <= 0 {
		return 0
	}
	t.Health -= passed
	if t.Health < 0 {
		t.Health = 0
	}
	return passed
}

// supported reports whether any probe column under the footprint has solid
// ground immediately below the hull. The grid's bottom edge counts as ground.
func (t *Tank) supported(tf *TerrainField) bool {
	probeY := int(t.Y + tankHitRadius/2 + 1)
	if probeY >= tf.Height {
		return true
	}
	for _, dx := range [3]int{-tankHalfWidth, 0, tankHalfWidth} {
		if tf.IsSolid(int(t.X)+dx, probeY) {
			return true
		}
	}
	return false
}

// Settle advances the Grounded ↔ Falling state machine one tick: a tank whose
// support was carved away drops until it meets terrain (or the field bottom)
// again. Returns true if the tank moved.
func (t *Tank) Settle(tf *TerrainField) bool {
	if !t.Alive() {
		return false
	}
	if t.supported(tf) {
		t.state = TankGrounded
		return false
	}
	t.state = TankFalling
	t.Y += tankFallSpeed
	maxY := float64(tf.Height) - float64(tankHitRadius)/2
	if t.Y > maxY {
		t.Y = maxY
		t.state = TankGrounded
	}
	return true
}
