package game

import "testing"

func TestNewTank_Loadout(t *testing.T) {
	tk := NewTank(0, "alpha", 100, 100, 1)
	if !tk.Alive() || tk.Health != tankMaxHealth {
		t.Fatalf("fresh tank not at full health: %v", tk.Health)
	}
	if tk.Weapon != WeaponStandard {
		t.Errorf("fresh tank holds %s, want standard", tk.Weapon)
	}
	if tk.Ammo[WeaponStandard] != -1 {
		t.Error("standard ammo is not infinite")
	}
	for _, w := range []WeaponType{WeaponSalvo, WeaponBouncer, WeaponHazelnut} {
		if tk.Ammo[w] <= 0 {
			t.Errorf("no starting stock of %s", w)
		}
	}
}

func TestAmmo(t *testing.T) {
	tk := NewTank(0, "alpha", 100, 100, 1)
	tk.Ammo[WeaponHazelnut] = 1

	tk.ConsumeAmmo(WeaponHazelnut)
	if tk.HasAmmo(WeaponHazelnut) {
		t.Error("spent weapon still reports ammo")
	}
	// Infinite stock never drains.
	for i := 0; i < 5; i++ {
		tk.ConsumeAmmo(WeaponStandard)
	}
	if tk.Ammo[WeaponStandard] != -1 {
		t.Errorf("infinite ammo drained to %d", tk.Ammo[WeaponStandard])
	}
}

func TestCycleWeapon_SkipsEmpty(t *testing.T) {
	tk := NewTank(0, "alpha", 100, 100, 1)
	tk.Ammo[WeaponSalvo] = 0

	tk.CycleWeapon() // standard -> bouncer, skipping the empty salvo
	if tk.Weapon != WeaponBouncer {
		t.Errorf("cycle landed on %s, want bouncer", tk.Weapon)
	}
}

func TestApplyDamage_ShieldFirst(t *testing.T) {
	tk := NewTank(0, "alpha", 100, 100, 1)
	tk.Shield = NewShield(ShieldMultiUse, 30, 16)

	if hull := tk.ApplyDamage(50); hull != 20 {
		t.Errorf("hull took %v through a 30HP shield, want 20", hull)
	}
	if tk.Health != tankMaxHealth-20 {
		t.Errorf("health = %v, want %v", tk.Health, tankMaxHealth-20)
	}

	// Health floors at zero.
	tk.ApplyDamage(1000)
	if tk.Health != 0 {
		t.Errorf("health after overkill = %v", tk.Health)
	}
	if hull := tk.ApplyDamage(10); hull != 0 {
		t.Errorf("dead tank still takes damage: %v", hull)
	}
}

func TestSettle_StateMachine(t *testing.T) {
	tf := flatTerrain(200, 200, 100)
	tk := NewTank(0, "alpha", 100, 0, 1)
	tk.Y = float64(100) - tankHitRadius/2 // seated on the surface

	if tk.Settle(tf) {
		t.Error("supported tank moved")
	}
	if tk.State() != TankGrounded {
		t.Errorf("supported tank state = %s", tk.State())
	}

	// Blow the ground out from under it.
	tf.Carve(100, 110, 40, ExplosionCircle, 1)
	moved := tk.Settle(tf)
	if !moved || tk.State() != TankFalling {
		t.Fatalf("unsupported tank did not start falling: moved=%v state=%s", moved, tk.State())
	}

	// It keeps dropping until it meets terrain again, then regrounds.
	for i := 0; i < 200 && tk.State() == TankFalling; i++ {
		tk.Settle(tf)
	}
	if tk.State() != TankGrounded {
		t.Error("falling tank never regrounded")
	}
	if tk.Y > float64(tf.Height) {
		t.Errorf("tank fell out of the world: y=%v", tk.Y)
	}
}

func TestSettle_DeadTankStaysPut(t *testing.T) {
	tf := emptyField(200, 200)
	tk := NewTank(0, "alpha", 100, 50, 1)
	tk.Health = 0
	if tk.Settle(tf) {
		t.Error("destroyed tank settled")
	}
}

func TestMuzzlePosition_OutsideHitbox(t *testing.T) {
	tk := NewTank(0, "alpha", 100, 100, 1)
	for _, angle := range []float64{-90, -45, 0, 45, 90} {
		tk.SetAngle(angle)
		mx, my := tk.MuzzlePosition()
		dx, dy := mx-tk.X, my-tk.Y
		if dx*dx+dy*dy <= tankHitRadius*tankHitRadius {
			t.Errorf("angle %v: muzzle (%v,%v) inside own hitbox", angle, mx, my)
		}
	}
}

func TestSetAngleSetPower_Clamped(t *testing.T) {
	tk := NewTank(0, "alpha", 100, 100, 1)
	tk.SetAngle(400)
	if tk.Angle != 90 {
		t.Errorf("angle clamped to %v, want 90", tk.Angle)
	}
	tk.SetPower(-20)
	if tk.Power != 0 {
		t.Errorf("power clamped to %v, want 0", tk.Power)
	}
}
