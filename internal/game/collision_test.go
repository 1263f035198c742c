package game

import "testing"

// emptyField returns terrain with no solid cells at all.
func emptyField(w, h int) *TerrainField {
	return &TerrainField{Width: w, Height: h, cells: make([]bool, w*h)}
}

func TestResolveCollision_DirectHitBeatsShield(t *testing.T) {
	tf := emptyField(400, 300)
	target := NewTank(1, "target", 200, 150, -1)
	target.Shield = NewShield(ShieldMultiUse, 75, 20)

	// Path passes straight through the tank centre: inside both the shield
	// ring and the inner hitbox.
	p := &Projectile{X: 200, Y: 150, LastX: 200, LastY: 100, Owner: 0}
	res := ResolveCollision(p, tf, []*Tank{target})
	if res.Kind != CollisionTank {
		t.Fatalf("core hit classified as %s, want tank", res.Kind)
	}
	if res.Tank != target {
		t.Error("collision did not report the struck tank")
	}
}

func TestResolveCollision_ShieldStopsShellShortOfCore(t *testing.T) {
	tf := emptyField(400, 300)
	target := NewTank(1, "target", 200, 150, -1)
	target.Shield = NewShield(ShieldMultiUse, 75, 20)

	// The sweep ends 12px from centre: inside the shield ring, short of the
	// 9px hitbox. The hit is a shield hit, reported where the path entered
	// the ring.
	p := &Projectile{X: 200, Y: 138, LastX: 200, LastY: 100, Owner: 0}
	res := ResolveCollision(p, tf, []*Tank{target})
	if res.Kind != CollisionShield {
		t.Fatalf("annulus stop classified as %s, want shield", res.Kind)
	}
	if res.Y < 129 || res.Y > 131 {
		t.Errorf("shield contact y = %v, want the ring entry near 130", res.Y)
	}
}

func TestResolveCollision_GrazeHitsShield(t *testing.T) {
	tf := emptyField(400, 300)
	target := NewTank(1, "target", 200, 150, -1)
	target.Shield = NewShield(ShieldMultiUse, 75, 20)

	// Horizontal pass 15px above centre: inside the 20px shield ring but
	// outside the 9px hitbox.
	p := &Projectile{X: 260, Y: 135, LastX: 140, LastY: 135, Owner: 0}
	res := ResolveCollision(p, tf, []*Tank{target})
	if res.Kind != CollisionShield {
		t.Fatalf("graze classified as %s, want shield", res.Kind)
	}

	// Same pass with the shield down misses entirely.
	target.Shield.Active = false
	p = &Projectile{X: 260, Y: 135, LastX: 140, LastY: 135, Owner: 0}
	if res := ResolveCollision(p, tf, []*Tank{target}); res.Kind != CollisionNone {
		t.Errorf("shieldless graze classified as %s, want none", res.Kind)
	}
}

func TestResolveCollision_OwnTankSkipped(t *testing.T) {
	tf := emptyField(400, 300)
	shooter := NewTank(0, "shooter", 200, 150, 1)

	p := &Projectile{X: 200, Y: 150, LastX: 200, LastY: 140, Owner: 0}
	if res := ResolveCollision(p, tf, []*Tank{shooter}); res.Kind != CollisionNone {
		t.Errorf("shell collided with its own shooter: %s", res.Kind)
	}
}

func TestResolveCollision_DeadTankSkipped(t *testing.T) {
	tf := emptyField(400, 300)
	dead := NewTank(1, "dead", 200, 150, -1)
	dead.Health = 0

	p := &Projectile{X: 200, Y: 150, LastX: 200, LastY: 100, Owner: 0}
	if res := ResolveCollision(p, tf, []*Tank{dead}); res.Kind != CollisionNone {
		t.Errorf("shell collided with a destroyed tank: %s", res.Kind)
	}
}

func TestResolveCollision_Terrain(t *testing.T) {
	tf := flatTerrain(400, 300, 200)

	p := &Projectile{X: 100, Y: 210, LastX: 100, LastY: 180, Owner: 0}
	res := ResolveCollision(p, tf, nil)
	if res.Kind != CollisionTerrain {
		t.Fatalf("ground impact classified as %s", res.Kind)
	}
	// Contact is reported at the surface crossing, not the final position.
	if res.Y < 195 || res.Y > 205 {
		t.Errorf("contact y = %v, want near surface 200", res.Y)
	}
}

func TestResolveCollision_SweptPathCatchesThinWall(t *testing.T) {
	tf := emptyField(400, 300)
	// One-column wall.
	for y := 0; y < 300; y++ {
		tf.cells[y*400+200] = true
	}

	// 120px of travel in one tick, crossing the wall mid-segment.
	p := &Projectile{X: 260, Y: 150, LastX: 140, LastY: 150, Owner: 0}
	if res := ResolveCollision(p, tf, nil); res.Kind != CollisionTerrain {
		t.Errorf("fast shell stepped through a thin wall: %s", res.Kind)
	}
}

func TestResolveCollision_Bounds(t *testing.T) {
	tf := emptyField(400, 300)

	// Below the grid bottom counts as ground even with no cells there.
	p := &Projectile{X: 100, Y: 310, LastX: 100, LastY: 290, Owner: 0}
	if res := ResolveCollision(p, tf, nil); res.Kind != CollisionTerrain {
		t.Errorf("below-bottom classified as %s, want terrain", res.Kind)
	}

	// Off the side ends the flight.
	p = &Projectile{X: -5, Y: 150, LastX: 3, LastY: 150, Owner: 0}
	if res := ResolveCollision(p, tf, nil); res.Kind != CollisionOutOfBounds {
		t.Errorf("side exit classified as %s, want out-of-bounds", res.Kind)
	}

	// Above the top is open sky: the shell keeps flying.
	p = &Projectile{X: 100, Y: -50, LastX: 100, LastY: -20, Owner: 0}
	if res := ResolveCollision(p, tf, nil); res.Kind != CollisionNone {
		t.Errorf("above-top classified as %s, want none", res.Kind)
	}
}
