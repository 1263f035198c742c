package game

import "math"

// CollisionKind classifies the first thing a projectile's swept path hit.
type CollisionKind uint8

const (
	CollisionNone CollisionKind = iota
	CollisionTank
	CollisionShield
	CollisionTerrain
	CollisionOutOfBounds
)

func (k CollisionKind) String() string {
	switch k {
	case CollisionTank:
		return "tank"
	case CollisionShield:
		return "shield"
	case CollisionTerrain:
		return "terrain"
	case CollisionOutOfBounds:
		return "out-of-bounds"
	default:
		return "none"
	}
}

// CollisionResult describes the single collision a projectile resolved this
// tick. X/Y is the sample point of first contact; Tank is set for tank and
// shield hits.
type CollisionResult struct {
	Kind CollisionKind
	X, Y float64
	Tank *Tank
}

// minSweepSamples is the floor on swept-path sampling density. Fast shells
// additionally get one sample per pixel of travel, whichever is finer. Known
// trade-off: extreme speed multipliers could still step across a single-cell
// terrain spike between samples.
const minSweepSamples = 10

// ResolveCollision tests one projectile's swept segment (last tick position
// to current) against shields, tank hitboxes, terrain and the play bounds,
// in that priority order per sample. The first satisfied condition wins and
// at most one result is returned per tick.
//
// Within each per-tank check the inner hitbox is tested before the shield
// ring: a shell that punches through the shielded volume into the core still
// counts as a direct tank hit, while a graze that only crosses the ring is a
// shield hit. The shooter's own tank is skipped entirely.
func ResolveCollision(p *Projectile, tf *TerrainField, tanks []*Tank) CollisionResult {
	dx := p.X - p.LastX
	dy := p.Y - p.LastY
	travel := math.Hypot(dx, dy)

	samples := minSweepSamples
	if perPixel := int(math.Ceil(travel)); perPixel > samples {
		samples = perPixel
	}

	for i := 1; i <= samples; i++ {
		t := float64(i) / float64(samples)
		sx := p.LastX + dx*t
		sy := p.LastY + dy*t

		for _, tank := range tanks {
			if tank.ID == p.Owner || !tank.Alive() {
				continue
			}
			dist := math.Hypot(sx-tank.X, sy-tank.Y)
			if dist <= tankHitRadius {
				return CollisionResult{Kind: CollisionTank, X: sx, Y: sy, Tank: tank}
			}
			if tank.Shield != nil && tank.Shield.Active && dist <= tank.Shield.Radius {
				// A shell that crosses the shielded volume and reaches the
				// inner hitbox within this sweep is a direct hit on the core,
				// not a shield hit. Scan ahead while the path stays inside
				// the shield.
				for j := i + 1; j <= samples; j++ {
					tj := float64(j) / float64(samples)
					jx := p.LastX + dx*tj
					jy := p.LastY + dy*tj
					jd := math.Hypot(jx-tank.X, jy-tank.Y)
					if jd > tank.Shield.Radius {
						break
					}
					if jd <= tankHitRadius {
						return CollisionResult{Kind: CollisionTank, X: jx, Y: jy, Tank: tank}
					}
				}
				return CollisionResult{Kind: CollisionShield, X: sx, Y: sy, Tank: tank}
			}
		}

		// Below the grid bottom counts as implicit ground.
		if tf.SolidAt(sx, sy) || sy >= float64(tf.Height) {
			return CollisionResult{Kind: CollisionTerrain, X: sx, Y: sy}
		}
	}

	// Leaving the sides ends the flight; above the top is fine — shells come
	// back down.
	if p.X < 0 || p.X >= float64(tf.Width) {
		return CollisionResult{Kind: CollisionOutOfBounds, X: p.X, Y: p.Y}
	}
	return CollisionResult{Kind: CollisionNone}
}
