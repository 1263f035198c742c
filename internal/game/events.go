package game

// EventSink is the contract between the core and its presentation
// collaborators (renderer, audio). The core signals discrete events; what a
// collaborator does with them — particles, sound, nothing — is its own
// business. All callbacks run on the tick goroutine and must not block.
type EventSink interface {
	Fired(tank *Tank, weapon WeaponType)
	ProjectileLanded(p *Projectile, result CollisionResult)
	Explosion(weapon WeaponType, x, y float64)
	ShieldHit(tank *Tank, absorbed float64)
	TankDamaged(tank *Tank, amount float64)
	TankDestroyed(tank *Tank)
	Bounce(p *Projectile)
	Split(p *Projectile, fragments int)
	TurnChanged(tank *Tank)
	MatchOver(winner *Tank)
}

// NopSink is the default sink: a headless match runs with no presentation at
// all.
type NopSink struct{}

func (NopSink) Fired(*Tank, WeaponType) {}
func (NopSink) ProjectileLanded(*Projectile, CollisionResult) {}
func (NopSink) Explosion(WeaponType, float64, float64) {}
func (NopSink) ShieldHit(*Tank, float64) {}
func (NopSink) TankDamaged(*Tank, float64) {}
func (NopSink) TankDestroyed(*Tank) {}
func (NopSink) Bounce(*Projectile) {}
func (NopSink) Split(*Projectile, int) {}
func (NopSink) TurnChanged(*Tank) {}
func (NopSink) MatchOver(*Tank) {}
