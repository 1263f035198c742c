package game

// ShieldKind is the closed set of shield variants.
type ShieldKind uint8

const (
	// ShieldMultiUse soaks damage until its HP pool runs dry, passing any
	// overflow through to the tank.
	ShieldMultiUse ShieldKind = iota
	// ShieldSingleUse fully absorbs exactly one hit of any size, then
	// deactivates. Its HP pool never scales the absorption.
	ShieldSingleUse
)

func (k ShieldKind) String() string {
	if k == ShieldSingleUse {
		return "single-use"
	}
	return "multi-use"
}

// ShieldLoadout selects the shield every tank starts the match with.
type ShieldLoadout uint8

const (
	ShieldsNone ShieldLoadout = iota
	ShieldsMultiUse
	ShieldsSingleUse
)

func (l ShieldLoadout) String() string {
	switch l {
	case ShieldsMultiUse:
		return "multi"
	case ShieldsSingleUse:
		return "single"
	default:
		return "none"
	}
}

// Starting shield stats for the level loadout.
const (
	shieldStartHP = 75.0
	shieldRadius  = 20.0
)

// EquipShield builds the starting shield for a loadout, or nil for none.
func (l ShieldLoadout) EquipShield() *Shield {
	switch l {
	case ShieldsMultiUse:
		return NewShield(ShieldMultiUse, shieldStartHP, shieldRadius)
	case ShieldsSingleUse:
		return NewShield(ShieldSingleUse, shieldStartHP, shieldRadius)
	}
	return nil
}

// Shield is a damage-absorbing bubble around a tank. Radius is the collision
// boundary, strictly larger than the tank's inner hitbox.
type Shield struct {
	Kind   ShieldKind
	HP     float64
	MaxHP  float64
	Radius float64
	Active bool
}

// NewShield builds an active shield of the given kind.
func NewShield(kind ShieldKind, hp, radius float64) *Shield {
	return &Shield{Kind: kind, HP: hp, MaxHP: hp, Radius: radius, Active: true}
}

// TakeDamage absorbs incoming damage and returns the remainder that passes
// through to the tank.
//
// Multi-use: amount < HP absorbs fully; amount ≥ HP drains the shield,
// deactivates it and passes amount−HP through. Single-use: any positive
// amount while active destroys the shield and passes nothing, regardless of
// how the amount compares to its HP. An inactive shield passes everything.
func (s *Shield) TakeDamage(amount float64) float64 {
	if s == nil || !s.Active || amount <= 0 {
		if s == nil || !s.Active {
			return amount
		}
		return 0
	}

	if s.Kind == ShieldSingleUse {
		s.HP = 0
		s.Active = false
		return 0
	}

	if amount >= s.HP {
		rest := amount - s.HP
		s.HP = 0
		s.Active = false
		return rest
	}
	s.HP -= amount
	return 0
}
