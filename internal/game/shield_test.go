package game

import "testing"

func TestShield_MultiUseAbsorbs(t *testing.T) {
	s := NewShield(ShieldMultiUse, 75, 16)

	if passed := s.TakeDamage(40); passed != 0 {
		t.Errorf("partial hit passed %v damage through, want 0", passed)
	}
	if s.HP != 35 {
		t.Errorf("shield HP after 40 damage = %v, want 35", s.HP)
	}
	if !s.Active {
		t.Error("shield deactivated while it still had HP")
	}
}

func TestShield_MultiUseOverflow(t *testing.T) {
	s := NewShield(ShieldMultiUse, 75, 16)

	if passed := s.TakeDamage(100); passed != 25 {
		t.Errorf("overflow hit passed %v, want 25", passed)
	}
	if s.Active {
		t.Error("depleted shield still active")
	}
	if s.HP != 0 {
		t.Errorf("depleted shield HP = %v, want 0", s.HP)
	}
	// A dead shield passes everything through.
	if passed := s.TakeDamage(30); passed != 30 {
		t.Errorf("inactive shield passed %v, want 30", passed)
	}
}

func TestShield_SingleUsePopsOnAnyHit(t *testing.T) {
	s := NewShield(ShieldSingleUse, 50, 16)

	if passed := s.TakeDamage(1); passed != 0 {
		t.Errorf("single-use shield passed %v on its sacrificial hit, want 0", passed)
	}
	if s.Active || s.HP != 0 {
		t.Errorf("single-use shield survived a hit: active=%v hp=%v", s.Active, s.HP)
	}
}

func TestShield_NilAndZeroDamage(t *testing.T) {
	var s *Shield
	if passed := s.TakeDamage(42); passed != 42 {
		t.Errorf("nil shield passed %v, want 42", passed)
	}
	live := NewShield(ShieldMultiUse, 75, 16)
	if passed := live.TakeDamage(0); passed != 0 {
		t.Errorf("zero damage passed %v through", passed)
	}
	if live.HP != 75 {
		t.Errorf("zero damage drained the shield to %v", live.HP)
	}
}
