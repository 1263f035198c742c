package game

// TurnPhase is the scheduler's position in the turn cycle.
type TurnPhase uint8

const (
	PhaseWaitingForInput TurnPhase = iota
	PhaseFiring
	PhaseResolvingProjectiles
	PhaseTurnTransition
	PhaseGameOver
)

func (p TurnPhase) String() string {
	switch p {
	case PhaseWaitingForInput:
		return "waiting"
	case PhaseFiring:
		return "firing"
	case PhaseResolvingProjectiles:
		return "resolving"
	case PhaseTurnTransition:
		return "transition"
	case PhaseGameOver:
		return "game-over"
	}
	return "unknown"
}

// defaultTransitionTicks is the pause between one tank's shells settling and
// the next tank gaining control, when the level does not set its own.
const defaultTransitionTicks = 45

// TurnScheduler owns whose turn it is and which phase the match is in. It
// never touches tanks or projectiles itself; the match drives it with phase
// notifications and asks it who may act.
type TurnScheduler struct {
	phase      TurnPhase
	current    int // index into the tank roster
	tankCount  int
	delay      int // hand-over pause length in ticks
	transition int // ticks remaining in PhaseTurnTransition
	turns      int // completed turn count, for reports
}

// NewTurnScheduler starts with tank 0 waiting for input. transitionTicks is
// the hand-over pause; zero or negative takes the default.
func NewTurnScheduler(tankCount, transitionTicks int) *TurnScheduler {
	if transitionTicks <= 0 {
		transitionTicks = defaultTransitionTicks
	}
	return &TurnScheduler{phase: PhaseWaitingForInput, tankCount: tankCount, delay: transitionTicks}
}

func (s *TurnScheduler) Phase() TurnPhase { return s.phase }
func (s *TurnScheduler) Current() int { return s.current }
func (s *TurnScheduler) Turns() int { return s.turns }

// CanFire reports whether the current tank may launch a shot right now.
func (s *TurnScheduler) CanFire() bool {
	return s.phase == PhaseWaitingForInput
}

// NoteFired moves the cycle into flight resolution. A no-op outside the
// input phase so double fires cannot desync the cycle.
func (s *TurnScheduler) NoteFired() {
	if s.phase != PhaseWaitingForInput {
		return
	}
	s.phase = PhaseFiring
}

// NoteProjectilesLive is called once the fired shells are in the world.
func (s *TurnScheduler) NoteProjectilesLive() {
	if s.phase == PhaseFiring {
		s.phase = PhaseResolvingProjectiles
	}
}

// NoteProjectilesSettled is called when no shells remain in flight and no
// delayed spawns are pending. It starts the turn hand-over pause.
func (s *TurnScheduler) NoteProjectilesSettled() {
	if s.phase != PhaseResolvingProjectiles {
		return
	}
	s.phase = PhaseTurnTransition
	s.transition = s.delay
}

// NoteGameOver locks the scheduler permanently.
func (s *TurnScheduler) NoteGameOver() {
	s.phase = PhaseGameOver
}

// Tick advances the transition countdown. It returns true exactly once per
// turn, on the tick control passes to the next living tank; alive reports
// liveness by roster index and is used to skip destroyed tanks.
func (s *TurnScheduler) Tick(alive func(int) bool) (turnChanged bool) {
	if s.phase != PhaseTurnTransition {
		return false
	}
	if s.transition > 0 {
		s.transition--
		return false
	}

	s.turns++
	for step := 1; step <= s.tankCount; step++ {
		next := (s.current + step) % s.tankCount
		if alive(next) {
			s.current = next
			s.phase = PhaseWaitingForInput
			return true
		}
	}
	// Nobody left to hand the turn to.
	s.phase = PhaseGameOver
	return false
}
