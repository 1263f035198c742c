// Package audio turns match events into procedurally generated sound
// effects. Everything is synthesized at runtime; there are no asset files.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/istickz/Scorched-Earth-Game-Phase-sub001/internal/game"
)

const sampleRate = beep.SampleRate(48000)

// SoundManager is an EventSink that plays a sound for the match events worth
// hearing. Safe to use before Initialize; events are simply dropped until the
// speaker is up.
type SoundManager struct {
	game.NopSink

	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and starts the mixer. Idempotent.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything. The speaker itself stays open; beep has no
// close.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.mixer.Clear()
	sm.initialized = false
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	sm.mixer.Add(s)
}

// Fired plays a low punchy thump as the shell leaves the barrel.
func (sm *SoundManager) Fired(_ *game.Tank, _ game.WeaponType) {
	osc := newOscillator(140, 50, 120*time.Millisecond, waveSquare, sampleRate)
	sm.play(newEnvelope(osc, 120*time.Millisecond, 2*time.Millisecond, 80*time.Millisecond, 0.35, sampleRate))
}

// Explosion plays a noise burst sized to the weapon's blast.
func (sm *SoundManager) Explosion(w game.WeaponType, _, _ float64) {
	dur := time.Duration(100+int(w.Config().ExplosionRadius)*12) * time.Millisecond
	osc := newOscillator(0, 0, dur, waveNoise, sampleRate)
	sm.play(newEnvelope(osc, dur, 4*time.Millisecond, dur/2, 0.4, sampleRate))
}

// Bounce plays a short metallic tick.
func (sm *SoundManager) Bounce(_ *game.Projectile) {
	osc := newOscillator(900, 600, 50*time.Millisecond, waveSine, sampleRate)
	sm.play(newEnvelope(osc, 50*time.Millisecond, time.Millisecond, 35*time.Millisecond, 0.25, sampleRate))
}

// Split plays a rising crackle as the shell bursts into fragments.
func (sm *SoundManager) Split(_ *game.Projectile, _ int) {
	osc := newOscillator(300, 1100, 160*time.Millisecond, waveSquare, sampleRate)
	sm.play(newEnvelope(osc, 160*time.Millisecond, 3*time.Millisecond, 90*time.Millisecond, 0.2, sampleRate))
}

// ShieldHit plays a hollow ring distinct from a hull hit.
func (sm *SoundManager) ShieldHit(_ *game.Tank, _ float64) {
	osc := newOscillator(520, 480, 200*time.Millisecond, waveSine, sampleRate)
	sm.play(newEnvelope(osc, 200*time.Millisecond, 2*time.Millisecond, 150*time.Millisecond, 0.3, sampleRate))
}

// TankDestroyed plays a long rumbling collapse.
func (sm *SoundManager) TankDestroyed(_ *game.Tank) {
	osc := newOscillator(0, 0, 700*time.Millisecond, waveNoise, sampleRate)
	sm.play(newEnvelope(osc, 700*time.Millisecond, 10*time.Millisecond, 500*time.Millisecond, 0.45, sampleRate))
}
