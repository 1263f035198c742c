package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// waveType selects the oscillator shape.
type waveType int

const (
	waveSine waveType = iota
	waveSquare
	waveNoise
)

// oscillator generates a raw wave for a fixed duration. freqEnd lets the
// frequency glide over the lifetime for falling-pitch effects.
type oscillator struct {
	freq     float64
	freqEnd  float64
	phase    float64
	duration int
	position int
	wave     waveType
	rate     beep.SampleRate
}

func newOscillator(freq, freqEnd float64, duration time.Duration, wave waveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		freqEnd:  freqEnd,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case waveNoise:
			val = rand.Float64()*2 - 1 // #nosec G404 -- audio noise
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.freqEnd-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack/release ramp so effects don't click.
type envelope struct {
	streamer beep.Streamer
	position int
	duration int
	attack   int
	release  int
	gain     float64
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, gain float64, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		duration: rate.N(duration),
		attack:   rate.N(attack),
		release:  rate.N(release),
		gain:     gain,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		amp := e.gain
		if e.position < e.attack && e.attack > 0 {
			amp *= float64(e.position) / float64(e.attack)
		}
		if rem := e.duration - e.position; rem < e.release && e.release > 0 {
			amp *= float64(rem) / float64(e.release)
		}
		samples[i][0] *= amp
		samples[i][1] *= amp
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
