// Package events overlays short localized bursts (drops, sparks, pings)
// onto a continuous buffer.
package events

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/almerlucke/ambience/dsp/windows"
	"github.com/almerlucke/genny/float/conv"
	"github.com/almerlucke/genny/float/phasor"
	"github.com/almerlucke/genny/float/shape"
	"github.com/almerlucke/genny/float/shape/shapers/mult"
)

// Shape selects the waveform of an injected event.
type Shape int

const (
	// Drop is a tapered bump with a random per-event level in [0.6, 1).
	Drop Shape = iota
	// Spark is a tapered burst of cubed uniform noise.
	Spark
	// Ping is a single tapered sine cycle.
	Ping
)

func (s Shape) String() string {
	switch s {
	case Drop:
		return "drop"
	case Spark:
		return "spark"
	case Ping:
		return "ping"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Spec describes a batch of events.
type Spec struct {
	Count     int
	Length    int
	Shape     Shape
	Amplitude float64
	// Window tapers each event, Hann when nil.
	Window windows.Function
}

// Inject adds spec.Count events into x at uniformly random start indices
// drawn from [0, len(x)-Length). Events overlap additively. Lengths longer
// than x are clamped to len(x).
func Inject(x []float64, spec Spec, rng *rand.Rand) []float64 {
	length := spec.Length
	if length > len(x) {
		length = len(x)
	}

	if spec.Count <= 0 || length <= 0 {
		return x
	}

	win := spec.Window
	if win == nil {
		win = windows.Hann
	}

	taper := win(length)

	var ping []float64
	if spec.Shape == Ping {
		ping = sineCycle(length)
	}

	span := len(x) - length
	if span < 1 {
		span = 1
	}

	for e := 0; e < spec.Count; e++ {
		i := rng.Intn(span)
		dst := x[i : i+length]

		switch spec.Shape {
		case Drop:
			level := spec.Amplitude * (0.6 + 0.4*rng.Float64())
			for k := range dst {
				dst[k] += taper[k] * level
			}
		case Spark:
			for k := range dst {
				u := rng.Float64()
				dst[k] += u * u * u * spec.Amplitude * taper[k]
			}
		case Ping:
			for k := range dst {
				dst[k] += ping[k] * taper[k] * spec.Amplitude
			}
		}
	}

	return x
}

// sineCycle renders one full sine period spread over length samples:
// out[k] = sin(2π·k/(length-1)), starting at phase zero and landing back on it.
func sineCycle(length int) []float64 {
	out := make([]float64, length)
	if length < 2 {
		return out
	}

	// A phasor at 1 Hz sampled at length-1 Hz walks 0..1 across the event;
	// the shaper scales it to radians.
	osc := shape.New(conv.ToVec(phasor.New(1.0, float64(length-1), 0.0)), 1, mult.New(2*math.Pi))

	for k, phase := range Phases(osc, length) {
		out[k] = math.Sin(phase)
	}

	return out
}

// Generator is a vector generator such as a shaped genny phasor.
type Generator interface {
	Generate() []float64
}

// Phases reads n values from a generator driven by a phasor that starts at
// phase zero, returning them with the zero phase at index 0 whether the
// phasor outputs before or after it advances.
func Phases(gen Generator, n int) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	k := 0
	v := gen.Generate()[0]
	if v != 0 {
		// phasor advanced before its first output, phase zero is implied
		k = 1
	}

	for ; k < n; k++ {
		out[k] = v
		if k < n-1 {
			v = gen.Generate()[0]
		}
	}

	return out
}
