package recipe

import (
	"math"
	"math/rand"

	"github.com/almerlucke/ambience/dsp/events"
	"github.com/almerlucke/ambience/dsp/filters"
	"github.com/almerlucke/ambience/dsp/noise"
	"github.com/almerlucke/genny/float/conv"
	"github.com/almerlucke/genny/float/phasor"
	"github.com/almerlucke/genny/float/shape"
	"github.com/almerlucke/genny/float/shape/shapers/mult"
)

// windPeriod is the LFO period of the wind gusts in seconds.
const windPeriod = 12.0

func scale(x []float64, f float64) []float64 {
	for i := range x {
		x[i] *= f
	}

	return x
}

// mix adds src scaled by f into dst.
func mix(dst, src []float64, f float64) []float64 {
	for i := range dst {
		dst[i] += src[i] * f
	}

	return dst
}

func bandPassed(r Recipe, x []float64, sampleRate float64) ([]float64, error) {
	return filters.BandPass(x, r.Band.Low, r.Band.High, sampleRate)
}

func buildBird(_ Recipe, n int, _ float64, rng *rand.Rand) ([]float64, error) {
	return noise.Integrated(n, rng), nil
}

func buildWind(r Recipe, n int, sampleRate float64, rng *rand.Rand) ([]float64, error) {
	x, err := bandPassed(r, noise.White(n, rng), sampleRate)
	if err != nil {
		return nil, err
	}

	for i, v := range gustEnvelope(n, sampleRate) {
		x[i] *= v
	}

	return x, nil
}

// gustEnvelope is a slow sine LFO swinging between 0.6 and 1.0, sampled at
// t_i = i·duration/(n-1) so the first sample sits at phase zero and the last
// lands exactly at the loop duration.
func gustEnvelope(n int, sampleRate float64) []float64 {
	env := make([]float64, n)

	rate := sampleRate
	if n > 1 {
		rate = sampleRate * float64(n-1) / float64(n)
	}

	lfo := shape.New(conv.ToVec(phasor.New(1/windPeriod, rate, 0.0)), 1, mult.New(2*math.Pi))

	for i, phase := range events.Phases(lfo, n) {
		env[i] = (math.Sin(phase)+1)/2*0.4 + 0.6
	}

	return env
}

func buildRain(r Recipe, n int, sampleRate float64, rng *rand.Rand) ([]float64, error) {
	x := scale(noise.PinkLike(n, rng), 0.5)
	mix(x, noise.White(n, rng), 0.05)

	events.Inject(x, r.Events, rng)

	return bandPassed(r, x, sampleRate)
}

func buildFire(r Recipe, n int, sampleRate float64, rng *rand.Rand) ([]float64, error) {
	x := scale(noise.Integrated(n, rng), 0.2)

	low, err := bandPassed(r, noise.White(n, rng), sampleRate)
	if err != nil {
		return nil, err
	}

	mix(x, low, 0.4)

	return events.Inject(x, r.Events, rng), nil
}

func buildCafe(r Recipe, n int, sampleRate float64, rng *rand.Rand) ([]float64, error) {
	x, err := bandPassed(r, noise.White(n, rng), sampleRate)
	if err != nil {
		return nil, err
	}

	scale(x, 0.4)

	return events.Inject(x, r.Events, rng), nil
}
