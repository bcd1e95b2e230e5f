// Package noise generates the raw random signals the loop recipes are
// shaped from. Every generator draws from the caller's *rand.Rand so that
// a seeded stream reproduces its output exactly.
package noise

import (
	"math"
	"math/rand"

	"github.com/almerlucke/ambience/dsp/filters"
)

// Three-pole fit of a 1/f spectral tilt.
var (
	pinkB = []float64{0.049922035, -0.095993537, 0.050612699, -0.004408786}
	pinkA = []float64{1, -2.494956002, 2.017265875, -0.522189400}
)

const epsilon = 1e-9

// White returns n standard normal samples.
func White(n int, rng *rand.Rand) []float64 {
	if n <= 0 {
		return []float64{}
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = rng.NormFloat64()
	}

	return x
}

// Integrated returns a brown-ish random walk: the running sum of white
// noise scaled by 1/5, divided by its own peak so it spans [-1, 1].
func Integrated(n int, rng *rand.Rand) []float64 {
	x := White(n, rng)

	sum := 0.0
	for i, v := range x {
		sum += v / 5
		x[i] = sum
	}

	peak := peakAbs(x)
	if peak == 0 {
		return x
	}

	for i := range x {
		x[i] /= peak
	}

	return x
}

// PinkLike returns white noise tilted toward 1/f by a fixed IIR filter,
// peak normalized.
func PinkLike(n int, rng *rand.Rand) []float64 {
	y, err := filters.LFilter(pinkB, pinkA, White(n, rng))
	if err != nil {
		// coefficients are constant; a[0] is 1
		panic(err)
	}

	scale := peakAbs(y) + epsilon
	for i := range y {
		y[i] /= scale
	}

	return y
}

func peakAbs(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		m = math.Max(m, math.Abs(v))
	}

	return m
}
