package noise

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generator func(int, *rand.Rand) []float64

var generators = map[string]generator{
	"white":      White,
	"integrated": Integrated,
	"pink":       PinkLike,
}

func TestGeneratorsLengthAndFinite(t *testing.T) {
	for name, gen := range generators {
		t.Run(name, func(t *testing.T) {
			x := gen(44100, rand.New(rand.NewSource(1)))
			require.Len(t, x, 44100)

			for i, v := range x {
				require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "sample %d = %v", i, v)
			}
		})
	}
}

func TestGeneratorsEmpty(t *testing.T) {
	for name, gen := range generators {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, gen(0, rand.New(rand.NewSource(1))))
		})
	}
}

func TestGeneratorsDeterministic(t *testing.T) {
	for name, gen := range generators {
		t.Run(name, func(t *testing.T) {
			a := gen(2048, rand.New(rand.NewSource(42)))
			b := gen(2048, rand.New(rand.NewSource(42)))
			assert.Equal(t, a, b)
		})
	}
}

func TestIntegratedPeakNormalized(t *testing.T) {
	x := Integrated(10000, rand.New(rand.NewSource(7)))
	assert.InDelta(t, 1.0, peakAbs(x), 1e-12)
}

func TestPinkLikeBounded(t *testing.T) {
	x := PinkLike(10000, rand.New(rand.NewSource(7)))
	peak := peakAbs(x)
	assert.LessOrEqual(t, peak, 1.0)
	assert.InDelta(t, 1.0, peak, 1e-6)
}

func TestIntegratedIsSmoother(t *testing.T) {
	// A random walk has far smaller sample-to-sample steps than white noise.
	w := White(10000, rand.New(rand.NewSource(3)))
	b := Integrated(10000, rand.New(rand.NewSource(3)))

	step := func(x []float64) float64 {
		s := 0.0
		for i := 1; i < len(x); i++ {
			s += math.Abs(x[i] - x[i-1])
		}
		return s / float64(len(x)-1)
	}

	assert.Less(t, step(b), step(w)/10)
}
