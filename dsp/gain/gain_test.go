package gain

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noise(n int, amp float64) []float64 {
	rng := rand.New(rand.NewSource(11))
	x := make([]float64, n)
	for i := range x {
		x[i] = rng.NormFloat64() * amp
	}
	return x
}

func TestDBFS(t *testing.T) {
	assert.InDelta(t, 0.0, DBFS(1), 1e-6)
	assert.InDelta(t, -20.0, DBFS(0.1), 1e-6)
	assert.InDelta(t, -6.0206, DBFS(0.5), 1e-4)
}

func TestRMSOfSine(t *testing.T) {
	x := make([]float64, 44100)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 441 * float64(i) / 44100)
	}
	assert.InDelta(t, 1/math.Sqrt2, RMS(x), 1e-6)
}

func TestNormalizeHitsTarget(t *testing.T) {
	for _, target := range []float64{-12, -18, -20} {
		x := noise(44100, 0.01)
		Normalize(x, target)
		assert.InDelta(t, target, DBFS(RMS(x)), 0.05, "target %v", target)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	x := noise(44100, 3)
	Normalize(x, -18)
	first := RMS(x)

	g := Normalize(x, -18)
	assert.InDelta(t, 1.0, g, 1e-3)
	assert.InDelta(t, first, RMS(x), first*1e-3)
}

func TestNormalizeClips(t *testing.T) {
	x := noise(10000, 1)
	Normalize(x, 0)

	for i, v := range x {
		require.LessOrEqual(t, math.Abs(v), 1.0, "sample %d", i)
	}
	assert.Equal(t, 1.0, Peak(x))
}

func TestNormalizeSilence(t *testing.T) {
	x := make([]float64, 1000)
	g := Normalize(x, -18)

	assert.False(t, math.IsInf(g, 0) || math.IsNaN(g))
	for _, v := range x {
		assert.Zero(t, v)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	assert.NotPanics(t, func() { Normalize(nil, -18) })
}
