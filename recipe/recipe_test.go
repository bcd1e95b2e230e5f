package recipe

import (
	"math"
	"math/rand"
	"testing"

	"github.com/almerlucke/ambience/dsp/gain"
	"github.com/almerlucke/ambience/dsp/loop"
	"github.com/almerlucke/ambience/dsp/windows"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, r Recipe, n int, seed int64) []float64 {
	t.Helper()

	x, err := r.Render(n, SampleRate, loop.DefaultFade, rand.New(rand.NewSource(SeedFor(seed, r.Name))))
	require.NoError(t, err)

	return x
}

func TestLength(t *testing.T) {
	assert.Equal(t, 661500, Length)
}

func TestRecipesFullLengthAndBounded(t *testing.T) {
	if testing.Short() {
		t.Skip("renders full 15s loops")
	}

	for _, r := range All {
		t.Run(r.Name, func(t *testing.T) {
			x := render(t, r, Length, 1)
			require.Len(t, x, Length)

			for i, v := range x {
				require.False(t, math.IsNaN(v), "sample %d is NaN", i)
				require.LessOrEqual(t, math.Abs(v), 1.0, "sample %d", i)
			}

			// clipping only ever shaves a little off the target level
			assert.InDelta(t, r.TargetDB, gain.DBFS(gain.RMS(x)), 1.0)
		})
	}
}

func TestRecipesDeterministic(t *testing.T) {
	for _, r := range All {
		t.Run(r.Name, func(t *testing.T) {
			a := render(t, r, SampleRate, 99)
			b := render(t, r, SampleRate, 99)
			assert.Equal(t, a, b)

			c := render(t, r, SampleRate, 100)
			assert.NotEqual(t, a, c)
		})
	}
}

func TestRecipesShortBuffers(t *testing.T) {
	// buffers shorter than an event or the fade still render
	for _, r := range All {
		t.Run(r.Name, func(t *testing.T) {
			x := render(t, r, 300, 5)
			assert.Len(t, x, 300)
		})
	}
}

func TestLookup(t *testing.T) {
	r, err := Lookup("rain")
	require.NoError(t, err)
	assert.Equal(t, 600, r.Events.Count)
	assert.Equal(t, 400, r.Events.Length)
	assert.Equal(t, Band{Low: 500, High: 7000}, r.Band)

	_, err = Lookup("thunder")
	assert.ErrorIs(t, err, ErrUnknownRecipe)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"bird", "wind", "rain", "fire", "cafe"}, Names())
}

func TestSeedForIndependentStreams(t *testing.T) {
	seen := map[int64]string{}
	for _, name := range Names() {
		s := SeedFor(1, name)
		_, dup := seen[s]
		assert.False(t, dup, "seed collision for %s", name)
		seen[s] = name
	}

	assert.Equal(t, SeedFor(7, "bird"), SeedFor(7, "bird"))
	assert.NotEqual(t, SeedFor(7, "bird"), SeedFor(8, "bird"))
}

func TestGustEnvelopeRange(t *testing.T) {
	env := gustEnvelope(SampleRate*Duration, SampleRate)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range env {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	assert.GreaterOrEqual(t, lo, 0.6-1e-9)
	assert.LessOrEqual(t, hi, 1.0+1e-9)
	// 15s of a 12s period covers a full swing
	assert.InDelta(t, 0.6, lo, 0.01)
	assert.InDelta(t, 1.0, hi, 0.01)
}

func TestGustEnvelopeMatchesFormula(t *testing.T) {
	n := SampleRate * Duration
	env := gustEnvelope(n, SampleRate)
	require.Len(t, env, n)

	want := func(i int) float64 {
		ti := float64(i) * Duration / float64(n-1)
		return (math.Sin(2*math.Pi*ti/windPeriod)+1)/2*0.4 + 0.6
	}

	assert.InDelta(t, 0.8, env[0], 1e-12)
	assert.InDelta(t, 1.0, env[n-1], 1e-9)
	for _, i := range []int{1, 1000, n / 3, n / 2, n - 2} {
		assert.InDelta(t, want(i), env[i], 1e-9, "i=%d", i)
	}
}

func TestEventRecipesTaperWithHann(t *testing.T) {
	for _, r := range All {
		if r.Events.Count == 0 {
			continue
		}

		require.NotNil(t, r.Events.Window, r.Name)
		assert.Equal(t, windows.Hann(r.Events.Length), r.Events.Window(r.Events.Length), r.Name)
	}
}
