// Package recipe holds the fixed table of ambience loop recipes and renders
// them into sample buffers. Rendering is pure: a recipe, a length and a
// random stream fully determine the output.
package recipe

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/almerlucke/ambience/dsp/events"
	"github.com/almerlucke/ambience/dsp/gain"
	"github.com/almerlucke/ambience/dsp/loop"
	"github.com/almerlucke/ambience/dsp/windows"
)

const (
	// SampleRate is the synthesis rate of every loop.
	SampleRate = 44100
	// Duration is the loop length in seconds.
	Duration = 15
	// Length is the number of samples in a rendered loop.
	Length = SampleRate * Duration
)

// ErrUnknownRecipe is returned by Lookup for names not in the table.
var ErrUnknownRecipe = errors.New("unknown recipe")

// Band is a band-pass range in Hz.
type Band struct {
	Low  float64
	High float64
}

// Recipe describes how one ambience loop is built.
type Recipe struct {
	Name     string
	TargetDB float64
	// Band is the band-pass applied by the recipe, zero when unfiltered.
	Band   Band
	Events events.Spec

	build func(r Recipe, n int, sampleRate float64, rng *rand.Rand) ([]float64, error)
}

// All lists every recipe in render order.
var All = []Recipe{
	{
		Name:     "bird",
		TargetDB: -18,
		build:    buildBird,
	},
	{
		Name:     "wind",
		TargetDB: -20,
		Band:     Band{Low: 100, High: 1000},
		build:    buildWind,
	},
	{
		Name:     "rain",
		TargetDB: -18,
		Band:     Band{Low: 500, High: 7000},
		Events:   events.Spec{Count: 600, Length: 400, Shape: events.Drop, Window: windows.Hann, Amplitude: 0.4},
		build:    buildRain,
	},
	{
		Name:     "fire",
		TargetDB: -18,
		Band:     Band{Low: 80, High: 400},
		Events:   events.Spec{Count: 500, Length: 200, Shape: events.Spark, Window: windows.Hann, Amplitude: 0.6},
		build:    buildFire,
	},
	{
		Name:     "cafe",
		TargetDB: -20,
		Band:     Band{Low: 200, High: 1500},
		Events:   events.Spec{Count: 120, Length: 1000, Shape: events.Ping, Window: windows.Hann, Amplitude: 0.1},
		build:    buildCafe,
	},
}

// Lookup returns the recipe with the given name.
func Lookup(name string) (Recipe, error) {
	for _, r := range All {
		if r.Name == name {
			return r, nil
		}
	}

	return Recipe{}, fmt.Errorf("%w: %q", ErrUnknownRecipe, name)
}

// Names returns the recipe names in render order.
func Names() []string {
	names := make([]string, len(All))
	for i, r := range All {
		names[i] = r.Name
	}

	return names
}

// SeedFor derives the random seed of a single recipe from a base seed so
// each recipe owns an independent stream regardless of render order.
func SeedFor(base int64, name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))

	return base ^ int64(h.Sum64())
}

// Render builds the loop buffer of n samples, crossfades the seam and
// normalizes it to the recipe's target level.
func (r Recipe) Render(n int, sampleRate float64, fade int, rng *rand.Rand) ([]float64, error) {
	if r.build == nil {
		return nil, fmt.Errorf("recipe %q has no builder", r.Name)
	}

	x, err := r.build(r, n, sampleRate, rng)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", r.Name, err)
	}

	loop.Crossfade(x, fade)
	gain.Normalize(x, r.TargetDB)

	return x, nil
}
