// Package loops renders the recipe table and writes every loop to disk.
package loops

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/almerlucke/ambience/dsp/loop"
	"github.com/almerlucke/ambience/recipe"
	"github.com/almerlucke/ambience/writer"
	"github.com/dh1tw/gosamplerate"
)

// Options configures a generation run.
type Options struct {
	OutDir string
	Format writer.FileFormat
	// Seed is the base seed; 0 picks one from the clock.
	Seed int64
	// SampleRate of the written files, recipe.SampleRate when zero.
	SampleRate int
	// Fade is the loop crossfade in samples, loop.DefaultFade when zero.
	Fade     int
	Parallel bool
}

// Result describes one written loop.
type Result struct {
	Name   string
	Path   string
	Frames int64
}

// Generate renders recipes and writes each to OutDir, creating it when
// absent. The first failure aborts the run; files written before it stay.
func Generate(ctx context.Context, opt Options, recipes []recipe.Recipe) ([]Result, error) {
	if err := os.MkdirAll(opt.OutDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	seed := opt.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("rendering %d loops with seed %d", len(recipes), seed)

	fade := opt.Fade
	if fade == 0 {
		fade = loop.DefaultFade
	}

	outRate := float64(opt.SampleRate)
	if outRate <= 0 {
		outRate = recipe.SampleRate
	}

	write := func(r recipe.Recipe, buf []float64) (Result, error) {
		path := filepath.Join(opt.OutDir, r.Name+"."+opt.Format.Extension())

		frames, err := writer.WriteMono(path, opt.Format, buf, writer.MonoOptions{
			SampleRate:       recipe.SampleRate,
			OutputSampleRate: outRate,
			SrConvQuality:    gosamplerate.SRC_SINC_BEST_QUALITY,
		})
		if err != nil {
			return Result{}, err
		}

		log.Printf("wrote %s (%d frames @ %g Hz)", path, frames, outRate)

		return Result{Name: r.Name, Path: path, Frames: frames}, nil
	}

	results := make([]Result, 0, len(recipes))

	if opt.Parallel {
		bufs, err := RenderAll(ctx, recipes, seed, fade)
		if err != nil {
			return nil, err
		}

		for i, r := range recipes {
			res, err := write(r, bufs[i])
			if err != nil {
				return results, err
			}
			results = append(results, res)
		}

		return results, nil
	}

	for _, r := range recipes {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		buf, err := Render(r, seed, fade)
		if err != nil {
			return results, err
		}

		res, err := write(r, buf)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	return results, nil
}

// Render renders one full-length loop with the recipe's own random stream.
func Render(r recipe.Recipe, seed int64, fade int) ([]float64, error) {
	rng := rand.New(rand.NewSource(recipe.SeedFor(seed, r.Name)))

	return r.Render(recipe.Length, recipe.SampleRate, fade, rng)
}

// RenderAll renders every recipe concurrently. Each recipe owns its random
// stream, so the buffers match a sequential render sample for sample.
func RenderAll(ctx context.Context, recipes []recipe.Recipe, seed int64, fade int) ([][]float64, error) {
	bufs := make([][]float64, len(recipes))
	errs := make([]error, len(recipes))

	var wg sync.WaitGroup

	for i, r := range recipes {
		wg.Add(1)
		go func(i int, r recipe.Recipe) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}

			bufs[i], errs[i] = Render(r, seed, fade)
		}(i, r)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return bufs, nil
}
