// Command makeloops renders the placeholder ambience loops (bird, wind,
// rain, fire, cafe) into an output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/almerlucke/ambience"
	"github.com/almerlucke/ambience/config"
	"github.com/almerlucke/ambience/loops"
	"github.com/almerlucke/ambience/recipe"
	"github.com/almerlucke/ambience/writer"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	cfg := config.Load()

	fs := flag.NewFlagSet("makeloops", flag.ContinueOnError)
	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "output directory")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "base random seed, 0 seeds from the clock")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format: wav, aifc or pcm16")
	fs.IntVar(&cfg.SampleRate, "rate", cfg.SampleRate, "output sample rate")
	fs.IntVar(&cfg.Fade, "fade", cfg.Fade, "loop crossfade length in samples, 0 for the default")
	fs.BoolVar(&cfg.Parallel, "parallel", cfg.Parallel, "render loops concurrently")
	fs.BoolVar(&cfg.Verify, "verify", cfg.Verify, "reload written loops and log their stats")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	format, _ := writer.ParseFormat(cfg.Format)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	results, err := loops.Generate(ctx, loops.Options{
		OutDir:     cfg.OutDir,
		Format:     format,
		Seed:       cfg.Seed,
		SampleRate: cfg.SampleRate,
		Fade:       cfg.Fade,
		Parallel:   cfg.Parallel,
	}, recipe.All)
	if err != nil {
		return fmt.Errorf("generate loops: %w", err)
	}

	if cfg.Verify {
		for _, res := range results {
			sf, err := ambience.NewSoundFile(res.Path)
			if err != nil {
				return fmt.Errorf("verify: %w", err)
			}
			log.Printf("%s: %v", res.Name, sf.Stats())
		}
	}

	log.Printf("Generated loops in %s/*.%s", cfg.OutDir, format.Extension())

	return nil
}
