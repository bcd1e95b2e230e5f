package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/almerlucke/ambience/dsp/loop"
	"github.com/almerlucke/ambience/recipe"
	"github.com/almerlucke/ambience/writer"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	OutDir     string
	Seed       int64  // 0 seeds from the clock
	Format     string // wav, aifc or pcm16
	SampleRate int    // output sample rate, converted when not 44100
	Fade       int    // loop crossfade in samples
	Parallel   bool   // render recipes concurrently
	Verify     bool   // reload written files and log loop stats
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		OutDir:     envStr("LOOPS_OUT_DIR", "assets/loops"),
		Seed:       envInt64("LOOPS_SEED", 0),
		Format:     envStr("LOOPS_FORMAT", "wav"),
		SampleRate: envInt("LOOPS_SAMPLE_RATE", recipe.SampleRate),
		Fade:       envInt("LOOPS_FADE", loop.DefaultFade),
		Parallel:   envBool("LOOPS_PARALLEL", false),
		Verify:     envBool("LOOPS_VERIFY", false),
	}
}

// Validate checks the values Load and flag parsing cannot.
func (c Config) Validate() error {
	if c.OutDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}

	if _, err := writer.ParseFormat(c.Format); err != nil {
		return err
	}

	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}

	if c.Fade < 0 {
		return fmt.Errorf("fade must not be negative, got %d", c.Fade)
	}

	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
