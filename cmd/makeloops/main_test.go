package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRejectsInvalidConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "loops")

	tests := [][]string{
		{"-out", dir, "-format", "mp3"},
		{"-out", dir, "-rate", "0"},
		{"-out", dir, "-fade", "-1"},
		{"-nosuchflag"},
	}

	for _, args := range tests {
		assert.Error(t, run(args), "%v", args)
	}

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "nothing is written on a config error")
}

func TestRunWritesLoops(t *testing.T) {
	if testing.Short() {
		t.Skip("renders full 15s loops")
	}

	dir := filepath.Join(t.TempDir(), "loops")
	require.NoError(t, run([]string{"-out", dir, "-seed", "3", "-verify"}))

	for _, name := range []string{"bird", "wind", "rain", "fire", "cafe"} {
		_, err := os.Stat(filepath.Join(dir, name+".wav"))
		assert.NoError(t, err, name)
	}
}
