package wav

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFloatWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	w, err := New(path, 1, 44100)
	require.NoError(t, err)

	samples := []float32{0, 0.5, -0.5, 1, -1}
	require.NoError(t, w.Write(samples[:2]))
	require.NoError(t, w.Write(samples[2:]))
	assert.Equal(t, int64(5), w.Frames())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, HeaderSize+len(samples)*4)

	le := binary.LittleEndian
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, uint32(len(data)-8), le.Uint32(data[4:]))
	assert.Equal(t, "WAVE", string(data[8:12]))
	assert.Equal(t, "fmt ", string(data[12:16]))
	assert.Equal(t, uint16(3), le.Uint16(data[20:]), "IEEE float format tag")
	assert.Equal(t, uint16(1), le.Uint16(data[22:]))
	assert.Equal(t, uint32(44100), le.Uint32(data[24:]))
	assert.Equal(t, uint32(44100*4), le.Uint32(data[28:]))
	assert.Equal(t, uint16(4), le.Uint16(data[32:]))
	assert.Equal(t, uint16(32), le.Uint16(data[34:]))
	assert.Equal(t, "fact", string(data[38:42]))
	assert.Equal(t, uint32(5), le.Uint32(data[46:]))
	assert.Equal(t, "data", string(data[50:54]))
	assert.Equal(t, uint32(20), le.Uint32(data[54:]))

	for i, want := range samples {
		got := math.Float32frombits(le.Uint32(data[HeaderSize+i*4:]))
		assert.Equal(t, want, got, "sample %d", i)
	}
}

func TestStereoFrames(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "st.wav"), 2, 48000)
	require.NoError(t, err)
	require.NoError(t, w.Write(make([]float32, 10)))
	assert.Equal(t, int64(5), w.Frames())
	require.NoError(t, w.Close())
}

func TestNewErrors(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "x.wav"), 1, 44100)
	assert.Error(t, err)

	_, err = New(filepath.Join(t.TempDir(), "x.wav"), 0, 44100)
	assert.Error(t, err)
}
