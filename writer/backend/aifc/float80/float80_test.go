package float80

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownSampleRates(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{44100, "400eac44000000000000"},
		{48000, "400ebb80000000000000"},
		{22050, "400dac44000000000000"},
		{1, "3fff8000000000000000"},
		{0, "00000000000000000000"},
		{-2, "c0008000000000000000"},
	}

	for _, tt := range tests {
		f := NewFromFloat64(tt.rate)
		assert.Equal(t, tt.want, f.String(), "rate %v", tt.rate)
		assert.Equal(t, tt.rate, f.Float64(), "round trip %v", tt.rate)
	}
}

func TestFraction(t *testing.T) {
	assert.Equal(t, 0.15625, NewFromFloat64(0.15625).Float64())
}
