// Package loop prepares buffers for seamless repeat playback.
package loop

import "math"

// DefaultFade is the crossfade length in samples applied at the loop seam.
const DefaultFade = 1024

// Crossfade blends the first fade samples of x toward the last fade samples
// with a linear ramp, in place:
//
//	x[k] = x[k]*(1-w) + x[N-fade+k]*w,  w = k/(fade-1)
//
// Only the head is modified: x[0] keeps its value and x[fade-1] ends up
// equal to x[N-1], while the tail itself is left as is. fade is clamped to
// len(x)/2; a fade below 2 leaves x untouched.
func Crossfade(x []float64, fade int) []float64 {
	if fade > len(x)/2 {
		fade = len(x) / 2
	}

	if fade < 2 {
		return x
	}

	tail := len(x) - fade
	last := float64(fade - 1)

	for k := 0; k < fade; k++ {
		w := float64(k) / last
		x[k] = x[k]*(1-w) + x[tail+k]*w
	}

	return x
}

// SeamJump returns the absolute step between the last and first sample,
// the discontinuity heard when x repeats.
func SeamJump(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}

	return math.Abs(x[len(x)-1] - x[0])
}
