// Package windows provides symmetric window functions used to taper short
// events.
package windows

import "math"

// Function is an alias type representing window functions.
type Function func(int) []float64

// Hann generates a Hann window of the requested size, zero at both ends.
// A window of length 1 is the single value 1.
// See https://en.wikipedia.org/wiki/Window_function#Hann_and_Hamming_windows
func Hann(L int) []float64 {
	if L <= 0 {
		return []float64{}
	}

	r := make([]float64, L)
	if L == 1 {
		r[0] = 1
		return r
	}

	LF := float64(L)

	for i := 0; i < L; i++ {
		r[i] = 0.5 - 0.5*math.Cos((2*math.Pi*float64(i))/(LF-1))
	}

	return r
}
