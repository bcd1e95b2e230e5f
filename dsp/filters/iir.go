// Package filters implements the IIR filters used to color noise: a general
// direct-form filter and Butterworth band-pass designs in second-order
// sections.
package filters

import "errors"

var (
	// ErrInvalidBand is returned when band edges do not satisfy 0 < low < high < nyquist.
	ErrInvalidBand = errors.New("filters: band edges must satisfy 0 < low < high < sampleRate/2")
	// ErrInvalidOrder is returned for a filter order below 1.
	ErrInvalidOrder = errors.New("filters: order must be at least 1")
	// ErrInvalidCoefficients is returned when the leading denominator coefficient is zero.
	ErrInvalidCoefficients = errors.New("filters: a[0] must be non-zero")
)

// LFilter filters x with the rational transfer function b(z)/a(z) in
// direct form II transposed, starting from rest. Coefficients are
// normalized by a[0]. A new buffer is returned.
func LFilter(b, a, x []float64) ([]float64, error) {
	if len(a) == 0 || a[0] == 0 {
		return nil, ErrInvalidCoefficients
	}

	order := len(a)
	if len(b) > order {
		order = len(b)
	}

	nb := make([]float64, order)
	na := make([]float64, order)

	for i, v := range b {
		nb[i] = v / a[0]
	}

	for i, v := range a {
		na[i] = v / a[0]
	}

	// z holds order-1 delay states
	z := make([]float64, order)
	y := make([]float64, len(x))

	for n, in := range x {
		out := nb[0]*in + z[0]
		for k := 1; k < order; k++ {
			z[k-1] = nb[k]*in - na[k]*out + z[k]
		}
		y[n] = out
	}

	return y, nil
}
