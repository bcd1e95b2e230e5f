package filters

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
)

// Section is one biquad stage: B are the numerator taps, A the denominator
// taps with A[0] == 1.
type Section struct {
	B [3]float64
	A [3]float64
}

// SOS is a cascade of biquad sections applied in order.
type SOS []Section

// Butterworth designs a digital Butterworth band-pass filter with the given
// prototype order. The resulting filter has 2*order poles arranged as order
// biquad sections, unity gain at the band center.
func Butterworth(order int, low, high, sampleRate float64) (SOS, error) {
	if order < 1 {
		return nil, ErrInvalidOrder
	}

	if !(low > 0 && low < high && high < sampleRate/2) {
		return nil, fmt.Errorf("%w: low=%g high=%g sampleRate=%g", ErrInvalidBand, low, high, sampleRate)
	}

	// Prewarp band edges for the bilinear transform, with fs normalized to 2
	// so that the transform reads z = (4+s)/(4-s).
	const fs2 = 4.0
	wl := fs2 * math.Tan(math.Pi*low/sampleRate)
	wh := fs2 * math.Tan(math.Pi*high/sampleRate)
	bw := wh - wl
	w0 := math.Sqrt(wl * wh)

	poles := make([]complex128, 0, 2*order)

	for k := 1; k <= order; k++ {
		theta := math.Pi * float64(2*k+order-1) / float64(2*order)
		p := cmplx.Exp(complex(0, theta)) * complex(bw/2, 0)
		if math.Abs(imag(p)) < 1e-12*bw {
			p = complex(real(p), 0)
		}
		d := cmplx.Sqrt(p*p - complex(w0*w0, 0))

		for _, s := range []complex128{p + d, p - d} {
			poles = append(poles, (fs2+s)/(fs2-s))
		}
	}

	upper := make([]complex128, 0, order)
	for _, z := range poles {
		if imag(z) > 0 {
			upper = append(upper, z)
		}
	}

	if len(upper) != order {
		// Odd orders keep one real prototype pole; once the bandwidth exceeds
		// twice the center it splits into two real poles with no partner.
		return nil, fmt.Errorf("%w: odd order %d with bandwidth above twice the center leaves unpaired real poles (low=%g high=%g)", ErrInvalidBand, order, low, high)
	}

	// Sections with poles closest to the unit circle go last.
	sort.Slice(upper, func(i, j int) bool {
		return cmplx.Abs(upper[i]) < cmplx.Abs(upper[j])
	})

	sos := make(SOS, order)
	for i, z := range upper {
		sos[i] = Section{
			B: [3]float64{1, 0, -1},
			A: [3]float64{1, -2 * real(z), real(z)*real(z) + imag(z)*imag(z)},
		}
	}

	center := 2 * math.Atan(w0/fs2)
	g := 1 / cmplx.Abs(sos.Response(center))

	sos[0].B[0] *= g
	sos[0].B[2] *= g

	return sos, nil
}

// Response evaluates the complex frequency response of the cascade at
// omega radians per sample.
func (sos SOS) Response(omega float64) complex128 {
	zi := cmplx.Exp(complex(0, -omega))
	zi2 := zi * zi
	h := complex(1, 0)

	for _, s := range sos {
		num := complex(s.B[0], 0) + complex(s.B[1], 0)*zi + complex(s.B[2], 0)*zi2
		den := complex(s.A[0], 0) + complex(s.A[1], 0)*zi + complex(s.A[2], 0)*zi2
		h *= num / den
	}

	return h
}

// Filter runs x through every section in a single causal forward pass,
// starting from rest, and returns a new buffer.
func (sos SOS) Filter(x []float64) []float64 {
	y := make([]float64, len(x))
	copy(y, x)

	for _, s := range sos {
		var z1, z2 float64
		for n, in := range y {
			out := s.B[0]*in + z1
			z1 = s.B[1]*in - s.A[1]*out + z2
			z2 = s.B[2]*in - s.A[2]*out
			y[n] = out
		}
	}

	return y
}

// BandPass restricts x to [low, high] Hz with a 4th-order Butterworth
// band-pass.
func BandPass(x []float64, low, high, sampleRate float64) ([]float64, error) {
	sos, err := Butterworth(4, low, high, sampleRate)
	if err != nil {
		return nil, err
	}

	return sos.Filter(x), nil
}
