// Package float80 converts float64 values to the 80-bit IEEE 754 extended
// precision format AIFF uses for its sample rate field.
package float80

import (
	"encoding/binary"
	"encoding/hex"
	"math"
)

const bias = 16383

// Float80 is an 80-bit extended float: sign and 15-bit exponent, followed
// by a 64-bit mantissa with an explicit integer bit.
type Float80 struct {
	SignExp  uint16
	Mantissa uint64
}

// NewFromFloat64 converts f without loss of precision.
func NewFromFloat64(f float64) Float80 {
	var sign uint16
	if math.Signbit(f) {
		sign = 0x8000
		f = -f
	}

	switch {
	case f == 0:
		return Float80{SignExp: sign}
	case math.IsInf(f, 0):
		return Float80{SignExp: sign | 0x7FFF, Mantissa: 1 << 63}
	case math.IsNaN(f):
		return Float80{SignExp: 0x7FFF, Mantissa: 0xC000000000000000}
	}

	// f = frac * 2^exp with frac in [0.5, 1)
	frac, exp := math.Frexp(f)

	return Float80{
		SignExp:  sign | uint16(exp-1+bias),
		Mantissa: uint64(math.Ldexp(frac, 64)),
	}
}

// Float64 converts back, rounding the mantissa to 53 bits.
func (f Float80) Float64() float64 {
	exp := int(f.SignExp&0x7FFF) - bias
	v := math.Ldexp(float64(f.Mantissa), exp-63)

	if f.SignExp&0x8000 != 0 {
		v = -v
	}

	return v
}

// Bytes returns the big endian encoding.
func (f Float80) Bytes() [10]byte {
	var b [10]byte
	binary.BigEndian.PutUint16(b[0:], f.SignExp)
	binary.BigEndian.PutUint64(b[2:], f.Mantissa)

	return b
}

// String returns the encoding as lowercase hex.
func (f Float80) String() string {
	b := f.Bytes()

	return hex.EncodeToString(b[:])
}
