// Package gain measures and sets buffer loudness in dBFS.
package gain

import "math"

const (
	powerFloor = 1e-12
	levelFloor = 1e-9
)

// RMS returns the root-mean-square level of x. The mean power is floored so
// silence measures as a tiny positive level instead of zero.
func RMS(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}

	mean := 0.0
	if len(x) > 0 {
		mean = sum / float64(len(x))
	}

	return math.Sqrt(mean + powerFloor)
}

// DBFS converts a linear level to decibels relative to full scale.
func DBFS(level float64) float64 {
	return 20 * math.Log10(level+levelFloor)
}

// Peak returns the largest absolute sample value of x.
func Peak(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		m = math.Max(m, math.Abs(v))
	}

	return m
}

// Normalize scales x in place so its RMS level sits at targetDB, then hard
// clips to [-1, 1]. It returns the applied linear gain.
func Normalize(x []float64, targetDB float64) float64 {
	g := math.Pow(10, (targetDB-DBFS(RMS(x)))/20)

	for i, v := range x {
		v *= g
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		x[i] = v
	}

	return g
}
