// Package backend defines the sink a writer streams interleaved float32
// samples into.
package backend

// Backend encodes interleaved float32 samples into a file format.
type Backend interface {
	// Write appends interleaved samples.
	Write([]float32) error
	// Frames reports the number of sample frames written so far.
	Frames() int64
	// Close finalizes headers and closes the underlying file.
	Close() error
}
