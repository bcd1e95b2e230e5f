package writer

// InputConverter convert any buffer input type to a float32 buffer output
type InputConverter interface {
	Convert(any) []float32
	FrameSize() int
}

type float interface {
	float32 | float64
}

// TypeConverter convert any interleaved float buffer (i.e. float64) to []float32
type TypeConverter[T float] struct {
	buffer    []float32
	frameSize int
}

func NewTypeConverter[T float](frameSize int, numChannels int) *TypeConverter[T] {
	return &TypeConverter[T]{
		buffer:    make([]float32, frameSize*numChannels),
		frameSize: frameSize,
	}
}

// Convert narrows input to float32. Inputs longer than the converter's
// capacity grow its buffer.
func (c *TypeConverter[T]) Convert(input any) []float32 {
	samples := input.([]T)
	if len(samples) > cap(c.buffer) {
		c.buffer = make([]float32, len(samples))
	}

	out := c.buffer[:len(samples)]
	for index, samp := range samples {
		out[index] = float32(samp)
	}

	return out
}

func (c *TypeConverter[T]) FrameSize() int {
	return c.frameSize
}
