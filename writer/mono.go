package writer

import "fmt"

// MonoOptions controls WriteMono.
type MonoOptions struct {
	// SampleRate of the samples passed in.
	SampleRate float64
	// OutputSampleRate of the file; zero or equal to SampleRate writes
	// without conversion.
	OutputSampleRate float64
	SrConvQuality    int
	FrameSize        int
}

// WriteMono writes a single-channel float64 buffer to filePath in blocks of
// FrameSize samples and returns the number of frames in the file.
func WriteMono(filePath string, format FileFormat, samples []float64, opt MonoOptions) (frames int64, err error) {
	frameSize := opt.FrameSize
	if frameSize <= 0 {
		frameSize = DefaultFrameSize
	}

	outRate := opt.OutputSampleRate
	if outRate <= 0 {
		outRate = opt.SampleRate
	}

	wr, err := NewWithOptions(filePath, format, 1, outRate, Options{
		InputConverter:    NewTypeConverter[float64](frameSize, 1),
		ConvertSampleRate: outRate != opt.SampleRate,
		SrConvQuality:     opt.SrConvQuality,
		InputSampleRate:   opt.SampleRate,
	})
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", filePath, err)
	}

	defer func() {
		frames = wr.Frames()
		if closeErr := wr.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", filePath, closeErr)
		}
	}()

	if len(samples) == 0 {
		return 0, nil
	}

	for start := 0; start < len(samples); start += frameSize {
		end := min(start+frameSize, len(samples))

		if err = wr.Write(samples[start:end], end == len(samples)); err != nil {
			return 0, fmt.Errorf("write %s: %w", filePath, err)
		}
	}

	return wr.Frames(), nil
}
