// Package writer streams synthesized buffers into audio files, optionally
// converting the sample rate on the way.
package writer

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/almerlucke/ambience/writer/backend"
	"github.com/almerlucke/ambience/writer/backend/aifc"
	"github.com/almerlucke/ambience/writer/backend/pcm16"
	"github.com/almerlucke/ambience/writer/backend/wav"
	"github.com/dh1tw/gosamplerate"
)

type FileFormat int

const (
	AIFC FileFormat = iota
	WAV
	PCM16
)

const (
	DefaultFrameSize = 8192

	// srLatencyMargin is the extra converter output room in frames.
	srLatencyMargin = 1024
	// maxDrainPasses bounds the end-of-input flush of the converter.
	maxDrainPasses = 64
)

var (
	ErrNilConverter  = errors.New("input converter option should not be nil")
	ErrUnknownFormat = errors.New("unknown file format")
)

// ParseFormat maps a format name (wav, aifc, pcm16) to a FileFormat.
func ParseFormat(name string) (FileFormat, error) {
	switch strings.ToLower(name) {
	case "wav":
		return WAV, nil
	case "aifc", "aiff":
		return AIFC, nil
	case "pcm16":
		return PCM16, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

func (f FileFormat) String() string {
	switch f {
	case AIFC:
		return "aifc"
	case WAV:
		return "wav"
	case PCM16:
		return "pcm16"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Extension returns the file extension, without dot, for the format.
func (f FileFormat) Extension() string {
	if f == AIFC {
		return "aifc"
	}

	return "wav"
}

type Options struct {
	InputConverter    InputConverter
	ConvertSampleRate bool
	SrConvQuality     int
	InputSampleRate   float64
}

type Writer struct {
	opt         Options
	srConv      gosamplerate.Src
	backend     backend.Backend
	numChannels int
	srRatio     float64
}

func NewWithOptions(filePath string, fileFormat FileFormat, numChannels int, sampleRate float64, opt Options) (*Writer, error) {
	if opt.InputConverter == nil {
		return nil, ErrNilConverter
	}

	var be backend.Backend
	var err error

	switch fileFormat {
	case AIFC:
		be, err = aifc.New(filePath, numChannels, sampleRate)
	case WAV:
		be, err = wav.New(filePath, numChannels, sampleRate)
	case PCM16:
		be, err = pcm16.New(filePath, numChannels, sampleRate)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, fileFormat)
	}

	if err != nil {
		return nil, err
	}

	w, err := NewWithBackend(be, numChannels, sampleRate, opt)
	if err != nil {
		_ = be.Close()
		return nil, err
	}

	return w, nil
}

func NewWithBackend(be backend.Backend, numChannels int, sampleRate float64, opt Options) (*Writer, error) {
	w := &Writer{
		opt:         opt,
		numChannels: numChannels,
		backend:     be,
	}

	if opt.InputConverter == nil {
		return nil, ErrNilConverter
	}

	if opt.ConvertSampleRate {
		if opt.InputSampleRate <= 0 {
			return nil, fmt.Errorf("invalid input sample rate %g", opt.InputSampleRate)
		}

		frameSize := DefaultFrameSize

		if opt.InputConverter.FrameSize() != 0 {
			frameSize = opt.InputConverter.FrameSize()
		}

		w.srRatio = sampleRate / opt.InputSampleRate

		// Room for one upsampled block plus converter latency.
		outLen := int(math.Ceil(float64(frameSize)*math.Max(w.srRatio, 1))+srLatencyMargin) * numChannels

		srConv, err := gosamplerate.New(opt.SrConvQuality, numChannels, outLen)
		if err != nil {
			return nil, err
		}

		w.srConv = srConv

		err = w.srConv.SetRatio(w.srRatio)
		if err != nil {
			_ = gosamplerate.Delete(w.srConv)
			return nil, err
		}
	}

	return w, nil
}

// Write converts input and hands it to the backend. With sample-rate
// conversion enabled, endOfInput drains the converter until it has no frames
// left.
func (wr *Writer) Write(input any, endOfInput bool) error {
	var err error

	output := wr.opt.InputConverter.Convert(input)

	if !wr.opt.ConvertSampleRate {
		return wr.emit(output)
	}

	output, err = wr.srConv.Process(output, wr.srRatio, endOfInput)
	if err != nil {
		return err
	}

	if err = wr.emit(output); err != nil {
		return err
	}

	if !endOfInput {
		return nil
	}

	for i := 0; i < maxDrainPasses; i++ {
		output, err = wr.srConv.Process([]float32{}, wr.srRatio, true)
		if err != nil {
			return err
		}

		if len(output) == 0 {
			break
		}

		if err = wr.emit(output); err != nil {
			return err
		}
	}

	return nil
}

func (wr *Writer) emit(output []float32) error {
	if len(output) == 0 {
		return nil
	}

	return wr.backend.Write(output)
}

// Frames reports the number of frames the backend has written.
func (wr *Writer) Frames() int64 {
	return wr.backend.Frames()
}

func (wr *Writer) Close() error {
	var errs []error

	if wr.opt.ConvertSampleRate {
		if err := gosamplerate.Delete(wr.srConv); err != nil {
			errs = append(errs, err)
		}
	}

	if err := wr.backend.Close(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
