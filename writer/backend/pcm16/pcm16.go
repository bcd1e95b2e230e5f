// Package pcm16 writes 16-bit integer PCM WAVE files through the go-audio
// encoder, for players without float support.
package pcm16

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth      = 16
	pcmFormat     = 1
	fullScale     = 32767
	minSampleCode = -32768
)

type PCM16 struct {
	numChannels int
	sampleRate  int
	frames      int64
	file        *os.File
	enc         *wav.Encoder
	buf         *audio.IntBuffer
}

func New(filePath string, numChannels int, sampleRate float64) (*PCM16, error) {
	if numChannels < 1 {
		return nil, errors.New("pcm16: need at least one channel")
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}

	sr := int(sampleRate)

	return &PCM16{
		numChannels: numChannels,
		sampleRate:  sr,
		file:        file,
		enc:         wav.NewEncoder(file, sr, bitDepth, numChannels, pcmFormat),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{SampleRate: sr, NumChannels: numChannels},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// Quantize maps a float sample in [-1, 1] to a 16-bit code, clipping
// anything outside.
func Quantize(v float32) int {
	q := int(math.Round(float64(v) * fullScale))
	if q > fullScale {
		return fullScale
	}

	if q < minSampleCode {
		return minSampleCode
	}

	return q
}

func (p *PCM16) Write(items []float32) error {
	if cap(p.buf.Data) < len(items) {
		p.buf.Data = make([]int, len(items))
	}
	p.buf.Data = p.buf.Data[:len(items)]

	for i, item := range items {
		p.buf.Data[i] = Quantize(item)
	}

	if err := p.enc.Write(p.buf); err != nil {
		return fmt.Errorf("failed to write to WAV encoder: %w", err)
	}

	p.frames += int64(len(items) / p.numChannels)

	return nil
}

func (p *PCM16) Frames() int64 {
	return p.frames
}

func (p *PCM16) Close() error {
	var errs []error

	if err := p.enc.Close(); err != nil {
		errs = append(errs, err)
	}

	if err := p.file.Close(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
