// Package ambience reads rendered ambience loops back from disk and reports
// how well they loop.
package ambience

import (
	"fmt"
	"math"

	"github.com/almerlucke/ambience/dsp/gain"
	"github.com/almerlucke/ambience/dsp/loop"
	"github.com/mkb218/gosndfile/sndfile"
)

// SoundFile contains sound file deinterleaved samples
type SoundFile struct {
	// Deinterleaved channels
	channels [][]float64
	// Sample rate
	sampleRate float64
	// Number of frames
	numFrames int64
	// Duration in seconds
	duration float64
}

// NewSoundFile load sound file from disk
func NewSoundFile(filePath string) (*SoundFile, error) {
	info := sndfile.Info{}

	file, err := sndfile.Open(filePath, sndfile.Read, &info)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filePath, err)
	}

	defer func() {
		_ = file.Close()
	}()

	numChannels := int64(info.Channels)

	// One backing buffer split into info.Channels parts
	fileBuffer := make([]float64, numChannels*info.Frames)

	channels := make([][]float64, numChannels)
	for i := int64(0); i < numChannels; i++ {
		channels[i] = fileBuffer[i*info.Frames : (i+1)*info.Frames]
	}

	// Deinterleave in blocks
	samples := make([]float64, 2048*numChannels)
	frameIndex := int64(0)

	for frameIndex < info.Frames {
		framesRead, err := file.ReadFrames(samples)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", filePath, err)
		}

		if framesRead == 0 {
			break
		}

		for i := int64(0); i < framesRead; i++ {
			for j := int64(0); j < numChannels; j++ {
				channels[j][frameIndex+i] = samples[i*numChannels+j]
			}
		}

		frameIndex += framesRead
	}

	return &SoundFile{
		channels:   channels,
		sampleRate: float64(info.Samplerate),
		numFrames:  info.Frames,
		duration:   float64(info.Frames) / float64(info.Samplerate),
	}, nil
}

// NewSoundFileFromBuffer wraps an in-memory mono buffer.
func NewSoundFileFromBuffer(buf []float64, sampleRate float64) *SoundFile {
	return &SoundFile{
		channels:   [][]float64{buf},
		sampleRate: sampleRate,
		numFrames:  int64(len(buf)),
		duration:   float64(len(buf)) / sampleRate,
	}
}

func (sf *SoundFile) NumChannels() int {
	return len(sf.channels)
}

func (sf *SoundFile) SampleRate() float64 {
	return sf.sampleRate
}

func (sf *SoundFile) NumFrames() int64 {
	return sf.numFrames
}

func (sf *SoundFile) Duration() float64 {
	return sf.duration
}

func (sf *SoundFile) Buffer(channel int) []float64 {
	return sf.channels[channel]
}

// Stats summarizes a loop's level and seam.
type Stats struct {
	Frames   int64
	Duration float64
	RMSDB    float64
	Peak     float64
	// SeamJump is the largest step across the loop boundary over all
	// channels, last frame to first frame.
	SeamJump float64
	// MaxStep is the largest step between neighbouring frames inside the
	// loop; a seam jump well above it is audible as a click.
	MaxStep float64
}

// Stats measures level and seam continuity over all channels.
func (sf *SoundFile) Stats() Stats {
	st := Stats{
		Frames:   sf.numFrames,
		Duration: sf.duration,
		RMSDB:    math.Inf(-1),
	}

	for _, ch := range sf.channels {
		st.RMSDB = math.Max(st.RMSDB, gain.DBFS(gain.RMS(ch)))
		st.Peak = math.Max(st.Peak, gain.Peak(ch))

		if len(ch) < 2 {
			continue
		}

		st.SeamJump = math.Max(st.SeamJump, loop.SeamJump(ch))

		for i := 1; i < len(ch); i++ {
			st.MaxStep = math.Max(st.MaxStep, math.Abs(ch[i]-ch[i-1]))
		}
	}

	return st
}

func (st Stats) String() string {
	return fmt.Sprintf("%d frames (%.2fs) rms %.1f dBFS peak %.3f seam %.4f (max step %.4f)",
		st.Frames, st.Duration, st.RMSDB, st.Peak, st.SeamJump, st.MaxStep)
}
