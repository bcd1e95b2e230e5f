// Package wav writes 32-bit IEEE float WAVE files.
package wav

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
)

const (
	formatIEEEFloat = 3
	bitsPerSample   = 32
	bytesPerSample  = bitsPerSample / 8

	// HeaderSize is the byte offset of the first sample.
	HeaderSize = 58
)

// header is the canonical RIFF layout for non-PCM data: an 18 byte fmt
// chunk with an empty extension followed by the mandatory fact chunk.
type header struct {
	RIFF          [4]byte
	RIFFSize      uint32
	WAVE          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	Format        uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	ExtSize       uint16
	Fact          [4]byte
	FactSize      uint32
	FactFrames    uint32
	Data          [4]byte
	DataSize      uint32
}

type Wav struct {
	numChannels  int
	sampleRate   int
	totalSamples int64
	file         *os.File
	w            *bufio.Writer
	scratch      []byte
}

func New(filePath string, numChannels int, sampleRate float64) (*Wav, error) {
	if numChannels < 1 {
		return nil, errors.New("wav: need at least one channel")
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}

	wav := &Wav{
		numChannels: numChannels,
		sampleRate:  int(sampleRate),
		file:        file,
		w:           bufio.NewWriter(file),
	}

	err = binary.Write(wav.w, binary.LittleEndian, wav.header())
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	return wav, nil
}

func (wav *Wav) header() header {
	dataSize := uint32(wav.totalSamples * bytesPerSample)
	blockAlign := uint16(wav.numChannels * bytesPerSample)

	return header{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		RIFFSize:      HeaderSize - 8 + dataSize,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       18,
		Format:        formatIEEEFloat,
		NumChannels:   uint16(wav.numChannels),
		SampleRate:    uint32(wav.sampleRate),
		ByteRate:      uint32(wav.sampleRate) * uint32(blockAlign),
		BlockAlign:    blockAlign,
		BitsPerSample: bitsPerSample,
		Fact:          [4]byte{'f', 'a', 'c', 't'},
		FactSize:      4,
		FactFrames:    uint32(wav.Frames()),
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}
}

func (wav *Wav) Write(items []float32) error {
	n := len(items) * bytesPerSample
	if cap(wav.scratch) < n {
		wav.scratch = make([]byte, n)
	}
	buf := wav.scratch[:n]

	for i, item := range items {
		binary.LittleEndian.PutUint32(buf[i*bytesPerSample:], math.Float32bits(item))
	}

	wav.totalSamples += int64(len(items))

	_, err := wav.w.Write(buf)

	return err
}

func (wav *Wav) Frames() int64 {
	return wav.totalSamples / int64(wav.numChannels)
}

// Close flushes pending samples, rewrites the header with the final sizes
// and closes the file.
func (wav *Wav) Close() error {
	var errs []error

	if err := wav.finalize(); err != nil {
		errs = append(errs, err)
	}

	if err := wav.file.Close(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (wav *Wav) finalize() error {
	if err := wav.w.Flush(); err != nil {
		return err
	}

	if _, err := wav.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	return binary.Write(wav.file, binary.LittleEndian, wav.header())
}
