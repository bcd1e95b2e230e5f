// Package aifc writes 32-bit float AIFF-C files.
package aifc

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"

	"github.com/almerlucke/ambience/writer/backend/aifc/float80"
)

const (
	aifcVersion1        = uint32(0xA2805140)
	aifcCompressionName = "32-bit floating point"
	aifcCompressionType = "fl32"

	bytesPerSample = 4

	// HeaderSize is the byte offset of the first sample.
	HeaderSize = 92
)

// header lays out FORM, FVER, COMM and the SSND chunk preamble.
type header struct {
	Form     [4]byte
	FormSize uint32
	AIFC     [4]byte

	Fver        [4]byte
	FverSize    uint32
	FverVersion uint32

	Comm            [4]byte
	CommSize        uint32
	NumChannels     int16
	NumSampleFrames uint32
	SampleSize      int16
	SampleRate      [10]byte
	CompressionType [4]byte
	CompressionName [22]byte

	Ssnd       [4]byte
	SsndSize   uint32
	SsndOffset uint32
	BlockSize  uint32
}

// pascal encodes str as a length-prefixed string padded to an even size.
func pascal(str string) [22]byte {
	var ps [22]byte
	ps[0] = byte(len(str))
	copy(ps[1:], str)

	return ps
}

type AIFC struct {
	numChannels     int
	numSampleFrames int64
	sampleRate      float64
	file            *os.File
	w               *bufio.Writer
	scratch         []byte
}

func New(filePath string, numChannels int, sampleRate float64) (*AIFC, error) {
	if numChannels < 1 {
		return nil, errors.New("aifc: need at least one channel")
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}

	aifc := &AIFC{
		numChannels: numChannels,
		sampleRate:  sampleRate,
		file:        file,
		w:           bufio.NewWriter(file),
	}

	err = binary.Write(aifc.w, binary.BigEndian, aifc.header())
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	return aifc, nil
}

func (aifc *AIFC) dataSize() uint32 {
	return uint32(aifc.numSampleFrames) * uint32(aifc.numChannels) * bytesPerSample
}

func (aifc *AIFC) header() header {
	var typ [4]byte
	copy(typ[:], aifcCompressionType)

	return header{
		Form:     [4]byte{'F', 'O', 'R', 'M'},
		FormSize: HeaderSize - 8 + aifc.dataSize(),
		AIFC:     [4]byte{'A', 'I', 'F', 'C'},

		Fver:        [4]byte{'F', 'V', 'E', 'R'},
		FverSize:    4,
		FverVersion: aifcVersion1,

		Comm:            [4]byte{'C', 'O', 'M', 'M'},
		CommSize:        44,
		NumChannels:     int16(aifc.numChannels),
		NumSampleFrames: uint32(aifc.numSampleFrames),
		SampleSize:      32,
		SampleRate:      float80.NewFromFloat64(aifc.sampleRate).Bytes(),
		CompressionType: typ,
		CompressionName: pascal(aifcCompressionName),

		Ssnd:     [4]byte{'S', 'S', 'N', 'D'},
		SsndSize: 8 + aifc.dataSize(),
	}
}

func (aifc *AIFC) Write(items []float32) error {
	n := len(items) * bytesPerSample
	if cap(aifc.scratch) < n {
		aifc.scratch = make([]byte, n)
	}
	buf := aifc.scratch[:n]

	for i, item := range items {
		binary.BigEndian.PutUint32(buf[i*bytesPerSample:], math.Float32bits(item))
	}

	aifc.numSampleFrames += int64(len(items) / aifc.numChannels)

	_, err := aifc.w.Write(buf)

	return err
}

func (aifc *AIFC) Frames() int64 {
	return aifc.numSampleFrames
}

func (aifc *AIFC) Close() error {
	var errs []error

	if err := aifc.finalize(); err != nil {
		errs = append(errs, err)
	}

	if err := aifc.file.Close(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (aifc *AIFC) finalize() error {
	if err := aifc.w.Flush(); err != nil {
		return err
	}

	if _, err := aifc.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	return binary.Write(aifc.file, binary.BigEndian, aifc.header())
}
