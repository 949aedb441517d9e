// Package audio prepares uploaded recordings for analysis: container
// conversion through ffmpeg and WAV decoding into mono float samples.
package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

// ErrInvalidWAV is returned when the input is not a decodable PCM WAV stream.
var ErrInvalidWAV = errors.New("invalid wav data")

// Buffer is a decoded mono recording with samples in [-1, 1].
type Buffer struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the length of the recording in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// DecodeWAV reads a PCM WAV stream and downmixes all channels to mono.
func DecodeWAV(r io.ReadSeeker) (*Buffer, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
	}

	channels := int(decoder.NumChans)
	bitDepth := int(decoder.BitDepth)
	if channels < 1 || bitDepth < 8 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: %d channels at %d bits", ErrInvalidWAV, channels, bitDepth)
	}

	scale := float64(int64(1) << (bitDepth - 1))
	// 8-bit WAV is unsigned, everything wider is two's complement.
	offset := 0
	if bitDepth == 8 {
		offset = 128
	}

	frames := len(pcm.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += float64(pcm.Data[i*channels+ch]-offset) / scale
		}
		samples[i] = sum / float64(channels)
	}

	return &Buffer{Samples: samples, SampleRate: int(decoder.SampleRate)}, nil
}
