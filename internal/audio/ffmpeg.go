package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	// ErrConverterMissing is returned when the ffmpeg binary cannot be found.
	ErrConverterMissing = errors.New("ffmpeg not available")
	// ErrConversionFailed is returned when ffmpeg exits non-zero or times out.
	ErrConversionFailed = errors.New("audio conversion failed")
)

// Converter turns an uploaded recording into a mono 16-bit PCM WAV.
type Converter interface {
	ToWAV(ctx context.Context, data []byte, ext string) ([]byte, error)
}

// FFmpegConfig configures the ffmpeg converter.
type FFmpegConfig struct {
	Binary     string
	Timeout    time.Duration
	SampleRate int
}

type ffmpegConverter struct {
	binary     string
	timeout    time.Duration
	sampleRate int
}

// NewFFmpegConverter resolves the ffmpeg binary on PATH.
func NewFFmpegConverter(cfg FFmpegConfig) (Converter, error) {
	if cfg.Binary == "" {
		cfg.Binary = "ffmpeg"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}

	path, err := exec.LookPath(cfg.Binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConverterMissing, cfg.Binary)
	}

	return &ffmpegConverter{binary: path, timeout: cfg.Timeout, sampleRate: cfg.SampleRate}, nil
}

// ToWAV writes the input to a temp file so ffmpeg can probe containers such
// as m4a that need seeking, then reads back the converted WAV.
func (c *ffmpegConverter) ToWAV(ctx context.Context, data []byte, ext string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "echo-convert-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	inPath := filepath.Join(dir, "input"+ext)
	outPath := filepath.Join(dir, "output.wav")

	if err := os.WriteFile(inPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write temp input: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binary,
		"-i", inPath,
		"-ac", "1",
		"-ar", strconv.Itoa(c.sampleRate),
		"-acodec", "pcm_s16le",
		"-v", "error",
		"-y", outPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: timed out after %v", ErrConversionFailed, c.timeout)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrConversionFailed, stderr.String(), err)
	}

	log.Debug().
		Str("ext", ext).
		Int("inputBytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("Converted recording to WAV")

	out, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read converted audio: %w", err)
	}
	return out, nil
}
