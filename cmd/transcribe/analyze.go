package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/RMahshie/echo/internal/audio"
)

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Transcribe a recording and print the note sequence",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:    "window",
				Aliases: []string{"w"},
				Usage:   "Analysis window in seconds",
				Value:   0.25,
			},
			beatFlag(),
			&cli.BoolFlag{
				Name:    "notation",
				Aliases: []string{"n"},
				Usage:   "Also print LilyPond notation",
			},
			&cli.StringFlag{
				Name:  "ffmpeg",
				Usage: "ffmpeg binary used for files that are not WAV",
				Value: "ffmpeg",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
			}
			path := cmd.Args().First()

			buf, err := loadRecording(ctx, path, cmd.String("ffmpeg"))
			if err != nil {
				return err
			}

			analyzer, err := analyzerFrom(cmd)
			if err != nil {
				return err
			}

			beat := cmd.Float("beat")
			seq, err := analyzer.Analyze(buf.Samples, buf.SampleRate, cmd.Float("window"), beat)
			if err != nil {
				return fmt.Errorf("analysis of %s failed: %w", path, err)
			}

			log.Debug().
				Str("file", path).
				Int("sample_rate", buf.SampleRate).
				Float64("seconds", buf.Duration()).
				Int("points", seq.Len()).
				Msg("Analyzed recording")

			out := cmd.Root().Writer
			fmt.Fprintln(out, analyzer.Codec().Encode(seq))

			if cmd.Bool("notation") {
				ly, err := analyzer.RenderNotation(seq, beat)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ly)
			}
			return nil
		},
	}
}

// loadRecording decodes WAV files directly and converts anything else with ffmpeg.
func loadRecording(ctx context.Context, path, ffmpeg string) (*audio.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".wav" {
		converter, err := audio.NewFFmpegConverter(audio.FFmpegConfig{Binary: ffmpeg})
		if err != nil {
			return nil, err
		}
		if data, err = converter.ToWAV(ctx, data, ext); err != nil {
			return nil, err
		}
	}

	return audio.DecodeWAV(bytes.NewReader(data))
}
