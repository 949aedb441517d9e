// Command transcribe runs the note transcription pipeline on local files.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/RMahshie/echo/internal/transcription"
)

var errInvalidArgCount = errors.New("expected exactly one argument")

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Error().Err(err).Msg("transcribe failed")
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "transcribe",
		Usage: "Turn monophonic recordings into note sequences and LilyPond notation",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:  "reference-pitch",
				Usage: "Frequency of A4 in Hz",
				Value: 440,
			},
			&cli.StringFlag{
				Name:  "rest-token",
				Usage: "LilyPond token written for rests",
				Value: "r",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log pipeline details to stderr",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := zerolog.WarnLevel
			if cmd.Bool("verbose") {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			analyzeCommand(),
			renderCommand(),
		},
	}
}

func beatFlag() cli.Flag {
	return &cli.FloatFlag{
		Name:    "beat",
		Aliases: []string{"b"},
		Usage:   "Beat length in seconds",
		Value:   0.25,
	}
}

// analyzerFrom builds the pipeline from the root flags.
func analyzerFrom(cmd *cli.Command) (*transcription.Analyzer, error) {
	alphabet, err := transcription.NewAlphabet("A4", cmd.Float("reference-pitch"))
	if err != nil {
		return nil, err
	}

	opts := transcription.DefaultOptions()
	opts.Alphabet = alphabet
	opts.Renderer.RestToken = cmd.String("rest-token")
	return transcription.NewAnalyzer(opts), nil
}
