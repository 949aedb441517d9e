package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Render a serialized note sequence as LilyPond",
		ArgsUsage: "<sequence>",
		Flags:     []cli.Flag{beatFlag()},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
			}

			analyzer, err := analyzerFrom(cmd)
			if err != nil {
				return err
			}

			seq, err := analyzer.Codec().Decode(cmd.Args().First())
			if err != nil {
				return err
			}

			ly, err := analyzer.RenderNotation(seq, cmd.Float("beat"))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.Root().Writer, ly)
			return nil
		},
	}
}
