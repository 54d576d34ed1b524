package main

import (
	"bufio"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	naco "github.com/baditaflorin/go_naco"
	"github.com/baditaflorin/go_naco/pkg/streaming"
)

func newNormalizeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [text...]",
		Short: "Normalizes each argument, or each line of stdin when no argument is given",
		Example: `  naco normalize "O'Brien [Ed.]"
  naco normalize --case lower "Müller & Söhne"
  cat headings.txt | naco normalize`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return normalizeStdin(cmd, opts)
			}

			n := naco.New(naco.WithCase(opts.caseMode), naco.WithLogger(opts.logger))
			w := bufio.NewWriter(cmd.OutOrStdout())
			for _, arg := range args {
				fmt.Fprintln(w, n.Normalize(arg))
			}
			return w.Flush()
		},
	}
}

func normalizeStdin(cmd *cobra.Command, opts *rootOptions) error {
	sn, err := streaming.NewNormalizer(
		streaming.WithLogger(opts.logger),
		streaming.WithCase(opts.caseMode),
		streaming.WithFastNormalizer(),
	)
	if err != nil {
		return err
	}

	result, err := sn.NormalizeStream(context.Background(), cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("normalize stdin: %w", err)
	}

	opts.info("Normalized stdin",
		"lines", result.LinesWritten,
		"case", result.Case,
		"duration", result.ProcessingTime,
	)
	return nil
}
