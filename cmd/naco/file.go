package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_naco/pkg/streaming"
)

type fileOptions struct {
	input    string
	output   string
	encoding string
	parallel bool
	workers  int
}

func newFileCmd(opts *rootOptions) *cobra.Command {
	fo := &fileOptions{}

	cmd := &cobra.Command{
		Use:   "file",
		Short: "Normalizes a file of headings, one per line",
		Example: `  naco file --input names.txt --output names.naco
  naco file --input marc-export.txt --encoding iso-8859-1 --parallel`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(cmd, opts, fo)
		},
	}

	cmd.Flags().StringVarP(&fo.input, "input", "i", "-", "input file (- for stdin)")
	cmd.Flags().StringVarP(&fo.output, "output", "o", "-", "output file (- for stdout)")
	cmd.Flags().StringVarP(&fo.encoding, "encoding", "e", "", "input encoding label, e.g. iso-8859-1 (default UTF-8)")
	cmd.Flags().BoolVarP(&fo.parallel, "parallel", "p", false, "normalize on a worker pool")
	cmd.Flags().IntVar(&fo.workers, "workers", 0, "number of workers with --parallel (0 = NumCPU)")

	return cmd
}

func runFile(cmd *cobra.Command, opts *rootOptions, fo *fileOptions) error {
	sn, err := streaming.NewNormalizer(
		streaming.WithLogger(opts.logger),
		streaming.WithCase(opts.caseMode),
		streaming.WithEncoding(fo.encoding),
		streaming.WithFastNormalizer(),
		streaming.WithParallel(fo.parallel),
		streaming.WithWorkers(fo.workers),
	)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if fo.input != "-" {
		f, err := os.Open(fo.input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = cmd.OutOrStdout()
	var outFile *os.File
	if fo.output != "-" {
		outFile, err = os.Create(fo.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer outFile.Close()
		out = outFile
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := sn.NormalizeStream(ctx, in, out)
	if err != nil {
		return fmt.Errorf("normalize %s: %w", fo.input, err)
	}
	if outFile != nil {
		if err := outFile.Close(); err != nil {
			return fmt.Errorf("close output: %w", err)
		}
	}

	opts.info("Normalized file",
		"input", fo.input,
		"output", fo.output,
		"lines", result.LinesWritten,
		"bytes_processed", result.BytesProcessed,
		"case", result.Case,
		"duration", result.ProcessingTime,
	)
	return nil
}
