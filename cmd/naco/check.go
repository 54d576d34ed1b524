package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	naco "github.com/baditaflorin/go_naco"
	"github.com/baditaflorin/go_naco/internal/fixture"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <fixtures.tsv>",
		Short: "Verifies a file of original<TAB>normalized pairs",
		Long: "check normalizes the first column of every line and compares it with the " +
			"second. Each mismatch is printed; the command fails if there is any.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := fixture.ReadFile(args[0])
			if err != nil {
				return err
			}

			n := naco.New(naco.WithCase(opts.caseMode), naco.WithLogger(opts.logger))
			mismatches := fixture.Check(n, pairs)
			for _, m := range mismatches {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}

			opts.info("Checked fixtures",
				"file", args[0],
				"pairs", len(pairs),
				"mismatches", len(mismatches),
				"case", n.Case(),
			)

			if len(mismatches) > 0 {
				return fmt.Errorf("%d of %d pairs do not match", len(mismatches), len(pairs))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d pairs\n", len(pairs))
			return nil
		},
	}
}

// maxHeadingSize bounds a single line read by the fixtures command.
const maxHeadingSize = 16 * 1024 * 1024

func newFixturesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures",
		Short: "Writes original<TAB>normalized pairs for headings read from stdin",
		Long: "fixtures reads one heading per line and writes a fixture file that " +
			"the check command accepts, using the current normalization as the expected value.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var originals []string
			sc := bufio.NewScanner(cmd.InOrStdin())
			sc.Buffer(make([]byte, 0, 64*1024), maxHeadingSize)
			for sc.Scan() {
				if line := strings.TrimSuffix(sc.Text(), "\r"); line != "" {
					originals = append(originals, line)
				}
			}
			if err := sc.Err(); err != nil {
				return fmt.Errorf("read headings: %w", err)
			}

			n := naco.New(naco.WithCase(opts.caseMode), naco.WithLogger(opts.logger))
			return fixture.Write(cmd.OutOrStdout(), fixture.Build(n, originals))
		},
	}
}
