package main

import (
	"github.com/baditaflorin/l"
	"github.com/spf13/cobra"

	nacolog "github.com/baditaflorin/go_naco/internal/adapters/logger"
)

// options shared by every subcommand
type rootOptions struct {
	caseMode string
	logFile  string
	verbose  bool

	logger   l.Logger
	closeLog func() error
}

// newRootCmd builds the command tree. Logs go to stderr, or to --log-file,
// so that stdout carries only normalized headings.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "naco",
		Short: "naco normalizes bibliographic headings for comparison",
		Long: "naco applies the NACO normalization rules to headings: punctuation becomes " +
			"space, apostrophes and brackets are removed, Latin-1 letters fall back to ASCII, " +
			"letters are forced to one case and whitespace is collapsed.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			opts.logger, opts.closeLog, err = nacolog.OpenLogger(opts.logFile, nacolog.Options{
				Output: cmd.ErrOrStderr(),
			})
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.closeLog == nil {
				return nil
			}
			return opts.closeLog()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.caseMode, "case", "c", "upper", "case mode: upper or lower")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "log file (default is stderr)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log progress information")

	rootCmd.AddCommand(
		newNormalizeCmd(opts),
		newFileCmd(opts),
		newCheckCmd(opts),
		newFixturesCmd(opts),
	)

	return rootCmd
}

// info logs only in verbose mode.
func (o *rootOptions) info(msg string, keysAndValues ...interface{}) {
	if o.verbose && o.logger != nil {
		o.logger.Info(msg, keysAndValues...)
	}
}
