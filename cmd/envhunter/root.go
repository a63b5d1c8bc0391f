package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/praetorian-inc/envhunter/pkg/logger"
)

var (
	verbose   bool
	quiet     bool
	noColor   bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "envhunter",
	Short: "EnvHunter - find leaked secrets in public .env files on GitHub",
	Long: `EnvHunter searches GitHub code search or the public gist feed for .env files,
downloads each candidate and reports KEY/TOKEN variables whose values look
like real credentials (Shannon entropy above 4.0 bits per character).

A GitHub token is required, read from GITHUB_TOKEN or --token.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", string(logger.FormatConsole), "Log format: console, json")

	// Add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the diagnostics logger for a command.
func newLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	format, err := logger.ParseFormat(logFormat)
	if err != nil {
		return zerolog.Nop(), err
	}
	return logger.New(logger.Options{
		Writer:  cmd.ErrOrStderr(),
		Format:  format,
		Verbose: verbose,
		Quiet:   quiet,
		NoColor: noColor,
	}), nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorEnabled resolves a --color setting for w. --no-color wins.
func colorEnabled(mode string, w io.Writer) bool {
	if noColor {
		return false
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		return isTerminal(w) && os.Getenv("NO_COLOR") == ""
	}
}
