package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nao1215/genix/internal/charset"
	"github.com/nao1215/genix/internal/config"
	"github.com/nao1215/genix/internal/database"
	"github.com/nao1215/genix/internal/engine"
	"github.com/nao1215/genix/internal/entropy"
	"github.com/nao1215/genix/internal/generator"
	genixlog "github.com/nao1215/genix/internal/log"
	"github.com/nao1215/genix/internal/wordlist"
	"github.com/spf13/cobra"
)

// Process exit codes.
const (
	exitFailure     = 1
	exitConfigError = 2
)

// NewRootCmd creates the root command for genix.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genix",
		Short: "Password, passphrase and token generator with entropy estimation",
		Long: `genix generates random passwords, PINs, passphrases and hex or base64 tokens
from a cryptographically secure random source, and reports the entropy of every
secret it produces.

It can also estimate the strength of an existing secret (check, profile) and
keep named wordlists in a local catalog for passphrase generation.

Generated secrets are never stored or logged.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	// Add subcommands
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewProfileCmd())
	cmd.AddCommand(NewWordlistCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// configErrors are the sentinels that describe an unusable request rather
// than a runtime failure.
var configErrors = []error{
	config.ErrInvalidStyle,
	config.ErrInvalidLength,
	config.ErrInvalidWords,
	config.ErrInvalidCount,
	config.ErrInvalidConcurrency,
	config.ErrNoCharacterClass,
	config.ErrInvalidMinimum,
	config.ErrMinimumsExceedLength,
	config.ErrInvalidMinEntropy,
	config.ErrConflictingReportFormats,
	config.ErrConflictingWordlistSources,
	config.ErrProfileNotFound,
	config.ErrConfigNotFound,
	charset.ErrEmptyAlphabet,
	charset.ErrUnknownClass,
	wordlist.ErrEmptyWordlist,
	wordlist.ErrInvalidWord,
	generator.ErrInvalidLength,
	generator.ErrInvalidWordCount,
	generator.ErrInvalidMinimum,
	generator.ErrUnavailableClass,
	generator.ErrUnknownEncoding,
	engine.ErrUnknownStyle,
	engine.ErrInvalidCount,
	entropy.ErrInvalidThresholds,
	entropy.ErrUnreachableEntropy,
	entropy.ErrUndeterminedPool,
	database.ErrWordlistNotFound,
	database.ErrInvalidName,
	errNoInput,
	errConflictingInput,
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	for _, target := range configErrors {
		if errors.Is(err, target) {
			return exitConfigError
		}
	}
	return exitFailure
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getLogJSONFlag retrieves the log-json flag from the command or its parent.
func getLogJSONFlag(cmd *cobra.Command) bool {
	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		logJSON, err = cmd.Root().PersistentFlags().GetBool("log-json")
		if err != nil {
			return false
		}
	}
	return logJSON
}

// setupLogger creates the secret-masking logger for cmd. Logs go to stderr
// so that stdout only carries generated output.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	return newLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd), getLogJSONFlag(cmd))
}

func newLogger(w io.Writer, verbose, logJSON bool) *slog.Logger {
	if logJSON {
		return genixlog.NewSecureJSONLogger(w, verbose)
	}
	return genixlog.NewSecureLogger(w, verbose)
}
