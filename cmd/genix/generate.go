package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/nao1215/genix/internal/clipboard"
	"github.com/nao1215/genix/internal/config"
	"github.com/nao1215/genix/internal/database"
	"github.com/nao1215/genix/internal/engine"
	genixlog "github.com/nao1215/genix/internal/log"
	"github.com/nao1215/genix/internal/report"
	"github.com/nao1215/genix/internal/wordlist"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	return newGenerateCmd(clipboard.System{})
}

// newGenerateCmd creates the generate command with the given clipboard.
func newGenerateCmd(cb clipboard.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate passwords, PINs, passphrases or tokens",
		Long: `Generate draws secrets from a cryptographically secure random source and
reports the entropy of each one.

Styles:
  random      characters from the enabled classes (default)
  pin         digits only
  passphrase  words from a wordlist joined by a separator
  hex         random bytes encoded as hexadecimal
  base64      random bytes encoded as standard base64

For hex and base64, --length is the number of random bytes.

Settings are applied in this order, later ones winning:
built-in defaults, the "defaults" section of the configuration file,
the profile selected with --profile, and flags given on the command line.

Examples:
  # A 20-character password from every class
  genix generate

  # Five 32-character passwords without look-alike characters
  genix generate -n 5 -l 32 --no-ambiguous

  # A password with at least two digits and two symbols
  genix generate --min-digits 2 --min-symbols 2

  # A six-word passphrase, lengthened until it reaches 80 bits
  genix generate --style passphrase --words 6 --min-entropy 80

  # A passphrase from a wordlist imported into the catalog
  genix generate --style passphrase --wordlist-name eff-large

  # A 256-bit hex token as JSON
  genix generate --style hex -l 32 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerateCmd(cmd, cb)
		},
	}

	// Secret shape flags
	cmd.Flags().String("style", config.DefaultStyle,
		"Secret style: random, pin, passphrase, hex or base64")
	cmd.Flags().IntP("length", "l", config.DefaultLength,
		"Number of characters (random, pin) or random bytes (hex, base64)")
	cmd.Flags().IntP("words", "w", config.DefaultWords,
		"Number of passphrase words")
	cmd.Flags().IntP("count", "n", config.DefaultCount,
		"Number of secrets to generate")

	// Alphabet flags
	cmd.Flags().Bool("lower", true, "Include lowercase letters")
	cmd.Flags().Bool("upper", true, "Include uppercase letters")
	cmd.Flags().Bool("digits", true, "Include digits")
	cmd.Flags().Bool("symbols", true, "Include symbols")
	cmd.Flags().String("exclude", "", "Characters that must never appear")
	cmd.Flags().Bool("no-ambiguous", false, "Exclude look-alike characters (1 l I 0 O |)")

	// Minimum flags
	cmd.Flags().Int("min-lower", 0, "Minimum number of lowercase letters")
	cmd.Flags().Int("min-upper", 0, "Minimum number of uppercase letters")
	cmd.Flags().Int("min-digits", 0, "Minimum number of digits")
	cmd.Flags().Int("min-symbols", 0, "Minimum number of symbols")
	cmd.Flags().Float64("min-entropy", 0,
		"Raise the length until the estimate reaches this many bits")

	// Passphrase flags
	cmd.Flags().String("separator", config.DefaultSeparator, "Passphrase word separator")
	cmd.Flags().String("wordlist", "", "Passphrase wordlist file (plain or diceware)")
	cmd.Flags().String("wordlist-name", "", "Passphrase wordlist imported into the catalog")

	// Output flags
	cmd.Flags().Bool("clipboard", false, "Copy the first secret to the clipboard")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().BoolP("quiet", "q", false, "Print only the secrets, one per line")
	cmd.Flags().StringP("output", "o", "",
		"Write output to specified file path (creates directories if needed)")

	// Configuration flags
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .genix in current directory, XDG config directory or home directory)")
	cmd.Flags().StringP("profile", "p", "", "Configuration file profile to apply")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of secrets drawn in parallel")
	cmd.Flags().String("db-dir", config.XDGDataDir(), "Wordlist catalog directory")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, cb clipboard.Writer) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := generate(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if err := writeResults(cmd, cfg, results); err != nil {
		return err
	}

	if cfg.Clipboard && len(results) > 0 {
		if clipboard.Copy(cb, logger, results[0].Password) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Copied the first secret to the clipboard.")
		}
	}
	return nil
}

// buildConfig creates a Config from the configuration file and cobra flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	if cfg.Profile, err = flags.GetString("profile"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	if err := applyConfigFile(cfg); err != nil {
		return nil, err
	}

	if err := applyFlags(flags, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyConfigFile loads the configuration file, if any, onto cfg.
// If the user explicitly specified a path or a profile, a missing file is an error.
func applyConfigFile(cfg *config.Config) error {
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath == "" {
		if cfg.ConfigFilePath != "" {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		if cfg.Profile != "" {
			return fmt.Errorf("%w: %q (no configuration file found)", config.ErrProfileNotFound, cfg.Profile)
		}
		return nil
	}

	file, err := config.LoadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	return cfg.ApplyFile(file, cfg.Profile)
}

// applyFlags copies every explicitly set flag onto cfg, so that flags
// override the configuration file while unset flags keep file values.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	setters := []error{
		setIfChanged(flags, "style", &cfg.Style, flags.GetString),
		setIfChanged(flags, "length", &cfg.Length, flags.GetInt),
		setIfChanged(flags, "words", &cfg.Words, flags.GetInt),
		setIfChanged(flags, "count", &cfg.Count, flags.GetInt),
		setIfChanged(flags, "lower", &cfg.Lower, flags.GetBool),
		setIfChanged(flags, "upper", &cfg.Upper, flags.GetBool),
		setIfChanged(flags, "digits", &cfg.Digits, flags.GetBool),
		setIfChanged(flags, "symbols", &cfg.Symbols, flags.GetBool),
		setIfChanged(flags, "exclude", &cfg.Exclude, flags.GetString),
		setIfChanged(flags, "no-ambiguous", &cfg.NoAmbiguous, flags.GetBool),
		setIfChanged(flags, "min-lower", &cfg.MinLower, flags.GetInt),
		setIfChanged(flags, "min-upper", &cfg.MinUpper, flags.GetInt),
		setIfChanged(flags, "min-digits", &cfg.MinDigits, flags.GetInt),
		setIfChanged(flags, "min-symbols", &cfg.MinSymbols, flags.GetInt),
		setIfChanged(flags, "min-entropy", &cfg.MinEntropy, flags.GetFloat64),
		setIfChanged(flags, "separator", &cfg.Separator, flags.GetString),
		setIfChanged(flags, "wordlist", &cfg.WordlistPath, flags.GetString),
		setIfChanged(flags, "wordlist-name", &cfg.WordlistName, flags.GetString),
		setIfChanged(flags, "clipboard", &cfg.Clipboard, flags.GetBool),
		setIfChanged(flags, "json", &cfg.JSONReport, flags.GetBool),
		setIfChanged(flags, "markdown", &cfg.MarkdownReport, flags.GetBool),
		setIfChanged(flags, "quiet", &cfg.Quiet, flags.GetBool),
		setIfChanged(flags, "output", &cfg.ReportFile, flags.GetString),
		setIfChanged(flags, "concurrency", &cfg.Concurrency, flags.GetInt),
		setIfChanged(flags, "db-dir", &cfg.DBDir, flags.GetString),
	}
	return errors.Join(setters...)
}

// setIfChanged stores the flag value in dst when the flag was set on the
// command line.
func setIfChanged[T any](flags *pflag.FlagSet, name string, dst *T, get func(string) (T, error)) error {
	if !flags.Changed(name) {
		return nil
	}
	v, err := get(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// generate resolves the wordlist and draws cfg.Count secrets.
func generate(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]engine.Result, error) {
	req, err := cfg.Request()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	if req.Style == engine.StylePassphrase {
		req.Wordlist, err = resolveWordlist(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("generating",
		"style", req.Style,
		"count", cfg.Count,
		"concurrency", cfg.Concurrency,
	)

	bg := engine.NewBatchGenerator(
		engine.WithConcurrency(cfg.Concurrency),
		engine.WithLogger(logger),
	)
	results, err := bg.Generate(ctx, req, cfg.Count)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	secrets := make([]string, len(results))
	for i, r := range results {
		secrets[i] = r.Password
	}
	genixlog.Redact(logger, secrets...)

	for _, r := range results {
		if r.LengthAdjusted {
			logger.Info("length raised to reach minimum entropy",
				"requested", r.RequestedLength,
				"length", r.Length,
				"min_entropy", cfg.MinEntropy,
			)
			break
		}
	}
	return results, nil
}

// resolveWordlist loads the configured wordlist file or catalog entry.
// It returns nil when neither is set, which selects the built-in list.
func resolveWordlist(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*wordlist.Wordlist, error) {
	switch {
	case cfg.WordlistPath != "":
		wl, err := wordlist.LoadFile(cfg.WordlistPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load wordlist: %w", err)
		}
		logger.Debug("loaded wordlist file", "path", cfg.WordlistPath, "words", wl.WordCount())
		return wl, nil

	case cfg.WordlistName != "":
		catalog, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			return nil, fmt.Errorf("failed to open wordlist catalog: %w", err)
		}
		defer catalog.Close()

		wl, err := catalog.LoadWordlist(ctx, cfg.WordlistName)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded catalog wordlist", "name", cfg.WordlistName, "words", wl.WordCount())
		return wl, nil
	}
	return nil, nil
}

// writeResults outputs the results in the requested format.
func writeResults(cmd *cobra.Command, cfg *config.Config, results []engine.Result) (err error) {
	output, closeFn, err := openOutput(cmd, cfg.ReportFile)
	if err != nil {
		return err
	}
	defer closeOutput(closeFn, &err)

	if _, err := newReportWriter(cfg.JSONReport, cfg.MarkdownReport, cfg.Quiet, output).Write(results); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// openOutput returns the report destination: the file at path, or the
// command's stdout when path is empty.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Output holds secrets, so only the owner may read it.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// closeOutput runs closeFn and stores its error in *err unless an earlier
// error is already there. A file that fails to close may hold a truncated
// secret, so the failure must not be reported as success.
func closeOutput(closeFn func() error, err *error) {
	if cerr := closeFn(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close output: %w", cerr)
	}
}

// newReportWriter selects the writer for the requested format.
func newReportWriter(asJSON, asMarkdown, quiet bool, output io.Writer) report.Writer {
	switch {
	case asJSON:
		return report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case asMarkdown:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output,
			report.WithQuiet(quiet),
			report.WithColor(useColor(output)),
		)
	}
}

// useColor reports whether output is a terminal and NO_COLOR is unset.
func useColor(output io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := output.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
