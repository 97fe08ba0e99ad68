package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/genix/internal/config"
	"github.com/nao1215/genix/internal/engine"
	"github.com/nao1215/genix/internal/entropy"
	genixlog "github.com/nao1215/genix/internal/log"
	"github.com/spf13/cobra"
)

var (
	// errNoInput is returned when check or profile has nothing to analyze.
	errNoInput = errors.New("no input: pass the secret as an argument or use --stdin")

	// errConflictingInput is returned when both an argument and --stdin are given.
	errConflictingInput = errors.New("conflicting input: an argument cannot be used together with --stdin")
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [input]",
		Short: "Estimate the strength of a secret",
		Long: `Check prints the estimated entropy and strength label of a secret.

Without --style the character classes present in the input decide the pool
size. With --style passphrase the input is split on the separator and each
word counts as one draw from a wordlist of --wordlist-size words.

The input is never logged. Prefer --stdin so the secret does not end up in
your shell history.

Examples:
  genix check 'Tr0ub4dor&3'
  genix check --style passphrase 'correct-horse-battery-staple'
  printf '%s' "$SECRET" | genix check --stdin`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheckCmd,
	}

	addAnalyzeFlags(cmd)

	return cmd
}

// NewProfileCmd creates the profile command.
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile [input]",
		Short: "Show a detailed strength profile of a secret",
		Long: `Profile prints a breakdown of a secret: the character classes found, the
inferred pool size, the combinatorial entropy and label, and a pattern-aware
score that accounts for dictionary words, repeats and keyboard sequences.

Examples:
  genix profile 'Tr0ub4dor&3'
  genix profile --style passphrase --json 'correct-horse-battery-staple'
  genix profile --stdin --markdown -o profile.md < secret.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runProfileCmd,
	}

	addAnalyzeFlags(cmd)
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// addAnalyzeFlags registers the flags shared by check and profile.
func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().String("style", "",
		"Style hint: random, pin, passphrase, hex or base64 (default: detect from input)")
	cmd.Flags().Bool("stdin", false, "Read the secret from the first line of standard input")
	cmd.Flags().String("separator", config.DefaultSeparator, "Passphrase word separator")
	cmd.Flags().Int("wordlist-size", entropy.DefaultAssumedWordlistSize,
		"Assumed wordlist size for passphrases")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path for custom strength thresholds")
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	analysis, err := analyze(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Estimated entropy: %.2f bits\n", analysis.Report.Bits)
	fmt.Fprintf(out, "Strength: %s\n", analysis.Report.Label)
	if analysis.PatternScore < 3 && analysis.Report.Label >= entropy.Strong {
		fmt.Fprintf(out, "Warning: contains guessable patterns (pattern score %d/4)\n", analysis.PatternScore)
	}
	return nil
}

// runProfileCmd executes the profile command.
func runProfileCmd(cmd *cobra.Command, args []string) (err error) {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if asJSON && asMarkdown {
		return config.ErrConflictingReportFormats
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	analysis, err := analyze(cmd, args)
	if err != nil {
		return err
	}

	output, closeFn, err := openOutput(cmd, outputPath)
	if err != nil {
		return err
	}
	defer closeOutput(closeFn, &err)

	if _, err := newReportWriter(asJSON, asMarkdown, false, output).WriteAnalysis(analysis); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// analyze reads the secret and runs the entropy analysis on it.
func analyze(cmd *cobra.Command, args []string) (*entropy.Analysis, error) {
	logger := setupLogger(cmd)
	flags := cmd.Flags()

	styleName, err := flags.GetString("style")
	if err != nil {
		return nil, err
	}
	hint := entropy.HintNone
	if styleName != "" {
		style, err := engine.ParseStyle(styleName)
		if err != nil {
			return nil, fmt.Errorf("configuration error: %w", err)
		}
		hint = style.Hint()
	}

	separator, err := flags.GetString("separator")
	if err != nil {
		return nil, err
	}
	wordlistSize, err := flags.GetInt("wordlist-size")
	if err != nil {
		return nil, err
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}

	thresholds, err := loadThresholds(configPath)
	if err != nil {
		return nil, err
	}

	input, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}

	genixlog.Redact(logger, input)
	logger.Debug("analyzing secret", "hint", hint, "characters", len([]rune(input)))

	return entropy.Analyze(input, hint,
		entropy.WithSeparator(separator),
		entropy.WithWordlistSize(wordlistSize),
		entropy.WithThresholds(thresholds),
	)
}

// readInput returns the secret from the argument or from stdin.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	useStdin, err := cmd.Flags().GetBool("stdin")
	if err != nil {
		return "", err
	}

	if useStdin {
		if len(args) > 0 {
			return "", errConflictingInput
		}
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("failed to read standard input: %w", errNoInput)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	if len(args) == 0 {
		return "", errNoInput
	}
	return args[0], nil
}

// loadThresholds returns the thresholds from the configuration file, or the
// defaults when no file is found.
func loadThresholds(configPath string) (entropy.Thresholds, error) {
	path := config.FindConfigFile(configPath)
	if path == "" {
		if configPath != "" {
			return entropy.Thresholds{}, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
		}
		return entropy.DefaultThresholds(), nil
	}

	file, err := config.LoadConfigFile(path)
	if err != nil {
		return entropy.Thresholds{}, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	if file.Thresholds != nil {
		return *file.Thresholds, nil
	}
	return entropy.DefaultThresholds(), nil
}
