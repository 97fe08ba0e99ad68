package config

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/nao1215/genix/internal/charset"
	"github.com/nao1215/genix/internal/engine"
	"github.com/nao1215/genix/internal/entropy"
	"github.com/nao1215/genix/internal/generator"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "genix"

	// DefaultStyle is the style used when none is configured.
	DefaultStyle = string(engine.StyleRandom)

	// DefaultLength is the number of characters for random and pin, and the
	// number of bytes for hex and base64.
	DefaultLength = engine.DefaultLength

	// DefaultWords is the number of passphrase words. Six words from a
	// 7776-word list give about 77 bits.
	DefaultWords = engine.DefaultWords

	// DefaultCount is the number of passwords generated per invocation.
	DefaultCount = 1

	// DefaultConcurrency is the number of passwords drawn in parallel when
	// count is greater than one.
	DefaultConcurrency = engine.DefaultConcurrency

	// DefaultSeparator joins passphrase words.
	DefaultSeparator = engine.DefaultSeparator
)

// Config holds all options of a generation run.
// It is populated from built-in defaults, then the configuration file and
// profile, then explicitly set CLI flags.
type Config struct {
	// Style is one of random, pin, passphrase, hex or base64.
	Style string

	// Length is the number of characters, or bytes for hex and base64.
	Length int

	// Words is the number of passphrase words.
	Words int

	// Count is the number of passwords to generate.
	Count int

	// Lower, Upper, Digits and Symbols enable character classes for the
	// random style.
	Lower   bool
	Upper   bool
	Digits  bool
	Symbols bool

	// Exclude lists characters that must never appear.
	Exclude string

	// NoAmbiguous removes easily confused characters (1 l I 0 O |).
	NoAmbiguous bool

	// Per-class minimum counts.
	MinLower   int
	MinUpper   int
	MinDigits  int
	MinSymbols int

	// Separator joins passphrase words. May be empty.
	Separator string

	// WordlistPath is a wordlist file for the passphrase style.
	WordlistPath string

	// WordlistName selects a wordlist imported into the catalog.
	WordlistName string

	// MinEntropy raises the length until the estimate reaches this many bits.
	// Zero disables the adjustment.
	MinEntropy float64

	// Thresholds label the entropy estimate.
	Thresholds entropy.Thresholds

	// Clipboard copies the first generated password to the system clipboard.
	Clipboard bool

	// JSONReport enables JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// Quiet prints only the generated passwords, one per line.
	Quiet bool

	// ReportFile writes the output to this path instead of stdout.
	ReportFile string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// Concurrency is the number of passwords drawn in parallel.
	Concurrency int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the search order of FindConfigFile applies.
	ConfigFilePath string

	// Profile is the name of the configuration file profile to apply.
	Profile string

	// DBDir is the directory of the wordlist catalog database.
	// Defaults to XDG data directory (~/.local/share/genix on Linux).
	DBDir string
}

// NewConfig creates a new Config with default values: a 20-character
// password drawn from every class.
func NewConfig() *Config {
	return &Config{
		Style:       DefaultStyle,
		Length:      DefaultLength,
		Words:       DefaultWords,
		Count:       DefaultCount,
		Lower:       true,
		Upper:       true,
		Digits:      true,
		Symbols:     true,
		Separator:   DefaultSeparator,
		Thresholds:  entropy.DefaultThresholds(),
		Concurrency: DefaultConcurrency,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for genix.
// On Linux: ~/.local/share/genix
// On macOS: ~/Library/Application Support/genix
// On Windows: %LOCALAPPDATA%\genix
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for genix.
// On Linux: ~/.config/genix
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	style, err := engine.ParseStyle(c.Style)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidStyle, c.Style)
	}

	if c.Count <= 0 {
		return ErrInvalidCount
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.MinEntropy < 0 || math.IsNaN(c.MinEntropy) || math.IsInf(c.MinEntropy, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidMinEntropy, c.MinEntropy)
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.WordlistPath != "" && c.WordlistName != "" {
		return ErrConflictingWordlistSources
	}
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}

	switch style {
	case engine.StylePassphrase:
		if c.Words <= 0 || c.Words > generator.MaxLength {
			return fmt.Errorf("%w: got %d", ErrInvalidWords, c.Words)
		}
		return nil
	case engine.StyleHex, engine.StyleBase64:
		if c.Length <= 0 || c.Length > generator.MaxLength {
			return fmt.Errorf("%w: got %d", ErrInvalidLength, c.Length)
		}
		return nil
	}

	if c.Length <= 0 || c.Length > generator.MaxLength {
		return fmt.Errorf("%w: got %d", ErrInvalidLength, c.Length)
	}
	if style == engine.StyleRandom && len(c.Classes()) == 0 {
		return ErrNoCharacterClass
	}
	for _, n := range []int{c.MinLower, c.MinUpper, c.MinDigits, c.MinSymbols} {
		if n < 0 {
			return ErrInvalidMinimum
		}
	}
	if total := c.Minimums(style).Total(); total > c.Length {
		return fmt.Errorf("%w: minimums need %d characters, length is %d", ErrMinimumsExceedLength, total, c.Length)
	}
	return nil
}

// Classes returns the enabled character classes.
func (c *Config) Classes() []charset.Class {
	var classes []charset.Class
	if c.Lower {
		classes = append(classes, charset.Lowercase)
	}
	if c.Upper {
		classes = append(classes, charset.Uppercase)
	}
	if c.Digits {
		classes = append(classes, charset.Digit)
	}
	if c.Symbols {
		classes = append(classes, charset.Symbol)
	}
	return classes
}

// Minimums returns the non-zero per-class minimums that apply to style.
// A pin only honors the digit minimum.
func (c *Config) Minimums(style engine.Style) generator.Minimums {
	m := generator.Minimums{}
	add := func(class charset.Class, n int) {
		if n != 0 {
			m[class] = n
		}
	}
	add(charset.Digit, c.MinDigits)
	if style == engine.StylePin {
		return m
	}
	add(charset.Lowercase, c.MinLower)
	add(charset.Uppercase, c.MinUpper)
	add(charset.Symbol, c.MinSymbols)
	return m
}

// Request converts the configuration into a generation request.
// The wordlist is left nil; callers resolve WordlistPath or WordlistName.
func (c *Config) Request() (engine.Request, error) {
	style, err := engine.ParseStyle(c.Style)
	if err != nil {
		return engine.Request{}, fmt.Errorf("%w: %q", ErrInvalidStyle, c.Style)
	}
	return engine.Request{
		Style:            style,
		Length:           c.Length,
		Words:            c.Words,
		Classes:          c.Classes(),
		Exclude:          c.Exclude,
		ExcludeAmbiguous: c.NoAmbiguous,
		Minimums:         c.Minimums(style),
		Separator:        c.Separator,
		MinEntropy:       c.MinEntropy,
		Thresholds:       c.Thresholds,
	}, nil
}
