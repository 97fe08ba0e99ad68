package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and the file loader, and
// callers use errors.Is() to map them to the configuration exit code.
var (
	// ErrInvalidStyle is returned when the style is not one of random, pin,
	// passphrase, hex or base64.
	ErrInvalidStyle = errors.New("invalid style")

	// ErrInvalidLength is returned when the character or byte length is not
	// between 1 and generator.MaxLength.
	ErrInvalidLength = errors.New("invalid length: must be between 1 and 65536")

	// ErrInvalidWords is returned when the passphrase word count is not
	// between 1 and generator.MaxLength.
	ErrInvalidWords = errors.New("invalid word count: must be between 1 and 65536")

	// ErrInvalidCount is returned when fewer than one password is requested.
	ErrInvalidCount = errors.New("invalid count: must be positive")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrNoCharacterClass is returned when the random style has every class disabled.
	ErrNoCharacterClass = errors.New("no character class enabled: enable at least one of --lower, --upper, --digits, --symbols")

	// ErrInvalidMinimum is returned when a per-class minimum is negative.
	ErrInvalidMinimum = errors.New("invalid minimum: must be non-negative")

	// ErrMinimumsExceedLength is returned when the per-class minimums add up to
	// more than the length.
	ErrMinimumsExceedLength = errors.New("per-class minimums exceed the length")

	// ErrInvalidMinEntropy is returned when the minimum entropy is negative
	// or not a finite number.
	ErrInvalidMinEntropy = errors.New("invalid minimum entropy: must be a finite non-negative number")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrConflictingWordlistSources is returned when both a wordlist file and
	// a catalog wordlist name are given.
	ErrConflictingWordlistSources = errors.New("conflicting wordlist sources: --wordlist and --wordlist-name cannot be used together")

	// ErrProfileNotFound is returned when the requested profile is not defined
	// in the configuration file.
	ErrProfileNotFound = errors.New("profile not found in configuration file")
)
