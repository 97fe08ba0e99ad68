package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/nao1215/genix/internal/entropy"
)

// Profile holds generation settings from the configuration file.
// Unset fields leave the value below them untouched; booleans, minimums and
// the separator are pointers so that false, 0 and "" can be set explicitly.
type Profile struct {
	Style        string  `yaml:"style,omitempty"`
	Length       int     `yaml:"length,omitempty"`
	Words        int     `yaml:"words,omitempty"`
	Count        int     `yaml:"count,omitempty"`
	Lower        *bool   `yaml:"lower,omitempty"`
	Upper        *bool   `yaml:"upper,omitempty"`
	Digits       *bool   `yaml:"digits,omitempty"`
	Symbols      *bool   `yaml:"symbols,omitempty"`
	Exclude      string  `yaml:"exclude,omitempty"`
	NoAmbiguous  *bool   `yaml:"no_ambiguous,omitempty"`
	MinLower     *int    `yaml:"min_lower,omitempty"`
	MinUpper     *int    `yaml:"min_upper,omitempty"`
	MinDigits    *int    `yaml:"min_digits,omitempty"`
	MinSymbols   *int    `yaml:"min_symbols,omitempty"`
	Separator    *string `yaml:"separator,omitempty"`
	Wordlist     string  `yaml:"wordlist,omitempty"`
	WordlistName string  `yaml:"wordlist_name,omitempty"`
	MinEntropy   float64 `yaml:"min_entropy,omitempty"`
	Clipboard    *bool   `yaml:"clipboard,omitempty"`
	Concurrency  int     `yaml:"concurrency,omitempty"`
}

// File represents the structure of the .genix configuration file.
type File struct {
	// Defaults apply to every run.
	Defaults Profile `yaml:"defaults,omitempty"`

	// Profiles are named sets of overrides selected with --profile.
	Profiles map[string]Profile `yaml:"profiles,omitempty"`

	// Thresholds replace the default strength label boundaries.
	Thresholds *entropy.Thresholds `yaml:"thresholds,omitempty"`
}

// ProfileNames returns the defined profile names in sorted order.
func (f *File) ProfileNames() []string {
	return slices.Sorted(maps.Keys(f.Profiles))
}

// GetProfile returns the defaults merged with the named profile.
// An empty name returns the defaults alone.
func (f *File) GetProfile(name string) (Profile, error) {
	result := f.Defaults
	if name == "" {
		return result, nil
	}

	p, ok := f.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	return result.merge(p), nil
}

// merge returns p overridden by every field set in over.
func (p Profile) merge(over Profile) Profile {
	result := p

	if over.Style != "" {
		result.Style = over.Style
	}
	if over.Length != 0 {
		result.Length = over.Length
	}
	if over.Words != 0 {
		result.Words = over.Words
	}
	if over.Count != 0 {
		result.Count = over.Count
	}
	if over.Exclude != "" {
		result.Exclude = over.Exclude
	}
	if over.Wordlist != "" {
		result.Wordlist = over.Wordlist
		result.WordlistName = ""
	}
	if over.WordlistName != "" {
		result.WordlistName = over.WordlistName
		result.Wordlist = ""
	}
	if over.MinEntropy != 0 {
		result.MinEntropy = over.MinEntropy
	}
	if over.Concurrency != 0 {
		result.Concurrency = over.Concurrency
	}
	mergePtr(&result.Lower, over.Lower)
	mergePtr(&result.Upper, over.Upper)
	mergePtr(&result.Digits, over.Digits)
	mergePtr(&result.Symbols, over.Symbols)
	mergePtr(&result.NoAmbiguous, over.NoAmbiguous)
	mergePtr(&result.MinLower, over.MinLower)
	mergePtr(&result.MinUpper, over.MinUpper)
	mergePtr(&result.MinDigits, over.MinDigits)
	mergePtr(&result.MinSymbols, over.MinSymbols)
	mergePtr(&result.Separator, over.Separator)
	mergePtr(&result.Clipboard, over.Clipboard)

	return result
}

func mergePtr[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

// ApplyTo writes every field set in p onto c.
func (p Profile) ApplyTo(c *Config) {
	if p.Style != "" {
		c.Style = p.Style
	}
	if p.Length != 0 {
		c.Length = p.Length
	}
	if p.Words != 0 {
		c.Words = p.Words
	}
	if p.Count != 0 {
		c.Count = p.Count
	}
	if p.Exclude != "" {
		c.Exclude = p.Exclude
	}
	if p.Wordlist != "" {
		c.WordlistPath = p.Wordlist
	}
	if p.WordlistName != "" {
		c.WordlistName = p.WordlistName
	}
	if p.MinEntropy != 0 {
		c.MinEntropy = p.MinEntropy
	}
	if p.Concurrency != 0 {
		c.Concurrency = p.Concurrency
	}
	applyPtr(&c.Lower, p.Lower)
	applyPtr(&c.Upper, p.Upper)
	applyPtr(&c.Digits, p.Digits)
	applyPtr(&c.Symbols, p.Symbols)
	applyPtr(&c.NoAmbiguous, p.NoAmbiguous)
	applyPtr(&c.MinLower, p.MinLower)
	applyPtr(&c.MinUpper, p.MinUpper)
	applyPtr(&c.MinDigits, p.MinDigits)
	applyPtr(&c.MinSymbols, p.MinSymbols)
	applyPtr(&c.Separator, p.Separator)
	applyPtr(&c.Clipboard, p.Clipboard)
}

func applyPtr[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// ApplyFile applies the file defaults, the named profile and the file
// thresholds to c.
func (c *Config) ApplyFile(f *File, profile string) error {
	p, err := f.GetProfile(profile)
	if err != nil {
		return err
	}
	p.ApplyTo(c)
	if f.Thresholds != nil {
		c.Thresholds = *f.Thresholds
	}
	return nil
}
