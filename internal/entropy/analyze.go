package entropy

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	zxcvbn "github.com/ccojocar/zxcvbn-go"
)

// ErrUndeterminedPool is returned by Analyze when neither the input nor the
// hint tells how large the pool was.
var ErrUndeterminedPool = errors.New("cannot determine the pool size for entropy estimation")

// Hint names the style an analyzed secret was generated with.
type Hint string

// Known hints. HintNone leaves pool detection entirely to the input.
const (
	HintNone       Hint = ""
	HintRandom     Hint = "random"
	HintPin        Hint = "pin"
	HintPassphrase Hint = "passphrase"
	HintHex        Hint = "hex"
	HintBase64     Hint = "base64"
)

// Pool sizes assumed for each class detected in analyzed input. The symbol
// pool approximates printable ASCII punctuation and also covers spaces and
// non-ASCII characters.
const (
	DetectedLowerPool  = 26
	DetectedUpperPool  = 26
	DetectedDigitPool  = 10
	DetectedSymbolPool = 32
)

// DefaultAssumedWordlistSize is the wordlist size assumed for passphrases
// whose list is unknown.
const DefaultAssumedWordlistSize = 2048

// defaultAlphabetSize is the size of the full default alphabet:
// 26 lowercase, 26 uppercase, 10 digits and 27 symbols.
const defaultAlphabetSize = 89

// hintPoolSize returns the pool a style draws from, or 0 when the style does
// not imply one.
func hintPoolSize(h Hint) int {
	switch h {
	case HintRandom:
		return defaultAlphabetSize
	case HintPin:
		return 10
	case HintHex:
		return 16
	case HintBase64:
		return 64
	default:
		return 0
	}
}

// Analysis is the profile of a user supplied secret.
type Analysis struct {
	Hint Hint `json:"hint,omitempty"`

	// Report holds the combinatorial estimate. For passphrases its Length
	// counts words.
	Report Report `json:"report"`

	HasLower  bool `json:"has_lower"`
	HasUpper  bool `json:"has_upper"`
	HasDigit  bool `json:"has_digit"`
	HasSymbol bool `json:"has_symbol"`

	// WordCount and AssumedWordlistSize are set for passphrases only.
	WordCount           int `json:"word_count,omitempty"`
	AssumedWordlistSize int `json:"assumed_wordlist_size,omitempty"`

	// PatternScore is the zxcvbn score from 0 (trivial) to 4.
	PatternScore int `json:"pattern_score"`

	// PatternBits is the zxcvbn entropy estimate, which accounts for
	// dictionary words, repeats and keyboard sequences.
	PatternBits float64 `json:"pattern_bits"`

	// CrackTime is the zxcvbn crack time in human-readable form.
	CrackTime string `json:"crack_time,omitempty"`
}

type analyzeOptions struct {
	separator    string
	wordlistSize int
	thresholds   Thresholds
}

// AnalyzeOption configures Analyze.
type AnalyzeOption func(*analyzeOptions)

// WithSeparator sets the separator used to split passphrases. Default "-".
func WithSeparator(sep string) AnalyzeOption {
	return func(o *analyzeOptions) {
		if sep != "" {
			o.separator = sep
		}
	}
}

// WithWordlistSize sets the wordlist size assumed for passphrases.
// Non-positive values keep DefaultAssumedWordlistSize.
func WithWordlistSize(n int) AnalyzeOption {
	return func(o *analyzeOptions) {
		if n > 0 {
			o.wordlistSize = n
		}
	}
}

// WithThresholds sets the thresholds used for the label.
func WithThresholds(t Thresholds) AnalyzeOption {
	return func(o *analyzeOptions) {
		o.thresholds = t
	}
}

// Analyze estimates the entropy of s.
//
// With HintPassphrase, s is split on the separator and every non-empty
// segment counts as one word from a list of the assumed size. Otherwise the
// pool is the sum of the detected class pools; if nothing is detected, as for
// an empty string, the pool implied by the hint is used.
func Analyze(s string, hint Hint, opts ...AnalyzeOption) (*Analysis, error) {
	o := analyzeOptions{
		separator:    "-",
		wordlistSize: DefaultAssumedWordlistSize,
		thresholds:   DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	a := &Analysis{Hint: hint}

	if hint == HintPassphrase {
		words := 0
		for _, w := range strings.Split(s, o.separator) {
			if w != "" {
				words++
			}
		}
		a.WordCount = words
		a.AssumedWordlistSize = o.wordlistSize
		a.Report = EstimateWith(o.thresholds, ModeWords, words, o.wordlistSize)
		a.applyPatternScore(s)
		return a, nil
	}

	pool := 0
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			a.HasLower = true
		case r >= 'A' && r <= 'Z':
			a.HasUpper = true
		case r >= '0' && r <= '9':
			a.HasDigit = true
		default:
			a.HasSymbol = true
		}
	}
	if a.HasLower {
		pool += DetectedLowerPool
	}
	if a.HasUpper {
		pool += DetectedUpperPool
	}
	if a.HasDigit {
		pool += DetectedDigitPool
	}
	if a.HasSymbol {
		pool += DetectedSymbolPool
	}

	if pool < 2 {
		pool = hintPoolSize(hint)
	}
	if pool < 2 {
		return nil, ErrUndeterminedPool
	}

	a.Report = EstimateWith(o.thresholds, ModeCharacters, utf8.RuneCountInString(s), pool)
	a.applyPatternScore(s)
	return a, nil
}

func (a *Analysis) applyPatternScore(s string) {
	if s == "" {
		return
	}
	m := zxcvbn.PasswordStrength(s, nil)
	a.PatternScore = m.Score
	if !math.IsNaN(m.Entropy) && !math.IsInf(m.Entropy, 0) {
		a.PatternBits = m.Entropy
	}
	a.CrackTime = m.CrackTimeDisplay
}
