package entropy

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnreachableEntropy is returned by RequiredLength when no length up to
// MaxLength can reach the target.
var ErrUnreachableEntropy = errors.New("target entropy is unreachable")

// MaxLength is the largest number of symbols, words or bytes a single secret
// may have.
const MaxLength = 1 << 16

// Mode tells whether a secret is built from characters or from words.
type Mode int

const (
	// ModeCharacters is a secret of characters drawn from an alphabet.
	ModeCharacters Mode = iota
	// ModeWords is a passphrase of words drawn from a wordlist.
	ModeWords
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeCharacters:
		return "characters"
	case ModeWords:
		return "words"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Report is the strength estimate of one secret.
type Report struct {
	// Mode is the unit counted by Length.
	Mode Mode `json:"mode"`

	// Length is the number of characters or words.
	Length int `json:"length"`

	// PoolSize is the alphabet size or wordlist size.
	PoolSize int `json:"pool_size"`

	// BitsPerSymbol is log2(PoolSize).
	BitsPerSymbol float64 `json:"bits_per_symbol"`

	// Bits is Length * BitsPerSymbol, never negative.
	Bits float64 `json:"bits"`

	// Label is the rating of Bits.
	Label Label `json:"label"`
}

// Estimate computes the report using the default thresholds.
func Estimate(mode Mode, length, poolSize int) Report {
	return EstimateWith(DefaultThresholds(), mode, length, poolSize)
}

// EstimateWith computes the report using the given thresholds.
// A pool of one symbol or less, or a non-positive length, yields 0 bits.
func EstimateWith(t Thresholds, mode Mode, length, poolSize int) Report {
	perSymbol := bitsPerSymbol(poolSize)
	bits := 0.0
	if length > 0 {
		bits = float64(length) * perSymbol
	}
	return Report{
		Mode:          mode,
		Length:        length,
		PoolSize:      poolSize,
		BitsPerSymbol: perSymbol,
		Bits:          bits,
		Label:         t.Classify(bits),
	}
}

// RequiredLength returns the smallest length whose estimate reaches
// targetBits with the given pool. A non-positive target needs no length.
// The target must be finite and reachable within MaxLength symbols.
func RequiredLength(targetBits float64, poolSize int) (int, error) {
	if math.IsNaN(targetBits) || math.IsInf(targetBits, 0) {
		return 0, fmt.Errorf("%w: target %v bits", ErrUnreachableEntropy, targetBits)
	}
	if targetBits <= 0 {
		return 0, nil
	}
	perSymbol := bitsPerSymbol(poolSize)
	if perSymbol == 0 {
		return 0, fmt.Errorf("%w: pool size %d offers no choice", ErrUnreachableEntropy, poolSize)
	}

	q := math.Ceil(targetBits / perSymbol)
	if q > MaxLength {
		return 0, fmt.Errorf("%w: %.2f bits needs more than %d symbols of a %d-symbol pool",
			ErrUnreachableEntropy, targetBits, MaxLength, poolSize)
	}
	n := int(q)
	// Guard against the quotient landing a hair above an integer.
	if n > 1 && float64(n-1)*perSymbol >= targetBits {
		n--
	}
	return n, nil
}

func bitsPerSymbol(poolSize int) float64 {
	if poolSize <= 1 {
		return 0
	}
	return math.Log2(float64(poolSize))
}
