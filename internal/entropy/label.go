package entropy

import (
	"errors"
	"fmt"
)

// ErrInvalidThresholds is returned when strength thresholds are negative or
// not strictly increasing.
var ErrInvalidThresholds = errors.New("invalid strength thresholds: must be non-negative and strictly increasing")

// Label is a qualitative strength rating. Labels are ordered, so they can be
// compared with < and >.
type Label int

const (
	// VeryWeak is below the Weak threshold.
	VeryWeak Label = iota
	// Weak is at least the Weak threshold.
	Weak
	// Moderate is at least the Moderate threshold.
	Moderate
	// Strong is at least the Strong threshold.
	Strong
	// VeryStrong is at least the VeryStrong threshold.
	VeryStrong
)

// String returns the display name of the label.
func (l Label) String() string {
	switch l {
	case VeryWeak:
		return "Very Weak"
	case Weak:
		return "Weak"
	case Moderate:
		return "Moderate"
	case Strong:
		return "Strong"
	case VeryStrong:
		return "Very Strong"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so JSON output carries the
// display name.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// AllLabels returns every label from weakest to strongest.
func AllLabels() []Label {
	return []Label{VeryWeak, Weak, Moderate, Strong, VeryStrong}
}

// Default lower bounds, in bits, of each label above VeryWeak.
const (
	DefaultWeakBits       = 28.0
	DefaultModerateBits   = 36.0
	DefaultStrongBits     = 60.0
	DefaultVeryStrongBits = 80.0
)

// Thresholds holds the lower bound in bits of each label above VeryWeak.
type Thresholds struct {
	Weak       float64 `yaml:"weak" json:"weak"`
	Moderate   float64 `yaml:"moderate" json:"moderate"`
	Strong     float64 `yaml:"strong" json:"strong"`
	VeryStrong float64 `yaml:"very_strong" json:"very_strong"`
}

// DefaultThresholds returns the built-in boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Weak:       DefaultWeakBits,
		Moderate:   DefaultModerateBits,
		Strong:     DefaultStrongBits,
		VeryStrong: DefaultVeryStrongBits,
	}
}

// Validate checks that the thresholds are usable.
func (t Thresholds) Validate() error {
	if t.Weak < 0 {
		return fmt.Errorf("%w: weak is %.2f", ErrInvalidThresholds, t.Weak)
	}
	if t.Moderate <= t.Weak || t.Strong <= t.Moderate || t.VeryStrong <= t.Strong {
		return fmt.Errorf("%w: got %.2f/%.2f/%.2f/%.2f",
			ErrInvalidThresholds, t.Weak, t.Moderate, t.Strong, t.VeryStrong)
	}
	return nil
}

// Classify maps bits to a label.
func (t Thresholds) Classify(bits float64) Label {
	switch {
	case bits < t.Weak:
		return VeryWeak
	case bits < t.Moderate:
		return Weak
	case bits < t.Strong:
		return Moderate
	case bits < t.VeryStrong:
		return Strong
	default:
		return VeryStrong
	}
}
