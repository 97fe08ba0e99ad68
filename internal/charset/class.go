package charset

import (
	"fmt"
	"strings"
)

// Class identifies a group of characters that can be enabled as a whole.
type Class int

const (
	// Lowercase is the ASCII lowercase letters a-z.
	Lowercase Class = iota

	// Uppercase is the ASCII uppercase letters A-Z.
	Uppercase

	// Digit is the ASCII digits 0-9.
	Digit

	// Symbol is the punctuation set shared by every printable-style password.
	Symbol
)

// classCount is the number of defined classes.
const classCount = 4

// Character sets for each class, in the order they appear in an Alphabet.
const (
	LowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	UppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DigitChars     = "0123456789"
	SymbolChars    = "!@#$%&*()-_=+[]{};:,.<>?/`~"
)

// AmbiguousChars are characters that are easily confused when read or typed.
// Options.ExcludeAmbiguous removes them from the alphabet.
const AmbiguousChars = "1lI0O|"

// AllClasses returns every class in alphabet order.
func AllClasses() []Class {
	return []Class{Lowercase, Uppercase, Digit, Symbol}
}

// String returns the canonical name of the class.
func (c Class) String() string {
	switch c {
	case Lowercase:
		return "lowercase"
	case Uppercase:
		return "uppercase"
	case Digit:
		return "digits"
	case Symbol:
		return "symbols"
	default:
		return "unknown"
	}
}

// Chars returns the full character set of the class.
func (c Class) Chars() string {
	switch c {
	case Lowercase:
		return LowercaseChars
	case Uppercase:
		return UppercaseChars
	case Digit:
		return DigitChars
	case Symbol:
		return SymbolChars
	default:
		return ""
	}
}

// valid reports whether c is one of the defined classes.
func (c Class) valid() bool {
	return c >= Lowercase && c < classCount
}

// ParseClass converts a class name into a Class.
// Singular and plural spellings are accepted, case-insensitively.
func ParseClass(name string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lower", "lowercase":
		return Lowercase, nil
	case "upper", "uppercase":
		return Uppercase, nil
	case "digit", "digits":
		return Digit, nil
	case "symbol", "symbols":
		return Symbol, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownClass, name)
	}
}

// ClassOfRune returns the class a character belongs to, independent of any
// alphabet. The second result is false for characters outside every class.
func ClassOfRune(r rune) (Class, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return Lowercase, true
	case r >= 'A' && r <= 'Z':
		return Uppercase, true
	case r >= '0' && r <= '9':
		return Digit, true
	case strings.ContainsRune(SymbolChars, r):
		return Symbol, true
	default:
		return 0, false
	}
}
