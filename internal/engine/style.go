package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/genix/internal/entropy"
)

// ErrUnknownStyle is returned for a style name that is not supported.
var ErrUnknownStyle = errors.New("unknown style")

// Style selects what kind of secret is generated.
type Style string

const (
	// StyleRandom draws characters from the configured alphabet.
	StyleRandom Style = "random"
	// StylePin draws decimal digits.
	StylePin Style = "pin"
	// StylePassphrase draws words from a wordlist.
	StylePassphrase Style = "passphrase"
	// StyleHex encodes random bytes as hexadecimal.
	StyleHex Style = "hex"
	// StyleBase64 encodes random bytes as standard base64.
	StyleBase64 Style = "base64"
)

// Styles returns every supported style.
func Styles() []Style {
	return []Style{StyleRandom, StylePin, StylePassphrase, StyleHex, StyleBase64}
}

// ParseStyle converts a style name into a Style.
func ParseStyle(name string) (Style, error) {
	s := Style(strings.ToLower(strings.TrimSpace(name)))
	switch s {
	case StyleRandom, StylePin, StylePassphrase, StyleHex, StyleBase64:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q (expected one of random, pin, passphrase, hex, base64)", ErrUnknownStyle, name)
	}
}

// Mode returns the entropy mode of the style.
func (s Style) Mode() entropy.Mode {
	if s == StylePassphrase {
		return entropy.ModeWords
	}
	return entropy.ModeCharacters
}

// Hint returns the analysis hint for secrets of this style.
func (s Style) Hint() entropy.Hint {
	return entropy.Hint(s)
}

// isToken reports whether the style encodes raw bytes.
func (s Style) isToken() bool {
	return s == StyleHex || s == StyleBase64
}
