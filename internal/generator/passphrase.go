package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/genix/internal/wordlist"
)

// ErrInvalidWordCount is returned when a passphrase is requested with fewer
// than one word or more than MaxLength words.
var ErrInvalidWordCount = errors.New("invalid word count: must be between 1 and the maximum")

// ValidatePassphrase checks that Passphrase can satisfy the request.
func ValidatePassphrase(wl *wordlist.Wordlist, wordCount int) error {
	if wl == nil || wl.WordCount() == 0 {
		return wordlist.ErrEmptyWordlist
	}
	if wordCount <= 0 || wordCount > MaxLength {
		return fmt.Errorf("%w: got %d, maximum is %d", ErrInvalidWordCount, wordCount, MaxLength)
	}
	return nil
}

// Passphrase picks wordCount words independently and uniformly from wl, with
// replacement, and joins them with separator. The separator may be empty.
func Passphrase(src Source, wl *wordlist.Wordlist, wordCount int, separator string) (string, error) {
	if err := ValidatePassphrase(wl, wordCount); err != nil {
		return "", err
	}

	words := make([]string, wordCount)
	for i := range words {
		words[i] = wl.Word(src.IntN(wl.WordCount()))
	}
	return strings.Join(words, separator), nil
}
