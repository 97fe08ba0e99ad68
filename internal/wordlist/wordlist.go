// Package wordlist holds the candidate words used to build passphrases.
//
// A Wordlist is validated and deduplicated once, when it is created, and is
// immutable afterwards. Words are normalized to Unicode NFC so that visually
// identical words loaded from differently encoded files collapse into one
// entry. Deduplication is case-sensitive: "Apple" and "apple" are distinct.
//
// Loading words from files or from the embedded default list lives in
// loader.go; the rest of the package performs no I/O.
package wordlist

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrEmptyWordlist is returned when a wordlist would contain no words.
	ErrEmptyWordlist = errors.New("empty wordlist: at least one word is required")

	// ErrInvalidWord is returned when a word is empty or contains whitespace.
	ErrInvalidWord = errors.New("invalid word")
)

// Wordlist is an immutable ordered sequence of distinct, non-empty words.
type Wordlist struct {
	words []string
}

// FromWords validates words and builds a Wordlist.
// Exact duplicates are removed, keeping the first occurrence, so the order
// of the remaining words follows the input.
func FromWords(words []string) (*Wordlist, error) {
	seen := make(map[string]bool, len(words))
	unique := make([]string, 0, len(words))

	for i, w := range words {
		if strings.TrimSpace(w) == "" {
			return nil, fmt.Errorf("%w at index %d: word is empty", ErrInvalidWord, i)
		}
		if strings.ContainsAny(w, " \t\r\n") {
			return nil, fmt.Errorf("%w at index %d: %q contains whitespace", ErrInvalidWord, i, w)
		}

		w = norm.NFC.String(w)
		if seen[w] {
			continue
		}
		seen[w] = true
		unique = append(unique, w)
	}

	if len(unique) == 0 {
		return nil, ErrEmptyWordlist
	}
	return &Wordlist{words: unique}, nil
}

// WordCount returns the number of distinct words.
func (w *Wordlist) WordCount() int {
	return len(w.words)
}

// Word returns the i-th word. It panics if i is out of range.
func (w *Wordlist) Word(i int) string {
	return w.words[i]
}

// Words returns a copy of the words in order.
func (w *Wordlist) Words() []string {
	out := make([]string, len(w.words))
	copy(out, w.words)
	return out
}

// Checksum returns the hex-encoded BLAKE2b-256 digest of the words in order.
// Two wordlists have the same checksum exactly when they hold the same words
// in the same order.
func (w *Wordlist) Checksum() string {
	sum := blake2b.Sum256([]byte(strings.Join(w.words, "\n")))
	return hex.EncodeToString(sum[:])
}
