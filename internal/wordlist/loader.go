package wordlist

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

//go:embed default.txt
var defaultWords string

var (
	defaultOnce sync.Once
	defaultList *Wordlist
)

// Default returns the embedded built-in wordlist.
// The list is parsed once and shared; Wordlist values are immutable.
func Default() *Wordlist {
	defaultOnce.Do(func() {
		wl, err := Parse(strings.NewReader(defaultWords))
		if err != nil {
			panic(fmt.Sprintf("embedded wordlist is invalid: %v", err))
		}
		defaultList = wl
	})
	return defaultList
}

// Parse reads a wordlist with one word per line.
//
// Leading and trailing whitespace is trimmed, blank lines and lines starting
// with '#' are skipped. Diceware lists, where each line is a dice roll
// followed by the word ("11111<TAB>abacus"), are accepted: a leading field of
// dice digits is dropped.
func Parse(r io.Reader) (*Wordlist, error) {
	var words []string

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 2 && isDiceRoll(fields[0]) {
			fields = fields[1:]
		}
		if len(fields) != 1 {
			return nil, fmt.Errorf("%w on line %d: %q", ErrInvalidWord, lineNo, line)
		}
		words = append(words, fields[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wordlist: %w", err)
	}

	return FromWords(words)
}

// LoadFile reads a wordlist file from path.
func LoadFile(path string) (*Wordlist, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided wordlist path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open wordlist %s: %w", path, err)
	}
	defer f.Close()

	wl, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse wordlist %s: %w", path, err)
	}
	return wl, nil
}

// isDiceRoll reports whether s looks like a diceware index (digits 1-6).
func isDiceRoll(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '1' || r > '6' {
			return false
		}
	}
	return true
}
