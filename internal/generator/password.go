package generator

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/nao1215/genix/internal/charset"
	"github.com/nao1215/genix/internal/entropy"
)

var (
	// ErrInvalidLength is returned when the requested length is not in
	// [1, MaxLength] or is smaller than the sum of the per-class minimums.
	ErrInvalidLength = errors.New("invalid length: must be between 1 and the maximum, and at least the sum of per-class minimums")

	// ErrInvalidMinimum is returned when a per-class minimum is negative.
	ErrInvalidMinimum = errors.New("invalid minimum: must be non-negative")

	// ErrUnavailableClass is returned when a minimum is configured for a class
	// that has no characters in the alphabet.
	ErrUnavailableClass = errors.New("minimum configured for a character class that is not in the alphabet")
)

// MaxLength caps the characters of a password, the words of a passphrase and
// the bytes of a token.
const MaxLength = entropy.MaxLength

// Minimums maps a character class to the least number of its characters
// a password must contain. Classes that are absent require nothing.
type Minimums map[charset.Class]int

// Total returns the sum of all minimums.
func (m Minimums) Total() int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}

// classes returns the configured classes in alphabet order.
func (m Minimums) classes() []charset.Class {
	return slices.Sorted(maps.Keys(m))
}

// ValidatePassword checks that Password can satisfy the request.
// It is called by Password itself and is exported so that callers can reject
// a request before they create a Source.
func ValidatePassword(alphabet *charset.Alphabet, length int, minimums Minimums) error {
	if alphabet == nil || alphabet.Size() == 0 {
		return charset.ErrEmptyAlphabet
	}

	for _, c := range minimums.classes() {
		n := minimums[c]
		if n < 0 {
			return fmt.Errorf("%w: %s minimum is %d", ErrInvalidMinimum, c, n)
		}
		if n > 0 && alphabet.ClassSize(c) == 0 {
			return fmt.Errorf("%w: %s", ErrUnavailableClass, c)
		}
	}

	if length <= 0 || length > MaxLength {
		return fmt.Errorf("%w: got %d, maximum is %d", ErrInvalidLength, length, MaxLength)
	}
	if total := minimums.Total(); length < total {
		return fmt.Errorf("%w: length %d is less than the required %d", ErrInvalidLength, length, total)
	}
	return nil
}

// Password draws length characters uniformly from alphabet and then makes
// sure every class reaches its minimum.
//
// When the free draw leaves a class short, positions held by classes with a
// surplus are chosen uniformly and overwritten with uniform characters of the
// short class. After any such repair the whole password is shuffled so the
// repaired characters are not tied to particular positions.
func Password(src Source, alphabet *charset.Alphabet, length int, minimums Minimums) (string, error) {
	if err := ValidatePassword(alphabet, length, minimums); err != nil {
		return "", err
	}

	buf := make([]rune, length)
	counts := make(map[charset.Class]int, len(alphabet.Classes()))
	for i := range buf {
		r := alphabet.At(src.IntN(alphabet.Size()))
		buf[i] = r
		counts[classOf(r)]++
	}

	repaired := false
	for _, short := range minimums.classes() {
		for counts[short] < minimums[short] {
			pos := pickSurplusPosition(src, buf, counts, minimums)
			counts[classOf(buf[pos])]--
			buf[pos] = alphabet.ClassAt(short, src.IntN(alphabet.ClassSize(short)))
			counts[short]++
			repaired = true
		}
	}

	if repaired {
		shuffle(src, len(buf), func(i, j int) {
			buf[i], buf[j] = buf[j], buf[i]
		})
	}

	return string(buf), nil
}

// pickSurplusPosition returns a uniformly chosen position whose character
// belongs to a class holding more than its minimum.
// While any class is below its minimum and the total length covers all
// minimums, at least one such position exists.
func pickSurplusPosition(src Source, buf []rune, counts map[charset.Class]int, minimums Minimums) int {
	candidates := make([]int, 0, len(buf))
	for i, r := range buf {
		c := classOf(r)
		if counts[c] > minimums[c] {
			candidates = append(candidates, i)
		}
	}
	return candidates[src.IntN(len(candidates))]
}

// classOf returns the class of a character drawn from an Alphabet.
func classOf(r rune) charset.Class {
	c, _ := charset.ClassOfRune(r)
	return c
}

// CountClasses returns how many characters of each class s contains.
// Characters outside every class are ignored.
func CountClasses(s string) map[charset.Class]int {
	counts := make(map[charset.Class]int)
	for _, r := range s {
		if c, ok := charset.ClassOfRune(r); ok {
			counts[c]++
		}
	}
	return counts
}
