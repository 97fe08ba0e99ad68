package charset

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyAlphabet is returned when the enabled classes and exclusions
	// leave no characters to draw from.
	ErrEmptyAlphabet = errors.New("empty alphabet: enable at least one character class and do not exclude all of its characters")

	// ErrUnknownClass is returned by ParseClass for unrecognized class names.
	ErrUnknownClass = errors.New("unknown character class")
)

// Options selects the characters of an Alphabet.
type Options struct {
	// Classes are the enabled character classes. Order and duplicates
	// do not matter.
	Classes []Class

	// Exclude lists characters removed from the enabled classes.
	Exclude string

	// ExcludeAmbiguous removes AmbiguousChars in addition to Exclude.
	ExcludeAmbiguous bool
}

// Alphabet is an immutable ordered set of distinct characters.
type Alphabet struct {
	chars   []rune
	byClass [classCount][]rune
}

// Build assembles the alphabet described by opts.
// It returns ErrEmptyAlphabet when no character survives the exclusions.
func Build(opts Options) (*Alphabet, error) {
	var enabled [classCount]bool
	for _, c := range opts.Classes {
		if !c.valid() {
			return nil, ErrUnknownClass
		}
		enabled[c] = true
	}

	excluded := make(map[rune]bool, len(opts.Exclude)+len(AmbiguousChars))
	for _, r := range opts.Exclude {
		excluded[r] = true
	}
	if opts.ExcludeAmbiguous {
		for _, r := range AmbiguousChars {
			excluded[r] = true
		}
	}

	a := &Alphabet{}
	for _, c := range AllClasses() {
		if !enabled[c] {
			continue
		}
		for _, r := range c.Chars() {
			if excluded[r] {
				continue
			}
			a.byClass[c] = append(a.byClass[c], r)
			a.chars = append(a.chars, r)
		}
	}

	if len(a.chars) == 0 {
		return nil, ErrEmptyAlphabet
	}
	return a, nil
}

// Size returns the number of characters in the alphabet.
func (a *Alphabet) Size() int {
	return len(a.chars)
}

// At returns the i-th character. It panics if i is out of range.
func (a *Alphabet) At(i int) rune {
	return a.chars[i]
}

// ClassSize returns how many characters of class c the alphabet holds.
func (a *Alphabet) ClassSize(c Class) int {
	if !c.valid() {
		return 0
	}
	return len(a.byClass[c])
}

// ClassAt returns the i-th character of class c.
func (a *Alphabet) ClassAt(c Class, i int) rune {
	return a.byClass[c][i]
}

// Classes returns the classes that contribute at least one character,
// in alphabet order.
func (a *Alphabet) Classes() []Class {
	classes := make([]Class, 0, classCount)
	for _, c := range AllClasses() {
		if len(a.byClass[c]) > 0 {
			classes = append(classes, c)
		}
	}
	return classes
}

// ClassOf returns the class of r if r is part of the alphabet.
func (a *Alphabet) ClassOf(r rune) (Class, bool) {
	c, ok := ClassOfRune(r)
	if !ok {
		return 0, false
	}
	for _, member := range a.byClass[c] {
		if member == r {
			return c, true
		}
	}
	return 0, false
}

// Contains reports whether r is part of the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.ClassOf(r)
	return ok
}

// String returns the characters of the alphabet in order.
func (a *Alphabet) String() string {
	var sb strings.Builder
	sb.Grow(len(a.chars))
	for _, r := range a.chars {
		sb.WriteRune(r)
	}
	return sb.String()
}
