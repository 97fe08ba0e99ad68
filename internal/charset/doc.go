// Package charset builds the alphabets that random-character passwords are
// drawn from.
//
// An Alphabet is assembled from character classes (lowercase, uppercase,
// digits, symbols), minus any excluded characters. The result is ordered by
// class and then by each class's natural order, so two builds from the same
// options always produce the same alphabet. Only the drawing of characters
// is random; the composition of the alphabet is not.
//
// Every character in an Alphabet belongs to exactly one class. The generator
// relies on this to enforce per-class minimums.
package charset
