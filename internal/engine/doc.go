// Package engine turns a generation request into passwords and their
// strength estimates.
//
// Generation happens in two steps. Prepare builds the alphabet or picks the
// wordlist, applies the min-entropy length adjustment and validates every
// size; any error at this point is a configuration error and no randomness
// has been drawn. Plan.Draw then produces one password from the Source it is
// given. Run combines both for the single-password case.
//
// BatchGenerator draws many passwords from one Plan with a bounded number of
// goroutines, giving each item its own Source.
package engine
