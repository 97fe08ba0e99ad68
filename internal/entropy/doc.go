// Package entropy estimates the strength of generated passwords.
//
// Estimates are combinatorial: a secret made of length independent uniform
// draws from a pool of size N carries length * log2(N) bits. This holds for
// characters drawn from an alphabet and for words drawn with replacement from
// a wordlist, which is why Estimate takes a Mode only for reporting.
//
// Bits are mapped to a Label through Thresholds. The default boundaries are
// named constants and can be replaced through the configuration file.
//
// Analyze applies the same formula to arbitrary user input by inferring the
// pool from the character classes present. It also reports a pattern-aware
// score from zxcvbn, which catches dictionary words and keyboard walks that the
// combinatorial estimate cannot see.
package entropy
