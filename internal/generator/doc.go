// Package generator draws passwords, passphrases and byte tokens from an
// explicitly passed random Source.
//
// The Source is injected rather than global so that every invocation owns
// its draw sequence. Production callers use NewSecureSource, which returns a
// ChaCha8 generator seeded from crypto/rand; tests substitute a seeded
// generator from math/rand/v2 to get reproducible output.
//
// All index draws go through Source.IntN, which is unbiased for any bound,
// so no modulo reduction is ever applied to raw random values.
//
// Every function validates its arguments before the first draw, so a
// rejected request never consumes randomness.
package generator
