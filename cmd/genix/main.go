// Package main provides the entry point for the genix CLI.
//
// genix generates random passwords, PINs, passphrases and byte tokens, and
// estimates the strength of generated or user supplied secrets.
//
// Usage:
//
//	genix generate --length 24
//	genix generate --style passphrase --words 6
//	genix check 'correct-horse-battery-staple' --style passphrase
//
// See --help for all available options.
package main

// main is the entry point for genix.
func main() {
	Execute()
}
