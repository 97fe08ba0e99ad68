// Package database provides the SQLite wordlist catalog for genix.
//
// The catalog stores imported wordlists under a name so that passphrases
// can be generated with --wordlist-name instead of a file path. For each
// wordlist it keeps the ordered words, the source path and a BLAKE2b
// checksum. The checksum is verified on every load, so a list modified
// outside genix is rejected rather than silently used.
//
// Generated passwords are never written to the catalog.
//
// We use SQLite via modernc.org/sqlite, which is CGO-free and keeps the
// catalog in a single file under the XDG data directory.
package database
