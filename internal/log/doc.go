// Package log provides secure logging for genix, built on top of the
// standard slog package.
//
// Generated secrets must never reach a log. The SecureHandler masks:
//   - attributes whose key names a secret (password, passphrase, token, pin,
//     seed, clipboard contents, ...)
//   - string values shaped like generated tokens (long hexadecimal, base64
//     or alphanumeric runs)
//
// Values implementing slog.LogValuer are resolved before masking, so a
// type can decide which of its fields are safe to log.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("generated", "password", pw) // password=***REDACTED***
package log
