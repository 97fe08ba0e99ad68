package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"sync"
)

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// minSecretLength is the shortest registered secret that is scrubbed from
// free text. Shorter secrets such as 4-digit PINs would mask unrelated digits
// in messages; they are still masked as whole attribute values.
const minSecretLength = 6

// secretKeys are attribute keys whose value is always masked.
// "pin" is matched only as a whole key so that "ping" or "spinner" stay readable.
var secretKeys = map[string]struct{}{
	"pin":       {},
	"clipboard": {},
	"candidate": {},
	"input":     {},
}

// secretKeyParts are masked when they appear anywhere in a key,
// e.g. "new_password" or "token_hex".
var secretKeyParts = []string{
	"password", "passwd", "passphrase", "secret", "token", "seed", "mnemonic",
}

// secretShapes match values that look like generated tokens, whatever
// their key.
var secretShapes = []*regexp.Regexp{
	regexp.MustCompile(`^[0-9a-fA-F]{32,}$`),         // hex, 128 bits or more
	regexp.MustCompile(`^[A-Za-z0-9+/]{22,}={0,2}$`), // base64, 128 bits or more
	regexp.MustCompile(`^[a-zA-Z0-9]{32,}$`),
}

// redactor decides what to mask. It is shared by a handler and every
// handler derived from it with WithAttrs or WithGroup, so secrets registered
// on one are scrubbed by all.
type redactor struct {
	mu      sync.RWMutex
	secrets map[string]struct{}
}

func (r *redactor) add(secrets []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.secrets == nil {
		r.secrets = make(map[string]struct{}, len(secrets))
	}
	for _, s := range secrets {
		if s != "" {
			r.secrets[s] = struct{}{}
		}
	}
}

// isSecret reports whether s is exactly a registered secret.
func (r *redactor) isSecret(s string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.secrets[s]
	return ok
}

// scrub replaces every registered secret inside s.
func (r *redactor) scrub(s string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for secret := range r.secrets {
		if len(secret) >= minSecretLength && strings.Contains(s, secret) {
			s = strings.ReplaceAll(s, secret, MaskValue)
		}
	}
	return s
}

func (r *redactor) attr(a slog.Attr) slog.Attr {
	if isSecretKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		group := v.Group()
		clean := make([]slog.Attr, 0, len(group))
		for _, ga := range group {
			clean = append(clean, r.attr(ga))
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clean...)}

	case slog.KindString:
		s := v.String()
		if r.isSecret(s) || isSensitiveValue(s) {
			return slog.String(a.Key, MaskValue)
		}
		return slog.String(a.Key, r.scrub(s))

	case slog.KindAny:
		// Errors may wrap user input in their message.
		if err, ok := v.Any().(error); ok {
			return slog.String(a.Key, r.scrub(err.Error()))
		}
	}
	return slog.Attr{Key: a.Key, Value: v}
}

// SecureHandler wraps an slog.Handler and masks secrets before records
// reach it. An attribute is masked when its key names a secret, when its
// value is shaped like a token, or when its value is a secret registered
// with Redact. Registered secrets are also scrubbed from messages.
type SecureHandler struct {
	handler slog.Handler
	r       *redactor
}

// NewSecureHandler creates a SecureHandler wrapping handler.
// A nil handler selects slog.Default().Handler().
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler, r: &redactor{}}
}

// Enabled reports whether the wrapped handler handles level.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record and passes it on.
func (h *SecureHandler) Handle(ctx context.Context, rec slog.Record) error {
	clean := slog.NewRecord(rec.Time, rec.Level, h.r.scrub(rec.Message), rec.PC)
	rec.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(h.r.attr(a))
		return true
	})
	return h.handler.Handle(ctx, clean)
}

// WithAttrs masks attrs once and attaches them to the wrapped handler.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = h.r.attr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(clean), r: h.r}
}

// WithGroup returns a handler that nests later attributes under name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name), r: h.r}
}

// Redact registers secrets with the SecureHandler behind logger so that
// they never appear in its output, even inside messages or errors.
// It reports false when logger does not use a SecureHandler.
func Redact(logger *slog.Logger, secrets ...string) bool {
	if logger == nil {
		return false
	}
	h, ok := logger.Handler().(*SecureHandler)
	if !ok {
		return false
	}
	h.r.add(secrets)
	return true
}

// isSecretKey reports whether an attribute key names a secret.
func isSecretKey(key string) bool {
	k := strings.ToLower(key)
	if _, ok := secretKeys[k]; ok {
		return true
	}
	return containsSensitiveKeyword(k)
}

func containsSensitiveKeyword(key string) bool {
	for _, part := range secretKeyParts {
		if strings.Contains(key, part) {
			return true
		}
	}
	return false
}

func isSensitiveValue(value string) bool {
	for _, re := range secretShapes {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// NewSecureLogger returns a text logger writing to w through a SecureHandler.
// The level is Debug when verbose is set and Warn otherwise.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewSecureJSONLogger is NewSecureLogger with JSON output.
func NewSecureJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
