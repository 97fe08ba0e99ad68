package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/nao1215/genix/internal/charset"
	"github.com/nao1215/genix/internal/clipboard"
	"github.com/nao1215/genix/internal/config"
	"github.com/nao1215/genix/internal/entropy"
	"github.com/nao1215/genix/internal/generator"
)

// TestNewGenerateCmd tests the generate command creation.
func TestNewGenerateCmd(t *testing.T) {
	t.Parallel()

	cmd := NewGenerateCmd()

	t.Run("has gen alias", func(t *testing.T) {
		t.Parallel()
		if !slices.Contains(cmd.Aliases, "gen") {
			t.Errorf("expected alias 'gen', got %v", cmd.Aliases)
		}
	})

	flags := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"style", "", "random"},
		{"length", "l", "20"},
		{"words", "w", "6"},
		{"count", "n", "1"},
		{"lower", "", "true"},
		{"symbols", "", "true"},
		{"no-ambiguous", "", "false"},
		{"min-digits", "", "0"},
		{"min-entropy", "", "0"},
		{"separator", "", "-"},
		{"wordlist", "", ""},
		{"wordlist-name", "", ""},
		{"clipboard", "", "false"},
		{"json", "j", "false"},
		{"markdown", "m", "false"},
		{"quiet", "q", "false"},
		{"output", "o", ""},
		{"config", "c", ""},
		{"profile", "p", ""},
		{"concurrency", "", "4"},
	}
	for _, tt := range flags {
		t.Run("has "+tt.name+" flag", func(t *testing.T) {
			t.Parallel()

			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("expected %s flag", tt.name)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("expected shorthand %q, got %q", tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("expected default %q, got %q", tt.defValue, flag.DefValue)
			}
		})
	}
}

// TestGenerate tests secret generation through the CLI.
func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("default password", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeConfig(t, "")
		stdout, _, err := executeCmd(t, "generate", "-q", "-c", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
		if len(lines) != 1 {
			t.Fatalf("expected 1 line, got %d: %q", len(lines), stdout)
		}
		if len([]rune(lines[0])) != config.DefaultLength {
			t.Errorf("expected %d characters, got %q", config.DefaultLength, lines[0])
		}
	})

	t.Run("summary shows entropy", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeConfig(t, "")
		stdout, _, err := executeCmd(t, "gen", "-c", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "strength: Very Strong") {
			t.Errorf("expected a Very Strong label: %s", stdout)
		}
	})

	t.Run("count produces distinct secrets", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeConfig(t, "")
		stdout, _, err := executeCmd(t, "generate", "-q", "-n", "5", "-c", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Fields(stdout)
		if len(lines) != 5 {
			t.Fatalf("expected 5 secrets, got %d", len(lines))
		}
		seen := make(map[string]bool)
		for _, l := range lines {
			if seen[l] {
				t.Errorf("duplicate secret %q", l)
			}
			seen[l] = true
		}
	})

	t.Run("pin contains digits only", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeConfig(t, "")
		stdout, _, err := executeCmd(t, "generate", "-q", "--style", "pin", "-l", "8", "-c", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		pin := strings.TrimSpace(stdout)
		if len(pin) != 8 {
			t.Fatalf("expected 8 digits, got %q", pin)
		}
		for _, r := range pin {
			if r < '0' || r > '9' {
				t.Errorf("unexpected character %q in pin", r)
			}
		}
	})

	t.Run("passphrase uses separator", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeConfig(t, "")
		stdout, _, err := executeCmd(t, "generate", "-q", "--style", "passphrase", "-w", "4", "--separator", ".", "-c", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		words := strings.Split(strings.TrimSpace(stdout), ".")
		if len(words) != 4 {
			t.Errorf("expected 4 words, got %v", words)
		}
	})

	t.Run("hex token length is in bytes", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeConfig(t, "")
		stdout, _, err := executeCmd(t, "generate", "-q", "--style", "hex", "-l", "16", "-c", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		token := strings.TrimSpace(stdout)
		decoded, err := hex.DecodeString(token)
		if err != nil {
			t.Fatalf("expected hex output, got %q: %v", token, err)
		}
		if len(decoded) != 16 {
			t.Errorf("expected 16 bytes, got %d", len(decoded))
		}
	})

	t.Run("minimums are honored", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeConfig(t, "")
		stdout, _, err := executeCmd(t, "generate", "-q", "-n", "20", "-l", "6",
			"--min-digits", "3", "--min-symbols", "2", "-c", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, pw := range strings.Fields(stdout) {
			counts := generator.CountClasses(pw)
			if counts[charset.Digit] < 3 || counts[charset.Symbol] < 2 {
				t.Errorf("expected at least 3 digits and 2 symbols in %q", pw)
			}
		}
	})

	t.Run("min entropy lengthens passphrase", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeConfig(t, "")
		stdout, _, err := executeCmd(t, "generate", "--style", "passphrase", "-w", "3",
			"--min-entropy", "64", "-j", "-c", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got struct {
			Results []struct {
				Length          int  `json:"length"`
				RequestedLength int  `json:"requested_length"`
				LengthAdjusted  bool `json:"length_adjusted"`
			} `json:"results"`
		}
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		r := got.Results[0]
		if r.Length != 8 || r.RequestedLength != 3 || !r.LengthAdjusted {
			t.Errorf("expected 3 words raised to 8, got %+v", r)
		}
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeConfig(t, "")
		stdout, _, err := executeCmd(t, "generate", "-j", "-n", "3", "-c", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got struct {
			Version string            `json:"version"`
			Count   int               `json:"count"`
			Results []json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if got.Count != 3 || len(got.Results) != 3 {
			t.Errorf("expected 3 results, got count=%d len=%d", got.Count, len(got.Results))
		}
		if got.Version == "" {
			t.Error("expected version in JSON report")
		}
	})

	t.Run("markdown output", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeConfig(t, "")
		stdout, _, err := executeCmd(t, "generate", "-m", "-c", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "# Generated Secrets") {
			t.Errorf("expected markdown header: %s", stdout)
		}
	})

	t.Run("output file", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeConfig(t, "")
		outPath := filepath.Join(t.TempDir(), "nested", "secrets.txt")
		stdout, _, err := executeCmd(t, "generate", "-q", "-o", outPath, "-c", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "" {
			t.Errorf("expected nothing on stdout, got %q", stdout)
		}

		content, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if len([]rune(strings.TrimSpace(string(content)))) != config.DefaultLength {
			t.Errorf("unexpected file content %q", content)
		}

		if runtime.GOOS != "windows" {
			info, err := os.Stat(outPath)
			if err != nil {
				t.Fatalf("failed to stat output: %v", err)
			}
			if perm := info.Mode().Perm(); perm != 0600 {
				t.Errorf("expected permissions 0600, got %o", perm)
			}
		}
	})

	t.Run("wordlist file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		wordsPath := filepath.Join(dir, "words.txt")
		if err := os.WriteFile(wordsPath, []byte("11111\tred\n11112\tgreen\n11113\tblue\n"), 0600); err != nil {
			t.Fatalf("failed to write wordlist: %v", err)
		}

		cfgPath := writeConfig(t, "")
		stdout, _, err := executeCmd(t, "generate", "-q", "--style", "passphrase", "-w", "5",
			"--wordlist", wordsPath, "-c", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, w := range strings.Split(strings.TrimSpace(stdout), "-") {
			if !slices.Contains([]string{"red", "green", "blue"}, w) {
				t.Errorf("unexpected word %q", w)
			}
		}
	})
}

// TestGenerateConfigPrecedence tests defaults < file < profile < flags.
func TestGenerateConfigPrecedence(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, `
defaults:
  length: 12
  symbols: false
profiles:
  long:
    length: 16
`)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "file defaults", args: nil, want: 12},
		{name: "profile", args: []string{"-p", "long"}, want: 16},
		{name: "flag wins", args: []string{"-p", "long", "-l", "30"}, want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"generate", "-q", "-c", cfgPath}, tt.args...)
			stdout, _, err := executeCmd(t, args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			pw := strings.TrimSpace(stdout)
			if len([]rune(pw)) != tt.want {
				t.Errorf("expected length %d, got %q", tt.want, pw)
			}
			if strings.ContainsAny(pw, "!@#$%&*()-_=+[]{};:,.<>?/`~") {
				t.Errorf("expected no symbols from file defaults, got %q", pw)
			}
		})
	}
}

// TestGenerateErrors tests that invalid requests fail with configuration errors.
func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name:    "unknown style",
			args:    []string{"--style", "emoji"},
			wantErr: config.ErrInvalidStyle,
		},
		{
			name:    "zero length",
			args:    []string{"-l", "0"},
			wantErr: config.ErrInvalidLength,
		},
		{
			name:    "length beyond the maximum",
			args:    []string{"-l", "1152921504606846976"},
			wantErr: config.ErrInvalidLength,
		},
		{
			name:    "infinite min entropy",
			args:    []string{"--min-entropy", "Inf"},
			wantErr: config.ErrInvalidMinEntropy,
		},
		{
			name:    "unreachable min entropy",
			args:    []string{"--min-entropy", "1e300"},
			wantErr: entropy.ErrUnreachableEntropy,
		},
		{
			name:    "no classes",
			args:    []string{"--lower=false", "--upper=false", "--digits=false", "--symbols=false"},
			wantErr: config.ErrNoCharacterClass,
		},
		{
			name:    "minimums exceed length",
			args:    []string{"-l", "4", "--min-digits", "3", "--min-symbols", "2"},
			wantErr: config.ErrMinimumsExceedLength,
		},
		{
			name:    "json and markdown",
			args:    []string{"-j", "-m"},
			wantErr: config.ErrConflictingReportFormats,
		},
		{
			name:    "missing profile",
			args:    []string{"-p", "nope"},
			wantErr: config.ErrProfileNotFound,
		},
		{
			name:    "zero count",
			args:    []string{"-n", "0"},
			wantErr: config.ErrInvalidCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfgPath := writeConfig(t, "")
			args := append([]string{"generate", "-c", cfgPath}, tt.args...)
			stdout, _, err := executeCmd(t, args...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if exitCode(err) != exitConfigError {
				t.Errorf("expected exit code %d, got %d", exitConfigError, exitCode(err))
			}
			if stdout != "" {
				t.Errorf("expected no output on error, got %q", stdout)
			}
		})
	}

	t.Run("explicit config file not found", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeCmd(t, "generate", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteText(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

// TestGenerateClipboard tests copying the first secret.
func TestGenerateClipboard(t *testing.T) {
	t.Parallel()

	t.Run("copies first secret", func(t *testing.T) {
		t.Parallel()

		cb := &fakeClipboard{}
		cmd := newGenerateCmd(cb)
		var stdout, stderr bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{"-q", "-n", "3", "--clipboard", "-c", writeConfig(t, "")})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		first := strings.Fields(stdout.String())[0]
		if cb.text != first {
			t.Errorf("expected clipboard to hold %q, got %q", first, cb.text)
		}
		if !strings.Contains(stderr.String(), "Copied") {
			t.Errorf("expected confirmation on stderr, got %q", stderr.String())
		}
	})

	t.Run("failure is only a warning", func(t *testing.T) {
		t.Parallel()

		cb := &fakeClipboard{err: clipboard.ErrUnavailable}
		cmd := newGenerateCmd(cb)
		var stdout, stderr bytes.Buffer
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{"-q", "--clipboard", "-c", writeConfig(t, "")})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("expected success despite clipboard failure, got %v", err)
		}
		if stdout.Len() == 0 {
			t.Error("expected the secret on stdout")
		}
		if !strings.Contains(stderr.String(), "failed to copy to clipboard") {
			t.Errorf("expected warning on stderr, got %q", stderr.String())
		}
		if strings.Contains(stderr.String(), strings.TrimSpace(stdout.String())) {
			t.Error("expected secret to be absent from stderr")
		}
	})
}

// TestCloseOutput tests that a failing close is reported without hiding an
// earlier error.
func TestCloseOutput(t *testing.T) {
	t.Parallel()

	errFlush := errors.New("flush failed")
	errWrite := errors.New("write failed")

	tests := []struct {
		name     string
		closeErr error
		prior    error
		want     error
	}{
		{name: "clean close", closeErr: nil, prior: nil, want: nil},
		{name: "close error is returned", closeErr: errFlush, prior: nil, want: errFlush},
		{name: "earlier error wins", closeErr: errFlush, prior: errWrite, want: errWrite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.prior
			closeOutput(func() error { return tt.closeErr }, &err)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	t.Run("closing the output file twice fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "secrets.txt")
		_, closeFn, err := openOutput(NewGenerateCmd(), path)
		if err != nil {
			t.Fatalf("failed to open output: %v", err)
		}
		var first error
		closeOutput(closeFn, &first)
		if first != nil {
			t.Fatalf("unexpected error on first close: %v", first)
		}

		var second error
		closeOutput(closeFn, &second)
		if !errors.Is(second, os.ErrClosed) {
			t.Errorf("expected os.ErrClosed, got %v", second)
		}
	})
}
