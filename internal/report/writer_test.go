package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/genix/internal/engine"
	"github.com/nao1215/genix/internal/entropy"
)

// createTestResults returns results covering several labels.
func createTestResults() []engine.Result {
	return []engine.Result{
		{
			Password:        "k7#Qm2!vX9pL&4rT8wZ1",
			Style:           engine.StyleRandom,
			Length:          20,
			RequestedLength: 20,
			PoolSize:        89,
			Report:          entropy.Estimate(entropy.ModeCharacters, 20, 89),
		},
		{
			Password:        "4821",
			Style:           engine.StylePin,
			Length:          4,
			RequestedLength: 4,
			PoolSize:        10,
			Report:          entropy.Estimate(entropy.ModeCharacters, 4, 10),
		},
		{
			Password:        "apple-river-stone-cloud-lamp-fox",
			Style:           engine.StylePassphrase,
			Length:          6,
			RequestedLength: 3,
			LengthAdjusted:  true,
			PoolSize:        256,
			Report:          entropy.Estimate(entropy.ModeWords, 6, 256),
		},
	}
}

func createTestAnalysis(t *testing.T) *entropy.Analysis {
	t.Helper()

	a, err := entropy.Analyze("correct-horse-battery-staple", entropy.HintPassphrase)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return a
}

// TestSimpleWriter tests the human-readable writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes secrets with summaries", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		n, err := w.Write(createTestResults())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("expected %d bytes reported, got %d", buf.Len(), n)
		}

		output := buf.String()
		for _, r := range createTestResults() {
			if !strings.Contains(output, r.Password+"\n") {
				t.Errorf("expected output to contain %q on its own line", r.Password)
			}
		}
		if !strings.Contains(output, "strength: Very Weak") {
			t.Errorf("expected pin to be labelled Very Weak: %s", output)
		}
		if !strings.Contains(output, "length: 6 words") {
			t.Errorf("expected passphrase length in words: %s", output)
		}
		if !strings.Contains(output, "length raised from 3 to 6") {
			t.Errorf("expected min-entropy adjustment note: %s", output)
		}
	})

	t.Run("quiet mode prints secrets only", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithQuiet(true))

		if _, err := w.Write(createTestResults()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "k7#Qm2!vX9pL&4rT8wZ1\n4821\napple-river-stone-cloud-lamp-fox\n"
		if buf.String() != want {
			t.Errorf("expected %q, got %q", want, buf.String())
		}
	})

	t.Run("token length is reported in bytes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)
		results := []engine.Result{{
			Password: strings.Repeat("ab", 16),
			Style:    engine.StyleHex,
			Length:   16,
			PoolSize: 256,
			Report:   entropy.Estimate(entropy.ModeCharacters, 16, 256),
		}}

		if _, err := w.Write(results); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "length: 16 bytes") {
			t.Errorf("expected byte length: %s", buf.String())
		}
		if !strings.Contains(buf.String(), "entropy: 128.00 bits") {
			t.Errorf("expected 128 bits: %s", buf.String())
		}
	})

	t.Run("color keeps label text", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithColor(true))

		if _, err := w.Write(createTestResults()[:1]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "Very Strong") {
			t.Errorf("expected label text in colored output: %s", buf.String())
		}
	})

	t.Run("writes analysis", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.WriteAnalysis(createTestAnalysis(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Words:          4 (assumed wordlist size 2048)") {
			t.Errorf("expected word count line: %s", output)
		}
		if !strings.Contains(output, "Pattern score:") {
			t.Errorf("expected pattern score line: %s", output)
		}
		if strings.Contains(output, "correct-horse-battery-staple") {
			t.Error("expected analyzed secret to be absent from output")
		}
	})

	t.Run("quiet analysis prints label only", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithQuiet(true))
		a := createTestAnalysis(t)

		if _, err := w.WriteAnalysis(a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != a.Report.Label.String()+"\n" {
			t.Errorf("expected label only, got %q", buf.String())
		}
	})
}

// TestJSONWriter tests the JSON writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid JSON report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithVersion("v1.2.3"))

		if _, err := w.Write(createTestResults()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got struct {
			Version string `json:"version"`
			Count   int    `json:"count"`
			Results []struct {
				Password string `json:"password"`
				Style    string `json:"style"`
				Entropy  struct {
					Mode  string  `json:"mode"`
					Bits  float64 `json:"bits"`
					Label string  `json:"label"`
				} `json:"entropy"`
			} `json:"results"`
		}
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
		}
		if got.Version != "v1.2.3" {
			t.Errorf("expected version v1.2.3, got %q", got.Version)
		}
		if got.Count != 3 || len(got.Results) != 3 {
			t.Fatalf("expected 3 results, got count=%d len=%d", got.Count, len(got.Results))
		}
		if got.Results[1].Style != "pin" {
			t.Errorf("expected pin style, got %q", got.Results[1].Style)
		}
		if got.Results[1].Entropy.Label != "Very Weak" {
			t.Errorf("expected Very Weak label, got %q", got.Results[1].Entropy.Label)
		}
		if got.Results[2].Entropy.Mode != "words" {
			t.Errorf("expected words mode, got %q", got.Results[2].Entropy.Mode)
		}
	})

	t.Run("summarizes labels", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestResults()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got struct {
			Labels map[string]int `json:"labels"`
		}
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		want := map[string]int{"Very Strong": 1, "Very Weak": 1, "Moderate": 1}
		if len(got.Labels) != len(want) {
			t.Fatalf("expected %v, got %v", want, got.Labels)
		}
		for k, v := range want {
			if got.Labels[k] != v {
				t.Errorf("label %q: expected %d, got %d", k, v, got.Labels[k])
			}
		}
	})

	t.Run("symbols are not HTML escaped", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestResults()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), `"k7#Qm2!vX9pL&4rT8wZ1"`) {
			t.Errorf("expected password verbatim, got %s", buf.String())
		}
	})

	t.Run("compact by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.Write(createTestResults()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Errorf("expected single line output, got %q", buf.String())
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		if _, err := w.Write(createTestResults()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"count\": 3") {
			t.Errorf("expected indented output, got %s", buf.String())
		}
	})

	t.Run("empty results encode as empty array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.Write(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), `"results":[]`) {
			t.Errorf("expected empty results array, got %s", buf.String())
		}
	})

	t.Run("writes analysis", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		if _, err := w.WriteAnalysis(createTestAnalysis(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got map[string]any
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got["hint"] != "passphrase" {
			t.Errorf("expected passphrase hint, got %v", got["hint"])
		}
		if got["word_count"] != float64(4) {
			t.Errorf("expected word_count 4, got %v", got["word_count"])
		}
	})
}

// TestMarkdownWriter tests the Markdown writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes results table and summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestResults()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Generated Secrets",
			"## Strength Summary",
			"`` 4821 ``",
			"```mermaid",
			"Strength Distribution",
			"[!CAUTION]",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q:\n%s", want, output)
			}
		}
	})

	t.Run("strong batch gets a tip", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestResults()[:1]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "[!TIP]") {
			t.Errorf("expected tip alert:\n%s", output)
		}
		if strings.Contains(output, "```mermaid") {
			t.Errorf("expected no chart for a single result:\n%s", output)
		}
	})

	t.Run("escapes pipes in secrets", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)
		results := createTestResults()[:1]
		results[0].Password = "ab|cd"

		if _, err := w.Write(results); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), `ab\|cd`) {
			t.Errorf("expected escaped pipe:\n%s", buf.String())
		}
	})

	t.Run("writes analysis", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.WriteAnalysis(createTestAnalysis(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Strength Analysis") {
			t.Errorf("expected analysis header:\n%s", output)
		}
		if !strings.Contains(output, "Assumed wordlist size") {
			t.Errorf("expected wordlist size row:\n%s", output)
		}
	})
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write(_ []engine.Result) (int, error) { return 0, errWrite }

func (failingWriter) WriteAnalysis(_ *entropy.Analysis) (int, error) { return 0, errWrite }

// TestMultiWriter tests writing to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var text, js bytes.Buffer
		m := NewMultiWriter(NewSimpleWriter(&text, WithQuiet(true)), NewJSONWriter(&js))

		n, err := m.Write(createTestResults())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != text.Len()+js.Len() {
			t.Errorf("expected %d bytes, got %d", text.Len()+js.Len(), n)
		}
		if text.Len() == 0 || js.Len() == 0 {
			t.Error("expected both writers to receive output")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		m := NewMultiWriter(failingWriter{}, NewSimpleWriter(&buf))

		_, err := m.WriteAnalysis(createTestAnalysis(t))
		if !errors.Is(err, errWrite) {
			t.Errorf("expected errWrite, got %v", err)
		}
		if buf.Len() != 0 {
			t.Error("expected later writers to be skipped")
		}
	})
}

func TestWeakest(t *testing.T) {
	t.Parallel()

	if _, ok := Weakest(nil); ok {
		t.Error("expected ok=false for no results")
	}

	got, ok := Weakest(createTestResults())
	if !ok || got != entropy.VeryWeak {
		t.Errorf("expected Very Weak, got %s (ok=%v)", got, ok)
	}

	counts := LabelCounts(createTestResults())
	if counts[entropy.VeryStrong] != 1 || counts[entropy.VeryWeak] != 1 || counts[entropy.Moderate] != 1 || counts[entropy.Strong] != 0 {
		t.Errorf("unexpected label counts: %v", counts)
	}
}
