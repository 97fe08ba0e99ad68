package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nao1215/genix/internal/engine"
	"github.com/nao1215/genix/internal/entropy"
)

// JSONWriter outputs results as a single JSON document for scripts.
// Output is compact unless an indent option is given.
type JSONWriter struct {
	baseWriter

	prefix  string
	indent  string
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent indents nested values with indent, prefixing each line with prefix.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.prefix = prefix
		w.indent = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion records the genix version in every report.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter writing to output.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JSONReport is the document written for generated results.
type JSONReport struct {
	Version string `json:"version,omitempty"`
	Count   int    `json:"count"`

	// Labels counts results per strength label. Labels without results
	// are omitted.
	Labels map[entropy.Label]int `json:"labels"`

	Results []engine.Result `json:"results"`
}

// NewJSONReport builds the report for results. A nil slice is encoded as
// an empty array.
func NewJSONReport(results []engine.Result, version string) *JSONReport {
	if results == nil {
		results = []engine.Result{}
	}
	return &JSONReport{
		Version: version,
		Count:   len(results),
		Labels:  LabelCounts(results),
		Results: results,
	}
}

// Write outputs the results wrapped in a JSONReport.
func (w *JSONWriter) Write(results []engine.Result) (int, error) {
	return w.encode(NewJSONReport(results, w.version))
}

// WriteAnalysis outputs the analysis as a JSON object.
func (w *JSONWriter) WriteAnalysis(analysis *entropy.Analysis) (int, error) {
	return w.encode(analysis)
}

// encode writes v followed by a newline. HTML escaping is off so that
// symbols such as <, > and & appear in secrets as generated.
func (w *JSONWriter) encode(v any) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.prefix != "" || w.indent != "" {
		enc.SetIndent(w.prefix, w.indent)
	}
	if err := enc.Encode(v); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}
