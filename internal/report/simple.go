package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nao1215/genix/internal/engine"
	"github.com/nao1215/genix/internal/entropy"
)

// SimpleWriter outputs human-readable text.
// Each secret is printed on its own line followed by an indented summary of
// its strength. In quiet mode only the secrets are printed, one per line, so
// the output can be piped into other tools.
type SimpleWriter struct {
	baseWriter

	// quiet prints secrets only.
	quiet bool

	// color renders strength labels with lipgloss styles.
	color bool

	// renderer is bound to the output so lipgloss can detect its color profile.
	renderer *lipgloss.Renderer
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithQuiet prints only the generated secrets.
func WithQuiet(quiet bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.quiet = quiet
	}
}

// WithColor enables colored strength labels.
// Callers should disable it when the output is not a terminal.
func WithColor(color bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.color = color
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		renderer:   lipgloss.NewRenderer(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs each result in human-readable format.
func (w *SimpleWriter) Write(results []engine.Result) (int, error) {
	var sb strings.Builder

	for _, r := range results {
		sb.WriteString(r.Password)
		sb.WriteString("\n")
		if w.quiet {
			continue
		}
		w.writeSummary(&sb, r)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeSummary writes the indented strength line below a secret.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, r engine.Result) {
	unit := "characters"
	switch r.Report.Mode {
	case entropy.ModeWords:
		unit = "words"
	case entropy.ModeCharacters:
		if r.Style == engine.StyleHex || r.Style == engine.StyleBase64 {
			unit = "bytes"
		}
	}

	fmt.Fprintf(sb, "  style: %s  length: %d %s  pool: %d  entropy: %.2f bits  strength: %s\n",
		r.Style, r.Length, unit, r.PoolSize, r.Report.Bits, w.label(r.Report.Label))

	if r.LengthAdjusted {
		fmt.Fprintf(sb, "  length raised from %d to %d to reach the minimum entropy\n",
			r.RequestedLength, r.Length)
	}
}

// WriteAnalysis outputs the strength profile in human-readable format.
// Quiet mode prints the label only.
func (w *SimpleWriter) WriteAnalysis(a *entropy.Analysis) (int, error) {
	var sb strings.Builder

	if w.quiet {
		sb.WriteString(a.Report.Label.String())
		sb.WriteString("\n")
		return w.output.Write([]byte(sb.String()))
	}

	hint := string(a.Hint)
	if hint == "" {
		hint = "auto"
	}
	fmt.Fprintf(&sb, "Style:          %s\n", hint)
	fmt.Fprintf(&sb, "Classes:        %s\n", classList(a))
	if a.WordCount > 0 {
		fmt.Fprintf(&sb, "Words:          %d (assumed wordlist size %d)\n", a.WordCount, a.AssumedWordlistSize)
	} else {
		fmt.Fprintf(&sb, "Length:         %d\n", a.Report.Length)
	}
	fmt.Fprintf(&sb, "Pool size:      %d\n", a.Report.PoolSize)
	fmt.Fprintf(&sb, "Entropy:        %.2f bits\n", a.Report.Bits)
	fmt.Fprintf(&sb, "Strength:       %s\n", w.label(a.Report.Label))
	fmt.Fprintf(&sb, "Pattern score:  %d/4 (%.2f bits)\n", a.PatternScore, a.PatternBits)
	if a.CrackTime != "" {
		fmt.Fprintf(&sb, "Crack time:     %s\n", a.CrackTime)
	}

	return w.output.Write([]byte(sb.String()))
}

// label renders a strength label, colored when enabled.
func (w *SimpleWriter) label(l entropy.Label) string {
	if !w.color {
		return l.String()
	}
	return w.renderer.NewStyle().
		Bold(l >= entropy.Strong).
		Foreground(labelColor(l)).
		Render(l.String())
}

// labelColor maps a strength label to an ANSI color.
func labelColor(l entropy.Label) lipgloss.Color {
	switch l {
	case entropy.VeryWeak:
		return lipgloss.Color("9")
	case entropy.Weak:
		return lipgloss.Color("208")
	case entropy.Moderate:
		return lipgloss.Color("11")
	case entropy.Strong:
		return lipgloss.Color("10")
	case entropy.VeryStrong:
		return lipgloss.Color("14")
	default:
		return lipgloss.Color("7")
	}
}

// classList names the character classes found in an analyzed string.
func classList(a *entropy.Analysis) string {
	var classes []string
	if a.HasLower {
		classes = append(classes, "lowercase")
	}
	if a.HasUpper {
		classes = append(classes, "uppercase")
	}
	if a.HasDigit {
		classes = append(classes, "digits")
	}
	if a.HasSymbol {
		classes = append(classes, "symbols")
	}
	if len(classes) == 0 {
		return "none"
	}
	return strings.Join(classes, ", ")
}
