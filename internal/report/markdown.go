package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/genix/internal/engine"
	"github.com/nao1215/genix/internal/entropy"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs results in Markdown format.
// This format is designed for documentation and sharing, for example when
// handing out a batch of initial credentials.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the results table, a strength summary and a footer.
func (w *MarkdownWriter) Write(results []engine.Result) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Generated Secrets")
	md.PlainText("")

	w.writeResults(md, results)
	w.writeSummary(md, results)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeResults writes one table row per result.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, results []engine.Result) {
	if len(results) == 0 {
		md.PlainText("No secrets generated.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			codeCell(r.Password),
			string(r.Style),
			strconv.Itoa(r.Length),
			strconv.Itoa(r.PoolSize),
			formatBits(r.Report.Bits),
			r.Report.Label.String(),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Secret", "Style", "Length", "Pool", "Entropy (bits)", "Strength"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSummary writes the label distribution and an alert for the weakest result.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, results []engine.Result) {
	md.H2("Strength Summary")
	md.PlainText("")

	counts := LabelCounts(results)
	rows := make([][]string, 0, len(entropy.AllLabels())+1)
	for _, l := range entropy.AllLabels() {
		rows = append(rows, []string{l.String(), strconv.Itoa(counts[l])})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(len(results)) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Strength", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(results) > 1 {
		w.writePieChart(md, counts)
	}

	w.writeAlert(md, results)
}

// writePieChart writes a mermaid pie chart of the label distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, counts map[entropy.Label]int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Strength Distribution"),
		piechart.WithShowData(true),
	)

	for _, l := range entropy.AllLabels() {
		if counts[l] > 0 {
			chart.LabelAndIntValue(l.String(), uint64(counts[l]))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert keyed to the weakest result.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, results []engine.Result) {
	weakest, ok := Weakest(results)
	if !ok {
		return
	}

	switch weakest {
	case entropy.VeryWeak:
		md.Cautionf("At least one secret is %s. Increase the length or enable more character classes.", weakest)
	case entropy.Weak:
		md.Warningf("At least one secret is %s and should not protect anything important.", weakest)
	case entropy.Moderate:
		md.Importantf("The weakest secret is %s. Consider a longer secret for long-lived credentials.", weakest)
	default:
		md.Tip("Every secret is Strong or better.")
	}
	md.PlainText("")
}

// WriteAnalysis outputs a property table for the analyzed secret.
// The secret itself is not part of the analysis and is never written.
func (w *MarkdownWriter) WriteAnalysis(a *entropy.Analysis) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Strength Analysis")
	md.PlainText("")

	hint := string(a.Hint)
	if hint == "" {
		hint = "auto"
	}

	rows := [][]string{
		{"Style", hint},
		{"Classes", classList(a)},
		{"Mode", a.Report.Mode.String()},
		{"Length", strconv.Itoa(a.Report.Length)},
		{"Pool size", strconv.Itoa(a.Report.PoolSize)},
		{"Entropy (bits)", formatBits(a.Report.Bits)},
		{"Strength", a.Report.Label.String()},
		{"Pattern score", strconv.Itoa(a.PatternScore) + "/4"},
		{"Pattern entropy (bits)", formatBits(a.PatternBits)},
	}
	if a.WordCount > 0 {
		rows = append(rows, []string{"Assumed wordlist size", strconv.Itoa(a.AssumedWordlistSize)})
	}
	if a.CrackTime != "" {
		rows = append(rows, []string{"Crack time", a.CrackTime})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if a.PatternScore < 3 && a.Report.Label >= entropy.Strong {
		md.Warning("The combinatorial estimate is high, but the secret contains guessable patterns.")
		md.PlainText("")
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [genix](https://github.com/nao1215/genix)*")
}

// codeCell renders a secret as inline code that survives a table cell.
// Double backticks let the secret itself contain a backtick.
func codeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return "`` " + s + " ``"
}

// formatBits formats an entropy estimate with two decimals.
func formatBits(bits float64) string {
	return strconv.FormatFloat(bits, 'f', 2, 64)
}
