package report

import (
	"io"

	"github.com/nao1215/genix/internal/engine"
	"github.com/nao1215/genix/internal/entropy"
)

// Writer renders generated secrets and strength analyses.
// Both methods return the number of bytes written.
type Writer interface {
	// Write outputs results in the order given.
	Write(results []engine.Result) (int, error)

	// WriteAnalysis outputs the strength profile of a user supplied secret.
	// The secret itself is never part of an Analysis.
	WriteAnalysis(analysis *entropy.Analysis) (int, error)
}

// MultiWriter sends the same output to several Writers in order, for
// example a terminal and a file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a MultiWriter over writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write calls Write on every writer and stops at the first error.
func (m *MultiWriter) Write(results []engine.Result) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.Write(results) })
}

// WriteAnalysis calls WriteAnalysis on every writer and stops at the first error.
func (m *MultiWriter) WriteAnalysis(analysis *entropy.Analysis) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteAnalysis(analysis) })
}

func (m *MultiWriter) each(write func(Writer) (int, error)) (int, error) {
	total := 0
	for _, w := range m.writers {
		n, err := write(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// LabelCounts returns how many results fall under each strength label.
// Labels without results are absent from the map.
func LabelCounts(results []engine.Result) map[entropy.Label]int {
	counts := make(map[entropy.Label]int)
	for _, r := range results {
		counts[r.Report.Label]++
	}
	return counts
}

// Weakest returns the lowest label among results.
// ok is false when results is empty.
func Weakest(results []engine.Result) (label entropy.Label, ok bool) {
	for i, r := range results {
		if i == 0 || r.Report.Label < label {
			label = r.Report.Label
		}
	}
	return label, len(results) > 0
}
