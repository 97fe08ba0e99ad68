// Package report writes generated secrets and strength analyses.
//
// This package contains writers for different output formats:
//   - SimpleWriter: human-readable text for terminal display
//   - JSONWriter: structured JSON for scripts and tool integration
//   - MarkdownWriter: Markdown tables and charts for documentation
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
