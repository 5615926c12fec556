// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - MarkdownWriter: Markdown output with tables and a mermaid chart
//   - JSONWriter: Structured JSON output for tool integration
//
// Design decision: We separate report writing from the analysis record
// (which is in the model package) so new output formats can be added
// without modifying the core data structures.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
