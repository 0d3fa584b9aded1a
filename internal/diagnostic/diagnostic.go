// Package diagnostic provides error reporting for the tree-shaker.
//
// Diagnostics carry a severity, a source range with 1-based line and column
// numbers, and are formatted with the offending source line and a caret.
package diagnostic

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic.
type Severity uint8

const (
	// Error stops the input from being processed.
	Error Severity = iota
	// Warning is a non-blocking issue.
	Warning
	// Note provides additional context for another diagnostic.
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Position represents a position in source code.
type Position struct {
	Offset int // Byte offset (0-based)
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
}

// Range represents a range in source code.
type Range struct {
	Start Position
	End   Position
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Range    Range
}

// Error returns a formatted error string.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Range.Start.Line, d.Range.Start.Column, d.Severity, d.Message)
}

// Code identifies the kind of a diagnostic.
type Code string

const (
	CodeSyntaxError       Code = "E0001"
	CodeUnsupportedSyntax Code = "E0002"

	CodeDirectEval Code = "W0001"
)

// DiagnosticList collects diagnostics for one source text.
type DiagnosticList struct {
	diagnostics []Diagnostic
	lineIndex   *LineIndex
	hasErrors   bool
}

// NewDiagnosticList creates a new diagnostic list for the given source.
func NewDiagnosticList(source string) *DiagnosticList {
	return &DiagnosticList{
		lineIndex: NewLineIndex(source),
	}
}

// Add adds a diagnostic to the list.
func (dl *DiagnosticList) Add(d Diagnostic) {
	dl.diagnostics = append(dl.diagnostics, d)
	if d.Severity == Error {
		dl.hasErrors = true
	}
}

// AddError adds an error diagnostic at the given byte offset.
func (dl *DiagnosticList) AddError(offset int, code Code, message string) {
	dl.AddErrorRange(offset, offset+1, code, message)
}

// AddErrorRange adds an error diagnostic for a byte range.
func (dl *DiagnosticList) AddErrorRange(start, end int, code Code, message string) {
	dl.Add(Diagnostic{
		Severity: Error,
		Code:     code,
		Message:  message,
		Range:    dl.MakeRange(start, end),
	})
}

// AddErrorAt adds an error reported by line and column, both 1-based.
func (dl *DiagnosticList) AddErrorAt(line, column int, code Code, message string) {
	offset := dl.lineIndex.LineColumnToByteOffset(line-1, column-1)
	dl.AddError(offset, code, message)
}

// AddWarning adds a warning diagnostic at the given byte offset.
func (dl *DiagnosticList) AddWarning(offset int, code Code, message string) {
	dl.Add(Diagnostic{
		Severity: Warning,
		Code:     code,
		Message:  message,
		Range:    dl.MakeRange(offset, offset+1),
	})
}

// MakePosition converts a byte offset to a Position.
func (dl *DiagnosticList) MakePosition(offset int) Position {
	line, col := dl.lineIndex.ByteOffsetToLineColumn(offset)
	return Position{
		Offset: offset,
		Line:   line + 1,
		Column: col + 1,
	}
}

// MakeRange converts byte offsets to a Range.
func (dl *DiagnosticList) MakeRange(start, end int) Range {
	return Range{
		Start: dl.MakePosition(start),
		End:   dl.MakePosition(end),
	}
}

// HasErrors returns true if there are any error-level diagnostics.
func (dl *DiagnosticList) HasErrors() bool {
	return dl.hasErrors
}

// Diagnostics returns all collected diagnostics.
func (dl *DiagnosticList) Diagnostics() []Diagnostic {
	return dl.diagnostics
}

// Errors returns only error-level diagnostics.
func (dl *DiagnosticList) Errors() []Diagnostic {
	return dl.filter(Error)
}

// Warnings returns only warning-level diagnostics.
func (dl *DiagnosticList) Warnings() []Diagnostic {
	return dl.filter(Warning)
}

func (dl *DiagnosticList) filter(severity Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range dl.diagnostics {
		if d.Severity == severity {
			out = append(out, d)
		}
	}
	return out
}

// Count returns the total number of diagnostics.
func (dl *DiagnosticList) Count() int {
	return len(dl.diagnostics)
}

// Format formats all diagnostics as a human-readable string.
func (dl *DiagnosticList) Format() string {
	if len(dl.diagnostics) == 0 {
		return ""
	}

	var sb strings.Builder
	for i := range dl.diagnostics {
		sb.WriteString(dl.FormatDiagnostic(&dl.diagnostics[i]))
	}
	return sb.String()
}

// FormatDiagnostic formats a single diagnostic with source context.
func (dl *DiagnosticList) FormatDiagnostic(d *Diagnostic) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%d:%d: %s: %s\n", d.Range.Start.Line, d.Range.Start.Column, d.Severity, d.Message)

	sourceLine := dl.lineIndex.Line(d.Range.Start.Line - 1)
	if sourceLine != "" {
		fmt.Fprintf(&sb, "    %s\n", sourceLine)
		caret := strings.Repeat(" ", d.Range.Start.Column-1+4) + "^"
		if d.Range.End.Line == d.Range.Start.Line && d.Range.End.Column > d.Range.Start.Column+1 {
			caret += strings.Repeat("~", d.Range.End.Column-d.Range.Start.Column-1)
		}
		sb.WriteString(caret)
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Clear removes all diagnostics.
func (dl *DiagnosticList) Clear() {
	dl.diagnostics = dl.diagnostics[:0]
	dl.hasErrors = false
}
