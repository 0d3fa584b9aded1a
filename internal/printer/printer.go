// Package printer outputs the surviving statements of a program.
//
// Kept statements are copied from the source text byte for byte, so their
// formatting and inner comments are untouched. Each statement is followed by
// a newline. Removed statements and the whitespace around them disappear.
package printer

import (
	"strings"

	"github.com/HugoDaniel/treeshaker/internal/ast"
	"github.com/HugoDaniel/treeshaker/internal/sourcemap"
)

// Liveness tells the printer which top-level statements to emit.
type Liveness interface {
	IsLive(i int) bool
}

// KeepAll emits every statement.
type KeepAll struct{}

func (KeepAll) IsLive(int) bool { return true }

// Options controls printer output.
type Options struct {
	// KeepComments emits the comment block directly above each kept
	// statement, and any comments after the last statement.
	KeepComments bool

	// SourceMap, when set, receives a mapping for every line of every
	// kept statement.
	SourceMap *sourcemap.Generator
}

// Printer slices kept statements out of one source text.
type Printer struct {
	options Options
	source  string

	buf  strings.Builder
	line int
}

// New creates a new printer for source.
func New(options Options, source string) *Printer {
	return &Printer{options: options, source: source}
}

// Print outputs the statements of program that live reports as kept.
func (p *Printer) Print(program *ast.Program, live Liveness) string {
	p.buf.Reset()
	p.line = 0
	if program == nil {
		return ""
	}
	if live == nil {
		live = KeepAll{}
	}

	previous := -1
	for i, stmt := range program.Body {
		start, end := p.clamp(stmt.Base().Start), p.clamp(stmt.Base().End)
		gapStart := 0
		if previous >= 0 {
			gapStart = previous
		}
		gap := p.source[gapStart:start]
		first := previous < 0
		previous = end

		if !live.IsLive(i) {
			continue
		}
		if p.options.KeepComments {
			p.printComments(attachedComments(gap, first))
		}
		p.printStatement(start, end)
		p.printNewline()
	}

	if p.options.KeepComments && previous >= 0 {
		p.printComments(trailingComments(p.source[previous:]))
	}
	return p.buf.String()
}

// ----------------------------------------------------------------------------
// Output Helpers
// ----------------------------------------------------------------------------

func (p *Printer) print(s string) {
	p.buf.WriteString(s)
	p.line += strings.Count(s, "\n")
}

func (p *Printer) printNewline() {
	p.buf.WriteByte('\n')
	p.line++
}

func (p *Printer) printStatement(start, end int) {
	text := p.source[start:end]
	if p.options.SourceMap != nil {
		offset := start
		for i, line := range strings.SplitAfter(text, "\n") {
			if strings.TrimSpace(line) != "" {
				p.options.SourceMap.AddMapping(p.line+i, 0, offset)
			}
			offset += len(line)
		}
	}
	p.print(text)
}

func (p *Printer) printComments(lines []string) {
	for _, line := range lines {
		p.print(line)
		p.printNewline()
	}
}

func (p *Printer) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(p.source) {
		return len(p.source)
	}
	return offset
}

// ----------------------------------------------------------------------------
// Comments
// ----------------------------------------------------------------------------

// attachedComments returns the comment lines of gap that sit directly above
// the following statement, with no blank line in between. The first line of
// a gap after a statement belongs to that statement and is skipped, and text
// on the statement's own line is kept as a separate line.
func attachedComments(gap string, first bool) []string {
	lines := splitLines(gap)
	if !first {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil
	}

	inline := strings.TrimSpace(lines[len(lines)-1])
	above := lines[:len(lines)-1]
	from := 0
	for i, line := range above {
		if strings.TrimSpace(line) == "" {
			from = i + 1
		}
	}

	var out []string
	for _, line := range above[from:] {
		out = append(out, strings.TrimRight(line, " \t"))
	}
	if inline != "" {
		out = append(out, inline)
	}
	return out
}

// trailingComments returns the non-blank lines after the last statement,
// skipping the rest of its own line.
func trailingComments(tail string) []string {
	lines := splitLines(tail)[1:]
	var out []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, strings.TrimRight(line, " \t"))
		}
	}
	return out
}

func splitLines(s string) []string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
