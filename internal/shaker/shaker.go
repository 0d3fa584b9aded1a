// Package shaker provides the main tree-shaking API.
//
// It coordinates parsing, effect analysis, statement marking and printing
// to produce JavaScript with the unused top-level statements removed.
package shaker

import (
	"io"
	"log/slog"

	"github.com/HugoDaniel/treeshaker/internal/ast"
	"github.com/HugoDaniel/treeshaker/internal/diagnostic"
	"github.com/HugoDaniel/treeshaker/internal/parser"
	"github.com/HugoDaniel/treeshaker/internal/printer"
	"github.com/HugoDaniel/treeshaker/internal/sourcemap"
	"github.com/HugoDaniel/treeshaker/internal/timers"
	"github.com/HugoDaniel/treeshaker/internal/treeshake"
)

// Timer labels reported by Options.Timers.
const (
	TimerParse    = "parse"
	TimerAnalyse  = "analyse"
	TimerGenerate = "generate"
)

// Options controls shaking behavior.
type Options struct {
	// TreeShaking removes statements without effects that nothing uses.
	// When false the input is reprinted unchanged.
	TreeShaking bool

	// PureGlobals trusts the known JavaScript built-ins to be free of effects.
	PureGlobals bool

	// PropertyReadSideEffects treats reads of unknown members as effects.
	PropertyReadSideEffects bool

	// KeepComments keeps the comments directly above surviving statements.
	KeepComments bool

	// KeepLines lists 1-based lines whose statements are always kept.
	KeepLines []int

	// GenerateSourceMap enables source map generation
	GenerateSourceMap bool

	// SourceMapOptions configures source map output
	SourceMapOptions SourceMapOptions

	// Logger receives debug output about each phase. Nil discards it.
	Logger *slog.Logger

	// Timers measures each phase. Nil disables timing.
	Timers *timers.Timers
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		TreeShaking:             true,
		PropertyReadSideEffects: true,
		KeepComments:            true,
	}
}

// SourceMapOptions configures source map generation.
type SourceMapOptions struct {
	// File is the name of the generated file (for the "file" field)
	File string

	// SourceName is the name of the original source (for the "sources" array)
	SourceName string

	// IncludeSource embeds the original source in "sourcesContent"
	IncludeSource bool
}

// Result contains the shaking output.
type Result struct {
	// Code is the shaken JavaScript, or the input when parsing failed.
	Code string

	// Errors encountered while parsing.
	Errors []Error

	// Warnings about constructs that limit shaking.
	Warnings []Error

	// Statements describes every top-level statement of the input.
	Statements []Statement

	// Stats about the run.
	Stats Stats

	// Diagnostics is the formatted form of Errors and Warnings with source
	// excerpts.
	Diagnostics string

	// SourceMap is the generated source map (nil if not requested)
	SourceMap *sourcemap.SourceMap
}

// Error represents a shaking error or warning.
type Error struct {
	Code    string
	Message string
	Line    int
	Column  int
}

// Statement describes a top-level statement and the verdict on it.
type Statement struct {
	Index  int
	Line   int
	Start  int
	End    int
	Type   string
	Reason treeshake.Reason
}

// Live reports whether the statement survived.
func (s Statement) Live() bool {
	return s.Reason != treeshake.Removed
}

// Stats provides shaking statistics.
type Stats struct {
	OriginalSize      int
	ShakenSize        int
	StatementsTotal   int
	StatementsRemoved int
}

// Shaker removes unused code from JavaScript modules.
type Shaker struct {
	options Options
	logger  *slog.Logger
}

// New creates a new shaker with the given options.
func New(options Options) *Shaker {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Shaker{options: options, logger: logger}
}

// Shake removes the unused top-level statements of source.
func (s *Shaker) Shake(source string) Result {
	result := Result{
		Stats: Stats{OriginalSize: len(source)},
	}
	diagnostics := diagnostic.NewDiagnosticList(source)

	// 1. Parse into the syntax tree
	s.options.Timers.Start(TimerParse)
	p := parser.New(source)
	p.PureGlobals = s.options.PureGlobals
	program, errs := p.Parse()
	s.options.Timers.End(TimerParse)

	// 2. Report parse errors, returning the source untouched
	if len(errs) > 0 {
		for _, err := range errs {
			diagnostics.AddErrorAt(err.Line, err.Column, err.Code, err.Message)
		}
		s.logger.Debug("parse failed", "errors", len(errs))
		s.collectDiagnostics(&result, diagnostics)
		result.Code = source
		result.Stats.ShakenSize = len(source)
		return result
	}
	s.logger.Debug("parsed", "statements", len(program.Body), "bytes", len(source))

	// 3. Mark the statements to keep
	s.options.Timers.Start(TimerAnalyse)
	lines := diagnostic.NewLineIndex(source)
	marks := s.mark(program, lines)
	s.options.Timers.End(TimerAnalyse)

	for _, offset := range marks.EvalOffsets {
		diagnostics.AddWarning(offset, diagnostic.CodeDirectEval,
			"direct eval can reach every binding; no statement is removed")
	}
	result.Statements = describe(program, lines, marks)
	for _, stmt := range result.Statements {
		if !stmt.Live() {
			s.logger.Debug("statement removed", "line", stmt.Line, "type", stmt.Type)
		}
	}

	// 4. Print the surviving statements
	s.options.Timers.Start(TimerGenerate)
	var sourceMapGen *sourcemap.Generator
	if s.options.GenerateSourceMap {
		sourceMapGen = sourcemap.NewGenerator(source)
		sourceMapGen.SetFile(s.options.SourceMapOptions.File)
		sourceMapGen.SetSourceName(s.options.SourceMapOptions.SourceName)
		sourceMapGen.IncludeSourceContent(s.options.SourceMapOptions.IncludeSource)
	}
	pr := printer.New(printer.Options{
		KeepComments: s.options.KeepComments,
		SourceMap:    sourceMapGen,
	}, source)
	result.Code = pr.Print(program, marks)
	if sourceMapGen != nil {
		result.SourceMap = sourceMapGen.Generate()
	}
	s.options.Timers.End(TimerGenerate)

	s.collectDiagnostics(&result, diagnostics)
	result.Stats.ShakenSize = len(result.Code)
	result.Stats.StatementsTotal = len(program.Body)
	result.Stats.StatementsRemoved = marks.DeadCount
	s.logger.Debug("shaken",
		"removed", marks.DeadCount,
		"kept", len(program.Body)-marks.DeadCount,
		"bytes", result.Stats.ShakenSize)

	return result
}

func (s *Shaker) mark(program *ast.Program, lines *diagnostic.LineIndex) *treeshake.Result {
	if !s.options.TreeShaking {
		return treeshake.KeepAll(program)
	}
	return treeshake.Mark(program, lines, treeshake.Options{
		PropertyReadSideEffects: s.options.PropertyReadSideEffects,
		KeepLines:               s.options.KeepLines,
	})
}

func (s *Shaker) collectDiagnostics(result *Result, diagnostics *diagnostic.DiagnosticList) {
	for _, d := range diagnostics.Errors() {
		result.Errors = append(result.Errors, toError(d))
	}
	for _, d := range diagnostics.Warnings() {
		result.Warnings = append(result.Warnings, toError(d))
		s.logger.Warn(d.Message, "line", d.Range.Start.Line, "code", string(d.Code))
	}
	result.Diagnostics = diagnostics.Format()
}

func toError(d diagnostic.Diagnostic) Error {
	return Error{
		Code:    string(d.Code),
		Message: d.Message,
		Line:    d.Range.Start.Line,
		Column:  d.Range.Start.Column,
	}
}

func describe(program *ast.Program, lines *diagnostic.LineIndex, marks *treeshake.Result) []Statement {
	statements := make([]Statement, 0, len(program.Body))
	for i, stmt := range program.Body {
		base := stmt.Base()
		line, _ := lines.ByteOffsetToLineColumn(base.Start)
		statements = append(statements, Statement{
			Index:  i,
			Line:   line + 1,
			Start:  base.Start,
			End:    base.End,
			Type:   stmt.Type().String(),
			Reason: marks.Reasons[i],
		})
	}
	return statements
}
