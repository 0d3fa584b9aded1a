// Package api provides the public API for the JavaScript tree-shaker.
//
// This package is intended for programmatic use of the tree-shaker.
// For CLI usage, see cmd/treeshaker.
package api

import (
	"github.com/HugoDaniel/treeshaker/internal/shaker"
)

// Options controls shaking behavior.
type Options struct {
	// TreeShaking removes top-level statements that have no effects and
	// are not used by a kept statement. When false the input is reprinted.
	TreeShaking bool

	// PureGlobals trusts the known JavaScript built-ins, such as Math.max
	// or Object.keys, to be free of effects.
	PureGlobals bool

	// PropertyReadSideEffects treats reads of members that cannot be
	// resolved as effects, since they may run a getter or throw.
	PropertyReadSideEffects bool

	// KeepComments keeps the comments directly above kept statements.
	KeepComments bool

	// KeepLines lists 1-based lines whose statements are always kept.
	KeepLines []int

	// SourceMap enables source map generation.
	// If true, the result will include a source map.
	SourceMap bool

	// SourceMapOptions configures source map generation.
	// Only used when SourceMap is true.
	SourceMapOptions SourceMapOptions
}

// SourceMapOptions configures source map generation.
type SourceMapOptions struct {
	// File is the name of the generated file (for the "file" field in the source map).
	File string

	// SourceName is the name of the original source file (for the "sources" array).
	SourceName string

	// IncludeSource embeds the original source code in "sourcesContent".
	IncludeSource bool
}

// DefaultOptions returns the options used by the CLI without flags.
func DefaultOptions() Options {
	defaults := shaker.DefaultOptions()
	return Options{
		TreeShaking:             defaults.TreeShaking,
		PureGlobals:             defaults.PureGlobals,
		PropertyReadSideEffects: defaults.PropertyReadSideEffects,
		KeepComments:            defaults.KeepComments,
	}
}

// Statement describes a top-level statement of the input.
type Statement struct {
	// Line is the 1-based line the statement starts on.
	Line int `json:"line"`

	// Start and End are byte offsets of the statement in the input.
	Start int `json:"start"`
	End   int `json:"end"`

	// Type is the syntax node type, such as "VariableDeclaration".
	Type string `json:"type"`

	// Reason says why the statement was kept, or "removed".
	Reason string `json:"reason"`
}

// Stats provides shaking statistics.
type Stats struct {
	OriginalSize      int `json:"originalSize"`
	ShakenSize        int `json:"shakenSize"`
	StatementsTotal   int `json:"statementsTotal"`
	StatementsRemoved int `json:"statementsRemoved"`
}

// Result contains the shaking output.
type Result struct {
	// Code is the shaken JavaScript source code.
	// If Errors is non-empty, Code is the unmodified input.
	Code string `json:"code"`

	// Errors contains any errors encountered while parsing.
	Errors []string `json:"errors,omitempty"`

	// Warnings contains constructs that prevented shaking.
	Warnings []string `json:"warnings,omitempty"`

	// Statements describes every top-level statement of the input.
	Statements []Statement `json:"statements"`

	// Removed lists the statements that were dropped.
	Removed []Statement `json:"removed"`

	// Stats about the run.
	Stats Stats `json:"stats"`

	// SourceMap is the generated source map as a JSON string.
	// Empty if source map generation was not requested.
	SourceMap string `json:"sourceMap,omitempty"`

	// SourceMapDataURI is the source map as a data URI for inline embedding.
	SourceMapDataURI string `json:"-"`
}

// Shake removes the unused top-level statements of source.
func Shake(source string, opts Options) Result {
	s := shaker.New(shaker.Options{
		TreeShaking:             opts.TreeShaking,
		PureGlobals:             opts.PureGlobals,
		PropertyReadSideEffects: opts.PropertyReadSideEffects,
		KeepComments:            opts.KeepComments,
		KeepLines:               opts.KeepLines,
		GenerateSourceMap:       opts.SourceMap,
		SourceMapOptions: shaker.SourceMapOptions{
			File:          opts.SourceMapOptions.File,
			SourceName:    opts.SourceMapOptions.SourceName,
			IncludeSource: opts.SourceMapOptions.IncludeSource,
		},
	})
	return FromShaker(s.Shake(source))
}

// FromShaker converts an internal shaker result to the public form.
func FromShaker(result shaker.Result) Result {
	apiResult := Result{
		Code:       result.Code,
		Errors:     messages(result.Errors),
		Warnings:   messages(result.Warnings),
		Statements: []Statement{},
		Removed:    []Statement{},
		Stats: Stats{
			OriginalSize:      result.Stats.OriginalSize,
			ShakenSize:        result.Stats.ShakenSize,
			StatementsTotal:   result.Stats.StatementsTotal,
			StatementsRemoved: result.Stats.StatementsRemoved,
		},
	}

	// Include source map if generated
	if result.SourceMap != nil {
		apiResult.SourceMap = result.SourceMap.ToJSON()
		apiResult.SourceMapDataURI = result.SourceMap.ToDataURI()
	}

	for _, stmt := range result.Statements {
		converted := Statement{
			Line:   stmt.Line,
			Start:  stmt.Start,
			End:    stmt.End,
			Type:   stmt.Type,
			Reason: stmt.Reason.String(),
		}
		apiResult.Statements = append(apiResult.Statements, converted)
		if !stmt.Live() {
			apiResult.Removed = append(apiResult.Removed, converted)
		}
	}

	return apiResult
}

func messages(errs []shaker.Error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Message
	}
	return out
}
