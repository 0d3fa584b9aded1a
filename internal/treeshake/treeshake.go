// Package treeshake decides which top-level statements of a program survive.
//
// Marking works by:
// 1. Keeping every statement whose evaluation has observable effects
// 2. Recording, per statement, the bindings it declares, reads and writes
// 3. Keeping the declarations of every binding a kept statement uses, and
//    the writes to every binding a kept statement reads, until nothing changes
//
// Function bodies are never shaken: a kept function keeps its whole body.
package treeshake

import (
	"github.com/HugoDaniel/treeshaker/internal/ast"
	"github.com/HugoDaniel/treeshaker/internal/diagnostic"
)

// Reason records why a statement was kept.
type Reason uint8

const (
	// Removed marks a statement that can be dropped.
	Removed Reason = iota
	// KeptForEffects marks a statement with observable effects.
	KeptForEffects
	// KeptForDeclaration marks a declaration of a binding in use.
	KeptForDeclaration
	// KeptForWrite marks a write to a binding a kept statement reads.
	KeptForWrite
	// KeptForLine marks a statement on a line the caller asked to keep.
	KeptForLine
	// KeptForEval marks every statement of a program calling eval directly.
	KeptForEval
	// KeptForDirective marks a directive such as "use strict".
	KeptForDirective
	// KeptUnshaken marks statements of a program that was not shaken.
	KeptUnshaken
)

func (r Reason) String() string {
	switch r {
	case Removed:
		return "removed"
	case KeptForEffects:
		return "effects"
	case KeptForDeclaration:
		return "declaration"
	case KeptForWrite:
		return "write"
	case KeptForLine:
		return "line"
	case KeptForEval:
		return "eval"
	case KeptForDirective:
		return "directive"
	case KeptUnshaken:
		return "unshaken"
	default:
		return "unknown"
	}
}

// Options controls marking.
type Options struct {
	// PropertyReadSideEffects treats reads of unknown members as effects.
	PropertyReadSideEffects bool

	// KeepLines lists 1-based lines whose statements are always kept.
	KeepLines []int
}

// Result holds the verdict for each top-level statement.
type Result struct {
	Reasons   []Reason
	DeadCount int

	// EvalOffsets are the source offsets of direct eval calls.
	EvalOffsets []int
}

// IsLive reports whether the i-th top-level statement is kept.
func (r *Result) IsLive(i int) bool {
	return i < len(r.Reasons) && r.Reasons[i] != Removed
}

// Mark computes which top-level statements of program survive. lines maps
// statement offsets to line numbers for Options.KeepLines; it may be nil
// when no lines are kept.
func Mark(program *ast.Program, lines *diagnostic.LineIndex, options Options) *Result {
	result := &Result{}
	if program == nil || len(program.Body) == 0 {
		return result
	}

	body := program.Body
	result.Reasons = make([]Reason, len(body))
	result.EvalOffsets = findDirectEval(program)

	if len(result.EvalOffsets) > 0 {
		for i := range result.Reasons {
			result.Reasons[i] = KeptForEval
		}
		return result
	}

	execution := ast.NewExecutionPathOptions().SetPropertyReadSideEffects(options.PropertyReadSideEffects)
	usages := make([]*usage, len(body))
	prologue := true
	for i, stmt := range body {
		usages[i] = collectUsage(stmt)
		prologue = prologue && isDirective(stmt)
		switch {
		case prologue:
			result.Reasons[i] = KeptForDirective
		case keepsLine(stmt, lines, options.KeepLines):
			result.Reasons[i] = KeptForLine
		case stmt.HasEffects(execution):
			result.Reasons[i] = KeptForEffects
		}
	}

	propagate(result.Reasons, usages)

	for _, reason := range result.Reasons {
		if reason == Removed {
			result.DeadCount++
		}
	}
	return result
}

// KeepAll returns a result keeping every statement of program.
func KeepAll(program *ast.Program) *Result {
	result := &Result{}
	if program == nil {
		return result
	}
	result.Reasons = make([]Reason, len(program.Body))
	for i := range result.Reasons {
		result.Reasons[i] = KeptUnshaken
	}
	return result
}

// propagate grows the live set until it is closed under the declaration
// and write rules.
func propagate(reasons []Reason, usages []*usage) {
	used := make(map[*ast.Variable]bool)
	read := make(map[*ast.Variable]bool)
	absorb := func(u *usage) {
		for v := range u.reads {
			used[v] = true
			read[v] = true
		}
		for v := range u.writes {
			used[v] = true
		}
	}
	for i, u := range usages {
		if reasons[i] != Removed {
			absorb(u)
		}
	}

	for changed := true; changed; {
		changed = false
		for i, u := range usages {
			if reasons[i] != Removed {
				continue
			}
			switch {
			case u.declaresAny(used):
				reasons[i] = KeptForDeclaration
			case u.writesAny(read):
				reasons[i] = KeptForWrite
			default:
				continue
			}
			absorb(u)
			changed = true
		}
	}
}

func keepsLine(stmt ast.Node, lines *diagnostic.LineIndex, keep []int) bool {
	if lines == nil || len(keep) == 0 {
		return false
	}
	first, _ := lines.ByteOffsetToLineColumn(stmt.Base().Start)
	last, _ := lines.ByteOffsetToLineColumn(stmt.Base().End - 1)
	for _, line := range keep {
		if line-1 >= first && line-1 <= last {
			return true
		}
	}
	return false
}

// isDirective reports whether stmt is a string expression statement, which
// in the leading position of a program forms its directive prologue.
func isDirective(stmt ast.Node) bool {
	expression, ok := stmt.(*ast.ExpressionStatement)
	if !ok {
		return false
	}
	literal, ok := expression.Expression.(*ast.Literal)
	return ok && literal.Kind == ast.LiteralString
}

// findDirectEval returns the offsets of calls to the global eval. Such code
// can read any binding by name, so nothing may be dropped.
func findDirectEval(program *ast.Program) []int {
	var offsets []int
	ast.Walk(program, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpression)
		if !ok {
			return true
		}
		if id, ok := call.Callee.(*ast.Identifier); ok && id.Name == "eval" && id.Variable != nil && id.Variable.IsGlobal() {
			offsets = append(offsets, call.Start)
		}
		return true
	})
	return offsets
}
