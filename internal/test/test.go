// Package test provides testing utilities for the tree-shaker.
//
// Output comparisons report unified diffs so a failing printer or shaker
// test shows exactly which statements were kept or dropped.
package test

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// AssertEqual checks if two values are equal and reports a test error if not.
func AssertEqual[T comparable](t *testing.T, actual, expected T) {
	t.Helper()
	if actual != expected {
		t.Errorf("\nexpected: %v\nactual:   %v", expected, actual)
	}
}

// AssertEqualWithDiff checks if two strings are equal and shows a diff if not.
func AssertEqualWithDiff(t *testing.T, actual, expected string) {
	t.Helper()
	if actual != expected {
		t.Errorf("\n%s", Diff(expected, actual))
	}
}

// Diff produces a unified diff between two strings.
func Diff(expected, actual string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		return "diff failed: " + err.Error()
	}
	return diff
}
