package test

import (
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	diff := Diff("a();\nb();\n", "a();\nc();\n")

	for _, want := range []string{"--- expected", "+++ actual", "-b();", "+c();", " a();"} {
		if !strings.Contains(diff, want) {
			t.Errorf("diff does not contain %q:\n%s", want, diff)
		}
	}
}

func TestDiffEqual(t *testing.T) {
	if diff := Diff("same\n", "same\n"); diff != "" {
		t.Errorf("expected no diff, got:\n%s", diff)
	}
}
