package printer

import (
	"testing"

	"github.com/HugoDaniel/treeshaker/internal/parser"
	"github.com/HugoDaniel/treeshaker/internal/sourcemap"
	"github.com/HugoDaniel/treeshaker/internal/test"
)

// keep lists the statements to emit by index.
type keep []bool

func (k keep) IsLive(i int) bool { return i < len(k) && k[i] }

// ----------------------------------------------------------------------------
// Test Helpers
// ----------------------------------------------------------------------------

func expectPrinted(t *testing.T, options Options, input string, live Liveness, expected string) {
	t.Helper()
	t.Run(input, func(t *testing.T) {
		t.Helper()
		program, errs := parser.New(input).Parse()
		if len(errs) > 0 {
			t.Fatalf("parse errors: %v", errs)
		}
		actual := New(options, input).Print(program, live)
		test.AssertEqualWithDiff(t, actual, expected)
	})
}

// ----------------------------------------------------------------------------
// Statement Tests
// ----------------------------------------------------------------------------

func TestPrintAll(t *testing.T) {
	expectPrinted(t, Options{}, "const a = 1;\nconst b = 2;", KeepAll{}, "const a = 1;\nconst b = 2;\n")
	expectPrinted(t, Options{}, "a();b();", nil, "a();\nb();\n")
	expectPrinted(t, Options{}, "", nil, "")
}

func TestPrintRemoved(t *testing.T) {
	expectPrinted(t, Options{},
		"const a = 1;\nconst b = 2;\nconsole.log(a);",
		keep{true, false, true},
		"const a = 1;\nconsole.log(a);\n")
	expectPrinted(t, Options{},
		"const a = 1;\n\n\nconst b = 2;",
		keep{false, false},
		"")
}

func TestPrintPreservesFormatting(t *testing.T) {
	expectPrinted(t, Options{},
		"function f(a,   b) {\n  // inner\n  return a+b;\n}\nf(1, 2);",
		keep{true, true},
		"function f(a,   b) {\n  // inner\n  return a+b;\n}\nf(1, 2);\n")
}

func TestPrintMissingSemicolons(t *testing.T) {
	expectPrinted(t, Options{},
		"const a = 1\nconst b = 2\nfoo(a)",
		keep{true, false, true},
		"const a = 1\nfoo(a)\n")
}

func TestPrintParenthesized(t *testing.T) {
	input := "// setup\n(function(){foo()})();\n// call\n(function(){foo()}());\n(foo());\nx = (y);"

	expectPrinted(t, Options{KeepComments: true}, input, KeepAll{},
		"// setup\n(function(){foo()})();\n// call\n(function(){foo()}());\n(foo());\nx = (y);\n")
	expectPrinted(t, Options{}, input, KeepAll{},
		"(function(){foo()})();\n(function(){foo()}());\n(foo());\nx = (y);\n")
	expectPrinted(t, Options{KeepComments: true}, input, keep{false, true, false, true},
		"// call\n(function(){foo()}());\nx = (y);\n")
}

// ----------------------------------------------------------------------------
// Comment Tests
// ----------------------------------------------------------------------------

func TestPrintComments(t *testing.T) {
	input := "// about a\nconst a = 1;\n// about b\nconst b = 2;\nfoo(a); // trailing\n// end"

	expectPrinted(t, Options{}, input, keep{true, false, true},
		"const a = 1;\nfoo(a);\n")
	expectPrinted(t, Options{KeepComments: true}, input, keep{true, false, true},
		"// about a\nconst a = 1;\nfoo(a);\n// end\n")
}

func TestPrintDetachedComments(t *testing.T) {
	expectPrinted(t, Options{KeepComments: true},
		"// header\n\n// about a\nconst a = 1;",
		keep{true},
		"// about a\nconst a = 1;\n")
}

func TestAttachedComments(t *testing.T) {
	tests := []struct {
		gap   string
		first bool
		want  []string
	}{
		{"", true, nil},
		{"\n", false, nil},
		{" // same line\n", false, nil},
		{"\n// one\n// two\n", false, []string{"// one", "// two"}},
		{"\n// far\n\n// near\n", false, []string{"// near"}},
		{"/* lead */ ", true, []string{"/* lead */"}},
		{"\r\n// crlf\r\n", false, []string{"// crlf"}},
	}
	for _, tt := range tests {
		got := attachedComments(tt.gap, tt.first)
		if len(got) != len(tt.want) {
			t.Errorf("attachedComments(%q) = %q, want %q", tt.gap, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("attachedComments(%q)[%d] = %q, want %q", tt.gap, i, got[i], tt.want[i])
			}
		}
	}
}

// ----------------------------------------------------------------------------
// Source Map Tests
// ----------------------------------------------------------------------------

func TestPrintSourceMap(t *testing.T) {
	input := "// header\n\nconst dead = 1;\n// keep\nfunction f() {\n  return 1;\n}\nf();"
	program, errs := parser.New(input).Parse()
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	gen := sourcemap.NewGenerator(input)
	actual := New(Options{KeepComments: true, SourceMap: gen}, input).Print(program, keep{false, true, true})
	test.AssertEqualWithDiff(t, actual, "// keep\nfunction f() {\n  return 1;\n}\nf();\n")

	// Output lines 1-4 come from source lines 4-7; the comment is unmapped
	want := []sourcemap.Mapping{
		{GenLine: 1, SrcLine: 4},
		{GenLine: 2, SrcLine: 5},
		{GenLine: 3, SrcLine: 6},
		{GenLine: 4, SrcLine: 7},
	}
	got := gen.Mappings()
	if len(got) != len(want) {
		t.Fatalf("expected %d mappings, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mapping %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
