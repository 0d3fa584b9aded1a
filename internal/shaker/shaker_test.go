package shaker

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HugoDaniel/treeshaker/internal/test"
	"github.com/HugoDaniel/treeshaker/internal/timers"
	"github.com/HugoDaniel/treeshaker/internal/treeshake"
)

// ----------------------------------------------------------------------------
// Test Helpers
// ----------------------------------------------------------------------------

func expectShaken(t *testing.T, options Options, input, expected string) {
	t.Helper()
	t.Run(input, func(t *testing.T) {
		t.Helper()
		result := New(options).Shake(input)
		require.Empty(t, result.Errors, "unexpected errors")
		test.AssertEqualWithDiff(t, result.Code, expected)
	})
}

func pure() Options {
	options := DefaultOptions()
	options.PureGlobals = true
	return options
}

// ----------------------------------------------------------------------------
// Shaking Tests
// ----------------------------------------------------------------------------

func TestShakeRemovesUnused(t *testing.T) {
	expectShaken(t, DefaultOptions(),
		"const unused = 1;\nconst used = 2;\nconsole.log(used);",
		"const used = 2;\nconsole.log(used);\n")

	expectShaken(t, DefaultOptions(),
		"function helper() { return 1; }\nfunction dead() {}\nsideEffect(helper());",
		"function helper() { return 1; }\nsideEffect(helper());\n")
}

func TestShakeParenthesized(t *testing.T) {
	input := "// run\n(function () { foo(); })();\n(function () { foo(); }());\n(foo());"

	expectShaken(t, DefaultOptions(), input,
		"// run\n(function () { foo(); })();\n(function () { foo(); }());\n(foo());\n")

	options := DefaultOptions()
	options.KeepComments = false
	expectShaken(t, options, input,
		"(function () { foo(); })();\n(function () { foo(); }());\n(foo());\n")

	expectShaken(t, DefaultOptions(),
		"const x = (1);\n(function () {})();\nbar(x);",
		"const x = (1);\nbar(x);\n")
}

func TestShakePureGlobals(t *testing.T) {
	input := "const m = Math.max(1, 2);\nconst unused = m + 1;"

	expectShaken(t, pure(), input, "")
	expectShaken(t, DefaultOptions(), input, "const m = Math.max(1, 2);\n")
}

func TestShakeDisabled(t *testing.T) {
	options := DefaultOptions()
	options.TreeShaking = false
	input := "const unused = 1;\nfunction f() {}"

	result := New(options).Shake(input)
	test.AssertEqualWithDiff(t, result.Code, "const unused = 1;\nfunction f() {}\n")
	assert.Equal(t, 0, result.Stats.StatementsRemoved)
	for _, stmt := range result.Statements {
		assert.Equal(t, treeshake.KeptUnshaken, stmt.Reason)
	}
}

func TestShakeKeepsComments(t *testing.T) {
	input := "// helper\nfunction helper() {}\n// entry\nmain();"
	expectShaken(t, DefaultOptions(), input, "// entry\nmain();\n")

	options := DefaultOptions()
	options.KeepComments = false
	expectShaken(t, options, input, "main();\n")
}

func TestShakeKeepLines(t *testing.T) {
	options := pure()
	options.KeepLines = []int{2}
	expectShaken(t, options,
		"const a = 1;\nconst b = 2;\nconst c = 3;",
		"const b = 2;\n")
}

func TestShakeStatements(t *testing.T) {
	result := New(pure()).Shake("let count = 0;\n\nfunction tick() { count++; }\ntick();\nconst dead = 1;")
	require.Empty(t, result.Errors)
	require.Len(t, result.Statements, 4)

	want := []struct {
		line   int
		typ    string
		reason treeshake.Reason
	}{
		{1, "VariableDeclaration", treeshake.KeptForDeclaration},
		{3, "FunctionDeclaration", treeshake.KeptForDeclaration},
		{4, "ExpressionStatement", treeshake.KeptForEffects},
		{5, "VariableDeclaration", treeshake.Removed},
	}
	for i, w := range want {
		stmt := result.Statements[i]
		assert.Equal(t, i, stmt.Index)
		assert.Equal(t, w.line, stmt.Line, "statement %d line", i)
		assert.Equal(t, w.typ, stmt.Type, "statement %d type", i)
		assert.Equal(t, w.reason, stmt.Reason, "statement %d reason", i)
	}
	assert.False(t, result.Statements[3].Live())

	assert.Equal(t, 4, result.Stats.StatementsTotal)
	assert.Equal(t, 1, result.Stats.StatementsRemoved)
	assert.Equal(t, len(result.Code), result.Stats.ShakenSize)
}

func TestShakeSourceMap(t *testing.T) {
	options := pure()
	options.GenerateSourceMap = true
	options.SourceMapOptions = SourceMapOptions{File: "out.js", SourceName: "in.js", IncludeSource: true}

	input := "const dead = 1;\nrun();"
	result := New(options).Shake(input)
	require.NotNil(t, result.SourceMap)
	assert.Equal(t, "out.js", result.SourceMap.File)
	assert.Equal(t, []string{"in.js"}, result.SourceMap.Sources)
	assert.Equal(t, []string{input}, result.SourceMap.SourcesContent)
	// Output line 0 comes from source line 1
	assert.Equal(t, "AACA", result.SourceMap.Mappings)

	assert.Nil(t, New(pure()).Shake(input).SourceMap)
}

// ----------------------------------------------------------------------------
// Diagnostics Tests
// ----------------------------------------------------------------------------

func TestShakeParseError(t *testing.T) {
	input := "const a = 1;\nconst = ;"
	result := New(DefaultOptions()).Shake(input)

	require.NotEmpty(t, result.Errors)
	assert.Equal(t, input, result.Code, "the input is returned on parse errors")
	assert.Equal(t, "E0001", result.Errors[0].Code)
	assert.Equal(t, 2, result.Errors[0].Line)
	assert.Contains(t, result.Diagnostics, "error:")
	assert.Empty(t, result.Statements)
}

func TestShakeDirectEval(t *testing.T) {
	result := New(pure()).Shake("const unused = 1;\neval('unused');")

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "W0001", result.Warnings[0].Code)
	assert.Equal(t, 2, result.Warnings[0].Line)
	assert.Contains(t, result.Diagnostics, "warning:")
	test.AssertEqualWithDiff(t, result.Code, "const unused = 1;\neval('unused');\n")
}

// ----------------------------------------------------------------------------
// Logging and Timing Tests
// ----------------------------------------------------------------------------

func TestShakeLogsRemovals(t *testing.T) {
	var buf bytes.Buffer
	options := pure()
	options.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	New(options).Shake("const dead = 1;")

	assert.Contains(t, buf.String(), "msg=parsed")
	assert.Contains(t, buf.String(), `msg="statement removed" line=1 type=VariableDeclaration`)
	assert.Contains(t, buf.String(), "removed=1")
}

func TestShakeTimers(t *testing.T) {
	options := pure()
	options.Timers = timers.New(true)

	New(options).Shake("foo();")

	timings := options.Timers.Timings()
	for _, label := range []string{TimerParse, TimerAnalyse, TimerGenerate} {
		assert.Contains(t, timings, label)
	}

	var out bytes.Buffer
	perfFile := filepath.Join(t.TempDir(), "input.js.perf.json")
	require.NoError(t, options.Timers.Flush(&out, perfFile))
	assert.Contains(t, out.String(), TimerAnalyse+":")
}
