package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HugoDaniel/treeshaker/internal/test"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRunStdin(t *testing.T) {
	stdout, _, err := runCLI(t, "const unused = 1;\nrun();", "--no-config")
	require.NoError(t, err)
	test.AssertEqualWithDiff(t, stdout, "run();\n")
}

func TestRunFileWithConfig(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bundle.js")
	writeFile(t, input, "const m = Math.max(1, 2);\nrun();")
	writeFile(t, filepath.Join(dir, "treeshaker.yaml"), "pureGlobals: true\n")

	stdout, _, err := runCLI(t, "", input)
	require.NoError(t, err)
	test.AssertEqualWithDiff(t, stdout, "run();\n")

	// The CLI flag overrides the config file
	stdout, _, err = runCLI(t, "", "--pure-globals=false", input)
	require.NoError(t, err)
	test.AssertEqualWithDiff(t, stdout, "const m = Math.max(1, 2);\nrun();\n")
}

func TestRunOutputFile(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.js")

	stdout, stderr, err := runCLI(t, "const a = 1;\nrun(a);\nconst b = 2;", "--no-config", "-o", output)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "1 of 3 statements removed")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "const a = 1;\nrun(a);\n", string(data))
}

func TestRunNoTreeShake(t *testing.T) {
	stdout, _, err := runCLI(t, "const unused = 1;", "--no-config", "--no-treeshake")
	require.NoError(t, err)
	assert.Equal(t, "const unused = 1;\n", stdout)
}

func TestRunKeepLines(t *testing.T) {
	stdout, _, err := runCLI(t, "const a = 1;\nconst b = 2;", "--no-config", "--keep-lines", "2")
	require.NoError(t, err)
	assert.Equal(t, "const b = 2;\n", stdout)

	_, _, err = runCLI(t, "", "--no-config", "--keep-lines", "x")
	assert.ErrorContains(t, err, "--keep-lines")
}

func TestRunParseError(t *testing.T) {
	stdout, stderr, err := runCLI(t, "const = ;", "--no-config")
	assert.ErrorContains(t, err, "tree-shaking failed")
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "error:")
}

func TestRunReport(t *testing.T) {
	_, stderr, err := runCLI(t, "const a = 1;\nrun();", "--no-config", "--report")
	require.NoError(t, err)

	var report struct {
		Removed []struct {
			Line int    `json:"line"`
			Type string `json:"type"`
		} `json:"removed"`
	}
	require.NoError(t, json.Unmarshal([]byte(stderr), &report))
	require.Len(t, report.Removed, 1)
	assert.Equal(t, 1, report.Removed[0].Line)
	assert.Equal(t, "VariableDeclaration", report.Removed[0].Type)
}

func TestRunVerbose(t *testing.T) {
	_, stderr, err := runCLI(t, "const a = 1;", "--no-config", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, `msg="statement removed"`)
}

func TestRunPerf(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bundle.js")
	writeFile(t, input, "run();")

	_, stderr, err := runCLI(t, "", "--no-config", "--perf", input)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Storing performance information")
	assert.FileExists(t, input+".perf.json")
}

func TestRunSourceMap(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.js")

	_, _, err := runCLI(t, "const a = 1;\nrun();", "--no-config", "--sourcemap", "-o", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "run();\n//# sourceMappingURL=out.js.map\n", string(data))

	mapData, err := os.ReadFile(output + ".map")
	require.NoError(t, err)
	assert.Contains(t, string(mapData), `"file":"out.js"`)
	assert.Contains(t, string(mapData), `"sources":["stdin"]`)

	stdout, _, err := runCLI(t, "run();", "--no-config", "--sourcemap")
	require.NoError(t, err)
	assert.Contains(t, stdout, "//# sourceMappingURL=data:application/json;base64,")
}

func TestRunVersion(t *testing.T) {
	stdout, _, err := runCLI(t, "", "--version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "treeshaker v"))
}
