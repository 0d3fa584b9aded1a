package diagnostic

import (
	"strings"
	"testing"
)

// ----------------------------------------------------------------------------
// DiagnosticList Tests
// ----------------------------------------------------------------------------

func TestDiagnosticListPositions(t *testing.T) {
	dl := NewDiagnosticList("const a = 1;\nconst b = ;")
	dl.AddError(23, CodeSyntaxError, "unexpected token")

	d := dl.Diagnostics()[0]
	if d.Range.Start.Line != 2 || d.Range.Start.Column != 11 {
		t.Errorf("expected 2:11, got %d:%d", d.Range.Start.Line, d.Range.Start.Column)
	}
	if d.Range.Start.Offset != 23 {
		t.Errorf("expected offset 23, got %d", d.Range.Start.Offset)
	}
	if d.Error() != "2:11: error: unexpected token" {
		t.Errorf("unexpected error string %q", d.Error())
	}
}

func TestDiagnosticListSeverities(t *testing.T) {
	dl := NewDiagnosticList("eval('x');")
	if dl.HasErrors() {
		t.Error("new list has no errors")
	}

	dl.AddWarning(0, CodeDirectEval, "direct eval keeps every statement")
	if dl.HasErrors() {
		t.Error("warnings are not errors")
	}
	if len(dl.Warnings()) != 1 || len(dl.Errors()) != 0 {
		t.Errorf("expected 1 warning and no errors, got %d and %d", len(dl.Warnings()), len(dl.Errors()))
	}

	dl.AddErrorAt(1, 6, CodeUnsupportedSyntax, "unsupported")
	if !dl.HasErrors() || dl.Count() != 2 {
		t.Errorf("expected 2 diagnostics with an error, got %d", dl.Count())
	}
	if got := dl.Errors()[0].Range.Start.Offset; got != 5 {
		t.Errorf("expected error at offset 5, got %d", got)
	}

	dl.Clear()
	if dl.Count() != 0 || dl.HasErrors() {
		t.Error("expected Clear to reset the list")
	}
}

func TestDiagnosticFormat(t *testing.T) {
	dl := NewDiagnosticList("let a = 1;\nfoo(bar baz);")
	dl.AddErrorRange(19, 22, CodeSyntaxError, "unexpected identifier")

	want := "2:9: error: unexpected identifier\n" +
		"    foo(bar baz);\n" +
		"            ^~~\n"
	if got := dl.Format(); got != want {
		t.Errorf("Format() =\n%s\nwant\n%s", got, want)
	}
}

func TestDiagnosticFormatEmpty(t *testing.T) {
	dl := NewDiagnosticList("")
	if dl.Format() != "" {
		t.Error("expected empty output")
	}

	dl.AddError(0, CodeSyntaxError, "empty")
	if !strings.HasPrefix(dl.Format(), "1:1: error: empty\n") {
		t.Errorf("unexpected format %q", dl.Format())
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{Error, "error"},
		{Warning, "warning"},
		{Note, "note"},
		{Severity(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.severity, got, tt.want)
		}
	}
}
