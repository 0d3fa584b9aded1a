package ast

import "testing"

// ----------------------------------------------------------------------------
// ObjectPath Tests
// ----------------------------------------------------------------------------

func TestObjectPath_Construction(t *testing.T) {
	keys := []string{"a", "b"}
	path := NewObjectPath(keys...)
	keys[0] = "changed"

	if path.Len() != 2 || path.At(0) != "a" || path.At(1) != "b" {
		t.Errorf("expected a.b, got %s", path)
	}
	if EmptyPath.Len() != 0 {
		t.Errorf("expected empty path, got %s", EmptyPath)
	}
}

func TestObjectPath_Prepend(t *testing.T) {
	base := NewObjectPath("b", "c")
	prepended := base.Prepend("a")

	if !prepended.Equals(NewObjectPath("a", "b", "c")) {
		t.Errorf("expected a.b.c, got %s", prepended)
	}
	if !base.Equals(NewObjectPath("b", "c")) {
		t.Errorf("prepend must not modify the receiver, got %s", base)
	}

	// Two paths prepended from the same base share nothing.
	left, right := base.Prepend("x"), base.Prepend("y")
	if left.At(0) != "x" || right.At(0) != "y" {
		t.Errorf("expected independent paths, got %s and %s", left, right)
	}
}

func TestObjectPath_Rest(t *testing.T) {
	if rest := NewObjectPath("a", "b").Rest(); !rest.Equals(NewObjectPath("b")) {
		t.Errorf("expected b, got %s", rest)
	}
	if rest := EmptyPath.Rest(); rest.Len() != 0 {
		t.Errorf("expected empty rest of empty path, got %s", rest)
	}
}

func TestObjectPath_HasPrefix(t *testing.T) {
	tests := []struct {
		path, prefix ObjectPath
		want         bool
	}{
		{NewObjectPath("a", "b"), NewObjectPath("a"), true},
		{NewObjectPath("a", "b"), EmptyPath, true},
		{NewObjectPath("a"), NewObjectPath("a", "b"), false},
		{NewObjectPath("a", "b"), NewObjectPath("b"), false},
		{NewObjectPath("a", "b"), NewObjectPath(UnknownKey), true},
		{NewObjectPath(UnknownKey, "b"), NewObjectPath("a", "b"), true},
		{NewObjectPath("a", "c"), NewObjectPath(UnknownKey, "b"), false},
	}
	for _, tt := range tests {
		if got := tt.path.HasPrefix(tt.prefix); got != tt.want {
			t.Errorf("%s.HasPrefix(%s) = %v, want %v", tt.path, tt.prefix, got, tt.want)
		}
	}
}

func TestObjectPath_IsEscape(t *testing.T) {
	if !UnknownPath.IsEscape() {
		t.Error("expected UnknownPath to be an escape")
	}
	if !NewObjectPath("a", UnknownKey).IsEscape() {
		t.Error("expected a.[?] to be an escape")
	}
	if NewObjectPath(UnknownKey, "a").IsEscape() || EmptyPath.IsEscape() {
		t.Error("only paths ending in an unknown key escape")
	}
}

func TestObjectPath_String(t *testing.T) {
	tests := []struct {
		path ObjectPath
		want string
	}{
		{EmptyPath, "<base>"},
		{NewObjectPath("a", "b"), "a.b"},
		{NewObjectPath("a", UnknownKey), "a.[?]"},
	}
	for _, tt := range tests {
		if got := tt.path.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

// ----------------------------------------------------------------------------
// CallOptions Tests
// ----------------------------------------------------------------------------

func TestCallOptions_Equals(t *testing.T) {
	call := &CallExpression{}
	arg := &Literal{Kind: LiteralNumber, Raw: "1", Value: "1"}

	a := NewCallOptions(call, []Node{arg}, false)
	if !a.Equals(NewCallOptions(call, nil, true)) {
		t.Error("call options for the same call site are equal")
	}
	if a.Equals(NewCallOptions(&CallExpression{}, []Node{arg}, false)) {
		t.Error("expected different call sites to differ")
	}
}
