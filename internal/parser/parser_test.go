package parser

import (
	"strings"
	"testing"

	jsast "github.com/dop251/goja/ast"

	"github.com/HugoDaniel/treeshaker/internal/ast"
	"github.com/HugoDaniel/treeshaker/internal/diagnostic"
)

// ----------------------------------------------------------------------------
// Test Helpers
// ----------------------------------------------------------------------------

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, errs := New(source).Parse()
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	if program == nil {
		t.Fatal("expected a program")
	}
	return program
}

// expectTypes verifies the node types of the top-level statements.
func expectTypes(t *testing.T, input string, expected ...ast.NodeType) {
	t.Helper()
	t.Run(input, func(t *testing.T) {
		t.Helper()
		program := parse(t, input)
		if len(program.Body) != len(expected) {
			t.Fatalf("expected %d statements, got %d", len(expected), len(program.Body))
		}
		for i, stmt := range program.Body {
			if stmt.Type() != expected[i] {
				t.Errorf("statement %d: expected %s, got %s", i, expected[i], stmt.Type())
			}
		}
	})
}

// expression returns the expression of the i-th top-level statement.
func expression(t *testing.T, program *ast.Program, i int) ast.Node {
	t.Helper()
	stmt, ok := program.Body[i].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("statement %d: expected expression statement, got %T", i, program.Body[i])
	}
	return stmt.Expression
}

// identifiers collects every identifier named name in source order.
func identifiers(program *ast.Program, name string) []*ast.Identifier {
	var out []*ast.Identifier
	ast.Walk(program, func(n ast.Node) bool {
		if id, ok := n.(*ast.Identifier); ok && id.Name == name {
			out = append(out, id)
		}
		return true
	})
	return out
}

// ----------------------------------------------------------------------------
// Statement Tests
// ----------------------------------------------------------------------------

func TestStatements(t *testing.T) {
	expectTypes(t, "var a = 1;", ast.NodeVariableDeclaration)
	expectTypes(t, "let a; const b = 2;", ast.NodeVariableDeclaration, ast.NodeVariableDeclaration)
	expectTypes(t, "function f() {}", ast.NodeFunctionDeclaration)
	expectTypes(t, "class A {}", ast.NodeClassDeclaration)
	expectTypes(t, "if (a) b(); else c();", ast.NodeIfStatement)
	expectTypes(t, "switch (a) { case 1: break; default: }", ast.NodeSwitchStatement)
	expectTypes(t, "for (let i = 0; i < 1; i++) {}", ast.NodeForStatement)
	expectTypes(t, "for (const k in o) {}", ast.NodeForInStatement)
	expectTypes(t, "for (const v of o) {}", ast.NodeForOfStatement)
	expectTypes(t, "while (a) {}", ast.NodeWhileStatement)
	expectTypes(t, "do {} while (a);", ast.NodeDoWhileStatement)
	expectTypes(t, "try {} catch (e) {} finally {}", ast.NodeTryStatement)
	expectTypes(t, "outer: for (;;) { break outer; }", ast.NodeLabeledStatement)
	expectTypes(t, "throw new Error();", ast.NodeThrowStatement)
	expectTypes(t, "{ a(); }", ast.NodeBlockStatement)
	expectTypes(t, ";", ast.NodeEmptyStatement)
	expectTypes(t, "debugger;", ast.NodeDebuggerStatement)
	expectTypes(t, "with (o) {}", ast.NodeWithStatement)
}

func TestVariableDeclarationKinds(t *testing.T) {
	program := parse(t, "var a; let b; const c = 1;")
	want := []ast.DeclarationKind{ast.DeclareVar, ast.DeclareLet, ast.DeclareConst}
	for i, kind := range want {
		declaration := program.Body[i].(*ast.VariableDeclaration)
		if declaration.Kind != kind {
			t.Errorf("statement %d: expected kind %v, got %v", i, kind, declaration.Kind)
		}
	}
}

func TestStatementSpans(t *testing.T) {
	source := "a();\nb()\nconst c = 1 ;"
	program := parse(t, source)

	want := []string{"a();", "b()", "const c = 1 ;"}
	for i, text := range want {
		base := program.Body[i].Base()
		if got := source[base.Start:base.End]; got != text {
			t.Errorf("statement %d: expected %q, got %q", i, text, got)
		}
	}
}

func TestBreakAndContinue(t *testing.T) {
	program := parse(t, "for (;;) { break; continue; }")
	loop := program.Body[0].(*ast.ForStatement)
	body := loop.Body.(*ast.BlockStatement)

	if body.Body[0].Type() != ast.NodeBreakStatement {
		t.Errorf("expected break, got %s", body.Body[0].Type())
	}
	if body.Body[1].Type() != ast.NodeContinueStatement {
		t.Errorf("expected continue, got %s", body.Body[1].Type())
	}
}

// ----------------------------------------------------------------------------
// Expression Tests
// ----------------------------------------------------------------------------

func TestOperators(t *testing.T) {
	program := parse(t, "a ?? b; a && b; a + b; x++; --x; x += 1; typeof x;")

	if logical, ok := expression(t, program, 0).(*ast.LogicalExpression); !ok || logical.Operator != "??" {
		t.Errorf("expected ?? logical expression, got %#v", expression(t, program, 0))
	}
	if logical, ok := expression(t, program, 1).(*ast.LogicalExpression); !ok || logical.Operator != "&&" {
		t.Errorf("expected && logical expression, got %#v", expression(t, program, 1))
	}
	if binary, ok := expression(t, program, 2).(*ast.BinaryExpression); !ok || binary.Operator != "+" {
		t.Errorf("expected + binary expression, got %#v", expression(t, program, 2))
	}
	if update, ok := expression(t, program, 3).(*ast.UpdateExpression); !ok || update.Operator != "++" || update.Prefix {
		t.Errorf("expected postfix ++, got %#v", expression(t, program, 3))
	}
	if update, ok := expression(t, program, 4).(*ast.UpdateExpression); !ok || update.Operator != "--" || !update.Prefix {
		t.Errorf("expected prefix --, got %#v", expression(t, program, 4))
	}
	if assign, ok := expression(t, program, 5).(*ast.AssignmentExpression); !ok || assign.Operator != "+=" {
		t.Errorf("expected += assignment, got %#v", expression(t, program, 5))
	}
	if unary, ok := expression(t, program, 6).(*ast.UnaryExpression); !ok || unary.Operator != "typeof" {
		t.Errorf("expected typeof, got %#v", expression(t, program, 6))
	}
}

func TestMemberKeys(t *testing.T) {
	program := parse(t, "a.b; a['c']; a[k]; a[0];")

	tests := []struct {
		key      string
		computed bool
	}{
		{"b", false},
		{"c", true},
		{ast.UnknownKey, true},
		{"0", true},
	}
	for i, tt := range tests {
		member, ok := expression(t, program, i).(*ast.MemberExpression)
		if !ok {
			t.Fatalf("statement %d: expected member expression", i)
		}
		if member.Key != tt.key || member.Computed != tt.computed {
			t.Errorf("statement %d: expected key %q computed=%v, got %q computed=%v",
				i, tt.key, tt.computed, member.Key, member.Computed)
		}
	}
}

func TestObjectProperties(t *testing.T) {
	program := parse(t, "({ a: 1, b, get c() { return 1; }, set c(v) {}, m() {}, [k]: 2, ...rest });")
	object, ok := expression(t, program, 0).(*ast.ObjectExpression)
	if !ok {
		t.Fatalf("expected object expression, got %T", expression(t, program, 0))
	}
	if len(object.Properties) != 7 {
		t.Fatalf("expected 7 properties, got %d", len(object.Properties))
	}

	prop := func(i int) *ast.Property { return object.Properties[i].(*ast.Property) }
	if prop(0).Key != "a" || prop(0).Kind != ast.PropertyInit {
		t.Errorf("unexpected property a: %#v", prop(0))
	}
	if !prop(1).Shorthand {
		t.Error("expected b to be shorthand")
	}
	if prop(2).Kind != ast.PropertyGet || prop(3).Kind != ast.PropertySet {
		t.Error("expected getter and setter for c")
	}
	if !prop(4).Method {
		t.Error("expected m to be a method")
	}
	if prop(5).Key != ast.UnknownKey || !prop(5).Computed {
		t.Errorf("expected computed unknown key, got %q", prop(5).Key)
	}
	if _, ok := object.Properties[6].(*ast.SpreadElement); !ok {
		t.Errorf("expected spread element, got %T", object.Properties[6])
	}
}

func TestClassMembers(t *testing.T) {
	program := parse(t, "class A extends B { constructor() { super(); } static s = 1; #p = 2; m() {} static { a(); } }")
	class := program.Body[0].(*ast.ClassNode)

	if class.ID == nil || class.ID.Name != "A" {
		t.Fatalf("expected class A")
	}
	if class.SuperClass == nil {
		t.Error("expected a superclass")
	}
	if len(class.Body) != 5 {
		t.Fatalf("expected 5 class elements, got %d", len(class.Body))
	}
	if ctor := class.Body[0].(*ast.MethodDefinition); !ctor.Constructor {
		t.Error("expected constructor")
	}
	if field := class.Body[1].(*ast.PropertyDefinition); !field.Static || field.Key != "s" {
		t.Errorf("unexpected static field %#v", field)
	}
	if field := class.Body[2].(*ast.PropertyDefinition); field.Static || field.Key != "#p" {
		t.Errorf("unexpected private field %#v", field)
	}
	if method := class.Body[3].(*ast.MethodDefinition); method.Constructor || method.Key != "m" {
		t.Errorf("unexpected method %#v", method)
	}
	if _, ok := class.Body[4].(*ast.StaticBlock); !ok {
		t.Errorf("expected static block, got %T", class.Body[4])
	}
}

func TestFunctionParameters(t *testing.T) {
	program := parse(t, "function f(a, b = 1, { c }, [d], ...e) {}")
	fn := program.Body[0].(*ast.FunctionNode)

	want := []ast.NodeType{
		ast.NodeIdentifier,
		ast.NodeAssignmentPattern,
		ast.NodeObjectPattern,
		ast.NodeArrayPattern,
		ast.NodeRestElement,
	}
	if len(fn.Params) != len(want) {
		t.Fatalf("expected %d params, got %d", len(want), len(fn.Params))
	}
	for i, param := range fn.Params {
		if param.Type() != want[i] {
			t.Errorf("param %d: expected %s, got %s", i, want[i], param.Type())
		}
	}
}

func TestArrowFunctions(t *testing.T) {
	program := parse(t, "(x => x); ((x) => { return x; });")

	concise := expression(t, program, 0).(*ast.ArrowFunctionExpression)
	if !concise.Expression {
		t.Error("expected expression-bodied arrow")
	}
	block := expression(t, program, 1).(*ast.ArrowFunctionExpression)
	if block.Expression {
		t.Error("expected block-bodied arrow")
	}
}

// ----------------------------------------------------------------------------
// Binding Tests
// ----------------------------------------------------------------------------

func TestBindingResolvesDeclarations(t *testing.T) {
	program := parse(t, "const x = 1;\nfunction f() { return x; }\nx;")
	ids := identifiers(program, "x")
	if len(ids) != 3 {
		t.Fatalf("expected 3 identifiers, got %d", len(ids))
	}

	v := ids[0].Variable
	if v == nil {
		t.Fatal("expected declaration to be bound")
	}
	for i, id := range ids {
		if id.Variable != v {
			t.Errorf("identifier %d is bound to a different variable", i)
		}
	}
	if len(v.Declarations) != 1 || v.Declarations[0] != ids[0] {
		t.Error("expected the first identifier to be the declaration")
	}
	if !v.IsConst() {
		t.Error("expected a const binding")
	}
}

func TestBindingShadowing(t *testing.T) {
	program := parse(t, "let x = 1;\n{ let x = 2; x; }\nx;")
	ids := identifiers(program, "x")
	if len(ids) != 4 {
		t.Fatalf("expected 4 identifiers, got %d", len(ids))
	}

	outer, inner := ids[0].Variable, ids[1].Variable
	if outer == inner {
		t.Fatal("expected block binding to shadow the outer one")
	}
	if ids[2].Variable != inner {
		t.Error("expected the read inside the block to see the inner binding")
	}
	if ids[3].Variable != outer {
		t.Error("expected the read after the block to see the outer binding")
	}
}

func TestBindingVarHoistsOutOfBlocks(t *testing.T) {
	program := parse(t, "{ var x = 1; }\nx;")
	ids := identifiers(program, "x")
	if len(ids) != 2 || ids[0].Variable != ids[1].Variable {
		t.Error("expected var to be visible after its block")
	}
	if ids[0].Variable.Scope() != program.ModuleScope() {
		t.Error("expected var to live in the module scope")
	}
}

func TestBindingCatchParameter(t *testing.T) {
	program := parse(t, "try { a(); } catch (e) { e; }")
	ids := identifiers(program, "e")
	if len(ids) != 2 {
		t.Fatalf("expected 2 identifiers, got %d", len(ids))
	}
	if ids[0].Variable == nil || ids[0].Variable != ids[1].Variable {
		t.Fatal("expected the catch parameter to be bound")
	}
	if _, ok := ids[0].Variable.Scope().(*ast.CatchScope); !ok {
		t.Errorf("expected catch scope, got %T", ids[0].Variable.Scope())
	}
}

func TestBindingGlobals(t *testing.T) {
	source := "Math.max(1, 2);\nunknownThing;"

	p := New(source)
	program, errs := p.Parse()
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	math := identifiers(program, "Math")[0].Variable
	if !math.IsGlobal() || math.IsPureGlobal() {
		t.Error("expected Math to be an impure global by default")
	}

	p = New(source)
	p.PureGlobals = true
	program, errs = p.Parse()
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	if !identifiers(program, "Math")[0].Variable.IsPureGlobal() {
		t.Error("expected Math to be pure with PureGlobals")
	}
	if identifiers(program, "unknownThing")[0].Variable.IsPureGlobal() {
		t.Error("expected unknown globals to stay impure")
	}
}

func TestStatementSpansParentheses(t *testing.T) {
	tests := []struct {
		source string
		want   []string
	}{
		{"(function(){foo()})();", []string{"(function(){foo()})();"}},
		{"(function(){foo()}());", []string{"(function(){foo()}());"}},
		{"(foo());", []string{"(foo());"}},
		{"((foo))()", []string{"((foo))()"}},
		{"x = (y);\n(a), b;", []string{"x = (y);", "(a), b;"}},
		{"a();\n( /* c */ b() );", []string{"a();", "( /* c */ b() );"}},
		{"(s + \")\")();", []string{"(s + \")\")();"}},
		{"(/\\)/.test(s));", []string{"(/\\)/.test(s));"}},
		{"// note (\nfoo();", []string{"foo();"}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			program := parse(t, tt.source)
			if len(program.Body) != len(tt.want) {
				t.Fatalf("expected %d statements, got %d", len(tt.want), len(program.Body))
			}
			for i, text := range tt.want {
				base := program.Body[i].Base()
				if got := tt.source[base.Start:base.End]; got != text {
					t.Errorf("statement %d: expected %q, got %q", i, text, got)
				}
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Error Tests
// ----------------------------------------------------------------------------

func TestSyntaxErrors(t *testing.T) {
	program, errs := New("const a = 1;\nconst b = ;").Parse()
	if program != nil {
		t.Error("expected no program for invalid source")
	}
	if len(errs) == 0 {
		t.Fatal("expected parse errors")
	}
	if errs[0].Line != 2 {
		t.Errorf("expected error on line 2, got %d", errs[0].Line)
	}
	if !strings.HasPrefix(errs[0].Error(), "2:") {
		t.Errorf("expected error to start with its line, got %q", errs[0].Error())
	}
	if errs[0].Code != diagnostic.CodeSyntaxError {
		t.Errorf("expected code %s, got %s", diagnostic.CodeSyntaxError, errs[0].Code)
	}
}

func TestUnsupportedSyntax(t *testing.T) {
	p := New("x;")
	node := p.statement(&jsast.BadStatement{From: 1, To: 3})

	if _, ok := node.(*ast.EmptyStatement); !ok {
		t.Errorf("expected an empty statement in place of unsupported syntax, got %T", node)
	}
	if len(p.errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(p.errors))
	}
	if p.errors[0].Code != diagnostic.CodeUnsupportedSyntax {
		t.Errorf("expected code %s, got %s", diagnostic.CodeUnsupportedSyntax, p.errors[0].Code)
	}
	if p.errors[0].Line != 1 || p.errors[0].Column != 1 {
		t.Errorf("expected error at 1:1, got %d:%d", p.errors[0].Line, p.errors[0].Column)
	}
}

func TestEmptySource(t *testing.T) {
	program := parse(t, "")
	if len(program.Body) != 0 {
		t.Errorf("expected empty program, got %d statements", len(program.Body))
	}
}
