package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HugoDaniel/treeshaker/internal/ast"
	"github.com/HugoDaniel/treeshaker/internal/parser"
)

// lastHasEffects parses source with pure globals and reports whether its
// last top-level statement has effects.
func lastHasEffects(t *testing.T, source string, options ast.ExecutionPathOptions) bool {
	t.Helper()
	p := parser.New(source)
	p.PureGlobals = true
	program, errs := p.Parse()
	require.Empty(t, errs, "parse errors")
	require.NotEmpty(t, program.Body)
	return program.Body[len(program.Body)-1].HasEffects(options)
}

type effectCase struct {
	name    string
	source  string
	effects bool
}

func runEffectCases(t *testing.T, cases []effectCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := lastHasEffects(t, tc.source, ast.NewExecutionPathOptions())
			assert.Equal(t, tc.effects, got, tc.source)
		})
	}
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

func TestEffects_Expressions(t *testing.T) {
	runEffectCases(t, []effectCase{
		{"literal", `1;`, false},
		{"declaration", `const a = 1;`, false},
		{"unknown global call", `foo();`, true},
		{"unknown global read", `undefinedThing;`, true},
		{"typeof unknown global", `typeof undefinedThing;`, false},
		{"pure global call", `Math.max(1, 2);`, false},
		{"pure string method", `const s = "abc"; s.toUpperCase();`, false},
		{"arrow expression", `x => x;`, false},
		{"debugger", `debugger;`, true},
		{"unknown constructor", `new Foo();`, true},
	})
}

// ----------------------------------------------------------------------------
// Assignments
// ----------------------------------------------------------------------------

func TestEffects_Assignments(t *testing.T) {
	runEffectCases(t, []effectCase{
		{"let reassignment", `let x = 1; x = 2;`, false},
		{"const reassignment", `const x = 1; x = 2;`, true},
		{"global assignment", `undefinedThing = 1;`, true},
		{"local member assignment", `const o = { a: 1 }; o.a = 2;`, false},
		{"delete local member", `const o = { a: 1 }; delete o.a;`, false},
		{"parameter member assignment", `const f = x => { x.y = 1; }; f({});`, true},
		{"destructuring a literal", `const { a } = { a: 1 };`, false},
	})
}

// ----------------------------------------------------------------------------
// Calls
// ----------------------------------------------------------------------------

func TestEffects_Calls(t *testing.T) {
	runEffectCases(t, []effectCase{
		{"empty function", `function f() {} f();`, false},
		{"function with effects", `function f() { foo(); } f();`, true},
		{"pure arrow", `const f = () => 1; f();`, false},
		{"throwing function", `function f() { throw new Error(); } f();`, true},
		{"pure iife", `(function () { return; })();`, false},
		{"returned this", `const f = function () { return this; }; f();`, false},
		{"reassigned callee", `let f = () => {}; f = foo; f();`, true},
		{"escaped object", `const o = { m() {} }; foo(o); o.m();`, true},
		{"array callback", `const arr = [1, 2]; arr.map(x => x * 2);`, false},
		{"array callback with effects", `const arr = [1, 2]; arr.map(x => { foo(); });`, true},
	})
}

func TestEffects_ReturnValues(t *testing.T) {
	runEffectCases(t, []effectCase{
		{"pure method of returned object", `const make = () => ({ run() {} }); make().run();`, false},
		{"effectful method of returned object", `const make = () => ({ run() { foo(); } }); make().run();`, true},
		{"conditional return", `const pick = c => c ? { a() {} } : { a() {} }; pick(true).a();`, false},
		{"conditional return with effect", `const pick = c => c ? { a() {} } : { a() { foo(); } }; pick(true).a();`, true},
		{"member of returned undefined", `function f() {} f().x;`, true},
	})
}

func TestEffects_Recursion(t *testing.T) {
	runEffectCases(t, []effectCase{
		{"pure recursion", `function f(n) { return n ? f(n - 1) : 0; } f(3);`, false},
		{"effectful recursion", `function g() { foo(); g(); } g();`, true},
		{"mutual recursion", `function a() { return b(); } function b() { return a(); } a();`, false},
	})
}

// ----------------------------------------------------------------------------
// Control flow
// ----------------------------------------------------------------------------

func TestEffects_ControlFlow(t *testing.T) {
	runEffectCases(t, []effectCase{
		{"for loop", `for (let i = 0; i < 10; i++) {}`, false},
		{"break inside loop", `while (true) { break; }`, false},
		{"labeled break", `outer: for (;;) { for (;;) { break outer; } }`, false},
		{"switch with break", `let x = 1; switch (x) { case 1: break; }`, false},
		{"try with effect", `try { foo(); } catch (e) {}`, true},
		{"empty try", `try {} catch (e) { foo(); }`, false},
		{"finally with effect", `try {} finally { foo(); }`, true},
		{"if with effect", `let c = 1; if (c) { foo(); }`, true},
		{"if without effect", `let c = 1; if (c) { c = 2; } else { c = 3; }`, false},
	})
}

// ----------------------------------------------------------------------------
// Objects and classes
// ----------------------------------------------------------------------------

func TestEffects_Getters(t *testing.T) {
	runEffectCases(t, []effectCase{
		{"pure getter", `const o = { get a() { return 1; } }; o.a;`, false},
		{"effectful getter", `const o = { get a() { foo(); } }; o.a;`, true},
		{"missing nested member", `const o = {}; o.b.c;`, true},
	})
}

func TestEffects_PropertyReadSideEffectsDisabled(t *testing.T) {
	options := ast.NewExecutionPathOptions().SetPropertyReadSideEffects(false)
	assert.False(t, lastHasEffects(t, `const o = {}; o.b.c;`, options))
	assert.False(t, lastHasEffects(t, `const o = { get a() { foo(); } }; o.a;`, options))
	assert.True(t, lastHasEffects(t, `foo.bar;`, options))
}

func TestEffects_Classes(t *testing.T) {
	runEffectCases(t, []effectCase{
		{"empty class", `class A {}`, false},
		{"construct empty class", `class A {} new A();`, false},
		{"construct with effectful constructor", `class A { constructor() { foo(); } } new A();`, true},
		{"call class without new", `class A {} A();`, true},
		{"static field with effect", `class A { static x = foo(); }`, true},
		{"instance field with effect", `class A { x = foo(); }`, false},
		{"construct with effectful field", `class A { x = foo(); } new A();`, true},
		{"constructor function", `function F() { this.x = 1; } new F();`, false},
		{"constructor function without new", `function F() { this.x = 1; } F();`, true},
		{"extends class", `class A {} class B extends A {}`, false},
		{"extends class expression", `class B extends class {} {}`, false},
		{"extends function expression", `class B extends function () {} {}`, false},
		{"extends null", `class B extends null {}`, false},
		{"extends number", `class B extends 1 {}`, true},
		{"extends string", `class B extends "a" {}`, true},
		{"extends arrow", `class B extends (() => {}) {}`, true},
		{"extends generator", `class B extends function* () {} {}`, true},
		{"extends call result", `const mixin = b => b; class B extends mixin(Object) {}`, true},
	})
}

// ----------------------------------------------------------------------------
// Built-in methods
// ----------------------------------------------------------------------------

func TestEffects_BuiltinMethodArguments(t *testing.T) {
	runEffectCases(t, []effectCase{
		{"join primitives", `[1, "a", , null].join();`, false},
		{"join with separator", `[1, 2].join(", ");`, false},
		{"join with const separator", `const sep = "-"; [1, 2].join(sep);`, false},
		{"join object element", `[{ toString() { foo(); } }].join();`, true},
		{"toString object element", `[{}].toString();`, true},
		{"join after element write", `const arr = [1]; arr[0] = {}; arr.join();`, true},
		{"concat object argument", `const o = {}; [1].concat(o);`, true},
		{"slice primitive arguments", `[1, 2, 3].slice(1, -1);`, false},
		{"string concat primitives", `"abc".concat("d", 1);`, false},
		{"string includes object", `"abc".includes({ toString() { foo(); } });`, true},
		{"string method on binding", `const s = "abc"; s.indexOf("b");`, false},
		{"string method with parameter", `function f(x) { return "a".concat(x); } f(1);`, true},
		{"template method", "`a`.toUpperCase();", false},
	})
}

// ----------------------------------------------------------------------------
// Arrow functions
// ----------------------------------------------------------------------------

// parseArrow parses a parenthesized arrow function expression statement.
func parseArrow(t *testing.T, source string) *ast.ArrowFunctionExpression {
	t.Helper()
	program, errs := parser.New(source).Parse()
	require.Empty(t, errs, "parse errors")
	require.Len(t, program.Body, 1)
	stmt, ok := program.Body[0].(*ast.ExpressionStatement)
	require.True(t, ok, "expected an expression statement, got %T", program.Body[0])
	arrow, ok := stmt.Expression.(*ast.ArrowFunctionExpression)
	require.True(t, ok, "expected an arrow function, got %T", stmt.Expression)
	return arrow
}

// returnTexts collects the source text of each return expression visited
// when arrow is called at path.
func returnTexts(source string, arrow *ast.ArrowFunctionExpression, path ast.ObjectPath) []string {
	var texts []string
	arrow.ForEachReturnExpressionWhenCalledAtPath(path, ast.NewCallOptions(nil, nil, false),
		func(_ ast.ExecutionPathOptions, expression ast.Node) {
			base := expression.Base()
			texts = append(texts, source[base.Start:base.End])
		}, ast.NewExecutionPathOptions())
	return texts
}

func TestEffects_ArrowAccess(t *testing.T) {
	arrow := parseArrow(t, "(x => 1);")
	options := ast.NewExecutionPathOptions()

	tests := []struct {
		path     ast.ObjectPath
		accessed bool
		assigned bool
	}{
		{ast.EmptyPath, false, false},
		{ast.NewObjectPath("p"), false, false},
		{ast.NewObjectPath("p", "q"), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.path.String(), func(t *testing.T) {
			assert.Equal(t, tt.accessed, arrow.HasEffectsWhenAccessedAtPath(tt.path, options))
			assert.Equal(t, tt.assigned, arrow.HasEffectsWhenAssignedAtPath(tt.path, options))
		})
	}
	assert.False(t, arrow.HasEffects(options))
}

func TestEffects_ArrowCall(t *testing.T) {
	arrow := parseArrow(t, "(x => 1);")
	options := ast.NewExecutionPathOptions()

	assert.False(t, arrow.HasEffectsWhenCalledAtPath(ast.EmptyPath, ast.NewCallOptions(nil, nil, false), options))
	assert.True(t, arrow.HasEffectsWhenCalledAtPath(ast.NewObjectPath("p"), ast.NewCallOptions(nil, nil, false), options),
		"calling a member of a pure arrow")
	assert.True(t, arrow.HasEffectsWhenCalledAtPath(ast.EmptyPath, ast.NewCallOptions(nil, nil, true), options),
		"constructing an arrow throws")
}

func TestEffects_ArrowReturnExpressions(t *testing.T) {
	tests := []struct {
		name   string
		source string
		path   ast.ObjectPath
		want   []string
	}{
		{"conditional body", "(x => c ? b : d);", ast.EmptyPath, []string{"b", "d"}},
		{"conditional body at member", "(x => c ? b : d);", ast.NewObjectPath("p"), nil},
		{"block with two returns", "(x => { if (x) return first; return second; });", ast.EmptyPath, []string{"first", "second"}},
		{"block at member", "(x => { return first; });", ast.NewObjectPath("p"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arrow := parseArrow(t, tt.source)
			assert.Equal(t, tt.want, returnTexts(tt.source, arrow, tt.path))
		})
	}
}

// ----------------------------------------------------------------------------
// Switch statements
// ----------------------------------------------------------------------------

func TestEffects_SwitchContainsBreaks(t *testing.T) {
	program, errs := parser.New("let x = 1; switch (x) { case 1: break; default: x = 2; }").Parse()
	require.Empty(t, errs, "parse errors")
	sw, ok := program.Body[1].(*ast.SwitchStatement)
	require.True(t, ok, "expected a switch statement, got %T", program.Body[1])

	options := ast.NewExecutionPathOptions()
	assert.False(t, sw.HasEffects(options))
	assert.True(t, sw.NodeBase.HasEffects(options), "an uncontained break has effects")
}
