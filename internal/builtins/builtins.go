// Package builtins describes the JavaScript built-ins the tree-shaker trusts
// to be free of side effects.
//
// The global table covers values, functions, constructors and namespace
// objects of the standard library. The method tables cover members of
// primitive values and array literals.
package builtins

// GlobalKind identifies categories of global built-ins.
type GlobalKind uint8

const (
	GlobalValue       GlobalKind = iota // Plain values (undefined, NaN)
	GlobalFunction                      // Functions without effects when called
	GlobalConstructor                   // Callable with or without new
	GlobalNamespace                     // Objects whose members are listed
)

// Global represents a built-in global binding or one of its members.
type Global struct {
	Name    string
	Kind    GlobalKind
	Members map[string]*Global
}

// Table maps global names to their definitions.
var Table = make(map[string]*Global)

func init() {
	registerValues()
	registerFunctions()
	registerConstructors()
	registerNamespaces()
}

// Lookup returns the global with the given name, or nil.
func Lookup(name string) *Global {
	return Table[name]
}

// IsBuiltin returns true if the name is a known global.
func IsBuiltin(name string) bool {
	return Table[name] != nil
}

// Member returns the listed member of g, or nil.
func (g *Global) Member(name string) *Global {
	if g == nil || g.Members == nil {
		return nil
	}
	return g.Members[name]
}

// IsPureGlobalAccess reports whether reading path off the global name is
// free of side effects. None of the listed globals has getters, so any
// direct member may be read; deeper reads require a listed member.
func IsPureGlobalAccess(name string, path []string) bool {
	g := Lookup(name)
	if g == nil {
		return false
	}
	switch len(path) {
	case 0, 1:
		return true
	case 2:
		return g.Member(path[0]) != nil
	}
	return false
}

// IsPureGlobalCall reports whether calling the value at path off the
// global name is free of side effects.
func IsPureGlobalCall(name string, path []string, withNew bool) bool {
	g := Lookup(name)
	if g == nil {
		return false
	}
	for _, key := range path {
		g = g.Member(key)
		if g == nil {
			return false
		}
	}
	switch g.Kind {
	case GlobalFunction:
		return !withNew
	case GlobalConstructor:
		return true
	}
	return false
}

// register adds a global to the table.
func register(g *Global) {
	Table[g.Name] = g
}

func members(kind GlobalKind, names ...string) map[string]*Global {
	m := make(map[string]*Global, len(names))
	for _, name := range names {
		m[name] = &Global{Name: name, Kind: kind}
	}
	return m
}

func merge(maps ...map[string]*Global) map[string]*Global {
	m := make(map[string]*Global)
	for _, src := range maps {
		for name, g := range src {
			m[name] = g
		}
	}
	return m
}

// ----------------------------------------------------------------------------
// Values
// ----------------------------------------------------------------------------

func registerValues() {
	for _, name := range []string{"undefined", "NaN", "Infinity", "globalThis"} {
		register(&Global{Name: name, Kind: GlobalValue})
	}
}

// ----------------------------------------------------------------------------
// Functions
// ----------------------------------------------------------------------------

func registerFunctions() {
	for _, name := range []string{
		"isFinite", "isNaN", "parseFloat", "parseInt",
		"decodeURI", "decodeURIComponent", "encodeURI", "encodeURIComponent",
		"escape", "unescape",
	} {
		register(&Global{Name: name, Kind: GlobalFunction})
	}
}

// ----------------------------------------------------------------------------
// Constructors
// ----------------------------------------------------------------------------

func registerConstructors() {
	for _, name := range []string{
		"Boolean", "Error", "EvalError", "RangeError", "ReferenceError",
		"SyntaxError", "TypeError", "URIError", "RegExp", "Map", "Set",
		"WeakMap", "WeakSet", "DataView",
		"Int8Array", "Uint8Array", "Uint8ClampedArray", "Int16Array",
		"Uint16Array", "Int32Array", "Uint32Array", "Float32Array",
		"Float64Array", "BigInt64Array", "BigUint64Array",
	} {
		register(&Global{Name: name, Kind: GlobalConstructor})
	}

	register(&Global{Name: "Object", Kind: GlobalConstructor, Members: members(GlobalFunction,
		"create", "getOwnPropertyDescriptor", "getOwnPropertyDescriptors",
		"getOwnPropertyNames", "getOwnPropertySymbols", "getPrototypeOf",
		"is", "isExtensible", "isFrozen", "isSealed", "keys", "values", "entries",
	)})
	register(&Global{Name: "Array", Kind: GlobalConstructor, Members: members(GlobalFunction,
		"isArray", "of",
	)})
	register(&Global{Name: "Number", Kind: GlobalFunction, Members: merge(
		members(GlobalFunction, "isFinite", "isInteger", "isNaN", "isSafeInteger", "parseFloat", "parseInt"),
		members(GlobalValue, "EPSILON", "MAX_SAFE_INTEGER", "MIN_SAFE_INTEGER", "MAX_VALUE", "MIN_VALUE",
			"NaN", "NEGATIVE_INFINITY", "POSITIVE_INFINITY"),
	)})
	register(&Global{Name: "String", Kind: GlobalFunction, Members: members(GlobalFunction,
		"fromCharCode", "fromCodePoint", "raw",
	)})
	register(&Global{Name: "Symbol", Kind: GlobalFunction, Members: merge(
		members(GlobalFunction, "for", "keyFor"),
		members(GlobalValue, "asyncIterator", "hasInstance", "isConcatSpreadable", "iterator",
			"match", "matchAll", "replace", "search", "species", "split", "toPrimitive", "toStringTag", "unscopables"),
	)})
	register(&Global{Name: "Date", Kind: GlobalConstructor, Members: members(GlobalFunction,
		"UTC", "now", "parse",
	)})
	register(&Global{Name: "ArrayBuffer", Kind: GlobalConstructor, Members: members(GlobalFunction,
		"isView",
	)})
	register(&Global{Name: "BigInt", Kind: GlobalFunction, Members: members(GlobalFunction,
		"asIntN", "asUintN",
	)})
}

// ----------------------------------------------------------------------------
// Namespaces
// ----------------------------------------------------------------------------

func registerNamespaces() {
	register(&Global{Name: "Math", Kind: GlobalNamespace, Members: merge(
		members(GlobalFunction,
			"abs", "acos", "acosh", "asin", "asinh", "atan", "atan2", "atanh",
			"cbrt", "ceil", "clz32", "cos", "cosh", "exp", "expm1", "floor",
			"fround", "hypot", "imul", "log", "log10", "log1p", "log2", "max",
			"min", "pow", "random", "round", "sign", "sin", "sinh", "sqrt",
			"tan", "tanh", "trunc"),
		members(GlobalValue, "E", "LN10", "LN2", "LOG10E", "LOG2E", "PI", "SQRT1_2", "SQRT2"),
	)})
	register(&Global{Name: "JSON", Kind: GlobalNamespace, Members: members(GlobalFunction,
		"parse",
	)})
}
