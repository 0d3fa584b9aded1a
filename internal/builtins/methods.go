package builtins

// IteratorKey is the member name used for iteration protocols.
const IteratorKey = "@@iterator"

// ValueKind identifies the primitive a literal evaluates to.
type ValueKind uint8

const (
	ValueString ValueKind = iota
	ValueNumber
	ValueBoolean
	ValueBigInt
	ValueRegExp
)

// MethodKind classifies members of array values.
type MethodKind uint8

const (
	// MethodPure returns a new value and reads only its receiver.
	MethodPure MethodKind = iota
	// MethodCallsArgs invokes its first argument as a callback.
	MethodCallsArgs
	// MethodMutates changes the receiver in place.
	MethodMutates
	// MethodConverts returns a new value but converts every element to a
	// string, which runs the element's own toString.
	MethodConverts
)

var (
	stringMethods = set(
		"at", "charAt", "charCodeAt", "codePointAt", "concat", "endsWith",
		"includes", "indexOf", "lastIndexOf", "localeCompare", "match",
		"normalize", "padEnd", "padStart", "repeat", "search", "slice",
		"split", "startsWith", "substr", "substring", "toLocaleLowerCase",
		"toLocaleUpperCase", "toLowerCase", "toString", "toUpperCase",
		"trim", "trimEnd", "trimLeft", "trimRight", "trimStart", "valueOf",
		IteratorKey,
	)
	numberMethods  = set("toExponential", "toFixed", "toLocaleString", "toPrecision", "toString", "valueOf")
	booleanMethods = set("toString", "valueOf")
	bigintMethods  = set("toLocaleString", "toString", "valueOf")
	regexpMethods  = set("exec", "test", "toString")

	arrayMethods = map[string]MethodKind{
		"at": MethodPure, "concat": MethodPure, "entries": MethodPure,
		"flat": MethodPure, "includes": MethodPure, "indexOf": MethodPure,
		"keys": MethodPure, "lastIndexOf": MethodPure, "slice": MethodPure,
		"values": MethodPure, IteratorKey: MethodPure,

		"join": MethodConverts, "toLocaleString": MethodConverts, "toString": MethodConverts,

		"every": MethodCallsArgs, "filter": MethodCallsArgs, "find": MethodCallsArgs,
		"findIndex": MethodCallsArgs, "findLast": MethodCallsArgs,
		"findLastIndex": MethodCallsArgs, "flatMap": MethodCallsArgs,
		"forEach": MethodCallsArgs, "map": MethodCallsArgs, "reduce": MethodCallsArgs,
		"reduceRight": MethodCallsArgs, "some": MethodCallsArgs,

		"copyWithin": MethodMutates, "fill": MethodMutates, "pop": MethodMutates,
		"push": MethodMutates, "reverse": MethodMutates, "shift": MethodMutates,
		"sort": MethodMutates, "splice": MethodMutates, "unshift": MethodMutates,
	}
)

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, name := range names {
		m[name] = true
	}
	return m
}

// IsPureMethod reports whether calling the named member of a primitive of
// the given kind is free of side effects, provided its arguments are
// primitives. Methods that accept callbacks (replace, replaceAll) are
// excluded.
func IsPureMethod(kind ValueKind, name string) bool {
	switch kind {
	case ValueString:
		return stringMethods[name]
	case ValueNumber:
		return numberMethods[name]
	case ValueBoolean:
		return booleanMethods[name]
	case ValueBigInt:
		return bigintMethods[name]
	case ValueRegExp:
		return regexpMethods[name]
	}
	return false
}

// ArrayMethod returns the classification of an array member.
func ArrayMethod(name string) (MethodKind, bool) {
	kind, ok := arrayMethods[name]
	return kind, ok
}
