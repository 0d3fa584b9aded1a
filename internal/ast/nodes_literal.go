package ast

import (
	"strconv"

	"github.com/HugoDaniel/treeshaker/internal/builtins"
)

// ----------------------------------------------------------------------------
// Primitives
// ----------------------------------------------------------------------------

// LiteralKind identifies the primitive a Literal evaluates to.
type LiteralKind uint8

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBoolean
	LiteralNull
	LiteralRegExp
	LiteralBigInt
)

// Literal is a primitive or regular expression literal. Value holds the
// property key the literal denotes when used as a computed member.
type Literal struct {
	NodeBase
	Kind  LiteralKind
	Raw   string
	Value string
}

func (l *Literal) Type() NodeType { return NodeLiteral }

func (l *Literal) HasEffects(options ExecutionPathOptions) bool { return false }

func (l *Literal) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if l.Kind == LiteralNull {
		return path.Len() > 0
	}
	return path.Len() > 1
}

func (l *Literal) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if l.Kind == LiteralNull {
		return path.Len() > 0
	}
	return path.Len() > 1
}

func (l *Literal) HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	if path.Len() != 1 {
		return true
	}
	kind, ok := l.valueKind()
	return !ok || !builtins.IsPureMethod(kind, path.At(0)) || !primitiveArgs(callOptions.Args)
}

func (l *Literal) valueKind() (builtins.ValueKind, bool) {
	switch l.Kind {
	case LiteralString:
		return builtins.ValueString, true
	case LiteralNumber:
		return builtins.ValueNumber, true
	case LiteralBoolean:
		return builtins.ValueBoolean, true
	case LiteralRegExp:
		return builtins.ValueRegExp, true
	case LiteralBigInt:
		return builtins.ValueBigInt, true
	}
	return 0, false
}

// TemplateLiteral is an untagged template string.
type TemplateLiteral struct {
	NodeBase
	Quasis      []string
	Expressions []Node
}

func (t *TemplateLiteral) Type() NodeType { return NodeTemplateLiteral }

func (t *TemplateLiteral) SomeChild(fn func(Node) bool) bool {
	return visitList(fn, t.Expressions)
}

func (t *TemplateLiteral) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() > 1
}

func (t *TemplateLiteral) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() > 1
}

func (t *TemplateLiteral) HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	return path.Len() != 1 || !builtins.IsPureMethod(builtins.ValueString, path.At(0)) ||
		!primitiveArgs(callOptions.Args)
}

// primitiveDepth bounds how many bindings isPrimitive follows.
const primitiveDepth = 4

// primitiveArgs reports whether every argument is known to be a primitive.
// Built-in methods convert their arguments, and converting an object runs
// its toString, valueOf or Symbol.toPrimitive.
func primitiveArgs(args []Node) bool {
	for _, arg := range args {
		if !isPrimitive(arg, primitiveDepth) {
			return false
		}
	}
	return true
}

// isPrimitive reports whether node evaluates to a primitive or a fresh
// regular expression. A missing node stands for undefined. Operators always produce primitives; the conversions
// they perform are effects of the operator node itself.
func isPrimitive(node Node, depth int) bool {
	if isNil(node) {
		return true
	}
	if depth == 0 {
		return false
	}
	switch n := node.(type) {
	case *Literal, *TemplateLiteral, *UnaryExpression, *BinaryExpression, *UpdateExpression:
		return true
	case *LogicalExpression:
		return isPrimitive(n.Left, depth) && isPrimitive(n.Right, depth)
	case *ConditionalExpression:
		return isPrimitive(n.Consequent, depth) && isPrimitive(n.Alternate, depth)
	case *Identifier:
		v := n.Variable
		return v != nil && v.Kind == VariableLocal && !v.reassigned && isPrimitive(v.init, depth-1)
	}
	return false
}

// ----------------------------------------------------------------------------
// Arrays
// ----------------------------------------------------------------------------

// ArrayExpression is an array literal. Holes are nil elements.
type ArrayExpression struct {
	NodeBase
	Elements []Node

	members     reassignmentTracker
	propagating bool
}

func (a *ArrayExpression) Type() NodeType { return NodeArrayExpression }

func (a *ArrayExpression) SomeChild(fn func(Node) bool) bool {
	return visitList(fn, a.Elements)
}

func (a *ArrayExpression) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() > 1 || a.members.affectsAccess(path)
}

func (a *ArrayExpression) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() != 1 || a.members.affectsAssignment(path)
}

// HasEffectsWhenCalledAtPath knows the built-in array methods. Methods
// taking a callback are as effectful as calling the callback.
func (a *ArrayExpression) HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	if path.Len() != 1 || a.members.affectsCall(path) {
		return true
	}
	kind, ok := builtins.ArrayMethod(path.At(0))
	if !ok {
		return true
	}
	switch kind {
	case builtins.MethodPure:
		return !primitiveArgs(callOptions.Args)
	case builtins.MethodConverts:
		return !primitiveArgs(callOptions.Args) || !primitiveArgs(a.Elements) || a.members.modified()
	case builtins.MethodCallsArgs:
		if len(callOptions.Args) == 0 || isNil(callOptions.Args[0]) {
			return true
		}
		callback := callOptions.Args[0]
		return callback.HasEffectsWhenCalledAtPath(EmptyPath, NewCallOptions(callOptions.CallIdentifier, nil, false), options)
	}
	return true
}

func (a *ArrayExpression) reassignPath(path ObjectPath) {
	if path.Len() == 0 || a.propagating || !a.members.add(path) {
		return
	}
	a.propagating = true
	defer func() { a.propagating = false }()

	key, rest := path.At(0), path.Rest()
	if key == UnknownKey {
		if rest.Len() == 0 {
			rest = UnknownPath
		}
		for _, element := range a.Elements {
			if !isNil(element) {
				element.reassignPath(rest)
			}
		}
		return
	}
	index, err := strconv.Atoi(key)
	if err != nil || index < 0 || index >= len(a.Elements) || rest.Len() == 0 {
		return
	}
	if element := a.Elements[index]; !isNil(element) {
		element.reassignPath(rest)
	}
}

// ----------------------------------------------------------------------------
// Objects
// ----------------------------------------------------------------------------

// PropertyKind distinguishes data properties from accessors.
type PropertyKind uint8

const (
	PropertyInit PropertyKind = iota
	PropertyGet
	PropertySet
)

// Property is a member of an object literal or object pattern. Key is the
// static key, or UnknownKey when computed from a non-literal.
type Property struct {
	NodeBase
	Key       string
	KeyNode   Node
	Value     Node
	Kind      PropertyKind
	Method    bool
	Shorthand bool
	Computed  bool
}

func (p *Property) Type() NodeType { return NodeProperty }

func (p *Property) SomeChild(fn func(Node) bool) bool {
	return visit(fn, p.KeyNode, p.Value)
}

// callAccessor reports whether invoking the getter or setter can be observed.
func (p *Property) callAccessor(options ExecutionPathOptions) bool {
	return p.Value.HasEffectsWhenCalledAtPath(EmptyPath, NewCallOptions(p, nil, false), options)
}

// ObjectExpression is an object literal.
type ObjectExpression struct {
	NodeBase
	Properties []Node

	members     reassignmentTracker
	propagating bool
}

func (o *ObjectExpression) Type() NodeType { return NodeObjectExpression }

func (o *ObjectExpression) SomeChild(fn func(Node) bool) bool {
	return visitList(fn, o.Properties)
}

// propertyLookup is the result of resolving a key against the literal.
type propertyLookup struct {
	// properties may define the key, latest first.
	properties []*Property

	// certain is set when a data property, or both accessors, definitely
	// define the key.
	certain bool

	// unknown is set when a spread may define the key.
	unknown bool
}

func (o *ObjectExpression) lookup(key string) propertyLookup {
	var result propertyLookup
	var hasGetter, hasSetter bool
	for i := len(o.Properties) - 1; i >= 0; i-- {
		prop, ok := o.Properties[i].(*Property)
		if !ok {
			result.unknown = true
			return result
		}
		if key == UnknownKey || prop.Key == UnknownKey {
			result.properties = append(result.properties, prop)
			continue
		}
		if prop.Key != key {
			continue
		}
		result.properties = append(result.properties, prop)
		switch prop.Kind {
		case PropertyInit:
			result.certain = true
			return result
		case PropertyGet:
			hasGetter = true
		case PropertySet:
			hasSetter = true
		}
		if hasGetter && hasSetter {
			result.certain = true
			return result
		}
	}
	// A lone accessor still defines the key.
	result.certain = key != UnknownKey && (hasGetter || hasSetter) && !anyComputed(result.properties)
	return result
}

func anyComputed(props []*Property) bool {
	for _, prop := range props {
		if prop.Key == UnknownKey {
			return true
		}
	}
	return false
}

func (r propertyLookup) has(kind PropertyKind) bool {
	for _, prop := range r.properties {
		if prop.Kind == kind {
			return true
		}
	}
	return false
}

func (o *ObjectExpression) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if path.Len() == 0 {
		return false
	}
	if path.Len() > MaxPathDepth || o.members.affectsAccess(path) {
		return true
	}
	found := o.lookup(path.At(0))
	if found.unknown {
		return path.Len() > 1
	}
	if path.Len() > 1 && !found.certain {
		return true
	}
	rest := path.Rest()
	for _, prop := range found.properties {
		switch prop.Kind {
		case PropertyInit:
			if prop.Value.HasEffectsWhenAccessedAtPath(rest, options) {
				return true
			}
		case PropertyGet:
			if rest.Len() > 0 || prop.callAccessor(options) {
				return true
			}
		}
	}
	if found.certain && !found.has(PropertyInit) && !found.has(PropertyGet) {
		return rest.Len() > 0
	}
	return false
}

func (o *ObjectExpression) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if path.Len() == 0 {
		return true
	}
	if path.Len() > MaxPathDepth || o.members.affectsAssignment(path) {
		return true
	}
	found := o.lookup(path.At(0))
	if path.Len() == 1 {
		for _, prop := range found.properties {
			if prop.Kind == PropertySet && prop.callAccessor(options) {
				return true
			}
		}
		// Writing a getter-only property throws in strict code.
		return found.certain && found.has(PropertyGet) && !found.has(PropertySet) && !found.has(PropertyInit)
	}
	if found.unknown || !found.certain {
		return true
	}
	rest := path.Rest()
	for _, prop := range found.properties {
		switch prop.Kind {
		case PropertyInit:
			if prop.Value.HasEffectsWhenAssignedAtPath(rest, options) {
				return true
			}
		case PropertyGet:
			return true
		}
	}
	return false
}

func (o *ObjectExpression) HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	if path.Len() == 0 || path.Len() > MaxPathDepth || o.members.affectsCall(path) {
		return true
	}
	found := o.lookup(path.At(0))
	if found.unknown || !found.certain {
		return true
	}
	rest := path.Rest()
	for _, prop := range found.properties {
		switch prop.Kind {
		case PropertyInit:
			if prop.Value.HasEffectsWhenCalledAtPath(rest, callOptions, options) {
				return true
			}
		case PropertyGet:
			return true
		}
	}
	return false
}

func (o *ObjectExpression) ForEachReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, callback ForEachReturnExpressionCallback, options ExecutionPathOptions) {
	if path.Len() == 0 || path.Len() > MaxPathDepth || o.members.affectsCall(path) {
		return
	}
	found := o.lookup(path.At(0))
	if found.unknown {
		return
	}
	for _, prop := range found.properties {
		if prop.Kind == PropertyInit {
			prop.Value.ForEachReturnExpressionWhenCalledAtPath(path.Rest(), callOptions, callback, options)
		}
	}
}

func (o *ObjectExpression) SomeReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, predicate SomeReturnExpressionCallback, options ExecutionPathOptions) bool {
	if path.Len() == 0 || path.Len() > MaxPathDepth || o.members.affectsCall(path) {
		return true
	}
	found := o.lookup(path.At(0))
	if found.unknown || !found.certain {
		return true
	}
	for _, prop := range found.properties {
		if prop.Kind != PropertyInit {
			return true
		}
		if prop.Value.SomeReturnExpressionWhenCalledAtPath(path.Rest(), callOptions, predicate, options) {
			return true
		}
	}
	return false
}

// reassignPath records the write and passes it on to the property values
// and spread sources it may reach.
func (o *ObjectExpression) reassignPath(path ObjectPath) {
	if path.Len() == 0 || path.Len() > MaxPathDepth || o.propagating || !o.members.add(path) {
		return
	}
	o.propagating = true
	defer func() { o.propagating = false }()

	key, rest := path.At(0), path.Rest()
	if key == UnknownKey && rest.Len() == 0 {
		rest = UnknownPath
	}
	for _, property := range o.Properties {
		switch prop := property.(type) {
		case *SpreadElement:
			prop.reassignPath(path)
		case *Property:
			if prop.Kind != PropertyInit || rest.Len() == 0 {
				continue
			}
			if key == UnknownKey || prop.Key == UnknownKey || prop.Key == key {
				prop.Value.reassignPath(rest)
			}
		}
	}
}
