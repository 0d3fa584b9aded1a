// Package ast holds the JavaScript syntax tree used by the tree-shaker along
// with the lexical scope chain and the effect analysis every node answers.
//
// Nodes are built by internal/parser and then go through two construction
// passes: Initialise attaches scopes top-down and registers declarations,
// Bind resolves references once the whole tree exists. After that, effect
// queries are pure and may be asked in any order.
package ast

import "fmt"

// NodeType is the discriminant of a syntax node.
type NodeType uint8

const (
	NodeProgram NodeType = iota
	NodeBlockStatement
	NodeEmptyStatement
	NodeExpressionStatement
	NodeDebuggerStatement
	NodeWithStatement
	NodeVariableDeclaration
	NodeVariableDeclarator
	NodeFunctionDeclaration
	NodeFunctionExpression
	NodeArrowFunctionExpression
	NodeReturnStatement
	NodeClassDeclaration
	NodeClassExpression
	NodeMethodDefinition
	NodePropertyDefinition
	NodeStaticBlock
	NodeIfStatement
	NodeSwitchStatement
	NodeSwitchCase
	NodeLabeledStatement
	NodeBreakStatement
	NodeContinueStatement
	NodeForStatement
	NodeForInStatement
	NodeForOfStatement
	NodeWhileStatement
	NodeDoWhileStatement
	NodeTryStatement
	NodeCatchClause
	NodeThrowStatement
	NodeIdentifier
	NodeThisExpression
	NodeSuper
	NodeMetaProperty
	NodeLiteral
	NodeTemplateLiteral
	NodeTaggedTemplateExpression
	NodeArrayExpression
	NodeObjectExpression
	NodeProperty
	NodeSpreadElement
	NodeMemberExpression
	NodeCallExpression
	NodeNewExpression
	NodeConditionalExpression
	NodeLogicalExpression
	NodeBinaryExpression
	NodeUnaryExpression
	NodeUpdateExpression
	NodeAssignmentExpression
	NodeSequenceExpression
	NodeAwaitExpression
	NodeYieldExpression
	NodeObjectPattern
	NodeArrayPattern
	NodeAssignmentPattern
	NodeRestElement

	// Synthetic values that never appear in source.
	NodeUnknownExpression
	NodeUndefinedExpression
	NodeUnknownObjectExpression
)

var nodeTypeNames = [...]string{
	NodeProgram:                  "Program",
	NodeBlockStatement:           "BlockStatement",
	NodeEmptyStatement:           "EmptyStatement",
	NodeExpressionStatement:      "ExpressionStatement",
	NodeDebuggerStatement:        "DebuggerStatement",
	NodeWithStatement:            "WithStatement",
	NodeVariableDeclaration:      "VariableDeclaration",
	NodeVariableDeclarator:       "VariableDeclarator",
	NodeFunctionDeclaration:      "FunctionDeclaration",
	NodeFunctionExpression:       "FunctionExpression",
	NodeArrowFunctionExpression:  "ArrowFunctionExpression",
	NodeReturnStatement:          "ReturnStatement",
	NodeClassDeclaration:         "ClassDeclaration",
	NodeClassExpression:          "ClassExpression",
	NodeMethodDefinition:         "MethodDefinition",
	NodePropertyDefinition:       "PropertyDefinition",
	NodeStaticBlock:              "StaticBlock",
	NodeIfStatement:              "IfStatement",
	NodeSwitchStatement:          "SwitchStatement",
	NodeSwitchCase:               "SwitchCase",
	NodeLabeledStatement:         "LabeledStatement",
	NodeBreakStatement:           "BreakStatement",
	NodeContinueStatement:        "ContinueStatement",
	NodeForStatement:             "ForStatement",
	NodeForInStatement:           "ForInStatement",
	NodeForOfStatement:           "ForOfStatement",
	NodeWhileStatement:           "WhileStatement",
	NodeDoWhileStatement:         "DoWhileStatement",
	NodeTryStatement:             "TryStatement",
	NodeCatchClause:              "CatchClause",
	NodeThrowStatement:           "ThrowStatement",
	NodeIdentifier:               "Identifier",
	NodeThisExpression:           "ThisExpression",
	NodeSuper:                    "Super",
	NodeMetaProperty:             "MetaProperty",
	NodeLiteral:                  "Literal",
	NodeTemplateLiteral:          "TemplateLiteral",
	NodeTaggedTemplateExpression: "TaggedTemplateExpression",
	NodeArrayExpression:          "ArrayExpression",
	NodeObjectExpression:         "ObjectExpression",
	NodeProperty:                 "Property",
	NodeSpreadElement:            "SpreadElement",
	NodeMemberExpression:         "MemberExpression",
	NodeCallExpression:           "CallExpression",
	NodeNewExpression:            "NewExpression",
	NodeConditionalExpression:    "ConditionalExpression",
	NodeLogicalExpression:        "LogicalExpression",
	NodeBinaryExpression:         "BinaryExpression",
	NodeUnaryExpression:          "UnaryExpression",
	NodeUpdateExpression:         "UpdateExpression",
	NodeAssignmentExpression:     "AssignmentExpression",
	NodeSequenceExpression:       "SequenceExpression",
	NodeAwaitExpression:          "AwaitExpression",
	NodeYieldExpression:          "YieldExpression",
	NodeObjectPattern:            "ObjectPattern",
	NodeArrayPattern:             "ArrayPattern",
	NodeAssignmentPattern:        "AssignmentPattern",
	NodeRestElement:              "RestElement",
	NodeUnknownExpression:        "UnknownExpression",
	NodeUndefinedExpression:      "UndefinedExpression",
	NodeUnknownObjectExpression:  "UnknownObjectExpression",
}

func (t NodeType) String() string {
	if int(t) < len(nodeTypeNames) && nodeTypeNames[t] != "" {
		return nodeTypeNames[t]
	}
	return fmt.Sprintf("NodeType(%d)", t)
}

// ForEachReturnExpressionCallback receives every expression that may be the
// result of a call, together with the options in effect where it was found.
type ForEachReturnExpressionCallback func(options ExecutionPathOptions, expression Node)

// SomeReturnExpressionCallback is the short-circuiting counterpart of
// ForEachReturnExpressionCallback.
type SomeReturnExpressionCallback func(options ExecutionPathOptions, expression Node) bool

// ----------------------------------------------------------------------------
// Node contract
// ----------------------------------------------------------------------------

// Node is implemented by every syntax node.
//
// NodeBase supplies conservative defaults for each method; node kinds
// override only what they can answer more precisely.
type Node interface {
	Type() NodeType
	Base() *NodeBase

	// SomeChild calls fn on each direct child in source order until fn
	// returns true.
	SomeChild(fn func(child Node) bool) bool

	InitialiseScope(parentScope Scope)
	InitialiseChildren()
	BindNode()

	// HasEffects reports whether evaluating the node can be observed.
	HasEffects(options ExecutionPathOptions) bool

	// HasEffectsWhenAccessedAtPath reports whether reading path off the
	// node's value can be observed.
	HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool

	// HasEffectsWhenAssignedAtPath reports whether writing path on the
	// node's value can be observed.
	HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool

	// HasEffectsWhenCalledAtPath reports whether calling the value reached
	// through path can be observed.
	HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool

	// ForEachReturnExpressionWhenCalledAtPath visits every expression that
	// may be returned by calling the value at path.
	ForEachReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, callback ForEachReturnExpressionCallback, options ExecutionPathOptions)

	// SomeReturnExpressionWhenCalledAtPath reports whether predicate holds
	// for some possible result of the call. Unknown targets satisfy it.
	SomeReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, predicate SomeReturnExpressionCallback, options ExecutionPathOptions) bool

	// reassignPath records that the value at path may be replaced or
	// mutated by code elsewhere in the program.
	reassignPath(path ObjectPath)
}

// NodeBase is embedded by every node kind.
type NodeBase struct {
	// Start and End are byte offsets into the source text.
	Start int
	End   int

	self   Node
	parent Node
	scope  Scope
}

func (b *NodeBase) Base() *NodeBase { return b }

// Span returns a fresh base covering the same source range.
func (b *NodeBase) Span() NodeBase { return NodeBase{Start: b.Start, End: b.End} }

// Parent returns the enclosing node, or nil for the root.
func (b *NodeBase) Parent() Node { return b.parent }

// Scope returns the scope the node was initialised in, or the scope it
// owns. Asking before Initialise is a construction-order bug.
func (b *NodeBase) Scope() Scope {
	if b.scope == nil {
		panic(fmt.Sprintf("ast: scope of %s at offset %d read before initialisation", b.kind(), b.Start))
	}
	return b.scope
}

func (b *NodeBase) kind() string {
	if b.self == nil {
		return "node"
	}
	return b.self.Type().String()
}

func (b *NodeBase) node() Node {
	if b.self == nil {
		panic(fmt.Sprintf("ast: node at offset %d used before initialisation", b.Start))
	}
	return b.self
}

func (b *NodeBase) SomeChild(fn func(child Node) bool) bool { return false }

func (b *NodeBase) InitialiseScope(parentScope Scope) {
	b.scope = parentScope
}

func (b *NodeBase) InitialiseChildren() {
	self := b.node()
	self.SomeChild(func(child Node) bool {
		Initialise(child, self, b.scope)
		return false
	})
}

func (b *NodeBase) BindNode() {}

func (b *NodeBase) HasEffects(options ExecutionPathOptions) bool {
	return b.node().SomeChild(func(child Node) bool {
		return child.HasEffects(options)
	})
}

func (b *NodeBase) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() > 0
}

func (b *NodeBase) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return true
}

func (b *NodeBase) HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	return true
}

func (b *NodeBase) ForEachReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, callback ForEachReturnExpressionCallback, options ExecutionPathOptions) {
}

func (b *NodeBase) SomeReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, predicate SomeReturnExpressionCallback, options ExecutionPathOptions) bool {
	return true
}

func (b *NodeBase) reassignPath(path ObjectPath) {}

// ----------------------------------------------------------------------------
// Construction passes
// ----------------------------------------------------------------------------

// Initialise attaches node to parent, lets it create or adopt its scope and
// then initialises its children. A node's scope always exists before any of
// its children are visited.
func Initialise(node Node, parent Node, parentScope Scope) {
	if isNil(node) {
		return
	}
	base := node.Base()
	base.self = node
	base.parent = parent
	node.InitialiseScope(parentScope)
	node.InitialiseChildren()
}

// Bind runs the second construction pass over a fully initialised tree:
// every node is bound after its children, then value flow between bindings
// is recorded.
func Bind(root Node) {
	bindTree(root)
	trackReassignments(root)
}

func bindTree(node Node) {
	node.SomeChild(func(child Node) bool {
		bindTree(child)
		return false
	})
	node.BindNode()
}

// reassignmentSource is implemented by nodes that move or mutate values
// (assignments, calls, declarations). It runs once binding is complete so
// that return expressions of functions declared later are known.
type reassignmentSource interface {
	trackReassignments()
}

func trackReassignments(node Node) {
	node.SomeChild(func(child Node) bool {
		trackReassignments(child)
		return false
	})
	if source, ok := node.(reassignmentSource); ok {
		source.trackReassignments()
	}
}

// Walk calls fn for node and every descendant in depth-first pre-order.
// Returning false from fn skips the node's children.
func Walk(node Node, fn func(Node) bool) {
	if isNil(node) || !fn(node) {
		return
	}
	node.SomeChild(func(child Node) bool {
		Walk(child, fn)
		return false
	})
}

// ----------------------------------------------------------------------------
// Helpers
// ----------------------------------------------------------------------------

// isNil reports whether n is nil or a typed nil pointer stored in the
// interface. Optional children are often typed pointers.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Identifier:
		return v == nil
	case *BlockStatement:
		return v == nil
	case *FunctionNode:
		return v == nil
	case *ClassNode:
		return v == nil
	case *CatchClause:
		return v == nil
	case *VariableDeclaration:
		return v == nil
	}
	return false
}

// visit calls fn on each non-nil node, stopping when fn returns true.
func visit(fn func(Node) bool, nodes ...Node) bool {
	for _, n := range nodes {
		if !isNil(n) && fn(n) {
			return true
		}
	}
	return false
}

func visitList[T Node](fn func(Node) bool, nodes []T) bool {
	for _, n := range nodes {
		if !isNil(n) && fn(n) {
			return true
		}
	}
	return false
}

func someHasEffects[T Node](nodes []T, options ExecutionPathOptions) bool {
	for _, n := range nodes {
		if !isNil(n) && n.HasEffects(options) {
			return true
		}
	}
	return false
}
