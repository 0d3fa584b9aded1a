package ast

// ----------------------------------------------------------------------------
// References
// ----------------------------------------------------------------------------

// Identifier is a reference to a binding, or the binding itself when it
// appears as a declaration target.
type Identifier struct {
	NodeBase
	Name     string
	Variable *Variable
}

func (id *Identifier) Type() NodeType { return NodeIdentifier }

func (id *Identifier) BindNode() {
	if id.Variable == nil {
		id.Variable = id.Scope().FindVariable(id.Name)
	}
}

// HasEffects reports reads of globals nobody declared: they throw when the
// name does not exist at run time.
func (id *Identifier) HasEffects(options ExecutionPathOptions) bool {
	return id.Variable != nil && id.Variable.IsGlobal() && !id.Variable.IsPureGlobal()
}

func (id *Identifier) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if id.Variable == nil {
		return path.Len() > 0
	}
	return id.Variable.HasEffectsWhenAccessedAtPath(path, options)
}

func (id *Identifier) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if id.Variable == nil {
		return true
	}
	if crossesLexicalBoundary(id.Variable, id.Scope()) {
		return true
	}
	return id.Variable.HasEffectsWhenAssignedAtPath(path, options)
}

// crossesLexicalBoundary reports whether a write from scope reaches state
// owned by another function, which callers of that function can observe.
func crossesLexicalBoundary(variable *Variable, scope Scope) bool {
	if variable.IsGlobal() {
		return false
	}
	return variable.Scope().FindLexicalBoundary() != scope.FindLexicalBoundary()
}

func (id *Identifier) HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	if id.Variable == nil {
		return true
	}
	return id.Variable.HasEffectsWhenCalledAtPath(path, callOptions, options)
}

func (id *Identifier) ForEachReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, callback ForEachReturnExpressionCallback, options ExecutionPathOptions) {
	if id.Variable != nil {
		id.Variable.ForEachReturnExpressionWhenCalledAtPath(path, callOptions, callback, options)
	}
}

func (id *Identifier) SomeReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, predicate SomeReturnExpressionCallback, options ExecutionPathOptions) bool {
	if id.Variable == nil {
		return true
	}
	return id.Variable.SomeReturnExpressionWhenCalledAtPath(path, callOptions, predicate, options)
}

func (id *Identifier) reassignPath(path ObjectPath) {
	if id.Variable != nil {
		id.Variable.reassignPath(path)
	}
}

// ThisExpression resolves to the `this` binding of the nearest function,
// class or program.
type ThisExpression struct {
	NodeBase
	Variable *Variable
}

func (t *ThisExpression) Type() NodeType { return NodeThisExpression }

func (t *ThisExpression) BindNode() {
	t.Variable = t.Scope().FindVariable("this")
}

func (t *ThisExpression) HasEffects(options ExecutionPathOptions) bool { return false }

func (t *ThisExpression) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return t.Variable.HasEffectsWhenAccessedAtPath(path, options)
}

func (t *ThisExpression) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if crossesLexicalBoundary(t.Variable, t.Scope()) {
		return true
	}
	return t.Variable.HasEffectsWhenAssignedAtPath(path, options)
}

func (t *ThisExpression) HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	return t.Variable.HasEffectsWhenCalledAtPath(path, callOptions, options)
}

func (t *ThisExpression) reassignPath(path ObjectPath) {
	t.Variable.reassignPath(path)
}

// Super is the `super` keyword. Nothing is known about the parent class.
type Super struct {
	NodeBase
}

func (s *Super) Type() NodeType { return NodeSuper }

// MetaProperty is new.target or import.meta.
type MetaProperty struct {
	NodeBase
	Meta     string
	Property string
}

func (m *MetaProperty) Type() NodeType { return NodeMetaProperty }

// ----------------------------------------------------------------------------
// Members and calls
// ----------------------------------------------------------------------------

// MemberExpression reads Key off Object. Property is set for computed
// members; Key is then the literal value of the property or UnknownKey.
// Private members use their name prefixed with '#'.
type MemberExpression struct {
	NodeBase
	Object   Node
	Property Node
	Key      string
	Computed bool
	Optional bool
}

func (m *MemberExpression) Type() NodeType { return NodeMemberExpression }

func (m *MemberExpression) SomeChild(fn func(Node) bool) bool {
	return visit(fn, m.Object, m.Property)
}

func (m *MemberExpression) HasEffects(options ExecutionPathOptions) bool {
	return m.objectHasEffects(options) ||
		(options.PropertyReadSideEffects() && m.Object.HasEffectsWhenAccessedAtPath(NewObjectPath(m.Key), options))
}

// objectHasEffects covers evaluating the parts of the member expression
// without reading the member itself.
func (m *MemberExpression) objectHasEffects(options ExecutionPathOptions) bool {
	return m.Object.HasEffects(options) || (!isNil(m.Property) && m.Property.HasEffects(options))
}

func (m *MemberExpression) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return m.Object.HasEffectsWhenAccessedAtPath(path.Prepend(m.Key), options)
}

func (m *MemberExpression) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return m.Object.HasEffectsWhenAssignedAtPath(path.Prepend(m.Key), options)
}

func (m *MemberExpression) HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	return m.Object.HasEffectsWhenCalledAtPath(path.Prepend(m.Key), callOptions, options)
}

func (m *MemberExpression) ForEachReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, callback ForEachReturnExpressionCallback, options ExecutionPathOptions) {
	m.Object.ForEachReturnExpressionWhenCalledAtPath(path.Prepend(m.Key), callOptions, callback, options)
}

func (m *MemberExpression) SomeReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, predicate SomeReturnExpressionCallback, options ExecutionPathOptions) bool {
	return m.Object.SomeReturnExpressionWhenCalledAtPath(path.Prepend(m.Key), callOptions, predicate, options)
}

func (m *MemberExpression) reassignPath(path ObjectPath) {
	m.Object.reassignPath(path.Prepend(m.Key))
}

// CallExpression calls Callee. Its value is whatever the callee returns.
type CallExpression struct {
	NodeBase
	Callee    Node
	Arguments []Node
	Optional  bool

	callOptions CallOptions
	reassigning bool
}

func (c *CallExpression) Type() NodeType { return NodeCallExpression }

func (c *CallExpression) SomeChild(fn func(Node) bool) bool {
	return visit(fn, c.Callee) || visitList(fn, c.Arguments)
}

func (c *CallExpression) BindNode() {
	c.callOptions = NewCallOptions(c, c.Arguments, false)
}

// CallOptions returns the call descriptor used for queries on the callee.
func (c *CallExpression) CallOptions() CallOptions { return c.callOptions }

func (c *CallExpression) HasEffects(options ExecutionPathOptions) bool {
	return someHasEffects(c.Arguments, options) ||
		c.Callee.HasEffects(options) ||
		c.Callee.HasEffectsWhenCalledAtPath(EmptyPath, c.callOptions, options)
}

func (c *CallExpression) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if path.Len() == 0 {
		return false
	}
	if options.HasReturnExpressionBeenAccessedAtPath(path, c) {
		return false
	}
	return c.Callee.SomeReturnExpressionWhenCalledAtPath(EmptyPath, c.callOptions,
		func(options ExecutionPathOptions, expression Node) bool {
			return expression.HasEffectsWhenAccessedAtPath(path, options)
		}, options.AddAccessedReturnExpressionAtPath(path, c))
}

func (c *CallExpression) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if path.Len() == 0 {
		return true
	}
	if options.HasReturnExpressionBeenAssignedAtPath(path, c) {
		return false
	}
	return c.Callee.SomeReturnExpressionWhenCalledAtPath(EmptyPath, c.callOptions,
		func(options ExecutionPathOptions, expression Node) bool {
			return expression.HasEffectsWhenAssignedAtPath(path, options)
		}, options.AddAssignedReturnExpressionAtPath(path, c))
}

func (c *CallExpression) HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	if options.HasReturnExpressionBeenCalledAtPath(path, c) {
		return false
	}
	return c.Callee.SomeReturnExpressionWhenCalledAtPath(EmptyPath, c.callOptions,
		func(options ExecutionPathOptions, expression Node) bool {
			return expression.HasEffectsWhenCalledAtPath(path, callOptions, options)
		}, options.AddCalledReturnExpressionAtPath(path, c))
}

func (c *CallExpression) ForEachReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, callback ForEachReturnExpressionCallback, options ExecutionPathOptions) {
	if options.HasReturnExpressionBeenCalledAtPath(path, c) {
		return
	}
	c.Callee.ForEachReturnExpressionWhenCalledAtPath(EmptyPath, c.callOptions,
		func(options ExecutionPathOptions, expression Node) {
			expression.ForEachReturnExpressionWhenCalledAtPath(path, callOptions, callback, options)
		}, options.AddCalledReturnExpressionAtPath(path, c))
}

func (c *CallExpression) SomeReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, predicate SomeReturnExpressionCallback, options ExecutionPathOptions) bool {
	if options.HasReturnExpressionBeenCalledAtPath(path, c) {
		return false
	}
	return c.Callee.SomeReturnExpressionWhenCalledAtPath(EmptyPath, c.callOptions,
		func(options ExecutionPathOptions, expression Node) bool {
			return expression.SomeReturnExpressionWhenCalledAtPath(path, callOptions, predicate, options)
		}, options.AddCalledReturnExpressionAtPath(path, c))
}

// trackReassignments lets arguments escape into the callee, and lets a
// method call mutate its receiver.
func (c *CallExpression) trackReassignments() {
	escapeArguments(c.Arguments)
	if member, ok := c.Callee.(*MemberExpression); ok {
		member.Object.reassignPath(ObjectPath{UnknownKey, UnknownKey})
	}
}

func (c *CallExpression) reassignPath(path ObjectPath) {
	if c.reassigning {
		return
	}
	c.reassigning = true
	c.Callee.ForEachReturnExpressionWhenCalledAtPath(EmptyPath, c.callOptions,
		func(options ExecutionPathOptions, expression Node) {
			expression.reassignPath(path)
		}, NewExecutionPathOptions())
	c.reassigning = false
}

func escapeArguments(args []Node) {
	for _, arg := range args {
		if !isNil(arg) {
			arg.reassignPath(UnknownPath)
		}
	}
}

// NewExpression constructs Callee. The result is a fresh object.
type NewExpression struct {
	NodeBase
	Callee    Node
	Arguments []Node

	callOptions CallOptions
}

func (n *NewExpression) Type() NodeType { return NodeNewExpression }

func (n *NewExpression) SomeChild(fn func(Node) bool) bool {
	return visit(fn, n.Callee) || visitList(fn, n.Arguments)
}

func (n *NewExpression) BindNode() {
	n.callOptions = NewCallOptions(n, n.Arguments, true)
}

func (n *NewExpression) HasEffects(options ExecutionPathOptions) bool {
	return someHasEffects(n.Arguments, options) ||
		n.Callee.HasEffects(options) ||
		n.Callee.HasEffectsWhenCalledAtPath(EmptyPath, n.callOptions, options)
}

func (n *NewExpression) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() > 1
}

func (n *NewExpression) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() > 1
}

func (n *NewExpression) trackReassignments() {
	escapeArguments(n.Arguments)
}

// ----------------------------------------------------------------------------
// Branching values
// ----------------------------------------------------------------------------

// ConditionalExpression evaluates to either branch.
type ConditionalExpression struct {
	NodeBase
	Test       Node
	Consequent Node
	Alternate  Node
}

func (c *ConditionalExpression) Type() NodeType { return NodeConditionalExpression }

func (c *ConditionalExpression) SomeChild(fn func(Node) bool) bool {
	return visit(fn, c.Test, c.Consequent, c.Alternate)
}

func (c *ConditionalExpression) branches() [2]Node {
	return [2]Node{c.Consequent, c.Alternate}
}

func (c *ConditionalExpression) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() > 0 && branchesAccessed(c.branches(), path, options)
}

func (c *ConditionalExpression) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() == 0 || branchesAssigned(c.branches(), path, options)
}

func (c *ConditionalExpression) HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	return branchesCalled(c.branches(), path, callOptions, options)
}

func (c *ConditionalExpression) ForEachReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, callback ForEachReturnExpressionCallback, options ExecutionPathOptions) {
	for _, branch := range c.branches() {
		branch.ForEachReturnExpressionWhenCalledAtPath(path, callOptions, callback, options)
	}
}

func (c *ConditionalExpression) SomeReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, predicate SomeReturnExpressionCallback, options ExecutionPathOptions) bool {
	return branchesSome(c.branches(), path, callOptions, predicate, options)
}

func (c *ConditionalExpression) reassignPath(path ObjectPath) {
	if path.Len() > 0 {
		c.Consequent.reassignPath(path)
		c.Alternate.reassignPath(path)
	}
}

// LogicalExpression is &&, || or ??. Either operand may be its value.
type LogicalExpression struct {
	NodeBase
	Operator string
	Left     Node
	Right    Node
}

func (l *LogicalExpression) Type() NodeType { return NodeLogicalExpression }

func (l *LogicalExpression) SomeChild(fn func(Node) bool) bool {
	return visit(fn, l.Left, l.Right)
}

func (l *LogicalExpression) branches() [2]Node {
	return [2]Node{l.Left, l.Right}
}

func (l *LogicalExpression) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() > 0 && branchesAccessed(l.branches(), path, options)
}

func (l *LogicalExpression) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() == 0 || branchesAssigned(l.branches(), path, options)
}

func (l *LogicalExpression) HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	return branchesCalled(l.branches(), path, callOptions, options)
}

func (l *LogicalExpression) ForEachReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, callback ForEachReturnExpressionCallback, options ExecutionPathOptions) {
	for _, branch := range l.branches() {
		branch.ForEachReturnExpressionWhenCalledAtPath(path, callOptions, callback, options)
	}
}

func (l *LogicalExpression) SomeReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, predicate SomeReturnExpressionCallback, options ExecutionPathOptions) bool {
	return branchesSome(l.branches(), path, callOptions, predicate, options)
}

func (l *LogicalExpression) reassignPath(path ObjectPath) {
	if path.Len() > 0 {
		l.Left.reassignPath(path)
		l.Right.reassignPath(path)
	}
}

func branchesAccessed(branches [2]Node, path ObjectPath, options ExecutionPathOptions) bool {
	for _, branch := range branches {
		if branch.HasEffectsWhenAccessedAtPath(path, options) {
			return true
		}
	}
	return false
}

func branchesAssigned(branches [2]Node, path ObjectPath, options ExecutionPathOptions) bool {
	for _, branch := range branches {
		if branch.HasEffectsWhenAssignedAtPath(path, options) {
			return true
		}
	}
	return false
}

func branchesCalled(branches [2]Node, path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	for _, branch := range branches {
		if branch.HasEffectsWhenCalledAtPath(path, callOptions, options) {
			return true
		}
	}
	return false
}

func branchesSome(branches [2]Node, path ObjectPath, callOptions CallOptions, predicate SomeReturnExpressionCallback, options ExecutionPathOptions) bool {
	for _, branch := range branches {
		if branch.SomeReturnExpressionWhenCalledAtPath(path, callOptions, predicate, options) {
			return true
		}
	}
	return false
}

// SequenceExpression evaluates to its last expression.
type SequenceExpression struct {
	NodeBase
	Expressions []Node
}

func (s *SequenceExpression) Type() NodeType { return NodeSequenceExpression }

func (s *SequenceExpression) SomeChild(fn func(Node) bool) bool {
	return visitList(fn, s.Expressions)
}

func (s *SequenceExpression) last() Node {
	return s.Expressions[len(s.Expressions)-1]
}

func (s *SequenceExpression) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() > 0 && s.last().HasEffectsWhenAccessedAtPath(path, options)
}

func (s *SequenceExpression) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() == 0 || s.last().HasEffectsWhenAssignedAtPath(path, options)
}

func (s *SequenceExpression) HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	return s.last().HasEffectsWhenCalledAtPath(path, callOptions, options)
}

func (s *SequenceExpression) ForEachReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, callback ForEachReturnExpressionCallback, options ExecutionPathOptions) {
	s.last().ForEachReturnExpressionWhenCalledAtPath(path, callOptions, callback, options)
}

func (s *SequenceExpression) SomeReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, predicate SomeReturnExpressionCallback, options ExecutionPathOptions) bool {
	return s.last().SomeReturnExpressionWhenCalledAtPath(path, callOptions, predicate, options)
}

func (s *SequenceExpression) reassignPath(path ObjectPath) {
	if path.Len() > 0 {
		s.last().reassignPath(path)
	}
}

// ----------------------------------------------------------------------------
// Operators
// ----------------------------------------------------------------------------

// BinaryExpression is an arithmetic, comparison or relational operator.
// The result is always a primitive.
type BinaryExpression struct {
	NodeBase
	Operator string
	Left     Node
	Right    Node
}

func (b *BinaryExpression) Type() NodeType { return NodeBinaryExpression }

func (b *BinaryExpression) SomeChild(fn func(Node) bool) bool {
	return visit(fn, b.Left, b.Right)
}

// HasEffects also covers `in` and `instanceof`, which throw when the right
// operand is not an object.
func (b *BinaryExpression) HasEffects(options ExecutionPathOptions) bool {
	if b.Left.HasEffects(options) || b.Right.HasEffects(options) {
		return true
	}
	if b.Operator == "in" || b.Operator == "instanceof" {
		return !isObjectValue(b.Right)
	}
	return false
}

func isObjectValue(n Node) bool {
	switch n.(type) {
	case *ObjectExpression, *ArrayExpression, *FunctionNode, *ArrowFunctionExpression, *ClassNode:
		return true
	}
	return false
}

func (b *BinaryExpression) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() > 1
}

// UnaryExpression is a prefix operator other than ++ and --.
type UnaryExpression struct {
	NodeBase
	Operator string
	Argument Node
}

func (u *UnaryExpression) Type() NodeType { return NodeUnaryExpression }

func (u *UnaryExpression) SomeChild(fn func(Node) bool) bool {
	return visit(fn, u.Argument)
}

func (u *UnaryExpression) HasEffects(options ExecutionPathOptions) bool {
	switch u.Operator {
	case "typeof":
		if _, ok := u.Argument.(*Identifier); ok {
			return false
		}
	case "delete":
		if member, ok := u.Argument.(*MemberExpression); ok {
			return member.objectHasEffects(options) || member.HasEffectsWhenAssignedAtPath(EmptyPath, options)
		}
		return u.Argument.HasEffects(options) || u.Argument.HasEffectsWhenAssignedAtPath(EmptyPath, options)
	}
	return u.Argument.HasEffects(options)
}

func (u *UnaryExpression) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if u.Operator == "void" {
		return path.Len() > 0
	}
	return path.Len() > 1
}

func (u *UnaryExpression) trackReassignments() {
	if u.Operator == "delete" {
		u.Argument.reassignPath(EmptyPath)
	}
}

// UpdateExpression is ++ or -- in prefix or postfix position.
type UpdateExpression struct {
	NodeBase
	Operator string
	Prefix   bool
	Argument Node
}

func (u *UpdateExpression) Type() NodeType { return NodeUpdateExpression }

func (u *UpdateExpression) SomeChild(fn func(Node) bool) bool {
	return visit(fn, u.Argument)
}

func (u *UpdateExpression) HasEffects(options ExecutionPathOptions) bool {
	return u.Argument.HasEffects(options) || u.Argument.HasEffectsWhenAssignedAtPath(EmptyPath, options)
}

func (u *UpdateExpression) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() > 1
}

func (u *UpdateExpression) trackReassignments() {
	u.Argument.reassignPath(EmptyPath)
}

// AssignmentExpression writes Right into Left. Operator is "=" or a
// compound operator such as "+=".
type AssignmentExpression struct {
	NodeBase
	Operator string
	Left     Node
	Right    Node
}

func (a *AssignmentExpression) Type() NodeType { return NodeAssignmentExpression }

func (a *AssignmentExpression) SomeChild(fn func(Node) bool) bool {
	return visit(fn, a.Left, a.Right)
}

func (a *AssignmentExpression) HasEffects(options ExecutionPathOptions) bool {
	if a.Right.HasEffects(options) || assignmentTargetHasEffects(a.Left, options) {
		return true
	}
	if a.Operator != "=" && a.Left.HasEffects(options) {
		return true
	}
	return a.Left.HasEffectsWhenAssignedAtPath(EmptyPath, options) ||
		destructuringHasEffects(a.Left, a.Right, options)
}

// assignmentTargetHasEffects covers evaluating a target without reading or
// writing it.
func assignmentTargetHasEffects(target Node, options ExecutionPathOptions) bool {
	switch t := target.(type) {
	case *MemberExpression:
		return t.objectHasEffects(options)
	case *Identifier:
		return false
	}
	return target.HasEffects(options)
}

func (a *AssignmentExpression) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() > 0 && a.Right.HasEffectsWhenAccessedAtPath(path, options)
}

func (a *AssignmentExpression) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() == 0 || a.Right.HasEffectsWhenAssignedAtPath(path, options)
}

func (a *AssignmentExpression) HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	return a.Right.HasEffectsWhenCalledAtPath(path, callOptions, options)
}

func (a *AssignmentExpression) ForEachReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, callback ForEachReturnExpressionCallback, options ExecutionPathOptions) {
	a.Right.ForEachReturnExpressionWhenCalledAtPath(path, callOptions, callback, options)
}

func (a *AssignmentExpression) SomeReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, predicate SomeReturnExpressionCallback, options ExecutionPathOptions) bool {
	return a.Right.SomeReturnExpressionWhenCalledAtPath(path, callOptions, predicate, options)
}

// trackReassignments overwrites the target and lets the assigned value
// escape: the target may alias anything.
func (a *AssignmentExpression) trackReassignments() {
	a.Left.reassignPath(EmptyPath)
	a.Right.reassignPath(UnknownPath)
}

func (a *AssignmentExpression) reassignPath(path ObjectPath) {
	if path.Len() > 0 {
		a.Right.reassignPath(path)
	}
}

// ----------------------------------------------------------------------------
// Suspension and templates
// ----------------------------------------------------------------------------

// AwaitExpression suspends the enclosing async function.
type AwaitExpression struct {
	NodeBase
	Argument Node
}

func (a *AwaitExpression) Type() NodeType { return NodeAwaitExpression }

func (a *AwaitExpression) SomeChild(fn func(Node) bool) bool { return visit(fn, a.Argument) }

func (a *AwaitExpression) HasEffects(options ExecutionPathOptions) bool {
	return !options.IgnoreReturnAwaitYield() || a.Argument.HasEffects(options)
}

// YieldExpression hands a value to the consumer of a generator.
type YieldExpression struct {
	NodeBase
	Argument Node
	Delegate bool
}

func (y *YieldExpression) Type() NodeType { return NodeYieldExpression }

func (y *YieldExpression) SomeChild(fn func(Node) bool) bool { return visit(fn, y.Argument) }

func (y *YieldExpression) HasEffects(options ExecutionPathOptions) bool {
	return !options.IgnoreReturnAwaitYield() || (!isNil(y.Argument) && y.Argument.HasEffects(options))
}

func (y *YieldExpression) trackReassignments() {
	if !isNil(y.Argument) {
		y.Argument.reassignPath(UnknownPath)
	}
}

// TaggedTemplateExpression calls Tag with the template's parts.
type TaggedTemplateExpression struct {
	NodeBase
	Tag   Node
	Quasi *TemplateLiteral

	callOptions CallOptions
}

func (t *TaggedTemplateExpression) Type() NodeType { return NodeTaggedTemplateExpression }

func (t *TaggedTemplateExpression) SomeChild(fn func(Node) bool) bool {
	return visit(fn, t.Tag, t.Quasi)
}

func (t *TaggedTemplateExpression) BindNode() {
	t.callOptions = NewCallOptions(t, t.Quasi.Expressions, false)
}

func (t *TaggedTemplateExpression) HasEffects(options ExecutionPathOptions) bool {
	return t.Quasi.HasEffects(options) ||
		t.Tag.HasEffects(options) ||
		t.Tag.HasEffectsWhenCalledAtPath(EmptyPath, t.callOptions, options)
}

func (t *TaggedTemplateExpression) trackReassignments() {
	escapeArguments(t.Quasi.Expressions)
}

// SpreadElement spreads Argument into a call, array or object literal.
type SpreadElement struct {
	NodeBase
	Argument Node
}

func (s *SpreadElement) Type() NodeType { return NodeSpreadElement }

func (s *SpreadElement) SomeChild(fn func(Node) bool) bool { return visit(fn, s.Argument) }

// HasEffects covers the protocol the spread runs: object spreads read every
// own property, other spreads iterate.
func (s *SpreadElement) HasEffects(options ExecutionPathOptions) bool {
	if s.Argument.HasEffects(options) {
		return true
	}
	if _, ok := s.parent.(*ObjectExpression); ok {
		return s.Argument.HasEffectsWhenAccessedAtPath(UnknownPath, options)
	}
	return s.Argument.HasEffectsWhenCalledAtPath(NewObjectPath(IteratorKey), NewCallOptions(s, nil, false), options)
}

func (s *SpreadElement) reassignPath(path ObjectPath) {
	s.Argument.reassignPath(path)
}
