package ast

// ----------------------------------------------------------------------------
// Program and blocks
// ----------------------------------------------------------------------------

// Program is the root of a parsed source file.
type Program struct {
	NodeBase
	Body []Node
}

func (p *Program) Type() NodeType { return NodeProgram }

func (p *Program) SomeChild(fn func(Node) bool) bool { return visitList(fn, p.Body) }

func (p *Program) InitialiseScope(parentScope Scope) {
	p.scope = NewModuleScope(parentScope)
}

// ModuleScope returns the top-level scope of the program.
func (p *Program) ModuleScope() *ModuleScope {
	return p.Scope().(*ModuleScope)
}

// BlockStatement is a braced statement list. Function and catch bodies
// reuse a scope provided by their owner instead of creating one.
type BlockStatement struct {
	NodeBase
	Body []Node
}

func (b *BlockStatement) Type() NodeType { return NodeBlockStatement }

func (b *BlockStatement) SomeChild(fn func(Node) bool) bool { return visitList(fn, b.Body) }

func (b *BlockStatement) InitialiseScope(parentScope Scope) {
	b.scope = NewBlockScope(parentScope)
}

// InitialiseAndReplaceScope initialises the block with scope as its own.
func (b *BlockStatement) InitialiseAndReplaceScope(parent Node, scope Scope) {
	b.self = b
	b.parent = parent
	b.scope = scope
	b.InitialiseChildren()
}

// bindImplicitReturnExpressionToScope registers undefined as a result
// when control can run off the end of a function body.
func (b *BlockStatement) bindImplicitReturnExpressionToScope() {
	if len(b.Body) == 0 {
		b.Scope().AddReturnExpression(UndefinedExpression)
		return
	}
	if _, ok := b.Body[len(b.Body)-1].(*ReturnStatement); !ok {
		b.Scope().AddReturnExpression(UndefinedExpression)
	}
}

type EmptyStatement struct {
	NodeBase
}

func (e *EmptyStatement) Type() NodeType { return NodeEmptyStatement }

type ExpressionStatement struct {
	NodeBase
	Expression Node
}

func (e *ExpressionStatement) Type() NodeType { return NodeExpressionStatement }

func (e *ExpressionStatement) SomeChild(fn func(Node) bool) bool { return visit(fn, e.Expression) }

type DebuggerStatement struct {
	NodeBase
}

func (d *DebuggerStatement) Type() NodeType { return NodeDebuggerStatement }

func (d *DebuggerStatement) HasEffects(options ExecutionPathOptions) bool { return true }

// WithStatement makes name resolution in its body dynamic, so it is always
// kept.
type WithStatement struct {
	NodeBase
	Object Node
	Body   Node
}

func (w *WithStatement) Type() NodeType { return NodeWithStatement }

func (w *WithStatement) SomeChild(fn func(Node) bool) bool { return visit(fn, w.Object, w.Body) }

func (w *WithStatement) HasEffects(options ExecutionPathOptions) bool { return true }

// ----------------------------------------------------------------------------
// Declarations
// ----------------------------------------------------------------------------

// VariableDeclaration is a var, let or const statement.
type VariableDeclaration struct {
	NodeBase
	Kind         DeclarationKind
	Declarations []*VariableDeclarator
}

func (v *VariableDeclaration) Type() NodeType { return NodeVariableDeclaration }

func (v *VariableDeclaration) SomeChild(fn func(Node) bool) bool {
	return visitList(fn, v.Declarations)
}

func (v *VariableDeclaration) InitialiseChildren() {
	for _, declarator := range v.Declarations {
		declarator.kind = v.Kind
		Initialise(declarator, v, v.scope)
	}
}

// VariableDeclarator binds one target, optionally to an initial value.
type VariableDeclarator struct {
	NodeBase
	ID   Node
	Init Node

	kind DeclarationKind
}

func (d *VariableDeclarator) Type() NodeType { return NodeVariableDeclarator }

func (d *VariableDeclarator) SomeChild(fn func(Node) bool) bool { return visit(fn, d.ID, d.Init) }

func (d *VariableDeclarator) InitialiseChildren() {
	Initialise(d.Init, d, d.scope)
	var init Node
	if _, ok := d.ID.(*Identifier); ok && !isNil(d.Init) {
		init = d.Init
	}
	initialiseAndDeclare(d.ID, d, d.scope, d.kind, init)
}

func (d *VariableDeclarator) HasEffects(options ExecutionPathOptions) bool {
	if !isNil(d.Init) && d.Init.HasEffects(options) {
		return true
	}
	if _, ok := d.ID.(*Identifier); ok {
		return false
	}
	return d.ID.HasEffects(options) || destructuringHasEffects(d.ID, d.Init, options)
}

// trackReassignments lets destructured bindings alias members of the
// initial value.
func (d *VariableDeclarator) trackReassignments() {
	if _, ok := d.ID.(*Identifier); ok || isNil(d.Init) {
		return
	}
	d.Init.reassignPath(ObjectPath{UnknownKey, UnknownKey})
}

// ----------------------------------------------------------------------------
// Control flow
// ----------------------------------------------------------------------------

type IfStatement struct {
	NodeBase
	Test       Node
	Consequent Node
	Alternate  Node
}

func (i *IfStatement) Type() NodeType { return NodeIfStatement }

func (i *IfStatement) SomeChild(fn func(Node) bool) bool {
	return visit(fn, i.Test, i.Consequent, i.Alternate)
}

// SwitchStatement evaluates its cases in a block scope. A break that ends a
// case stays inside the switch.
type SwitchStatement struct {
	NodeBase
	Discriminant Node
	Cases        []*SwitchCase
}

func (s *SwitchStatement) Type() NodeType { return NodeSwitchStatement }

func (s *SwitchStatement) SomeChild(fn func(Node) bool) bool {
	return visit(fn, s.Discriminant) || visitList(fn, s.Cases)
}

func (s *SwitchStatement) InitialiseScope(parentScope Scope) {
	s.scope = NewBlockScope(parentScope)
}

func (s *SwitchStatement) HasEffects(options ExecutionPathOptions) bool {
	return s.NodeBase.HasEffects(options.SetIgnoreBreakStatements(true))
}

// SwitchCase has a nil Test for the default case.
type SwitchCase struct {
	NodeBase
	Test       Node
	Consequent []Node
}

func (c *SwitchCase) Type() NodeType { return NodeSwitchCase }

func (c *SwitchCase) SomeChild(fn func(Node) bool) bool {
	return visit(fn, c.Test) || visitList(fn, c.Consequent)
}

type LabeledStatement struct {
	NodeBase
	Label string
	Body  Node
}

func (l *LabeledStatement) Type() NodeType { return NodeLabeledStatement }

func (l *LabeledStatement) SomeChild(fn func(Node) bool) bool { return visit(fn, l.Body) }

func (l *LabeledStatement) HasEffects(options ExecutionPathOptions) bool {
	return l.Body.HasEffects(options.SetIgnoreLabel(l.Label))
}

// BreakStatement is a break, or a continue when Continue is set. Leaving a
// statement that is not being analysed as a whole is an effect.
type BreakStatement struct {
	NodeBase
	Label    string
	Continue bool
}

func (b *BreakStatement) Type() NodeType {
	if b.Continue {
		return NodeContinueStatement
	}
	return NodeBreakStatement
}

func (b *BreakStatement) HasEffects(options ExecutionPathOptions) bool {
	if b.Label != "" {
		return !options.IgnoreLabel(b.Label)
	}
	return !options.IgnoreBreakStatements()
}

type ThrowStatement struct {
	NodeBase
	Argument Node
}

func (t *ThrowStatement) Type() NodeType { return NodeThrowStatement }

func (t *ThrowStatement) SomeChild(fn func(Node) bool) bool { return visit(fn, t.Argument) }

func (t *ThrowStatement) HasEffects(options ExecutionPathOptions) bool { return true }

func (t *ThrowStatement) trackReassignments() {
	t.Argument.reassignPath(UnknownPath)
}

// TryStatement is kept whenever its block does anything at all, since any
// statement in it may throw into the handler.
type TryStatement struct {
	NodeBase
	Block     *BlockStatement
	Handler   *CatchClause
	Finalizer *BlockStatement
}

func (t *TryStatement) Type() NodeType { return NodeTryStatement }

func (t *TryStatement) SomeChild(fn func(Node) bool) bool {
	return visit(fn, t.Block, t.Handler, t.Finalizer)
}

func (t *TryStatement) HasEffects(options ExecutionPathOptions) bool {
	if len(t.Block.Body) > 0 {
		return true
	}
	return t.Finalizer != nil && t.Finalizer.HasEffects(options)
}

// CatchClause owns a CatchScope shared with its body.
type CatchClause struct {
	NodeBase
	Param Node
	Body  *BlockStatement
}

func (c *CatchClause) Type() NodeType { return NodeCatchClause }

func (c *CatchClause) SomeChild(fn func(Node) bool) bool { return visit(fn, c.Param, c.Body) }

func (c *CatchClause) InitialiseScope(parentScope Scope) {
	c.scope = NewCatchScope(parentScope)
}

func (c *CatchClause) InitialiseChildren() {
	initialiseAndDeclare(c.Param, c, c.scope, DeclareCatchParameter, nil)
	c.Body.InitialiseAndReplaceScope(c, c.scope)
}

// CatchScope returns the scope of the clause.
func (c *CatchClause) CatchScope() *CatchScope {
	return c.Scope().(*CatchScope)
}

// ----------------------------------------------------------------------------
// Loops
// ----------------------------------------------------------------------------

// Loop bodies are analysed with breaks ignored: leaving the loop is local
// control flow.

type ForStatement struct {
	NodeBase
	Init   Node
	Test   Node
	Update Node
	Body   Node
}

func (f *ForStatement) Type() NodeType { return NodeForStatement }

func (f *ForStatement) SomeChild(fn func(Node) bool) bool {
	return visit(fn, f.Init, f.Test, f.Update, f.Body)
}

func (f *ForStatement) InitialiseScope(parentScope Scope) {
	f.scope = NewBlockScope(parentScope)
}

func (f *ForStatement) HasEffects(options ExecutionPathOptions) bool {
	return visit(func(n Node) bool { return n.HasEffects(options) }, f.Init, f.Test, f.Update) ||
		f.Body.HasEffects(options.SetIgnoreBreakStatements(true))
}

// ForInStatement is a for-in loop, or a for-of loop when Of is set. Left is
// a VariableDeclaration or an assignment target.
type ForInStatement struct {
	NodeBase
	Left  Node
	Right Node
	Body  Node
	Of    bool
	Await bool
}

func (f *ForInStatement) Type() NodeType {
	if f.Of {
		return NodeForOfStatement
	}
	return NodeForInStatement
}

func (f *ForInStatement) SomeChild(fn func(Node) bool) bool {
	return visit(fn, f.Left, f.Right, f.Body)
}

func (f *ForInStatement) InitialiseScope(parentScope Scope) {
	f.scope = NewBlockScope(parentScope)
}

func (f *ForInStatement) HasEffects(options ExecutionPathOptions) bool {
	if f.Right.HasEffects(options) || f.leftHasEffects(options) {
		return true
	}
	if f.Of && f.Right.HasEffectsWhenCalledAtPath(NewObjectPath(IteratorKey), NewCallOptions(f, nil, false), options) {
		return true
	}
	return f.Body.HasEffects(options.SetIgnoreBreakStatements(true))
}

func (f *ForInStatement) leftHasEffects(options ExecutionPathOptions) bool {
	if declaration, ok := f.Left.(*VariableDeclaration); ok {
		for _, declarator := range declaration.Declarations {
			if declarator.ID.HasEffects(options) || destructuringHasEffects(declarator.ID, nil, options) {
				return true
			}
		}
		return false
	}
	return assignmentTargetHasEffects(f.Left, options) ||
		destructuringHasEffects(f.Left, nil, options) ||
		f.Left.HasEffectsWhenAssignedAtPath(EmptyPath, options)
}

func (f *ForInStatement) trackReassignments() {
	if _, ok := f.Left.(*VariableDeclaration); !ok {
		f.Left.reassignPath(EmptyPath)
	}
	if f.Of {
		f.Right.reassignPath(ObjectPath{UnknownKey, UnknownKey})
	}
}

// WhileStatement is a while loop, or a do-while loop when DoWhile is set.
type WhileStatement struct {
	NodeBase
	Test    Node
	Body    Node
	DoWhile bool
}

func (w *WhileStatement) Type() NodeType {
	if w.DoWhile {
		return NodeDoWhileStatement
	}
	return NodeWhileStatement
}

func (w *WhileStatement) SomeChild(fn func(Node) bool) bool {
	if w.DoWhile {
		return visit(fn, w.Body, w.Test)
	}
	return visit(fn, w.Test, w.Body)
}

func (w *WhileStatement) HasEffects(options ExecutionPathOptions) bool {
	return w.Test.HasEffects(options) || w.Body.HasEffects(options.SetIgnoreBreakStatements(true))
}
