package ast

// ----------------------------------------------------------------------------
// Functions
// ----------------------------------------------------------------------------

// FunctionNode is a function declaration, function expression, method or
// accessor body.
type FunctionNode struct {
	NodeBase
	ID          *Identifier
	Params      []Node
	Body        *BlockStatement
	Async       bool
	Generator   bool
	Declaration bool

	escaping bool
}

func (f *FunctionNode) Type() NodeType {
	if f.Declaration {
		return NodeFunctionDeclaration
	}
	return NodeFunctionExpression
}

// FunctionScope returns the scope holding the parameters.
func (f *FunctionNode) FunctionScope() *FunctionScope {
	return f.Scope().(*FunctionScope)
}

func (f *FunctionNode) SomeChild(fn func(Node) bool) bool {
	var id Node
	if f.ID != nil {
		id = f.ID
	}
	return visit(fn, id) || visitList(fn, f.Params) || visit(fn, f.Body)
}

func (f *FunctionNode) InitialiseScope(parentScope Scope) {
	if f.Declaration && f.ID != nil {
		initialiseAndDeclare(f.ID, f, parentScope, DeclareFunction, f)
	}
	f.scope = NewFunctionScope(parentScope)
}

func (f *FunctionNode) InitialiseChildren() {
	if !f.Declaration && f.ID != nil {
		initialiseAndDeclare(f.ID, f, f.scope, DeclareFunction, f)
	}
	for _, param := range f.Params {
		initialiseAndDeclare(param, f, f.scope, DeclareParameter, nil)
	}
	f.Body.InitialiseAndReplaceScope(f, NewScope(f.scope))
}

func (f *FunctionNode) BindNode() {
	f.Body.bindImplicitReturnExpressionToScope()
}

func (f *FunctionNode) HasEffects(options ExecutionPathOptions) bool {
	return false
}

func (f *FunctionNode) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return functionMemberHasEffects(path)
}

func (f *FunctionNode) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return functionMemberHasEffects(path)
}

// functionMemberHasEffects covers own members of a function value, which
// include the prototype object.
func functionMemberHasEffects(path ObjectPath) bool {
	if path.Len() <= 1 {
		return false
	}
	if path.At(0) == "prototype" {
		return path.Len() > 2
	}
	return true
}

func (f *FunctionNode) HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	if path.Len() > 0 {
		return true
	}
	inner := f.FunctionScope().OptionsWhenCalledWith(callOptions, options.GetHasEffectsWhenCalledOptions())
	return paramsHaveEffects(f.Params, callOptions, inner) || f.Body.HasEffects(inner)
}

func (f *FunctionNode) ForEachReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, callback ForEachReturnExpressionCallback, options ExecutionPathOptions) {
	if path.Len() == 0 {
		f.FunctionScope().ForEachReturnExpressionWhenCalled(callOptions, callback, options)
	}
}

func (f *FunctionNode) SomeReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, predicate SomeReturnExpressionCallback, options ExecutionPathOptions) bool {
	return path.Len() > 0 || f.FunctionScope().SomeReturnExpressionWhenCalled(callOptions, predicate, options)
}

func (f *FunctionNode) reassignPath(path ObjectPath) {
	escapeReturnExpressions(&f.FunctionScope().ReturnValueScope, path, &f.escaping)
}

// ----------------------------------------------------------------------------

// ArrowFunctionExpression is an arrow function. Its body is either a block
// or a single expression that is also its only return value.
type ArrowFunctionExpression struct {
	NodeBase
	Params     []Node
	Body       Node
	Expression bool
	Async      bool

	escaping bool
}

func (a *ArrowFunctionExpression) Type() NodeType { return NodeArrowFunctionExpression }

// ReturnValueScope returns the scope holding the parameters and results.
func (a *ArrowFunctionExpression) ReturnValueScope() *ReturnValueScope {
	return a.Scope().(*ReturnValueScope)
}

func (a *ArrowFunctionExpression) SomeChild(fn func(Node) bool) bool {
	return visitList(fn, a.Params) || visit(fn, a.Body)
}

func (a *ArrowFunctionExpression) InitialiseScope(parentScope Scope) {
	a.scope = NewReturnValueScope(parentScope)
}

func (a *ArrowFunctionExpression) InitialiseChildren() {
	for _, param := range a.Params {
		initialiseAndDeclare(param, a, a.scope, DeclareParameter, nil)
	}
	if block, ok := a.Body.(*BlockStatement); ok {
		block.InitialiseAndReplaceScope(a, NewScope(a.scope))
	} else {
		Initialise(a.Body, a, a.scope)
	}
}

func (a *ArrowFunctionExpression) BindNode() {
	if block, ok := a.Body.(*BlockStatement); ok {
		block.bindImplicitReturnExpressionToScope()
	} else {
		a.ReturnValueScope().AddReturnExpression(a.Body)
	}
}

func (a *ArrowFunctionExpression) HasEffects(options ExecutionPathOptions) bool {
	return false
}

func (a *ArrowFunctionExpression) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() > 1
}

func (a *ArrowFunctionExpression) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() > 1
}

func (a *ArrowFunctionExpression) HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	if path.Len() > 0 || callOptions.WithNew {
		return true
	}
	inner := options.GetHasEffectsWhenCalledOptions()
	return paramsHaveEffects(a.Params, callOptions, inner) || a.Body.HasEffects(inner)
}

func (a *ArrowFunctionExpression) ForEachReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, callback ForEachReturnExpressionCallback, options ExecutionPathOptions) {
	if path.Len() == 0 {
		a.ReturnValueScope().ForEachReturnExpressionWhenCalled(callOptions, callback, options)
	}
}

func (a *ArrowFunctionExpression) SomeReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, predicate SomeReturnExpressionCallback, options ExecutionPathOptions) bool {
	return path.Len() > 0 || a.ReturnValueScope().SomeReturnExpressionWhenCalled(callOptions, predicate, options)
}

func (a *ArrowFunctionExpression) reassignPath(path ObjectPath) {
	escapeReturnExpressions(a.ReturnValueScope(), path, &a.escaping)
}

// escapeReturnExpressions handles a function value reaching code that is
// not analysed: whatever it returns may be mutated there.
func escapeReturnExpressions(scope *ReturnValueScope, path ObjectPath, inProgress *bool) {
	if path.Len() == 0 || path.At(0) != UnknownKey || *inProgress {
		return
	}
	*inProgress = true
	for _, expression := range scope.ReturnExpressions() {
		expression.reassignPath(UnknownPath)
	}
	*inProgress = false
}

// paramsHaveEffects reports whether binding the call's arguments to params
// can be observed: default values with effects, or destructuring that reads
// through getters or iterates.
func paramsHaveEffects(params []Node, callOptions CallOptions, options ExecutionPathOptions) bool {
	for i, param := range params {
		if param.HasEffects(options) || destructuringHasEffects(param, argumentAt(callOptions, i), options) {
			return true
		}
	}
	return false
}

// argumentAt returns the argument bound to the i-th parameter, nil when it
// cannot be told, or UndefinedExpression when the call passes fewer.
func argumentAt(callOptions CallOptions, i int) Node {
	if callOptions.Args == nil {
		return nil
	}
	for j, arg := range callOptions.Args {
		if _, ok := arg.(*SpreadElement); ok {
			return nil
		}
		if j == i {
			return arg
		}
	}
	return UndefinedExpression
}

// ----------------------------------------------------------------------------

// ReturnStatement registers its argument as a result of the enclosing
// function.
type ReturnStatement struct {
	NodeBase
	Argument Node
}

func (r *ReturnStatement) Type() NodeType { return NodeReturnStatement }

func (r *ReturnStatement) SomeChild(fn func(Node) bool) bool {
	return visit(fn, r.Argument)
}

func (r *ReturnStatement) BindNode() {
	if isNil(r.Argument) {
		r.Scope().AddReturnExpression(UndefinedExpression)
	} else {
		r.Scope().AddReturnExpression(r.Argument)
	}
}

func (r *ReturnStatement) HasEffects(options ExecutionPathOptions) bool {
	return !options.IgnoreReturnAwaitYield() || (!isNil(r.Argument) && r.Argument.HasEffects(options))
}
