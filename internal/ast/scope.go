package ast

import "github.com/HugoDaniel/treeshaker/internal/builtins"

// ----------------------------------------------------------------------------
// Scopes
// ----------------------------------------------------------------------------

// DeclarationKind records the syntax that introduced a binding.
type DeclarationKind uint8

const (
	DeclareVar DeclarationKind = iota
	DeclareLet
	DeclareConst
	DeclareFunction
	DeclareClass
	DeclareParameter
	DeclareCatchParameter
)

// DeclarationOptions describes a declaration being added to a scope.
type DeclarationOptions struct {
	Kind DeclarationKind

	// IsHoisted is set for declarations whose binding belongs to the
	// enclosing function or program rather than the current block.
	IsHoisted bool

	// Init is the value the binding starts with, or nil when unknown.
	Init Node
}

// Scope is a lexical region that owns named bindings.
type Scope interface {
	// Parent returns the enclosing scope, or nil for the global scope.
	Parent() Scope

	// AddDeclaration registers a binding for identifier. Declaring a name
	// twice merges the declarations into one variable.
	AddDeclaration(identifier *Identifier, options DeclarationOptions) *Variable

	// AddReturnExpression registers a possible result of the enclosing
	// function. Scopes that are not functions forward it outward.
	AddReturnExpression(expression Node)

	// FindVariable resolves name against this scope and its ancestors. Names
	// nobody declares resolve to a global variable.
	FindVariable(name string) *Variable

	// FindLexicalBoundary returns the nearest function, arrow or program
	// scope.
	FindLexicalBoundary() Scope

	// Contains reports whether name is declared here or in an ancestor.
	Contains(name string) bool

	// LookupLocal returns the variable declared in this very scope.
	LookupLocal(name string) *Variable
}

// BaseScope is a plain scope that binds every declaration locally. It is
// used for function bodies.
type BaseScope struct {
	parent    Scope
	self      Scope
	variables map[string]*Variable
}

func (s *BaseScope) init(self Scope, parent Scope) {
	s.self = self
	s.parent = parent
	s.variables = make(map[string]*Variable)
}

// NewScope returns a plain scope nested inside parent.
func NewScope(parent Scope) *BaseScope {
	s := &BaseScope{}
	s.init(s, parent)
	return s
}

func (s *BaseScope) Parent() Scope { return s.parent }

func (s *BaseScope) LookupLocal(name string) *Variable { return s.variables[name] }

func (s *BaseScope) AddDeclaration(identifier *Identifier, options DeclarationOptions) *Variable {
	name := identifier.Name
	if variable, ok := s.variables[name]; ok {
		variable.addDeclaration(identifier)
		if !isNil(options.Init) {
			variable.reassignPath(EmptyPath)
		}
		return variable
	}
	variable := newLocalVariable(name, identifier, options, s.self)
	s.declare(variable)
	return variable
}

func (s *BaseScope) declare(variable *Variable) {
	s.variables[variable.Name] = variable
}

func (s *BaseScope) AddReturnExpression(expression Node) {
	if s.parent != nil {
		s.parent.AddReturnExpression(expression)
	}
}

func (s *BaseScope) FindVariable(name string) *Variable {
	if variable, ok := s.variables[name]; ok {
		return variable
	}
	return s.parent.FindVariable(name)
}

func (s *BaseScope) FindLexicalBoundary() Scope {
	return s.parent.FindLexicalBoundary()
}

func (s *BaseScope) Contains(name string) bool {
	if _, ok := s.variables[name]; ok {
		return true
	}
	return s.parent != nil && s.parent.Contains(name)
}

// ----------------------------------------------------------------------------

// BlockScope is the scope of a block, loop head, switch or class body.
// Hoisted declarations are forwarded to the parent.
type BlockScope struct {
	BaseScope
}

func NewBlockScope(parent Scope) *BlockScope {
	s := &BlockScope{}
	s.init(s, parent)
	return s
}

func (s *BlockScope) AddDeclaration(identifier *Identifier, options DeclarationOptions) *Variable {
	if options.IsHoisted {
		return s.parent.AddDeclaration(identifier, options)
	}
	return s.BaseScope.AddDeclaration(identifier, options)
}

// ----------------------------------------------------------------------------

// ParameterScope declares the parameters of a call. Parameters may alias
// any value and start out unknown.
type ParameterScope struct {
	BaseScope
	parameters []*Variable
}

func NewParameterScope(parent Scope) *ParameterScope {
	s := &ParameterScope{}
	s.init(s, parent)
	return s
}

// AddParameterDeclaration binds identifier as a parameter.
func (s *ParameterScope) AddParameterDeclaration(identifier *Identifier) *Variable {
	if variable, ok := s.variables[identifier.Name]; ok {
		variable.addDeclaration(identifier)
		return variable
	}
	variable := newParameterVariable(identifier, s.self)
	s.declare(variable)
	s.parameters = append(s.parameters, variable)
	return variable
}

// Parameters returns the parameter variables in declaration order.
func (s *ParameterScope) Parameters() []*Variable { return s.parameters }

// ----------------------------------------------------------------------------

// CatchScope is the scope of a catch clause. The caught parameter and
// block-scoped declarations of the catch body stay local; hoisted
// declarations belong to the enclosing function or program.
type CatchScope struct {
	ParameterScope
}

func NewCatchScope(parent Scope) *CatchScope {
	s := &CatchScope{}
	s.init(s, parent)
	return s
}

func (s *CatchScope) AddDeclaration(identifier *Identifier, options DeclarationOptions) *Variable {
	if options.IsHoisted {
		return s.parent.AddDeclaration(identifier, options)
	}
	return s.ParameterScope.AddDeclaration(identifier, options)
}

// ----------------------------------------------------------------------------

// ReturnValueScope belongs to a function-like node and collects the
// expressions a call to it may evaluate to.
type ReturnValueScope struct {
	ParameterScope
	returnExpressions []Node
}

func NewReturnValueScope(parent Scope) *ReturnValueScope {
	s := &ReturnValueScope{}
	s.init(s, parent)
	return s
}

// AddReturnExpression registers expression as a possible call result.
// Conditional, logical and sequence expressions contribute the branches
// their value can come from. Each expression is recorded once.
func (s *ReturnValueScope) AddReturnExpression(expression Node) {
	switch e := expression.(type) {
	case *ConditionalExpression:
		s.AddReturnExpression(e.Consequent)
		s.AddReturnExpression(e.Alternate)
		return
	case *LogicalExpression:
		s.AddReturnExpression(e.Left)
		s.AddReturnExpression(e.Right)
		return
	case *SequenceExpression:
		if len(e.Expressions) > 0 {
			s.AddReturnExpression(e.Expressions[len(e.Expressions)-1])
			return
		}
	}
	for _, existing := range s.returnExpressions {
		if existing == expression {
			return
		}
	}
	s.returnExpressions = append(s.returnExpressions, expression)
}

// ReturnExpressions returns the registered call results in order.
func (s *ReturnValueScope) ReturnExpressions() []Node { return s.returnExpressions }

// ForEachReturnExpressionWhenCalled visits every registered result.
func (s *ReturnValueScope) ForEachReturnExpressionWhenCalled(callOptions CallOptions, callback ForEachReturnExpressionCallback, options ExecutionPathOptions) {
	for _, expression := range s.returnExpressions {
		callback(options, expression)
	}
}

// SomeReturnExpressionWhenCalled reports whether predicate holds for any
// registered result, stopping at the first match.
func (s *ReturnValueScope) SomeReturnExpressionWhenCalled(callOptions CallOptions, predicate SomeReturnExpressionCallback, options ExecutionPathOptions) bool {
	for _, expression := range s.returnExpressions {
		if predicate(options, expression) {
			return true
		}
	}
	return false
}

func (s *ReturnValueScope) FindLexicalBoundary() Scope { return s.self }

// ----------------------------------------------------------------------------

// FunctionScope is the scope of a non-arrow function. It adds the `this`
// and `arguments` bindings.
type FunctionScope struct {
	ReturnValueScope
	thisVariable      *Variable
	argumentsVariable *Variable
}

func NewFunctionScope(parent Scope) *FunctionScope {
	s := &FunctionScope{}
	s.init(s, parent)
	s.thisVariable = newSpecialVariable("this", VariableThis, s)
	s.argumentsVariable = newSpecialVariable("arguments", VariableArguments, s)
	s.declare(s.thisVariable)
	s.declare(s.argumentsVariable)
	return s
}

// This returns the variable `this` resolves to inside the function.
func (s *FunctionScope) This() *Variable { return s.thisVariable }

// OptionsWhenCalledWith returns options for analysing the body of the
// function for the given call. A constructor call binds `this` to a fresh
// object.
func (s *FunctionScope) OptionsWhenCalledWith(callOptions CallOptions, options ExecutionPathOptions) ExecutionPathOptions {
	if callOptions.WithNew {
		return options.ReplaceVariableInit(s.thisVariable, UnknownObjectExpression)
	}
	return options
}

// ----------------------------------------------------------------------------

// ModuleScope is the top-level scope of a program.
type ModuleScope struct {
	BaseScope
}

func NewModuleScope(parent Scope) *ModuleScope {
	s := &ModuleScope{}
	s.init(s, parent)
	s.declare(newSpecialVariable("this", VariableThis, s))
	return s
}

func (s *ModuleScope) FindLexicalBoundary() Scope { return s }

// ----------------------------------------------------------------------------

// GlobalScope sits above the module scope. Any name no scope declares
// resolves here to a global variable created on first lookup.
type GlobalScope struct {
	BaseScope
	pureGlobals bool
}

// NewGlobalScope returns the root of a scope chain. When pureGlobals is set,
// well-known built-ins (Math, Object.keys, ...) are trusted to be free of
// side effects.
func NewGlobalScope(pureGlobals bool) *GlobalScope {
	s := &GlobalScope{pureGlobals: pureGlobals}
	s.init(s, nil)
	return s
}

func (s *GlobalScope) FindVariable(name string) *Variable {
	if variable, ok := s.variables[name]; ok {
		return variable
	}
	variable := newGlobalVariable(name, s, s.pureGlobals && builtins.IsBuiltin(name))
	s.declare(variable)
	return variable
}

func (s *GlobalScope) FindLexicalBoundary() Scope { return s }

func (s *GlobalScope) AddReturnExpression(expression Node) {}
