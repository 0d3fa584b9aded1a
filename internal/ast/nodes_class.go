package ast

// ----------------------------------------------------------------------------
// Classes
// ----------------------------------------------------------------------------

// ClassNode is a class declaration or class expression. The body shares a
// block scope that binds `this` for field initialisers and static blocks.
type ClassNode struct {
	NodeBase
	ID          *Identifier
	SuperClass  Node
	Body        []Node
	Declaration bool

	thisVariable *Variable
}

func (c *ClassNode) Type() NodeType {
	if c.Declaration {
		return NodeClassDeclaration
	}
	return NodeClassExpression
}

func (c *ClassNode) SomeChild(fn func(Node) bool) bool {
	var id Node
	if c.ID != nil {
		id = c.ID
	}
	return visit(fn, id, c.SuperClass) || visitList(fn, c.Body)
}

func (c *ClassNode) InitialiseScope(parentScope Scope) {
	if c.Declaration && c.ID != nil {
		initialiseAndDeclare(c.ID, c, parentScope, DeclareClass, c)
	}
	scope := NewBlockScope(parentScope)
	c.thisVariable = newSpecialVariable("this", VariableThis, scope)
	scope.declare(c.thisVariable)
	c.scope = scope
}

func (c *ClassNode) InitialiseChildren() {
	if !c.Declaration && c.ID != nil {
		initialiseAndDeclare(c.ID, c, c.scope, DeclareClass, c)
	}
	Initialise(c.SuperClass, c, c.scope)
	for _, element := range c.Body {
		Initialise(element, c, c.scope)
	}
}

// HasEffects covers what runs when the class is defined: the superclass
// expression, computed keys, static fields and static blocks.
func (c *ClassNode) HasEffects(options ExecutionPathOptions) bool {
	if !isNil(c.SuperClass) && (!extendable(c.SuperClass) || c.SuperClass.HasEffects(options)) {
		return true
	}
	for _, element := range c.Body {
		switch e := element.(type) {
		case *MethodDefinition:
			if !isNil(e.KeyNode) && e.KeyNode.HasEffects(options) {
				return true
			}
		case *PropertyDefinition:
			if !isNil(e.KeyNode) && e.KeyNode.HasEffects(options) {
				return true
			}
			if e.Static && !isNil(e.Value) && e.Value.HasEffects(options) {
				return true
			}
		case *StaticBlock:
			if e.Body.HasEffects(options) {
				return true
			}
		}
	}
	return false
}

// extendable reports whether superClass may be a constructor or null.
// Extending anything else throws when the class is defined.
func extendable(superClass Node) bool {
	switch n := superClass.(type) {
	case *ClassNode, *Identifier:
		return true
	case *FunctionNode:
		return !n.Async && !n.Generator
	case *Literal:
		return n.Kind == LiteralNull
	}
	return false
}

// staticMember returns the static method or accessor named key, if any.
func (c *ClassNode) staticMember(key string, kinds ...PropertyKind) *MethodDefinition {
	for _, element := range c.Body {
		method, ok := element.(*MethodDefinition)
		if !ok || !method.Static || (method.Key != key && method.Key != UnknownKey) {
			continue
		}
		for _, kind := range kinds {
			if method.Kind == kind {
				return method
			}
		}
	}
	return nil
}

func (c *ClassNode) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if path.Len() > 1 {
		return true
	}
	return path.Len() == 1 && c.staticMember(path.At(0), PropertyGet) != nil
}

func (c *ClassNode) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if path.Len() != 1 {
		return true
	}
	return c.staticMember(path.At(0), PropertyGet, PropertySet) != nil
}

// HasEffectsWhenCalledAtPath handles construction and static method calls.
// Calling a class without new throws.
func (c *ClassNode) HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	if path.Len() == 1 {
		method := c.staticMember(path.At(0), PropertyInit, PropertyGet, PropertySet)
		if method == nil || method.Kind != PropertyInit || method.Key == UnknownKey {
			return true
		}
		return method.Value.HasEffectsWhenCalledAtPath(EmptyPath, callOptions, options)
	}
	if path.Len() > 0 || !callOptions.WithNew {
		return true
	}
	if !isNil(c.SuperClass) && c.SuperClass.HasEffectsWhenCalledAtPath(EmptyPath, callOptions, options) {
		return true
	}
	instance := options.ReplaceVariableInit(c.thisVariable, UnknownObjectExpression)
	for _, element := range c.Body {
		switch e := element.(type) {
		case *MethodDefinition:
			if e.Constructor && e.Value.HasEffectsWhenCalledAtPath(EmptyPath, callOptions, options) {
				return true
			}
		case *PropertyDefinition:
			if !e.Static && !isNil(e.Value) && e.Value.HasEffects(instance) {
				return true
			}
		}
	}
	return false
}

// MethodDefinition is a method, accessor or constructor of a class.
type MethodDefinition struct {
	NodeBase
	Key         string
	KeyNode     Node
	Value       *FunctionNode
	Kind        PropertyKind
	Static      bool
	Computed    bool
	Constructor bool
}

func (m *MethodDefinition) Type() NodeType { return NodeMethodDefinition }

func (m *MethodDefinition) SomeChild(fn func(Node) bool) bool {
	return visit(fn, m.KeyNode, m.Value)
}

// PropertyDefinition is a class field. Its value is evaluated per instance,
// or once at definition when Static is set.
type PropertyDefinition struct {
	NodeBase
	Key      string
	KeyNode  Node
	Value    Node
	Static   bool
	Computed bool
}

func (p *PropertyDefinition) Type() NodeType { return NodePropertyDefinition }

func (p *PropertyDefinition) SomeChild(fn func(Node) bool) bool {
	return visit(fn, p.KeyNode, p.Value)
}

// trackReassignments lets the field value escape: instances are not
// tracked.
func (p *PropertyDefinition) trackReassignments() {
	if !isNil(p.Value) {
		p.Value.reassignPath(UnknownPath)
	}
}

// StaticBlock runs once when the class is defined.
type StaticBlock struct {
	NodeBase
	Body *BlockStatement
}

func (s *StaticBlock) Type() NodeType { return NodeStaticBlock }

func (s *StaticBlock) SomeChild(fn func(Node) bool) bool { return visit(fn, s.Body) }

func (s *StaticBlock) InitialiseChildren() {
	s.Body.InitialiseAndReplaceScope(s, NewScope(s.scope))
}
