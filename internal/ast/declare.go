package ast

// declarable is implemented by nodes that can appear as the target of a
// declaration: identifiers and the destructuring patterns around them.
type declarable interface {
	declare(scope Scope, kind DeclarationKind, init Node)
}

type parameterDeclarer interface {
	AddParameterDeclaration(identifier *Identifier) *Variable
}

// initialiseAndDeclare initialises a declaration target in scope and binds
// every identifier it contains. init is only kept for plain identifiers;
// destructured bindings start out unknown.
func initialiseAndDeclare(target Node, parent Node, scope Scope, kind DeclarationKind, init Node) {
	if isNil(target) {
		return
	}
	Initialise(target, parent, scope)
	if d, ok := target.(declarable); ok {
		d.declare(scope, kind, init)
	}
}

func (id *Identifier) declare(scope Scope, kind DeclarationKind, init Node) {
	if kind == DeclareParameter || kind == DeclareCatchParameter {
		if ps, ok := scope.(parameterDeclarer); ok {
			id.Variable = ps.AddParameterDeclaration(id)
			return
		}
	}
	id.Variable = scope.AddDeclaration(id, DeclarationOptions{
		Kind:      kind,
		IsHoisted: kind == DeclareVar,
		Init:      init,
	})
}

func (p *ObjectPattern) declare(scope Scope, kind DeclarationKind, init Node) {
	for _, property := range p.Properties {
		switch prop := property.(type) {
		case *Property:
			declareTarget(prop.Value, scope, kind)
		case *RestElement:
			prop.declare(scope, kind, nil)
		}
	}
}

func (p *ArrayPattern) declare(scope Scope, kind DeclarationKind, init Node) {
	for _, element := range p.Elements {
		declareTarget(element, scope, kind)
	}
}

func (p *AssignmentPattern) declare(scope Scope, kind DeclarationKind, init Node) {
	declareTarget(p.Left, scope, kind)
}

func (r *RestElement) declare(scope Scope, kind DeclarationKind, init Node) {
	declareTarget(r.Argument, scope, kind)
}

func declareTarget(target Node, scope Scope, kind DeclarationKind) {
	if d, ok := target.(declarable); ok && !isNil(target) {
		d.declare(scope, kind, nil)
	}
}

// destructuringHasEffects reports whether destructuring source into target
// can be observed. A nil source is a value nothing is known about.
func destructuringHasEffects(target Node, source Node, options ExecutionPathOptions) bool {
	switch t := target.(type) {
	case *ObjectPattern:
		for _, property := range t.Properties {
			prop, ok := property.(*Property)
			if !ok {
				if rest, ok := property.(*RestElement); ok && destructuringHasEffects(rest.Argument, nil, options) {
					return true
				}
				continue
			}
			if options.PropertyReadSideEffects() {
				if isNil(source) || source.HasEffectsWhenAccessedAtPath(NewObjectPath(prop.Key), options) {
					return true
				}
			}
			if destructuringHasEffects(prop.Value, nil, options) {
				return true
			}
		}
		if len(t.Properties) == 0 {
			if isNil(source) {
				return options.PropertyReadSideEffects()
			}
			return source.HasEffectsWhenAccessedAtPath(UnknownPath, options)
		}
		return false
	case *ArrayPattern:
		if isNil(source) || source.HasEffectsWhenCalledAtPath(NewObjectPath(IteratorKey), NewCallOptions(t, nil, false), options) {
			return true
		}
		for _, element := range t.Elements {
			if destructuringHasEffects(element, nil, options) {
				return true
			}
		}
		return false
	case *AssignmentPattern:
		// The default applies whenever the source turns out undefined.
		if source != UndefinedExpression && destructuringHasEffects(t.Left, source, options) {
			return true
		}
		return destructuringHasEffects(t.Left, t.Right, options)
	case *RestElement:
		return destructuringHasEffects(t.Argument, nil, options)
	}
	return false
}
