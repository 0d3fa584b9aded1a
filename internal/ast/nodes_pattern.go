package ast

// ----------------------------------------------------------------------------
// Destructuring targets
// ----------------------------------------------------------------------------

// Patterns appear as declaration targets, parameters and assignment
// targets. Evaluating a pattern only evaluates its computed keys and
// defaults; reading the source is covered by destructuringHasEffects.

// ObjectPattern destructures by key. Properties holds *Property entries
// whose Value is the target, and an optional trailing *RestElement.
type ObjectPattern struct {
	NodeBase
	Properties []Node
}

func (p *ObjectPattern) Type() NodeType { return NodeObjectPattern }

func (p *ObjectPattern) SomeChild(fn func(Node) bool) bool {
	return visitList(fn, p.Properties)
}

func (p *ObjectPattern) HasEffects(options ExecutionPathOptions) bool {
	for _, property := range p.Properties {
		switch prop := property.(type) {
		case *Property:
			if (!isNil(prop.KeyNode) && prop.KeyNode.HasEffects(options)) || assignmentTargetHasEffects(prop.Value, options) {
				return true
			}
		case *RestElement:
			if assignmentTargetHasEffects(prop.Argument, options) {
				return true
			}
		}
	}
	return false
}

func (p *ObjectPattern) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if path.Len() > 0 {
		return true
	}
	for _, target := range p.targets() {
		if target.HasEffectsWhenAssignedAtPath(EmptyPath, options) {
			return true
		}
	}
	return false
}

func (p *ObjectPattern) targets() []Node {
	targets := make([]Node, 0, len(p.Properties))
	for _, property := range p.Properties {
		switch prop := property.(type) {
		case *Property:
			targets = append(targets, prop.Value)
		case *RestElement:
			targets = append(targets, prop.Argument)
		}
	}
	return targets
}

func (p *ObjectPattern) reassignPath(path ObjectPath) {
	if path.Len() == 0 {
		for _, target := range p.targets() {
			target.reassignPath(EmptyPath)
		}
	}
}

// ArrayPattern destructures by iteration. Holes are nil elements.
type ArrayPattern struct {
	NodeBase
	Elements []Node
}

func (p *ArrayPattern) Type() NodeType { return NodeArrayPattern }

func (p *ArrayPattern) SomeChild(fn func(Node) bool) bool {
	return visitList(fn, p.Elements)
}

func (p *ArrayPattern) HasEffects(options ExecutionPathOptions) bool {
	for _, element := range p.Elements {
		if !isNil(element) && assignmentTargetHasEffects(element, options) {
			return true
		}
	}
	return false
}

func (p *ArrayPattern) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if path.Len() > 0 {
		return true
	}
	for _, element := range p.Elements {
		if !isNil(element) && element.HasEffectsWhenAssignedAtPath(EmptyPath, options) {
			return true
		}
	}
	return false
}

func (p *ArrayPattern) reassignPath(path ObjectPath) {
	if path.Len() > 0 {
		return
	}
	for _, element := range p.Elements {
		if !isNil(element) {
			element.reassignPath(EmptyPath)
		}
	}
}

// AssignmentPattern is a target with a default value.
type AssignmentPattern struct {
	NodeBase
	Left  Node
	Right Node
}

func (p *AssignmentPattern) Type() NodeType { return NodeAssignmentPattern }

func (p *AssignmentPattern) SomeChild(fn func(Node) bool) bool {
	return visit(fn, p.Left, p.Right)
}

func (p *AssignmentPattern) HasEffects(options ExecutionPathOptions) bool {
	return assignmentTargetHasEffects(p.Left, options) || p.Right.HasEffects(options)
}

func (p *AssignmentPattern) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() > 0 || p.Left.HasEffectsWhenAssignedAtPath(EmptyPath, options)
}

func (p *AssignmentPattern) reassignPath(path ObjectPath) {
	if path.Len() == 0 {
		p.Left.reassignPath(EmptyPath)
	}
}

// trackReassignments lets the default value escape into the binding, which
// starts out unknown.
func (p *AssignmentPattern) trackReassignments() {
	p.Right.reassignPath(UnknownPath)
}

// RestElement collects the remaining elements or properties.
type RestElement struct {
	NodeBase
	Argument Node
}

func (r *RestElement) Type() NodeType { return NodeRestElement }

func (r *RestElement) SomeChild(fn func(Node) bool) bool {
	return visit(fn, r.Argument)
}

func (r *RestElement) HasEffects(options ExecutionPathOptions) bool {
	return assignmentTargetHasEffects(r.Argument, options)
}

func (r *RestElement) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	return path.Len() > 0 || r.Argument.HasEffectsWhenAssignedAtPath(EmptyPath, options)
}

func (r *RestElement) reassignPath(path ObjectPath) {
	if path.Len() == 0 {
		r.Argument.reassignPath(EmptyPath)
	}
}
