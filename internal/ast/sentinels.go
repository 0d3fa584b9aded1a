package ast

// ----------------------------------------------------------------------------
// Synthetic values
// ----------------------------------------------------------------------------

// syntheticValue is a value that has no source position. It stands in for
// results the analysis knows only by shape.
type syntheticValue struct {
	NodeBase
	kind NodeType
}

func newSyntheticValue(kind NodeType) *syntheticValue {
	v := &syntheticValue{kind: kind}
	v.self = v
	return v
}

var (
	// UnknownExpression is a value about which nothing is known.
	UnknownExpression Node = newSyntheticValue(NodeUnknownExpression)

	// UndefinedExpression is the value `undefined`, returned when control
	// reaches the end of a function body.
	UndefinedExpression Node = newSyntheticValue(NodeUndefinedExpression)

	// UnknownObjectExpression is a fresh object with no own properties,
	// such as `this` inside a function invoked with `new`.
	UnknownObjectExpression Node = newSyntheticValue(NodeUnknownObjectExpression)
)

func (v *syntheticValue) Type() NodeType { return v.kind }

func (v *syntheticValue) HasEffects(options ExecutionPathOptions) bool { return false }

func (v *syntheticValue) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if v.kind == NodeUnknownObjectExpression {
		return path.Len() > 1
	}
	return path.Len() > 0
}

func (v *syntheticValue) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if v.kind == NodeUnknownObjectExpression {
		return path.Len() > 1
	}
	return true
}
