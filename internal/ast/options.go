package ast

// ----------------------------------------------------------------------------
// Execution Path Options
// ----------------------------------------------------------------------------

// ExecutionPathOptions is the context threaded through every effect query.
//
// It is a value type: every setter returns a modified copy and leaves the
// receiver untouched. The linked lists it holds are never mutated, so
// copies share them structurally and sibling branches of a traversal can
// never observe each other's changes.
type ExecutionPathOptions struct {
	flags  optionFlags
	labels *labelEntry
	guards *guardEntry
	inits  *initEntry
}

type optionFlags uint8

const (
	flagIgnoreBreakStatements optionFlags = 1 << iota
	flagIgnoreReturnAwaitYield
	flagNoPropertyReadSideEffects
)

type labelEntry struct {
	name string
	next *labelEntry
}

// guardKind separates the recursion guards so that accessing a node and
// calling the same node are tracked independently.
type guardKind uint8

const (
	guardAccessed guardKind = iota
	guardAssigned
	guardCalled
	guardReturnAccessed
	guardReturnAssigned
	guardReturnCalled
)

type guardEntry struct {
	kind guardKind
	node Node
	path ObjectPath
	call Node
	next *guardEntry
}

type initEntry struct {
	variable *Variable
	init     Node
	next     *initEntry
}

// NewExecutionPathOptions returns the default context used at the start of
// every top-level query.
func NewExecutionPathOptions() ExecutionPathOptions {
	return ExecutionPathOptions{}
}

func (o ExecutionPathOptions) setFlag(flag optionFlags, value bool) ExecutionPathOptions {
	if value {
		o.flags |= flag
	} else {
		o.flags &^= flag
	}
	return o
}

// SetIgnoreBreakStatements returns options in which unlabeled break and
// continue statements are local control flow rather than effects.
func (o ExecutionPathOptions) SetIgnoreBreakStatements(value bool) ExecutionPathOptions {
	return o.setFlag(flagIgnoreBreakStatements, value)
}

// IgnoreBreakStatements reports whether unlabeled breaks are contained.
func (o ExecutionPathOptions) IgnoreBreakStatements() bool {
	return o.flags&flagIgnoreBreakStatements != 0
}

// SetIgnoreReturnAwaitYield returns options in which return, await and
// yield only matter through their arguments. This holds inside a called
// function body.
func (o ExecutionPathOptions) SetIgnoreReturnAwaitYield(value bool) ExecutionPathOptions {
	return o.setFlag(flagIgnoreReturnAwaitYield, value)
}

// IgnoreReturnAwaitYield reports whether return, await and yield are contained.
func (o ExecutionPathOptions) IgnoreReturnAwaitYield() bool {
	return o.flags&flagIgnoreReturnAwaitYield != 0
}

// SetPropertyReadSideEffects controls whether reading a property may be
// observed (getters). Enabled by default.
func (o ExecutionPathOptions) SetPropertyReadSideEffects(value bool) ExecutionPathOptions {
	return o.setFlag(flagNoPropertyReadSideEffects, !value)
}

// PropertyReadSideEffects reports whether property reads are treated as
// potentially observable.
func (o ExecutionPathOptions) PropertyReadSideEffects() bool {
	return o.flags&flagNoPropertyReadSideEffects == 0
}

// SetIgnoreLabel returns options in which breaking to label is contained.
func (o ExecutionPathOptions) SetIgnoreLabel(label string) ExecutionPathOptions {
	o.labels = &labelEntry{name: label, next: o.labels}
	return o
}

// IgnoreLabel reports whether a labeled break to label is contained.
func (o ExecutionPathOptions) IgnoreLabel(label string) bool {
	for entry := o.labels; entry != nil; entry = entry.next {
		if entry.name == label {
			return true
		}
	}
	return false
}

// SetIgnoreNoLabels drops every ignored label.
func (o ExecutionPathOptions) SetIgnoreNoLabels() ExecutionPathOptions {
	o.labels = nil
	return o
}

// GetHasEffectsWhenCalledOptions derives the context for analysing a
// function body on behalf of a call: returns leave the body normally, but
// breaks and labels of the caller mean nothing inside the callee.
func (o ExecutionPathOptions) GetHasEffectsWhenCalledOptions() ExecutionPathOptions {
	return o.SetIgnoreReturnAwaitYield(true).SetIgnoreBreakStatements(false).SetIgnoreNoLabels()
}

// ----------------------------------------------------------------------------
// Recursion guards
// ----------------------------------------------------------------------------

func (o ExecutionPathOptions) addGuard(kind guardKind, node Node, path ObjectPath, call Node) ExecutionPathOptions {
	o.guards = &guardEntry{kind: kind, node: node, path: path, call: call, next: o.guards}
	return o
}

func (o ExecutionPathOptions) hasGuard(kind guardKind, node Node, path ObjectPath, call Node) bool {
	for entry := o.guards; entry != nil; entry = entry.next {
		if entry.kind == kind && entry.node == node && entry.call == call && entry.path.Equals(path) {
			return true
		}
	}
	return false
}

// AddAccessedNodeAtPath records that node is being read at path further up
// the current traversal.
func (o ExecutionPathOptions) AddAccessedNodeAtPath(path ObjectPath, node Node) ExecutionPathOptions {
	return o.addGuard(guardAccessed, node, path, nil)
}

// HasNodeBeenAccessedAtPath reports whether node is already being read at path.
func (o ExecutionPathOptions) HasNodeBeenAccessedAtPath(path ObjectPath, node Node) bool {
	return o.hasGuard(guardAccessed, node, path, nil)
}

// AddAssignedNodeAtPath records that node is being written at path.
func (o ExecutionPathOptions) AddAssignedNodeAtPath(path ObjectPath, node Node) ExecutionPathOptions {
	return o.addGuard(guardAssigned, node, path, nil)
}

// HasNodeBeenAssignedAtPath reports whether node is already being written at path.
func (o ExecutionPathOptions) HasNodeBeenAssignedAtPath(path ObjectPath, node Node) bool {
	return o.hasGuard(guardAssigned, node, path, nil)
}

// AddCalledNodeAtPathWithOptions records that node is being called at path
// from the call site identified by callOptions.
func (o ExecutionPathOptions) AddCalledNodeAtPathWithOptions(path ObjectPath, node Node, callOptions CallOptions) ExecutionPathOptions {
	return o.addGuard(guardCalled, node, path, callOptions.CallIdentifier)
}

// HasNodeBeenCalledAtPathWithOptions reports whether the same call is
// already in flight on the active path.
func (o ExecutionPathOptions) HasNodeBeenCalledAtPathWithOptions(path ObjectPath, node Node, callOptions CallOptions) bool {
	return o.hasGuard(guardCalled, node, path, callOptions.CallIdentifier)
}

// AddAccessedReturnExpressionAtPath records that the result of call is being read at path.
func (o ExecutionPathOptions) AddAccessedReturnExpressionAtPath(path ObjectPath, call Node) ExecutionPathOptions {
	return o.addGuard(guardReturnAccessed, call, path, nil)
}

// HasReturnExpressionBeenAccessedAtPath reports whether the result of call
// is already being read at path.
func (o ExecutionPathOptions) HasReturnExpressionBeenAccessedAtPath(path ObjectPath, call Node) bool {
	return o.hasGuard(guardReturnAccessed, call, path, nil)
}

// AddAssignedReturnExpressionAtPath records that the result of call is being written at path.
func (o ExecutionPathOptions) AddAssignedReturnExpressionAtPath(path ObjectPath, call Node) ExecutionPathOptions {
	return o.addGuard(guardReturnAssigned, call, path, nil)
}

// HasReturnExpressionBeenAssignedAtPath reports whether the result of call
// is already being written at path.
func (o ExecutionPathOptions) HasReturnExpressionBeenAssignedAtPath(path ObjectPath, call Node) bool {
	return o.hasGuard(guardReturnAssigned, call, path, nil)
}

// AddCalledReturnExpressionAtPath records that the result of call is being called at path.
func (o ExecutionPathOptions) AddCalledReturnExpressionAtPath(path ObjectPath, call Node) ExecutionPathOptions {
	return o.addGuard(guardReturnCalled, call, path, nil)
}

// HasReturnExpressionBeenCalledAtPath reports whether the result of call
// is already being called at path.
func (o ExecutionPathOptions) HasReturnExpressionBeenCalledAtPath(path ObjectPath, call Node) bool {
	return o.hasGuard(guardReturnCalled, call, path, nil)
}

// ----------------------------------------------------------------------------
// Replaced variable inits
// ----------------------------------------------------------------------------

// ReplaceVariableInit returns options in which variable is known to hold
// init. Used for `this` inside a function invoked with new.
func (o ExecutionPathOptions) ReplaceVariableInit(variable *Variable, init Node) ExecutionPathOptions {
	o.inits = &initEntry{variable: variable, init: init, next: o.inits}
	return o
}

// GetReplacedVariableInit returns the init recorded by ReplaceVariableInit,
// or nil.
func (o ExecutionPathOptions) GetReplacedVariableInit(variable *Variable) Node {
	for entry := o.inits; entry != nil; entry = entry.next {
		if entry.variable == variable {
			return entry.init
		}
	}
	return nil
}
