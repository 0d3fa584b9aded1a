package ast

import "github.com/HugoDaniel/treeshaker/internal/builtins"

// VariableKind classifies how a binding came to exist.
type VariableKind uint8

const (
	VariableLocal VariableKind = iota
	VariableParameter
	VariableGlobal
	VariableThis
	VariableArguments
)

// Variable is a named binding owned by the scope that declares it.
// Identifiers refer to it but never own it.
type Variable struct {
	Name            string
	Kind            VariableKind
	DeclarationKind DeclarationKind

	// Declarations are the identifiers that declared the binding. More than
	// one exists for redeclared `var`s and functions.
	Declarations []*Identifier

	init  Node
	scope Scope

	pure        bool
	reassigned  bool
	members     reassignmentTracker
	propagating bool
}

func newLocalVariable(name string, identifier *Identifier, options DeclarationOptions, scope Scope) *Variable {
	v := &Variable{
		Name:            name,
		Kind:            VariableLocal,
		DeclarationKind: options.Kind,
		scope:           scope,
	}
	if !isNil(options.Init) {
		v.init = options.Init
	}
	v.addDeclaration(identifier)
	return v
}

func newParameterVariable(identifier *Identifier, scope Scope) *Variable {
	v := &Variable{
		Name:            identifier.Name,
		Kind:            VariableParameter,
		DeclarationKind: DeclareParameter,
		scope:           scope,
	}
	v.addDeclaration(identifier)
	return v
}

func newSpecialVariable(name string, kind VariableKind, scope Scope) *Variable {
	return &Variable{Name: name, Kind: kind, scope: scope}
}

func newGlobalVariable(name string, scope Scope, pure bool) *Variable {
	return &Variable{Name: name, Kind: VariableGlobal, scope: scope, pure: pure}
}

func (v *Variable) addDeclaration(identifier *Identifier) {
	if identifier != nil {
		v.Declarations = append(v.Declarations, identifier)
	}
}

// Init returns the value the binding was declared with, or nil.
func (v *Variable) Init() Node { return v.init }

// Scope returns the scope that owns the variable.
func (v *Variable) Scope() Scope { return v.scope }

// IsGlobal reports whether the name was never declared in the program.
func (v *Variable) IsGlobal() bool { return v.Kind == VariableGlobal }

// IsPureGlobal reports whether the variable is a trusted built-in.
func (v *Variable) IsPureGlobal() bool { return v.Kind == VariableGlobal && v.pure }

// IsReassigned reports whether the binding itself may be overwritten.
func (v *Variable) IsReassigned() bool { return v.reassigned }

// IsConst reports whether writing the binding throws.
func (v *Variable) IsConst() bool {
	return v.Kind == VariableLocal && v.DeclarationKind == DeclareConst
}

func (v *Variable) value(options ExecutionPathOptions) Node {
	if replaced := options.GetReplacedVariableInit(v); replaced != nil {
		return replaced
	}
	if v.reassigned {
		return nil
	}
	return v.init
}

func (v *Variable) HasEffectsWhenAccessedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if path.Len() == 0 {
		return false
	}
	switch v.Kind {
	case VariableGlobal:
		return !(v.pure && builtins.IsPureGlobalAccess(v.Name, path))
	case VariableArguments:
		return path.Len() > 1
	}
	if path.Len() > MaxPathDepth || v.members.affectsAccess(path) {
		return true
	}
	init := v.value(options)
	if init == nil {
		return true
	}
	if options.HasNodeBeenAccessedAtPath(path, init) {
		return false
	}
	return init.HasEffectsWhenAccessedAtPath(path, options.AddAccessedNodeAtPath(path, init))
}

func (v *Variable) HasEffectsWhenAssignedAtPath(path ObjectPath, options ExecutionPathOptions) bool {
	if path.Len() == 0 {
		return v.Kind == VariableGlobal || v.Kind == VariableThis || v.IsConst()
	}
	if v.Kind == VariableGlobal || v.Kind == VariableArguments {
		return true
	}
	if path.Len() > MaxPathDepth || v.members.affectsAssignment(path) {
		return true
	}
	init := v.value(options)
	if init == nil {
		return true
	}
	if options.HasNodeBeenAssignedAtPath(path, init) {
		return false
	}
	return init.HasEffectsWhenAssignedAtPath(path, options.AddAssignedNodeAtPath(path, init))
}

func (v *Variable) HasEffectsWhenCalledAtPath(path ObjectPath, callOptions CallOptions, options ExecutionPathOptions) bool {
	switch v.Kind {
	case VariableGlobal:
		return !(v.pure && builtins.IsPureGlobalCall(v.Name, path, callOptions.WithNew))
	case VariableArguments:
		return true
	}
	if path.Len() > MaxPathDepth || v.members.affectsCall(path) {
		return true
	}
	init := v.value(options)
	if init == nil {
		return true
	}
	if options.HasNodeBeenCalledAtPathWithOptions(path, init, callOptions) {
		return false
	}
	return init.HasEffectsWhenCalledAtPath(path, callOptions, options.AddCalledNodeAtPathWithOptions(path, init, callOptions))
}

func (v *Variable) ForEachReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, callback ForEachReturnExpressionCallback, options ExecutionPathOptions) {
	if v.Kind == VariableGlobal || path.Len() > MaxPathDepth || v.members.affectsCall(path) {
		return
	}
	init := v.value(options)
	if init == nil || options.HasNodeBeenCalledAtPathWithOptions(path, init, callOptions) {
		return
	}
	init.ForEachReturnExpressionWhenCalledAtPath(path, callOptions, callback, options.AddCalledNodeAtPathWithOptions(path, init, callOptions))
}

func (v *Variable) SomeReturnExpressionWhenCalledAtPath(path ObjectPath, callOptions CallOptions, predicate SomeReturnExpressionCallback, options ExecutionPathOptions) bool {
	if v.Kind == VariableGlobal || path.Len() > MaxPathDepth || v.members.affectsCall(path) {
		return true
	}
	init := v.value(options)
	if init == nil {
		return true
	}
	if options.HasNodeBeenCalledAtPathWithOptions(path, init, callOptions) {
		return false
	}
	return init.SomeReturnExpressionWhenCalledAtPath(path, callOptions, predicate, options.AddCalledNodeAtPathWithOptions(path, init, callOptions))
}

// reassignPath records a write through path. An empty path overwrites the
// binding itself. Member writes are passed on to the initial value so that
// other references to it see them too.
func (v *Variable) reassignPath(path ObjectPath) {
	if v.Kind == VariableGlobal || path.Len() > MaxPathDepth {
		return
	}
	if path.Len() == 0 {
		v.reassigned = true
		return
	}
	if !v.members.add(path) || v.init == nil || v.propagating {
		return
	}
	v.propagating = true
	v.init.reassignPath(path)
	v.propagating = false
}

// ----------------------------------------------------------------------------
// Reassignment tracking
// ----------------------------------------------------------------------------

// reassignmentTracker remembers the member paths of a value that code
// elsewhere may overwrite. A path ending in UnknownKey is an escape: the
// value below it may be changed in ways the analysis cannot see.
type reassignmentTracker struct {
	paths []ObjectPath
}

// add records path and reports whether it was new.
func (t *reassignmentTracker) add(path ObjectPath) bool {
	for _, existing := range t.paths {
		if existing.Equals(path) {
			return false
		}
	}
	t.paths = append(t.paths, path)
	return true
}

// affectsAccess reports whether reading path may observe a recorded write.
// Reading a recorded member itself is harmless unless the value escaped,
// since a plain write cannot install a getter.
func (t *reassignmentTracker) affectsAccess(path ObjectPath) bool {
	return t.affectsMember(path)
}

// affectsCall reports whether the callee at path may have been replaced.
func (t *reassignmentTracker) affectsCall(path ObjectPath) bool {
	for _, recorded := range t.paths {
		if path.Len() >= recorded.Len() && path.HasPrefix(recorded) {
			return true
		}
	}
	return false
}

// affectsAssignment reports whether writing path may hit a value that was
// put there elsewhere.
func (t *reassignmentTracker) affectsAssignment(path ObjectPath) bool {
	return t.affectsMember(path)
}

// modified reports whether any member may have been overwritten.
func (t *reassignmentTracker) modified() bool {
	return len(t.paths) > 0
}

func (t *reassignmentTracker) affectsMember(path ObjectPath) bool {
	for _, recorded := range t.paths {
		if !path.HasPrefix(recorded) {
			continue
		}
		if path.Len() > recorded.Len() || (recorded.IsEscape() && path.Len() == recorded.Len()) {
			return true
		}
	}
	return false
}
