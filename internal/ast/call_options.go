package ast

// CallOptions describes the call site a call-directed query is made for.
// It only refers to nodes owned by the tree; it never owns them.
type CallOptions struct {
	// CallIdentifier is the call or new expression that performs the call.
	// Its identity keys the recursion guard.
	CallIdentifier Node

	// Args are the argument expressions at the call site.
	Args []Node

	// WithNew is set for `new` expressions.
	WithNew bool
}

// NewCallOptions returns the descriptor for a call made by call.
func NewCallOptions(call Node, args []Node, withNew bool) CallOptions {
	return CallOptions{CallIdentifier: call, Args: args, WithNew: withNew}
}

// Equals reports whether both descriptors stand for the same call site.
func (c CallOptions) Equals(other CallOptions) bool {
	return c.CallIdentifier == other.CallIdentifier
}
