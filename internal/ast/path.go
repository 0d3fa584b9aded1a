package ast

import "strings"

// ----------------------------------------------------------------------------
// Object Paths
// ----------------------------------------------------------------------------

const (
	// UnknownKey stands for a property key that cannot be determined
	// statically, such as the key of a computed member expression.
	UnknownKey = "\x00unknown"

	// IteratorKey is the key used when a value is iterated (for-of,
	// spread, array destructuring).
	IteratorKey = "@@iterator"

	// MaxPathDepth bounds how deep property chains are tracked. Queries
	// deeper than this are answered conservatively.
	MaxPathDepth = 7
)

// ObjectPath is a chain of property accesses relative to a base value.
// A path of length 0 refers to the base value itself.
//
// Paths are never mutated after construction; every derived path is a
// fresh slice.
type ObjectPath []string

// EmptyPath is the path addressing the base value.
var EmptyPath = ObjectPath{}

// UnknownPath addresses every member of a value at any depth. Recording it
// on a binding means the value escaped to code we cannot see.
var UnknownPath = ObjectPath{UnknownKey}

// NewObjectPath builds a path from the given keys.
func NewObjectPath(keys ...string) ObjectPath {
	path := make(ObjectPath, len(keys))
	copy(path, keys)
	return path
}

// Len returns the number of steps in the path.
func (p ObjectPath) Len() int {
	return len(p)
}

// At returns the i-th key.
func (p ObjectPath) At(i int) string {
	return p[i]
}

// Rest returns the path without its first step.
func (p ObjectPath) Rest() ObjectPath {
	if len(p) == 0 {
		return EmptyPath
	}
	return p[1:]
}

// Prepend returns a new path with key in front of p.
func (p ObjectPath) Prepend(key string) ObjectPath {
	path := make(ObjectPath, 0, len(p)+1)
	path = append(path, key)
	return append(path, p...)
}

// Equals reports whether both paths have identical keys.
func (p ObjectPath) Equals(other ObjectPath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p starts with prefix. An UnknownKey on either
// side matches any key.
func (p ObjectPath) HasPrefix(prefix ObjectPath) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i, key := range prefix {
		if key != p[i] && key != UnknownKey && p[i] != UnknownKey {
			return false
		}
	}
	return true
}

// IsEscape reports whether the path ends in UnknownKey, which marks every
// member below the preceding keys as unknown.
func (p ObjectPath) IsEscape() bool {
	return len(p) > 0 && p[len(p)-1] == UnknownKey
}

func (p ObjectPath) String() string {
	if len(p) == 0 {
		return "<base>"
	}
	keys := make([]string, len(p))
	for i, key := range p {
		if key == UnknownKey {
			keys[i] = "[?]"
		} else {
			keys[i] = key
		}
	}
	return strings.Join(keys, ".")
}
