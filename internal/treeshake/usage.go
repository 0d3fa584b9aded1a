package treeshake

import "github.com/HugoDaniel/treeshaker/internal/ast"

// usage records how one top-level statement touches bindings.
type usage struct {
	declares map[*ast.Variable]bool
	reads    map[*ast.Variable]bool

	// writes only holds writes made when the statement runs. Writes inside
	// nested functions happen when those are called, so they count as reads.
	writes map[*ast.Variable]bool
}

func (u *usage) declaresAny(set map[*ast.Variable]bool) bool {
	for v := range u.declares {
		if set[v] {
			return true
		}
	}
	return false
}

func (u *usage) writesAny(set map[*ast.Variable]bool) bool {
	for v := range u.writes {
		if set[v] {
			return true
		}
	}
	return false
}

type collector struct {
	usage *usage
	depth int
}

func collectUsage(stmt ast.Node) *usage {
	c := &collector{
		usage: &usage{
			declares: make(map[*ast.Variable]bool),
			reads:    make(map[*ast.Variable]bool),
			writes:   make(map[*ast.Variable]bool),
		},
	}
	c.visit(stmt)
	return c.usage
}

func (c *collector) children(n ast.Node) {
	n.SomeChild(func(child ast.Node) bool {
		c.visit(child)
		return false
	})
}

func (c *collector) visit(n ast.Node) {
	switch n := n.(type) {
	case *ast.Identifier:
		c.identifier(n)
	case *ast.FunctionNode, *ast.ArrowFunctionExpression, *ast.MethodDefinition:
		c.depth++
		c.children(n)
		c.depth--
	case *ast.PropertyDefinition:
		if !n.Static {
			c.depth++
			c.children(n)
			c.depth--
			return
		}
		c.children(n)
	case *ast.AssignmentExpression:
		c.target(n.Left, n.Operator != "=")
		c.visit(n.Right)
	case *ast.UpdateExpression:
		c.target(n.Argument, true)
	case *ast.UnaryExpression:
		if n.Operator == "delete" {
			c.target(n.Argument, true)
			return
		}
		c.children(n)
	case *ast.ForInStatement:
		if _, ok := n.Left.(*ast.VariableDeclaration); ok {
			c.visit(n.Left)
		} else {
			c.target(n.Left, false)
		}
		c.visit(n.Right)
		c.visit(n.Body)
	default:
		c.children(n)
	}
}

func (c *collector) identifier(id *ast.Identifier) {
	v := id.Variable
	if v == nil || v.IsGlobal() {
		return
	}
	if isDeclaration(id) {
		c.usage.declares[v] = true
		return
	}
	c.usage.reads[v] = true
}

// target records an assignment target. Plain identifiers are writes, and
// compound operators also read them. A member target reads its object and
// writes the root binding together with everything that binding aliases.
func (c *collector) target(n ast.Node, alsoRead bool) {
	switch t := n.(type) {
	case *ast.Identifier:
		if t.Variable == nil || t.Variable.IsGlobal() {
			return
		}
		if alsoRead || c.depth > 0 {
			c.usage.reads[t.Variable] = true
		}
		if c.depth == 0 {
			c.usage.writes[t.Variable] = true
		}
	case *ast.MemberExpression:
		c.visit(t)
		if root := memberRoot(t); root != nil && root.Variable != nil && !root.Variable.IsGlobal() && c.depth == 0 {
			for _, v := range aliases(root.Variable) {
				c.usage.writes[v] = true
			}
		}
	case *ast.ObjectPattern:
		for _, property := range t.Properties {
			switch p := property.(type) {
			case *ast.Property:
				if p.Computed {
					c.visit(p.KeyNode)
				}
				c.target(p.Value, false)
			case *ast.RestElement:
				c.target(p.Argument, false)
			}
		}
	case *ast.ArrayPattern:
		for _, element := range t.Elements {
			if element != nil {
				c.target(element, false)
			}
		}
	case *ast.AssignmentPattern:
		c.target(t.Left, false)
		c.visit(t.Right)
	case *ast.RestElement:
		c.target(t.Argument, false)
	default:
		if n != nil {
			c.visit(n)
		}
	}
}

func isDeclaration(id *ast.Identifier) bool {
	for _, declaration := range id.Variable.Declarations {
		if declaration == id {
			return true
		}
	}
	return false
}

// memberRoot returns the identifier at the base of a member chain.
func memberRoot(m *ast.MemberExpression) *ast.Identifier {
	var object ast.Node = m
	for {
		switch o := object.(type) {
		case *ast.MemberExpression:
			object = o.Object
		case *ast.Identifier:
			return o
		default:
			return nil
		}
	}
}

// aliases returns v and every local binding its initialiser refers to,
// transitively. Mutating a member of v may mutate any of them.
func aliases(v *ast.Variable) []*ast.Variable {
	seen := map[*ast.Variable]bool{v: true}
	out := []*ast.Variable{v}
	for i := 0; i < len(out); i++ {
		init := out[i].Init()
		if init == nil {
			continue
		}
		ast.Walk(init, func(n ast.Node) bool {
			id, ok := n.(*ast.Identifier)
			if !ok || id.Variable == nil || id.Variable.IsGlobal() || seen[id.Variable] {
				return true
			}
			seen[id.Variable] = true
			out = append(out, id.Variable)
			return true
		})
	}
	return out
}
