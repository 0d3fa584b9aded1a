// Package parser turns JavaScript source into the tree-shaker's syntax tree.
//
// Parsing runs in two passes:
//
// Pass 1 (Parse): goja parses the script and the result is converted into
// internal/ast nodes carrying byte offsets into the source.
// Pass 2 (Bind): scopes are attached and declarations registered top-down,
// then references are resolved and value flow between bindings recorded.
//
// Only the conversion lives here; every effect question is answered by the
// nodes themselves.
package parser

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	jsast "github.com/dop251/goja/ast"
	jsparser "github.com/dop251/goja/parser"
	"github.com/dop251/goja/token"

	"github.com/HugoDaniel/treeshaker/internal/ast"
	"github.com/HugoDaniel/treeshaker/internal/diagnostic"
)

// Parser converts one source text.
type Parser struct {
	source    string
	lineIndex *diagnostic.LineIndex

	// PureGlobals trusts well-known built-ins to be free of side effects.
	PureGlobals bool

	errors []ParseError
}

// ParseError represents a parsing error.
type ParseError struct {
	Code    diagnostic.Code
	Message string
	Pos     int
	Line    int
	Column  int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// New creates a new parser for the given source.
func New(source string) *Parser {
	return &Parser{
		source:    source,
		lineIndex: diagnostic.NewLineIndex(source),
	}
}

// Parse parses the source and returns the bound program. A nil program is
// returned when the source does not parse.
func (p *Parser) Parse() (*ast.Program, []ParseError) {
	parsed, err := jsparser.ParseFile(nil, "", p.source, 0, jsparser.WithDisableSourceMaps)
	if err != nil {
		p.addParserErrors(err)
		return nil, p.errors
	}

	// Pass 1: convert
	program := p.convertProgram(parsed)
	if len(p.errors) > 0 {
		return nil, p.errors
	}

	// Pass 2: initialise scopes, then bind references
	ast.Initialise(program, nil, ast.NewGlobalScope(p.PureGlobals))
	ast.Bind(program)

	return program, p.errors
}

// ----------------------------------------------------------------------------
// Errors and positions
// ----------------------------------------------------------------------------

func (p *Parser) addParserErrors(err error) {
	switch e := err.(type) {
	case jsparser.ErrorList:
		for _, item := range e {
			p.addPositionedError(item.Position.Line, item.Position.Column, item.Message)
		}
	case *jsparser.Error:
		p.addPositionedError(e.Position.Line, e.Position.Column, e.Message)
	default:
		p.errors = append(p.errors, ParseError{Code: diagnostic.CodeSyntaxError, Message: err.Error(), Line: 1, Column: 1})
	}
}

func (p *Parser) addPositionedError(line, column int, message string) {
	p.errors = append(p.errors, ParseError{
		Code:    diagnostic.CodeSyntaxError,
		Message: message,
		Pos:     p.lineIndex.LineColumnToByteOffset(line-1, column-1),
		Line:    line,
		Column:  column,
	})
}

// errorAt reports syntax goja accepts but the tree has no node for.
func (p *Parser) errorAt(offset int, message string) {
	line, col := p.lineIndex.ByteOffsetToLineColumn(offset)
	p.errors = append(p.errors, ParseError{
		Code:    diagnostic.CodeUnsupportedSyntax,
		Message: message,
		Pos:     offset,
		Line:    line + 1,
		Column:  col + 1,
	})
}

// offset converts a goja index, which counts from 1, to a byte offset.
func offset(idx int) int {
	if idx <= 0 {
		return 0
	}
	return idx - 1
}

func (p *Parser) base(n jsast.Node) ast.NodeBase {
	return ast.NodeBase{Start: offset(int(n.Idx0())), End: offset(int(n.Idx1()))}
}

func spanOf(first, last ast.Node) ast.NodeBase {
	return ast.NodeBase{Start: first.Base().Start, End: last.Base().End}
}

// statementEnd extends a statement's range over a trailing semicolon, which
// goja leaves out of most statement ranges.
func (p *Parser) statementEnd(end int) int {
	if end > 0 && end <= len(p.source) && p.source[end-1] == ';' {
		return end
	}
	i := end
	for i < len(p.source) && (p.source[i] == ' ' || p.source[i] == '\t') {
		i++
	}
	if i < len(p.source) && p.source[i] == ';' {
		return i + 1
	}
	return end
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

func (p *Parser) convertProgram(program *jsast.Program) *ast.Program {
	root := &ast.Program{NodeBase: ast.NodeBase{Start: 0, End: len(p.source)}}
	for _, stmt := range program.Body {
		node := p.statement(stmt)
		if _, empty := node.(*ast.EmptyStatement); !empty {
			base := node.Base()
			base.Start, base.End = p.widenStatement(base.Start, base.End)
			base.End = p.statementEnd(base.End)
		}
		root.Body = append(root.Body, node)
	}
	return root
}

func (p *Parser) statements(list []jsast.Statement) []ast.Node {
	nodes := make([]ast.Node, 0, len(list))
	for _, stmt := range list {
		nodes = append(nodes, p.statement(stmt))
	}
	return nodes
}

func (p *Parser) statement(stmt jsast.Statement) ast.Node {
	if stmt == nil {
		return nil
	}

	switch s := stmt.(type) {
	case *jsast.BlockStatement:
		return p.block(s)

	case *jsast.EmptyStatement:
		return &ast.EmptyStatement{NodeBase: p.base(s)}

	case *jsast.ExpressionStatement:
		return &ast.ExpressionStatement{NodeBase: p.base(s), Expression: p.expression(s.Expression)}

	case *jsast.VariableStatement:
		return p.variableDeclaration(p.base(s), ast.DeclareVar, s.List)

	case *jsast.LexicalDeclaration:
		return p.lexicalDeclaration(s)

	case *jsast.FunctionDeclaration:
		fn := p.function(s.Function)
		fn.Declaration = true
		return fn

	case *jsast.ClassDeclaration:
		class := p.class(s.Class)
		class.Declaration = true
		return class

	case *jsast.ReturnStatement:
		return &ast.ReturnStatement{NodeBase: p.base(s), Argument: p.expression(s.Argument)}

	case *jsast.IfStatement:
		return &ast.IfStatement{
			NodeBase:   p.base(s),
			Test:       p.expression(s.Test),
			Consequent: p.statement(s.Consequent),
			Alternate:  p.statement(s.Alternate),
		}

	case *jsast.SwitchStatement:
		node := &ast.SwitchStatement{NodeBase: p.base(s), Discriminant: p.expression(s.Discriminant)}
		for _, c := range s.Body {
			node.Cases = append(node.Cases, &ast.SwitchCase{
				NodeBase:   p.base(c),
				Test:       p.expression(c.Test),
				Consequent: p.statements(c.Consequent),
			})
		}
		return node

	case *jsast.LabelledStatement:
		return &ast.LabeledStatement{NodeBase: p.base(s), Label: string(s.Label.Name), Body: p.statement(s.Statement)}

	case *jsast.BranchStatement:
		node := &ast.BreakStatement{NodeBase: p.base(s), Continue: s.Token == token.CONTINUE}
		if s.Label != nil {
			node.Label = string(s.Label.Name)
		}
		return node

	case *jsast.ThrowStatement:
		return &ast.ThrowStatement{NodeBase: p.base(s), Argument: p.expression(s.Argument)}

	case *jsast.TryStatement:
		node := &ast.TryStatement{NodeBase: p.base(s), Block: p.block(s.Body), Finalizer: p.block(s.Finally)}
		if s.Catch != nil {
			node.Handler = &ast.CatchClause{
				NodeBase: p.base(s.Catch),
				Param:    p.target(s.Catch.Parameter),
				Body:     p.block(s.Catch.Body),
			}
		}
		return node

	case *jsast.ForStatement:
		return &ast.ForStatement{
			NodeBase: p.base(s),
			Init:     p.forInitializer(s.Initializer),
			Test:     p.expression(s.Test),
			Update:   p.expression(s.Update),
			Body:     p.statement(s.Body),
		}

	case *jsast.ForInStatement:
		return &ast.ForInStatement{NodeBase: p.base(s), Left: p.forInto(s.Into), Right: p.expression(s.Source), Body: p.statement(s.Body)}

	case *jsast.ForOfStatement:
		return &ast.ForInStatement{NodeBase: p.base(s), Left: p.forInto(s.Into), Right: p.expression(s.Source), Body: p.statement(s.Body), Of: true}

	case *jsast.WhileStatement:
		return &ast.WhileStatement{NodeBase: p.base(s), Test: p.expression(s.Test), Body: p.statement(s.Body)}

	case *jsast.DoWhileStatement:
		return &ast.WhileStatement{NodeBase: p.base(s), Test: p.expression(s.Test), Body: p.statement(s.Body), DoWhile: true}

	case *jsast.WithStatement:
		return &ast.WithStatement{NodeBase: p.base(s), Object: p.expression(s.Object), Body: p.statement(s.Body)}

	case *jsast.DebuggerStatement:
		return &ast.DebuggerStatement{NodeBase: p.base(s)}
	}

	p.errorAt(offset(int(stmt.Idx0())), fmt.Sprintf("unsupported statement %T", stmt))
	return &ast.EmptyStatement{NodeBase: p.base(stmt)}
}

// block returns nil for a nil block so optional blocks stay typed nil.
func (p *Parser) block(b *jsast.BlockStatement) *ast.BlockStatement {
	if b == nil {
		return nil
	}
	return &ast.BlockStatement{NodeBase: p.base(b), Body: p.statements(b.List)}
}

func (p *Parser) lexicalDeclaration(d *jsast.LexicalDeclaration) *ast.VariableDeclaration {
	kind := ast.DeclareLet
	if d.Token == token.CONST {
		kind = ast.DeclareConst
	}
	return p.variableDeclaration(p.base(d), kind, d.List)
}

func (p *Parser) variableDeclaration(base ast.NodeBase, kind ast.DeclarationKind, list []*jsast.Binding) *ast.VariableDeclaration {
	decl := &ast.VariableDeclaration{NodeBase: base, Kind: kind}
	for _, binding := range list {
		decl.Declarations = append(decl.Declarations, &ast.VariableDeclarator{
			NodeBase: p.base(binding),
			ID:       p.target(binding.Target),
			Init:     p.expression(binding.Initializer),
		})
	}
	return decl
}

func (p *Parser) forInitializer(init jsast.ForLoopInitializer) ast.Node {
	switch i := init.(type) {
	case nil:
		return nil
	case *jsast.ForLoopInitializerExpression:
		return p.expression(i.Expression)
	case *jsast.ForLoopInitializerVarDeclList:
		decl := p.variableDeclaration(ast.NodeBase{}, ast.DeclareVar, i.List)
		p.spanDeclarators(decl)
		return decl
	case *jsast.ForLoopInitializerLexicalDecl:
		return p.lexicalDeclaration(&i.LexicalDeclaration)
	}
	return nil
}

func (p *Parser) forInto(into jsast.ForInto) ast.Node {
	switch i := into.(type) {
	case *jsast.ForIntoVar:
		decl := p.variableDeclaration(ast.NodeBase{}, ast.DeclareVar, []*jsast.Binding{i.Binding})
		p.spanDeclarators(decl)
		return decl
	case *jsast.ForDeclaration:
		kind := ast.DeclareLet
		if i.IsConst {
			kind = ast.DeclareConst
		}
		id := p.target(i.Target)
		return &ast.VariableDeclaration{
			NodeBase:     id.Base().Span(),
			Kind:         kind,
			Declarations: []*ast.VariableDeclarator{{NodeBase: id.Base().Span(), ID: id}},
		}
	case *jsast.ForIntoExpression:
		return p.target(i.Expression)
	}
	return nil
}

func (p *Parser) spanDeclarators(decl *ast.VariableDeclaration) {
	if n := len(decl.Declarations); n > 0 {
		decl.NodeBase = spanOf(decl.Declarations[0], decl.Declarations[n-1])
	}
}

// ----------------------------------------------------------------------------
// Functions and classes
// ----------------------------------------------------------------------------

func (p *Parser) function(f *jsast.FunctionLiteral) *ast.FunctionNode {
	fn := &ast.FunctionNode{
		NodeBase:  p.base(f),
		Params:    p.parameters(f.ParameterList),
		Body:      p.block(f.Body),
		Async:     f.Async,
		Generator: f.Generator,
	}
	if f.Name != nil {
		fn.ID = p.identifier(f.Name)
	}
	return fn
}

func (p *Parser) arrow(a *jsast.ArrowFunctionLiteral) *ast.ArrowFunctionExpression {
	node := &ast.ArrowFunctionExpression{
		NodeBase: p.base(a),
		Params:   p.parameters(a.ParameterList),
		Async:    a.Async,
	}
	switch body := a.Body.(type) {
	case *jsast.BlockStatement:
		node.Body = p.block(body)
	case *jsast.ExpressionBody:
		node.Body = p.expression(body.Expression)
		node.Expression = true
	}
	return node
}

func (p *Parser) parameters(list *jsast.ParameterList) []ast.Node {
	if list == nil {
		return nil
	}
	params := make([]ast.Node, 0, len(list.List)+1)
	for _, binding := range list.List {
		target := p.target(binding.Target)
		if binding.Initializer != nil {
			right := p.expression(binding.Initializer)
			target = &ast.AssignmentPattern{NodeBase: spanOf(target, right), Left: target, Right: right}
		}
		params = append(params, target)
	}
	if list.Rest != nil {
		argument := p.target(list.Rest)
		params = append(params, &ast.RestElement{NodeBase: argument.Base().Span(), Argument: argument})
	}
	return params
}

func (p *Parser) class(c *jsast.ClassLiteral) *ast.ClassNode {
	node := &ast.ClassNode{NodeBase: p.base(c), SuperClass: p.expression(c.SuperClass)}
	if c.Name != nil {
		node.ID = p.identifier(c.Name)
	}
	for _, element := range c.Body {
		switch e := element.(type) {
		case *jsast.MethodDefinition:
			key, keyNode := p.propertyKey(e.Key, e.Computed)
			kind := propertyKind(e.Kind)
			node.Body = append(node.Body, &ast.MethodDefinition{
				NodeBase:    p.base(e),
				Key:         key,
				KeyNode:     keyNode,
				Value:       p.function(e.Body),
				Kind:        kind,
				Static:      e.Static,
				Computed:    e.Computed,
				Constructor: !e.Static && !e.Computed && kind == ast.PropertyInit && key == "constructor",
			})
		case *jsast.FieldDefinition:
			key, keyNode := p.propertyKey(e.Key, e.Computed)
			node.Body = append(node.Body, &ast.PropertyDefinition{
				NodeBase: p.base(e),
				Key:      key,
				KeyNode:  keyNode,
				Value:    p.expression(e.Initializer),
				Static:   e.Static,
				Computed: e.Computed,
			})
		case *jsast.ClassStaticBlock:
			node.Body = append(node.Body, &ast.StaticBlock{NodeBase: p.base(e), Body: p.block(e.Block)})
		}
	}
	return node
}

func propertyKind(kind jsast.PropertyKind) ast.PropertyKind {
	switch kind {
	case jsast.PropertyKindGet:
		return ast.PropertyGet
	case jsast.PropertyKindSet:
		return ast.PropertySet
	}
	return ast.PropertyInit
}

// propertyKey returns the static key of a property together with the node
// to evaluate for computed keys. Keys that cannot be known are UnknownKey.
func (p *Parser) propertyKey(key jsast.Expression, computed bool) (string, ast.Node) {
	var keyNode ast.Node
	if computed {
		keyNode = p.expression(key)
	}
	switch k := key.(type) {
	case *jsast.Identifier:
		if !computed {
			return string(k.Name), nil
		}
	case *jsast.PrivateIdentifier:
		return "#" + string(k.Name), nil
	case *jsast.StringLiteral:
		return string(k.Value), keyNode
	case *jsast.NumberLiteral:
		return numberKey(k), keyNode
	}
	if !computed {
		keyNode = p.expression(key)
	}
	return ast.UnknownKey, keyNode
}

// numberKey renders a numeric literal the way it reads as a property key.
func numberKey(n *jsast.NumberLiteral) string {
	switch v := n.Value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case *big.Int:
		return v.String()
	}
	return strings.TrimSuffix(n.Literal, "n")
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

func (p *Parser) expressions(list []jsast.Expression) []ast.Node {
	nodes := make([]ast.Node, 0, len(list))
	for _, e := range list {
		nodes = append(nodes, p.expression(e))
	}
	return nodes
}

func (p *Parser) identifier(id *jsast.Identifier) *ast.Identifier {
	return &ast.Identifier{NodeBase: p.base(id), Name: string(id.Name)}
}

func (p *Parser) expression(expr jsast.Expression) ast.Node {
	if expr == nil {
		return nil
	}

	switch e := expr.(type) {
	case *jsast.Identifier:
		return p.identifier(e)

	case *jsast.ThisExpression:
		return &ast.ThisExpression{NodeBase: p.base(e)}

	case *jsast.SuperExpression:
		return &ast.Super{NodeBase: p.base(e)}

	case *jsast.MetaProperty:
		return &ast.MetaProperty{NodeBase: p.base(e), Meta: string(e.Meta.Name), Property: string(e.Property.Name)}

	case *jsast.StringLiteral:
		return &ast.Literal{NodeBase: p.base(e), Kind: ast.LiteralString, Raw: e.Literal, Value: string(e.Value)}

	case *jsast.NumberLiteral:
		kind := ast.LiteralNumber
		if strings.HasSuffix(e.Literal, "n") {
			kind = ast.LiteralBigInt
		}
		return &ast.Literal{NodeBase: p.base(e), Kind: kind, Raw: e.Literal, Value: numberKey(e)}

	case *jsast.BooleanLiteral:
		return &ast.Literal{NodeBase: p.base(e), Kind: ast.LiteralBoolean, Raw: e.Literal, Value: strconv.FormatBool(e.Value)}

	case *jsast.NullLiteral:
		return &ast.Literal{NodeBase: p.base(e), Kind: ast.LiteralNull, Raw: "null", Value: "null"}

	case *jsast.RegExpLiteral:
		return &ast.Literal{NodeBase: p.base(e), Kind: ast.LiteralRegExp, Raw: e.Literal, Value: e.Literal}

	case *jsast.TemplateLiteral:
		quasi := p.template(e)
		if e.Tag == nil {
			return quasi
		}
		return &ast.TaggedTemplateExpression{NodeBase: p.base(e), Tag: p.expression(e.Tag), Quasi: quasi}

	case *jsast.ArrayLiteral:
		node := &ast.ArrayExpression{NodeBase: p.base(e)}
		for _, element := range e.Value {
			node.Elements = append(node.Elements, p.expression(element))
		}
		return node

	case *jsast.ObjectLiteral:
		return p.object(e)

	case *jsast.FunctionLiteral:
		return p.function(e)

	case *jsast.ArrowFunctionLiteral:
		return p.arrow(e)

	case *jsast.ClassLiteral:
		return p.class(e)

	case *jsast.DotExpression:
		return &ast.MemberExpression{
			NodeBase: p.base(e),
			Object:   p.expression(e.Left),
			Key:      string(e.Identifier.Name),
			Optional: isOptional(e.Left),
		}

	case *jsast.PrivateDotExpression:
		return &ast.MemberExpression{
			NodeBase: p.base(e),
			Object:   p.expression(e.Left),
			Key:      "#" + string(e.Identifier.Name),
			Optional: isOptional(e.Left),
		}

	case *jsast.BracketExpression:
		key, property := p.propertyKey(e.Member, true)
		return &ast.MemberExpression{
			NodeBase: p.base(e),
			Object:   p.expression(e.Left),
			Property: property,
			Key:      key,
			Computed: true,
			Optional: isOptional(e.Left),
		}

	case *jsast.OptionalChain:
		return p.expression(e.Expression)

	case *jsast.Optional:
		return p.expression(e.Expression)

	case *jsast.CallExpression:
		return &ast.CallExpression{
			NodeBase:  p.base(e),
			Callee:    p.expression(e.Callee),
			Arguments: p.expressions(e.ArgumentList),
			Optional:  isOptional(e.Callee),
		}

	case *jsast.NewExpression:
		return &ast.NewExpression{NodeBase: p.base(e), Callee: p.expression(e.Callee), Arguments: p.expressions(e.ArgumentList)}

	case *jsast.ConditionalExpression:
		return &ast.ConditionalExpression{
			NodeBase:   p.base(e),
			Test:       p.expression(e.Test),
			Consequent: p.expression(e.Consequent),
			Alternate:  p.expression(e.Alternate),
		}

	case *jsast.SequenceExpression:
		return &ast.SequenceExpression{NodeBase: p.base(e), Expressions: p.expressions(e.Sequence)}

	case *jsast.BinaryExpression:
		left, right := p.expression(e.Left), p.expression(e.Right)
		switch e.Operator {
		case token.LOGICAL_AND, token.LOGICAL_OR, token.COALESCE:
			return &ast.LogicalExpression{NodeBase: p.base(e), Operator: e.Operator.String(), Left: left, Right: right}
		}
		return &ast.BinaryExpression{NodeBase: p.base(e), Operator: e.Operator.String(), Left: left, Right: right}

	case *jsast.UnaryExpression:
		switch e.Operator {
		case token.INCREMENT, token.DECREMENT:
			return &ast.UpdateExpression{
				NodeBase: p.base(e),
				Operator: e.Operator.String(),
				Prefix:   !e.Postfix,
				Argument: p.target(e.Operand),
			}
		}
		return &ast.UnaryExpression{NodeBase: p.base(e), Operator: e.Operator.String(), Argument: p.expression(e.Operand)}

	case *jsast.AssignExpression:
		operator := "="
		if e.Operator != token.ASSIGN {
			operator = e.Operator.String() + "="
		}
		return &ast.AssignmentExpression{NodeBase: p.base(e), Operator: operator, Left: p.target(e.Left), Right: p.expression(e.Right)}

	case *jsast.AwaitExpression:
		return &ast.AwaitExpression{NodeBase: p.base(e), Argument: p.expression(e.Argument)}

	case *jsast.YieldExpression:
		return &ast.YieldExpression{NodeBase: p.base(e), Argument: p.expression(e.Argument), Delegate: e.Delegate}

	case *jsast.SpreadElement:
		return &ast.SpreadElement{NodeBase: p.base(e), Argument: p.expression(e.Expression)}

	case *jsast.ObjectPattern, *jsast.ArrayPattern:
		return p.target(e)
	}

	p.errorAt(offset(int(expr.Idx0())), fmt.Sprintf("unsupported expression %T", expr))
	return &ast.Literal{NodeBase: p.base(expr), Kind: ast.LiteralNull}
}

func isOptional(e jsast.Expression) bool {
	_, ok := e.(*jsast.Optional)
	return ok
}

func (p *Parser) template(t *jsast.TemplateLiteral) *ast.TemplateLiteral {
	node := &ast.TemplateLiteral{NodeBase: p.base(t), Expressions: p.expressions(t.Expressions)}
	for _, element := range t.Elements {
		node.Quasis = append(node.Quasis, element.Literal)
	}
	return node
}

func (p *Parser) object(o *jsast.ObjectLiteral) *ast.ObjectExpression {
	node := &ast.ObjectExpression{NodeBase: p.base(o)}
	for _, property := range o.Value {
		switch prop := property.(type) {
		case *jsast.PropertyShort:
			node.Properties = append(node.Properties, &ast.Property{
				NodeBase:  p.base(prop),
				Key:       string(prop.Name.Name),
				Value:     p.identifier(&prop.Name),
				Shorthand: true,
			})
		case *jsast.PropertyKeyed:
			key, keyNode := p.propertyKey(prop.Key, prop.Computed)
			node.Properties = append(node.Properties, &ast.Property{
				NodeBase: p.base(prop),
				Key:      key,
				KeyNode:  keyNode,
				Value:    p.expression(prop.Value),
				Kind:     propertyKind(prop.Kind),
				Method:   prop.Kind == jsast.PropertyKindMethod,
				Computed: prop.Computed,
			})
		case *jsast.SpreadElement:
			node.Properties = append(node.Properties, p.expression(prop))
		}
	}
	return node
}

// ----------------------------------------------------------------------------
// Binding and assignment targets
// ----------------------------------------------------------------------------

// target converts a declaration, parameter or assignment target. Member
// expressions are valid assignment targets and convert as expressions.
func (p *Parser) target(target jsast.Node) ast.Node {
	switch t := target.(type) {
	case nil:
		return nil
	case *jsast.Identifier:
		return p.identifier(t)
	case *jsast.ObjectPattern:
		node := &ast.ObjectPattern{NodeBase: p.base(t)}
		for _, property := range t.Properties {
			node.Properties = append(node.Properties, p.patternProperty(property))
		}
		if t.Rest != nil {
			argument := p.target(t.Rest)
			node.Properties = append(node.Properties, &ast.RestElement{NodeBase: argument.Base().Span(), Argument: argument})
		}
		return node
	case *jsast.ArrayPattern:
		node := &ast.ArrayPattern{NodeBase: p.base(t)}
		for _, element := range t.Elements {
			if element == nil {
				node.Elements = append(node.Elements, nil)
				continue
			}
			node.Elements = append(node.Elements, p.patternElement(element))
		}
		if t.Rest != nil {
			argument := p.target(t.Rest)
			node.Elements = append(node.Elements, &ast.RestElement{NodeBase: argument.Base().Span(), Argument: argument})
		}
		return node
	case jsast.Expression:
		return p.expression(t)
	}
	p.errorAt(offset(int(target.Idx0())), fmt.Sprintf("unsupported binding target %T", target))
	return &ast.Identifier{NodeBase: p.base(target)}
}

// patternElement converts a pattern slot. Defaults arrive from goja as
// assignment expressions.
func (p *Parser) patternElement(element jsast.Expression) ast.Node {
	if assign, ok := element.(*jsast.AssignExpression); ok && assign.Operator == token.ASSIGN {
		left := p.target(assign.Left)
		return &ast.AssignmentPattern{NodeBase: p.base(assign), Left: left, Right: p.expression(assign.Right)}
	}
	return p.target(element)
}

func (p *Parser) patternProperty(property jsast.Property) ast.Node {
	switch prop := property.(type) {
	case *jsast.PropertyShort:
		var value ast.Node = p.identifier(&prop.Name)
		if prop.Initializer != nil {
			value = &ast.AssignmentPattern{NodeBase: p.base(prop), Left: value, Right: p.expression(prop.Initializer)}
		}
		return &ast.Property{NodeBase: p.base(prop), Key: string(prop.Name.Name), Value: value, Shorthand: true}
	case *jsast.PropertyKeyed:
		key, keyNode := p.propertyKey(prop.Key, prop.Computed)
		return &ast.Property{
			NodeBase: p.base(prop),
			Key:      key,
			KeyNode:  keyNode,
			Value:    p.patternElement(prop.Value),
			Computed: prop.Computed,
		}
	case *jsast.SpreadElement:
		argument := p.target(prop.Expression)
		return &ast.RestElement{NodeBase: p.base(prop), Argument: argument}
	}
	p.errorAt(offset(int(property.Idx0())), fmt.Sprintf("unsupported pattern property %T", property))
	return &ast.RestElement{NodeBase: p.base(property), Argument: &ast.Identifier{NodeBase: p.base(property)}}
}
