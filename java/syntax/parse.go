// Package syntax converts Java source into the java/ast arena using the
// tree-sitter Java grammar.
package syntax

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/dhamidi/formkit/java/ast"
)

const (
	snippetClass  = "__Snippet"
	snippetMethod = "__snippet"
	snippetField  = "__value"
)

var javaLanguage = sitter.NewLanguage(tree_sitter_java.Language())

// Parse converts a compilation unit into a fresh tree.
func Parse(src []byte) (*ast.Tree, error) {
	root, err := parseTS(src)
	if err != nil {
		return nil, err
	}
	defer root.tree.Close()

	t := ast.NewTree()
	c := &converter{src: src, tree: t}
	t.SetRoot(c.unit(root.node))
	return t, nil
}

// ParseStatements parses src as a sequence of block statements and
// allocates them, detached, in t.
func ParseStatements(t *ast.Tree, src string) ([]ast.Handle, error) {
	wrapped := []byte("class " + snippetClass + " { void " + snippetMethod + "() {\n" + src + "\n} }")
	root, err := parseTS(wrapped)
	if err != nil {
		return nil, fmt.Errorf("parse statements %q: %w", src, err)
	}
	defer root.tree.Close()

	method := findFirst(root.node, "method_declaration")
	if method == nil {
		return nil, fmt.Errorf("parse statements %q: no statements", src)
	}
	body := method.ChildByFieldName("body")
	c := &converter{src: wrapped, tree: t}
	var stmts []ast.Handle
	for _, child := range namedChildren(body) {
		if isComment(child) {
			continue
		}
		stmts = append(stmts, c.statement(child))
	}
	return stmts, nil
}

// ParseStatement parses exactly one statement.
func ParseStatement(t *ast.Tree, src string) (ast.Handle, error) {
	stmts, err := ParseStatements(t, src)
	if err != nil {
		return ast.NoHandle, err
	}
	if len(stmts) != 1 {
		return ast.NoHandle, fmt.Errorf("parse statement %q: got %d statements", src, len(stmts))
	}
	return stmts[0], nil
}

// ParseExpression parses src as an expression and allocates it, detached, in t.
func ParseExpression(t *ast.Tree, src string) (ast.Handle, error) {
	wrapped := []byte("class " + snippetClass + " { Object " + snippetField + " = " + src + "; }")
	root, err := parseTS(wrapped)
	if err != nil {
		return ast.NoHandle, fmt.Errorf("parse expression %q: %w", src, err)
	}
	defer root.tree.Close()

	decl := findFirst(root.node, "variable_declarator")
	if decl == nil || decl.ChildByFieldName("value") == nil {
		return ast.NoHandle, fmt.Errorf("parse expression %q: no expression", src)
	}
	c := &converter{src: wrapped, tree: t}
	return c.expression(decl.ChildByFieldName("value")), nil
}

type parsed struct {
	tree *sitter.Tree
	node *sitter.Node
}

func parseTS(src []byte) (*parsed, error) {
	p := sitter.NewParser()
	defer p.Close()
	if err := p.SetLanguage(javaLanguage); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}
	tree := p.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse: no tree produced")
	}
	root := tree.RootNode()
	if root.HasError() {
		bad := firstError(root)
		tree.Close()
		if bad != nil {
			pos := bad.StartPosition()
			return nil, fmt.Errorf("syntax error at %d:%d", pos.Row+1, pos.Column+1)
		}
		return nil, fmt.Errorf("syntax error")
	}
	return &parsed{tree: tree, node: root}, nil
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

func findFirst(n *sitter.Node, kind string) *sitter.Node {
	if n.Kind() == kind {
		return n
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if found := findFirst(n.NamedChild(i), kind); found != nil {
			return found
		}
	}
	return nil
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	children := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := uint(0); i < n.NamedChildCount(); i++ {
		children = append(children, n.NamedChild(i))
	}
	return children
}

func isComment(n *sitter.Node) bool {
	switch n.Kind() {
	case "line_comment", "block_comment", "comment":
		return true
	}
	return false
}

type converter struct {
	src  []byte
	tree *ast.Tree
}

func (c *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(c.src)
}

func (c *converter) span(n *sitter.Node) ast.Span {
	start, end := n.StartPosition(), n.EndPosition()
	return ast.Span{
		Start: ast.Position{Line: int(start.Row) + 1, Column: int(start.Column)},
		End:   ast.Position{Line: int(end.Row) + 1, Column: int(end.Column)},
	}
}

func (c *converter) add(n *sitter.Node, node ast.Node) ast.Handle {
	node.Span = c.span(n)
	return c.tree.Add(node)
}

func (c *converter) modifiers(n *sitter.Node) []string {
	for _, child := range namedChildren(n) {
		if child.Kind() == "modifiers" {
			return strings.Fields(c.text(child))
		}
	}
	return nil
}

func (c *converter) unit(n *sitter.Node) ast.Handle {
	var members []ast.Handle
	for _, child := range namedChildren(n) {
		switch {
		case isComment(child):
		case child.Kind() == "class_declaration":
			members = append(members, c.class(child))
		default:
			members = append(members, c.add(child, ast.Node{Kind: ast.KindOpaqueMember, Text: c.text(child)}))
		}
	}
	return c.add(n, ast.Node{Kind: ast.KindCompilationUnit, Children: members})
}

func (c *converter) class(n *sitter.Node) ast.Handle {
	var super string
	if sc := n.ChildByFieldName("superclass"); sc != nil && sc.NamedChildCount() > 0 {
		super = c.text(sc.NamedChild(0))
	}
	var members []ast.Handle
	for _, child := range namedChildren(n.ChildByFieldName("body")) {
		switch {
		case isComment(child):
		case child.Kind() == "field_declaration":
			members = append(members, c.field(child))
		case child.Kind() == "method_declaration":
			members = append(members, c.method(child))
		case child.Kind() == "constructor_declaration":
			members = append(members, c.constructor(child))
		case child.Kind() == "class_declaration":
			members = append(members, c.class(child))
		default:
			members = append(members, c.add(child, ast.Node{Kind: ast.KindOpaqueMember, Text: c.text(child)}))
		}
	}
	return c.add(n, ast.Node{
		Kind:      ast.KindClassDecl,
		Name:      c.text(n.ChildByFieldName("name")),
		Type:      super,
		Modifiers: c.modifiers(n),
		Children:  members,
	})
}

func (c *converter) field(n *sitter.Node) ast.Handle {
	return c.add(n, ast.Node{
		Kind:      ast.KindFieldDecl,
		Type:      c.text(n.ChildByFieldName("type")),
		Modifiers: c.modifiers(n),
		Children:  c.declarators(n),
	})
}

func (c *converter) declarators(n *sitter.Node) []ast.Handle {
	var decls []ast.Handle
	for _, child := range namedChildren(n) {
		if child.Kind() != "variable_declarator" {
			continue
		}
		node := ast.Node{Kind: ast.KindVarDeclarator, Name: c.text(child.ChildByFieldName("name"))}
		if value := child.ChildByFieldName("value"); value != nil {
			node.Children = []ast.Handle{c.expression(value)}
		}
		decls = append(decls, c.add(child, node))
	}
	return decls
}

func (c *converter) method(n *sitter.Node) ast.Handle {
	node := ast.Node{
		Kind:      ast.KindMethodDecl,
		Name:      c.text(n.ChildByFieldName("name")),
		Type:      c.text(n.ChildByFieldName("type")),
		Modifiers: c.modifiers(n),
		Params:    c.parameters(n.ChildByFieldName("parameters")),
	}
	if body := n.ChildByFieldName("body"); body != nil {
		node.Body = c.block(body)
	}
	return c.add(n, node)
}

func (c *converter) constructor(n *sitter.Node) ast.Handle {
	node := ast.Node{
		Kind:      ast.KindConstructorDecl,
		Name:      c.text(n.ChildByFieldName("name")),
		Modifiers: c.modifiers(n),
		Params:    c.parameters(n.ChildByFieldName("parameters")),
	}
	if body := n.ChildByFieldName("body"); body != nil {
		node.Body = c.block(body)
	}
	return c.add(n, node)
}

func (c *converter) parameters(n *sitter.Node) []ast.Handle {
	var params []ast.Handle
	for _, child := range namedChildren(n) {
		switch child.Kind() {
		case "formal_parameter":
			params = append(params, c.add(child, ast.Node{
				Kind:      ast.KindParameter,
				Name:      c.text(child.ChildByFieldName("name")),
				Type:      c.text(child.ChildByFieldName("type")),
				Modifiers: c.modifiers(child),
			}))
		case "spread_parameter":
			node := ast.Node{Kind: ast.KindParameter, Varargs: true, Modifiers: c.modifiers(child)}
			for _, part := range namedChildren(child) {
				switch part.Kind() {
				case "modifiers":
				case "variable_declarator":
					node.Name = c.text(part.ChildByFieldName("name"))
				default:
					if node.Type == "" {
						node.Type = c.text(part)
					}
				}
			}
			params = append(params, c.add(child, node))
		}
	}
	return params
}

func (c *converter) block(n *sitter.Node) ast.Handle {
	var stmts []ast.Handle
	for _, child := range namedChildren(n) {
		if isComment(child) {
			continue
		}
		stmts = append(stmts, c.statement(child))
	}
	return c.add(n, ast.Node{Kind: ast.KindBlock, Children: stmts})
}

func (c *converter) statement(n *sitter.Node) ast.Handle {
	switch n.Kind() {
	case "expression_statement":
		var children []ast.Handle
		if n.NamedChildCount() > 0 {
			children = []ast.Handle{c.expression(n.NamedChild(0))}
		}
		return c.add(n, ast.Node{Kind: ast.KindExprStmt, Children: children})
	case "local_variable_declaration":
		return c.add(n, ast.Node{
			Kind:      ast.KindLocalVarDecl,
			Type:      c.text(n.ChildByFieldName("type")),
			Modifiers: c.modifiers(n),
			Children:  c.declarators(n),
		})
	case "explicit_constructor_invocation":
		return c.add(n, ast.Node{
			Kind:     ast.KindConstructorCall,
			Name:     c.text(n.ChildByFieldName("constructor")),
			Children: c.arguments(n.ChildByFieldName("arguments")),
		})
	case "return_statement":
		var children []ast.Handle
		if n.NamedChildCount() > 0 {
			children = []ast.Handle{c.expression(n.NamedChild(0))}
		}
		return c.add(n, ast.Node{Kind: ast.KindReturnStmt, Children: children})
	case "block":
		return c.block(n)
	default:
		return c.add(n, ast.Node{Kind: ast.KindOpaqueStmt, Text: c.text(n)})
	}
}

func (c *converter) arguments(n *sitter.Node) []ast.Handle {
	var args []ast.Handle
	for _, child := range namedChildren(n) {
		if isComment(child) {
			continue
		}
		args = append(args, c.expression(child))
	}
	return args
}

func (c *converter) expression(n *sitter.Node) ast.Handle {
	switch n.Kind() {
	case "method_invocation":
		node := ast.Node{
			Kind:     ast.KindCallExpr,
			Name:     c.text(n.ChildByFieldName("name")),
			Children: c.arguments(n.ChildByFieldName("arguments")),
		}
		if object := n.ChildByFieldName("object"); object != nil {
			node.Receiver = c.expression(object)
		}
		return c.add(n, node)
	case "object_creation_expression":
		for _, child := range namedChildren(n) {
			if child.Kind() == "class_body" {
				return c.opaque(n)
			}
		}
		return c.add(n, ast.Node{
			Kind:     ast.KindNewExpr,
			Type:     c.text(n.ChildByFieldName("type")),
			Children: c.arguments(n.ChildByFieldName("arguments")),
		})
	case "array_creation_expression":
		typ := n.ChildByFieldName("type")
		if typ == nil {
			return c.opaque(n)
		}
		end := n.EndByte()
		node := ast.Node{Kind: ast.KindNewArrayExpr}
		if value := n.ChildByFieldName("value"); value != nil {
			end = value.StartByte()
			node.Children = []ast.Handle{c.expression(value)}
		}
		node.Type = strings.Join(strings.Fields(string(c.src[typ.StartByte():end])), "")
		return c.add(n, node)
	case "array_initializer":
		return c.add(n, ast.Node{Kind: ast.KindArrayInit, Children: c.arguments(n)})
	case "identifier":
		return c.add(n, ast.Node{Kind: ast.KindName, Name: c.text(n)})
	case "field_access":
		object := n.ChildByFieldName("object")
		field := n.ChildByFieldName("field")
		if object == nil || field == nil {
			return c.opaque(n)
		}
		return c.add(n, ast.Node{
			Kind:     ast.KindFieldAccess,
			Name:     c.text(field),
			Receiver: c.expression(object),
		})
	case "this":
		return c.add(n, ast.Node{Kind: ast.KindThis})
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal",
		"decimal_floating_point_literal", "hex_floating_point_literal", "string_literal", "character_literal",
		"text_block", "true", "false", "null_literal":
		return c.add(n, ast.Node{Kind: ast.KindLiteral, Text: c.text(n)})
	case "assignment_expression":
		if c.text(n.ChildByFieldName("operator")) != "=" {
			return c.opaque(n)
		}
		return c.add(n, ast.Node{
			Kind: ast.KindAssignExpr,
			Children: []ast.Handle{
				c.expression(n.ChildByFieldName("left")),
				c.expression(n.ChildByFieldName("right")),
			},
		})
	default:
		return c.opaque(n)
	}
}

func (c *converter) opaque(n *sitter.Node) ast.Handle {
	return c.add(n, ast.Node{Kind: ast.KindOpaqueExpr, Text: c.text(n)})
}
