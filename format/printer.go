package format

import (
	"bytes"
	"io"
	"strings"

	"github.com/dhamidi/formkit/java/ast"
)

// Printer renders arena nodes as Java source. Declarations and statements
// are laid out one per line; expressions are always printed on one line.
type Printer struct {
	w           io.Writer
	tree        *ast.Tree
	indent      int
	indentStr   string
	atLineStart bool
	err         error
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:           w,
		indentStr:   "    ",
		atLineStart: true,
	}
}

// Print writes h and everything below it.
func (p *Printer) Print(tree *ast.Tree, h ast.Handle) error {
	p.tree = tree
	p.printNode(h)
	return p.err
}

// Source returns the source text of a single node without a trailing newline.
func Source(tree *ast.Tree, h ast.Handle) string {
	if tree.Kind(h).IsExpression() {
		p := &Printer{tree: tree}
		return p.expr(h)
	}
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Print(tree, h)
	return strings.TrimRight(buf.String(), "\n")
}

// Bytes renders the whole tree.
func Bytes(tree *ast.Tree) []byte {
	var buf bytes.Buffer
	NewPrinter(&buf).Print(tree, tree.Root())
	return buf.Bytes()
}

func (p *Printer) printNode(h ast.Handle) {
	n := p.tree.Node(h)
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.KindCompilationUnit:
		p.printCompilationUnit(n)
	case ast.KindOpaqueMember:
		p.printComments(n)
		p.printVerbatim(n.Text)
	case ast.KindClassDecl:
		p.printClassDecl(n)
	case ast.KindFieldDecl:
		p.printComments(n)
		p.writeIndent()
		p.writeModifiers(n.Modifiers)
		p.write(n.Type + " ")
		p.printDeclarators(n.Children)
		p.write(";")
		p.newline()
	case ast.KindMethodDecl, ast.KindConstructorDecl:
		p.printMethodDecl(n)
	default:
		p.printStatement(h)
	}
}

func (p *Printer) printCompilationUnit(n *ast.Node) {
	for i, child := range n.Children {
		if i > 0 && p.tree.Kind(child) == ast.KindClassDecl {
			p.newline()
		}
		p.printNode(child)
	}
}

func (p *Printer) printClassDecl(n *ast.Node) {
	p.printComments(n)
	p.writeIndent()
	p.writeModifiers(n.Modifiers)
	p.write("class " + n.Name)
	if n.Type != "" {
		p.write(" extends " + n.Type)
	}
	p.write(" {")
	p.newline()
	p.indent++
	for i, member := range n.Children {
		if i > 0 && p.tree.Kind(member) != ast.KindFieldDecl {
			p.newline()
		}
		p.printNode(member)
	}
	p.indent--
	p.writeIndent()
	p.write("}")
	p.newline()
}

func (p *Printer) printMethodDecl(n *ast.Node) {
	p.printComments(n)
	p.writeIndent()
	p.writeModifiers(n.Modifiers)
	if n.Kind == ast.KindMethodDecl {
		p.write(n.Type + " ")
	}
	p.write(n.Name + "(")
	for i, param := range n.Params {
		if i > 0 {
			p.write(", ")
		}
		pn := p.tree.Node(param)
		p.writeModifiers(pn.Modifiers)
		if pn.Varargs {
			p.write(pn.Type + "... " + pn.Name)
		} else {
			p.write(pn.Type + " " + pn.Name)
		}
	}
	p.write(")")
	if !n.Body.IsValid() {
		p.write(";")
		p.newline()
		return
	}
	p.write(" ")
	p.printBlock(p.tree.Node(n.Body))
	p.newline()
}

func (p *Printer) printBlock(n *ast.Node) {
	p.write("{")
	p.newline()
	p.indent++
	for _, stmt := range n.Children {
		p.printStatement(stmt)
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *Printer) printStatement(h ast.Handle) {
	n := p.tree.Node(h)
	if n == nil {
		return
	}
	p.printComments(n)
	p.writeIndent()
	switch n.Kind {
	case ast.KindBlock:
		p.printBlock(n)
	case ast.KindExprStmt:
		p.write(p.expr(n.Child(0)) + ";")
	case ast.KindLocalVarDecl:
		p.writeModifiers(n.Modifiers)
		p.write(n.Type + " ")
		p.printDeclarators(n.Children)
		p.write(";")
	case ast.KindConstructorCall:
		p.write(n.Name + "(" + p.exprList(n.Children) + ");")
	case ast.KindReturnStmt:
		if n.Child(0).IsValid() {
			p.write("return " + p.expr(n.Child(0)) + ";")
		} else {
			p.write("return;")
		}
	case ast.KindOpaqueStmt:
		p.write(n.Text)
	default:
		p.write(p.expr(h))
	}
	p.newline()
}

func (p *Printer) printDeclarators(decls []ast.Handle) {
	for i, d := range decls {
		if i > 0 {
			p.write(", ")
		}
		dn := p.tree.Node(d)
		p.write(dn.Name)
		if dn.Child(0).IsValid() {
			p.write(" = " + p.expr(dn.Child(0)))
		}
	}
}

func (p *Printer) printComments(n *ast.Node) {
	for _, c := range n.Comments {
		p.writeIndent()
		p.write(c)
		p.newline()
	}
}

// printVerbatim re-indents multi-line opaque text to the current level.
func (p *Printer) printVerbatim(text string) {
	for _, line := range strings.Split(text, "\n") {
		p.writeIndent()
		p.write(strings.TrimLeft(line, " \t"))
		p.newline()
	}
}

func (p *Printer) expr(h ast.Handle) string {
	n := p.tree.Node(h)
	if n == nil {
		return ""
	}
	switch n.Kind {
	case ast.KindCallExpr:
		call := n.Name + "(" + p.exprList(n.Children) + ")"
		if n.Receiver.IsValid() {
			return p.expr(n.Receiver) + "." + call
		}
		return call
	case ast.KindNewExpr:
		return "new " + n.Type + "(" + p.exprList(n.Children) + ")"
	case ast.KindNewArrayExpr:
		if n.Child(0).IsValid() {
			return "new " + n.Type + p.expr(n.Child(0))
		}
		return "new " + n.Type
	case ast.KindArrayInit:
		return "{" + p.exprList(n.Children) + "}"
	case ast.KindName:
		return n.Name
	case ast.KindFieldAccess:
		return p.expr(n.Receiver) + "." + n.Name
	case ast.KindThis:
		return "this"
	case ast.KindAssignExpr:
		return p.expr(n.Child(0)) + " = " + p.expr(n.Child(1))
	default:
		return n.Text
	}
}

func (p *Printer) exprList(list []ast.Handle) string {
	parts := make([]string, len(list))
	for i, h := range list {
		parts[i] = p.expr(h)
	}
	return strings.Join(parts, ", ")
}

func (p *Printer) writeModifiers(mods []string) {
	for _, m := range mods {
		p.write(m + " ")
	}
}

func (p *Printer) writeIndent() {
	if !p.atLineStart {
		return
	}
	for i := 0; i < p.indent; i++ {
		p.write(p.indentStr)
	}
	p.atLineStart = false
}

func (p *Printer) write(s string) {
	if p.err != nil || p.w == nil {
		return
	}
	_, p.err = p.w.Write([]byte(s))
}

func (p *Printer) newline() {
	p.write("\n")
	p.atLineStart = true
}
