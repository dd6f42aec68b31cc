package editor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dhamidi/formkit/java"
	"github.com/dhamidi/formkit/java/ast"
)

// Binding returns the method or constructor that call is bound to, resolving
// it on first use.
func (e *Editor) Binding(call ast.Handle) (*java.MethodModel, error) {
	if m, ok := e.bindings[call]; ok {
		return m, nil
	}
	return e.ResolveBinding(call)
}

// ResolveBinding re-resolves the binding of call against the current
// argument expressions. Needed after an argument substitution, which can
// select a different overload.
func (e *Editor) ResolveBinding(call ast.Handle) (*java.MethodModel, error) {
	n := e.tree.Node(call)
	if n == nil {
		return nil, fmt.Errorf("resolve binding: invalid node %d", call)
	}
	var class, name string
	switch n.Kind {
	case ast.KindCallExpr:
		name = n.Name
		if n.Receiver.IsValid() {
			class = e.TypeOf(n.Receiver).Name
		} else {
			class = e.enclosingClassName(call)
		}
	case ast.KindNewExpr:
		class, name = java.ParseType(n.Type).Name, java.ConstructorName
	case ast.KindConstructorCall:
		name = java.ConstructorName
		decl := e.tree.Node(e.tree.Enclosing(call, ast.KindClassDecl))
		if decl == nil {
			return nil, fmt.Errorf("resolve binding: %s outside of a class", n.Name)
		}
		class = decl.Name
		if n.Name == "super" {
			class = decl.Type
		}
	default:
		return nil, fmt.Errorf("resolve binding: %s is not an invocation", n.Kind)
	}

	args := make([]java.TypeModel, len(n.Children))
	for i, arg := range n.Children {
		args[i] = e.TypeOf(arg)
	}
	m := e.classes.Resolve(class, name, args)
	if m == nil {
		delete(e.bindings, call)
		return nil, fmt.Errorf("resolve binding: no %s.%s matching %s", class, name, java.Signature(name, args))
	}
	e.bindings[call] = m
	return m, nil
}

func (e *Editor) enclosingClassName(h ast.Handle) string {
	if decl := e.tree.Node(e.tree.Enclosing(h, ast.KindClassDecl)); decl != nil {
		return decl.Name
	}
	return ""
}

var arrayDims = regexp.MustCompile(`\[[^\]]*\]`)

// TypeOf returns the static type of expr as far as it can be determined.
// Unknown types have an empty name.
func (e *Editor) TypeOf(expr ast.Handle) java.TypeModel {
	n := e.tree.Node(expr)
	if n == nil {
		return java.TypeModel{}
	}
	switch n.Kind {
	case ast.KindLiteral:
		return literalType(n.Text)
	case ast.KindName:
		if decl := e.Declaration(expr); decl.IsValid() {
			return e.declaredType(decl)
		}
		if m := e.classes.Lookup(n.Name); m != nil {
			return java.TypeModel{Name: m.Name}
		}
	case ast.KindFieldAccess:
		if decl := e.Declaration(expr); decl.IsValid() {
			return e.declaredType(decl)
		}
		owner := e.TypeOf(n.Receiver)
		for _, m := range e.classes.Hierarchy(owner.Name) {
			if f := m.Field(n.Name); f != nil {
				return f.Type
			}
		}
	case ast.KindThis:
		return java.TypeModel{Name: e.enclosingClassName(expr)}
	case ast.KindNewExpr:
		return java.ParseType(n.Type)
	case ast.KindNewArrayExpr:
		return java.ParseType(arrayDims.ReplaceAllString(n.Type, "[]"))
	case ast.KindCallExpr:
		if m, err := e.Binding(expr); err == nil {
			return m.ReturnType
		}
	case ast.KindAssignExpr:
		return e.TypeOf(n.Child(1))
	}
	return java.TypeModel{}
}

func literalType(text string) java.TypeModel {
	switch {
	case strings.HasPrefix(text, `"`):
		return java.TypeModel{Name: "String"}
	case strings.HasPrefix(text, "'"):
		return java.TypeModel{Name: "char"}
	case text == "true" || text == "false":
		return java.TypeModel{Name: "boolean"}
	case text == "null":
		return java.TypeModel{Name: "null"}
	case strings.HasSuffix(text, "L") || strings.HasSuffix(text, "l"):
		return java.TypeModel{Name: "long"}
	case strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X"):
		return java.TypeModel{Name: "int"}
	case strings.HasSuffix(text, "f") || strings.HasSuffix(text, "F"):
		return java.TypeModel{Name: "float"}
	case strings.ContainsAny(text, ".eE"):
		return java.TypeModel{Name: "double"}
	}
	return java.TypeModel{Name: "int"}
}

func (e *Editor) declaredType(decl ast.Handle) java.TypeModel {
	n := e.tree.Node(decl)
	if n.Kind == ast.KindParameter {
		t := java.ParseType(n.Type)
		if n.Varargs {
			t.ArrayDepth++
		}
		return t
	}
	if owner := e.tree.Node(e.tree.Parent(decl)); owner != nil {
		return java.ParseType(owner.Type)
	}
	return java.TypeModel{}
}

// Declaration returns the declarator (or parameter) that a simple name, or a
// "this.name" field access, refers to. Locals declared earlier in enclosing
// blocks shadow parameters, which shadow fields.
func (e *Editor) Declaration(h ast.Handle) ast.Handle {
	n := e.tree.Node(h)
	if n == nil {
		return ast.NoHandle
	}
	switch {
	case n.Kind == ast.KindName:
	case n.Kind == ast.KindFieldAccess && e.tree.Kind(n.Receiver) == ast.KindThis:
		return e.fieldDeclaration(e.tree.Enclosing(h, ast.KindClassDecl), n.Name)
	default:
		return ast.NoHandle
	}

	name := n.Name
	child := h
	for cur := e.tree.Parent(h); cur.IsValid(); child, cur = cur, e.tree.Parent(cur) {
		cn := e.tree.Node(cur)
		switch cn.Kind {
		case ast.KindBlock:
			found := ast.NoHandle
			for _, stmt := range cn.Children {
				if stmt == child {
					break
				}
				if d := e.localDeclarator(stmt, name); d.IsValid() {
					found = d
				}
			}
			if found.IsValid() {
				return found
			}
		case ast.KindMethodDecl, ast.KindConstructorDecl:
			for _, p := range cn.Params {
				if e.tree.Node(p).Name == name {
					return p
				}
			}
		case ast.KindClassDecl:
			return e.fieldDeclaration(cur, name)
		}
	}
	return ast.NoHandle
}

func (e *Editor) localDeclarator(stmt ast.Handle, name string) ast.Handle {
	sn := e.tree.Node(stmt)
	if sn.Kind != ast.KindLocalVarDecl {
		return ast.NoHandle
	}
	for _, d := range sn.Children {
		if e.tree.Node(d).Name == name {
			return d
		}
	}
	return ast.NoHandle
}

func (e *Editor) fieldDeclaration(class ast.Handle, name string) ast.Handle {
	cn := e.tree.Node(class)
	if cn == nil {
		return ast.NoHandle
	}
	for _, member := range cn.Children {
		mn := e.tree.Node(member)
		if mn.Kind != ast.KindFieldDecl {
			continue
		}
		for _, d := range mn.Children {
			if e.tree.Node(d).Name == name {
				return d
			}
		}
	}
	return ast.NoHandle
}
