// Package editor performs the source edits the component model needs on a
// parsed compilation unit. Every mutation goes through an Editor so that
// cached method bindings stay consistent with the tree.
package editor

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/formkit/format"
	"github.com/dhamidi/formkit/java"
	"github.com/dhamidi/formkit/java/ast"
	"github.com/dhamidi/formkit/java/syntax"
)

var log = commonlog.GetLogger("formkit.editor")

type Editor struct {
	tree     *ast.Tree
	classes  *java.ClassPath
	bindings map[ast.Handle]*java.MethodModel
}

func New(tree *ast.Tree, classes *java.ClassPath) *Editor {
	if classes == nil {
		classes = java.NewClassPath()
	}
	return &Editor{
		tree:     tree,
		classes:  classes,
		bindings: make(map[ast.Handle]*java.MethodModel),
	}
}

// Parse parses source and returns an editor over it.
func Parse(source []byte, classes *java.ClassPath) (*Editor, error) {
	tree, err := syntax.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return New(tree, classes), nil
}

func (e *Editor) Tree() *ast.Tree {
	return e.tree
}

func (e *Editor) ClassPath() *java.ClassPath {
	return e.classes
}

func (e *Editor) Node(h ast.Handle) *ast.Node {
	return e.tree.Node(h)
}

// Source returns the source text of h.
func (e *Editor) Source(h ast.Handle) string {
	return format.Source(e.tree, h)
}

// Bytes renders the whole compilation unit.
func (e *Editor) Bytes() []byte {
	return format.Bytes(e.tree)
}

// Arguments returns a snapshot of the argument list of a method invocation,
// instance creation or explicit constructor invocation.
func (e *Editor) Arguments(call ast.Handle) []ast.Handle {
	n := e.tree.Node(call)
	if n == nil {
		return nil
	}
	switch n.Kind {
	case ast.KindCallExpr, ast.KindNewExpr, ast.KindConstructorCall:
		return append([]ast.Handle(nil), n.Children...)
	}
	return nil
}

// ArrayElements returns a snapshot of the elements of an array initializer
// or of the initializer of an array creation.
func (e *Editor) ArrayElements(array ast.Handle) []ast.Handle {
	init := e.arrayInit(array)
	if !init.IsValid() {
		return nil
	}
	return append([]ast.Handle(nil), e.tree.Node(init).Children...)
}

func (e *Editor) arrayInit(array ast.Handle) ast.Handle {
	switch e.tree.Kind(array) {
	case ast.KindArrayInit:
		return array
	case ast.KindNewArrayExpr:
		return e.tree.Node(array).Child(0)
	}
	return ast.NoHandle
}

func (e *Editor) EnclosingStatement(h ast.Handle) ast.Handle {
	return e.tree.EnclosingStatement(h)
}

// IsStandaloneStatement reports whether expr is the whole expression of an
// expression statement.
func (e *Editor) IsStandaloneStatement(expr ast.Handle) bool {
	return e.tree.Kind(e.tree.Parent(expr)) == ast.KindExprStmt
}

func (e *Editor) IsDangling(h ast.Handle) bool {
	return e.tree.IsDangling(h)
}

// ParseExpression allocates a detached expression.
func (e *Editor) ParseExpression(src string) (ast.Handle, error) {
	return syntax.ParseExpression(e.tree, src)
}

// ReplaceExpression parses src and puts it in place of h.
func (e *Editor) ReplaceExpression(h ast.Handle, src string) (ast.Handle, error) {
	old := e.Source(h)
	replacement, err := syntax.ParseExpression(e.tree, src)
	if err != nil {
		return ast.NoHandle, fmt.Errorf("replace expression: %w", err)
	}
	if err := e.tree.Replace(h, replacement); err != nil {
		return ast.NoHandle, fmt.Errorf("replace expression: %w", err)
	}
	e.invalidate(e.tree.Parent(replacement))
	log.Debugf("replace expression %q with %q", old, src)
	return replacement, nil
}

// RemoveArgument removes the index-th argument of call.
func (e *Editor) RemoveArgument(call ast.Handle, index int) error {
	arg, err := e.tree.RemoveChild(call, index)
	if err != nil {
		return fmt.Errorf("remove argument: %w", err)
	}
	e.invalidate(call)
	log.Debugf("remove argument %d (%s) from %s", index, e.Source(arg), e.Source(call))
	return nil
}

// RemoveArrayElement removes the index-th element of an array initializer
// (or of the initializer of an array creation).
func (e *Editor) RemoveArrayElement(array ast.Handle, index int) error {
	init := e.arrayInit(array)
	if !init.IsValid() {
		return fmt.Errorf("remove array element: node %d is not an array", array)
	}
	elem, err := e.tree.RemoveChild(init, index)
	if err != nil {
		return fmt.Errorf("remove array element: %w", err)
	}
	e.invalidate(e.tree.Enclosing(init, ast.KindCallExpr, ast.KindNewExpr))
	log.Debugf("remove array element %d (%s)", index, e.Source(elem))
	return nil
}

// RemoveEnclosingStatement removes the smallest statement containing h.
func (e *Editor) RemoveEnclosingStatement(h ast.Handle) error {
	stmt := e.tree.EnclosingStatement(h)
	if !stmt.IsValid() {
		return fmt.Errorf("remove statement: node %d is not inside a statement", h)
	}
	source := e.Source(stmt)
	e.tree.Detach(stmt)
	log.Debugf("remove statement %q", source)
	return nil
}

// ReplaceNode puts the existing node replacement in place of h. Unlike
// ReplaceExpression the replacement keeps its handle.
func (e *Editor) ReplaceNode(h, replacement ast.Handle) error {
	if err := e.tree.Replace(h, replacement); err != nil {
		return fmt.Errorf("replace node: %w", err)
	}
	e.invalidate(e.tree.Parent(replacement))
	log.Debugf("replace node %d with %q", h, e.Source(replacement))
	return nil
}

// RemoveDeclarator removes one variable declarator. The whole declaration
// goes when it was the only declarator.
func (e *Editor) RemoveDeclarator(declarator ast.Handle) error {
	decl := e.tree.Parent(declarator)
	switch e.tree.Kind(decl) {
	case ast.KindLocalVarDecl, ast.KindFieldDecl:
	default:
		return fmt.Errorf("remove declarator: node %d is not a declarator", declarator)
	}
	name := e.tree.Node(declarator).Name
	if len(e.tree.Node(decl).Children) > 1 {
		e.tree.Detach(declarator)
	} else {
		e.tree.Detach(decl)
	}
	log.Debugf("remove declaration of %s", name)
	return nil
}

// RemoveMember removes a method or field declaration from its class.
func (e *Editor) RemoveMember(member ast.Handle) error {
	if e.tree.Kind(e.tree.Parent(member)) != ast.KindClassDecl {
		return fmt.Errorf("remove member: node %d is not a class member", member)
	}
	name := e.tree.Node(member).Name
	e.tree.Detach(member)
	log.Debugf("remove member %s", name)
	return nil
}

// MoveStatement relocates stmt to target.
func (e *Editor) MoveStatement(stmt ast.Handle, target StatementTarget) error {
	if !e.tree.Kind(stmt).IsStatement() {
		return fmt.Errorf("move statement: node %d is not a statement", stmt)
	}
	if target.Statement == stmt {
		return nil
	}
	block, _, err := target.resolve(e.tree)
	if err != nil {
		return fmt.Errorf("move statement: %w", err)
	}
	for cur := block; cur.IsValid(); cur = e.tree.Parent(cur) {
		if cur == stmt {
			return fmt.Errorf("move statement: target %s is inside the moved statement", target)
		}
	}
	oldBlock := e.tree.Parent(stmt)
	if e.tree.Kind(oldBlock) != ast.KindBlock {
		return fmt.Errorf("move statement: node %d is not inside a block", stmt)
	}
	oldIndex := e.tree.IndexOf(oldBlock, stmt)
	e.tree.Detach(stmt)
	// Indices shift when stmt preceded the target in the same block.
	block, index, err := target.resolve(e.tree)
	if err == nil {
		err = e.tree.InsertChild(block, index, stmt)
	}
	if err != nil {
		if restoreErr := e.tree.InsertChild(oldBlock, oldIndex, stmt); restoreErr != nil {
			log.Errorf("restore statement %d: %s", stmt, restoreErr)
		}
		return fmt.Errorf("move statement: %w", err)
	}
	log.Debugf("move statement %q to %s", e.Source(stmt), target)
	return nil
}

// AddStatement parses src as one statement and inserts it at target, with
// leadingComments printed on the lines above it.
func (e *Editor) AddStatement(src string, target StatementTarget, leadingComments []string) (ast.Handle, error) {
	stmt, err := syntax.ParseStatement(e.tree, src)
	if err != nil {
		return ast.NoHandle, fmt.Errorf("add statement: %w", err)
	}
	block, index, err := target.resolve(e.tree)
	if err != nil {
		return ast.NoHandle, fmt.Errorf("add statement: %w", err)
	}
	e.tree.Node(stmt).Comments = append([]string(nil), leadingComments...)
	if err := e.tree.InsertChild(block, index, stmt); err != nil {
		return ast.NoHandle, fmt.Errorf("add statement: %w", err)
	}
	log.Debugf("add statement %q at %s", src, target)
	return stmt, nil
}

// InsertArgument parses src and inserts it as the index-th argument of call.
func (e *Editor) InsertArgument(call ast.Handle, index int, src string) (ast.Handle, error) {
	arg, err := syntax.ParseExpression(e.tree, src)
	if err != nil {
		return ast.NoHandle, fmt.Errorf("insert argument: %w", err)
	}
	if err := e.tree.InsertChild(call, index, arg); err != nil {
		return ast.NoHandle, fmt.Errorf("insert argument: %w", err)
	}
	e.invalidate(call)
	log.Debugf("insert argument %q at %d", src, index)
	return arg, nil
}

// InsertArrayElement parses src and inserts it into an array initializer.
func (e *Editor) InsertArrayElement(array ast.Handle, index int, src string) (ast.Handle, error) {
	init := e.arrayInit(array)
	if !init.IsValid() {
		return ast.NoHandle, fmt.Errorf("insert array element: node %d is not an array", array)
	}
	elem, err := syntax.ParseExpression(e.tree, src)
	if err != nil {
		return ast.NoHandle, fmt.Errorf("insert array element: %w", err)
	}
	if err := e.tree.InsertChild(init, index, elem); err != nil {
		return ast.NoHandle, fmt.Errorf("insert array element: %w", err)
	}
	log.Debugf("insert array element %q at %d", src, index)
	return elem, nil
}

// UniqueName returns base, or base followed by a number, such that no
// declaration in the unit already uses it.
func (e *Editor) UniqueName(base string) string {
	used := make(map[string]bool)
	e.tree.Walk(e.tree.Root(), func(h ast.Handle) bool {
		n := e.tree.Node(h)
		switch n.Kind {
		case ast.KindVarDeclarator, ast.KindParameter, ast.KindMethodDecl:
			used[n.Name] = true
		}
		return true
	})
	if base == "" {
		base = "object"
	}
	base = strings.ToLower(base[:1]) + base[1:]
	if !used[base] {
		return base
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s_%d", base, i)
		if !used[name] {
			return name
		}
	}
}

func (e *Editor) invalidate(call ast.Handle) {
	if call.IsValid() {
		delete(e.bindings, call)
	}
}
