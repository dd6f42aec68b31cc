package model

import (
	"errors"
	"fmt"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java/ast"
)

// VariableSupport describes how code refers to a component.
type VariableSupport interface {
	// Name is the variable name, or "" for components without one.
	Name() string
	IsRepresentedBy(h ast.Handle) bool
	// ReferenceExpression renders the expression that refers to the
	// component at target.
	ReferenceExpression(target editor.NodeTarget) (string, error)
	// Statement is the statement that creates or assigns the component.
	Statement() ast.Handle
	// EnsureInstanceReadyAt makes the component available to a statement
	// inserted at target, moving its creation when needed. It returns the
	// target to use for statements that must follow the creation.
	EnsureInstanceReadyAt(target editor.StatementTarget) (editor.StatementTarget, error)
	// Delete removes the declaration of the component.
	Delete() error
}

// ensureStatementAt moves stmt to target unless it already runs first.
func ensureStatementAt(ed *editor.Editor, stmt ast.Handle, target editor.StatementTarget) (editor.StatementTarget, error) {
	if !stmt.IsValid() || ed.IsBefore(stmt, target) {
		return target, nil
	}
	if err := ed.MoveStatement(stmt, target); err != nil {
		return target, err
	}
	return editor.After(stmt), nil
}

// LocalVariable is "T name = creation;" inside a method body.
type LocalVariable struct {
	javaInfo   *JavaInfo
	declarator ast.Handle
}

func NewLocalVariable(j *JavaInfo, declarator ast.Handle) *LocalVariable {
	return &LocalVariable{javaInfo: j, declarator: declarator}
}

func (v *LocalVariable) Declarator() ast.Handle { return v.declarator }

func (v *LocalVariable) Name() string {
	return v.javaInfo.Editor().Node(v.declarator).Name
}

func (v *LocalVariable) IsRepresentedBy(h ast.Handle) bool {
	return h.IsValid() && (h == v.declarator || v.javaInfo.Editor().Declaration(h) == v.declarator)
}

func (v *LocalVariable) ReferenceExpression(editor.NodeTarget) (string, error) {
	return v.Name(), nil
}

func (v *LocalVariable) Statement() ast.Handle {
	return v.javaInfo.Editor().Tree().Parent(v.declarator)
}

func (v *LocalVariable) EnsureInstanceReadyAt(target editor.StatementTarget) (editor.StatementTarget, error) {
	return ensureStatementAt(v.javaInfo.Editor(), v.Statement(), target)
}

func (v *LocalVariable) Delete() error {
	ed := v.javaInfo.Editor()
	if ed.IsDangling(v.declarator) {
		return nil
	}
	return ed.RemoveDeclarator(v.declarator)
}

// FieldVariable is a field of the designed class, initialized either in
// its declaration or by an assignment in a method.
type FieldVariable struct {
	javaInfo   *JavaInfo
	declarator ast.Handle
}

func NewFieldVariable(j *JavaInfo, declarator ast.Handle) *FieldVariable {
	return &FieldVariable{javaInfo: j, declarator: declarator}
}

func (v *FieldVariable) Declarator() ast.Handle { return v.declarator }

func (v *FieldVariable) Name() string {
	return v.javaInfo.Editor().Node(v.declarator).Name
}

func (v *FieldVariable) IsRepresentedBy(h ast.Handle) bool {
	return h.IsValid() && (h == v.declarator || v.javaInfo.Editor().Declaration(h) == v.declarator)
}

func (v *FieldVariable) ReferenceExpression(editor.NodeTarget) (string, error) {
	return v.Name(), nil
}

// Statement is the assignment statement, or NoHandle when the field is
// initialized in its declaration.
func (v *FieldVariable) Statement() ast.Handle {
	return v.javaInfo.Editor().EnclosingStatement(v.javaInfo.Creation().Node())
}

func (v *FieldVariable) EnsureInstanceReadyAt(target editor.StatementTarget) (editor.StatementTarget, error) {
	return ensureStatementAt(v.javaInfo.Editor(), v.Statement(), target)
}

func (v *FieldVariable) Delete() error {
	ed := v.javaInfo.Editor()
	if stmt := v.Statement(); stmt.IsValid() && !ed.IsDangling(stmt) {
		if err := ed.RemoveEnclosingStatement(stmt); err != nil {
			return err
		}
	}
	if ed.IsDangling(v.declarator) {
		return nil
	}
	return ed.RemoveDeclarator(v.declarator)
}

// EmptyVariable is an inline component: its creation expression is used
// directly, for example as an argument.
type EmptyVariable struct {
	javaInfo *JavaInfo
}

func NewEmptyVariable(j *JavaInfo) *EmptyVariable {
	return &EmptyVariable{javaInfo: j}
}

func (v *EmptyVariable) Name() string { return "" }

func (v *EmptyVariable) IsRepresentedBy(ast.Handle) bool { return false }

// ReferenceExpression returns the creation itself when target is the
// creation node. Anywhere else the component gets a local variable first.
func (v *EmptyVariable) ReferenceExpression(target editor.NodeTarget) (string, error) {
	creation := v.javaInfo.Creation().Node()
	if target.Node.IsValid() && target.Node == creation {
		return v.javaInfo.Editor().Source(creation), nil
	}
	if err := v.javaInfo.EnsureVariable(); err != nil {
		return "", err
	}
	return v.javaInfo.Variable().ReferenceExpression(target)
}

func (v *EmptyVariable) Statement() ast.Handle {
	return v.javaInfo.Editor().EnclosingStatement(v.javaInfo.Creation().Node())
}

func (v *EmptyVariable) EnsureInstanceReadyAt(target editor.StatementTarget) (editor.StatementTarget, error) {
	if v.javaInfo.Editor().IsBefore(v.Statement(), target) {
		return target, nil
	}
	if err := v.javaInfo.EnsureVariable(); err != nil {
		return target, err
	}
	return v.javaInfo.Variable().EnsureInstanceReadyAt(target)
}

// Delete removes the creation when it forms a statement on its own.
// Inline creations used as arguments go with the code that uses them.
func (v *EmptyVariable) Delete() error {
	ed := v.javaInfo.Editor()
	creation := v.javaInfo.Creation().Node()
	if !creation.IsValid() || ed.IsDangling(creation) || !ed.IsStandaloneStatement(creation) {
		return nil
	}
	return ed.RemoveEnclosingStatement(creation)
}

// LazyVariable is a field initialized on first use by an accessor method:
//
//	private JButton getButton() {
//	    if (button == null) {
//	        button = new JButton();
//	    }
//	    return button;
//	}
type LazyVariable struct {
	javaInfo   *JavaInfo
	declarator ast.Handle
	accessor   ast.Handle
}

func NewLazyVariable(j *JavaInfo, declarator, accessor ast.Handle) *LazyVariable {
	return &LazyVariable{javaInfo: j, declarator: declarator, accessor: accessor}
}

func (v *LazyVariable) Name() string {
	return v.javaInfo.Editor().Node(v.declarator).Name
}

func (v *LazyVariable) Accessor() ast.Handle { return v.accessor }

func (v *LazyVariable) AccessorName() string {
	return v.javaInfo.Editor().Node(v.accessor).Name
}

func (v *LazyVariable) IsRepresentedBy(h ast.Handle) bool {
	if !h.IsValid() {
		return false
	}
	ed := v.javaInfo.Editor()
	if h == v.declarator || ed.Declaration(h) == v.declarator {
		return true
	}
	return v.isAccessorCall(h)
}

func (v *LazyVariable) isAccessorCall(h ast.Handle) bool {
	tree := v.javaInfo.Editor().Tree()
	n := tree.Node(h)
	if n == nil || n.Kind != ast.KindCallExpr || len(n.Children) != 0 || n.Name != v.AccessorName() {
		return false
	}
	return !n.Receiver.IsValid() || tree.Kind(n.Receiver) == ast.KindThis
}

// ReferenceExpression is the field inside the accessor and a call of the
// accessor everywhere else.
func (v *LazyVariable) ReferenceExpression(target editor.NodeTarget) (string, error) {
	tree := v.javaInfo.Editor().Tree()
	at := target.Node
	if !at.IsValid() {
		at = target.Statement.Statement
		if !at.IsValid() {
			at = target.Statement.Block
		}
	}
	for cur := at; cur.IsValid(); cur = tree.Parent(cur) {
		if cur == v.accessor {
			return v.Name(), nil
		}
	}
	return v.AccessorName() + "()", nil
}

func (v *LazyVariable) Statement() ast.Handle {
	return v.javaInfo.Editor().EnclosingStatement(v.javaInfo.Creation().Node())
}

// AccessorInvocations returns the calls of the accessor outside of the
// accessor itself, in source order.
func (v *LazyVariable) AccessorInvocations() []ast.Handle {
	tree := v.javaInfo.Editor().Tree()
	var calls []ast.Handle
	tree.Walk(tree.Root(), func(h ast.Handle) bool {
		if h == v.accessor {
			return false
		}
		if v.isAccessorCall(h) {
			calls = append(calls, h)
		}
		return true
	})
	return calls
}

// EnsureInstanceReadyAt does nothing: the accessor can be called anywhere.
func (v *LazyVariable) EnsureInstanceReadyAt(target editor.StatementTarget) (editor.StatementTarget, error) {
	return target, nil
}

func (v *LazyVariable) Delete() error {
	ed := v.javaInfo.Editor()
	if !ed.IsDangling(v.accessor) {
		if err := ed.RemoveMember(v.accessor); err != nil {
			return err
		}
	}
	if ed.IsDangling(v.declarator) {
		return nil
	}
	return ed.RemoveDeclarator(v.declarator)
}

var errDeleteThis = errors.New("the designed class cannot be deleted")

// ThisVariable refers to the designed class.
type ThisVariable struct {
	javaInfo *JavaInfo
}

func NewThisVariable(j *JavaInfo) *ThisVariable {
	return &ThisVariable{javaInfo: j}
}

func (v *ThisVariable) Name() string { return "this" }

func (v *ThisVariable) IsRepresentedBy(h ast.Handle) bool {
	return v.javaInfo.Editor().Tree().Kind(h) == ast.KindThis
}

func (v *ThisVariable) ReferenceExpression(editor.NodeTarget) (string, error) {
	return "this", nil
}

func (v *ThisVariable) Statement() ast.Handle { return ast.NoHandle }

func (v *ThisVariable) EnsureInstanceReadyAt(target editor.StatementTarget) (editor.StatementTarget, error) {
	return target, nil
}

func (v *ThisVariable) Delete() error {
	return fmt.Errorf("delete %s: %w", v.javaInfo, errDeleteThis)
}
