package association

import (
	"fmt"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java/ast"
	"github.com/dhamidi/formkit/model"
)

// ConstructorParent is a child that receives its parent as a constructor
// argument: new Button(shell, SWT.PUSH).
type ConstructorParent struct {
	Base
}

func NewConstructorParent() *ConstructorParent {
	return &ConstructorParent{}
}

func (a *ConstructorParent) creation() ast.Handle {
	return a.javaInfo.Creation().Node()
}

func (a *ConstructorParent) Statement() ast.Handle {
	return a.statementOf(a.creation())
}

func (a *ConstructorParent) Source() (string, error) {
	return a.sourceOf(a.creation())
}

func (a *ConstructorParent) Add(j *model.JavaInfo, _ editor.StatementTarget, _ []string) error {
	return a.add(a, j)
}

// Move relocates the statement creating the child.
func (a *ConstructorParent) Move(target editor.StatementTarget) error {
	stmt := a.Statement()
	if !stmt.IsValid() {
		return fmt.Errorf("move %s: creation is not inside a statement", a.javaInfo)
	}
	return a.editor.MoveStatement(stmt, target)
}

// SetParent rewrites the parent argument, then re-resolves the constructor
// since the new argument type may select another overload.
func (a *ConstructorParent) SetParent(parent *model.JavaInfo) error {
	return setParentArgument(&a.Base, a.creation(), parent)
}

// Remove refuses: the parent argument cannot be dropped.
func (a *ConstructorParent) Remove() (bool, error) {
	return false, nil
}

func (a *ConstructorParent) Copy() (model.Association, error) {
	return NewConstructorParent(), nil
}

func setParentArgument(b *Base, call ast.Handle, parent *model.JavaInfo) error {
	args := b.editor.Arguments(call)
	indexes := parentIndexes(b.methodDescription(call), args, b.javaInfo.Parent())
	if len(indexes) == 0 {
		return fmt.Errorf("set parent of %s: no parent argument in %s", b.javaInfo, b.editor.Source(call))
	}
	if err := replaceParentArguments(indexes, args, parent); err != nil {
		return fmt.Errorf("set parent of %s: %w", b.javaInfo, err)
	}
	if _, err := b.editor.ResolveBinding(call); err != nil {
		log.Warningf("set parent of %s: %s", b.javaInfo, err)
	}
	return nil
}

// FactoryParent is a child created by a factory method that receives the
// parent: Factories.button(shell).
type FactoryParent struct {
	Base
}

func NewFactoryParent() *FactoryParent {
	return &FactoryParent{}
}

func (a *FactoryParent) invocation() ast.Handle {
	return a.javaInfo.Creation().Node()
}

func (a *FactoryParent) Statement() ast.Handle {
	return a.statementOf(a.invocation())
}

func (a *FactoryParent) Source() (string, error) {
	return a.sourceOf(a.invocation())
}

func (a *FactoryParent) Add(j *model.JavaInfo, _ editor.StatementTarget, _ []string) error {
	return a.add(a, j)
}

func (a *FactoryParent) SetParent(parent *model.JavaInfo) error {
	return setParentArgument(&a.Base, a.invocation(), parent)
}

func (a *FactoryParent) Remove() (bool, error) {
	return false, nil
}

// Copy returns a ConstructorParent: a morphed component is created with a
// constructor.
func (a *FactoryParent) Copy() (model.Association, error) {
	return NewConstructorParent(), nil
}

// ConstructorChild is a child passed to the constructor of its parent:
// new JPanel(layout).
type ConstructorChild struct {
	Base
	creation ast.Handle
}

// NewConstructorChild returns the association for the parent creation
// creation. With NoHandle the creation of the parent is used once the
// association is added.
func NewConstructorChild(creation ast.Handle) *ConstructorChild {
	return &ConstructorChild{creation: creation}
}

func (a *ConstructorChild) Creation() ast.Handle {
	return a.creation
}

func (a *ConstructorChild) Statement() ast.Handle {
	return a.statementOf(a.creation)
}

func (a *ConstructorChild) Source() (string, error) {
	return a.sourceOf(a.creation)
}

func (a *ConstructorChild) Add(j *model.JavaInfo, _ editor.StatementTarget, _ []string) error {
	if !a.creation.IsValid() && j.Parent() != nil {
		a.creation = j.Parent().Creation().Node()
	}
	return a.add(a, j)
}

// CanDelete holds when the parent goes too, or when the parent class has a
// constructor without the child parameters.
func (a *ConstructorChild) CanDelete() bool {
	if parent := a.javaInfo.Parent(); parent != nil && parent.IsDeleting() {
		return true
	}
	binding, err := a.editor.Binding(a.creation)
	if err != nil {
		return false
	}
	return reducedSignatureExists(a.editor.ClassPath(), binding, a.javaInfo, a.editor.Arguments(a.creation))
}

// Remove drops the child arguments from the parent constructor. The parent
// is then created by the remaining constructor.
func (a *ConstructorChild) Remove() (bool, error) {
	parent := a.javaInfo.Parent()
	if parent == nil || !parent.IsDeleting() {
		indexes := representingIndexes(a.javaInfo, a.editor.Arguments(a.creation), 0)
		for i := len(indexes) - 1; i >= 0; i-- {
			if err := a.editor.RemoveArgument(a.creation, indexes[i]); err != nil {
				return false, fmt.Errorf("remove %s: %w", a.javaInfo, err)
			}
		}
		if parent != nil {
			parent.SetCreation(model.NewConstructorCreation(a.creation))
		}
		if _, err := a.editor.ResolveBinding(a.creation); err != nil {
			log.Warningf("remove %s: %s", a.javaInfo, err)
		}
	}
	return a.remove(a)
}

func (a *ConstructorChild) Copy() (model.Association, error) {
	return NewConstructorChild(ast.NoHandle), nil
}

// SuperConstructorArgument is a child passed to the super constructor of
// the designed class. It is fixed.
type SuperConstructorArgument struct {
	Base
	argument ast.Handle
}

func NewSuperConstructorArgument(argument ast.Handle) *SuperConstructorArgument {
	return &SuperConstructorArgument{argument: argument}
}

func (a *SuperConstructorArgument) CanDelete() bool {
	return false
}

func (a *SuperConstructorArgument) Statement() ast.Handle {
	return a.statementOf(a.argument)
}

func (a *SuperConstructorArgument) Source() (string, error) {
	return a.sourceOf(a.argument)
}

func (a *SuperConstructorArgument) Add(j *model.JavaInfo, _ editor.StatementTarget, _ []string) error {
	return a.add(a, j)
}

func (a *SuperConstructorArgument) Remove() (bool, error) {
	return false, nil
}
