package association

import (
	"fmt"
	"strings"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java/ast"
	"github.com/dhamidi/formkit/model"
)

// emptyAction is what happens to an array or varargs run once its last
// child is removed.
type emptyAction int

const (
	keepEmpty emptyAction = iota
	deleteStatement
	replaceCreation
)

func (a emptyAction) String() string {
	switch a {
	case deleteStatement:
		return "delete statement"
	case replaceCreation:
		return "replace creation"
	}
	return "keep empty"
}

// whenEmpty decides what happens to an emptied collection:
//
//	removeOnEmpty  standalone  ellipsis at 0 with on-empty source  action
//	yes            yes         any                                  delete statement
//	any            any         yes                                  replace creation
//	otherwise                                                       keep empty
//
// The first matching row wins.
func whenEmpty(removeOnEmpty, standalone, ellipsis bool, parameterIndex int, onEmptySource string) emptyAction {
	switch {
	case removeOnEmpty && standalone:
		return deleteStatement
	case ellipsis && parameterIndex == 0 && onEmptySource != "":
		return replaceCreation
	}
	return keepEmpty
}

// Array is a child stored as an element of an array initializer.
type Array struct {
	Base
	array         ast.Handle
	removeOnEmpty bool
}

func NewArray(array ast.Handle, removeOnEmpty bool) *Array {
	return &Array{array: array, removeOnEmpty: removeOnEmpty}
}

func (a *Array) Statement() ast.Handle {
	return a.statementOf(a.array)
}

func (a *Array) Source() (string, error) {
	return a.sourceOf(a.array)
}

func (a *Array) IsRemoveOnEmpty() bool {
	return a.removeOnEmpty
}

func (a *Array) Add(j *model.JavaInfo, _ editor.StatementTarget, _ []string) error {
	if err := a.SetJavaInfo(j); err != nil {
		return err
	}
	if len(representingIndexes(j, a.editor.ArrayElements(a.array), 0)) == 0 {
		if err := appendElement(a.editor, j, a.array); err != nil {
			return fmt.Errorf("add %s: %w", j, err)
		}
	}
	setInModelNoCompound(a)
	return nil
}

func (a *Array) Remove() (bool, error) {
	owner := a.editor.Tree().Enclosing(a.array, ast.KindCallExpr, ast.KindNewExpr)
	if err := removeElements(&a.Base, a.array, owner, a.removeOnEmpty, false, 0, ""); err != nil {
		return false, err
	}
	return a.remove(a)
}

// InvocationChildArray is a child stored in an array argument of a call on
// the parent: table.setColumns(new Column[]{name, size}).
type InvocationChildArray struct {
	Base
	source         string
	invocation     ast.Handle
	parameterIndex int
	removeOnEmpty  bool
}

func NewInvocationChildArray(invocation ast.Handle, parameterIndex int, removeOnEmpty bool) *InvocationChildArray {
	return &InvocationChildArray{invocation: invocation, parameterIndex: parameterIndex, removeOnEmpty: removeOnEmpty}
}

// NewInvocationChildArraySource returns an association that Add appends to
// the existing call of the template's method on the parent, or writes from
// source when there is none.
func NewInvocationChildArraySource(source string, parameterIndex int, removeOnEmpty bool) *InvocationChildArray {
	return &InvocationChildArray{source: source, parameterIndex: parameterIndex, removeOnEmpty: removeOnEmpty}
}

func (a *InvocationChildArray) Invocation() ast.Handle { return a.invocation }
func (a *InvocationChildArray) IsRemoveOnEmpty() bool  { return a.removeOnEmpty }

func (a *InvocationChildArray) array() ast.Handle {
	args := a.editor.Arguments(a.invocation)
	if a.parameterIndex >= len(args) {
		return ast.NoHandle
	}
	return args[a.parameterIndex]
}

func (a *InvocationChildArray) Statement() ast.Handle {
	return a.statementOf(a.invocation)
}

func (a *InvocationChildArray) Source() (string, error) {
	return a.sourceOf(a.invocation)
}

func (a *InvocationChildArray) Add(j *model.JavaInfo, target editor.StatementTarget, leadingComments []string) error {
	if err := a.SetJavaInfo(j); err != nil {
		return err
	}
	if !a.invocation.IsValid() {
		a.invocation = findParentInvocation(j.Parent(), TemplateMethod(a.source))
	}
	if a.invocation.IsValid() {
		if len(representingIndexes(j, a.editor.ArrayElements(a.array()), 0)) == 0 {
			if err := appendElement(a.editor, j, a.array()); err != nil {
				return fmt.Errorf("add %s: %w", j, err)
			}
		}
	} else {
		invocation, err := addTemplateStatement(j, a.source, target, leadingComments)
		if err != nil {
			return err
		}
		a.invocation = invocation
	}
	setInModelNoCompound(a)
	return nil
}

func (a *InvocationChildArray) Remove() (bool, error) {
	if err := removeElements(&a.Base, a.array(), a.invocation, a.removeOnEmpty, false, a.parameterIndex, ""); err != nil {
		return false, err
	}
	return a.remove(a)
}

func (a *InvocationChildArray) Copy() (model.Association, error) {
	if a.source == "" {
		return nil, model.ErrUnsupported
	}
	return NewInvocationChildArraySource(a.source, a.parameterIndex, a.removeOnEmpty), nil
}

// InvocationChildEllipsis is a child passed in the varargs run of a call:
// group.setItems(first, second). OnEmptySource replaces the whole call when
// the run starts at the first parameter and its last child goes.
type InvocationChildEllipsis struct {
	Base
	source         string
	invocation     ast.Handle
	parameterIndex int
	removeOnEmpty  bool
	onEmptySource  string
}

func NewInvocationChildEllipsis(invocation ast.Handle, parameterIndex int, removeOnEmpty bool, onEmptySource string) *InvocationChildEllipsis {
	return &InvocationChildEllipsis{
		invocation:     invocation,
		parameterIndex: parameterIndex,
		removeOnEmpty:  removeOnEmpty,
		onEmptySource:  onEmptySource,
	}
}

func NewInvocationChildEllipsisSource(source string, parameterIndex int, removeOnEmpty bool, onEmptySource string) *InvocationChildEllipsis {
	a := NewInvocationChildEllipsis(ast.NoHandle, parameterIndex, removeOnEmpty, onEmptySource)
	a.source = source
	return a
}

func (a *InvocationChildEllipsis) Invocation() ast.Handle { return a.invocation }
func (a *InvocationChildEllipsis) IsRemoveOnEmpty() bool  { return a.removeOnEmpty }

func (a *InvocationChildEllipsis) Statement() ast.Handle {
	return a.statementOf(a.invocation)
}

func (a *InvocationChildEllipsis) Source() (string, error) {
	return a.sourceOf(a.invocation)
}

func (a *InvocationChildEllipsis) Add(j *model.JavaInfo, target editor.StatementTarget, leadingComments []string) error {
	if err := a.SetJavaInfo(j); err != nil {
		return err
	}
	if !a.invocation.IsValid() {
		a.invocation = findParentInvocation(j.Parent(), TemplateMethod(a.source))
	}
	if a.invocation.IsValid() {
		args := a.editor.Arguments(a.invocation)
		if len(representingIndexes(j, args, a.parameterIndex)) == 0 {
			ref, err := j.Variable().ReferenceExpression(editor.AtNode(a.invocation))
			if err != nil {
				return fmt.Errorf("add %s: %w", j, err)
			}
			if _, err := a.editor.InsertArgument(a.invocation, len(args), ref); err != nil {
				return fmt.Errorf("add %s: %w", j, err)
			}
		}
	} else {
		invocation, err := addTemplateStatement(j, a.source, target, leadingComments)
		if err != nil {
			return err
		}
		a.invocation = invocation
	}
	setInModelNoCompound(a)
	return nil
}

// Remove drops the child from the varargs run, scanning from the right so
// that the remaining indexes stay valid, then applies the empty policy.
func (a *InvocationChildEllipsis) Remove() (bool, error) {
	if a.editor.IsDangling(a.invocation) {
		return a.remove(a)
	}
	args := a.editor.Arguments(a.invocation)
	indexes := representingIndexes(a.javaInfo, args, a.parameterIndex)
	for i := len(indexes) - 1; i >= 0; i-- {
		if err := a.editor.RemoveArgument(a.invocation, indexes[i]); err != nil {
			return false, fmt.Errorf("remove %s: %w", a.javaInfo, err)
		}
	}
	if len(indexes) > 0 && len(a.editor.Arguments(a.invocation)) <= a.parameterIndex {
		action := whenEmpty(a.removeOnEmpty, a.editor.IsStandaloneStatement(a.invocation), true, a.parameterIndex, a.onEmptySource)
		if err := applyEmpty(&a.Base, action, a.invocation, a.onEmptySource); err != nil {
			return false, err
		}
	}
	return a.remove(a)
}

func (a *InvocationChildEllipsis) Copy() (model.Association, error) {
	if a.source == "" {
		return nil, model.ErrUnsupported
	}
	return NewInvocationChildEllipsisSource(a.source, a.parameterIndex, a.removeOnEmpty, a.onEmptySource), nil
}

// removeElements drops the elements of array that refer to the bound
// component and applies the empty policy on behalf of owner, the call the
// array belongs to.
func removeElements(b *Base, array, owner ast.Handle, removeOnEmpty, ellipsis bool, parameterIndex int, onEmptySource string) error {
	if !array.IsValid() || b.editor.IsDangling(array) {
		return nil
	}
	indexes := representingIndexes(b.javaInfo, b.editor.ArrayElements(array), 0)
	for i := len(indexes) - 1; i >= 0; i-- {
		if err := b.editor.RemoveArrayElement(array, indexes[i]); err != nil {
			return fmt.Errorf("remove %s: %w", b.javaInfo, err)
		}
	}
	if len(indexes) == 0 || len(b.editor.ArrayElements(array)) > 0 {
		return nil
	}
	standalone := owner.IsValid() && b.editor.IsStandaloneStatement(owner)
	action := whenEmpty(removeOnEmpty, standalone, ellipsis, parameterIndex, onEmptySource)
	return applyEmpty(b, action, owner, onEmptySource)
}

func applyEmpty(b *Base, action emptyAction, owner ast.Handle, onEmptySource string) error {
	log.Debugf("%s emptied its collection: %s", b.javaInfo, action)
	switch action {
	case deleteStatement:
		if err := b.editor.RemoveEnclosingStatement(owner); err != nil {
			return fmt.Errorf("remove %s: %w", b.javaInfo, err)
		}
	case replaceCreation:
		if _, err := b.editor.ReplaceExpression(owner, onEmptySource); err != nil {
			return fmt.Errorf("remove %s: %w", b.javaInfo, err)
		}
	}
	return nil
}

func appendElement(ed *editor.Editor, j *model.JavaInfo, array ast.Handle) error {
	ref, err := j.Variable().ReferenceExpression(editor.AtNode(array))
	if err != nil {
		return err
	}
	_, err = ed.InsertArrayElement(array, len(ed.ArrayElements(array)), ref)
	return err
}

func addTemplateStatement(j *model.JavaInfo, source string, target editor.StatementTarget, leadingComments []string) (ast.Handle, error) {
	if source == "" {
		return ast.NoHandle, fmt.Errorf("add %s: no invocation and no template", j)
	}
	src, err := ReplaceTemplates(j, source, target)
	if err != nil {
		return ast.NoHandle, fmt.Errorf("add %s: %w", j, err)
	}
	stmt, err := j.Editor().AddStatement(strings.TrimSuffix(src, ";")+";", target, leadingComments)
	if err != nil {
		return ast.NoHandle, fmt.Errorf("add %s: %w", j, err)
	}
	return j.Editor().Node(stmt).Child(0), nil
}

// TemplateMethod returns the method a "%parent%.name(...)" template calls.
func TemplateMethod(source string) string {
	rest, ok := strings.CutPrefix(source, parentPrefix)
	if !ok {
		return ""
	}
	if i := strings.Index(rest, "("); i >= 0 {
		return strings.TrimSpace(rest[:i])
	}
	return ""
}

// findParentInvocation returns the first call of method on parent.
func findParentInvocation(parent *model.JavaInfo, method string) ast.Handle {
	if parent == nil || method == "" {
		return ast.NoHandle
	}
	tree := parent.Editor().Tree()
	found := ast.NoHandle
	tree.Walk(tree.Root(), func(h ast.Handle) bool {
		if found.IsValid() {
			return false
		}
		n := tree.Node(h)
		if n.Kind == ast.KindCallExpr && n.Name == method {
			if parent.IsRepresentedBy(n.Receiver) || (!n.Receiver.IsValid() && parent.IsRoot()) {
				found = h
				return false
			}
		}
		return true
	})
	return found
}
