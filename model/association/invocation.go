package association

import (
	"fmt"
	"strings"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java/ast"
	"github.com/dhamidi/formkit/model"
)

const parentPrefix = parentToken + "."

// InvocationChild is a child passed to a method of its parent in a
// statement of its own: panel.add(button, BorderLayout.NORTH).
type InvocationChild struct {
	Base
	source     string
	invocation ast.Handle
	properties map[string][]*model.Property
}

// NewInvocationChild returns the association for an existing invocation.
// With NoHandle, Add looks for the invocation that has the inline child as
// an argument.
func NewInvocationChild(invocation ast.Handle) *InvocationChild {
	return &InvocationChild{invocation: invocation}
}

// NewInvocationChildSource returns an association that Add writes from
// source, a template starting with "%parent%.".
func NewInvocationChildSource(source string) *InvocationChild {
	return &InvocationChild{source: source}
}

func (a *InvocationChild) Invocation() ast.Handle {
	return a.invocation
}

func (a *InvocationChild) Statement() ast.Handle {
	return a.statementOf(a.invocation)
}

func (a *InvocationChild) Source() (string, error) {
	return a.sourceOf(a.invocation)
}

func (a *InvocationChild) Add(j *model.JavaInfo, target editor.StatementTarget, leadingComments []string) error {
	if a.source != "" && !strings.HasPrefix(a.source, parentPrefix) {
		return fmt.Errorf("invocation child template %q must start with %q", a.source, parentPrefix)
	}
	if err := a.SetJavaInfo(j); err != nil {
		return err
	}
	if a.source != "" {
		src, err := ReplaceTemplates(j, a.source, target)
		if err != nil {
			return fmt.Errorf("add %s: %w", j, err)
		}
		stmt, err := a.editor.AddStatement(strings.TrimSuffix(src, ";")+";", target, leadingComments)
		if err != nil {
			return fmt.Errorf("add %s: %w", j, err)
		}
		a.invocation = a.editor.Node(stmt).Child(0)
	} else if !a.invocation.IsValid() {
		a.invocation = a.editor.Tree().Enclosing(j.Creation().Node(), ast.KindCallExpr)
		if !a.invocation.IsValid() {
			return fmt.Errorf("add %s: inline creation is not an invocation argument", j)
		}
	}
	setInModelNoCompound(a)
	return nil
}

// Move relocates the invocation statement. When the second of two
// arguments is a constraints component of the child, that component is
// made ready at target first and the invocation follows it.
func (a *InvocationChild) Move(target editor.StatementTarget) error {
	args := a.editor.Arguments(a.invocation)
	if len(args) == 2 && a.javaInfo.IsRepresentedBy(args[0]) {
		if constraints := a.javaInfo.ChildRepresentedBy(args[1]); constraints != nil {
			var err error
			if target, err = constraints.Variable().EnsureInstanceReadyAt(target); err != nil {
				return fmt.Errorf("move %s: %w", a.javaInfo, err)
			}
		}
	}
	stmt := a.Statement()
	if !stmt.IsValid() {
		return fmt.Errorf("move %s: invocation is not inside a statement", a.javaInfo)
	}
	return a.editor.MoveStatement(stmt, target)
}

// Remove deletes the invocation statement. An inline parent gets a
// variable first so that other code can still refer to it.
func (a *InvocationChild) Remove() (bool, error) {
	if parent := a.javaInfo.Parent(); parent != nil && !parent.IsDeleting() && !a.editor.IsDangling(parent.Creation().Node()) {
		if err := parent.EnsureVariable(); err != nil {
			return false, fmt.Errorf("remove %s: %w", a.javaInfo, err)
		}
	}
	if !a.editor.IsDangling(a.invocation) {
		if err := a.editor.RemoveEnclosingStatement(a.invocation); err != nil {
			return false, fmt.Errorf("remove %s: %w", a.javaInfo, err)
		}
	}
	return a.remove(a)
}

// AddProperties exposes every argument other than the child, such as
// layout constraints, as a property. Properties are built once per bound
// method signature.
func (a *InvocationChild) AddProperties(props []*model.Property) ([]*model.Property, error) {
	binding, err := a.editor.Binding(a.invocation)
	if err != nil {
		return props, fmt.Errorf("properties of %s: %w", a.javaInfo, err)
	}
	signature := binding.Signature()
	cached, ok := a.properties[signature]
	if !ok {
		desc := a.descriptions.Method(binding.DeclaringClass, binding)
		args := a.editor.Arguments(a.invocation)
		for i, p := range binding.Parameters {
			if i < len(args) && a.javaInfo.IsRepresentedBy(args[i]) {
				continue
			}
			title := p.Name
			if desc != nil && i < len(desc.Parameters) && desc.Parameters[i].Name != "" {
				title = desc.Parameters[i].Name
			}
			if title == "" {
				title = fmt.Sprintf("arg%d", i)
			}
			cached = append(cached, &model.Property{
				Title: title,
				Owner: a.javaInfo,
				Accessor: &model.InvocationArgumentAccessor{
					Editor:     a.editor,
					Invocation: a.invocation,
					Index:      i,
				},
			})
		}
		if a.properties == nil {
			a.properties = make(map[string][]*model.Property)
		}
		a.properties[signature] = cached
	}
	return append(props, cached...), nil
}

// Copy returns a template association. Without a template of its own the
// template is derived from the invocation.
func (a *InvocationChild) Copy() (model.Association, error) {
	if a.source != "" {
		return NewInvocationChildSource(a.source), nil
	}
	n := a.editor.Node(a.invocation)
	if n == nil || n.Kind != ast.KindCallExpr {
		return nil, model.ErrUnsupported
	}
	args := make([]string, len(n.Children))
	for i, arg := range n.Children {
		if a.javaInfo.IsRepresentedBy(arg) {
			args[i] = childToken
		} else {
			args[i] = a.editor.Source(arg)
		}
	}
	return NewInvocationChildSource(parentPrefix + n.Name + "(" + strings.Join(args, ", ") + ")"), nil
}

// InvocationVoid is a child created by a call on the parent that returns
// nothing the child is passed to, such as toolbar.addSeparator(). The
// creation of the child is the association.
type InvocationVoid struct {
	Base
}

func NewInvocationVoid() *InvocationVoid {
	return &InvocationVoid{}
}

func (a *InvocationVoid) Invocation() ast.Handle {
	return a.javaInfo.Creation().Node()
}

func (a *InvocationVoid) Statement() ast.Handle {
	return a.statementOf(a.Invocation())
}

func (a *InvocationVoid) Source() (string, error) {
	return a.sourceOf(a.Invocation())
}

func (a *InvocationVoid) Add(j *model.JavaInfo, _ editor.StatementTarget, _ []string) error {
	return a.add(a, j)
}

// Move relocates the invocation statement. A lazily created child is
// placed where its accessor is called.
func (a *InvocationVoid) Move(target editor.StatementTarget) error {
	stmt := a.Statement()
	if lazy, ok := a.javaInfo.Variable().(*model.LazyVariable); ok {
		calls := lazy.AccessorInvocations()
		if len(calls) == 0 {
			return fmt.Errorf("move %s: accessor %s is never called", a.javaInfo, lazy.AccessorName())
		}
		stmt = a.editor.EnclosingStatement(calls[0])
	}
	if !stmt.IsValid() {
		return fmt.Errorf("move %s: invocation is not inside a statement", a.javaInfo)
	}
	return a.editor.MoveStatement(stmt, target)
}

func (a *InvocationVoid) Remove() (bool, error) {
	return a.remove(a)
}

func (a *InvocationVoid) Copy() (model.Association, error) {
	return NewInvocationVoid(), nil
}

// InvocationSecondary is a call that mentions the child and the parent but
// belongs to neither, such as layout.setConstraints(button, constraints).
type InvocationSecondary struct {
	Base
	invocation ast.Handle
}

func NewInvocationSecondary(invocation ast.Handle) *InvocationSecondary {
	return &InvocationSecondary{invocation: invocation}
}

func (a *InvocationSecondary) Invocation() ast.Handle {
	return a.invocation
}

func (a *InvocationSecondary) Statement() ast.Handle {
	return a.statementOf(a.invocation)
}

func (a *InvocationSecondary) Source() (string, error) {
	return a.sourceOf(a.invocation)
}

func (a *InvocationSecondary) Add(j *model.JavaInfo, _ editor.StatementTarget, _ []string) error {
	return a.add(a, j)
}

func (a *InvocationSecondary) alwaysDelete() bool {
	return a.methodDescription(a.invocation).Tag(model.TagAlwaysDelete) == "true"
}

// CanDelete holds for methods tagged to always delete the call, and
// otherwise when the declaring class has an overload without the child.
func (a *InvocationSecondary) CanDelete() bool {
	if a.alwaysDelete() {
		return true
	}
	binding, err := a.editor.Binding(a.invocation)
	if err != nil {
		return false
	}
	return reducedSignatureExists(a.editor.ClassPath(), binding, a.javaInfo, a.editor.Arguments(a.invocation))
}

// Remove drops the child arguments, or the whole call for methods tagged to
// always delete it. A call that is no longer in the tree is left alone.
func (a *InvocationSecondary) Remove() (bool, error) {
	switch {
	case a.editor.IsDangling(a.invocation):
		log.Debugf("remove %s: secondary invocation already gone", a.javaInfo)
	case a.alwaysDelete():
		if err := a.editor.RemoveEnclosingStatement(a.invocation); err != nil {
			return false, fmt.Errorf("remove %s: %w", a.javaInfo, err)
		}
	default:
		indexes := representingIndexes(a.javaInfo, a.editor.Arguments(a.invocation), 0)
		for i := len(indexes) - 1; i >= 0; i-- {
			if err := a.editor.RemoveArgument(a.invocation, indexes[i]); err != nil {
				return false, fmt.Errorf("remove %s: %w", a.javaInfo, err)
			}
		}
		if _, err := a.editor.ResolveBinding(a.invocation); err != nil {
			log.Warningf("remove %s: %s", a.javaInfo, err)
		}
	}
	return a.remove(a)
}
