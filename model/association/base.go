// Package association implements the ways a component is linked to its
// parent in source: constructor and factory arguments, separate
// invocations, array and varargs elements, links with no source at all, and
// compounds of several of these.
package association

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java"
	"github.com/dhamidi/formkit/java/ast"
	"github.com/dhamidi/formkit/model"
)

var log = commonlog.GetLogger("formkit.association")

// Base holds the binding every association has and provides the default
// behavior of the optional operations. Variants embed it and implement Add
// and Remove themselves.
type Base struct {
	javaInfo     *model.JavaInfo
	editor       *editor.Editor
	descriptions *model.Descriptions
}

func (b *Base) JavaInfo() *model.JavaInfo {
	return b.javaInfo
}

func (b *Base) SetJavaInfo(j *model.JavaInfo) error {
	if j == nil {
		return model.ErrNilJavaInfo
	}
	if b.javaInfo != nil {
		return fmt.Errorf("bind to %s: %w", j, model.ErrAlreadyBound)
	}
	b.javaInfo = j
	b.editor = j.Editor()
	b.descriptions = j.Descriptions()
	return nil
}

func (b *Base) CanDelete() bool {
	return true
}

func (b *Base) Statement() ast.Handle {
	return ast.NoHandle
}

func (b *Base) Source() (string, error) {
	return "", model.ErrUnsupported
}

func (b *Base) AddProperties(props []*model.Property) ([]*model.Property, error) {
	return props, nil
}

func (b *Base) Move(editor.StatementTarget) error {
	return model.ErrUnsupported
}

func (b *Base) SetParent(*model.JavaInfo) error {
	return model.ErrUnsupported
}

func (b *Base) Copy() (model.Association, error) {
	return nil, model.ErrUnsupported
}

// add binds self to j and takes the association slot of j, unless a
// compound holds it.
func (b *Base) add(self model.Association, j *model.JavaInfo) error {
	if err := self.SetJavaInfo(j); err != nil {
		return err
	}
	setInModelNoCompound(self)
	return nil
}

func (b *Base) remove(self model.Association) (bool, error) {
	removeFromModelIfPrimary(self)
	return true, nil
}

func (b *Base) statementOf(h ast.Handle) ast.Handle {
	if b.editor == nil || !h.IsValid() {
		return ast.NoHandle
	}
	return b.editor.EnclosingStatement(h)
}

func (b *Base) sourceOf(h ast.Handle) (string, error) {
	if b.editor == nil || !h.IsValid() {
		return "", model.ErrUnsupported
	}
	return b.editor.Source(h), nil
}

// methodDescription returns the description of the method or constructor
// call is bound to, or nil.
func (b *Base) methodDescription(call ast.Handle) *model.MethodDescription {
	binding, err := b.editor.Binding(call)
	if err != nil {
		return nil
	}
	return b.descriptions.Method(binding.DeclaringClass, binding)
}

func setInModelNoCompound(a model.Association) {
	j := a.JavaInfo()
	if _, ok := j.Association().(*Compound); ok {
		return
	}
	j.SetAssociation(a)
}

// removeFromModelIfPrimary clears the association of the bound component
// when a holds it. Parts of a compound leave the slot alone.
func removeFromModelIfPrimary(a model.Association) {
	j := a.JavaInfo()
	if j != nil && j.Association() == a {
		j.SetAssociation(nil)
	}
}

// representingIndexes returns, in ascending order, the positions of args
// that refer to j, starting at from.
func representingIndexes(j *model.JavaInfo, args []ast.Handle, from int) []int {
	var indexes []int
	for i := from; i < len(args); i++ {
		if j.IsRepresentedBy(args[i]) {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// reducedSignatureExists reports whether the class declaring binding also
// declares an overload without the parameters at which args refer to j.
func reducedSignatureExists(classes *java.ClassPath, binding *java.MethodModel, j *model.JavaInfo, args []ast.Handle) bool {
	params := binding.ParameterTypes()
	skip := make(map[int]bool)
	for _, i := range representingIndexes(j, args, 0) {
		skip[i] = true
	}
	reduced := make([]java.TypeModel, 0, len(params))
	for i, p := range params {
		if !skip[i] {
			reduced = append(reduced, p)
		}
	}
	if len(reduced) == len(params) {
		return true
	}
	if binding.IsConstructor() {
		return classes.FindConstructor(binding.DeclaringClass, reduced) != nil
	}
	return classes.FindMethod(binding.DeclaringClass, binding.Name, reduced) != nil
}

var (
	_ model.Association = (*ConstructorParent)(nil)
	_ model.Association = (*ConstructorChild)(nil)
	_ model.Association = (*FactoryParent)(nil)
	_ model.Association = (*SuperConstructorArgument)(nil)
	_ model.Association = (*InvocationChild)(nil)
	_ model.Association = (*InvocationVoid)(nil)
	_ model.Association = (*InvocationSecondary)(nil)
	_ model.Association = (*Array)(nil)
	_ model.Association = (*InvocationChildArray)(nil)
	_ model.Association = (*InvocationChildEllipsis)(nil)
	_ model.Association = (*ImplicitObject)(nil)
	_ model.Association = (*ImplicitFactoryArgument)(nil)
	_ model.Association = (*Root)(nil)
	_ model.Association = (*Unknown)(nil)
	_ model.Association = (*Empty)(nil)
	_ model.Association = (*WrappedObject)(nil)
	_ model.Association = (*NonVisual)(nil)
	_ model.Association = (*Compound)(nil)
)
