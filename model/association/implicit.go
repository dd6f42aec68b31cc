package association

import (
	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java/ast"
	"github.com/dhamidi/formkit/model"
)

// ImplicitObject is a child that exists because its parent exists, such as
// the content pane of a frame. There is no code to undo.
type ImplicitObject struct {
	Base
}

func NewImplicitObject() *ImplicitObject {
	return &ImplicitObject{}
}

func (a *ImplicitObject) Add(j *model.JavaInfo, _ editor.StatementTarget, _ []string) error {
	return a.add(a, j)
}

func (a *ImplicitObject) Remove() (bool, error) {
	return false, nil
}

// ImplicitFactoryArgument is a child passed to a factory call whose result,
// the factory object, is a sibling in the tree. The link has no code of its
// own, but once the child is deleted or moved away the factory call is
// obsolete: the factory object is then deleted after the current pass.
type ImplicitFactoryArgument struct {
	Base
	factory *model.JavaInfo
}

func NewImplicitFactoryArgument(factory *model.JavaInfo) *ImplicitFactoryArgument {
	return &ImplicitFactoryArgument{factory: factory}
}

func (a *ImplicitFactoryArgument) Factory() *model.JavaInfo {
	return a.factory
}

func (a *ImplicitFactoryArgument) SetJavaInfo(j *model.JavaInfo) error {
	if err := a.Base.SetJavaInfo(j); err != nil {
		return err
	}
	ev := j.Events()
	ev.OnBeforeDelete(j, func() error {
		return a.deleteFactoryLater(ev)
	})
	a.watchMove(ev)
	return nil
}

func (a *ImplicitFactoryArgument) watchMove(ev *model.Events) {
	ev.OnMoved(a.javaInfo, func(oldParent, newParent *model.JavaInfo) error {
		if oldParent == newParent {
			a.watchMove(ev)
			return nil
		}
		return a.deleteFactoryLater(ev)
	})
}

func (a *ImplicitFactoryArgument) deleteFactoryLater(ev *model.Events) error {
	return ev.Defer(func() error {
		if a.factory == nil || a.factory.IsDeleted() || a.factory.IsDeleting() {
			return nil
		}
		log.Debugf("deleting %s, factory of %s", a.factory, a.javaInfo)
		_, err := a.factory.Delete()
		return err
	})
}

func (a *ImplicitFactoryArgument) Add(j *model.JavaInfo, _ editor.StatementTarget, _ []string) error {
	return a.add(a, j)
}

func (a *ImplicitFactoryArgument) Remove() (bool, error) {
	return a.remove(a)
}

// Root is the association of the designed class itself.
type Root struct {
	Base
}

func NewRoot() *Root {
	return &Root{}
}

func (a *Root) CanDelete() bool {
	return false
}

func (a *Root) Add(j *model.JavaInfo, _ editor.StatementTarget, _ []string) error {
	return a.add(a, j)
}

func (a *Root) Remove() (bool, error) {
	return false, nil
}

// Unknown is a component whose link to its parent could not be recognized.
// It cannot be deleted since there is no telling which code to remove.
type Unknown struct {
	Base
}

func NewUnknown() *Unknown {
	return &Unknown{}
}

func (a *Unknown) CanDelete() bool {
	return false
}

func (a *Unknown) Add(j *model.JavaInfo, _ editor.StatementTarget, _ []string) error {
	return a.add(a, j)
}

func (a *Unknown) Remove() (bool, error) {
	return a.remove(a)
}

// Empty is a link that is intentionally absent from source: the child is
// only created, never attached. With no code behind it there is nothing to
// remove, so the component keeps it.
type Empty struct {
	Base
}

func NewEmpty() *Empty {
	return &Empty{}
}

func (a *Empty) Add(j *model.JavaInfo, _ editor.StatementTarget, _ []string) error {
	return a.add(a, j)
}

func (a *Empty) Remove() (bool, error) {
	return false, nil
}

// WrappedObject is a component wrapped by another one, the wrapper. Its
// link is the wrapper's link and cannot be broken on its own.
type WrappedObject struct {
	Base
	wrapper *model.JavaInfo
}

func NewWrappedObject(wrapper *model.JavaInfo) *WrappedObject {
	return &WrappedObject{wrapper: wrapper}
}

func (a *WrappedObject) Wrapper() *model.JavaInfo {
	return a.wrapper
}

func (a *WrappedObject) inner() model.Association {
	if a.wrapper == nil {
		return nil
	}
	return a.wrapper.Association()
}

func (a *WrappedObject) CanDelete() bool {
	inner := a.inner()
	return inner != nil && inner.CanDelete()
}

func (a *WrappedObject) Statement() ast.Handle {
	if inner := a.inner(); inner != nil {
		return inner.Statement()
	}
	return ast.NoHandle
}

func (a *WrappedObject) Source() (string, error) {
	if inner := a.inner(); inner != nil {
		return inner.Source()
	}
	return "", model.ErrUnsupported
}

func (a *WrappedObject) SetParent(parent *model.JavaInfo) error {
	if inner := a.inner(); inner != nil {
		return inner.SetParent(parent)
	}
	return model.ErrUnsupported
}

func (a *WrappedObject) Add(j *model.JavaInfo, _ editor.StatementTarget, _ []string) error {
	return a.add(a, j)
}

func (a *WrappedObject) Remove() (bool, error) {
	return false, nil
}

// NonVisual is a bean kept by the designed class that is not part of the
// visual hierarchy, such as a button group or a data source.
type NonVisual struct {
	Base
}

func NewNonVisual() *NonVisual {
	return &NonVisual{}
}

func (a *NonVisual) Add(j *model.JavaInfo, _ editor.StatementTarget, _ []string) error {
	return a.add(a, j)
}

func (a *NonVisual) Remove() (bool, error) {
	return a.remove(a)
}

func (a *NonVisual) Copy() (model.Association, error) {
	return NewNonVisual(), nil
}
