package association

import (
	"fmt"
	"strings"

	"github.com/dhamidi/formkit/java/ast"
	"github.com/dhamidi/formkit/model"
)

// Object is the association a container declares for a new child, with
// whether the child requires it. A nil association asks for none.
type Object struct {
	association model.Association
	required    bool
	title       string
}

func NewObject(title string, association model.Association, required bool) Object {
	return Object{association: association, required: required, title: title}
}

func (o Object) Association() model.Association { return o.association }
func (o Object) IsRequired() bool               { return o.required }
func (o Object) Title() string                  { return o.title }
func (o Object) String() string                 { return o.title }

func EmptyObject() Object {
	return NewObject("empty", NewEmpty(), false)
}

func NoAssociationObject() Object {
	return NewObject("no association", nil, false)
}

func ConstructorChildObject() Object {
	return NewObject("constructor child", NewConstructorChild(ast.NoHandle), true)
}

func InvocationChildObject(source string, required bool) Object {
	return NewObject(source, NewInvocationChildSource(source), required)
}

// InvocationChildNullObject is for a child created inline as an argument of
// an existing invocation.
func InvocationChildNullObject() Object {
	return NewObject("invocation child", NewInvocationChild(ast.NoHandle), true)
}

func InvocationVoidObject() Object {
	return NewObject("void invocation", NewInvocationVoid(), true)
}

func NonVisualObject() Object {
	return NewObject("non-visual", NewNonVisual(), false)
}

// Factory makes a fresh Object on every call. Containers hand it out so
// that each child gets its own association.
type Factory func() Object

func NoFactory() Factory {
	return NoAssociationObject
}

func EmptyFactory() Factory {
	return EmptyObject
}

func InvocationChildFactory(source string, required bool) Factory {
	return func() Object {
		return InvocationChildObject(source, required)
	}
}

func InvocationChildNullFactory() Factory {
	return InvocationChildNullObject
}

func InvocationVoidFactory() Factory {
	return InvocationVoidObject
}

// Association kinds accepted by FactoryFromSpec.
const (
	KindEmpty                   = "empty"
	KindNone                    = "none"
	KindNonVisual               = "nonVisual"
	KindConstructorParent       = "constructorParent"
	KindConstructorChild        = "constructorChild"
	KindInvocationChild         = "invocationChild"
	KindInvocationChildNull     = "invocationChildNull"
	KindInvocationVoid          = "invocationVoid"
	KindInvocationChildArray    = "invocationChildArray"
	KindInvocationChildEllipsis = "invocationChildEllipsis"
)

// FactoryFromSpec returns the factory for an association declared in a
// component description.
func FactoryFromSpec(spec *model.AssociationSpec) (Factory, error) {
	if spec == nil {
		return NoFactory(), nil
	}
	titled := func(title string, newAssociation func() model.Association) Factory {
		if spec.Title != "" {
			title = spec.Title
		}
		return func() Object {
			return NewObject(title, newAssociation(), spec.Required)
		}
	}
	requireTemplate := func() error {
		if !strings.HasPrefix(spec.Source, parentPrefix) {
			return fmt.Errorf("association %s: source %q must start with %q", spec.Kind, spec.Source, parentPrefix)
		}
		return nil
	}

	switch spec.Kind {
	case KindEmpty:
		return titled("empty", func() model.Association { return NewEmpty() }), nil
	case KindNone:
		return NoFactory(), nil
	case KindNonVisual:
		return titled("non-visual", func() model.Association { return NewNonVisual() }), nil
	case KindConstructorParent:
		return titled("constructor parent", func() model.Association { return NewConstructorParent() }), nil
	case KindConstructorChild:
		return titled("constructor child", func() model.Association { return NewConstructorChild(ast.NoHandle) }), nil
	case KindInvocationChildNull:
		return titled("invocation child", func() model.Association { return NewInvocationChild(ast.NoHandle) }), nil
	case KindInvocationVoid:
		return titled("void invocation", func() model.Association { return NewInvocationVoid() }), nil
	case KindInvocationChild:
		if spec.Source == "" {
			return titled("invocation child", func() model.Association { return NewInvocationChild(ast.NoHandle) }), nil
		}
		if err := requireTemplate(); err != nil {
			return nil, err
		}
		return titled(spec.Source, func() model.Association { return NewInvocationChildSource(spec.Source) }), nil
	case KindInvocationChildArray:
		if err := requireTemplate(); err != nil {
			return nil, err
		}
		return titled(spec.Source, func() model.Association {
			return NewInvocationChildArraySource(spec.Source, spec.ParameterIndex, spec.RemoveOnEmpty)
		}), nil
	case KindInvocationChildEllipsis:
		if err := requireTemplate(); err != nil {
			return nil, err
		}
		return titled(spec.Source, func() model.Association {
			return NewInvocationChildEllipsisSource(spec.Source, spec.ParameterIndex, spec.RemoveOnEmpty, spec.OnEmptySource)
		}), nil
	}
	return nil, fmt.Errorf("unknown association kind %q", spec.Kind)
}
