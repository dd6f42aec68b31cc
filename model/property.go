package model

import (
	"fmt"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java/ast"
)

// Accessor reads and writes the expression behind a property.
type Accessor interface {
	Expression() ast.Handle
	SetExpression(src string) error
}

type Property struct {
	Title    string
	Owner    *JavaInfo
	Accessor Accessor
}

// Source returns the current expression of the property, or "" when it has
// none.
func (p *Property) Source() string {
	h := p.Accessor.Expression()
	if !h.IsValid() {
		return ""
	}
	return p.Owner.Editor().Source(h)
}

func (p *Property) SetSource(src string) error {
	if err := p.Accessor.SetExpression(src); err != nil {
		return fmt.Errorf("set %s: %w", p.Title, err)
	}
	return nil
}

// InvocationArgumentAccessor binds a property to one argument of a call.
type InvocationArgumentAccessor struct {
	Editor     *editor.Editor
	Invocation ast.Handle
	Index      int
}

func (a *InvocationArgumentAccessor) Expression() ast.Handle {
	args := a.Editor.Arguments(a.Invocation)
	if a.Index < 0 || a.Index >= len(args) {
		return ast.NoHandle
	}
	return args[a.Index]
}

// SetExpression replaces the argument and re-resolves the call, since a
// different argument type can select another overload.
func (a *InvocationArgumentAccessor) SetExpression(src string) error {
	arg := a.Expression()
	if !arg.IsValid() {
		return fmt.Errorf("argument %d of %s does not exist", a.Index, a.Editor.Source(a.Invocation))
	}
	if _, err := a.Editor.ReplaceExpression(arg, src); err != nil {
		return err
	}
	_, err := a.Editor.ResolveBinding(a.Invocation)
	return err
}
