package model

import (
	"github.com/dhamidi/formkit/java/ast"
)

// CreationSupport describes how the object of a component comes into
// existence.
type CreationSupport interface {
	// Node is the expression creating the object, or NoHandle when the
	// object is not created by any expression of its own.
	Node() ast.Handle
	Kind() string
}

// ConstructorCreation is "new T(...)".
type ConstructorCreation struct {
	Creation ast.Handle
}

func NewConstructorCreation(creation ast.Handle) *ConstructorCreation {
	return &ConstructorCreation{Creation: creation}
}

func (c *ConstructorCreation) Node() ast.Handle { return c.Creation }
func (c *ConstructorCreation) Kind() string     { return "constructor" }

// InvocationCreation creates the object through a void call on the parent,
// for example toolbar.addSeparator().
type InvocationCreation struct {
	Invocation ast.Handle
}

func (c *InvocationCreation) Node() ast.Handle { return c.Invocation }
func (c *InvocationCreation) Kind() string     { return "invocation" }

// FactoryCreation creates the object with a static or instance factory
// method returning it.
type FactoryCreation struct {
	Invocation ast.Handle
}

func (c *FactoryCreation) Node() ast.Handle { return c.Invocation }
func (c *FactoryCreation) Kind() string     { return "factory" }

// ImplicitCreation is an object that exists because its parent exists,
// such as a content pane. Accessor is the expression that exposes it, if
// any.
type ImplicitCreation struct {
	Accessor ast.Handle
}

func (c *ImplicitCreation) Node() ast.Handle { return c.Accessor }
func (c *ImplicitCreation) Kind() string     { return "implicit" }

// ImplicitFactoryCreation is an object produced by a factory call as a
// side product of wrapping one of its arguments.
type ImplicitFactoryCreation struct {
	Invocation ast.Handle
	Argument   int
}

func (c *ImplicitFactoryCreation) Node() ast.Handle { return c.Invocation }
func (c *ImplicitFactoryCreation) Kind() string     { return "implicit factory" }

// ThisCreation is the designed class itself.
type ThisCreation struct {
	Class ast.Handle
}

func (c *ThisCreation) Node() ast.Handle { return ast.NoHandle }
func (c *ThisCreation) Kind() string     { return "this" }
