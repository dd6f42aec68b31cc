package model

import (
	"errors"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java/ast"
)

var (
	// ErrUnsupported is returned by association variants that do not
	// implement Move, SetParent, Copy or Source.
	ErrUnsupported = errors.New("operation not supported by this association")

	ErrAlreadyBound = errors.New("association is already bound to a component")
	ErrNilJavaInfo  = errors.New("association cannot be bound to a nil component")
)

// Association is the link between a component and its parent, as it is
// written in source. Remove returning false and CanDelete returning false
// are refusals, not failures: the link cannot be broken at that place.
type Association interface {
	JavaInfo() *JavaInfo
	// SetJavaInfo binds the association once. Binding a second time, even to
	// the same component, fails with ErrAlreadyBound.
	SetJavaInfo(j *JavaInfo) error

	CanDelete() bool
	Statement() ast.Handle
	Source() (string, error)
	AddProperties(props []*Property) ([]*Property, error)

	Add(j *JavaInfo, target editor.StatementTarget, leadingComments []string) error
	Move(target editor.StatementTarget) error
	SetParent(parent *JavaInfo) error
	// Remove breaks the link. It reports false when the link stays in place.
	Remove() (bool, error)
	Copy() (Association, error)
}
