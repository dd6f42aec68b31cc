package association

import (
	"errors"
	"fmt"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java/ast"
	"github.com/dhamidi/formkit/model"
)

// Compound is one link realized by several pieces of code, for example a
// constructor argument together with a follow-up call. It is the primary
// association of its component while its parts are not.
type Compound struct {
	Base
	associations []model.Association
	pending      []model.Association
}

// NewCompound returns a compound of associations. Compounds among them are
// flattened.
func NewCompound(associations ...model.Association) *Compound {
	c := &Compound{}
	for _, a := range associations {
		if nested, ok := a.(*Compound); ok {
			c.associations = append(c.associations, nested.associations...)
			continue
		}
		c.associations = append(c.associations, a)
	}
	return c
}

func (c *Compound) Associations() []model.Association {
	return append([]model.Association(nil), c.associations...)
}

// AddAssociation queues a part that is added on the next SetParent.
func (c *Compound) AddAssociation(a model.Association) {
	c.pending = append(c.pending, a)
}

// SetJavaInfo binds the compound and its parts. Parts already bound to the
// same component are accepted.
func (c *Compound) SetJavaInfo(j *model.JavaInfo) error {
	if err := c.Base.SetJavaInfo(j); err != nil {
		return err
	}
	for _, a := range c.associations {
		switch a.JavaInfo() {
		case nil:
			if err := a.SetJavaInfo(j); err != nil {
				return err
			}
		case j:
		default:
			return fmt.Errorf("bind compound to %s: part is bound to %s: %w", j, a.JavaInfo(), model.ErrAlreadyBound)
		}
	}
	return nil
}

func (c *Compound) CanDelete() bool {
	for _, a := range c.associations {
		if !a.CanDelete() {
			return false
		}
	}
	return true
}

func (c *Compound) Statement() ast.Handle {
	if len(c.associations) == 0 {
		return ast.NoHandle
	}
	return c.associations[0].Statement()
}

func (c *Compound) Source() (string, error) {
	if len(c.associations) == 0 {
		return "", model.ErrUnsupported
	}
	return c.associations[0].Source()
}

// Add adds the parts in order, each after the previous one. Only the first
// part gets the leading comments.
func (c *Compound) Add(j *model.JavaInfo, target editor.StatementTarget, leadingComments []string) error {
	for i, a := range c.associations {
		comments := leadingComments
		if i > 0 {
			comments = nil
		}
		if err := a.Add(j, target, comments); err != nil {
			return err
		}
		if stmt := a.Statement(); stmt.IsValid() {
			target = editor.After(stmt)
		}
	}
	if err := c.SetJavaInfo(j); err != nil {
		return err
	}
	j.SetAssociation(c)
	return nil
}

// Remove removes every part it can. The compound leaves the component only
// when no part is left; otherwise Remove reports false and the component
// keeps the compound with the remaining parts.
func (c *Compound) Remove() (bool, error) {
	remaining := c.associations[:0:0]
	for i, a := range c.associations {
		removed, err := a.Remove()
		if err != nil {
			c.associations = append(remaining, c.associations[i:]...)
			return false, err
		}
		if !removed {
			remaining = append(remaining, a)
		}
	}
	c.associations = remaining
	if len(c.associations) > 0 {
		log.Debugf("%s keeps %d association part(s)", c.javaInfo, len(c.associations))
		return false, nil
	}
	removeFromModelIfPrimary(c)
	return true, nil
}

// Move moves every part that supports moving, each after the previous one.
func (c *Compound) Move(target editor.StatementTarget) error {
	moved := false
	for _, a := range c.associations {
		err := a.Move(target)
		if errors.Is(err, model.ErrUnsupported) {
			continue
		}
		if err != nil {
			return err
		}
		moved = true
		if stmt := a.Statement(); stmt.IsValid() {
			target = editor.After(stmt)
		}
	}
	if !moved {
		return model.ErrUnsupported
	}
	return nil
}

// SetParent re-points every part at parent, then attaches the component
// to parent and adds the queued parts after the statement of the compound.
func (c *Compound) SetParent(parent *model.JavaInfo) error {
	for _, a := range c.associations {
		if err := a.SetParent(parent); err != nil {
			return err
		}
	}
	if len(c.pending) > 0 && c.javaInfo.Parent() != parent {
		parent.AddChild(c.javaInfo)
	}
	for len(c.pending) > 0 {
		a := c.pending[0]
		target := editor.BlockEnd(c.block(parent))
		if stmt := c.Statement(); stmt.IsValid() {
			target = editor.After(stmt)
		}
		if err := a.Add(c.javaInfo, target, nil); err != nil {
			return err
		}
		c.pending = c.pending[1:]
		c.associations = append(c.associations, a)
	}
	return nil
}

// block is the block the component's statements live in, used when the
// compound has no statement to anchor on.
func (c *Compound) block(parent *model.JavaInfo) ast.Handle {
	tree := c.editor.Tree()
	for _, h := range []ast.Handle{c.javaInfo.Variable().Statement(), parent.Variable().Statement()} {
		if b := tree.Enclosing(h, ast.KindBlock); b.IsValid() {
			return b
		}
	}
	return ast.NoHandle
}
