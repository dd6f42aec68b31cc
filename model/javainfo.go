// Package model is the component model of a designed class: one JavaInfo
// per component, linked to its parent by an Association and kept in sync
// with the source through an editor.
package model

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java"
	"github.com/dhamidi/formkit/java/ast"
)

var log = commonlog.GetLogger("formkit.model")

var ErrNoAssociation = errors.New("component has no association")

// JavaInfo is one component: an object of the designed class, such as a
// panel or a button, together with the code that creates it, refers to it
// and attaches it to its parent.
type JavaInfo struct {
	editor       *editor.Editor
	descriptions *Descriptions
	class        string
	description  *ComponentDescription

	creation    CreationSupport
	variable    VariableSupport
	association Association

	parent   *JavaInfo
	children []*JavaInfo

	// events is only set on the root.
	events *Events

	deleting bool
	deleted  bool
}

// NewRoot returns the component of the designed class itself.
func NewRoot(ed *editor.Editor, descriptions *Descriptions, class string, decl ast.Handle) *JavaInfo {
	j := NewJavaInfo(ed, descriptions, class, &ThisCreation{Class: decl})
	j.variable = NewThisVariable(j)
	j.events = newEvents()
	return j
}

// NewJavaInfo returns an inline component; callers set a variable support
// when the component has a name.
func NewJavaInfo(ed *editor.Editor, descriptions *Descriptions, class string, creation CreationSupport) *JavaInfo {
	j := &JavaInfo{
		editor:       ed,
		descriptions: descriptions,
		class:        class,
		description:  descriptions.Lookup(class),
		creation:     creation,
	}
	j.variable = NewEmptyVariable(j)
	return j
}

func (j *JavaInfo) String() string {
	if j.variable != nil {
		if name := j.variable.Name(); name != "" {
			return name
		}
	}
	return "(" + java.SimpleName(j.class) + ")"
}

func (j *JavaInfo) Editor() *editor.Editor             { return j.editor }
func (j *JavaInfo) Descriptions() *Descriptions        { return j.descriptions }
func (j *JavaInfo) Description() *ComponentDescription { return j.description }
func (j *JavaInfo) Class() string                      { return j.class }
func (j *JavaInfo) Creation() CreationSupport          { return j.creation }
func (j *JavaInfo) Variable() VariableSupport          { return j.variable }
func (j *JavaInfo) Association() Association           { return j.association }
func (j *JavaInfo) Parent() *JavaInfo                  { return j.parent }
func (j *JavaInfo) IsDeleting() bool                   { return j.deleting }
func (j *JavaInfo) IsDeleted() bool                    { return j.deleted }

func (j *JavaInfo) SetCreation(c CreationSupport) { j.creation = c }
func (j *JavaInfo) SetVariable(v VariableSupport) { j.variable = v }

// SetAssociation replaces the association slot. Associations maintain it
// themselves while they are added and removed.
// SetAssociation binds a to j and puts j back in source order among its
// siblings, since the association statement may differ from the
// declaration that ordered j so far.
func (j *JavaInfo) SetAssociation(a Association) {
	j.association = a
	if a != nil && j.parent != nil {
		j.parent.sortChildren()
	}
}

func (j *JavaInfo) IsRoot() bool {
	_, ok := j.creation.(*ThisCreation)
	return ok
}

func (j *JavaInfo) Root() *JavaInfo {
	root := j
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Events returns the event queue of the tree j belongs to.
func (j *JavaInfo) Events() *Events {
	root := j.Root()
	if root.events == nil {
		root.events = newEvents()
	}
	return root.events
}

// IsRepresentedBy reports whether the expression h denotes this component:
// its creation, its variable, or a call of its accessor.
func (j *JavaInfo) IsRepresentedBy(h ast.Handle) bool {
	if !h.IsValid() {
		return false
	}
	if j.creation != nil && j.creation.Node() == h {
		return true
	}
	return j.variable != nil && j.variable.IsRepresentedBy(h)
}

func (j *JavaInfo) ChildrenJava() []*JavaInfo {
	return append([]*JavaInfo(nil), j.children...)
}

// ChildrenOfClass returns the children assignable to class.
func (j *JavaInfo) ChildrenOfClass(class string) []*JavaInfo {
	var children []*JavaInfo
	to := java.TypeModel{Name: class}
	for _, c := range j.children {
		if j.editor.ClassPath().IsAssignable(java.TypeModel{Name: c.class}, to) {
			children = append(children, c)
		}
	}
	return children
}

func (j *JavaInfo) ChildRepresentedBy(h ast.Handle) *JavaInfo {
	for _, c := range j.children {
		if c.IsRepresentedBy(h) {
			return c
		}
	}
	return nil
}

// Find returns the component named name in the subtree of j.
func (j *JavaInfo) Find(name string) *JavaInfo {
	if j.String() == name {
		return j
	}
	for _, c := range j.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// AddChild attaches child under j, keeping children in source order.
func (j *JavaInfo) AddChild(child *JavaInfo) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = j
	j.children = append(j.children, child)
	j.sortChildren()
}

func (j *JavaInfo) RemoveChild(child *JavaInfo) {
	for i, c := range j.children {
		if c == child {
			j.children = append(j.children[:i], j.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

func (j *JavaInfo) isAncestorOf(other *JavaInfo) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == j {
			return true
		}
	}
	return false
}

// position is the node that orders j among its siblings. Inside the
// association statement it is the expression standing for j, so children
// sharing one statement, such as array elements, keep their argument order.
func (j *JavaInfo) position() ast.Handle {
	var candidates []ast.Handle
	if j.association != nil {
		stmt := j.association.Statement()
		if stmt.IsValid() && !j.editor.IsDangling(stmt) {
			if h := j.representation(stmt); h.IsValid() {
				return h
			}
		}
		candidates = append(candidates, stmt)
	}
	if j.variable != nil {
		candidates = append(candidates, j.variable.Statement())
	}
	if j.creation != nil {
		candidates = append(candidates, j.creation.Node())
	}
	for _, h := range candidates {
		if h.IsValid() && !j.editor.IsDangling(h) {
			return h
		}
	}
	return ast.NoHandle
}

// representation returns the first node under h that represents j.
func (j *JavaInfo) representation(h ast.Handle) ast.Handle {
	found := ast.NoHandle
	j.editor.Tree().Walk(h, func(n ast.Handle) bool {
		if found.IsValid() {
			return false
		}
		if j.IsRepresentedBy(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

func (j *JavaInfo) sortChildren() {
	positions := make(map[*JavaInfo]ast.Handle, len(j.children))
	for _, c := range j.children {
		p := c.position()
		if !p.IsValid() {
			return
		}
		positions[c] = p
	}
	tree := j.editor.Tree()
	sort.SliceStable(j.children, func(a, b int) bool {
		return tree.Precedes(positions[j.children[a]], positions[j.children[b]])
	})
}

// CanDelete reports whether the component can be removed from the design.
func (j *JavaInfo) CanDelete() bool {
	if j.IsRoot() || j.deleted {
		return false
	}
	return j.association == nil || j.association.CanDelete()
}

// Delete removes the component, its children and the code behind them. It
// reports false when the component cannot be deleted. Actions deferred
// while deleting run before Delete returns.
func (j *JavaInfo) Delete() (bool, error) {
	if j.deleting || j.deleted {
		return true, nil
	}
	if !j.CanDelete() {
		log.Infof("%s cannot be deleted", j)
		return false, nil
	}
	ev := j.Events()
	ev.beginPass()
	err := j.delete(ev)
	if endErr := ev.endPass(); err == nil {
		err = endErr
	}
	return err == nil, err
}

func (j *JavaInfo) delete(ev *Events) error {
	j.deleting = true
	defer func() { j.deleting = false }()

	if err := ev.fireBeforeDelete(j); err != nil {
		return fmt.Errorf("delete %s: %w", j, err)
	}
	children := j.ChildrenJava()
	for i := len(children) - 1; i >= 0; i-- {
		if children[i].deleted {
			continue
		}
		if err := children[i].delete(ev); err != nil {
			return err
		}
	}
	if j.association != nil {
		removed, err := j.association.Remove()
		if err != nil {
			return fmt.Errorf("delete %s: %w", j, err)
		}
		if !removed {
			log.Infof("association of %s stays in place", j)
		}
	}
	if err := j.removeReferences(); err != nil {
		return fmt.Errorf("delete %s: %w", j, err)
	}
	if err := j.variable.Delete(); err != nil {
		return fmt.Errorf("delete %s: %w", j, err)
	}
	if j.parent != nil {
		j.parent.RemoveChild(j)
	}
	j.deleted = true
	log.Debugf("deleted %s", j)
	return nil
}

// removeReferences removes the expression statements that still mention
// the component, such as property setter calls.
func (j *JavaInfo) removeReferences() error {
	tree := j.editor.Tree()
	var stmts []ast.Handle
	tree.Walk(tree.Root(), func(h ast.Handle) bool {
		if tree.Kind(h) != ast.KindExprStmt {
			return true
		}
		tree.Walk(h, func(e ast.Handle) bool {
			if j.IsRepresentedBy(e) {
				stmts = append(stmts, h)
				return false
			}
			return true
		})
		return false
	})
	seen := make(map[ast.Handle]bool)
	for _, stmt := range stmts {
		if seen[stmt] {
			continue
		}
		seen[stmt] = true
		if err := j.editor.RemoveEnclosingStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// MoveTo moves the component under newParent, placing its code at target.
// Within the same parent the association moves its statement. Otherwise
// the association is removed and association, which must not be nil, is
// added for the new parent; an association that stays partly in place is
// re-pointed at newParent instead. MoveTo reports false when a move gate
// vetoed the move.
func (j *JavaInfo) MoveTo(newParent *JavaInfo, target editor.StatementTarget, association Association) (bool, error) {
	if j.parent == nil || newParent == nil {
		return false, fmt.Errorf("move %s: component is not part of a tree", j)
	}
	if j.isAncestorOf(newParent) {
		return false, fmt.Errorf("move %s: %s is inside the moved component", j, newParent)
	}
	if j.association == nil {
		return false, fmt.Errorf("move %s: %w", j, ErrNoAssociation)
	}
	ev := j.Events()
	if !ev.CanMove(j, newParent) {
		log.Infof("move of %s under %s vetoed", j, newParent)
		return false, nil
	}
	ev.beginPass()
	err := j.move(ev, newParent, target, association)
	if endErr := ev.endPass(); err == nil {
		err = endErr
	}
	return err == nil, err
}

func (j *JavaInfo) move(ev *Events, newParent *JavaInfo, target editor.StatementTarget, association Association) error {
	oldParent := j.parent
	if oldParent == newParent {
		if err := j.association.Move(target); err != nil {
			return fmt.Errorf("move %s: %w", j, err)
		}
		oldParent.sortChildren()
		return ev.fireMoved(j, oldParent, newParent)
	}

	if err := j.EnsureVariable(); err != nil {
		return fmt.Errorf("move %s: %w", j, err)
	}
	removed, err := j.association.Remove()
	if err != nil {
		return fmt.Errorf("move %s: %w", j, err)
	}
	if removed {
		if association == nil {
			return fmt.Errorf("move %s: no association for %s", j, newParent)
		}
		newParent.AddChild(j)
		if target, err = j.variable.EnsureInstanceReadyAt(target); err != nil {
			return fmt.Errorf("move %s: %w", j, err)
		}
		if err := association.Add(j, target, nil); err != nil {
			return fmt.Errorf("move %s: %w", j, err)
		}
	} else {
		if stmt := j.variable.Statement(); stmt.IsValid() && !target.IsZero() {
			if err := j.editor.MoveStatement(stmt, target); err != nil {
				return fmt.Errorf("move %s: %w", j, err)
			}
		}
		if err := j.association.SetParent(newParent); err != nil {
			return fmt.Errorf("move %s: %w", j, err)
		}
		newParent.AddChild(j)
	}
	newParent.sortChildren()
	return ev.fireMoved(j, oldParent, newParent)
}

// EnsureVariable gives an inline component a local variable, declared
// right before the statement that uses the component.
func (j *JavaInfo) EnsureVariable() error {
	if _, ok := j.variable.(*EmptyVariable); !ok {
		return nil
	}
	ed := j.editor
	creation := j.creation.Node()
	if !creation.IsValid() || ed.IsDangling(creation) {
		return fmt.Errorf("materialize %s: component has no creation in source", j)
	}
	stmt := ed.EnclosingStatement(creation)
	if !stmt.IsValid() {
		return fmt.Errorf("materialize %s: creation is not inside a statement", j)
	}
	standalone := ed.IsStandaloneStatement(creation)

	typ := java.SimpleName(j.class)
	name := ed.UniqueName(typ)
	decl, err := ed.AddStatement(fmt.Sprintf("%s %s = null;", typ, name), editor.Before(stmt), nil)
	if err != nil {
		return fmt.Errorf("materialize %s: %w", j, err)
	}
	if !standalone {
		if _, err := ed.ReplaceExpression(creation, name); err != nil {
			return fmt.Errorf("materialize %s: %w", j, err)
		}
	}
	declarator := ed.Node(decl).Child(0)
	if err := ed.ReplaceNode(ed.Node(declarator).Child(0), creation); err != nil {
		return fmt.Errorf("materialize %s: %w", j, err)
	}
	if standalone {
		if err := ed.RemoveEnclosingStatement(stmt); err != nil {
			return fmt.Errorf("materialize %s: %w", j, err)
		}
	}
	j.variable = NewLocalVariable(j, declarator)
	log.Debugf("materialized %s", j)
	return nil
}
