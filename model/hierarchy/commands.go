package hierarchy

import (
	"errors"
	"fmt"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java"
	"github.com/dhamidi/formkit/java/ast"
	"github.com/dhamidi/formkit/model"
	"github.com/dhamidi/formkit/model/association"
)

var ErrNoChildren = errors.New("component does not accept children")

// ChildAssociation returns the association parent declares for a new
// child.
func (h *Hierarchy) ChildAssociation(parent *model.JavaInfo) (association.Object, error) {
	var spec *model.AssociationSpec
	if desc := parent.Description(); desc != nil {
		spec = desc.ChildAssociation
	}
	factory, err := association.FactoryFromSpec(spec)
	if err != nil {
		return association.Object{}, fmt.Errorf("child association of %s: %w", parent, err)
	}
	o := factory()
	if o.Association() == nil {
		return o, fmt.Errorf("%s: %w", parent, ErrNoChildren)
	}
	return o, nil
}

// DefaultTarget is the end of the block that declares parent. For the root
// it is the end of the first method or constructor body.
func (h *Hierarchy) DefaultTarget(parent *model.JavaInfo) (editor.StatementTarget, error) {
	tree := h.editor.Tree()
	if stmt := parent.Variable().Statement(); stmt.IsValid() && tree.Kind(tree.Parent(stmt)) == ast.KindBlock {
		return editor.BlockEnd(tree.Parent(stmt)), nil
	}
	decl := parent.Root().Creation().(*model.ThisCreation).Class
	for _, member := range tree.Node(decl).Children {
		switch tree.Kind(member) {
		case ast.KindMethodDecl, ast.KindConstructorDecl:
			if body := tree.Node(member).Body; body.IsValid() {
				return editor.BlockEnd(body), nil
			}
		}
	}
	return editor.StatementTarget{}, fmt.Errorf("no place for code of %s", parent)
}

// Add creates a new component of class under parent, declared at target,
// and links it with the association parent declares for children.
func (h *Hierarchy) Add(class string, parent *model.JavaInfo, target editor.StatementTarget) (*model.JavaInfo, error) {
	o, err := h.ChildAssociation(parent)
	if err != nil {
		return nil, err
	}
	a := o.Association()
	if target.IsZero() {
		if target, err = h.DefaultTarget(parent); err != nil {
			return nil, err
		}
	}
	creation := "new " + java.SimpleName(class) + "()"
	switch a.(type) {
	case *association.ConstructorParent:
		ref, err := parent.Variable().ReferenceExpression(editor.AtStatement(target))
		if err != nil {
			return nil, fmt.Errorf("add %s: %w", class, err)
		}
		creation = "new " + java.SimpleName(class) + "(" + ref + ")"
	case *association.ConstructorChild, *association.InvocationVoid:
		return nil, fmt.Errorf("add %s: %s children cannot be created on their own", class, o.Title())
	}
	ed := h.editor
	typ := java.SimpleName(class)
	name := ed.UniqueName(typ)
	stmt, err := ed.AddStatement(fmt.Sprintf("%s %s = %s;", typ, name, creation), target, nil)
	if err != nil {
		return nil, fmt.Errorf("add %s: %w", class, err)
	}
	declarator := ed.Node(stmt).Child(0)
	j := model.NewJavaInfo(ed, h.descriptions, class, model.NewConstructorCreation(ed.Node(declarator).Child(0)))
	j.SetVariable(model.NewLocalVariable(j, declarator))
	parent.AddChild(j)
	if err := a.Add(j, editor.After(stmt), nil); err != nil {
		parent.RemoveChild(j)
		if rmErr := ed.RemoveEnclosingStatement(stmt); rmErr != nil {
			log.Errorf("add %s: %s", class, rmErr)
		}
		return nil, fmt.Errorf("add %s: %w", class, err)
	}
	log.Infof("added %s under %s", j, parent)
	return j, nil
}

// Move moves child under newParent. A new parent gets the association it
// declares for children; within the same parent only the code moves.
func (h *Hierarchy) Move(child, newParent *model.JavaInfo, target editor.StatementTarget) (bool, error) {
	var a model.Association
	if newParent != child.Parent() {
		o, err := h.ChildAssociation(newParent)
		if err != nil {
			return false, err
		}
		a = o.Association()
		if target.IsZero() {
			if target, err = h.DefaultTarget(newParent); err != nil {
				return false, err
			}
		}
	} else if target.IsZero() {
		return false, fmt.Errorf("move %s: no target within %s", child, newParent)
	}
	return child.MoveTo(newParent, target, a)
}
