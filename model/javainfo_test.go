package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java"
	"github.com/dhamidi/formkit/java/ast"
	"github.com/dhamidi/formkit/model"
	"github.com/dhamidi/formkit/model/association"
)

const toolkit = `
class Component {}
class Container extends Component {
    public void add(Component c) {}
}
class JPanel extends Container {
    public JPanel() {}
}
class JButton extends Component {
    public JButton() {}
    public void setText(String text) {}
}
`

type design struct {
	t     *testing.T
	ed    *editor.Editor
	descs *model.Descriptions
	root  *model.JavaInfo
}

func newDesign(t *testing.T, body string) *design {
	t.Helper()
	models, err := java.ClassModelsFromSource([]byte(toolkit))
	if err != nil {
		t.Fatalf("Failed to parse toolkit: %v", err)
	}
	classes := java.NewClassPath(models...)
	ed, err := editor.Parse([]byte("class Form extends JPanel {\n    void init() {\n"+body+"\n    }\n}\n"), classes)
	if err != nil {
		t.Fatalf("Failed to parse form: %v", err)
	}
	classes.Add(java.ClassModelsFromTree(ed.Tree())...)
	d := &design{t: t, ed: ed, descs: model.NewDescriptions(classes)}
	decl := d.find(ast.KindClassDecl, "Form")
	d.root = model.NewRoot(ed, d.descs, "Form", decl)
	if err := association.NewRoot().Add(d.root, editor.StatementTarget{}, nil); err != nil {
		t.Fatalf("Failed to bind root: %v", err)
	}
	return d
}

func (d *design) find(kind ast.NodeKind, name string) ast.Handle {
	d.t.Helper()
	tree := d.ed.Tree()
	found := ast.NoHandle
	tree.Walk(tree.Root(), func(h ast.Handle) bool {
		if found.IsValid() {
			return false
		}
		if n := tree.Node(h); n.Kind == kind && (n.Name == name || n.Type == name) {
			found = h
			return false
		}
		return true
	})
	if !found.IsValid() {
		d.t.Fatalf("Expected a %s %s in:\n%s", kind, name, d.ed.Bytes())
	}
	return found
}

func (d *design) local(name string, parent *model.JavaInfo) *model.JavaInfo {
	d.t.Helper()
	decl := d.find(ast.KindVarDeclarator, name)
	typ := d.ed.Node(d.ed.Tree().Parent(decl)).Type
	j := model.NewJavaInfo(d.ed, d.descs, typ, model.NewConstructorCreation(d.ed.Node(decl).Child(0)))
	j.SetVariable(model.NewLocalVariable(j, decl))
	parent.AddChild(j)
	return j
}

func (d *design) body() string {
	d.t.Helper()
	method := d.find(ast.KindMethodDecl, "init")
	var stmts []string
	for _, stmt := range d.ed.Node(d.ed.Node(method).Body).Children {
		stmts = append(stmts, d.ed.Source(stmt))
	}
	return strings.Join(stmts, "\n")
}

func (d *design) expectBody(want ...string) {
	d.t.Helper()
	if got := d.body(); got != strings.Join(want, "\n") {
		d.t.Errorf("Expected body:\n%s\ngot:\n%s", strings.Join(want, "\n"), got)
	}
}

func TestEnsureVariable(t *testing.T) {
	t.Run("argument", func(t *testing.T) {
		d := newDesign(t, `
        JPanel panel = new JPanel();
        panel.add(new JButton());`)
		panel := d.local("panel", d.root)
		button := model.NewJavaInfo(d.ed, d.descs, "JButton", model.NewConstructorCreation(d.find(ast.KindNewExpr, "JButton")))
		panel.AddChild(button)

		if err := button.EnsureVariable(); err != nil {
			t.Fatalf("Failed to ensure variable: %v", err)
		}
		if button.String() != "jButton" {
			t.Errorf("Expected variable jButton, got %s", button)
		}
		d.expectBody(
			"JPanel panel = new JPanel();",
			"JButton jButton = new JButton();",
			"panel.add(jButton);",
		)
	})

	t.Run("standalone", func(t *testing.T) {
		d := newDesign(t, `new JButton();`)
		button := model.NewJavaInfo(d.ed, d.descs, "JButton", model.NewConstructorCreation(d.find(ast.KindNewExpr, "JButton")))
		d.root.AddChild(button)

		if err := button.EnsureVariable(); err != nil {
			t.Fatalf("Failed to ensure variable: %v", err)
		}
		d.expectBody("JButton jButton = new JButton();")
	})

	t.Run("named", func(t *testing.T) {
		d := newDesign(t, `JButton ok = new JButton();`)
		ok := d.local("ok", d.root)
		v := ok.Variable()
		if err := ok.EnsureVariable(); err != nil {
			t.Fatalf("Failed to ensure variable: %v", err)
		}
		if ok.Variable() != v {
			t.Error("Expected the variable to stay")
		}
		d.expectBody("JButton ok = new JButton();")
	})

	t.Run("name taken", func(t *testing.T) {
		d := newDesign(t, `
        JButton jButton = new JButton();
        JPanel panel = new JPanel();
        panel.add(new JButton());`)
		d.local("jButton", d.root)
		panel := d.local("panel", d.root)
		var inline ast.Handle
		tree := d.ed.Tree()
		tree.Walk(tree.Root(), func(h ast.Handle) bool {
			if tree.Kind(h) == ast.KindNewExpr && tree.Node(h).Type == "JButton" {
				inline = h
			}
			return true
		})
		button := model.NewJavaInfo(d.ed, d.descs, "JButton", model.NewConstructorCreation(inline))
		panel.AddChild(button)

		if err := button.EnsureVariable(); err != nil {
			t.Fatalf("Failed to ensure variable: %v", err)
		}
		if button.String() == "jButton" {
			t.Error("Expected a fresh variable name")
		}
	})
}

func TestDeleteRemovesChildrenAndReferences(t *testing.T) {
	d := newDesign(t, `
        JPanel panel = new JPanel();
        JButton ok = new JButton();
        panel.add(ok);
        ok.setText("OK");
        JButton cancel = new JButton();`)
	panel := d.local("panel", d.root)
	ok := d.local("ok", panel)
	if err := association.NewInvocationChild(d.find(ast.KindCallExpr, "add")).Add(ok, editor.StatementTarget{}, nil); err != nil {
		t.Fatalf("Failed to bind: %v", err)
	}
	cancel := d.local("cancel", d.root)

	deleted, err := panel.Delete()
	if err != nil || !deleted {
		t.Fatalf("Expected deletion, got %v, %v", deleted, err)
	}
	if !ok.IsDeleted() || !panel.IsDeleted() {
		t.Error("Expected the panel and its child to be deleted")
	}
	d.expectBody("JButton cancel = new JButton();")

	children := d.root.ChildrenJava()
	if len(children) != 1 || children[0] != cancel {
		t.Errorf("Expected only cancel under the root, got %v", children)
	}
	if again, err := panel.Delete(); err != nil || !again {
		t.Errorf("Expected deleting twice to be a no-op, got %v, %v", again, err)
	}
}

func TestMoveToErrors(t *testing.T) {
	d := newDesign(t, `
        JPanel outer = new JPanel();
        JPanel inner = new JPanel();`)
	outer := d.local("outer", d.root)
	inner := d.local("inner", outer)

	if _, err := outer.MoveTo(inner, editor.StatementTarget{}, association.NewEmpty()); err == nil {
		t.Error("Expected an error for a move into a descendant")
	}
	if _, err := inner.MoveTo(d.root, editor.StatementTarget{}, association.NewEmpty()); !errors.Is(err, model.ErrNoAssociation) {
		t.Errorf("Expected ErrNoAssociation, got %v", err)
	}

	if err := association.NewEmpty().Add(inner, editor.StatementTarget{}, nil); err != nil {
		t.Fatalf("Failed to bind: %v", err)
	}
	d.root.Events().AddMoveGate(func(child, newParent *model.JavaInfo) bool {
		return !newParent.IsRoot()
	})
	moved, err := inner.MoveTo(d.root, editor.StatementTarget{}, association.NewEmpty())
	if err != nil {
		t.Fatalf("Failed to move: %v", err)
	}
	if moved {
		t.Error("Expected the gate to veto the move")
	}
	if inner.Parent() != outer {
		t.Errorf("Expected inner to stay under outer, got %s", inner.Parent())
	}
}

func TestChildrenInSourceOrder(t *testing.T) {
	d := newDesign(t, `
        JButton a = new JButton();
        JPanel b = new JPanel();
        JButton c = new JButton();`)
	c := d.local("c", d.root)
	a := d.local("a", d.root)
	b := d.local("b", d.root)

	children := d.root.ChildrenJava()
	if len(children) != 3 || children[0] != a || children[1] != b || children[2] != c {
		t.Errorf("Expected children [a b c], got %v", children)
	}
	buttons := d.root.ChildrenOfClass("JButton")
	if len(buttons) != 2 || buttons[0] != a || buttons[1] != c {
		t.Errorf("Expected buttons [a c], got %v", buttons)
	}
	if d.root.Find("b") != b {
		t.Errorf("Expected to find b, got %v", d.root.Find("b"))
	}
	if d.root.Find("missing") != nil {
		t.Error("Expected no component called missing")
	}
	if c.Root() != d.root || !d.root.IsRoot() || c.IsRoot() {
		t.Error("Expected the root to be the designed class")
	}
}
