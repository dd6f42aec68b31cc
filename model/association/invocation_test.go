package association

import (
	"testing"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java/ast"
	"github.com/dhamidi/formkit/model"
)

func TestInvocationChildAddFromTemplate(t *testing.T) {
	f := newFixture(t, `
        JButton button = new JButton();
        JPanel panel = new JPanel();`)
	panel := f.local("panel", f.root)
	button := f.local("button", panel)

	a := NewInvocationChildSource("%parent%.add(%child%)")
	target := editor.After(f.statement("JPanel panel = new JPanel();"))
	if err := a.Add(button, target, nil); err != nil {
		t.Fatalf("Failed to add: %v", err)
	}
	f.expectStatements(
		"JButton button = new JButton();",
		"JPanel panel = new JPanel();",
		"panel.add(button);",
	)
	if button.Association() != a {
		t.Errorf("Expected association %v, got %v", a, button.Association())
	}
	src, err := a.Source()
	if err != nil {
		t.Fatalf("Failed to get source: %v", err)
	}
	if src != "panel.add(button)" {
		t.Errorf("Expected source %q, got %q", "panel.add(button)", src)
	}
}

func TestInvocationChildAddWithComments(t *testing.T) {
	f := newFixture(t, `
        JPanel panel = new JPanel();
        JButton button = new JButton();`)
	panel := f.local("panel", f.root)
	button := f.local("button", panel)

	a := NewInvocationChildSource("%parent%.add(%child%);")
	target := editor.After(f.statement("JButton button = new JButton();"))
	if err := a.Add(button, target, []string{"// buttons"}); err != nil {
		t.Fatalf("Failed to add: %v", err)
	}
	if got := f.ed.Source(a.Statement()); got != "// buttons\npanel.add(button);" {
		t.Errorf("Expected statement %q, got %q", "// buttons\npanel.add(button);", got)
	}
}

func TestInvocationChildRejectsTemplateWithoutParent(t *testing.T) {
	f := newFixture(t, `JButton button = new JButton();`)
	button := f.local("button", f.root)
	a := NewInvocationChildSource("add(%child%)")
	if err := a.Add(button, editor.After(f.statement("JButton button = new JButton();")), nil); err == nil {
		t.Error("Expected an error for a template without the parent placeholder")
	}
	if button.Association() != nil {
		t.Errorf("Expected no association, got %v", button.Association())
	}
}

func TestInvocationChildDelete(t *testing.T) {
	f := newFixture(t, `
        JPanel panel = new JPanel();
        JButton button = new JButton();
        button.setText("OK");
        panel.add(button);`)
	panel := f.local("panel", f.root)
	button := f.local("button", panel)
	f.bind(button, NewInvocationChild(f.call("add")))

	deleted, err := button.Delete()
	if err != nil || !deleted {
		t.Fatalf("Expected deletion, got %v, %v", deleted, err)
	}
	f.expectStatements("JPanel panel = new JPanel();")
	if button.Association() != nil {
		t.Errorf("Expected no association, got %v", button.Association())
	}
}

func TestInvocationChildInlineArgument(t *testing.T) {
	f := newFixture(t, `
        JPanel panel = new JPanel();
        panel.add(new JButton());`)
	panel := f.local("panel", f.root)
	button := f.inline(f.newExpr("JButton"), panel)
	a := NewInvocationChild(ast.NoHandle)
	f.bind(button, a)

	if a.Invocation() != f.call("add") {
		t.Fatalf("Expected the enclosing call, got %d", a.Invocation())
	}
	deleted, err := button.Delete()
	if err != nil || !deleted {
		t.Fatalf("Expected deletion, got %v, %v", deleted, err)
	}
	f.expectStatements("JPanel panel = new JPanel();")
}

func TestInvocationChildMoveToOtherParent(t *testing.T) {
	f := newFixture(t, `
        JPanel first = new JPanel();
        JPanel second = new JPanel();
        first.add(new JButton());`)
	first := f.local("first", f.root)
	second := f.local("second", f.root)
	button := f.inline(f.newExpr("JButton"), first)
	f.bind(button, NewInvocationChild(ast.NoHandle))

	target := editor.After(f.statement("JPanel second = new JPanel();"))
	moved, err := button.MoveTo(second, target, NewInvocationChildSource("%parent%.add(%child%)"))
	if err != nil || !moved {
		t.Fatalf("Expected move, got %v, %v", moved, err)
	}
	f.expectStatements(
		"JPanel first = new JPanel();",
		"JPanel second = new JPanel();",
		"JButton jButton = new JButton();",
		"second.add(jButton);",
	)
	if _, ok := button.Variable().(*model.LocalVariable); !ok {
		t.Errorf("Expected a local variable, got %T", button.Variable())
	}
	if button.Parent() != second {
		t.Errorf("Expected parent %s, got %s", second, button.Parent())
	}
}

func TestInvocationChildMoveWithinParent(t *testing.T) {
	f := newFixture(t, `
        JPanel panel = new JPanel();
        JButton a = new JButton();
        JButton b = new JButton();
        panel.add(a);
        panel.add(b);`)
	panel := f.local("panel", f.root)
	a := f.local("a", panel)
	b := f.local("b", panel)
	f.bind(a, NewInvocationChild(f.statementCall("panel.add(a);")))
	f.bind(b, NewInvocationChild(f.statementCall("panel.add(b);")))

	moved, err := b.MoveTo(panel, editor.Before(f.statement("panel.add(a);")), nil)
	if err != nil || !moved {
		t.Fatalf("Expected move, got %v, %v", moved, err)
	}
	f.expectStatements(
		"JPanel panel = new JPanel();",
		"JButton a = new JButton();",
		"JButton b = new JButton();",
		"panel.add(b);",
		"panel.add(a);",
	)
	children := panel.ChildrenJava()
	if len(children) != 2 || children[0] != b {
		t.Errorf("Expected b first, got %v", children)
	}
}

func TestInvocationChildMoveWithConstraints(t *testing.T) {
	f := newFixture(t, `
        JPanel panel = new JPanel();
        JButton button = new JButton();
        panel.add(button, new BorderLayout());
        JButton other = new JButton();`)
	panel := f.local("panel", f.root)
	button := f.local("button", panel)
	constraints := f.inline(f.newExpr("BorderLayout"), button)
	a := NewInvocationChild(f.call("add"))
	f.bind(button, a)
	f.bind(constraints, NewEmpty())

	if err := a.Move(editor.After(f.statement("JButton other = new JButton();"))); err != nil {
		t.Fatalf("Failed to move: %v", err)
	}
	f.expectStatements(
		"JPanel panel = new JPanel();",
		"JButton button = new JButton();",
		"JButton other = new JButton();",
		"panel.add(button, new BorderLayout());",
	)
}

func TestInvocationChildProperties(t *testing.T) {
	f := newFixture(t, `
        JPanel panel = new JPanel();
        JButton button = new JButton();
        panel.add(button, "North");`)
	panel := f.local("panel", f.root)
	button := f.local("button", panel)
	a := NewInvocationChild(f.call("add"))
	f.bind(button, a)

	props, err := a.AddProperties(nil)
	if err != nil {
		t.Fatalf("Failed to get properties: %v", err)
	}
	if len(props) != 1 {
		t.Fatalf("Expected 1 property, got %d", len(props))
	}
	p := props[0]
	if p.Title != "constraints" {
		t.Errorf("Expected title %q, got %q", "constraints", p.Title)
	}
	if p.Source() != `"North"` {
		t.Errorf("Expected source %q, got %q", `"North"`, p.Source())
	}

	if err := p.SetSource(`"South"`); err != nil {
		t.Fatalf("Failed to set property: %v", err)
	}
	f.expectStatements(
		"JPanel panel = new JPanel();",
		"JButton button = new JButton();",
		`panel.add(button, "South");`,
	)

	again, err := a.AddProperties(nil)
	if err != nil {
		t.Fatalf("Failed to get properties: %v", err)
	}
	if len(again) != 1 || again[0] != p {
		t.Error("Expected properties to be cached per signature")
	}
}

func TestInvocationChildPropertyTitleFromDescription(t *testing.T) {
	desc := &model.ComponentDescription{
		Class: "Container",
		Methods: []*model.MethodDescription{{
			Name: "add",
			Parameters: []model.ParameterDescription{
				{Type: "Component", Child: true},
				{Type: "Object", Name: "placement"},
			},
		}},
	}
	f := newFixture(t, `
        JPanel panel = new JPanel();
        JButton button = new JButton();
        panel.add(button, "North");`, desc)
	panel := f.local("panel", f.root)
	button := f.local("button", panel)
	a := NewInvocationChild(f.call("add"))
	f.bind(button, a)

	props, err := a.AddProperties(nil)
	if err != nil {
		t.Fatalf("Failed to get properties: %v", err)
	}
	if len(props) != 1 || props[0].Title != "placement" {
		t.Errorf("Expected one property titled %q, got %v", "placement", props)
	}
}

func TestInvocationChildCopy(t *testing.T) {
	f := newFixture(t, `
        JPanel panel = new JPanel();
        JButton button = new JButton();
        panel.add(button, BorderLayout.NORTH);`)
	panel := f.local("panel", f.root)
	button := f.local("button", panel)
	a := NewInvocationChild(f.call("add"))
	f.bind(button, a)

	c, err := a.Copy()
	if err != nil {
		t.Fatalf("Failed to copy: %v", err)
	}
	copied, ok := c.(*InvocationChild)
	if !ok {
		t.Fatalf("Expected *InvocationChild, got %T", c)
	}
	if want := "%parent%.add(%child%, BorderLayout.NORTH)"; copied.source != want {
		t.Errorf("Expected template %q, got %q", want, copied.source)
	}
	if copied.JavaInfo() != nil {
		t.Error("Expected the copy to be unbound")
	}
}

func TestInvocationSecondaryDeleteGate(t *testing.T) {
	t.Run("reduced overload exists", func(t *testing.T) {
		f := newFixture(t, `
            JButton button = new JButton();
            Tips tips = new Tips();
            tips.register(button, "hi");`)
		button := f.local("button", f.root)
		f.local("tips", f.root)
		a := NewInvocationSecondary(f.call("register"))
		f.bind(button, a)

		if !a.CanDelete() {
			t.Fatal("Expected the call to be reducible")
		}
		removed, err := a.Remove()
		if err != nil || !removed {
			t.Fatalf("Expected removal, got %v, %v", removed, err)
		}
		f.expectStatements(
			"JButton button = new JButton();",
			"Tips tips = new Tips();",
			`tips.register("hi");`,
		)
	})

	t.Run("single overload", func(t *testing.T) {
		f := newFixture(t, `
            JButton button = new JButton();
            GridBagLayout layout = new GridBagLayout();
            layout.setConstraints(button, "c");`)
		button := f.local("button", f.root)
		a := NewInvocationSecondary(f.call("setConstraints"))
		f.bind(button, a)

		if a.CanDelete() {
			t.Error("Expected the call to be irreducible")
		}
		if button.CanDelete() {
			t.Error("Expected the component to be undeletable")
		}
	})

	t.Run("always delete tag", func(t *testing.T) {
		desc := &model.ComponentDescription{
			Class: "GridBagLayout",
			Methods: []*model.MethodDescription{{
				Name:       "setConstraints",
				Parameters: []model.ParameterDescription{{Type: "Component"}, {Type: "Object"}},
				Tags:       map[string]string{model.TagAlwaysDelete: "true"},
			}},
		}
		f := newFixture(t, `
            JButton button = new JButton();
            GridBagLayout layout = new GridBagLayout();
            layout.setConstraints(button, "c");`, desc)
		button := f.local("button", f.root)
		a := NewInvocationSecondary(f.call("setConstraints"))
		f.bind(button, a)

		if !a.CanDelete() {
			t.Fatal("Expected the tagged call to be deletable")
		}
		removed, err := a.Remove()
		if err != nil || !removed {
			t.Fatalf("Expected removal, got %v, %v", removed, err)
		}
		f.expectStatements(
			"JButton button = new JButton();",
			"GridBagLayout layout = new GridBagLayout();",
		)
	})
}

func TestInvocationSecondaryDanglingRemove(t *testing.T) {
	f := newFixture(t, `
        JButton button = new JButton();
        Tips tips = new Tips();
        tips.register(button, "hi");`)
	button := f.local("button", f.root)
	call := f.call("register")
	a := NewInvocationSecondary(call)
	f.bind(button, a)

	if err := f.ed.RemoveEnclosingStatement(call); err != nil {
		t.Fatalf("Failed to remove statement: %v", err)
	}
	removed, err := a.Remove()
	if err != nil || !removed {
		t.Fatalf("Expected a silent removal, got %v, %v", removed, err)
	}
	if button.Association() != nil {
		t.Errorf("Expected no association, got %v", button.Association())
	}
}

func TestInvocationVoid(t *testing.T) {
	f := newFixture(t, `
        Group group = new Group();
        group.clear();
        JButton button = new JButton();`)
	group := f.local("group", f.root)
	f.local("button", f.root)
	separator := model.NewJavaInfo(f.ed, f.descs, "Component", &model.InvocationCreation{Invocation: f.call("clear")})
	group.AddChild(separator)
	a := NewInvocationVoid()
	f.bind(separator, a)

	if a.Invocation() != f.call("clear") {
		t.Fatalf("Expected invocation %d, got %d", f.call("clear"), a.Invocation())
	}
	if err := a.Move(editor.After(f.statement("JButton button = new JButton();"))); err != nil {
		t.Fatalf("Failed to move: %v", err)
	}
	f.expectStatements(
		"Group group = new Group();",
		"JButton button = new JButton();",
		"group.clear();",
	)

	deleted, err := separator.Delete()
	if err != nil || !deleted {
		t.Fatalf("Expected deletion, got %v, %v", deleted, err)
	}
	f.expectStatements(
		"Group group = new Group();",
		"JButton button = new JButton();",
	)
}
