package hierarchy

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java"
	"github.com/dhamidi/formkit/model"
	"github.com/dhamidi/formkit/model/association"
)

const toolkit = `
class Component {}
class Container extends Component {
    public void add(Component c) {}
}
class LayoutManager {}
class BorderLayout extends LayoutManager {
    public BorderLayout() {}
}
class JPanel extends Container {
    public JPanel() {}
    public JPanel(LayoutManager layout) {}
}
class JButton extends Component {
    public JButton() {}
}
class Label extends Component {
    public Label(Container parent) {}
}
class Box extends Container {
    public Box(Container parent) {}
}
class Tips {
    public Tips() {}
    public void register(Component c, String text) {}
    public void register(String text) {}
}
class Group extends Container {
    public Group() {}
    public void setItems(Component... items) {}
}
class Separator extends Component {}
class Toolbar extends Container {
    public Toolbar() {}
    public void addSeparator() {}
}
`

const descriptions = `
<descriptions>
  <component class="Container">
    <association kind="invocationChild" source="%parent%.add(%child%)"/>
    <methods>
      <method name="add"><parameter type="Component" child="true"/></method>
    </methods>
  </component>
  <component class="JButton"/>
  <component class="LayoutManager"/>
  <component class="Label">
    <constructors>
      <constructor><parameter type="Container" parent="true"/></constructor>
    </constructors>
  </component>
  <component class="Box">
    <association kind="constructorParent"/>
    <constructors>
      <constructor><parameter type="Container" parent="true"/></constructor>
    </constructors>
  </component>
  <component class="Tips" non-visual="true">
    <methods>
      <method name="register">
        <parameter type="Component" child="true"/>
        <parameter type="String"/>
      </method>
    </methods>
  </component>
  <component class="Group">
    <association kind="invocationChildEllipsis" source="%parent%.setItems(%child%)" remove-on-empty="true"/>
  </component>
  <component class="Toolbar">
    <methods>
      <method name="addSeparator"><tag name="voidChild" value="Separator"/></method>
    </methods>
  </component>
</descriptions>
`

const form = `class Form extends JPanel {
    private JButton ok = new JButton();
    private Tips tips;

    Form() {
        super(new BorderLayout());
        init();
    }

    void init() {
        JPanel panel = new JPanel();
        add(panel);
        panel.add(ok);
        panel.add(new JButton());
        Label label = new Label(panel);
        tips = new Tips();
        tips.register(ok, "OK");
        Group group = new Group();
        add(group);
        JButton a = new JButton();
        JButton b = new JButton();
        group.setItems(a, b);
        Toolbar bar = new Toolbar();
        add(bar);
        bar.addSeparator();
        JButton stray = new JButton();
    }
}
`

func parse(t *testing.T, source string) *Hierarchy {
	t.Helper()
	models, err := java.ClassModelsFromSource([]byte(toolkit))
	if err != nil {
		t.Fatalf("Failed to parse toolkit: %v", err)
	}
	classes := java.NewClassPath(models...)
	descs := model.NewDescriptions(classes)
	read, warnings, err := model.ReadDescriptions(strings.NewReader(descriptions))
	if err != nil || len(warnings) > 0 {
		t.Fatalf("Failed to read descriptions: %v %v", err, warnings)
	}
	descs.Add(read...)

	ed, err := editor.Parse([]byte(source), classes)
	if err != nil {
		t.Fatalf("Failed to parse source: %v", err)
	}
	classes.Add(java.ClassModelsFromTree(ed.Tree())...)
	h, err := Parse(ed, descs)
	if err != nil {
		t.Fatalf("Failed to parse hierarchy: %v", err)
	}
	return h
}

func names(components []*model.JavaInfo) string {
	parts := make([]string, len(components))
	for i, c := range components {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func expectChildren(t *testing.T, parent *model.JavaInfo, want string) {
	t.Helper()
	if got := names(parent.ChildrenJava()); got != want {
		t.Errorf("Expected children of %s to be %q, got %q", parent, want, got)
	}
}

func TestParse(t *testing.T) {
	h := parse(t, form)
	if len(h.Warnings()) != 0 {
		t.Errorf("Expected no warnings, got %v", h.Warnings())
	}
	root := h.Root()
	if root.Class() != "Form" {
		t.Errorf("Expected root class Form, got %s", root.Class())
	}
	expectChildren(t, root, "(BorderLayout) panel tips group bar stray")
	expectChildren(t, h.Find("panel"), "ok (JButton) label")
	expectChildren(t, h.Find("group"), "a b")
	expectChildren(t, h.Find("bar"), "(Separator)")

	tests := []struct {
		name  string
		check func(a model.Association) bool
	}{
		{"panel", func(a model.Association) bool { _, ok := a.(*association.InvocationChild); return ok }},
		{"label", func(a model.Association) bool { _, ok := a.(*association.ConstructorParent); return ok }},
		{"tips", func(a model.Association) bool { _, ok := a.(*association.NonVisual); return ok }},
		{"a", func(a model.Association) bool { _, ok := a.(*association.InvocationChildEllipsis); return ok }},
		{"stray", func(a model.Association) bool { _, ok := a.(*association.Unknown); return ok }},
		{"ok", func(a model.Association) bool {
			c, ok := a.(*association.Compound)
			if !ok || len(c.Associations()) != 2 {
				return false
			}
			_, secondary := c.Associations()[1].(*association.InvocationSecondary)
			return secondary
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := h.Find(tt.name)
			if j == nil {
				t.Fatalf("Expected to find %s", tt.name)
			}
			if !tt.check(j.Association()) {
				t.Errorf("Unexpected association %T", j.Association())
			}
		})
	}

	layout := root.ChildrenJava()[0]
	if _, ok := layout.Association().(*association.SuperConstructorArgument); !ok {
		t.Errorf("Expected a super constructor argument, got %T", layout.Association())
	}
	separator := h.Find("bar").ChildrenJava()[0]
	if _, ok := separator.Association().(*association.InvocationVoid); !ok {
		t.Errorf("Expected a void invocation, got %T", separator.Association())
	}
}

func TestParseChildrenFollowArguments(t *testing.T) {
	h := parse(t, `class Form extends JPanel {
    void init() {
        Group group = new Group();
        add(group);
        JButton first = new JButton();
        JButton second = new JButton();
        JButton third = new JButton();
        group.setItems(third, first, second);
    }
}
`)
	if len(h.Warnings()) != 0 {
		t.Errorf("Expected no warnings, got %v", h.Warnings())
	}
	expectChildren(t, h.Find("group"), "third first second")
}

func TestParseLazyAccessor(t *testing.T) {
	h := parse(t, `class Form extends JPanel {
    private JButton ok;

    void init() {
        add(getOk());
    }

    JButton getOk() {
        ok = new JButton();
        return ok;
    }
}
`)
	ok := h.Find("ok")
	if ok == nil {
		t.Fatal("Expected to find ok")
	}
	if _, lazy := ok.Variable().(*model.LazyVariable); !lazy {
		t.Errorf("Expected a lazy variable, got %T", ok.Variable())
	}
	if _, child := ok.Association().(*association.InvocationChild); !child {
		t.Errorf("Expected an invocation child, got %T", ok.Association())
	}
}

func TestParseCyclicParents(t *testing.T) {
	h := parse(t, `class Form extends JPanel {
    private Box x = new Box(y);
    private Box y = new Box(x);
    private JButton ok = new JButton();
}
`)
	if len(h.Warnings()) == 0 {
		t.Fatal("Expected warnings for the cyclic components")
	}
	if h.Find("x") != nil || h.Find("y") != nil {
		t.Error("Expected the cyclic components to be skipped")
	}
	if h.Find("ok") == nil {
		t.Error("Expected unrelated components to stay")
	}
}

func TestParseWithoutClass(t *testing.T) {
	ed, err := editor.Parse([]byte("package demo;\n"), java.NewClassPath())
	if err != nil {
		t.Fatalf("Failed to parse source: %v", err)
	}
	if _, err := Parse(ed, model.NewDescriptions(nil)); !errors.Is(err, ErrNoClass) {
		t.Errorf("Expected ErrNoClass, got %v", err)
	}
}
