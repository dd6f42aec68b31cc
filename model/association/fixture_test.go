package association

import (
	"strings"
	"testing"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java"
	"github.com/dhamidi/formkit/java/ast"
	"github.com/dhamidi/formkit/model"
)

const toolkitSource = `
class Component {}

class Container extends Component {
    public void add(Component c) {}
    public void add(Component c, Object constraints) {}
}

class LayoutManager {}

class BorderLayout extends LayoutManager {
    public BorderLayout() {}
}

class GridBagLayout extends LayoutManager {
    public GridBagLayout() {}
    public void setConstraints(Component c, Object constraints) {}
}

class JPanel extends Container {
    public JPanel() {}
    public JPanel(LayoutManager layout) {}
}

class Split extends Container {
    public Split(Component left) {}
}

class JButton extends Component {
    public JButton() {}
}

class Label extends Component {
    public Label(Container parent) {}
}

class Tips {
    public Tips() {}
    public void register(Component c, String text) {}
    public void register(String text) {}
}

class Group extends Container {
    public Group() {}
    public void setItems(Component... items) {}
    public void clear() {}
}

class Factories {
    public static JButton button(Container parent) {}
}

class Column extends Component {
    public Column() {}
}

class Table extends Container {
    public Table() {}
    public void setColumns(Column[] columns) {}
}
`

// fixture is a designed class "Form" whose init method holds body, with
// the toolkit above on the class path.
type fixture struct {
	t     *testing.T
	ed    *editor.Editor
	descs *model.Descriptions
	root  *model.JavaInfo
}

func newFixture(t *testing.T, body string, descs ...*model.ComponentDescription) *fixture {
	t.Helper()
	models, err := java.ClassModelsFromSource([]byte(toolkitSource))
	if err != nil {
		t.Fatalf("Failed to parse toolkit: %v", err)
	}
	classes := java.NewClassPath(models...)
	descriptions := model.NewDescriptions(classes)
	descriptions.Add(descs...)

	source := "class Form extends JPanel {\n    void init() {\n" + body + "\n    }\n}\n"
	ed, err := editor.Parse([]byte(source), classes)
	if err != nil {
		t.Fatalf("Failed to parse form: %v", err)
	}
	classes.Add(java.ClassModelsFromTree(ed.Tree())...)

	f := &fixture{t: t, ed: ed, descs: descriptions}
	decl := f.find(func(n *ast.Node) bool { return n.Kind == ast.KindClassDecl && n.Name == "Form" })
	f.root = model.NewRoot(ed, descriptions, "Form", decl)
	if err := NewRoot().Add(f.root, editor.StatementTarget{}, nil); err != nil {
		t.Fatalf("Failed to bind root: %v", err)
	}
	return f
}

func (f *fixture) find(match func(n *ast.Node) bool) ast.Handle {
	f.t.Helper()
	tree := f.ed.Tree()
	found := ast.NoHandle
	tree.Walk(tree.Root(), func(h ast.Handle) bool {
		if found.IsValid() {
			return false
		}
		if match(tree.Node(h)) {
			found = h
			return false
		}
		return true
	})
	if !found.IsValid() {
		f.t.Fatalf("Expected to find node in:\n%s", f.ed.Bytes())
	}
	return found
}

func (f *fixture) declarator(name string) ast.Handle {
	f.t.Helper()
	return f.find(func(n *ast.Node) bool { return n.Kind == ast.KindVarDeclarator && n.Name == name })
}

func (f *fixture) call(name string) ast.Handle {
	f.t.Helper()
	return f.find(func(n *ast.Node) bool { return n.Kind == ast.KindCallExpr && n.Name == name })
}

func (f *fixture) newExpr(typ string) ast.Handle {
	f.t.Helper()
	return f.find(func(n *ast.Node) bool { return n.Kind == ast.KindNewExpr && n.Type == typ })
}

func (f *fixture) statement(src string) ast.Handle {
	f.t.Helper()
	for _, stmt := range f.block().Children {
		if f.ed.Source(stmt) == src {
			return stmt
		}
	}
	f.t.Fatalf("Expected statement %q in:\n%s", src, f.ed.Bytes())
	return ast.NoHandle
}

// statementCall returns the expression of the expression statement src.
func (f *fixture) statementCall(src string) ast.Handle {
	f.t.Helper()
	return f.ed.Node(f.statement(src)).Child(0)
}

func (f *fixture) block() *ast.Node {
	f.t.Helper()
	method := f.find(func(n *ast.Node) bool { return n.Kind == ast.KindMethodDecl && n.Name == "init" })
	return f.ed.Node(f.ed.Node(method).Body)
}

// local returns the component declared as a local variable called name,
// attached under parent.
func (f *fixture) local(name string, parent *model.JavaInfo) *model.JavaInfo {
	f.t.Helper()
	d := f.declarator(name)
	typ := f.ed.Node(f.ed.Tree().Parent(d)).Type
	j := model.NewJavaInfo(f.ed, f.descs, typ, model.NewConstructorCreation(f.ed.Node(d).Child(0)))
	j.SetVariable(model.NewLocalVariable(j, d))
	if parent != nil {
		parent.AddChild(j)
	}
	return j
}

// inline returns the component created by the expression creation.
func (f *fixture) inline(creation ast.Handle, parent *model.JavaInfo) *model.JavaInfo {
	f.t.Helper()
	typ := f.ed.Node(creation).Type
	j := model.NewJavaInfo(f.ed, f.descs, typ, model.NewConstructorCreation(creation))
	if parent != nil {
		parent.AddChild(j)
	}
	return j
}

func (f *fixture) bind(j *model.JavaInfo, a model.Association) {
	f.t.Helper()
	if err := a.Add(j, editor.StatementTarget{}, nil); err != nil {
		f.t.Fatalf("Failed to bind %s: %v", j, err)
	}
}

func (f *fixture) statements() []string {
	f.t.Helper()
	var stmts []string
	for _, stmt := range f.block().Children {
		stmts = append(stmts, f.ed.Source(stmt))
	}
	return stmts
}

func (f *fixture) expectStatements(want ...string) {
	f.t.Helper()
	got := strings.Join(f.statements(), "\n")
	if got != strings.Join(want, "\n") {
		f.t.Errorf("Expected statements:\n%s\ngot:\n%s", strings.Join(want, "\n"), got)
	}
}
