package association

import (
	"testing"

	"github.com/dhamidi/formkit/editor"
)

func TestWhenEmpty(t *testing.T) {
	tests := []struct {
		name           string
		removeOnEmpty  bool
		standalone     bool
		ellipsis       bool
		parameterIndex int
		onEmptySource  string
		want           emptyAction
	}{
		{"remove standalone array", true, true, false, 0, "", deleteStatement},
		{"remove standalone ellipsis wins over default", true, true, true, 0, "Group.EMPTY", deleteStatement},
		{"ellipsis at 0 with default", false, true, true, 0, "Group.EMPTY", replaceCreation},
		{"ellipsis at 0 inside expression", true, false, true, 0, "Group.EMPTY", replaceCreation},
		{"ellipsis after fixed parameters", false, true, true, 1, "Group.EMPTY", keepEmpty},
		{"ellipsis without default", false, true, true, 0, "", keepEmpty},
		{"array inside expression", true, false, false, 0, "", keepEmpty},
		{"array kept", false, true, false, 0, "", keepEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := whenEmpty(tt.removeOnEmpty, tt.standalone, tt.ellipsis, tt.parameterIndex, tt.onEmptySource)
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func ellipsisFixture(t *testing.T, removeOnEmpty bool, onEmpty string) (*fixture, []*InvocationChildEllipsis) {
	f := newFixture(t, `
        Group group = new Group();
        JButton a = new JButton();
        JButton b = new JButton();
        group.setItems(a, b, a);`)
	group := f.local("group", f.root)
	var associations []*InvocationChildEllipsis
	for _, name := range []string{"a", "b"} {
		child := f.local(name, group)
		a := NewInvocationChildEllipsis(f.call("setItems"), 0, removeOnEmpty, onEmpty)
		f.bind(child, a)
		associations = append(associations, a)
	}
	return f, associations
}

func TestEllipsisRemovesEveryOccurrence(t *testing.T) {
	f, associations := ellipsisFixture(t, false, "")
	if _, err := associations[0].Remove(); err != nil {
		t.Fatalf("Failed to remove: %v", err)
	}
	f.expectStatements(
		"Group group = new Group();",
		"JButton a = new JButton();",
		"JButton b = new JButton();",
		"group.setItems(b);",
	)
}

func TestEllipsisEmptiesToDefault(t *testing.T) {
	f, associations := ellipsisFixture(t, false, "group.clear()")
	for _, a := range associations {
		removed, err := a.Remove()
		if err != nil || !removed {
			t.Fatalf("Expected removal, got %v, %v", removed, err)
		}
	}
	f.expectStatements(
		"Group group = new Group();",
		"JButton a = new JButton();",
		"JButton b = new JButton();",
		"group.clear();",
	)
}

func TestEllipsisRemoveOnEmptyDeletesStatement(t *testing.T) {
	f, associations := ellipsisFixture(t, true, "group.clear()")
	for _, a := range associations {
		if _, err := a.Remove(); err != nil {
			t.Fatalf("Failed to remove: %v", err)
		}
	}
	f.expectStatements(
		"Group group = new Group();",
		"JButton a = new JButton();",
		"JButton b = new JButton();",
	)
}

func TestEllipsisKeepsEmptyCall(t *testing.T) {
	f, associations := ellipsisFixture(t, false, "")
	for _, a := range associations {
		if _, err := a.Remove(); err != nil {
			t.Fatalf("Failed to remove: %v", err)
		}
	}
	f.expectStatements(
		"Group group = new Group();",
		"JButton a = new JButton();",
		"JButton b = new JButton();",
		"group.setItems();",
	)
}

func TestEllipsisDeleteComponents(t *testing.T) {
	f := newFixture(t, `
        Group group = new Group();
        JButton a = new JButton();
        group.setItems(a);`)
	group := f.local("group", f.root)
	a := f.local("a", group)
	f.bind(a, NewInvocationChildEllipsis(f.call("setItems"), 0, true, ""))

	deleted, err := a.Delete()
	if err != nil || !deleted {
		t.Fatalf("Expected deletion, got %v, %v", deleted, err)
	}
	f.expectStatements("Group group = new Group();")
}

func TestEllipsisAddAppendsToExistingCall(t *testing.T) {
	f := newFixture(t, `
        Group group = new Group();
        JButton a = new JButton();
        JButton b = new JButton();
        group.setItems(a);`)
	group := f.local("group", f.root)
	a := f.local("a", group)
	b := f.local("b", group)
	f.bind(a, NewInvocationChildEllipsis(f.call("setItems"), 0, false, ""))

	add := NewInvocationChildEllipsisSource("%parent%.setItems(%child%)", 0, false, "")
	if err := add.Add(b, editor.After(f.statement("group.setItems(a);")), nil); err != nil {
		t.Fatalf("Failed to add: %v", err)
	}
	f.expectStatements(
		"Group group = new Group();",
		"JButton a = new JButton();",
		"JButton b = new JButton();",
		"group.setItems(a, b);",
	)
	if add.Invocation() != f.call("setItems") {
		t.Error("Expected the existing call to be reused")
	}
}

func TestEllipsisAddWritesTemplate(t *testing.T) {
	f := newFixture(t, `
        Group group = new Group();
        JButton a = new JButton();`)
	group := f.local("group", f.root)
	a := f.local("a", group)

	add := NewInvocationChildEllipsisSource("%parent%.setItems(%child%)", 0, false, "")
	if err := add.Add(a, editor.After(f.statement("JButton a = new JButton();")), nil); err != nil {
		t.Fatalf("Failed to add: %v", err)
	}
	f.expectStatements(
		"Group group = new Group();",
		"JButton a = new JButton();",
		"group.setItems(a);",
	)
}

func arrayFixture(t *testing.T, removeOnEmpty bool) (*fixture, []*InvocationChildArray) {
	f := newFixture(t, `
        Table table = new Table();
        Column name = new Column();
        Column size = new Column();
        table.setColumns(new Column[]{name, size});`)
	table := f.local("table", f.root)
	var associations []*InvocationChildArray
	for _, name := range []string{"name", "size"} {
		child := f.local(name, table)
		a := NewInvocationChildArray(f.call("setColumns"), 0, removeOnEmpty)
		f.bind(child, a)
		associations = append(associations, a)
	}
	return f, associations
}

func TestArrayCleanup(t *testing.T) {
	t.Run("remove on empty", func(t *testing.T) {
		f, associations := arrayFixture(t, true)
		if _, err := associations[0].Remove(); err != nil {
			t.Fatalf("Failed to remove: %v", err)
		}
		f.expectStatements(
			"Table table = new Table();",
			"Column name = new Column();",
			"Column size = new Column();",
			"table.setColumns(new Column[]{size});",
		)
		if _, err := associations[1].Remove(); err != nil {
			t.Fatalf("Failed to remove: %v", err)
		}
		f.expectStatements(
			"Table table = new Table();",
			"Column name = new Column();",
			"Column size = new Column();",
		)
	})

	t.Run("keep empty array", func(t *testing.T) {
		f, associations := arrayFixture(t, false)
		for _, a := range associations {
			if _, err := a.Remove(); err != nil {
				t.Fatalf("Failed to remove: %v", err)
			}
		}
		f.expectStatements(
			"Table table = new Table();",
			"Column name = new Column();",
			"Column size = new Column();",
			"table.setColumns(new Column[]{});",
		)
	})

	t.Run("remove twice", func(t *testing.T) {
		f, associations := arrayFixture(t, false)
		for i := 0; i < 2; i++ {
			if _, err := associations[0].Remove(); err != nil {
				t.Fatalf("Failed to remove: %v", err)
			}
		}
		f.expectStatements(
			"Table table = new Table();",
			"Column name = new Column();",
			"Column size = new Column();",
			"table.setColumns(new Column[]{size});",
		)
	})
}

func TestArrayAddAppendsElement(t *testing.T) {
	f := newFixture(t, `
        Table table = new Table();
        Column name = new Column();
        Column size = new Column();
        table.setColumns(new Column[]{name});`)
	table := f.local("table", f.root)
	size := f.local("size", table)

	a := NewInvocationChildArraySource("%parent%.setColumns(new Column[]{%child%})", 0, true)
	if err := a.Add(size, editor.After(f.statement("Column size = new Column();")), nil); err != nil {
		t.Fatalf("Failed to add: %v", err)
	}
	f.expectStatements(
		"Table table = new Table();",
		"Column name = new Column();",
		"Column size = new Column();",
		"table.setColumns(new Column[]{name, size});",
	)
	if _, err := a.Copy(); err != nil {
		t.Errorf("Expected a template association to be copyable, got %v", err)
	}
}

func TestPlainArray(t *testing.T) {
	f := newFixture(t, `
        Column name = new Column();
        Column[] columns = new Column[]{name};`)
	name := f.local("name", f.root)
	array := f.ed.Node(f.declarator("columns")).Child(0)
	a := NewArray(array, true)
	f.bind(name, a)

	if _, err := a.Remove(); err != nil {
		t.Fatalf("Failed to remove: %v", err)
	}
	f.expectStatements(
		"Column name = new Column();",
		"Column[] columns = new Column[]{};",
	)
}
