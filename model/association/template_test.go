package association

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/model"
)

func TestReplaceTemplates(t *testing.T) {
	desc := &model.ComponentDescription{
		Class:             "JButton",
		TemplateArguments: map[string]string{"side": "BorderLayout.SOUTH"},
	}
	f := newFixture(t, `
        JPanel panel = new JPanel();
        JButton a = new JButton();
        JButton b = new JButton();
        JButton c = new JButton();`, desc)
	panel := f.local("panel", f.root)
	f.local("a", panel)
	f.local("b", panel)
	c := f.local("c", panel)
	target := editor.After(f.statement("JButton c = new JButton();"))

	tests := []struct {
		source string
		want   string
	}{
		{"%parent%.add(%child%)", "panel.add(c)"},
		{"%parent%.add(%child%, %index%)", "panel.add(c, 2)"},
		{"%parent%.add(%child%, %side%)", "panel.add(c, BorderLayout.SOUTH)"},
		{"%this%.add(%child%)", "this.add(c)"},
		{"%parent%.setName(\"%class%\")", "panel.setName(\"JButton\")"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, err := ReplaceTemplates(c, tt.source, target)
			if err != nil {
				t.Fatalf("Failed to replace templates: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestReplaceTemplatesIndexAddsStatement(t *testing.T) {
	f := newFixture(t, `
        JPanel panel = new JPanel();
        JButton a = new JButton();
        JButton b = new JButton();
        JButton c = new JButton();
        panel.add(a, 0);
        panel.add(b, 1);`)
	panel := f.local("panel", f.root)
	f.local("a", panel)
	f.local("b", panel)
	c := f.local("c", panel)

	a := NewInvocationChildSource("%parent%.add(%child%, %index%)")
	if err := a.Add(c, editor.After(f.statement("panel.add(b, 1);")), nil); err != nil {
		t.Fatalf("Failed to add: %v", err)
	}
	f.expectStatements(
		"JPanel panel = new JPanel();",
		"JButton a = new JButton();",
		"JButton b = new JButton();",
		"JButton c = new JButton();",
		"panel.add(a, 0);",
		"panel.add(b, 1);",
		"panel.add(c, 2);",
	)
}

func TestReplaceTemplatesRunsHooksFirst(t *testing.T) {
	f := newFixture(t, `
        JPanel panel = new JPanel();
        JButton button = new JButton();`)
	panel := f.local("panel", f.root)
	button := f.local("button", panel)

	var seen string
	f.root.Events().AddTemplateHook(func(child *model.JavaInfo, source string) (string, error) {
		seen = source
		return strings.ReplaceAll(source, "%layout%", "BorderLayout.CENTER"), nil
	})
	got, err := ReplaceTemplates(button, "%parent%.add(%child%, %layout%)", editor.StatementTarget{})
	if err != nil {
		t.Fatalf("Failed to replace templates: %v", err)
	}
	if seen != "%parent%.add(%child%, %layout%)" {
		t.Errorf("Expected the hook to see the raw template, got %q", seen)
	}
	if want := "panel.add(button, BorderLayout.CENTER)"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestReplaceTemplatesHookError(t *testing.T) {
	f := newFixture(t, `
        JPanel panel = new JPanel();
        JButton button = new JButton();`)
	panel := f.local("panel", f.root)
	button := f.local("button", panel)

	hookErr := errors.New("layout unavailable")
	f.root.Events().AddTemplateHook(func(*model.JavaInfo, string) (string, error) {
		return "", hookErr
	})
	_, err := ReplaceTemplates(button, "%parent%.add(%child%)", editor.StatementTarget{})
	if !errors.Is(err, hookErr) {
		t.Fatalf("Expected the hook error, got %v", err)
	}
	if !strings.Contains(err.Error(), `"%parent%.add(%child%)"`) {
		t.Errorf("Expected the error to quote the template, got %q", err)
	}
}

func TestReplaceTemplatesUnresolved(t *testing.T) {
	f := newFixture(t, `
        JPanel panel = new JPanel();
        JButton button = new JButton();`)
	panel := f.local("panel", f.root)
	button := f.local("button", panel)

	_, err := ReplaceTemplates(button, "%parent%.add(%child%, %missing%)", editor.StatementTarget{})
	if err == nil {
		t.Fatal("Expected an error for an unresolved placeholder")
	}
	if !strings.Contains(err.Error(), "%missing%") {
		t.Errorf("Expected the error to name the placeholder, got %v", err)
	}
}

func TestReplaceTemplatesWithoutParent(t *testing.T) {
	f := newFixture(t, `JButton button = new JButton();`)
	button := f.local("button", nil)

	if _, err := ReplaceTemplates(button, "%parent%.add(%child%)", editor.StatementTarget{}); err == nil {
		t.Error("Expected an error for a component without parent")
	}
}

func TestTemplateMethod(t *testing.T) {
	tests := map[string]string{
		"%parent%.setItems(%child%)": "setItems",
		"%parent%.add (%child%)":     "add",
		"%this%.add(%child%)":        "",
		"%parent%.items":             "",
	}
	for source, want := range tests {
		if got := TemplateMethod(source); got != want {
			t.Errorf("Expected %q for %q, got %q", want, source, got)
		}
	}
}
