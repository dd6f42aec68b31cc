package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	p, err := LoadFrom(filepath.Join("testdata", "demo"))
	if err != nil {
		t.Fatalf("Failed to load project: %v", err)
	}

	for _, class := range []string{"toolkit.Container", "toolkit.widgets.Panel", "toolkit.widgets.Label"} {
		if p.ClassPath.Lookup(class) == nil {
			t.Errorf("Expected class %s on the class path", class)
		}
	}
	if got := len(p.Descriptions.All()); got != 5 {
		t.Errorf("Expected 5 descriptions, got %d", got)
	}
	if p.Descriptions.Lookup("Panel") == nil {
		t.Error("Expected Panel to inherit the Container description")
	}

	if len(p.Warnings) != 2 {
		t.Fatalf("Expected 2 warnings, got %v", p.Warnings)
	}
	for _, w := range p.Warnings {
		if !strings.Contains(w.Error(), "broken.xml") && !strings.Contains(w.Error(), "truncated.xml") {
			t.Errorf("Expected the warning to name its file, got %v", w)
		}
	}
}

func TestLoadFromMissingDirectory(t *testing.T) {
	if _, err := LoadFrom(t.TempDir()); err == nil {
		t.Error("Expected an error for a directory without a toolkit")
	}
}

func TestOpen(t *testing.T) {
	p, err := LoadFrom(filepath.Join("testdata", "demo"))
	if err != nil {
		t.Fatalf("Failed to load project: %v", err)
	}
	h, err := p.Open(filepath.Join("testdata", "demo", "forms", "Login.java"))
	if err != nil {
		t.Fatalf("Failed to open form: %v", err)
	}
	if len(h.Warnings()) != 0 {
		t.Errorf("Expected no warnings, got %v", h.Warnings())
	}

	tests := []struct {
		name   string
		parent string
	}{
		{"(BorderLayout)", "this"},
		{"fields", "this"},
		{"title", "fields"},
		{"submit", "fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := h.Find(tt.name)
			if j == nil {
				t.Fatalf("Expected to find %s", tt.name)
			}
			if got := j.Parent().String(); got != tt.parent {
				t.Errorf("Expected parent %s, got %s", tt.parent, got)
			}
		})
	}

	if p.ClassPath.Lookup("Login") != nil {
		t.Error("Expected the form class to stay out of the project class path")
	}
}

func TestOpenMissingFile(t *testing.T) {
	p, err := LoadFrom(filepath.Join("testdata", "demo"))
	if err != nil {
		t.Fatalf("Failed to load project: %v", err)
	}
	if _, err := p.Open(filepath.Join("testdata", "demo", "forms", "Missing.java")); !os.IsNotExist(err) {
		t.Errorf("Expected a not-exist error, got %v", err)
	}
}
