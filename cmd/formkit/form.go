package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/formkit/format"
	"github.com/dhamidi/formkit/model"
	"github.com/dhamidi/formkit/model/hierarchy"
	"github.com/dhamidi/formkit/project"
)

var errNotFound = errors.New("no such component")

// openForm loads the design project and the component tree of the form at
// path. Warnings go to stderr.
func openForm(cmd *cobra.Command, path string) (*hierarchy.Hierarchy, error) {
	if ext := filepath.Ext(path); ext != ".java" {
		return nil, fmt.Errorf("expected .java file, got %s", ext)
	}
	proj, err := project.LoadFrom(projectDir)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	stderr := cmd.ErrOrStderr()
	for _, w := range proj.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", w)
	}
	h, err := proj.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open form: %w", err)
	}
	for _, w := range h.Warnings() {
		fmt.Fprintf(stderr, "warning: %s: %s\n", path, w)
	}
	return h, nil
}

func findComponent(h *hierarchy.Hierarchy, name string) (*model.JavaInfo, error) {
	if name == "this" || name == h.Root().Class() {
		return h.Root(), nil
	}
	j := h.Find(name)
	if j == nil {
		return nil, fmt.Errorf("%s: %w", name, errNotFound)
	}
	return j, nil
}

// writeForm writes the edited source to path when overwrite is set, to
// stdout otherwise.
func writeForm(cmd *cobra.Command, h *hierarchy.Hierarchy, path string, overwrite bool) error {
	output := h.Editor().Bytes()
	if overwrite {
		return os.WriteFile(path, output, 0644)
	}
	_, err := cmd.OutOrStdout().Write(output)
	return err
}

func componentTree(j *model.JavaInfo, name string) *format.Component {
	c := &format.Component{
		Name:        name,
		Class:       j.Class(),
		Association: associationName(j.Association()),
		Line:        hierarchy.Span(j).Start.Line,
	}
	for _, child := range j.ChildrenJava() {
		c.Children = append(c.Children, componentTree(child, child.String()))
	}
	return c
}

// associationName is the type name of a, without package and pointer.
func associationName(a model.Association) string {
	if a == nil {
		return ""
	}
	name := fmt.Sprintf("%T", a)
	return name[strings.LastIndex(name, ".")+1:]
}

func encoderFor(name string, w io.Writer) (format.Encoder, error) {
	switch name {
	case "line":
		return format.NewLineEncoder(w), nil
	case "json":
		return format.NewJSONEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (expected json or line)", name)
	}
}
