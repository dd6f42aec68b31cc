package association

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java"
	"github.com/dhamidi/formkit/java/ast"
	"github.com/dhamidi/formkit/model"
)

const (
	parentToken = "%parent%"
	childToken  = "%child%"
	indexToken  = "%index%"
	thisToken   = "%this%"
	classToken  = "%class%"
)

var placeholder = regexp.MustCompile(`%[A-Za-z][A-Za-z0-9_.-]*%`)

// ReplaceTemplates turns an association template into source for child at
// target. Substitution runs in a fixed order: the template hooks of the
// tree, then %parent%, %child%, %index%, the template arguments of the
// child's description, and finally %this% and %class%. A placeholder left
// after that is an error.
func ReplaceTemplates(child *model.JavaInfo, template string, target editor.StatementTarget) (string, error) {
	source, err := child.Events().RewriteTemplate(child, template)
	if err != nil {
		return "", fmt.Errorf("template %q: %w", template, err)
	}
	at := editor.AtStatement(target)

	if strings.Contains(source, parentToken) {
		parent := child.Parent()
		if parent == nil {
			return "", fmt.Errorf("template %q: %s has no parent", source, child)
		}
		ref, err := parent.Variable().ReferenceExpression(at)
		if err != nil {
			return "", fmt.Errorf("template %q: %w", source, err)
		}
		source = strings.ReplaceAll(source, parentToken, ref)
	}
	if strings.Contains(source, childToken) {
		ref, err := child.Variable().ReferenceExpression(at)
		if err != nil {
			return "", fmt.Errorf("template %q: %w", source, err)
		}
		source = strings.ReplaceAll(source, childToken, ref)
	}
	if strings.Contains(source, indexToken) {
		source = strings.ReplaceAll(source, indexToken, strconv.Itoa(siblingCount(child)))
	}
	if desc := child.Description(); desc != nil && len(desc.TemplateArguments) > 0 {
		names := make([]string, 0, len(desc.TemplateArguments))
		for name := range desc.TemplateArguments {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			token := "%" + name + "%"
			if strings.Contains(source, token) {
				source = strings.ReplaceAll(source, token, desc.TemplateArguments[name])
			}
		}
	}
	return resolveTemplate(child, source, at)
}

// resolveTemplate handles the placeholders that do not depend on the
// parent/child link.
func resolveTemplate(child *model.JavaInfo, source string, at editor.NodeTarget) (string, error) {
	if strings.Contains(source, thisToken) {
		ref, err := child.Root().Variable().ReferenceExpression(at)
		if err != nil {
			return "", fmt.Errorf("template %q: %w", source, err)
		}
		source = strings.ReplaceAll(source, thisToken, ref)
	}
	if strings.Contains(source, classToken) {
		source = strings.ReplaceAll(source, classToken, java.SimpleName(child.Class()))
	}
	if left := placeholder.FindString(source); left != "" {
		return "", fmt.Errorf("template %q: unresolved placeholder %s", source, left)
	}
	return source, nil
}

// siblingCount is the number of components under the parent of child,
// child itself excluded.
func siblingCount(child *model.JavaInfo) int {
	parent := child.Parent()
	if parent == nil {
		return 0
	}
	n := 0
	for _, c := range parent.ChildrenJava() {
		if c != child {
			n++
		}
	}
	return n
}

// UpdateParentAssociation points every argument the description marks as
// the parent at newParent.
func UpdateParentAssociation(desc *model.MethodDescription, arguments []ast.Handle, newParent *model.JavaInfo) error {
	return replaceParentArguments(desc.ParentIndexes(), arguments, newParent)
}

func replaceParentArguments(indexes []int, arguments []ast.Handle, newParent *model.JavaInfo) error {
	ed := newParent.Editor()
	for _, i := range indexes {
		if i < 0 || i >= len(arguments) {
			return fmt.Errorf("update parent: no argument %d among %d", i, len(arguments))
		}
		ref, err := newParent.Variable().ReferenceExpression(editor.AtNode(arguments[i]))
		if err != nil {
			return fmt.Errorf("update parent: %w", err)
		}
		if _, err := ed.ReplaceExpression(arguments[i], ref); err != nil {
			return fmt.Errorf("update parent: %w", err)
		}
	}
	return nil
}

// parentIndexes returns the parent parameters declared by desc or, when
// there are none, the arguments that refer to the current parent.
func parentIndexes(desc *model.MethodDescription, arguments []ast.Handle, parent *model.JavaInfo) []int {
	if indexes := desc.ParentIndexes(); len(indexes) > 0 {
		return indexes
	}
	if parent == nil {
		return nil
	}
	return representingIndexes(parent, arguments, 0)
}
