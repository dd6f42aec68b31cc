package java

import (
	"strings"

	"github.com/dhamidi/formkit/java/ast"
	"github.com/dhamidi/formkit/java/syntax"
)

// ClassModelsFromSource parses a compilation unit and returns one model per
// class declaration, nested classes included.
func ClassModelsFromSource(source []byte) ([]*ClassModel, error) {
	tree, err := syntax.Parse(source)
	if err != nil {
		return nil, err
	}
	return ClassModelsFromTree(tree), nil
}

func ClassModelsFromTree(tree *ast.Tree) []*ClassModel {
	root := tree.Node(tree.Root())
	if root == nil {
		return nil
	}
	pkg := packageFromUnit(tree, root)
	var models []*ClassModel
	for _, child := range root.Children {
		if tree.Kind(child) == ast.KindClassDecl {
			models = append(models, classModelsFromDecl(tree, child, pkg, "")...)
		}
	}
	return models
}

func packageFromUnit(tree *ast.Tree, unit *ast.Node) string {
	for _, child := range unit.Children {
		n := tree.Node(child)
		if n.Kind != ast.KindOpaqueMember || !strings.HasPrefix(n.Text, "package ") {
			continue
		}
		name := strings.TrimPrefix(n.Text, "package ")
		return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(name), ";"))
	}
	return ""
}

func classModelsFromDecl(tree *ast.Tree, h ast.Handle, pkg, outer string) []*ClassModel {
	decl := tree.Node(h)
	simple := decl.Name
	qualified := simple
	if outer != "" {
		qualified = outer + "." + simple
	} else if pkg != "" {
		qualified = pkg + "." + simple
	}

	model := &ClassModel{
		Name:       qualified,
		SimpleName: simple,
		Package:    pkg,
		SuperClass: decl.Type,
		Kind:       ClassKindClass,
		Visibility: visibilityFromModifiers(decl.Modifiers),
		IsAbstract: hasModifier(decl.Modifiers, "abstract"),
	}

	models := []*ClassModel{model}
	for _, member := range decl.Children {
		n := tree.Node(member)
		switch n.Kind {
		case ast.KindFieldDecl:
			for _, d := range n.Children {
				model.Fields = append(model.Fields, FieldModel{
					Name:       tree.Node(d).Name,
					Type:       ParseType(n.Type),
					Visibility: visibilityFromModifiers(n.Modifiers),
					IsStatic:   hasModifier(n.Modifiers, "static"),
					IsFinal:    hasModifier(n.Modifiers, "final"),
				})
			}
		case ast.KindMethodDecl, ast.KindConstructorDecl:
			model.Methods = append(model.Methods, methodModelFromDecl(tree, n, qualified))
		case ast.KindClassDecl:
			models = append(models, classModelsFromDecl(tree, member, pkg, qualified)...)
		}
	}
	return models
}

func methodModelFromDecl(tree *ast.Tree, n *ast.Node, declaringClass string) MethodModel {
	m := MethodModel{
		Name:           n.Name,
		DeclaringClass: declaringClass,
		ReturnType:     ParseType(n.Type),
		Visibility:     visibilityFromModifiers(n.Modifiers),
		IsStatic:       hasModifier(n.Modifiers, "static"),
		IsAbstract:     hasModifier(n.Modifiers, "abstract"),
	}
	if n.Kind == ast.KindConstructorDecl {
		m.Name = ConstructorName
		m.ReturnType = TypeModel{Name: "void"}
	}
	for _, p := range n.Params {
		pn := tree.Node(p)
		t := ParseType(pn.Type)
		if pn.Varargs {
			t.ArrayDepth++
			m.IsVarargs = true
		}
		m.Parameters = append(m.Parameters, ParameterModel{
			Name:    pn.Name,
			Type:    t,
			IsFinal: hasModifier(pn.Modifiers, "final"),
		})
	}
	return m
}

func visibilityFromModifiers(mods []string) Visibility {
	for _, m := range mods {
		switch m {
		case "public":
			return VisibilityPublic
		case "protected":
			return VisibilityProtected
		case "private":
			return VisibilityPrivate
		}
	}
	return VisibilityPackage
}

func hasModifier(mods []string, want string) bool {
	for _, m := range mods {
		if m == want {
			return true
		}
	}
	return false
}
