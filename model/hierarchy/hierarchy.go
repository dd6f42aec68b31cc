// Package hierarchy discovers the components of a designed class and the
// associations that link them, and builds the component tree.
package hierarchy

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/formkit/editor"
	"github.com/dhamidi/formkit/java"
	"github.com/dhamidi/formkit/java/ast"
	"github.com/dhamidi/formkit/model"
	"github.com/dhamidi/formkit/model/association"
)

var log = commonlog.GetLogger("formkit.hierarchy")

var ErrNoClass = errors.New("compilation unit declares no class")

// Hierarchy is the component tree of one designed class.
type Hierarchy struct {
	editor       *editor.Editor
	descriptions *model.Descriptions
	root         *model.JavaInfo
	warnings     []error
}

func (h *Hierarchy) Editor() *editor.Editor             { return h.editor }
func (h *Hierarchy) Descriptions() *model.Descriptions { return h.descriptions }
func (h *Hierarchy) Root() *model.JavaInfo             { return h.root }

// Warnings lists the components that were skipped during discovery.
func (h *Hierarchy) Warnings() []error { return h.warnings }

// Find returns the component called name, or nil.
func (h *Hierarchy) Find(name string) *model.JavaInfo {
	return h.root.Find(name)
}

// Span returns the source span of the statement declaring j, falling back
// to its creation. Code added after parsing has no span.
func Span(j *model.JavaInfo) ast.Span {
	tree := j.Editor().Tree()
	candidates := []ast.Handle{j.Variable().Statement(), j.Creation().Node()}
	if this, ok := j.Creation().(*model.ThisCreation); ok {
		candidates = append(candidates, this.Class)
	}
	for _, h := range candidates {
		if n := tree.Node(h); n != nil && n.Span.Start.Line > 0 {
			return n.Span
		}
	}
	return ast.Span{}
}

// Parse builds the tree of the first class declared in the source of ed.
// Components whose link cannot be established are reported in Warnings
// and left out of the tree.
func Parse(ed *editor.Editor, descriptions *model.Descriptions) (*Hierarchy, error) {
	tree := ed.Tree()
	decl := ast.NoHandle
	for _, h := range tree.Node(tree.Root()).Children {
		if tree.Kind(h) == ast.KindClassDecl {
			decl = h
			break
		}
	}
	if !decl.IsValid() {
		return nil, ErrNoClass
	}

	h := &Hierarchy{editor: ed, descriptions: descriptions}
	h.root = model.NewRoot(ed, descriptions, tree.Node(decl).Name, decl)
	if err := association.NewRoot().Add(h.root, editor.StatementTarget{}, nil); err != nil {
		return nil, fmt.Errorf("parse hierarchy: %w", err)
	}
	h.root.Events().AddMoveGate(keepVoidChildren)

	d := &discovery{
		hierarchy: h,
		tree:      tree,
		class:     decl,
		byInfo:    make(map[*model.JavaInfo]*component),
		creation:  make(map[ast.Handle]bool),
	}
	d.declared()
	d.creations()
	d.superArguments()
	d.invocations()
	d.leftovers()
	d.attach()
	log.Infof("discovered %d components in %s", len(d.components), h.root.Class())
	return h, nil
}

// keepVoidChildren vetoes moving a child created by a call on its parent
// to another parent: the call is the creation.
func keepVoidChildren(child, newParent *model.JavaInfo) bool {
	if _, ok := child.Creation().(*model.InvocationCreation); ok {
		return child.Parent() == newParent
	}
	return true
}

// component is a discovered component waiting to be attached.
type component struct {
	info        *model.JavaInfo
	parent      *model.JavaInfo
	association model.Association
	secondary   []model.Association
	attached    bool
	failed      bool
}

type discovery struct {
	hierarchy  *Hierarchy
	tree       *ast.Tree
	class      ast.Handle
	components []*component
	byInfo     map[*model.JavaInfo]*component
	creation   map[ast.Handle]bool
}

func (d *discovery) warn(err error) {
	log.Warningf("%s", err)
	d.hierarchy.warnings = append(d.hierarchy.warnings, err)
}

func (d *discovery) add(j *model.JavaInfo) *component {
	c := &component{info: j}
	d.components = append(d.components, c)
	d.byInfo[j] = c
	d.creation[j.Creation().Node()] = true
	return c
}

func (d *discovery) isKnownCreation(h ast.Handle) bool {
	return d.creation[h]
}

// componentClass returns the class of the component created by expr, or ""
// when expr does not create a described component.
func (d *discovery) componentClass(expr ast.Handle) string {
	n := d.tree.Node(expr)
	if n == nil {
		return ""
	}
	var class string
	switch n.Kind {
	case ast.KindNewExpr:
		class = java.ParseType(n.Type).Name
	case ast.KindCallExpr:
		binding, err := d.hierarchy.editor.Binding(expr)
		if err != nil || !binding.IsStatic || binding.ReturnType.IsVoid() || binding.ReturnType.IsArray() {
			return ""
		}
		class = binding.ReturnType.Name
	default:
		return ""
	}
	if d.hierarchy.descriptions.Lookup(class) == nil {
		return ""
	}
	return class
}

func (d *discovery) newInfo(class string, creation model.CreationSupport) *model.JavaInfo {
	return model.NewJavaInfo(d.hierarchy.editor, d.hierarchy.descriptions, class, creation)
}

func creationOf(tree *ast.Tree, expr ast.Handle) model.CreationSupport {
	if tree.Kind(expr) == ast.KindCallExpr {
		return &model.FactoryCreation{Invocation: expr}
	}
	return model.NewConstructorCreation(expr)
}

// declared finds the components held by fields and local variables.
func (d *discovery) declared() {
	tree := d.tree
	fields := make(map[ast.Handle]bool)
	for _, member := range tree.Node(d.class).Children {
		if tree.Kind(member) != ast.KindFieldDecl {
			continue
		}
		for _, declarator := range tree.Node(member).Children {
			fields[declarator] = true
			init := tree.Node(declarator).Child(0)
			class := d.componentClass(init)
			if class == "" {
				continue
			}
			j := d.newInfo(class, creationOf(tree, init))
			j.SetVariable(model.NewFieldVariable(j, declarator))
			d.add(j)
		}
	}

	assigned := make(map[ast.Handle]bool)
	for _, member := range tree.Node(d.class).Children {
		kind := tree.Kind(member)
		if kind != ast.KindMethodDecl && kind != ast.KindConstructorDecl {
			continue
		}
		lazy := d.lazyField(member)
		tree.Walk(tree.Node(member).Body, func(h ast.Handle) bool {
			n := tree.Node(h)
			switch n.Kind {
			case ast.KindLocalVarDecl:
				for _, declarator := range n.Children {
					init := tree.Node(declarator).Child(0)
					if class := d.componentClass(init); class != "" {
						j := d.newInfo(class, creationOf(tree, init))
						j.SetVariable(model.NewLocalVariable(j, declarator))
						d.add(j)
					}
				}
				return false
			case ast.KindAssignExpr:
				declarator := d.hierarchy.editor.Declaration(n.Child(0))
				init := n.Child(1)
				if !fields[declarator] || assigned[declarator] || d.hasInitializer(declarator) {
					return false
				}
				class := d.componentClass(init)
				if class == "" {
					return false
				}
				assigned[declarator] = true
				j := d.newInfo(class, creationOf(tree, init))
				if declarator == lazy {
					j.SetVariable(model.NewLazyVariable(j, declarator, member))
				} else {
					j.SetVariable(model.NewFieldVariable(j, declarator))
				}
				d.add(j)
				return false
			}
			return true
		})
	}
}

func (d *discovery) hasInitializer(declarator ast.Handle) bool {
	return d.tree.Node(declarator).Child(0).IsValid()
}

// lazyField returns the field a parameterless method returns as its last
// statement, which makes the method the accessor of that field.
func (d *discovery) lazyField(method ast.Handle) ast.Handle {
	n := d.tree.Node(method)
	if n.Kind != ast.KindMethodDecl || len(n.Params) > 0 || !n.Body.IsValid() {
		return ast.NoHandle
	}
	stmts := d.tree.Node(n.Body).Children
	if len(stmts) == 0 {
		return ast.NoHandle
	}
	last := d.tree.Node(stmts[len(stmts)-1])
	if last.Kind != ast.KindReturnStmt {
		return ast.NoHandle
	}
	declarator := d.hierarchy.editor.Declaration(last.Child(0))
	if d.tree.Kind(d.tree.Parent(declarator)) != ast.KindFieldDecl {
		return ast.NoHandle
	}
	return declarator
}

// representedBy returns the component expr refers to.
func (d *discovery) representedBy(expr ast.Handle) *model.JavaInfo {
	if !expr.IsValid() {
		return nil
	}
	if d.hierarchy.root.IsRepresentedBy(expr) {
		return d.hierarchy.root
	}
	for _, c := range d.components {
		if c.info.IsRepresentedBy(expr) {
			return c.info
		}
	}
	return nil
}

func (d *discovery) methodDescription(call ast.Handle) *model.MethodDescription {
	binding, err := d.hierarchy.editor.Binding(call)
	if err != nil {
		log.Debugf("no binding for %s: %s", d.hierarchy.editor.Source(call), err)
		return nil
	}
	return d.hierarchy.descriptions.Method(binding.DeclaringClass, binding)
}

// link makes parent the parent of c unless c already has one. A second
// link from another component becomes a secondary part.
func (d *discovery) link(c *component, parent *model.JavaInfo, a model.Association, secondary model.Association) {
	switch {
	case c.parent == nil:
		c.parent = parent
		c.association = a
	case c.parent != parent && secondary != nil:
		c.secondary = append(c.secondary, secondary)
	}
}

func (d *discovery) inline(class string, expr ast.Handle) *component {
	return d.add(d.newInfo(class, model.NewConstructorCreation(expr)))
}

// creations links components through the arguments of their creations:
// parent arguments point up, child arguments point down.
func (d *discovery) creations() {
	for i := 0; i < len(d.components); i++ {
		c := d.components[i]
		creation := c.info.Creation().Node()
		desc := d.methodDescription(creation)
		if desc == nil {
			continue
		}
		args := d.hierarchy.editor.Arguments(creation)
		for _, index := range desc.ParentIndexes() {
			if index >= len(args) {
				continue
			}
			if parent := d.representedBy(args[index]); parent != nil && parent != c.info {
				var a model.Association = association.NewConstructorParent()
				if _, factory := c.info.Creation().(*model.FactoryCreation); factory {
					a = association.NewFactoryParent()
				}
				d.link(c, parent, a, nil)
			}
		}
		for _, index := range desc.ChildIndexes() {
			if index >= len(args) {
				continue
			}
			arg := args[index]
			if child := d.byInfo[d.representedBy(arg)]; child != nil {
				if child != c {
					d.link(child, c.info, association.NewConstructorChild(creation), nil)
				}
				continue
			}
			if class := d.componentClass(arg); class != "" && !d.isKnownCreation(arg) {
				child := d.inline(class, arg)
				d.link(child, c.info, association.NewConstructorChild(creation), nil)
			}
		}
	}
}

// superArguments finds components passed to the super constructor.
func (d *discovery) superArguments() {
	tree := d.tree
	for _, member := range tree.Node(d.class).Children {
		if tree.Kind(member) != ast.KindConstructorDecl {
			continue
		}
		body := tree.Node(tree.Node(member).Body)
		if body == nil || len(body.Children) == 0 {
			continue
		}
		first := tree.Node(body.Children[0])
		if first.Kind != ast.KindConstructorCall || first.Name != "super" {
			continue
		}
		for _, arg := range first.Children {
			class := d.componentClass(arg)
			if class == "" || d.isKnownCreation(arg) {
				continue
			}
			c := d.inline(class, arg)
			d.link(c, d.hierarchy.root, association.NewSuperConstructorArgument(arg), nil)
		}
	}
}

// invocations links components through calls on their parents.
func (d *discovery) invocations() {
	tree := d.tree
	var calls []ast.Handle
	tree.Walk(d.class, func(h ast.Handle) bool {
		if tree.Kind(h) == ast.KindCallExpr {
			calls = append(calls, h)
		}
		return true
	})
	for _, call := range calls {
		d.invocation(call)
	}
}

func (d *discovery) invocation(call ast.Handle) {
	ed := d.hierarchy.editor
	n := d.tree.Node(call)
	receiver := d.hierarchy.root
	if n.Receiver.IsValid() {
		receiver = d.representedBy(n.Receiver)
	}
	if receiver == nil || d.isKnownCreation(call) {
		return
	}
	desc := d.methodDescription(call)
	args := ed.Arguments(call)

	if class := desc.Tag(model.TagVoidChild); class != "" && ed.IsStandaloneStatement(call) {
		c := d.add(d.newInfo(class, &model.InvocationCreation{Invocation: call}))
		d.link(c, receiver, association.NewInvocationVoid(), nil)
		return
	}

	if spec := receiverSpec(receiver); spec != nil && association.TemplateMethod(spec.Source) == n.Name {
		switch spec.Kind {
		case association.KindInvocationChildEllipsis:
			for i := spec.ParameterIndex; i < len(args); i++ {
				if c := d.byInfo[d.representedBy(args[i])]; c != nil {
					d.link(c, receiver, association.NewInvocationChildEllipsis(call, spec.ParameterIndex, spec.RemoveOnEmpty, spec.OnEmptySource), nil)
				}
			}
			return
		case association.KindInvocationChildArray:
			if spec.ParameterIndex >= len(args) {
				return
			}
			for _, element := range ed.ArrayElements(args[spec.ParameterIndex]) {
				if c := d.byInfo[d.representedBy(element)]; c != nil {
					d.link(c, receiver, association.NewInvocationChildArray(call, spec.ParameterIndex, spec.RemoveOnEmpty), nil)
				}
			}
			return
		}
	}

	indexes := desc.ChildIndexes()
	if len(indexes) == 0 {
		if spec := receiverSpec(receiver); spec != nil && spec.Kind == association.KindInvocationChild &&
			association.TemplateMethod(spec.Source) == n.Name && len(args) > 0 {
			indexes = []int{0}
		}
	}
	for _, index := range indexes {
		if index >= len(args) {
			continue
		}
		arg := args[index]
		if c := d.byInfo[d.representedBy(arg)]; c != nil {
			if c.info != receiver {
				d.link(c, receiver, association.NewInvocationChild(call), association.NewInvocationSecondary(call))
			}
			continue
		}
		if class := d.componentClass(arg); class != "" && !d.isKnownCreation(arg) {
			c := d.inline(class, arg)
			d.link(c, receiver, association.NewInvocationChild(call), nil)
		}
	}
}

func receiverSpec(receiver *model.JavaInfo) *model.AssociationSpec {
	if desc := receiver.Description(); desc != nil {
		return desc.ChildAssociation
	}
	return nil
}

// leftovers puts the components without a discovered link under the root.
func (d *discovery) leftovers() {
	for _, c := range d.components {
		if c.parent != nil {
			continue
		}
		c.parent = d.hierarchy.root
		if desc := c.info.Description(); desc != nil && desc.NonVisual {
			c.association = association.NewNonVisual()
		} else {
			log.Infof("%s has no recognizable link to a parent", c.info)
			c.association = association.NewUnknown()
		}
	}
}

func (d *discovery) attach() {
	for _, c := range d.components {
		d.attachOne(c, make(map[*component]bool))
	}
}

// attachOne attaches the parent of c first, since an association resolves
// the event queue through the parent chain.
func (d *discovery) attachOne(c *component, visiting map[*component]bool) bool {
	if c.attached || c.failed {
		return c.attached
	}
	if visiting[c] {
		d.warn(fmt.Errorf("%s: cyclic parent link", c.info))
		c.failed = true
		return false
	}
	visiting[c] = true
	if parent := d.byInfo[c.parent]; parent != nil && !d.attachOne(parent, visiting) {
		d.warn(fmt.Errorf("%s: parent %s was skipped", c.info, c.parent))
		c.failed = true
		return false
	}

	c.parent.AddChild(c.info)
	a := c.association
	if len(c.secondary) > 0 {
		a = association.NewCompound(append([]model.Association{a}, c.secondary...)...)
	}
	if err := a.Add(c.info, editor.StatementTarget{}, nil); err != nil {
		c.parent.RemoveChild(c.info)
		d.warn(fmt.Errorf("%s: %w", c.info, err))
		c.failed = true
		return false
	}
	c.attached = true
	return true
}
