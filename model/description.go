package model

import (
	"sort"
	"strings"

	"github.com/dhamidi/formkit/java"
)

// Tag names understood by the association layer.
const (
	TagAlwaysDelete = "associationAlwaysDelete"

	// TagVoidChild on a method names the class of the child a call of
	// that method creates, as toolbar.addSeparator() creates a separator.
	TagVoidChild = "voidChild"
)

// ComponentDescription declares how a toolkit class takes part in the
// component model.
type ComponentDescription struct {
	Class string
	Title string

	// NonVisual marks beans that are not part of the visual hierarchy.
	NonVisual bool

	Constructors []*MethodDescription
	Methods      []*MethodDescription

	// TemplateArguments fill %name% placeholders of association templates.
	TemplateArguments map[string]string

	// ChildAssociation is the association children get when they are added
	// to an instance of Class. Nil when the class is not a container.
	ChildAssociation *AssociationSpec
}

// AssociationSpec is the declarative form of an association, as read from
// a description file.
type AssociationSpec struct {
	Kind     string
	Source   string
	Required bool
	Title    string

	// ParameterIndex is the argument index of the array or varargs run for
	// array and ellipsis associations.
	ParameterIndex int
	RemoveOnEmpty  bool
	OnEmptySource  string
}

type MethodDescription struct {
	// Name is java.ConstructorName for constructors.
	Name       string
	Parameters []ParameterDescription
	Tags       map[string]string
}

type ParameterDescription struct {
	Type   string
	Name   string
	Parent bool
	Child  bool
}

func (m *MethodDescription) IsConstructor() bool {
	return m.Name == java.ConstructorName
}

func (m *MethodDescription) ParameterTypes() []java.TypeModel {
	types := make([]java.TypeModel, len(m.Parameters))
	for i, p := range m.Parameters {
		types[i] = java.ParseType(p.Type)
	}
	return types
}

// Signature has the same shape as java.MethodModel.Signature so the two can
// be compared directly.
func (m *MethodDescription) Signature() string {
	return java.Signature(m.Name, m.ParameterTypes())
}

// Tag returns the value of the named tag, or "".
func (m *MethodDescription) Tag(name string) string {
	if m == nil {
		return ""
	}
	return m.Tags[name]
}

// ParentIndexes lists the parameters marked as the parent.
func (m *MethodDescription) ParentIndexes() []int {
	var indexes []int
	if m == nil {
		return indexes
	}
	for i, p := range m.Parameters {
		if p.Parent {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// ChildIndexes lists the parameters marked as a child.
func (m *MethodDescription) ChildIndexes() []int {
	var indexes []int
	if m == nil {
		return indexes
	}
	for i, p := range m.Parameters {
		if p.Child {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

func (d *ComponentDescription) Constructor(signature string) *MethodDescription {
	for _, c := range d.Constructors {
		if c.Signature() == signature {
			return c
		}
	}
	return nil
}

func (d *ComponentDescription) Method(signature string) *MethodDescription {
	for _, m := range d.Methods {
		if m.Signature() == signature {
			return m
		}
	}
	return nil
}

// Descriptions is the registry of component descriptions of a project.
// Lookups walk the class hierarchy, so a description of a superclass
// applies to every subclass without one.
type Descriptions struct {
	classes *java.ClassPath
	byClass map[string]*ComponentDescription
}

func NewDescriptions(classes *java.ClassPath) *Descriptions {
	if classes == nil {
		classes = java.NewClassPath()
	}
	return &Descriptions{
		classes: classes,
		byClass: make(map[string]*ComponentDescription),
	}
}

func (d *Descriptions) ClassPath() *java.ClassPath {
	return d.classes
}

// Add registers desc, replacing an earlier description of the same class.
func (d *Descriptions) Add(descs ...*ComponentDescription) {
	for _, desc := range descs {
		d.byClass[java.SimpleName(desc.Class)] = desc
	}
}

func (d *Descriptions) All() []*ComponentDescription {
	if d == nil {
		return nil
	}
	all := make([]*ComponentDescription, 0, len(d.byClass))
	for _, desc := range d.byClass {
		all = append(all, desc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Class < all[j].Class })
	return all
}

// Lookup returns the description of class or of its nearest described
// superclass.
func (d *Descriptions) Lookup(class string) *ComponentDescription {
	if d == nil || class == "" {
		return nil
	}
	for _, name := range d.lineage(class) {
		if desc, ok := d.byClass[java.SimpleName(name)]; ok {
			return desc
		}
	}
	return nil
}

// Method returns the description of the method or constructor m, searching
// the descriptions along the hierarchy of class.
func (d *Descriptions) Method(class string, m *java.MethodModel) *MethodDescription {
	if d == nil || m == nil {
		return nil
	}
	signature := m.Signature()
	if m.IsConstructor() {
		// constructors are not inherited
		if desc, ok := d.byClass[java.SimpleName(class)]; ok {
			return desc.Constructor(signature)
		}
		return nil
	}
	for _, name := range d.lineage(class) {
		if desc, ok := d.byClass[java.SimpleName(name)]; ok {
			if found := desc.Method(signature); found != nil {
				return found
			}
		}
	}
	return nil
}

func (d *Descriptions) lineage(class string) []string {
	chain := d.classes.Hierarchy(class)
	if len(chain) == 0 {
		return []string{class}
	}
	names := make([]string, len(chain))
	for i, m := range chain {
		names[i] = m.Name
	}
	if !strings.EqualFold(java.SimpleName(names[0]), java.SimpleName(class)) {
		names = append([]string{class}, names...)
	}
	return names
}
