package java

import "strings"

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

type ClassKind string

const (
	ClassKindClass     ClassKind = "class"
	ClassKindInterface ClassKind = "interface"
)

// ConstructorName is the method name under which constructors are recorded.
const ConstructorName = "<init>"

type ClassModel struct {
	Name       string
	SimpleName string
	Package    string
	SuperClass string
	Interfaces []string
	Visibility Visibility
	Kind       ClassKind
	IsAbstract bool
	SourceFile string
	Fields     []FieldModel
	Methods    []MethodModel
}

func (c *ClassModel) Constructors() []MethodModel {
	var ctors []MethodModel
	for _, m := range c.Methods {
		if m.IsConstructor() {
			ctors = append(ctors, m)
		}
	}
	return ctors
}

func (c *ClassModel) Field(name string) *FieldModel {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i]
		}
	}
	return nil
}

type FieldModel struct {
	Name       string
	Type       TypeModel
	Visibility Visibility
	IsStatic   bool
	IsFinal    bool
}

type MethodModel struct {
	Name           string
	DeclaringClass string
	ReturnType     TypeModel
	Parameters     []ParameterModel
	Visibility     Visibility
	IsStatic       bool
	IsAbstract     bool
	IsVarargs      bool
}

func (m MethodModel) IsConstructor() bool {
	return m.Name == ConstructorName
}

func (m MethodModel) ParameterTypes() []TypeModel {
	types := make([]TypeModel, len(m.Parameters))
	for i, p := range m.Parameters {
		types[i] = p.Type
	}
	return types
}

// Signature renders the method as name(Type1,Type2) using simple type names,
// e.g. "add(Component,Object)" or "<init>(Composite,int)".
func (m MethodModel) Signature() string {
	return Signature(m.Name, m.ParameterTypes())
}

func Signature(name string, params []TypeModel) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.SimpleString()
	}
	return name + "(" + strings.Join(parts, ",") + ")"
}

type ParameterModel struct {
	Name    string
	Type    TypeModel
	IsFinal bool
}

type TypeModel struct {
	Name       string
	ArrayDepth int
}

// ParseType reads a source type such as "List<String>[]" or "int...".
// Type arguments are dropped; a trailing ellipsis counts as one dimension.
func ParseType(s string) TypeModel {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "<"); i >= 0 {
		if j := strings.LastIndex(s, ">"); j > i {
			s = s[:i] + s[j+1:]
		}
	}
	t := TypeModel{}
	if strings.HasSuffix(s, "...") {
		s = strings.TrimSuffix(s, "...")
		t.ArrayDepth++
	}
	for strings.HasSuffix(s, "[]") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "[]"))
		t.ArrayDepth++
	}
	t.Name = strings.TrimSpace(s)
	return t
}

func (t TypeModel) String() string {
	return t.Name + strings.Repeat("[]", t.ArrayDepth)
}

func (t TypeModel) SimpleString() string {
	return SimpleName(t.Name) + strings.Repeat("[]", t.ArrayDepth)
}

// Elem returns the component type of an array type.
func (t TypeModel) Elem() TypeModel {
	if t.ArrayDepth == 0 {
		return t
	}
	return TypeModel{Name: t.Name, ArrayDepth: t.ArrayDepth - 1}
}

func (t TypeModel) IsPrimitive() bool {
	if t.ArrayDepth > 0 {
		return false
	}
	switch t.Name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double":
		return true
	}
	return false
}

func (t TypeModel) IsArray() bool {
	return t.ArrayDepth > 0
}

func (t TypeModel) IsVoid() bool {
	return t.Name == "void" && t.ArrayDepth == 0
}

// SameType compares two types by simple name and dimension count.
func SameType(a, b TypeModel) bool {
	return a.ArrayDepth == b.ArrayDepth && SimpleName(a.Name) == SimpleName(b.Name)
}

func SimpleName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
