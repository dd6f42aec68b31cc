package java

import "sync"

// ClassPath indexes the class models visible to a design session and answers
// the hierarchy and overload questions the component model asks.
type ClassPath struct {
	mu       sync.RWMutex
	classes  map[string]*ClassModel
	bySimple map[string][]*ClassModel
	order    []*ClassModel
}

func NewClassPath(models ...*ClassModel) *ClassPath {
	cp := &ClassPath{
		classes:  make(map[string]*ClassModel),
		bySimple: make(map[string][]*ClassModel),
	}
	cp.Add(models...)
	return cp
}

func (cp *ClassPath) Add(models ...*ClassModel) {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	for _, m := range models {
		if _, ok := cp.classes[m.Name]; !ok {
			cp.order = append(cp.order, m)
		}
		cp.classes[m.Name] = m
		simple := m.SimpleName
		if simple == "" {
			simple = SimpleName(m.Name)
		}
		cp.bySimple[simple] = append(cp.bySimple[simple], m)
	}
}

func (cp *ClassPath) Classes() []*ClassModel {
	cp.mu.RLock()
	defer cp.mu.RUnlock()
	return append([]*ClassModel(nil), cp.order...)
}

// Lookup finds a class by qualified or simple name. Type arguments and array
// dimensions are ignored.
func (cp *ClassPath) Lookup(name string) *ClassModel {
	if cp == nil {
		return nil
	}
	name = ParseType(name).Name
	cp.mu.RLock()
	defer cp.mu.RUnlock()
	if m, ok := cp.classes[name]; ok {
		return m
	}
	if candidates := cp.bySimple[SimpleName(name)]; len(candidates) > 0 {
		return candidates[0]
	}
	return nil
}

// Hierarchy returns the class followed by its known superclasses.
func (cp *ClassPath) Hierarchy(name string) []*ClassModel {
	var chain []*ClassModel
	seen := make(map[string]bool)
	for m := cp.Lookup(name); m != nil && !seen[m.Name]; m = cp.Lookup(m.SuperClass) {
		seen[m.Name] = true
		chain = append(chain, m)
		if m.SuperClass == "" {
			break
		}
	}
	return chain
}

// IsAssignable reports whether a value of type from can be passed where to
// is expected. Unknown types ("") are assignable both ways.
func (cp *ClassPath) IsAssignable(from, to TypeModel) bool {
	if from.Name == "" || to.Name == "" {
		return true
	}
	if SameType(from, to) {
		return true
	}
	if from.Name == "null" {
		return !to.IsPrimitive()
	}
	if from.ArrayDepth != to.ArrayDepth {
		return to.ArrayDepth == 0 && SimpleName(to.Name) == "Object" && from.ArrayDepth > 0
	}
	if from.IsPrimitive() || to.IsPrimitive() {
		return primitiveWidens(from.Name, to.Name)
	}
	if SimpleName(to.Name) == "Object" {
		return true
	}
	return cp.isSubtype(from.Name, to.Name, make(map[string]bool))
}

func (cp *ClassPath) isSubtype(from, to string, seen map[string]bool) bool {
	m := cp.Lookup(from)
	if m == nil || seen[m.Name] {
		return false
	}
	seen[m.Name] = true
	supers := append([]string{m.SuperClass}, m.Interfaces...)
	for _, s := range supers {
		if s == "" {
			continue
		}
		if SimpleName(ParseType(s).Name) == SimpleName(to) || cp.isSubtype(s, to, seen) {
			return true
		}
	}
	return false
}

var widening = map[string][]string{
	"byte":  {"short", "int", "long", "float", "double"},
	"short": {"int", "long", "float", "double"},
	"char":  {"int", "long", "float", "double"},
	"int":   {"long", "float", "double"},
	"long":  {"float", "double"},
	"float": {"double"},
}

func primitiveWidens(from, to string) bool {
	for _, w := range widening[from] {
		if w == to {
			return true
		}
	}
	return false
}

// Methods returns all methods called name declared by the class or its
// superclasses, nearest declaration first.
func (cp *ClassPath) Methods(class, name string) []MethodModel {
	var methods []MethodModel
	for _, m := range cp.Hierarchy(class) {
		for _, method := range m.Methods {
			if method.Name == name && !method.IsConstructor() {
				methods = append(methods, method)
			}
		}
	}
	return methods
}

func (cp *ClassPath) Constructors(class string) []MethodModel {
	if m := cp.Lookup(class); m != nil {
		return m.Constructors()
	}
	return nil
}

// FindConstructor returns the constructor with exactly the given parameter types.
func (cp *ClassPath) FindConstructor(class string, params []TypeModel) *MethodModel {
	return findExact(cp.Constructors(class), params)
}

// FindMethod returns the method with exactly the given name and parameter types.
func (cp *ClassPath) FindMethod(class, name string, params []TypeModel) *MethodModel {
	if name == ConstructorName {
		return cp.FindConstructor(class, params)
	}
	return findExact(cp.Methods(class, name), params)
}

func findExact(candidates []MethodModel, params []TypeModel) *MethodModel {
	for i := range candidates {
		c := candidates[i].ParameterTypes()
		if len(c) != len(params) {
			continue
		}
		match := true
		for j := range c {
			if !SameType(c[j], params[j]) {
				match = false
				break
			}
		}
		if match {
			return &candidates[i]
		}
	}
	return nil
}

// Resolve selects the overload of name (ConstructorName for constructors)
// that accepts arguments of the given types. Among applicable candidates the
// one with the most exact parameter matches wins; fixed arity beats varargs.
func (cp *ClassPath) Resolve(class, name string, args []TypeModel) *MethodModel {
	var candidates []MethodModel
	if name == ConstructorName {
		candidates = cp.Constructors(class)
	} else {
		candidates = cp.Methods(class, name)
	}
	var best *MethodModel
	bestScore := -1
	for i := range candidates {
		score, ok := cp.applicable(candidates[i], args)
		if !ok {
			continue
		}
		if score > bestScore {
			best, bestScore = &candidates[i], score
		}
	}
	return best
}

func (cp *ClassPath) applicable(m MethodModel, args []TypeModel) (int, bool) {
	params := m.ParameterTypes()
	score := 0
	fixed := len(params)
	if m.IsVarargs {
		fixed--
		if len(args) < fixed {
			return 0, false
		}
	} else if len(args) != len(params) {
		return 0, false
	}
	for i := 0; i < fixed; i++ {
		if !cp.IsAssignable(args[i], params[i]) {
			return 0, false
		}
		if args[i].Name != "" && SameType(args[i], params[i]) {
			score += 2
		}
	}
	if !m.IsVarargs {
		return score + 1, true
	}
	tail := params[fixed]
	if len(args) == len(params) && cp.IsAssignable(args[fixed], tail) && args[fixed].ArrayDepth == tail.ArrayDepth {
		return score, true
	}
	for _, a := range args[fixed:] {
		if !cp.IsAssignable(a, tail.Elem()) {
			return 0, false
		}
	}
	return score, true
}
