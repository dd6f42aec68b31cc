package ast

type NodeKind int

const (
	KindError NodeKind = iota

	// Compilation unit level
	KindCompilationUnit
	KindOpaqueMember

	// Declarations
	KindClassDecl
	KindFieldDecl
	KindMethodDecl
	KindConstructorDecl
	KindParameter

	// Statements
	KindBlock
	KindExprStmt
	KindLocalVarDecl
	KindVarDeclarator
	KindConstructorCall
	KindReturnStmt
	KindOpaqueStmt

	// Expressions
	KindCallExpr
	KindNewExpr
	KindNewArrayExpr
	KindArrayInit
	KindName
	KindFieldAccess
	KindLiteral
	KindThis
	KindAssignExpr
	KindOpaqueExpr
)

var nodeKindNames = map[NodeKind]string{
	KindError:           "Error",
	KindCompilationUnit: "CompilationUnit",
	KindOpaqueMember:    "OpaqueMember",
	KindClassDecl:       "ClassDecl",
	KindFieldDecl:       "FieldDecl",
	KindMethodDecl:      "MethodDecl",
	KindConstructorDecl: "ConstructorDecl",
	KindParameter:       "Parameter",
	KindBlock:           "Block",
	KindExprStmt:        "ExprStmt",
	KindLocalVarDecl:    "LocalVarDecl",
	KindVarDeclarator:   "VarDeclarator",
	KindConstructorCall: "ConstructorCall",
	KindReturnStmt:      "ReturnStmt",
	KindOpaqueStmt:      "OpaqueStmt",
	KindCallExpr:        "CallExpr",
	KindNewExpr:         "NewExpr",
	KindNewArrayExpr:    "NewArrayExpr",
	KindArrayInit:       "ArrayInit",
	KindName:            "Name",
	KindFieldAccess:     "FieldAccess",
	KindLiteral:         "Literal",
	KindThis:            "This",
	KindAssignExpr:      "AssignExpr",
	KindOpaqueExpr:      "OpaqueExpr",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsStatement reports whether nodes of this kind can appear directly in a block.
func (k NodeKind) IsStatement() bool {
	switch k {
	case KindExprStmt, KindLocalVarDecl, KindConstructorCall, KindReturnStmt, KindOpaqueStmt, KindBlock:
		return true
	}
	return false
}

// IsExpression reports whether nodes of this kind are expressions.
func (k NodeKind) IsExpression() bool {
	switch k {
	case KindCallExpr, KindNewExpr, KindNewArrayExpr, KindArrayInit, KindName,
		KindFieldAccess, KindLiteral, KindThis, KindAssignExpr, KindOpaqueExpr:
		return true
	}
	return false
}

// Handle identifies a node inside a Tree. Handles are never reused, so two
// handles are equal exactly when they denote the same node.
type Handle int

const NoHandle Handle = 0

func (h Handle) IsValid() bool {
	return h != NoHandle
}

type Position struct {
	Line   int
	Column int
}

type Span struct {
	Start Position
	End   Position
}

// Node is one syntax element. Field use depends on Kind:
//
//	ClassDecl        Name, Type (superclass), Modifiers, Children (members)
//	FieldDecl        Type, Modifiers, Children (declarators)
//	MethodDecl       Name, Type (return type), Modifiers, Params, Body
//	ConstructorDecl  Name, Modifiers, Params, Body
//	Parameter        Name, Type, Varargs
//	Block            Children (statements)
//	ExprStmt         Children[0] (expression)
//	LocalVarDecl     Type, Modifiers, Children (declarators)
//	VarDeclarator    Name, Children[0] (initializer, optional)
//	ConstructorCall  Name ("super" or "this"), Children (arguments)
//	ReturnStmt       Children[0] (value, optional)
//	CallExpr         Name, Receiver (optional), Children (arguments)
//	NewExpr          Type, Children (arguments)
//	NewArrayExpr     Type, Children[0] (ArrayInit, optional)
//	ArrayInit        Children (elements)
//	Name             Name
//	FieldAccess      Name, Receiver
//	Literal          Text
//	AssignExpr       Children[0] (left), Children[1] (right)
//	Opaque*          Text (verbatim source)
type Node struct {
	Kind      NodeKind
	Name      string
	Type      string
	Text      string
	Modifiers []string
	Varargs   bool
	Receiver  Handle
	Params    []Handle
	Body      Handle
	Children  []Handle
	Comments  []string
	Span      Span
	parent    Handle
}

func (n *Node) Parent() Handle {
	return n.parent
}

// Child returns the i-th entry of Children, or NoHandle when out of range.
func (n *Node) Child(i int) Handle {
	if i < 0 || i >= len(n.Children) {
		return NoHandle
	}
	return n.Children[i]
}
