package ast

import "fmt"

// Tree is an arena of nodes. Every node belongs to exactly one Tree and is
// addressed by its Handle; edits rewire handles but never move nodes.
type Tree struct {
	nodes []Node
	root  Handle
}

func NewTree() *Tree {
	return &Tree{nodes: make([]Node, 1)}
}

func (t *Tree) Root() Handle {
	return t.root
}

func (t *Tree) SetRoot(h Handle) {
	t.root = h
}

// Len returns the number of allocated nodes, detached ones included.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// Node returns the node for h, or nil for NoHandle and unknown handles.
func (t *Tree) Node(h Handle) *Node {
	if h <= NoHandle || int(h) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[h]
}

func (t *Tree) Kind(h Handle) NodeKind {
	if n := t.Node(h); n != nil {
		return n.Kind
	}
	return KindError
}

// Add allocates n and adopts every handle it references.
func (t *Tree) Add(n Node) Handle {
	t.nodes = append(t.nodes, n)
	h := Handle(len(t.nodes) - 1)
	t.nodes[h].parent = NoHandle
	for _, e := range t.Edges(h) {
		t.nodes[e].parent = h
	}
	return h
}

func (t *Tree) Parent(h Handle) Handle {
	if n := t.Node(h); n != nil {
		return n.parent
	}
	return NoHandle
}

// Edges lists the sub-nodes of h in source order.
func (t *Tree) Edges(h Handle) []Handle {
	n := t.Node(h)
	if n == nil {
		return nil
	}
	var edges []Handle
	if n.Receiver.IsValid() {
		edges = append(edges, n.Receiver)
	}
	edges = append(edges, n.Params...)
	edges = append(edges, n.Children...)
	if n.Body.IsValid() {
		edges = append(edges, n.Body)
	}
	return edges
}

// IndexOf returns the position of child in parent's Children, or -1.
func (t *Tree) IndexOf(parent, child Handle) int {
	n := t.Node(parent)
	if n == nil {
		return -1
	}
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

func (t *Tree) InsertChild(parent Handle, index int, child Handle) error {
	n := t.Node(parent)
	if n == nil {
		return fmt.Errorf("insert child: invalid parent %d", parent)
	}
	if index < 0 || index > len(n.Children) {
		return fmt.Errorf("insert child: index %d out of range [0,%d]", index, len(n.Children))
	}
	t.Detach(child)
	n.Children = append(n.Children, NoHandle)
	copy(n.Children[index+1:], n.Children[index:])
	n.Children[index] = child
	t.nodes[child].parent = parent
	return nil
}

func (t *Tree) AppendChild(parent, child Handle) error {
	n := t.Node(parent)
	if n == nil {
		return fmt.Errorf("append child: invalid parent %d", parent)
	}
	return t.InsertChild(parent, len(n.Children), child)
}

// RemoveChild detaches the index-th entry of parent's Children and returns it.
func (t *Tree) RemoveChild(parent Handle, index int) (Handle, error) {
	n := t.Node(parent)
	if n == nil {
		return NoHandle, fmt.Errorf("remove child: invalid parent %d", parent)
	}
	if index < 0 || index >= len(n.Children) {
		return NoHandle, fmt.Errorf("remove child: index %d out of range [0,%d)", index, len(n.Children))
	}
	child := n.Children[index]
	n.Children = append(n.Children[:index], n.Children[index+1:]...)
	t.nodes[child].parent = NoHandle
	return child, nil
}

// Detach unlinks h from its parent, whichever slot holds it.
func (t *Tree) Detach(h Handle) {
	n := t.Node(h)
	if n == nil || !n.parent.IsValid() {
		return
	}
	p := &t.nodes[n.parent]
	switch {
	case p.Receiver == h:
		p.Receiver = NoHandle
	case p.Body == h:
		p.Body = NoHandle
	default:
		p.Params = removeHandle(p.Params, h)
		p.Children = removeHandle(p.Children, h)
	}
	n.parent = NoHandle
}

// Replace puts replacement into the slot currently held by old.
func (t *Tree) Replace(old, replacement Handle) error {
	n := t.Node(old)
	if n == nil {
		return fmt.Errorf("replace: invalid node %d", old)
	}
	parent := n.parent
	if !parent.IsValid() {
		if t.root == old {
			t.root = replacement
			return nil
		}
		return fmt.Errorf("replace: node %d is detached", old)
	}
	t.Detach(replacement)
	p := &t.nodes[parent]
	switch {
	case p.Receiver == old:
		p.Receiver = replacement
	case p.Body == old:
		p.Body = replacement
	default:
		if !replaceHandle(p.Children, old, replacement) && !replaceHandle(p.Params, old, replacement) {
			return fmt.Errorf("replace: node %d not found in parent %d", old, parent)
		}
	}
	n.parent = NoHandle
	t.nodes[replacement].parent = parent
	return nil
}

// IsDangling reports whether h is no longer reachable from the root.
func (t *Tree) IsDangling(h Handle) bool {
	for cur := h; cur.IsValid(); cur = t.Parent(cur) {
		if cur == t.root {
			return false
		}
	}
	return true
}

// EnclosingStatement returns the smallest statement containing h (h itself
// if it is a statement). Blocks are never returned.
func (t *Tree) EnclosingStatement(h Handle) Handle {
	for cur := h; cur.IsValid(); cur = t.Parent(cur) {
		k := t.Kind(cur)
		if k.IsStatement() && k != KindBlock {
			return cur
		}
		if k == KindMethodDecl || k == KindConstructorDecl || k == KindClassDecl || k == KindFieldDecl {
			return NoHandle
		}
	}
	return NoHandle
}

// Enclosing returns the nearest ancestor of h (h excluded) with one of kinds.
func (t *Tree) Enclosing(h Handle, kinds ...NodeKind) Handle {
	for cur := t.Parent(h); cur.IsValid(); cur = t.Parent(cur) {
		k := t.Kind(cur)
		for _, want := range kinds {
			if k == want {
				return cur
			}
		}
	}
	return NoHandle
}

// Walk visits h and its descendants in source order. Returning false from
// fn skips the subtree of the visited node.
func (t *Tree) Walk(h Handle, fn func(Handle) bool) {
	if !h.IsValid() || !fn(h) {
		return
	}
	for _, e := range t.Edges(h) {
		t.Walk(e, fn)
	}
}

// Precedes reports whether a starts before b in source order. Both nodes
// must be attached to the tree.
func (t *Tree) Precedes(a, b Handle) bool {
	pa, pb := t.path(a), t.path(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			return pa[i] < pb[i]
		}
	}
	return len(pa) < len(pb)
}

func (t *Tree) path(h Handle) []int {
	var rev []int
	for cur := h; cur.IsValid(); {
		parent := t.Parent(cur)
		if !parent.IsValid() {
			break
		}
		for i, e := range t.Edges(parent) {
			if e == cur {
				rev = append(rev, i)
				break
			}
		}
		cur = parent
	}
	path := make([]int, len(rev))
	for i := range rev {
		path[i] = rev[len(rev)-1-i]
	}
	return path
}

func removeHandle(list []Handle, h Handle) []Handle {
	for i, e := range list {
		if e == h {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func replaceHandle(list []Handle, old, replacement Handle) bool {
	for i, e := range list {
		if e == old {
			list[i] = replacement
			return true
		}
	}
	return false
}
