package editor

import (
	"fmt"

	"github.com/dhamidi/formkit/java/ast"
)

// StatementTarget describes where a statement goes: before or after an
// existing statement, or at the start or end of a block when Statement is
// NoHandle.
type StatementTarget struct {
	Block     ast.Handle
	Statement ast.Handle
	Before    bool
}

func Before(stmt ast.Handle) StatementTarget {
	return StatementTarget{Statement: stmt, Before: true}
}

func After(stmt ast.Handle) StatementTarget {
	return StatementTarget{Statement: stmt}
}

func BlockStart(block ast.Handle) StatementTarget {
	return StatementTarget{Block: block, Before: true}
}

func BlockEnd(block ast.Handle) StatementTarget {
	return StatementTarget{Block: block}
}

func (t StatementTarget) IsZero() bool {
	return !t.Block.IsValid() && !t.Statement.IsValid()
}

func (t StatementTarget) String() string {
	where := "after"
	if t.Before {
		where = "before"
	}
	if t.Statement.IsValid() {
		return fmt.Sprintf("%s statement %d", where, t.Statement)
	}
	if t.Before {
		return fmt.Sprintf("start of block %d", t.Block)
	}
	return fmt.Sprintf("end of block %d", t.Block)
}

// resolve returns the block and the index a new statement would occupy.
func (t StatementTarget) resolve(tree *ast.Tree) (ast.Handle, int, error) {
	if t.Statement.IsValid() {
		block := tree.Parent(t.Statement)
		if tree.Kind(block) != ast.KindBlock {
			return ast.NoHandle, 0, fmt.Errorf("target %s: statement is not inside a block", t)
		}
		index := tree.IndexOf(block, t.Statement)
		if !t.Before {
			index++
		}
		return block, index, nil
	}
	if tree.Kind(t.Block) != ast.KindBlock {
		return ast.NoHandle, 0, fmt.Errorf("target %s: not a block", t)
	}
	if t.Before {
		return t.Block, 0, nil
	}
	return t.Block, len(tree.Node(t.Block).Children), nil
}

// NodeTarget is the location at which an expression will be evaluated:
// either an existing node (an argument being rewritten in place) or a
// statement insertion point.
type NodeTarget struct {
	Node      ast.Handle
	Statement StatementTarget
}

func AtNode(h ast.Handle) NodeTarget {
	return NodeTarget{Node: h}
}

func AtStatement(t StatementTarget) NodeTarget {
	return NodeTarget{Statement: t}
}

// Anchor returns the statement the target is positioned relative to, or
// NoHandle for block-relative targets.
func (t NodeTarget) Anchor(tree *ast.Tree) ast.Handle {
	if t.Node.IsValid() {
		return tree.EnclosingStatement(t.Node)
	}
	return t.Statement.Statement
}

// IsBefore reports whether stmt already executes ahead of a statement
// inserted at target. For a block end target any statement inside the
// block, or ahead of it, qualifies.
func (e *Editor) IsBefore(stmt ast.Handle, target StatementTarget) bool {
	if !stmt.IsValid() || e.tree.IsDangling(stmt) {
		return false
	}
	if target.Statement.IsValid() {
		if stmt == target.Statement {
			return !target.Before
		}
		return e.tree.Precedes(stmt, target.Statement)
	}
	if target.Before {
		return false
	}
	for cur := e.tree.Parent(stmt); cur.IsValid(); cur = e.tree.Parent(cur) {
		if cur == target.Block {
			return true
		}
	}
	return e.tree.Precedes(stmt, target.Block)
}
