package ast

// Visitor is called for every node in pre-order. Returning false skips
// the children of the node.
type Visitor func(s *Stmt, depth int) bool

// Walk traverses root in pre-order. The root has depth 0; each nested
// BLOCK is one level deeper than its owner.
func Walk(root *Stmt, fn Visitor) {
	if root == nil {
		return
	}
	walk(root, 0, fn)
}

func walk(s *Stmt, depth int, fn Visitor) {
	if !fn(s, depth) {
		return
	}
	switch s.kind {
	case StmtBlock:
		for _, c := range s.children {
			walk(c, depth+1, fn)
		}
	case StmtIf, StmtWhile:
		walk(s.then, depth+1, fn)
	case StmtIfElse:
		walk(s.then, depth+1, fn)
		walk(s.els, depth+1, fn)
	}
}

// Depth is the nesting depth of control statements: CALL and an empty
// BLOCK have depth 0, every IF, IF_ELSE or WHILE adds one.
func Depth(s *Stmt) int {
	if s == nil {
		return 0
	}
	switch s.kind {
	case StmtBlock:
		d := 0
		for _, c := range s.children {
			d = max(d, Depth(c))
		}
		return d
	case StmtIf, StmtWhile:
		return 1 + Depth(s.then)
	case StmtIfElse:
		return 1 + max(Depth(s.then), Depth(s.els))
	default:
		return 0
	}
}

// Count returns how many statements of each kind root contains,
// root included.
func Count(root *Stmt) map[StmtKind]int {
	counts := make(map[StmtKind]int, 5)
	Walk(root, func(s *Stmt, _ int) bool {
		counts[s.kind]++
		return true
	})
	return counts
}

// Equal reports structural equality. Spans are ignored.
func Equal(a, b *Stmt) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind || a.cond != b.cond || a.name != b.name {
		return false
	}
	switch a.kind {
	case StmtBlock:
		if len(a.children) != len(b.children) {
			return false
		}
		for i := range a.children {
			if !Equal(a.children[i], b.children[i]) {
				return false
			}
		}
		return true
	case StmtIf, StmtWhile:
		return Equal(a.then, b.then)
	case StmtIfElse:
		return Equal(a.then, b.then) && Equal(a.els, b.els)
	default:
		return true
	}
}
