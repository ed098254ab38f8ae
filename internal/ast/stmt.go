package ast

import (
	"fmt"

	"blc/internal/source"
)

// Stmt is one node of the statement tree. The zero value is an empty BLOCK.
type Stmt struct {
	kind StmtKind
	span source.Span

	cond string // IF, IF_ELSE, WHILE
	name string // CALL

	then *Stmt // IF, IF_ELSE; WHILE keeps its body here
	els  *Stmt // IF_ELSE

	children []*Stmt // BLOCK
}

// NewBlock builds a BLOCK owning children in order.
func NewBlock(span source.Span, children ...*Stmt) *Stmt {
	for i, c := range children {
		if c == nil {
			panic(fmt.Sprintf("ast: nil child %d in block", i))
		}
	}
	return &Stmt{kind: StmtBlock, span: span, children: children}
}

// NewIf builds an IF node; then must be a BLOCK.
func NewIf(span source.Span, cond string, then *Stmt) *Stmt {
	mustBlock("IF then", then)
	return &Stmt{kind: StmtIf, span: span, cond: cond, then: then}
}

// NewIfElse builds an IF_ELSE node; both branches must be BLOCKs.
func NewIfElse(span source.Span, cond string, then, els *Stmt) *Stmt {
	mustBlock("IF_ELSE then", then)
	mustBlock("IF_ELSE else", els)
	return &Stmt{kind: StmtIfElse, span: span, cond: cond, then: then, els: els}
}

// NewWhile builds a WHILE node; body must be a BLOCK.
func NewWhile(span source.Span, cond string, body *Stmt) *Stmt {
	mustBlock("WHILE body", body)
	return &Stmt{kind: StmtWhile, span: span, cond: cond, then: body}
}

// NewCall builds a CALL leaf for the instruction name.
func NewCall(span source.Span, name string) *Stmt {
	return &Stmt{kind: StmtCall, span: span, name: name}
}

func mustBlock(what string, s *Stmt) {
	if s == nil || s.kind != StmtBlock {
		panic("ast: " + what + " must be a BLOCK")
	}
}

// Kind reports which of the five statement forms s is.
func (s *Stmt) Kind() StmtKind { return s.kind }

// Span covers the statement from its first token to its last.
func (s *Stmt) Span() source.Span { return s.span }

// Condition is the condition word of IF, IF_ELSE and WHILE; empty otherwise.
func (s *Stmt) Condition() string { return s.cond }

// Name is the identifier of a CALL; empty otherwise.
func (s *Stmt) Name() string { return s.name }

// Then returns the then-branch of IF and IF_ELSE.
func (s *Stmt) Then() *Stmt {
	if s.kind == StmtIf || s.kind == StmtIfElse {
		return s.then
	}
	return nil
}

// Else returns the else-branch of IF_ELSE.
func (s *Stmt) Else() *Stmt { return s.els }

// Body returns the body of WHILE.
func (s *Stmt) Body() *Stmt {
	if s.kind == StmtWhile {
		return s.then
	}
	return nil
}

// Len is the number of children of a BLOCK.
func (s *Stmt) Len() int { return len(s.children) }

// Child returns the i-th child of a BLOCK.
func (s *Stmt) Child(i int) *Stmt { return s.children[i] }

// Children returns a copy of the child list of a BLOCK.
func (s *Stmt) Children() []*Stmt {
	if len(s.children) == 0 {
		return nil
	}
	out := make([]*Stmt, len(s.children))
	copy(out, s.children)
	return out
}

// String renders the node in a compact single-line form,
// e.g. IF(COND-A, BLOCK[CALL(x)]).
func (s *Stmt) String() string {
	if s == nil {
		return "<nil>"
	}
	switch s.kind {
	case StmtCall:
		return "CALL(" + s.name + ")"
	case StmtIf:
		return fmt.Sprintf("IF(%s, %s)", s.cond, s.then)
	case StmtIfElse:
		return fmt.Sprintf("IF_ELSE(%s, %s, %s)", s.cond, s.then, s.els)
	case StmtWhile:
		return fmt.Sprintf("WHILE(%s, %s)", s.cond, s.then)
	default:
		out := "BLOCK["
		for i, c := range s.children {
			if i > 0 {
				out += ", "
			}
			out += c.String()
		}
		return out + "]"
	}
}
