// Package testkit holds structural checks shared by tests and fuzzers.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"blc/internal/ast"
	"blc/internal/source"
)

// CheckSpanInvariants verifies the spans of a parsed tree:
//  1. every span points into sf and stays within its content;
//  2. every non-BLOCK statement has a non-empty span;
//  3. children lie inside their parent, in source order, without overlap;
//  4. a non-empty BLOCK spans exactly from its first child to its last.
func CheckSpanInvariants(root *ast.Stmt, sf *source.File) error {
	if root == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	if root.Kind() != ast.StmtBlock {
		return fmt.Errorf("root is %s, want BLOCK", root.Kind())
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	return checkStmt(root, sf.ID, lenContent)
}

func checkStmt(s *ast.Stmt, file source.FileID, limit uint32) error {
	sp := s.Span()
	if sp.File != file {
		return fmt.Errorf("%s span points to file %d, want %d", s.Kind(), sp.File, file)
	}
	if sp.End < sp.Start || sp.End > limit {
		return fmt.Errorf("%s span %d..%d outside content of %d bytes", s.Kind(), sp.Start, sp.End, limit)
	}
	if s.Kind() != ast.StmtBlock && sp.End == sp.Start {
		return fmt.Errorf("empty %s span at %d", s.Kind(), sp.Start)
	}

	children := childrenOf(s)
	var prevEnd uint32
	for i, c := range children {
		cs := c.Span()
		// пустые блоки допускаются на границе родителя
		if cs.Start < sp.Start || cs.End > sp.End {
			return fmt.Errorf("%s child %d span %d..%d escapes parent %d..%d", s.Kind(), i, cs.Start, cs.End, sp.Start, sp.End)
		}
		if i > 0 && cs.Start < prevEnd {
			return fmt.Errorf("%s child %d starts at %d before previous end %d", s.Kind(), i, cs.Start, prevEnd)
		}
		prevEnd = cs.End
		if err := checkStmt(c, file, limit); err != nil {
			return err
		}
	}
	if s.Kind() == ast.StmtBlock && len(children) > 0 {
		first, last := children[0].Span(), children[len(children)-1].Span()
		if sp.Start != first.Start || sp.End != last.End {
			return fmt.Errorf("BLOCK span %d..%d does not match children %d..%d", sp.Start, sp.End, first.Start, last.End)
		}
	}
	return nil
}

func childrenOf(s *ast.Stmt) []*ast.Stmt {
	switch s.Kind() {
	case ast.StmtBlock:
		return s.Children()
	case ast.StmtIf:
		return []*ast.Stmt{s.Then()}
	case ast.StmtIfElse:
		return []*ast.Stmt{s.Then(), s.Else()}
	case ast.StmtWhile:
		return []*ast.Stmt{s.Body()}
	default:
		return nil
	}
}
