package ast

import (
	"testing"

	"blc/internal/source"
)

func TestEqualIgnoresSpans(t *testing.T) {
	a := NewBlock(source.Span{Start: 0, End: 10}, NewCall(source.Span{Start: 0, End: 4}, "move"))
	b := block(call("move"))
	if !Equal(a, b) {
		t.Fatal("trees differing only in spans must be equal")
	}
}

func TestEqualDetectsDifferences(t *testing.T) {
	base := block(NewIf(noSpan, "c", block(call("x"))))
	cases := []struct {
		name  string
		other *Stmt
	}{
		{"condition", block(NewIf(noSpan, "d", block(call("x"))))},
		{"kind", block(NewWhile(noSpan, "c", block(call("x"))))},
		{"name", block(NewIf(noSpan, "c", block(call("y"))))},
		{"length", block(NewIf(noSpan, "c", block(call("x"), call("x"))))},
		{"else", block(NewIfElse(noSpan, "c", block(call("x")), block()))},
	}
	for _, tc := range cases {
		if Equal(base, tc.other) {
			t.Errorf("%s: trees must differ", tc.name)
		}
	}
	if !Equal(nil, nil) || Equal(base, nil) {
		t.Fatal("nil handling")
	}
}

func TestWalkPreOrder(t *testing.T) {
	root := block(
		NewIfElse(noSpan, "c", block(call("a")), block(call("b"))),
		call("c"),
	)
	var got []string
	var depths []int
	Walk(root, func(s *Stmt, depth int) bool {
		got = append(got, s.Kind().String()+":"+s.Name())
		depths = append(depths, depth)
		return true
	})
	want := []string{"BLOCK:", "IF_ELSE:", "BLOCK:", "CALL:a", "BLOCK:", "CALL:b", "CALL:c"}
	wantDepth := []int{0, 1, 2, 3, 2, 3, 1}
	if len(got) != len(want) {
		t.Fatalf("visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] || depths[i] != wantDepth[i] {
			t.Errorf("step %d: got %s@%d, want %s@%d", i, got[i], depths[i], want[i], wantDepth[i])
		}
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	root := block(NewWhile(noSpan, "c", block(call("a"))))
	n := 0
	Walk(root, func(s *Stmt, _ int) bool {
		n++
		return s.Kind() != StmtWhile
	})
	if n != 2 {
		t.Fatalf("visited %d nodes, want 2", n)
	}
}

func TestDepth(t *testing.T) {
	if d := Depth(call("x")); d != 0 {
		t.Fatalf("call depth = %d", d)
	}
	if d := Depth(block()); d != 0 {
		t.Fatalf("empty block depth = %d", d)
	}
	nested := block(call("x"))
	for range 5 {
		nested = block(NewWhile(noSpan, "c", nested))
	}
	if d := Depth(nested); d != 5 {
		t.Fatalf("nested depth = %d, want 5", d)
	}
	ie := NewIfElse(noSpan, "c", block(), block(NewIf(noSpan, "c", block())))
	if d := Depth(ie); d != 2 {
		t.Fatalf("if-else depth = %d, want 2", d)
	}
}

func TestCount(t *testing.T) {
	root := block(call("a"), NewIf(noSpan, "c", block(call("b"))), NewWhile(noSpan, "c", block()))
	counts := Count(root)
	want := map[StmtKind]int{StmtBlock: 3, StmtCall: 2, StmtIf: 1, StmtWhile: 1}
	for k, n := range want {
		if counts[k] != n {
			t.Errorf("Count[%s] = %d, want %d", k, counts[k], n)
		}
	}
	if counts[StmtIfElse] != 0 {
		t.Fatal("no IF_ELSE expected")
	}
}
