package ast

import (
	"testing"

	"blc/internal/source"
)

var noSpan source.Span

func call(name string) *Stmt { return NewCall(noSpan, name) }

func block(children ...*Stmt) *Stmt { return NewBlock(noSpan, children...) }

func TestKindString(t *testing.T) {
	cases := map[StmtKind]string{
		StmtBlock:  "BLOCK",
		StmtIf:     "IF",
		StmtIfElse: "IF_ELSE",
		StmtWhile:  "WHILE",
		StmtCall:   "CALL",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
		back, ok := ParseStmtKind(want)
		if !ok || back != k {
			t.Errorf("ParseStmtKind(%q) = %v, %v", want, back, ok)
		}
	}
	if _, ok := ParseStmtKind("LOOP"); ok {
		t.Fatal("unknown kind must not parse")
	}
}

func TestAccessors(t *testing.T) {
	then := block(call("move"))
	els := block()
	s := NewIfElse(noSpan, "next-is-wall", then, els)

	if s.Kind() != StmtIfElse || s.Condition() != "next-is-wall" {
		t.Fatalf("unexpected node %v", s)
	}
	if s.Then() != then || s.Else() != els {
		t.Fatal("branches not preserved")
	}
	if s.Body() != nil || s.Name() != "" {
		t.Fatal("IF_ELSE has no body or name")
	}

	w := NewWhile(noSpan, "true", then)
	if w.Body() != then || w.Then() != nil {
		t.Fatal("WHILE body accessor mismatch")
	}
}

func TestChildrenIsCopy(t *testing.T) {
	b := block(call("a"), call("b"))
	kids := b.Children()
	kids[0] = call("z")
	if b.Child(0).Name() != "a" {
		t.Fatal("Children must return a copy")
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d", b.Len())
	}
	if block().Children() != nil {
		t.Fatal("empty block has no children")
	}
}

func TestConstructorsRejectNonBlockBody(t *testing.T) {
	cases := map[string]func(){
		"if":       func() { NewIf(noSpan, "c", call("x")) },
		"if-else":  func() { NewIfElse(noSpan, "c", block(), call("x")) },
		"while":    func() { NewWhile(noSpan, "c", nil) },
		"nilchild": func() { NewBlock(noSpan, nil) },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			fn()
		})
	}
}

func TestString(t *testing.T) {
	s := block(NewIf(noSpan, "COND-A", block(call("x"))), NewWhile(noSpan, "COND-B", block()))
	want := "BLOCK[IF(COND-A, BLOCK[CALL(x)]), WHILE(COND-B, BLOCK[])]"
	if got := s.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
