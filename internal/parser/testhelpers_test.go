package parser

import (
	"errors"
	"strings"
	"testing"

	"blc/internal/ast"
	"blc/internal/lexer"
	"blc/internal/source"
	"blc/internal/token"
)

var noSpan source.Span

// scenarioVocab has conditions COND-A and COND-B only.
func scenarioVocab(t testing.TB) *token.Vocabulary {
	t.Helper()
	v, err := token.NewVocabulary(nil, []string{"COND-A", "COND-B"})
	if err != nil {
		t.Fatalf("NewVocabulary: %v", err)
	}
	return v
}

func words(src string) *token.Stream {
	return token.FromStrings(strings.Fields(src)...)
}

// lexStream tokenizes src as a real file so that spans are populated.
func lexStream(t testing.TB, src string, vocab *token.Vocabulary) *token.Stream {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.bl", []byte(src)))
	return token.NewStream(lexer.Tokenize(file, lexer.Options{Vocab: vocab}))
}

func requireSyntaxError(t *testing.T, err error, kind ErrorKind) *SyntaxError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got no error", kind)
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
	}
	if se.Kind != kind {
		t.Fatalf("expected %s, got %s (%v)", kind, se.Kind, err)
	}
	return se
}

func call(name string) *ast.Stmt { return ast.NewCall(noSpan, name) }

func block(children ...*ast.Stmt) *ast.Stmt { return ast.NewBlock(noSpan, children...) }

func requireTree(t *testing.T, got, want *ast.Stmt) {
	t.Helper()
	if !ast.Equal(got, want) {
		t.Fatalf("tree mismatch:\n got: %s\nwant: %s", got, want)
	}
}
