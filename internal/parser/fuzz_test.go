package parser

import (
	"errors"
	"testing"

	"blc/internal/ast"
	"blc/internal/lexer"
	"blc/internal/source"
	"blc/internal/token"
)

func FuzzParseProgram(f *testing.F) {
	for _, seed := range []string{
		"",
		"move",
		"IF true THEN move END IF",
		"IF random THEN a ELSE b END IF",
		"WHILE next-is-empty DO END WHILE",
		"IF THEN END",
		"END WHILE ELSE",
		"IF true THEN ; END IF",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, src string) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.bl", []byte(src)))
		toks := lexer.Tokenize(file, lexer.Options{})

		s := token.NewStream(toks)
		root, err := ParseProgram(s, Options{})
		if err != nil {
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("non-syntax error %T: %v", err, err)
			}
			if root != nil {
				t.Fatal("partial tree returned with error")
			}
			return
		}
		if s.Remaining() != 0 {
			t.Fatalf("%d tokens left after success", s.Remaining())
		}
		again, err := ParseProgram(token.NewStream(toks), Options{})
		if err != nil || !ast.Equal(root, again) {
			t.Fatalf("non-deterministic parse: %v", err)
		}
	})
}
