package parser_test

import (
	"strings"
	"testing"

	"blc/internal/lexer"
	"blc/internal/parser"
	"blc/internal/source"
	"blc/internal/token"
)

func benchParse(b *testing.B, program string) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("bench.bl", []byte(program)))
	toks := lexer.Tokenize(file, lexer.Options{})

	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		if _, err := parser.ParseProgram(token.NewStream(toks), parser.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseShort(b *testing.B) {
	benchParse(b, "IF next-is-wall THEN turnleft ELSE move END IF")
}

func BenchmarkParseLarge(b *testing.B) {
	var sb strings.Builder
	for i := range 500 {
		if i%2 == 0 {
			sb.WriteString("WHILE next-is-empty DO move IF random THEN turnleft ELSE turnright END IF END WHILE\n")
		} else {
			sb.WriteString("infect skip\n")
		}
	}
	benchParse(b, sb.String())
}

func BenchmarkParseDeep(b *testing.B) {
	var sb strings.Builder
	for range 500 {
		sb.WriteString("IF true THEN ")
	}
	sb.WriteString("move ")
	for range 500 {
		sb.WriteString("END IF ")
	}
	benchParse(b, sb.String())
}
