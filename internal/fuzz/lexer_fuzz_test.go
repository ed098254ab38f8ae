package fuzztests

import (
	"testing"

	"blc/internal/diag"
	"blc/internal/lexer"
	"blc/internal/source"
	"blc/internal/token"
)

// FuzzLexerTokens checks that tokens come in source order, never overlap,
// stay inside the file and end with exactly one EOF.
func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.bl", input))

		bag := diag.NewBag(64)
		toks := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("token list must end with EOF: %v", toks)
		}
		var prevEnd uint32
		for i, tok := range toks {
			if tok.Kind == token.EOF && i != len(toks)-1 {
				t.Fatalf("EOF at %d of %d", i, len(toks))
			}
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start || int(tok.Span.End) > len(input) {
				t.Fatalf("token %d %q has bad span %v (prev end %d, len %d)", i, tok.Text, tok.Span, prevEnd, len(input))
			}
			if tok.Kind == token.Invalid && !bag.HasErrors() {
				t.Fatalf("invalid token %q without a diagnostic", tok.Text)
			}
			prevEnd = tok.Span.End
		}
	})
}
