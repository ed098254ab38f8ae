package lexer

import (
	"testing"

	"blc/internal/diag"
	"blc/internal/source"
	"blc/internal/token"
)

type testReporter struct {
	items []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.items = append(r.items, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

func makeTestLexer(input string) (*Lexer, *testReporter) {
	rep := &testReporter{}
	return New(createFile(input), Options{Reporter: rep}), rep
}

func collectAllTokens(lx *Lexer) []token.Token {
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestWordsAndKeywords(t *testing.T) {
	lx, rep := makeTestLexer("IF next-is-wall THEN\n  turnleft\nEND IF")
	toks := collectAllTokens(lx)

	want := []struct {
		kind token.Kind
		text string
	}{
		{token.Keyword, "IF"},
		{token.Condition, "next-is-wall"},
		{token.Keyword, "THEN"},
		{token.Ident, "turnleft"},
		{token.Keyword, "END"},
		{token.Keyword, "IF"},
		{token.EOF, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Errorf("token %d: got %v %q, want %v %q", i, toks[i].Kind, toks[i].Text, w.kind, w.text)
		}
	}
	if len(rep.items) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.items)
	}
}

func TestSpans(t *testing.T) {
	lx, _ := makeTestLexer("  move  step")
	toks := collectAllTokens(lx)
	if toks[0].Span.Start != 2 || toks[0].Span.End != 6 {
		t.Fatalf("move span = %v", toks[0].Span)
	}
	if toks[1].Span.Start != 8 || toks[1].Span.End != 12 {
		t.Fatalf("step span = %v", toks[1].Span)
	}
	if eof := toks[2]; eof.Span.Start != 12 || !eof.Span.Empty() {
		t.Fatalf("EOF span = %v", eof.Span)
	}
}

func TestCommentsAndNonWords(t *testing.T) {
	lx, _ := makeTestLexer("# header\nmove 42; # trailing\nx1")
	toks := collectAllTokens(lx)
	kinds := []token.Kind{token.Ident, token.Number, token.Other, token.Ident, token.EOF}
	texts := []string{"move", "42", ";", "x1", ""}
	if len(toks) != len(kinds) {
		t.Fatalf("got %d tokens: %v", len(toks), toks)
	}
	for i := range kinds {
		if toks[i].Kind != kinds[i] || toks[i].Text != texts[i] {
			t.Errorf("token %d: got %v %q, want %v %q", i, toks[i].Kind, toks[i].Text, kinds[i], texts[i])
		}
	}
}

func TestCaseSensitiveKeywords(t *testing.T) {
	lx, _ := makeTestLexer("if If IF")
	toks := collectAllTokens(lx)
	if toks[0].Kind != token.Ident || toks[1].Kind != token.Ident || toks[2].Kind != token.Keyword {
		t.Fatalf("unexpected kinds: %v %v %v", toks[0].Kind, toks[1].Kind, toks[2].Kind)
	}
}

func TestCustomVocabulary(t *testing.T) {
	vocab, err := token.NewVocabulary([]string{"PROGRAM"}, []string{"COND-A"})
	if err != nil {
		t.Fatalf("NewVocabulary: %v", err)
	}
	toks := Tokenize(createFile("PROGRAM COND-A next-is-wall"), Options{Vocab: vocab})
	if toks[0].Kind != token.Keyword || toks[1].Kind != token.Condition || toks[2].Kind != token.Ident {
		t.Fatalf("unexpected kinds: %v", toks)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("next = %q", n.Text)
	}
	for range 3 {
		if lx.Next().Kind != token.EOF {
			t.Fatal("expected EOF to repeat")
		}
	}
}

func TestInvalidUTF8(t *testing.T) {
	lx, rep := makeTestLexer("a \xff b")
	toks := collectAllTokens(lx)
	if toks[1].Kind != token.Invalid {
		t.Fatalf("want Invalid token, got %v", toks[1])
	}
	if toks[2].Text != "b" {
		t.Fatalf("lexing must continue after invalid byte, got %v", toks[2])
	}
	if len(rep.items) != 1 || rep.items[0].Code != diag.LexUnknownChar {
		t.Fatalf("want one LexUnknownChar, got %v", rep.items)
	}
}

func TestUnicodeWords(t *testing.T) {
	lx, _ := makeTestLexer("sch\u00f6n \u0431\u0435\u0433")
	toks := collectAllTokens(lx)
	if len(toks) != 3 || toks[0].Text != "sch\u00f6n" || toks[1].Text != "\u0431\u0435\u0433" {
		t.Fatalf("unexpected tokens: %v", toks)
	}
}
