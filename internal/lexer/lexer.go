package lexer

import (
	"unicode/utf8"

	"blc/internal/diag"
	"blc/internal/source"
	"blc/internal/token"
)

// maxTokenLength bounds a single word or number, in bytes.
const maxTokenLength = 1024

// Lexer splits one BL source file into tokens. Whitespace and '#' comments
// are discarded; every other character belongs to exactly one token.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	vocab  *token.Vocabulary
	look   *token.Token // 1 элементный буфер для токена
}

func New(file *source.File, opts Options) *Lexer {
	vocab := opts.Vocab
	if vocab == nil {
		vocab = token.DefaultVocabulary()
	}
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		vocab:  vocab,
	}
}

// Tokenize collects every token of file, including the trailing EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

// Next возвращает следующий значимый токен.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	r, size := lx.peekRune()
	switch {
	case r == utf8.RuneError && size <= 1:
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "invalid UTF-8 byte")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	case isWordStart(r):
		return lx.scanWord()
	case isDec(r):
		return lx.scanNumber()
	default:
		return lx.scanOther(size)
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan is the zero-width span at the current cursor position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
