package lexer

import (
	"unicode/utf8"

	"blc/internal/diag"
	"blc/internal/token"
)

// tooLongPrefix ограничивает текст Invalid-токена для слишком длинного слова.
const tooLongPrefix = 32

// scanWord сканирует слово и классифицирует его через словарь:
// Keyword, Condition или Ident. Регистр имеет значение.
func (lx *Lexer) scanWord() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	for {
		r, size := lx.peekRune()
		if size == 0 || !token.IsWordContinue(r) {
			break
		}
		lx.bumpRune()
	}
	if tok, ok := lx.checkLength(start); !ok {
		return tok
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	return token.Token{Kind: lx.vocab.Classify(text), Span: sp, Text: text}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDecByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if tok, ok := lx.checkLength(start); !ok {
		return tok
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Number, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanOther выдаёт один символ как отдельный токен.
func (lx *Lexer) scanOther(size int) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Advance(uint32(size))
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Other, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// checkLength reports an over-long token and fast-forwards to EOF.
func (lx *Lexer) checkLength(start Mark) (token.Token, bool) {
	sp := lx.cursor.SpanFrom(start)
	if sp.Len() <= maxTokenLength {
		return token.Token{}, true
	}
	lx.errLex(diag.LexTokenTooLong, sp, "token exceeds maximum length")
	lx.cursor.Advance(lx.cursor.Limit - lx.cursor.Off)
	return token.Token{Kind: token.Invalid, Span: sp, Text: clipText(lx.file.Content[sp.Start:sp.End])}, false
}

// clipText режет text до tooLongPrefix байт по границе руны и добавляет "...".
func clipText(text []byte) string {
	if len(text) <= tooLongPrefix {
		return string(text)
	}
	cut := tooLongPrefix
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return string(text[:cut]) + "..."
}
