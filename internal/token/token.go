package token

import (
	"unicode"
	"unicode/utf8"

	"blc/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsWord reports whether the token is a keyword, condition or identifier.
func (t Token) IsWord() bool {
	switch t.Kind {
	case Keyword, Condition, Ident:
		return true
	default:
		return false
	}
}

// IsIdentifier reports whether s has the shape of a BL word: a letter
// followed by letters, digits or '-'. It does not consult any vocabulary.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	r, size := utf8.DecodeRuneInString(s)
	if !unicode.IsLetter(r) {
		return false
	}
	for _, r := range s[size:] {
		if !IsWordContinue(r) {
			return false
		}
	}
	return true
}

// IsWordContinue reports whether r may appear after the first rune of a word.
func IsWordContinue(r rune) bool {
	return r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
