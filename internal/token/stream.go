package token

import "blc/internal/source"

// Stream is a consume-once cursor over an immutable token slice.
// It is owned by a single parse call; it is not safe for concurrent use.
type Stream struct {
	toks []Token
	pos  int
	end  source.Span
}

// NewStream wraps toks. A trailing EOF token, as produced by the lexer,
// is not part of the stream; its span becomes EndSpan.
func NewStream(toks []Token) *Stream {
	s := &Stream{toks: toks}
	if n := len(toks); n > 0 && toks[n-1].Kind == EOF {
		s.end = toks[n-1].Span
		s.toks = toks[:n-1]
	} else if n > 0 {
		s.end = toks[n-1].Span.ZeroideToEnd()
	}
	return s
}

// FromStrings builds a stream of word tokens without source positions.
// Tokens are classified against the default vocabulary only for display;
// the parser matches on Text.
func FromStrings(words ...string) *Stream {
	toks := make([]Token, len(words))
	for i, w := range words {
		kind := Other
		if IsIdentifier(w) {
			kind = DefaultVocabulary().Classify(w)
		}
		toks[i] = Token{Kind: kind, Text: w}
	}
	return &Stream{toks: toks}
}

// Peek returns the next token without consuming it.
func (s *Stream) Peek() (Token, bool) {
	if s.pos >= len(s.toks) {
		return Token{Kind: EOF, Span: s.end}, false
	}
	return s.toks[s.pos], true
}

// Dequeue removes and returns the next token. On an exhausted stream it
// returns an EOF token positioned at EndSpan and false.
func (s *Stream) Dequeue() (Token, bool) {
	tok, ok := s.Peek()
	if ok {
		s.pos++
	}
	return tok, ok
}

// Remaining returns the number of tokens not yet consumed.
func (s *Stream) Remaining() int {
	return len(s.toks) - s.pos
}

// Pos returns the index of the next token to be consumed.
func (s *Stream) Pos() int {
	return s.pos
}

// Len returns the total number of tokens in the stream.
func (s *Stream) Len() int {
	return len(s.toks)
}

// EndSpan is the zero-width span just past the last token.
func (s *Stream) EndSpan() source.Span {
	return s.end
}
