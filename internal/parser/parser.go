package parser

import (
	"blc/internal/ast"
	"blc/internal/source"
	"blc/internal/token"
	"blc/internal/trace"
)

type Options struct {
	// Vocab defines reserved words and conditions; nil means the default.
	Vocab *token.Vocabulary
	// Tracer receives node-scope events; nil disables tracing.
	Tracer trace.Tracer
}

// Parser: состояние одного разбора. Поток принадлежит ему целиком.
type Parser struct {
	s      *token.Stream
	vocab  *token.Vocabulary
	tracer trace.Tracer
	parent uint64 // текущий trace span
}

func newParser(s *token.Stream, opts Options) *Parser {
	p := &Parser{s: s, vocab: opts.Vocab, tracer: opts.Tracer}
	if p.vocab == nil {
		p.vocab = token.DefaultVocabulary()
	}
	if p.tracer == nil {
		p.tracer = trace.Nop
	}
	return p
}

// ParseBlock parses statements until the next token is ELSE, END or the
// stream is exhausted. Those tokens are left in the stream.
func ParseBlock(s *token.Stream, opts Options) (*ast.Stmt, error) {
	return newParser(s, opts).parseBlock()
}

// ParseStatement parses exactly one statement.
func ParseStatement(s *token.Stream, opts Options) (*ast.Stmt, error) {
	return newParser(s, opts).parseStatement()
}

// ParseProgram parses a block and requires the stream to be exhausted.
func ParseProgram(s *token.Stream, opts Options) (*ast.Stmt, error) {
	p := newParser(s, opts)
	done := p.enter("program")
	root, err := p.parseBlock()
	if err == nil {
		if tok, ok := p.s.Peek(); ok {
			err = p.fail(UnexpectedToken, "end of input", tok, p.s.Pos())
		}
	}
	done(err)
	if err != nil {
		return nil, err
	}
	return root, nil
}

// parseBlock: { statement }, до ELSE, END или конца потока.
func (p *Parser) parseBlock() (*ast.Stmt, error) {
	first, _ := p.s.Peek()
	var children []*ast.Stmt
	for {
		tok, ok := p.s.Peek()
		if !ok || tok.Text == token.KwElse || tok.Text == token.KwEnd {
			break
		}
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		children = append(children, st)
	}

	sp := source.Span{File: first.Span.File, Start: first.Span.Start, End: first.Span.Start}
	if n := len(children); n > 0 {
		sp = children[0].Span().Cover(children[n-1].Span())
	}
	return ast.NewBlock(sp, children...), nil
}

// parseStatement выбирает продукцию по первому токену.
func (p *Parser) parseStatement() (*ast.Stmt, error) {
	tok, ok := p.s.Dequeue()
	if !ok {
		return nil, p.fail(UnexpectedEndOfInput, "statement", tok, p.s.Pos())
	}
	switch tok.Text {
	case token.KwIf:
		return p.parseIf(tok)
	case token.KwWhile:
		return p.parseWhile(tok)
	default:
		return p.parseCall(tok)
	}
}

func (p *Parser) parseCall(tok token.Token) (*ast.Stmt, error) {
	if p.vocab.IsReserved(tok.Text) {
		return nil, p.fail(ReservedWordAsIdentifier, "instruction name", tok, p.s.Pos()-1)
	}
	if !token.IsIdentifier(tok.Text) {
		return nil, p.fail(InvalidIdentifier, "instruction name", tok, p.s.Pos()-1)
	}
	if p.tracer.Enabled() {
		trace.Point(p.tracer, trace.ScopeNode, "call", tok.Text, p.parent)
	}
	return ast.NewCall(tok.Span, tok.Text), nil
}

// fail builds the error. EOF tokens are always reported as
// UnexpectedEndOfInput whatever kind the caller expected.
func (p *Parser) fail(kind ErrorKind, expected string, found token.Token, pos int) error {
	if found.Kind == token.EOF {
		kind = UnexpectedEndOfInput
		pos = p.s.Len()
	}
	return &SyntaxError{
		Kind:     kind,
		Expected: expected,
		Found:    found,
		Pos:      pos,
		Span:     found.Span,
	}
}

// enter opens a node-scope trace span; the returned func closes it.
func (p *Parser) enter(name string) func(error) {
	if !p.tracer.Enabled() {
		return func(error) {}
	}
	sp := trace.Begin(p.tracer, trace.ScopeNode, name, p.parent)
	prev := p.parent
	p.parent = sp.ID()
	return func(err error) {
		p.parent = prev
		detail := ""
		if err != nil {
			detail = err.Error()
		}
		sp.End(detail)
	}
}
