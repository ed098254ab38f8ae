package parser

import (
	"blc/internal/ast"
	"blc/internal/token"
)

// parseIf: IF condition THEN block [ELSE block] END IF.
// ifTok уже съеден.
func (p *Parser) parseIf(ifTok token.Token) (st *ast.Stmt, err error) {
	done := p.enter("if")
	defer func() { done(err) }()

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if err = p.expectKeyword(token.KwThen); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var els *ast.Stmt
	if tok, ok := p.s.Peek(); ok && tok.Text == token.KwElse {
		p.s.Dequeue()
		if els, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}

	closeTok, err := p.expectTerminator(token.KwIf)
	if err != nil {
		return nil, err
	}

	sp := ifTok.Span.Cover(closeTok.Span)
	if els != nil {
		return ast.NewIfElse(sp, cond, then, els), nil
	}
	return ast.NewIf(sp, cond, then), nil
}

// parseWhile: WHILE condition DO block END WHILE.
func (p *Parser) parseWhile(whileTok token.Token) (st *ast.Stmt, err error) {
	done := p.enter("while")
	defer func() { done(err) }()

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if err = p.expectKeyword(token.KwDo); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	closeTok, err := p.expectTerminator(token.KwWhile)
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(whileTok.Span.Cover(closeTok.Span), cond, body), nil
}

func (p *Parser) parseCondition() (string, error) {
	tok, ok := p.s.Dequeue()
	if !ok || !p.vocab.IsCondition(tok.Text) {
		return "", p.fail(InvalidCondition, "condition", tok, p.s.Pos()-1)
	}
	return tok.Text, nil
}

// expectKeyword съедает обязательное ключевое слово (THEN, DO).
func (p *Parser) expectKeyword(kw string) error {
	tok, ok := p.s.Dequeue()
	if !ok || tok.Text != kw {
		return p.fail(ExpectedKeyword, kw, tok, p.s.Pos()-1)
	}
	return nil
}

// expectTerminator съедает END и закрывающее слово; возвращает последнее.
func (p *Parser) expectTerminator(kw string) (token.Token, error) {
	want := token.KwEnd + " " + kw
	endTok, ok := p.s.Dequeue()
	if !ok || endTok.Text != token.KwEnd {
		return endTok, p.fail(MismatchedTerminator, want, endTok, p.s.Pos()-1)
	}
	closeTok, ok := p.s.Dequeue()
	if !ok || closeTok.Text != kw {
		return closeTok, p.fail(MismatchedTerminator, want, closeTok, p.s.Pos()-1)
	}
	return closeTok, nil
}
