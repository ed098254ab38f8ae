package format

import (
	"bytes"
	"sort"

	"blc/internal/ast"
	"blc/internal/token"
)

type printer struct {
	src      []byte
	toks     []token.Token
	comments []comment
	next     int // first comment not yet printed
	// last is the source end of the previously printed line, -1 right
	// after a line that opens a body.
	last int
	w    *writer
}

func (p *printer) printProgram(root *ast.Stmt) {
	p.last = -1
	p.printBlock(root)
	p.flushBefore(len(p.src))
}

func (p *printer) printBlock(b *ast.Stmt) {
	for _, c := range b.Children() {
		start := int(c.Span().Start)
		p.flushBefore(start)
		p.blankBefore(start)
		p.printStmt(c)
		p.last = int(c.Span().End)
	}
}

func (p *printer) printStmt(s *ast.Stmt) {
	switch s.Kind() {
	case ast.StmtCall:
		p.w.Line(s.Name())
	case ast.StmtIf:
		p.open(token.KwIf + " " + s.Condition() + " " + token.KwThen)
		p.body(s.Then())
		p.closeWith(s, token.KwIf)
	case ast.StmtIfElse:
		p.open(token.KwIf + " " + s.Condition() + " " + token.KwThen)
		p.body(s.Then())
		p.w.Indent()
		p.flushBefore(p.elseOffset(s))
		p.w.Dedent()
		p.open(token.KwElse)
		p.body(s.Else())
		p.closeWith(s, token.KwIf)
	case ast.StmtWhile:
		p.open(token.KwWhile + " " + s.Condition() + " " + token.KwDo)
		p.body(s.Body())
		p.closeWith(s, token.KwWhile)
	}
}

// open prints a line that starts a body; blank lines never follow it.
func (p *printer) open(line string) {
	p.w.Line(line)
	p.last = -1
}

func (p *printer) body(b *ast.Stmt) {
	p.w.Indent()
	p.printBlock(b)
	p.w.Dedent()
}

// closeWith prints comments that sit before the END of s inside its body,
// then the terminator line.
func (p *printer) closeWith(s *ast.Stmt, word string) {
	p.w.Indent()
	p.flushBefore(p.endOffset(s))
	p.w.Dedent()
	p.w.Line(token.KwEnd + " " + word)
}

func (p *printer) flushBefore(offset int) {
	for p.next < len(p.comments) && p.comments[p.next].start < offset {
		c := p.comments[p.next]
		p.blankBefore(c.start)
		p.w.Line(c.text)
		p.last = c.end
		p.next++
	}
}

// blankBefore keeps one empty line where the source had at least one.
func (p *printer) blankBefore(start int) {
	if p.last >= 0 && start <= len(p.src) && p.last < start &&
		bytes.Count(p.src[p.last:start], []byte{'\n'}) >= 2 {
		p.w.Blank()
	}
}

// endOffset is the start of the END token closing s.
func (p *printer) endOffset(s *ast.Stmt) int {
	end := s.Span().End
	idx := sort.Search(len(p.toks), func(i int) bool { return p.toks[i].Span.End >= end })
	if idx == 0 || idx > len(p.toks) {
		return int(end)
	}
	return int(p.toks[idx-1].Span.Start)
}

// elseOffset is the start of the ELSE token of an IF_ELSE.
func (p *printer) elseOffset(s *ast.Stmt) int {
	from := s.Then().Span().End
	idx := sort.Search(len(p.toks), func(i int) bool { return p.toks[i].Span.Start >= from })
	for ; idx < len(p.toks); idx++ {
		if p.toks[idx].Text == token.KwElse {
			return int(p.toks[idx].Span.Start)
		}
	}
	return int(s.Else().Span().Start)
}
