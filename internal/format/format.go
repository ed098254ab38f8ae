package format

import (
	"errors"
	"fmt"

	"blc/internal/ast"
	"blc/internal/diag"
	"blc/internal/lexer"
	"blc/internal/parser"
	"blc/internal/source"
	"blc/internal/token"
)

// ErrInvalidTokens is returned when the lexer could not make sense of the
// input; the details go to Options.Reporter.
var ErrInvalidTokens = errors.New("format: source contains invalid tokens")

type Options struct {
	IndentWidth int
	UseTabs     bool
	// Vocab is the language vocabulary; nil means the default.
	Vocab *token.Vocabulary
	// Reporter receives lexer diagnostics. May be nil.
	Reporter diag.Reporter
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 2
	}
	if o.Vocab == nil {
		o.Vocab = token.DefaultVocabulary()
	}
	return o
}

// FormatFile lexes, parses and prints sf. A syntax error is returned as
// *parser.SyntaxError.
func FormatFile(sf *source.File, opt Options) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	opt = opt.withDefaults()
	toks := lexer.Tokenize(sf, lexer.Options{Reporter: opt.Reporter, Vocab: opt.Vocab})
	for _, tok := range toks {
		if tok.Kind == token.Invalid {
			return nil, ErrInvalidTokens
		}
	}
	root, err := parser.ParseProgram(token.NewStream(toks), parser.Options{Vocab: opt.Vocab})
	if err != nil {
		return nil, err
	}
	return FormatTree(sf.Content, toks, root, opt)
}

// FormatTree prints root, which must have been parsed from toks lexed out of
// content. Comments are recovered from the gaps between tokens.
func FormatTree(content []byte, toks []token.Token, root *ast.Stmt, opt Options) ([]byte, error) {
	if root == nil || root.Kind() != ast.StmtBlock {
		return nil, fmt.Errorf("format: root must be a BLOCK")
	}
	opt = opt.withDefaults()
	if n := len(toks); n > 0 && toks[n-1].Kind == token.EOF {
		toks = toks[:n-1]
	}
	p := printer{
		src:      content,
		toks:     toks,
		comments: collectComments(content, toks),
		w:        newWriter(opt, len(content)),
	}
	p.printProgram(root)
	return p.w.Bytes(), nil
}
