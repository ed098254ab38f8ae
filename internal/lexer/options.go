package lexer

import (
	"blc/internal/diag"
	"blc/internal/source"
	"blc/internal/token"
)

type Options struct {
	// Reporter может быть nil, тогда ошибки игнорируем (но продолжаем лексить).
	Reporter diag.Reporter
	// Vocab classifies words; nil means token.DefaultVocabulary().
	Vocab *token.Vocabulary
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}
