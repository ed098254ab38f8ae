package lsp

import (
	"encoding/json"
	"fmt"

	"blc/internal/lexer"
	"blc/internal/token"
)

var keywordDocs = map[string]string{
	token.KwIf:    "`IF cond THEN ... [ELSE ...] END IF` runs the first block when the condition holds.",
	token.KwThen:  "Opens the body of an `IF`.",
	token.KwElse:  "Starts the alternative block of an `IF`.",
	token.KwEnd:   "Closes an `IF` or `WHILE`; must be followed by the matching word.",
	token.KwWhile: "`WHILE cond DO ... END WHILE` repeats the block while the condition holds.",
	token.KwDo:    "Opens the body of a `WHILE`.",
}

var conditionDocs = map[string]string{
	"next-is-empty":      "The cell ahead is empty.",
	"next-is-not-empty":  "The cell ahead is occupied.",
	"next-is-wall":       "The cell ahead is a wall.",
	"next-is-not-wall":   "The cell ahead is not a wall.",
	"next-is-friend":     "The cell ahead holds a creature of the same species.",
	"next-is-not-friend": "The cell ahead does not hold a friend.",
	"next-is-enemy":      "The cell ahead holds a creature of another species.",
	"next-is-not-enemy":  "The cell ahead does not hold an enemy.",
	"random":             "True or false with equal probability.",
	"true":               "Always true.",
}

func (s *Server) handleHover(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	res, vocab := s.lookup(params.TextDocument.URI)
	if res == nil {
		return s.sendResponse(msg.ID, nil)
	}
	off := offsetForPosition(res.File, params.Position)
	toks := lexer.Tokenize(res.File, lexer.Options{Vocab: vocab})
	for _, tok := range toks {
		if tok.Kind == token.EOF || off < tok.Span.Start || off >= tok.Span.End {
			continue
		}
		text := hoverText(tok)
		if text == "" {
			break
		}
		r := rangeForSpan(res.File, tok.Span)
		return s.sendResponse(msg.ID, hover{
			Contents: markupContent{Kind: "markdown", Value: text},
			Range:    &r,
		})
	}
	return s.sendResponse(msg.ID, nil)
}

func hoverText(tok token.Token) string {
	switch tok.Kind {
	case token.Keyword:
		if doc, ok := keywordDocs[tok.Text]; ok {
			return fmt.Sprintf("**%s** keyword\n\n%s", tok.Text, doc)
		}
		return fmt.Sprintf("**%s** reserved word", tok.Text)
	case token.Condition:
		if doc, ok := conditionDocs[tok.Text]; ok {
			return fmt.Sprintf("**%s** condition\n\n%s", tok.Text, doc)
		}
		return fmt.Sprintf("**%s** condition declared in bl.toml", tok.Text)
	case token.Ident:
		return fmt.Sprintf("**%s** instruction call", tok.Text)
	default:
		return ""
	}
}
