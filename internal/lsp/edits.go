package lsp

import (
	"encoding/json"

	"blc/internal/ast"
	"blc/internal/format"
	"blc/internal/source"
)

func (s *Server) handleFormatting(msg *rpcMessage) error {
	var params documentFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	res, vocab := s.lookup(params.TextDocument.URI)
	if res == nil || res.Root == nil {
		// nothing sensible to format
		return s.sendResponse(msg.ID, []textEdit{})
	}
	out, err := format.FormatFile(res.File, format.Options{
		IndentWidth: params.Options.TabSize,
		UseTabs:     !params.Options.InsertSpaces,
		Vocab:       vocab,
	})
	if err != nil || string(out) == string(res.File.Content) {
		return s.sendResponse(msg.ID, []textEdit{})
	}
	whole := source.Span{File: res.File.ID, Start: 0, End: safeUint32(len(res.File.Content))}
	return s.sendResponse(msg.ID, []textEdit{{
		Range:   rangeForSpan(res.File, whole),
		NewText: string(out),
	}})
}

func (s *Server) handleFoldingRange(msg *rpcMessage) error {
	var params foldingRangeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	res, _ := s.lookup(params.TextDocument.URI)
	if res == nil || res.Root == nil {
		return s.sendResponse(msg.ID, []foldingRange{})
	}
	return s.sendResponse(msg.ID, foldingRanges(res.File, res.Root))
}

// foldingRanges folds every multi-line IF or WHILE down to the line before
// its END.
func foldingRanges(file *source.File, root *ast.Stmt) []foldingRange {
	out := []foldingRange{}
	ast.Walk(root, func(st *ast.Stmt, _ int) bool {
		switch st.Kind() {
		case ast.StmtIf, ast.StmtIfElse, ast.StmtWhile:
			r := rangeForSpan(file, st.Span())
			if r.End.Line-1 > r.Start.Line {
				out = append(out, foldingRange{StartLine: r.Start.Line, EndLine: r.End.Line - 1, Kind: "region"})
			}
		}
		return true
	})
	return out
}

func (s *Server) handleCodeAction(msg *rpcMessage) error {
	var params codeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	uri := canonicalURI(params.TextDocument.URI)
	res, _ := s.lookup(uri)
	actions := []codeAction{}
	if res == nil {
		return s.sendResponse(msg.ID, actions)
	}
	items := res.Bag.Items()
	for i := range items {
		d := &items[i]
		if len(d.Fixes) == 0 || !rangesOverlap(rangeForSpan(res.File, d.Primary), params.Range) {
			continue
		}
		ld := toLSPDiagnostic(uri, res.File, d)
		for _, fix := range d.Fixes {
			edits := make([]textEdit, 0, len(fix.Edits))
			for _, e := range fix.Edits {
				edits = append(edits, textEdit{Range: rangeForSpan(res.File, e.Span), NewText: e.NewText})
			}
			actions = append(actions, codeAction{
				Title:       fix.Title,
				Kind:        "quickfix",
				Diagnostics: []lspDiagnostic{ld},
				IsPreferred: len(d.Fixes) == 1,
				Edit:        workspaceEdit{Changes: map[string][]textEdit{uri: edits}},
			})
		}
	}
	return s.sendResponse(msg.ID, actions)
}

func comparePos(a, b position) int {
	if a.Line != b.Line {
		return a.Line - b.Line
	}
	return a.Character - b.Character
}

// rangesOverlap treats ranges as closed so that a cursor touching a
// diagnostic still selects it.
func rangesOverlap(a, b lspRange) bool {
	return comparePos(a.Start, b.End) <= 0 && comparePos(b.Start, a.End) <= 0
}
