package lsp

import (
	"path/filepath"

	"blc/internal/diag"
	"blc/internal/driver"
	"blc/internal/project"
	"blc/internal/source"
	"blc/internal/token"
)

const diagnosticSource = "blc"

// document is an open editor buffer. result caches the last analysis and
// is dropped on every edit.
type document struct {
	uri       string
	path      string
	version   int
	text      string
	result    *driver.ParseResult
	published bool
}

func (d *document) update(text string, version int) {
	d.text = text
	d.version = version
	d.result = nil
}

// analyze parses the buffer, reusing the cached result while the text is
// unchanged.
func (s *Server) analyze(doc *document) *driver.ParseResult {
	s.mu.Lock()
	if doc.result != nil {
		res := doc.result
		s.mu.Unlock()
		return res
	}
	text, name := doc.text, doc.path
	s.mu.Unlock()
	if name == "" {
		name = doc.uri
	}

	res := driver.ParseSource(s.ctx, name, []byte(text), driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		Vocab:          s.vocabularyFor(doc.path),
	})

	s.mu.Lock()
	if doc.text == text {
		doc.result = res
	}
	s.mu.Unlock()
	return res
}

// vocabularyFor resolves the vocabulary of the project containing path.
// A broken bl.toml falls back to the default vocabulary.
func (s *Server) vocabularyFor(path string) *token.Vocabulary {
	if s.vocab != nil {
		return s.vocab
	}
	if path == "" {
		return token.DefaultVocabulary()
	}
	dir := filepath.Dir(path)
	s.mu.Lock()
	v, ok := s.vocabs[dir]
	s.mu.Unlock()
	if ok {
		return v
	}

	v = token.DefaultVocabulary()
	m, found, err := project.Load(dir)
	switch {
	case err != nil:
		s.logf("%s: %v", project.ManifestName, err)
	case found:
		if pv, verr := m.Vocabulary(); verr == nil {
			v = pv
		} else {
			s.logf("%s: %v", project.ManifestName, verr)
		}
	}
	s.mu.Lock()
	s.vocabs[dir] = v
	s.mu.Unlock()
	return v
}

func (s *Server) publishDiagnostics(uri string) error {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	res := s.analyze(doc)
	list := toLSPDiagnostics(uri, res.File, res.Bag.Items())

	s.mu.Lock()
	version := doc.version
	doc.published = len(list) > 0
	s.mu.Unlock()
	return s.sendPublish(uri, &version, list)
}

func (s *Server) sendPublish(uri string, version *int, list []lspDiagnostic) error {
	if list == nil {
		list = []lspDiagnostic{}
	}
	msg := map[string]any{
		"jsonrpc": "2.0",
		"method":  "textDocument/publishDiagnostics",
		"params": publishDiagnosticsParams{
			URI:         uri,
			Version:     version,
			Diagnostics: list,
		},
	}
	return s.send(msg)
}

func toLSPDiagnostics(uri string, file *source.File, items []diag.Diagnostic) []lspDiagnostic {
	out := make([]lspDiagnostic, 0, len(items))
	for i := range items {
		out = append(out, toLSPDiagnostic(uri, file, &items[i]))
	}
	return out
}

func toLSPDiagnostic(uri string, file *source.File, d *diag.Diagnostic) lspDiagnostic {
	out := lspDiagnostic{
		Range:    rangeForSpan(file, d.Primary),
		Severity: lspSeverity(d.Severity),
		Code:     d.Code.ID(),
		Source:   diagnosticSource,
		Message:  d.Message,
	}
	for _, n := range d.Notes {
		out.RelatedInformation = append(out.RelatedInformation, relatedInformation{
			Location: location{URI: uri, Range: rangeForSpan(file, n.Span)},
			Message:  n.Msg,
		})
	}
	return out
}

func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	default:
		return 3
	}
}
