package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blc/internal/ast"
	"blc/internal/diag"
	"blc/internal/lexer"
	"blc/internal/observ"
	"blc/internal/parser"
	"blc/internal/project"
	"blc/internal/source"
	"blc/internal/token"
	"blc/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Root is nil when the file has a syntax error.
	Root *ast.Stmt
	// Err is the syntax error that aborted the parse, if any.
	Err    *parser.SyntaxError
	Bag    *diag.Bag
	Cached bool
}

// Parse loads and parses a single file.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	res := parseFile(ctx, fs, fs.Get(fileID), opts)
	return &res, nil
}

// ParseSource parses in-memory content registered under name.
func ParseSource(ctx context.Context, name string, content []byte, opts Options) *ParseResult {
	fs := source.NewFileSet()
	res := parseFile(ctx, fs, fs.Get(fs.AddVirtual(name, content)), opts)
	return &res
}

// parseFile runs cache lookup, tokenizer and parser for one loaded file.
func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) ParseResult {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file:"+file.Path, trace.CurrentSpan(ctx).SpanID)
	defer span.End("")

	vocab := opts.vocab()
	res := ParseResult{FileSet: fs, File: file, Bag: diag.NewBag(opts.MaxDiagnostics)}
	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}

	key := cacheKey(file, vocab)
	if opts.Cache != nil {
		idx := beginPhase(timer, "cache")
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err == nil && hit {
			if root, se, ok := payload.restore(file.ID); ok {
				endPhase(timer, idx, "hit")
				res.Root, res.Err, res.Cached = root, se, true
				if se != nil {
					reportSyntaxError(diag.BagReporter{Bag: res.Bag}, se, vocab)
				}
				span.WithExtra("cache", "hit")
				appendTimings(res.Bag, timer, file)
				return res
			}
		}
		endPhase(timer, idx, "miss")
	}

	idx := beginPhase(timer, "tokenize")
	toks := lexer.Tokenize(file, lexer.Options{
		Reporter: diag.BagReporter{Bag: res.Bag},
		Vocab:    vocab,
	})
	endPhase(timer, idx, fmt.Sprintf("%d tokens", len(toks)))

	idx = beginPhase(timer, "parse")
	nodeTracer := tracer
	if !tracer.Level().ShouldEmit(trace.ScopeNode) {
		nodeTracer = nil
	}
	root, err := parser.ParseProgram(token.NewStream(toks), parser.Options{Vocab: vocab, Tracer: nodeTracer})
	endPhase(timer, idx, "")

	if err != nil {
		var se *parser.SyntaxError
		if !errors.As(err, &se) {
			// parser only returns syntax errors
			panic(fmt.Errorf("unexpected parser error: %w", err))
		}
		res.Err = se
		reportSyntaxError(diag.BagReporter{Bag: res.Bag}, se, vocab)
	} else {
		res.Root = root
	}

	// lexer diagnostics are not reproduced from the cache, so only clean
	// lexes are stored
	if opts.Cache != nil && lexClean(res.Bag, res.Err) {
		if err := opts.Cache.Put(key, newDiskPayload(file.Path, res.Root, res.Err)); err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache-put-failed", err.Error(), span.ID())
		}
	}
	appendTimings(res.Bag, timer, file)
	return res
}

func lexClean(bag *diag.Bag, se *parser.SyntaxError) bool {
	n := bag.Len()
	if se != nil {
		n--
	}
	return n == 0
}

func cacheKey(file *source.File, vocab *token.Vocabulary) project.Digest {
	return project.Combine(project.Digest(file.Hash), project.VocabularyDigest(vocab))
}

// reportSyntaxError turns a syntax error into a diagnostic, with a fix
// where the repair is unambiguous.
func reportSyntaxError(r diag.Reporter, se *parser.SyntaxError, vocab *token.Vocabulary) {
	b := diag.ReportError(r, se.Code(), se.Span, se.Message())
	switch se.Kind {
	case parser.ExpectedKeyword:
		at := source.Span{File: se.Span.File, Start: se.Span.Start, End: se.Span.Start}
		b.WithFix("insert "+se.Expected, diag.FixEdit{Span: at, NewText: se.Expected + " "})
	case parser.MismatchedTerminator:
		want := strings.TrimPrefix(se.Expected, token.KwEnd+" ")
		if se.Found.Text == token.KwIf || se.Found.Text == token.KwWhile {
			b.WithFix("replace with "+want, diag.FixEdit{Span: se.Span, NewText: want})
		}
	case parser.InvalidCondition:
		b.WithNote(se.Span, "known conditions: "+strings.Join(vocab.Conditions(), ", "))
	case parser.UnexpectedEndOfInput:
		b.WithNote(se.Span, "input ends here")
	}
	b.Emit()
}

func beginPhase(t *observ.Timer, name string) int {
	if t == nil {
		return -1
	}
	return t.Begin(name)
}

func endPhase(t *observ.Timer, idx int, note string) {
	if t != nil {
		t.End(idx, note)
	}
}
