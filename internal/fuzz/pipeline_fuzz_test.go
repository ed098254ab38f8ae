package fuzztests

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"blc/internal/format"
	"blc/internal/lexer"
	"blc/internal/parser"
	"blc/internal/source"
	"blc/internal/testkit"
	"blc/internal/token"
)

// parseTimeout is the maximum time allowed for one input.
const parseTimeout = 5 * time.Second

// FuzzParserSpans parses arbitrary input: the parser must return either a
// tree that satisfies the span invariants or a *SyntaxError, and must not
// hang.
func FuzzParserSpans(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.bl", input))
			toks := lexer.Tokenize(file, lexer.Options{})
			root, err := parser.ParseProgram(token.NewStream(toks), parser.Options{})
			if err != nil {
				var se *parser.SyntaxError
				if !errors.As(err, &se) {
					done <- err
					return
				}
				done <- nil
				return
			}
			done <- testkit.CheckSpanInvariants(root, file)
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("input %q: %v", truncateForLog(input, 200), err)
			}
		case <-ctx.Done():
			t.Fatalf("parser hang detected after %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzFormatIdempotent formats every parsable input twice; the second
// pass must not change anything.
func FuzzFormatIdempotent(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		once, err := format.FormatFile(fs.Get(fs.AddVirtual("a.bl", input)), format.Options{})
		if err != nil {
			return
		}
		twice, err := format.FormatFile(fs.Get(fs.AddVirtual("b.bl", once)), format.Options{})
		if err != nil {
			t.Fatalf("formatted output does not parse: %v\n%s", err, once)
		}
		if !bytes.Equal(once, twice) {
			t.Fatalf("format not idempotent\nonce:\n%s\ntwice:\n%s", once, twice)
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
