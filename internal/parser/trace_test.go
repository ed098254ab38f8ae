package parser

import (
	"bytes"
	"strings"
	"testing"

	"blc/internal/trace"
)

func TestNodeTracing(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	_, err := ParseProgram(words("IF true THEN move END IF"), Options{Tracer: tr})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"\u2192 program", "\u2192 if", "call (move)", "\u2190 if", "\u2190 program"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace output lacks %q:\n%s", want, out)
		}
	}
}

func TestNodeTracingRecordsFailure(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	_, _ = ParseProgram(words("WHILE true move"), Options{Tracer: tr})
	if !strings.Contains(buf.String(), "expected DO") {
		t.Fatalf("failure not traced:\n%s", buf.String())
	}
}

func TestTracingBelowDebugIsSilent(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDetail, trace.FormatText)
	if _, err := ParseProgram(words("IF true THEN move END IF"), Options{Tracer: tr}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}
