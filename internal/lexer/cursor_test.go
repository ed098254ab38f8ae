package lexer

import (
	"testing"

	"blc/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.bl", []byte(content))
	return fs.Get(id)
}

func TestSequentialReading(t *testing.T) {
	file := createFile("abc")
	c := NewCursor(file)

	for i, want := range []byte("abc") {
		if c.EOF() {
			t.Fatalf("unexpected EOF at %d", i)
		}
		if got := c.Bump(); got != want {
			t.Fatalf("byte %d: want %q, got %q", i, want, got)
		}
	}
	if !c.EOF() {
		t.Fatal("expected EOF")
	}
	if c.Bump() != 0 || c.Peek() != 0 {
		t.Fatal("reading past EOF must yield 0")
	}
}

func TestMarkSpanReset(t *testing.T) {
	file := createFile("hello world")
	c := NewCursor(file)
	c.Advance(6)
	m := c.Mark()
	c.Advance(5)
	sp := c.SpanFrom(m)
	if sp.Start != 6 || sp.End != 11 {
		t.Fatalf("span = %v, want 6..11", sp)
	}
	c.Reset(m)
	if c.Peek() != 'w' {
		t.Fatalf("after reset want 'w', got %q", c.Peek())
	}
	c.Advance(100)
	if c.Off != c.Limit {
		t.Fatalf("Advance must clamp to limit, off=%d limit=%d", c.Off, c.Limit)
	}
}
