package lsp

import (
	"path/filepath"
	"strings"
	"testing"

	"blc/internal/source"
)

func virtual(content string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("t.bl", []byte(content)))
}

func TestPositionOffsetConversion(t *testing.T) {
	// "é" is 2 bytes / 1 unit, "😀" is 4 bytes / 2 units
	file := virtual("move\n# é😀x\nturn")
	cases := []struct {
		off uint32
		pos position
	}{
		{0, position{0, 0}},
		{4, position{0, 4}},
		{5, position{1, 0}},
		{7, position{1, 2}},
		{9, position{1, 3}},
		{13, position{1, 5}},
		{14, position{1, 6}},
		{15, position{2, 0}},
		{19, position{2, 4}},
	}
	for _, tc := range cases {
		if got := positionForOffset(file, tc.off); got != tc.pos {
			t.Errorf("positionForOffset(%d) = %+v, want %+v", tc.off, got, tc.pos)
		}
		if got := offsetForPosition(file, tc.pos); got != tc.off {
			t.Errorf("offsetForPosition(%+v) = %d, want %d", tc.pos, got, tc.off)
		}
	}
}

func TestOffsetForPositionClamps(t *testing.T) {
	file := virtual("ab\ncd")
	if got := offsetForPosition(file, position{Line: 0, Character: 99}); got != 2 {
		t.Errorf("past line end: got %d", got)
	}
	if got := offsetForPosition(file, position{Line: 9, Character: 0}); got != 5 {
		t.Errorf("past last line: got %d", got)
	}
	if got := offsetForPosition(file, position{Line: -1}); got != 0 {
		t.Errorf("negative line: got %d", got)
	}
	if got := positionForOffset(file, 99); got != (position{Line: 1, Character: 2}) {
		t.Errorf("past content: got %+v", got)
	}
}

func TestApplyChanges(t *testing.T) {
	text := "IF true THEN\n  move\nEND WHILE\n"
	text = applyChanges(text, []textDocumentContentChangeEvent{{
		Range: &lspRange{Start: position{2, 4}, End: position{2, 9}},
		Text:  "IF",
	}})
	if text != "IF true THEN\n  move\nEND IF\n" {
		t.Fatalf("incremental edit: %q", text)
	}
	text = applyChanges(text, []textDocumentContentChangeEvent{
		{Text: "move\n"},
		{Range: &lspRange{Start: position{1, 0}, End: position{1, 0}}, Text: "turn\n"},
	})
	if text != "move\nturn\n" {
		t.Fatalf("full then incremental: %q", text)
	}
}

func TestURIConversion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my walker.bl")
	uri := pathToURI(path)
	if !strings.HasPrefix(uri, "file:///") || !strings.HasSuffix(uri, "/my%20walker.bl") {
		t.Errorf("unexpected uri %q", uri)
	}
	if got := uriToPath(uri); got != path {
		t.Errorf("uriToPath(%q) = %q, want %q", uri, got, path)
	}
	if got := uriToPath("untitled:Untitled-1"); got != "" {
		t.Errorf("non-file uri should map to empty path, got %q", got)
	}
	if got := canonicalURI("untitled:Untitled-1"); got != "untitled:Untitled-1" {
		t.Errorf("non-file uri should be kept, got %q", got)
	}
	if canonicalURI(uri) != uri {
		t.Errorf("canonical form should be stable")
	}
}
