package directive

import (
	"strings"
	"testing"

	"blc/internal/source"
)

func virtualFile(t *testing.T, name, content string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual(name, []byte(content)))
}

func TestCollectFromFile(t *testing.T) {
	file := virtualFile(t, "walk.bl", "move\n#! expect: ok\n  #! expect: SYN2304 at 3:5\n# plain comment\n#!expect:SYN2300\n")
	r := NewRegistry()

	n, err := r.CollectFromFile(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 || r.Len() != 3 {
		t.Fatalf("expected 3 directives, got n=%d len=%d", n, r.Len())
	}

	got := r.ForFile("walk.bl")
	if !got[0].Clean || got[0].Line != 2 || got[0].Index != 0 {
		t.Errorf("first scenario: %+v", got[0])
	}
	if got[1].Code != "SYN2304" || got[1].At == nil || *got[1].At != (source.LineCol{Line: 3, Col: 5}) {
		t.Errorf("second scenario: %+v", got[1])
	}
	if got[1].Index != 1 || got[1].Line != 3 {
		t.Errorf("second scenario index/line: %+v", got[1])
	}
	if got[2].Code != "SYN2300" || got[2].At != nil {
		t.Errorf("third scenario: %+v", got[2])
	}
}

func TestCollectFromFileErrors(t *testing.T) {
	cases := []struct {
		name, content, want string
	}{
		{"unknown", "#! skip: yes\n", "unknown directive"},
		{"no colon", "#! expect\n", "malformed directive"},
		{"extra words", "#! expect: SYN2304 near 3:5\n", "malformed expectation"},
		{"bad position", "#! expect: SYN2304 at 3\n", "LINE:COL"},
		{"zero line", "#! expect: SYN2304 at 0:1\n", "bad line"},
		{"bad column", "#! expect: SYN2304 at 1:x\n", "bad column"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegistry().CollectFromFile(virtualFile(t, "bad.bl", tc.content))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) || !strings.HasPrefix(err.Error(), "bad.bl:1:") {
				t.Errorf("error %q should mention %q with location", err, tc.want)
			}
		})
	}
}

func TestRegistryFilesAndIndices(t *testing.T) {
	r := NewRegistry()
	r.Add(&Scenario{SourceFile: "b.bl", Clean: true})
	r.Add(&Scenario{SourceFile: "a.bl", Code: "SYN2301"})
	r.Add(&Scenario{SourceFile: "b.bl", Code: "SYN2300"})

	files := r.Files()
	if len(files) != 2 || files[0] != "b.bl" || files[1] != "a.bl" {
		t.Errorf("files = %v", files)
	}
	b := r.ForFile("b.bl")
	if len(b) != 2 || b[0].Index != 0 || b[1].Index != 1 {
		t.Errorf("b.bl scenarios = %+v", b)
	}
	if a := r.ForFile("a.bl"); len(a) != 1 || a[0].Index != 0 {
		t.Errorf("a.bl scenarios = %+v", a)
	}
	if len(r.ForFile("missing.bl")) != 0 {
		t.Errorf("expected no scenarios for unknown file")
	}
	if n, err := r.CollectFromFile(nil); n != 0 || err != nil {
		t.Errorf("nil file: n=%d err=%v", n, err)
	}
}

func TestScenarioName(t *testing.T) {
	at := source.LineCol{Line: 2, Col: 4}
	cases := map[string]Scenario{
		"x.bl#0 ok":             {SourceFile: "x.bl", Clean: true},
		"x.bl#1 SYN2301":        {SourceFile: "x.bl", Index: 1, Code: "SYN2301"},
		"x.bl#2 SYN2301 at 2:4": {SourceFile: "x.bl", Index: 2, Code: "SYN2301", At: &at},
	}
	for want, s := range cases {
		if got := s.Name(); got != want {
			t.Errorf("Name() = %q, want %q", got, want)
		}
	}
}
