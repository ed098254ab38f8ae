package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"blc/internal/lexer"
	"blc/internal/source"
)

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.bl", []byte("IF true\nmove")))
	toks := lexer.Tokenize(file, lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`Keyword    "IF" at 1:1-1:3`, `Condition  "true"`, `Ident      "move" at 2:1-2:5`, "EOF"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var decoded []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 4 || decoded[2].Text != "move" || decoded[3].Kind != "EOF" {
		t.Fatalf("decoded = %+v", decoded)
	}
}
