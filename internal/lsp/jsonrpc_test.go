package lsp

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestMessageRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	for _, p := range []string{`{"a":1}`, `{"b":"ü"}`} {
		if err := writeMessage(&buf, []byte(p)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	r := bufio.NewReader(&buf)
	for _, want := range []string{`{"a":1}`, `{"b":"ü"}`} {
		got, err := readMessage(r)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestReadMessageHeaders(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("Content-Type: application/vscode-jsonrpc\r\ncontent-length: 2\r\n\r\n{}"))
	got, err := readMessage(r)
	if err != nil || string(got) != "{}" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestReadMessageErrors(t *testing.T) {
	cases := map[string]string{
		"missing length": "X-Other: 1\r\n\r\n{}",
		"bad length":     "Content-Length: abc\r\n\r\n{}",
		"too large":      "Content-Length: 999999999\r\n\r\n",
		"short body":     "Content-Length: 10\r\n\r\n{}",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := readMessage(bufio.NewReader(strings.NewReader(input))); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	_, err := readMessage(bufio.NewReader(strings.NewReader("\r\n")))
	if !errors.Is(err, errMissingLength) {
		t.Errorf("expected errMissingLength, got %v", err)
	}
}
