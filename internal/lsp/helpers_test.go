package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
)

// session feeds framed client messages to a server and decodes its replies.
type session struct {
	t   *testing.T
	in  bytes.Buffer
	seq int
}

func newSession(t *testing.T) *session {
	t.Helper()
	return &session{t: t}
}

func (s *session) frame(msg map[string]any) {
	s.t.Helper()
	payload, err := json.Marshal(msg)
	if err != nil {
		s.t.Fatalf("marshal: %v", err)
	}
	if err := writeMessage(&s.in, payload); err != nil {
		s.t.Fatalf("frame: %v", err)
	}
}

// request queues a request and returns its id.
func (s *session) request(method string, params any) int {
	s.seq++
	s.frame(map[string]any{"jsonrpc": "2.0", "id": s.seq, "method": method, "params": params})
	return s.seq
}

func (s *session) notify(method string, params any) {
	s.frame(map[string]any{"jsonrpc": "2.0", "method": method, "params": params})
}

// run executes the queued script and returns everything the server sent.
func (s *session) run(opts ServerOptions) ([]rpcMessage, error) {
	s.t.Helper()
	var out bytes.Buffer
	err := NewServer(&s.in, &out, opts).Run(context.Background())
	r := bufio.NewReader(&out)
	var msgs []rpcMessage
	for {
		payload, rerr := readMessage(r)
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			s.t.Fatalf("read reply: %v", rerr)
		}
		var msg rpcMessage
		if jerr := json.Unmarshal(payload, &msg); jerr != nil {
			s.t.Fatalf("decode reply: %v", jerr)
		}
		msgs = append(msgs, msg)
	}
	return msgs, err
}

func responseFor(t *testing.T, msgs []rpcMessage, id int, out any) *rpcError {
	t.Helper()
	want, _ := json.Marshal(id)
	for _, m := range msgs {
		if m.Method != "" || !bytes.Equal(m.ID, want) {
			continue
		}
		if m.Error != nil {
			return m.Error
		}
		if out != nil {
			if err := json.Unmarshal(m.Result, out); err != nil {
				t.Fatalf("decode result %d: %v", id, err)
			}
		}
		return nil
	}
	t.Fatalf("no response for id %d", id)
	return nil
}

func publications(t *testing.T, msgs []rpcMessage) []publishDiagnosticsParams {
	t.Helper()
	var out []publishDiagnosticsParams
	for _, m := range msgs {
		if m.Method != "textDocument/publishDiagnostics" {
			continue
		}
		var p publishDiagnosticsParams
		if err := json.Unmarshal(m.Params, &p); err != nil {
			t.Fatalf("decode publish: %v", err)
		}
		out = append(out, p)
	}
	return out
}

func docID(uri string) map[string]any {
	return map[string]any{"uri": uri}
}

func openParams(uri, text string) map[string]any {
	return map[string]any{"textDocument": map[string]any{"uri": uri, "languageId": "bl", "version": 1, "text": text}}
}
