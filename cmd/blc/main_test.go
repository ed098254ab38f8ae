package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	teardown(root)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTokenizeJSON(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.bl", "WHILE true DO move END WHILE")
	res := runCLI(t, "tokenize", "--format", "json", path)
	if res.err != nil {
		t.Fatalf("tokenize: %v\n%s", res.err, res.stderr)
	}
	var toks []struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &toks); err != nil {
		t.Fatalf("bad json: %v\n%s", err, res.stdout)
	}
	if len(toks) != 7 || toks[1].Text != "true" || toks[1].Kind != "Condition" {
		t.Fatalf("tokens = %+v", toks)
	}
}

func TestParseFilePretty(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.bl", "IF next-is-wall THEN turnleft ELSE move END IF")
	res := runCLI(t, "parse", path)
	if res.err != nil {
		t.Fatalf("parse: %v\n%s", res.err, res.stderr)
	}
	for _, want := range []string{"BLOCK[1]", "IF_ELSE next-is-wall", "CALL turnleft", "CALL move"} {
		if !strings.Contains(res.stdout, want) {
			t.Fatalf("output missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestParseFileSyntaxError(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.bl", "IF true THEN move END WHILE")
	res := runCLI(t, "parse", path)
	if res.err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(res.stderr, "SYN2304") || !strings.Contains(res.stderr, "fix: replace with IF") {
		t.Fatalf("stderr:\n%s", res.stderr)
	}
	if res.stdout != "" {
		t.Fatalf("no tree expected, got:\n%s", res.stdout)
	}
}

func TestParseDirJSON(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.bl", "move")
	writeSource(t, dir, "b.bl", "WHILE random DO skip END WHILE")
	res := runCLI(t, "parse", "--format", "json", "--jobs", "2", dir)
	if res.err != nil {
		t.Fatalf("parse: %v\n%s", res.err, res.stderr)
	}
	var files []struct {
		File string `json:"file"`
		Root struct {
			Kind string `json:"kind"`
		} `json:"root"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &files); err != nil {
		t.Fatalf("bad json: %v\n%s", err, res.stdout)
	}
	if len(files) != 2 || files[0].Root.Kind != "BLOCK" || !strings.HasSuffix(files[1].File, "b.bl") {
		t.Fatalf("files = %+v", files)
	}
}

func TestParseUnknownFormat(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.bl", "move")
	if res := runCLI(t, "parse", "--format", "xml", path); res.err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseUsesManifestVocabulary(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "bl.toml", "[package]\nname = \"x\"\n\n[language]\nconditions = [\"COND-A\", \"COND-B\"]\n")
	path := writeSource(t, dir, "a.bl", "IF COND-A THEN CALL-X END IF")
	res := runCLI(t, "parse", "--format", "tree", path)
	if res.err != nil {
		t.Fatalf("parse: %v\n%s", res.err, res.stderr)
	}
	if !strings.Contains(res.stdout, "COND-A") {
		t.Fatalf("output:\n%s", res.stdout)
	}
}

func TestCheckReportsErrors(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	writeSource(t, dir, "good.bl", "move")
	writeSource(t, dir, "nested/bad.bl", "WHILE true move END WHILE")

	res := runCLI(t, "check", "--ui", "off", dir)
	if res.err == nil {
		t.Fatal("expected check to fail")
	}
	if !strings.Contains(res.stderr, "SYN2301") || !strings.Contains(res.stderr, "checked 2 files: 1 failed") {
		t.Fatalf("stderr:\n%s", res.stderr)
	}
}

func TestCheckUsesCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	writeSource(t, dir, "a.bl", "move")
	writeSource(t, dir, "b.bl", "turnleft")

	if res := runCLI(t, "check", "--ui", "off", dir); res.err != nil {
		t.Fatalf("first check: %v\n%s", res.err, res.stderr)
	}
	res := runCLI(t, "check", "--ui", "off", dir)
	if res.err != nil {
		t.Fatalf("second check: %v\n%s", res.err, res.stderr)
	}
	if !strings.Contains(res.stderr, "2 from cache") {
		t.Fatalf("stderr:\n%s", res.stderr)
	}
	res = runCLI(t, "check", "--ui", "off", "--no-cache", dir)
	if !strings.Contains(res.stderr, "0 from cache") {
		t.Fatalf("stderr with --no-cache:\n%s", res.stderr)
	}
}

func TestCheckManifestRoot(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	writeSource(t, dir, "bl.toml", "[package]\nname = \"x\"\n\n[check]\nroot = \"src\"\ncache = false\n")
	writeSource(t, dir, "src/a.bl", "move")
	writeSource(t, dir, "outside.bl", "END")
	t.Chdir(dir)

	res := runCLI(t, "check", "--ui", "off")
	if res.err != nil {
		t.Fatalf("check: %v\n%s", res.err, res.stderr)
	}
	if !strings.Contains(res.stderr, "checked 1 files: 0 failed, 0 from cache") {
		t.Fatalf("stderr:\n%s", res.stderr)
	}
}

func TestCheckJSON(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	writeSource(t, dir, "bad.bl", "IF true THEN move")
	res := runCLI(t, "check", "--ui", "off", "--format", "json", dir)
	if res.err == nil {
		t.Fatal("expected error")
	}
	var out struct {
		Count       int `json:"count"`
		Diagnostics []struct {
			Code string `json:"code"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &out); err != nil {
		t.Fatalf("bad json: %v\n%s", err, res.stdout)
	}
	if out.Count != 1 || out.Diagnostics[0].Code != "SYN2300" {
		t.Fatalf("out = %+v", out)
	}
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "robots")
	res := runCLI(t, "init", dir)
	if res.err != nil {
		t.Fatalf("init: %v", res.err)
	}
	for _, name := range []string{"bl.toml", "main.bl"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("%s not written: %v", name, err)
		}
	}
	if res := runCLI(t, "init", dir); res.err == nil {
		t.Fatal("second init must fail")
	}
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	if res := runCLI(t, "check", "--ui", "off", dir); res.err != nil {
		t.Fatalf("starter project must check cleanly: %v\n%s", res.err, res.stderr)
	}
}

func TestCacheClean(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	res := runCLI(t, "cache", "clean")
	if res.err != nil {
		t.Fatalf("cache clean: %v", res.err)
	}
	if !strings.Contains(res.stdout, filepath.Join(cacheHome, "blc")) {
		t.Fatalf("stdout = %q", res.stdout)
	}
}

func TestVersionJSON(t *testing.T) {
	res := runCLI(t, "version", "--format", "json")
	if res.err != nil {
		t.Fatal(res.err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(res.stdout), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "blc" || payload.Version == "" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestTraceToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.bl", "move")
	tracePath := filepath.Join(dir, "trace.ndjson")
	res := runCLI(t, "--trace", tracePath, "--trace-level", "debug", "parse", path)
	if res.err != nil {
		t.Fatalf("parse: %v", res.err)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"blc parse"`, `"call"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("trace missing %s:\n%s", want, data)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	cases := map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff}
	for in, want := range cases {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Fatal("expected error")
	}
}

func TestInvalidColorFlag(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.bl", "move")
	if res := runCLI(t, "--color", "purple", "parse", path); res.err == nil {
		t.Fatal("expected error for --color purple")
	}
}
