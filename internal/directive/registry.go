package directive

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"fortio.org/safecast"

	"blc/internal/source"
)

const directivePrefix = "#!"

// Registry collects expectation scenarios from BL files.
// CollectFromFile may be called from several goroutines.
type Registry struct {
	mu        sync.Mutex
	scenarios []Scenario
	byFile    map[string][]int // path -> indices into scenarios
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		scenarios: make([]Scenario, 0),
		byFile:    make(map[string][]int),
	}
}

// Add registers a scenario and assigns its per-file index.
func (r *Registry) Add(scenario *Scenario) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := len(r.scenarios)
	scenario.Index = len(r.byFile[scenario.SourceFile])
	r.scenarios = append(r.scenarios, *scenario)
	r.byFile[scenario.SourceFile] = append(r.byFile[scenario.SourceFile], idx)
}

// All returns all registered scenarios in registration order.
func (r *Registry) All() []Scenario {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Scenario(nil), r.scenarios...)
}

// ForFile returns the scenarios registered for path.
func (r *Registry) ForFile(path string) []Scenario {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.byFile[path]
	out := make([]Scenario, 0, len(idx))
	for _, i := range idx {
		out = append(out, r.scenarios[i])
	}
	return out
}

// Files returns the distinct files that carry directives, in first-seen order.
func (r *Registry) Files() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(r.byFile))
	var files []string
	for _, s := range r.scenarios {
		if !seen[s.SourceFile] {
			seen[s.SourceFile] = true
			files = append(files, s.SourceFile)
		}
	}
	return files
}

// Len returns the total number of scenarios.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.scenarios)
}

// CollectFromFile scans file for `#! expect:` lines and registers them.
// It returns the number of directives found.
func (r *Registry) CollectFromFile(file *source.File) (int, error) {
	if file == nil {
		return 0, nil
	}
	found := 0
	for i, line := range bytes.Split(file.Content, []byte("\n")) {
		text := strings.TrimSpace(string(line))
		if !strings.HasPrefix(text, directivePrefix) {
			continue
		}
		lineNo, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			return found, err
		}
		sc, err := parseDirective(strings.TrimSpace(text[len(directivePrefix):]))
		if err != nil {
			return found, fmt.Errorf("%s:%d: %w", file.Path, lineNo, err)
		}
		sc.SourceFile = file.Path
		sc.Line = lineNo
		r.Add(&sc)
		found++
	}
	return found, nil
}

// parseDirective understands:
//
//	expect: ok
//	expect: SYN2304
//	expect: SYN2304 at 3:5
func parseDirective(body string) (Scenario, error) {
	name, rest, ok := strings.Cut(body, ":")
	if !ok {
		return Scenario{}, fmt.Errorf("malformed directive %q", body)
	}
	if strings.TrimSpace(name) != "expect" {
		return Scenario{}, fmt.Errorf("unknown directive %q", strings.TrimSpace(name))
	}
	fields := strings.Fields(rest)
	switch {
	case len(fields) == 1 && fields[0] == "ok":
		return Scenario{Clean: true}, nil
	case len(fields) == 1:
		return Scenario{Code: fields[0]}, nil
	case len(fields) == 3 && fields[1] == "at":
		at, err := parsePosition(fields[2])
		if err != nil {
			return Scenario{}, err
		}
		return Scenario{Code: fields[0], At: &at}, nil
	}
	return Scenario{}, fmt.Errorf("malformed expectation %q", strings.TrimSpace(rest))
}

func parsePosition(s string) (source.LineCol, error) {
	l, c, ok := strings.Cut(s, ":")
	if !ok {
		return source.LineCol{}, fmt.Errorf("position %q must be LINE:COL", s)
	}
	line, err := strconv.ParseUint(l, 10, 32)
	if err != nil || line == 0 {
		return source.LineCol{}, fmt.Errorf("bad line in %q", s)
	}
	col, err := strconv.ParseUint(c, 10, 32)
	if err != nil || col == 0 {
		return source.LineCol{}, fmt.Errorf("bad column in %q", s)
	}
	return source.LineCol{Line: uint32(line), Col: uint32(col)}, nil
}
