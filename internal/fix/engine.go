package fix

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"blc/internal/diag"
	"blc/internal/driver"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

const defaultMaxRounds = 16

// Options configures a repair run.
type Options struct {
	Driver driver.Options
	// MaxRounds bounds parse/fix iterations; non-positive means 16.
	MaxRounds int
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Title     string
	Code      diag.Code
	Message   string
	Line      uint32
	Col       uint32
	EditCount int
}

// SkippedFix captures the error that stopped a repair, with a reason.
type SkippedFix struct {
	Title  string
	Reason string
}

// Result describes one repair run.
type Result struct {
	Path    string
	Applied []AppliedFix
	Skipped []SkippedFix
	// Content is the source after all applied fixes.
	Content []byte
	// Clean reports that Content parses without errors.
	Clean bool
}

// Changed reports whether any fix was applied.
func (r *Result) Changed() bool { return len(r.Applied) > 0 }

// Repair parses content, applies the fix of the first error that has one,
// and repeats until the program parses or no fix helps. Parsing stops at
// the first syntax error, so each round can uncover the next one.
func Repair(ctx context.Context, name string, content []byte, opts Options) (*Result, error) {
	maxRounds := opts.MaxRounds
	if maxRounds <= 0 {
		maxRounds = defaultMaxRounds
	}
	dopts := opts.Driver
	dopts.Cache = nil
	dopts.Timings = false
	dopts.Progress = nil

	result := &Result{Path: name, Content: content}
	for round := 0; ; round++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		res := driver.ParseSource(ctx, name, result.Content, dopts)
		if res.Err == nil && !res.Bag.HasErrors() {
			result.Clean = true
			return result, nil
		}
		if round == maxRounds {
			result.Skipped = append(result.Skipped, SkippedFix{Title: name, Reason: "round limit reached"})
			break
		}

		d, ok := firstFixable(res.Bag)
		if !ok {
			first := firstError(res.Bag)
			result.Skipped = append(result.Skipped, SkippedFix{Title: first.Message, Reason: "no automatic fix"})
			break
		}
		fx := d.Fixes[0]
		next, err := ApplyEdits(result.Content, fx.Edits)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedFix{Title: fx.Title, Reason: err.Error()})
			break
		}
		if bytes.Equal(next, result.Content) {
			result.Skipped = append(result.Skipped, SkippedFix{Title: fx.Title, Reason: "fix made no progress"})
			break
		}

		pos, _ := res.FileSet.Resolve(d.Primary)
		result.Applied = append(result.Applied, AppliedFix{
			Title:     fx.Title,
			Code:      d.Code,
			Message:   d.Message,
			Line:      pos.Line,
			Col:       pos.Col,
			EditCount: len(fx.Edits),
		})
		result.Content = next
	}

	if !result.Changed() {
		return result, ErrNoFixes
	}
	return result, nil
}

// RepairFile repairs the file at path and, when write is set, stores the
// result in place keeping the file mode.
func RepairFile(ctx context.Context, path string, opts Options, write bool) (*Result, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	result, err := Repair(ctx, path, content, opts)
	if err != nil || !write || !result.Changed() {
		return result, err
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, result.Content, mode); err != nil {
		return result, fmt.Errorf("write %s: %w", path, err)
	}
	return result, nil
}

func firstFixable(bag *diag.Bag) (diag.Diagnostic, bool) {
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError && len(d.Fixes) > 0 && len(d.Fixes[0].Edits) > 0 {
			return d, true
		}
	}
	return diag.Diagnostic{}, false
}

func firstError(bag *diag.Bag) diag.Diagnostic {
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			return d
		}
	}
	return diag.Diagnostic{}
}

// ApplyEdits returns content with every edit applied. Edits address the
// original content; overlapping edits are rejected.
func ApplyEdits(content []byte, edits []diag.FixEdit) ([]byte, error) {
	sorted := append([]diag.FixEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start == sorted[j].Span.Start {
			return sorted[i].Span.End > sorted[j].Span.End
		}
		return sorted[i].Span.Start > sorted[j].Span.Start
	})
	for i := 1; i < len(sorted); i++ {
		if spansConflict(sorted[i], sorted[i-1]) {
			return nil, fmt.Errorf("conflicting edits at %d and %d", sorted[i].Span.Start, sorted[i-1].Span.Start)
		}
	}

	working := append([]byte(nil), content...)
	for _, e := range sorted {
		start, end := int(e.Span.Start), int(e.Span.End)
		if end < start || end > len(working) {
			return nil, fmt.Errorf("edit span %d..%d out of range", start, end)
		}
		suffix := append([]byte(nil), working[end:]...)
		working = append(append(working[:start], e.NewText...), suffix...)
	}
	return working, nil
}

// spansConflict reports whether two edits overlap. Spans are half-open;
// two insertions never conflict, an insertion conflicts with a replacement
// strictly containing its position.
func spansConflict(a, b diag.FixEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End
	switch {
	case aStart == aEnd && bStart == bEnd:
		return false
	case aStart == aEnd:
		return bStart < aStart && aStart < bEnd
	case bStart == bEnd:
		return aStart < bStart && bStart < aEnd
	default:
		return aStart < bEnd && bStart < aEnd
	}
}
