package directive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"blc/internal/diag"
	"blc/internal/driver"
)

// RunnerConfig configures expectation checks.
type RunnerConfig struct {
	// Driver is passed to every parse.
	Driver driver.Options

	// Output receives one status line per scenario and a summary. May be nil.
	Output io.Writer
}

// Failure describes a scenario whose expectation did not hold.
type Failure struct {
	Scenario Scenario
	Reason   string
}

// RunResult contains the outcome of running directives.
type RunResult struct {
	Total    int
	Passed   int
	Failed   int
	Failures []Failure
}

// OK reports whether every scenario passed.
func (r RunResult) OK() bool { return r.Failed == 0 }

// Runner parses annotated files and checks their expectations.
type Runner struct {
	config   RunnerConfig
	registry *Registry
}

// NewRunner creates a directive runner.
func NewRunner(registry *Registry, config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = io.Discard
	}
	return &Runner{
		config:   config,
		registry: registry,
	}
}

// Run parses each annotated file once and evaluates its scenarios.
func (r *Runner) Run(ctx context.Context) (RunResult, error) {
	var result RunResult
	for _, path := range r.registry.Files() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		scenarios := r.registry.ForFile(path)
		res, err := driver.Parse(ctx, path, r.config.Driver)
		for i := range scenarios {
			s := &scenarios[i]
			result.Total++
			var reason string
			if err != nil {
				reason = fmt.Sprintf("load failed: %v", err)
			} else {
				reason = evaluate(s, res)
			}
			if reason == "" {
				result.Passed++
				fmt.Fprintf(r.config.Output, "PASS %s\n", s.Name())
				continue
			}
			result.Failed++
			result.Failures = append(result.Failures, Failure{Scenario: *s, Reason: reason})
			fmt.Fprintf(r.config.Output, "FAIL %s: %s\n", s.Name(), reason)
		}
	}

	fmt.Fprintf(r.config.Output, "expectations: %d total, %d passed, %d failed\n",
		result.Total, result.Passed, result.Failed)
	return result, nil
}

// evaluate returns an empty string when the scenario holds.
func evaluate(s *Scenario, res *driver.ParseResult) string {
	if s.Clean {
		if res.Root != nil && !res.Bag.HasErrors() {
			return ""
		}
		return "expected clean parse, got " + describe(res)
	}
	var seen []string
	for _, d := range res.Bag.Items() {
		if d.Code.ID() != s.Code {
			continue
		}
		start, _ := res.FileSet.Resolve(d.Primary)
		if s.At == nil || *s.At == start {
			return ""
		}
		seen = append(seen, fmt.Sprintf("%d:%d", start.Line, start.Col))
	}
	if len(seen) > 0 {
		return fmt.Sprintf("%s reported at %s, want %d:%d", s.Code, strings.Join(seen, ", "), s.At.Line, s.At.Col)
	}
	return fmt.Sprintf("expected %s, got %s", s.Code, describe(res))
}

func describe(res *driver.ParseResult) string {
	var ids []string
	for _, d := range res.Bag.Items() {
		if d.Severity >= diag.SevWarning {
			ids = append(ids, d.Code.ID())
		}
	}
	if len(ids) == 0 {
		return "no diagnostics"
	}
	return strings.Join(ids, ", ")
}
