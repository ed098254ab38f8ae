package directive

import (
	"fmt"

	"blc/internal/source"
)

// Scenario is one `#! expect:` line found in a BL source file.
type Scenario struct {
	// Index is the sequential number of this scenario within its source file.
	Index int

	// SourceFile is the path of the file carrying the directive.
	SourceFile string

	// Line is where the directive itself sits (1-based).
	Line uint32

	// Clean is set by `#! expect: ok`.
	Clean bool

	// Code is the expected diagnostic ID, e.g. "SYN2304".
	Code string

	// At optionally pins the expected primary position.
	At *source.LineCol
}

// Name returns a short label used in runner output.
func (s *Scenario) Name() string {
	if s.Clean {
		return fmt.Sprintf("%s#%d ok", s.SourceFile, s.Index)
	}
	if s.At != nil {
		return fmt.Sprintf("%s#%d %s at %d:%d", s.SourceFile, s.Index, s.Code, s.At.Line, s.At.Col)
	}
	return fmt.Sprintf("%s#%d %s", s.SourceFile, s.Index, s.Code)
}
