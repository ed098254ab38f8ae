package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("tokenize")
	time.Sleep(time.Millisecond)
	tm.End(idx, "3 files")
	tm.Track("parse", func() string { return "" })
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d", len(r.Phases))
	}
	if r.Phases[0].Name != "tokenize" || r.Phases[0].Note != "3 files" {
		t.Fatalf("phase 0 = %+v", r.Phases[0])
	}
	if r.Phases[0].DurationMS < 1 {
		t.Fatalf("duration = %v", r.Phases[0].DurationMS)
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Fatalf("total %v < phase %v", r.TotalMS, r.Phases[0].DurationMS)
	}

	sum := tm.Summary()
	for _, want := range []string{"timings:", "tokenize", "// 3 files", "parse", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary lacks %q:\n%s", want, sum)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("report = %+v", r)
	}
}
