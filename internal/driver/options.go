package driver

import (
	"blc/internal/token"
)

// Options configure a driver run.
type Options struct {
	// MaxDiagnostics caps each file's bag; non-positive means unlimited.
	MaxDiagnostics int
	// Jobs bounds parallelism in ParseDir; non-positive means GOMAXPROCS.
	Jobs int
	// Vocab is the language vocabulary; nil means the default.
	Vocab *token.Vocabulary
	// Cache, when non-nil, is consulted before lexing and updated after.
	Cache *DiskCache
	// Progress receives per-file events.
	Progress ProgressSink
	// Timings appends an ObsTimings diagnostic to every file's bag.
	Timings bool
}

func (o Options) vocab() *token.Vocabulary {
	if o.Vocab == nil {
		return token.DefaultVocabulary()
	}
	return o.Vocab
}
