package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"blc/internal/ast"
	"blc/internal/diag"
	"blc/internal/parser"
	"blc/internal/source"
	"blc/internal/trace"
)

// SourceExt is the extension of BL source files.
const SourceExt = ".bl"

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path   string
	FileID source.FileID
	Root   *ast.Stmt
	Err    *parser.SyntaxError
	Bag    *diag.Bag
	Cached bool
}

// ListSourceFiles возвращает отсортированный список всех *.bl файлов в директории.
// Скрытые каталоги пропускаются.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ParseDir парсит все *.bl файлы в директории параллельно.
// A file that fails to load gets an IOLoadFileError diagnostic instead of
// aborting the run.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	return ParseFiles(ctx, dir, files, opts)
}

// ParseFiles parses the given files in parallel. Results keep the order of files.
func ParseFiles(ctx context.Context, baseDir string, files []string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "parse-dir", trace.CurrentSpan(ctx).SpanID)
	defer span.End(fmt.Sprintf("%d files", len(files)))
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	// Загрузка последовательно: FileSet не потокобезопасен.
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	firstLoad := make(map[source.FileID]int, len(files))
	for i, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		// повтор пути: тот же файл и та же ошибка загрузки
		if id, ok := fileSet.GetLatest(path); ok {
			fileIDs[i] = id
			loadErrors[i] = loadErrors[firstLoad[id]]
			continue
		}
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[i] = err
			fileID = fileSet.AddVirtual(path, nil)
		}
		fileIDs[i] = fileID
		firstLoad[fileID] = i
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]ParseDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			started := time.Now()
			file := fileSet.Get(fileIDs[i])

			if loadErr := loadErrors[i]; loadErr != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: file.ID}, "failed to load file: "+loadErr.Error()))
				results[i] = ParseDirResult{Path: path, FileID: file.ID, Bag: bag}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr, Elapsed: time.Since(started)})
				return nil
			}

			emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
			res := parseFile(gctx, fileSet, file, opts)
			results[i] = ParseDirResult{
				Path:   path,
				FileID: file.ID,
				Root:   res.Root,
				Err:    res.Err,
				Bag:    res.Bag,
				Cached: res.Cached,
			}

			status := StatusDone
			var evErr error
			switch {
			case res.Err != nil:
				status, evErr = StatusError, res.Err
			case res.Bag.HasErrors():
				status = StatusError
			case res.Cached:
				status = StatusCached
			}
			emit(opts.Progress, Event{File: path, Stage: StageParse, Status: status, Err: evErr, Elapsed: time.Since(started)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeBags collects every file's diagnostics into one sorted bag. A file
// listed twice contributes its diagnostics once.
func MergeBags(results []ParseDirResult, maxDiagnostics int) *diag.Bag {
	out := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		if r.Bag == nil {
			continue
		}
		for _, d := range r.Bag.Items() {
			if !out.Add(d) {
				break
			}
		}
	}
	out.Dedup()
	out.Sort()
	return out
}
