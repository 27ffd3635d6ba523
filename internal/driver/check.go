package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"jsonnetlex/internal/diag"
	"jsonnetlex/internal/lexer"
	"jsonnetlex/internal/source"
	"jsonnetlex/internal/token"
	"jsonnetlex/internal/trace"
)

// DefaultExtensions are the file suffixes picked up when walking a directory.
var DefaultExtensions = []string{".jsonnet", ".libsonnet"}

// CheckOptions controls a multi-file run.
type CheckOptions struct {
	Jobs           int      // <= 0 means GOMAXPROCS
	Extensions     []string // nil means DefaultExtensions
	Exclude        []string // filepath.Match globs, matched against the path and its base name
	MaxDiagnostics int
	Lexer          lexer.Options
	Sink           ProgressSink
	Cache          *DiskCache // nil disables caching
}

// FileResult содержит результат проверки одного файла
type FileResult struct {
	Path   string
	FileID source.FileID
	Loaded bool // false when the file could not be read
	Cached bool
	Tokens int // number of tokens including EOF
	Blocks int // number of text blocks
	Bag    *diag.Bag
}

type CheckResult struct {
	FileSet *source.FileSet
	Files   []FileResult // sorted by Path
}

// HasErrors reports whether any file carries an error diagnostic.
func (r *CheckResult) HasErrors() bool {
	if r == nil {
		return false
	}
	for i := range r.Files {
		if r.Files[i].Bag != nil && r.Files[i].Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Diagnostics returns every diagnostic of the run in file order.
func (r *CheckResult) Diagnostics() []diag.Diagnostic {
	if r == nil {
		return nil
	}
	var out []diag.Diagnostic
	for i := range r.Files {
		if r.Files[i].Bag == nil {
			continue
		}
		out = append(out, r.Files[i].Bag.Items()...)
	}
	return out
}

// Merged folds all per-file bags into one bag.
func (r *CheckResult) Merged() *diag.Bag {
	bag := diag.NewBag(0)
	if r == nil {
		return bag
	}
	for i := range r.Files {
		if r.Files[i].Bag != nil {
			bag.Merge(r.Files[i].Bag)
		}
	}
	return bag
}

// walkFailure is a directory that could not be listed.
type walkFailure struct {
	path string
	err  error
}

// CollectFiles expands paths into a sorted, deduplicated list of files.
// Explicit file arguments are kept whatever their extension; directories are
// walked for files with one of exts. Paths that cannot be stat'ed are kept so
// that loading them reports the error.
func CollectFiles(paths, exts, exclude []string) ([]string, error) {
	files, failures := collectFiles(paths, exts, exclude)
	if len(failures) > 0 {
		errs := make([]error, 0, len(failures))
		for _, f := range failures {
			errs = append(errs, fmt.Errorf("%s: %w", f.path, f.err))
		}
		return files, errors.Join(errs...)
	}
	return files, nil
}

func collectFiles(paths, exts, exclude []string) ([]string, []walkFailure) {
	if exts == nil {
		exts = DefaultExtensions
	}
	seen := make(map[string]struct{})
	var (
		files    []string
		failures []walkFailure
	)
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		if root == StdinPath {
			add(root)
			continue
		}
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			if !excluded(root, root, exclude) {
				add(root)
			}
			continue
		}
		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				failures = append(failures, walkFailure{path: path, err: err})
				return nil
			}
			if path != root && excluded(root, path, exclude) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && hasExtension(path, exts) {
				add(path)
			}
			return nil
		})
		if walkErr != nil {
			failures = append(failures, walkFailure{path: root, err: walkErr})
		}
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, failures
}

func hasExtension(path string, exts []string) bool {
	for _, ext := range exts {
		if ext != "" && strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func excluded(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)
	for _, pat := range patterns {
		if ok, _ := filepath.Match(pat, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, filepath.ToSlash(path)); ok {
			return true
		}
	}
	return false
}

// CheckPaths lexes every file under paths in parallel and collects diagnostics.
// The returned error is non-nil only when ctx is cancelled.
func CheckPaths(ctx context.Context, paths []string, opts CheckOptions) (*CheckResult, error) {
	if opts.Lexer.Tracer != nil {
		ctx = trace.WithTracer(ctx, opts.Lexer.Tracer)
	}
	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "check")
	defer span.End("")

	files, failures := collectFiles(paths, opts.Extensions, opts.Exclude)
	span.WithExtra("files", fmt.Sprint(len(files)))

	fileSet := source.NewFileSet()
	results := make([]FileResult, 0, len(files)+len(failures))

	for _, f := range failures {
		bag := diag.NewBag(opts.MaxDiagnostics)
		id := fileSet.AddVirtual(f.path, nil)
		bag.Add(diag.NewError(diag.IOWalkError, source.Span{File: id}, fmt.Sprintf("%s: %v", f.path, f.err)))
		results = append(results, FileResult{Path: f.path, FileID: id, Bag: bag})
		emit(opts.Sink, Event{Path: f.path, Status: StatusError, Err: f.err})
	}

	if len(files) == 0 {
		sortResults(results)
		return &CheckResult{FileSet: fileSet, Files: results}, nil
	}

	// Предзагружаем все файлы: FileSet не потокобезопасен на запись
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		var err error
		if path == StdinPath {
			fileIDs[i], err = fileSet.LoadReader("<stdin>", os.Stdin)
		} else {
			fileIDs[i], err = fileSet.Load(path)
		}
		if err != nil {
			// пустой виртуальный файл, чтобы диагностике было на что указывать
			fileIDs[i] = fileSet.AddVirtual(path, nil)
		}
		loadErrors[i] = err
		emit(opts.Sink, Event{Path: path, Status: StatusQueued})
	}

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	perFile := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.MaxDiagnostics)
			if loadErr := loadErrors[i]; loadErr != nil {
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileIDs[i]}, fmt.Sprintf("failed to load %s: %v", path, loadErr)))
				perFile[i] = FileResult{Path: path, FileID: fileIDs[i], Bag: bag}
				emit(opts.Sink, Event{Path: path, Status: StatusError, Err: loadErr})
				return nil
			}

			emit(opts.Sink, Event{Path: path, Status: StatusWorking})
			file := fileSet.Get(fileIDs[i])
			res := checkFile(gctx, file, bag, opts)
			if err := gctx.Err(); err != nil {
				return err
			}
			res.Path = path
			perFile[i] = res

			status := StatusDone
			if bag.HasErrors() {
				status = StatusError
			}
			emit(opts.Sink, Event{Path: path, Status: status, Cached: res.Cached})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	results = append(results, perFile...)
	sortResults(results)
	return &CheckResult{FileSet: fileSet, Files: results}, nil
}

func checkFile(ctx context.Context, file *source.File, bag *diag.Bag, opts CheckOptions) FileResult {
	res := FileResult{FileID: file.ID, Loaded: true, Bag: bag}
	key := cacheKey(file, opts)

	if opts.Cache != nil {
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok && payload.valid() {
			payload.restore(file.ID, bag)
			res.Cached = true
			res.Tokens = payload.Tokens
			res.Blocks = payload.Blocks
			return res
		}
	}

	tokens := lexFile(ctx, file, bag, opts.Lexer)
	res.Tokens = len(tokens)
	for i := range tokens {
		if tokens[i].Kind == token.BlockString {
			res.Blocks++
		}
	}

	if opts.Cache != nil && ctx.Err() == nil {
		// Ошибка записи кэша не должна ронять проверку
		_ = opts.Cache.Put(key, newDiskPayload(file.Path, res, bag))
	}
	return res
}

func sortResults(results []FileResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
}
