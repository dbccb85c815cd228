package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"lread/internal/diag"
	"lread/internal/observ"
	"lread/internal/source"
	"lread/internal/trace"
)

// SourceExtensions lists the file extensions ParseDir picks up.
var SourceExtensions = []string{".lisp", ".lsp", ".el", ".cl", ".scm"}

// IsSourceFile reports whether path has one of SourceExtensions, ignoring case.
func IsSourceFile(path string) bool {
	return slices.Contains(SourceExtensions, strings.ToLower(filepath.Ext(path)))
}

// FileResult содержит результат чтения одного файла каталога
type FileResult struct {
	Path string // путь к файлу, как его нашёл обход
	*ParseResult
}

// DirResult is the outcome of ParseDir. Files follow the sorted path order
// regardless of which worker finished first. Bag holds run-level
// diagnostics such as timings; per-file diagnostics live in each file's Bag.
type DirResult struct {
	FileSet *source.FileSet
	Files   []FileResult
	Bag     *diag.Bag
}

// HasErrors reports whether any file failed.
func (r *DirResult) HasErrors() bool {
	for _, f := range r.Files {
		if f.Bag != nil && f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// ListSourceFiles возвращает отсортированный список исходников в каталоге
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsSourceFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return files, nil
}

// ParseDir reads every source file under dir with at most jobs workers
// (GOMAXPROCS when jobs <= 0). A file that fails to load or read does not
// stop the others; the returned error is only set for a failed directory
// walk or a cancelled context.
func ParseDir(ctx context.Context, dir string, opts Options, jobs int, observe Observer) (*DirResult, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "parse-dir")
	defer span.End(dir)

	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	res := &DirResult{
		FileSet: fileSet,
		Files:   make([]FileResult, len(files)),
		Bag:     diag.NewBag(opts.maxDiagnostics()),
	}
	if len(files) == 0 {
		return res, nil
	}
	for _, path := range files {
		observe.emit(Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet не потокобезопасен на запись, поэтому загружаем всё заранее
	_, loadSpan := trace.StartSpan(ctx, trace.ScopePass, "load")
	done := opts.Timer.Track("load")
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		fileIDs[i], loadErrors[i] = fileSet.Load(path)
	}
	done(dir)
	loadSpan.End("")

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	readCtx, readSpan := trace.StartSpan(ctx, trace.ScopePass, "read")
	g, gctx := errgroup.WithContext(readCtx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}

			if loadErr := loadErrors[i]; loadErr != nil {
				bag := diag.NewBag(opts.maxDiagnostics())
				diag.ReportError(newFileReporter(bag), diag.IOLoadFileError, source.NoSpan,
					"failed to load "+path+": "+loadErr.Error()).Emit()
				res.Files[i] = FileResult{Path: path, ParseResult: &ParseResult{FileSet: fileSet, Bag: bag, Err: loadErr}}
				observe.emit(Event{File: path, Stage: StageLoad, Status: StatusError})
				return nil
			}

			observe.emit(Event{File: path, Stage: StageRead, Status: StatusWorking})
			pr := parseFile(gctx, fileSet, fileSet.Get(fileIDs[i]), opts)
			// индекс i уникален для горутины, мьютекс не нужен
			res.Files[i] = FileResult{Path: path, ParseResult: pr}

			status := StatusDone
			if pr.Err != nil {
				status = StatusError
			}
			observe.emit(Event{File: path, Stage: StageRead, Status: status, Forms: len(pr.Forms)})
			return nil
		})
	}

	err = g.Wait()
	readSpan.End("")
	if err != nil {
		return res, err
	}

	if opts.Timer != nil {
		report := opts.Timer.Report()
		appendTimingDiagnostic(res.Bag, timingPayload{
			Kind:    "parse-dir",
			Path:    dir,
			TotalMS: report.TotalMS,
			Phases:  summarizePhases(report.Phases),
		})
	}
	return res, nil
}

// summarizePhases folds per-file phases with the same name into one entry.
func summarizePhases(phases []observ.PhaseReport) []observ.PhaseReport {
	var out []observ.PhaseReport
	index := make(map[string]int)
	for _, p := range phases {
		if i, ok := index[p.Name]; ok {
			out[i].DurationMS += p.DurationMS
			continue
		}
		index[p.Name] = len(out)
		out = append(out, observ.PhaseReport{Name: p.Name, DurationMS: p.DurationMS})
	}
	return out
}
