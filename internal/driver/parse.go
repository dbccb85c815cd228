package driver

import (
	"context"
	"io"
	"strconv"

	"lread/internal/diag"
	"lread/internal/observ"
	"lread/internal/reader"
	"lread/internal/source"
	"lread/internal/token"
	"lread/internal/trace"
)

// DefaultMaxDiagnostics is used when Options.MaxDiagnostics is not positive.
const DefaultMaxDiagnostics = 100

// Options configures Parse and ParseDir.
type Options struct {
	Reader         reader.Options
	MaxDiagnostics int
	// Cache, when set, is consulted before reading and filled after a
	// successful read.
	Cache *DiskCache
	// Timer, when set, receives phase timings; Parse also reports them as an
	// OBS6001 diagnostic.
	Timer *observ.Timer
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// ParseResult is the outcome of reading one file. A reader failure is not
// returned as an error: it is stored in Err and reported into Bag, and
// Forms is nil.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Forms   []token.Token
	Bag     *diag.Bag
	Err     error
	Cached  bool
}

// Parse loads filePath and reads every top-level form in it. The returned
// error is only set for I/O failures.
func Parse(ctx context.Context, filePath string, opts Options) (*ParseResult, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "parse")
	defer span.End(filePath)

	fs := source.NewFileSet()
	done := opts.Timer.Track("load")
	fileID, err := fs.Load(filePath)
	done(filePath)
	if err != nil {
		return nil, err
	}
	return finishParse(ctx, fs, fs.Get(fileID), opts), nil
}

// ParseReader is Parse for an already open stream, e.g. stdin.
func ParseReader(ctx context.Context, name string, r io.Reader, opts Options) (*ParseResult, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "parse")
	defer span.End(name)

	fs := source.NewFileSet()
	done := opts.Timer.Track("load")
	fileID, err := fs.LoadReader(name, r)
	done(name)
	if err != nil {
		return nil, err
	}
	return finishParse(ctx, fs, fs.Get(fileID), opts), nil
}

func finishParse(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *ParseResult {
	res := parseFile(ctx, fs, file, opts)
	if opts.Timer != nil {
		report := opts.Timer.Report()
		appendTimingDiagnostic(res.Bag, timingPayload{
			Kind:    "parse",
			Path:    file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
	return res
}

// parseFile reads an already loaded file, going through the cache when one
// is configured.
func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *ParseResult {
	_, span := trace.StartSpan(ctx, trace.ScopeFile, "file:"+file.Path)
	res := &ParseResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.maxDiagnostics()),
	}
	rep := newFileReporter(res.Bag)
	defer func() {
		span.WithExtra("forms", strconv.Itoa(len(res.Forms))).
			WithExtra("cached", strconv.FormatBool(res.Cached)).
			End(errDetail(res.Err))
	}()

	var key Digest
	if opts.Cache != nil {
		done := opts.Timer.Track("cache")
		key = CacheKey(file.Content, opts.Reader)
		forms, hit, err := opts.Cache.Get(key)
		done(file.Path)
		if err != nil {
			reportCacheProblem(rep, err, file)
		}
		if hit {
			trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache", span.ID(), "hit")
			res.Forms, res.Cached = forms, true
			return res
		}
	}

	done := opts.Timer.Track("read")
	forms, err := reader.Read(file, opts.Reader)
	done(file.Path)
	if err != nil {
		res.Err = err
		reportError(rep, err, file)
		return res
	}
	res.Forms = forms

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, file.Path, forms); err != nil {
			reportCacheProblem(rep, err, file)
		}
	}
	return res
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
