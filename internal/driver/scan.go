package driver

import (
	"context"
	"io"

	"lread/internal/scanner"
	"lread/internal/source"
	"lread/internal/trace"
)

// ScanResult holds the raw lexemes of one file.
type ScanResult struct {
	FileSet *source.FileSet
	File    *source.File
	Lexemes []scanner.Lexeme
}

// Scan loads path and splits it into lexemes without classifying them.
// Scanning never fails; only loading can.
func Scan(ctx context.Context, path string) (*ScanResult, error) {
	_, span := trace.StartSpan(ctx, trace.ScopeDriver, "scan")
	defer span.End(path)

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return scanLoaded(fs, fileID), nil
}

// ScanReader is Scan for an already open stream, e.g. stdin.
func ScanReader(ctx context.Context, name string, r io.Reader) (*ScanResult, error) {
	_, span := trace.StartSpan(ctx, trace.ScopeDriver, "scan")
	defer span.End(name)

	fs := source.NewFileSet()
	fileID, err := fs.LoadReader(name, r)
	if err != nil {
		return nil, err
	}
	return scanLoaded(fs, fileID), nil
}

func scanLoaded(fs *source.FileSet, id source.FileID) *ScanResult {
	file := fs.Get(id)
	return &ScanResult{
		FileSet: fs,
		File:    file,
		Lexemes: scanner.New(file).Collect(),
	}
}
