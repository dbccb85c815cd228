package driver

import (
	"errors"
	"fmt"

	"lread/internal/diag"
	"lread/internal/reader"
	"lread/internal/source"
)

var reasonCodes = map[reader.Reason]diag.Code{
	reader.ReasonEmptyLexeme:         diag.LexEmptyLexeme,
	reader.ReasonBadLiteral:          diag.LexBadLiteral,
	reader.ReasonUnterminatedString:  diag.LexUnterminatedString,
	reader.ReasonOutOfRange:          diag.LexNumberOutOfRange,
	reader.ReasonBadEscape:           diag.LexBadEscape,
	reader.ReasonUnexpectedClose:     diag.SynUnexpectedClose,
	reader.ReasonDotOutsideList:      diag.SynDotOutsideList,
	reader.ReasonMalformedDottedPair: diag.SynMalformedDottedPair,
	reader.ReasonDanglingPrefix:      diag.SynDanglingReaderMacro,
	reader.ReasonUnterminatedList:    diag.SynUnclosedList,
	reader.ReasonTrailingInput:       diag.SynTrailingInput,
	reader.ReasonTooDeep:             diag.SynNestingTooDeep,
}

// codeFor picks the diagnostic code for a reader failure.
func codeFor(re *reader.Error) diag.Code {
	if code, ok := reasonCodes[re.Reason]; ok {
		return code
	}
	if re.Kind == reader.KindStructural {
		return diag.SynInfo
	}
	return diag.LexInfo
}

// ReaderDiagnostic converts a reader failure into a diagnostic without
// emitting it.
func ReaderDiagnostic(re *reader.Error, file *source.File) diag.Diagnostic {
	return readerReport(nil, re, file).Diagnostic()
}

// readerReport builds the diagnostic for a reader failure on r. Unclosed
// constructs get a fix that appends the missing closer at end of file.
func readerReport(r diag.Reporter, re *reader.Error, file *source.File) *diag.ReportBuilder {
	msg := re.Msg
	if re.Lexeme != "" && re.Reason != reader.ReasonUnterminatedList {
		msg = fmt.Sprintf("%s: %q", re.Msg, re.Lexeme)
	}
	b := diag.ReportError(r, codeFor(re), re.Span, msg)

	if re.Err != nil {
		b.WithNote(re.Span, re.Err.Error())
	}
	if file == nil {
		return b
	}
	end := uint32(len(file.Content)) // #nosec G115 -- bounded by source.Add
	eof := source.Span{File: file.ID, Start: end, End: end}
	switch re.Reason {
	case reader.ReasonUnterminatedList:
		b.WithNote(re.Span, "list opened here").
			WithFix("insert ')'", diag.FixEdit{Span: eof, NewText: ")"})
	case reader.ReasonUnterminatedString:
		b.WithFix(`insert '"'`, diag.FixEdit{Span: eof, NewText: `"`})
	case reader.ReasonUnexpectedClose:
		b.WithFix("remove ')'", diag.FixEdit{Span: re.Span, NewText: ""})
	}
	return b
}

// newFileReporter returns the reporter one file's diagnostics go through:
// duplicates are dropped before they reach bag.
func newFileReporter(bag *diag.Bag) diag.Reporter {
	return diag.NewDedupReporter(diag.BagReporter{Bag: bag})
}

// reportError sends err to r. Reader failures become positioned
// diagnostics; anything else is reported as an I/O problem without a span.
func reportError(r diag.Reporter, err error, file *source.File) {
	var re *reader.Error
	if errors.As(err, &re) {
		readerReport(r, re, file).Emit()
		return
	}
	sp := source.NoSpan
	if file != nil {
		sp = source.Span{File: file.ID}
	}
	diag.ReportError(r, diag.IOLoadFileError, sp, err.Error()).Emit()
}

// reportCacheProblem records a cache failure as a warning; the read itself
// still goes ahead.
func reportCacheProblem(r diag.Reporter, err error, file *source.File) {
	diag.ReportWarning(r, diag.IOCacheError, source.Span{File: file.ID}, err.Error()).Emit()
}
