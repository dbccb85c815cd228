package diag

import (
	"testing"

	"lread/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	file := fs.Add("/workspace/testdata/sample.lisp", []byte("(a\nb .\n"), 0)

	diags := []*Diagnostic{
		{
			Severity: SevError,
			Code:     SynMalformedDottedPair,
			Message:  "dotted pair without a tail",
			Primary:  source.Span{File: file, Start: 5, End: 6},
		},
		{
			Severity: SevError,
			Code:     SynUnclosedList,
			Message:  "unterminated\nlist",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 7, End: 7}, Msg: "input ends here"},
			},
		},
	}

	expected := "error SYN2002 testdata/sample.lisp:1:1 unterminated list\n" +
		"error SYN2003 testdata/sample.lisp:2:3 dotted pair without a tail\n" +
		"note SYN2002 testdata/sample.lisp:3:1 input ends here"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
	if got := FormatShortDiagnostics(nil, fs, true); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestBagLimitSortDedup(t *testing.T) {
	bag := NewBag(3)
	r := BagReporter{Bag: bag}

	ReportError(r, SynUnexpectedClose, source.Span{Start: 9, End: 10}, "unexpected ')'").Emit()
	ReportWarning(r, LexInfo, source.Span{Start: 1, End: 2}, "note").Emit()
	b := ReportError(r, SynUnexpectedClose, source.Span{Start: 9, End: 10}, "unexpected ')'")
	b.Emit()
	b.Emit() // второй Emit игнорируется
	if !ReportError(r, LexBadLiteral, source.Span{}, "dropped").Diagnostic().Primary.Empty() {
		t.Fatal("builder must expose its diagnostic")
	}
	ReportError(r, LexBadLiteral, source.Span{}, "over limit").Emit()

	if bag.Len() != 3 {
		t.Fatalf("expected bag to stop at its limit, got %d", bag.Len())
	}
	if !bag.HasErrors() {
		t.Fatal("expected HasErrors")
	}

	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("expected dedup to leave 2 items, got %d", bag.Len())
	}
	bag.Sort()
	if bag.Items()[0].Primary.Start != 1 {
		t.Fatalf("expected sort by start offset, got %+v", bag.Items())
	}
	if ptrs := bag.Pointers(); len(ptrs) != 2 || ptrs[1] != &bag.Items()[1] {
		t.Fatal("Pointers must alias bag items")
	}
}

func TestNewBagClamps(t *testing.T) {
	if NewBag(-1).Cap() != 0 {
		t.Error("negative limit must clamp to 0")
	}
	if NewBag(1<<20).Cap() != ^uint16(0) {
		t.Error("large limit must clamp to max uint16")
	}
}

func TestBagMergeGrows(t *testing.T) {
	a, b := NewBag(1), NewBag(2)
	a.Add(NewError(LexBadLiteral, source.Span{}, "a"))
	b.Add(NewError(LexBadLiteral, source.Span{}, "b"))
	b.Add(NewError(LexBadLiteral, source.Span{}, "c"))
	a.Merge(b)
	if a.Len() != 3 || a.Cap() != 3 {
		t.Fatalf("merge: len=%d cap=%d", a.Len(), a.Cap())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for i := 0; i < 3; i++ {
		r.Report(SynUnclosedList, SevError, source.Span{Start: 0, End: 1}, "unterminated list", nil, nil)
	}
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexBadLiteral:   "LEX1001",
		SynUnclosedList: "SYN2002",
		IOLoadFileError: "IO4001",
		ObsTimings:      "OBS6001",
		UnknownCode:     "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if Code(1999).Title() != "Unknown error" {
		t.Error("unknown codes fall back to the generic title")
	}
}
