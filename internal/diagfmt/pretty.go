package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lread/internal/diag"
	"lread/internal/source"
)

type palette struct {
	path, err, warn, info, caret, note, fix, dim *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		path:  mk(color.Bold),
		err:   mk(color.FgRed, color.Bold),
		warn:  mk(color.FgYellow, color.Bold),
		info:  mk(color.FgCyan, color.Bold),
		caret: mk(color.FgGreen, color.Bold),
		note:  mk(color.FgBlue),
		fix:   mk(color.FgMagenta),
		dim:   mk(color.Faint),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)

	location := "lread"
	if f != nil {
		location = fmt.Sprintf("%s:%d:%d", f.FormatPath(pathFor(opts.PathMode), fs.BaseDir()), start.Line, start.Col)
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.path.Sprint(location),
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		d.Code.ID(),
		d.Message,
	)
	if f != nil {
		writeSnippet(w, f, start, end, opts.Context, pal)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			if nf == nil {
				fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
				continue
			}
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d %s\n",
				pal.note.Sprint("note:"),
				nf.FormatPath(pathFor(opts.PathMode), fs.BaseDir()), ns.Line, ns.Col, n.Msg)
		}
	}
	if opts.ShowFixes {
		for i, fx := range d.Fixes {
			fmt.Fprintf(w, "  %s\n", pal.fix.Sprintf("fix #%d: %s", i+1, fx.Title))
			for _, e := range fx.Edits {
				es, _ := fs.Resolve(e.Span)
				fmt.Fprintf(w, "    at %d:%d apply=%q\n", es.Line, es.Col, e.NewText)
			}
			if opts.ShowPreview {
				writePreview(w, fs, fx, pal)
			}
		}
	}
}

// writeSnippet prints the primary line, optional context lines around it,
// and a caret underline sized in display columns.
func writeSnippet(w io.Writer, f *source.File, start, end source.LineCol, context int8, pal palette) {
	if start.Line == 0 {
		return
	}
	ctx := uint32(max(context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := start.Line + ctx
	if lines := uint32(len(f.LineIdx)) + 1; last > lines { // #nosec G115 -- bounded by source.Add
		last = max(lines, start.Line)
	}
	gutter := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		fmt.Fprintf(w, "%s %s\n", pal.dim.Sprintf("%*d |", gutter, ln), text)
		if ln != start.Line {
			continue
		}
		pad, width := underline(text, start, end)
		fmt.Fprintf(w, "%s %s%s\n",
			pal.dim.Sprintf("%*s |", gutter, ""),
			strings.Repeat(" ", pad),
			pal.caret.Sprint("^"+strings.Repeat("~", max(width-1, 0))))
	}
}

// underline returns the display offset and width of the span on its first
// line. Spans continuing onto later lines are cut at the end of the line.
func underline(line string, start, end source.LineCol) (pad, width int) {
	startByte := clampCol(line, start.Col)
	endByte := len(line)
	if end.Line == start.Line {
		endByte = clampCol(line, end.Col)
	}
	pad = runewidth.StringWidth(line[:startByte])
	if endByte > startByte {
		width = runewidth.StringWidth(line[startByte:endByte])
	}
	return pad, max(width, 1)
}

func clampCol(line string, col uint32) int {
	if col == 0 {
		return 0
	}
	return min(int(col-1), len(line))
}

// writePreview shows each edited line before and after applying fx.
func writePreview(w io.Writer, fs *source.FileSet, fx diag.Fix, pal palette) {
	fmt.Fprintf(w, "    %s\n", pal.dim.Sprint("preview:"))
	for _, e := range fx.Edits {
		f := fs.Get(e.Span.File)
		if f == nil {
			continue
		}
		s, en := fs.Resolve(e.Span)
		before := f.GetLine(s.Line)
		if en.Line != s.Line {
			continue
		}
		from, to := clampCol(before, s.Col), clampCol(before, en.Col)
		after := before[:from] + e.NewText + before[to:]
		fmt.Fprintf(w, "    %s\n", pal.err.Sprint("- "+before))
		fmt.Fprintf(w, "    %s\n", pal.caret.Sprint("+ "+after))
	}
}
