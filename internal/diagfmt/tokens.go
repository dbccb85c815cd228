package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"

	"lread/internal/scanner"
	"lread/internal/source"
	"lread/internal/token"
)

// FormsOpts configures printing of read results.
type FormsOpts struct {
	Format Format
	Color  bool
	// Origin prefixes every form with the file it came from (NDJSON only).
	Origin string
}

// FormatForms печатает прочитанные формы в выбранном формате.
func FormatForms(w io.Writer, forms []token.Token, opts FormsOpts) error {
	switch opts.Format {
	case FormatPretty:
		return formatFormsPretty(w, forms, opts.Color)
	case FormatTree:
		return formatFormsTree(w, forms)
	case FormatDump:
		return formatFormsDump(w, forms)
	default:
		return formatFormsNDJSON(w, forms, opts.Origin)
	}
}

// formatFormsNDJSON выводит одну JSON-запись на форму верхнего уровня:
// {"file":...,"form":{...}}. Запись собирается вручную, чтобы длинные списки
// не упирались в лимит вложенности encoding/json.
func formatFormsNDJSON(w io.Writer, forms []token.Token, origin string) error {
	var prefix []byte
	prefix = append(prefix, '{')
	if origin != "" {
		file, err := json.Marshal(origin)
		if err != nil {
			return err
		}
		prefix = append(prefix, `"file":`...)
		prefix = append(prefix, file...)
		prefix = append(prefix, ',')
	}
	prefix = append(prefix, `"form":`...)

	var line []byte
	for _, f := range forms {
		var err error
		line = append(line[:0], prefix...)
		if line, err = token.ToRecord(f).AppendJSON(line); err != nil {
			return err
		}
		line = append(line, '}', '\n')
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}

type formPalette struct {
	num, str, sym, kw, paren, comment *color.Color
}

func newFormPalette(enabled bool) formPalette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return formPalette{
		num:     mk(color.FgCyan),
		str:     mk(color.FgGreen),
		sym:     mk(color.Reset),
		kw:      mk(color.FgMagenta),
		paren:   mk(color.Faint),
		comment: mk(color.FgHiBlack, color.Italic),
	}
}

// formatFormsPretty печатает формы обратно в синтаксисе s-выражений
func formatFormsPretty(w io.Writer, forms []token.Token, colored bool) error {
	pal := newFormPalette(colored)
	for _, f := range forms {
		if _, err := fmt.Fprintln(w, pal.render(f)); err != nil {
			return err
		}
	}
	return nil
}

func (p formPalette) render(t token.Token) string {
	switch v := t.(type) {
	case nil:
		return "<nil>"
	case token.Integer, token.Float, token.Rational:
		return p.num.Sprint(v.String())
	case token.String:
		return p.str.Sprint(v.String())
	case token.Nil, token.EmptyList:
		return p.kw.Sprint(v.String())
	case token.Comment:
		return p.comment.Sprint(v.String())
	case *token.Cons:
		items, tail := token.Slice(v)
		var sb strings.Builder
		sb.WriteString(p.paren.Sprint("("))
		for i, it := range items {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(p.render(it))
		}
		if _, proper := tail.(token.EmptyList); !proper {
			sb.WriteString(" . ")
			sb.WriteString(p.render(tail))
		}
		sb.WriteString(p.paren.Sprint(")"))
		return sb.String()
	default:
		return p.sym.Sprint(v.String())
	}
}

// formatFormsTree рисует каждую форму как дерево cons-ячеек
func formatFormsTree(w io.Writer, forms []token.Token) error {
	for i, f := range forms {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		block := renderTree(buildFormTreeNode(f))
		for _, line := range block.lines {
			if _, err := fmt.Fprintln(w, trimRight(line)); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatFormsDump выводит формы через go-spew
func formatFormsDump(w io.Writer, forms []token.Token) error {
	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	for _, f := range forms {
		cfg.Fdump(w, f)
	}
	return nil
}

// LexemeOutput is the JSON shape of one scanned lexeme.
type LexemeOutput struct {
	Text      string `json:"text"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line"`
	StartCol  uint32 `json:"start_col"`
	EndLine   uint32 `json:"end_line"`
	EndCol    uint32 `json:"end_col"`
}

// FormatLexemesPretty выводит лексемы в человекочитаемом формате
func FormatLexemesPretty(w io.Writer, lexemes []scanner.Lexeme, fs *source.FileSet) error {
	for i, lx := range lexemes {
		startPos, endPos := fs.Resolve(lx.Span)
		if _, err := fmt.Fprintf(w, "%3d: %d:%d-%d:%d %q\n", i+1,
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col,
			lx.Text()); err != nil {
			return err
		}
	}
	return nil
}

// FormatLexemesJSON выводит лексемы в JSON формате
func FormatLexemesJSON(w io.Writer, lexemes []scanner.Lexeme, fs *source.FileSet) error {
	output := make([]LexemeOutput, 0, len(lexemes))
	for _, lx := range lexemes {
		startPos, endPos := fs.Resolve(lx.Span)
		output = append(output, LexemeOutput{
			Text:      lx.Text(),
			StartByte: lx.Span.Start,
			EndByte:   lx.Span.End,
			StartLine: startPos.Line,
			StartCol:  startPos.Col,
			EndLine:   endPos.Line,
			EndCol:    endPos.Col,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
