// Package reader turns Lisp source text into token trees: scanning, lexeme
// classification and list assembly, including quote and function-quote sugar.
package reader

import (
	"fmt"
	"io"

	"lread/internal/source"
	"lread/internal/token"
)

// CommentPolicy decides what happens to top-level comments. Comments inside
// lists and reader macros are always discarded.
type CommentPolicy uint8

const (
	// CommentsDrop removes every comment from the result.
	CommentsDrop CommentPolicy = iota
	// CommentsKeep returns top-level comments as token.Comment values.
	CommentsKeep
)

func (c CommentPolicy) String() string {
	if c == CommentsKeep {
		return "keep"
	}
	return "drop"
}

// ParseCommentPolicy maps "drop"/"keep" to a policy; "" means drop.
func ParseCommentPolicy(s string) (CommentPolicy, error) {
	switch s {
	case "", "drop":
		return CommentsDrop, nil
	case "keep":
		return CommentsKeep, nil
	default:
		return CommentsDrop, fmt.Errorf("unknown comment policy %q (want drop or keep)", s)
	}
}

// DefaultMaxDepth bounds list and reader-macro nesting.
const DefaultMaxDepth = 10000

// Options tune a read. The zero value drops comments and uses
// DefaultMaxDepth.
type Options struct {
	Comments CommentPolicy
	MaxDepth int
}

func (o Options) withDefaults() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	return o
}

// Read parses every top-level form of file. On failure it returns a
// *Error and no tokens.
func Read(file *source.File, opts Options) ([]token.Token, error) {
	return newParser(file, opts).parseAll()
}

// ReadString parses text as an anonymous input.
func ReadString(text string, opts Options) ([]token.Token, error) {
	fs := source.NewFileSet()
	return Read(fs.Get(fs.AddVirtual("<string>", []byte(text))), opts)
}

// ReadAll drains r into memory and parses the result. I/O failures are
// returned wrapped, reader failures as *Error.
func ReadAll(r io.Reader, opts Options) ([]token.Token, error) {
	fs := source.NewFileSet()
	id, err := fs.LoadReader("<input>", r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return Read(fs.Get(id), opts)
}

// ReadToken parses exactly one form from text. Empty input is a
// classification failure and anything after the form is a structural one.
func ReadToken(text string) (token.Token, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<token>", []byte(text)))
	p := newParser(file, Options{})

	it, ok, err := p.nextSignificant()
	if err != nil {
		return nil, err
	}
	if !ok {
		sp := source.Span{File: file.ID, Start: p.sc.Offset(), End: p.sc.Offset()}
		return nil, classificationError(ReasonEmptyLexeme, sp, "", "empty lexeme", nil)
	}
	form, err := p.parseForm(it)
	if err != nil {
		return nil, err
	}
	extra, ok, err := p.nextSignificant()
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, structuralError(ReasonTrailingInput, extra.lx.Span, extra.lx.Text(), "unexpected trailing input")
	}
	return form, nil
}
