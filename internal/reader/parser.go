package reader

import (
	"lread/internal/scanner"
	"lread/internal/source"
	"lread/internal/token"
)

// parser is a recursive-descent assembler over the lexeme stream. It keeps
// one lexeme of lookahead and never backtracks.
type parser struct {
	sc    *scanner.Scanner
	opts  Options
	depth int
}

// item is a classified lexeme with its source position.
type item struct {
	classified
	lx scanner.Lexeme
}

func newParser(file *source.File, opts Options) *parser {
	return &parser{
		sc:   scanner.New(file),
		opts: opts.withDefaults(),
	}
}

// next classifies the following lexeme. ok is false at end of input.
func (p *parser) next() (it item, ok bool, err error) {
	lx, ok := p.sc.Next()
	if !ok {
		return item{}, false, nil
	}
	c, err := classify(lx.Text(), lx.Span)
	if err != nil {
		return item{}, false, err
	}
	return item{classified: c, lx: lx}, true, nil
}

// nextSignificant is next with comments skipped.
func (p *parser) nextSignificant() (item, bool, error) {
	for {
		it, ok, err := p.next()
		if err != nil || !ok {
			return it, ok, err
		}
		if _, isComment := it.tok.(token.Comment); !isComment {
			return it, true, nil
		}
	}
}

// parseAll reads every top-level form.
func (p *parser) parseAll() ([]token.Token, error) {
	var out []token.Token
	for {
		it, ok, err := p.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		if c, isComment := it.tok.(token.Comment); isComment {
			if p.opts.Comments == CommentsKeep {
				out = append(out, c)
			}
			continue
		}
		form, err := p.parseForm(it)
		if err != nil {
			return nil, err
		}
		out = append(out, form)
	}
}

// parseForm completes the form that starts with it.
func (p *parser) parseForm(it item) (token.Token, error) {
	if it.pfx != noPrefix {
		return p.parsePrefixed(it)
	}
	switch it.tok.(type) {
	case token.ListStart:
		return p.parseList(it)
	case token.ListEnd:
		return nil, structuralError(ReasonUnexpectedClose, it.lx.Span, it.lx.Text(), "unexpected ')'")
	case token.Dot:
		return nil, structuralError(ReasonDotOutsideList, it.lx.Span, it.lx.Text(), "'.' outside of a list")
	}
	return it.tok, nil
}

// parsePrefixed desugars 'x to (quote x) and #'x to (function x).
func (p *parser) parsePrefixed(it item) (token.Token, error) {
	if err := p.enter(it); err != nil {
		return nil, err
	}
	defer p.leave()

	next, ok, err := p.nextSignificant()
	if err != nil {
		return nil, err
	}
	if !ok {
		e := structuralError(ReasonDanglingPrefix, it.lx.Span, it.lx.Text(), "reader macro at end of input")
		e.Incomplete = true
		return nil, e
	}
	form, err := p.parseForm(next)
	if err != nil {
		return nil, err
	}
	return token.List(token.Symbol{Value: it.pfx.symbol()}, form), nil
}

// parseList reads items after '(' up to the matching ')'. An optional
// dotted tail is parsed as part of the same production and folded in when
// the chain is built.
func (p *parser) parseList(open item) (token.Token, error) {
	if err := p.enter(open); err != nil {
		return nil, err
	}
	defer p.leave()

	var items []token.Token
	for {
		it, ok, err := p.nextSignificant()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, p.unterminated(open)
		}
		switch it.tok.(type) {
		case token.ListEnd:
			return token.List(items...), nil
		case token.Dot:
			if len(items) == 0 {
				return nil, structuralError(ReasonMalformedDottedPair, it.lx.Span, it.lx.Text(), "dotted pair without a head")
			}
			tail, err := p.parseDottedTail(open, it)
			if err != nil {
				return nil, err
			}
			return token.DottedList(tail, items...), nil
		}
		form, err := p.parseForm(it)
		if err != nil {
			return nil, err
		}
		items = append(items, form)
	}
}

// parseDottedTail reads exactly one form after '.' and the closing ')'.
func (p *parser) parseDottedTail(open, dot item) (token.Token, error) {
	it, ok, err := p.nextSignificant()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, p.unterminated(open)
	}
	switch it.tok.(type) {
	case token.ListEnd:
		return nil, structuralError(ReasonMalformedDottedPair, dot.lx.Span, dot.lx.Text(), "dotted pair without a tail")
	case token.Dot:
		return nil, structuralError(ReasonMalformedDottedPair, it.lx.Span, it.lx.Text(), "more than one '.' in a list")
	}
	tail, err := p.parseForm(it)
	if err != nil {
		return nil, err
	}

	end, ok, err := p.nextSignificant()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, p.unterminated(open)
	}
	if _, isEnd := end.tok.(token.ListEnd); !isEnd {
		return nil, structuralError(ReasonMalformedDottedPair, end.lx.Span, end.lx.Text(), "more than one form after '.'")
	}
	return tail, nil
}

func (p *parser) unterminated(open item) *Error {
	e := structuralError(ReasonUnterminatedList, open.lx.Span, open.lx.Text(), "unterminated list")
	e.Incomplete = true
	return e
}

func (p *parser) enter(it item) error {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		return structuralError(ReasonTooDeep, it.lx.Span, it.lx.Text(), "nesting too deep")
	}
	return nil
}

func (p *parser) leave() { p.depth-- }
