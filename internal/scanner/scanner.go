package scanner

import (
	"unicode"

	"lread/internal/source"
)

// Lexeme is one indivisible unit of surface syntax. Raw aliases the file
// content; it is never copied by the scanner.
type Lexeme struct {
	Span source.Span
	Raw  []byte
}

// Text materializes the lexeme as a string.
func (l Lexeme) Text() string { return string(l.Raw) }

// Scanner splits a file into lexemes on demand. It is not restartable: once
// Next reports false it keeps doing so.
type Scanner struct {
	file   *source.File
	cursor Cursor
}

// New creates a scanner over the whole content of file.
func New(file *source.File) *Scanner {
	return &Scanner{file: file, cursor: NewCursor(file)}
}

// File returns the file being scanned.
func (s *Scanner) File() *source.File { return s.file }

// Offset returns the current byte offset of the scanner.
func (s *Scanner) Offset() uint32 { return s.cursor.Off }

// Next returns the next lexeme. Malformed input never fails here: an
// unterminated string simply runs to the end of the file.
func (s *Scanner) Next() (Lexeme, bool) {
	s.skipWhitespace()
	if s.cursor.EOF() {
		return Lexeme{}, false
	}

	start := s.cursor.Mark()
	switch ch := s.cursor.Peek(); {
	case ch == '(' || ch == ')':
		s.cursor.Bump()
	case ch == '\'':
		s.cursor.Bump()
	case ch == '#' && s.isSharpQuote():
		s.cursor.Advance(2)
	case ch == '"':
		s.scanString()
	case ch == ';':
		s.scanComment()
	default:
		s.scanAtom()
	}

	sp := s.cursor.SpanFrom(start)
	return Lexeme{Span: sp, Raw: s.file.Content[sp.Start:sp.End]}, true
}

// Collect drains the scanner.
func (s *Scanner) Collect() []Lexeme {
	var out []Lexeme
	for {
		lx, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, lx)
	}
}

func (s *Scanner) isSharpQuote() bool {
	_, b1, ok := s.cursor.Peek2()
	return ok && b1 == '\''
}

func (s *Scanner) skipWhitespace() {
	for !s.cursor.EOF() {
		r, size := s.cursor.PeekRune()
		if !unicode.IsSpace(r) {
			return
		}
		s.cursor.Advance(size)
	}
}

// scanString consumes a string literal including both quotes. A backslash
// always takes the following byte with it.
func (s *Scanner) scanString() {
	s.cursor.Bump() // opening quote
	for !s.cursor.EOF() {
		switch s.cursor.Bump() {
		case '"':
			return
		case '\\':
			s.cursor.Bump()
		}
	}
}

func (s *Scanner) scanComment() {
	for !s.cursor.EOF() && s.cursor.Peek() != '\n' {
		s.cursor.Bump()
	}
}

// scanAtom consumes up to whitespace or an unescaped paren. `\(` and `\)`
// stay inside the atom; the classifier rejects them later.
func (s *Scanner) scanAtom() {
	for !s.cursor.EOF() {
		r, size := s.cursor.PeekRune()
		if IsDelimiter(r) {
			return
		}
		if r == '\\' {
			if _, next, ok := s.cursor.Peek2(); ok && (next == '(' || next == ')') {
				size++
			}
		}
		s.cursor.Advance(size)
	}
}

// IsDelimiter reports whether r ends an atom.
func IsDelimiter(r rune) bool {
	return r == '(' || r == ')' || unicode.IsSpace(r)
}
