package reader

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"lread/internal/source"
	"lread/internal/token"

	"golang.org/x/text/unicode/norm"
)

// prefix identifies reader-macro sugar: 'x and #'x.
type prefix uint8

const (
	noPrefix prefix = iota
	quotePrefix
	functionPrefix
)

func (p prefix) symbol() string {
	if p == functionPrefix {
		return "function"
	}
	return "quote"
}

// classified is the outcome of one classification attempt. Either tok is
// set or pfx names a reader macro.
type classified struct {
	tok token.Token
	pfx prefix
}

// attempt returns ok=false when the lexeme does not have its shape. A
// non-nil error means the shape matched but the value is unusable.
type attempt func(text string) (c classified, ok bool, err error)

// alternatives is the ordered classification grammar; first match wins.
// Rational and float come before integer since they share its prefix.
var alternatives = []attempt{
	classifyComment,
	classifyMarker,
	classifyRational,
	classifyFloat,
	classifyInteger,
	classifyString,
	classifySharpQuote,
	classifyQuote,
	classifySymbol,
}

func classify(text string, sp source.Span) (classified, error) {
	if text == "" {
		return classified{}, classificationError(ReasonEmptyLexeme, sp, text, "empty lexeme", nil)
	}
	for _, try := range alternatives {
		c, ok, err := try(text)
		if err != nil {
			return classified{}, classificationError(causeReason(err), sp, text, err.Error(), err)
		}
		if ok {
			return c, nil
		}
	}
	e := classificationError(ReasonBadLiteral, sp, text, "not a valid literal or symbol", nil)
	if isUnterminatedString(text) {
		e.Reason = ReasonUnterminatedString
		e.Msg = "unterminated string"
		e.Incomplete = true
	}
	return classified{}, e
}

// Classify turns one lexeme into a leaf value or a structural marker.
// Reader-macro prefixes have no value of their own and are rejected.
func Classify(text string) (token.Token, error) {
	c, err := classify(text, source.Span{})
	if err != nil {
		return nil, err
	}
	if c.pfx != noPrefix {
		return nil, classificationError(ReasonDanglingPrefix, source.Span{}, text, "reader macro prefix needs a following form", nil)
	}
	return c.tok, nil
}

func causeReason(err error) Reason {
	if errors.Is(err, strconv.ErrRange) {
		return ReasonOutOfRange
	}
	var esc *escapeError
	if errors.As(err, &esc) || errors.Is(err, errDanglingEscape) {
		return ReasonBadEscape
	}
	return ReasonBadLiteral
}

func leaf(t token.Token) (classified, bool, error) { return classified{tok: t}, true, nil }

func classifyComment(text string) (classified, bool, error) {
	if text[0] != ';' {
		return classified{}, false, nil
	}
	depth := 0
	for depth < len(text) && text[depth] == ';' {
		depth++
	}
	rest, _, _ := strings.Cut(text[depth:], "\n")
	return leaf(token.Comment{Depth: depth, Text: rest})
}

func classifyMarker(text string) (classified, bool, error) {
	switch text {
	case "(":
		return leaf(token.ListStart{})
	case ")":
		return leaf(token.ListEnd{})
	case ".":
		return leaf(token.Dot{})
	case "nil":
		return leaf(token.Nil{})
	}
	return classified{}, false, nil
}

func classifyRational(text string) (classified, bool, error) {
	num, den, found := strings.Cut(text, "/")
	if !found || !isSignedDigits(num) || !isDigits(den) {
		return classified{}, false, nil
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return classified{}, false, err
	}
	d, err := strconv.ParseInt(den, 10, 64)
	if err != nil {
		return classified{}, false, err
	}
	return leaf(token.Rational{Numerator: n, Denominator: d})
}

func classifyFloat(text string) (classified, bool, error) {
	if !isFloatShape(text) {
		return classified{}, false, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return classified{}, false, err
	}
	return leaf(token.Float{Value: v})
}

func classifyInteger(text string) (classified, bool, error) {
	if !isSignedDigits(text) {
		return classified{}, false, nil
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return classified{}, false, err
	}
	return leaf(token.Integer{Value: v})
}

func classifyString(text string) (classified, bool, error) {
	if text[0] != '"' || closingQuote(text) != len(text)-1 {
		return classified{}, false, nil
	}
	v, err := unescape(text[1 : len(text)-1])
	if err != nil {
		return classified{}, false, err
	}
	return leaf(token.String{Value: v})
}

func classifySharpQuote(text string) (classified, bool, error) {
	if text != "#'" {
		return classified{}, false, nil
	}
	return classified{pfx: functionPrefix}, true, nil
}

func classifyQuote(text string) (classified, bool, error) {
	if text != "'" {
		return classified{}, false, nil
	}
	return classified{pfx: quotePrefix}, true, nil
}

func classifySymbol(text string) (classified, bool, error) {
	if text[0] == '.' || text[0] == '"' {
		return classified{}, false, nil
	}
	for _, r := range text {
		if r == '(' || r == ')' || unicode.IsSpace(r) {
			return classified{}, false, nil
		}
	}
	return leaf(token.Symbol{Value: norm.NFC.String(text)})
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isSignedDigits(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return isDigits(s)
}

// isFloatShape matches [sign] digits "." digits [ (e|E) [sign] digits ].
func isFloatShape(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	intPart, rest, found := strings.Cut(s, ".")
	if !found || !isDigits(intPart) {
		return false
	}
	frac, exp := rest, ""
	if i := strings.IndexAny(rest, "eE"); i >= 0 {
		frac, exp = rest[:i], rest[i+1:]
		if !isSignedDigits(exp) {
			return false
		}
	}
	return isDigits(frac)
}

// closingQuote returns the index of the quote ending the string literal
// that text opens, or -1 when there is none.
func closingQuote(text string) int {
	for i := 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// isUnterminatedString reports whether text opens a string that the
// scanner ran to end of input without finding the closing quote.
func isUnterminatedString(text string) bool {
	return text != "" && text[0] == '"' && closingQuote(text) < 0
}

func unescape(body string) (string, error) {
	if !strings.Contains(body, `\`) {
		return body, nil
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", errDanglingEscape
		}
		switch body[i] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			return "", &escapeError{seq: body[i-1 : i+1]}
		}
	}
	return b.String(), nil
}

var errDanglingEscape = errors.New("dangling escape at end of string")

type escapeError struct{ seq string }

func (e *escapeError) Error() string { return "unknown escape sequence " + strconv.Quote(e.seq) }
