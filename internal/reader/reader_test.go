package reader

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"testing/iotest"

	"lread/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sym(s string) token.Token { return token.Symbol{Value: s} }
func num(v int64) token.Token  { return token.Integer{Value: v} }

func readAll(t *testing.T, input string) []token.Token {
	t.Helper()
	got, err := ReadString(input, Options{})
	require.NoError(t, err, "input %q", input)
	return got
}

func TestReadForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Token
	}{
		{"empty", "", nil},
		{"whitespace only", " \n\t ", nil},
		{"sequence", "42 13 99", []token.Token{num(42), num(13), num(99)}},
		{"empty list", "()", []token.Token{token.EmptyList{}}},
		{"empty list with space", "( )", []token.Token{token.EmptyList{}}},
		{"dotted pair", "(13 . 42)", []token.Token{&token.Cons{Head: num(13), Tail: num(42)}}},
		{"proper list", "(42 43 44)", []token.Token{token.List(num(42), num(43), num(44))}},
		{"dotted list tail", "(1 2 . (3 4))", []token.Token{token.List(num(1), num(2), num(3), num(4))}},
		{"dotted list improper tail", "(1 2 . 3)", []token.Token{token.DottedList(num(3), num(1), num(2))}},
		{"dotted empty tail", "(1 . ())", []token.Token{token.List(num(1))}},
		{"symbol", "symbol-42", []token.Token{sym("symbol-42")}},
		{"symbol list", "(symbol-42 symbol-43 symbol-44)", []token.Token{token.List(sym("symbol-42"), sym("symbol-43"), sym("symbol-44"))}},
		{"nested", "(+ 7 (- 10 3))", []token.Token{token.List(sym("+"), num(7), token.List(sym("-"), num(10), num(3)))}},
		{"operators are symbols", "+ - 42", []token.Token{sym("+"), sym("-"), num(42)}},
		{"quote", "'foobar", []token.Token{token.List(sym("quote"), sym("foobar"))}},
		{"quote list", "'(+ 1 3)", []token.Token{token.List(sym("quote"), token.List(sym("+"), num(1), num(3)))}},
		{"sharp quote", "#'foo-bar", []token.Token{token.List(sym("function"), sym("foo-bar"))}},
		{"nested quote", "''a", []token.Token{token.List(sym("quote"), token.List(sym("quote"), sym("a")))}},
		{"quote inside list", "(a 'b)", []token.Token{token.List(sym("a"), token.List(sym("quote"), sym("b")))}},
		{"nil is not the empty list", "nil ()", []token.Token{token.Nil{}, token.EmptyList{}}},
		{"string with escaped quote", `"a\"b"`, []token.Token{token.String{Value: `a"b`}}},
		{"string keeps parens", `("(x)" y)`, []token.Token{token.List(token.String{Value: "(x)"}, sym("y"))}},
		{"mixed literals", "(1 2.5 3/4 \"s\" nil)", []token.Token{token.List(num(1), token.Float{Value: 2.5}, token.Rational{Numerator: 3, Denominator: 4}, token.String{Value: "s"}, token.Nil{})}},
		{"comments dropped", "something ; commented\nsomething-else", []token.Token{sym("something"), sym("something-else")}},
		{"comment inside list", "(a ; note\n b)", []token.Token{token.List(sym("a"), sym("b"))}},
		{"comment between quote and form", "' ; c\n x", []token.Token{token.List(sym("quote"), sym("x"))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readAll(t, tt.input)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.True(t, token.Equal(tt.want[i], got[i]), "form %d: want %v, got %v", i, tt.want[i], got[i])
			}
		})
	}
}

func TestCommentsKeep(t *testing.T) {
	got, err := ReadString("something ; commented\nsomething-else", Options{Comments: CommentsKeep})
	require.NoError(t, err)
	assert.Equal(t, []token.Token{
		sym("something"),
		token.Comment{Depth: 1, Text: " commented"},
		sym("something-else"),
	}, got)

	// comments nested in lists are dropped under either policy
	got, err = ReadString(";;; header\n(a ; x\n b)", Options{Comments: CommentsKeep})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, token.Comment{Depth: 3, Text: " header"}, got[0])
	assert.Equal(t, "(a b)", got[1].String())
}

func TestProperListFlattens(t *testing.T) {
	got := readAll(t, "(a b c)")
	require.Len(t, got, 1)
	assert.Equal(t, 3, token.Len(got[0]))
	items, tail := token.Slice(got[0])
	assert.Equal(t, []token.Token{sym("a"), sym("b"), sym("c")}, items)
	assert.Equal(t, token.EmptyList{}, tail)
}

func TestDottedTailEquivalence(t *testing.T) {
	a := readAll(t, "(1 2 . (3 4))")
	b := readAll(t, "(1 2 3 4)")
	assert.True(t, token.Equal(a[0], b[0]))
}

func TestNoMarkersEscape(t *testing.T) {
	inputs := []string{"(a . b)", "'(1 . (2 . (3)))", "(((x)))", "#'f ; c"}
	for _, in := range inputs {
		for _, form := range readAll(t, in) {
			assertNoMarkers(t, form)
		}
	}
}

func assertNoMarkers(t *testing.T, tok token.Token) {
	t.Helper()
	require.NotNil(t, tok)
	require.False(t, token.IsMarker(tok), "marker %v escaped", tok)
	if c, ok := tok.(*token.Cons); ok {
		assertNoMarkers(t, c.Head)
		assertNoMarkers(t, c.Tail)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		input      string
		sentinel   error
		incomplete bool
	}{
		{"(1 2", ErrStructural, true},
		{"((a)", ErrStructural, true},
		{")", ErrStructural, false},
		{"(a))", ErrStructural, false},
		{". a", ErrStructural, false},
		{"( . a)", ErrStructural, false},
		{"(a . )", ErrStructural, false},
		{"(a . b c)", ErrStructural, false},
		{"(a . b . c)", ErrStructural, false},
		{"(a . . b)", ErrStructural, false},
		{"(a .", ErrStructural, true},
		{"(a . b", ErrStructural, true},
		{"'", ErrStructural, true},
		{"'(", ErrStructural, true},
		{"')", ErrStructural, false},
		{`"open`, ErrTokenClassification, true},
		{`("a" "b`, ErrTokenClassification, true},
		{"...", ErrTokenClassification, false},
		{".foo", ErrTokenClassification, false},
		{`"bad \q escape"`, ErrTokenClassification, false},
		{"99999999999999999999", ErrTokenClassification, false},
		{"1/99999999999999999999", ErrTokenClassification, false},
		{"1.0e999", ErrTokenClassification, false},
		{`foo\)bar`, ErrTokenClassification, false},
		{`(foo\)`, ErrTokenClassification, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ReadString(tt.input, Options{})
			require.Error(t, err)
			assert.Nil(t, got, "no partial result")
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.incomplete, IsIncomplete(err))

			var re *Error
			require.True(t, errors.As(err, &re))
			assert.NotEmpty(t, re.Msg)
		})
	}
}

func TestOverflowCarriesCause(t *testing.T) {
	_, err := ReadString("(1 99999999999999999999)", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, strconv.ErrRange)

	var re *Error
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "99999999999999999999", re.Lexeme)
	assert.Equal(t, uint32(3), re.Span.Start)
	assert.Equal(t, uint32(23), re.Span.End)
}

func TestUnterminatedPointsAtOpen(t *testing.T) {
	_, err := ReadString("(a (b c)", Options{})
	var re *Error
	require.True(t, errors.As(err, &re))
	assert.Equal(t, uint32(0), re.Span.Start)
	assert.Equal(t, "unterminated list", re.Msg)
}

func TestMaxDepth(t *testing.T) {
	deep := strings.Repeat("(", 50) + strings.Repeat(")", 50)
	_, err := ReadString(deep, Options{MaxDepth: 10})
	assert.ErrorIs(t, err, ErrStructural)

	got, err := ReadString(deep, Options{MaxDepth: 50})
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = ReadString(strings.Repeat("'", 20)+"x", Options{MaxDepth: 10})
	assert.ErrorIs(t, err, ErrStructural)
}

func TestReadToken(t *testing.T) {
	tests := []struct {
		input string
		want  token.Token
	}{
		{"42", num(42)},
		{"foobar", sym("foobar")},
		{"3.14159", token.Float{Value: 3.14159}},
		{"2/3", token.Rational{Numerator: 2, Denominator: 3}},
		{`""`, token.String{Value: ""}},
		{`"Hello, World!"`, token.String{Value: "Hello, World!"}},
		{`"Hello, \"World!\""`, token.String{Value: `Hello, "World!"`}},
		{"nil", token.Nil{}},
		{"  (a b)  ", token.List(sym("a"), sym("b"))},
		{"'x ; trailing comment", token.List(sym("quote"), sym("x"))},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ReadToken(tt.input)
			require.NoError(t, err)
			assert.True(t, token.Equal(tt.want, got), "want %v, got %v", tt.want, got)
		})
	}

	_, err := ReadToken("")
	assert.ErrorIs(t, err, ErrTokenClassification)
	_, err = ReadToken("; only a comment")
	assert.ErrorIs(t, err, ErrTokenClassification)
	_, err = ReadToken("a b")
	assert.ErrorIs(t, err, ErrStructural)
}

func TestReadAll(t *testing.T) {
	got, err := ReadAll(strings.NewReader("(1 2)\r\n'x"), Options{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "(1 2)", got[0].String())
	assert.Equal(t, "(quote x)", got[1].String())

	ioErr := errors.New("disk on fire")
	_, err = ReadAll(iotest.ErrReader(ioErr), Options{})
	assert.ErrorIs(t, err, ioErr)
	var re *Error
	assert.False(t, errors.As(err, &re), "I/O failures are not reader errors")
}

func TestParseCommentPolicy(t *testing.T) {
	for in, want := range map[string]CommentPolicy{"": CommentsDrop, "drop": CommentsDrop, "keep": CommentsKeep} {
		got, err := ParseCommentPolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		if in != "" {
			assert.Equal(t, in, got.String())
		}
	}
	_, err := ParseCommentPolicy("sometimes")
	assert.Error(t, err)
}

func TestErrorReasons(t *testing.T) {
	tests := map[string]Reason{
		"(a":                  ReasonUnterminatedList,
		")":                   ReasonUnexpectedClose,
		". x":                 ReasonDotOutsideList,
		"(a . b c)":           ReasonMalformedDottedPair,
		"'":                   ReasonDanglingPrefix,
		`"abc`:                ReasonUnterminatedString,
		"...":                 ReasonBadLiteral,
		"9223372036854775808": ReasonOutOfRange,
		`"\z"`:                ReasonBadEscape,
	}
	for input, want := range tests {
		_, err := ReadString(input, Options{})
		var re *Error
		require.True(t, errors.As(err, &re), input)
		assert.Equal(t, want, re.Reason, input)
	}
}
