package token

import (
	"strconv"
	"strings"
)

// Token is one syntax value produced by the reader.
type Token interface {
	Kind() Kind
	// String renders the token in s-expression surface syntax.
	String() string
}

type (
	// Integer is a 64-bit signed integer literal.
	Integer struct{ Value int64 }
	// Float is a 64-bit floating point literal.
	Float struct{ Value float64 }
	// Rational is a numerator/denominator pair, stored as written.
	Rational struct {
		Numerator   int64
		Denominator int64
	}
	// String is a string literal whose escapes are already resolved.
	String struct{ Value string }
	// Symbol is an atom that is not a more specific literal.
	Symbol struct{ Value string }
	// EmptyList is the empty list, also terminating every proper list.
	EmptyList struct{}
	// Nil is the literal nil atom. It is not the same value as EmptyList.
	Nil struct{}
	// Cons is a list cell. Head and Tail are owned by the cell.
	Cons struct {
		Head Token
		Tail Token
	}

	// ListStart marks '(' inside the reader.
	ListStart struct{}
	// ListEnd marks ')' inside the reader.
	ListEnd struct{}
	// Dot marks the '.' of a dotted pair inside the reader.
	Dot struct{}
	// Comment is a ';' comment; Depth counts the leading semicolons and Text
	// is the rest of the line.
	Comment struct {
		Depth int
		Text  string
	}
)

func (Integer) Kind() Kind   { return KindInteger }
func (Float) Kind() Kind     { return KindFloat }
func (Rational) Kind() Kind  { return KindRational }
func (String) Kind() Kind    { return KindString }
func (Symbol) Kind() Kind    { return KindSymbol }
func (EmptyList) Kind() Kind { return KindEmptyList }
func (Nil) Kind() Kind       { return KindNil }
func (*Cons) Kind() Kind     { return KindCons }
func (ListStart) Kind() Kind { return KindListStart }
func (ListEnd) Kind() Kind   { return KindListEnd }
func (Dot) Kind() Kind       { return KindDot }
func (Comment) Kind() Kind   { return KindComment }

func (t Integer) String() string { return strconv.FormatInt(t.Value, 10) }

// String keeps a fractional part so the text reads back as a Float.
func (t Float) String() string {
	s := strconv.FormatFloat(t.Value, 'g', -1, 64)
	mant, exp, hasExp := strings.Cut(s, "e")
	if strings.ContainsAny(mant, ".NI") {
		return s
	}
	if hasExp {
		return mant + ".0e" + exp
	}
	return mant + ".0"
}

func (t Rational) String() string {
	return strconv.FormatInt(t.Numerator, 10) + "/" + strconv.FormatInt(t.Denominator, 10)
}

func (t String) String() string { return Quote(t.Value) }
func (t Symbol) String() string { return t.Value }
func (EmptyList) String() string { return "()" }
func (Nil) String() string       { return "nil" }
func (ListStart) String() string { return "(" }
func (ListEnd) String() string   { return ")" }
func (Dot) String() string       { return "." }

func (t Comment) String() string {
	return strings.Repeat(";", t.Depth) + t.Text
}

func (c *Cons) String() string {
	var b strings.Builder
	b.WriteByte('(')
	var cur Token = c
	first := true
	for {
		cell, ok := cur.(*Cons)
		if !ok || cell == nil {
			break
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(str(cell.Head))
		cur = cell.Tail
	}
	if _, ok := cur.(EmptyList); !ok {
		b.WriteString(" . ")
		b.WriteString(str(cur))
	}
	b.WriteByte(')')
	return b.String()
}

func str(t Token) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// Quote renders s as a string literal using the escapes the reader resolves.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// IsMarker reports whether t is a structural marker.
func IsMarker(t Token) bool {
	return t != nil && t.Kind().IsMarker()
}
