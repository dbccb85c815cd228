package token

// Kind discriminates Token variants.
type Kind uint8

const (
	// Invalid marks a zero Kind; no Token reports it.
	Invalid Kind = iota
	// KindInteger is a 64-bit signed integer literal.
	KindInteger
	// KindFloat is a 64-bit floating point literal.
	KindFloat
	// KindRational is an unreduced numerator/denominator pair.
	KindRational
	// KindString is a string literal with escapes resolved.
	KindString
	// KindSymbol is any atom not matching a more specific literal.
	KindSymbol
	// KindEmptyList is the empty list and the proper-list terminator.
	KindEmptyList
	// KindCons is a two-slot list cell.
	KindCons
	// KindNil is the literal nil atom.
	KindNil
	KindListStart
	KindListEnd
	KindDot
	KindComment
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	KindInteger:   "Integer",
	KindFloat:     "Float",
	KindRational:  "Rational",
	KindString:    "String",
	KindSymbol:    "Symbol",
	KindEmptyList: "EmptyList",
	KindCons:      "Cons",
	KindNil:       "Nil",
	KindListStart: "ListStart",
	KindListEnd:   "ListEnd",
	KindDot:       "Dot",
	KindComment:   "Comment",
}

// String returns the variant name used as the serialization discriminator.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Invalid"
}

// IsMarker reports whether the kind is a structural marker.
func (k Kind) IsMarker() bool {
	switch k {
	case KindListStart, KindListEnd, KindDot, KindComment:
		return true
	default:
		return false
	}
}

// IsAtom reports whether the kind is a leaf value that may appear in output.
func (k Kind) IsAtom() bool {
	switch k {
	case KindInteger, KindFloat, KindRational, KindString, KindSymbol, KindNil, KindEmptyList:
		return true
	default:
		return false
	}
}

// ParseKind maps a variant name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name && Kind(k) != Invalid {
			return Kind(k), true
		}
	}
	return Invalid, false
}
