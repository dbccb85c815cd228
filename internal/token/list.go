package token

// List builds a proper list over items. The cells take ownership of items.
func List(items ...Token) Token {
	return DottedList(EmptyList{}, items...)
}

// DottedList builds a right-nested chain over items ending in tail.
// With no items the tail itself is returned.
func DottedList(tail Token, items ...Token) Token {
	cur := tail
	for i := len(items) - 1; i >= 0; i-- {
		cur = &Cons{Head: items[i], Tail: cur}
	}
	return cur
}

// Slice flattens a cons chain into its elements and final tail.
// For a proper list the tail is EmptyList; for a non-list t the result is
// (nil, t).
func Slice(t Token) (items []Token, tail Token) {
	cur := t
	for {
		cell, ok := cur.(*Cons)
		if !ok || cell == nil {
			return items, cur
		}
		items = append(items, cell.Head)
		cur = cell.Tail
	}
}

// IsProperList reports whether t is EmptyList or a chain ending in EmptyList.
func IsProperList(t Token) bool {
	_, tail := Slice(t)
	_, ok := tail.(EmptyList)
	return ok
}

// Len returns the number of cells in the chain starting at t.
func Len(t Token) int {
	n := 0
	for {
		cell, ok := t.(*Cons)
		if !ok || cell == nil {
			return n
		}
		n++
		t = cell.Tail
	}
}

// Clone returns a deep copy of t. Cons cells are duplicated, leaves are
// values and are copied as such.
func Clone(t Token) Token {
	cell, ok := t.(*Cons)
	if !ok || cell == nil {
		return t
	}
	root := &Cons{Head: Clone(cell.Head)}
	last := root
	cur := cell.Tail
	for {
		next, ok := cur.(*Cons)
		if !ok || next == nil {
			last.Tail = Clone(cur)
			return root
		}
		n := &Cons{Head: Clone(next.Head)}
		last.Tail = n
		last = n
		cur = next.Tail
	}
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b Token) bool {
	for {
		if a == nil || b == nil {
			return a == nil && b == nil
		}
		ca, okA := a.(*Cons)
		cb, okB := b.(*Cons)
		if !okA || !okB {
			return a == b
		}
		if ca == nil || cb == nil {
			return ca == cb
		}
		if !Equal(ca.Head, cb.Head) {
			return false
		}
		a, b = ca.Tail, cb.Tail
	}
}

// FromInt64 returns an Integer token.
func FromInt64(v int64) Token { return Integer{Value: v} }

// FromFloat64 returns a Float token.
func FromFloat64(v float64) Token { return Float{Value: v} }

// FromRatio returns a Rational token without reducing it.
func FromRatio(num, den int64) Token { return Rational{Numerator: num, Denominator: den} }

// FromString returns a String token.
func FromString(s string) Token { return String{Value: s} }

// FromSlice builds a proper list over copies of items; the caller keeps
// ownership of the originals.
func FromSlice(items []Token) Token {
	copied := make([]Token, len(items))
	for i, it := range items {
		copied[i] = Clone(it)
	}
	return List(copied...)
}
