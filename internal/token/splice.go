package token

import (
	"errors"
	"fmt"
)

// ErrInvalidTreeOperation is returned when a tail splice targets something
// that is not a well-formed cons chain.
var ErrInvalidTreeOperation = errors.New("invalid tree operation")

// SetTail replaces the immediate tail of c.
func (c *Cons) SetTail(tail Token) error {
	if c == nil {
		return fmt.Errorf("%w: set tail on nil cons", ErrInvalidTreeOperation)
	}
	if tail == nil {
		return fmt.Errorf("%w: nil tail", ErrInvalidTreeOperation)
	}
	c.Tail = tail
	return nil
}

// SetLastTail walks the tail chain of c to the cell whose tail is EmptyList
// and replaces that terminator with tail. It fails without modifying
// anything if the chain is already dotted.
func (c *Cons) SetLastTail(tail Token) error {
	if c == nil {
		return fmt.Errorf("%w: set last tail on nil cons", ErrInvalidTreeOperation)
	}
	if tail == nil {
		return fmt.Errorf("%w: nil tail", ErrInvalidTreeOperation)
	}
	cur := c
	for {
		switch next := cur.Tail.(type) {
		case *Cons:
			if next == nil {
				return fmt.Errorf("%w: nil cons in chain", ErrInvalidTreeOperation)
			}
			cur = next
		case EmptyList:
			cur.Tail = tail
			return nil
		default:
			return fmt.Errorf("%w: chain ends in %s, not EmptyList", ErrInvalidTreeOperation, kindOf(cur.Tail))
		}
	}
}

// SetTail replaces the immediate tail of t, which must be a *Cons.
func SetTail(t, tail Token) error {
	c, ok := t.(*Cons)
	if !ok {
		return fmt.Errorf("%w: set tail on %s", ErrInvalidTreeOperation, kindOf(t))
	}
	return c.SetTail(tail)
}

// SetLastTail replaces the EmptyList terminating the chain t, which must be
// a *Cons.
func SetLastTail(t, tail Token) error {
	c, ok := t.(*Cons)
	if !ok {
		return fmt.Errorf("%w: set last tail on %s", ErrInvalidTreeOperation, kindOf(t))
	}
	return c.SetLastTail(tail)
}

func kindOf(t Token) string {
	if t == nil {
		return "<nil>"
	}
	return t.Kind().String()
}
