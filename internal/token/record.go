package token

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Record is the serialized form of a Token: a record tagged with the variant
// name. JSON output is shaped per variant, e.g.
//
//	{"type":"Integer","value":42}
//	{"type":"Cons","head":{...},"tail":{...}}
//
// A Cons chain is stored flat: Items holds the heads in order and Tail the
// final non-Cons tail, so long lists do not nest. The msgpack form keeps this
// layout and is used by the disk cache.
type Record struct {
	Type        string    `msgpack:"type"`
	Int         int64     `msgpack:"int"`
	Float       float64   `msgpack:"float"`
	Text        string    `msgpack:"text,omitempty"`
	Numerator   int64     `msgpack:"num"`
	Denominator int64     `msgpack:"den"`
	Depth       int       `msgpack:"depth,omitempty"`
	Items       []*Record `msgpack:"items,omitempty"`
	Tail        *Record   `msgpack:"tail,omitempty"`
}

// ToRecord converts t into its serialized form. A nil token yields nil.
func ToRecord(t Token) *Record {
	if t == nil {
		return nil
	}
	r := &Record{Type: t.Kind().String()}
	switch v := t.(type) {
	case Integer:
		r.Int = v.Value
	case Float:
		r.Float = v.Value
	case Rational:
		r.Numerator, r.Denominator = v.Numerator, v.Denominator
	case String:
		r.Text = v.Value
	case Symbol:
		r.Text = v.Value
	case Comment:
		r.Depth, r.Text = v.Depth, v.Text
	case *Cons:
		// хвосты идём циклом, рекурсия только по головам
		for cur := v; cur != nil; {
			r.Items = append(r.Items, ToRecord(cur.Head))
			next, ok := cur.Tail.(*Cons)
			if !ok || next == nil {
				r.Tail = ToRecord(cur.Tail)
				break
			}
			cur = next
		}
	}
	return r
}

// Token rebuilds the value r describes.
func (r *Record) Token() (Token, error) {
	if r == nil {
		return nil, fmt.Errorf("nil record")
	}
	kind, ok := ParseKind(r.Type)
	if !ok {
		return nil, fmt.Errorf("unknown token type %q", r.Type)
	}
	switch kind {
	case KindInteger:
		return Integer{Value: r.Int}, nil
	case KindFloat:
		return Float{Value: r.Float}, nil
	case KindRational:
		return Rational{Numerator: r.Numerator, Denominator: r.Denominator}, nil
	case KindString:
		return String{Value: r.Text}, nil
	case KindSymbol:
		return Symbol{Value: r.Text}, nil
	case KindEmptyList:
		return EmptyList{}, nil
	case KindNil:
		return Nil{}, nil
	case KindListStart:
		return ListStart{}, nil
	case KindListEnd:
		return ListEnd{}, nil
	case KindDot:
		return Dot{}, nil
	case KindComment:
		return Comment{Depth: r.Depth, Text: r.Text}, nil
	case KindCons:
		if len(r.Items) == 0 {
			return nil, fmt.Errorf("cons without items")
		}
		tail, err := r.Tail.Token()
		if err != nil {
			return nil, fmt.Errorf("cons tail: %w", err)
		}
		for i := len(r.Items) - 1; i >= 0; i-- {
			head, err := r.Items[i].Token()
			if err != nil {
				return nil, fmt.Errorf("cons item %d: %w", i, err)
			}
			tail = &Cons{Head: head, Tail: tail}
		}
		return tail, nil
	}
	return nil, fmt.Errorf("unsupported token type %q", r.Type)
}

// MarshalJSON writes the variant-specific shape. encoding/json still caps
// the nesting of Marshaler output, so long lists should go through AppendJSON.
func (r *Record) MarshalJSON() ([]byte, error) {
	return r.AppendJSON(nil)
}

// AppendJSON appends the variant-specific JSON shape of r to dst. A Cons
// chain is written as nested head/tail objects without recursing on tails.
// Non-finite floats become null since JSON has no representation for them.
func (r *Record) AppendJSON(dst []byte) ([]byte, error) {
	if r == nil {
		return append(dst, "null"...), nil
	}
	dst = append(dst, `{"type":`...)
	dst = strconv.AppendQuote(dst, r.Type)
	var err error
	switch r.Type {
	case "Integer":
		dst = append(dst, `,"value":`...)
		dst = strconv.AppendInt(dst, r.Int, 10)
	case "Float":
		dst = append(dst, `,"value":`...)
		if math.IsNaN(r.Float) || math.IsInf(r.Float, 0) {
			dst = append(dst, "null"...)
		} else {
			dst, err = appendJSONValue(dst, r.Float)
		}
	case "Rational":
		dst = append(dst, `,"numerator":`...)
		dst = strconv.AppendInt(dst, r.Numerator, 10)
		dst = append(dst, `,"denominator":`...)
		dst = strconv.AppendInt(dst, r.Denominator, 10)
	case "String", "Symbol":
		dst = append(dst, `,"value":`...)
		dst, err = appendJSONValue(dst, r.Text)
	case "Comment":
		dst = append(dst, `,"depth":`...)
		dst = strconv.AppendInt(dst, int64(r.Depth), 10)
		dst = append(dst, `,"comment":`...)
		dst, err = appendJSONValue(dst, r.Text)
	case "Cons":
		if len(r.Items) == 0 {
			return nil, fmt.Errorf("cons without items")
		}
		for i, item := range r.Items {
			if i > 0 {
				dst = append(dst, `{"type":"Cons"`...)
			}
			dst = append(dst, `,"head":`...)
			if dst, err = item.AppendJSON(dst); err != nil {
				return nil, err
			}
			dst = append(dst, `,"tail":`...)
		}
		if dst, err = r.Tail.AppendJSON(dst); err != nil {
			return nil, err
		}
		// внешний объект закрывается ниже, здесь только вложенные
		for range len(r.Items) - 1 {
			dst = append(dst, '}')
		}
	}
	if err != nil {
		return nil, err
	}
	return append(dst, '}'), nil
}

// appendJSONValue кодирует скаляр так же, как encoding/json.
func appendJSONValue(dst []byte, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(dst, data...), nil
}
