package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"lread/internal/scanner"
	"lread/internal/source"
	"lread/internal/token"
)

// CheckTree runs the structural invariants every successful read must hold
// on its top-level forms:
// 1) no form or sub-form is nil or a structural marker ('(' ')' '.')
// 2) comments appear only at top level
// 3) no Cons cell is reachable twice (no sharing, no cycles)
func CheckTree(forms []token.Token) error {
	seen := make(map[*token.Cons]struct{})
	for i, f := range forms {
		if f == nil {
			return fmt.Errorf("form %d is nil", i)
		}
		if _, ok := f.(token.Comment); ok {
			continue
		}
		if err := checkNode(f, seen); err != nil {
			return fmt.Errorf("form %d: %w", i, err)
		}
	}
	return nil
}

func checkNode(t token.Token, seen map[*token.Cons]struct{}) error {
	// хвосты обходим циклом, иначе длинный список съест стек
	for {
		switch v := t.(type) {
		case nil:
			return fmt.Errorf("nil sub-form")
		case token.Comment:
			return fmt.Errorf("comment %q inside a list", v.String())
		case *token.Cons:
			if v == nil {
				return fmt.Errorf("nil cons cell")
			}
			if _, dup := seen[v]; dup {
				return fmt.Errorf("cons cell %p reached twice", v)
			}
			seen[v] = struct{}{}
			if err := checkNode(v.Head, seen); err != nil {
				return err
			}
			t = v.Tail
			continue
		}
		if token.IsMarker(t) {
			return fmt.Errorf("marker %s escaped into the tree", t.Kind())
		}
		return nil
	}
}

// CheckLexemes verifies that lexemes produced from sf are non-empty, lie
// inside the content, are strictly ordered and do not overlap, and that Raw
// matches the spanned bytes.
func CheckLexemes(sf *source.File, lexemes []scanner.Lexeme) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var prevEnd uint32
	for i, lx := range lexemes {
		sp := lx.Span
		if sp.File != sf.ID {
			return fmt.Errorf("lexeme %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End <= sp.Start {
			return fmt.Errorf("lexeme %d: empty span %v", i, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("lexeme %d: span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("lexeme %d: span %v overlaps the previous one ending at %d", i, sp, prevEnd)
		}
		if string(sf.Content[sp.Start:sp.End]) != lx.Text() {
			return fmt.Errorf("lexeme %d: raw %q differs from content %q", i, lx.Text(), sf.Content[sp.Start:sp.End])
		}
		prevEnd = sp.End
	}
	return nil
}
