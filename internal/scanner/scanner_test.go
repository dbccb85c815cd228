package scanner

import (
	"testing"

	"lread/internal/source"
)

func newScanner(content string) *Scanner {
	fs := source.NewFileSet()
	return New(fs.Get(fs.AddVirtual("test.lisp", []byte(content))))
}

func texts(content string) []string {
	var out []string
	for _, lx := range newScanner(content).Collect() {
		out = append(out, lx.Text())
	}
	return out
}

func TestScanLexemes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"only whitespace", "    ", nil},
		{"single word", "foobar", []string{"foobar"}},
		{"initial whitespace", "    foobar", []string{"foobar"}},
		{"multiple words", "  one two three  ", []string{"one", "two", "three"}},
		{"string", ` "this is a string" `, []string{`"this is a string"`}},
		{"empty string", ` "" `, []string{`""`}},
		{"string with escapes", ` "this string \"contains\" a string" `, []string{`"this string \"contains\" a string"`}},
		{"list start", " ( ", []string{"("}},
		{"list end", " ) ", []string{")"}},
		{"empty list", " () ", []string{"(", ")"}},
		{"integer then list end", " 42) ", []string{"42", ")"}},
		{"symbol then two list ends", " foo-bar))", []string{"foo-bar", ")", ")"}},
		{"list with symbol", "(foo-bar)", []string{"(", "foo-bar", ")"}},
		{"atom stops at list start", "foo(bar", []string{"foo", "(", "bar"}},
		{"quote", "'foo-bar", []string{"'", "foo-bar"}},
		{"sharp quote", "#'foo-bar", []string{"#'", "foo-bar"}},
		{"lone sharp is an atom", "#foo", []string{"#foo"}},
		{"dotted pair", "(13 . 42)", []string{"(", "13", ".", "42", ")"}},
		{"comment to end of line", "something ; commented\nsomething-else", []string{"something", "; commented", "something-else"}},
		{"comment at eof", ";; tail", []string{";; tail"}},
		{"unicode whitespace", "a\u00a0b\u2003c", []string{"a", "b", "c"}},
		{"unicode symbol", "(λ x)", []string{"(", "λ", "x", ")"}},
		{"escaped list end stays in atom", `foo\)bar`, []string{`foo\)bar`}},
		{"escaped list end before real one", `(foo\)`, []string{"(", `foo\)`}},
		{"escaped list start", `a\(b c`, []string{`a\(b`, "c"}},
		{"backslash before whitespace", `foo\ bar`, []string{`foo\`, "bar"}},
		{"trailing backslash", `foo\`, []string{`foo\`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("lexeme %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestUnterminatedStringRunsToEnd(t *testing.T) {
	got := texts(`(a "open \" still`)
	want := []string{"(", "a", `"open \" still`}
	if len(got) != len(want) || got[2] != want[2] {
		t.Fatalf("got %q, want %q", got, want)
	}

	// a trailing backslash must not step past the buffer
	got = texts(`"abc\`)
	if len(got) != 1 || got[0] != `"abc\` {
		t.Fatalf("got %q", got)
	}
}

func TestSpansShareBuffer(t *testing.T) {
	s := newScanner("  (foo)")
	lx, ok := s.Next()
	if !ok {
		t.Fatal("expected a lexeme")
	}
	if lx.Span.Start != 2 || lx.Span.End != 3 {
		t.Errorf("unexpected span %v", lx.Span)
	}
	lx, _ = s.Next()
	if lx.Text() != "foo" || lx.Span.Start != 3 || lx.Span.End != 6 {
		t.Errorf("unexpected lexeme %q at %v", lx.Text(), lx.Span)
	}
	if &lx.Raw[0] != &s.File().Content[3] {
		t.Error("lexeme must alias the file content")
	}
}

func TestScannerNotRestartable(t *testing.T) {
	s := newScanner("a")
	if _, ok := s.Next(); !ok {
		t.Fatal("expected first lexeme")
	}
	for i := 0; i < 3; i++ {
		if _, ok := s.Next(); ok {
			t.Fatal("exhausted scanner produced a lexeme")
		}
	}
}

func TestIsDelimiter(t *testing.T) {
	for _, r := range []rune{'(', ')', ' ', '\t', '\n', '\u00a0'} {
		if !IsDelimiter(r) {
			t.Errorf("IsDelimiter(%q) = false", r)
		}
	}
	if IsDelimiter('a') || IsDelimiter('\'') {
		t.Error("non-delimiters reported as delimiters")
	}
}
