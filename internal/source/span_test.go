package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "disjoint spans",
			a:        Span{File: 1, Start: 2, End: 4},
			b:        Span{File: 1, Start: 8, End: 10},
			expected: Span{File: 1, Start: 2, End: 10},
		},
		{
			name:     "nested span",
			a:        Span{File: 1, Start: 0, End: 10},
			b:        Span{File: 1, Start: 3, End: 5},
			expected: Span{File: 1, Start: 0, End: 10},
		},
		{
			name:     "different files keep receiver",
			a:        Span{File: 1, Start: 2, End: 4},
			b:        Span{File: 2, Start: 0, End: 10},
			expected: Span{File: 1, Start: 2, End: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSpan_Zeroide(t *testing.T) {
	sp := Span{File: 3, Start: 10, End: 20}

	start := sp.ZeroideToStart()
	if start != (Span{File: 3, Start: 10, End: 10}) || !start.Empty() {
		t.Errorf("ZeroideToStart() = %+v", start)
	}
	end := sp.ZeroideToEnd()
	if end != (Span{File: 3, Start: 20, End: 20}) || !end.Empty() {
		t.Errorf("ZeroideToEnd() = %+v", end)
	}
}

func TestSpan_LenContainsString(t *testing.T) {
	sp := Span{File: 0, Start: 4, End: 9}
	if sp.Len() != 5 {
		t.Errorf("Len() = %d, want 5", sp.Len())
	}
	if !sp.Contains(4) || !sp.Contains(8) || sp.Contains(9) {
		t.Errorf("Contains() is not half-open for %v", sp)
	}
	if sp.String() != "0:4-9" {
		t.Errorf("String() = %q", sp.String())
	}
}
