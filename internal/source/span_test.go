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
		{"disjoint", Span{File: 1, Start: 0, End: 2}, Span{File: 1, Start: 5, End: 7}, Span{File: 1, Start: 0, End: 7}},
		{"nested", Span{File: 1, Start: 0, End: 10}, Span{File: 1, Start: 2, End: 3}, Span{File: 1, Start: 0, End: 10}},
		{"other file is ignored", Span{File: 1, Start: 4, End: 5}, Span{File: 2, Start: 0, End: 9}, Span{File: 1, Start: 4, End: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpan_ContainsEmptyLen(t *testing.T) {
	outer := Span{File: 0, Start: 3, End: 9}
	if !outer.Contains(Span{File: 0, Start: 3, End: 9}) {
		t.Error("span must contain itself")
	}
	if outer.Contains(Span{File: 0, Start: 2, End: 4}) {
		t.Error("span starting before outer is not contained")
	}
	if outer.Contains(Span{File: 1, Start: 4, End: 5}) {
		t.Error("span from another file is not contained")
	}
	if outer.Len() != 6 || outer.Empty() {
		t.Errorf("Len()=%d Empty()=%v", outer.Len(), outer.Empty())
	}
	if !(Span{Start: 4, End: 4}).Empty() {
		t.Error("zero-length span should be empty")
	}
	if got := outer.String(); got != "0:3-9" {
		t.Errorf("String() = %q", got)
	}
}
