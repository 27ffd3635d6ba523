package diag

import (
	"testing"

	"jsonnetlex/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		added := b.Add(NewError(LexUnknownChar, source.Span{Start: uint32(i), End: uint32(i) + 1}, "x"))
		if want := i < 2; added != want {
			t.Fatalf("Add #%d = %v, want %v", i, added, want)
		}
	}
	if b.Len() != 2 || b.Cap() != 2 {
		t.Fatalf("Len=%d Cap=%d", b.Len(), b.Cap())
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatal("errors imply warnings threshold too")
	}
}

func TestNewBagClampsLimit(t *testing.T) {
	if got := NewBag(-5).Cap(); got != 0 {
		t.Errorf("negative limit: Cap = %d", got)
	}
	if got := NewBag(1 << 20).Cap(); got != ^uint16(0) {
		t.Errorf("huge limit: Cap = %d", got)
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, LexBadNumber, source.Span{File: 1, Start: 0, End: 1}, "w"))
	b.Add(NewError(LexBadBlockString, source.Span{File: 0, Start: 5, End: 8}, "late"))
	b.Add(NewError(LexUnknownChar, source.Span{File: 0, Start: 1, End: 2}, "early"))
	b.Add(NewError(LexUnknownChar, source.Span{File: 0, Start: 1, End: 2}, "early again"))

	b.Sort()
	b.Dedup()

	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 after dedup, got %d", len(items))
	}
	if items[0].Message != "early" || items[1].Message != "late" || items[2].Message != "w" {
		t.Fatalf("unexpected order: %q %q %q", items[0].Message, items[1].Message, items[2].Message)
	}
}

func TestBagMergeGrows(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(LexUnknownChar, source.Span{}, "a"))
	other := NewBag(2)
	other.Add(NewError(LexUnknownChar, source.Span{}, "b"))
	other.Add(NewError(LexUnknownChar, source.Span{}, "c"))

	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("merged Len = %d, want 3", a.Len())
	}
	a.Merge(nil)
	if a.Len() != 3 {
		t.Fatal("nil merge must be a no-op")
	}
}

func TestBagReporter(t *testing.T) {
	b := NewBag(4)
	var r Reporter = BagReporter{Bag: b}
	r.Report(LexBadEscape, SevError, source.Span{Start: 2, End: 4}, "bad escape", nil)
	if b.Len() != 1 || b.Items()[0].Code != LexBadEscape {
		t.Fatalf("reporter did not reach bag: %+v", b.Items())
	}
	BagReporter{}.Report(LexBadEscape, SevError, source.Span{}, "dropped", nil)
	NopReporter{}.Report(LexBadEscape, SevError, source.Span{}, "dropped", nil)
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexBadBlockString: "LEX1006",
		IOLoadFileError:   "IO4001",
		UnknownCode:       "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if got := LexBadBlockString.String(); got != "[LEX1006]: Malformed text block" {
		t.Errorf("String() = %q", got)
	}
	if got := Code(1999).Title(); got != "Unknown error" {
		t.Errorf("unknown title = %q", got)
	}
}
