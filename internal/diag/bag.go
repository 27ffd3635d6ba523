package diag

import (
	"cmp"
	"slices"

	"fortio.org/safecast"

	"jsonnetlex/internal/source"
)

// Bag collects diagnostics up to a fixed limit.
type Bag struct {
	items []Diagnostic
	max   uint16
}

func clampLimit(n int) uint16 {
	limit, err := safecast.Conv[uint16](n)
	switch {
	case err == nil:
		return limit
	case n < 0:
		return 0
	default:
		return ^uint16(0)
	}
}

// NewBag creates a bag that keeps at most max diagnostics.
// Values outside uint16 are clamped.
func NewBag(max int) *Bag {
	limit := clampLimit(max)
	return &Bag{items: make([]Diagnostic, 0, min(limit, 16)), max: limit}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если лимит уже достигнут.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 { return b.max }
func (b *Bag) Len() int    { return len(b.items) }

// Items returns the backing slice. Callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) atLeast(floor Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= floor })
}

// HasErrors reports whether some diagnostic is an error.
func (b *Bag) HasErrors() bool { return b.atLeast(SevError) }

// HasWarnings reports whether some diagnostic is at least a warning.
func (b *Bag) HasWarnings() bool { return b.atLeast(SevWarning) }

// Merge appends everything from other, raising the limit to fit.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.max = max(b.max, clampLimit(len(b.items)+len(other.items)))
	for _, d := range other.items {
		b.Add(d)
	}
}

// Sort orders by file, start, end, then severity (errors first) and code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup drops repeats of the same code at the same primary span,
// keeping the first.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
