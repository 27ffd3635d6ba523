package token

// Set is a fixed-size bit set of token kinds.
// The zero value is empty.
type Set [(int(kindCount) + 63) / 64]uint64

// All is the set of every kind.
var All = func() Set {
	var s Set
	for k := Kind(0); k < kindCount; k++ {
		s = s.With(k)
	}
	return s
}()

// NewSet returns a set holding kinds.
func NewSet(kinds ...Kind) Set {
	var s Set
	for _, k := range kinds {
		s = s.With(k)
	}
	return s
}

// Has reports whether k is in the set.
func (s Set) Has(k Kind) bool {
	if k >= kindCount {
		return false
	}
	return s[k/64]&(1<<(k%64)) != 0
}

// With returns a copy of s that also holds k.
func (s Set) With(k Kind) Set {
	if k < kindCount {
		s[k/64] |= 1 << (k % 64)
	}
	return s
}

// Without returns a copy of s that no longer holds k.
func (s Set) Without(k Kind) Set {
	if k < kindCount {
		s[k/64] &^= 1 << (k % 64)
	}
	return s
}

// Empty reports whether no kind is present.
func (s Set) Empty() bool {
	for _, w := range s {
		if w != 0 {
			return false
		}
	}
	return true
}
