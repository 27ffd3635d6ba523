package token_test

import (
	"testing"

	"jsonnetlex/internal/token"
)

func TestSetMembership(t *testing.T) {
	var empty token.Set
	if !empty.Empty() || empty.Has(token.BlockString) {
		t.Fatal("zero Set must be empty")
	}

	s := token.NewSet(token.BlockString, token.RBracket)
	if !s.Has(token.BlockString) || !s.Has(token.RBracket) {
		t.Fatal("NewSet lost a member")
	}
	if s.Has(token.StringLit) {
		t.Fatal("StringLit was never added")
	}

	without := s.Without(token.BlockString)
	if without.Has(token.BlockString) {
		t.Fatal("Without did not remove BlockString")
	}
	if !s.Has(token.BlockString) {
		t.Fatal("Without must not mutate the receiver")
	}
}

func TestSetAll(t *testing.T) {
	for k := token.Invalid; k <= token.RBracket; k++ {
		if !token.All.Has(k) {
			t.Fatalf("All is missing %v", k)
		}
	}
	if token.All.Has(token.Kind(200)) {
		t.Fatal("out of range kinds are never members")
	}
}
