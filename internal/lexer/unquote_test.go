package lexer

import (
	"errors"
	"testing"
)

func TestUnquote(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"|||\n  a\n  b\n|||", "a\nb\n"},
		{"|||\n\n  a\n|||", "\na\n"},
		{"|||\n  a\n    b\n\n  c\n |||", "a\n  b\n\nc\n"},
		{"|||  \n\tx\n|||", "x\n"},
	}
	for _, tt := range tests {
		got, err := Unquote(tt.raw, BlockOptions{})
		if err != nil {
			t.Errorf("Unquote(%q): %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Unquote(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestUnquoteRejects(t *testing.T) {
	for _, raw := range []string{
		"",
		"\"str\"",
		"|||\n  a\n b\n|||",
		"|||\n  a\n|||x", // trailing text
		"||\n  a\n|||",
	} {
		if _, err := Unquote(raw, BlockOptions{}); !errors.Is(err, ErrNotBlockString) {
			t.Errorf("Unquote(%q) err = %v, want ErrNotBlockString", raw, err)
		}
	}
}

func TestUnquoteHonoursMaxIndent(t *testing.T) {
	raw := "|||\n    a\n|||"
	if _, err := Unquote(raw, BlockOptions{MaxIndent: 3}); !errors.Is(err, ErrNotBlockString) {
		t.Fatalf("err = %v", err)
	}
	if _, err := Unquote(raw, BlockOptions{MaxIndent: 4}); err != nil {
		t.Fatalf("err = %v", err)
	}
}
